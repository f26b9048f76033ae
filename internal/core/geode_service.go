package core

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/baxromumarov/geode/internal/ai"
	"github.com/baxromumarov/geode/internal/content"
	"github.com/baxromumarov/geode/internal/geode"
	"github.com/baxromumarov/geode/internal/httpx"
	"github.com/baxromumarov/geode/internal/observability"
)

// PageFetcher retrieves the HTML of one page.
type PageFetcher interface {
	FetchPage(ctx context.Context, rawURL string) (httpx.Page, error)
}

// GeodeService runs fetch -> extract -> model -> parse for one URL.
// It holds no per-request state.
type GeodeService struct {
	fetcher       PageFetcher
	aiClient      ai.Client
	maxTextLength int
}

func NewGeodeService(fetcher PageFetcher, aiClient ai.Client, maxTextLength int) *GeodeService {
	if maxTextLength <= 0 {
		maxTextLength = content.DefaultMaxTextLength
	}
	return &GeodeService{
		fetcher:       fetcher,
		aiClient:      aiClient,
		maxTextLength: maxTextLength,
	}
}

// Run returns the JSON body for the analysis endpoint. A failed page fetch
// degrades to empty text; only a failed model call is returned as an error.
func (s *GeodeService) Run(ctx context.Context, url string) (json.RawMessage, error) {
	start := time.Now()
	observability.IncAnalysis()
	defer func() {
		observability.ObserveAnalysisDuration(time.Since(start))
	}()

	html := ""
	page, err := s.fetcher.FetchPage(ctx, url)
	if err != nil {
		kind := observability.ClassifyFetchError(err)
		slog.Warn("page fetch failed", "url", url, "kind", kind, "error", err)
		observability.IncFetchFailure()
		observability.IncError(kind, "fetcher")
	} else {
		observability.IncPageFetched()
		html = page.HTML
	}

	text := content.ExtractText(html, s.maxTextLength)
	slog.Debug("extracted page text",
		"url", url,
		"title", page.Title,
		"status", page.Status,
		"textLength", len(text),
	)

	observability.IncAICall(s.aiClient.Provider())
	raw, err := s.aiClient.AnalyzeContent(ctx, text)
	if err != nil {
		observability.IncError(observability.ErrorAI, s.aiClient.Provider())
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	body, ok := geode.ParseCompletion(raw)
	if !ok {
		slog.Warn("could not parse AI response", "url", url, "provider", s.aiClient.Provider())
		observability.IncParseFallback()
	}
	return body, nil
}
