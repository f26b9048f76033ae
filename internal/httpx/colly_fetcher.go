package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
)

// CollyFetcher wraps Colly for single-shot HTML page retrieval.
type CollyFetcher struct {
	userAgent     string
	timeout       time.Duration
	respectRobots bool
}

// Page is the result of one fetch.
type Page struct {
	URL    string
	Status int
	Title  string
	HTML   string
}

type FetchError struct {
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetch error (status %d)", e.Status)
	}
	return fmt.Sprintf("fetch error (status %d): %v", e.Status, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func NewCollyFetcher(userAgent string, timeout time.Duration, respectRobots bool) *CollyFetcher {
	if userAgent == "" {
		userAgent = "geode-bot/1.0"
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &CollyFetcher{
		userAgent:     userAgent,
		timeout:       timeout,
		respectRobots: respectRobots,
	}
}

// FetchPage performs exactly one GET. Non-2xx statuses are returned as *FetchError.
func (f *CollyFetcher) FetchPage(ctx context.Context, rawURL string) (Page, error) {
	target, err := normalizeURL(rawURL)
	if err != nil {
		return Page{}, &FetchError{Err: err}
	}
	if err := ctx.Err(); err != nil {
		return Page{}, &FetchError{Err: err}
	}

	page := Page{URL: target}
	var reqErr error

	c := f.newCollector()
	c.OnHTML("title", func(e *colly.HTMLElement) {
		if page.Title == "" {
			page.Title = strings.TrimSpace(e.Text)
		}
	})
	c.OnResponse(func(r *colly.Response) {
		page.Status = r.StatusCode
		page.HTML = string(r.Body)
		page.URL = r.Request.URL.String()
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			page.Status = r.StatusCode
		}
		reqErr = err
	})

	collyCtx := colly.NewContext()
	collyCtx.Put("ctx", ctx)

	if err := c.Request(http.MethodGet, target, nil, collyCtx, nil); err != nil {
		return page, &FetchError{Status: page.Status, Err: err}
	}
	// an aborted request returns no error from colly
	if err := ctx.Err(); err != nil {
		return page, &FetchError{Status: page.Status, Err: err}
	}
	if reqErr != nil {
		return page, &FetchError{Status: page.Status, Err: reqErr}
	}
	if page.Status >= 300 {
		return page, &FetchError{Status: page.Status, Err: fmt.Errorf("status %d", page.Status)}
	}
	if page.Status == 0 {
		page.Status = http.StatusOK
	}
	return page, nil
}

func (f *CollyFetcher) newCollector() *colly.Collector {
	c := colly.NewCollector(colly.UserAgent(f.userAgent))
	c.IgnoreRobotsTxt = !f.respectRobots
	c.SetRequestTimeout(f.timeout)

	c.OnRequest(func(r *colly.Request) {
		ctx := context.Background()
		if v := r.Ctx.GetAny("ctx"); v != nil {
			if reqCtx, ok := v.(context.Context); ok {
				ctx = reqCtx
			}
		}
		if ctx.Err() != nil {
			r.Abort()
		}
	})

	return c
}

func normalizeURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", errors.New("empty url")
	}
	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", fmt.Errorf("url %q has no host", rawURL)
	}
	return u.String(), nil
}
