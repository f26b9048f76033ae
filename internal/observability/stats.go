package observability

import (
	"sync"
	"sync/atomic"
	"time"
)

type StatsSnapshot struct {
	Analyses           uint64            `json:"analyses"`
	PagesFetched       uint64            `json:"pages_fetched"`
	FetchFailures      uint64            `json:"fetch_failures"`
	ParseFallbacks     uint64            `json:"parse_fallbacks"`
	ErrorsTotal        uint64            `json:"errors_total"`
	AnalysisSecondsAvg float64           `json:"analysis_seconds_avg"`
	AICalls            map[string]uint64 `json:"ai_calls,omitempty"`
	ErrorsByType       map[string]uint64 `json:"errors_by_type,omitempty"`
	ErrorsByComponent  map[string]uint64 `json:"errors_by_component,omitempty"`
}

var (
	analyses       uint64
	pagesFetched   uint64
	fetchFailures  uint64
	parseFallbacks uint64
	errorsTotal    uint64

	analysisCount uint64
	analysisNanos uint64

	statsMu           sync.Mutex
	aiCalls           = map[string]uint64{}
	errorsByType      = map[string]uint64{}
	errorsByComponent = map[string]uint64{}
)

func IncAnalysis() {
	atomic.AddUint64(&analyses, 1)
}

func IncPageFetched() {
	atomic.AddUint64(&pagesFetched, 1)
}

func IncFetchFailure() {
	atomic.AddUint64(&fetchFailures, 1)
}

func IncParseFallback() {
	atomic.AddUint64(&parseFallbacks, 1)
}

func IncAICall(provider string) {
	if provider == "" {
		provider = "unknown"
	}
	statsMu.Lock()
	aiCalls[provider]++
	statsMu.Unlock()
}

func ObserveAnalysisDuration(d time.Duration) {
	if d <= 0 {
		return
	}
	atomic.AddUint64(&analysisCount, 1)
	atomic.AddUint64(&analysisNanos, uint64(d.Nanoseconds()))
}

func IncError(errType, component string) {
	if errType == "" {
		errType = "unknown"
	}
	if component == "" {
		component = "unknown"
	}
	atomic.AddUint64(&errorsTotal, 1)
	statsMu.Lock()
	errorsByType[errType]++
	errorsByComponent[component]++
	statsMu.Unlock()
}

func Snapshot() StatsSnapshot {
	statsMu.Lock()
	aiCopy := copyMap(aiCalls)
	errorsTypeCopy := copyMap(errorsByType)
	errorsComponentCopy := copyMap(errorsByComponent)
	statsMu.Unlock()

	count := atomic.LoadUint64(&analysisCount)
	avg := 0.0
	if count > 0 {
		avg = float64(atomic.LoadUint64(&analysisNanos)) / float64(count) / 1e9
	}

	return StatsSnapshot{
		Analyses:           atomic.LoadUint64(&analyses),
		PagesFetched:       atomic.LoadUint64(&pagesFetched),
		FetchFailures:      atomic.LoadUint64(&fetchFailures),
		ParseFallbacks:     atomic.LoadUint64(&parseFallbacks),
		ErrorsTotal:        atomic.LoadUint64(&errorsTotal),
		AnalysisSecondsAvg: avg,
		AICalls:            aiCopy,
		ErrorsByType:       errorsTypeCopy,
		ErrorsByComponent:  errorsComponentCopy,
	}
}

func copyMap(src map[string]uint64) map[string]uint64 {
	if len(src) == 0 {
		return map[string]uint64{}
	}
	out := make(map[string]uint64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
