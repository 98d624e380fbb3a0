package stats

import (
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/thushan/ollaview/internal/core/domain"
)

// RefreshCollector tracks the outcome of every refresh cycle
type RefreshCollector struct {
	failures *xsync.Map[domain.ErrorKind, *xsync.Counter]

	successes    *xsync.Counter
	emptyResults *xsync.Counter
	totalLatency *xsync.Counter // milliseconds, successful fetches only

	lastModels    atomic.Int64
	lastRefreshNs atomic.Int64
}

// RefreshStats is a point in time copy of the collector
type RefreshStats struct {
	LastRefresh      time.Time
	FailuresByKind   map[string]int64
	Attempts         int64
	Successes        int64
	EmptyResults     int64
	Failures         int64
	LastModelCount   int64
	AverageLatencyMs int64
}

func NewRefreshCollector() *RefreshCollector {
	return &RefreshCollector{
		failures:     xsync.NewMap[domain.ErrorKind, *xsync.Counter](),
		successes:    xsync.NewCounter(),
		emptyResults: xsync.NewCounter(),
		totalLatency: xsync.NewCounter(),
	}
}

func (rc *RefreshCollector) RecordSuccess(list *domain.ModelList) {
	rc.successes.Inc()
	if list.IsEmpty() {
		rc.emptyResults.Inc()
	}
	if list != nil {
		rc.totalLatency.Add(list.Latency.Milliseconds())
	}
	rc.lastModels.Store(int64(list.Len()))
	rc.lastRefreshNs.Store(time.Now().UnixNano())
}

func (rc *RefreshCollector) RecordFailure(kind domain.ErrorKind) {
	counter, _ := rc.failures.LoadOrCompute(kind, func() (*xsync.Counter, bool) {
		return xsync.NewCounter(), false
	})
	counter.Inc()
	rc.lastRefreshNs.Store(time.Now().UnixNano())
}

func (rc *RefreshCollector) GetStats() RefreshStats {
	s := RefreshStats{
		FailuresByKind: make(map[string]int64),
		Successes:      rc.successes.Value(),
		EmptyResults:   rc.emptyResults.Value(),
		LastModelCount: rc.lastModels.Load(),
	}

	rc.failures.Range(func(kind domain.ErrorKind, counter *xsync.Counter) bool {
		n := counter.Value()
		s.FailuresByKind[kind.String()] = n
		s.Failures += n
		return true
	})

	s.Attempts = s.Successes + s.Failures
	if s.Successes > 0 {
		s.AverageLatencyMs = rc.totalLatency.Value() / s.Successes
	}
	if ns := rc.lastRefreshNs.Load(); ns > 0 {
		s.LastRefresh = time.Unix(0, ns)
	}
	return s
}
