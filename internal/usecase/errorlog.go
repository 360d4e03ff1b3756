package usecase

import (
	"fmt"
	"sync"

	"github.com/jakeadel/bank-demo/internal/infrastructure/metrics"
)

// ErrorLog is the append-only record of failures shown to the operator.
// Entries are kept oldest first, never deduplicated, capped, or expired.
type ErrorLog struct {
	mu      sync.Mutex
	entries []string
	metrics *metrics.Metrics
}

// NewErrorLog creates an empty ErrorLog. Metrics may be nil.
func NewErrorLog(m *metrics.Metrics) *ErrorLog {
	return &ErrorLog{metrics: m}
}

// Append records a failure as "<message>, <detail>".
func (l *ErrorLog) Append(message string, detail error) {
	l.mu.Lock()
	l.entries = append(l.entries, fmt.Sprintf("%s, %v", message, detail))
	l.mu.Unlock()

	if l.metrics != nil {
		l.metrics.ErrorLogEntries.Inc()
	}
}

// Entries returns a copy of the log, oldest first.
func (l *ErrorLog) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.entries...)
}

// Len reports the number of recorded failures.
func (l *ErrorLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
