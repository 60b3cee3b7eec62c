package core

import "time"

// Transaction outcomes reported to MetricsRecorder
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
	OutcomeReplayed = "replayed"
	OutcomeConflict = "conflict"
)

// MetricsRecorder receives domain measurements
type MetricsRecorder interface {
	// ObserveTransaction records one processed request by kind and outcome
	ObserveTransaction(kind string, outcome string, duration time.Duration)
	// ObserveHistoryQuery records one history page lookup
	ObserveHistoryQuery(duration time.Duration)
}
