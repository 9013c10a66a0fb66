package models

import "time"

// SystemMetrics is a JSON-friendly summary of the service's instrumentation.
type SystemMetrics struct {
	RequestsTotal            uint64            `json:"requests_total"`
	AverageRequestDurationMs float64           `json:"average_request_duration_ms"`
	IntentsTotal             uint64            `json:"intents_total"`
	IntentsByType            map[string]uint64 `json:"intents_by_type"`
	SessionsCreated          uint64            `json:"sessions_created"`
	SessionsEnded            uint64            `json:"sessions_ended"`
	SessionStoreOps          uint64            `json:"session_store_ops"`
	AverageSessionStoreMs    float64           `json:"average_session_store_ms"`
	SourceRecords            int               `json:"source_records"`
	SourceFetchOK            bool              `json:"source_fetch_ok"`
	Goroutines               int               `json:"goroutines"`
	GeneratedAt              time.Time         `json:"generated_at"`
}
