package entity

import "time"

// APILog is one audited call to the ForSign API.
type APILog struct {
	ID            int64     `json:"id"`
	CorrelationID string    `json:"correlation_id"`
	Endpoint      string    `json:"endpoint"`
	Method        string    `json:"method"`
	RequestBody   string    `json:"request_body"`
	ResponseBody  string    `json:"response_body"`
	StatusCode    int       `json:"status_code"` // 0 for transport failures
	Duration      int64     `json:"duration_ms"`
	Error         string    `json:"error,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Failed reports whether the call never succeeded.
func (l *APILog) Failed() bool {
	return l.StatusCode == 0 || l.StatusCode >= 400
}
