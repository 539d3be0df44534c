package domain

import "time"

// Fields is one flat object of string-keyed form values.
type Fields map[string]string

// Attachment is the single binary part of a multipart probe.
type Attachment struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

type Outcome string

const (
	OutcomeOK        Outcome = "ok"
	OutcomeTimeout   Outcome = "timeout"
	OutcomeTransport Outcome = "transport"
)

// ProbeResult is the outcome of one delivery attempt.
// StatusCode and Body are only meaningful when Outcome is OutcomeOK.
type ProbeResult struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	URL        string        `json:"url"`
	Outcome    Outcome       `json:"outcome"`
	StatusCode int           `json:"status_code,omitempty"`
	Elapsed    time.Duration `json:"elapsed"`
	Body       string        `json:"body,omitempty"`
	Reason     string        `json:"reason,omitempty"`
	Timeout    time.Duration `json:"timeout"`
	CheckedAt  time.Time     `json:"checked_at"`
}

func (r ProbeResult) LatencyMS() float64 {
	return float64(r.Elapsed) / float64(time.Millisecond)
}
