package domain

import "time"

// UnknownField is shown for any field a model entry does not carry
const UnknownField = "Unknown"

// ModelRecord is one entry of the service's model list, kept as the service
// sent it. Size is rendered verbatim, SizeBytes is only set when the service
// reported a plain number.
type ModelRecord struct {
	Name      string `json:"name"`
	Size      string `json:"size"`
	Modified  string `json:"modified"`
	SizeBytes int64  `json:"size_bytes,omitempty"`
	HasSize   bool   `json:"-"`
}

// ModelList is the result of one successful fetch.
type ModelList struct {
	FetchedAt time.Time     `json:"fetched_at"`
	Endpoint  string        `json:"endpoint"`
	Models    []ModelRecord `json:"models"`
	Latency   time.Duration `json:"latency"`
}

// IsEmpty reports the "service has no models" outcome, which is a success and
// never a failure.
func (l *ModelList) IsEmpty() bool {
	return l == nil || len(l.Models) == 0
}

func (l *ModelList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Models)
}

// ModifiedTime parses the modification timestamp, the service uses RFC3339
// with optional fractional seconds.
func (r ModelRecord) ModifiedTime() (time.Time, bool) {
	if r.Modified == "" || r.Modified == UnknownField {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, r.Modified)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
