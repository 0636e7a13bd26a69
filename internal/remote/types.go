package remote

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// DefaultPollInterval applies when /meta does not report a usable poll_ms.
const DefaultPollInterval = 750 * time.Millisecond

// Meta mirrors the payload returned by /api/v1/meta.
type Meta struct {
	Version string `json:"version"`
	PollMS  any    `json:"poll_ms"`
}

// PollInterval converts poll_ms into a duration. Missing, non-numeric and
// non-positive values fall back to DefaultPollInterval.
func (m Meta) PollInterval() time.Duration {
	var ms float64
	switch v := m.PollMS.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return DefaultPollInterval
		}
		ms = f
	case float64:
		ms = v
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return DefaultPollInterval
		}
		ms = f
	default:
		return DefaultPollInterval
	}
	if math.IsNaN(ms) || math.IsInf(ms, 0) || ms <= 0 {
		return DefaultPollInterval
	}
	return time.Duration(ms * float64(time.Millisecond))
}

// DisplayVersion returns the version string shown in the header.
func (m Meta) DisplayVersion() string {
	if v := strings.TrimSpace(m.Version); v != "" {
		return "v" + v
	}
	return "vunknown"
}

// Snapshot is the full field/value mapping of one section as reported by the
// remote. Numbers are kept as json.Number so they render exactly as sent.
type Snapshot map[string]any

// Connected reports the nested connected.overall flag when present.
func (s Snapshot) Connected() (overall bool, ok bool) {
	nested, isMap := s["connected"].(map[string]any)
	if !isMap {
		return false, false
	}
	overall, ok = nested["overall"].(bool)
	return overall, ok
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	if s == nil {
		return nil
	}
	return Snapshot(cloneMap(s))
}

func cloneMap(m map[string]any) map[string]any {
	dup := make(map[string]any, len(m))
	for k, v := range m {
		dup[k] = cloneValue(v)
	}
	return dup
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return val
	}
}

type profileListResponse struct {
	Configs any `json:"configs"`
}

type profileRequest struct {
	Name string `json:"name"`
}

type saveNewResponse struct {
	Name string `json:"name"`
}
