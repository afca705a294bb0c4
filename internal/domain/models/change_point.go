package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ChangePoint is a single detected structural break. Means are pointers so
// an absent mean is distinguishable from zero.
type ChangePoint struct {
	TauDate        string   `json:"tau_date"`
	TauIndex       *float64 `json:"tau_index,omitempty"`
	MuBefore       *float64 `json:"mu_before"`
	MuAfter        *float64 `json:"mu_after"`
	SigmaBefore    *float64 `json:"sigma_before,omitempty"`
	SigmaAfter     *float64 `json:"sigma_after,omitempty"`
	Interpretation string   `json:"interpretation,omitempty"`
}

// ChangePointKind tells which shape /change-points answered with.
type ChangePointKind int

const (
	ChangePointEmpty ChangePointKind = iota
	ChangePointSingle
	ChangePointList
)

func (k ChangePointKind) String() string {
	switch k {
	case ChangePointSingle:
		return "single"
	case ChangePointList:
		return "list"
	default:
		return "empty"
	}
}

// ChangePointResult is the decoded /change-points body. The endpoint may
// answer with one object or an array of them.
type ChangePointResult struct {
	Kind  ChangePointKind
	Items []ChangePoint
}

// UnmarshalJSON accepts an object, an array or null.
func (r *ChangePointResult) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*r = ChangePointResult{Kind: ChangePointEmpty}
		return nil
	case b[0] == '[':
		var items []ChangePoint
		if err := json.Unmarshal(b, &items); err != nil {
			return fmt.Errorf("decode change point list: %w", err)
		}
		if len(items) == 0 {
			*r = ChangePointResult{Kind: ChangePointEmpty}
			return nil
		}
		*r = ChangePointResult{Kind: ChangePointList, Items: items}
		return nil
	case b[0] == '{':
		var cp ChangePoint
		if err := json.Unmarshal(b, &cp); err != nil {
			return fmt.Errorf("decode change point: %w", err)
		}
		*r = ChangePointResult{Kind: ChangePointSingle, Items: []ChangePoint{cp}}
		return nil
	default:
		return fmt.Errorf("decode change points: unexpected JSON %q", truncate(b, 32))
	}
}

// MarshalJSON writes the primary change point, or null.
func (r ChangePointResult) MarshalJSON() ([]byte, error) {
	cp, ok := r.Primary()
	if !ok {
		return []byte("null"), nil
	}
	return json.Marshal(cp)
}

// Primary applies the fallback rule: a single object is used as is, a list
// yields its first element and an empty result yields nothing.
func (r ChangePointResult) Primary() (ChangePoint, bool) {
	if r.Kind == ChangePointEmpty || len(r.Items) == 0 {
		return ChangePoint{}, false
	}
	return r.Items[0], true
}

// PercentChange returns (after-before)/before*100. ok is false when a mean
// is missing or the before mean is zero.
func (c ChangePoint) PercentChange() (pct float64, ok bool) {
	if c.MuBefore == nil || c.MuAfter == nil || *c.MuBefore == 0 {
		return 0, false
	}
	return (*c.MuAfter - *c.MuBefore) / *c.MuBefore * 100, true
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
