// Package generate turns free-text project descriptions into normalized
// tasks, either through an AI generator subprocess or a deterministic
// template catalog fallback.
package generate

import (
	"encoding/json"
	"fmt"
)

// RawTaskStub is the untrusted task shape produced by a generator.
// Dependencies are batch-relative indices, resolved to real task IDs during
// normalization.
type RawTaskStub struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Priority      string `json:"priority"`
	Dependencies  []int  `json:"dependencies"`
	EstimatedTime string `json:"estimatedTime"`
}

// Output is a generator's full response.
type Output struct {
	ProjectName string        `json:"projectName,omitempty"`
	Tasks       []RawTaskStub `json:"tasks"`
}

// ParseOutput is the validation boundary for generator responses: it either
// returns a structurally valid Output or an error describing why the payload
// is unusable. Callers recover from the error by falling back to the
// template catalog; it is never surfaced to the user.
func ParseOutput(data []byte) (*Output, error) {
	var out Output
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("generate: parse output: %w", err)
	}
	if out.Tasks == nil {
		return nil, fmt.Errorf("generate: output has no task list")
	}
	if len(out.Tasks) == 0 {
		return nil, fmt.Errorf("generate: output task list is empty")
	}
	return &out, nil
}
