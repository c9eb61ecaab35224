// Package schema parses extracted payloads against their expected shapes and
// normalizes known shape variants into the canonical models. Alternate wire
// shapes never leak past this package.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/floww-ai/backend/internal/entity"
)

type rawStage struct {
	Stage *string `json:"stage"`
	Tip   *string `json:"tip"`
}

type workflowPayload struct {
	Workflow []rawStage `json:"workflow"`
}

// DecodeWorkflow validates an extracted payload against the workflow schema
// and returns the canonical model. Failures are *entity.SchemaError values
// naming the violated field; a structurally valid payload with zero stages
// is a failure, not an empty workflow.
func DecodeWorkflow(payload string) (*entity.Workflow, error) {
	var raw workflowPayload
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, &entity.SchemaError{Reason: jsonReason(err), Payload: payload}
	}

	if raw.Workflow == nil {
		return nil, &entity.SchemaError{Field: "workflow", Reason: "missing required array", Payload: payload}
	}
	if len(raw.Workflow) == 0 {
		return nil, &entity.SchemaError{Field: "workflow", Reason: "workflow has zero stages", Payload: payload}
	}

	stages := make([]entity.Stage, 0, len(raw.Workflow))
	for i, rs := range raw.Workflow {
		if rs.Stage == nil || strings.TrimSpace(*rs.Stage) == "" {
			return nil, &entity.SchemaError{
				Field:   fmt.Sprintf("workflow[%d].stage", i),
				Reason:  "stage name must be a non-empty string",
				Payload: payload,
			}
		}
		tip := ""
		if rs.Tip != nil {
			tip = strings.TrimSpace(*rs.Tip)
		}
		stages = append(stages, entity.Stage{
			Name: strings.TrimSpace(*rs.Stage),
			Tip:  tip,
		})
	}

	return &entity.Workflow{
		Stages:     dedupeStageNames(stages),
		RawPayload: payload,
	}, nil
}

// dedupeStageNames makes stage names unique so tip lookup by name stays
// well defined. The second and later occurrence of a name gets its
// occurrence count appended, bumped further when the suffixed form itself
// is already taken by another stage; source order is untouched.
func dedupeStageNames(stages []entity.Stage) []entity.Stage {
	used := make(map[string]bool, len(stages))
	counts := make(map[string]int, len(stages))
	for i, s := range stages {
		counts[s.Name]++
		name := s.Name
		if used[name] {
			n := counts[s.Name]
			if n < 2 {
				n = 2
			}
			for used[fmt.Sprintf("%s (%d)", s.Name, n)] {
				n++
			}
			name = fmt.Sprintf("%s (%d)", s.Name, n)
		}
		stages[i].Name = name
		used[name] = true
	}
	return stages
}

// jsonReason flattens an encoding/json error into a one-line diagnostic.
func jsonReason(err error) string {
	if typeErr, ok := err.(*json.UnmarshalTypeError); ok {
		field := typeErr.Field
		if field == "" {
			field = "payload"
		}
		return fmt.Sprintf("%s: expected %s, got %s", field, typeErr.Type, typeErr.Value)
	}
	return fmt.Sprintf("not valid JSON: %v", err)
}
