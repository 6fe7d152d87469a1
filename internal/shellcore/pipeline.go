package shellcore

import (
	"fmt"
	"strings"
)

// Pipeline is the full parse of one input line: a sequence of stage
// Contexts, in the order their commands will run.
type Pipeline struct {
	Stages []*Context
}

// ParsePipeline splits raw input on literal "|" bytes — before any
// lexing, so a "|" embedded in a quoted string still splits the
// pipeline, matching the documented (and preserved) source quirk — and
// builds a Context for each resulting stage. An empty fragment between
// two pipes is a parse error; empty overall input yields (nil, nil).
func ParsePipeline(raw string) (*Pipeline, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	fragments := strings.Split(raw, "|")
	stages := make([]*Context, 0, len(fragments))
	for _, frag := range fragments {
		frag = strings.TrimSpace(frag)
		if frag == "" {
			return nil, fmt.Errorf("syntax error near unexpected token `|'")
		}
		ctx, err := BuildContext(frag)
		if err != nil {
			return nil, err
		}
		stages = append(stages, ctx)
	}
	return &Pipeline{Stages: stages}, nil
}
