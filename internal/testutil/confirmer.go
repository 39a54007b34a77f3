package testutil

import (
	"fmt"

	"bugg-go/internal/bugg"
)

// ScriptedConfirmer answers prompts from a fixed list and records every prompt.
// Prompts beyond the script return an error.
type ScriptedConfirmer struct {
	answers []bugg.Decision
	Prompts []string
}

// NewScriptedConfirmer creates a confirmer that replays answers in order.
func NewScriptedConfirmer(answers ...bugg.Decision) *ScriptedConfirmer {
	return &ScriptedConfirmer{answers: answers}
}

// AlwaysYes returns a confirmer that confirms up to n prompts.
func AlwaysYes(n int) *ScriptedConfirmer {
	answers := make([]bugg.Decision, n)
	for i := range answers {
		answers[i] = bugg.DecisionConfirmed
	}
	return NewScriptedConfirmer(answers...)
}

func (c *ScriptedConfirmer) Confirm(prompt string) (bugg.Decision, error) {
	c.Prompts = append(c.Prompts, prompt)
	if len(c.Prompts) > len(c.answers) {
		return bugg.DecisionPending, fmt.Errorf("unexpected prompt #%d: %q", len(c.Prompts), prompt)
	}
	return c.answers[len(c.Prompts)-1], nil
}

var _ bugg.Confirmer = (*ScriptedConfirmer)(nil)
