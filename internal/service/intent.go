package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lawrencceee/Housing-Tracker/internal/model"
	"github.com/lawrencceee/Housing-Tracker/internal/utils"
)

// IntentParser maps one free-text utterance to a tagged action plus a
// partial field map, using the generative model with a fixed prompt.
type IntentParser struct {
	ai  AIClient
	now func() time.Time
}

// NewIntentParser creates a new intent parser
func NewIntentParser(ai AIClient) *IntentParser {
	return &IntentParser{
		ai:  ai,
		now: time.Now,
	}
}

// Parse classifies the utterance and extracts record fields. Malformed
// model output is a hard error carrying the raw response; it is never
// silently defaulted, unlike the date resolver's total-function policy.
func (p *IntentParser) Parse(ctx context.Context, text string) (*model.Action, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty input")
	}

	response, err := p.ai.Complete(ctx, BuildIntentPrompt(p.now()), text)
	if err != nil {
		return nil, fmt.Errorf("intent classification failed: %w", err)
	}

	var action model.Action
	if err := utils.ParseAIJSON(response, &action); err != nil {
		return nil, fmt.Errorf("intent classification failed: %w", err)
	}

	return &action, nil
}
