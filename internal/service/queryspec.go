package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lawrencceee/Housing-Tracker/internal/model"
	"github.com/lawrencceee/Housing-Tracker/internal/utils"
)

// defaultSort is the fixed result ordering: newest applications first.
// It is applied whenever the model omits sorts, never inferred per query.
var defaultSort = []model.Sort{
	{Property: "Application Date", Direction: "descending"},
}

// QuerySynthesizer maps a free-text question to a structured filter+sort
// expression against the record schema, via the generative model.
type QuerySynthesizer struct {
	ai  AIClient
	now func() time.Time
}

// NewQuerySynthesizer creates a new query synthesizer
func NewQuerySynthesizer(ai AIClient) *QuerySynthesizer {
	return &QuerySynthesizer{
		ai:  ai,
		now: time.Now,
	}
}

// Synthesize derives a query spec from the raw question text. Same
// malformed-JSON policy as the intent parser: hard failure with the raw
// response attached.
func (s *QuerySynthesizer) Synthesize(ctx context.Context, text string) (*model.QuerySpec, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty query")
	}

	response, err := s.ai.Complete(ctx, BuildQueryPrompt(s.now()), text)
	if err != nil {
		return nil, fmt.Errorf("query synthesis failed: %w", err)
	}

	var spec model.QuerySpec
	if err := utils.ParseAIJSON(response, &spec); err != nil {
		return nil, fmt.Errorf("query synthesis failed: %w", err)
	}

	if len(spec.Sorts) == 0 {
		spec.Sorts = defaultSort
	}

	return &spec, nil
}
