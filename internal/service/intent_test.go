package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/lawrencceee/Housing-Tracker/internal/model"
)

// fakeAI returns canned completions and records the prompts it saw.
type fakeAI struct {
	response     string
	err          error
	systemPrompt string
	userPrompt   string
}

func (f *fakeAI) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.systemPrompt = systemPrompt
	f.userPrompt = userPrompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func fixedNow() time.Time {
	return time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
}

func TestIntentParserCreate(t *testing.T) {
	ai := &fakeAI{response: `{"intent": "create", "property_name": "Sunset Apartments", "housing_type": "1 Bedroom", "status": "Applied", "application_date": "3 days ago"}`}
	parser := NewIntentParser(ai)
	parser.now = fixedNow

	action, err := parser.Parse(context.Background(), "I applied to Sunset Apartments 3 days ago for a 1 bedroom")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if action.Intent != model.IntentCreate {
		t.Errorf("intent = %q, want create", action.Intent)
	}
	if got := deref(action.PropertyName, ""); got != "Sunset Apartments" {
		t.Errorf("property_name = %q, want Sunset Apartments", got)
	}
	if got := deref(action.ApplicationDate, ""); got != "3 days ago" {
		t.Errorf("application_date = %q, want the raw expression", got)
	}
	if ai.userPrompt != "I applied to Sunset Apartments 3 days ago for a 1 bedroom" {
		t.Errorf("user prompt = %q", ai.userPrompt)
	}
	if !strings.Contains(ai.systemPrompt, "2024-06-10") {
		t.Error("system prompt should be anchored to the parser's clock")
	}
}

func TestIntentParserFencedOutput(t *testing.T) {
	ai := &fakeAI{response: "```json\n{\"intent\": \"update\", \"property_name\": \"Oak Street House\", \"status\": \"Rejected\"}\n```"}
	parser := NewIntentParser(ai)
	parser.now = fixedNow

	action, err := parser.Parse(context.Background(), "Oak Street House rejected my application")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if action.Intent != model.IntentUpdate {
		t.Errorf("intent = %q, want update", action.Intent)
	}
	if got := deref(action.Status, ""); got != "Rejected" {
		t.Errorf("status = %q, want Rejected", got)
	}
}

func TestIntentParserMalformedOutput(t *testing.T) {
	ai := &fakeAI{response: "I believe the user wants to create a record."}
	parser := NewIntentParser(ai)
	parser.now = fixedNow

	_, err := parser.Parse(context.Background(), "I applied to Sunset Apartments")
	if err == nil {
		t.Fatal("expected error for non-JSON model output")
	}
	if !strings.Contains(err.Error(), "raw output") {
		t.Errorf("error should carry the raw model output, got: %v", err)
	}
}

func TestIntentParserEmptyInput(t *testing.T) {
	parser := NewIntentParser(&fakeAI{})
	if _, err := parser.Parse(context.Background(), "   "); err == nil {
		t.Fatal("expected error for blank input")
	}
}
