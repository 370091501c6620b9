package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lawrencceee/Housing-Tracker/internal/model"
	"github.com/lawrencceee/Housing-Tracker/internal/repository"
)

// dispatchAI answers the intent and query prompts with separate canned
// responses, so one fake drives a whole turn end to end.
type dispatchAI struct {
	intentResponse string
	queryResponse  string
	intentCalls    int
	queryCalls     int
}

func (d *dispatchAI) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if strings.Contains(systemPrompt, "classifies a user's intent") {
		d.intentCalls++
		return d.intentResponse, nil
	}
	d.queryCalls++
	return d.queryResponse, nil
}

type statusUpdate struct {
	pageID string
	status model.Status
}

type fakeStore struct {
	created []model.Fields
	specs   []*model.QuerySpec
	results []model.Record
	found   *model.Record
	findErr error
	updates []statusUpdate
}

func (f *fakeStore) CreateRecord(ctx context.Context, fields *model.Fields) error {
	f.created = append(f.created, *fields)
	return nil
}

func (f *fakeStore) QueryRecords(ctx context.Context, spec *model.QuerySpec) ([]model.Record, error) {
	f.specs = append(f.specs, spec)
	return f.results, nil
}

func (f *fakeStore) FindFirstByNameContains(ctx context.Context, fragment string) (*model.Record, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.found, nil
}

func (f *fakeStore) UpdateStatus(ctx context.Context, pageID string, status model.Status) error {
	f.updates = append(f.updates, statusUpdate{pageID: pageID, status: status})
	return nil
}

type fakeScraper struct {
	fields  *model.Fields
	err     error
	scraped []string
}

func (f *fakeScraper) Scrape(ctx context.Context, url string) (*model.Fields, error) {
	f.scraped = append(f.scraped, url)
	if f.err != nil {
		return nil, f.err
	}
	return f.fields, nil
}

func newTestAssistant(ai AIClient, store RecordStore, scraper ListingScraper) *AssistantService {
	intents := NewIntentParser(ai)
	intents.now = fixedNow
	queries := NewQuerySynthesizer(ai)
	queries.now = fixedNow

	svc := NewAssistantService(store, scraper, intents, queries)
	svc.now = fixedNow
	return svc
}

func TestHandleCreateFromText(t *testing.T) {
	ai := &dispatchAI{intentResponse: `{"intent": "create", "property_name": "Sunset Apartments", "housing_type": "1 Bedroom", "status": "Applied", "application_date": "3 days ago"}`}
	store := &fakeStore{}
	svc := newTestAssistant(ai, store, &fakeScraper{})

	outcome, err := svc.Handle(context.Background(), "I applied to Sunset Apartments 3 days ago for a 1 bedroom")
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	if outcome.Kind != model.OutcomeCreated {
		t.Fatalf("kind = %q, want created", outcome.Kind)
	}
	if outcome.PropertyName != "Sunset Apartments" {
		t.Errorf("property name = %q", outcome.PropertyName)
	}
	// "3 days ago" relative to the fixed clock of 2024-06-10.
	if outcome.ApplicationDate != "2024-06-07" {
		t.Errorf("application date = %q, want 2024-06-07", outcome.ApplicationDate)
	}

	if len(store.created) != 1 {
		t.Fatalf("expected 1 created record, got %d", len(store.created))
	}
	created := store.created[0]
	if got := deref(created.ApplicationDate, ""); got != "2024-06-07" {
		t.Errorf("stored application date = %q, want resolved ISO date", got)
	}
	if got := deref(created.HousingType, ""); got != "1 Bedroom" {
		t.Errorf("stored housing type = %q", got)
	}
}

func TestHandleListingURL(t *testing.T) {
	ai := &dispatchAI{}
	store := &fakeStore{}
	scraper := &fakeScraper{fields: &model.Fields{
		PropertyName: model.String("Spencer House"),
		Location:     model.String("Custom House Square, Dublin 1"),
		Price:        model.String("€1,772 per month"),
		HousingType:  model.String("1 Bedroom"),
		DublinZone:   model.String("D1"),
	}}
	svc := newTestAssistant(ai, store, scraper)

	outcome, err := svc.Handle(context.Background(), "3 days ago I applied to https://www.daft.ie/for-rent/apartment-17-spencer-house-dublin-1/6230870.")
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	// The listing path never consults the model.
	if ai.intentCalls != 0 || ai.queryCalls != 0 {
		t.Errorf("listing path called the model: intent=%d query=%d", ai.intentCalls, ai.queryCalls)
	}

	if len(scraper.scraped) != 1 {
		t.Fatalf("expected 1 scrape, got %d", len(scraper.scraped))
	}
	// Trailing sentence punctuation is not part of the URL.
	if got, want := scraper.scraped[0], "https://www.daft.ie/for-rent/apartment-17-spencer-house-dublin-1/6230870"; got != want {
		t.Errorf("scraped URL = %q, want %q", got, want)
	}

	if outcome.Kind != model.OutcomeCreated {
		t.Fatalf("kind = %q, want created", outcome.Kind)
	}
	if outcome.PropertyName != "Spencer House" {
		t.Errorf("property name = %q", outcome.PropertyName)
	}
	if outcome.DublinZone != "D1" {
		t.Errorf("dublin zone = %q", outcome.DublinZone)
	}
	if outcome.ApplicationDate != "2024-06-07" {
		t.Errorf("application date = %q, want date phrase from the surrounding text", outcome.ApplicationDate)
	}

	if len(store.created) != 1 {
		t.Fatalf("expected 1 created record, got %d", len(store.created))
	}
	created := store.created[0]
	if got := deref(created.Status, ""); got != string(model.StatusApplied) {
		t.Errorf("scraped record status = %q, want Applied", got)
	}
	if got := deref(created.WebsiteLink, ""); !strings.HasPrefix(got, "https://www.daft.ie/") {
		t.Errorf("website link = %q", got)
	}
}

func TestHandleListingUnsupportedPage(t *testing.T) {
	store := &fakeStore{}
	scraper := &fakeScraper{fields: &model.Fields{}}
	svc := newTestAssistant(&dispatchAI{}, store, scraper)

	outcome, err := svc.Handle(context.Background(), "https://www.daft.ie/for-rent/some-weird-page/1")
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if outcome.Kind != model.OutcomeUnknown {
		t.Errorf("kind = %q, want unknown", outcome.Kind)
	}
	if !strings.Contains(outcome.Message, "unsupported page format") {
		t.Errorf("message = %q", outcome.Message)
	}
	if len(store.created) != 0 {
		t.Error("no record should be created from an empty scrape")
	}
}

func TestHandleUpdate(t *testing.T) {
	ai := &dispatchAI{intentResponse: `{"intent": "update", "property_name": "Oak Street", "status": "Rejected"}`}
	store := &fakeStore{found: &model.Record{PageID: "page-123", Name: "Oak Street House"}}
	svc := newTestAssistant(ai, store, &fakeScraper{})

	outcome, err := svc.Handle(context.Background(), "Oak Street rejected my application")
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	if outcome.Kind != model.OutcomeUpdated {
		t.Fatalf("kind = %q, want updated", outcome.Kind)
	}
	if outcome.MatchedName != "Oak Street House" {
		t.Errorf("matched name = %q", outcome.MatchedName)
	}
	if outcome.NewStatus != model.StatusRejected {
		t.Errorf("new status = %q", outcome.NewStatus)
	}
	if len(store.updates) != 1 || store.updates[0].pageID != "page-123" {
		t.Errorf("unexpected updates: %+v", store.updates)
	}
}

func TestHandleUpdateCoercesUnknownStatus(t *testing.T) {
	ai := &dispatchAI{intentResponse: `{"intent": "update", "property_name": "Oak Street", "status": "ghosted"}`}
	store := &fakeStore{found: &model.Record{PageID: "page-123", Name: "Oak Street House"}}
	svc := newTestAssistant(ai, store, &fakeScraper{})

	outcome, err := svc.Handle(context.Background(), "Oak Street ghosted me")
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if outcome.NewStatus != model.StatusApplied {
		t.Errorf("unrecognized status should coerce to Applied, got %q", outcome.NewStatus)
	}
}

func TestHandleUpdateNotFound(t *testing.T) {
	ai := &dispatchAI{intentResponse: `{"intent": "update", "property_name": "Nonexistent Towers", "status": "Rejected"}`}
	store := &fakeStore{findErr: &repository.RecordNotFoundError{Fragment: "Nonexistent Towers"}}
	svc := newTestAssistant(ai, store, &fakeScraper{})

	_, err := svc.Handle(context.Background(), "Nonexistent Towers rejected me")
	if err == nil {
		t.Fatal("expected not-found error")
	}

	var notFound *repository.RecordNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error should be a RecordNotFoundError, got %v", err)
	}
	if notFound.Fragment != "Nonexistent Towers" {
		t.Errorf("fragment = %q", notFound.Fragment)
	}
	if len(store.updates) != 0 {
		t.Error("no status update should happen when the match fails")
	}
}

func TestHandleQuery(t *testing.T) {
	ai := &dispatchAI{
		intentResponse: `{"intent": "query"}`,
		queryResponse:  `{"filter": {"property": "Status", "status": {"equals": "Accepted"}}, "sorts": [{"property": "Application Date", "direction": "descending"}]}`,
	}
	store := &fakeStore{results: []model.Record{
		{Name: "Sunset Apartments", Status: model.StatusAccepted},
		{Name: "Willow Park", Status: model.StatusAccepted},
		{Name: "Oak Street House", Status: model.StatusRejected},
	}}
	svc := newTestAssistant(ai, store, &fakeScraper{})

	outcome, err := svc.Handle(context.Background(), "show me all my accepted applications")
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	if outcome.Kind != model.OutcomeQueried {
		t.Fatalf("kind = %q, want queried", outcome.Kind)
	}
	if len(outcome.Records) != 3 {
		t.Errorf("records = %d, want 3", len(outcome.Records))
	}
	if outcome.Summary == nil || outcome.Summary.Total != 3 {
		t.Fatalf("summary = %+v", outcome.Summary)
	}
	if outcome.Summary.ByStatus["Accepted"] != 2 || outcome.Summary.ByStatus["Rejected"] != 1 {
		t.Errorf("by-status counts = %+v", outcome.Summary.ByStatus)
	}

	// The query branch feeds the raw text to the synthesizer, not fields.
	if ai.queryCalls != 1 {
		t.Errorf("query synthesizer calls = %d, want 1", ai.queryCalls)
	}
	if len(store.specs) != 1 || store.specs[0].Filter == nil {
		t.Fatalf("store received specs: %+v", store.specs)
	}
}

func TestHandleUnknownIntent(t *testing.T) {
	ai := &dispatchAI{intentResponse: `{"intent": "summon"}`}
	store := &fakeStore{}
	svc := newTestAssistant(ai, store, &fakeScraper{})

	outcome, err := svc.Handle(context.Background(), "do something mysterious")
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if outcome.Kind != model.OutcomeUnknown {
		t.Errorf("kind = %q, want unknown", outcome.Kind)
	}
	if len(store.created) != 0 || len(store.updates) != 0 || len(store.specs) != 0 {
		t.Error("unknown intent must not touch the store")
	}
}
