package service

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/lawrencceee/Housing-Tracker/internal/model"
	"github.com/lawrencceee/Housing-Tracker/internal/utils"
)

// daftURLRegex spots a pasted daft.ie listing link anywhere in the input.
var daftURLRegex = regexp.MustCompile(`https?://(www\.)?daft\.ie/[^\s]+`)

// RecordStore is the record-keeping collaborator. Matching a record and
// updating it are two round trips with no transaction between them; that
// is acceptable for single-operator use.
type RecordStore interface {
	CreateRecord(ctx context.Context, fields *model.Fields) error
	QueryRecords(ctx context.Context, spec *model.QuerySpec) ([]model.Record, error)
	FindFirstByNameContains(ctx context.Context, fragment string) (*model.Record, error)
	UpdateStatus(ctx context.Context, pageID string, status model.Status) error
}

// ListingScraper extracts a partial field map from one listing page.
type ListingScraper interface {
	Scrape(ctx context.Context, url string) (*model.Fields, error)
}

// AssistantService dispatches one user turn: scrape path when a listing
// link is present, otherwise the model-classified create/update/query path.
type AssistantService struct {
	store   RecordStore
	scraper ListingScraper
	intents *IntentParser
	queries *QuerySynthesizer
	now     func() time.Time
}

// NewAssistantService creates the action dispatcher
func NewAssistantService(store RecordStore, scraper ListingScraper, intents *IntentParser, queries *QuerySynthesizer) *AssistantService {
	return &AssistantService{
		store:   store,
		scraper: scraper,
		intents: intents,
		queries: queries,
		now:     time.Now,
	}
}

// Handle processes one free-text turn and returns its outcome. A listing
// URL always takes the scrape path; the field extractor is never consulted
// for it, regardless of the surrounding text.
func (s *AssistantService) Handle(ctx context.Context, text string) (*model.Outcome, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty input")
	}

	if url := daftURLRegex.FindString(text); url != "" {
		return s.handleListing(ctx, strings.TrimRight(url, "."), text)
	}

	action, err := s.intents.Parse(ctx, text)
	if err != nil {
		return nil, err
	}

	switch action.Intent {
	case model.IntentCreate:
		return s.handleCreate(ctx, action)
	case model.IntentUpdate:
		return s.handleUpdate(ctx, action)
	case model.IntentQuery:
		return s.handleQuery(ctx, text)
	default:
		return &model.Outcome{
			Kind:    model.OutcomeUnknown,
			Message: "Could not determine your intent. Please try rephrasing.",
		}, nil
	}
}

// handleListing scrapes the pasted link and creates a record from it. The
// application date comes from a relative-date phrase elsewhere in the
// utterance when one is present, else today; status is always "Applied".
func (s *AssistantService) handleListing(ctx context.Context, url, text string) (*model.Outcome, error) {
	fields, err := s.scraper.Scrape(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to scrape listing: %w", err)
	}
	if fields.IsEmpty() {
		return &model.Outcome{
			Kind:    model.OutcomeUnknown,
			Message: "Could not extract details from the listing page. It might be an unsupported page format.",
		}, nil
	}

	fields.WebsiteLink = model.String(url)
	fields.Status = model.String(string(model.StatusApplied))

	resolved := utils.ResolveDate(utils.ExtractDateExpression(text), s.now())
	fields.ApplicationDate = model.String(resolved)

	if err := s.store.CreateRecord(ctx, fields); err != nil {
		return nil, err
	}

	return &model.Outcome{
		Kind:            model.OutcomeCreated,
		PropertyName:    deref(fields.PropertyName, model.DefaultPropertyName),
		DublinZone:      deref(fields.DublinZone, ""),
		ApplicationDate: resolved,
	}, nil
}

func (s *AssistantService) handleCreate(ctx context.Context, action *model.Action) (*model.Outcome, error) {
	resolved := utils.ResolveDate(deref(action.ApplicationDate, ""), s.now())
	action.ApplicationDate = model.String(resolved)

	if err := s.store.CreateRecord(ctx, &action.Fields); err != nil {
		return nil, err
	}

	return &model.Outcome{
		Kind:            model.OutcomeCreated,
		PropertyName:    deref(action.PropertyName, model.DefaultPropertyName),
		DublinZone:      deref(action.DublinZone, ""),
		ApplicationDate: resolved,
	}, nil
}

// handleUpdate finds the first record whose name contains the extracted
// fragment (first match in store order wins, not best match) and moves its
// status, coercing anything outside the closed enum to "Applied".
func (s *AssistantService) handleUpdate(ctx context.Context, action *model.Action) (*model.Outcome, error) {
	fragment := deref(action.PropertyName, "")
	if fragment == "" {
		return nil, fmt.Errorf("update requires a property name to match against")
	}

	record, err := s.store.FindFirstByNameContains(ctx, fragment)
	if err != nil {
		return nil, err
	}

	status := model.CoerceStatus(deref(action.Status, ""))
	if err := s.store.UpdateStatus(ctx, record.PageID, status); err != nil {
		return nil, err
	}

	return &model.Outcome{
		Kind:        model.OutcomeUpdated,
		MatchedName: record.Name,
		NewStatus:   status,
	}, nil
}

// handleQuery synthesizes a filter from the raw text, bypassing the field
// map entirely, and summarizes the result set.
func (s *AssistantService) handleQuery(ctx context.Context, text string) (*model.Outcome, error) {
	spec, err := s.queries.Synthesize(ctx, text)
	if err != nil {
		return nil, err
	}

	records, err := s.store.QueryRecords(ctx, spec)
	if err != nil {
		return nil, err
	}
	log.Printf("Query matched %d record(s)", len(records))

	return &model.Outcome{
		Kind:    model.OutcomeQueried,
		Records: records,
		Summary: summarize(records),
	}, nil
}

func summarize(records []model.Record) *model.QuerySummary {
	summary := &model.QuerySummary{
		Total:    len(records),
		ByStatus: make(map[string]int),
	}
	for _, r := range records {
		if r.Status != "" {
			summary.ByStatus[string(r.Status)]++
		}
	}
	return summary
}

func deref(p *string, fallback string) string {
	if p == nil || *p == "" {
		return fallback
	}
	return *p
}
