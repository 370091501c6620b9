package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jomei/notionapi"

	"github.com/lawrencceee/Housing-Tracker/internal/config"
	"github.com/lawrencceee/Housing-Tracker/internal/model"
	"github.com/lawrencceee/Housing-Tracker/internal/utils"
)

// Notion property names, exactly as the tracker database declares them.
const (
	propName        = "Property Name"
	propDate        = "Application Date"
	propStatus      = "Status"
	propWebsite     = "Website Link"
	propHousingType = "Housing Type Needed"
	propContact     = "Contact Information"
	propLocation    = "Location"
	propPrice       = "Price"
	propDublinZone  = "Dublin Zone"
)

// RecordNotFoundError is returned when an update target cannot be matched.
// It carries the searched fragment so the caller can report it.
type RecordNotFoundError struct {
	Fragment string
}

func (e *RecordNotFoundError) Error() string {
	return fmt.Sprintf("no entry found with property name containing: %s", e.Fragment)
}

// NotionRepository is the record store: one Notion database holding one
// page per tracked listing.
type NotionRepository struct {
	client     *notionapi.Client
	databaseID notionapi.DatabaseID
	now        func() time.Time
}

// NewNotionRepository creates a new Notion-backed record store
func NewNotionRepository(cfg *config.NotionConfig) *NotionRepository {
	return &NotionRepository{
		client:     notionapi.NewClient(notionapi.Token(cfg.APIKey)),
		databaseID: notionapi.DatabaseID(cfg.DatabaseID),
		now:        time.Now,
	}
}

// CreateRecord writes one new page from a partial field map. Defaults are
// applied here: name falls back to "Unknown Property", status coerces into
// the closed enum, the date resolves through the total date resolver, and
// housing types outside the closed set are dropped rather than stored.
func (r *NotionRepository) CreateRecord(ctx context.Context, fields *model.Fields) error {
	properties := buildProperties(fields, r.now())

	_, err := r.client.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: r.databaseID,
		},
		Properties: properties,
	})
	if err != nil {
		return fmt.Errorf("failed to create record: %w", err)
	}
	return nil
}

// QueryRecords runs a synthesized filter+sort against the database and
// assembles typed records. Every returned page yields a record; none are
// dropped over missing properties.
func (r *NotionRepository) QueryRecords(ctx context.Context, spec *model.QuerySpec) ([]model.Record, error) {
	req := &notionapi.DatabaseQueryRequest{
		Sorts: buildSorts(spec.Sorts),
	}
	if spec.Filter != nil {
		req.Filter = buildFilter(spec.Filter)
	}

	resp, err := r.client.Database.Query(ctx, r.databaseID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}

	records := make([]model.Record, 0, len(resp.Results))
	for _, page := range resp.Results {
		records = append(records, pageToRecord(page))
	}
	return records, nil
}

// FindFirstByNameContains matches records whose title contains the
// fragment and returns the first one in the store's own order.
func (r *NotionRepository) FindFirstByNameContains(ctx context.Context, fragment string) (*model.Record, error) {
	resp, err := r.client.Database.Query(ctx, r.databaseID, &notionapi.DatabaseQueryRequest{
		Filter: notionapi.PropertyFilter{
			Property: propName,
			RichText: &notionapi.TextFilterCondition{Contains: fragment},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search records: %w", err)
	}
	if len(resp.Results) == 0 {
		return nil, &RecordNotFoundError{Fragment: fragment}
	}

	record := pageToRecord(resp.Results[0])
	return &record, nil
}

// UpdateStatus moves one page's status. The status is expected to already
// be coerced into the closed enum by the caller.
func (r *NotionRepository) UpdateStatus(ctx context.Context, pageID string, status model.Status) error {
	_, err := r.client.Page.Update(ctx, notionapi.PageID(pageID), &notionapi.PageUpdateRequest{
		Properties: notionapi.Properties{
			propStatus: notionapi.StatusProperty{
				Status: notionapi.Status{Name: string(status)},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	return nil
}

// buildProperties assembles the page property payload from a partial field
// map, applying the documented per-field defaults.
func buildProperties(fields *model.Fields, now time.Time) notionapi.Properties {
	name := model.DefaultPropertyName
	if fields.PropertyName != nil && *fields.PropertyName != "" {
		name = *fields.PropertyName
	}

	status := model.StatusApplied
	if fields.Status != nil {
		status = model.CoerceStatus(*fields.Status)
	}

	rawDate := ""
	if fields.ApplicationDate != nil {
		rawDate = *fields.ApplicationDate
	}
	isoDate := utils.ResolveDate(rawDate, now)

	properties := notionapi.Properties{
		propName: notionapi.TitleProperty{
			Title: []notionapi.RichText{{Text: &notionapi.Text{Content: name}}},
		},
		propStatus: notionapi.StatusProperty{
			Status: notionapi.Status{Name: string(status)},
		},
	}
	if d := toNotionDate(isoDate); d != nil {
		properties[propDate] = notionapi.DateProperty{
			Date: &notionapi.DateObject{Start: d},
		}
	}

	if fields.WebsiteLink != nil && *fields.WebsiteLink != "" {
		properties[propWebsite] = notionapi.URLProperty{URL: *fields.WebsiteLink}
	}
	if fields.HousingType != nil && model.ValidHousingType(*fields.HousingType) {
		properties[propHousingType] = notionapi.SelectProperty{
			Select: notionapi.Option{Name: *fields.HousingType},
		}
	}
	if fields.ContactInfo != nil && *fields.ContactInfo != "" {
		properties[propContact] = richTextProperty(*fields.ContactInfo)
	}
	if fields.Location != nil && *fields.Location != "" {
		properties[propLocation] = richTextProperty(*fields.Location)
	}
	if fields.Price != nil && *fields.Price != "" {
		properties[propPrice] = richTextProperty(*fields.Price)
	}
	if fields.DublinZone != nil && *fields.DublinZone != "" {
		properties[propDublinZone] = richTextProperty(*fields.DublinZone)
	}

	return properties
}

func richTextProperty(content string) notionapi.RichTextProperty {
	return notionapi.RichTextProperty{
		RichText: []notionapi.RichText{{Text: &notionapi.Text{Content: content}}},
	}
}

// buildFilter converts a predicate tree into the Notion filter value,
// recursing through "and" nodes.
func buildFilter(f *model.Filter) notionapi.Filter {
	if f.IsCompound() {
		var and notionapi.AndCompoundFilter
		for i := range f.And {
			and = append(and, buildFilter(&f.And[i]))
		}
		return and
	}

	pf := notionapi.PropertyFilter{Property: f.Property}
	switch {
	case f.Title != nil:
		// notionapi v1.13.3 has no Title/URL filter fields; the Notion API
		// accepts rich_text conditions for title and url properties.
		pf.RichText = textCondition(f.Title)
	case f.RichText != nil:
		pf.RichText = textCondition(f.RichText)
	case f.URL != nil:
		pf.RichText = textCondition(f.URL)
	case f.Select != nil:
		pf.Select = &notionapi.SelectFilterCondition{
			Equals:       f.Select.Equals,
			DoesNotEqual: f.Select.DoesNotEqual,
			IsNotEmpty:   f.Select.IsNotEmpty,
		}
	case f.Status != nil:
		pf.Status = &notionapi.StatusFilterCondition{
			Equals:       f.Status.Equals,
			DoesNotEqual: f.Status.DoesNotEqual,
			IsNotEmpty:   f.Status.IsNotEmpty,
		}
	case f.Date != nil:
		pf.Date = &notionapi.DateFilterCondition{
			Equals:     toNotionDate(f.Date.Equals),
			Before:     toNotionDate(f.Date.Before),
			After:      toNotionDate(f.Date.After),
			OnOrBefore: toNotionDate(f.Date.OnOrBefore),
			OnOrAfter:  toNotionDate(f.Date.OnOrAfter),
		}
	}
	return pf
}

func textCondition(c *model.TextCondition) *notionapi.TextFilterCondition {
	return &notionapi.TextFilterCondition{
		Equals:       c.Equals,
		DoesNotEqual: c.DoesNotEqual,
		Contains:     c.Contains,
		IsNotEmpty:   c.IsNotEmpty,
	}
}

func buildSorts(sorts []model.Sort) []notionapi.SortObject {
	result := make([]notionapi.SortObject, 0, len(sorts))
	for _, s := range sorts {
		result = append(result, notionapi.SortObject{
			Property:  s.Property,
			Direction: notionapi.SortOrder(s.Direction),
		})
	}
	return result
}

// toNotionDate parses an ISO date string; malformed dates yield nil so the
// condition is simply omitted rather than sent broken.
func toNotionDate(iso string) *notionapi.Date {
	if iso == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return nil
	}
	d := notionapi.Date(t)
	return &d
}

// pageToRecord assembles a typed record from whatever properties the page
// carries; absent or empty properties stay nil.
func pageToRecord(page notionapi.Page) model.Record {
	record := model.Record{PageID: string(page.ID)}

	for name, prop := range page.Properties {
		switch p := prop.(type) {
		case *notionapi.TitleProperty:
			if len(p.Title) > 0 {
				record.Name = richTextValue(p.Title)
			}
		case *notionapi.RichTextProperty:
			if len(p.RichText) > 0 {
				value := richTextValue(p.RichText)
				switch name {
				case propContact:
					record.ContactInfo = model.String(value)
				case propLocation:
					record.Location = model.String(value)
				case propPrice:
					record.Price = model.String(value)
				case propDublinZone:
					record.DublinZone = model.String(value)
				}
			}
		case *notionapi.SelectProperty:
			if name == propHousingType && p.Select.Name != "" {
				record.HousingType = model.String(p.Select.Name)
			}
		case *notionapi.StatusProperty:
			if name == propStatus && p.Status.Name != "" {
				record.Status = model.Status(p.Status.Name)
			}
		case *notionapi.DateProperty:
			if name == propDate && p.Date != nil && p.Date.Start != nil {
				record.ApplicationDate = time.Time(*p.Date.Start).Format("2006-01-02")
			}
		case *notionapi.URLProperty:
			if name == propWebsite && p.URL != "" {
				record.WebsiteLink = model.String(p.URL)
			}
		}
	}

	if record.Name == "" {
		record.Name = model.DefaultPropertyName
	}
	return record
}

func richTextValue(parts []notionapi.RichText) string {
	if parts[0].PlainText != "" {
		return parts[0].PlainText
	}
	if parts[0].Text != nil {
		return parts[0].Text.Content
	}
	return ""
}
