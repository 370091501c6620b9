package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/lawrencceee/Housing-Tracker/internal/config"
	"github.com/lawrencceee/Housing-Tracker/internal/model"
	"github.com/lawrencceee/Housing-Tracker/internal/utils"
)

// Sentinel values for fields the page did not yield.
const (
	priceNotFound    = "Price not found"
	locationNotFound = "Location not found"
	contactNotFound  = "Contact info not found"
)

// DaftScraper extracts listing details from daft.ie pages with a headless
// browser session, one page load per call.
type DaftScraper struct {
	cfg *config.ScraperConfig
}

// NewDaftScraper creates a new daft.ie scraper
func NewDaftScraper(cfg *config.ScraperConfig) *DaftScraper {
	return &DaftScraper{cfg: cfg}
}

// pageData holds the raw marker texts harvested from one listing page.
type pageData struct {
	Price            string   `json:"price"`
	Address          string   `json:"address"`
	Beds             string   `json:"beds"`
	Contact          string   `json:"contact"`
	ContactFallbacks []string `json:"contactFallbacks"`
}

// extractJS reads every known marker in one evaluation. The contact
// selectors are tried in order, first non-empty wins; when none match,
// siblings of nodes mentioning "Contact" or "Agent" are collected for the
// Go side to filter.
const extractJS = `
(function() {
	function txt(sel) {
		var el = document.querySelector(sel);
		return el ? el.innerText.trim() : '';
	}

	var out = {
		price: txt('[data-testid="price"]'),
		address: txt('[data-testid="address"]'),
		beds: txt('[data-testid="beds"]'),
		contact: '',
		contactFallbacks: []
	};

	var selectors = [
		'[data-testid="agent-name"]',
		'.agent-name',
		'[data-testid="contact-name"]',
		'.contact-name',
		'.agent-details h3',
		'.agent-details h4',
		'.contact-details h3',
		'.contact-details h4'
	];
	for (var i = 0; i < selectors.length; i++) {
		var t = txt(selectors[i]);
		if (t) { out.contact = t; break; }
	}

	if (!out.contact) {
		var nodes = document.querySelectorAll('h1,h2,h3,h4,span,div,p');
		for (var j = 0; j < nodes.length && out.contactFallbacks.length < 5; j++) {
			var label = nodes[j].innerText || '';
			if (label.indexOf('Contact') === -1 && label.indexOf('Agent') === -1) continue;
			var sib = nodes[j].nextElementSibling;
			if (sib && sib.innerText) {
				out.contactFallbacks.push(sib.innerText.trim());
			}
		}
	}

	return out;
})()
`

// newContext creates a fresh chromedp context (one browser, one tab per call)
func (s *DaftScraper) newContext(parent context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", s.cfg.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(s.cfg.UserAgent),
		chromedp.WindowSize(1280, 900),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, opts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	cancel := func() {
		cancelCtx()
		cancelAlloc()
	}
	return ctx, cancel
}

// Scrape loads one listing page and returns a best-effort partial field
// map. The page gets a bounded wait for its price marker; after that each
// field is attempted independently and no single failure blocks the rest.
func (s *DaftScraper) Scrape(ctx context.Context, url string) (*model.Fields, error) {
	tabCtx, cancel := s.newContext(ctx)
	// The browser session is released on every exit path.
	defer cancel()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, time.Duration(s.cfg.WaitTimeout)*time.Second)
	defer cancelTimeout()

	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(`[data-testid="price"]`, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("listing page did not render: %w", err)
	}

	var data pageData
	if err := chromedp.Run(tabCtx, chromedp.Evaluate(extractJS, &data)); err != nil {
		return nil, fmt.Errorf("listing extraction failed: %w", err)
	}

	return assembleFields(url, data), nil
}

// assembleFields applies the per-field extraction policy to the harvested
// marker texts.
func assembleFields(url string, data pageData) *model.Fields {
	fields := &model.Fields{}

	fields.Price = model.String(cleanPrice(data.Price))

	// Name, location and zone come from one address marker: when it is
	// missing, the whole sub-block falls back together.
	if strings.TrimSpace(data.Address) == "" {
		fields.PropertyName = model.String(model.DefaultPropertyName)
		fields.Location = model.String(locationNotFound)
	} else {
		name, location := splitAddress(data.Address)
		fields.PropertyName = model.String(name)
		fields.Location = model.String(location)
		if zone := utils.DeriveDublinZone(data.Address); zone != "" {
			fields.DublinZone = model.String(zone)
		}
	}

	if ht := housingTypeFromURL(url); ht != "" {
		fields.HousingType = model.String(ht)
	} else if ht := housingTypeFromBeds(data.Beds); ht != "" {
		fields.HousingType = model.String(ht)
	}

	fields.ContactInfo = model.String(pickContact(data.Contact, data.ContactFallbacks))

	return fields
}

// cleanPrice strips the per-month unit phrase; an absent marker yields the
// price sentinel.
func cleanPrice(raw string) string {
	price := strings.TrimSpace(strings.ReplaceAll(raw, " per month", ""))
	if price == "" {
		return priceNotFound
	}
	return price
}

// splitAddress derives the property name from the first comma segment and
// the location from the cleaned full address.
func splitAddress(fullAddress string) (name, location string) {
	parts := strings.SplitN(fullAddress, ",", 2)
	name = utils.CleanPropertyName(strings.TrimSpace(parts[0]))
	location = utils.CleanAddress(fullAddress)
	return name, location
}

// housingTypeFromURL matches unit-type keywords in the listing URL itself.
func housingTypeFromURL(url string) string {
	urlLower := strings.ToLower(url)
	switch {
	case strings.Contains(urlLower, "studio"):
		return "Studio"
	case strings.Contains(urlLower, "1-bedroom") || strings.Contains(urlLower, "1bedroom"):
		return "1 Bedroom"
	case strings.Contains(urlLower, "2-bedroom") || strings.Contains(urlLower, "2bedroom"):
		return "2 Bedroom"
	case strings.Contains(urlLower, "3-bedroom") || strings.Contains(urlLower, "3bedroom"):
		return "3 Bedroom+"
	}
	return ""
}

// housingTypeFromBeds is the looser secondary strategy against the beds
// marker text.
func housingTypeFromBeds(bedsText string) string {
	beds := strings.ToLower(bedsText)
	switch {
	case strings.Contains(beds, "studio"):
		return "Studio"
	case strings.Contains(beds, "bed") && strings.Contains(beds, "1"):
		return "1 Bedroom"
	case strings.Contains(beds, "bed") && strings.Contains(beds, "2"):
		return "2 Bedroom"
	case strings.Contains(beds, "bed") && strings.Contains(beds, "3"):
		return "3 Bedroom+"
	}
	return ""
}

// pickContact prefers the selector-matched contact, then the first
// structural fallback of plausible name length, then the sentinel.
func pickContact(selected string, fallbacks []string) string {
	if contact := strings.TrimSpace(selected); contact != "" {
		return contact
	}
	for _, candidate := range fallbacks {
		if plausibleContact(candidate) {
			return strings.TrimSpace(candidate)
		}
	}
	return contactNotFound
}

// plausibleContact keeps strings of reasonable name length (3-49 chars).
func plausibleContact(s string) bool {
	length := len(strings.TrimSpace(s))
	return length > 2 && length < 50
}
