package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/lawrencceee/Housing-Tracker/internal/model"
)

// Prompt templates are fixture data: the schema description and worked
// examples below are what the intent and query tests pin down, so a prompt
// regression shows up as a golden-test failure rather than as silent
// behavior drift in production.

const intentPromptTemplate = `You are an expert system that classifies a user's intent and extracts information for a house application tracker.
Today is %s. Yesterday was %s.
Return JSON with "intent" and relevant fields: "property_name", "website_link", "application_date", "housing_type", "contact_info", "status", "location", "price", "dublin_zone".
For "status", use one of: %s. Default to "Applied". For "price", extract the currency and amount as a string.
If the user says they have not applied yet, use the status "Not yet applied".

IMPORTANT: Pay special attention to date expressions like "3 days ago", "yesterday", "last week", etc. Extract these exactly as written.

EXAMPLES:
Input: "I applied yesterday to 17 Spencer House, Custom House Square, Mayor Street Lower, IFSC, Dublin 1 for eur 1772 per month for 1 bedroom."
Output: {"intent": "create", "property_name": "17 Spencer House", "location": "Custom House Square, Mayor Street Lower, IFSC, Dublin 1", "price": "EUR 1772 per month", "housing_type": "1 Bedroom", "status": "Applied", "application_date": "yesterday", "dublin_zone": "D1"}

Input: "I applied to Sunset Apartments 3 days ago for a 1 bedroom"
Output: {"intent": "create", "property_name": "Sunset Apartments", "housing_type": "1 Bedroom", "status": "Applied", "application_date": "3 days ago"}

Input: "I applied to https://www.daft.ie/for-rent/apartment-17-spencer-house-custom-house-square-mayor-street-lower-ifsc-dublin-1/6230870 3 days ago"
Output: {"intent": "create", "website_link": "https://www.daft.ie/for-rent/apartment-17-spencer-house-custom-house-square-mayor-street-lower-ifsc-dublin-1/6230870", "status": "Applied", "application_date": "3 days ago"}

Input: "Oak Street House rejected my application"
Output: {"intent": "update", "property_name": "Oak Street House", "status": "Rejected"}

Input: "show me all my accepted applications"
Output: {"intent": "query"}

Now, classify the intent and extract the fields for the user's input. Only output the JSON object.`

// BuildIntentPrompt renders the intent-classification system prompt
// anchored to the given "now".
func BuildIntentPrompt(now time.Time) string {
	today := now.Format("2006-01-02")
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")
	return fmt.Sprintf(intentPromptTemplate, today, yesterday, statusOptionList())
}

const queryPromptTemplate = `You are an expert system that converts natural language into a structured JSON query against a house application tracker database for housing in Dublin. Today is %s.
DATABASE SCHEMA:
- "Property Name": (Title), "Application Date": (Date), "Housing Type Needed": (Select), "Status": (Status), "Location": (Rich Text), "Price": (Rich Text), "Dublin Zone": (Rich Text)
Your task is to generate a JSON object with "filter" and "sorts" keys. The "sorts" should ALWAYS sort by "Application Date" in descending order.
EXAMPLES:
User: "What houses did I apply to last week?"
Output: {"filter": {"and": [{"property": "Application Date", "date": {"on_or_after": "%s"}}, {"property": "Status", "status": {"does_not_equal": "Not yet applied"}}]}, "sorts": [{"property": "Application Date", "direction": "descending"}]}
User: "show me applications in Dublin for under 2000 eur"
Output: {"filter": {"and": [{"property": "Location", "rich_text": {"contains": "Dublin"}}, {"property": "Price", "rich_text": {"contains": "2000"}}, {"property": "Price", "rich_text": {"contains": "eur"}}]}, "sorts": [{"property": "Application Date", "direction": "descending"}]}
User: "show me applications in D1"
Output: {"filter": {"property": "Dublin Zone", "rich_text": {"contains": "D1"}}, "sorts": [{"property": "Application Date", "direction": "descending"}]}
User: "list all my applications"
Output: {"sorts": [{"property": "Application Date", "direction": "descending"}]}
Now, generate the JSON for the user's request. Only output the JSON object.`

// BuildQueryPrompt renders the query-synthesis system prompt anchored to
// the given "now".
func BuildQueryPrompt(now time.Time) string {
	today := now.Format("2006-01-02")
	lastWeek := now.AddDate(0, 0, -7).Format("2006-01-02")
	return fmt.Sprintf(queryPromptTemplate, today, lastWeek)
}

func statusOptionList() string {
	opts := make([]string, len(model.StatusOptions))
	for i, s := range model.StatusOptions {
		opts[i] = string(s)
	}
	return strings.Join(opts, ", ")
}
