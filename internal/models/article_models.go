package models

import "strings"

// Article is a single help-center entry. Articles are loaded once at startup
// and never mutated.
type Article struct {
	ID      int    `json:"id" yaml:"id" dynamodbav:"id"`
	Title   string `json:"title" yaml:"title" dynamodbav:"title"`
	Content string `json:"content" yaml:"content" dynamodbav:"content"`
}

// Categories offered to customers when they describe an issue.
var Categories = []string{"General", "Account", "Billing", "Technical", "Subscription"}

// CanonicalCategory returns the offered spelling when category names one of
// Categories, ignoring case and surrounding space. Anything else is returned
// as is.
func CanonicalCategory(category string) string {
	trimmed := strings.TrimSpace(category)
	for _, c := range Categories {
		if strings.EqualFold(c, trimmed) {
			return c
		}
	}
	return category
}

const (
	DefaultUserName = "Customer"
	DefaultCategory = "General"
	DefaultUrgency  = "Normal"
	UrgencyHigh     = "High"
)
