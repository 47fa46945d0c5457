package conversation

import (
	"regexp"
	"strings"

	"github.com/brightdoor/realty-ai-platform/internal/leads"
)

var (
	nameRE     = regexp.MustCompile(`(?i)(?:my name is|i am|i'm)\s+([a-zA-Z\s]+)`)
	budgetRE   = regexp.MustCompile(`(?i)(?:budget|afford|looking for|range|price)\D*([\d,]+(?:\.\d+)?)`)
	locationRE = regexp.MustCompile(`(?i)(?:location|area|place|interested in)\s*:?\s*([a-zA-Z\s,]+)`)
)

// propertyTypes is checked in order; the first type mentioned anywhere in
// the message wins even when the message names several.
var propertyTypes = []string{
	"apartment",
	"house",
	"condo",
	"villa",
	"flat",
	"studio",
	"penthouse",
	"duplex",
}

// ExtractedAttributes holds whatever lead details a single message
// volunteered. Empty fields mean the message said nothing about them.
type ExtractedAttributes struct {
	Name              string
	Budget            string
	PreferredLocation string
	PropertyType      string
}

// Empty reports whether the message yielded no attributes at all.
func (a ExtractedAttributes) Empty() bool {
	return a.Name == "" && a.Budget == "" && a.PreferredLocation == "" && a.PropertyType == ""
}

// ExtractAttributes scans a free-form chat message for lead qualification
// details. Each attribute is matched independently, so one message can
// fill several fields at once.
func ExtractAttributes(message string) ExtractedAttributes {
	var out ExtractedAttributes

	if m := nameRE.FindStringSubmatch(message); m != nil {
		out.Name = strings.TrimSpace(m[1])
	}
	if m := budgetRE.FindStringSubmatch(message); m != nil {
		out.Budget = strings.TrimSpace(m[1])
	}
	if m := locationRE.FindStringSubmatch(message); m != nil {
		out.PreferredLocation = strings.TrimSpace(m[1])
	}

	lower := strings.ToLower(message)
	for _, pt := range propertyTypes {
		if strings.Contains(lower, pt) {
			out.PropertyType = pt
			break
		}
	}

	return out
}

// MergeAttributes applies extracted attributes onto a lead. Newly seen
// values replace earlier ones, but a field the message did not mention is
// never blanked out. Returns true when anything changed.
func MergeAttributes(lead *leads.Lead, attrs ExtractedAttributes) bool {
	changed := false
	if attrs.Name != "" && attrs.Name != lead.Name {
		lead.Name = attrs.Name
		changed = true
	}
	if attrs.Budget != "" && attrs.Budget != lead.Budget {
		lead.Budget = attrs.Budget
		changed = true
	}
	if attrs.PreferredLocation != "" && attrs.PreferredLocation != lead.PreferredLocation {
		lead.PreferredLocation = attrs.PreferredLocation
		changed = true
	}
	if attrs.PropertyType != "" && attrs.PropertyType != lead.PropertyType {
		lead.PropertyType = attrs.PropertyType
		changed = true
	}
	return changed
}
