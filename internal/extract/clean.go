package extract

import (
	"strings"

	"linkroster/internal/models"
)

// employmentTypeSuffix is appended by the site to company names when an
// employment-type badge is rendered inline.
const employmentTypeSuffix = " Full-time"

// seeLessSuffixes terminate expanded description text in the locales
// the crawl has been run under.
var seeLessSuffixes = []string{".\nСвернуть", ".\nsee less"}

// dateRangeSeparator is the en-dash the site puts between the from and
// to parts of a date line.
const dateRangeSeparator = "–"

// CleanCompanyName strips the trailing employment-type annotation.
func CleanCompanyName(name string) string {
	return strings.TrimSuffix(name, employmentTypeSuffix)
}

// TrimSeeLess removes the localized "see less" tail left behind when a
// description was expanded. Text without a recognized tail is returned
// unchanged.
func TrimSeeLess(text string) string {
	for _, suffix := range seeLessSuffixes {
		if strings.HasSuffix(text, suffix) {
			return strings.TrimSuffix(text, suffix)
		}
	}
	return text
}

// SplitDateRange splits a date line on the en-dash. Exactly two
// segments map to from/to, trimmed; any other shape degrades to empty
// fields rather than an error.
func SplitDateRange(raw string) models.DateRange {
	parts := strings.Split(raw, dateRangeSeparator)
	if len(parts) != 2 {
		return models.DateRange{}
	}
	return models.DateRange{
		From: strings.TrimSpace(parts[0]),
		To:   strings.TrimSpace(parts[1]),
	}
}
