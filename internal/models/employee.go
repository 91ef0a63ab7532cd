// Package models holds the record shapes persisted by the crawler.
package models

// DateRange is the split form of a position's date line. Duration stays a
// free-text string ("2 yrs 3 mos"); the report command normalizes it.
type DateRange struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Duration string `json:"duration"`
}

// PositionEntry is one role held at an employer.
type PositionEntry struct {
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Dates       DateRange `json:"dates"`
}

// ExperienceEntry is one employer block. Positions has length 1 for a
// simple tenure and length >= 2 when the profile lists multiple roles
// under the same employer.
type ExperienceEntry struct {
	Company         string          `json:"company"`
	DurationSummary string          `json:"duration_summary"`
	Positions       []PositionEntry `json:"positions"`
}

// EmployeeRecord is a crawled profile. URL is the natural key.
type EmployeeRecord struct {
	Name       string            `json:"name"`
	Position   string            `json:"position"`
	About      string            `json:"about"`
	URL        string            `json:"url"`
	Experience []ExperienceEntry `json:"experience"`
}

// CompanyStore is the persisted root document.
type CompanyStore struct {
	Company   string           `json:"company"`
	Employees []EmployeeRecord `json:"employees"`
}
