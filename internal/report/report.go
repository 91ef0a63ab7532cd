// Package report derives the position-switch duration report from a
// crawled store: for employees who held more than one role at the
// crawled company, each adjacent pair of roles becomes one record with
// the free-text durations normalized to months.
package report

import (
	"bytes"
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"linkroster/internal/models"
)

// noDuration is the marker emitted for duration strings outside the
// known shapes. Real data contains such strings, so this is a value,
// not an error.
const noDuration = "No duration"

// MonthCount is a parsed duration: a number of months, or unknown.
// It serializes as an integer or as the "No duration" marker.
type MonthCount struct {
	Months int
	Known  bool
}

func (m MonthCount) MarshalJSON() ([]byte, error) {
	if !m.Known {
		return json.Marshal(noDuration)
	}
	return json.Marshal(m.Months)
}

func (m *MonthCount) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*m = MonthCount{Months: n, Known: true}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*m = MonthCount{}
	return nil
}

// RoleRef names one side of a switch.
type RoleRef struct {
	Name     string     `json:"name"`
	Duration MonthCount `json:"duration_months"`
}

// Switch is one adjacent position pair. From is the earlier role (the
// store lists positions newest first).
type Switch struct {
	From RoleRef `json:"from"`
	To   RoleRef `json:"to"`
	URL  string  `json:"url"`
}

// DurationToMonths parses the site's free-text duration format:
// "<N> yr", "<N> yrs", "<N> mo", "<N> mos" or the four-token
// combination of both. Anything else is unknown, deliberately
// permissive.
func DurationToMonths(s string) MonthCount {
	fields := strings.Fields(s)
	switch len(fields) {
	case 4:
		years, err1 := strconv.Atoi(fields[0])
		months, err2 := strconv.Atoi(fields[2])
		if err1 != nil || err2 != nil {
			return MonthCount{}
		}
		return MonthCount{Months: years*12 + months, Known: true}
	case 2:
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			return MonthCount{}
		}
		switch fields[1] {
		case "yr", "yrs":
			return MonthCount{Months: n * 12, Known: true}
		case "mo", "mos":
			return MonthCount{Months: n, Known: true}
		}
		return MonthCount{}
	default:
		return MonthCount{}
	}
}

// Generate emits one Switch per adjacent position pair in experience
// entries that match the crawled company and hold more than one
// position.
func Generate(doc models.CompanyStore) []Switch {
	out := []Switch{}
	for _, emp := range doc.Employees {
		for _, exp := range emp.Experience {
			if exp.Company != doc.Company || len(exp.Positions) < 2 {
				continue
			}
			for i := 1; i < len(exp.Positions); i++ {
				out = append(out, Switch{
					From: RoleRef{
						Name:     exp.Positions[i].Name,
						Duration: DurationToMonths(exp.Positions[i].Dates.Duration),
					},
					To: RoleRef{
						Name:     exp.Positions[i-1].Name,
						Duration: DurationToMonths(exp.Positions[i-1].Dates.Duration),
					},
					URL: emp.URL,
				})
			}
		}
	}
	return out
}

// Write reads the store document at inPath and writes the report to
// outPath.
func Write(inPath, outPath string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return errors.Wrapf(err, "reading %s", inPath)
	}
	var doc models.CompanyStore
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.Wrapf(err, "parsing %s", inPath)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(Generate(doc)); err != nil {
		return errors.Wrap(err, "encoding report")
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", outPath)
	}
	return nil
}
