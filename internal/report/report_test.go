package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkroster/internal/models"
)

func TestDurationToMonths(t *testing.T) {
	tests := []struct {
		raw  string
		want MonthCount
	}{
		{"2 yrs 3 mos", MonthCount{Months: 27, Known: true}},
		{"1 yr 1 mo", MonthCount{Months: 13, Known: true}},
		{"1 yr", MonthCount{Months: 12, Known: true}},
		{"3 yrs", MonthCount{Months: 36, Known: true}},
		{"1 mo", MonthCount{Months: 1, Known: true}},
		{"6 mos", MonthCount{Months: 6, Known: true}},
		{"", MonthCount{}},
		{"less than a year", MonthCount{}},
		{"two yrs", MonthCount{}},
		{"2 fortnights", MonthCount{}},
		{"x yrs y mos", MonthCount{}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, DurationToMonths(tt.raw))
		})
	}
}

func TestMonthCountJSON(t *testing.T) {
	known, err := json.Marshal(MonthCount{Months: 27, Known: true})
	require.NoError(t, err)
	assert.Equal(t, "27", string(known))

	unknown, err := json.Marshal(MonthCount{})
	require.NoError(t, err)
	assert.Equal(t, `"No duration"`, string(unknown))

	var m MonthCount
	require.NoError(t, json.Unmarshal([]byte("27"), &m))
	assert.Equal(t, MonthCount{Months: 27, Known: true}, m)

	require.NoError(t, json.Unmarshal([]byte(`"No duration"`), &m))
	assert.Equal(t, MonthCount{}, m)

	assert.Error(t, json.Unmarshal([]byte("{}"), &m))
}

func positions(durations ...string) []models.PositionEntry {
	out := make([]models.PositionEntry, len(durations))
	for i, d := range durations {
		out[i] = models.PositionEntry{
			Name:  "Role " + d,
			Dates: models.DateRange{Duration: d},
		}
	}
	return out
}

func TestGenerate(t *testing.T) {
	doc := models.CompanyStore{
		Company: "Acme Corp",
		Employees: []models.EmployeeRecord{
			{
				URL: "https://example.com/in/ada",
				Experience: []models.ExperienceEntry{
					// Newest first: three roles make two switches.
					{Company: "Acme Corp", Positions: positions("1 yr", "2 yrs", "6 mos")},
					// Other employers never contribute.
					{Company: "Other Co", Positions: positions("1 yr", "2 yrs")},
				},
			},
			{
				URL: "https://example.com/in/grace",
				Experience: []models.ExperienceEntry{
					// A single role is not a switch.
					{Company: "Acme Corp", Positions: positions("4 yrs")},
				},
			},
		},
	}

	switches := Generate(doc)

	require.Len(t, switches, 2)
	// The earlier role of each pair is From.
	assert.Equal(t, "Role 2 yrs", switches[0].From.Name)
	assert.Equal(t, MonthCount{Months: 24, Known: true}, switches[0].From.Duration)
	assert.Equal(t, "Role 1 yr", switches[0].To.Name)
	assert.Equal(t, "https://example.com/in/ada", switches[0].URL)

	assert.Equal(t, "Role 6 mos", switches[1].From.Name)
	assert.Equal(t, "Role 2 yrs", switches[1].To.Name)
}

func TestGenerateEmptyStore(t *testing.T) {
	switches := Generate(models.CompanyStore{Company: "Acme Corp"})
	assert.NotNil(t, switches)
	assert.Empty(t, switches)
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "result.json")
	out := filepath.Join(dir, "report.json")

	doc := models.CompanyStore{
		Company: "Acme Corp",
		Employees: []models.EmployeeRecord{
			{
				URL: "https://example.com/in/ada?x=1&y=2",
				Experience: []models.ExperienceEntry{
					{Company: "Acme Corp", Positions: positions("1 yr", "mystery")},
				},
			},
		},
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(in, data, 0o644))

	require.NoError(t, Write(in, out))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)

	var switches []Switch
	require.NoError(t, json.Unmarshal(raw, &switches))
	require.Len(t, switches, 1)
	assert.Equal(t, MonthCount{}, switches[0].From.Duration)
	assert.Equal(t, MonthCount{Months: 12, Known: true}, switches[0].To.Duration)

	// Output is indented and URLs stay unescaped.
	assert.Contains(t, string(raw), "    \"from\"")
	assert.Contains(t, string(raw), "x=1&y=2")
	assert.Contains(t, string(raw), `"No duration"`)
}

func TestWriteMissingInput(t *testing.T) {
	dir := t.TempDir()
	err := Write(filepath.Join(dir, "absent.json"), filepath.Join(dir, "out.json"))
	require.Error(t, err)
}
