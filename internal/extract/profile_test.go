package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"linkroster/internal/browser"
	"linkroster/internal/browser/browsertest"
	"linkroster/internal/config"
	"linkroster/internal/models"
)

func testExtractor() *Extractor {
	return New(zap.NewNop().Sugar())
}

func TestExtractIdentityFields(t *testing.T) {
	d := browsertest.New()
	d.SetText(browser.Page, config.KeyProfileName, "Ada Lovelace")
	d.SetText(browser.Page, config.KeyProfilePosition, "Analyst")
	d.SetText(browser.Page, config.KeyProfileAbout, "Wrote the first program.\nsee less")

	rec := testExtractor().Extract(d)

	assert.Equal(t, "Ada Lovelace", rec.Name)
	assert.Equal(t, "Analyst", rec.Position)
	// The about text is stored verbatim; de-suffixing applies to role
	// descriptions only.
	assert.Equal(t, "Wrote the first program.\nsee less", rec.About)
	assert.Empty(t, rec.Experience)
}

func TestExtractMissingExperienceList(t *testing.T) {
	d := browsertest.New()
	d.SetText(browser.Page, config.KeyProfileName, "Ada Lovelace")

	rec := testExtractor().Extract(d)

	assert.Equal(t, "Ada Lovelace", rec.Name)
	assert.Empty(t, rec.Experience)
}

func TestExtractSinglePositionRow(t *testing.T) {
	d := browsertest.New()
	d.SetCount(browser.Page, config.KeyProfileExperienceRows, 1)

	row := d.Row(browser.Page, config.KeyProfileExperienceRows, 0)
	d.SetText(row, config.KeyCompanyNameOnePosition, "Acme Corp Full-time")
	d.SetText(row, config.KeyDateDuration, "2 yrs 3 mos")
	d.SetText(row, config.KeyPositionNameOnePosition, "Engineer")
	d.SetText(row, config.KeyPositionLocation, "Berlin")
	d.SetText(row, config.KeyPositionDescription, "Built things.\nsee less")
	d.SetText(row, config.KeyDateRange, "Jan 2020 – Mar 2022")

	rec := testExtractor().Extract(d)

	require.Len(t, rec.Experience, 1)
	exp := rec.Experience[0]
	assert.Equal(t, "Acme Corp", exp.Company)
	assert.Equal(t, "2 yrs 3 mos", exp.DurationSummary)
	require.Len(t, exp.Positions, 1)

	pos := exp.Positions[0]
	assert.Equal(t, "Engineer", pos.Name)
	assert.Equal(t, "Berlin", pos.Location)
	assert.Equal(t, "Built things", pos.Description)
	assert.Equal(t, models.DateRange{From: "Jan 2020", To: "Mar 2022", Duration: "2 yrs 3 mos"}, pos.Dates)
}

func TestExtractMultiPositionRow(t *testing.T) {
	d := browsertest.New()
	d.SetCount(browser.Page, config.KeyProfileExperienceRows, 1)

	row := d.Row(browser.Page, config.KeyProfileExperienceRows, 0)
	d.SetText(row, config.KeyCompanyNameManyPositions, "Acme Corp")
	d.SetText(row, config.KeyCompanySummaryDuration, "4 yrs")
	d.SetCount(row, config.KeyExperienceRoles, 2)

	first := d.Row(row, config.KeyExperienceRoles, 0)
	d.SetText(first, config.KeyPositionNameManyPositions, "Senior Engineer")
	d.SetText(first, config.KeyDateDuration, "1 yr")
	d.SetText(first, config.KeyDateRange, "Jan 2023 – Present")

	second := d.Row(row, config.KeyExperienceRoles, 1)
	d.SetText(second, config.KeyPositionNameManyPositions, "Engineer")
	d.SetText(second, config.KeyDateDuration, "3 yrs")
	d.SetText(second, config.KeyDateRange, "Jan 2020 – Jan 2023")

	rec := testExtractor().Extract(d)

	require.Len(t, rec.Experience, 1)
	exp := rec.Experience[0]
	assert.Equal(t, "Acme Corp", exp.Company)
	assert.Equal(t, "4 yrs", exp.DurationSummary)
	require.Len(t, exp.Positions, 2)

	assert.Equal(t, "Senior Engineer", exp.Positions[0].Name)
	assert.Equal(t, "1 yr", exp.Positions[0].Dates.Duration)
	assert.Equal(t, "Jan 2023", exp.Positions[0].Dates.From)
	assert.Equal(t, "Engineer", exp.Positions[1].Name)
	assert.Equal(t, "3 yrs", exp.Positions[1].Dates.Duration)
}

func TestExtractSingleShapeWinsOverMulti(t *testing.T) {
	d := browsertest.New()
	d.SetCount(browser.Page, config.KeyProfileExperienceRows, 1)

	row := d.Row(browser.Page, config.KeyProfileExperienceRows, 0)
	d.SetText(row, config.KeyCompanyNameOnePosition, "Single Co")
	d.SetText(row, config.KeyCompanyNameManyPositions, "Multi Co")
	d.SetCount(row, config.KeyExperienceRoles, 3)

	rec := testExtractor().Extract(d)

	require.Len(t, rec.Experience, 1)
	assert.Equal(t, "Single Co", rec.Experience[0].Company)
	assert.Len(t, rec.Experience[0].Positions, 1)
}

func TestExtractUnclassifiableRow(t *testing.T) {
	d := browsertest.New()
	d.SetCount(browser.Page, config.KeyProfileExperienceRows, 1)

	rec := testExtractor().Extract(d)

	require.Len(t, rec.Experience, 1)
	exp := rec.Experience[0]
	assert.Empty(t, exp.Company)
	require.Len(t, exp.Positions, 1)
	assert.Equal(t, models.PositionEntry{}, exp.Positions[0])
}

func TestExtractMultiShapeWithoutRoles(t *testing.T) {
	d := browsertest.New()
	d.SetCount(browser.Page, config.KeyProfileExperienceRows, 1)

	row := d.Row(browser.Page, config.KeyProfileExperienceRows, 0)
	d.SetText(row, config.KeyCompanyNameManyPositions, "Opaque Co")
	d.SetText(row, config.KeyCompanySummaryDuration, "2 yrs")

	rec := testExtractor().Extract(d)

	require.Len(t, rec.Experience, 1)
	exp := rec.Experience[0]
	assert.Equal(t, "Opaque Co", exp.Company)
	assert.Equal(t, "2 yrs", exp.DurationSummary)
	require.Len(t, exp.Positions, 1)
	assert.Equal(t, models.PositionEntry{}, exp.Positions[0])
}

func TestExtractExpandsControlsWhenPresent(t *testing.T) {
	d := browsertest.New()
	d.SetClickable(browser.Page, config.KeyProfileAboutShowMore)
	d.SetClickable(browser.Page, config.KeyProfileShowMoreExperience)
	d.SetCount(browser.Page, config.KeyProfileExperienceRows, 1)

	row := d.Row(browser.Page, config.KeyProfileExperienceRows, 0)
	d.SetClickable(row, config.KeyProfileShowMoreRole)
	d.SetText(row, config.KeyCompanyNameOnePosition, "Acme Corp")

	testExtractor().Extract(d)

	assert.Contains(t, d.Clicked, browsertest.At(browser.Page, config.KeyProfileAboutShowMore))
	assert.Contains(t, d.Clicked, browsertest.At(browser.Page, config.KeyProfileShowMoreExperience))
	assert.Contains(t, d.Clicked, browsertest.At(row, config.KeyProfileShowMoreRole))
}
