// Package extract turns the DOM of a profile page into an
// EmployeeRecord. Every field read degrades to empty on absence; a row
// that cannot be classified still contributes an entry with a
// placeholder position, so a surprising page never aborts the crawl.
package extract

import (
	"go.uber.org/zap"

	"linkroster/internal/browser"
	"linkroster/internal/config"
	"linkroster/internal/models"
)

// Extractor reads one employee record from the page a DOM is bound to.
type Extractor struct {
	log *zap.SugaredLogger
}

func New(log *zap.SugaredLogger) *Extractor {
	return &Extractor{log: log}
}

// Extract reads identity fields, the about text and the experience list
// from the current page. It never fails: missing pieces come back
// empty.
func (e *Extractor) Extract(d browser.DOM) models.EmployeeRecord {
	rec := models.EmployeeRecord{Experience: []models.ExperienceEntry{}}

	rec.Name = d.Text(browser.Page, config.KeyProfileName).Or("")
	if rec.Name == "" {
		e.log.Info("profile name not found")
	}

	// Expand the about section before reading it. Short bios have no
	// control, which is the normal absent case.
	if d.Click(browser.Page, config.KeyProfileAboutShowMore) {
		e.log.Debug("expanded about section")
	}

	rec.Position = d.Text(browser.Page, config.KeyProfilePosition).Or("")
	rec.About = d.Text(browser.Page, config.KeyProfileAbout).Or("")

	if d.Click(browser.Page, config.KeyProfileShowMoreExperience) {
		e.log.Debug("expanded experience section")
	}

	rows, ok := d.Count(browser.Page, config.KeyProfileExperienceRows).Get()
	if !ok {
		e.log.Info("experience rows not found")
		return rec
	}

	for i := 0; i < rows; i++ {
		row := d.Row(browser.Page, config.KeyProfileExperienceRows, i)
		d.Reveal(row)
		if d.Click(row, config.KeyProfileShowMoreRole) {
			d.Reveal(row)
		}
		rec.Experience = append(rec.Experience, e.experienceRow(d, row))
	}
	return rec
}

// experienceRow classifies one employer block. The single-position
// shape is tried first; the multi-position shape only when the single
// company-name key is absent. Neither shape resolving still yields an
// entry with one placeholder position.
func (e *Extractor) experienceRow(d browser.DOM, row browser.Scope) models.ExperienceEntry {
	exp := models.ExperienceEntry{Positions: []models.PositionEntry{}}

	if company, ok := d.Text(row, config.KeyCompanyNameOnePosition).Get(); ok {
		exp.Company = CleanCompanyName(company)
		exp.DurationSummary = d.Text(row, config.KeyDateDuration).Or("")
		pos := e.position(d, row, config.KeyPositionNameOnePosition)
		pos.Dates.Duration = exp.DurationSummary
		exp.Positions = append(exp.Positions, pos)
		return exp
	}

	if company, ok := d.Text(row, config.KeyCompanyNameManyPositions).Get(); ok {
		exp.Company = CleanCompanyName(company)
		exp.DurationSummary = d.Text(row, config.KeyCompanySummaryDuration).Or("")

		roles, ok := d.Count(row, config.KeyExperienceRoles).Get()
		if !ok || roles == 0 {
			e.log.Infow("role list not found under multi-position employer", "company", exp.Company)
			exp.Positions = append(exp.Positions, models.PositionEntry{})
			return exp
		}
		for i := 0; i < roles; i++ {
			role := d.Row(row, config.KeyExperienceRoles, i)
			d.Reveal(role)
			pos := e.position(d, role, config.KeyPositionNameManyPositions)
			pos.Dates.Duration = d.Text(role, config.KeyDateDuration).Or("")
			exp.Positions = append(exp.Positions, pos)
		}
		return exp
	}

	e.log.Info("experience row matches neither known shape")
	exp.Positions = append(exp.Positions, models.PositionEntry{})
	return exp
}

// position reads the per-role fields shared by both shapes. The
// duration field is filled in by the caller, whose source differs per
// shape.
func (e *Extractor) position(d browser.DOM, scope browser.Scope, nameKey string) models.PositionEntry {
	return models.PositionEntry{
		Name:        d.Text(scope, nameKey).Or(""),
		Location:    d.Text(scope, config.KeyPositionLocation).Or(""),
		Description: e.description(d, scope),
		Dates:       e.dates(d, scope),
	}
}

// description expands the role description when a "show more" control
// exists, then reads and de-suffixes the text.
func (e *Extractor) description(d browser.DOM, scope browser.Scope) string {
	d.Click(scope, config.KeyPositionDescriptionShowMore)
	text, ok := d.Text(scope, config.KeyPositionDescription).Get()
	if !ok {
		return ""
	}
	return TrimSeeLess(text)
}

func (e *Extractor) dates(d browser.DOM, scope browser.Scope) models.DateRange {
	raw, ok := d.Text(scope, config.KeyDateRange).Get()
	if !ok {
		return models.DateRange{}
	}
	return SplitDateRange(raw)
}
