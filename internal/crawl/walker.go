// Package crawl contains the employee-list walker and the top-level
// orchestrator.
package crawl

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"linkroster/internal/browser"
	"linkroster/internal/config"
	"linkroster/internal/models"
	"linkroster/internal/store"
)

// restrictedNames are the localized placeholder names shown for
// limited-visibility profiles. Those rows carry no usable URL.
var restrictedNames = map[string]bool{
	"LinkedIn Member":   true,
	"Участник LinkedIn": true,
}

// ProfileReader produces a record from the page a DOM is bound to.
type ProfileReader interface {
	Extract(d browser.DOM) models.EmployeeRecord
}

// Walker pages through the employee listing, opening a tab per profile
// that is not yet in the store. There is no page cap: the crawl ends
// when the next control reports disabled.
type Walker struct {
	dom       browser.DOM
	store     *store.Store
	extractor ProfileReader
	log       *zap.SugaredLogger
}

func NewWalker(d browser.DOM, st *store.Store, ex ProfileReader, log *zap.SugaredLogger) *Walker {
	return &Walker{dom: d, store: st, extractor: ex, log: log}
}

// Stats summarizes one walk.
type Stats struct {
	Pages    int
	Visited  int
	Skipped  int
	LastPage bool
}

// Run walks pages until the next control is disabled or a load-bearing
// control goes missing.
func (w *Walker) Run() (Stats, error) {
	var stats Stats
	for {
		stats.Pages++

		// Scrolling to the footer forces the lazily rendered rows to
		// materialize before we read them.
		if !w.dom.ScrollTo(browser.Page, config.KeyGlobalFooter) {
			return stats, errors.New("page footer not found, cannot materialize employee list")
		}
		if page, ok := w.dom.Text(browser.Page, config.KeyPaginationCurrent).Get(); ok {
			w.log.Infow("employee listing page", "page", page)
		}

		rows, ok := w.dom.Count(browser.Page, config.KeyProfilesList).Get()
		if !ok {
			return stats, errors.New("employee list container not found")
		}
		for i := 0; i < rows; i++ {
			row := w.dom.Row(browser.Page, config.KeyProfilesList, i)
			w.dom.Reveal(row)
			if err := w.visit(row, &stats); err != nil {
				return stats, err
			}
		}

		enabled, ok := w.dom.Enabled(browser.Page, config.KeyPaginationNext).Get()
		if !ok {
			return stats, errors.New("pagination next control not found")
		}
		if !enabled {
			w.log.Info("pagination next disabled, assuming last page")
			stats.LastPage = true
			return stats, nil
		}
		if !w.dom.Click(browser.Page, config.KeyPaginationNext) {
			// The control vanished between the probe and the click.
			w.log.Warn("pagination next disappeared before click, stopping")
			stats.LastPage = true
			return stats, nil
		}
		w.dom.Pause()
	}
}

// visit handles one listing row: filter, dedup, open tab, extract,
// persist. Only storage and driver faults around the tab cycle escalate;
// a row without a profile link is skipped (the listing pads with
// upsell rows that carry no link).
func (w *Walker) visit(row browser.Scope, stats *Stats) error {
	links, ok := w.dom.Count(row, config.KeyProfileLink).Get()
	if !ok || links == 0 {
		w.log.Info("listing row has no profile link, skipping")
		stats.Skipped++
		return nil
	}
	link := w.dom.Row(row, config.KeyProfileLink, 0)

	actor, ok := w.dom.Text(link, config.KeyProfileLinkActorName).Get()
	if !ok {
		return errors.New("actor name not found in employee list")
	}
	headline := w.dom.Text(row, config.KeyProfileLinkPositionName).Or("")

	if restrictedNames[actor] {
		w.log.Infow("profile has limited visibility, skipping", "headline", headline)
		stats.Skipped++
		return nil
	}

	href, ok := w.dom.Attr(row, config.KeyProfileLink, "href").Get()
	if !ok || href == "" {
		w.log.Infow("profile link has no href, skipping", "actor", actor)
		stats.Skipped++
		return nil
	}

	seen, err := w.store.Contains(href)
	if err != nil {
		return err
	}
	if seen {
		w.log.Infow("already collected, skipping", "url", href)
		stats.Skipped++
		return nil
	}

	w.log.Infow("parsing profile", "actor", actor, "url", href)
	tab, closeTab, err := w.dom.OpenTab(href)
	if err != nil {
		w.log.Warnw("could not open profile tab, skipping", "url", href, "error", err)
		stats.Skipped++
		return nil
	}
	tab.Pause()
	rec := w.extractor.Extract(tab)
	rec.URL = href
	closeTab()

	if err := w.store.Append(rec); err != nil {
		return err
	}
	stats.Visited++
	w.log.Infow("profile stored", "actor", actor, "position", rec.Position)
	return nil
}
