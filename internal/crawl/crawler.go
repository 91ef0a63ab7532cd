package crawl

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"linkroster/internal/auth"
	"linkroster/internal/browser"
	"linkroster/internal/config"
	"linkroster/internal/store"
)

// URL path markers deciding the crawl mode.
const (
	companyMarker = "/company/"
	profileMarker = "/in/"
)

// Crawler is the top-level driver: authenticate once, then either walk
// a company's employee roster or extract a single profile.
type Crawler struct {
	dom       browser.DOM
	store     *store.Store
	auth      *auth.Flow
	extractor ProfileReader
	log       *zap.SugaredLogger

	// StartPage, when > 0, jumps the employee listing to that
	// pagination page before walking.
	StartPage int
}

func New(d browser.DOM, st *store.Store, fl *auth.Flow, ex ProfileReader, log *zap.SugaredLogger) *Crawler {
	return &Crawler{dom: d, store: st, auth: fl, extractor: ex, log: log}
}

// Run crawls targetURL. Company and single-profile paths are the only
// supported shapes.
func (c *Crawler) Run(targetURL string) error {
	c.log.Infow("opening target", "url", targetURL)
	if err := c.dom.Navigate(targetURL); err != nil {
		return err
	}
	c.dom.Pause()

	if _, err := c.auth.Run(); err != nil {
		return errors.Wrap(err, "authentication failed")
	}
	c.log.Info("signed in (or already authorized via saved cookies)")
	c.dom.Pause()

	switch {
	case strings.Contains(targetURL, companyMarker):
		return c.crawlCompany()
	case strings.Contains(targetURL, profileMarker):
		return c.crawlProfile(targetURL)
	default:
		return errors.Newf("unsupported URL %s: expected a %s or %s path", targetURL, companyMarker, profileMarker)
	}
}

func (c *Crawler) crawlCompany() error {
	name, ok := c.dom.Text(browser.Page, config.KeyCompanyName).Get()
	if !ok {
		return errors.New("company name not found")
	}
	c.log.Infow("crawling company roster", "company", name)

	if err := c.store.Init(name); err != nil {
		return err
	}

	if !c.dom.Click(browser.Page, config.KeyLinkToAllEmployees) {
		return errors.New("all-employees link not found")
	}
	c.dom.Pause()

	if c.StartPage > 0 {
		current, err := c.dom.Location()
		if err != nil {
			return err
		}
		target := fmt.Sprintf("%s&page=%d", current, c.StartPage)
		c.log.Infow("jumping to pagination page", "page", c.StartPage, "url", target)
		if err := c.dom.Navigate(target); err != nil {
			return err
		}
		c.dom.Pause()
	}

	stats, err := NewWalker(c.dom, c.store, c.extractor, c.log).Run()
	c.log.Infow("walk finished",
		"pages", stats.Pages,
		"visited", stats.Visited,
		"skipped", stats.Skipped,
		"last_page", stats.LastPage)
	return err
}

// crawlProfile extracts the current page and upserts it by URL: re-runs
// against a known profile refresh that one record and leave the rest of
// the store untouched.
func (c *Crawler) crawlProfile(targetURL string) error {
	c.log.Info("target is a single profile")
	if err := c.store.Init(""); err != nil {
		return err
	}
	rec := c.extractor.Extract(c.dom)
	rec.URL = targetURL
	if err := c.store.Upsert(rec); err != nil {
		return err
	}
	c.log.Infow("profile stored", "name", rec.Name, "url", targetURL)
	return nil
}
