package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"linkroster/internal/auth"
	"linkroster/internal/browser"
	"linkroster/internal/config"
	"linkroster/internal/crawl"
	"linkroster/internal/extract"
	"linkroster/internal/logger"
	"linkroster/internal/store"
)

var crawlFlags struct {
	url         string
	selectors   string
	out         string
	logFile     string
	credentials string
	profileDir  string
	headless    bool
	page        int
	timeout     time.Duration
}

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Crawl a company roster or a single profile into a JSON store",
	RunE:  runCrawl,
}

func init() {
	f := crawlCmd.Flags()
	f.StringVar(&crawlFlags.url, "url", "", "company or profile URL (required)")
	f.StringVar(&crawlFlags.selectors, "selectors", "selectors.json", "selector map file")
	f.StringVar(&crawlFlags.out, "out", "result.json", "output store file")
	f.StringVar(&crawlFlags.logFile, "log", "out.log", "log file (empty to disable)")
	f.StringVar(&crawlFlags.credentials, "credentials", "", "credentials JSON file; falls back to the environment")
	f.StringVar(&crawlFlags.profileDir, "profile-dir", "chrome-data", "browser profile dir persisting session cookies")
	f.BoolVar(&crawlFlags.headless, "headless", true, "run the browser headless")
	f.IntVar(&crawlFlags.page, "page", 0, "start pagination page (0 = first)")
	f.DurationVar(&crawlFlags.timeout, "timeout", 0, "overall run timeout (0 = none)")
	_ = crawlCmd.MarkFlagRequired("url")
}

func runCrawl(cmd *cobra.Command, args []string) error {
	log, err := logger.New(crawlFlags.logFile, verbose)
	if err != nil {
		return errors.Wrap(err, "opening log file")
	}
	defer log.Sync()

	sel, err := config.LoadSelectors(crawlFlags.selectors)
	if err != nil {
		return err
	}
	creds, err := config.LoadCredentials(crawlFlags.credentials)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if crawlFlags.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, crawlFlags.timeout)
		defer cancel()
	}

	sess, shutdown, err := browser.NewSession(ctx, sel, log, browser.Options{
		Headless:    crawlFlags.headless,
		UserDataDir: crawlFlags.profileDir,
	})
	if err != nil {
		return err
	}
	defer shutdown()

	st := store.New(crawlFlags.out)
	flow := auth.New(sess, creds, promptVerificationCode, log)
	crawler := crawl.New(sess, st, flow, extract.New(log), log)
	crawler.StartPage = crawlFlags.page

	if err := crawler.Run(crawlFlags.url); err != nil {
		return err
	}
	log.Infow("done", "out", crawlFlags.out)
	return nil
}

// promptVerificationCode asks the operator for the one-time code sent
// by email when the site flags the login as suspicious.
func promptVerificationCode() (string, error) {
	fmt.Print("A verification code was sent to your email address. Enter it to finish signing in: ")
	code, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", errors.Wrap(err, "reading verification code")
	}
	return strings.TrimSpace(code), nil
}
