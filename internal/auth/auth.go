// Package auth drives sign-in. The login surface varies by session
// state and geography, so the flow is tolerant branching: probe a
// hypothesis, fall through to the next one on absence, and only stop
// when a control that is required for forward progress is missing.
package auth

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"linkroster/internal/browser"
	"linkroster/internal/config"
)

// Surface identifies which login surface the flow encountered.
type Surface int

const (
	// SurfaceNone means no challenge was present: the persisted browser
	// profile still carries a valid session.
	SurfaceNone Surface = iota
	// SurfaceModal is the floating sign-in prompt over the company page.
	SurfaceModal
	// SurfaceSignup is the full sign-up page with an inline
	// "already have an account" link.
	SurfaceSignup
)

// CodePrompt obtains an email one-time code from the operator.
type CodePrompt func() (string, error)

// Flow authenticates one session.
type Flow struct {
	dom        browser.DOM
	creds      config.Credentials
	promptCode CodePrompt
	log        *zap.SugaredLogger
}

func New(d browser.DOM, creds config.Credentials, prompt CodePrompt, log *zap.SugaredLogger) *Flow {
	return &Flow{dom: d, creds: creds, promptCode: prompt, log: log}
}

// Run takes the session from whatever the initial page shows to an
// authenticated state, or returns a terminal error.
func (f *Flow) Run() (Surface, error) {
	surface, err := f.signIn()
	if err != nil {
		return surface, err
	}
	f.dom.Pause()

	if err := f.emailVerification(); err != nil {
		return surface, err
	}

	f.dismissOverlays()
	return surface, nil
}

func (f *Flow) signIn() (Surface, error) {
	if f.dom.Click(browser.Page, config.KeyModalSignInButton) {
		f.log.Info("sign-in modal found, entering credentials")
		f.dom.Pause()
		if err := f.enterCredentials(); err != nil {
			return SurfaceModal, err
		}
		if !f.dom.Click(browser.Page, config.KeyAuthSubmitButton) &&
			!f.dom.Click(browser.Page, config.KeyAuthSubmitButtonFallback) {
			return SurfaceModal, errors.New("no submit control on sign-in modal")
		}
		return SurfaceModal, nil
	}

	if f.dom.Click(browser.Page, config.KeySignUpFormSignInLink) {
		f.log.Info("sign-up page found, following sign-in link")
		f.dom.Pause()
		if err := f.enterCredentials(); err != nil {
			return SurfaceSignup, err
		}
		if !f.dom.Click(browser.Page, config.KeyInputSubmitSignIn) {
			return SurfaceSignup, errors.New("no submit control on sign-in form")
		}
		return SurfaceSignup, nil
	}

	f.log.Info("no login surface found, assuming session cookies are still valid")
	return SurfaceNone, nil
}

func (f *Flow) enterCredentials() error {
	if err := f.dom.TypeSlowly(browser.Page, config.KeyAuthInputUsername, f.creds.Login); err != nil {
		return errors.Wrap(err, "entering login")
	}
	if err := f.dom.TypeSlowly(browser.Page, config.KeyAuthInputPassword, f.creds.Password); err != nil {
		return errors.Wrap(err, "entering password")
	}
	return nil
}

// emailVerification handles the optional one-time-code challenge shown
// after suspicious logins. The code comes from an out-of-band prompt.
func (f *Flow) emailVerification() error {
	n, ok := f.dom.Count(browser.Page, config.KeyEmailVerificationPin).Get()
	if !ok || n == 0 {
		return nil
	}
	f.log.Info("email verification challenge found")
	code, err := f.promptCode()
	if err != nil {
		return errors.Wrap(err, "obtaining verification code")
	}
	if err := f.dom.TypeSlowly(browser.Page, config.KeyEmailVerificationPin, code); err != nil {
		return errors.Wrap(err, "entering verification code")
	}
	if !f.dom.Click(browser.Page, config.KeyEmailPinSubmitButton) {
		return errors.New("verification code entered but no submit control found")
	}
	f.dom.Pause()
	return nil
}

// dismissOverlays closes the messaging drawer and any open conversation
// windows so they cannot intercept later clicks. Best-effort.
func (f *Flow) dismissOverlays() {
	if f.dom.Click(browser.Page, config.KeyMessagingModalExpanded) {
		f.log.Debug("messaging drawer closed")
	}
	if n, ok := f.dom.Count(browser.Page, config.KeyCloseConversationWindow).Get(); ok {
		for i := 0; i < n; i++ {
			if !f.dom.Click(browser.Page, config.KeyCloseConversationWindow) {
				break
			}
		}
	}
}
