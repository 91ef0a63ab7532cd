// Package config loads the selector map and crawl credentials.
package config

import (
	"encoding/json"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment variables consulted when no credentials file is given.
const (
	EnvLogin    = "LINKROSTER_LOGIN"
	EnvPassword = "LINKROSTER_PASSWORD"
)

const (
	defaultDelayStart = 3
	defaultDelayStop  = 8
)

// Selectors is the immutable selector map: logical key -> XPath
// expression, plus the two integer bounds for the randomized
// inter-action delay. Loaded once at startup.
//
// A missing key is not an error: XPath returns "" and the lookup layer
// turns that into an absent result.
type Selectors struct {
	v *viper.Viper
}

// LoadSelectors reads the selector JSON file at path.
func LoadSelectors(path string) (*Selectors, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "reading selectors from %s", path)
	}
	return &Selectors{v: v}, nil
}

// XPath returns the locator expression for key, or "" when the key is
// not present in the file.
func (s *Selectors) XPath(key string) string {
	return s.v.GetString(key)
}

// DelayBounds returns the min/max whole seconds for randomized
// inter-action delays. Absent or inverted bounds fall back to defaults.
func (s *Selectors) DelayBounds() (int, int) {
	start := s.v.GetInt(keyDelayStart)
	stop := s.v.GetInt(keyDelayStop)
	if start <= 0 || stop <= 0 || stop < start {
		return defaultDelayStart, defaultDelayStop
	}
	return start, stop
}

// Credentials is the sign-in pair. The crawler never stores it.
type Credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// LoadCredentials resolves the sign-in pair. When path is not empty it
// must name a JSON file with "login" and "password" fields. Otherwise
// the environment is used, with a best-effort .env load first.
func LoadCredentials(path string) (Credentials, error) {
	if path != "" {
		return credentialsFromFile(path)
	}
	return credentialsFromEnv()
}

func credentialsFromFile(path string) (Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Credentials{}, errors.Wrapf(err, "reading credentials from %s", path)
	}
	var c Credentials
	if err := json.Unmarshal(data, &c); err != nil {
		return Credentials{}, errors.Wrapf(err, "parsing credentials from %s", path)
	}
	if c.Login == "" || c.Password == "" {
		return Credentials{}, errors.Newf("credentials file %s must set login and password", path)
	}
	return c, nil
}

func credentialsFromEnv() (Credentials, error) {
	_ = godotenv.Load()
	c := Credentials{
		Login:    os.Getenv(EnvLogin),
		Password: os.Getenv(EnvPassword),
	}
	if c.Login == "" || c.Password == "" {
		return Credentials{}, errors.Newf("set %s and %s or pass --credentials", EnvLogin, EnvPassword)
	}
	return c, nil
}
