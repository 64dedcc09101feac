// Package application defines what CLI commands need from the boorusync
// app container. Commands accept the Application interface rather than the
// concrete app so they can be tested with Mock.
package application

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/agentstation/boorusync"
	"github.com/agentstation/boorusync/pkg/errors"
)

// Configuration keys shared by the config loader and command flags.
const (
	KeyBakabooruAPI       = "bakabooru_api"
	KeyOxibooruAPI        = "oxibooru_api"
	KeyBakabooruUsername  = "bakabooru_username"
	KeyBakabooruPassword  = "bakabooru_password"
	KeyOxibooruAuthHeader = "oxibooru_auth_header"
	KeyPageSize           = "page_size"
	KeyStartPage          = "start_page"
	KeyMaxPosts           = "max_posts"
	KeyMaxSimilarDistance = "max_similar_distance"
	KeyDryRun             = "dry_run"
	KeyFailFast           = "fail_fast"
	KeyTimeout            = "timeout"
	KeyDJXLPath           = "djxl_path"
	KeyLockDir            = "lock_dir"
)

// Application is the dependency surface commands are built against.
type Application interface {
	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the requested output format (table, json, yaml),
	// or an empty string to auto-detect.
	OutputFormat() string

	// NoColor reports whether colored terminal output is disabled.
	NoColor() bool

	// Viper returns the configuration store commands bind their flags to.
	Viper() *viper.Viper

	// Settings resolves the migration settings after flags are parsed.
	Settings() (*Settings, error)

	// Version returns the application version string.
	Version() string
}

// Settings are the resolved values a migration run is built from.
type Settings struct {
	BakabooruAPI       string
	OxibooruAPI        string
	BakabooruUsername  string
	BakabooruPassword  string
	OxibooruAuthHeader string

	PageSize           int
	StartPage          int
	MaxPosts           int
	MaxSimilarDistance float64
	DryRun             bool
	FailFast           bool
	Timeout            time.Duration

	DJXLPath string
	LockDir  string
}

// SettingsFromViper reads Settings from v. Flags, environment, config file
// and defaults are resolved by viper in that order. Values that do not
// convert to the key's type are configuration errors rather than zero.
func SettingsFromViper(v *viper.Viper) (*Settings, error) {
	timeout, err := ParseTimeout(v.GetString(KeyTimeout))
	if err != nil {
		return nil, err
	}

	s := &Settings{
		BakabooruAPI:       strings.TrimSpace(v.GetString(KeyBakabooruAPI)),
		OxibooruAPI:        strings.TrimSpace(v.GetString(KeyOxibooruAPI)),
		BakabooruUsername:  v.GetString(KeyBakabooruUsername),
		BakabooruPassword:  v.GetString(KeyBakabooruPassword),
		OxibooruAuthHeader: strings.TrimSpace(v.GetString(KeyOxibooruAuthHeader)),
		Timeout:            timeout,
		DJXLPath:           v.GetString(KeyDJXLPath),
		LockDir:            v.GetString(KeyLockDir),
	}

	ints := []struct {
		key string
		dst *int
	}{
		{KeyPageSize, &s.PageSize},
		{KeyStartPage, &s.StartPage},
		{KeyMaxPosts, &s.MaxPosts},
	}
	for _, f := range ints {
		n, err := cast.ToIntE(v.Get(f.key))
		if err != nil {
			return nil, conversionError(v, f.key, "an integer", err)
		}
		*f.dst = n
	}

	if s.MaxSimilarDistance, err = cast.ToFloat64E(v.Get(KeyMaxSimilarDistance)); err != nil {
		return nil, conversionError(v, KeyMaxSimilarDistance, "a number", err)
	}
	if s.DryRun, err = cast.ToBoolE(v.Get(KeyDryRun)); err != nil {
		return nil, conversionError(v, KeyDryRun, "a boolean", err)
	}
	if s.FailFast, err = cast.ToBoolE(v.Get(KeyFailFast)); err != nil {
		return nil, conversionError(v, KeyFailFast, "a boolean", err)
	}

	return s, nil
}

func conversionError(v *viper.Viper, key, want string, err error) error {
	return errors.NewConfigError(key, fmt.Sprintf("expected %s, got %q", want, v.GetString(key)), err)
}

// ParseTimeout accepts a Go duration ("90s", "2m") or a plain number of
// seconds.
func ParseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.NewConfigError(KeyTimeout, "expected a duration or a number of seconds, got "+strconv.Quote(s), err)
	}
	return d, nil
}

// MigrateOptions converts the settings into migration options.
func (s *Settings) MigrateOptions() []boorusync.Option {
	return []boorusync.Option{
		boorusync.WithDryRun(s.DryRun),
		boorusync.WithFailFast(s.FailFast),
		boorusync.WithPageSize(s.PageSize),
		boorusync.WithStartPage(s.StartPage),
		boorusync.WithMaxPosts(s.MaxPosts),
		boorusync.WithMaxSimilarDistance(s.MaxSimilarDistance),
		boorusync.WithCredentials(s.BakabooruUsername, s.BakabooruPassword),
		boorusync.WithTimeout(s.Timeout),
	}
}
