package application

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/boorusync"
	"github.com/agentstation/boorusync/pkg/errors"
)

func TestParseTimeout(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"60", time.Minute},
		{"1.5", 1500 * time.Millisecond},
		{"90s", 90 * time.Second},
		{"2m", 2 * time.Minute},
		{" 1m0s ", time.Minute},
	}
	for _, tt := range tests {
		got, err := ParseTimeout(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseTimeout("soon")
	assert.True(t, errors.IsConfigError(err))
}

func TestSettingsFromViper(t *testing.T) {
	v := viper.New()
	v.Set(KeyBakabooruAPI, " http://baka.local/api ")
	v.Set(KeyOxibooruAPI, "https://oxi.local/api")
	v.Set(KeyOxibooruAuthHeader, "Token abc")
	v.Set(KeyPageSize, 25)
	v.Set(KeyStartPage, "3")
	v.Set(KeyMaxPosts, 10)
	v.Set(KeyMaxSimilarDistance, "0.1")
	v.Set(KeyDryRun, "true")
	v.Set(KeyTimeout, "30")
	v.Set(KeyDJXLPath, "/opt/djxl")

	s, err := SettingsFromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "http://baka.local/api", s.BakabooruAPI)
	assert.Equal(t, "https://oxi.local/api", s.OxibooruAPI)
	assert.Equal(t, "Token abc", s.OxibooruAuthHeader)
	assert.Equal(t, 25, s.PageSize)
	assert.Equal(t, 3, s.StartPage)
	assert.Equal(t, 10, s.MaxPosts)
	assert.InDelta(t, 0.1, s.MaxSimilarDistance, 1e-9)
	assert.True(t, s.DryRun)
	assert.False(t, s.FailFast)
	assert.Equal(t, 30*time.Second, s.Timeout)
	assert.Equal(t, "/opt/djxl", s.DJXLPath)
}

func TestSettingsFromViperRejectsMistypedValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{KeyMaxPosts, "abc"},
		{KeyPageSize, "ten"},
		{KeyStartPage, "1.5x"},
		{KeyMaxSimilarDistance, "close"},
		{KeyDryRun, "maybe"},
		{KeyFailFast, "sometimes"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v := viper.New()
			v.Set(KeyTimeout, "60")
			v.Set(tt.key, tt.value)

			_, err := SettingsFromViper(v)
			require.Error(t, err)
			assert.True(t, errors.IsConfigError(err))
			assert.Contains(t, err.Error(), tt.key)
			assert.Contains(t, err.Error(), tt.value)
		})
	}
}

func TestSettingsMigrateOptions(t *testing.T) {
	s := &Settings{
		PageSize:           50,
		StartPage:          2,
		MaxPosts:           7,
		MaxSimilarDistance: 0.2,
		DryRun:             true,
		FailFast:           true,
		BakabooruUsername:  "admin",
		BakabooruPassword:  "secret",
		Timeout:            time.Second,
	}

	opts := boorusync.Defaults().Apply(s.MigrateOptions()...)
	require.NoError(t, opts.Validate())
	assert.Equal(t, 50, opts.PageSize)
	assert.Equal(t, 2, opts.StartPage)
	assert.Equal(t, 7, opts.MaxPosts)
	assert.True(t, opts.DryRun)
	assert.True(t, opts.FailFast)
	assert.True(t, opts.HasCredentials())
	assert.Equal(t, time.Second, opts.Timeout)
}
