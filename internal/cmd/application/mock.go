package application

import (
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
//
// Example Usage:
//
//	mock := &application.Mock{
//	    SettingsFunc: func() (*application.Settings, error) {
//	        return &application.Settings{BakabooruAPI: srv.URL}, nil
//	    },
//	}
//	cmd := migrate.NewCommand(mock)
//	// ... test command
type Mock struct {
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	NoColorFunc      func() bool
	ViperFunc        func() *viper.Viper
	SettingsFunc     func() (*Settings, error)
	VersionFunc      func() string
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// NoColor returns the mock function's value or true.
func (m *Mock) NoColor() bool {
	if m.NoColorFunc != nil {
		return m.NoColorFunc()
	}
	return true
}

// Viper returns a config store using the mock function or a fresh one.
func (m *Mock) Viper() *viper.Viper {
	if m.ViperFunc != nil {
		return m.ViperFunc()
	}
	return viper.New()
}

// Settings returns settings using the mock function or settings read from
// an empty config store.
func (m *Mock) Settings() (*Settings, error) {
	if m.SettingsFunc != nil {
		return m.SettingsFunc()
	}
	return SettingsFromViper(viper.New())
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Ensure Mock implements Application at compile time.
var _ Application = (*Mock)(nil)
