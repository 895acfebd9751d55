// Package config loads the envresolve command's settings from ENVRESOLVE_* variables.
package config

import (
	"fmt"

	"github.com/ab0utbla-k/envresolver/convert"
	"github.com/ab0utbla-k/envresolver/internal/env"
)

type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

type Config struct {
	ListSeparator  string
	DateTimeFormat string
	Silent         bool
	Trace          bool
	LogFormat      LogFormat
}

func Load() (*Config, error) {
	return LoadFrom(env.OS)
}

// LoadFrom builds a Config from an arbitrary environment table.
func LoadFrom(lookup env.LookupFunc) (*Config, error) {
	cfg := &Config{
		ListSeparator:  env.Get(lookup, "ENVRESOLVE_LIST_SEPARATOR", convert.DefaultSeparator, env.ParseNonEmptyString),
		DateTimeFormat: env.Get(lookup, "ENVRESOLVE_DATETIME_FORMAT", convert.DefaultDateTimeFormat, env.ParseNonEmptyString),
	}

	var err error
	if cfg.Silent, err = optionalBool(lookup, "ENVRESOLVE_SILENT"); err != nil {
		return nil, err
	}
	if cfg.Trace, err = optionalBool(lookup, "ENVRESOLVE_TRACE"); err != nil {
		return nil, err
	}

	format := env.Get(lookup, "ENVRESOLVE_LOG_FORMAT", string(LogFormatJSON), env.ParseNonEmptyString)
	switch LogFormat(format) {
	case LogFormatJSON, LogFormatText:
		cfg.LogFormat = LogFormat(format)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	return cfg, nil
}

// optionalBool is false when key is unset and an error when it is set to garbage.
func optionalBool(lookup env.LookupFunc, key string) (bool, error) {
	if _, ok := env.Value(lookup, key); !ok {
		return false, nil
	}
	return env.GetRequired(lookup, key, env.ParseBool)
}
