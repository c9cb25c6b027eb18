// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package log builds the application logger.
package log

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/paper-tracker/pkg/types"
)

// New returns a logger for cfg. The "prod" env logs JSON at info level;
// any other env logs text at debug level. cfg.Level, when set, replaces
// the env-derived level.
func New(cfg types.LogConfig, out io.Writer) (*logrus.Logger, error) {
	l := logrus.New()
	l.Out = out

	if cfg.Env == "prod" {
		l.Formatter = &logrus.JSONFormatter{}
		l.Level = logrus.InfoLevel
	} else {
		l.Formatter = &logrus.TextFormatter{}
		l.Level = logrus.DebugLevel
	}

	if cfg.Level != "" {
		lvl, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("parsing log level: %w", err)
		}
		l.Level = lvl
	}
	return l, nil
}
