// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"fmt"
	"io"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Janitor purges expired entries from a Store on a cron schedule. Reads
// already treat expired entries as absent; purging only reclaims space.
type Janitor struct {
	cron  *cron.Cron
	store Store
	log   logrus.FieldLogger
}

// NewJanitor schedules purges using a standard cron spec or a descriptor
// such as "@every 1h". log may be nil to discard logs.
func NewJanitor(store Store, schedule string, log logrus.FieldLogger) (*Janitor, error) {
	if log == nil {
		l := logrus.New()
		l.Out = io.Discard
		log = l
	}
	j := &Janitor{cron: cron.New(), store: store, log: log}
	if _, err := j.cron.AddFunc(schedule, j.purge); err != nil {
		return nil, fmt.Errorf("parsing purge schedule %q: %w", schedule, err)
	}
	return j, nil
}

// Start runs the schedule in the background.
func (j *Janitor) Start() { j.cron.Start() }

// Stop halts the schedule and waits for a running purge to finish.
func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
}

func (j *Janitor) purge() {
	n, err := j.store.PurgeExpired(context.Background())
	if err != nil {
		j.log.WithError(err).Warn("cache purge failed")
		return
	}
	j.log.WithField("purged", n).Debug("cache purge complete")
}
