// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

// Package sampler runs the poll cycle: read a source, stamp the readings,
// hand them to every sink, sleep, repeat.
package sampler

import (
	"context"
	"errors"
	"fmt"
	"time"

	jww "github.com/spf13/jwalterweatherman"

	"github.com/geoffholden/sensorlog/data"
	"github.com/geoffholden/sensorlog/sensors"
)

var (
	// ErrSource marks a poll that could not obtain readings.
	ErrSource = errors.New("sensor source failed")
	// ErrStore marks a batch a sink could not take.
	ErrStore = errors.New("storing readings failed")
)

// Sink receives every batch. The store, the MQTT publisher and the metrics
// collector are sinks.
type Sink interface {
	Store(batch data.Batch) error
}

type Sampler struct {
	Source   sensors.Source
	Sinks    []Sink
	Interval time.Duration

	// Clock defaults to time.Now.
	Clock func() time.Time
}

func (s *Sampler) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock().UTC()
}

// Poll runs a single cycle.
func (s *Sampler) Poll(ctx context.Context) (data.Batch, error) {
	readings, err := s.Source.Read(ctx)
	if err != nil {
		return data.Batch{}, fmt.Errorf("%w: %w", ErrSource, err)
	}

	batch := data.Batch{TimeStamp: s.now(), Readings: readings}
	for _, sink := range s.Sinks {
		if err := sink.Store(batch); err != nil {
			return batch, fmt.Errorf("%w: %w", ErrStore, err)
		}
	}

	jww.DEBUG.Printf("Stored %d readings at %s", len(readings), data.FormatTime(batch.TimeStamp))
	return batch, nil
}

// Run polls every Interval until ctx is done or a cycle fails. A cancelled
// context is a clean stop and returns nil.
func (s *Sampler) Run(ctx context.Context) error {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}

		_, err := s.Poll(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return err
		}
		timer.Reset(s.Interval)
	}
}
