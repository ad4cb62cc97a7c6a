// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

// Package sensors provides the sources a poll cycle reads readings from.
package sensors

import (
	"context"
	"fmt"
	"sort"

	"github.com/geoffholden/sensorlog/data"
)

// Source produces the readings of one poll cycle.
type Source interface {
	Read(ctx context.Context) ([]data.Reading, error)
}

// Config carries the settings a Factory may need.
type Config struct {
	// Binary is the executable for command based sources.
	Binary string
}

type Factory func(config Config) Source

var sources map[string]Factory

func RegisterSource(name string, factory Factory) {
	if nil == sources {
		sources = make(map[string]Factory)
	}
	sources[name] = factory
}

// Sources lists the registered source names.
func Sources() []string {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func NewSource(name string, config Config) (Source, error) {
	factory, ok := sources[name]
	if !ok {
		return nil, fmt.Errorf("unknown sensor source %q", name)
	}
	return factory(config), nil
}
