// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package sensors

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"unicode/utf8"

	"github.com/geoffholden/sensorlog/data"
	"github.com/geoffholden/sensorlog/parser"
)

// DefaultBinary is where lm-sensors installs the sensors utility.
const DefaultBinary = "/usr/bin/sensors"

func init() {
	RegisterSource("lm-sensors", func(config Config) Source {
		path := config.Binary
		if path == "" {
			path = DefaultBinary
		}
		return &Command{Path: path}
	})
}

// Command runs an executable and parses its standard output as lm-sensors
// text.
type Command struct {
	Path string
	Args []string
}

func (c *Command) Read(ctx context.Context) ([]data.Reading, error) {
	out, err := exec.CommandContext(ctx, c.Path, c.Args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%s: %w: %s", c.Path, err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("%s: %w", c.Path, err)
	}

	if !utf8.Valid(out) {
		return nil, fmt.Errorf("%s: output is not valid UTF-8", c.Path)
	}

	return parser.Parse(string(out)), nil
}
