// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

// Package parser turns the text output of lm-sensors into readings.
//
// The output is a sequence of device sections separated by blank lines.
// The first line of a section names the device; every following line of
// the form "label: value units [annotations]" is one reading. Lines that
// don't look like that are skipped.
package parser

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/geoffholden/sensorlog/data"
)

var metricLine = regexp.MustCompile(`^(?P<label>[^:]+):\s+(?P<value>[+-]?\d+(?:\.\d+)?)\s*(?P<units>[^\d\s]+)`)

type state int

const (
	noDevice state = iota
	inDevice
)

// machine holds the state of one parse. It is never shared between calls.
type machine struct {
	state    state
	device   string
	readings []data.Reading
}

func (m *machine) feed(line string) {
	line = strings.TrimSuffix(line, "\r")

	switch m.state {
	case noDevice:
		// A line of spaces can't name a device.
		if strings.TrimSpace(line) == "" {
			return
		}
		m.device = line
		m.state = inDevice
	case inDevice:
		// Only an empty line closes a section. Anything else is a
		// candidate metric.
		if line == "" {
			m.device = ""
			m.state = noDevice
			return
		}
		if r, ok := parseMetric(m.device, line); ok {
			m.readings = append(m.readings, r)
		}
	}
}

func parseMetric(device string, line string) (data.Reading, bool) {
	match := metricLine.FindStringSubmatch(line)
	if match == nil {
		return data.Reading{}, false
	}

	value, err := strconv.ParseFloat(match[2], 64)
	if err != nil {
		panic("parser: matched value " + strconv.Quote(match[2]) + " is not a number: " + err.Error())
	}

	return data.Reading{
		Device: device,
		Label:  strings.TrimSpace(match[1]),
		Value:  value,
		Units:  match[3],
	}, true
}

// Parse returns the readings found in text, in the order they appear.
func Parse(text string) []data.Reading {
	var m machine
	for _, line := range strings.Split(text, "\n") {
		m.feed(line)
	}
	return m.readings
}

// ParseReader is Parse over a stream. Lines may be of any length. It only
// fails if reading fails.
func ParseReader(r io.Reader) ([]data.Reading, error) {
	var m machine
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			m.feed(strings.TrimSuffix(line, "\n"))
		}
		if err == io.EOF {
			return m.readings, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
