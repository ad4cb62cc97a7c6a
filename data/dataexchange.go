// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package data

import "time"

// Reading is a single metric line of one sensor device.
type Reading struct {
	Device string  `json:"device"`
	Label  string  `json:"label"`
	Value  float64 `json:"value"`
	Units  string  `json:"units"`
}

// Batch is everything read in one poll cycle. All readings share TimeStamp.
type Batch struct {
	TimeStamp time.Time `json:"timestamp"`
	Readings  []Reading `json:"readings"`
}

// TimeLayout is RFC3339 with a fixed-width fraction, so that stored
// timestamps sort as text in the same order as in time.
const TimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTime renders t in UTC using TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}
