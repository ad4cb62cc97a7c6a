// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package units

import (
	"errors"
	"strings"
)

type Temperature struct {
	celsius float64
}

func NewTemperatureCelsius(value float64) Temperature {
	return Temperature{value}
}

func NewTemperatureKelvin(value float64) Temperature {
	return Temperature{value - 273.15}
}

func NewTemperatureFahrenheit(value float64) Temperature {
	return Temperature{(value - 32) / 1.8}
}

// NewTemperature builds a Temperature from a value and the unit token
// printed next to it, such as "°C". ok is false for non-temperature units.
func NewTemperature(value float64, token string) (t Temperature, ok bool) {
	switch strings.ToLower(strings.TrimPrefix(token, "°")) {
	case "c":
		return NewTemperatureCelsius(value), true
	case "f":
		return NewTemperatureFahrenheit(value), true
	case "k":
		return NewTemperatureKelvin(value), true
	}
	return Temperature{}, false
}

func (t *Temperature) Celsius() float64 {
	return t.celsius
}

func (t *Temperature) Fahrenheit() float64 {
	return t.celsius*1.8 + 32
}

func (t *Temperature) Kelvin() float64 {
	return t.celsius + 273.15
}

func (t *Temperature) Get(unit string) (float64, error) {
	switch strings.ToLower(unit) {
	case "c", "celsius":
		return t.Celsius(), nil
	case "f", "fahrenheit":
		return t.Fahrenheit(), nil
	case "k", "kelvin":
		return t.Kelvin(), nil
	}
	return 0, errors.New("Unknown unit")
}

// Symbol returns the token sensors prints for unit.
func Symbol(unit string) (string, error) {
	switch strings.ToLower(unit) {
	case "c", "celsius":
		return "°C", nil
	case "f", "fahrenheit":
		return "°F", nil
	case "k", "kelvin":
		return "K", nil
	}
	return "", errors.New("Unknown unit")
}

// ConvertTemperature converts value, printed with token, to unit. Values
// that are not temperatures come back unchanged.
func ConvertTemperature(value float64, token string, unit string) (float64, string, error) {
	t, ok := NewTemperature(value, token)
	if !ok {
		return value, token, nil
	}
	converted, err := t.Get(unit)
	if err != nil {
		return 0, "", err
	}
	symbol, err := Symbol(unit)
	if err != nil {
		return 0, "", err
	}
	return converted, symbol, nil
}
