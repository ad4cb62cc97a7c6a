// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package units

import (
	"math"
	"testing"
	"testing/quick"
)

func floatEquals(a, b float64) bool {
	diff := math.Abs(a - b)
	m := math.Max(math.Abs(a), math.Abs(b))
	return diff <= m*1e-5
}

func TestTemperatureCelsius(t *testing.T) {
	if err := quick.Check(func(x float64) bool {
		y := NewTemperatureCelsius(x)
		return floatEquals(x, y.Celsius())
	}, nil); err != nil {
		t.Error(err)
	}
}

func TestTemperatureFahrenheit(t *testing.T) {
	if err := quick.Check(func(x float64) bool {
		y := NewTemperatureFahrenheit(x)
		return floatEquals(x, y.Fahrenheit())
	}, nil); err != nil {
		t.Error(err)
	}
}

func TestTemperatureKelvin(t *testing.T) {
	if err := quick.Check(func(x float64) bool {
		y := NewTemperatureKelvin(x)
		return floatEquals(x, y.Kelvin())
	}, nil); err != nil {
		t.Error(err)
	}
}

func TestTemperatureGet(t *testing.T) {
	temp := NewTemperatureCelsius(0)

	value, err := temp.Get("C")
	if err != nil {
		t.Fatal(err)
	}
	if !floatEquals(value, 0) {
		t.Fatal("Value should be 0")
	}

	value, err = temp.Get("F")
	if err != nil {
		t.Fatal(err)
	}
	if !floatEquals(value, 32) {
		t.Fatal("Value should be 32")
	}

	value, err = temp.Get("K")
	if err != nil {
		t.Fatal(err)
	}
	if !floatEquals(value, 273.15) {
		t.Fatal("Value should be 273.15")
	}

	value, err = temp.Get("M")
	if err == nil {
		t.Fatal("Invalid unit should give an error")
	}
}

func TestNewTemperature(t *testing.T) {
	tests := []struct {
		token   string
		value   float64
		celsius float64
		ok      bool
	}{
		{"°C", 45, 45, true},
		{"C", 45, 45, true},
		{"°F", 32, 0, true},
		{"K", 273.15, 0, true},
		{"RPM", 1200, 0, false},
		{"V", 1.02, 0, false},
	}
	for _, tt := range tests {
		temp, ok := NewTemperature(tt.value, tt.token)
		if ok != tt.ok {
			t.Errorf("%q: ok = %v, want %v", tt.token, ok, tt.ok)
			continue
		}
		if ok && !floatEquals(temp.Celsius(), tt.celsius) {
			t.Errorf("%q: got %v°C, want %v°C", tt.token, temp.Celsius(), tt.celsius)
		}
	}
}

func TestConvertTemperature(t *testing.T) {
	value, symbol, err := ConvertTemperature(100, "°C", "F")
	if err != nil {
		t.Fatal(err)
	}
	if !floatEquals(value, 212) || symbol != "°F" {
		t.Errorf("got %v %s, want 212 °F", value, symbol)
	}

	value, symbol, err = ConvertTemperature(1200, "RPM", "F")
	if err != nil {
		t.Fatal(err)
	}
	if value != 1200 || symbol != "RPM" {
		t.Errorf("non-temperature changed: %v %s", value, symbol)
	}

	if _, _, err := ConvertTemperature(45, "°C", "M"); err == nil {
		t.Error("invalid unit should give an error")
	}
}
