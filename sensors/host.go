package sensors

import (
	"context"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
	jww "github.com/spf13/jwalterweatherman"

	"github.com/geoffholden/sensorlog/data"
)

func init() {
	RegisterSource("host", func(config Config) Source {
		return Host{}
	})
}

// Host reads temperatures straight from the kernel through gopsutil, for
// machines without the sensors utility.
type Host struct{}

func (Host) Read(ctx context.Context) ([]data.Reading, error) {
	temps, err := host.SensorsTemperaturesWithContext(ctx)
	if err != nil {
		if len(temps) == 0 {
			return nil, err
		}
		jww.WARN.Println("partial temperature read:", err)
	}

	readings := make([]data.Reading, 0, len(temps))
	for _, t := range temps {
		device, label := splitSensorKey(t.SensorKey)
		readings = append(readings, data.Reading{
			Device: device,
			Label:  label,
			Value:  t.Temperature,
			Units:  "°C",
		})
	}
	return readings, nil
}

// splitSensorKey turns a gopsutil key such as "coretemp_core_0" into
// device "coretemp" and label "core_0".
func splitSensorKey(key string) (string, string) {
	device, label, found := strings.Cut(key, "_")
	if !found || label == "" {
		return key, key
	}
	return device, label
}
