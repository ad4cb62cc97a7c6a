// Package metrics exposes the latest readings and poll counters in the
// Prometheus text format.
package metrics

import (
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	jww "github.com/spf13/jwalterweatherman"

	"github.com/geoffholden/sensorlog/data"
)

type Collector struct {
	registry *prometheus.Registry

	value    *prometheus.GaugeVec
	polls    prometheus.Counter
	readings prometheus.Counter
	lastPoll prometheus.Gauge

	mu       sync.Mutex
	serveErr error
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		value: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sensorlog_sensor_value",
			Help: "Last value read for a sensor.",
		}, []string{"device", "label", "units"}),
		polls: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sensorlog_polls_total",
			Help: "Completed poll cycles.",
		}),
		readings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sensorlog_readings_total",
			Help: "Readings stored since start.",
		}),
		lastPoll: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sensorlog_last_poll_timestamp_seconds",
			Help: "Unix time of the last poll.",
		}),
	}
	c.registry.MustRegister(c.value, c.polls, c.readings, c.lastPoll)
	return c
}

// Store records a batch. It fails once the server started by Serve has
// stopped.
func (c *Collector) Store(batch data.Batch) error {
	c.mu.Lock()
	err := c.serveErr
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("metrics server stopped: %w", err)
	}

	for _, r := range batch.Readings {
		c.value.WithLabelValues(r.Device, r.Label, r.Units).Set(r.Value)
	}
	c.polls.Inc()
	c.readings.Add(float64(len(batch.Readings)))
	c.lastPoll.Set(float64(batch.TimeStamp.UnixNano()) / 1e9)
	return nil
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve binds address right away, so a bad address fails at startup, and
// serves /metrics in the background. If serving fails later the next Store
// returns the error.
func (c *Collector) Serve(address string) (net.Listener, error) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, err
	}
	jww.INFO.Println("Serving metrics on", listener.Addr().String())

	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	go func() {
		err := http.Serve(listener, mux)
		jww.ERROR.Println("metrics server stopped:", err)
		c.mu.Lock()
		c.serveErr = err
		c.mu.Unlock()
	}()
	return listener, nil
}
