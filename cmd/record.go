// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package cmd

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"

	"github.com/geoffholden/sensorlog/data"
	"github.com/geoffholden/sensorlog/metrics"
	"github.com/geoffholden/sensorlog/publish"
	"github.com/geoffholden/sensorlog/sampler"
	"github.com/geoffholden/sensorlog/sensors"
)

func record(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runRecorder(ctx)
}

// maxInterval is the largest number of seconds a time.Duration can hold.
const maxInterval = math.MaxInt64 / int64(time.Second)

func pollInterval(seconds int) (time.Duration, error) {
	if seconds <= 0 || int64(seconds) > maxInterval {
		return 0, fmt.Errorf("poll interval must be between 1 and %d seconds, got %d", maxInterval, seconds)
	}
	return time.Duration(seconds) * time.Second, nil
}

// runRecorder wires the source and sinks from the configuration and polls
// until ctx is done or something fails.
func runRecorder(ctx context.Context) error {
	interval, err := pollInterval(viper.GetInt("poll-interval"))
	if err != nil {
		return err
	}

	source, err := sensors.NewSource(viper.GetString("source"), sensors.Config{
		Binary: viper.GetString("sensors-path"),
	})
	if err != nil {
		return err
	}

	db, err := data.OpenDatabase(viper.GetString("dbDriver"), viper.GetString("database-path"))
	if err != nil {
		return err
	}
	defer db.Close()

	sinks := []sampler.Sink{db}

	if broker := viper.GetString("broker"); broker != "" {
		publisher, err := publish.Connect(broker, viper.GetString("topic"))
		if err != nil {
			return err
		}
		defer publisher.Close()
		sinks = append(sinks, publisher)
	}

	if address := viper.GetString("metrics-address"); address != "" {
		collector := metrics.NewCollector()
		listener, err := collector.Serve(address)
		if err != nil {
			return err
		}
		defer listener.Close()
		sinks = append(sinks, collector)
	}

	s := &sampler.Sampler{
		Source:   source,
		Sinks:    sinks,
		Interval: interval,
	}

	jww.INFO.Printf("Recording %s every %s into %s", viper.GetString("source"), interval, viper.GetString("database-path"))
	if err := s.Run(ctx); err != nil {
		return err
	}
	jww.INFO.Println("Stopped")
	return nil
}
