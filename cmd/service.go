// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/kardianos/service"
	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"
)

// serviceCmd represents the service command
var serviceCmd = &cobra.Command{
	Use:   "service <action>",
	Short: "Run as a system service",
	Long: `Installs, removes and controls sensorlog as a system service
(systemd, launchd, Windows services, ...). The installed service records with
the flags given here. "run" is what the service manager invokes.`,
	ValidArgs: append(service.ControlAction[:], "run"),
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE:      serviceControl,
}

func init() {
	RootCmd.AddCommand(serviceCmd)
	serviceCmd.Flags().AddFlagSet(RootCmd.Flags())
}

// program runs the recorder under a service manager.
type program struct {
	cancel context.CancelFunc
	done   chan error
}

func (p *program) Start(s service.Service) error {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan error, 1)

	go func() {
		err := runRecorder(ctx)
		p.done <- err
		if err != nil {
			jww.FATAL.Println(err)
			os.Exit(-1)
		}
	}()
	return nil
}

func (p *program) Stop(s service.Service) error {
	p.cancel()
	return <-p.done
}

func serviceConfig() (*service.Config, error) {
	database := viper.GetString("database-path")
	if viper.GetString("dbDriver") == "sqlite3" {
		abs, err := filepath.Abs(database)
		if err != nil {
			return nil, err
		}
		database = abs
	}

	args := []string{
		"--sensors-path", viper.GetString("sensors-path"),
		"--database-path", database,
		"--dbDriver", viper.GetString("dbDriver"),
		"--poll-interval", strconv.Itoa(viper.GetInt("poll-interval")),
		"--source", viper.GetString("source"),
	}
	for _, name := range []string{"broker", "topic", "metrics-address", "log-file"} {
		if value := viper.GetString(name); value != "" {
			args = append(args, "--"+name, value)
		}
	}
	if used := viper.ConfigFileUsed(); used != "" {
		args = append(args, "--config", used)
	}

	return &service.Config{
		Name:        "sensorlog",
		DisplayName: "Sensor Logger",
		Description: "Records hardware sensor readings into a database.",
		Arguments:   args,
	}, nil
}

func serviceControl(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	config, err := serviceConfig()
	if err != nil {
		return err
	}

	s, err := service.New(&program{}, config)
	if err != nil {
		return err
	}

	if args[0] == "run" {
		return s.Run()
	}

	if err := service.Control(s, args[0]); err != nil {
		return fmt.Errorf("service %s: %w", args[0], err)
	}
	jww.INFO.Printf("Service action '%s' executed successfully.", args[0])
	return nil
}
