// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/geoffholden/sensorlog/data"
	"github.com/geoffholden/sensorlog/publish"
	"github.com/geoffholden/sensorlog/sensors"
)

var cfgFile string
var verbose bool

// This represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "sensorlog",
	Short: "Hardware sensor logger",
	Long: `sensorlog periodically reads the hardware sensors of this machine
(temperatures, fan speeds, voltages) through lm-sensors and appends every
reading, with the time it was taken, to a local database.

Without a subcommand it records until interrupted.`,
	Args:          cobra.NoArgs,
	RunE:          record,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		jww.FATAL.Println(err)
		os.Exit(-1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is sensorlog.yaml)")
	RootCmd.PersistentFlags().StringP("database-path", "d", "sensors.db", "Database file (or DSN for a server database)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	RootCmd.PersistentFlags().String("log-file", "", "Also write the log to this file, rotated")

	dbdrivers := data.DBDrivers()
	if len(dbdrivers) > 1 {
		RootCmd.PersistentFlags().String("dbDriver", "sqlite3", "Database Driver, one of ["+strings.Join(dbdrivers, ", ")+"]")
	} else {
		viper.SetDefault("dbDriver", "sqlite3")
	}

	RootCmd.Flags().StringP("sensors-path", "s", sensors.DefaultBinary, "Path to the sensors binary")
	RootCmd.Flags().IntP("poll-interval", "p", 5, "Interval in seconds between polls")
	RootCmd.Flags().String("source", "lm-sensors", "Sensor source, one of ["+strings.Join(sensors.Sources(), ", ")+"]")
	RootCmd.Flags().String("broker", "", "MQTT broker to publish readings to, e.g. tcp://localhost:1883")
	RootCmd.Flags().String("topic", publish.DefaultTopic, "MQTT topic")
	RootCmd.Flags().String("metrics-address", "", "Address to serve Prometheus metrics on, e.g. :9184")

	viper.BindPFlags(RootCmd.PersistentFlags())
	viper.BindPFlags(RootCmd.Flags())
}

// initConfig reads in config file if set.
func initConfig() {
	if cfgFile != "" { // enable ability to specify config file via flag
		viper.SetConfigFile(cfgFile)
	}

	viper.SetConfigName("sensorlog") // name of config file (without extension)
	viper.AddConfigPath("/etc/sensorlog/")
	viper.AddConfigPath("$HOME/.sensorlog/")
	viper.AddConfigPath(".")

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		jww.DEBUG.Println("Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		jww.ERROR.Println(err)
	}
}

func initLogging() {
	if verbose {
		jww.SetStdoutThreshold(jww.LevelTrace)
	}

	if filename := viper.GetString("log-file"); filename != "" {
		jww.SetLogOutput(&lumberjack.Logger{
			Filename:   filename,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
		})
		if verbose {
			jww.SetLogThreshold(jww.LevelTrace)
		} else {
			jww.SetLogThreshold(jww.LevelInfo)
		}
	}
}
