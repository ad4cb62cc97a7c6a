// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package cmd

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/geoffholden/sensorlog/data"
	"github.com/geoffholden/sensorlog/units"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print stored readings",
	Long: `Prints the readings stored in the database, oldest first.

--device and --label take SQL LIKE patterns, so "core%" matches every
label starting with "core".`,
	Args:   cobra.NoArgs,
	PreRun: bindFlags,
	RunE:   history,
}

func init() {
	RootCmd.AddCommand(historyCmd)
	queryFlags(historyCmd)
	historyCmd.Flags().String("temperature-unit", "", "Convert temperatures to C, F or K")
}

func queryFlags(cmd *cobra.Command) {
	cmd.Flags().String("since", "24h", "How far back to look, e.g. 30m, 12h, 7d")
	cmd.Flags().String("device", "%", "Device pattern")
	cmd.Flags().String("label", "%", "Label pattern")
}

var sinceFormat = regexp.MustCompile(`^([0-9]+)([mhd])$`)

// computeSince turns a span such as "7d" into the time that long before now.
func computeSince(span string, now time.Time) (time.Time, error) {
	match := sinceFormat.FindStringSubmatch(span)
	if match == nil {
		return time.Time{}, fmt.Errorf("invalid time span %q, expected a number followed by m, h or d", span)
	}

	val, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return time.Time{}, err
	}

	var mult time.Duration
	switch match[2] {
	case "m":
		mult = time.Minute
	case "h":
		mult = time.Hour
	default:
		mult = 24 * time.Hour
	}

	return now.Add(-time.Duration(val) * mult), nil
}

func queryRows(since string) ([]data.Row, error) {
	start, err := computeSince(since, time.Now())
	if err != nil {
		return nil, err
	}

	db, err := data.OpenDatabase(viper.GetString("dbDriver"), viper.GetString("database-path"))
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return db.QueryRows(start, viper.GetString("device"), viper.GetString("label"))
}

func history(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	unit := viper.GetString("temperature-unit")
	if unit != "" {
		if _, err := units.Symbol(unit); err != nil {
			return fmt.Errorf("temperature unit %q: %w", unit, err)
		}
	}

	rows, err := queryRows(viper.GetString("since"))
	if err != nil {
		return err
	}

	return printRows(cmd.OutOrStdout(), rows, unit)
}

func printRows(w io.Writer, rows []data.Row, unit string) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "DATETIME\tDEVICE\tLABEL\tVALUE\tUNITS")
	precision := -1
	if unit != "" {
		precision = 2
	}
	for _, row := range rows {
		value, symbol := row.Value, row.Units
		if unit != "" {
			var err error
			value, symbol, err = units.ConvertTemperature(row.Value, row.Units, unit)
			if err != nil {
				return err
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			row.DateTime.Local().Format(time.RFC3339),
			row.Device,
			row.Label,
			strconv.FormatFloat(value, 'f', precision, 64),
			symbol)
	}
	return tw.Flush()
}
