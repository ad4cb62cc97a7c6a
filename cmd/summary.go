// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package cmd

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/geoffholden/sensorlog/data"
)

// summaryCmd represents the summary command
var summaryCmd = &cobra.Command{
	Use:    "summary",
	Short:  "Summarise stored readings",
	Long:   `Prints the minimum, maximum and average of every sensor over a period.`,
	Args:   cobra.NoArgs,
	PreRun: bindFlags,
	RunE:   summary,
}

func init() {
	RootCmd.AddCommand(summaryCmd)
	queryFlags(summaryCmd)
}

type mapKey struct {
	Device string
	Label  string
	Units  string
}

func summary(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	rows, err := queryRows(viper.GetString("since"))
	if err != nil {
		return err
	}

	return printSummary(cmd.OutOrStdout(), aggregate(rows))
}

func aggregate(rows []data.Row) map[mapKey][]float64 {
	thedata := make(map[mapKey][]float64)
	for _, row := range rows {
		key := mapKey{
			Device: row.Device,
			Label:  row.Label,
			Units:  row.Units,
		}
		thedata[key] = append(thedata[key], row.Value)
	}
	return thedata
}

func printSummary(w io.Writer, thedata map[mapKey][]float64) error {
	keys := make([]mapKey, 0, len(thedata))
	for key := range thedata {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Device != keys[j].Device {
			return keys[i].Device < keys[j].Device
		}
		if keys[i].Label != keys[j].Label {
			return keys[i].Label < keys[j].Label
		}
		return keys[i].Units < keys[j].Units
	})

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "DEVICE\tLABEL\tSAMPLES\tMIN\tMAX\tAVG\tUNITS")
	for _, key := range keys {
		slice := thedata[key]
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\t%.2f\t%.2f\t%s\n",
			key.Device, key.Label, len(slice),
			minimum(slice), maximum(slice), mean(slice),
			key.Units)
	}
	return tw.Flush()
}

func minimum(d []float64) float64 {
	result := d[0]
	for _, x := range d {
		if x < result {
			result = x
		}
	}
	return result
}

func maximum(d []float64) float64 {
	result := d[0]
	for _, x := range d {
		if x > result {
			result = x
		}
	}
	return result
}

func mean(d []float64) float64 {
	sum := 0.0
	for _, x := range d {
		sum += x
	}
	return sum / float64(len(d))
}
