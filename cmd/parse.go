// Copyright © 2016 Geoff Holden (geoff@geoffholden.com)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/geoffholden/sensorlog/data"
	"github.com/geoffholden/sensorlog/parser"
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse captured sensors output",
	Long: `Parses the text output of the sensors utility, read from a file or
from standard input, and prints the readings found. Nothing is stored.`,
	Args:   cobra.MaximumNArgs(1),
	PreRun: bindFlags,
	RunE:   parse,
}

func init() {
	RootCmd.AddCommand(parseCmd)

	parseCmd.Flags().String("format", "table", "Output format, table or json")
}

// bindFlags binds the flags of the command being run, so that subcommands
// can reuse flag names without clobbering each other in viper.
func bindFlags(cmd *cobra.Command, args []string) {
	viper.BindPFlags(cmd.Flags())
}

func parse(cmd *cobra.Command, args []string) error {
	var input io.Reader = os.Stdin
	if len(args) == 1 {
		file, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer file.Close()
		input = file
	}

	readings, err := parser.ParseReader(input)
	if err != nil {
		return err
	}

	return printReadings(cmd.OutOrStdout(), readings, viper.GetString("format"))
}

func printReadings(w io.Writer, readings []data.Reading, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		for _, r := range readings {
			if err := encoder.Encode(r); err != nil {
				return err
			}
		}
		return nil
	case "table":
		tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
		fmt.Fprintln(tw, "DEVICE\tLABEL\tVALUE\tUNITS")
		for _, r := range readings {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Device, r.Label, strconv.FormatFloat(r.Value, 'f', -1, 64), r.Units)
		}
		return tw.Flush()
	}
	return fmt.Errorf("unknown format %q", format)
}
