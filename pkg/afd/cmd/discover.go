// Copyright AFDScan Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/afdscan/afd-core/pkg/afd/alog"
	"github.com/afdscan/afd-core/pkg/afd/dataset"
	"github.com/afdscan/afd-core/pkg/afd/discover"
	"github.com/afdscan/afd-core/pkg/afd/measure"
	"github.com/afdscan/afd-core/pkg/afd/metrics"
	"github.com/afdscan/afd-core/pkg/util"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var discoverCmd = &cobra.Command{
	Use:   "discover [csv file]",
	Short: "Discover minimal approximate functional dependencies in a CSV file.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runDiscover(cmd, args[0])
	},
}

func init() {
	discoverCmd.Flags().Float64("epsilon", 0, "maximum tolerated g3 error")
	discoverCmd.Flags().Uint("samples", 100, "number of rows sampled per estimate")
	discoverCmd.Flags().Uint("bounded-cache", 0, "bound the PLI cache to this many multi-column entries (0 = unbounded)")
	discoverCmd.Flags().Uint("parallel", 1, "number of RHS searches to run concurrently")
	discoverCmd.Flags().Bool("no-header", false, "treat the first CSV row as data, not column names")
	discoverCmd.Flags().IntSlice("rhs", nil, "restrict the search to these RHS column indices (default: all columns)")

	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, filename string) {
	f, err := os.Open(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	defer f.Close()

	ds, err := dataset.LoadCSV(f, !GetFlag(cmd, "no-header"))
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	logger := alog.NewDefault()
	logger.SetVerbose(GetFlag(cmd, "verbose"))

	config := discover.Config{
		MaxError:   GetFloat64(cmd, "epsilon"),
		Measure:    measure.G3{},
		Sampler:    measure.NewUniformSampler(1, 2),
		SampleSize: GetUint(cmd, "samples"),
		CacheSize:  GetUint(cmd, "bounded-cache"),
		Parallel:   GetUint(cmd, "parallel"),
		Logger:     logger,
		Metrics:    metrics.NewBasic(logger),
		RHS:        GetUintArray(cmd, "rhs"),
	}

	fds, err := discover.Discover(ds, config)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	printResults(ds, fds)
}

func printResults(ds dataset.Dataset, fds []discover.FunctionalDependency) {
	sort.Slice(fds, func(i, j int) bool {
		if fds[i].RHS != fds[j].RHS {
			return fds[i].RHS < fds[j].RHS
		}

		return fds[i].LHS.Cardinality() < fds[j].LHS.Cardinality()
	})

	table := util.NewTablePrinter(3, uint(len(fds)+1))
	table.SetRow(0, "LHS", "RHS", "error")

	for i, fd := range fds {
		lhs := columnNames(ds, fd.LHS.Columns())
		table.SetRow(uint(i+1), lhs, ds.ColumnName(fd.RHS), fmt.Sprintf("%.4f", fd.Error))
	}

	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		table.SetMaxWidth(uint(w / 3))
	}

	table.Print()
}

func columnNames(ds dataset.Dataset, cols []uint) string {
	out := "{"

	for i, c := range cols {
		if i > 0 {
			out += ","
		}

		out += ds.ColumnName(c)
	}

	return out + "}"
}
