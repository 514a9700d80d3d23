// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"

	"github.com/cpmech/gocdo/domain"
	"github.com/cpmech/gocdo/param"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gocdo",
	Short: "Compatible discrete operator schemes for scalar convection-diffusion-reaction equations",
	Long: `gocdo solves scalar convection-diffusion-reaction equations with vertex-based and
face-based compatible discrete operator (CDO) schemes on polyhedral meshes`,
}

var runCmd = &cobra.Command{
	Use:   "run <file.toml>",
	Short: "Run the simulation defined in a simulation (.toml) file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		erasePrev, _ := cmd.Flags().GetBool("erase")
		doprof, _ := cmd.Flags().GetInt("prof")

		// message
		if verbose {
			io.PfWhite("\nGocdo -- Go compatible discrete operator schemes\n")
			io.Pf("Copyright 2016 The Gofem Authors. All rights reserved.\n")
			io.Pf("Use of this source code is governed by a BSD-style\n")
			io.Pf("license that can be found in the LICENSE file.\n")
			io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
				"filename path", "fnamepath", args[0],
				"show messages", "verbose", verbose,
				"erase previous results", "erase", erasePrev,
				"profiling: 0=none 1=CPU 2=MEM", "prof", doprof,
			))
		}

		// profiling?
		if doprof > 0 {
			stop, e := startProf(os.TempDir(), doprof)
			if e != nil {
				return e
			}
			defer stop()
		}

		// run simulation
		analysis, err := domain.NewMain(args[0], erasePrev, verbose)
		if err != nil {
			return
		}
		return analysis.Run()
	},
}

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the keys accepted by the options of equations",
	Run: func(cmd *cobra.Command, args []string) {
		for _, key := range param.KeyNames() {
			io.Pf("%s\n", key)
		}
	},
}

func init() {
	runCmd.Flags().BoolP("verbose", "v", true, "show messages")
	runCmd.Flags().BoolP("erase", "e", true, "erase previous results")
	runCmd.Flags().IntP("prof", "p", 0, "profiling: 0=none 1=CPU 2=MEM")
	rootCmd.AddCommand(runCmd, keysCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		io.PfRed("\nERROR: %v\n", err)
		os.Exit(1)
	}
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////

// startProf starts CPU (option=1) or memory (option=2) profiling into dirout and returns the
// function writing and closing the profile
func startProf(dirout string, option int) (stop func(), err error) {
	var fn string
	switch option {
	case 1:
		fn = filepath.Join(dirout, "gocdo-cpu.pprof")
	case 2:
		fn = filepath.Join(dirout, "gocdo-mem.pprof")
	default:
		return nil, chk.Err("profiling option %d is invalid. options are 0, 1 or 2", option)
	}
	f, err := os.Create(fn)
	if err != nil {
		return nil, chk.Err("cannot create profile file:\n%v", err)
	}
	if option == 1 {
		if err = pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return nil, chk.Err("cannot start CPU profile:\n%v", err)
		}
		return func() {
			pprof.StopCPUProfile()
			f.Close()
			io.Pf("CPU profile written to %s\n", fn)
		}, nil
	}
	return func() {
		runtime.GC()
		if e := pprof.WriteHeapProfile(f); e != nil {
			io.PfRed("cannot write memory profile:\n%v\n", e)
		}
		f.Close()
		io.Pf("memory profile written to %s\n", fn)
	}, nil
}
