/*
 * root.go, part of molfit.
 *
 * Copyright 2026 The molfit authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package main

import (
	"log"

	"github.com/molfit/molfit/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// settings file given with --config
	cfgFile string

	// settings for the command being run, set before it runs
	settings *config.Config
)

// flagKeys maps command line flags to the settings they override
var flagKeys = map[string]string{
	"atoms":      "align.atoms",
	"chains":     "align.chains",
	"sequential": "align.sequential",
	"het":        "align.het",
	"json":       "align.json",
	"verbose":    "verbose",
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "molfit",
	Short: "Read, write, compare and superimpose PDB structures",
	Long: `
molfit reads and writes fixed-column PDB files (plain, .gz or .zst) and
superimposes structures with the Kabsch algorithm, given the atoms that
correspond to each other.`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

// loadSettings binds the flags of the command being run and builds the settings
func loadSettings(cmd *cobra.Command, args []string) error {
	v := viper.GetViper()
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	if err := config.Init(v, cfgFile); err != nil {
		return err
	}
	c, err := config.New(v)
	if err != nil {
		return err
	}
	settings = c
	return nil
}

// verbosef logs a message if the verbose setting is on
func verbosef(format string, a ...interface{}) {
	if settings != nil && settings.Verbose {
		log.Printf(format, a...)
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "settings file (default is ./molfit.yaml or $HOME/.molfit/molfit.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log what is read and written")
}
