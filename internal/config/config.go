/*
 * config.go, part of molfit.
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

// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd/molfit)
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/molfit/molfit/align"
	"github.com/molfit/molfit/similarity"
	"github.com/spf13/viper"
)

const (
	// Name is the base name of the settings file, molfit.yaml
	Name = "molfit"

	// EnvPrefix is prepended to the environment variables that override
	// settings: MOLFIT_ALIGN_SEQUENTIAL overrides align.sequential
	EnvPrefix = "MOLFIT"
)

// AlignConfig is for settings that decide which atoms are superimposed
type AlignConfig struct {
	// atom names paired between the structures, CA by default
	Atoms []string `mapstructure:"atoms"`

	// chain identifiers to use, all chains if empty
	Chains []string `mapstructure:"chains"`

	// pair atoms by their order instead of by chain, residue number and name
	Sequential bool `mapstructure:"sequential"`

	// whether HETATM records take part in the superposition
	Het bool `mapstructure:"het"`

	// path for a JSON dump of the aligned structure, empty for none
	JSON string `mapstructure:"json"`
}

// ScoreConfig is for the thresholds of the similarity verdicts
type ScoreConfig struct {
	// multiplied by the sum of both resolutions to give the largest
	// deviation, in A, still considered similar
	GMD  float64 `mapstructure:"gmd"`
	GMV  float64 `mapstructure:"gmv"`
	RMSD float64 `mapstructure:"rmsd"`

	// smallest TM-score considered similar
	TM float64 `mapstructure:"tm"`

	// smallest GDT-TS and GDT-HA, in percent, considered similar
	GDT float64 `mapstructure:"gdt"`
}

// Config is the root-level settings struct and is a mix
// of settings available in molfit.yaml, the environment
// and the command line
type Config struct {
	// settings for the align and score commands
	Align AlignConfig `mapstructure:"align"`

	// thresholds for the score command
	Score ScoreConfig `mapstructure:"score"`

	// log what each command reads and writes
	Verbose bool `mapstructure:"verbose"`
}

// SetDefaults registers the default value of every setting in v.
// Keys without a default are not overridden from the environment.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("align.atoms", []string{"CA"})
	v.SetDefault("align.chains", []string{})
	v.SetDefault("align.sequential", false)
	v.SetDefault("align.het", false)
	v.SetDefault("align.json", "")
	t := similarity.DefaultThresholds()
	v.SetDefault("score.gmd", t.GMD)
	v.SetDefault("score.gmv", t.GMV)
	v.SetDefault("score.rmsd", t.RMSD)
	v.SetDefault("score.tm", t.TM)
	v.SetDefault("score.gdt", t.GDT)
	v.SetDefault("verbose", false)
}

// Init prepares v to read settings. If file is not empty it is the settings
// file to read, otherwise molfit.yaml is looked for in the current
// directory and in $HOME/.molfit. A missing molfit.yaml is not an error.
func Init(v *viper.Viper, file string) error {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read settings from %s: %w", file, err)
		}
		return nil
	}

	v.SetConfigName(Name)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, "."+Name))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read settings: %w", err)
		}
	}
	return nil
}

// New returns a Config populated by the settings in v
func New(v *viper.Viper) (*Config, error) {
	c := new(Config)
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	if len(c.Align.Atoms) == 0 {
		return errors.New("align.atoms: no atom names given")
	}
	for _, a := range c.Align.Atoms {
		if a == "" || len(a) > 4 {
			return fmt.Errorf("align.atoms: invalid atom name %q", a)
		}
	}
	for _, ch := range c.Align.Chains {
		if len(ch) != 1 {
			return fmt.Errorf("align.chains: chain identifiers have one character, got %q", ch)
		}
	}
	sc := c.Score
	for _, f := range []struct {
		key string
		v   float64
		max float64
	}{{"gmd", sc.GMD, -1}, {"gmv", sc.GMV, -1}, {"rmsd", sc.RMSD, -1}, {"tm", sc.TM, 1}, {"gdt", sc.GDT, 100}} {
		if f.v < 0 || (f.max > 0 && f.v > f.max) {
			return fmt.Errorf("score.%s: threshold %g out of range", f.key, f.v)
		}
	}
	return nil
}

// Options returns the atom selection for the correspondence builders
func (a AlignConfig) Options() *align.Options {
	o := align.DefaultOptions()
	o.AtomNames(a.Atoms)
	chains := make([]byte, 0, len(a.Chains))
	for _, ch := range a.Chains {
		chains = append(chains, ch[0])
	}
	o.Chains(chains)
	o.SkipHet(!a.Het)
	return o
}

// Thresholds returns the similarity thresholds in s
func (s ScoreConfig) Thresholds() *similarity.Thresholds {
	return &similarity.Thresholds{GMD: s.GMD, GMV: s.GMV, RMSD: s.RMSD, TM: s.TM, GDT: s.GDT}
}
