/*
 * options.go, part of molfit.
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

package align

import chem "github.com/molfit/molfit"

//Options selects the atoms that the correspondence builders pair.
type Options struct {
	atomNames []string
	chains    []byte
	skipHet   bool
}

//DefaultOptions returns options that select the alpha carbons (CA) of
//all chains, ignoring HETATM records.
func DefaultOptions() *Options {
	r := new(Options)
	r.atomNames = []string{"CA"}
	r.chains = nil //all of them
	r.skipHet = true
	return r
}

//DefaultBackboneOptions is like DefaultOptions but selects
//the N, CA and C atoms.
func DefaultBackboneOptions() *Options {
	r := DefaultOptions()
	r.atomNames = []string{"N", "CA", "C"}
	return r
}

//Returns the atom names considered for the alignment
//and sets them to new values, if those are given.
func (O *Options) AtomNames(names ...[]string) []string {
	if len(names) > 0 && len(names[0]) > 0 {
		O.atomNames = names[0]
	}
	return O.atomNames
}

//Returns the chains considered for the alignment, and sets them to new
//values, if given. An empty slice means all chains.
func (O *Options) Chains(chains ...[]byte) []byte {
	if len(chains) > 0 {
		O.chains = chains[0]
	}
	return O.chains
}

//Returns whether HETATM atoms are ignored, and sets
//it to a new value, if given.
func (O *Options) SkipHet(skip ...bool) bool {
	if len(skip) > 0 {
		O.skipHet = skip[0]
	}
	return O.skipHet
}

//selected reports whether the atom at, in chain c, is selected by O.
func (O *Options) selected(c byte, at *chem.Atom) bool {
	if O.skipHet && at.Het {
		return false
	}
	if len(O.chains) > 0 && !isInByte(c, O.chains) {
		return false
	}
	return isInString(at.Name, O.atomNames)
}

func isInString(test string, container []string) bool {
	for _, v := range container {
		if v == test {
			return true
		}
	}
	return false
}

func isInByte(test byte, container []byte) bool {
	for _, v := range container {
		if v == test {
			return true
		}
	}
	return false
}
