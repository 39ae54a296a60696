/*
 * atomicdata.go, part of molfit.
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

package chem

import (
	"fmt"
	"strings"
)

//A map for assigning mass to elements.
//Note that just common "bio-elements" are present
var symbolMass = map[string]float64{
	"H":  1.008,
	"C":  12.01,
	"O":  16.00,
	"N":  14.01,
	"P":  30.97,
	"S":  32.06,
	"Se": 78.96,
	"K":  39.1,
	"Ca": 40.08,
	"Mg": 24.30,
	"Cl": 35.45,
	"Na": 22.99,
	"Cu": 63.55,
	"Zn": 65.38,
	"Co": 58.93,
	"Fe": 55.84,
	"Mn": 54.94,
	"Ni": 58.69,
	"Cd": 112.41,
	"Hg": 200.59,
	"F":  18.998,
	"Br": 79.904,
	"I":  126.90,
}

//A map between 3-letters name for aminoacidic residues to the corresponding 1-letter names.
var three2OneLetter = map[string]byte{
	"SER": 'S',
	"THR": 'T',
	"ASN": 'N',
	"GLN": 'Q',
	"SEC": 'U', //Selenocysteine!
	"PYL": 'O',
	"CYS": 'C',
	"GLY": 'G',
	"PRO": 'P',
	"ALA": 'A',
	"VAL": 'V',
	"ILE": 'I',
	"LEU": 'L',
	"MET": 'M',
	"PHE": 'F',
	"TYR": 'Y',
	"TRP": 'W',
	"ARG": 'R',
	"HIS": 'H',
	"HID": 'H', //AMBER protonation states
	"HIE": 'H',
	"HIP": 'H',
	"LYS": 'K',
	"ASP": 'D',
	"GLU": 'E',
}

//OneLetter returns the one-letter code for the residue name res, or 'X'
//if res is not a known amino acid.
func OneLetter(res string) byte {
	if l, ok := three2OneLetter[strings.ToUpper(strings.TrimSpace(res))]; ok {
		return l
	}
	return 'X'
}

//Mass returns the mass of the element with the given symbol and whether it
//was found in the table.
func Mass(symbol string) (float64, bool) {
	m, ok := symbolMass[symbol]
	return m, ok
}

//SymbolFromName tries to guess a chemical element symbol from a PDB atom name.
//Mostly based on AMBER names. It only deals with some common bio-elements.
func SymbolFromName(name string) (string, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return "", fmt.Errorf("Couldn't guess symbol from empty PDB name")
	}
	//names starting with a digit are hydrogens such as 1HB
	if name[0] >= '0' && name[0] <= '9' {
		name = strings.TrimLeft(name, "0123456789")
		if name == "" {
			return "", fmt.Errorf("Couldn't guess symbol from PDB name")
		}
	}
	symbol := ""
	switch {
	case len(name) == 4 || name[0] == 'H': //I think only Hs can have 4-char names in amber.
		symbol = "H"
	case name[0] == 'C': //Ca is not considered here, CA is the alpha carbon.
		switch name {
		case "CU":
			symbol = "Cu"
		case "CO":
			symbol = "Co"
		case "CL":
			symbol = "Cl"
		default:
			symbol = "C"
		}
	case name[0] == 'N':
		switch name {
		case "NA":
			symbol = "Na"
		case "NI":
			symbol = "Ni"
		default:
			symbol = "N"
		}
	case name[0] == 'O':
		symbol = "O"
	case name[0] == 'P':
		symbol = "P"
	case name[0] == 'S':
		if name == "SE" {
			symbol = "Se"
		} else {
			symbol = "S"
		}
	case strings.HasPrefix(name, "ZN"):
		symbol = "Zn"
	case strings.HasPrefix(name, "FE"):
		symbol = "Fe"
	case strings.HasPrefix(name, "MG"):
		symbol = "Mg"
	case strings.HasPrefix(name, "MN"):
		symbol = "Mn"
	}
	if symbol == "" {
		return symbol, fmt.Errorf("Couldn't guess symbol from PDB name %s", name)
	}
	return symbol, nil
}
