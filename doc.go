/*
 * doc.go, part of molfit.
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

/*
Package chem is the main package of the molfit library. It provides the
structure model (chains, residues and atoms) that the rest of the library
reads, writes and superimposes.

	**molfit Capabilities**

	Reads and writes fixed-column PDB files, plain or compressed (package pdb).

	Superimposes two structures with the Kabsch algorithm, given a list of
	corresponding atoms, and reports the RMSD (package align).

	Computes TM-score, GDT and GMD between sets of coordinates (package similarity).

	Exports structures and alignment results as JSON for external
	renderers (package chemjson).

A ProteinStructure owns all its chains, residues and atoms. Atoms are kept
in file order, and the flat view (Len, Atom, Coords) always follows that order.
Residues and chains are contiguous runs: a residue whose number reappears after
another residue is a new residue.

Coordinates are handled as v3.Matrix objects, Nx3 gonum matrices with one
atom per row.
*/
package chem
