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
Package pdb reads and writes structures in the fixed-column PDB format.

Only ATOM, HETATM, HEADER, TITLE, MODEL, ENDMDL and the resolution line of
REMARK 2 are interpreted; every other record is skipped. Files whose name
ends in .gz or .zst are transparently decompressed on reading and compressed
on writing.

A structure written by this package and read back has the same atoms, with
the same names, residues, chains and elements, and coordinates equal to 3
decimals. Serial numbers are not preserved: they are renumbered from 1.
*/
package pdb
