/*
 * main.go, part of molfit.
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

// Command molfit reads, converts, compares and superimposes PDB files.
//
//	molfit align MOVING REFERENCE -o OUT [--atoms CA,N,C] [--chains A] [--sequential] [--json FILE]
//	molfit convert IN OUT
//	molfit score A B
//	molfit info FILE...
//
// Settings are also read from molfit.yaml (in the current directory or
// $HOME/.molfit) and from MOLFIT_* environment variables.
package main

func main() {
	Execute() // initialize cobra commands
}
