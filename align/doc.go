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
Package align superimposes structures with the Kabsch algorithm.

The caller decides which atoms correspond to each other, either by building
a Correspondence directly or with the ByName and Sequential helpers. Align
then finds the rotation and translation that minimize the RMSD between the
paired atoms and applies them to a copy of the whole moving structure.

The rotation is always proper (determinant +1): mirror images are never
superimposed by reflection.
*/
package align
