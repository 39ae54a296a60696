/*
 * errors.go, part of molfit.
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

//FormatError is returned when a PDB file is malformed, or when a structure
//can't be represented in the fixed-column format.
type FormatError struct {
	Path  string //empty when reading from a stream with no name
	Line  int    //1-based, 0 when the error is not tied to a line
	Field string //the column field that failed, if any
	Msg   string
	Err   error
	deco  []string
}

//NewFormatError returns a FormatError for the given location.
func NewFormatError(path string, line int, field, msg string, err error) *FormatError {
	return &FormatError{Path: path, Line: line, Field: field, Msg: msg, Err: err}
}

func (err *FormatError) Error() string {
	var b strings.Builder
	b.WriteString(err.Path)
	if err.Line > 0 {
		fmt.Fprintf(&b, ":%d", err.Line)
	}
	if b.Len() > 0 {
		b.WriteString(": ")
	}
	if err.Field != "" {
		fmt.Fprintf(&b, "field %s: ", err.Field)
	}
	b.WriteString(err.Msg)
	if err.Err != nil {
		fmt.Fprintf(&b, ": %v", err.Err)
	}
	return b.String()
}

func (err *FormatError) Unwrap() error { return err.Err }

//Decorate adds dec to the decoration slice and returns it.
func (err *FormatError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//IOError wraps a filesystem failure.
type IOError struct {
	Path string
	Op   string //"open", "create", "read", "write" or "close"
	Err  error
	deco []string
}

//NewIOError returns an IOError for operation op on path.
func NewIOError(path, op string, err error) *IOError {
	return &IOError{Path: path, Op: op, Err: err}
}

func (err *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", err.Op, err.Path, err.Err)
}

func (err *IOError) Unwrap() error { return err.Err }

//Decorate adds dec to the decoration slice and returns it.
func (err *IOError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//AlignmentError is returned when the input to a superposition is invalid.
//Arg names the offending argument, e.g. "correspondence[3].Moving".
type AlignmentError struct {
	Arg  string
	Msg  string
	deco []string
}

//NewAlignmentError returns an AlignmentError for argument arg.
func NewAlignmentError(arg, format string, a ...interface{}) *AlignmentError {
	return &AlignmentError{Arg: arg, Msg: fmt.Sprintf(format, a...)}
}

func (err *AlignmentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", err.Arg, err.Msg)
}

//Decorate adds dec to the decoration slice and returns it.
func (err *AlignmentError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//ErrDecorate decorates err with the caller's name if err implements Error,
//and returns it unchanged otherwise.
func ErrDecorate(err error, caller string) error {
	if e, ok := err.(Error); ok {
		e.Decorate(caller)
	}
	return err
}
