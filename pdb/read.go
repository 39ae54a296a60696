/*
 * read.go, part of molfit.
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

package pdb

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"strings"

	chem "github.com/molfit/molfit"
)

//Read reads the PDB file path and returns its first model. A file
//with no atom records gives a structure with no chains.
func Read(path string) (*chem.ProteinStructure, error) {
	models, err := ReadModels(path)
	if err != nil {
		return nil, chem.ErrDecorate(err, "Read")
	}
	return models[0], nil
}

//ReadModels reads the PDB file path and returns one structure per model.
//The returned slice is never empty when the error is nil.
func ReadModels(path string) ([]*chem.ProteinStructure, error) {
	r, err := openRead(path)
	if err != nil {
		return nil, chem.ErrDecorate(err, "ReadModels")
	}
	defer r.Close()
	models, err := Parse(r, path)
	if err != nil {
		return nil, chem.ErrDecorate(err, "ReadModels")
	}
	return models, nil
}

//Parse reads PDB records from r. name is only used in error messages.
//Header metadata (HEADER, TITLE, resolution, SEQRES and MODRES) is
//copied to every model.
func Parse(r io.Reader, name string) ([]*chem.ProteinStructure, error) {
	p := &parser{name: name}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 256), 1024*1024)
	for sc.Scan() {
		p.line++
		if err := p.parseLine(strings.TrimRight(sc.Text(), "\r")); err != nil {
			return nil, chem.ErrDecorate(err, "Parse")
		}
	}
	if err := sc.Err(); err != nil {
		return nil, chem.ErrDecorate(chem.NewIOError(name, "read", err), "Parse")
	}
	return p.finish(), nil
}

type parser struct {
	name    string
	line    int
	models  []*chem.ProteinStructure
	cur     *chem.ProteinStructure
	serials map[int]bool

	header     string
	idCode     string
	title      string
	resolution float64
	seqres     []chem.ChainSeq
	modres     []chem.ModRes
}

func (p *parser) errorf(c column, err error, format string, a ...interface{}) *chem.FormatError {
	return chem.NewFormatError(p.name, p.line, c.Name, fmt.Sprintf(format, a...), err)
}

//current returns the model being filled, opening one if needed.
func (p *parser) current() *chem.ProteinStructure {
	if p.cur == nil {
		p.cur = chem.NewProteinStructure()
		p.serials = make(map[int]bool)
	}
	return p.cur
}

//closeModel stores the model being filled, if any.
func (p *parser) closeModel() {
	if p.cur != nil {
		p.models = append(p.models, p.cur)
		p.cur = nil
	}
}

func (p *parser) parseLine(line string) error {
	switch recordName(line) {
	case "ATOM", "HETATM":
		return p.parseAtom(line)
	case "MODEL":
		//an empty model 0, opened by records before MODEL, is reused.
		if p.cur != nil && (p.cur.Len() > 0 || p.cur.Model > 0) {
			p.closeModel()
		}
		s := p.current()
		s.Model = len(p.models) + 1
		if f := strings.Fields(line[5:]); len(f) > 0 {
			if n, err := strconv.Atoi(f[0]); err == nil && n > 0 {
				s.Model = n
			}
		}
	case "ENDMDL":
		p.closeModel()
	case "HEADER":
		p.header = colClassification.Get(line)
		p.idCode = colIDCode.Get(line)
	case "TITLE":
		p.addTitle(line)
	case "REMARK":
		p.parseResolution(line)
	case "SEQRES":
		p.parseSeqRes(line)
	case "MODRES":
		return p.parseModRes(line)
	}
	return nil
}

//parseSeqRes appends the residues of a SEQRES line to the sequence of
//its chain. Lines for one chain are consecutive.
func (p *parser) parseSeqRes(line string) {
	chain := colSeqResChain.Byte(line)
	names := strings.Fields(colSeqResNames.Raw(line))
	if n := len(p.seqres); n > 0 && p.seqres[n-1].Chain == chain {
		p.seqres[n-1].Residues = append(p.seqres[n-1].Residues, names...)
		return
	}
	p.seqres = append(p.seqres, chem.ChainSeq{Chain: chain, Residues: names})
}

func (p *parser) parseModRes(line string) error {
	m := chem.ModRes{
		Name:     colModResName.Get(line),
		Chain:    colModResChain.Byte(line),
		ICode:    colModResICode.Byte(line),
		Standard: colModResStd.Get(line),
		Comment:  colModResComment.Get(line),
	}
	var err error
	m.SeqNum, err = strconv.Atoi(colModResSeq.Get(line))
	if err != nil {
		return p.errorf(colModResSeq, err, "invalid residue number %q", colModResSeq.Raw(line))
	}
	p.modres = append(p.modres, m)
	return nil
}

//addTitle appends the text of a TITLE line to the title. Continuation
//lines start with a blank in column 11, unless they carry the rest of
//a word too long for the previous line.
func (p *parser) addTitle(line string) {
	raw := strings.TrimRight(colTitle.Raw(line), " ")
	text := strings.TrimSpace(raw)
	switch {
	case text == "":
	case p.title == "":
		p.title = text
	case raw[0] != ' ':
		p.title += text
	default:
		p.title += " " + text
	}
}

//parseResolution reads lines like
//"REMARK   2 RESOLUTION.    1.74 ANGSTROMS.". Lines such as
//"RESOLUTION. NOT APPLICABLE." are ignored.
func (p *parser) parseResolution(line string) {
	const tag = "REMARK   2 RESOLUTION."
	if !strings.HasPrefix(line, tag) {
		return
	}
	f := strings.Fields(line[len(tag):])
	if len(f) == 0 {
		return
	}
	if res, err := strconv.ParseFloat(f[0], 64); err == nil && res > 0 {
		p.resolution = res
	}
}

func (p *parser) parseAtom(line string) error {
	if len(line) < minAtomLine {
		msg := fmt.Sprintf("%s record has %d columns, at least %d needed", recordName(line), len(line), minAtomLine)
		return chem.NewFormatError(p.name, p.line, "", msg, nil)
	}
	s := p.current()
	at := new(chem.Atom)
	at.Het = recordName(line) == "HETATM"
	var err error
	at.Serial, err = strconv.Atoi(colSerial.Get(line))
	if err != nil {
		return p.errorf(colSerial, err, "invalid serial number %q", colSerial.Raw(line))
	}
	if p.serials[at.Serial] {
		return p.errorf(colSerial, nil, "serial number %d repeated", at.Serial)
	}
	p.serials[at.Serial] = true
	at.Name = colName.Get(line)
	at.AltLoc = colAltLoc.Byte(line)
	resName := colResName.Get(line)
	chain := colChain.Byte(line)
	seqNum, err := strconv.Atoi(colResSeq.Get(line))
	if err != nil {
		return p.errorf(colResSeq, err, "invalid residue number %q", colResSeq.Raw(line))
	}
	icode := colICode.Byte(line)
	for i, c := range []column{colX, colY, colZ} {
		at.Coords[i], err = p.float(line, c, false, 0)
		if err != nil {
			return err
		}
	}
	if at.Occupancy, err = p.float(line, colOccupancy, true, 1); err != nil {
		return err
	}
	if at.Bfactor, err = p.float(line, colBfactor, true, 0); err != nil {
		return err
	}
	at.Symbol = colElement.Get(line)
	if len(at.Symbol) == 2 {
		//PDB files use upper case, e.g. "ZN".
		at.Symbol = at.Symbol[:1] + strings.ToLower(at.Symbol[1:])
	}
	if at.Symbol == "" {
		at.Symbol, err = chem.SymbolFromName(at.Name)
		if err != nil {
			log.Printf("pdb: %s:%d: %v", p.name, p.line, err)
		}
	}
	at.Charge = colCharge.Get(line)
	s.AppendAtom(chain, resName, seqNum, icode, at)
	return nil
}

//float parses the field c of line. Blank optional fields take the value def.
func (p *parser) float(line string, c column, optional bool, def float64) (float64, error) {
	str := c.Get(line)
	if str == "" && optional {
		return def, nil
	}
	v, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, p.errorf(c, err, "invalid number %q", c.Raw(line))
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, p.errorf(c, nil, "non-finite number %q", c.Raw(line))
	}
	return v, nil
}

func (p *parser) finish() []*chem.ProteinStructure {
	if p.cur != nil && (p.cur.Len() > 0 || p.cur.Model > 0 || len(p.models) == 0) {
		p.closeModel()
	}
	if len(p.models) == 0 {
		p.models = append(p.models, chem.NewProteinStructure())
	}
	for _, s := range p.models {
		s.Header = p.header
		s.IDCode = p.idCode
		s.Title = p.title
		s.Resolution = p.resolution
		s.SeqRes = chem.CopySeqRes(p.seqres)
		if p.modres != nil {
			s.ModRes = append([]chem.ModRes(nil), p.modres...)
		}
	}
	return p.models
}
