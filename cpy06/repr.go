// Copyright © 2021 The upb.crypto.groupsig authors
//
// This file is part of groupsig.
//
// Groupsig is free software: you can redistribute it and/or modify it under
// the terms of the GNU Lesser General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.
//
// Groupsig is distributed in the hope that it will be useful, but WITHOUT ANY
// WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS
// FOR A PARTICULAR PURPOSE. See the GNU Lesser General Public License for more
// details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with groupsig. If not, see <http://www.gnu.org/licenses/>.

package cpy06

import (
	"bytes"
	"io"

	pkgerrors "github.com/pkg/errors"

	groupsig "github.com/upbcuk/upb.crypto.groupsig"
	"github.com/upbcuk/upb.crypto.groupsig/internal/repr"
)

// invalidRepr classifies a codec failure as ErrInvalidRepresentation. Element
// decoding cannot distinguish a foreign scheme's bytes from corruption, so
// both surface the same way.
func invalidRepr(err error) error {
	if err == nil {
		return nil
	}
	return pkgerrors.Wrap(groupsig.ErrInvalidRepresentation, err.Error())
}

// The Load* methods reconstruct artifacts previously written with WriteTo.
// Every element is allocated on this scheme's pairing, so artifacts exported
// under one scheme instance restore correctly under any scheme loaded from
// the same parameters.

func (s *Scheme) LoadMemberKey(r io.Reader) (groupsig.MemberKey, error) {
	gr := repr.NewReader(r)
	k := &MemberKey{
		x:  s.pairing.NewZr(),
		y:  s.pairing.NewZr(),
		xi: s.pairing.NewZr(),
		a:  s.pairing.NewG1(),
	}
	gr.Decode(&k.id)
	gr.DecodeScalar(k.x)
	gr.DecodeScalar(k.y)
	gr.DecodeScalar(k.xi)
	gr.DecodeElement(k.a)
	if err := invalidRepr(gr.Err()); err != nil {
		return nil, err
	}
	return k, nil
}

func (s *Scheme) LoadIssuerKey(r io.Reader) (groupsig.IssuerKey, error) {
	mk, err := s.decodeManagerKey(repr.NewReader(r))
	if err != nil {
		return nil, err
	}
	return &IssuerKey{mk}, nil
}

func (s *Scheme) LoadOpenerKey(r io.Reader) (groupsig.OpenerKey, error) {
	mk, err := s.decodeManagerKey(repr.NewReader(r))
	if err != nil {
		return nil, err
	}
	return &OpenerKey{mk}, nil
}

func (s *Scheme) LoadSignature(r io.Reader) (groupsig.GroupSignature, error) {
	gr := repr.NewReader(r)
	sig := &Signature{
		t1: s.pairing.NewG1(),
		t2: s.pairing.NewG1(),
		t3: s.pairing.NewG1(),
		t4: s.pairing.NewG1(),
		t5: s.pairing.NewG1(),

		c:       s.pairing.NewZr(),
		sAlpha:  s.pairing.NewZr(),
		sBeta:   s.pairing.NewZr(),
		sX:      s.pairing.NewZr(),
		sY:      s.pairing.NewZr(),
		sDelta1: s.pairing.NewZr(),
		sDelta2: s.pairing.NewZr(),
		sDelta:  s.pairing.NewZr(),
		sXi:     s.pairing.NewZr(),
	}
	gr.DecodeElement(sig.t1)
	gr.DecodeElement(sig.t2)
	gr.DecodeElement(sig.t3)
	gr.DecodeElement(sig.t4)
	gr.DecodeElement(sig.t5)
	for _, sc := range sig.scalars() {
		gr.DecodeScalar(sc)
	}
	if err := invalidRepr(gr.Err()); err != nil {
		return nil, err
	}
	return sig, nil
}

func (s *Scheme) LoadPlainText(r io.Reader) (groupsig.PlainText, error) {
	gr := repr.NewReader(r)
	pt := &PlainText{m: s.pairing.NewZr()}
	gr.DecodeScalar(pt.m)
	if err := invalidRepr(gr.Err()); err != nil {
		return nil, err
	}
	return pt, nil
}

func (s *Scheme) LoadGMLEntry(r io.Reader) (groupsig.GMLEntry, error) {
	gr := repr.NewReader(r)
	e := &GMLEntry{
		a:          s.pairing.NewG1(),
		commitment: s.pairing.NewG1(),
		xi:         s.pairing.NewZr(),
	}
	gr.Decode(&e.id)
	gr.DecodeElement(e.a)
	gr.DecodeElement(e.commitment)
	gr.DecodeScalar(e.xi)
	if err := invalidRepr(gr.Err()); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Scheme) LoadRevocationListEntry(r io.Reader) (groupsig.RevocationListEntry, error) {
	gr := repr.NewReader(r)
	e := &RevocationListEntry{xi: s.pairing.NewZr()}
	gr.Decode(&e.id)
	gr.DecodeScalar(e.xi)
	if err := invalidRepr(gr.Err()); err != nil {
		return nil, err
	}
	return e, nil
}

// LoadGML restores an exported membership list into a fresh in-memory one.
// Deployments with store-backed ledgers restore entry by entry instead.
func (s *Scheme) LoadGML(r io.Reader) (groupsig.GML, error) {
	gml := groupsig.NewGML()
	err := s.loadLedger(r, func(raw []byte) error {
		e, err := s.LoadGMLEntry(bytes.NewReader(raw))
		if err != nil {
			return err
		}
		return gml.Put(e)
	})
	if err != nil {
		return nil, err
	}
	return gml, nil
}

func (s *Scheme) LoadRevocationList(r io.Reader) (groupsig.RevocationList, error) {
	rl := groupsig.NewRevocationList()
	err := s.loadLedger(r, func(raw []byte) error {
		e, err := s.LoadRevocationListEntry(bytes.NewReader(raw))
		if err != nil {
			return err
		}
		return rl.Put(e)
	})
	if err != nil {
		return nil, err
	}
	return rl, nil
}

// loadLedger walks an exported ledger (entry count, then one self-contained
// representation per entry) and hands each raw entry to add.
func (s *Scheme) loadLedger(r io.Reader, add func([]byte) error) error {
	gr := repr.NewReader(r)
	var count uint32
	if !gr.Decode(&count) {
		return invalidRepr(gr.Err())
	}
	for i := uint32(0); i < count; i++ {
		var raw []byte
		if !gr.Decode(&raw) {
			return invalidRepr(gr.Err())
		}
		if err := add(raw); err != nil {
			return err
		}
	}
	return nil
}
