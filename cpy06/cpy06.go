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

/*
	Package cpy06 implements a pairing-based dynamic group signature scheme
	with opening, claiming and verifier-local revocation. The signature core
	follows the short group signatures of Boneh, Boyen and Shacham: the
	membership certificate is hidden under a linear encryption and a
	Fiat-Shamir signature of knowledge binds it to the message. The tracing
	and claiming facilities follow the traceable signature construction of
	Choi, Park and Yung (2006): every signature carries a randomized tracing
	pair that a revealed per-member trapdoor can test, and that the member
	alone can claim. The scheme is secure in the random oracle model.

	Members are admitted through a four-message interactive join: the member
	commits to a secret exponent, the issuer blindly certifies the commitment
	and assigns a tracing exponent, and the member's identity is recorded in
	the group membership list only once both sides have accepted.
*/
package cpy06

import (
	"crypto/sha256"
	"io"
	"math/big"

	"github.com/Nik-U/pbc"
	pkgerrors "github.com/pkg/errors"

	groupsig "github.com/upbcuk/upb.crypto.groupsig"
	"github.com/upbcuk/upb.crypto.groupsig/internal/repr"
)

type securityParams struct {
	rBits uint32 // group order bits
	qBits uint32 // base field bits
}

func getParams(securityFactor uint8) (*securityParams, error) {
	switch securityFactor {
	case 1:
		return &securityParams{rBits: 160, qBits: 512}, nil
	case 2:
		return &securityParams{rBits: 224, qBits: 1024}, nil
	case 3:
		return &securityParams{rBits: 256, qBits: 1536}, nil
	}
	return nil, groupsig.ErrUnsupportedLevel
}

// Scheme holds the public group parameters. The issuer and opener secrets
// live in the keys returned by New, not here, so a loaded Scheme is safe to
// hand to members and verifiers.
type Scheme struct {
	// Shared parameters (from global setup)
	secFac uint8
	G      *pbc.Params
	g1     *pbc.Element // G1, certificate base
	h      *pbc.Element // G1, linear encryption blinding base
	k      *pbc.Element // G1, member commitment base
	u      *pbc.Element // G1, h^(1/zeta1)
	v      *pbc.Element // G1, h^(1/zeta2)
	f      *pbc.Element // G1, tracing base
	g2     *pbc.Element // G2
	w      *pbc.Element // G2, g2^gamma

	// Runtime values
	secParams *securityParams
	pairing   *pbc.Pairing
	uPower    *pbc.Power
	vPower    *pbc.Power
	hPower    *pbc.Power
	kPower    *pbc.Power
	fPower    *pbc.Power
	eg1g2     *pbc.Element // GT
	ehw       *pbc.Element // GT
	ehg2      *pbc.Element // GT
	ekg2      *pbc.Element // GT
}

func (s *Scheme) makeRuntime() {
	s.uPower = s.u.PreparePower()
	s.vPower = s.v.PreparePower()
	s.hPower = s.h.PreparePower()
	s.kPower = s.k.PreparePower()
	s.fPower = s.f.PreparePower()
	s.eg1g2 = s.pairing.NewGT().Pair(s.g1, s.g2)
	s.ehw = s.pairing.NewGT().Pair(s.h, s.w)
	s.ehg2 = s.pairing.NewGT().Pair(s.h, s.g2)
	s.ekg2 = s.pairing.NewGT().Pair(s.k, s.g2)
}

// New creates a new group: fresh public parameters together with the issuer
// and opener keys. Both keys are views over the same manager secret tuple
// (gamma, zeta1, zeta2); deployments that split authority hand each key to a
// different party and discard the other.
//
// Several security levels are provided through securityFactor. Valid values
// are 1 to 3, inclusive, with 1 being the least secure. Level 1 is roughly
// equivalent to 80 bits of security, levels 2 and 3 to 112 and 128 bits.
func New(securityFactor uint8) (*Scheme, *IssuerKey, *OpenerKey, error) {
	secParams, err := getParams(securityFactor)
	if err != nil {
		return nil, nil, nil, err
	}

	params := pbc.GenerateA(secParams.rBits, secParams.qBits)
	pairing := params.NewPairing()

	gamma := pairing.NewZr().Rand()
	zeta1 := pairing.NewZr().Rand()
	zeta2 := pairing.NewZr().Rand()

	s := &Scheme{
		secFac:    securityFactor,
		G:         params,
		secParams: secParams,
		pairing:   pairing,

		g1: pairing.NewG1().Rand(),
		h:  pairing.NewG1().Rand(),
		k:  pairing.NewG1().Rand(),
		f:  pairing.NewG1().Rand(),
		g2: pairing.NewG2().Rand(),
	}

	zeta1Inv := pairing.NewZr().Invert(zeta1)
	zeta2Inv := pairing.NewZr().Invert(zeta2)
	s.u = pairing.NewG1().PowZn(s.h, zeta1Inv)
	s.v = pairing.NewG1().PowZn(s.h, zeta2Inv)
	s.w = pairing.NewG2().PowZn(s.g2, gamma)

	s.makeRuntime()

	manager := managerKey{gamma: gamma, zeta1: zeta1, zeta2: zeta2}
	return s, &IssuerKey{manager}, &OpenerKey{manager}, nil
}

// Load restores the public scheme parameters from a Reader.
func Load(r io.Reader) (*Scheme, error) {
	gr := repr.NewReader(r)

	var securityFactor uint8
	gr.Decode(&securityFactor)
	secParams, err := getParams(securityFactor)
	if err != nil {
		return nil, err
	}

	var paramStr string
	if !gr.Decode(&paramStr) || paramStr == "" {
		return nil, invalidRepr(gr.Err())
	}
	params, err := pbc.NewParamsFromString(paramStr)
	if err != nil {
		return nil, pkgerrors.Wrap(groupsig.ErrInvalidParameters, err.Error())
	}
	pairing := params.NewPairing()

	s := &Scheme{
		secFac:    securityFactor,
		G:         params,
		secParams: secParams,
		pairing:   pairing,

		g1: pairing.NewG1(),
		h:  pairing.NewG1(),
		k:  pairing.NewG1(),
		u:  pairing.NewG1(),
		v:  pairing.NewG1(),
		f:  pairing.NewG1(),
		g2: pairing.NewG2(),
		w:  pairing.NewG2(),
	}
	gr.DecodeElement(s.g1)
	gr.DecodeElement(s.h)
	gr.DecodeElement(s.k)
	gr.DecodeElement(s.u)
	gr.DecodeElement(s.v)
	gr.DecodeElement(s.f)
	gr.DecodeElement(s.g2)
	gr.DecodeElement(s.w)
	if gr.Err() != nil {
		return nil, invalidRepr(gr.Err())
	}

	// Validate generation
	for _, base := range []*pbc.Element{s.g1, s.h, s.k, s.u, s.v, s.f, s.g2, s.w} {
		if base.Is0() {
			return nil, groupsig.ErrInvalidParameters
		}
	}
	s.makeRuntime()
	if s.eg1g2.Is1() {
		return nil, groupsig.ErrInvalidParameters
	}

	return s, nil
}

func (s *Scheme) WriteTo(w io.Writer) (n int64, err error) {
	gw := repr.NewWriter(w)
	gw.Encode(s.secFac)
	gw.Encode(s.G.String())
	gw.EncodeElement(s.g1)
	gw.EncodeElement(s.h)
	gw.EncodeElement(s.k)
	gw.EncodeElement(s.u)
	gw.EncodeElement(s.v)
	gw.EncodeElement(s.f)
	gw.EncodeElement(s.g2)
	gw.EncodeElement(s.w)
	return gw.Count(), gw.Err()
}

func (s *Scheme) Bytes() []byte { return repr.ConvertToBytes(s) }

// challenge derives a Fiat-Shamir challenge scalar from a domain separation
// tag, a message digest and a list of group elements.
func (s *Scheme) challenge(tag string, digest []byte, elems ...*pbc.Element) *pbc.Element {
	hash := sha256.New()
	hash.Write([]byte(tag))
	hash.Write(digest)
	for _, e := range elems {
		hash.Write(e.Bytes())
	}
	return s.pairing.NewZr().SetFromHash(hash.Sum(nil))
}

// MaxNumberOfBytesForMapToPlaintext is the byte-length ceiling for which
// MapToPlaintext guarantees injectivity.
func (s *Scheme) MaxNumberOfBytesForMapToPlaintext() int {
	return int((s.secParams.rBits - 1) / 8)
}

// MapToPlaintext embeds bytes as a scalar of the message domain. Injectivity
// is guaranteed among inputs of equal length up to the bound of
// MaxNumberOfBytesForMapToPlaintext.
func (s *Scheme) MapToPlaintext(bytes []byte) (groupsig.PlainText, error) {
	if max := s.MaxNumberOfBytesForMapToPlaintext(); len(bytes) > max {
		return nil, pkgerrors.Wrapf(groupsig.ErrPlaintextTooLong,
			"%d bytes exceeds the embedding bound of %d", len(bytes), max)
	}
	m := s.pairing.NewZr().SetBig(new(big.Int).SetBytes(bytes))
	return &PlainText{m: m}, nil
}

var _ groupsig.Scheme = (*Scheme)(nil)
