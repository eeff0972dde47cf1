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
	"encoding/binary"
	"io"

	"github.com/Nik-U/pbc"
	pkgerrors "github.com/pkg/errors"

	groupsig "github.com/upbcuk/upb.crypto.groupsig"
	"github.com/upbcuk/upb.crypto.groupsig/internal/repr"
)

const openTag = "cpy06-open"

// OpenProof attests that a signature decrypts to the certificate of a
// specific member: a proof of knowledge of the linear encryption exponents
// (zeta1, zeta2) consistent with the public bases and with the decryption,
// with the member identity and signature bound into the challenge.
type OpenProof struct {
	a  *pbc.Element // G1, decrypted membership certificate
	c  *pbc.Element // Zr
	s1 *pbc.Element // Zr
	s2 *pbc.Element // Zr
}

func (p *OpenProof) WriteTo(w io.Writer) (int64, error) {
	gw := repr.NewWriter(w)
	gw.EncodeElement(p.a)
	gw.EncodeScalar(p.c)
	gw.EncodeScalar(p.s1)
	gw.EncodeScalar(p.s2)
	return gw.Count(), gw.Err()
}

func (p *OpenProof) Bytes() []byte { return repr.ConvertToBytes(p) }

// openDigest binds the claimed identity and the full signature into the
// open proof challenge.
func openDigest(id uint32, sig *Signature) []byte {
	out := make([]byte, 4, 4+12*32)
	binary.BigEndian.PutUint32(out, id)
	return append(out, sig.Bytes()...)
}

// decrypt recovers the membership certificate hidden in the signature's
// linear encryption.
func (s *Scheme) decrypt(sig *Signature, openerKey *OpenerKey) *pbc.Element {
	mask := s.pairing.NewG1().PowZn(sig.t1, openerKey.zeta1)
	mask.Mul(mask, s.pairing.NewG1().PowZn(sig.t2, openerKey.zeta2))
	return s.pairing.NewG1().Div(sig.t3, mask)
}

// Open deanonymizes a signature: it decrypts the membership certificate with
// the opener key, locates the matching GML entry and emits a proof of
// correct opening. A certificate matching no entry fails with
// ErrAttributionFailure. The optional rl only short-circuits the lookup via
// the tracing pair; it never changes the produced identity.
func (s *Scheme) Open(signature groupsig.GroupSignature, openerKey groupsig.OpenerKey,
	gml groupsig.GML, rl groupsig.RevocationList) (*groupsig.OpenResult, error) {
	sig, ok := signature.(*Signature)
	if !ok {
		return nil, groupsig.ErrWrongScheme
	}
	key, ok := openerKey.(*OpenerKey)
	if !ok {
		return nil, groupsig.ErrWrongScheme
	}

	a := s.decrypt(sig, key)

	entry := s.findByCertificate(a, gml, rl, sig)
	if entry == nil {
		return nil, pkgerrors.Wrap(groupsig.ErrAttributionFailure,
			"decrypted certificate matches no gml entry")
	}

	r1 := s.pairing.NewZr().Rand()
	r2 := s.pairing.NewZr().Rand()
	cr1 := s.pairing.NewG1().PowerZn(s.uPower, r1)
	cr2 := s.pairing.NewG1().PowerZn(s.vPower, r2)
	cr3 := s.pairing.NewG1().PowZn(sig.t1, r1)
	cr3.Mul(cr3, s.pairing.NewG1().PowZn(sig.t2, r2))

	proof := &OpenProof{a: a}
	proof.c = s.challenge(openTag, openDigest(entry.id, sig), a, cr1, cr2, cr3)
	proof.s1 = response(s.pairing, proof.c, key.zeta1, r1)
	proof.s2 = response(s.pairing, proof.c, key.zeta2, r2)

	return &groupsig.OpenResult{MemberIdentity: entry.id, Proof: proof}, nil
}

// findByCertificate locates the GML entry holding certificate a. When a
// revocation list is available, trapdoors are probed first so that opening a
// known-revoked member's signature skips the full scan.
func (s *Scheme) findByCertificate(a *pbc.Element, gml groupsig.GML,
	rl groupsig.RevocationList, sig *Signature) *GMLEntry {
	if rl != nil {
		probe := s.pairing.NewG1()
		for _, re := range rl.Entries() {
			rle, ok := re.(*RevocationListEntry)
			if !ok {
				continue
			}
			probe.PowZn(sig.t4, rle.xi)
			if !probe.Equals(sig.t5) {
				continue
			}
			if e, err := gml.Get(rle.id); err == nil {
				if entry, ok := e.(*GMLEntry); ok && entry.a.Equals(a) {
					return entry
				}
			}
		}
	}
	for _, e := range gml.Entries() {
		if entry, ok := e.(*GMLEntry); ok && entry.a.Equals(a) {
			return entry
		}
	}
	return nil
}

// OpenVerify checks an open proof against the claimed member identity and
// signature. A mismatch yields false; errors are reserved for artifacts from
// a different scheme.
func (s *Scheme) OpenVerify(memberIdentity uint32, proof groupsig.OpenProof,
	signature groupsig.GroupSignature) (bool, error) {
	p, ok := proof.(*OpenProof)
	if !ok {
		return false, groupsig.ErrWrongScheme
	}
	sig, ok := signature.(*Signature)
	if !ok {
		return false, groupsig.ErrWrongScheme
	}

	cNeg := s.pairing.NewZr().Neg(p.c)
	hNeg := s.pairing.NewG1().PowerZn(s.hPower, cNeg)

	cr1 := s.pairing.NewG1().PowerZn(s.uPower, p.s1)
	cr1.Mul(cr1, hNeg)

	cr2 := s.pairing.NewG1().PowerZn(s.vPower, p.s2)
	cr2.Mul(cr2, hNeg)

	d := s.pairing.NewG1().Div(sig.t3, p.a)
	cr3 := s.pairing.NewG1().PowZn(sig.t1, p.s1)
	cr3.Mul(cr3, s.pairing.NewG1().PowZn(sig.t2, p.s2))
	cr3.Mul(cr3, s.pairing.NewG1().PowZn(d, cNeg))

	c := s.challenge(openTag, openDigest(memberIdentity, sig), p.a, cr1, cr2, cr3)
	return c.Equals(p.c), nil
}

// Reveal copies the tracing trapdoor of the given member from its GML entry
// into the revocation list. Revealing an identity that is already revealed
// is a no-op; revealing an unknown identity fails with ErrUnknownIdentity.
func (s *Scheme) Reveal(gml groupsig.GML, memberIdentity uint32, rl groupsig.RevocationList) error {
	if rl.Contains(memberIdentity) {
		return nil
	}
	e, err := gml.Get(memberIdentity)
	if err != nil {
		return err
	}
	entry, ok := e.(*GMLEntry)
	if !ok {
		return groupsig.ErrWrongScheme
	}
	return rl.Put(&RevocationListEntry{id: entry.id, xi: entry.xi})
}

// Trace reports whether signature was produced by any member whose trapdoor
// is in rl, without running a full Open. The opener key and GML are not
// needed by this instantiation and are only type-checked when supplied.
func (s *Scheme) Trace(signature groupsig.GroupSignature, rl groupsig.RevocationList,
	openerKey groupsig.OpenerKey, gml groupsig.GML) (bool, error) {
	sig, ok := signature.(*Signature)
	if !ok {
		return false, groupsig.ErrWrongScheme
	}
	if openerKey != nil {
		if _, ok := openerKey.(*OpenerKey); !ok {
			return false, groupsig.ErrWrongScheme
		}
	}
	return s.matchesRevocation(sig, rl), nil
}

var _ groupsig.OpenProof = (*OpenProof)(nil)
