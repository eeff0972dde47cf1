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
	"io"

	"github.com/Nik-U/pbc"

	groupsig "github.com/upbcuk/upb.crypto.groupsig"
	"github.com/upbcuk/upb.crypto.groupsig/internal/repr"
)

const signTag = "cpy06-sign"

// Signature is a CPY06 group signature: the linear encryption (t1, t2, t3)
// of the membership certificate, the tracing pair (t4, t5) and the
// Fiat-Shamir signature of knowledge tying everything to the message.
type Signature struct {
	t1 *pbc.Element // G1, u^alpha
	t2 *pbc.Element // G1, v^beta
	t3 *pbc.Element // G1, a * h^(alpha+beta)
	t4 *pbc.Element // G1, f^delta
	t5 *pbc.Element // G1, t4^xi

	c       *pbc.Element // Zr, challenge
	sAlpha  *pbc.Element
	sBeta   *pbc.Element
	sX      *pbc.Element
	sY      *pbc.Element
	sDelta1 *pbc.Element
	sDelta2 *pbc.Element
	sDelta  *pbc.Element
	sXi     *pbc.Element
}

func (sig *Signature) WriteTo(w io.Writer) (int64, error) {
	gw := repr.NewWriter(w)
	gw.EncodeElement(sig.t1)
	gw.EncodeElement(sig.t2)
	gw.EncodeElement(sig.t3)
	gw.EncodeElement(sig.t4)
	gw.EncodeElement(sig.t5)
	for _, s := range sig.scalars() {
		gw.EncodeScalar(s)
	}
	return gw.Count(), gw.Err()
}

func (sig *Signature) Bytes() []byte { return repr.ConvertToBytes(sig) }

func (sig *Signature) scalars() []*pbc.Element {
	return []*pbc.Element{
		sig.c, sig.sAlpha, sig.sBeta, sig.sX, sig.sY,
		sig.sDelta1, sig.sDelta2, sig.sDelta, sig.sXi,
	}
}

func (sig *Signature) Equal(other *Signature) bool {
	if other == nil {
		return false
	}
	if !sig.t1.Equals(other.t1) || !sig.t2.Equals(other.t2) || !sig.t3.Equals(other.t3) ||
		!sig.t4.Equals(other.t4) || !sig.t5.Equals(other.t5) {
		return false
	}
	os := other.scalars()
	for i, s := range sig.scalars() {
		if !s.Equals(os[i]) {
			return false
		}
	}
	return true
}

// Sign produces a group signature over plainText using memberKey. The member
// proves knowledge of a valid certificate (a, x, y) hidden in (t1, t2, t3)
// and of the tracing exponent behind (t4, t5), bound to the message through
// the challenge.
func (s *Scheme) Sign(plainText groupsig.PlainText, memberKey groupsig.MemberKey) (groupsig.GroupSignature, error) {
	pt, ok := plainText.(*PlainText)
	if !ok {
		return nil, groupsig.ErrWrongScheme
	}
	key, ok := memberKey.(*MemberKey)
	if !ok {
		return nil, groupsig.ErrWrongScheme
	}

	alpha := s.pairing.NewZr().Rand()
	beta := s.pairing.NewZr().Rand()
	delta := s.pairing.NewZr().Rand()

	sig := &Signature{
		t1: s.pairing.NewG1().PowerZn(s.uPower, alpha),
		t2: s.pairing.NewG1().PowerZn(s.vPower, beta),
	}
	alphaBeta := s.pairing.NewZr().Add(alpha, beta)
	sig.t3 = s.pairing.NewG1().PowerZn(s.hPower, alphaBeta)
	sig.t3.Mul(key.a, sig.t3)
	sig.t4 = s.pairing.NewG1().PowerZn(s.fPower, delta)
	sig.t5 = s.pairing.NewG1().PowZn(sig.t4, key.xi)

	delta1 := s.pairing.NewZr().Mul(key.x, alpha)
	delta2 := s.pairing.NewZr().Mul(key.x, beta)

	var rnds [8]*pbc.Element
	for i := range rnds {
		rnds[i] = s.pairing.NewZr().Rand()
	}
	rAlpha, rBeta, rX, rY := rnds[0], rnds[1], rnds[2], rnds[3]
	rDelta1, rDelta2, rDelta, rXi := rnds[4], rnds[5], rnds[6], rnds[7]

	r1 := s.pairing.NewG1().PowerZn(s.uPower, rAlpha)
	r2 := s.pairing.NewG1().PowerZn(s.vPower, rBeta)
	r3 := s.spkCommitment(sig.t3, rX, rAlpha, rBeta, rDelta1, rDelta2, rY)

	exp := s.pairing.NewZr().Neg(rDelta1)
	r4 := s.pairing.NewG1().PowZn(sig.t1, rX)
	r4.Mul(r4, s.pairing.NewG1().PowerZn(s.uPower, exp))

	exp.Neg(rDelta2)
	r5 := s.pairing.NewG1().PowZn(sig.t2, rX)
	r5.Mul(r5, s.pairing.NewG1().PowerZn(s.vPower, exp))

	r6 := s.pairing.NewG1().PowerZn(s.fPower, rDelta)
	r7 := s.pairing.NewG1().PowZn(sig.t4, rXi)

	sig.c = s.challenge(signTag, pt.digest(),
		sig.t1, sig.t2, sig.t3, sig.t4, sig.t5, r1, r2, r3, r4, r5, r6, r7)

	sig.sAlpha = response(s.pairing, sig.c, alpha, rAlpha)
	sig.sBeta = response(s.pairing, sig.c, beta, rBeta)
	sig.sX = response(s.pairing, sig.c, key.x, rX)
	sig.sY = response(s.pairing, sig.c, key.y, rY)
	sig.sDelta1 = response(s.pairing, sig.c, delta1, rDelta1)
	sig.sDelta2 = response(s.pairing, sig.c, delta2, rDelta2)
	sig.sDelta = response(s.pairing, sig.c, delta, rDelta)
	sig.sXi = response(s.pairing, sig.c, key.xi, rXi)

	return sig, nil
}

// response computes the Schnorr response r + c*secret.
func response(pairing *pbc.Pairing, c, secret, r *pbc.Element) *pbc.Element {
	out := pairing.NewZr().Mul(c, secret)
	return out.Add(out, r)
}

// spkCommitment computes the GT-side term of the signature of knowledge:
//
//	e(t3, g2)^ex * e(h, w)^-(ea+eb) * e(h, g2)^-(ed1+ed2) * e(k, g2)^-ey
//
// For the real witnesses this term equals e(g1, g2)/e(t3, w); the verifier
// reconstructs it from the responses plus that quotient raised to c.
func (s *Scheme) spkCommitment(t3, ex, ea, eb, ed1, ed2, ey *pbc.Element) *pbc.Element {
	out := s.pairing.NewGT().Pair(t3, s.g2)
	out.PowZn(out, ex)

	exp := s.pairing.NewZr().Add(ea, eb)
	exp.Neg(exp)
	out.Mul(out, s.pairing.NewGT().PowZn(s.ehw, exp))

	exp.Add(ed1, ed2)
	exp.Neg(exp)
	out.Mul(out, s.pairing.NewGT().PowZn(s.ehg2, exp))

	exp.Neg(ey)
	out.Mul(out, s.pairing.NewGT().PowZn(s.ekg2, exp))
	return out
}

// Verify reports whether signature is a valid group signature over
// plainText. It reveals nothing about the signer.
func (s *Scheme) Verify(plainText groupsig.PlainText, signature groupsig.GroupSignature) bool {
	pt, ok := plainText.(*PlainText)
	if !ok {
		return false
	}
	sig, ok := signature.(*Signature)
	if !ok {
		return false
	}
	// A degenerate tracing pair would make the claim and trace relations
	// vacuous.
	if sig.t4.Is0() {
		return false
	}

	cNeg := s.pairing.NewZr().Neg(sig.c)

	r1 := s.pairing.NewG1().PowerZn(s.uPower, sig.sAlpha)
	r1.Mul(r1, s.pairing.NewG1().PowZn(sig.t1, cNeg))

	r2 := s.pairing.NewG1().PowerZn(s.vPower, sig.sBeta)
	r2.Mul(r2, s.pairing.NewG1().PowZn(sig.t2, cNeg))

	r3 := s.spkCommitment(sig.t3, sig.sX, sig.sAlpha, sig.sBeta, sig.sDelta1, sig.sDelta2, sig.sY)
	vTerm := s.pairing.NewGT().Pair(sig.t3, s.w)
	vTerm.Div(vTerm, s.eg1g2)
	vTerm.PowZn(vTerm, sig.c)
	r3.Mul(r3, vTerm)

	exp := s.pairing.NewZr().Neg(sig.sDelta1)
	r4 := s.pairing.NewG1().PowZn(sig.t1, sig.sX)
	r4.Mul(r4, s.pairing.NewG1().PowerZn(s.uPower, exp))

	exp.Neg(sig.sDelta2)
	r5 := s.pairing.NewG1().PowZn(sig.t2, sig.sX)
	r5.Mul(r5, s.pairing.NewG1().PowerZn(s.vPower, exp))

	r6 := s.pairing.NewG1().PowerZn(s.fPower, sig.sDelta)
	r6.Mul(r6, s.pairing.NewG1().PowZn(sig.t4, cNeg))

	r7 := s.pairing.NewG1().PowZn(sig.t4, sig.sXi)
	r7.Mul(r7, s.pairing.NewG1().PowZn(sig.t5, cNeg))

	c := s.challenge(signTag, pt.digest(),
		sig.t1, sig.t2, sig.t3, sig.t4, sig.t5, r1, r2, r3, r4, r5, r6, r7)
	return c.Equals(sig.c)
}

// VerifyWithRevocation is Verify plus the verifier-local revocation check:
// a signature whose tracing pair matches any revealed trapdoor in rl is
// rejected.
func (s *Scheme) VerifyWithRevocation(plainText groupsig.PlainText, signature groupsig.GroupSignature,
	rl groupsig.RevocationList) bool {
	if !s.Verify(plainText, signature) {
		return false
	}
	if rl == nil {
		return true
	}
	sig := signature.(*Signature)
	return !s.matchesRevocation(sig, rl)
}

// matchesRevocation reports whether the signature's tracing pair matches any
// trapdoor in rl.
func (s *Scheme) matchesRevocation(sig *Signature, rl groupsig.RevocationList) bool {
	probe := s.pairing.NewG1()
	for _, e := range rl.Entries() {
		entry, ok := e.(*RevocationListEntry)
		if !ok {
			continue
		}
		probe.PowZn(sig.t4, entry.xi)
		if probe.Equals(sig.t5) {
			return true
		}
	}
	return false
}

var _ groupsig.GroupSignature = (*Signature)(nil)
