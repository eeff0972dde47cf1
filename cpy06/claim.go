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
	pkgerrors "github.com/pkg/errors"

	groupsig "github.com/upbcuk/upb.crypto.groupsig"
	"github.com/upbcuk/upb.crypto.groupsig/internal/repr"
)

const claimTag = "cpy06-claim"

// ClaimProof is a member's self-issued proof of authorship of one specific
// signature: a Schnorr proof of the tracing exponent behind the signature's
// tracing pair, with the full signature bound into the challenge.
type ClaimProof struct {
	c *pbc.Element // Zr
	s *pbc.Element // Zr
}

func (p *ClaimProof) WriteTo(w io.Writer) (int64, error) {
	gw := repr.NewWriter(w)
	gw.EncodeScalar(p.c)
	gw.EncodeScalar(p.s)
	return gw.Count(), gw.Err()
}

func (p *ClaimProof) Bytes() []byte { return repr.ConvertToBytes(p) }

// Claim proves that signature was produced with memberKey, without opener
// involvement. It fails with ErrNotSignatureOwner if the signature's tracing
// pair does not match the member's tracing exponent.
//
// Note that Reveal publishes the same exponent the claim proof is built on:
// once a member is revealed, claims for that member's signatures are no
// longer exclusive to the member.
func (s *Scheme) Claim(memberKey groupsig.MemberKey, signature groupsig.GroupSignature) (groupsig.ClaimProof, error) {
	key, ok := memberKey.(*MemberKey)
	if !ok {
		return nil, groupsig.ErrWrongScheme
	}
	sig, ok := signature.(*Signature)
	if !ok {
		return nil, groupsig.ErrWrongScheme
	}

	if !s.pairing.NewG1().PowZn(sig.t4, key.xi).Equals(sig.t5) {
		return nil, pkgerrors.Wrapf(groupsig.ErrNotSignatureOwner, "member %d", key.id)
	}

	r := s.pairing.NewZr().Rand()
	commitment := s.pairing.NewG1().PowZn(sig.t4, r)

	proof := &ClaimProof{}
	proof.c = s.challenge(claimTag, sig.Bytes(), commitment)
	proof.s = response(s.pairing, proof.c, key.xi, r)
	return proof, nil
}

// ClaimVerify checks a claim proof against the exact signature it was
// produced for. A mismatched pair yields false; errors are reserved for
// artifacts from a different scheme.
func (s *Scheme) ClaimVerify(proof groupsig.ClaimProof, signature groupsig.GroupSignature) (bool, error) {
	p, ok := proof.(*ClaimProof)
	if !ok {
		return false, groupsig.ErrWrongScheme
	}
	sig, ok := signature.(*Signature)
	if !ok {
		return false, groupsig.ErrWrongScheme
	}

	cNeg := s.pairing.NewZr().Neg(p.c)
	commitment := s.pairing.NewG1().PowZn(sig.t4, p.s)
	commitment.Mul(commitment, s.pairing.NewG1().PowZn(sig.t5, cNeg))

	c := s.challenge(claimTag, sig.Bytes(), commitment)
	return c.Equals(p.c), nil
}

var _ groupsig.ClaimProof = (*ClaimProof)(nil)
