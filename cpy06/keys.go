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

// managerKey is the group-level secret tuple shared by the issuer and opener
// roles: the certification exponent gamma and the linear encryption
// exponents zeta1, zeta2.
type managerKey struct {
	gamma *pbc.Element
	zeta1 *pbc.Element
	zeta2 *pbc.Element
}

func (mk *managerKey) equal(other *managerKey) bool {
	return mk.gamma.Equals(other.gamma) &&
		mk.zeta1.Equals(other.zeta1) &&
		mk.zeta2.Equals(other.zeta2)
}

func (mk *managerKey) encodeTo(gw *repr.Writer) {
	gw.EncodeScalar(mk.gamma)
	gw.EncodeScalar(mk.zeta1)
	gw.EncodeScalar(mk.zeta2)
}

func (s *Scheme) decodeManagerKey(gr *repr.Reader) (managerKey, error) {
	mk := managerKey{
		gamma: s.pairing.NewZr(),
		zeta1: s.pairing.NewZr(),
		zeta2: s.pairing.NewZr(),
	}
	gr.DecodeScalar(mk.gamma)
	gr.DecodeScalar(mk.zeta1)
	gr.DecodeScalar(mk.zeta2)
	return mk, invalidRepr(gr.Err())
}

// IssuerKey authorizes running the issuer side of the join protocol.
type IssuerKey struct {
	managerKey
}

func (ik *IssuerKey) WriteTo(w io.Writer) (int64, error) {
	gw := repr.NewWriter(w)
	ik.encodeTo(gw)
	return gw.Count(), gw.Err()
}

func (ik *IssuerKey) Bytes() []byte { return repr.ConvertToBytes(ik) }

func (ik *IssuerKey) Equal(other *IssuerKey) bool {
	return other != nil && ik.equal(&other.managerKey)
}

// OpenerKey authorizes opening and tracing of group signatures.
type OpenerKey struct {
	managerKey
}

func (ok *OpenerKey) WriteTo(w io.Writer) (int64, error) {
	gw := repr.NewWriter(w)
	ok.encodeTo(gw)
	return gw.Count(), gw.Err()
}

func (ok *OpenerKey) Bytes() []byte { return repr.ConvertToBytes(ok) }

func (ok *OpenerKey) Equal(other *OpenerKey) bool {
	return other != nil && ok.equal(&other.managerKey)
}

// MemberKey is the secret key of one group member: the member identity, the
// certified exponent pair (x, y), the tracing exponent xi and the membership
// certificate a = (g1*k^y)^(1/(gamma+x)).
type MemberKey struct {
	id uint32
	x  *pbc.Element // Zr, issuer-chosen
	y  *pbc.Element // Zr, member-chosen, never seen by the issuer
	xi *pbc.Element // Zr, tracing exponent
	a  *pbc.Element // G1
}

func (k *MemberKey) Identity() uint32 { return k.id }

func (k *MemberKey) WriteTo(w io.Writer) (int64, error) {
	gw := repr.NewWriter(w)
	gw.Encode(k.id)
	gw.EncodeScalar(k.x)
	gw.EncodeScalar(k.y)
	gw.EncodeScalar(k.xi)
	gw.EncodeElement(k.a)
	return gw.Count(), gw.Err()
}

func (k *MemberKey) Bytes() []byte { return repr.ConvertToBytes(k) }

func (k *MemberKey) Equal(other *MemberKey) bool {
	return other != nil && k.id == other.id &&
		k.x.Equals(other.x) && k.y.Equals(other.y) &&
		k.xi.Equals(other.xi) && k.a.Equals(other.a)
}

// GMLEntry binds a member identity to the data the opener needs to attribute
// that member's signatures: the membership certificate, the commitment from
// the join request and the tracing trapdoor seed.
type GMLEntry struct {
	id         uint32
	a          *pbc.Element // G1, membership certificate
	commitment *pbc.Element // G1, k^y from the join request
	xi         *pbc.Element // Zr, tracing trapdoor seed
}

func (e *GMLEntry) Identity() uint32 { return e.id }

func (e *GMLEntry) WriteTo(w io.Writer) (int64, error) {
	gw := repr.NewWriter(w)
	gw.Encode(e.id)
	gw.EncodeElement(e.a)
	gw.EncodeElement(e.commitment)
	gw.EncodeScalar(e.xi)
	return gw.Count(), gw.Err()
}

func (e *GMLEntry) Bytes() []byte { return repr.ConvertToBytes(e) }

func (e *GMLEntry) Equal(other *GMLEntry) bool {
	return other != nil && e.id == other.id &&
		e.a.Equals(other.a) && e.commitment.Equals(other.commitment) &&
		e.xi.Equals(other.xi)
}

// RevocationListEntry is a revealed tracing trapdoor.
type RevocationListEntry struct {
	id uint32
	xi *pbc.Element // Zr
}

func (e *RevocationListEntry) Identity() uint32 { return e.id }

func (e *RevocationListEntry) WriteTo(w io.Writer) (int64, error) {
	gw := repr.NewWriter(w)
	gw.Encode(e.id)
	gw.EncodeScalar(e.xi)
	return gw.Count(), gw.Err()
}

func (e *RevocationListEntry) Bytes() []byte { return repr.ConvertToBytes(e) }

func (e *RevocationListEntry) Equal(other *RevocationListEntry) bool {
	return other != nil && e.id == other.id && e.xi.Equals(other.xi)
}

var (
	_ groupsig.IssuerKey           = (*IssuerKey)(nil)
	_ groupsig.OpenerKey           = (*OpenerKey)(nil)
	_ groupsig.MemberKey           = (*MemberKey)(nil)
	_ groupsig.GMLEntry            = (*GMLEntry)(nil)
	_ groupsig.RevocationListEntry = (*RevocationListEntry)(nil)
)
