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

// PlainText is a message scalar in the signing domain Zr.
type PlainText struct {
	m *pbc.Element
}

func (pt *PlainText) WriteTo(w io.Writer) (int64, error) {
	gw := repr.NewWriter(w)
	gw.EncodeScalar(pt.m)
	return gw.Count(), gw.Err()
}

func (pt *PlainText) Bytes() []byte { return repr.ConvertToBytes(pt) }

func (pt *PlainText) Equal(other groupsig.PlainText) bool {
	if pt2, ok := other.(*PlainText); ok {
		return pt.m.Equals(pt2.m)
	}
	return false
}

// digest is the canonical byte form hashed into the Fiat-Shamir challenge.
func (pt *PlainText) digest() []byte { return pt.m.Bytes() }

var _ groupsig.PlainText = (*PlainText)(nil)
