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

package groupsig

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// ArtifactKind enumerates the closed set of artifact kinds that can be
// restored from their representation through a scheme.
type ArtifactKind uint8

const (
	KindMemberKey ArtifactKind = iota + 1
	KindOpenerKey
	KindIssuerKey
	KindSignature
	KindPlainText
	KindGMLEntry
	KindGML
	KindRevocationListEntry
	KindRevocationList
)

func (k ArtifactKind) String() string {
	switch k {
	case KindMemberKey:
		return "MemberKey"
	case KindOpenerKey:
		return "OpenerKey"
	case KindIssuerKey:
		return "IssuerKey"
	case KindSignature:
		return "Signature"
	case KindPlainText:
		return "PlainText"
	case KindGMLEntry:
		return "GMLEntry"
	case KindGML:
		return "GML"
	case KindRevocationListEntry:
		return "RevocationListEntry"
	case KindRevocationList:
		return "RevocationList"
	}
	return fmt.Sprintf("ArtifactKind(%d)", uint8(k))
}

// Restore reconstructs an artifact of the requested kind from its
// representation by delegating to the scheme's per-kind load method. A kind
// outside the closed set fails with ErrUnsupportedKind naming the kind.
func Restore(scheme Scheme, kind ArtifactKind, r io.Reader) (Exportable, error) {
	switch kind {
	case KindMemberKey:
		return scheme.LoadMemberKey(r)
	case KindOpenerKey:
		return scheme.LoadOpenerKey(r)
	case KindIssuerKey:
		return scheme.LoadIssuerKey(r)
	case KindSignature:
		return scheme.LoadSignature(r)
	case KindPlainText:
		return scheme.LoadPlainText(r)
	case KindGMLEntry:
		return scheme.LoadGMLEntry(r)
	case KindGML:
		return scheme.LoadGML(r)
	case KindRevocationListEntry:
		return scheme.LoadRevocationListEntry(r)
	case KindRevocationList:
		return scheme.LoadRevocationList(r)
	}
	return nil, errors.Wrapf(ErrUnsupportedKind, "cannot restore %s", kind)
}
