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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactKindString(t *testing.T) {
	names := map[ArtifactKind]string{
		KindMemberKey:           "MemberKey",
		KindOpenerKey:           "OpenerKey",
		KindIssuerKey:           "IssuerKey",
		KindSignature:           "Signature",
		KindPlainText:           "PlainText",
		KindGMLEntry:            "GMLEntry",
		KindGML:                 "GML",
		KindRevocationListEntry: "RevocationListEntry",
		KindRevocationList:      "RevocationList",
	}
	for kind, name := range names {
		assert.Equal(t, name, kind.String())
	}
	assert.Equal(t, "ArtifactKind(42)", ArtifactKind(42).String())
}

func TestRestoreUnsupportedKind(t *testing.T) {
	// Dispatch must reject the kind before consulting the scheme.
	_, err := Restore(nil, ArtifactKind(0), bytes.NewReader(nil))
	require.ErrorIs(t, err, ErrUnsupportedKind)
	assert.Contains(t, err.Error(), "ArtifactKind(0)")

	_, err = Restore(nil, ArtifactKind(99), bytes.NewReader(nil))
	require.ErrorIs(t, err, ErrUnsupportedKind)
}
