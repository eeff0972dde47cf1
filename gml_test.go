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
	"io"
	"sync"
	"testing"

	"github.com/hyperledger/aries-framework-go/component/storageutil/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upbcuk/upb.crypto.groupsig/internal/repr"
)

// testEntry is a minimal ledger entry carrying only an identity. The ledger
// implementations never look inside entries, so this is all the tests need.
type testEntry struct {
	id uint32
}

func (e *testEntry) Identity() uint32 { return e.id }

func (e *testEntry) WriteTo(w io.Writer) (int64, error) {
	gw := repr.NewWriter(w)
	gw.Encode(e.id)
	return gw.Count(), gw.Err()
}

func (e *testEntry) Bytes() []byte { return repr.ConvertToBytes(e) }

func decodeTestEntry(r io.Reader) (*testEntry, error) {
	gr := repr.NewReader(r)
	e := &testEntry{}
	gr.Decode(&e.id)
	return e, gr.Err()
}

// gmlUnderTest runs the GML contract checks against any implementation.
func gmlUnderTest(t *testing.T, gml GML) {
	t.Helper()

	require.EqualValues(t, 1, gml.NextNewUserID())

	require.NoError(t, gml.Put(&testEntry{id: 1}))
	require.NoError(t, gml.Put(&testEntry{id: 3}))

	err := gml.Put(&testEntry{id: 1})
	require.ErrorIs(t, err, ErrDuplicateIdentity)

	e, err := gml.Get(1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, e.Identity())

	_, err = gml.Get(2)
	require.ErrorIs(t, err, ErrUnknownIdentity)

	// The smallest gap is reused before new identities are minted.
	assert.EqualValues(t, 2, gml.NextNewUserID())
	require.NoError(t, gml.Put(&testEntry{id: 2}))
	assert.EqualValues(t, 4, gml.NextNewUserID())

	entries := gml.Entries()
	require.Len(t, entries, 3)
	for i, e := range entries {
		assert.EqualValues(t, i+1, e.Identity(), "entries must come back in identity order")
	}
}

func TestMemoryGML(t *testing.T) {
	gmlUnderTest(t, NewGML())
}

func TestStoreGML(t *testing.T) {
	gml, err := NewStoreGML(mem.NewProvider(), "gml", func(r io.Reader) (GMLEntry, error) {
		return decodeTestEntry(r)
	})
	require.NoError(t, err)
	gmlUnderTest(t, gml)
}

// The admission loop of the join protocol relies on Put rejecting duplicate
// identities under contention. Racing assigners must end up with a dense,
// collision-free identity space.
func TestGMLConcurrentAssignment(t *testing.T) {
	const assigners = 16

	gml := NewGML()

	var wg sync.WaitGroup
	for i := 0; i < assigners; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				id := gml.NextNewUserID()
				if err := gml.Put(&testEntry{id: id}); err == nil {
					return
				}
			}
		}()
	}
	wg.Wait()

	entries := gml.Entries()
	require.Len(t, entries, assigners)
	for i, e := range entries {
		assert.EqualValues(t, i+1, e.Identity())
	}
}

func revocationListUnderTest(t *testing.T, rl RevocationList) {
	t.Helper()

	require.NoError(t, rl.Put(&testEntry{id: 5}))
	require.NoError(t, rl.Put(&testEntry{id: 2}))

	// Re-adding an identity is a no-op, not an error.
	require.NoError(t, rl.Put(&testEntry{id: 5}))
	require.Len(t, rl.Entries(), 2)

	e, err := rl.Get(5)
	require.NoError(t, err)
	assert.EqualValues(t, 5, e.Identity())

	assert.True(t, rl.Contains(5))
	assert.False(t, rl.Contains(7))

	_, err = rl.Get(7)
	require.ErrorIs(t, err, ErrUnknownIdentity)

	entries := rl.Entries()
	assert.EqualValues(t, 2, entries[0].Identity())
	assert.EqualValues(t, 5, entries[1].Identity())
}

func TestMemoryRevocationList(t *testing.T) {
	revocationListUnderTest(t, NewRevocationList())
}

func TestStoreRevocationList(t *testing.T) {
	rl, err := NewStoreRevocationList(mem.NewProvider(), "rl", func(r io.Reader) (RevocationListEntry, error) {
		return decodeTestEntry(r)
	})
	require.NoError(t, err)
	revocationListUnderTest(t, rl)
}
