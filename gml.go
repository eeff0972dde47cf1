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
	stderrors "errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/hyperledger/aries-framework-go/component/log"
	spi "github.com/hyperledger/aries-framework-go/spi/storage"
	pkgerrors "github.com/pkg/errors"

	"github.com/upbcuk/upb.crypto.groupsig/internal/repr"
)

var gmlLogger = log.New("groupsig/gml")

// MemoryGML is an in-memory group membership list safe for concurrent use.
type MemoryGML struct {
	mu      sync.RWMutex
	entries map[uint32]GMLEntry
}

// NewGML returns an empty in-memory group membership list.
func NewGML() *MemoryGML {
	return &MemoryGML{entries: make(map[uint32]GMLEntry)}
}

func (g *MemoryGML) Put(e GMLEntry) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.entries[e.Identity()]; ok {
		return pkgerrors.Wrapf(ErrDuplicateIdentity, "gml entry %d", e.Identity())
	}
	g.entries[e.Identity()] = e
	gmlLogger.Debugf("appended gml entry for member %d", e.Identity())
	return nil
}

func (g *MemoryGML) Get(id uint32) (GMLEntry, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.entries[id]
	if !ok {
		return nil, pkgerrors.Wrapf(ErrUnknownIdentity, "gml entry %d", id)
	}
	return e, nil
}

func (g *MemoryGML) NextNewUserID() uint32 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return smallestUnused(func(id uint32) bool {
		_, ok := g.entries[id]
		return ok
	})
}

func (g *MemoryGML) Entries() []GMLEntry {
	g.mu.RLock()
	defer g.mu.RUnlock()
	entries := make([]GMLEntry, 0, len(g.entries))
	for _, e := range g.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Identity() < entries[j].Identity() })
	return entries
}

func (g *MemoryGML) WriteTo(w io.Writer) (int64, error) {
	return writeLedger(w, gmlExportables(g.Entries()))
}

func (g *MemoryGML) Bytes() []byte { return repr.ConvertToBytes(g) }

// StoreGML is a group membership list backed by a storage SPI store. Entries
// are persisted as their canonical representation and reconstructed with the
// decode function of the owning scheme.
type StoreGML struct {
	mu     sync.Mutex
	store  spi.Store
	decode func(io.Reader) (GMLEntry, error)
}

const gmlTagName = "gmlEntry"

// NewStoreGML opens (or creates) the named store on the provider and returns
// a GML persisted in it.
func NewStoreGML(provider spi.Provider, name string, decode func(io.Reader) (GMLEntry, error)) (*StoreGML, error) {
	store, err := provider.OpenStore(name)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "open gml store")
	}
	return &StoreGML{store: store, decode: decode}, nil
}

func gmlKey(id uint32) string { return fmt.Sprintf("member_%d", id) }

func (g *StoreGML) Put(e GMLEntry) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, err := g.store.Get(gmlKey(e.Identity())); err == nil {
		return pkgerrors.Wrapf(ErrDuplicateIdentity, "gml entry %d", e.Identity())
	} else if !stderrors.Is(err, spi.ErrDataNotFound) {
		return pkgerrors.Wrap(err, "probe gml store")
	}
	if err := g.store.Put(gmlKey(e.Identity()), e.Bytes(), spi.Tag{Name: gmlTagName}); err != nil {
		return pkgerrors.Wrap(err, "persist gml entry")
	}
	gmlLogger.Debugf("persisted gml entry for member %d", e.Identity())
	return nil
}

func (g *StoreGML) Get(id uint32) (GMLEntry, error) {
	raw, err := g.store.Get(gmlKey(id))
	if stderrors.Is(err, spi.ErrDataNotFound) {
		return nil, pkgerrors.Wrapf(ErrUnknownIdentity, "gml entry %d", id)
	} else if err != nil {
		return nil, pkgerrors.Wrap(err, "read gml store")
	}
	return g.decode(bytes.NewReader(raw))
}

func (g *StoreGML) NextNewUserID() uint32 {
	present := make(map[uint32]bool)
	for _, e := range g.Entries() {
		present[e.Identity()] = true
	}
	return smallestUnused(func(id uint32) bool { return present[id] })
}

func (g *StoreGML) Entries() []GMLEntry {
	it, err := g.store.Query(gmlTagName)
	if err != nil {
		gmlLogger.Warnf("gml store query failed: %v", err)
		return nil
	}
	defer it.Close()

	var entries []GMLEntry
	for {
		more, err := it.Next()
		if err != nil || !more {
			break
		}
		raw, err := it.Value()
		if err != nil {
			continue
		}
		e, err := g.decode(bytes.NewReader(raw))
		if err != nil {
			gmlLogger.Warnf("skipping undecodable gml entry: %v", err)
			continue
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Identity() < entries[j].Identity() })
	return entries
}

func (g *StoreGML) WriteTo(w io.Writer) (int64, error) {
	return writeLedger(w, gmlExportables(g.Entries()))
}

func (g *StoreGML) Bytes() []byte { return repr.ConvertToBytes(g) }

// smallestUnused returns the smallest positive identity for which present
// reports false.
func smallestUnused(present func(uint32) bool) uint32 {
	for id := uint32(1); ; id++ {
		if !present(id) {
			return id
		}
	}
}

// writeLedger encodes a ledger as an entry count followed by each entry's
// self-contained representation.
func writeLedger(w io.Writer, entries []Exportable) (int64, error) {
	gw := repr.NewWriter(w)
	gw.Encode(uint32(len(entries)))
	for _, e := range entries {
		gw.Encode(e.Bytes())
	}
	return gw.Count(), gw.Err()
}

func gmlExportables(entries []GMLEntry) []Exportable {
	out := make([]Exportable, len(entries))
	for i, e := range entries {
		out[i] = e
	}
	return out
}
