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

	spi "github.com/hyperledger/aries-framework-go/spi/storage"
	pkgerrors "github.com/pkg/errors"

	"github.com/upbcuk/upb.crypto.groupsig/internal/repr"
)

// MemoryRevocationList is an in-memory revocation list safe for concurrent
// use.
type MemoryRevocationList struct {
	mu      sync.RWMutex
	entries map[uint32]RevocationListEntry
}

// NewRevocationList returns an empty in-memory revocation list.
func NewRevocationList() *MemoryRevocationList {
	return &MemoryRevocationList{entries: make(map[uint32]RevocationListEntry)}
}

func (l *MemoryRevocationList) Put(e RevocationListEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.entries[e.Identity()]; ok {
		return nil
	}
	l.entries[e.Identity()] = e
	gmlLogger.Debugf("revealed trapdoor for member %d", e.Identity())
	return nil
}

func (l *MemoryRevocationList) Get(id uint32) (RevocationListEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.entries[id]
	if !ok {
		return nil, pkgerrors.Wrapf(ErrUnknownIdentity, "revocation entry %d", id)
	}
	return e, nil
}

func (l *MemoryRevocationList) Contains(id uint32) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.entries[id]
	return ok
}

func (l *MemoryRevocationList) Entries() []RevocationListEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	entries := make([]RevocationListEntry, 0, len(l.entries))
	for _, e := range l.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Identity() < entries[j].Identity() })
	return entries
}

func (l *MemoryRevocationList) WriteTo(w io.Writer) (int64, error) {
	return writeLedger(w, revocationExportables(l.Entries()))
}

func (l *MemoryRevocationList) Bytes() []byte { return repr.ConvertToBytes(l) }

// StoreRevocationList is a revocation list backed by a storage SPI store.
type StoreRevocationList struct {
	mu     sync.Mutex
	store  spi.Store
	decode func(io.Reader) (RevocationListEntry, error)
}

const revocationTagName = "revocationEntry"

// NewStoreRevocationList opens (or creates) the named store on the provider
// and returns a revocation list persisted in it.
func NewStoreRevocationList(provider spi.Provider, name string,
	decode func(io.Reader) (RevocationListEntry, error)) (*StoreRevocationList, error) {
	store, err := provider.OpenStore(name)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "open revocation store")
	}
	return &StoreRevocationList{store: store, decode: decode}, nil
}

func revocationKey(id uint32) string { return fmt.Sprintf("revoked_%d", id) }

func (l *StoreRevocationList) Put(e RevocationListEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.store.Get(revocationKey(e.Identity())); err == nil {
		return nil
	} else if !stderrors.Is(err, spi.ErrDataNotFound) {
		return pkgerrors.Wrap(err, "probe revocation store")
	}
	if err := l.store.Put(revocationKey(e.Identity()), e.Bytes(), spi.Tag{Name: revocationTagName}); err != nil {
		return pkgerrors.Wrap(err, "persist revocation entry")
	}
	return nil
}

func (l *StoreRevocationList) Get(id uint32) (RevocationListEntry, error) {
	raw, err := l.store.Get(revocationKey(id))
	if stderrors.Is(err, spi.ErrDataNotFound) {
		return nil, pkgerrors.Wrapf(ErrUnknownIdentity, "revocation entry %d", id)
	} else if err != nil {
		return nil, pkgerrors.Wrap(err, "read revocation store")
	}
	return l.decode(bytes.NewReader(raw))
}

func (l *StoreRevocationList) Contains(id uint32) bool {
	_, err := l.store.Get(revocationKey(id))
	return err == nil
}

func (l *StoreRevocationList) Entries() []RevocationListEntry {
	it, err := l.store.Query(revocationTagName)
	if err != nil {
		gmlLogger.Warnf("revocation store query failed: %v", err)
		return nil
	}
	defer it.Close()

	var entries []RevocationListEntry
	for {
		more, err := it.Next()
		if err != nil || !more {
			break
		}
		raw, err := it.Value()
		if err != nil {
			continue
		}
		e, err := l.decode(bytes.NewReader(raw))
		if err != nil {
			gmlLogger.Warnf("skipping undecodable revocation entry: %v", err)
			continue
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Identity() < entries[j].Identity() })
	return entries
}

func (l *StoreRevocationList) WriteTo(w io.Writer) (int64, error) {
	return writeLedger(w, revocationExportables(l.Entries()))
}

func (l *StoreRevocationList) Bytes() []byte { return repr.ConvertToBytes(l) }

func revocationExportables(entries []RevocationListEntry) []Exportable {
	out := make([]Exportable, len(entries))
	for i, e := range entries {
		out[i] = e
	}
	return out
}
