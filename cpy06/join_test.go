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
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"golang.org/x/sync/errgroup"

	groupsig "github.com/upbcuk/upb.crypto.groupsig"
)

func TestJoin(t *testing.T) {
	g := group(t)
	gml := groupsig.NewGML()

	key, err := groupsig.RunJoin(context.Background(), g.scheme, g.issuer, gml)
	if err != nil {
		t.Fatalf("RunJoin: %v", err)
	}
	if key.Identity() != 1 {
		t.Fatalf("first member got identity %d, want 1", key.Identity())
	}
	entry, err := gml.Get(key.Identity())
	if err != nil {
		t.Fatalf("gml.Get: %v", err)
	}

	// The recorded certificate must match the one held by the member, and
	// the fresh key must immediately produce valid signatures.
	mk := key.(*MemberKey)
	if !entry.(*GMLEntry).a.Equals(mk.a) {
		t.Fatal("gml certificate differs from the member's")
	}
	pt := mustPlaintext(t, g.scheme, "fresh member")
	sig, err := g.scheme.Sign(pt, key)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if !g.scheme.Verify(pt, sig) {
		t.Fatal("fresh member's signature rejected")
	}
}

func TestConcurrentJoins(t *testing.T) {
	const members = 6

	g := group(t)
	gml := groupsig.NewGML()

	var mu sync.Mutex
	ids := make(map[uint32]bool)

	eg, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < members; i++ {
		eg.Go(func() error {
			key, err := groupsig.RunJoin(ctx, g.scheme, g.issuer, gml)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			if ids[key.Identity()] {
				return errors.New("identity issued twice")
			}
			ids[key.Identity()] = true
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		t.Fatalf("concurrent joins: %v", err)
	}

	if len(gml.Entries()) != members {
		t.Fatalf("gml has %d entries, want %d", len(gml.Entries()), members)
	}
	for id := uint32(1); id <= members; id++ {
		if !ids[id] {
			t.Fatalf("identity %d was never issued", id)
		}
	}
}

func TestJoinCancellation(t *testing.T) {
	g := group(t)
	ctx, cancel := context.WithCancel(context.Background())

	toMember := make(chan []byte, 4)
	toIssuer := make(chan []byte, 4)

	done := make(chan error, 1)
	go func() {
		_, err := g.scheme.JoinMember(ctx, toMember, toIssuer)
		done <- err
	}()

	// Wait for the request, then abandon the member mid-protocol.
	<-toIssuer
	cancel()

	if err := <-done; !errors.Is(err, groupsig.ErrJoinCancelled) {
		t.Fatalf("cancelled JoinMember = %v, want ErrJoinCancelled", err)
	}
}

func TestJoinIssuerGarbage(t *testing.T) {
	g := group(t)
	gml := groupsig.NewGML()

	toIssuer := make(chan []byte, 4)
	toMember := make(chan []byte, 4)
	toIssuer <- []byte{0xff, 0x00, 0xff}

	err := g.scheme.JoinIssuer(context.Background(), g.issuer, gml, toIssuer, toMember)
	if !errors.Is(err, groupsig.ErrProtocolAborted) {
		t.Fatalf("JoinIssuer on garbage = %v, want ErrProtocolAborted", err)
	}
	if len(gml.Entries()) != 0 {
		t.Fatal("aborted join mutated the gml")
	}
}

func TestJoinIssuerOutOfSequence(t *testing.T) {
	g := group(t)
	gml := groupsig.NewGML()

	toIssuer := make(chan []byte, 4)
	toMember := make(chan []byte, 4)
	toIssuer <- newFrame(msgJoinAccept).frame()

	err := g.scheme.JoinIssuer(context.Background(), g.issuer, gml, toIssuer, toMember)
	if !errors.Is(err, groupsig.ErrProtocolAborted) {
		t.Fatalf("JoinIssuer on out-of-sequence message = %v, want ErrProtocolAborted", err)
	}
	if len(gml.Entries()) != 0 {
		t.Fatal("aborted join mutated the gml")
	}
}

func TestJoinMemberPeerAbort(t *testing.T) {
	g := group(t)

	toMember := make(chan []byte, 4)
	toIssuer := make(chan []byte, 4)

	done := make(chan error, 1)
	go func() {
		_, err := g.scheme.JoinMember(context.Background(), toMember, toIssuer)
		done <- err
	}()

	<-toIssuer
	toMember <- newFrame(msgJoinAbort).frame()

	if err := <-done; !errors.Is(err, groupsig.ErrProtocolAborted) {
		t.Fatalf("JoinMember after peer abort = %v, want ErrProtocolAborted", err)
	}
}

func TestJoinIssuerWrongKey(t *testing.T) {
	g := group(t)
	err := g.scheme.JoinIssuer(context.Background(), fakeIssuerKey{}, groupsig.NewGML(), nil, nil)
	if !errors.Is(err, groupsig.ErrWrongScheme) {
		t.Fatalf("JoinIssuer with foreign key = %v, want ErrWrongScheme", err)
	}
}

type fakeIssuerKey struct{}

func (fakeIssuerKey) WriteTo(io.Writer) (int64, error) { return 0, nil }
func (fakeIssuerKey) Bytes() []byte                    { return nil }

