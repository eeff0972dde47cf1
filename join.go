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
	"context"

	"golang.org/x/sync/errgroup"
)

// joinChannelDepth bounds the in-flight messages per direction. The join
// protocols of all known instantiations are strictly alternating, so a depth
// of one never blocks a send; the slack only decouples error unwinding.
const joinChannelDepth = 4

// RunJoin wires up the two message channels and runs the member and issuer
// sides of the join protocol concurrently, in the same process. It is the
// standard way to drive a join when both roles are local; distributed
// deployments pump the channels over their own transport instead.
//
// If either side fails, the shared context is cancelled so the other side
// unblocks, and the first error is returned. On success the new member key is
// returned and gml has gained exactly one entry.
func RunJoin(ctx context.Context, scheme Scheme, issuerKey IssuerKey, gml GML) (MemberKey, error) {
	toIssuer := make(chan []byte, joinChannelDepth)
	toMember := make(chan []byte, joinChannelDepth)

	var key MemberKey

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return scheme.JoinIssuer(ctx, issuerKey, gml, toIssuer, toMember)
	})
	g.Go(func() error {
		k, err := scheme.JoinMember(ctx, toMember, toIssuer)
		if err != nil {
			return err
		}
		key = k
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return key, nil
}
