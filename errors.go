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

import "errors"

var (
	// ErrUnsupportedLevel is returned when an unknown security level is
	// requested from a scheme constructor.
	ErrUnsupportedLevel = errors.New("unsupported security level requested")

	// ErrInvalidParameters is returned when loaded scheme parameters fail
	// their consistency checks.
	ErrInvalidParameters = errors.New("scheme parameters are invalid")

	// ErrWrongScheme is returned when an artifact from a different scheme
	// instantiation is passed to a scheme operation.
	ErrWrongScheme = errors.New("artifact belongs to a different scheme")

	// ErrUnsupportedOperation is returned by schemes that lack the claim,
	// open-proof or tracing capability for the corresponding call.
	ErrUnsupportedOperation = errors.New("operation not supported by this scheme")

	// ErrUnsupportedKind is returned by Restore for a kind outside the
	// closed set of artifact kinds.
	ErrUnsupportedKind = errors.New("unsupported artifact kind")

	// ErrProtocolAborted indicates that a join protocol run was aborted due
	// to a malformed or out-of-sequence message. No ledger mutation has
	// occurred; retrying the join from scratch is safe.
	ErrProtocolAborted = errors.New("join protocol aborted")

	// ErrJoinCancelled indicates that a join protocol run was cancelled or
	// interrupted while blocked on a message channel. It is distinct from a
	// protocol abort.
	ErrJoinCancelled = errors.New("join protocol cancelled")

	// ErrDuplicateIdentity is returned by GML.Put when an entry for the
	// identity already exists.
	ErrDuplicateIdentity = errors.New("identity already present in ledger")

	// ErrUnknownIdentity is returned by ledger lookups and Reveal for an
	// identity with no entry.
	ErrUnknownIdentity = errors.New("identity not present in ledger")

	// ErrAttributionFailure is returned by Open when a signature does not
	// correspond to any GML entry. An identity is never fabricated.
	ErrAttributionFailure = errors.New("signature cannot be attributed to any group member")

	// ErrNotSignatureOwner is returned by Claim when the signature was not
	// produced with the given member key.
	ErrNotSignatureOwner = errors.New("signature was not produced by this member key")

	// ErrPlaintextTooLong is returned by MapToPlaintext for inputs beyond
	// the injective embedding bound.
	ErrPlaintextTooLong = errors.New("byte sequence too long to map injectively to a plaintext")

	// ErrInvalidRepresentation is returned by the Load and Restore
	// functions for a malformed representation.
	ErrInvalidRepresentation = errors.New("malformed artifact representation")
)
