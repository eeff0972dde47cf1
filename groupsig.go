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
	"io"
)

// Exportable represents a type that can be encoded into a binary stream. They
// can be written to a Writer or transformed directly into bytes. The resulting
// representation round-trips through the matching Load* or Restore call.
type Exportable interface {
	io.WriterTo
	Bytes() []byte
}

// IssuerKey authorizes running the issuer side of the join protocol. It is an
// opaque capability; the protocol layer never inspects its secret material.
type IssuerKey interface {
	Exportable
}

// OpenerKey authorizes opening and tracing of group signatures. Deployments
// may construct issuer and opener keys from the same manager secret or from
// split secrets; nothing here assumes they are equal.
type OpenerKey interface {
	Exportable
}

// MemberKey is the per-member secret material issued by a successful join. It
// is owned exclusively by the member it was issued to.
type MemberKey interface {
	Exportable
	Identity() uint32
}

// PlainText is an element of the scheme's message domain. Byte messages are
// embedded via Scheme.MapToPlaintext.
type PlainText interface {
	Exportable
	Equal(PlainText) bool
}

// GroupSignature is an anonymous signature on behalf of the group. It is
// opaque to verifiers except for group validity.
type GroupSignature interface {
	Exportable
}

// OpenProof proves that a specific open result is correct for a specific
// signature. It is checked with Scheme.OpenVerify without access to the
// opener key.
type OpenProof interface {
	Exportable
}

// ClaimProof proves that a specific signature was produced by the claiming
// member, without opener involvement.
type ClaimProof interface {
	Exportable
}

// OpenResult is the outcome of opening a signature: the identity of the
// member that produced it and a proof of correct opening.
type OpenResult struct {
	MemberIdentity uint32
	Proof          OpenProof
}

// GMLEntry is the identity-binding record created once per successful join.
// It contains what the opener needs to map a signature back to this member.
// Entries are immutable after creation.
type GMLEntry interface {
	Exportable
	Identity() uint32
}

// RevocationListEntry is a per-member tracing trapdoor derived from a GML
// entry by Scheme.Reveal.
type RevocationListEntry interface {
	Exportable
	Identity() uint32
}

// GML is the group membership list, the single source of truth for group
// membership. It maps member identities to their GMLEntry and is append-only:
// entries are never updated or removed.
type GML interface {
	Exportable

	// Put appends an entry. It fails with ErrDuplicateIdentity if an entry
	// with the same identity is already present.
	Put(GMLEntry) error

	// Get returns the entry for the given identity, or ErrUnknownIdentity.
	Get(id uint32) (GMLEntry, error)

	// NextNewUserID returns the smallest positive identity with no entry.
	// The returned identity is not reserved; callers racing on admission
	// must rely on Put rejecting duplicates.
	NextNewUserID() uint32

	// Entries returns a snapshot of all entries in identity order.
	Entries() []GMLEntry
}

// RevocationList maps member identities to their revealed tracing trapdoors.
// It grows monotonically.
type RevocationList interface {
	Exportable

	// Put adds a trapdoor entry. Adding an entry for an identity that is
	// already present is a no-op, keeping the list a set keyed by identity.
	Put(RevocationListEntry) error

	// Get returns the entry for the given identity, or ErrUnknownIdentity.
	Get(id uint32) (RevocationListEntry, error)

	// Contains reports whether the identity has a revealed trapdoor.
	Contains(id uint32) bool

	// Entries returns a snapshot of all entries in identity order.
	Entries() []RevocationListEntry
}

// Scheme represents a dynamic group signature scheme. All operations must be
// performed in the context of a scheme, and all protocol participants must
// share the same scheme parameters.
//
// Schemes are either generated or loaded. Generation is performed by the
// New* function of the desired instantiation, a task normally performed by
// the group authority during setup. The public parameters can then be
// exported and distributed to the participants, who duplicate them using the
// matching Load* function.
//
// New members are admitted through the interactive join protocol: the member
// runs JoinMember while the issuer concurrently runs JoinIssuer, with the two
// message channels as the only synchronization between them.
//
// Keys, signatures, proofs and ledger entries must be loaded in the context
// of a scheme using the Load* methods or the Restore dispatch.
type Scheme interface {
	Exportable

	// JoinMember runs the member side of the join protocol. It consumes
	// issuer messages from received in order and produces member messages
	// onto sent in order, blocking while waiting for the next expected
	// message. On success it returns the freshly issued member key. It must
	// run concurrently with JoinIssuer; see RunJoin.
	JoinMember(ctx context.Context, received <-chan []byte, sent chan<- []byte) (MemberKey, error)

	// JoinIssuer runs the issuer side of the join protocol. On success it
	// appends exactly one new entry to gml before returning; on any
	// protocol failure the GML is left unmodified.
	JoinIssuer(ctx context.Context, issuerKey IssuerKey, gml GML, received <-chan []byte, sent chan<- []byte) error

	// Sign produces a group signature over plainText using memberKey.
	Sign(plainText PlainText, memberKey MemberKey) (GroupSignature, error)

	// Verify reports whether signature is a valid group signature over
	// plainText. It reveals nothing about which member signed.
	Verify(plainText PlainText, signature GroupSignature) bool

	// VerifyWithRevocation is Verify plus the verifier-local revocation
	// check: it additionally returns false if the signer is identifiable
	// as revoked via rl.
	VerifyWithRevocation(plainText PlainText, signature GroupSignature, rl RevocationList) bool

	// Claim produces a proof that signature was created with memberKey. It
	// fails with ErrNotSignatureOwner if it was not, and with
	// ErrUnsupportedOperation if the scheme has no claim capability.
	Claim(memberKey MemberKey, signature GroupSignature) (ClaimProof, error)

	// ClaimVerify checks a claim proof against the exact signature it was
	// produced for. A mismatched pair yields false, not an error; errors
	// are reserved for unsupported capability and malformed input.
	ClaimVerify(proof ClaimProof, signature GroupSignature) (bool, error)

	// Open deanonymizes a signature using the opener key and the GML,
	// returning the signer identity and a proof of correct opening. A
	// signature that maps to no GML entry fails with
	// ErrAttributionFailure. The optional rl (may be nil) only speeds up
	// the lookup; it never changes the produced identity.
	Open(signature GroupSignature, openerKey OpenerKey, gml GML, rl RevocationList) (*OpenResult, error)

	// OpenVerify checks an open proof against the claimed identity and
	// signature. Schemes without third-party-checkable opening fail with
	// ErrUnsupportedOperation.
	OpenVerify(memberIdentity uint32, proof OpenProof, signature GroupSignature) (bool, error)

	// Reveal derives the tracing trapdoor of the given member from its GML
	// entry and appends it to rl. Revealing an unknown identity fails with
	// ErrUnknownIdentity; revealing the same identity twice is a no-op.
	Reveal(gml GML, memberIdentity uint32, rl RevocationList) error

	// Trace reports whether signature was produced by any member whose
	// trapdoor is present in rl, without running a full Open.
	Trace(signature GroupSignature, rl RevocationList, openerKey OpenerKey, gml GML) (bool, error)

	// MapToPlaintext injectively maps bytes into the plaintext domain.
	// Injectivity is only guaranteed among inputs of equal length; inputs
	// longer than MaxNumberOfBytesForMapToPlaintext fail with
	// ErrPlaintextTooLong.
	MapToPlaintext(bytes []byte) (PlainText, error)

	// MaxNumberOfBytesForMapToPlaintext is the byte-length ceiling for
	// which MapToPlaintext guarantees injectivity.
	MaxNumberOfBytesForMapToPlaintext() int

	LoadMemberKey(io.Reader) (MemberKey, error)
	LoadOpenerKey(io.Reader) (OpenerKey, error)
	LoadIssuerKey(io.Reader) (IssuerKey, error)
	LoadSignature(io.Reader) (GroupSignature, error)
	LoadPlainText(io.Reader) (PlainText, error)
	LoadGMLEntry(io.Reader) (GMLEntry, error)
	LoadGML(io.Reader) (GML, error)
	LoadRevocationListEntry(io.Reader) (RevocationListEntry, error)
	LoadRevocationList(io.Reader) (RevocationList, error)
}
