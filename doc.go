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

/*
	Package groupsig implements dynamic group signatures in Go. A group
	signature proves that a message was signed by some admitted member of a
	group, without revealing which member created the signature. Unlike ring
	signatures, membership is managed: a designated issuer admits new members
	through an interactive join protocol, and a designated opener can
	de-anonymize a signature after the fact.

	Overview

	A dynamic group signature scheme consists of the following parties and
	algorithms. The setup phase occurs once and produces the public scheme
	parameters together with the issuer and opener keys:

		(params, issuerKey, openerKey) ← setup()

	Members are admitted through the interactive join protocol, run between a
	prospective member and the issuer over two ordered message channels:

		memberKey ← joinMember(received, sent)
		           joinIssuer(issuerKey, gml, received, sent)

	On success the issuer appends an identity-binding entry to the group
	membership list (GML) and the member holds a fresh member key. The GML is
	the single source of truth for group membership.

	Signing and verification are non-interactive:

		signature ← sign(plaintext, memberKey)
		ok        ← verify(plaintext, signature)

	A valid signature convinces any verifier that some group member signed,
	and nothing more. The opener can break this anonymity:

		(identity, proof) ← open(signature, openerKey, gml)
		ok                ← openVerify(identity, proof, signature)

	Opening produces a proof that any third party can check without access to
	the opener key. The opener (or issuer) can also publish a member's
	tracing trapdoor into a revocation list:

		reveal(gml, identity, revocationList)

	After a reveal, any verifier can reject that member's signatures locally
	(verifier-local revocation) by passing the revocation list to
	verification, and any party can test a signature against the list:

		revoked ← trace(signature, revocationList, openerKey, gml)

	Finally, a member can prove authorship of their own signature to a third
	party without involving the opener:

		proof ← claim(memberKey, signature)
		ok    ← claimVerify(proof, signature)

	Security Properties

	All schemes implemented here aim for the usual properties of dynamic
	group signatures:

	• Anonymity: signatures by different members are indistinguishable to
	anyone without the opener key and without a revealed trapdoor.

	• Traceability: every valid signature opens to some admitted member; a
	coalition of members cannot produce a signature that opens to nobody or
	to a member outside the coalition.

	• Non-frameability: nobody, including the issuer and opener, can produce
	a signature and an open proof that attributes it to a member who did not
	sign.

	Scheme instantiations differ in which optional capabilities they offer
	(open proofs, tracing, claims); operations missing from an instantiation
	fail with ErrUnsupportedOperation rather than silently no-oping.

	Implementations

	Currently the package includes one instantiation, in the cpy06
	subpackage: a pairing-based scheme in the style of Boneh-Boyen-Shacham
	short group signatures extended with the tracing and claiming facilities
	of Choi, Park and Yung's 2006 traceable signature construction. It is
	secure in the random oracle model.

	License

	This package is free software: you can redistribute it and/or modify it
	under the terms of the GNU Lesser General Public License as published by
	the Free Software Foundation, either version 3 of the License, or (at
	your option) any later version.
*/
package groupsig
