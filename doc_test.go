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

package groupsig_test

import (
	"context"
	"fmt"

	groupsig "github.com/upbcuk/upb.crypto.groupsig"
	"github.com/upbcuk/upb.crypto.groupsig/cpy06"
)

// This example sets up a group, admits a member through the join protocol,
// signs a message anonymously and finally deanonymizes the signature with
// the opener key.
func Example() {
	scheme, issuerKey, openerKey, err := cpy06.New(1)
	if err != nil {
		panic(err)
	}
	gml := groupsig.NewGML()

	memberKey, err := groupsig.RunJoin(context.Background(), scheme, issuerKey, gml)
	if err != nil {
		panic(err)
	}

	plaintext, err := scheme.MapToPlaintext([]byte("hello group"))
	if err != nil {
		panic(err)
	}
	signature, err := scheme.Sign(plaintext, memberKey)
	if err != nil {
		panic(err)
	}
	fmt.Println("valid:", scheme.Verify(plaintext, signature))

	result, err := scheme.Open(signature, openerKey, gml, nil)
	if err != nil {
		panic(err)
	}
	fmt.Println("signer:", result.MemberIdentity)

	proven, err := scheme.OpenVerify(result.MemberIdentity, result.Proof, signature)
	if err != nil {
		panic(err)
	}
	fmt.Println("opening proven:", proven)

	// Output:
	// valid: true
	// signer: 1
	// opening proven: true
}
