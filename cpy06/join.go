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
	"bytes"
	"context"
	stderrors "errors"

	"github.com/hyperledger/aries-framework-go/component/log"
	pkgerrors "github.com/pkg/errors"

	groupsig "github.com/upbcuk/upb.crypto.groupsig"
	"github.com/upbcuk/upb.crypto.groupsig/internal/repr"
)

var joinLogger = log.New("groupsig/cpy06-join")

const joinTag = "cpy06-join"

// The join protocol is a fixed sequence of four messages:
//
//	member -> issuer  request:    Y = k^y with a proof of knowledge of y
//	issuer -> member  credential: x, xi, a = (g1*Y)^(1/(gamma+x))
//	member -> issuer  accept:     sent after the credential checks out
//	issuer -> member  welcome:    the assigned member identity
//
// The issuer appends the GML entry between accept and welcome; that append
// is the commit point of the protocol. Either side may replace its next
// message with an abort frame, and every validity check failure does so.
const (
	msgJoinRequest byte = iota + 1
	msgJoinCredential
	msgJoinAccept
	msgJoinWelcome
	msgJoinAbort
)

func sendMsg(ctx context.Context, sent chan<- []byte, msg []byte) error {
	select {
	case sent <- msg:
		return nil
	case <-ctx.Done():
		return pkgerrors.Wrap(groupsig.ErrJoinCancelled, ctx.Err().Error())
	}
}

func recvMsg(ctx context.Context, received <-chan []byte) (*repr.Reader, byte, error) {
	select {
	case msg, ok := <-received:
		if !ok {
			return nil, 0, pkgerrors.Wrap(groupsig.ErrProtocolAborted, "message channel closed")
		}
		gr := repr.NewReader(bytes.NewReader(msg))
		var kind byte
		if !gr.Decode(&kind) {
			return nil, 0, pkgerrors.Wrap(groupsig.ErrProtocolAborted, "unreadable message frame")
		}
		if kind == msgJoinAbort {
			return nil, kind, pkgerrors.Wrap(groupsig.ErrProtocolAborted, "peer aborted")
		}
		return gr, kind, nil
	case <-ctx.Done():
		return nil, 0, pkgerrors.Wrap(groupsig.ErrJoinCancelled, ctx.Err().Error())
	}
}

// sendAbort tells the peer to give up. Best effort: if the channel is full
// or the context is done the peer will be unblocked by cancellation instead.
func sendAbort(ctx context.Context, sent chan<- []byte) {
	gw := newFrame(msgJoinAbort)
	select {
	case sent <- gw.frame():
	case <-ctx.Done():
	default:
	}
}

// frameWriter assembles one protocol message: a kind byte followed by the
// message fields in representation encoding.
type frameWriter struct {
	buf bytes.Buffer
	gw  *repr.Writer
}

func newFrame(kind byte) *frameWriter {
	fw := &frameWriter{}
	fw.gw = repr.NewWriter(&fw.buf)
	fw.gw.Encode(kind)
	return fw
}

func (fw *frameWriter) frame() []byte { return fw.buf.Bytes() }

// JoinMember runs the member side of the join protocol. It must run
// concurrently with JoinIssuer; the message channels are the only
// synchronization between the two roles. On success it returns the freshly
// issued member key.
func (s *Scheme) JoinMember(ctx context.Context, received <-chan []byte,
	sent chan<- []byte) (groupsig.MemberKey, error) {
	// Commit to the member secret y and prove knowledge of it.
	y := s.pairing.NewZr().Rand()
	commitment := s.pairing.NewG1().PowerZn(s.kPower, y)

	ry := s.pairing.NewZr().Rand()
	pokCommit := s.pairing.NewG1().PowerZn(s.kPower, ry)
	pokChallenge := s.challenge(joinTag, nil, commitment, pokCommit)
	pokResponse := response(s.pairing, pokChallenge, y, ry)

	fw := newFrame(msgJoinRequest)
	fw.gw.EncodeElement(commitment)
	fw.gw.EncodeScalar(pokChallenge)
	fw.gw.EncodeScalar(pokResponse)
	if err := sendMsg(ctx, sent, fw.frame()); err != nil {
		return nil, err
	}

	gr, kind, err := recvMsg(ctx, received)
	if err != nil {
		return nil, err
	}
	if kind != msgJoinCredential {
		sendAbort(ctx, sent)
		return nil, pkgerrors.Wrapf(groupsig.ErrProtocolAborted, "expected credential, got message kind %d", kind)
	}
	x := s.pairing.NewZr()
	xi := s.pairing.NewZr()
	a := s.pairing.NewG1()
	gr.DecodeScalar(x)
	gr.DecodeScalar(xi)
	gr.DecodeElement(a)
	if gr.Err() != nil {
		sendAbort(ctx, sent)
		return nil, pkgerrors.Wrap(groupsig.ErrProtocolAborted, "malformed credential")
	}

	// Check the certificate: e(a, w*g2^x) must equal e(g1*Y, g2).
	lhs := s.pairing.NewG2().PowZn(s.g2, x)
	lhs.Mul(s.w, lhs)
	left := s.pairing.NewGT().Pair(a, lhs)
	rhs := s.pairing.NewG1().Mul(s.g1, commitment)
	right := s.pairing.NewGT().Pair(rhs, s.g2)
	if !left.Equals(right) {
		sendAbort(ctx, sent)
		return nil, pkgerrors.Wrap(groupsig.ErrProtocolAborted, "issued certificate fails the pairing check")
	}

	if err := sendMsg(ctx, sent, newFrame(msgJoinAccept).frame()); err != nil {
		return nil, err
	}

	gr, kind, err = recvMsg(ctx, received)
	if err != nil {
		return nil, err
	}
	if kind != msgJoinWelcome {
		sendAbort(ctx, sent)
		return nil, pkgerrors.Wrapf(groupsig.ErrProtocolAborted, "expected welcome, got message kind %d", kind)
	}
	var id uint32
	if !gr.Decode(&id) || id == 0 {
		sendAbort(ctx, sent)
		return nil, pkgerrors.Wrap(groupsig.ErrProtocolAborted, "malformed welcome")
	}

	joinLogger.Debugf("joined group as member %d", id)
	return &MemberKey{id: id, x: x, y: y, xi: xi, a: a}, nil
}

// JoinIssuer runs the issuer side of the join protocol. On success exactly
// one new entry has been appended to gml; on protocol failure or
// cancellation before the commit point the GML is untouched. If the final
// welcome message cannot be delivered after the entry was recorded, the
// error says so; the assigned identity stays recorded but was never handed
// out.
func (s *Scheme) JoinIssuer(ctx context.Context, issuerKey groupsig.IssuerKey, gml groupsig.GML,
	received <-chan []byte, sent chan<- []byte) error {
	ik, ok := issuerKey.(*IssuerKey)
	if !ok {
		return groupsig.ErrWrongScheme
	}

	gr, kind, err := recvMsg(ctx, received)
	if err != nil {
		return err
	}
	if kind != msgJoinRequest {
		sendAbort(ctx, sent)
		return pkgerrors.Wrapf(groupsig.ErrProtocolAborted, "expected request, got message kind %d", kind)
	}
	commitment := s.pairing.NewG1()
	pokChallenge := s.pairing.NewZr()
	pokResponse := s.pairing.NewZr()
	gr.DecodeElement(commitment)
	gr.DecodeScalar(pokChallenge)
	gr.DecodeScalar(pokResponse)
	if gr.Err() != nil {
		sendAbort(ctx, sent)
		return pkgerrors.Wrap(groupsig.ErrProtocolAborted, "malformed request")
	}

	// Verify the proof of knowledge of y behind the commitment.
	cNeg := s.pairing.NewZr().Neg(pokChallenge)
	pokCommit := s.pairing.NewG1().PowerZn(s.kPower, pokResponse)
	pokCommit.Mul(pokCommit, s.pairing.NewG1().PowZn(commitment, cNeg))
	if !s.challenge(joinTag, nil, commitment, pokCommit).Equals(pokChallenge) {
		sendAbort(ctx, sent)
		return pkgerrors.Wrap(groupsig.ErrProtocolAborted, "request possession proof invalid")
	}

	// Certify the commitment under a fresh exponent pair.
	x := s.pairing.NewZr().Rand()
	xi := s.pairing.NewZr().Rand()
	exp := s.pairing.NewZr().Add(ik.gamma, x)
	exp.Invert(exp)
	a := s.pairing.NewG1().Mul(s.g1, commitment)
	a.PowZn(a, exp)

	fw := newFrame(msgJoinCredential)
	fw.gw.EncodeScalar(x)
	fw.gw.EncodeScalar(xi)
	fw.gw.EncodeElement(a)
	if err := sendMsg(ctx, sent, fw.frame()); err != nil {
		return err
	}

	if _, kind, err = recvMsg(ctx, received); err != nil {
		return err
	} else if kind != msgJoinAccept {
		sendAbort(ctx, sent)
		return pkgerrors.Wrapf(groupsig.ErrProtocolAborted, "expected accept, got message kind %d", kind)
	}

	// Commit point: assign the smallest free identity and append the entry.
	// A concurrent join may take the identity first; Put rejecting the
	// duplicate restarts the assignment.
	var id uint32
	for {
		id = gml.NextNewUserID()
		err := gml.Put(&GMLEntry{id: id, a: a, commitment: commitment, xi: xi})
		if err == nil {
			break
		}
		if stderrors.Is(err, groupsig.ErrDuplicateIdentity) {
			continue
		}
		return pkgerrors.Wrap(err, "record gml entry")
	}
	joinLogger.Debugf("admitted member %d", id)

	fw = newFrame(msgJoinWelcome)
	fw.gw.Encode(id)
	if err := sendMsg(ctx, sent, fw.frame()); err != nil {
		return pkgerrors.Wrapf(err, "member %d admitted but welcome undelivered", id)
	}
	return nil
}
