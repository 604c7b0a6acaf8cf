package shs

import (
	"errors"

	"github.com/scuttlenet/secrethandshake/internal/crypto"
)

// ErrInvalidRemoteKey is returned when the responder's long-term public key
// does not decode to a usable Curve25519 point.
var ErrInvalidRemoteKey = errors.New("shs: remote public key is not a valid curve point")

// Initiator holds the initiator-side handshake state: the six input keys and
// the intermediates derived while the messages are exchanged. Methods must be
// called in protocol order — BuildMsg1, VerifyMsg2, BuildMsg3, VerifyMsg4,
// Finalize — each exactly once; calling them out of order is a programming
// error, not a recoverable condition.
type Initiator struct {
	networkKey   [NetworkKeySize]byte
	localPublic  [crypto.SignPublicKeySize]byte
	localSecret  [crypto.SignSecretKeySize]byte
	ephPublic    [crypto.GroupSize]byte
	ephSecret    [crypto.ScalarSize]byte
	remotePublic [crypto.SignPublicKeySize]byte

	remoteEph     [crypto.GroupSize]byte  // b's public half, from msg2
	ephShared     [crypto.GroupSize]byte  // a·b
	ephLongShared [crypto.GroupSize]byte  // a·B
	sharedHash    [crypto.DigestSize]byte // sha256(a·b)
	hello         [helloSize]byte         // msg3 plaintext, reused in msg4 verification
	boxKey4       [crypto.DigestSize]byte // sha256(K ‖ a·b ‖ a·B ‖ A·b)
}

// NewInitiator constructs an initiator core from the pre-shared network key,
// the local long-term and ephemeral keypairs, and the responder's long-term
// public key. The responder key is validated and its ephemeral-long shared
// secret precomputed here, so the later steps cannot fail on local inputs.
func NewInitiator(networkKey *[NetworkKeySize]byte,
	localPublic *[crypto.SignPublicKeySize]byte, localSecret *[crypto.SignSecretKeySize]byte,
	ephPublic *[crypto.GroupSize]byte, ephSecret *[crypto.ScalarSize]byte,
	remotePublic *[crypto.SignPublicKeySize]byte) (*Initiator, error) {

	i := &Initiator{
		networkKey:   *networkKey,
		localPublic:  *localPublic,
		localSecret:  *localSecret,
		ephPublic:    *ephPublic,
		ephSecret:    *ephSecret,
		remotePublic: *remotePublic,
	}

	var remoteCurve [crypto.GroupSize]byte
	if !crypto.CurvifyPublic(&remoteCurve, remotePublic) ||
		!crypto.ScalarMult(&i.ephLongShared, &i.ephSecret, &remoteCurve) {
		i.Zero()
		return nil, ErrInvalidRemoteKey
	}
	return i, nil
}

// BuildMsg1 writes the initiator challenge hmac(K; A) ‖ A.
func (i *Initiator) BuildMsg1(out *[Msg1Size]byte) {
	challenge(out, &i.networkKey, &i.ephPublic)
}

// VerifyMsg2 checks the responder challenge and, on success, derives the
// ephemeral shared secret and its hash. A false return means the message was
// not produced by a peer holding the network key (or its ephemeral key is a
// low-order point).
func (i *Initiator) VerifyMsg2(in *[Msg2Size]byte) bool {
	if !verifyChallenge(in, &i.networkKey, &i.remoteEph) {
		return false
	}
	if !crypto.ScalarMult(&i.ephShared, &i.ephSecret, &i.remoteEph) {
		return false
	}
	crypto.Hash(&i.sharedHash, i.ephShared[:])
	return true
}

// BuildMsg3 writes the sealed initiator authentication: the signature of
// K ‖ Bp ‖ sha256(a·b) under the local long-term key, followed by the local
// long-term public key, boxed under sha256(K ‖ a·b ‖ a·B).
func (i *Initiator) BuildMsg3(out *[Msg3Size]byte) {
	var sig [crypto.SignatureSize]byte
	crypto.Sign(&sig, &i.localSecret, concat(i.networkKey[:], i.remotePublic[:], i.sharedHash[:]))
	copy(i.hello[:crypto.SignatureSize], sig[:])
	copy(i.hello[crypto.SignatureSize:], i.localPublic[:])

	var key [crypto.DigestSize]byte
	crypto.Hash(&key, i.networkKey[:], i.ephShared[:], i.ephLongShared[:])
	crypto.BoxSeal(out[:], i.hello[:], &zeroNonce, &key)
	crypto.Wipe(key[:])
}

// VerifyMsg4 opens the responder acknowledgment and checks its signature of
// K ‖ hello ‖ sha256(a·b) against the responder's long-term key. On success
// the core is ready for Finalize.
func (i *Initiator) VerifyMsg4(in *[Msg4Size]byte) bool {
	var localCurve [crypto.ScalarSize]byte
	var longEphShared [crypto.GroupSize]byte
	crypto.CurvifySecret(&localCurve, &i.localSecret)
	ok := crypto.ScalarMult(&longEphShared, &localCurve, &i.remoteEph)
	crypto.Wipe(localCurve[:])
	if !ok {
		return false
	}
	crypto.Hash(&i.boxKey4, i.networkKey[:], i.ephShared[:], i.ephLongShared[:], longEphShared[:])
	crypto.Wipe(longEphShared[:])

	var ack [ackSize]byte
	if !crypto.BoxOpen(ack[:], in[:], &zeroNonce, &i.boxKey4) {
		return false
	}
	var sig [crypto.SignatureSize]byte
	copy(sig[:], ack[:])
	return crypto.Verify(&i.remotePublic, concat(i.networkKey[:], i.hello[:], i.sharedHash[:]), &sig)
}

// Finalize derives the session outcome. Valid only after VerifyMsg4 returned
// true.
func (i *Initiator) Finalize(out *Outcome) {
	deriveOutcome(out, &i.networkKey, &i.boxKey4,
		&i.localPublic, &i.remotePublic, &i.ephPublic, &i.remoteEph)
}

// Zero overwrites every slot of the core, secrets and intermediates alike.
func (i *Initiator) Zero() {
	crypto.Wipe(i.networkKey[:])
	crypto.Wipe(i.localPublic[:])
	crypto.Wipe(i.localSecret[:])
	crypto.Wipe(i.ephPublic[:])
	crypto.Wipe(i.ephSecret[:])
	crypto.Wipe(i.remotePublic[:])
	crypto.Wipe(i.remoteEph[:])
	crypto.Wipe(i.ephShared[:])
	crypto.Wipe(i.ephLongShared[:])
	crypto.Wipe(i.sharedHash[:])
	crypto.Wipe(i.hello[:])
	crypto.Wipe(i.boxKey4[:])
}

// concat joins byte slices for signing and digest inputs.
func concat(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
