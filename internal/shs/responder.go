package shs

import (
	"github.com/scuttlenet/secrethandshake/internal/crypto"
)

// Responder holds the responder-side handshake state. Methods must be called
// in protocol order — VerifyMsg1, BuildMsg2, VerifyMsg3, BuildMsg4, Finalize —
// each exactly once. The initiator's long-term public key is not an input; it
// is learned, verified, from msg3 and exposed through RemotePublic for the
// admission decision.
type Responder struct {
	networkKey  [NetworkKeySize]byte
	localPublic [crypto.SignPublicKeySize]byte
	localSecret [crypto.SignSecretKeySize]byte
	ephPublic   [crypto.GroupSize]byte
	ephSecret   [crypto.ScalarSize]byte

	remoteEph     [crypto.GroupSize]byte         // a's public half, from msg1
	remotePublic  [crypto.SignPublicKeySize]byte // Ap, recovered from msg3
	ephShared     [crypto.GroupSize]byte         // a·b
	ephLongShared [crypto.GroupSize]byte         // a·B
	sharedHash    [crypto.DigestSize]byte        // sha256(a·b)
	hello         [helloSize]byte                // msg3 plaintext, signed again in msg4
	boxKey4       [crypto.DigestSize]byte        // sha256(K ‖ a·b ‖ a·B ‖ A·b)
}

// NewResponder constructs a responder core from the pre-shared network key
// and the local long-term and ephemeral keypairs.
func NewResponder(networkKey *[NetworkKeySize]byte,
	localPublic *[crypto.SignPublicKeySize]byte, localSecret *[crypto.SignSecretKeySize]byte,
	ephPublic *[crypto.GroupSize]byte, ephSecret *[crypto.ScalarSize]byte) *Responder {

	return &Responder{
		networkKey:  *networkKey,
		localPublic: *localPublic,
		localSecret: *localSecret,
		ephPublic:   *ephPublic,
		ephSecret:   *ephSecret,
	}
}

// VerifyMsg1 checks the initiator challenge and, on success, derives both
// shared secrets available at this point: a·b from the two ephemerals and
// a·B from the initiator ephemeral and the curvified local long-term key.
func (r *Responder) VerifyMsg1(in *[Msg1Size]byte) bool {
	if !verifyChallenge(in, &r.networkKey, &r.remoteEph) {
		return false
	}
	if !crypto.ScalarMult(&r.ephShared, &r.ephSecret, &r.remoteEph) {
		return false
	}
	crypto.Hash(&r.sharedHash, r.ephShared[:])

	var localCurve [crypto.ScalarSize]byte
	crypto.CurvifySecret(&localCurve, &r.localSecret)
	ok := crypto.ScalarMult(&r.ephLongShared, &localCurve, &r.remoteEph)
	crypto.Wipe(localCurve[:])
	return ok
}

// BuildMsg2 writes the responder challenge hmac(K; B) ‖ B.
func (r *Responder) BuildMsg2(out *[Msg2Size]byte) {
	challenge(out, &r.networkKey, &r.ephPublic)
}

// VerifyMsg3 opens the initiator authentication under sha256(K ‖ a·b ‖ a·B),
// verifies the inner signature of K ‖ Bp ‖ sha256(a·b) with the recovered
// long-term key, and derives the remaining shared secret A·b. After a true
// return the initiator has proven possession of RemotePublic.
func (r *Responder) VerifyMsg3(in *[Msg3Size]byte) bool {
	var key [crypto.DigestSize]byte
	crypto.Hash(&key, r.networkKey[:], r.ephShared[:], r.ephLongShared[:])
	ok := crypto.BoxOpen(r.hello[:], in[:], &zeroNonce, &key)
	crypto.Wipe(key[:])
	if !ok {
		return false
	}

	var sig [crypto.SignatureSize]byte
	copy(sig[:], r.hello[:crypto.SignatureSize])
	copy(r.remotePublic[:], r.hello[crypto.SignatureSize:])
	if !crypto.Verify(&r.remotePublic, concat(r.networkKey[:], r.localPublic[:], r.sharedHash[:]), &sig) {
		return false
	}

	var remoteCurve [crypto.GroupSize]byte
	var longEphShared [crypto.GroupSize]byte
	if !crypto.CurvifyPublic(&remoteCurve, &r.remotePublic) ||
		!crypto.ScalarMult(&longEphShared, &r.ephSecret, &remoteCurve) {
		return false
	}
	crypto.Hash(&r.boxKey4, r.networkKey[:], r.ephShared[:], r.ephLongShared[:], longEphShared[:])
	crypto.Wipe(longEphShared[:])
	return true
}

// RemotePublic returns the initiator's long-term public key recovered from
// msg3. Valid only after VerifyMsg3 returned true.
func (r *Responder) RemotePublic() *[crypto.SignPublicKeySize]byte {
	return &r.remotePublic
}

// BuildMsg4 writes the sealed acknowledgment: the signature of
// K ‖ hello ‖ sha256(a·b) under the local long-term key, boxed under
// sha256(K ‖ a·b ‖ a·B ‖ A·b).
func (r *Responder) BuildMsg4(out *[Msg4Size]byte) {
	var ack [ackSize]byte
	crypto.Sign(&ack, &r.localSecret, concat(r.networkKey[:], r.hello[:], r.sharedHash[:]))
	crypto.BoxSeal(out[:], ack[:], &zeroNonce, &r.boxKey4)
	crypto.Wipe(ack[:])
}

// Finalize derives the session outcome. Valid only after BuildMsg4.
func (r *Responder) Finalize(out *Outcome) {
	deriveOutcome(out, &r.networkKey, &r.boxKey4,
		&r.localPublic, &r.remotePublic, &r.ephPublic, &r.remoteEph)
}

// Zero overwrites every slot of the core, secrets and intermediates alike.
func (r *Responder) Zero() {
	crypto.Wipe(r.networkKey[:])
	crypto.Wipe(r.localPublic[:])
	crypto.Wipe(r.localSecret[:])
	crypto.Wipe(r.ephPublic[:])
	crypto.Wipe(r.ephSecret[:])
	crypto.Wipe(r.remoteEph[:])
	crypto.Wipe(r.remotePublic[:])
	crypto.Wipe(r.ephShared[:])
	crypto.Wipe(r.ephLongShared[:])
	crypto.Wipe(r.sharedHash[:])
	crypto.Wipe(r.hello[:])
	crypto.Wipe(r.boxKey4[:])
}
