// Package shs implements the message algebra of the secret-handshake
// protocol: the derivation and verification of the four wire messages and of
// the session outcome. The package does no I/O; the stream drivers in
// internal/handshake feed it complete messages and carry its output to the
// peer.
//
// Both peers hold a pre-shared 32-byte network key K and a long-term Ed25519
// identity, and generate a fresh Curve25519 ephemeral keypair per handshake.
// Writing (a, A) for the initiator ephemeral, (b, B) for the responder
// ephemeral, (As, Ap) and (Bs, Bp) for the long-term keys, the wire messages
// are
//
//	msg1 = hmac(K; A) ‖ A
//	msg2 = hmac(K; B) ‖ B
//	msg3 = box(sign(As, K ‖ Bp ‖ sha256(a·b)) ‖ Ap;  sha256(K ‖ a·b ‖ a·B))
//	msg4 = box(sign(Bs, K ‖ hello ‖ sha256(a·b));    sha256(K ‖ a·b ‖ a·B ‖ A·b))
//
// where every box uses an all-zero nonce (each box key is fresh) and hello is
// the 96-byte plaintext of msg3. Long-term keys enter the scalar
// multiplications through their Curve25519 conversions.
package shs

import (
	"github.com/scuttlenet/secrethandshake/internal/crypto"
)

const (
	// NetworkKeySize is the size of the pre-shared network key in bytes.
	NetworkKeySize = 32

	// Msg1Size is the size of the initiator challenge in bytes.
	Msg1Size = crypto.MacSize + crypto.GroupSize

	// Msg2Size is the size of the responder challenge in bytes.
	Msg2Size = crypto.MacSize + crypto.GroupSize

	// Msg3Size is the size of the sealed initiator authentication in bytes.
	Msg3Size = helloSize + crypto.BoxOverhead

	// Msg4Size is the size of the sealed responder acknowledgment in bytes.
	Msg4Size = ackSize + crypto.BoxOverhead

	// MaxMsgSize is the size of the largest wire message in bytes.
	MaxMsgSize = Msg3Size

	// helloSize is the size of the msg3 plaintext: a detached signature
	// followed by the initiator's long-term public key.
	helloSize = crypto.SignatureSize + crypto.SignPublicKeySize

	// ackSize is the size of the msg4 plaintext: a detached signature.
	ackSize = crypto.SignatureSize
)

// zeroNonce is the nonce for every secretbox in the handshake. Each box key
// is derived fresh from the preceding messages, so the nonce never repeats
// under a key.
var zeroNonce [crypto.BoxNonceSize]byte

// challenge writes hmac(K; eph) ‖ eph to out.
func challenge(out *[Msg1Size]byte, networkKey *[NetworkKeySize]byte, eph *[crypto.GroupSize]byte) {
	var mac [crypto.MacSize]byte
	crypto.Auth(&mac, eph[:], networkKey)
	copy(out[:crypto.MacSize], mac[:])
	copy(out[crypto.MacSize:], eph[:])
}

// verifyChallenge checks the leading MAC of a challenge against its trailing
// ephemeral key and records the key on success.
func verifyChallenge(in *[Msg1Size]byte, networkKey *[NetworkKeySize]byte, eph *[crypto.GroupSize]byte) bool {
	var mac [crypto.MacSize]byte
	copy(mac[:], in[:crypto.MacSize])
	if !crypto.AuthVerify(&mac, in[crypto.MacSize:], networkKey) {
		return false
	}
	copy(eph[:], in[crypto.MacSize:])
	return true
}
