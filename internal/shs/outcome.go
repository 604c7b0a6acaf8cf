package shs

import (
	"github.com/scuttlenet/secrethandshake/internal/crypto"
)

// Outcome carries everything a completed handshake hands to the transport
// layer: a directional key and starting nonce for each direction, and the
// cryptographically verified long-term public key of the peer. It is the only
// value that outlives the handshake; call Zero once the transport has copied
// what it needs.
type Outcome struct {
	// EncryptionKey seals frames this side sends; the peer's DecryptionKey
	// equals it.
	EncryptionKey [crypto.BoxKeySize]byte

	// EncryptionNonce is the starting nonce for sent frames.
	EncryptionNonce [crypto.BoxNonceSize]byte

	// DecryptionKey opens frames the peer sends.
	DecryptionKey [crypto.BoxKeySize]byte

	// DecryptionNonce is the starting nonce for received frames.
	DecryptionNonce [crypto.BoxNonceSize]byte

	// RemotePublic is the peer's verified long-term public key.
	RemotePublic [crypto.SignPublicKeySize]byte
}

// Zero overwrites the outcome's key material.
func (o *Outcome) Zero() {
	crypto.Wipe(o.EncryptionKey[:])
	crypto.Wipe(o.EncryptionNonce[:])
	crypto.Wipe(o.DecryptionKey[:])
	crypto.Wipe(o.DecryptionNonce[:])
	crypto.Wipe(o.RemotePublic[:])
}

// deriveOutcome fills out from the final handshake state. boxKey4 is
// sha256(K ‖ a·b ‖ a·B ‖ A·b), the msg4 box key; hashing it once more gives
// the final shared secret both directional keys are derived from. The
// starting nonces are the leading 24 bytes of the challenge MACs.
func deriveOutcome(out *Outcome, networkKey *[NetworkKeySize]byte, boxKey4 *[crypto.DigestSize]byte,
	localPublic, remotePublic *[crypto.SignPublicKeySize]byte,
	localEph, remoteEph *[crypto.GroupSize]byte) {

	var final [crypto.DigestSize]byte
	crypto.Hash(&final, boxKey4[:])
	crypto.Hash(&out.EncryptionKey, final[:], remotePublic[:])
	crypto.Hash(&out.DecryptionKey, final[:], localPublic[:])

	var mac [crypto.MacSize]byte
	crypto.Auth(&mac, remoteEph[:], networkKey)
	copy(out.EncryptionNonce[:], mac[:crypto.BoxNonceSize])
	crypto.Auth(&mac, localEph[:], networkKey)
	copy(out.DecryptionNonce[:], mac[:crypto.BoxNonceSize])

	out.RemotePublic = *remotePublic

	crypto.Wipe(final[:])
	crypto.Wipe(mac[:])
}
