package crypto

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha512"

	"filippo.io/edwards25519"
)

const (
	// SignPublicKeySize is the size of an Ed25519 public key in bytes.
	SignPublicKeySize = ed25519.PublicKeySize

	// SignSecretKeySize is the size of an Ed25519 secret key in bytes
	// (32-byte seed followed by the 32-byte public key).
	SignSecretKeySize = ed25519.PrivateKeySize

	// SignatureSize is the size of an Ed25519 signature in bytes.
	SignatureSize = ed25519.SignatureSize
)

// Sign computes the Ed25519 signature of msg under sk.
func Sign(out *[SignatureSize]byte, sk *[SignSecretKeySize]byte, msg []byte) {
	copy(out[:], ed25519.Sign(ed25519.PrivateKey(sk[:]), msg))
}

// Verify reports whether sig is a valid Ed25519 signature of msg under pk.
func Verify(pk *[SignPublicKeySize]byte, msg []byte, sig *[SignatureSize]byte) bool {
	return ed25519.Verify(ed25519.PublicKey(pk[:]), msg, sig[:])
}

// CurvifyPublic converts an Ed25519 public key to its Curve25519 counterpart
// by decompressing the Edwards point and mapping it to Montgomery form. It
// returns false when pk does not encode a point on the curve or is not the
// canonical encoding of that point.
func CurvifyPublic(out *[GroupSize]byte, pk *[SignPublicKeySize]byte) bool {
	p, err := new(edwards25519.Point).SetBytes(pk[:])
	if err != nil || !bytes.Equal(p.Bytes(), pk[:]) {
		return false
	}
	copy(out[:], p.BytesMontgomery())
	return true
}

// CurvifySecret converts an Ed25519 secret key to its Curve25519 counterpart:
// the first 32 bytes of the SHA-512 of the seed. Clamping is left to the
// scalar multiplication, matching the NaCl conversion.
func CurvifySecret(out *[ScalarSize]byte, sk *[SignSecretKeySize]byte) {
	h := sha512.Sum512(sk[:32])
	copy(out[:], h[:32])
	Wipe(h[:])
}
