// Package crypto provides the primitive operations the handshake is built
// from: HMAC-SHA-512-256 authenticators, SHA-256 digests, Curve25519 scalar
// multiplication, Ed25519 signatures and their Curve25519 conversions, and
// XSalsa20-Poly1305 secretboxes. Everything operates on fixed-length byte
// arrays so key material never hides behind a slice of unknown length.
package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"io"
	"runtime"

	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/nacl/auth"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	// MacSize is the size of an HMAC-SHA-512-256 authenticator in bytes.
	MacSize = auth.Size

	// DigestSize is the size of a SHA-256 digest in bytes.
	DigestSize = sha256.Size

	// GroupSize is the size of a Curve25519 group element in bytes.
	GroupSize = curve25519.PointSize

	// ScalarSize is the size of a Curve25519 scalar in bytes.
	ScalarSize = curve25519.ScalarSize

	// BoxKeySize is the size of a secretbox key in bytes.
	BoxKeySize = 32

	// BoxNonceSize is the size of a secretbox nonce in bytes.
	BoxNonceSize = 24

	// BoxOverhead is the number of bytes a secretbox adds to its plaintext.
	BoxOverhead = secretbox.Overhead
)

// Auth computes the HMAC-SHA-512-256 authenticator of msg under key.
func Auth(out *[MacSize]byte, msg []byte, key *[32]byte) {
	*out = *auth.Sum(msg, key)
}

// AuthVerify reports whether mac is the valid authenticator of msg under key.
// The comparison runs in constant time.
func AuthVerify(mac *[MacSize]byte, msg []byte, key *[32]byte) bool {
	return auth.Verify(mac[:], msg, key)
}

// Hash computes the SHA-256 digest of the concatenation of parts.
func Hash(out *[DigestSize]byte, parts ...[]byte) {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	h.Sum(out[:0])
}

// ScalarMult computes the Curve25519 product of scalar and point. It returns
// false when the result is the all-zero group element, which happens only for
// low-order inputs a well-behaved peer never sends.
func ScalarMult(out *[GroupSize]byte, scalar *[ScalarSize]byte, point *[GroupSize]byte) bool {
	product, err := curve25519.X25519(scalar[:], point[:])
	if err != nil {
		return false
	}
	copy(out[:], product)
	return true
}

// BoxSeal encrypts and authenticates msg with key and nonce, writing the
// len(msg)+BoxOverhead byte box to out.
func BoxSeal(out []byte, msg []byte, nonce *[BoxNonceSize]byte, key *[BoxKeySize]byte) {
	secretbox.Seal(out[:0], msg, nonce, key)
}

// BoxOpen authenticates and decrypts box with key and nonce, writing the
// len(box)-BoxOverhead byte plaintext to out. It reports whether the box was
// authentic; out is untouched on failure.
func BoxOpen(out []byte, box []byte, nonce *[BoxNonceSize]byte, key *[BoxKeySize]byte) bool {
	_, ok := secretbox.Open(out[:0], box, nonce, key)
	return ok
}

// GenerateEphemeralKeypair generates a fresh Curve25519 keypair for a single
// handshake.
func GenerateEphemeralKeypair() (pk [GroupSize]byte, sk [ScalarSize]byte, err error) {
	if _, err = io.ReadFull(rand.Reader, sk[:]); err != nil {
		return pk, sk, err
	}
	curve25519.ScalarBaseMult(&pk, &sk)
	return pk, sk, nil
}

// Wipe overwrites b with zeros. The KeepAlive fence stops the compiler from
// treating the stores as dead when b is about to go out of scope.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(&b)
}
