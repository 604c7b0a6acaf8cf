package handshake

import (
	"github.com/scuttlenet/secrethandshake/internal/crypto"
)

// CheckClient is the responder's admission predicate. It is invoked at most
// once per handshake, after message 3 has been opened and its signature
// verified — the key it receives is cryptographically proven to belong to
// the peer. The key is borrowed; implementations must copy it if they keep
// it past the call.
type CheckClient func(remote *[crypto.SignPublicKeySize]byte) PendingDecision

// PendingDecision is a deferred admission verdict. Poll returns the verdict
// once it is available; while the decision is still pending it returns
// ErrWouldBlock, suspending the driver the same way the stream does. Any
// other error is a predicate failure and aborts the handshake with an
// AdmissionError.
type PendingDecision interface {
	Poll() (allowed bool, err error)
}

// Decided returns a PendingDecision that is ready immediately.
func Decided(allowed bool) PendingDecision {
	return decided(allowed)
}

type decided bool

func (d decided) Poll() (bool, error) { return bool(d), nil }

// AcceptAny is the non-filtering admission predicate: every peer that
// completes the cryptographic handshake is admitted.
func AcceptAny(*[crypto.SignPublicKeySize]byte) PendingDecision {
	return decided(true)
}
