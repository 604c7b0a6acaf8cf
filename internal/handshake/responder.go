package handshake

import (
	"errors"

	"github.com/scuttlenet/secrethandshake/internal/crypto"
	"github.com/scuttlenet/secrethandshake/internal/shs"
)

// responderPhase enumerates the responder driver's linear phase sequence.
type responderPhase uint8

const (
	rReadMsg1 responderPhase = iota
	rWriteMsg2
	rFlushMsg2
	rReadMsg3
	rFilterPeer
	rWriteMsg4
	rFlushMsg4
	rDone
)

// Responder drives the responder side of a handshake over a stream. Between
// receiving message 3 and sending message 4 it consults the admission
// predicate with the peer's verified long-term public key; a false verdict
// terminates the handshake with ErrUnauthorizedPeer before any further bytes
// touch the stream.
type Responder struct {
	stream  Stream
	check   CheckClient
	pending PendingDecision
	core    *shs.Responder
	buf     [shs.MaxMsgSize]byte
	offset  int
	phase   responderPhase
	result  error
}

// NewResponder constructs a responder driver. A nil check admits every
// authenticated peer.
func NewResponder(stream Stream, check CheckClient, networkKey *[shs.NetworkKeySize]byte,
	localPublic *[crypto.SignPublicKeySize]byte, localSecret *[crypto.SignSecretKeySize]byte,
	ephPublic *[crypto.GroupSize]byte, ephSecret *[crypto.ScalarSize]byte) *Responder {

	if check == nil {
		check = AcceptAny
	}
	return &Responder{
		stream: stream,
		check:  check,
		core:   shs.NewResponder(networkKey, localPublic, localSecret, ephPublic, ephSecret),
	}
}

// Step advances the handshake as far as the stream and the admission
// decision allow. Semantics match Initiator.Step; the additional suspension
// point is a pending admission verdict.
func (d *Responder) Step() (*shs.Outcome, error) {
	for {
		switch d.phase {
		case rReadMsg1:
			if err := readFull(d.stream, d.buf[:shs.Msg1Size], &d.offset); err != nil {
				return nil, d.checkpoint(err)
			}
			if !d.core.VerifyMsg1((*[shs.Msg1Size]byte)(d.buf[:shs.Msg1Size])) {
				return nil, d.terminate(ErrInvalidMsg1)
			}
			d.core.BuildMsg2((*[shs.Msg2Size]byte)(d.buf[:shs.Msg2Size]))
			d.transition(rWriteMsg2)

		case rWriteMsg2:
			if err := writeFull(d.stream, d.buf[:shs.Msg2Size], &d.offset); err != nil {
				return nil, d.checkpoint(err)
			}
			d.transition(rFlushMsg2)

		case rFlushMsg2:
			if err := flush(d.stream); err != nil {
				return nil, d.checkpoint(err)
			}
			d.transition(rReadMsg3)

		case rReadMsg3:
			if err := readFull(d.stream, d.buf[:shs.Msg3Size], &d.offset); err != nil {
				return nil, d.checkpoint(err)
			}
			if !d.core.VerifyMsg3((*[shs.Msg3Size]byte)(d.buf[:shs.Msg3Size])) {
				return nil, d.terminate(ErrInvalidMsg3)
			}
			d.pending = d.check(d.core.RemotePublic())
			d.check = nil
			d.transition(rFilterPeer)

		case rFilterPeer:
			allowed, err := d.pending.Poll()
			if err != nil {
				if errors.Is(err, ErrWouldBlock) {
					return nil, ErrWouldBlock
				}
				return nil, d.terminate(&AdmissionError{Err: err})
			}
			if !allowed {
				return nil, d.terminate(ErrUnauthorizedPeer)
			}
			d.pending = nil
			d.core.BuildMsg4((*[shs.Msg4Size]byte)(d.buf[:shs.Msg4Size]))
			d.transition(rWriteMsg4)

		case rWriteMsg4:
			if err := writeFull(d.stream, d.buf[:shs.Msg4Size], &d.offset); err != nil {
				return nil, d.checkpoint(err)
			}
			d.transition(rFlushMsg4)

		case rFlushMsg4:
			if err := flush(d.stream); err != nil {
				return nil, d.checkpoint(err)
			}
			outcome := new(shs.Outcome)
			d.core.Finalize(outcome)
			d.terminate(ErrDone)
			return outcome, nil

		default: // rDone
			return nil, d.result
		}
	}
}

// Close zeroizes the driver if it has not reached a terminal state yet. It
// is safe to call at any point and more than once.
func (d *Responder) Close() error {
	if d.phase != rDone {
		d.terminate(ErrDone)
	}
	return nil
}

func (d *Responder) checkpoint(err error) error {
	if errors.Is(err, ErrWouldBlock) {
		return ErrWouldBlock
	}
	return d.terminate(err)
}

func (d *Responder) transition(next responderPhase) {
	d.offset = 0
	d.phase = next
}

func (d *Responder) terminate(err error) error {
	d.result = err
	d.phase = rDone
	d.pending = nil
	d.core.Zero()
	crypto.Wipe(d.buf[:])
	return err
}
