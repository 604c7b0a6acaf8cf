package handshake

import (
	"errors"

	"github.com/scuttlenet/secrethandshake/internal/crypto"
	"github.com/scuttlenet/secrethandshake/internal/shs"
)

// initiatorPhase enumerates the initiator driver's linear phase sequence.
type initiatorPhase uint8

const (
	iWriteMsg1 initiatorPhase = iota
	iFlushMsg1
	iReadMsg2
	iWriteMsg3
	iFlushMsg3
	iReadMsg4
	iDone
)

// Initiator drives the initiator side of a handshake over a stream. Create
// one with NewInitiator, call Step until it returns something other than
// ErrWouldBlock, then discard it. Both terminal paths zeroize the driver's
// scratch buffer and core; Close covers abandonment before a terminal Step.
type Initiator struct {
	stream Stream
	core   *shs.Initiator
	buf    [shs.MaxMsgSize]byte
	offset int
	phase  initiatorPhase
	result error // terminal error replayed by Step once phase == iDone
}

// NewInitiator constructs an initiator driver. The responder's long-term
// public key is validated here; everything else can only fail against the
// stream or the peer.
func NewInitiator(stream Stream, networkKey *[shs.NetworkKeySize]byte,
	localPublic *[crypto.SignPublicKeySize]byte, localSecret *[crypto.SignSecretKeySize]byte,
	ephPublic *[crypto.GroupSize]byte, ephSecret *[crypto.ScalarSize]byte,
	remotePublic *[crypto.SignPublicKeySize]byte) (*Initiator, error) {

	core, err := shs.NewInitiator(networkKey, localPublic, localSecret, ephPublic, ephSecret, remotePublic)
	if err != nil {
		return nil, err
	}
	d := &Initiator{stream: stream, core: core}
	core.BuildMsg1((*[shs.Msg1Size]byte)(d.buf[:shs.Msg1Size]))
	return d, nil
}

// Step advances the handshake as far as the stream allows. It returns the
// session outcome on success, ErrWouldBlock when the stream (or a transient
// signal) suspended the handshake mid-phase, a protocol rejection when the
// peer failed a check, or a fatal stream error. Any non-ErrWouldBlock return
// is terminal.
func (d *Initiator) Step() (*shs.Outcome, error) {
	for {
		switch d.phase {
		case iWriteMsg1:
			if err := writeFull(d.stream, d.buf[:shs.Msg1Size], &d.offset); err != nil {
				return nil, d.checkpoint(err)
			}
			d.transition(iFlushMsg1)

		case iFlushMsg1:
			if err := flush(d.stream); err != nil {
				return nil, d.checkpoint(err)
			}
			d.transition(iReadMsg2)

		case iReadMsg2:
			if err := readFull(d.stream, d.buf[:shs.Msg2Size], &d.offset); err != nil {
				return nil, d.checkpoint(err)
			}
			if !d.core.VerifyMsg2((*[shs.Msg2Size]byte)(d.buf[:shs.Msg2Size])) {
				return nil, d.terminate(ErrInvalidMsg2)
			}
			d.core.BuildMsg3((*[shs.Msg3Size]byte)(d.buf[:shs.Msg3Size]))
			d.transition(iWriteMsg3)

		case iWriteMsg3:
			if err := writeFull(d.stream, d.buf[:shs.Msg3Size], &d.offset); err != nil {
				return nil, d.checkpoint(err)
			}
			d.transition(iFlushMsg3)

		case iFlushMsg3:
			if err := flush(d.stream); err != nil {
				return nil, d.checkpoint(err)
			}
			d.transition(iReadMsg4)

		case iReadMsg4:
			if err := readFull(d.stream, d.buf[:shs.Msg4Size], &d.offset); err != nil {
				return nil, d.checkpoint(err)
			}
			if !d.core.VerifyMsg4((*[shs.Msg4Size]byte)(d.buf[:shs.Msg4Size])) {
				return nil, d.terminate(ErrInvalidMsg4)
			}
			outcome := new(shs.Outcome)
			d.core.Finalize(outcome)
			d.terminate(ErrDone)
			return outcome, nil

		default: // iDone
			return nil, d.result
		}
	}
}

// Close zeroizes the driver if it has not reached a terminal state yet. It
// is safe to call at any point and more than once.
func (d *Initiator) Close() error {
	if d.phase != iDone {
		d.terminate(ErrDone)
	}
	return nil
}

// checkpoint inspects a phase error: suspensions leave the driver resumable,
// everything else is terminal.
func (d *Initiator) checkpoint(err error) error {
	if errors.Is(err, ErrWouldBlock) {
		return ErrWouldBlock
	}
	return d.terminate(err)
}

// transition moves to the next phase, resetting the offset counter.
func (d *Initiator) transition(next initiatorPhase) {
	d.offset = 0
	d.phase = next
}

// terminate records the terminal result and wipes every secret the driver
// owns. It returns err for convenience at return sites.
func (d *Initiator) terminate(err error) error {
	d.result = err
	d.phase = iDone
	d.core.Zero()
	crypto.Wipe(d.buf[:])
	return err
}
