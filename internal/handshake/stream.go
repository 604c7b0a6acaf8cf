// Package handshake drives the secret-handshake protocol over a byte stream.
// The message algebra lives in internal/shs; this package owns the I/O: two
// resumable state machines, one per role, that read and write the four wire
// messages in order, consult the responder's admission predicate, and
// zeroize their state on every terminal path.
//
// Drivers are cooperative. A Step call runs until the handshake completes,
// fails, or the stream signals ErrWouldBlock; in the last case the caller
// steps again once the stream is ready. Streams that never would-block
// complete the whole handshake in a single Step.
package handshake

import (
	"errors"
	"io"
)

// Stream is the surface a driver requires from its transport: partial reads
// and writes plus an explicit flush. The driver owns the stream for the
// duration of the handshake; the caller must not touch it until a terminal
// Step result hands it back.
//
// A Stream may return ErrWouldBlock from any of the three methods to suspend
// the driver, and ErrInterrupted to request an immediate retry. Reads and
// writes may be partial without error.
type Stream interface {
	io.Reader
	io.Writer
	Flush() error
}

var (
	// ErrWouldBlock signals that a stream operation cannot make progress
	// yet. It suspends the current Step without advancing driver state.
	ErrWouldBlock = errors.New("handshake: operation would block")

	// ErrInterrupted signals a transiently interrupted stream operation.
	// The driver retries it immediately within the same Step.
	ErrInterrupted = errors.New("handshake: operation interrupted")
)

// Duplex combines a reader and a writer into a Stream. Flush is forwarded to
// the writer when it has one and is a no-op otherwise. This is the shape of
// the stdio harness transport: stdin paired with buffered stdout.
func Duplex(r io.Reader, w io.Writer) Stream {
	return &duplex{r: r, w: w}
}

type duplex struct {
	r io.Reader
	w io.Writer
}

func (d *duplex) Read(p []byte) (int, error)  { return d.r.Read(p) }
func (d *duplex) Write(p []byte) (int, error) { return d.w.Write(p) }

func (d *duplex) Flush() error {
	if f, ok := d.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// readFull fills buf from offset onward, advancing *offset as bytes arrive.
// It maps end-of-stream and zero-length reads to ErrUnexpectedEOF and passes
// suspension signals through untouched.
func readFull(s Stream, buf []byte, offset *int) error {
	for *offset < len(buf) {
		n, err := s.Read(buf[*offset:])
		*offset += n
		if err != nil {
			if *offset == len(buf) {
				break
			}
			if errors.Is(err, ErrInterrupted) {
				continue
			}
			if errors.Is(err, ErrWouldBlock) {
				return ErrWouldBlock
			}
			if errors.Is(err, io.EOF) {
				return ErrUnexpectedEOF
			}
			return &IOError{Op: "read", Err: err}
		}
		if n == 0 {
			return ErrUnexpectedEOF
		}
	}
	return nil
}

// writeFull writes buf from offset onward, advancing *offset as bytes are
// accepted. A zero-length write without error is reported as ErrWriteZero.
func writeFull(s Stream, buf []byte, offset *int) error {
	for *offset < len(buf) {
		n, err := s.Write(buf[*offset:])
		*offset += n
		if err != nil {
			if *offset == len(buf) {
				break
			}
			if errors.Is(err, ErrInterrupted) {
				continue
			}
			if errors.Is(err, ErrWouldBlock) {
				return ErrWouldBlock
			}
			return &IOError{Op: "write", Err: err}
		}
		if n == 0 {
			return ErrWriteZero
		}
	}
	return nil
}

// flush drives Stream.Flush through its transient signals.
func flush(s Stream) error {
	for {
		err := s.Flush()
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrInterrupted) {
			continue
		}
		if errors.Is(err, ErrWouldBlock) {
			return ErrWouldBlock
		}
		return &IOError{Op: "flush", Err: err}
	}
}
