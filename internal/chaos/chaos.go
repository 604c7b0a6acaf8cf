// Package chaos provides fault injection for handshake streams. A
// FaultStream decorates a handshake.Stream with scripted faults — transient
// would-block and interrupt signals, zero-length reads and writes, hard
// errors — and can cap every read and write to a fixed chunk size. Scripts
// are deterministic so tests can assert that a given interleaving of
// transport misbehavior leaves the handshake outcome unchanged.
package chaos

import (
	"github.com/scuttlenet/secrethandshake/internal/handshake"
)

// Fault is one scripted action applied to a single stream operation.
type Fault int

const (
	// FaultNone lets the operation through (subject to the chunk cap).
	FaultNone Fault = iota

	// FaultWouldBlock makes the operation signal handshake.ErrWouldBlock.
	FaultWouldBlock

	// FaultInterrupt makes the operation signal handshake.ErrInterrupted.
	FaultInterrupt

	// FaultZero makes a read or write return (0, nil): end-of-stream on
	// the read side, a zero write on the write side. Flushes pass through.
	FaultZero

	// FaultError makes the operation fail with the configured Err.
	FaultError
)

// Config scripts the faults a FaultStream injects. Each operation consumes
// the next entry of its script; an exhausted script passes operations
// through, unless Cycle repeats it forever.
type Config struct {
	// ChunkSize caps the bytes moved by each read and write. Zero means
	// uncapped.
	ChunkSize int

	// ReadFaults, WriteFaults and FlushFaults are consumed one entry per
	// operation on the respective method.
	ReadFaults  []Fault
	WriteFaults []Fault
	FlushFaults []Fault

	// Cycle repeats the scripts instead of exhausting them.
	Cycle bool

	// Err is the error injected by FaultError.
	Err error
}

// FaultStream is a handshake.Stream decorated with scripted faults.
type FaultStream struct {
	inner handshake.Stream
	cfg   Config

	readPos  int
	writePos int
	flushPos int
}

// Wrap decorates inner with the scripted faults in cfg.
func Wrap(inner handshake.Stream, cfg Config) *FaultStream {
	return &FaultStream{inner: inner, cfg: cfg}
}

// Every builds a script that fires fault on every n-th operation and passes
// the rest, repeated for total operations. Use with Cycle for an unbounded
// pattern.
func Every(n int, fault Fault, total int) []Fault {
	script := make([]Fault, total)
	for i := range script {
		if (i+1)%n == 0 {
			script[i] = fault
		}
	}
	return script
}

func (f *FaultStream) Read(p []byte) (int, error) {
	switch next(f.cfg.ReadFaults, &f.readPos, f.cfg.Cycle) {
	case FaultWouldBlock:
		return 0, handshake.ErrWouldBlock
	case FaultInterrupt:
		return 0, handshake.ErrInterrupted
	case FaultZero:
		return 0, nil
	case FaultError:
		return 0, f.cfg.Err
	}
	return f.inner.Read(f.chunk(p))
}

func (f *FaultStream) Write(p []byte) (int, error) {
	switch next(f.cfg.WriteFaults, &f.writePos, f.cfg.Cycle) {
	case FaultWouldBlock:
		return 0, handshake.ErrWouldBlock
	case FaultInterrupt:
		return 0, handshake.ErrInterrupted
	case FaultZero:
		return 0, nil
	case FaultError:
		return 0, f.cfg.Err
	}
	return f.inner.Write(f.chunk(p))
}

func (f *FaultStream) Flush() error {
	switch next(f.cfg.FlushFaults, &f.flushPos, f.cfg.Cycle) {
	case FaultWouldBlock:
		return handshake.ErrWouldBlock
	case FaultInterrupt:
		return handshake.ErrInterrupted
	case FaultError:
		return f.cfg.Err
	}
	return f.inner.Flush()
}

func (f *FaultStream) chunk(p []byte) []byte {
	if f.cfg.ChunkSize > 0 && len(p) > f.cfg.ChunkSize {
		return p[:f.cfg.ChunkSize]
	}
	return p
}

func next(script []Fault, pos *int, cycle bool) Fault {
	if len(script) == 0 || (*pos >= len(script) && !cycle) {
		return FaultNone
	}
	fault := script[*pos%len(script)]
	*pos++
	return fault
}
