package sn

import (
	"fmt"
	"io"
	"os"
)

// Snapshot is one logged training state.
type Snapshot struct {
	Iter int
	Loss float64
	Phi0 [2][]float64 // per-group scalar flux on the training grid
	Phi1 [2][]float64 // per-group first angular moment (diagnostic)
}

// Sink receives periodic training snapshots. The trainer calls Write
// synchronously between iterations, so implementations should be cheap.
type Sink interface {
	Write(Snapshot) error
}

// writerSink formats snapshots in the solver's plain-text log format.
type writerSink struct {
	w io.Writer
}

// NewWriterSink returns a Sink that writes the plain-text training log to w:
// one "Iter <n>: <loss>" line per snapshot followed by the two groups'
// scalar-flux vectors.
func NewWriterSink(w io.Writer) Sink { return &writerSink{w: w} }

func (s *writerSink) Write(snap Snapshot) error {
	if _, err := fmt.Fprintf(s.w, "Iter %d: %v\n", snap.Iter, snap.Loss); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "phi0 group 1: %v\n", snap.Phi0[0]); err != nil {
		return err
	}
	_, err := fmt.Fprintf(s.w, "phi0 group 2: %v\n", snap.Phi0[1])
	return err
}

// fileSink owns its file handle. The trainer opens it when a run starts and
// closes it on every exit path, so the log file's lifetime is exactly one
// training run.
type fileSink struct {
	Sink
	f *os.File
}

func newFileSink(path string) (*fileSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("open training log: %w", err)
	}
	return &fileSink{Sink: NewWriterSink(f), f: f}, nil
}

func (s *fileSink) Close() error { return s.f.Close() }
