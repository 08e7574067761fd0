// Package feed drives a parser over data that arrives from an io.Reader.
//
// The scanner keeps the unconsumed part of the input in a buffer and runs the
// parser on a partial view of it. When the parser reports Incomplete the
// scanner reads more and parses again from the start of the buffer. When the
// reader is exhausted the view switches to complete mode.
package feed

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"unicode/utf8"

	"github.com/shibukawa/parsekit/combinator"
	"github.com/shibukawa/parsekit/parseerr"
	"github.com/shibukawa/parsekit/stream"
)

// Sentinel errors
var (
	ErrBufferLimit = errors.New("scan buffer limit exceeded")
	ErrNoProgress  = errors.New("parser succeeded without consuming input")
)

// DefaultChunkSize is the read size used when Options.ChunkSize is not positive.
const DefaultChunkSize = 4096

// Options tunes a Scanner.
type Options struct {
	// ChunkSize is the size of a single read.
	ChunkSize int
	// MaxBuffer caps the unconsumed buffer in bytes. Zero means no limit.
	MaxBuffer int
}

// Stats counts the work a Scanner did.
type Stats struct {
	Reads    int
	Reparses int
	Values   int
}

// View builds a stream over the buffered bytes. partial is true while the
// reader may still produce data.
type View[T, S any] func(buf []byte, partial bool) stream.Stream[T, S]

// Scanner yields the values of a parser applied repeatedly to a reader.
type Scanner[T, S, O any] struct {
	r     io.Reader
	p     combinator.Parser[stream.Stream[T, S], O]
	view  View[T, S]
	opts  Options
	chunk []byte

	buf    []byte
	base   int
	eof    bool
	value  O
	err    error
	stats  Stats
	primed bool
}

// NewScanner returns a scanner reading from r.
func NewScanner[T, S, O any](r io.Reader, p combinator.Parser[stream.Stream[T, S], O], view View[T, S], opts Options) *Scanner[T, S, O] {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}

	return &Scanner[T, S, O]{
		r:     r,
		p:     p,
		view:  view,
		opts:  opts,
		chunk: make([]byte, opts.ChunkSize),
	}
}

// NewTextScanner scans UTF-8 text. A rune split across reads is held back
// until it is complete.
func NewTextScanner[O any](r io.Reader, p combinator.Parser[stream.TextStream, O], opts Options) *Scanner[rune, string, O] {
	return NewScanner(r, p, TextView, opts)
}

// NewBytesScanner scans raw bytes. Values may share memory with the internal
// buffer but are never overwritten by later reads.
func NewBytesScanner[O any](r io.Reader, p combinator.Parser[stream.ByteStream, O], opts Options) *Scanner[byte, []byte, O] {
	return NewScanner(r, p, BytesView, opts)
}

// TextView is the View of NewTextScanner.
func TextView(buf []byte, partial bool) stream.TextStream {
	if partial {
		return stream.NewPartialText(string(buf[:fullRunes(buf)]))
	}

	return stream.NewText(string(buf))
}

// BytesView is the View of NewBytesScanner.
func BytesView(buf []byte, partial bool) stream.ByteStream {
	if partial {
		return stream.NewPartialBytes(buf)
	}

	return stream.NewBytes(buf)
}

// fullRunes returns the length of the prefix of buf that ends on a rune boundary.
func fullRunes(buf []byte) int {
	for i := len(buf) - 1; i >= 0 && i >= len(buf)-utf8.UTFMax; i-- {
		if utf8.RuneStart(buf[i]) {
			if utf8.FullRune(buf[i:]) {
				return len(buf)
			}

			return i
		}
	}

	return len(buf)
}

// Scan parses the next value. It returns false at the end of the input or on
// error; Err distinguishes the two.
func (s *Scanner[T, S, O]) Scan() bool {
	if s.err != nil {
		return false
	}

	if !s.primed {
		s.primed = true

		if err := s.fill(1); err != nil {
			s.err = err
			return false
		}
	}

	for {
		if s.eof && len(s.buf) == 0 {
			return false
		}

		in := s.view(s.buf, !s.eof)

		var (
			v   O
			err error
		)

		if s.eof {
			v, err = combinator.Run(s.p, in)
		} else {
			v, err = combinator.RunPartial(s.p, in)
		}

		if err == nil {
			consumed := in.Offset()
			if consumed == 0 {
				s.err = fmt.Errorf("%w at stream offset %d", ErrNoProgress, s.base)
				return false
			}

			s.buf = s.buf[consumed:]
			s.base += consumed
			s.value = v
			s.stats.Values++

			return true
		}

		if !s.eof && parseerr.IsIncomplete(err) {
			needed, _ := parseerr.NeededOf(err)
			n, _ := needed.Count()

			if err := s.fill(max(n, 1)); err != nil {
				s.err = err
				return false
			}

			s.stats.Reparses++

			continue
		}

		s.err = fmt.Errorf("at stream offset %d: %w", s.base, err)

		return false
	}
}

// maxEmptyReads bounds successive (0, nil) reads, as bufio does.
const maxEmptyReads = 100

func (s *Scanner[T, S, O]) fill(need int) error {
	added, empty := 0, 0

	for added < need {
		if s.opts.MaxBuffer > 0 && len(s.buf) >= s.opts.MaxBuffer {
			return fmt.Errorf("%w: %d bytes buffered at stream offset %d", ErrBufferLimit, len(s.buf), s.base)
		}

		n, err := s.r.Read(s.chunk)
		s.stats.Reads++
		s.buf = append(s.buf, s.chunk[:n]...)
		added += n

		if errors.Is(err, io.EOF) {
			s.eof = true
			return nil
		}

		if err != nil {
			return err
		}

		if n == 0 {
			if empty++; empty >= maxEmptyReads {
				return io.ErrNoProgress
			}
		}
	}

	return nil
}

// Value returns the value parsed by the last successful Scan.
func (s *Scanner[T, S, O]) Value() O {
	return s.value
}

// Err returns the error that stopped scanning, or nil at a clean end of input.
// Parse failures keep their parseerr classification.
func (s *Scanner[T, S, O]) Err() error {
	return s.err
}

// Offset returns the number of bytes consumed so far.
func (s *Scanner[T, S, O]) Offset() int {
	return s.base
}

// Stats returns the work counters.
func (s *Scanner[T, S, O]) Stats() Stats {
	return s.stats
}

// All iterates the remaining values. A failure is yielded once, last.
func (s *Scanner[T, S, O]) All() iter.Seq2[O, error] {
	return func(yield func(O, error) bool) {
		for s.Scan() {
			if !yield(s.value, nil) {
				return
			}
		}

		if s.err != nil {
			var zero O
			yield(zero, s.err)
		}
	}
}
