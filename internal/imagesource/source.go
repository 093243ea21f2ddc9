package imagesource

import (
	"bytes"
	"fmt"
	"reflect"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Source is a handle that decodes an image on demand. The zero value is an
// empty source: Image and Probe fail with ErrEmptySource.
//
// Copying a Source value (assignment, passing by value) yields the same
// reference, not a new owner: if any copy is closed, every copy fails with
// ErrClosed. A function that closes a Source it received by value therefore
// ends the caller's use of it too. Hand out Clone when the receiver may
// close, and keep each Clone's Close paired with its creation.
type Source struct {
	ref *reference
}

// reference is one closable owner of a shared strategy.
type reference struct {
	shared *shared
	closed atomic.Bool
}

// shared is created once per factory call and never mutated afterwards,
// apart from its reference count.
type shared struct {
	id    uuid.UUID
	strat strategy
	codec Codec
	log   zerolog.Logger
	refs  atomic.Int64
}

// Option configures a Source at construction.
type Option func(*options)

type options struct {
	codec Codec
	log   *zerolog.Logger
}

// WithCodec sets the codec used to decode. Defaults to a StdCodec.
func WithCodec(c Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}

// WithLogger sets the logger for construction and teardown traces. Defaults
// to the global zerolog logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.log = &l
	}
}

// FromFile returns a Source that decodes the file at path. The path is not
// opened or validated until the image is requested.
func FromFile(path string, opts ...Option) Source {
	src := bind(&fileSource{path: path}, opts)
	src.ref.shared.log.Trace().
		Str("source", src.ref.shared.id.String()).
		Str("kind", KindFile.String()).
		Str("path", path).
		Msg("image source created")
	return src
}

// FromBuffer returns a Source that decodes the encoded bytes held by buf.
// buf.Pin is called once, here; its release hook runs after the last
// reference to the Source is closed.
func FromBuffer(buf Buffer, opts ...Option) Source {
	src := bind(&bufferSource{view: pin(buf)}, opts)
	src.ref.shared.log.Trace().
		Str("source", src.ref.shared.id.String()).
		Str("kind", KindBuffer.String()).
		Int("bytes", len(src.ref.shared.strat.(*bufferSource).view.data)).
		Msg("image source created")
	return src
}

// FromBytes returns a Source over an encoded image held in data. data is
// viewed, not copied, and must not be modified while the Source is in use.
func FromBytes(data []byte, opts ...Option) Source {
	return FromBuffer(bytesBuffer(data), opts...)
}

// FromValue builds a Source from a value of unknown kind. A string is taken
// as a file path; a Buffer, []byte or *bytes.Buffer as encoded image data.
// Any other value, including nil and nil pointers, fails with ErrTypeMismatch.
func FromValue(v any, opts ...Option) (Source, error) {
	switch x := v.(type) {
	case string:
		return FromFile(x, opts...), nil
	case Buffer:
		if rv := reflect.ValueOf(x); rv.Kind() == reflect.Pointer && rv.IsNil() {
			break
		}
		return FromBuffer(x, opts...), nil
	case []byte:
		return FromBytes(x, opts...), nil
	case *bytes.Buffer:
		if x == nil {
			break
		}
		return FromBytes(x.Bytes(), opts...), nil
	}
	return Source{}, fmt.Errorf("%w: %T", ErrTypeMismatch, v)
}

func bind(strat strategy, opts []Option) Source {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	logger := log.Logger
	if o.log != nil {
		logger = *o.log
	}
	if o.codec == nil {
		o.codec = NewCodec(logger)
	}

	sh := &shared{
		id:    uuid.New(),
		strat: strat,
		codec: o.codec,
		log:   logger,
	}
	sh.refs.Store(1)
	return Source{ref: &reference{shared: sh}}
}

// Image decodes the source using mode. Every call decodes from scratch.
//
// A nil error with an empty Image means the codec could not read or interpret
// the data; check Image.Empty.
func (s Source) Image(mode Mode) (Image, error) {
	sh, err := s.bound()
	if err != nil {
		return Image{}, err
	}
	return sh.strat.decode(sh.codec, mode), nil
}

// Kind reports which strategy backs the source.
func (s Source) Kind() Kind {
	if s.ref == nil {
		return KindNone
	}
	return s.ref.shared.strat.kind()
}

// IsEmpty reports whether s is a zero-value Source.
func (s Source) IsEmpty() bool {
	return s.ref == nil
}

// ID returns the identifier shared by all clones of a source, or the nil
// UUID for an empty source.
func (s Source) ID() uuid.UUID {
	if s.ref == nil {
		return uuid.Nil
	}
	return s.ref.shared.id
}

func (s Source) String() string {
	if s.ref == nil {
		return "imagesource(empty)"
	}
	switch st := s.ref.shared.strat.(type) {
	case *fileSource:
		return fmt.Sprintf("imagesource(file %s)", st.path)
	case *bufferSource:
		return fmt.Sprintf("imagesource(buffer %d bytes)", len(st.view.data))
	}
	return "imagesource(unknown)"
}

// Clone returns a new reference to the same underlying source. Each clone
// must be closed separately. Cloning a closed reference yields a closed one.
func (s Source) Clone() Source {
	if s.ref == nil {
		return Source{}
	}
	r := &reference{shared: s.ref.shared}
	if s.ref.closed.Load() {
		r.closed.Store(true)
		return Source{ref: r}
	}
	s.ref.shared.refs.Add(1)
	return Source{ref: r}
}

// Close retires this reference. When the last reference is closed the
// strategy is released; for buffer sources this calls the unpin hook. Close
// is idempotent and always returns nil.
func (s Source) Close() error {
	if s.ref == nil || !s.ref.closed.CompareAndSwap(false, true) {
		return nil
	}
	sh := s.ref.shared
	if sh.refs.Add(-1) == 0 {
		sh.strat.release()
		sh.log.Trace().
			Str("source", sh.id.String()).
			Str("kind", sh.strat.kind().String()).
			Msg("image source released")
	}
	return nil
}

func (s Source) bound() (*shared, error) {
	if s.ref == nil {
		return nil, ErrEmptySource
	}
	if s.ref.closed.Load() {
		return nil, ErrClosed
	}
	return s.ref.shared, nil
}
