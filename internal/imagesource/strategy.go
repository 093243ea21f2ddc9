package imagesource

import (
	"bytes"
	"io"
	"os"
)

// Kind identifies which strategy backs a Source.
type Kind int

const (
	KindNone Kind = iota
	KindFile
	KindBuffer
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindBuffer:
		return "buffer"
	}
	return "none"
}

// strategy is implemented by fileSource and bufferSource only.
type strategy interface {
	decode(codec Codec, mode Mode) Image
	open() (io.ReadCloser, error)
	release()
	kind() Kind
}

type fileSource struct {
	path string
}

func (s *fileSource) decode(codec Codec, mode Mode) Image {
	return codec.DecodeFile(s.path, mode)
}

func (s *fileSource) open() (io.ReadCloser, error) {
	return os.Open(s.path)
}

func (s *fileSource) release() {}

func (s *fileSource) kind() Kind { return KindFile }

type bufferSource struct {
	view pinned
}

func (s *bufferSource) decode(codec Codec, mode Mode) Image {
	return codec.DecodeBytes(s.view.data, mode)
}

func (s *bufferSource) open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.view.data)), nil
}

func (s *bufferSource) release() {
	if s.view.unpin != nil {
		s.view.unpin()
	}
}

func (s *bufferSource) kind() Kind { return KindBuffer }
