package imagesource

// Buffer is an externally owned encoded-image buffer, for example memory
// handed over by a host runtime or a pool.
//
// Pin is called exactly once per FromBuffer. It returns a view of the encoded
// bytes together with the hook that releases the owner's keep-alive. The view
// stays valid until unpin is called; the Source guarantees that happens once,
// after the last reference is closed. unpin may be nil when the owner needs no
// release.
type Buffer interface {
	Pin() (data []byte, unpin func())
}

// pinned is a view and its keep-alive release, always built together.
type pinned struct {
	data  []byte
	unpin func()
}

func pin(buf Buffer) pinned {
	data, unpin := buf.Pin()
	return pinned{data: data, unpin: unpin}
}

// bytesBuffer adapts a plain byte slice. The garbage collector keeps the
// backing array alive, so there is nothing to release.
type bytesBuffer []byte

func (b bytesBuffer) Pin() ([]byte, func()) {
	return b, nil
}
