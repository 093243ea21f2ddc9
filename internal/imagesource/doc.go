// Package imagesource provides deferred image acquisition.
//
// A Source knows how to obtain pixel data, either from a file path or from an
// in-memory encoded buffer, but does not decode until Image is called. This
// lets callers pass a Source around, probe its metadata, and choose a decode
// Mode at use time without special-casing where the bytes come from.
//
// # Sources
//
// There are exactly two kinds of source:
//   - File sources, created with FromFile. No I/O happens at construction.
//   - Buffer sources, created with FromBuffer or FromBytes. The encoded bytes
//     are viewed, never copied.
//
// FromValue accepts either shape (a string path or a byte buffer) and rejects
// everything else with ErrTypeMismatch.
//
// # Decode Failures
//
// Malformed input shape is a hard error; malformed image content is not.
// When the codec cannot read the file or interpret the bytes, Image returns an
// empty Image and a nil error. Callers must check Image.Empty.
//
// # Lifetime
//
// Copying a Source value aliases the same reference: closing any alias
// closes them all, so a callee that closes a Source passed by value leaves
// the caller holding a dead handle. Clone returns a new reference to the same
// underlying strategy, and Close retires one reference.
// When the last reference is closed, a buffer source calls the release hook
// obtained from Buffer.Pin exactly once.
//
// # Thread Safety
//
// A bound Source is immutable. Image and Probe may be called concurrently on
// the same Source as long as the Codec is safe for concurrent use; the default
// codec is stateless.
package imagesource
