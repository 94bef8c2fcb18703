// Package kvstore is a key-value store of whole string values.
//
// There is no field-level patching: Get returns the complete value stored
// under a key and Set replaces it. Two implementations:
//
//   - FileStore keeps one file per key in a directory, written atomically
//     and optionally compressed with zstd or brotli
//   - MemStore keeps values in memory
//
// Usage:
//
//	s := &kvstore.FileStore{Dir: "./data", Codec: kvstore.CodecZstd}
//	if err := kvstore.OpenFileStore(s); err != nil {
//		return err
//	}
//	err := s.Set(ctx, "appointments", `[]`)
//	v, found, err := s.Get(ctx, "appointments")
//
// Errors are I/O errors wrapped with the key. A missing key is not an error.
package kvstore
