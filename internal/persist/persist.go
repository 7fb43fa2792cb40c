// Package persist implements the engine's save/load collaborator: a
// content-addressed document wrapping a compressed, hashed content bundle.
// The wire format is not bit-fixed across versions — only the hash check
// and the round-trip property are guaranteed.
package persist

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
	"lukechampine.com/blake3"

	"halfearth/internal/apperr"
)

const hashSize = 32

// Save compresses data (a marshaled content bundle) and prefixes it with a
// blake3 hash of the compressed payload, producing a self-verifying,
// content-addressed document.
func Save(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("persist: compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("persist: compress: %w", err)
	}

	hash := blake3.Sum256(buf.Bytes())

	out := make([]byte, 0, hashSize+buf.Len())
	out = append(out, hash[:]...)
	out = append(out, buf.Bytes()...)
	return out, nil
}

// Load verifies the document's hash, decompresses its payload, and returns
// the original marshaled bundle bytes.
func Load(doc []byte) ([]byte, error) {
	if len(doc) < hashSize {
		return nil, fmt.Errorf("persist: document too short")
	}
	wantHash := doc[:hashSize]
	compressed := doc[hashSize:]

	gotHash := blake3.Sum256(compressed)
	if !bytes.Equal(wantHash, gotHash[:]) {
		return nil, &apperr.HashMismatchError{
			Want: fmt.Sprintf("%x", wantHash),
			Got:  fmt.Sprintf("%x", gotHash),
		}
	}

	var buf bytes.Buffer
	zr := lz4.NewReader(bytes.NewReader(compressed))
	if _, err := io.Copy(&buf, zr); err != nil {
		return nil, fmt.Errorf("persist: decompress: %w", err)
	}
	return buf.Bytes(), nil
}
