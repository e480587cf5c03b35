package types

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// DigestSize is the length in bytes of a public-key fingerprint.
const DigestSize = 20

// Digest is the fixed-size fingerprint of a peer's long-term public key.
type Digest [DigestSize]byte

// Slice returns the digest as a []byte.
func (d Digest) Slice() []byte { return d[:] }

// String renders the digest in the human form: five space-separated groups
// of eight upper-case hex digits.
func (d Digest) String() string {
	var b strings.Builder
	b.Grow(DigestSize*2 + 4)
	for i := 0; i < DigestSize; i += 4 {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strings.ToUpper(hex.EncodeToString(d[i : i+4])))
	}
	return b.String()
}

// ParseDigest accepts the human form or a bare 40-digit hex string.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	raw, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		return d, err
	}
	if len(raw) != DigestSize {
		return d, fmt.Errorf("digest: want %d bytes, got %d", DigestSize, len(raw))
	}
	copy(d[:], raw)
	return d, nil
}
