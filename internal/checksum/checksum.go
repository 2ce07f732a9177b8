// Package checksum computes snapshot tags used for optimistic concurrency.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"github.com/starford/weeks/internal/ordering"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Snapshot returns a tag identifying the exact membership and keys of an
// ordering context. Any insert, delete or key change yields a different tag.
func Snapshot(entries []ordering.Entry) string {
	buf := make([]byte, 0, len(entries)*16)
	for _, e := range entries {
		buf = strconv.AppendInt(buf, e.ID, 10)
		buf = append(buf, ':')
		buf = append(buf, e.Key...)
		buf = append(buf, '\n')
	}
	return Sum(buf)[:16]
}
