// Package ids issues record identifiers for documents the store did not
// assign one to.
package ids

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const (
	alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	length   = 20
)

// New returns a random base-36 string id.
func New() string {
	var sb strings.Builder
	sb.Grow(length)
	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform source is broken
			sb.WriteByte(alphabet[i%len(alphabet)])
			continue
		}
		sb.WriteByte(alphabet[n.Int64()])
	}
	return sb.String()
}
