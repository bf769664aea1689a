package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"github.com/hetulpatel/mydata/internal/dataset"
)

// HashStrings returns a SHA256 hash of the provided strings with newline separators.
func HashStrings(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// HashRows fingerprints a generated row set in order.
func HashRows(rows []dataset.Row) string {
	parts := make([]string, 0, len(rows))
	for _, r := range rows {
		parts = append(parts, r.Category+"\t"+strconv.Itoa(r.X)+"\t"+strconv.FormatFloat(r.Y, 'g', -1, 64))
	}
	return HashStrings(parts...)
}
