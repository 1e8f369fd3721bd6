package fs

import (
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/hermes"
)

// Ensure Hasher implements hermes.Hasher at compile time.
var _ hermes.Hasher = (*Hasher)(nil)

// Hasher hashes file contents with xxhash.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Hash streams the file at path through xxhash and returns the hex digest.
func (h *Hasher) Hash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	d := xxhash.New()
	if _, err := io.Copy(d, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", d.Sum64()), nil
}
