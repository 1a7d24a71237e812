package catalog

import (
	"fmt"

	"golang.org/x/mod/sumdb/dirhash"
)

// Fingerprint hashes every file under dir so runs against different
// program sets can be told apart in logs and metrics.
func Fingerprint(dir string) (string, error) {
	sum, err := dirhash.HashDir(dir, "", dirhash.Hash1)
	if err != nil {
		return "", fmt.Errorf("failed to fingerprint %s: %w", dir, err)
	}
	return sum, nil
}
