package code_analyzer

import (
	"fmt"
	"os"

	"github.com/zeebo/xxh3"
)

// FingerprintFile computes a content digest for change detection. The
// digest is xxh3-128 over the raw bytes: fast, stable across platforms,
// and collision-resistant enough for cache identity (cryptographic
// strength is not required here).
//
// A read failure yields the empty sentinel, which callers must treat as
// always stale; it never matches a cached fingerprint.
func FingerprintFile(path string) string {
	content, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return FingerprintBytes(content)
}

// FingerprintBytes digests an in-memory buffer.
func FingerprintBytes(content []byte) string {
	sum := xxh3.Hash128(content)
	return fmt.Sprintf("%016x%016x", sum.Hi, sum.Lo)
}
