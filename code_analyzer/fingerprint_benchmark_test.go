package code_analyzer

import (
	"crypto/md5"
	"fmt"
	"math/rand"
	"testing"

	"github.com/zeebo/xxh3"

	"github.com/docuai/docuai/code_analyzer/models"
)

func BenchmarkFingerprintContent(b *testing.B) {
	sizes := []int{1 << 10, 16 << 10, 256 << 10}

	for _, size := range sizes {
		content := make([]byte, size)
		rand.Read(content)

		b.Run(fmt.Sprintf("MD5_%dKB", size/1024), func(b *testing.B) {
			b.SetBytes(int64(size))
			for i := 0; i < b.N; i++ {
				sum := md5.Sum(content)
				_ = fmt.Sprintf("%x", sum)
			}
		})

		b.Run(fmt.Sprintf("XXH3_%dKB", size/1024), func(b *testing.B) {
			b.SetBytes(int64(size))
			for i := 0; i < b.N; i++ {
				sum := xxh3.Hash128(content)
				_ = fmt.Sprintf("%016x%016x", sum.Hi, sum.Lo)
			}
		})
	}
}

func BenchmarkSnapshotLookup(b *testing.B) {
	cache := NewAnalysisCache(b.TempDir())

	records := make(map[string]models.FileRecord, 1000)
	for i := 0; i < 1000; i++ {
		path := fmt.Sprintf("src/pkg_%03d/file_%03d.go", i%50, i)
		records[path] = models.FileRecord{
			RelativePath: path,
			Fingerprint:  fmt.Sprintf("%032x", i),
			Analysis:     "summary",
		}
	}
	cache.ReplaceAll(records)
	snapshot := cache.Snapshot()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		idx := i % 1000
		path := fmt.Sprintf("src/pkg_%03d/file_%03d.go", idx%50, idx)
		snapshot.Lookup(path, fmt.Sprintf("%032x", idx))
	}
}
