package benchmark

import (
	"crypto/rand"
	"strings"
	"testing"

	"github.com/waterscape-project/waterscape/stego"
)

// loremWords is repeated to build cover text of arbitrary length.
const loremWords = "the quick brown fox jumps over the lazy dog near the riverbank "

func coverOfLength(n int) string {
	var b strings.Builder
	for b.Len() < n {
		b.WriteString(loremWords)
	}
	return b.String()[:n]
}

// BenchmarkStegoHide benchmarks HideInText at several cover sizes for a
// fixed-size hidden payload.
func BenchmarkStegoHide(b *testing.B) {
	hidden := make([]byte, 256)
	rand.Read(hidden)
	encoded := stego.EncodeBytes(hidden)

	coverSizes := []int{64, 256, 1024, 8192}
	for _, size := range coverSizes {
		cover := coverOfLength(size)
		b.Run(benchSizeName("Cover", size), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := stego.HideInText(cover, encoded); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkStegoExtract benchmarks ExtractFromCarrier at several hidden
// payload sizes against a fixed cover.
func BenchmarkStegoExtract(b *testing.B) {
	cover := coverOfLength(4096)

	payloadSizes := []int{16, 256, 4096}
	for _, size := range payloadSizes {
		hidden := make([]byte, size)
		rand.Read(hidden)

		carrier, err := stego.Hide(cover, hidden)
		if err != nil {
			b.Fatal(err)
		}

		b.Run(benchSizeName("Payload", size), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := stego.ExtractFromCarrier(carrier); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkHasHiddenMessage benchmarks the cheap detection path used by
// callers that only need to know whether a carrier is worth decoding.
func BenchmarkHasHiddenMessage(b *testing.B) {
	cover := coverOfLength(2048)
	carrier, err := stego.Hide(cover, []byte("payload"))
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		stego.HasHiddenMessage(carrier)
	}
}
