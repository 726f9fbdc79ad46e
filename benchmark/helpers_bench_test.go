package benchmark

import "fmt"

// benchSizeName labels a sub-benchmark by payload size in bytes.
func benchSizeName(prefix string, size int) string {
	return fmt.Sprintf("%s/%dB", prefix, size)
}
