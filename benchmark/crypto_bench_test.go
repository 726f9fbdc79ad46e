package benchmark

import (
	"crypto/rand"
	"testing"

	"github.com/waterscape-project/waterscape/crypto"
)

const benchContext = "waterscape-v1-encrypt"

// BenchmarkKeyGeneration benchmarks signing and exchange key pair
// generation.
func BenchmarkKeyGeneration(b *testing.B) {
	b.Run("SigningKeyPair", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, _, err := crypto.GenerateSigningKeyPair(); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("ExchangeKeyPair", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, _, err := crypto.GenerateExchangeKeyPair(); err != nil {
				b.Fatal(err)
			}
		}
	})
}

// BenchmarkSigning benchmarks Ed25519 signing and verification.
func BenchmarkSigning(b *testing.B) {
	message := make([]byte, 1024)
	rand.Read(message)

	seed, verifying, err := crypto.GenerateSigningKeyPair()
	if err != nil {
		b.Fatal(err)
	}

	b.Run("Sign", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = crypto.Sign(seed, message)
		}
	})

	b.Run("Verify", func(b *testing.B) {
		sig := crypto.Sign(seed, message)
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if err := crypto.Verify(verifying, message, sig); err != nil {
				b.Fatal(err)
			}
		}
	})
}

// BenchmarkKeyExchange benchmarks X25519 Diffie-Hellman and the
// subsequent HKDF derivation.
func BenchmarkKeyExchange(b *testing.B) {
	aSecret, _, err := crypto.GenerateExchangeKeyPair()
	if err != nil {
		b.Fatal(err)
	}
	_, bPublic, err := crypto.GenerateExchangeKeyPair()
	if err != nil {
		b.Fatal(err)
	}

	b.Run("DH", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, err := crypto.DH(aSecret, bPublic); err != nil {
				b.Fatal(err)
			}
		}
	})

	shared, err := crypto.DH(aSecret, bPublic)
	if err != nil {
		b.Fatal(err)
	}

	b.Run("DeriveKey", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, err := crypto.DeriveKey(shared, []byte(benchContext)); err != nil {
				b.Fatal(err)
			}
		}
	})
}

// BenchmarkAEAD benchmarks ChaCha20-Poly1305 encryption and decryption
// at several payload sizes.
func BenchmarkAEAD(b *testing.B) {
	var key crypto.SessionKey
	rand.Read(key[:])

	sizes := []int{64, 256, 1024, 16384}
	for _, size := range sizes {
		plaintext := make([]byte, size)
		rand.Read(plaintext)

		b.Run(benchSizeName("Encrypt", size), func(b *testing.B) {
			nonce, err := crypto.RandomNonce()
			if err != nil {
				b.Fatal(err)
			}
			b.SetBytes(int64(size))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := crypto.AEADEncrypt(key, nonce, plaintext); err != nil {
					b.Fatal(err)
				}
			}
		})

		b.Run(benchSizeName("Decrypt", size), func(b *testing.B) {
			nonce, err := crypto.RandomNonce()
			if err != nil {
				b.Fatal(err)
			}
			ciphertext, err := crypto.AEADEncrypt(key, nonce, plaintext)
			if err != nil {
				b.Fatal(err)
			}
			b.SetBytes(int64(size))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := crypto.AEADDecrypt(key, nonce, ciphertext); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
