package benchmark

import (
	"testing"

	"github.com/waterscape-project/waterscape/agent"
	"github.com/waterscape-project/waterscape/channel"
)

const benchCover = `The weather has been quite pleasant lately, with clear skies and a
gentle breeze moving through the valley most afternoons.`

// BenchmarkChannelEncode benchmarks the full pairwise Encode path:
// session establishment, envelope signing and encryption, and
// steganographic hiding.
func BenchmarkChannelEncode(b *testing.B) {
	sender, err := agent.New("alice")
	if err != nil {
		b.Fatal(err)
	}
	defer sender.Zeroize()
	recipient, err := agent.New("bob")
	if err != nil {
		b.Fatal(err)
	}
	defer recipient.Zeroize()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := channel.Encode(sender, recipient.Public(), benchCover, "meet at dawn"); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkChannelDecode benchmarks the full pairwise Decode path.
func BenchmarkChannelDecode(b *testing.B) {
	sender, err := agent.New("alice")
	if err != nil {
		b.Fatal(err)
	}
	defer sender.Zeroize()
	recipient, err := agent.New("bob")
	if err != nil {
		b.Fatal(err)
	}
	defer recipient.Zeroize()

	carrier, err := channel.Encode(sender, recipient.Public(), benchCover, "meet at dawn")
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := channel.Decode(recipient, sender.Public(), carrier); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkGroupEncode benchmarks GroupEncode against a three-member
// group.
func BenchmarkGroupEncode(b *testing.B) {
	creator, err := agent.New("alice")
	if err != nil {
		b.Fatal(err)
	}
	defer creator.Zeroize()
	bob, err := agent.New("bob")
	if err != nil {
		b.Fatal(err)
	}
	defer bob.Zeroize()
	carol, err := agent.New("carol")
	if err != nil {
		b.Fatal(err)
	}
	defer carol.Zeroize()

	group := agent.NewGroup(creator, "book-club", bob.Public(), carol.Public())

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := channel.GroupEncode(creator, group, benchCover, "meet at dawn"); err != nil {
			b.Fatal(err)
		}
	}
}
