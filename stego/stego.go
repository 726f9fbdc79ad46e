// Package stego implements the zero-width steganographic codec that
// hides a byte blob inside the visible characters of a cover string.
//
// Five codepoints are reserved as the alphabet; every other codepoint in
// a carrier is treated as visible cover text:
//
//	ZERO  U+200B  bit 0
//	ONE   U+200C  bit 1
//	SEP   U+200D  byte terminator
//	START U+2060  begins the hidden region
//	END   U+FEFF  ends the hidden region
//
// The injection schedule in HideInText divides the hidden run across the
// cover's visible characters using integer division: each visible
// character is followed by len(hidden)/len(cover) hidden codepoints (at
// least one), and the remainder follows the final visible character in
// addition to its own share. When the hidden run is shorter than the
// cover, it all lands after the first len(hidden) visible characters and
// the rest of the cover carries none. The distribution is skewed in
// those cases, but extraction is unaffected since it scans the whole
// carrier for the alphabet codepoints regardless of position.
package stego

import (
	"github.com/waterscape-project/waterscape/waterscapeerr"
)

// Alphabet codepoints.
const (
	Zero  rune = '​'
	One   rune = '‌'
	Sep   rune = '‍'
	Start rune = '⁠'
	End   rune = 0xFEFF
)

// encodedByteLen is the number of runes EncodeByte emits: 8 bit
// characters plus one terminating SEP.
const encodedByteLen = 9

func isAlphabet(r rune) bool {
	switch r {
	case Zero, One, Sep, Start, End:
		return true
	default:
		return false
	}
}

// EncodeByte renders b as 8 bit-characters (most-significant bit first)
// followed by one SEP.
func EncodeByte(b byte) []rune {
	out := make([]rune, 0, encodedByteLen)
	for i := 7; i >= 0; i-- {
		if (b>>uint(i))&1 == 1 {
			out = append(out, One)
		} else {
			out = append(out, Zero)
		}
	}
	return append(out, Sep)
}

// DecodeByte reverses EncodeByte: it expects exactly 8 bit-characters
// followed by a SEP.
func DecodeByte(encoded []rune) (byte, error) {
	if len(encoded) != encodedByteLen || encoded[encodedByteLen-1] != Sep {
		return 0, waterscapeerr.Decoding("malformed encoded byte")
	}
	var b byte
	for _, r := range encoded[:8] {
		b <<= 1
		switch r {
		case Zero:
		case One:
			b |= 1
		default:
			return 0, waterscapeerr.Decoding("bit character outside alphabet")
		}
	}
	return b, nil
}

// EncodeBytes renders data as the full hidden blob: START followed by
// every byte's bit-encoding, followed by END.
func EncodeBytes(data []byte) []rune {
	out := make([]rune, 0, 2+len(data)*encodedByteLen)
	out = append(out, Start)
	for _, b := range data {
		out = append(out, EncodeByte(b)...)
	}
	out = append(out, End)
	return out
}

// decodeBits scans a stream of ZERO/ONE/SEP runes (with START/END
// already stripped), buffering consecutive bit characters and emitting
// one byte per complete 8-bit run terminated by SEP. A SEP seen with a
// partial (non-8) buffer drops that buffer, tolerating stray separators.
func decodeBits(stream []rune) ([]byte, error) {
	out := []byte{}
	var buf []rune
	for _, r := range stream {
		switch r {
		case Zero, One:
			buf = append(buf, r)
		case Sep:
			if len(buf) == 8 {
				b, err := DecodeByte(append(append([]rune{}, buf...), Sep))
				if err != nil {
					return nil, err
				}
				out = append(out, b)
			}
			buf = nil
		default:
			return nil, waterscapeerr.Decoding("unexpected alphabet codepoint in hidden region")
		}
	}
	return out, nil
}

// HideInText distributes hidden (a run of alphabet codepoints, typically
// produced by EncodeBytes) across cover so that the visible character
// order is preserved exactly: VisibleText(result) == cover.
func HideInText(cover string, hidden []rune) (string, error) {
	coverRunes := []rune(cover)
	n := len(coverRunes)
	if n == 0 {
		return "", waterscapeerr.CoverTextTooShort(1, 0)
	}

	m := len(hidden)
	chunk := m / n
	if chunk < 1 {
		chunk = 1
	}

	out := make([]rune, 0, n+m)
	pos := 0
	for i := 0; i < n; i++ {
		out = append(out, coverRunes[i])
		end := pos + chunk
		if end > m {
			end = m
		}
		out = append(out, hidden[pos:end]...)
		pos = end
	}
	out = append(out, hidden[pos:]...)
	return string(out), nil
}

// ExtractFromCarrier collects every alphabet codepoint from carrier, in
// order, and decodes the bit stream found between the first START and
// the first subsequent END. It fails with NoHiddenMessage if either
// marker is absent or END precedes START.
func ExtractFromCarrier(carrier string) ([]byte, error) {
	var stream []rune
	for _, r := range carrier {
		if isAlphabet(r) {
			stream = append(stream, r)
		}
	}

	startIdx := -1
	endIdx := -1
	for i, r := range stream {
		if r == Start && startIdx == -1 {
			startIdx = i
			continue
		}
		if r == End && startIdx != -1 && endIdx == -1 {
			endIdx = i
			break
		}
	}
	if startIdx == -1 || endIdx == -1 {
		return nil, waterscapeerr.NoHiddenMessage()
	}

	return decodeBits(stream[startIdx+1 : endIdx])
}

// VisibleText returns carrier with every alphabet codepoint removed.
func VisibleText(carrier string) string {
	out := make([]rune, 0, len(carrier))
	for _, r := range carrier {
		if !isAlphabet(r) {
			out = append(out, r)
		}
	}
	return string(out)
}

// HasHiddenMessage reports whether carrier contains both a START and an
// END codepoint.
func HasHiddenMessage(carrier string) bool {
	sawStart, sawEnd := false, false
	for _, r := range carrier {
		switch r {
		case Start:
			sawStart = true
		case End:
			sawEnd = true
		}
		if sawStart && sawEnd {
			return true
		}
	}
	return false
}

// Hide encodes data and distributes it across cover in one step.
func Hide(cover string, data []byte) (string, error) {
	return HideInText(cover, EncodeBytes(data))
}

// Extract is the inverse of Hide: it pulls the hidden byte blob out of
// a carrier.
func Extract(carrier string) ([]byte, error) {
	return ExtractFromCarrier(carrier)
}
