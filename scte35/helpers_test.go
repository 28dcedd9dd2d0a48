package scte35

import (
	"encoding/hex"
	"testing"

	"github.com/q191201771/naza/pkg/bele"
	"github.com/stretchr/testify/require"
)

// Byte offsets of fields within an encoded section.
const (
	offSectionLength = 1  // low 12 bits of a 16-bit word
	offEncrypted     = 4  // encrypted_packet and encryption_algorithm
	offCommandLength = 11 // low 12 bits of a 16-bit word
	offCommand       = 14
)

func encodeSection(t testing.TB, sis *SpliceInfoSection) []byte {
	t.Helper()
	data, err := sis.Encode()
	require.NoError(t, err)
	return data
}

func encodeLoop(t testing.TB, descriptors ...SpliceDescriptor) DescriptorLoop {
	t.Helper()
	loop, err := EncodeDescriptors(descriptors...)
	require.NoError(t, err)
	return loop
}

// encodeDescriptor returns one descriptor with its tag and length.
func encodeDescriptor(t testing.TB, d SpliceDescriptor) []byte {
	t.Helper()
	return encodeLoop(t, d).Bytes()
}

// withCRC rewrites the trailing 4 bytes of section with its CRC_32.
func withCRC(section []byte) []byte {
	n := len(section) - crcLength
	bele.BePutUint32(section[n:], crc32MPEG2(section[:n]))
	return section
}

func putLow12(b []byte, v uint32) {
	b[0] = b[0]&0xF0 | byte(v>>8&0x0F)
	b[1] = byte(v)
}

func commandLength(data []byte) int {
	return int(bele.BeUint16(data[offCommandLength:]) & 0x0FFF)
}

// setCommandLength overwrites splice_command_length and fixes the CRC.
func setCommandLength(data []byte, n uint32) []byte {
	putLow12(data[offCommandLength:], n)
	return withCRC(data)
}

// setLoopLength overwrites descriptor_loop_length and fixes the CRC.
func setLoopLength(data []byte, n uint16) []byte {
	bele.BePutUint16(data[offCommand+commandLength(data):], n)
	return withCRC(data)
}

// setEncrypted sets encrypted_packet and encryption_algorithm and fixes
// the CRC.
func setEncrypted(data []byte, alg EncryptionAlgorithm) []byte {
	data[offEncrypted] = data[offEncrypted]&0x01 | 0x80 | byte(alg)<<1
	return withCRC(data)
}

// withStuffing inserts alignment_stuffing before CRC_32 and fixes
// section_length and the CRC.
func withStuffing(data []byte, stuffing ...byte) []byte {
	n := len(data) - crcLength
	out := append(append(append([]byte{}, data[:n]...), stuffing...), 0, 0, 0, 0)
	putLow12(out[offSectionLength:], uint32(len(out)-sectionHeaderLength))
	return withCRC(out)
}

func mustHex(t testing.TB, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("hex decode %q: %v", s, err)
	}
	return b
}

func ptr[T any](v T) *T { return &v }
