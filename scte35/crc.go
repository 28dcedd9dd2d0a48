package scte35

import "github.com/q191201771/naza/pkg/bele"

const crcPolynomial = 0x04C11DB7

// crcTable drives the CRC-32/MPEG-2 checksum: MSB-first, no reflection,
// initial value 0xFFFFFFFF, no final XOR.
var crcTable = makeCRCTable(crcPolynomial)

func makeCRCTable(poly uint32) (table [256]uint32) {
	for i := range table {
		crc := uint32(i) << 24
		for range 8 {
			if crc&0x80000000 != 0 {
				crc = crc<<1 ^ poly
			} else {
				crc <<= 1
			}
		}
		table[i] = crc
	}
	return table
}

func crc32MPEG2(data []byte) uint32 {
	crc := uint32(0xFFFFFFFF)
	for _, b := range data {
		crc = crc<<8 ^ crcTable[byte(crc>>24)^b]
	}
	return crc
}

// verifyCRC32 checks that the last 4 bytes of section are the CRC_32 of
// everything before them and returns the stored value.
func verifyCRC32(section []byte) (uint32, error) {
	n := len(section) - crcLength
	if n < 0 {
		return 0, &NotEnoughDataError{Field: "CRC_32", Needed: crcLength * 8, Available: len(section) * 8}
	}
	stored := bele.BeUint32(section[n:])
	if computed := crc32MPEG2(section[:n]); computed != stored {
		return stored, &CRCMismatchError{Computed: computed, Declared: stored}
	}
	return stored, nil
}
