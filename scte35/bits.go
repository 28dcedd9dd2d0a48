package scte35

import (
	"bytes"
	"fmt"

	"github.com/q191201771/naza/pkg/nazabits"
)

// bitReader reads bits MSB-first from a byte slice. Every read names the
// field it decodes; a read needing more bits than remain fails with
// *NotEnoughDataError and leaves the position where it was.
type bitReader struct {
	data   []byte
	bitPos int
}

func newBitReader(data []byte) *bitReader {
	return &bitReader{data: data}
}

func (r *bitReader) bitsLeft() int {
	return len(r.data)*8 - r.bitPos
}

func (r *bitReader) bytesLeft() int {
	return r.bitsLeft() / 8
}

// bytePos is the number of whole bytes consumed so far.
func (r *bitReader) bytePos() int {
	return r.bitPos / 8
}

func (r *bitReader) need(field string, n int) error {
	if n < 0 || n > r.bitsLeft() {
		return &NotEnoughDataError{Field: field, Needed: n, Available: r.bitsLeft()}
	}
	return nil
}

// extract reads n (<= 32) bits that are known to be available.
func (r *bitReader) extract(n int) uint32 {
	if n == 0 {
		return 0
	}
	br := nazabits.NewBitReader(r.data[r.bitPos/8:])
	if off := r.bitPos % 8; off != 0 {
		_, _ = br.ReadBits8(uint(off))
	}
	v, _ := br.ReadBits32(uint(n))
	r.bitPos += n
	return v
}

func (r *bitReader) readBit(field string) (bool, error) {
	if err := r.need(field, 1); err != nil {
		return false, err
	}
	return r.extract(1) == 1, nil
}

func (r *bitReader) readUint32(field string, n int) (uint32, error) {
	if n > 32 {
		return 0, fmt.Errorf("scte35: %s: %d bits do not fit in uint32", field, n)
	}
	if err := r.need(field, n); err != nil {
		return 0, err
	}
	return r.extract(n), nil
}

func (r *bitReader) readUint64(field string, n int) (uint64, error) {
	if n > 64 {
		return 0, fmt.Errorf("scte35: %s: %d bits do not fit in uint64", field, n)
	}
	if err := r.need(field, n); err != nil {
		return 0, err
	}
	if n <= 32 {
		return uint64(r.extract(n)), nil
	}
	hi := uint64(r.extract(n - 32))
	lo := uint64(r.extract(32))
	return hi<<32 | lo, nil
}

// readBytes returns a copy of the next n bytes.
func (r *bitReader) readBytes(field string, n int) ([]byte, error) {
	if n < 0 || n > r.bitsLeft()/8 {
		return nil, &NotEnoughDataError{Field: field, Needed: n * 8, Available: r.bitsLeft()}
	}
	if r.bitPos%8 == 0 {
		start := r.bitPos / 8
		r.bitPos += n * 8
		return bytes.Clone(r.data[start : start+n]), nil
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(r.extract(8))
	}
	return out, nil
}

func (r *bitReader) skip(field string, n int) error {
	if err := r.need(field, n); err != nil {
		return err
	}
	r.bitPos += n
	return nil
}

// align advances to the next byte boundary.
func (r *bitReader) align() {
	if rem := r.bitPos % 8; rem != 0 {
		r.bitPos += 8 - rem
	}
}

// sub returns a reader over the next n bytes and advances past them. The
// returned reader shares the underlying buffer.
func (r *bitReader) sub(field string, n int) (*bitReader, error) {
	if r.bitPos%8 != 0 {
		return nil, fmt.Errorf("scte35: %s does not start on a byte boundary", field)
	}
	if n < 0 || n > r.bitsLeft()/8 {
		return nil, &NotEnoughDataError{Field: field, Needed: n * 8, Available: r.bitsLeft()}
	}
	start := r.bitPos / 8
	r.bitPos += n * 8
	return newBitReader(r.data[start : start+n : start+n]), nil
}

// rest returns a reader over every remaining byte without advancing.
func (r *bitReader) rest() *bitReader {
	start := (r.bitPos + 7) / 8
	return newBitReader(r.data[start:len(r.data):len(r.data)])
}

// bitWriter writes bits MSB-first, growing its buffer as needed. The first
// value too wide for its field is kept in err; later writes still advance,
// so callers check err once when done.
type bitWriter struct {
	data   []byte
	bitPos int
	err    error
}

func newBitWriter() *bitWriter {
	return &bitWriter{}
}

func (w *bitWriter) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *bitWriter) putBit(v bool) {
	if w.bitPos/8 >= len(w.data) {
		w.data = append(w.data, 0)
	}
	if v {
		w.data[w.bitPos/8] |= 0x80 >> (w.bitPos % 8)
	}
	w.bitPos++
}

func (w *bitWriter) putUint32(field string, n int, v uint32) {
	w.putUint64(field, n, uint64(v))
}

func (w *bitWriter) putUint64(field string, n int, v uint64) {
	if n < 64 && v>>n != 0 {
		w.fail(&ValueRangeError{Field: field, Bits: n, Value: v})
	}
	for i := n - 1; i >= 0; i-- {
		w.putBit(v>>i&1 == 1)
	}
}

// putReserved writes n reserved bits, all set.
func (w *bitWriter) putReserved(n int) {
	for range n {
		w.putBit(true)
	}
}

func (w *bitWriter) putBytes(b []byte) {
	if w.bitPos%8 == 0 {
		w.data = append(w.data, b...)
		w.bitPos += len(b) * 8
		return
	}
	for _, v := range b {
		w.putUint64("", 8, uint64(v))
	}
}

// bytes returns the written data, zero padded to a whole byte.
func (w *bitWriter) bytes() []byte {
	return w.data
}
