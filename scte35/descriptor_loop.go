package scte35

import (
	"bytes"
	"fmt"
	"iter"
)

// DescriptorLoop is the raw splice_descriptor() loop of a section.
// Descriptors are decoded on each traversal, so a loop can be walked any
// number of times, from any number of goroutines, and always yields the
// same sequence. The zero value is an empty loop.
type DescriptorLoop struct {
	data []byte
}

// NewDescriptorLoop returns a loop over a copy of b.
func NewDescriptorLoop(b []byte) DescriptorLoop {
	return DescriptorLoop{data: bytes.Clone(b)}
}

// EncodeDescriptors returns a loop holding descriptors in order.
func EncodeDescriptors(descriptors ...SpliceDescriptor) (DescriptorLoop, error) {
	w := newBitWriter()
	for i, d := range descriptors {
		if d == nil {
			return DescriptorLoop{}, fmt.Errorf("scte35: descriptor %d is nil", i)
		}
		encodeSpliceDescriptor(w, d)
	}
	if w.err != nil {
		return DescriptorLoop{}, w.err
	}
	return DescriptorLoop{data: w.bytes()}, nil
}

// Len returns the loop size in bytes.
func (l DescriptorLoop) Len() int { return len(l.data) }

// Bytes returns a copy of the raw loop.
func (l DescriptorLoop) Bytes() []byte { return bytes.Clone(l.data) }

// All yields each descriptor in loop order. A descriptor that fails to
// decode is yielded as (nil, err) and ends the sequence.
func (l DescriptorLoop) All() iter.Seq2[SpliceDescriptor, error] {
	return func(yield func(SpliceDescriptor, error) bool) {
		r := newBitReader(l.data)
		for r.bytesLeft() > 0 {
			d, err := decodeSpliceDescriptor(r)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(d, nil) {
				return
			}
		}
	}
}

// Collect decodes the whole loop. On error it returns the descriptors
// decoded before the failing one.
func (l DescriptorLoop) Collect() ([]SpliceDescriptor, error) {
	var out []SpliceDescriptor
	for d, err := range l.All() {
		if err != nil {
			return out, err
		}
		out = append(out, d)
	}
	return out, nil
}

// validate checks that the tag/length framing tiles the loop exactly,
// without decoding descriptor bodies.
func (l DescriptorLoop) validate() error {
	r := newBitReader(l.data)
	for r.bytesLeft() > 0 {
		_, length, err := readDescriptorHeader(r)
		if err != nil {
			return err
		}
		if err := r.skip("splice_descriptor", int(length)*8); err != nil {
			return err
		}
	}
	return nil
}

func (l DescriptorLoop) fields() Fields {
	descriptors, err := l.Collect()
	items := make([]Fields, len(descriptors))
	for i, d := range descriptors {
		items[i] = Fields{
			{"splice_descriptor_tag", d.Tag()},
			{descriptorName(d), d.Fields()},
		}
	}
	fs := Fields{{"splice_descriptors", items}}
	if err != nil {
		fs = append(fs, Field{"error", err.Error()})
	}
	return fs
}
