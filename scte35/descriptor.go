package scte35

import (
	"fmt"

	"github.com/q191201771/naza/pkg/bele"
)

const (
	AvailDescriptorTag        uint32 = 0x00
	DTMFDescriptorTag         uint32 = 0x01
	SegmentationDescriptorTag uint32 = 0x02
	TimeDescriptorTag         uint32 = 0x03

	// CUEIdentifier is the CUEI ASCII identifier (0x43554549).
	CUEIdentifier uint32 = 0x43554549
)

// SpliceDescriptor is the interface for splice descriptor types. The
// avail, DTMF, segmentation and time descriptors always encode the CUEI
// identifier.
type SpliceDescriptor interface {
	Tag() uint32
	Fields() Fields
	decode(r *bitReader) error
	encode(w *bitWriter)
}

// AvailDescriptor is an avail_descriptor.
type AvailDescriptor struct {
	Identifier      uint32
	ProviderAvailID uint32
}

func (d *AvailDescriptor) Tag() uint32 { return AvailDescriptorTag }

func (d *AvailDescriptor) decode(r *bitReader) error {
	var err error
	if d.Identifier, err = r.readUint32("identifier", 32); err != nil {
		return err
	}
	d.ProviderAvailID, err = r.readUint32("provider_avail_id", 32)
	return err
}

func (d *AvailDescriptor) encode(w *bitWriter) {
	w.putUint32("identifier", 32, CUEIdentifier)
	w.putUint32("provider_avail_id", 32, d.ProviderAvailID)
}

func (d *AvailDescriptor) Fields() Fields {
	return Fields{
		{"identifier", d.Identifier},
		{"provider_avail_id", d.ProviderAvailID},
	}
}

// DTMFDescriptor is a DTMF_descriptor. Preroll is in tenths of a second.
type DTMFDescriptor struct {
	Identifier uint32
	Preroll    uint32
	DTMFChars  string
}

func (d *DTMFDescriptor) Tag() uint32 { return DTMFDescriptorTag }

func (d *DTMFDescriptor) decode(r *bitReader) error {
	var err error
	if d.Identifier, err = r.readUint32("identifier", 32); err != nil {
		return err
	}
	if d.Preroll, err = r.readUint32("preroll", 8); err != nil {
		return err
	}
	count, err := r.readUint32("dtmf_count", 3)
	if err != nil {
		return err
	}
	if err = r.skip("reserved", 5); err != nil {
		return err
	}
	chars, err := r.readBytes("DTMF_char", int(count))
	if err != nil {
		return err
	}
	d.DTMFChars = string(chars)
	return nil
}

func (d *DTMFDescriptor) encode(w *bitWriter) {
	w.putUint32("identifier", 32, CUEIdentifier)
	w.putUint32("preroll", 8, d.Preroll)
	w.putUint64("dtmf_count", 3, uint64(len(d.DTMFChars)))
	w.putReserved(5)
	w.putBytes([]byte(d.DTMFChars))
}

func (d *DTMFDescriptor) Fields() Fields {
	return Fields{
		{"identifier", d.Identifier},
		{"preroll", d.Preroll},
		{"dtmf_count", uint32(len(d.DTMFChars))},
		{"DTMF_chars", d.DTMFChars},
	}
}

// TimeDescriptor is a time_descriptor carrying a TAI timestamp.
type TimeDescriptor struct {
	Identifier     uint32
	TAISeconds     uint64 // 48 bits
	TAINanoseconds uint32
	UTCOffset      uint32
}

func (d *TimeDescriptor) Tag() uint32 { return TimeDescriptorTag }

func (d *TimeDescriptor) decode(r *bitReader) error {
	var err error
	if d.Identifier, err = r.readUint32("identifier", 32); err != nil {
		return err
	}
	if d.TAISeconds, err = r.readUint64("TAI_seconds", 48); err != nil {
		return err
	}
	if d.TAINanoseconds, err = r.readUint32("TAI_ns", 32); err != nil {
		return err
	}
	d.UTCOffset, err = r.readUint32("UTC_offset", 16)
	return err
}

func (d *TimeDescriptor) encode(w *bitWriter) {
	w.putUint32("identifier", 32, CUEIdentifier)
	w.putUint64("TAI_seconds", 48, d.TAISeconds)
	w.putUint32("TAI_ns", 32, d.TAINanoseconds)
	w.putUint32("UTC_offset", 16, d.UTCOffset)
}

func (d *TimeDescriptor) Fields() Fields {
	return Fields{
		{"identifier", d.Identifier},
		{"TAI_seconds", d.TAISeconds},
		{"TAI_ns", d.TAINanoseconds},
		{"UTC_offset", d.UTCOffset},
	}
}

// ReservedDescriptor holds a descriptor this package does not decode: a
// reserved tag, or any tag whose identifier is not CUEI. Payload is the
// descriptor body after splice_descriptor_tag and descriptor_length.
type ReservedDescriptor struct {
	DescriptorTag uint32
	Payload       []byte
}

func (d *ReservedDescriptor) Tag() uint32 { return d.DescriptorTag }

func (d *ReservedDescriptor) decode(r *bitReader) error {
	var err error
	d.Payload, err = r.readBytes("private_byte", r.bytesLeft())
	return err
}

func (d *ReservedDescriptor) encode(w *bitWriter) {
	w.putBytes(d.Payload)
}

// Identifier returns the leading 32-bit identifier, if the payload has one.
func (d *ReservedDescriptor) Identifier() (uint32, bool) {
	if len(d.Payload) < 4 {
		return 0, false
	}
	return bele.BeUint32(d.Payload), true
}

func (d *ReservedDescriptor) Fields() Fields {
	fs := Fields{}
	if id, ok := d.Identifier(); ok {
		fs = append(fs, Field{"identifier", id})
	}
	return append(fs, Field{"payload", d.Payload})
}

// decodeSpliceDescriptor reads one tag/length framed descriptor from r.
func decodeSpliceDescriptor(r *bitReader) (SpliceDescriptor, error) {
	tag, length, err := readDescriptorHeader(r)
	if err != nil {
		return nil, err
	}
	body, err := r.sub("splice_descriptor", int(length))
	if err != nil {
		return nil, err
	}

	var d SpliceDescriptor
	switch {
	case body.bytesLeft() >= 4 && bele.BeUint32(body.data) != CUEIdentifier:
		d = &ReservedDescriptor{DescriptorTag: tag}
	case tag == AvailDescriptorTag:
		d = &AvailDescriptor{}
	case tag == DTMFDescriptorTag:
		d = &DTMFDescriptor{}
	case tag == SegmentationDescriptorTag:
		d = &SegmentationDescriptor{}
	case tag == TimeDescriptorTag:
		d = &TimeDescriptor{}
	default:
		d = &ReservedDescriptor{DescriptorTag: tag}
	}
	if err := d.decode(body); err != nil {
		return nil, fmt.Errorf("scte35: decoding descriptor tag 0x%02X: %w", tag, err)
	}
	return d, nil
}

// encodeSpliceDescriptor writes d with its tag and descriptor_length.
func encodeSpliceDescriptor(w *bitWriter, d SpliceDescriptor) {
	body := newBitWriter()
	d.encode(body)
	if body.err != nil {
		w.fail(fmt.Errorf("scte35: encoding descriptor tag 0x%02X: %w", d.Tag(), body.err))
		return
	}
	w.putUint32("splice_descriptor_tag", 8, d.Tag())
	w.putUint64("descriptor_length", 8, uint64(len(body.bytes())))
	w.putBytes(body.bytes())
}

func readDescriptorHeader(r *bitReader) (tag, length uint32, err error) {
	if tag, err = r.readUint32("splice_descriptor_tag", 8); err != nil {
		return 0, 0, err
	}
	if length, err = r.readUint32("descriptor_length", 8); err != nil {
		return 0, 0, err
	}
	return tag, length, nil
}

func descriptorName(d SpliceDescriptor) string {
	switch d.(type) {
	case *AvailDescriptor:
		return "avail_descriptor"
	case *DTMFDescriptor:
		return "DTMF_descriptor"
	case *SegmentationDescriptor:
		return "segmentation_descriptor"
	case *TimeDescriptor:
		return "time_descriptor"
	default:
		return "private_descriptor"
	}
}
