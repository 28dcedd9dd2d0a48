// Package scte35 decodes and encodes SCTE-35 splice_info_section messages
// per the ANSI/SCTE 35 standard.
//
// DecodeBytes takes one complete section and returns a fully owned
// SpliceInfoSection or an error; it never panics and never returns a
// partially decoded section. Reserved or unknown command types, descriptor
// tags and UPID types are not errors: they decode to opaque variants that
// carry the raw bytes. Encrypted sections are rejected with
// ErrUnsupportedEncryption.
//
// SpliceInfoSection.Encode is the inverse of DecodeBytes: decoding the
// bytes it returns yields the same section.
package scte35

import (
	"fmt"
	"log/slog"
)

const (
	// TableID is the table_id of every splice_info_section.
	TableID uint32 = 0xFC

	// StreamTypeSCTE35 is the PMT stream_type registered for SCTE-35.
	StreamTypeSCTE35 uint8 = 0x86

	SpliceNullType           uint32 = 0x00
	SpliceScheduleType       uint32 = 0x04
	SpliceInsertType         uint32 = 0x05
	TimeSignalType           uint32 = 0x06
	BandwidthReservationType uint32 = 0x07
	PrivateCommandType       uint32 = 0xFF
)

const (
	sectionHeaderLength = 3 // table_id through section_length
	crcLength           = 4

	// protocol_version through splice_command_type, plus
	// descriptor_loop_length.
	sectionFixedLength = 13

	// legacyCommandLength marks a splice_command_length left unset by the
	// encoder; the command has to delimit itself.
	legacyCommandLength = 0xFFF
)

// IsSCTE35 reports whether a PMT stream_type carries SCTE-35 sections.
func IsSCTE35(streamType uint8) bool {
	return streamType == StreamTypeSCTE35
}

// CommandTypeName returns the syntax name of a splice_command_type.
func CommandTypeName(t uint32) string {
	switch t {
	case SpliceNullType:
		return "splice_null"
	case SpliceScheduleType:
		return "splice_schedule"
	case SpliceInsertType:
		return "splice_insert"
	case TimeSignalType:
		return "time_signal"
	case BandwidthReservationType:
		return "bandwidth_reservation"
	case PrivateCommandType:
		return "private_command"
	default:
		return "reserved"
	}
}

// EncryptionAlgorithm is the 6-bit encryption_algorithm field.
type EncryptionAlgorithm uint32

const (
	EncryptionNone             EncryptionAlgorithm = 0
	EncryptionDESECB           EncryptionAlgorithm = 1
	EncryptionDESCBC           EncryptionAlgorithm = 2
	EncryptionTripleDESEDE3ECB EncryptionAlgorithm = 3
)

func (a EncryptionAlgorithm) String() string {
	switch {
	case a == EncryptionNone:
		return "none"
	case a == EncryptionDESECB:
		return "DES-ECB"
	case a == EncryptionDESCBC:
		return "DES-CBC"
	case a == EncryptionTripleDESEDE3ECB:
		return "3DES-EDE3-ECB"
	case a < 32:
		return fmt.Sprintf("reserved(%d)", uint32(a))
	default:
		return fmt.Sprintf("private(%d)", uint32(a))
	}
}

// SpliceCommand is the interface for splice command types.
type SpliceCommand interface {
	Type() uint32
	Fields() Fields
	decode(r *bitReader) error
	encode(w *bitWriter)
}

// SpliceTime carries an optional PTS time. PTSTime is nil when
// time_specified_flag is 0.
type SpliceTime struct {
	PTSTime *uint64
}

func (st *SpliceTime) decode(r *bitReader) error {
	timeSpecified, err := r.readBit("time_specified_flag")
	if err != nil {
		return err
	}
	if !timeSpecified {
		return r.skip("reserved", 7)
	}
	if err := r.skip("reserved", 6); err != nil {
		return err
	}
	pts, err := r.readUint64("pts_time", 33)
	if err != nil {
		return err
	}
	st.PTSTime = &pts
	return nil
}

// encode writes st; a nil st is written with time_specified_flag 0.
func (st *SpliceTime) encode(w *bitWriter) {
	if st == nil || st.PTSTime == nil {
		w.putBit(false)
		w.putReserved(7)
		return
	}
	w.putBit(true)
	w.putReserved(6)
	w.putUint64("pts_time", 33, *st.PTSTime)
}

func (st SpliceTime) Fields() Fields {
	fs := Fields{{"time_specified_flag", st.PTSTime != nil}}
	if st.PTSTime != nil {
		fs = append(fs, Field{"pts_time", *st.PTSTime})
	}
	return fs
}

// BreakDuration specifies the duration of a commercial break.
type BreakDuration struct {
	AutoReturn bool
	Duration   uint64
}

func (bd *BreakDuration) decode(r *bitReader) error {
	var err error
	if bd.AutoReturn, err = r.readBit("auto_return"); err != nil {
		return err
	}
	if err = r.skip("reserved", 6); err != nil {
		return err
	}
	bd.Duration, err = r.readUint64("duration", 33)
	return err
}

func (bd *BreakDuration) encode(w *bitWriter) {
	w.putBit(bd.AutoReturn)
	w.putReserved(6)
	w.putUint64("duration", 33, bd.Duration)
}

func (bd BreakDuration) Fields() Fields {
	return Fields{
		{"auto_return", bd.AutoReturn},
		{"duration", bd.Duration},
	}
}

// SpliceInfoSection is the top-level SCTE-35 structure.
type SpliceInfoSection struct {
	TableID                uint32
	SectionSyntaxIndicator bool
	PrivateIndicator       bool
	SAPType                uint32
	SectionLength          uint32
	ProtocolVersion        uint32
	EncryptedPacket        bool
	EncryptionAlgorithm    EncryptionAlgorithm
	PTSAdjustment          uint64
	CWIndex                uint32
	Tier                   uint32
	SpliceCommandLength    uint32
	SpliceCommand          SpliceCommand
	SpliceDescriptors      DescriptorLoop
	CRC32                  uint32
}

// DecodeBytes decodes a binary SCTE-35 splice_info_section. Bytes past the
// end declared by section_length are ignored. On error the returned
// section is nil.
func DecodeBytes(data []byte) (*SpliceInfoSection, error) {
	sis := &SpliceInfoSection{}
	if err := sis.decode(data); err != nil {
		return nil, err
	}
	return sis, nil
}

func (sis *SpliceInfoSection) decode(data []byte) error {
	var err error
	r := newBitReader(data)
	if sis.TableID, err = r.readUint32("table_id", 8); err != nil {
		return err
	}
	if sis.TableID != TableID {
		return &TableIDError{TableID: sis.TableID}
	}
	if sis.SectionSyntaxIndicator, err = r.readBit("section_syntax_indicator"); err != nil {
		return err
	}
	if sis.PrivateIndicator, err = r.readBit("private_indicator"); err != nil {
		return err
	}
	if sis.SAPType, err = r.readUint32("sap_type", 2); err != nil {
		return err
	}
	if sis.SectionLength, err = r.readUint32("section_length", 12); err != nil {
		return err
	}

	end := sectionHeaderLength + int(sis.SectionLength)
	if len(data) < end {
		return &NotEnoughDataError{Field: "section_length", Needed: end * 8, Available: len(data) * 8}
	}
	if sis.SectionLength < crcLength {
		return &InvalidLengthError{Field: "section_length", Declared: int(sis.SectionLength), Available: crcLength}
	}

	// The CRC covers everything up to itself, so check it before trusting
	// any length field inside the section.
	if sis.CRC32, err = verifyCRC32(data[:end]); err != nil {
		return err
	}

	// Everything below is bounded by the declared section, minus the CRC.
	r = newBitReader(data[:end-crcLength])
	r.bitPos = sectionHeaderLength * 8
	return sis.decodeBody(r)
}

func (sis *SpliceInfoSection) decodeBody(r *bitReader) error {
	var err error
	if sis.ProtocolVersion, err = r.readUint32("protocol_version", 8); err != nil {
		return err
	}
	if sis.EncryptedPacket, err = r.readBit("encrypted_packet"); err != nil {
		return err
	}
	alg, err := r.readUint32("encryption_algorithm", 6)
	if err != nil {
		return err
	}
	sis.EncryptionAlgorithm = EncryptionAlgorithm(alg)
	if sis.EncryptedPacket {
		return &UnsupportedEncryptionError{Algorithm: sis.EncryptionAlgorithm}
	}
	if sis.PTSAdjustment, err = r.readUint64("pts_adjustment", 33); err != nil {
		return err
	}
	if sis.CWIndex, err = r.readUint32("cw_index", 8); err != nil {
		return err
	}
	if sis.Tier, err = r.readUint32("tier", 12); err != nil {
		return err
	}
	if sis.SpliceCommandLength, err = r.readUint32("splice_command_length", 12); err != nil {
		return err
	}
	cmdType, err := r.readUint32("splice_command_type", 8)
	if err != nil {
		return err
	}

	if sis.SpliceCommandLength == legacyCommandLength {
		sis.SpliceCommand, err = decodeLegacySpliceCommand(cmdType, r)
	} else {
		if int(sis.SpliceCommandLength) > r.bytesLeft() {
			return &InvalidLengthError{
				Field:     "splice_command_length",
				Declared:  int(sis.SpliceCommandLength),
				Available: r.bytesLeft(),
			}
		}
		var cmdReader *bitReader
		if cmdReader, err = r.sub("splice_command", int(sis.SpliceCommandLength)); err != nil {
			return err
		}
		sis.SpliceCommand, err = decodeSpliceCommand(cmdType, cmdReader)
	}
	if err != nil {
		return err
	}

	loopLength, err := r.readUint32("descriptor_loop_length", 16)
	if err != nil {
		return err
	}
	if int(loopLength) > r.bytesLeft() {
		return &InvalidLengthError{
			Field:     "descriptor_loop_length",
			Declared:  int(loopLength),
			Available: r.bytesLeft(),
		}
	}
	loopData, err := r.readBytes("descriptor_loop", int(loopLength))
	if err != nil {
		return err
	}
	sis.SpliceDescriptors = DescriptorLoop{data: loopData}
	if err := sis.SpliceDescriptors.validate(); err != nil {
		return err
	}

	// Whatever is left before CRC_32 is alignment stuffing.
	return r.skip("alignment_stuffing", r.bitsLeft())
}

// decodeLegacySpliceCommand decodes a command whose splice_command_length
// is 0xFFF, advancing r past however many bytes the command used.
func decodeLegacySpliceCommand(cmdType uint32, r *bitReader) (SpliceCommand, error) {
	if !delimitsItself(cmdType) {
		return nil, &InvalidLengthError{
			Field:     "splice_command_length",
			Declared:  legacyCommandLength,
			Available: r.bytesLeft(),
		}
	}
	cmdReader := r.rest()
	cmd, err := decodeSpliceCommand(cmdType, cmdReader)
	if err != nil {
		return nil, err
	}
	cmdReader.align()
	if err := r.skip("splice_command", cmdReader.bitPos); err != nil {
		return nil, err
	}
	return cmd, nil
}

// delimitsItself reports whether a command's grammar determines its own
// length, which a splice_command_length of 0xFFF requires.
func delimitsItself(cmdType uint32) bool {
	switch cmdType {
	case SpliceNullType, SpliceInsertType, TimeSignalType, BandwidthReservationType:
		return true
	}
	return false
}

// Encode serializes the section. section_length, splice_command_length,
// descriptor_loop_length and CRC_32 are computed, and table_id is always
// 0xFC. A SpliceCommandLength of 0xFFF is kept for commands that delimit
// themselves; any other stored length is ignored. A nil SpliceCommand is
// written as splice_null. Encrypted sections cannot be encoded.
func (sis *SpliceInfoSection) Encode() ([]byte, error) {
	if sis.EncryptedPacket {
		return nil, &UnsupportedEncryptionError{Algorithm: sis.EncryptionAlgorithm}
	}
	var cmd SpliceCommand = &SpliceNull{}
	if sis.SpliceCommand != nil {
		cmd = sis.SpliceCommand
	}
	cw := newBitWriter()
	cmd.encode(cw)
	if cw.err != nil {
		return nil, fmt.Errorf("scte35: encoding command type 0x%02X: %w", cmd.Type(), cw.err)
	}
	cmdBytes := cw.bytes()

	cmdLength := uint32(len(cmdBytes))
	switch {
	case sis.SpliceCommandLength == legacyCommandLength:
		if !delimitsItself(cmd.Type()) {
			return nil, &InvalidLengthError{
				Field:     "splice_command_length",
				Declared:  legacyCommandLength,
				Available: len(cmdBytes),
			}
		}
		cmdLength = legacyCommandLength
	case cmdLength >= legacyCommandLength:
		return nil, &InvalidLengthError{
			Field:     "splice_command_length",
			Declared:  len(cmdBytes),
			Available: legacyCommandLength - 1,
		}
	}

	if err := sis.SpliceDescriptors.validate(); err != nil {
		return nil, err
	}
	loop := sis.SpliceDescriptors.data
	sectionLength := sectionFixedLength + len(cmdBytes) + len(loop) + crcLength

	w := newBitWriter()
	w.putUint32("table_id", 8, TableID)
	w.putBit(sis.SectionSyntaxIndicator)
	w.putBit(sis.PrivateIndicator)
	w.putUint32("sap_type", 2, sis.SAPType)
	w.putUint64("section_length", 12, uint64(sectionLength))
	w.putUint32("protocol_version", 8, sis.ProtocolVersion)
	w.putBit(false) // encrypted_packet
	w.putUint32("encryption_algorithm", 6, uint32(sis.EncryptionAlgorithm))
	w.putUint64("pts_adjustment", 33, sis.PTSAdjustment)
	w.putUint32("cw_index", 8, sis.CWIndex)
	w.putUint32("tier", 12, sis.Tier)
	w.putUint32("splice_command_length", 12, cmdLength)
	w.putUint32("splice_command_type", 8, cmd.Type())
	w.putBytes(cmdBytes)
	w.putUint64("descriptor_loop_length", 16, uint64(len(loop)))
	w.putBytes(loop)
	if w.err != nil {
		return nil, w.err
	}
	w.putUint32("CRC_32", 32, crc32MPEG2(w.bytes()))
	return w.bytes(), nil
}

// Descriptors decodes every splice descriptor. See DescriptorLoop.Collect.
func (sis *SpliceInfoSection) Descriptors() ([]SpliceDescriptor, error) {
	return sis.SpliceDescriptors.Collect()
}

// Fields returns the section as an ordered field tree.
func (sis *SpliceInfoSection) Fields() Fields {
	fs := Fields{
		{"table_id", sis.TableID},
		{"section_syntax_indicator", sis.SectionSyntaxIndicator},
		{"private_indicator", sis.PrivateIndicator},
		{"sap_type", sis.SAPType},
		{"section_length", sis.SectionLength},
		{"protocol_version", sis.ProtocolVersion},
		{"encrypted_packet", sis.EncryptedPacket},
		{"encryption_algorithm", uint32(sis.EncryptionAlgorithm)},
		{"pts_adjustment", sis.PTSAdjustment},
		{"cw_index", sis.CWIndex},
		{"tier", sis.Tier},
		{"splice_command_length", sis.SpliceCommandLength},
	}
	if sis.SpliceCommand != nil {
		fs = append(fs,
			Field{"splice_command_type", sis.SpliceCommand.Type()},
			Field{CommandTypeName(sis.SpliceCommand.Type()), sis.SpliceCommand.Fields()},
		)
	}
	fs = append(fs, Field{"descriptor_loop_length", uint32(sis.SpliceDescriptors.Len())})
	fs = append(fs, sis.SpliceDescriptors.fields()...)
	fs = append(fs, Field{"CRC_32", sis.CRC32})
	return fs
}

// LogValue implements slog.LogValuer.
func (sis *SpliceInfoSection) LogValue() slog.Value {
	return sis.Fields().LogValue()
}
