package scte35

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every typed error below matches exactly one of these
// through errors.Is.
var (
	ErrNotEnoughData         = errors.New("scte35: not enough data")
	ErrCRCMismatch           = errors.New("scte35: CRC32 mismatch")
	ErrUnsupportedEncryption = errors.New("scte35: encrypted packets are not supported")
	ErrInvalidLength         = errors.New("scte35: invalid length")
	ErrUpidLengthMismatch    = errors.New("scte35: segmentation_upid length mismatch")
	ErrInvalidTableID        = errors.New("scte35: invalid table_id")
	ErrValueOutOfRange       = errors.New("scte35: value out of range")
)

// NotEnoughDataError reports a read that needed more bits than remained.
// Field names the syntax element being decoded.
type NotEnoughDataError struct {
	Field     string
	Needed    int // bits
	Available int // bits
}

func (e *NotEnoughDataError) Error() string {
	return fmt.Sprintf("scte35: not enough data for %s: need %d bits, have %d", e.Field, e.Needed, e.Available)
}

func (e *NotEnoughDataError) Is(target error) bool { return target == ErrNotEnoughData }

// CRCMismatchError reports a CRC_32 that does not match the section bytes.
type CRCMismatchError struct {
	Computed uint32
	Declared uint32
}

func (e *CRCMismatchError) Error() string {
	return fmt.Sprintf("scte35: CRC32 mismatch: computed 0x%08X, stored 0x%08X", e.Computed, e.Declared)
}

func (e *CRCMismatchError) Is(target error) bool { return target == ErrCRCMismatch }

// UnsupportedEncryptionError is returned for sections with encrypted_packet set.
type UnsupportedEncryptionError struct {
	Algorithm EncryptionAlgorithm
}

func (e *UnsupportedEncryptionError) Error() string {
	return fmt.Sprintf("scte35: encrypted packets are not supported (encryption_algorithm %s)", e.Algorithm)
}

func (e *UnsupportedEncryptionError) Is(target error) bool { return target == ErrUnsupportedEncryption }

// InvalidLengthError reports a length field that does not fit inside the
// structure enclosing it.
type InvalidLengthError struct {
	Field     string
	Declared  int // bytes
	Available int // bytes
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("scte35: invalid %s: declared %d bytes, %d available", e.Field, e.Declared, e.Available)
}

func (e *InvalidLengthError) Is(target error) bool { return target == ErrInvalidLength }

// UpidLengthMismatchError reports a segmentation_upid whose content did not
// consume exactly segmentation_upid_length bytes.
type UpidLengthMismatchError struct {
	UpidType uint32
	Declared int // bytes
	Consumed int // bytes
}

func (e *UpidLengthMismatchError) Error() string {
	return fmt.Sprintf("scte35: segmentation_upid type 0x%02X (%s): declared %d bytes, consumed %d",
		e.UpidType, UpidTypeName(e.UpidType), e.Declared, e.Consumed)
}

func (e *UpidLengthMismatchError) Is(target error) bool { return target == ErrUpidLengthMismatch }

// TableIDError is returned when the first byte is not the SCTE-35 table_id.
type TableIDError struct {
	TableID uint32
}

func (e *TableIDError) Error() string {
	return fmt.Sprintf("scte35: bad table_id 0x%02X (expected 0x%02X)", e.TableID, TableID)
}

func (e *TableIDError) Is(target error) bool { return target == ErrInvalidTableID }

// ValueRangeError is returned by the encoder for a value that does not fit
// in its field.
type ValueRangeError struct {
	Field string
	Bits  int
	Value uint64
}

func (e *ValueRangeError) Error() string {
	return fmt.Sprintf("scte35: %s: value 0x%X does not fit in %d bits", e.Field, e.Value, e.Bits)
}

func (e *ValueRangeError) Is(target error) bool { return target == ErrValueOutOfRange }
