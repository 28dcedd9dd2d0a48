package scte35

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// segmentation_upid_type values per SCTE-35 Table 21.
const (
	UpidTypeNotUsed        uint32 = 0x00
	UpidTypeUserDefined    uint32 = 0x01 // deprecated
	UpidTypeISCI           uint32 = 0x02 // deprecated
	UpidTypeAdID           uint32 = 0x03
	UpidTypeUMID           uint32 = 0x04
	UpidTypeISANDeprecated uint32 = 0x05
	UpidTypeISAN           uint32 = 0x06
	UpidTypeTID            uint32 = 0x07
	UpidTypeTI             uint32 = 0x08
	UpidTypeADI            uint32 = 0x09
	UpidTypeEIDR           uint32 = 0x0A
	UpidTypeATSC           uint32 = 0x0B
	UpidTypeMPU            uint32 = 0x0C
	UpidTypeMID            uint32 = 0x0D
	UpidTypeADS            uint32 = 0x0E
	UpidTypeURI            uint32 = 0x0F
	UpidTypeUUID           uint32 = 0x10
	UpidTypeSCR            uint32 = 0x11
)

var upidTypeNames = map[uint32]string{
	UpidTypeNotUsed:        "Not Used",
	UpidTypeUserDefined:    "User Defined",
	UpidTypeISCI:           "ISCI",
	UpidTypeAdID:           "Ad-ID",
	UpidTypeUMID:           "UMID",
	UpidTypeISANDeprecated: "ISAN (deprecated)",
	UpidTypeISAN:           "ISAN",
	UpidTypeTID:            "TID",
	UpidTypeTI:             "TI",
	UpidTypeADI:            "ADI",
	UpidTypeEIDR:           "EIDR",
	UpidTypeATSC:           "ATSC Content Identifier",
	UpidTypeMPU:            "MPU",
	UpidTypeMID:            "MID",
	UpidTypeADS:            "ADS Information",
	UpidTypeURI:            "URI",
	UpidTypeUUID:           "UUID",
	UpidTypeSCR:            "SCR",
}

// Byte lengths of the fixed-size UPID types.
var upidFixedLengths = map[uint32]int{
	UpidTypeNotUsed:        0,
	UpidTypeISCI:           8,
	UpidTypeAdID:           12,
	UpidTypeUMID:           32,
	UpidTypeISANDeprecated: 8,
	UpidTypeISAN:           12,
	UpidTypeTID:            12,
	UpidTypeTI:             8,
	UpidTypeEIDR:           12,
	UpidTypeUUID:           16,
}

// UpidTypeName returns the name of a segmentation_upid_type.
func UpidTypeName(t uint32) string {
	if name, ok := upidTypeNames[t]; ok {
		return name
	}
	return "Reserved"
}

// SegmentationUpid is a decoded segmentation_upid().
type SegmentationUpid interface {
	UpidType() uint32
	Fields() Fields
	encode(w *bitWriter)
}

// NotUsedUpid is upid type 0x00; it has no content.
type NotUsedUpid struct{}

func (NotUsedUpid) UpidType() uint32 { return UpidTypeNotUsed }
func (NotUsedUpid) Fields() Fields   { return Fields{} }

// UserDefinedUpid is the deprecated upid type 0x01.
type UserDefinedUpid struct{ Value []byte }

func (UserDefinedUpid) UpidType() uint32 { return UpidTypeUserDefined }
func (u UserDefinedUpid) Fields() Fields { return Fields{{"value", u.Value}} }

// ISCIUpid is the deprecated Industry Standard Commercial Identifier.
type ISCIUpid struct{ Value string }

func (ISCIUpid) UpidType() uint32 { return UpidTypeISCI }
func (u ISCIUpid) Fields() Fields { return Fields{{"value", u.Value}} }

// AdIDUpid is an Ad-ID: 4 alpha characters followed by 8 alphanumerics.
type AdIDUpid struct{ Value string }

func (AdIDUpid) UpidType() uint32 { return UpidTypeAdID }
func (u AdIDUpid) Fields() Fields { return Fields{{"value", u.Value}} }

// UMIDUpid is a SMPTE 330 Unique Material Identifier.
type UMIDUpid struct{ Value []byte }

func (UMIDUpid) UpidType() uint32 { return UpidTypeUMID }
func (u UMIDUpid) Fields() Fields { return Fields{{"value", u.String()}} }

// String renders the UMID as dot separated groups of 4 bytes.
func (u UMIDUpid) String() string {
	groups := make([]string, 0, (len(u.Value)+3)/4)
	for i := 0; i < len(u.Value); i += 4 {
		groups = append(groups, hex.EncodeToString(u.Value[i:min(i+4, len(u.Value))]))
	}
	return strings.Join(groups, ".")
}

// ISANDeprecatedUpid is the deprecated 8-byte ISAN binary encoding.
type ISANDeprecatedUpid struct{ Value []byte }

func (ISANDeprecatedUpid) UpidType() uint32 { return UpidTypeISANDeprecated }
func (u ISANDeprecatedUpid) Fields() Fields { return Fields{{"value", u.Value}} }

// ISANUpid is a versioned ISAN in ISO 15706-2 binary encoding.
type ISANUpid struct{ Value []byte }

func (ISANUpid) UpidType() uint32 { return UpidTypeISAN }
func (u ISANUpid) Fields() Fields { return Fields{{"value", u.Value}} }

// TIDUpid is a Tribune Media Systems program identifier.
type TIDUpid struct{ Value string }

func (TIDUpid) UpidType() uint32 { return UpidTypeTID }
func (u TIDUpid) Fields() Fields { return Fields{{"value", u.Value}} }

// TIUpid is an AiringID (formerly Turner ID).
type TIUpid struct{ Value uint64 }

func (TIUpid) UpidType() uint32 { return UpidTypeTI }
func (u TIUpid) Fields() Fields { return Fields{{"value", u.Value}} }

// ADIUpid is a CableLabs metadata identifier.
type ADIUpid struct{ Value string }

func (ADIUpid) UpidType() uint32 { return UpidTypeADI }
func (u ADIUpid) Fields() Fields { return Fields{{"value", u.Value}} }

// EIDRUpid is an EIDR identifier in compact binary encoding: a 16-bit DOI
// sub-prefix followed by an 80-bit suffix.
type EIDRUpid struct{ Value [12]byte }

func (EIDRUpid) UpidType() uint32 { return UpidTypeEIDR }
func (u EIDRUpid) Fields() Fields { return Fields{{"value", u.String()}} }

// String renders the identifier as 10.<prefix>/XXXX-XXXX-XXXX-XXXX-XXXX.
// The check character is not carried in the binary form.
func (u EIDRUpid) String() string {
	prefix := uint32(u.Value[0])<<8 | uint32(u.Value[1])
	groups := make([]string, 5)
	for i := range groups {
		groups[i] = strings.ToUpper(hex.EncodeToString(u.Value[2+2*i : 4+2*i]))
	}
	return fmt.Sprintf("10.%d/%s", prefix, strings.Join(groups, "-"))
}

// ATSCUpid is an ATSC_content_identifier() structure.
type ATSCUpid struct {
	TSID      uint32
	EndOfDay  uint32
	UniqueFor uint32
	ContentID []byte
}

func (ATSCUpid) UpidType() uint32 { return UpidTypeATSC }

func (u ATSCUpid) Fields() Fields {
	return Fields{
		{"TSID", u.TSID},
		{"end_of_day", u.EndOfDay},
		{"unique_for", u.UniqueFor},
		{"content_id", u.ContentID},
	}
}

// MPUUpid is a Managed Private UPID.
type MPUUpid struct {
	FormatIdentifier uint32
	PrivateData      []byte
}

func (MPUUpid) UpidType() uint32 { return UpidTypeMPU }

func (u MPUUpid) Fields() Fields {
	return Fields{
		{"format_identifier", u.FormatIdentifier},
		{"private_data", u.PrivateData},
	}
}

// MIDUpid carries several UPIDs, each with its own type and length.
type MIDUpid struct{ Upids []SegmentationUpid }

func (MIDUpid) UpidType() uint32 { return UpidTypeMID }

func (u MIDUpid) Fields() Fields {
	items := make([]Fields, len(u.Upids))
	for i, inner := range u.Upids {
		items[i] = Fields{
			{"segmentation_upid_type", inner.UpidType()},
			{"segmentation_upid", inner.Fields()},
		}
	}
	return Fields{{"upids", items}}
}

// ADSUpid is advertising information; its format is not specified.
type ADSUpid struct{ Value []byte }

func (ADSUpid) UpidType() uint32 { return UpidTypeADS }
func (u ADSUpid) Fields() Fields { return Fields{{"value", u.Value}} }

// URIUpid is a Uniform Resource Identifier.
type URIUpid struct{ Value string }

func (URIUpid) UpidType() uint32 { return UpidTypeURI }
func (u URIUpid) Fields() Fields { return Fields{{"value", u.Value}} }

// UUIDUpid is an RFC 4122 UUID.
type UUIDUpid struct{ Value uuid.UUID }

func (UUIDUpid) UpidType() uint32 { return UpidTypeUUID }
func (u UUIDUpid) Fields() Fields { return Fields{{"value", u.Value.String()}} }

// SCRUpid is a Subscriber Company Reporting identifier.
type SCRUpid struct{ Value string }

func (SCRUpid) UpidType() uint32 { return UpidTypeSCR }
func (u SCRUpid) Fields() Fields { return Fields{{"value", u.Value}} }

// ReservedUpid holds the raw bytes of an unrecognised upid type.
type ReservedUpid struct {
	Type  uint32
	Value []byte
}

func (u ReservedUpid) UpidType() uint32 { return u.Type }
func (u ReservedUpid) Fields() Fields   { return Fields{{"value", u.Value}} }

// decodeUpid decodes one segmentation_upid of the given type. r spans
// exactly segmentation_upid_length bytes and all of them must be used.
func decodeUpid(upidType uint32, r *bitReader) (SegmentationUpid, error) {
	declared := r.bytesLeft()
	if want, ok := upidFixedLengths[upidType]; ok && declared != want {
		return nil, &UpidLengthMismatchError{UpidType: upidType, Declared: declared, Consumed: want}
	}

	var (
		upid SegmentationUpid
		err  error
	)
	switch upidType {
	case UpidTypeNotUsed:
		upid = NotUsedUpid{}
	case UpidTypeUserDefined:
		var b []byte
		b, err = r.readBytes("segmentation_upid", declared)
		upid = UserDefinedUpid{Value: b}
	case UpidTypeISCI:
		var s string
		s, err = readUpidString(r)
		upid = ISCIUpid{Value: s}
	case UpidTypeAdID:
		var s string
		s, err = readUpidString(r)
		upid = AdIDUpid{Value: s}
	case UpidTypeUMID:
		var b []byte
		b, err = r.readBytes("segmentation_upid", declared)
		upid = UMIDUpid{Value: b}
	case UpidTypeISANDeprecated:
		var b []byte
		b, err = r.readBytes("segmentation_upid", declared)
		upid = ISANDeprecatedUpid{Value: b}
	case UpidTypeISAN:
		var b []byte
		b, err = r.readBytes("segmentation_upid", declared)
		upid = ISANUpid{Value: b}
	case UpidTypeTID:
		var s string
		s, err = readUpidString(r)
		upid = TIDUpid{Value: s}
	case UpidTypeTI:
		var v uint64
		v, err = r.readUint64("segmentation_upid", 64)
		upid = TIUpid{Value: v}
	case UpidTypeADI:
		var s string
		s, err = readUpidString(r)
		upid = ADIUpid{Value: s}
	case UpidTypeEIDR:
		var b []byte
		b, err = r.readBytes("segmentation_upid", declared)
		var e EIDRUpid
		copy(e.Value[:], b)
		upid = e
	case UpidTypeATSC:
		upid, err = decodeATSCUpid(r)
	case UpidTypeMPU:
		upid, err = decodeMPUUpid(r)
	case UpidTypeMID:
		upid, err = decodeMIDUpid(r)
	case UpidTypeADS:
		var b []byte
		b, err = r.readBytes("segmentation_upid", declared)
		upid = ADSUpid{Value: b}
	case UpidTypeURI:
		var s string
		s, err = readUpidString(r)
		upid = URIUpid{Value: s}
	case UpidTypeUUID:
		var b []byte
		if b, err = r.readBytes("segmentation_upid", declared); err == nil {
			var id uuid.UUID
			id, err = uuid.FromBytes(b)
			upid = UUIDUpid{Value: id}
		}
	case UpidTypeSCR:
		var s string
		s, err = readUpidString(r)
		upid = SCRUpid{Value: s}
	default:
		var b []byte
		b, err = r.readBytes("segmentation_upid", declared)
		upid = ReservedUpid{Type: upidType, Value: b}
	}
	if err != nil {
		return nil, err
	}
	if left := r.bytesLeft(); left != 0 {
		return nil, &UpidLengthMismatchError{UpidType: upidType, Declared: declared, Consumed: declared - left}
	}
	return upid, nil
}

func readUpidString(r *bitReader) (string, error) {
	b, err := r.readBytes("segmentation_upid", r.bytesLeft())
	return string(b), err
}

func decodeATSCUpid(r *bitReader) (SegmentationUpid, error) {
	declared := r.bytesLeft()
	if declared < 4 {
		return nil, &UpidLengthMismatchError{UpidType: UpidTypeATSC, Declared: declared, Consumed: 4}
	}
	var (
		u   ATSCUpid
		err error
	)
	if u.TSID, err = r.readUint32("TSID", 16); err != nil {
		return nil, err
	}
	if err = r.skip("reserved", 2); err != nil {
		return nil, err
	}
	if u.EndOfDay, err = r.readUint32("end_of_day", 5); err != nil {
		return nil, err
	}
	if u.UniqueFor, err = r.readUint32("unique_for", 9); err != nil {
		return nil, err
	}
	if u.ContentID, err = r.readBytes("content_id", r.bytesLeft()); err != nil {
		return nil, err
	}
	return u, nil
}

func decodeMPUUpid(r *bitReader) (SegmentationUpid, error) {
	declared := r.bytesLeft()
	if declared < 4 {
		return nil, &UpidLengthMismatchError{UpidType: UpidTypeMPU, Declared: declared, Consumed: 4}
	}
	var (
		u   MPUUpid
		err error
	)
	if u.FormatIdentifier, err = r.readUint32("format_identifier", 32); err != nil {
		return nil, err
	}
	if u.PrivateData, err = r.readBytes("private_data", r.bytesLeft()); err != nil {
		return nil, err
	}
	return u, nil
}

// decodeMIDUpid decodes the nested type/length/value entries of a MID. An
// entry running past the end of the MID is a length mismatch of the MID.
func decodeMIDUpid(r *bitReader) (SegmentationUpid, error) {
	declared := r.bytesLeft()
	var u MIDUpid
	for r.bytesLeft() > 0 {
		if r.bytesLeft() < 2 {
			return nil, &UpidLengthMismatchError{UpidType: UpidTypeMID, Declared: declared, Consumed: r.bytePos() + 2}
		}
		innerType, err := r.readUint32("segmentation_upid_type", 8)
		if err != nil {
			return nil, err
		}
		innerLength, err := r.readUint32("segmentation_upid_length", 8)
		if err != nil {
			return nil, err
		}
		if int(innerLength) > r.bytesLeft() {
			return nil, &UpidLengthMismatchError{
				UpidType: UpidTypeMID,
				Declared: declared,
				Consumed: r.bytePos() + int(innerLength),
			}
		}
		innerReader, err := r.sub("segmentation_upid", int(innerLength))
		if err != nil {
			return nil, err
		}
		inner, err := decodeUpid(innerType, innerReader)
		if err != nil {
			return nil, fmt.Errorf("scte35: MID entry %d: %w", len(u.Upids), err)
		}
		u.Upids = append(u.Upids, inner)
	}
	return u, nil
}

// encodeUpid writes segmentation_upid_type, segmentation_upid_length and
// the upid. A nil upid is written as not used.
func encodeUpid(w *bitWriter, u SegmentationUpid) {
	if u == nil {
		u = NotUsedUpid{}
	}
	body := newBitWriter()
	u.encode(body)
	if body.err != nil {
		w.fail(body.err)
		return
	}
	n := len(body.bytes())
	if want, ok := upidFixedLengths[u.UpidType()]; ok && n != want {
		w.fail(&UpidLengthMismatchError{UpidType: u.UpidType(), Declared: n, Consumed: want})
		return
	}
	w.putUint32("segmentation_upid_type", 8, u.UpidType())
	w.putUint64("segmentation_upid_length", 8, uint64(n))
	w.putBytes(body.bytes())
}

func (NotUsedUpid) encode(_ *bitWriter)          {}
func (u UserDefinedUpid) encode(w *bitWriter)    { w.putBytes(u.Value) }
func (u ISCIUpid) encode(w *bitWriter)           { w.putBytes([]byte(u.Value)) }
func (u AdIDUpid) encode(w *bitWriter)           { w.putBytes([]byte(u.Value)) }
func (u UMIDUpid) encode(w *bitWriter)           { w.putBytes(u.Value) }
func (u ISANDeprecatedUpid) encode(w *bitWriter) { w.putBytes(u.Value) }
func (u ISANUpid) encode(w *bitWriter)           { w.putBytes(u.Value) }
func (u TIDUpid) encode(w *bitWriter)            { w.putBytes([]byte(u.Value)) }
func (u TIUpid) encode(w *bitWriter)             { w.putUint64("segmentation_upid", 64, u.Value) }
func (u ADIUpid) encode(w *bitWriter)            { w.putBytes([]byte(u.Value)) }
func (u EIDRUpid) encode(w *bitWriter)           { w.putBytes(u.Value[:]) }
func (u ADSUpid) encode(w *bitWriter)            { w.putBytes(u.Value) }
func (u URIUpid) encode(w *bitWriter)            { w.putBytes([]byte(u.Value)) }
func (u UUIDUpid) encode(w *bitWriter)           { w.putBytes(u.Value[:]) }
func (u SCRUpid) encode(w *bitWriter)            { w.putBytes([]byte(u.Value)) }
func (u ReservedUpid) encode(w *bitWriter)       { w.putBytes(u.Value) }

func (u ATSCUpid) encode(w *bitWriter) {
	w.putUint32("TSID", 16, u.TSID)
	w.putReserved(2)
	w.putUint32("end_of_day", 5, u.EndOfDay)
	w.putUint32("unique_for", 9, u.UniqueFor)
	w.putBytes(u.ContentID)
}

func (u MPUUpid) encode(w *bitWriter) {
	w.putUint32("format_identifier", 32, u.FormatIdentifier)
	w.putBytes(u.PrivateData)
}

func (u MIDUpid) encode(w *bitWriter) {
	for i, inner := range u.Upids {
		entry := newBitWriter()
		encodeUpid(entry, inner)
		if entry.err != nil {
			w.fail(fmt.Errorf("scte35: MID entry %d: %w", i, entry.err))
			return
		}
		w.putBytes(entry.bytes())
	}
}
