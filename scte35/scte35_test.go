package scte35

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sections produced by a conforming encoder: a time_signal or splice_insert
// followed by one segmentation_descriptor. Event IDs count up from 1 in
// the order listed in goldenDescriptors.
var goldenVectors = map[string]string{
	"ProviderAdStart":       "fc302700000000000000fff00506fe000dbba00011020f43554549000000017fbf0000300101ee197d02",
	"DistributorAdStart":    "fc302c00000000000000fff00506fe000dbba00016021443554549000000027fff00002932e000003201031233f909",
	"DistributorAdEnd":      "fc302700000000000000fff00506fe000dbba00011020f43554549000000037fbf000033010352b10a71",
	"ProviderAdEnd":         "fc302700000000000000fff00506fe000dbba00011020f43554549000000047fbf0000310101de2663d0",
	"SpliceInsertOut":       "fc303200000000000000fff01005000000057fbf00fe007b98a0000101010011020f43554549000000057fbf00002201017f1add87",
	"SpliceInsertIn":        "fc302d00000000000000fff00b05000000067f1f00000101010011020f43554549000000067fbf0000230101c2262974",
	"ProgramStart":          "fc302700000000000000fff00506fe000dbba00011020f43554549000000077fbf0000100000ded1e682",
	"ContentID":             "fc302700000000000000fff00506fe000dbba00011020f43554549000000087fbf000001000090ab548a",
	"ChapterStart":          "fc302c00000000000000fff00506fe000dbba00016021443554549000000097fff00019bfcc00000200105bb3c1919",
	"ChapterEnd":            "fc302700000000000000fff00506fe000dbba00011020f435545490000000a7fbf0000210105d921d749",
	"NetworkStart":          "fc302700000000000000fff00506fe000dbba00011020f435545490000000b7fbf0000500000163074e3",
	"ProgramEnd":            "fc302700000000000000fff00506fe000dbba00011020f435545490000000c7fbf0000110000e767f265",
	"UnscheduledEventStart": "fc302700000000000000fff00506fe000dbba00011020f435545490000000d7fbf0000400000d6bf6b98",
	"UnscheduledEventEnd":   "fc302700000000000000fff00506fe000dbba00011020f435545490000000e7fbf00004100003b85a241",
	"ProviderPOStart":       "fc302c00000000000000fff00506fe000dbba000160214435545490000000f7fff00005265c0000034010288c9acbd",
	"ProviderPOEnd":         "fc302700000000000000fff00506fe000dbba00011020f43554549000000107fbf000035010213993e41",
}

type goldenDescriptor struct {
	name             string
	typeID           uint32
	segmentNum       uint32
	segmentsExpected uint32
	duration         *uint64
}

var goldenDescriptors = []goldenDescriptor{
	{"ProviderAdStart", SegmentationTypeProviderAdStart, 1, 1, nil},
	{"DistributorAdStart", SegmentationTypeDistributorAdStart, 1, 3, ptr(uint64(30 * 90000))},
	{"DistributorAdEnd", SegmentationTypeDistributorAdEnd, 1, 3, nil},
	{"ProviderAdEnd", SegmentationTypeProviderAdEnd, 1, 1, nil},
	{"SpliceInsertOut", SegmentationTypeBreakStart, 1, 1, nil},
	{"SpliceInsertIn", SegmentationTypeBreakEnd, 1, 1, nil},
	{"ProgramStart", SegmentationTypeProgramStart, 0, 0, nil},
	{"ContentID", SegmentationTypeContentIdentification, 0, 0, nil},
	{"ChapterStart", SegmentationTypeChapterStart, 1, 5, ptr(uint64(300 * 90000))},
	{"ChapterEnd", SegmentationTypeChapterEnd, 1, 5, nil},
	{"NetworkStart", SegmentationTypeNetworkStart, 0, 0, nil},
	{"ProgramEnd", SegmentationTypeProgramEnd, 0, 0, nil},
	{"UnscheduledEventStart", SegmentationTypeUnscheduledEventStart, 0, 0, nil},
	{"UnscheduledEventEnd", SegmentationTypeUnscheduledEventEnd, 0, 0, nil},
	{"ProviderPOStart", SegmentationTypeProviderPOStart, 1, 2, ptr(uint64(60 * 90000))},
	{"ProviderPOEnd", SegmentationTypeProviderPOEnd, 1, 2, nil},
}

const (
	spliceInsertHex = "fc302500000000000000fff01405000000017feffe2d142b00fe0123d3080001010100007f157a49"
	timeSignalHex   = "fc302700000000000000fff00506ff592d03c00011020f43554549000000017fbf000010010112ce0e6b"
)

func TestDecodeGoldenVectors(t *testing.T) {
	t.Parallel()
	for i, tc := range goldenDescriptors {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			sis, err := DecodeBytes(mustHex(t, goldenVectors[tc.name]))
			require.NoError(t, err)
			assert.Equal(t, uint32(3), sis.SAPType)
			assert.Equal(t, uint32(0xFFF), sis.Tier)
			require.NotNil(t, sis.SpliceCommand)

			descriptors, err := sis.Descriptors()
			require.NoError(t, err)
			require.Len(t, descriptors, 1)
			sd, ok := descriptors[0].(*SegmentationDescriptor)
			require.True(t, ok, "descriptor is %T", descriptors[0])
			assert.Equal(t, uint32(i+1), sd.SegmentationEventID)
			assert.Equal(t, tc.typeID, sd.SegmentationTypeID)
			assert.Equal(t, tc.segmentNum, sd.SegmentNum)
			assert.Equal(t, tc.segmentsExpected, sd.SegmentsExpected)
			assert.Equal(t, tc.duration, sd.SegmentationDuration)
			assert.Equal(t, NotUsedUpid{}, sd.SegmentationUpid)
			assert.Nil(t, sd.SubSegments)
		})
	}
}

func TestDecodeTimeSignalGolden(t *testing.T) {
	t.Parallel()
	sis, err := DecodeBytes(mustHex(t, goldenVectors["ProviderAdStart"]))
	require.NoError(t, err)

	ts, ok := sis.SpliceCommand.(*TimeSignal)
	require.True(t, ok, "command is %T", sis.SpliceCommand)
	require.NotNil(t, ts.SpliceTime.PTSTime)
	assert.Equal(t, uint64(900000), *ts.SpliceTime.PTSTime)
	assert.Equal(t, uint32(0x27), sis.SectionLength)
	assert.Equal(t, uint32(5), sis.SpliceCommandLength)
	assert.Equal(t, 17, sis.SpliceDescriptors.Len())
	assert.Equal(t, uint32(0xEE197D02), sis.CRC32)
}

func TestDecodeSpliceInsertProgram(t *testing.T) {
	t.Parallel()
	sis, err := DecodeBytes(mustHex(t, spliceInsertHex))
	require.NoError(t, err)

	assert.Equal(t, TableID, sis.TableID)
	assert.False(t, sis.SectionSyntaxIndicator)
	assert.False(t, sis.PrivateIndicator)
	assert.Equal(t, uint32(3), sis.SAPType)
	assert.Equal(t, uint32(0x25), sis.SectionLength)
	assert.Equal(t, EncryptionNone, sis.EncryptionAlgorithm)
	assert.Equal(t, uint64(0), sis.PTSAdjustment)
	assert.Equal(t, uint32(0xFFF), sis.Tier)
	assert.Equal(t, uint32(20), sis.SpliceCommandLength)
	assert.Equal(t, 0, sis.SpliceDescriptors.Len())
	assert.Equal(t, uint32(0x7F157A49), sis.CRC32)

	want := &SpliceInsert{
		SpliceEventID:         1,
		OutOfNetworkIndicator: true,
		ProgramSpliceFlag:     true,
		DurationFlag:          true,
		SpliceTime:            &SpliceTime{PTSTime: ptr(uint64(0x2D142B00))},
		BreakDuration:         &BreakDuration{AutoReturn: true, Duration: 0x0123D308},
		UniqueProgramID:       1,
		AvailNum:              1,
		AvailsExpected:        1,
	}
	assert.Equal(t, want, sis.SpliceCommand)
}

func TestDecodeTimeSignalWithDescriptor(t *testing.T) {
	t.Parallel()
	sis, err := DecodeBytes(mustHex(t, timeSignalHex))
	require.NoError(t, err)

	assert.Equal(t, &TimeSignal{SpliceTime: SpliceTime{PTSTime: ptr(uint64(0x1592D03C0))}}, sis.SpliceCommand)

	descriptors, err := sis.Descriptors()
	require.NoError(t, err)
	require.Len(t, descriptors, 1)
	sd, ok := descriptors[0].(*SegmentationDescriptor)
	require.True(t, ok)
	assert.Equal(t, SegmentationTypeProgramStart, sd.SegmentationTypeID)
	assert.Equal(t, "Program Start", sd.Name())
}

func TestDecodeSpliceInsertComponentImmediate(t *testing.T) {
	t.Parallel()
	sis, err := DecodeBytes(mustHex(t, goldenVectors["SpliceInsertOut"]))
	require.NoError(t, err)

	cmd, ok := sis.SpliceCommand.(*SpliceInsert)
	require.True(t, ok)
	assert.Equal(t, uint32(5), cmd.SpliceEventID)
	assert.True(t, cmd.OutOfNetworkIndicator)
	assert.False(t, cmd.ProgramSpliceFlag)
	assert.True(t, cmd.SpliceImmediateFlag)
	assert.Nil(t, cmd.SpliceTime)
	assert.Empty(t, cmd.Components)
	assert.Equal(t, &BreakDuration{AutoReturn: true, Duration: 90 * 90000}, cmd.BreakDuration)
}

func TestDecodeSpliceInsertCancel(t *testing.T) {
	t.Parallel()
	data := encodeSection(t, &SpliceInfoSection{
		SpliceCommand: &SpliceInsert{SpliceEventID: 9, SpliceEventCancelIndicator: true},
	})
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x09, 0xFF}, data[offCommand:offCommand+commandLength(data)])

	sis, err := DecodeBytes(data)
	require.NoError(t, err)
	cmd := sis.SpliceCommand.(*SpliceInsert)
	assert.Equal(t, &SpliceInsert{SpliceEventID: 9, SpliceEventCancelIndicator: true}, cmd)
	assert.Len(t, cmd.Fields(), 2)
}

func TestDecodeSpliceInsertComponents(t *testing.T) {
	t.Parallel()
	want := &SpliceInsert{
		SpliceEventID:         2,
		OutOfNetworkIndicator: true,
		Components: []SpliceInsertComponent{
			{ComponentTag: 1, SpliceTime: &SpliceTime{PTSTime: ptr(uint64(1000))}},
			{ComponentTag: 2, SpliceTime: &SpliceTime{}},
		},
		UniqueProgramID: 0x1234,
	}
	data := encodeSection(t, &SpliceInfoSection{SpliceCommand: want})
	// component 1 at PTS 1000, component 2 with time_specified_flag 0.
	assert.Equal(t, mustHex(t, "000000027f8f0201fe000003e8027f12340000"),
		data[offCommand:offCommand+commandLength(data)])

	sis, err := DecodeBytes(data)
	require.NoError(t, err)
	cmd := sis.SpliceCommand.(*SpliceInsert)
	assert.Equal(t, want, cmd)
	assert.Nil(t, cmd.SpliceTime)
}

func TestDecodeOtherCommands(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		cmd  SpliceCommand
		raw  string
	}{
		{"splice_null", &SpliceNull{}, ""},
		{"bandwidth_reservation", &BandwidthReservation{}, ""},
		{"private_command", &PrivateCommand{Identifier: CUEIdentifier, Payload: []byte{0x01, 0x02}}, "435545490102"},
		{"splice_schedule", &UnsupportedCommand{CommandType: SpliceScheduleType, Payload: []byte{0x01, 0x02, 0x03}}, "010203"},
		{"reserved", &UnsupportedCommand{CommandType: 0x42, Payload: []byte{0xAA, 0xBB}}, "aabb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			data := encodeSection(t, &SpliceInfoSection{Tier: 0xFFF, SpliceCommand: tt.cmd})
			assert.Equal(t, tt.raw, hex.EncodeToString(data[offCommand:offCommand+commandLength(data)]))

			sis, err := DecodeBytes(data)
			require.NoError(t, err)
			assert.Equal(t, tt.cmd, sis.SpliceCommand)
			assert.Equal(t, tt.name, CommandTypeName(sis.SpliceCommand.Type()))
		})
	}
}

func TestDecodePrivateCommandTooShort(t *testing.T) {
	t.Parallel()
	data := encodeSection(t, &SpliceInfoSection{
		SpliceCommand: &UnsupportedCommand{CommandType: PrivateCommandType, Payload: []byte{'C', 'U'}},
	})
	_, err := DecodeBytes(data)
	require.ErrorIs(t, err, ErrNotEnoughData)
	var nde *NotEnoughDataError
	require.ErrorAs(t, err, &nde)
	assert.Equal(t, "identifier", nde.Field)
}

func TestDecodeCommandUnderConsumption(t *testing.T) {
	t.Parallel()
	// time_signal with time_specified_flag 0 uses one byte; the second is
	// left unread.
	data := encodeSection(t, &SpliceInfoSection{
		SpliceCommand:     &UnsupportedCommand{CommandType: TimeSignalType, Payload: []byte{0x7F, 0xAA}},
		SpliceDescriptors: encodeLoop(t, &AvailDescriptor{ProviderAvailID: 7}),
	})
	sis, err := DecodeBytes(data)
	require.NoError(t, err)
	assert.Equal(t, &TimeSignal{}, sis.SpliceCommand)
	descriptors, err := sis.Descriptors()
	require.NoError(t, err)
	assert.Equal(t, []SpliceDescriptor{&AvailDescriptor{Identifier: CUEIdentifier, ProviderAvailID: 7}}, descriptors)
}

func TestDecodeCommandOverConsumption(t *testing.T) {
	t.Parallel()
	data := encodeSection(t, &SpliceInfoSection{
		SpliceCommand: &UnsupportedCommand{CommandType: TimeSignalType, Payload: []byte{0xFE}},
	})
	_, err := DecodeBytes(data)
	assert.ErrorIs(t, err, ErrNotEnoughData)
}

func TestDecodeCommandLengthOverrun(t *testing.T) {
	t.Parallel()
	data := encodeSection(t, &SpliceInfoSection{
		SpliceCommand: &TimeSignal{SpliceTime: SpliceTime{PTSTime: ptr(uint64(900000))}},
	})
	sis, err := DecodeBytes(setCommandLength(data, 100))
	assert.Nil(t, sis)
	require.ErrorIs(t, err, ErrInvalidLength)
	var ile *InvalidLengthError
	require.ErrorAs(t, err, &ile)
	assert.Equal(t, "splice_command_length", ile.Field)
	assert.Equal(t, 100, ile.Declared)
}

func TestDecodeDescriptorLoopLengthOverrun(t *testing.T) {
	t.Parallel()
	data := encodeSection(t, &SpliceInfoSection{SpliceCommand: &SpliceNull{}})
	_, err := DecodeBytes(setLoopLength(data, 50))
	var ile *InvalidLengthError
	require.ErrorAs(t, err, &ile)
	assert.Equal(t, "descriptor_loop_length", ile.Field)
}

func TestDecodeDescriptorFramingOverrun(t *testing.T) {
	t.Parallel()
	data := encodeSection(t, &SpliceInfoSection{
		SpliceCommand:     &SpliceNull{},
		SpliceDescriptors: encodeLoop(t, &AvailDescriptor{ProviderAvailID: 1}),
	})
	// descriptor_length claims 20 bytes; the loop holds 10.
	data[offCommand+2+1] = 20
	_, err := DecodeBytes(withCRC(data))
	assert.ErrorIs(t, err, ErrNotEnoughData)
}

func TestDecodeLegacyCommandLength(t *testing.T) {
	t.Parallel()
	want := &TimeSignal{SpliceTime: SpliceTime{PTSTime: ptr(uint64(900000))}}
	data := encodeSection(t, &SpliceInfoSection{
		SpliceCommandLength: 0xFFF,
		SpliceCommand:       want,
		SpliceDescriptors: encodeLoop(t, &SegmentationDescriptor{
			SegmentationEventID:     1,
			ProgramSegmentationFlag: true,
			SegmentationTypeID:      SegmentationTypeProviderAdStart,
			SegmentNum:              1,
			SegmentsExpected:        1,
		}),
	})
	assert.Equal(t, 0xFFF, commandLength(data))

	sis, err := DecodeBytes(data)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xFFF), sis.SpliceCommandLength)
	assert.Equal(t, want, sis.SpliceCommand)
	descriptors, err := sis.Descriptors()
	require.NoError(t, err)
	require.Len(t, descriptors, 1)
}

func TestDecodeLegacyCommandLengthNotSelfDelimiting(t *testing.T) {
	t.Parallel()
	data := encodeSection(t, &SpliceInfoSection{SpliceCommand: &PrivateCommand{Identifier: CUEIdentifier}})
	_, err := DecodeBytes(setCommandLength(data, 0xFFF))
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestDecodeAlignmentStuffing(t *testing.T) {
	t.Parallel()
	data := withStuffing(encodeSection(t, &SpliceInfoSection{SpliceCommand: &SpliceNull{}}), 0xFF, 0xFF, 0xFF)
	sis, err := DecodeBytes(data)
	require.NoError(t, err)
	assert.Equal(t, &SpliceNull{}, sis.SpliceCommand)
	assert.Equal(t, uint32(len(data)-sectionHeaderLength), sis.SectionLength)
}

func TestDecodeTrailingBytesIgnored(t *testing.T) {
	t.Parallel()
	data := append(mustHex(t, spliceInsertHex), 0xFF, 0xFF, 0xFF)
	sis, err := DecodeBytes(data)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x7F157A49), sis.CRC32)
}

func TestDecodeTruncated(t *testing.T) {
	t.Parallel()
	for _, s := range []string{spliceInsertHex, timeSignalHex, goldenVectors["DistributorAdStart"]} {
		data := mustHex(t, s)
		for n := 0; n < len(data); n++ {
			sis, err := DecodeBytes(data[:n])
			if !errors.Is(err, ErrNotEnoughData) {
				t.Errorf("prefix %d of %d: got %v, want ErrNotEnoughData", n, len(data), err)
			}
			if sis != nil {
				t.Errorf("prefix %d: got a section with an error", n)
			}
		}
	}
}

func TestDecodeBitFlips(t *testing.T) {
	t.Parallel()
	data := mustHex(t, timeSignalHex)
	for bit := 0; bit < len(data)*8; bit++ {
		corrupted := bytes.Clone(data)
		corrupted[bit/8] ^= 0x80 >> (bit % 8)
		sis, err := DecodeBytes(corrupted)
		if err == nil {
			t.Errorf("bit %d: decoded a corrupted section", bit)
			continue
		}
		if sis != nil {
			t.Errorf("bit %d: got a section with an error", bit)
		}
		// Only table_id (bits 0-7) and section_length (bits 12-23) flips
		// may fail before the CRC check.
		switch {
		case bit < 8:
			if !errors.Is(err, ErrInvalidTableID) {
				t.Errorf("bit %d: got %v, want ErrInvalidTableID", bit, err)
			}
		case bit >= 12 && bit < 24:
			// section_length moves the CRC or the end of the section.
			if !errors.Is(err, ErrNotEnoughData) && !errors.Is(err, ErrCRCMismatch) {
				t.Errorf("bit %d: got %v, want ErrNotEnoughData or ErrCRCMismatch", bit, err)
			}
		default:
			if !errors.Is(err, ErrCRCMismatch) {
				t.Errorf("bit %d: got %v, want ErrCRCMismatch", bit, err)
			}
		}
	}
}

func TestDecodeBadTableID(t *testing.T) {
	t.Parallel()
	data := mustHex(t, spliceInsertHex)
	data[0] = 0xFD
	sis, err := DecodeBytes(data)
	assert.Nil(t, sis)
	require.ErrorIs(t, err, ErrInvalidTableID)
	var te *TableIDError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, uint32(0xFD), te.TableID)
}

func TestDecodeSectionLengthTooSmall(t *testing.T) {
	t.Parallel()
	_, err := DecodeBytes([]byte{0xFC, 0x30, 0x02, 0x00, 0x00})
	var ile *InvalidLengthError
	require.ErrorAs(t, err, &ile)
	assert.Equal(t, "section_length", ile.Field)
}

func TestDecodeEncrypted(t *testing.T) {
	t.Parallel()
	data := setEncrypted(encodeSection(t, &SpliceInfoSection{SpliceCommand: &SpliceNull{}}), EncryptionDESECB)
	sis, err := DecodeBytes(data)
	assert.Nil(t, sis)
	require.ErrorIs(t, err, ErrUnsupportedEncryption)
	var ue *UnsupportedEncryptionError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, EncryptionDESECB, ue.Algorithm)
}

func TestDecodeToleratesHeaderFlags(t *testing.T) {
	t.Parallel()
	data := mustHex(t, spliceInsertHex)
	data[1] |= 0xC0 // section_syntax_indicator, private_indicator
	data[3] = 0x01  // protocol_version
	sis, err := DecodeBytes(withCRC(data))
	require.NoError(t, err)
	assert.True(t, sis.SectionSyntaxIndicator)
	assert.True(t, sis.PrivateIndicator)
	assert.Equal(t, uint32(1), sis.ProtocolVersion)
}

func TestDecodeHeaderFields(t *testing.T) {
	t.Parallel()
	data := encodeSection(t, &SpliceInfoSection{
		SAPType:       1,
		PTSAdjustment: 0x1FFFFFFFF,
		CWIndex:       0x42,
		Tier:          0xABC,
		SpliceCommand: &SpliceNull{},
	})
	sis, err := DecodeBytes(data)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), sis.SAPType)
	assert.Equal(t, uint64(0x1FFFFFFFF), sis.PTSAdjustment)
	assert.Equal(t, uint32(0x42), sis.CWIndex)
	assert.Equal(t, uint32(0xABC), sis.Tier)
}

func TestDecodeOwnsItsData(t *testing.T) {
	t.Parallel()
	data := encodeSection(t, &SpliceInfoSection{
		SpliceCommand:     &PrivateCommand{Identifier: CUEIdentifier, Payload: []byte{0x01}},
		SpliceDescriptors: encodeLoop(t, &AvailDescriptor{ProviderAvailID: 1}),
	})
	sis, err := DecodeBytes(data)
	require.NoError(t, err)
	for i := range data {
		data[i] = 0
	}
	assert.Equal(t, []byte{0x01}, sis.SpliceCommand.(*PrivateCommand).Payload)
	descriptors, err := sis.Descriptors()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), descriptors[0].(*AvailDescriptor).ProviderAvailID)
}

func TestIsSCTE35(t *testing.T) {
	t.Parallel()
	tests := []struct {
		streamType uint8
		want       bool
	}{
		{0x86, true},
		{0x00, false},
		{0x06, false},
		{0x1B, false},
	}
	for _, tt := range tests {
		if got := IsSCTE35(tt.streamType); got != tt.want {
			t.Errorf("IsSCTE35(0x%02X) = %v, want %v", tt.streamType, got, tt.want)
		}
	}
}

func TestEncryptionAlgorithmString(t *testing.T) {
	t.Parallel()
	tests := map[EncryptionAlgorithm]string{
		EncryptionNone:             "none",
		EncryptionDESECB:           "DES-ECB",
		EncryptionDESCBC:           "DES-CBC",
		EncryptionTripleDESEDE3ECB: "3DES-EDE3-ECB",
		4:                          "reserved(4)",
		40:                         "private(40)",
	}
	for alg, want := range tests {
		if got := alg.String(); got != want {
			t.Errorf("EncryptionAlgorithm(%d).String() = %q, want %q", uint32(alg), got, want)
		}
	}
}

func TestSectionFields(t *testing.T) {
	t.Parallel()
	sis, err := DecodeBytes(mustHex(t, timeSignalHex))
	require.NoError(t, err)

	fs := sis.Fields()
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.Name
	}
	assert.Equal(t, []string{
		"table_id", "section_syntax_indicator", "private_indicator", "sap_type",
		"section_length", "protocol_version", "encrypted_packet", "encryption_algorithm",
		"pts_adjustment", "cw_index", "tier", "splice_command_length",
		"splice_command_type", "time_signal", "descriptor_loop_length",
		"splice_descriptors", "CRC_32",
	}, names)

	cmd, _ := fs.Get("time_signal")
	spliceTime, _ := cmd.(Fields).Get("splice_time")
	pts, ok := spliceTime.(Fields).Get("pts_time")
	require.True(t, ok)
	assert.Equal(t, uint64(0x1592D03C0), pts)

	descriptors, _ := fs.Get("splice_descriptors")
	require.Len(t, descriptors, 1)
	sd, ok := descriptors.([]Fields)[0].Get("segmentation_descriptor")
	require.True(t, ok)
	typeID, _ := sd.(Fields).Get("segmentation_type_id")
	assert.Equal(t, SegmentationTypeProgramStart, typeID)
}

func TestSectionLogValue(t *testing.T) {
	t.Parallel()
	sis, err := DecodeBytes(mustHex(t, timeSignalHex))
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	logger.Info("cue", "scte35", sis)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	section, ok := record["scte35"].(map[string]any)
	require.True(t, ok, "scte35 is %T", record["scte35"])
	assert.EqualValues(t, 0xFC, section["table_id"])
	ts := section["time_signal"].(map[string]any)["splice_time"].(map[string]any)
	assert.EqualValues(t, 0x1592D03C0, ts["pts_time"])
	descriptors := section["splice_descriptors"].(map[string]any)
	sd := descriptors["0"].(map[string]any)["segmentation_descriptor"].(map[string]any)
	assert.EqualValues(t, 0x10, sd["segmentation_type_id"])
}
