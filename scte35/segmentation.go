package scte35

// Segmentation type constants per SCTE-35 Table 22.
const (
	SegmentationTypeNotIndicated              uint32 = 0x00
	SegmentationTypeContentIdentification     uint32 = 0x01
	SegmentationTypeProgramStart              uint32 = 0x10
	SegmentationTypeProgramEnd                uint32 = 0x11
	SegmentationTypeProgramEarlyTermination   uint32 = 0x12
	SegmentationTypeProgramBreakaway          uint32 = 0x13
	SegmentationTypeProgramResumption         uint32 = 0x14
	SegmentationTypeProgramRunoverPlanned     uint32 = 0x15
	SegmentationTypeProgramRunoverUnplanned   uint32 = 0x16
	SegmentationTypeProgramOverlapStart       uint32 = 0x17
	SegmentationTypeProgramBlackoutOverride   uint32 = 0x18
	SegmentationTypeProgramStartInProgress    uint32 = 0x19
	SegmentationTypeChapterStart              uint32 = 0x20
	SegmentationTypeChapterEnd                uint32 = 0x21
	SegmentationTypeBreakStart                uint32 = 0x22
	SegmentationTypeBreakEnd                  uint32 = 0x23
	SegmentationTypeOpeningCreditStart        uint32 = 0x24
	SegmentationTypeOpeningCreditEnd          uint32 = 0x25
	SegmentationTypeClosingCreditStart        uint32 = 0x26
	SegmentationTypeClosingCreditEnd          uint32 = 0x27
	SegmentationTypeProviderAdStart           uint32 = 0x30
	SegmentationTypeProviderAdEnd             uint32 = 0x31
	SegmentationTypeDistributorAdStart        uint32 = 0x32
	SegmentationTypeDistributorAdEnd          uint32 = 0x33
	SegmentationTypeProviderPOStart           uint32 = 0x34
	SegmentationTypeProviderPOEnd             uint32 = 0x35
	SegmentationTypeDistributorPOStart        uint32 = 0x36
	SegmentationTypeDistributorPOEnd          uint32 = 0x37
	SegmentationTypeProviderOverlayPOStart    uint32 = 0x38
	SegmentationTypeProviderOverlayPOEnd      uint32 = 0x39
	SegmentationTypeDistributorOverlayPOStart uint32 = 0x3a
	SegmentationTypeDistributorOverlayPOEnd   uint32 = 0x3b
	SegmentationTypeProviderPromoStart        uint32 = 0x3c
	SegmentationTypeProviderPromoEnd          uint32 = 0x3d
	SegmentationTypeDistributorPromoStart     uint32 = 0x3e
	SegmentationTypeDistributorPromoEnd       uint32 = 0x3f
	SegmentationTypeUnscheduledEventStart     uint32 = 0x40
	SegmentationTypeUnscheduledEventEnd       uint32 = 0x41
	SegmentationTypeAltConOppStart            uint32 = 0x42
	SegmentationTypeAltConOppEnd              uint32 = 0x43
	SegmentationTypeProviderAdBlockStart      uint32 = 0x44
	SegmentationTypeProviderAdBlockEnd        uint32 = 0x45
	SegmentationTypeDistributorAdBlockStart   uint32 = 0x46
	SegmentationTypeDistributorAdBlockEnd     uint32 = 0x47
	SegmentationTypeNetworkStart              uint32 = 0x50
	SegmentationTypeNetworkEnd                uint32 = 0x51
)

var segmentationTypeNames = map[uint32]string{
	SegmentationTypeNotIndicated:              "Not Indicated",
	SegmentationTypeContentIdentification:     "Content Identification",
	SegmentationTypeProgramStart:              "Program Start",
	SegmentationTypeProgramEnd:                "Program End",
	SegmentationTypeProgramEarlyTermination:   "Program Early Termination",
	SegmentationTypeProgramBreakaway:          "Program Breakaway",
	SegmentationTypeProgramResumption:         "Program Resumption",
	SegmentationTypeProgramRunoverPlanned:     "Program Runover Planned",
	SegmentationTypeProgramRunoverUnplanned:   "Program Runover Unplanned",
	SegmentationTypeProgramOverlapStart:       "Program Overlap Start",
	SegmentationTypeProgramBlackoutOverride:   "Program Blackout Override",
	SegmentationTypeProgramStartInProgress:    "Program Start - In Progress",
	SegmentationTypeChapterStart:              "Chapter Start",
	SegmentationTypeChapterEnd:                "Chapter End",
	SegmentationTypeBreakStart:                "Break Start",
	SegmentationTypeBreakEnd:                  "Break End",
	SegmentationTypeOpeningCreditStart:        "Opening Credit Start",
	SegmentationTypeOpeningCreditEnd:          "Opening Credit End",
	SegmentationTypeClosingCreditStart:        "Closing Credit Start",
	SegmentationTypeClosingCreditEnd:          "Closing Credit End",
	SegmentationTypeProviderAdStart:           "Provider Advertisement Start",
	SegmentationTypeProviderAdEnd:             "Provider Advertisement End",
	SegmentationTypeDistributorAdStart:        "Distributor Advertisement Start",
	SegmentationTypeDistributorAdEnd:          "Distributor Advertisement End",
	SegmentationTypeProviderPOStart:           "Provider Placement Opportunity Start",
	SegmentationTypeProviderPOEnd:             "Provider Placement Opportunity End",
	SegmentationTypeDistributorPOStart:        "Distributor Placement Opportunity Start",
	SegmentationTypeDistributorPOEnd:          "Distributor Placement Opportunity End",
	SegmentationTypeProviderOverlayPOStart:    "Provider Overlay Placement Opportunity Start",
	SegmentationTypeProviderOverlayPOEnd:      "Provider Overlay Placement Opportunity End",
	SegmentationTypeDistributorOverlayPOStart: "Distributor Overlay Placement Opportunity Start",
	SegmentationTypeDistributorOverlayPOEnd:   "Distributor Overlay Placement Opportunity End",
	SegmentationTypeProviderPromoStart:        "Provider Promo Start",
	SegmentationTypeProviderPromoEnd:          "Provider Promo End",
	SegmentationTypeDistributorPromoStart:     "Distributor Promo Start",
	SegmentationTypeDistributorPromoEnd:       "Distributor Promo End",
	SegmentationTypeUnscheduledEventStart:     "Unscheduled Event Start",
	SegmentationTypeUnscheduledEventEnd:       "Unscheduled Event End",
	SegmentationTypeAltConOppStart:            "Alternate Content Opportunity Start",
	SegmentationTypeAltConOppEnd:              "Alternate Content Opportunity End",
	SegmentationTypeProviderAdBlockStart:      "Provider Ad Block Start",
	SegmentationTypeProviderAdBlockEnd:        "Provider Ad Block End",
	SegmentationTypeDistributorAdBlockStart:   "Distributor Ad Block Start",
	SegmentationTypeDistributorAdBlockEnd:     "Distributor Ad Block End",
	SegmentationTypeNetworkStart:              "Network Start",
	SegmentationTypeNetworkEnd:                "Network End",
}

// SegmentationTypeName returns a human-readable name for a
// segmentation_type_id, or "Unknown".
func SegmentationTypeName(id uint32) string {
	if name, ok := segmentationTypeNames[id]; ok {
		return name
	}
	return "Unknown"
}

// SegmentationDescriptor carries segmentation information per SCTE-35 10.3.3.
//
// A cancelled descriptor carries only Identifier, SegmentationEventID and
// the two indicators. On encode segmentation_duration_flag and
// delivery_not_restricted_flag follow SegmentationDuration and
// DeliveryRestrictions, and a nil SegmentationUpid is written as not used.
type SegmentationDescriptor struct {
	Identifier                             uint32
	SegmentationEventID                    uint32
	SegmentationEventCancelIndicator       bool
	SegmentationEventIDComplianceIndicator bool
	ProgramSegmentationFlag                bool
	SegmentationDurationFlag               bool
	DeliveryNotRestrictedFlag              bool
	DeliveryRestrictions                   *DeliveryRestrictions
	Components                             []SegmentationComponent
	SegmentationDuration                   *uint64 // 40 bits, 90 kHz
	SegmentationUpid                       SegmentationUpid
	SegmentationTypeID                     uint32
	SegmentNum                             uint32
	SegmentsExpected                       uint32
	SubSegments                            *SubSegments
}

// DeliveryRestrictions is present when delivery_not_restricted_flag is 0.
type DeliveryRestrictions struct {
	WebDeliveryAllowed bool
	NoRegionalBlackout bool
	ArchiveAllowed     bool
	DeviceRestrictions uint32
}

func (dr DeliveryRestrictions) Fields() Fields {
	return Fields{
		{"web_delivery_allowed_flag", dr.WebDeliveryAllowed},
		{"no_regional_blackout_flag", dr.NoRegionalBlackout},
		{"archive_allowed_flag", dr.ArchiveAllowed},
		{"device_restrictions", dr.DeviceRestrictions},
	}
}

// SegmentationComponent is one entry of a component segmentation.
type SegmentationComponent struct {
	ComponentTag uint32
	PTSOffset    uint64
}

func (c SegmentationComponent) Fields() Fields {
	return Fields{
		{"component_tag", c.ComponentTag},
		{"pts_offset", c.PTSOffset},
	}
}

// SubSegments is the optional sub_segment_num/sub_segments_expected pair.
type SubSegments struct {
	SubSegmentNum       uint32
	SubSegmentsExpected uint32
}

func (s SubSegments) Fields() Fields {
	return Fields{
		{"sub_segment_num", s.SubSegmentNum},
		{"sub_segments_expected", s.SubSegmentsExpected},
	}
}

// Tag returns the splice_descriptor_tag.
func (sd *SegmentationDescriptor) Tag() uint32 {
	return SegmentationDescriptorTag
}

// Name returns a human-readable name for the segmentation type.
func (sd *SegmentationDescriptor) Name() string {
	return SegmentationTypeName(sd.SegmentationTypeID)
}

func (sd *SegmentationDescriptor) decode(r *bitReader) error {
	var err error
	if sd.Identifier, err = r.readUint32("identifier", 32); err != nil {
		return err
	}
	if sd.SegmentationEventID, err = r.readUint32("segmentation_event_id", 32); err != nil {
		return err
	}
	if sd.SegmentationEventCancelIndicator, err = r.readBit("segmentation_event_cancel_indicator"); err != nil {
		return err
	}
	if sd.SegmentationEventIDComplianceIndicator, err = r.readBit("segmentation_event_id_compliance_indicator"); err != nil {
		return err
	}
	if err = r.skip("reserved", 6); err != nil {
		return err
	}
	if sd.SegmentationEventCancelIndicator {
		return nil
	}

	if sd.ProgramSegmentationFlag, err = r.readBit("program_segmentation_flag"); err != nil {
		return err
	}
	if sd.SegmentationDurationFlag, err = r.readBit("segmentation_duration_flag"); err != nil {
		return err
	}
	if sd.DeliveryNotRestrictedFlag, err = r.readBit("delivery_not_restricted_flag"); err != nil {
		return err
	}
	if sd.DeliveryNotRestrictedFlag {
		if err = r.skip("reserved", 5); err != nil {
			return err
		}
	} else {
		sd.DeliveryRestrictions = &DeliveryRestrictions{}
		if err = sd.DeliveryRestrictions.decode(r); err != nil {
			return err
		}
	}

	if !sd.ProgramSegmentationFlag {
		if err = sd.decodeComponents(r); err != nil {
			return err
		}
	}

	if sd.SegmentationDurationFlag {
		dur, err := r.readUint64("segmentation_duration", 40)
		if err != nil {
			return err
		}
		sd.SegmentationDuration = &dur
	}

	upidType, err := r.readUint32("segmentation_upid_type", 8)
	if err != nil {
		return err
	}
	upidLength, err := r.readUint32("segmentation_upid_length", 8)
	if err != nil {
		return err
	}
	if int(upidLength) > r.bytesLeft() {
		return &InvalidLengthError{
			Field:     "segmentation_upid_length",
			Declared:  int(upidLength),
			Available: r.bytesLeft(),
		}
	}
	upidReader, err := r.sub("segmentation_upid", int(upidLength))
	if err != nil {
		return err
	}
	if sd.SegmentationUpid, err = decodeUpid(upidType, upidReader); err != nil {
		return err
	}

	if sd.SegmentationTypeID, err = r.readUint32("segmentation_type_id", 8); err != nil {
		return err
	}
	if sd.SegmentNum, err = r.readUint32("segment_num", 8); err != nil {
		return err
	}
	if sd.SegmentsExpected, err = r.readUint32("segments_expected", 8); err != nil {
		return err
	}

	// sub_segment_num and sub_segments_expected are present only when bytes
	// remain in the descriptor.
	if r.bytesLeft() == 0 {
		return nil
	}
	sub := &SubSegments{}
	if sub.SubSegmentNum, err = r.readUint32("sub_segment_num", 8); err != nil {
		return err
	}
	if sub.SubSegmentsExpected, err = r.readUint32("sub_segments_expected", 8); err != nil {
		return err
	}
	sd.SubSegments = sub
	return nil
}

func (dr *DeliveryRestrictions) decode(r *bitReader) error {
	var err error
	if dr.WebDeliveryAllowed, err = r.readBit("web_delivery_allowed_flag"); err != nil {
		return err
	}
	if dr.NoRegionalBlackout, err = r.readBit("no_regional_blackout_flag"); err != nil {
		return err
	}
	if dr.ArchiveAllowed, err = r.readBit("archive_allowed_flag"); err != nil {
		return err
	}
	dr.DeviceRestrictions, err = r.readUint32("device_restrictions", 2)
	return err
}

func (sd *SegmentationDescriptor) encode(w *bitWriter) {
	w.putUint32("identifier", 32, CUEIdentifier)
	w.putUint32("segmentation_event_id", 32, sd.SegmentationEventID)
	w.putBit(sd.SegmentationEventCancelIndicator)
	w.putBit(sd.SegmentationEventIDComplianceIndicator)
	w.putReserved(6)
	if sd.SegmentationEventCancelIndicator {
		return
	}

	w.putBit(sd.ProgramSegmentationFlag)
	w.putBit(sd.SegmentationDuration != nil)
	w.putBit(sd.DeliveryRestrictions == nil)
	if sd.DeliveryRestrictions == nil {
		w.putReserved(5)
	} else {
		sd.DeliveryRestrictions.encode(w)
	}

	if !sd.ProgramSegmentationFlag {
		w.putUint64("component_count", 8, uint64(len(sd.Components)))
		for _, c := range sd.Components {
			w.putUint32("component_tag", 8, c.ComponentTag)
			w.putReserved(7)
			w.putUint64("pts_offset", 33, c.PTSOffset)
		}
	}
	if sd.SegmentationDuration != nil {
		w.putUint64("segmentation_duration", 40, *sd.SegmentationDuration)
	}

	encodeUpid(w, sd.SegmentationUpid)

	w.putUint32("segmentation_type_id", 8, sd.SegmentationTypeID)
	w.putUint32("segment_num", 8, sd.SegmentNum)
	w.putUint32("segments_expected", 8, sd.SegmentsExpected)
	if sd.SubSegments != nil {
		w.putUint32("sub_segment_num", 8, sd.SubSegments.SubSegmentNum)
		w.putUint32("sub_segments_expected", 8, sd.SubSegments.SubSegmentsExpected)
	}
}

func (dr *DeliveryRestrictions) encode(w *bitWriter) {
	w.putBit(dr.WebDeliveryAllowed)
	w.putBit(dr.NoRegionalBlackout)
	w.putBit(dr.ArchiveAllowed)
	w.putUint32("device_restrictions", 2, dr.DeviceRestrictions)
}

func (sd *SegmentationDescriptor) decodeComponents(r *bitReader) error {
	count, err := r.readUint32("component_count", 8)
	if err != nil {
		return err
	}
	sd.Components = make([]SegmentationComponent, 0, count)
	for i := uint32(0); i < count; i++ {
		var c SegmentationComponent
		if c.ComponentTag, err = r.readUint32("component_tag", 8); err != nil {
			return err
		}
		if err = r.skip("reserved", 7); err != nil {
			return err
		}
		if c.PTSOffset, err = r.readUint64("pts_offset", 33); err != nil {
			return err
		}
		sd.Components = append(sd.Components, c)
	}
	return nil
}

func (sd *SegmentationDescriptor) Fields() Fields {
	fs := Fields{
		{"identifier", sd.Identifier},
		{"segmentation_event_id", sd.SegmentationEventID},
		{"segmentation_event_cancel_indicator", sd.SegmentationEventCancelIndicator},
		{"segmentation_event_id_compliance_indicator", sd.SegmentationEventIDComplianceIndicator},
	}
	if sd.SegmentationEventCancelIndicator {
		return fs
	}
	fs = append(fs,
		Field{"program_segmentation_flag", sd.ProgramSegmentationFlag},
		Field{"segmentation_duration_flag", sd.SegmentationDurationFlag},
		Field{"delivery_not_restricted_flag", sd.DeliveryNotRestrictedFlag},
	)
	if sd.DeliveryRestrictions != nil {
		fs = append(fs, Field{"delivery_restrictions", sd.DeliveryRestrictions.Fields()})
	}
	if !sd.ProgramSegmentationFlag {
		fs = append(fs,
			Field{"component_count", uint32(len(sd.Components))},
			Field{"components", fieldsOf(sd.Components)},
		)
	}
	if sd.SegmentationDuration != nil {
		fs = append(fs, Field{"segmentation_duration", *sd.SegmentationDuration})
	}
	if sd.SegmentationUpid != nil {
		fs = append(fs,
			Field{"segmentation_upid_type", sd.SegmentationUpid.UpidType()},
			Field{"segmentation_upid", sd.SegmentationUpid.Fields()},
		)
	}
	fs = append(fs,
		Field{"segmentation_type_id", sd.SegmentationTypeID},
		Field{"segment_num", sd.SegmentNum},
		Field{"segments_expected", sd.SegmentsExpected},
	)
	if sd.SubSegments != nil {
		fs = append(fs, Field{"sub_segments", sd.SubSegments.Fields()})
	}
	return fs
}
