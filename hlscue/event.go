package hlscue

import (
	"github.com/zsiec/scte35/scte35"
)

// Event is a flat summary of one splice_info_section: the command, and the
// first segmentation_descriptor if there is one. Durations are in seconds.
type Event struct {
	PTS                int64   `json:"pts"`
	CommandType        string  `json:"commandType"`
	CommandTypeID      uint32  `json:"commandTypeId"`
	EventID            uint32  `json:"eventId,omitempty"`
	SegmentationType   string  `json:"segmentationType,omitempty"`
	SegmentationTypeID uint32  `json:"segmentationTypeId,omitempty"`
	UpidType           string  `json:"upidType,omitempty"`
	Duration           float64 `json:"duration,omitempty"`
	OutOfNetwork       bool    `json:"outOfNetwork,omitempty"`
	Immediate          bool    `json:"immediate,omitempty"`
	Cancelled          bool    `json:"cancelled,omitempty"`
	Description        string  `json:"description"`
	DescriptorError    string  `json:"descriptorError,omitempty"`
}

// Summarize reduces a decoded section to an Event. Descriptors after one
// that fails to decode are not examined; the failure is kept in
// DescriptorError.
func Summarize(sis *scte35.SpliceInfoSection) Event {
	var event Event
	if sis == nil || sis.SpliceCommand == nil {
		return event
	}

	event.CommandTypeID = sis.SpliceCommand.Type()
	event.CommandType = scte35.CommandTypeName(event.CommandTypeID)
	switch cmd := sis.SpliceCommand.(type) {
	case *scte35.SpliceInsert:
		event.EventID = cmd.SpliceEventID
		event.Cancelled = cmd.SpliceEventCancelIndicator
		event.OutOfNetwork = cmd.OutOfNetworkIndicator
		event.Immediate = cmd.SpliceImmediateFlag
		if cmd.SpliceTime != nil && cmd.SpliceTime.PTSTime != nil {
			event.PTS = int64(*cmd.SpliceTime.PTSTime)
		}
		if cmd.BreakDuration != nil {
			event.Duration = float64(cmd.BreakDuration.Duration) / 90000.0
		}
		switch {
		case event.Cancelled:
			event.Description = "Splice Cancelled"
		case event.OutOfNetwork:
			event.Description = "Splice Out (Ad Insertion)"
		default:
			event.Description = "Splice In (Return to Program)"
		}
	case *scte35.TimeSignal:
		if cmd.SpliceTime.PTSTime != nil {
			event.PTS = int64(*cmd.SpliceTime.PTSTime)
		}
		event.Description = "Time Signal"
	case *scte35.SpliceNull:
		event.Description = "Heartbeat"
	case *scte35.BandwidthReservation:
		event.Description = "Bandwidth Reservation"
	case *scte35.PrivateCommand:
		event.Description = "Private Command"
	default:
		event.Description = "Unknown Command"
	}

	for desc, err := range sis.SpliceDescriptors.All() {
		if err != nil {
			event.DescriptorError = err.Error()
			break
		}
		sd, ok := desc.(*scte35.SegmentationDescriptor)
		if !ok {
			continue
		}
		event.EventID = sd.SegmentationEventID
		if sd.SegmentationEventCancelIndicator {
			event.Cancelled = true
			event.Description = "Segmentation Cancelled"
			break
		}
		event.SegmentationTypeID = sd.SegmentationTypeID
		event.SegmentationType = sd.Name()
		if sd.SegmentationUpid != nil {
			event.UpidType = scte35.UpidTypeName(sd.SegmentationUpid.UpidType())
		}
		if sd.SegmentationDuration != nil {
			event.Duration = float64(*sd.SegmentationDuration) / 90000.0
		}
		event.Description = sd.Name()
		break
	}
	return event
}
