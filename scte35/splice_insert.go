package scte35

// SpliceInsert signals a splice point in the stream.
//
// When SpliceEventCancelIndicator is set only SpliceEventID is carried and
// every other field keeps its zero value. On encode duration_flag follows
// BreakDuration, and a missing SpliceTime is written as unspecified.
type SpliceInsert struct {
	SpliceEventID              uint32
	SpliceEventCancelIndicator bool
	OutOfNetworkIndicator      bool
	ProgramSpliceFlag          bool
	DurationFlag               bool
	SpliceImmediateFlag        bool
	SpliceTime                 *SpliceTime // program splice, not immediate
	Components                 []SpliceInsertComponent
	BreakDuration              *BreakDuration
	UniqueProgramID            uint32
	AvailNum                   uint32
	AvailsExpected             uint32
}

// SpliceInsertComponent is one entry of a component splice. SpliceTime is
// nil when the splice is immediate.
type SpliceInsertComponent struct {
	ComponentTag uint32
	SpliceTime   *SpliceTime
}

func (c SpliceInsertComponent) Fields() Fields {
	fs := Fields{{"component_tag", c.ComponentTag}}
	if c.SpliceTime != nil {
		fs = append(fs, Field{"splice_time", c.SpliceTime.Fields()})
	}
	return fs
}

func (cmd *SpliceInsert) Type() uint32 { return SpliceInsertType }

func (cmd *SpliceInsert) decode(r *bitReader) error {
	var err error
	if cmd.SpliceEventID, err = r.readUint32("splice_event_id", 32); err != nil {
		return err
	}
	if cmd.SpliceEventCancelIndicator, err = r.readBit("splice_event_cancel_indicator"); err != nil {
		return err
	}
	if err = r.skip("reserved", 7); err != nil {
		return err
	}
	if cmd.SpliceEventCancelIndicator {
		return nil
	}

	if cmd.OutOfNetworkIndicator, err = r.readBit("out_of_network_indicator"); err != nil {
		return err
	}
	if cmd.ProgramSpliceFlag, err = r.readBit("program_splice_flag"); err != nil {
		return err
	}
	if cmd.DurationFlag, err = r.readBit("duration_flag"); err != nil {
		return err
	}
	if cmd.SpliceImmediateFlag, err = r.readBit("splice_immediate_flag"); err != nil {
		return err
	}
	if err = r.skip("reserved", 4); err != nil {
		return err
	}

	if cmd.ProgramSpliceFlag {
		if !cmd.SpliceImmediateFlag {
			cmd.SpliceTime = &SpliceTime{}
			if err = cmd.SpliceTime.decode(r); err != nil {
				return err
			}
		}
	} else {
		componentCount, err := r.readUint32("component_count", 8)
		if err != nil {
			return err
		}
		cmd.Components = make([]SpliceInsertComponent, 0, componentCount)
		for i := uint32(0); i < componentCount; i++ {
			var c SpliceInsertComponent
			if c.ComponentTag, err = r.readUint32("component_tag", 8); err != nil {
				return err
			}
			if !cmd.SpliceImmediateFlag {
				c.SpliceTime = &SpliceTime{}
				if err = c.SpliceTime.decode(r); err != nil {
					return err
				}
			}
			cmd.Components = append(cmd.Components, c)
		}
	}

	if cmd.DurationFlag {
		cmd.BreakDuration = &BreakDuration{}
		if err = cmd.BreakDuration.decode(r); err != nil {
			return err
		}
	}
	if cmd.UniqueProgramID, err = r.readUint32("unique_program_id", 16); err != nil {
		return err
	}
	if cmd.AvailNum, err = r.readUint32("avail_num", 8); err != nil {
		return err
	}
	cmd.AvailsExpected, err = r.readUint32("avails_expected", 8)
	return err
}

func (cmd *SpliceInsert) encode(w *bitWriter) {
	w.putUint32("splice_event_id", 32, cmd.SpliceEventID)
	w.putBit(cmd.SpliceEventCancelIndicator)
	w.putReserved(7)
	if cmd.SpliceEventCancelIndicator {
		return
	}

	w.putBit(cmd.OutOfNetworkIndicator)
	w.putBit(cmd.ProgramSpliceFlag)
	w.putBit(cmd.BreakDuration != nil)
	w.putBit(cmd.SpliceImmediateFlag)
	w.putReserved(4)

	if cmd.ProgramSpliceFlag {
		if !cmd.SpliceImmediateFlag {
			cmd.SpliceTime.encode(w)
		}
	} else {
		w.putUint64("component_count", 8, uint64(len(cmd.Components)))
		for _, c := range cmd.Components {
			w.putUint32("component_tag", 8, c.ComponentTag)
			if !cmd.SpliceImmediateFlag {
				c.SpliceTime.encode(w)
			}
		}
	}

	if cmd.BreakDuration != nil {
		cmd.BreakDuration.encode(w)
	}
	w.putUint32("unique_program_id", 16, cmd.UniqueProgramID)
	w.putUint32("avail_num", 8, cmd.AvailNum)
	w.putUint32("avails_expected", 8, cmd.AvailsExpected)
}

func (cmd *SpliceInsert) Fields() Fields {
	fs := Fields{
		{"splice_event_id", cmd.SpliceEventID},
		{"splice_event_cancel_indicator", cmd.SpliceEventCancelIndicator},
	}
	if cmd.SpliceEventCancelIndicator {
		return fs
	}
	fs = append(fs,
		Field{"out_of_network_indicator", cmd.OutOfNetworkIndicator},
		Field{"program_splice_flag", cmd.ProgramSpliceFlag},
		Field{"duration_flag", cmd.DurationFlag},
		Field{"splice_immediate_flag", cmd.SpliceImmediateFlag},
	)
	if cmd.SpliceTime != nil {
		fs = append(fs, Field{"splice_time", cmd.SpliceTime.Fields()})
	}
	if !cmd.ProgramSpliceFlag {
		fs = append(fs,
			Field{"component_count", uint32(len(cmd.Components))},
			Field{"components", fieldsOf(cmd.Components)},
		)
	}
	if cmd.BreakDuration != nil {
		fs = append(fs, Field{"break_duration", cmd.BreakDuration.Fields()})
	}
	return append(fs,
		Field{"unique_program_id", cmd.UniqueProgramID},
		Field{"avail_num", cmd.AvailNum},
		Field{"avails_expected", cmd.AvailsExpected},
	)
}
