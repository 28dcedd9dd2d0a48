package scte35

// TimeSignal provides a time-synchronized data delivery mechanism.
type TimeSignal struct {
	SpliceTime SpliceTime
}

func (cmd *TimeSignal) Type() uint32 { return TimeSignalType }

func (cmd *TimeSignal) decode(r *bitReader) error {
	return cmd.SpliceTime.decode(r)
}

func (cmd *TimeSignal) encode(w *bitWriter) {
	cmd.SpliceTime.encode(w)
}

func (cmd *TimeSignal) Fields() Fields {
	return Fields{{"splice_time", cmd.SpliceTime.Fields()}}
}
