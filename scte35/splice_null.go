package scte35

// SpliceNull is a no-op command used as a heartbeat.
type SpliceNull struct{}

func (cmd *SpliceNull) Type() uint32 { return SpliceNullType }

func (cmd *SpliceNull) decode(_ *bitReader) error { return nil }

func (cmd *SpliceNull) encode(_ *bitWriter) {}

func (cmd *SpliceNull) Fields() Fields { return Fields{} }
