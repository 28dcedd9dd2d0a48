package scte35

import "fmt"

// BandwidthReservation reserves bandwidth in a multiplex. It has no payload.
type BandwidthReservation struct{}

func (cmd *BandwidthReservation) Type() uint32 { return BandwidthReservationType }

func (cmd *BandwidthReservation) decode(_ *bitReader) error { return nil }

func (cmd *BandwidthReservation) encode(_ *bitWriter) {}

func (cmd *BandwidthReservation) Fields() Fields { return Fields{} }

// PrivateCommand carries a registered identifier followed by private bytes
// taking up the rest of splice_command_length.
type PrivateCommand struct {
	Identifier uint32
	Payload    []byte
}

func (cmd *PrivateCommand) Type() uint32 { return PrivateCommandType }

func (cmd *PrivateCommand) decode(r *bitReader) error {
	var err error
	if cmd.Identifier, err = r.readUint32("identifier", 32); err != nil {
		return err
	}
	cmd.Payload, err = r.readBytes("private_byte", r.bytesLeft())
	return err
}

func (cmd *PrivateCommand) encode(w *bitWriter) {
	w.putUint32("identifier", 32, cmd.Identifier)
	w.putBytes(cmd.Payload)
}

func (cmd *PrivateCommand) Fields() Fields {
	return Fields{
		{"identifier", cmd.Identifier},
		{"private_bytes", cmd.Payload},
	}
}

// UnsupportedCommand holds the undecoded payload of a splice_schedule or a
// reserved command type. It encodes as its payload, unchanged.
type UnsupportedCommand struct {
	CommandType uint32
	Payload     []byte
}

func (cmd *UnsupportedCommand) Type() uint32 { return cmd.CommandType }

func (cmd *UnsupportedCommand) decode(r *bitReader) error {
	var err error
	cmd.Payload, err = r.readBytes("splice_command", r.bytesLeft())
	return err
}

func (cmd *UnsupportedCommand) encode(w *bitWriter) {
	w.putBytes(cmd.Payload)
}

func (cmd *UnsupportedCommand) Fields() Fields {
	return Fields{{"payload", cmd.Payload}}
}

// decodeSpliceCommand decodes a command from r, which spans exactly the
// declared command bytes. Bytes the command grammar does not use are left
// unread.
func decodeSpliceCommand(cmdType uint32, r *bitReader) (SpliceCommand, error) {
	var cmd SpliceCommand
	switch cmdType {
	case SpliceNullType:
		cmd = &SpliceNull{}
	case SpliceInsertType:
		cmd = &SpliceInsert{}
	case TimeSignalType:
		cmd = &TimeSignal{}
	case BandwidthReservationType:
		cmd = &BandwidthReservation{}
	case PrivateCommandType:
		cmd = &PrivateCommand{}
	default:
		// splice_schedule and reserved types.
		cmd = &UnsupportedCommand{CommandType: cmdType}
	}
	if err := cmd.decode(r); err != nil {
		return nil, fmt.Errorf("scte35: decoding command type 0x%02X: %w", cmdType, err)
	}
	return cmd, nil
}
