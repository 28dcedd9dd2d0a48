package scte35

import (
	"encoding/hex"
	"log/slog"
	"strconv"
)

// Field is one named value of a decoded structure. Value is a bool, an
// unsigned integer, a string, a []byte, a nested Fields or a []Fields.
type Field struct {
	Name  string
	Value any
}

// Fields is an ordered field-name/value tree. Field order follows the
// order of the syntax elements on the wire. Optional elements that were
// not present are omitted.
type Fields []Field

// Get returns the value of the first field called name.
func (fs Fields) Get(name string) (any, bool) {
	for _, f := range fs {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// LogValue renders the tree as nested slog groups. Byte slices are hex
// encoded and []Fields become groups keyed by index.
func (fs Fields) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(fs))
	for _, f := range fs {
		attrs = append(attrs, slog.Attr{Key: f.Name, Value: fieldLogValue(f.Value)})
	}
	return slog.GroupValue(attrs...)
}

func fieldLogValue(v any) slog.Value {
	switch v := v.(type) {
	case Fields:
		return v.LogValue()
	case []Fields:
		attrs := make([]slog.Attr, len(v))
		for i, item := range v {
			attrs[i] = slog.Attr{Key: strconv.Itoa(i), Value: item.LogValue()}
		}
		return slog.GroupValue(attrs...)
	case []byte:
		return slog.StringValue(hex.EncodeToString(v))
	default:
		return slog.AnyValue(v)
	}
}

// fielder is implemented by every decoded entity.
type fielder interface {
	Fields() Fields
}

func fieldsOf[T fielder](items []T) []Fields {
	out := make([]Fields, len(items))
	for i, item := range items {
		out[i] = item.Fields()
	}
	return out
}
