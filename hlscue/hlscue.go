// Package hlscue extracts SCTE-35 cues carried in HLS media playlists.
//
// Cues are read from #EXT-OATCLS-SCTE35 and #EXT-SCTE35 tags as parsed by
// github.com/grafov/m3u8, decoded with scte35.DecodeBytes and summarized
// into an Event per segment. EncodeCue produces the payload for writing a
// cue back into a playlist.
package hlscue

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/grafov/m3u8"
	"github.com/zsiec/scte35/scte35"
)

// ErrNotMediaPlaylist is returned by Decode for master playlists.
var ErrNotMediaPlaylist = errors.New("hlscue: not a media playlist")

// Cue is one decoded SCTE-35 cue and the segment that carried it.
type Cue struct {
	SeqID   uint64
	URI     string
	Syntax  m3u8.SCTE35Syntax
	CueType m3u8.SCTE35CueType
	Section *scte35.SpliceInfoSection
	Event   Event
}

// Extractor pulls cues out of playlists. It is safe for concurrent use.
type Extractor struct {
	log    *slog.Logger
	strict bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger. A nil logger means slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(e *Extractor) {
		if log != nil {
			e.log = log
		}
	}
}

// WithStrict enables strict playlist parsing.
func WithStrict(strict bool) Option {
	return func(e *Extractor) { e.strict = strict }
}

// NewExtractor creates an Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{log: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With("component", "hlscue")
	return e
}

// Decode parses a media playlist from r and returns its cues in segment
// order.
func (e *Extractor) Decode(r io.Reader) ([]Cue, error) {
	playlist, listType, err := m3u8.DecodeFrom(r, e.strict)
	if err != nil {
		return nil, fmt.Errorf("hlscue: parsing playlist: %w", err)
	}
	if listType != m3u8.MEDIA {
		return nil, ErrNotMediaPlaylist
	}
	mediaPlaylist, ok := playlist.(*m3u8.MediaPlaylist)
	if !ok {
		return nil, ErrNotMediaPlaylist
	}
	return e.FromPlaylist(mediaPlaylist), nil
}

// FromPlaylist returns the cues of an already parsed media playlist.
// Segments whose cue cannot be decoded are logged and skipped.
func (e *Extractor) FromPlaylist(p *m3u8.MediaPlaylist) []Cue {
	var cues []Cue
	for _, seg := range p.Segments {
		if seg == nil {
			break
		}
		if seg.SCTE == nil || seg.SCTE.Cue == "" {
			continue
		}
		sis, err := DecodeCue(seg.SCTE.Cue)
		if err != nil {
			e.log.Warn("failed to decode SCTE-35 cue", "seq", seg.SeqId, "uri", seg.URI, "error", err)
			continue
		}
		event := Summarize(sis)
		e.log.Debug("SCTE-35", "seq", seg.SeqId, "command", event.CommandType,
			"desc", event.Description, "eventID", event.EventID)
		cues = append(cues, Cue{
			SeqID:   seg.SeqId,
			URI:     seg.URI,
			Syntax:  seg.SCTE.Syntax,
			CueType: seg.SCTE.CueType,
			Section: sis,
			Event:   event,
		})
	}
	return cues
}

// DecodeCue decodes a cue payload as it appears in a playlist tag: base64,
// or hex with a 0x prefix.
func DecodeCue(payload string) (*scte35.SpliceInfoSection, error) {
	payload = strings.TrimSpace(payload)
	var (
		raw []byte
		err error
	)
	if len(payload) > 2 && (payload[:2] == "0x" || payload[:2] == "0X") {
		raw, err = hex.DecodeString(payload[2:])
	} else {
		raw, err = base64.StdEncoding.DecodeString(payload)
	}
	if err != nil {
		return nil, fmt.Errorf("hlscue: decoding cue payload: %w", err)
	}
	return scte35.DecodeBytes(raw)
}

// EncodeCue encodes a section as the base64 payload carried by
// #EXT-OATCLS-SCTE35 and #EXT-SCTE35 tags.
func EncodeCue(sis *scte35.SpliceInfoSection) (string, error) {
	raw, err := sis.Encode()
	if err != nil {
		return "", fmt.Errorf("hlscue: encoding cue: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
