package engine

import (
	"bytes"
	"encoding/binary"

	"github.com/bytedance/sonic"
	"github.com/cespare/xxhash/v2"
	crerr "github.com/cockroachdb/errors"
	"github.com/golang/snappy"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/footy-career/internal/domain/career"
)

// Save layout: magic | format version | xxhash64(payload) | payload,
// where payload is snappy-compressed JSON with sorted map keys.
const (
	saveMagic     = "FCSV"
	FormatVersion = 1
	headerSize    = len(saveMagic) + 1 + 8

	// MaxDecodedSave bounds the decompressed payload a save may declare.
	MaxDecodedSave = 32 << 20
)

var codecBuffers bytebufferpool.Pool

// Serialize encodes a state into save bytes. Equal states always produce equal bytes.
func Serialize(s State) ([]byte, error) {
	raw, err := sonic.ConfigStd.Marshal(s)
	if err != nil {
		return nil, crerr.Wrap(err, "encode state")
	}
	payload := snappy.Encode(nil, raw)

	buf := codecBuffers.Get()
	defer codecBuffers.Put(buf)

	_, _ = buf.WriteString(saveMagic)
	_ = buf.WriteByte(FormatVersion)
	var sum [8]byte
	binary.BigEndian.PutUint64(sum[:], xxhash.Sum64(payload))
	_, _ = buf.Write(sum[:])
	_, _ = buf.Write(payload)

	return bytes.Clone(buf.B), nil
}

// Deserialize decodes save bytes. Any malformed input is reported as a corrupt save.
func Deserialize(data []byte) (State, error) {
	if len(data) < headerSize {
		return State{}, crerr.Wrapf(career.ErrCorruptSave, "save is %d bytes, header needs %d", len(data), headerSize)
	}
	if string(data[:len(saveMagic)]) != saveMagic {
		return State{}, crerr.Wrap(career.ErrCorruptSave, "bad magic")
	}
	if v := data[len(saveMagic)]; v != FormatVersion {
		return State{}, crerr.Wrapf(career.ErrCorruptSave, "unsupported format version %d", v)
	}

	want := binary.BigEndian.Uint64(data[len(saveMagic)+1 : headerSize])
	payload := data[headerSize:]
	if got := xxhash.Sum64(payload); got != want {
		return State{}, crerr.Wrapf(career.ErrCorruptSave, "checksum mismatch %016x != %016x", got, want)
	}

	size, err := snappy.DecodedLen(payload)
	if err != nil {
		return State{}, crerr.Mark(crerr.Wrap(err, "decompress save"), career.ErrCorruptSave)
	}
	if size > MaxDecodedSave {
		return State{}, crerr.Wrapf(career.ErrCorruptSave, "save declares %d decoded bytes, limit is %d", size, MaxDecodedSave)
	}
	raw, err := snappy.Decode(nil, payload)
	if err != nil {
		return State{}, crerr.Mark(crerr.Wrap(err, "decompress save"), career.ErrCorruptSave)
	}
	var s State
	if err := sonic.ConfigStd.Unmarshal(raw, &s); err != nil {
		return State{}, crerr.Mark(crerr.Wrap(err, "decode save"), career.ErrCorruptSave)
	}
	if err := s.Validate(); err != nil {
		return State{}, crerr.Mark(crerr.Wrap(err, "invalid save"), career.ErrCorruptSave)
	}
	return s, nil
}
