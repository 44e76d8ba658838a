package zorton

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"
)

// PackCompression indicates the codec used for the report payload.
type PackCompression uint8

const (
	PackCompNone PackCompression = 0
	PackCompZlib PackCompression = 1
	PackCompZstd PackCompression = 2
)

const (
	packMagicStr  = "ZBREPORT"
	packVersion1  = 1
	packHeaderLen = len(packMagicStr) + 2 + 8
)

func (c PackCompression) String() string {
	switch c {
	case PackCompNone:
		return "none"
	case PackCompZlib:
		return "zlib"
	case PackCompZstd:
		return "zstd"
	}
	return fmt.Sprintf("compression(%d)", uint8(c))
}

// ParseCompression maps a config name to a codec.
func ParseCompression(s string) (PackCompression, error) {
	switch s {
	case "", "zstd":
		return PackCompZstd, nil
	case "zlib":
		return PackCompZlib, nil
	case "none":
		return PackCompNone, nil
	}
	return 0, fmt.Errorf("unsupported compression %q", s)
}

// IsPacked reports whether data starts with the container magic.
func IsPacked(data []byte) bool {
	return len(data) >= len(packMagicStr) && string(data[:len(packMagicStr)]) == packMagicStr
}

// MarshalPacked encodes the report as JSON and wraps it in a container:
// magic, version, codec, xxhash64 of the JSON, payload.
func MarshalPacked(r *Report, comp PackCompression) ([]byte, error) {
	content, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var payload []byte
	switch comp {
	case PackCompNone:
		payload = content
	case PackCompZlib:
		var buf bytes.Buffer
		zw, _ := zlib.NewWriterLevel(&buf, zlib.BestCompression)
		if _, err := zw.Write(content); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		payload = buf.Bytes()
	case PackCompZstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			return nil, err
		}
		payload = enc.EncodeAll(content, nil)
		_ = enc.Close()
	default:
		return nil, fmt.Errorf("compression not supported: %d", comp)
	}

	var out bytes.Buffer
	out.Grow(packHeaderLen + len(payload))
	out.WriteString(packMagicStr)
	out.WriteByte(packVersion1)
	out.WriteByte(byte(comp))
	_ = binary.Write(&out, binary.BigEndian, xxhash.Sum64(content))
	out.Write(payload)
	return out.Bytes(), nil
}

// UnmarshalPacked reverses MarshalPacked and verifies the checksum.
func UnmarshalPacked(data []byte) (*Report, PackCompression, error) {
	if len(data) < packHeaderLen || !IsPacked(data) {
		return nil, 0, ErrBadContainer
	}
	pos := len(packMagicStr)
	if v := data[pos]; v != packVersion1 {
		return nil, 0, fmt.Errorf("%w: version %d", ErrBadContainer, v)
	}
	comp := PackCompression(data[pos+1])
	sum := binary.BigEndian.Uint64(data[pos+2:])
	payload := data[packHeaderLen:]

	var content []byte
	switch comp {
	case PackCompNone:
		content = payload
	case PackCompZlib:
		zr, err := zlib.NewReader(bytes.NewReader(payload))
		if err != nil {
			return nil, 0, err
		}
		defer zr.Close()
		content, err = io.ReadAll(zr)
		if err != nil {
			return nil, 0, err
		}
	case PackCompZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, 0, err
		}
		defer dec.Close()
		content, err = dec.DecodeAll(payload, nil)
		if err != nil {
			return nil, 0, err
		}
	default:
		return nil, 0, fmt.Errorf("%w: compression %d", ErrBadContainer, comp)
	}
	if xxhash.Sum64(content) != sum {
		return nil, 0, ErrChecksum
	}
	var r Report
	if err := json.Unmarshal(content, &r); err != nil {
		return nil, 0, fmt.Errorf("decode report: %w", err)
	}
	return &r, comp, nil
}
