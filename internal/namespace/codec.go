package namespace

import (
	"encoding/binary"
	"fmt"
)

// encode serializes entries into the versioned, length-prefixed blob
// described in SPEC_FULL.md §4.5:
//
//	u8      version
//	u32 LE  entry_count
//	  per entry: kind(u8) used(u8) name_len(u16 LE) name path_len(u16 LE) path content_len(u32 LE) content
func encode(entries []Entry) []byte {
	buf := make([]byte, 0, 64*len(entries)+5)
	buf = append(buf, namespaceBlobVersion)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(entries)))

	for _, e := range entries {
		buf = append(buf, byte(e.Kind))
		buf = append(buf, boolByte(e.Used))
		buf = appendLenPrefixed16(buf, []byte(e.Name))
		buf = appendLenPrefixed16(buf, []byte(e.Path))
		buf = appendLenPrefixed32(buf, e.Content)
	}
	return buf
}

// decode is the inverse of encode. It returns an error on any
// malformed framing; callers treat that as region corruption
// (spec.md §4.5's loading path, §7 Corrupt).
func decode(blob []byte) ([]Entry, error) {
	if len(blob) < 5 {
		return nil, fmt.Errorf("namespace: blob too short: %d bytes", len(blob))
	}
	if blob[0] != namespaceBlobVersion {
		return nil, fmt.Errorf("namespace: unsupported blob version %d", blob[0])
	}

	count := binary.LittleEndian.Uint32(blob[1:5])
	rest := blob[5:]

	entries := make([]Entry, 0, count)
	for i := uint32(0); i < count; i++ {
		var e Entry
		var err error

		if len(rest) < 2 {
			return nil, fmt.Errorf("namespace: truncated entry header at record %d", i)
		}
		e.Kind = Kind(rest[0])
		e.Used = rest[1] != 0
		rest = rest[2:]

		e.Name, rest, err = readLenPrefixed16(rest)
		if err != nil {
			return nil, fmt.Errorf("namespace: record %d: %w", i, err)
		}
		e.Path, rest, err = readLenPrefixed16(rest)
		if err != nil {
			return nil, fmt.Errorf("namespace: record %d: %w", i, err)
		}

		var content []byte
		content, rest, err = readLenPrefixed32(rest)
		if err != nil {
			return nil, fmt.Errorf("namespace: record %d: %w", i, err)
		}
		e.Content = content

		entries = append(entries, e)
	}

	return entries, nil
}

const namespaceBlobVersion = 1

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func appendLenPrefixed16(buf, data []byte) []byte {
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(data)))
	return append(buf, data...)
}

func appendLenPrefixed32(buf, data []byte) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(data)))
	return append(buf, data...)
}

func readLenPrefixed16(buf []byte) (string, []byte, error) {
	if len(buf) < 2 {
		return "", nil, fmt.Errorf("truncated length prefix")
	}
	n := int(binary.LittleEndian.Uint16(buf))
	buf = buf[2:]
	if len(buf) < n {
		return "", nil, fmt.Errorf("truncated field: need %d bytes, have %d", n, len(buf))
	}
	return string(buf[:n]), buf[n:], nil
}

func readLenPrefixed32(buf []byte) ([]byte, []byte, error) {
	if len(buf) < 4 {
		return nil, nil, fmt.Errorf("truncated length prefix")
	}
	n := int(binary.LittleEndian.Uint32(buf))
	buf = buf[4:]
	if len(buf) < n {
		return nil, nil, fmt.Errorf("truncated field: need %d bytes, have %d", n, len(buf))
	}
	return append([]byte(nil), buf[:n]...), buf[n:], nil
}
