package scope

import (
	"encoding/binary"

	"github.com/lsp-relay/lsp-relay-go/pkg/relayErrors"
)

// MaxCompactEntryLength is the largest entry a 2-byte length prefix can describe.
const MaxCompactEntryLength = 0xffff

// EncodeCompactBytesArray prefixes each entry with its 2-byte big-endian length and concatenates them.
// An empty list encodes to an empty byte string.
func EncodeCompactBytesArray(entries [][]byte) ([]byte, error) {
	size := 0
	for i, e := range entries {
		if len(e) > MaxCompactEntryLength {
			return nil, relayErrors.NewInvalidInput("compact bytes array entry %d is %d bytes, max %d", i, len(e), MaxCompactEntryLength)
		}
		size += 2 + len(e)
	}

	out := make([]byte, 0, size)
	for _, e := range entries {
		out = binary.BigEndian.AppendUint16(out, uint16(len(e)))
		out = append(out, e...)
	}
	return out, nil
}

// DecodeCompactBytesArray splits a CompactBytesArray into its entries.
func DecodeCompactBytesArray(data []byte) ([][]byte, error) {
	entries := make([][]byte, 0)
	for offset := 0; offset < len(data); {
		if len(data)-offset < 2 {
			return nil, relayErrors.NewInvalidInput("compact bytes array truncated at offset %d", offset)
		}
		length := int(binary.BigEndian.Uint16(data[offset : offset+2]))
		offset += 2
		if len(data)-offset < length {
			return nil, relayErrors.NewInvalidInput("compact bytes array entry at offset %d declares %d bytes, %d remain", offset-2, length, len(data)-offset)
		}
		entry := make([]byte, length)
		copy(entry, data[offset:offset+length])
		entries = append(entries, entry)
		offset += length
	}
	return entries, nil
}
