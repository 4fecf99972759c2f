package fit

import (
	"encoding/binary"
	"fmt"
)

const (
	headerSizeMin = 12 // legacy header without its own checksum
	headerSizeCRC = 14 // header with a trailing CRC over the first 12 bytes
)

// Header is the fixed-size preamble of a FIT file.
type Header struct {
	Size            uint8
	ProtocolVersion uint8
	ProfileVersion  uint16
	DataSize        uint32 // bytes of record data between header and trailing CRC
	CRC             uint16 // 0 when absent or unset
}

// decodeHeader parses and validates the file header. Zero-length, short, or
// otherwise malformed headers report ErrHeader; a present-but-wrong header
// checksum reports ErrCRC.
func decodeHeader(data []byte) (Header, error) {
	var h Header
	if len(data) < headerSizeMin {
		return h, fmt.Errorf("%w: %d bytes is too short for a header", ErrHeader, len(data))
	}

	h.Size = data[0]
	if h.Size != headerSizeMin && h.Size != headerSizeCRC {
		return h, fmt.Errorf("%w: header size %d", ErrHeader, h.Size)
	}
	if int(h.Size) > len(data) {
		return h, fmt.Errorf("%w: file shorter than header size %d", ErrHeader, h.Size)
	}
	if string(data[8:12]) != ".FIT" {
		return h, fmt.Errorf("%w: missing .FIT marker", ErrHeader)
	}

	h.ProtocolVersion = data[1]
	h.ProfileVersion = binary.LittleEndian.Uint16(data[2:4])
	h.DataSize = binary.LittleEndian.Uint32(data[4:8])

	if h.Size == headerSizeCRC {
		h.CRC = binary.LittleEndian.Uint16(data[12:14])
		// A zero header CRC means "not computed" and is legal.
		if h.CRC != 0 {
			if got := Checksum(data[:12]); got != h.CRC {
				return h, fmt.Errorf("%w: header checksum %#04x, want %#04x", ErrCRC, got, h.CRC)
			}
		}
	}

	return h, nil
}
