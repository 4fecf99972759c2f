// Package fit decodes the FIT binary activity container far enough to judge
// its structural integrity: header, definition and data records, and the
// CRC-protected framing. Field values are decoded for integer base types
// only; this is a reader, never a writer.
package fit

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// The classified ways a FIT file can fail to decode. Callers distinguish
// them with errors.Is.
var (
	ErrHeader        = errors.New("fit: invalid file header")
	ErrCRC           = errors.New("fit: checksum mismatch")
	ErrUnexpectedEOF = errors.New("fit: unexpected end of stream")
	ErrFormat        = errors.New("fit: malformed record")
)

// FIT base type identifiers. The high bit flags multi-byte types.
const (
	baseEnum    = 0x00
	baseSint8   = 0x01
	baseUint8   = 0x02
	baseString  = 0x07
	baseUint8z  = 0x0A
	baseByte    = 0x0D
	baseSint16  = 0x83
	baseUint16  = 0x84
	baseSint32  = 0x85
	baseUint32  = 0x86
	baseFloat32 = 0x88
	baseFloat64 = 0x89
	baseUint16z = 0x8B
	baseUint32z = 0x8C
	baseSint64  = 0x8E
	baseUint64  = 0x8F
	baseUint64z = 0x90
)

// File is a fully decoded FIT file.
type File struct {
	Header   Header
	Messages []Message
}

// Decode parses a complete FIT file held in memory. The header is validated
// first, then every record in the data section is decoded, and finally the
// trailing CRC is checked against the bytes that precede it.
func Decode(data []byte) (*File, error) {
	hdr, err := decodeHeader(data)
	if err != nil {
		return nil, err
	}

	end := int(hdr.Size) + int(hdr.DataSize)
	if end+2 > len(data) {
		return nil, fmt.Errorf("%w: file shorter than declared data size %d", ErrUnexpectedEOF, hdr.DataSize)
	}
	want := binary.LittleEndian.Uint16(data[end : end+2])
	if got := Checksum(data[:end]); got != want {
		return nil, fmt.Errorf("%w: file checksum %#04x, want %#04x", ErrCRC, got, want)
	}

	f := &File{Header: hdr}
	d := &decoder{data: data[int(hdr.Size):end], defs: make(map[byte]*definition)}
	for !d.done() {
		msg, err := d.next()
		if err != nil {
			return nil, err
		}
		if msg != nil {
			f.Messages = append(f.Messages, *msg)
		}
	}
	return f, nil
}

// fieldDef is one field slot of a definition message.
type fieldDef struct {
	num      byte
	size     byte
	baseType byte
}

// definition is the decoded layout for one local message type.
type definition struct {
	globalNum uint16
	bigEndian bool
	fields    []fieldDef
	devFields []fieldDef
}

type decoder struct {
	data []byte
	off  int
	defs map[byte]*definition
}

func (d *decoder) done() bool { return d.off >= len(d.data) }

func (d *decoder) readByte() (byte, error) {
	if d.off >= len(d.data) {
		return 0, fmt.Errorf("%w: at offset %d", ErrUnexpectedEOF, d.off)
	}
	b := d.data[d.off]
	d.off++
	return b, nil
}

func (d *decoder) readBytes(n int) ([]byte, error) {
	if d.off+n > len(d.data) {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrUnexpectedEOF, n, d.off, len(d.data)-d.off)
	}
	raw := d.data[d.off : d.off+n]
	d.off += n
	return raw, nil
}

// next decodes one record. Definition messages update the local type table
// and return a nil Message.
func (d *decoder) next() (*Message, error) {
	hdr, err := d.readByte()
	if err != nil {
		return nil, err
	}

	// Compressed timestamp header: bits 5-6 carry the local type, always a
	// data message.
	if hdr&0x80 != 0 {
		return d.dataMessage((hdr >> 5) & 0x03)
	}

	local := hdr & 0x0F
	if hdr&0x40 != 0 {
		return nil, d.definitionMessage(local, hdr&0x20 != 0)
	}
	return d.dataMessage(local)
}

func (d *decoder) definitionMessage(local byte, hasDevFields bool) error {
	raw, err := d.readBytes(5) // reserved, architecture, global number, field count
	if err != nil {
		return err
	}
	arch := raw[1]
	if arch > 1 {
		return fmt.Errorf("%w: architecture %d", ErrFormat, arch)
	}

	def := &definition{bigEndian: arch == 1}
	if def.bigEndian {
		def.globalNum = binary.BigEndian.Uint16(raw[2:4])
	} else {
		def.globalNum = binary.LittleEndian.Uint16(raw[2:4])
	}

	for i := 0; i < int(raw[4]); i++ {
		fd, err := d.readBytes(3)
		if err != nil {
			return err
		}
		if fd[1] == 0 {
			return fmt.Errorf("%w: zero-length field %d in definition for global %d", ErrFormat, fd[0], def.globalNum)
		}
		def.fields = append(def.fields, fieldDef{num: fd[0], size: fd[1], baseType: fd[2]})
	}

	if hasDevFields {
		count, err := d.readByte()
		if err != nil {
			return err
		}
		for i := 0; i < int(count); i++ {
			fd, err := d.readBytes(3)
			if err != nil {
				return err
			}
			def.devFields = append(def.devFields, fieldDef{num: fd[0], size: fd[1], baseType: fd[2]})
		}
	}

	d.defs[local] = def
	return nil
}

func (d *decoder) dataMessage(local byte) (*Message, error) {
	def, ok := d.defs[local]
	if !ok {
		return nil, fmt.Errorf("%w: data message references undefined local type %d", ErrFormat, local)
	}

	msg := &Message{GlobalNum: def.globalNum}
	for _, fd := range def.fields {
		raw, err := d.readBytes(int(fd.size))
		if err != nil {
			return nil, err
		}
		field := decodeField(fd, raw, def.bigEndian)
		if def.globalNum == MsgRecord {
			field.Name = recordFieldNames[fd.num]
		}
		msg.Fields = append(msg.Fields, field)
	}

	// Developer fields are consumed but not decoded; their meaning lives in
	// field description messages this checker does not track.
	for _, fd := range def.devFields {
		if _, err := d.readBytes(int(fd.size)); err != nil {
			return nil, err
		}
	}
	return msg, nil
}

// decodeField interprets raw bytes for integer base types. A size that does
// not match the base type (arrays), an invalid sentinel value, or a
// non-integer type leaves Valid false.
func decodeField(fd fieldDef, raw []byte, bigEndian bool) Field {
	f := Field{Num: fd.num}
	var order binary.ByteOrder = binary.LittleEndian
	if bigEndian {
		order = binary.BigEndian
	}

	switch fd.baseType {
	case baseEnum, baseUint8:
		if len(raw) != 1 {
			return f
		}
		f.Value, f.Valid = int64(raw[0]), raw[0] != 0xFF
	case baseUint8z:
		if len(raw) != 1 {
			return f
		}
		f.Value, f.Valid = int64(raw[0]), raw[0] != 0
	case baseSint8:
		if len(raw) != 1 {
			return f
		}
		f.Value, f.Valid = int64(int8(raw[0])), raw[0] != 0x7F
	case baseUint16:
		if len(raw) != 2 {
			return f
		}
		v := order.Uint16(raw)
		f.Value, f.Valid = int64(v), v != 0xFFFF
	case baseUint16z:
		if len(raw) != 2 {
			return f
		}
		v := order.Uint16(raw)
		f.Value, f.Valid = int64(v), v != 0
	case baseSint16:
		if len(raw) != 2 {
			return f
		}
		v := int16(order.Uint16(raw))
		f.Value, f.Valid = int64(v), v != 0x7FFF
	case baseUint32:
		if len(raw) != 4 {
			return f
		}
		v := order.Uint32(raw)
		f.Value, f.Valid = int64(v), v != 0xFFFFFFFF
	case baseUint32z:
		if len(raw) != 4 {
			return f
		}
		v := order.Uint32(raw)
		f.Value, f.Valid = int64(v), v != 0
	case baseSint32:
		if len(raw) != 4 {
			return f
		}
		v := int32(order.Uint32(raw))
		f.Value, f.Valid = int64(v), v != 0x7FFFFFFF
	case baseSint64:
		if len(raw) != 8 {
			return f
		}
		v := int64(order.Uint64(raw))
		f.Value, f.Valid = v, v != 0x7FFFFFFFFFFFFFFF
	case baseUint64:
		if len(raw) != 8 {
			return f
		}
		v := order.Uint64(raw)
		f.Value, f.Valid = int64(v), v != 0xFFFFFFFFFFFFFFFF
	case baseUint64z:
		if len(raw) != 8 {
			return f
		}
		v := order.Uint64(raw)
		f.Value, f.Valid = int64(v), v != 0
	}
	return f
}
