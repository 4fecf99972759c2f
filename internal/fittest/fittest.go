// Package fittest builds synthetic FIT files for tests. It is the only
// place in the repository that produces FIT bytes; the tool itself never
// writes the format.
package fittest

import (
	"encoding/binary"

	"github.com/cwbooth5/filefitness/pkg/fit"
)

// Builder accumulates record bytes and assembles a complete file with a
// valid header and trailing checksum.
type Builder struct {
	records []byte
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{}
}

// DefineRecord writes a little-endian definition message for the record
// message (global 20) under the given local type, with a heart_rate (uint8)
// and a power (uint16) field.
func (b *Builder) DefineRecord(local byte) *Builder {
	b.records = append(b.records,
		0x40|local, // definition header
		0, 0,       // reserved, little-endian
		20, 0, // global message number
		2,           // field count
		3, 1, 0x02, // heart_rate: uint8
		7, 2, 0x84, // power: uint16
	)
	return b
}

// DefineRecordBigEndian is DefineRecord with big-endian architecture.
func (b *Builder) DefineRecordBigEndian(local byte) *Builder {
	b.records = append(b.records,
		0x40|local,
		0, 1, // reserved, big-endian
		0, 20, // global message number
		2,
		3, 1, 0x02,
		7, 2, 0x84,
	)
	return b
}

// DefineRecordWithDevField writes a definition like DefineRecord plus one
// developer field of the given size.
func (b *Builder) DefineRecordWithDevField(local, devSize byte) *Builder {
	b.records = append(b.records,
		0x60|local, // definition header with developer data flag
		0, 0,
		20, 0,
		2,
		3, 1, 0x02,
		7, 2, 0x84,
		1,              // developer field count
		0, devSize, 13, // dev field 0, opaque bytes
	)
	return b
}

// Record writes one little-endian data message with the given heart rate
// and power. A heart rate of 0xFF is the uint8 invalid sentinel.
func (b *Builder) Record(local, hr byte, power uint16) *Builder {
	var p [2]byte
	binary.LittleEndian.PutUint16(p[:], power)
	b.records = append(b.records, local, hr, p[0], p[1])
	return b
}

// RecordBigEndian writes one data message for a big-endian definition.
func (b *Builder) RecordBigEndian(local, hr byte, power uint16) *Builder {
	var p [2]byte
	binary.BigEndian.PutUint16(p[:], power)
	b.records = append(b.records, local, hr, p[0], p[1])
	return b
}

// RecordWithDevField writes one data message carrying dev bytes after the
// profile fields.
func (b *Builder) RecordWithDevField(local, hr byte, power uint16, dev []byte) *Builder {
	b.Record(local, hr, power)
	b.records = append(b.records, dev...)
	return b
}

// Raw appends arbitrary record bytes.
func (b *Builder) Raw(raw ...byte) *Builder {
	b.records = append(b.records, raw...)
	return b
}

// Bytes assembles the 14-byte header, the accumulated records, and the
// trailing CRC.
func (b *Builder) Bytes() []byte {
	header := make([]byte, 14)
	header[0] = 14
	header[1] = 0x20 // protocol 2.0
	binary.LittleEndian.PutUint16(header[2:4], 2140)
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(b.records)))
	copy(header[8:12], ".FIT")
	binary.LittleEndian.PutUint16(header[12:14], fit.Checksum(header[:12]))

	out := append(header, b.records...)
	var crc [2]byte
	binary.LittleEndian.PutUint16(crc[:], fit.Checksum(out))
	return append(out, crc[:]...)
}
