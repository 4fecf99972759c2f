package fit

// Nibble lookup table from the FIT SDK CRC-16 algorithm.
var crcTable = [16]uint16{
	0x0000, 0xCC01, 0xD801, 0x1400, 0xF001, 0x3C00, 0x2800, 0xE401,
	0xA001, 0x6C00, 0x7800, 0xB401, 0x5000, 0x9C01, 0x8801, 0x4400,
}

// Checksum computes the FIT CRC-16 of data, processing one nibble at a time.
// Both the optional header checksum and the trailing file checksum use it.
func Checksum(data []byte) uint16 {
	var crc uint16
	for _, b := range data {
		tmp := crcTable[crc&0x0F]
		crc = (crc >> 4) & 0x0FFF
		crc = crc ^ tmp ^ crcTable[b&0x0F]
		tmp = crcTable[crc&0x0F]
		crc = (crc >> 4) & 0x0FFF
		crc = crc ^ tmp ^ crcTable[(b>>4)&0x0F]
	}
	return crc
}
