package fit

// Global message numbers from the FIT profile that the integrity check
// cares about.
const (
	MsgFileID uint16 = 0
	MsgRecord uint16 = 20
)

// recordFieldNames maps field definition numbers of the record message
// (global 20) to their profile names. Only the commonly encountered sensor
// fields are listed; unnamed fields decode fine but carry an empty Name.
var recordFieldNames = map[byte]string{
	0:  "position_lat",
	1:  "position_long",
	2:  "altitude",
	3:  "heart_rate",
	4:  "cadence",
	5:  "distance",
	6:  "speed",
	7:  "power",
	13: "temperature",
}

// Message is one decoded data message.
type Message struct {
	GlobalNum uint16
	Fields    []Field
}

// Field is one decoded field of a data message. Value is only meaningful for
// integer base types; Valid is false when the field held the base type's
// invalid sentinel, an array, or a non-integer type.
type Field struct {
	Num   byte
	Name  string
	Value int64
	Valid bool
}
