package check

import (
	"errors"
	"fmt"
)

// Kind classifies the ways a file can be defective.
type Kind string

const (
	KindTruncated     Kind = "truncated"
	KindCorrupt       Kind = "corrupt"
	KindParse         Kind = "parse-error"
	KindUnexpectedEOF Kind = "unexpected-eof"
	KindXMLSyntax     Kind = "xml-syntax"
	KindDecode        Kind = "decode"
)

// Defect is raised when a given file has some sort of problem rendering it
// unparsable by applications. A Defect is always terminal for that file's
// check; it is never retried.
type Defect struct {
	File string
	Kind Kind
	Err  error
}

func (d *Defect) Error() string {
	return fmt.Sprintf("%s %s: %v", d.File, d.Kind, d.Err)
}

func (d *Defect) Unwrap() error { return d.Err }

// AsDefect returns the Defect wrapped in err, if any.
func AsDefect(err error) (*Defect, bool) {
	var d *Defect
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}
