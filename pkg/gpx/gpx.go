// Package gpx parses GPS-track XML documents, including the Garmin
// TrackPointExtension v1 namespace used for per-point power and heart rate.
// Documents are read-only inputs; nothing here writes GPX.
package gpx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"unicode/utf8"
)

// TrackPointExtensionNS is the Garmin vendor namespace for trackpoint
// sensor extensions.
const TrackPointExtensionNS = "http://www.garmin.com/xmlschemas/TrackPointExtension/v1"

// The classified ways a GPX document can fail to parse. ErrSyntax covers
// malformed XML; ErrEncoding covers non-UTF-8 input, undeclared charsets,
// and structurally valid XML that does not form a GPX document.
var (
	ErrSyntax   = errors.New("gpx: malformed xml")
	ErrEncoding = errors.New("gpx: cannot decode document")
)

// GPX is the root of a parsed document.
type GPX struct {
	XMLName xml.Name `xml:"gpx"`
	Version string   `xml:"version,attr"`
	Creator string   `xml:"creator,attr"`
	Tracks  []Track  `xml:"trk"`
}

// Track is one <trk> element.
type Track struct {
	Name     string    `xml:"name"`
	Segments []Segment `xml:"trkseg"`
}

// Segment is one <trkseg> element.
type Segment struct {
	Points []Point `xml:"trkpt"`
}

// Point is one <trkpt> element.
type Point struct {
	Lat        float64     `xml:"lat,attr"`
	Lon        float64     `xml:"lon,attr"`
	Elevation  float64     `xml:"ele"`
	Time       string      `xml:"time"`
	Extensions *Extensions `xml:"extensions"`
}

// Extensions holds the per-point extension elements this checker reads: a
// bare integer power reading and the Garmin trackpoint extension container.
type Extensions struct {
	Power      *int                 `xml:"power"`
	TrackPoint *TrackPointExtension `xml:"http://www.garmin.com/xmlschemas/TrackPointExtension/v1 TrackPointExtension"`
}

// TrackPointExtension is the Garmin vendor extension container.
type TrackPointExtension struct {
	HeartRate   *int `xml:"http://www.garmin.com/xmlschemas/TrackPointExtension/v1 hr"`
	Cadence     *int `xml:"http://www.garmin.com/xmlschemas/TrackPointExtension/v1 cad"`
	Temperature *int `xml:"http://www.garmin.com/xmlschemas/TrackPointExtension/v1 atemp"`
}

// Parse decodes a GPX document from raw bytes. Input must be UTF-8.
func Parse(data []byte) (*GPX, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: input is not valid UTF-8", ErrEncoding)
	}

	var doc GPX
	if err := xml.Unmarshal(data, &doc); err != nil {
		var syntax *xml.SyntaxError
		if errors.As(err, &syntax) {
			return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return &doc, nil
}
