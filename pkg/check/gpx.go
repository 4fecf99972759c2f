package check

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/cwbooth5/filefitness/pkg/activity"
	"github.com/cwbooth5/filefitness/pkg/gpx"
)

// CheckGPX roughly sees if the document parses as track XML. For files whose
// name contains "ride" it also gathers average power and heart rate from the
// trackpoint extensions, because reading this data is an indicator the data
// is at least in the correct format.
//
// Only Garmin-encoded trackpoint extensions are recognized for heart rate.
func CheckGPX(act activity.Activity, log *slog.Logger) error {
	doc, err := gpx.Parse(act.Data)
	if err != nil {
		kind := KindDecode
		if errors.Is(err, gpx.ErrSyntax) {
			kind = KindXMLSyntax
		}
		return &Defect{File: act.Name, Kind: kind, Err: err}
	}

	if !strings.Contains(strings.ToLower(act.Name), "ride") {
		return nil
	}

	var power, hr []int64
	for _, track := range doc.Tracks {
		for _, seg := range track.Segments {
			for _, pt := range seg.Points {
				if pt.Extensions == nil {
					continue
				}
				if pt.Extensions.Power != nil {
					power = append(power, int64(*pt.Extensions.Power))
				}
				if tpe := pt.Extensions.TrackPoint; tpe != nil && tpe.HeartRate != nil {
					hr = append(hr, int64(*tpe.HeartRate))
				}
			}
		}
	}

	reportAverages(log, act.Name, power, hr)
	return nil
}
