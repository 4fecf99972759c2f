package check

import (
	"errors"
	"log/slog"

	"github.com/cwbooth5/filefitness/pkg/activity"
	"github.com/cwbooth5/filefitness/pkg/fit"
)

// CheckFIT looks for blatant structural errors, then reads through each
// record message in the file to see if they can all be read properly. Power
// and heart rate samples are collected along the way; being able to read
// them is an indicator the data is at least in the correct format, and their
// averages are reported informationally without affecting the verdict.
func CheckFIT(act activity.Activity, log *slog.Logger) error {
	f, err := fit.Decode(act.Data)
	if err != nil {
		return &Defect{File: act.Name, Kind: classifyFIT(err), Err: err}
	}

	var power, hr []int64
	for _, msg := range f.Messages {
		if msg.GlobalNum != fit.MsgRecord {
			continue
		}
		for _, field := range msg.Fields {
			if !field.Valid {
				continue
			}
			switch field.Name {
			case "power":
				power = append(power, field.Value)
			case "heart_rate":
				hr = append(hr, field.Value)
			}
		}
	}

	reportAverages(log, act.Name, power, hr)
	return nil
}

// classifyFIT maps decoder failures onto the defect taxonomy. Header
// problems are reported as truncation: in practice they mean a zero-length
// or cut-off file.
func classifyFIT(err error) Kind {
	switch {
	case errors.Is(err, fit.ErrHeader):
		return KindTruncated
	case errors.Is(err, fit.ErrCRC):
		return KindCorrupt
	case errors.Is(err, fit.ErrUnexpectedEOF):
		return KindUnexpectedEOF
	default:
		return KindParse
	}
}
