package health

import (
	"context"

	"github.com/sleepdoctor/sleepdoc/internal/client/fitness"
	"github.com/sleepdoctor/sleepdoc/internal/xslog"
)

var stageLabels = [...]string{
	"Unused",
	"Awake (during sleep)",
	"Sleep",
	"Out-of-bed",
	"Light sleep",
	"Deep sleep",
	"REM sleep",
}

const unknownStage = "Unknown"

// StageLabel maps a sleep segment type code to its display label.
func StageLabel(code int64) string {
	if code < 0 || code >= int64(len(stageLabels)) {
		return unknownStage
	}
	return stageLabels[code]
}

// SleepSegment is one stage interval. Times are epoch milliseconds.
type SleepSegment struct {
	Type      string `json:"type"`
	StartTime int64  `json:"startTime"`
	EndTime   int64  `json:"endTime"`
}

func (s SleepSegment) Map() map[string]any {
	return map[string]any{
		"type":      s.Type,
		"startTime": s.StartTime,
		"endTime":   s.EndTime,
	}
}

// Sleep returns the sleep segments of the trailing 30 days in the order the API yields them.
func (r *Reader) Sleep(ctx context.Context) ([]SleepSegment, error) {
	end := r.now()
	datasets, err := r.history.Read(ctx, fitness.ReadRequest{
		DataType: fitness.DataTypeSleepSegment,
		Start:    end.Add(-sleepWindow),
		End:      end,
	})
	if err != nil {
		return nil, newReadError(CodeSleepReadError, "Failed to read sleep data: %s", err)
	}

	segments := SleepSegments(datasets)
	r.logger.DebugContext(ctx, "read sleep segments", xslog.Count(len(segments)))
	return segments, nil
}

// SleepSegments converts the sleep segment datasets and skips any other data type.
func SleepSegments(datasets []fitness.Dataset) []SleepSegment {
	segments := []SleepSegment{}
	for _, ds := range datasets {
		if ds.DataType != fitness.DataTypeSleepSegment {
			continue
		}
		for _, p := range ds.Points {
			code := int64(-1)
			if v, ok := p.Value(fitness.FieldSleepSegmentType); ok {
				code = v.Int
			}
			segments = append(segments, SleepSegment{
				Type:      StageLabel(code),
				StartTime: p.Start.UnixMilli(),
				EndTime:   p.End.UnixMilli(),
			})
		}
	}
	return segments
}
