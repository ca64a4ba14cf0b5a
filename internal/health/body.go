package health

import (
	"context"

	"github.com/sleepdoctor/sleepdoc/internal/client/fitness"
	"github.com/sleepdoctor/sleepdoc/internal/xslog"
)

// Measurement is one body reading. Timestamp is epoch seconds.
type Measurement struct {
	Type      string `json:"type"`
	Value     string `json:"value"`
	Timestamp int64  `json:"timestamp"`
}

func (m Measurement) Map() map[string]any {
	return map[string]any{
		"type":      m.Type,
		"value":     m.Value,
		"timestamp": m.Timestamp,
	}
}

type bodyType struct {
	dataType string
	label    string
}

// bodyTypes are read in this order.
var bodyTypes = []bodyType{
	{dataType: fitness.DataTypeHeight, label: "height"},
	{dataType: fitness.DataTypeWeight, label: "weight"},
}

// Body reads height and then weight over the trailing 30 days. Reads run one at a
// time and the first failure discards everything read so far.
func (r *Reader) Body(ctx context.Context) ([]Measurement, error) {
	end := r.now()
	start := end.Add(-bodyWindow)

	measurements := []Measurement{}
	for _, bt := range bodyTypes {
		datasets, err := r.history.Read(ctx, fitness.ReadRequest{
			DataType: bt.dataType,
			Start:    start,
			End:      end,
		})
		if err != nil {
			r.logger.DebugContext(ctx, "body read failed", xslog.Label(bt.label), xslog.Error(err))
			return nil, newReadError(CodeBodyReadError, "Failed to read %s data: %s", err, bt.label)
		}
		measurements = append(measurements, measurementsOf(datasets, bt.label)...)
	}

	r.logger.DebugContext(ctx, "read body measurements", xslog.Count(len(measurements)))
	return measurements, nil
}

func measurementsOf(datasets []fitness.Dataset, label string) []Measurement {
	var out []Measurement
	for _, ds := range datasets {
		for _, p := range ds.Points {
			if len(p.Values) == 0 {
				continue
			}
			out = append(out, Measurement{
				Type:      label,
				Value:     p.Values[0].String(),
				Timestamp: p.Start.Unix(),
			})
		}
	}
	return out
}
