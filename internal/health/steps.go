package health

import (
	"context"

	"github.com/sleepdoctor/sleepdoc/internal/client/fitness"
	"github.com/sleepdoctor/sleepdoc/internal/xslog"
)

// Steps returns the step count of the trailing 24 hours.
func (r *Reader) Steps(ctx context.Context) (int64, error) {
	end := r.now()
	buckets, err := r.history.Aggregate(ctx, fitness.AggregateRequest{
		DataType: fitness.DataTypeStepCount,
		Bucket:   stepBucket,
		Start:    end.Add(-stepWindow),
		End:      end,
	})
	if err != nil {
		return 0, newReadError(CodeReadError, "Failed to read steps: %s", err)
	}

	total := SumSteps(buckets)
	r.logger.DebugContext(ctx, "read steps", xslog.Count(int(total)))
	return total, nil
}

// SumSteps adds the steps field of every point in every dataset of every bucket.
func SumSteps(buckets []fitness.Bucket) int64 {
	var total int64
	for _, b := range buckets {
		for _, ds := range b.Datasets {
			for _, p := range ds.Points {
				if v, ok := p.Value(fitness.FieldSteps); ok {
					total += v.Int
				}
			}
		}
	}
	return total
}
