package fitness

import (
	"context"
	"fmt"
	"strings"
	"time"

	fitnessapi "google.golang.org/api/fitness/v1"

	"github.com/sleepdoctor/sleepdoc/internal/xslog"
)

func (c *Client) Aggregate(ctx context.Context, req AggregateRequest) ([]Bucket, error) {
	body := &fitnessapi.AggregateRequest{
		AggregateBy: []*fitnessapi.AggregateBy{{DataTypeName: req.DataType}},
		BucketByTime: &fitnessapi.BucketByTime{
			DurationMillis: req.Bucket.Milliseconds(),
		},
		StartTimeMillis: req.Start.UnixMilli(),
		EndTimeMillis:   req.End.UnixMilli(),
	}

	resp, err := c.svc.Users.Dataset.Aggregate(me, body).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("aggregating %s: %w", req.DataType, err)
	}

	buckets := make([]Bucket, 0, len(resp.Bucket))
	for _, b := range resp.Bucket {
		bucket := Bucket{
			Start: time.UnixMilli(b.StartTimeMillis),
			End:   time.UnixMilli(b.EndTimeMillis),
		}
		for _, ds := range b.Dataset {
			bucket.Datasets = append(bucket.Datasets, convertDataset(ds, req.DataType, nil))
		}
		buckets = append(buckets, bucket)
	}

	c.logger.DebugContext(ctx, "aggregated fitness data",
		xslog.DataType(req.DataType),
		xslog.Start(req.Start),
		xslog.End(req.End),
		xslog.Count(len(buckets)),
	)

	return buckets, nil
}

// Read returns the points of the requested type in the range. The type's merged
// stream is read when the account has one, since it already holds the points of
// every raw source. Otherwise each listed source is read in list order.
func (c *Client) Read(ctx context.Context, req ReadRequest) ([]Dataset, error) {
	sources, err := c.svc.Users.DataSources.List(me).DataTypeName(req.DataType).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("listing %s data sources: %w", req.DataType, err)
	}

	datasetID := fmt.Sprintf("%d-%d", req.Start.UnixNano(), req.End.UnixNano())

	selected := defaultSources(req.DataType, sources.DataSource)
	datasets := make([]Dataset, 0, len(selected))
	for _, src := range selected {
		dataType, fields := req.DataType, FieldsOf(req.DataType)
		if src.DataType != nil {
			dataType = src.DataType.Name
			fields = convertFields(src.DataType.Field)
		}

		dataset := Dataset{DataSourceID: src.DataStreamId, DataType: dataType}

		pageToken := ""
		for {
			call := c.svc.Users.DataSources.Datasets.Get(me, src.DataStreamId, datasetID).Context(ctx)
			if c.pageSize > 0 {
				call = call.Limit(c.pageSize)
			}
			if pageToken != "" {
				call = call.PageToken(pageToken)
			}

			page, err := call.Do()
			if err != nil {
				return nil, fmt.Errorf("reading %s dataset: %w", src.DataStreamId, err)
			}

			dataset.Points = append(dataset.Points, convertDataset(page, dataType, fields).Points...)

			if page.NextPageToken == "" || page.NextPageToken == pageToken {
				break
			}
			pageToken = page.NextPageToken
		}

		c.logger.DebugContext(ctx, "read fitness dataset",
			xslog.DataType(dataType),
			xslog.DataSource(src.DataStreamId),
			xslog.Count(len(dataset.Points)),
		)

		datasets = append(datasets, dataset)
	}

	return datasets, nil
}

// mergedStreamPrefix is the start of the stream IDs Google Fit derives by
// merging every source of a type, e.g.
// derived:com.google.weight:com.google.android.gms:merge_weight.
const mergedStreamPrefix = "derived:%s:com.google.android.gms:merge"

// defaultSources picks the first merged stream of dataType, or every source
// when the account has none.
func defaultSources(dataType string, sources []*fitnessapi.DataSource) []*fitnessapi.DataSource {
	prefix := fmt.Sprintf(mergedStreamPrefix, dataType)
	for _, src := range sources {
		if strings.HasPrefix(src.DataStreamId, prefix) {
			return []*fitnessapi.DataSource{src}
		}
	}
	return sources
}

func convertFields(fields []*fitnessapi.DataTypeField) []Field {
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		out = append(out, Field{Name: f.Name, Format: Format(f.Format)})
	}
	return out
}

// convertDataset falls back to the known fields of a point's data type when
// fields is nil.
func convertDataset(ds *fitnessapi.Dataset, dataType string, fields []Field) Dataset {
	out := Dataset{DataSourceID: ds.DataSourceId, DataType: dataType}
	for _, p := range ds.Point {
		pointType := p.DataTypeName
		if pointType == "" {
			pointType = dataType
		}
		pointFields := fields
		if pointFields == nil {
			pointFields = FieldsOf(pointType)
		}
		out.Points = append(out.Points, convertPoint(p, pointType, pointFields))
	}
	if len(out.Points) > 0 && out.Points[0].DataType != "" {
		out.DataType = out.Points[0].DataType
	}
	return out
}

func convertPoint(p *fitnessapi.DataPoint, dataType string, fields []Field) Point {
	point := Point{
		DataType: dataType,
		Start:    time.Unix(0, p.StartTimeNanos),
		End:      time.Unix(0, p.EndTimeNanos),
		Fields:   fields,
		Values:   make([]Value, 0, len(p.Value)),
	}
	for i, v := range p.Value {
		var format Format
		if i < len(fields) {
			format = fields[i].Format
		}
		point.Values = append(point.Values, Value{
			Format: format,
			Int:    v.IntVal,
			Float:  v.FpVal,
			Text:   v.StringVal,
		})
	}
	return point
}
