package fitness

import (
	"strconv"
	"strings"
	"time"
)

const (
	DataTypeStepCount    = "com.google.step_count.delta"
	DataTypeHeight       = "com.google.height"
	DataTypeWeight       = "com.google.weight"
	DataTypeHeartRate    = "com.google.heart_rate.bpm"
	DataTypeSleepSegment = "com.google.sleep.segment"
)

const (
	FieldSteps            = "steps"
	FieldHeight           = "height"
	FieldWeight           = "weight"
	FieldBPM              = "bpm"
	FieldSleepSegmentType = "sleep_segment_type"
)

type Format string

const (
	FormatInteger Format = "integer"
	FormatFloat   Format = "floatPoint"
	FormatString  Format = "string"
)

type Field struct {
	Name   string
	Format Format
}

// knownFields describes the data types read by this package. Aggregate responses
// carry no field descriptors, so their values are interpreted with these.
var knownFields = map[string][]Field{
	DataTypeStepCount:    {{Name: FieldSteps, Format: FormatInteger}},
	DataTypeHeight:       {{Name: FieldHeight, Format: FormatFloat}},
	DataTypeWeight:       {{Name: FieldWeight, Format: FormatFloat}},
	DataTypeHeartRate:    {{Name: FieldBPM, Format: FormatFloat}},
	DataTypeSleepSegment: {{Name: FieldSleepSegmentType, Format: FormatInteger}},
}

// FieldsOf returns the declared fields of a known data type.
func FieldsOf(dataType string) []Field {
	return knownFields[dataType]
}

type Value struct {
	Format Format
	Int    int64
	Float  float64
	Text   string
}

// String renders the value the way the device SDK prints it: ints in decimal,
// floats with single precision and at least one fractional digit.
func (v Value) String() string {
	switch v.Format {
	case FormatInteger:
		return strconv.FormatInt(v.Int, 10)
	case FormatFloat:
		return formatFloat(v.Float)
	default:
		return v.Text
	}
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 32)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

type Point struct {
	DataType string
	Start    time.Time
	End      time.Time
	Fields   []Field
	Values   []Value
}

// Value returns the value of the named field.
func (p Point) Value(field string) (Value, bool) {
	for i, f := range p.Fields {
		if f.Name == field && i < len(p.Values) {
			return p.Values[i], true
		}
	}
	return Value{}, false
}

type Dataset struct {
	DataSourceID string
	DataType     string
	Points       []Point
}

type Bucket struct {
	Start    time.Time
	End      time.Time
	Datasets []Dataset
}

type AggregateRequest struct {
	DataType string
	Bucket   time.Duration
	Start    time.Time
	End      time.Time
}

type ReadRequest struct {
	DataType string
	Start    time.Time
	End      time.Time
}
