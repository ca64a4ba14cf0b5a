package fitness

import "testing"

func TestValueString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{name: "whole float", value: Value{Format: FormatFloat, Float: 70}, want: "70.0"},
		{name: "fractional float", value: Value{Format: FormatFloat, Float: 1.75}, want: "1.75"},
		{name: "single precision", value: Value{Format: FormatFloat, Float: 72.30000305175781}, want: "72.3"},
		{name: "integer", value: Value{Format: FormatInteger, Int: 4}, want: "4"},
		{name: "negative integer", value: Value{Format: FormatInteger, Int: -1}, want: "-1"},
		{name: "string", value: Value{Format: FormatString, Text: "walking"}, want: "walking"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.value.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPointValue(t *testing.T) {
	t.Parallel()

	p := Point{
		Fields: FieldsOf(DataTypeSleepSegment),
		Values: []Value{{Format: FormatInteger, Int: 5}},
	}

	v, ok := p.Value(FieldSleepSegmentType)
	if !ok || v.Int != 5 {
		t.Errorf("Value(%q) = %v, %t; want 5, true", FieldSleepSegmentType, v, ok)
	}

	if _, ok := p.Value(FieldSteps); ok {
		t.Errorf("Value(%q) found a field the point does not declare", FieldSteps)
	}

	empty := Point{Fields: FieldsOf(DataTypeSleepSegment)}
	if _, ok := empty.Value(FieldSleepSegmentType); ok {
		t.Error("Value() on a point without values reported ok")
	}
}
