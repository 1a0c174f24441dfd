package codec

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/fuzzify"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/inference"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/rulebank"
)

// #region wire
// Request fields are the factor names; response fields are
// mamdani, sugeno, aggregated{healthy,middle,sick} and, when a trained
// model backs the server, adaptive.

const (
	fieldMamdani    = "mamdani"
	fieldSugeno     = "sugeno"
	fieldAggregated = "aggregated"
	fieldAdaptive   = "adaptive"
)

// EncodeMeasurement converts m to a request Struct.
func EncodeMeasurement(m fuzzify.Measurement) *structpb.Struct {
	fields := make(map[string]*structpb.Value, len(fuzzify.Factors()))
	for _, f := range fuzzify.Factors() {
		fields[string(f)] = structpb.NewNumberValue(m.Value(f))
	}
	return &structpb.Struct{Fields: fields}
}

// DecodeMeasurement reads all six factors from s. Missing or non-numeric
// fields are errors; unknown fields are ignored.
func DecodeMeasurement(s *structpb.Struct) (fuzzify.Measurement, error) {
	var m fuzzify.Measurement
	if s == nil {
		return m, fmt.Errorf("empty request")
	}
	for _, f := range fuzzify.Factors() {
		v, ok := s.Fields[string(f)]
		if !ok {
			return m, fmt.Errorf("missing field %q", f)
		}
		n, ok := v.Kind.(*structpb.Value_NumberValue)
		if !ok {
			return m, fmt.Errorf("field %q is not a number", f)
		}
		m = m.With(f, n.NumberValue)
	}
	return m, nil
}

// Result is the decoded Diagnose response.
type Result struct {
	Mamdani    float64                    `json:"mamdani"`
	Sugeno     float64                    `json:"sugeno"`
	Aggregated map[rulebank.Class]float64 `json:"aggregated"`
	Adaptive   *float64                   `json:"adaptive,omitempty"`
}

func encodeResult(d inference.Diagnosis, adaptive *float64) *structpb.Struct {
	agg := make(map[string]*structpb.Value, len(d.Aggregated))
	for _, c := range rulebank.Classes() {
		agg[string(c)] = structpb.NewNumberValue(d.Aggregated[c])
	}
	fields := map[string]*structpb.Value{
		fieldMamdani:    structpb.NewNumberValue(d.Mamdani),
		fieldSugeno:     structpb.NewNumberValue(d.Sugeno),
		fieldAggregated: structpb.NewStructValue(&structpb.Struct{Fields: agg}),
	}
	if adaptive != nil {
		fields[fieldAdaptive] = structpb.NewNumberValue(*adaptive)
	}
	return &structpb.Struct{Fields: fields}
}

func decodeResult(s *structpb.Struct) (Result, error) {
	var r Result
	if s == nil {
		return r, fmt.Errorf("empty response")
	}
	num := func(name string) (float64, error) {
		v, ok := s.Fields[name].GetKind().(*structpb.Value_NumberValue)
		if !ok {
			return 0, fmt.Errorf("response field %q missing or not a number", name)
		}
		return v.NumberValue, nil
	}
	var err error
	if r.Mamdani, err = num(fieldMamdani); err != nil {
		return r, err
	}
	if r.Sugeno, err = num(fieldSugeno); err != nil {
		return r, err
	}
	if agg := s.Fields[fieldAggregated].GetStructValue(); agg != nil {
		r.Aggregated = make(map[rulebank.Class]float64, len(agg.Fields))
		for k, v := range agg.Fields {
			r.Aggregated[rulebank.Class(k)] = v.GetNumberValue()
		}
	}
	if _, ok := s.Fields[fieldAdaptive]; ok {
		a, err := num(fieldAdaptive)
		if err != nil {
			return r, err
		}
		r.Adaptive = &a
	}
	return r, nil
}

// #endregion wire
