package services

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// LooseFloat decodes any JSON scalar as a number: numbers pass through,
// numeric strings parse, everything else (null, garbage, objects) becomes 0.
// Decoding never fails, so malformed fields can't reject a request.
type LooseFloat float64

func (f *LooseFloat) UnmarshalJSON(data []byte) error {
	*f = LooseFloat(coerceFloat(data))
	return nil
}

// OptionalFloat keeps "not supplied" distinct from zero. Absent, null, and
// empty-string inputs leave Valid false; anything else coerces like LooseFloat.
type OptionalFloat struct {
	Valid bool
	Value float64
}

func (f *OptionalFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		return nil
	}
	f.Valid = true
	f.Value = coerceFloat(data)
	return nil
}

func (f OptionalFloat) Ptr() *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}

// LooseString decodes any JSON scalar as a string: strings unquote, other
// scalars keep their literal text, null becomes "". Decoding never fails.
type LooseString string

func (s *LooseString) UnmarshalJSON(data []byte) error {
	var q string
	if err := json.Unmarshal(data, &q); err == nil {
		*s = LooseString(q)
		return nil
	}
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		raw = ""
	}
	*s = LooseString(raw)
	return nil
}

func coerceFloat(data []byte) float64 {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		return 0
	}
	if strings.HasPrefix(s, `"`) {
		var q string
		if err := json.Unmarshal(data, &q); err != nil {
			return 0
		}
		s = strings.TrimSpace(q)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
