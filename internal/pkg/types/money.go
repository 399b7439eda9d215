package types

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// Money is a NUMERIC(10,2) amount. It is written to JSON as a two-decimal
// string and read from either a JSON number or a numeric string.
type Money float64

func (m Money) String() string {
	return strconv.FormatFloat(float64(m), 'f', 2, 64)
}

// Round returns m rounded to cents.
func (m Money) Round() Money {
	return Money(math.Round(float64(m)*100) / 100)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.String())), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	f, err := parseNumber(data, reflect.TypeOf(Money(0)))
	if err != nil {
		return err
	}
	*m = Money(f).Round()
	return nil
}

// ScanFloat64 implements pgtype.Float64Scanner.
func (m *Money) ScanFloat64(v pgtype.Float8) error {
	if !v.Valid {
		*m = 0
		return nil
	}
	*m = Money(v.Float64)
	return nil
}

// Float64Value implements pgtype.Float64Valuer.
func (m Money) Float64Value() (pgtype.Float8, error) {
	return pgtype.Float8{Float64: float64(m.Round()), Valid: true}, nil
}

// parseNumber accepts a JSON number or a string holding one.
func parseNumber(data []byte, target reflect.Type) (float64, error) {
	data = bytes.TrimSpace(data)
	raw := string(data)
	kind := "number"
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0, err
		}
		raw = strings.TrimSpace(s)
		kind = "string"
	} else if raw == "null" || raw == "true" || raw == "false" || (len(data) > 0 && (data[0] == '{' || data[0] == '[')) {
		return 0, &json.UnmarshalTypeError{Value: jsonKind(data), Type: target}
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &json.UnmarshalTypeError{Value: kind + " " + strconv.Quote(raw), Type: target}
	}
	return f, nil
}

func jsonKind(data []byte) string {
	switch {
	case len(data) == 0:
		return "empty"
	case data[0] == '{':
		return "object"
	case data[0] == '[':
		return "array"
	case string(data) == "null":
		return "null"
	default:
		return "bool"
	}
}
