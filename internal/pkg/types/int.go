package types

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"

	"github.com/jackc/pgx/v5/pgtype"
)

// Int is an integer that accepts either a JSON number or a numeric string.
type Int int

func (i *Int) UnmarshalJSON(data []byte) error {
	f, err := parseNumber(data, reflect.TypeOf(Int(0)))
	if err != nil {
		return err
	}
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return &json.UnmarshalTypeError{Value: "number " + strconv.FormatFloat(f, 'f', -1, 64), Type: reflect.TypeOf(Int(0))}
	}
	*i = Int(f)
	return nil
}

// ScanInt64 implements pgtype.Int64Scanner.
func (i *Int) ScanInt64(v pgtype.Int8) error {
	if !v.Valid {
		*i = 0
		return nil
	}
	*i = Int(v.Int64)
	return nil
}

// Int64Value implements pgtype.Int64Valuer.
func (i Int) Int64Value() (pgtype.Int8, error) {
	return pgtype.Int8{Int64: int64(i), Valid: true}, nil
}

// IntPtr converts an optional Int to an optional int.
func IntPtr(i *Int) *int {
	if i == nil {
		return nil
	}
	v := int(*i)
	return &v
}
