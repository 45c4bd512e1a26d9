// Package flex decodes JSON scalars the remote API sends inconsistently: numbers that may arrive
// as JSON strings, and timestamps that may be Unix milliseconds (number or digit string) or ISO-8601.
package flex

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/angelmondragon/stockdesk/pkg/clock"
	pkgerrors "github.com/angelmondragon/stockdesk/pkg/errors"
	"github.com/shopspring/decimal"
)

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var jsonNull = []byte("null")

var (
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
	minInt64 = decimal.NewFromInt(math.MinInt64)
)

// DecodeInt accepts a JSON number or a JSON string holding an integral number.
func DecodeInt(raw json.RawMessage) (int64, error) {
	d, err := decodeNumber(raw, "int")
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() || !fitsInt64(d) {
		return 0, decodeError(raw, "int")
	}
	return d.IntPart(), nil
}

// DecodeFloat accepts a JSON number or a JSON string holding a number.
func DecodeFloat(raw json.RawMessage) (float64, error) {
	d, err := decodeNumber(raw, "float")
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

// DecodeMinor accepts a JSON number or numeric string and truncates it toward zero,
// so money stays integral in minor units.
func DecodeMinor(raw json.RawMessage) (int64, error) {
	d, err := decodeNumber(raw, "money")
	if err != nil {
		return 0, err
	}
	d = d.Truncate(0)
	if !fitsInt64(d) {
		return 0, decodeError(raw, "money")
	}
	return d.IntPart(), nil
}

// DecodeTimestamp never fails: input that is empty or unparseable resolves to c.Now().
// That leniency exists for display-only fields and can hide missing data.
func DecodeTimestamp(raw json.RawMessage, c clock.Clock) time.Time {
	if t, ok := parseTimestamp(raw); ok {
		return t
	}
	return clock.OrSystem(c).Now()
}

func decodeNumber(raw json.RawMessage, kind string) (decimal.Decimal, error) {
	text, ok := scalarText(raw)
	if !ok || text == "" {
		return decimal.Decimal{}, decodeError(raw, kind)
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Decimal{}, decodeError(raw, kind)
	}
	return d, nil
}

// scalarText returns the textual content of a JSON number or string.
func scalarText(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, jsonNull) {
		return "", false
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", false
		}
		return strings.TrimSpace(s), true
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return string(trimmed), true
	}
	return "", false
}

func parseTimestamp(raw json.RawMessage) (time.Time, bool) {
	text, ok := scalarText(raw)
	if !ok || text == "" {
		return time.Time{}, false
	}
	if isDigits(text) {
		ms, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return time.Time{}, false
		}
		return time.UnixMilli(ms).UTC(), true
	}
	if trimmed := bytes.TrimSpace(raw); trimmed[0] != '"' {
		// a JSON number with a sign, fraction or exponent
		d, err := decimal.NewFromString(text)
		if err != nil {
			return time.Time{}, false
		}
		return time.UnixMilli(d.IntPart()).UTC(), true
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func fitsInt64(d decimal.Decimal) bool {
	return !d.GreaterThan(maxInt64) && !d.LessThan(minInt64)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

func decodeError(raw json.RawMessage, kind string) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeDecode, "cannot decode "+kind+" value").
		WithDetails(map[string]any{"kind": kind, "value": string(raw)})
}
