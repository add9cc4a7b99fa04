package sqlgen

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/satishbabariya/sqlcomposer/schema"
)

const (
	dateLayout        = "2006-01-02"
	timeLayout        = "15:04:05.999999"
	timestampLayout   = "2006-01-02 15:04:05.999999"
	timestampTZLayout = "2006-01-02 15:04:05.999999-07:00"
)

// numberRe matches plain decimal and scientific notation. Hex floats and
// digit separators that strconv accepts are not valid SQL numbers.
var numberRe = regexp.MustCompile(`^[-+]?(\d+(\.\d*)?|\.\d+)([eE][-+]?\d+)?$`)

// FormatValue renders v as a SQL literal for col. The column type picks the
// literal shape; unrecognized types are rendered as quoted strings. A nil
// value is NULL for every type.
func (t *SQLTranslator) FormatValue(col schema.Column, v any) string {
	if r, ok := v.(Raw); ok {
		return string(r)
	}

	v, isNull := resolve(v)
	if isNull {
		return "NULL"
	}

	switch col.Type.Kind() {
	case schema.KindNumeric:
		return t.formatNumeric(v)
	case schema.KindBoolean:
		return t.formatBoolean(v)
	case schema.KindDate:
		return t.formatTemporal(v, dateLayout)
	case schema.KindTime:
		return t.formatTemporal(v, timeLayout)
	case schema.KindTimestamp:
		return t.formatTemporal(v, timestampLayout)
	case schema.KindTimestampTZ:
		return t.formatTemporal(v, timestampTZLayout)
	case schema.KindJSON:
		return t.formatJSON(v)
	case schema.KindUUID:
		return t.quote(text(v))
	default:
		return t.quote(text(v))
	}
}

// resolve unwraps pointers and driver.Valuer implementations. It reports
// true when the value is SQL NULL.
func resolve(v any) (any, bool) {
	for {
		if v == nil {
			return nil, true
		}
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return nil, true
		}

		switch x := v.(type) {
		case uuid.UUID, time.Time:
			return v, false
		case driver.Valuer:
			val, err := x.Value()
			if err != nil {
				return fmt.Sprint(v), false
			}
			if _, again := val.(driver.Valuer); again {
				return val, false
			}
			v = val
			continue
		}

		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Pointer {
			return v, false
		}
		v = rv.Elem().Interface()
	}
}

// text returns the caller-supplied textual form of v.
func text(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(timestampTZLayout)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}

func (t *SQLTranslator) quote(s string) string {
	return "'" + t.escape(s) + "'"
}

func (t *SQLTranslator) escape(s string) string {
	if t.rules.escapeBackslash {
		if !strings.ContainsAny(s, `'\`) {
			return s
		}
		s = strings.ReplaceAll(s, `\`, `\\`)
	}
	return strings.ReplaceAll(s, "'", "''")
}

func (t *SQLTranslator) formatNumeric(v any) string {
	switch x := v.(type) {
	case int:
		return strconv.FormatInt(int64(x), 10)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return formatFloat(float64(x), 32)
	case float64:
		return formatFloat(x, 64)
	case json.Number:
		return t.formatNumericText(string(x))
	default:
		return t.formatNumericText(text(v))
	}
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsInf(f, 1):
		return "'Infinity'"
	case math.IsInf(f, -1):
		return "'-Infinity'"
	case math.IsNaN(f):
		return "'NaN'"
	}
	return strconv.FormatFloat(f, 'g', -1, bits)
}

// formatNumericText renders a textual number verbatim. Spellings of the
// non-finite values map to their sentinels; anything else is quoted.
func (t *SQLTranslator) formatNumericText(s string) string {
	trimmed := strings.TrimSpace(s)
	switch strings.ToLower(trimmed) {
	case "inf", "+inf", "infinity", "+infinity":
		return "'Infinity'"
	case "-inf", "-infinity":
		return "'-Infinity'"
	case "nan":
		return "'NaN'"
	}
	if numberRe.MatchString(trimmed) {
		return trimmed
	}
	return t.quote(s)
}

func (t *SQLTranslator) formatBoolean(v any) string {
	if b, ok := v.(bool); ok {
		return strconv.FormatBool(b)
	}
	s := text(v)
	if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
		return strconv.FormatBool(b)
	}
	return t.quote(s)
}

func (t *SQLTranslator) formatTemporal(v any, layout string) string {
	if tm, ok := v.(time.Time); ok {
		return t.quote(tm.Format(layout))
	}
	return t.quote(text(v))
}

func (t *SQLTranslator) formatJSON(v any) string {
	switch x := v.(type) {
	case string:
		return t.quote(x)
	case []byte:
		return t.quote(string(x))
	case json.RawMessage:
		return t.quote(string(x))
	}
	b, err := json.Marshal(v)
	if err != nil {
		return t.quote(text(v))
	}
	return t.quote(string(b))
}
