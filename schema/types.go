// Package schema describes table metadata consumed by the SQL composer.
package schema

import (
	"regexp"
	"strings"
)

// DataType is a column type tag. It drives literal formatting.
type DataType string

const (
	// Text-like types
	Text             DataType = "text"
	Varchar          DataType = "varchar"
	Char             DataType = "char"
	CharacterVarying DataType = "character varying"

	// Integer types
	Int      DataType = "int"
	Int4     DataType = "int4"
	Integer  DataType = "integer"
	BigInt   DataType = "bigint"
	Int8     DataType = "int8"
	SmallInt DataType = "smallint"
	Int2     DataType = "int2"

	// Arbitrary precision and floating point types
	Numeric         DataType = "numeric"
	Decimal         DataType = "decimal"
	Real            DataType = "real"
	Float4          DataType = "float4"
	DoublePrecision DataType = "double precision"
	Float8          DataType = "float8"

	// Boolean types
	Boolean DataType = "boolean"
	Bool    DataType = "bool"

	// Date and time types
	Date                     DataType = "date"
	Timestamp                DataType = "timestamp"
	TimestampWithoutTimeZone DataType = "timestamp without time zone"
	Timestamptz              DataType = "timestamptz"
	TimestampWithTimeZone    DataType = "timestamp with time zone"
	Time                     DataType = "time"

	// Document and identifier types
	JSON  DataType = "json"
	JSONB DataType = "jsonb"
	UUID  DataType = "uuid"
)

// Kind groups data types that share a literal format.
type Kind int

const (
	KindUnknown Kind = iota
	KindText
	KindNumeric
	KindBoolean
	KindDate
	KindTime
	KindTimestamp
	KindTimestampTZ
	KindJSON
	KindUUID
)

var kinds = map[DataType]Kind{
	Text:                     KindText,
	Varchar:                  KindText,
	Char:                     KindText,
	CharacterVarying:         KindText,
	Int:                      KindNumeric,
	Int4:                     KindNumeric,
	Integer:                  KindNumeric,
	BigInt:                   KindNumeric,
	Int8:                     KindNumeric,
	SmallInt:                 KindNumeric,
	Int2:                     KindNumeric,
	Numeric:                  KindNumeric,
	Decimal:                  KindNumeric,
	Real:                     KindNumeric,
	Float4:                   KindNumeric,
	DoublePrecision:          KindNumeric,
	Float8:                   KindNumeric,
	Boolean:                  KindBoolean,
	Bool:                     KindBoolean,
	Date:                     KindDate,
	Time:                     KindTime,
	Timestamp:                KindTimestamp,
	TimestampWithoutTimeZone: KindTimestamp,
	Timestamptz:              KindTimestampTZ,
	TimestampWithTimeZone:    KindTimestampTZ,
	JSON:                     KindJSON,
	JSONB:                    KindJSON,
	UUID:                     KindUUID,
}

// Kind returns the literal family of the type. Unrecognized tags are KindUnknown.
func (t DataType) Kind() Kind {
	return kinds[t]
}

// Known reports whether t is one of the declared tags.
func (t DataType) Known() bool {
	_, ok := kinds[t]
	return ok
}

func (t DataType) String() string { return string(t) }

// typeModifierRe matches length/precision modifiers such as (255) or (10,2).
var typeModifierRe = regexp.MustCompile(`\s*\([^)]*\)`)

// aliases maps database spellings that are not tags themselves.
var aliases = map[string]DataType{
	"string":                 Text,
	"citext":                 Text,
	"nvarchar":               Varchar,
	"nchar":                  Char,
	"bpchar":                 Char,
	"character":              Char,
	"tinytext":               Text,
	"mediumtext":             Text,
	"longtext":               Text,
	"serial":                 Integer,
	"serial4":                Integer,
	"bigserial":              BigInt,
	"serial8":                BigInt,
	"mediumint":              Integer,
	"tinyint":                SmallInt,
	"double":                 DoublePrecision,
	"float":                  DoublePrecision,
	"datetime":               Timestamp,
	"timetz":                 Time,
	"time without time zone": Time,
	"time with time zone":    Time,
}

// NormalizeType maps a database type spelling onto a tag. Modifiers and
// unsigned markers are stripped first; MySQL's tinyint(1) is a boolean.
// Spellings with no mapping are returned lower-cased, which formats as text.
func NormalizeType(s string) DataType {
	raw := strings.ToLower(strings.TrimSpace(s))
	if raw == "tinyint(1)" {
		return Boolean
	}
	t := typeModifierRe.ReplaceAllString(raw, "")
	t = strings.TrimSpace(strings.TrimSuffix(t, " unsigned"))
	if dt := DataType(t); dt.Known() {
		return dt
	}
	if dt, ok := aliases[t]; ok {
		return dt
	}
	return DataType(t)
}
