package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	users, err := NewTable("users",
		Column{Name: "id", Type: Int},
		Column{Name: "name", Type: Text},
	)
	require.NoError(t, err)

	assert.Equal(t, "users", users.Name())
	assert.Equal(t, []string{"id", "name"}, users.ColumnNames())
	assert.Equal(t, 2, users.Len())

	col, ok := users.Column("name")
	require.True(t, ok)
	assert.Equal(t, Text, col.Type)

	_, ok = users.Column("missing")
	assert.False(t, ok)
	assert.True(t, users.Has("id"))
}

func TestNewTable_Errors(t *testing.T) {
	_, err := NewTable("")
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = NewTable("users", Column{Name: "", Type: Int})
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = NewTable("users", Column{Name: "id", Type: Int}, Column{Name: "id", Type: Text})
	assert.ErrorIs(t, err, ErrDuplicateColumn)
	assert.Contains(t, err.Error(), "users.id")
}

func TestTable_ColumnsIsACopy(t *testing.T) {
	users := Define("users").Column("id", Int).MustBuild()

	cols := users.Columns()
	cols[0].Name = "mutated"

	assert.Equal(t, []string{"id"}, users.ColumnNames())
}

func TestMustBuild_Panics(t *testing.T) {
	assert.Panics(t, func() {
		Define("users").Column("id", Int).Column("id", Int).MustBuild()
	})
}

func TestDataType_Kind(t *testing.T) {
	tests := []struct {
		typ  DataType
		want Kind
	}{
		{Text, KindText},
		{CharacterVarying, KindText},
		{Int4, KindNumeric},
		{DoublePrecision, KindNumeric},
		{Bool, KindBoolean},
		{Date, KindDate},
		{Time, KindTime},
		{TimestampWithoutTimeZone, KindTimestamp},
		{Timestamptz, KindTimestampTZ},
		{JSONB, KindJSON},
		{UUID, KindUUID},
		{DataType("geometry"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.Kind())
		})
	}
}

func TestNormalizeType(t *testing.T) {
	tests := []struct {
		in   string
		want DataType
	}{
		{"INTEGER", Integer},
		{"VARCHAR(255)", Varchar},
		{"character varying", CharacterVarying},
		{"numeric(10,2)", Numeric},
		{"int unsigned", Int},
		{"int(11) unsigned", Int},
		{"tinyint(1)", Boolean},
		{"tinyint(4)", SmallInt},
		{"datetime", Timestamp},
		{"double", DoublePrecision},
		{"timestamp with time zone", TimestampWithTimeZone},
		{"bigserial", BigInt},
		{"  JSONB ", JSONB},
		{"inet", DataType("inet")},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeType(tt.in))
		})
	}
}

func TestParseDefinition(t *testing.T) {
	data := []byte(`
table: users
columns:
  - name: id
    type: INTEGER
  - name: email
    type: varchar(320)
  - name: active
    type: boolean
`)

	users, err := ParseDefinition(data)
	require.NoError(t, err)

	assert.Equal(t, "users", users.Name())
	assert.Equal(t, []Column{
		{Name: "id", Type: Integer},
		{Name: "email", Type: Varchar},
		{Name: "active", Type: Boolean},
	}, users.Columns())
}

func TestParseDefinition_Invalid(t *testing.T) {
	_, err := ParseDefinition([]byte("table: [unterminated"))
	assert.Error(t, err)

	_, err = ParseDefinition([]byte("columns: []"))
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestMarshalDefinition_RoundTrip(t *testing.T) {
	users := Define("users").Column("id", Int).Column("data", JSONB).MustBuild()

	data, err := MarshalDefinition(users)
	require.NoError(t, err)

	back, err := ParseDefinition(data)
	require.NoError(t, err)
	assert.Equal(t, users.Columns(), back.Columns())
}
