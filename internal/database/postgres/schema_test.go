package postgres

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPostgresType(t *testing.T) {
	null := sql.NullInt64{}
	n := func(v int64) sql.NullInt64 { return sql.NullInt64{Int64: v, Valid: true} }

	tests := []struct {
		udt                 string
		length, prec, scale sql.NullInt64
		want                string
	}{
		{"varchar", n(120), null, null, "VARCHAR(120)"},
		{"varchar", null, null, null, "VARCHAR"},
		{"bpchar", n(2), null, null, "CHAR(2)"},
		{"numeric", null, n(10), n(2), "NUMERIC(10,2)"},
		{"timestamptz", null, null, null, "TIMESTAMP WITH TIME ZONE"},
		{"int8", null, null, null, "BIGINT"},
		{"jsonb", null, null, null, "JSONB"},
		{"citext", null, null, null, "CITEXT"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatPostgresType(tt.udt, tt.length, tt.prec, tt.scale))
		})
	}
}

func TestCleanDefaultValue(t *testing.T) {
	assert.Equal(t, "'draft'", cleanDefaultValue("'draft'::character varying"))
	assert.Equal(t, "NOW()", cleanDefaultValue("now()"))
	assert.Equal(t, "NOW()", cleanDefaultValue("CURRENT_TIMESTAMP"))
	assert.Equal(t, "0", cleanDefaultValue("0"))
}

func TestDeleteAllSQL(t *testing.T) {
	stmt := deleteAllSQL("users")
	assert.Equal(t, `DELETE FROM "users"`, stmt)
	assert.NotContains(t, stmt, "CASCADE")
	assert.NotContains(t, stmt, "TRUNCATE")

	assert.Equal(t, `DELETE FROM "Order Items"`, deleteAllSQL("Order Items"))
}
