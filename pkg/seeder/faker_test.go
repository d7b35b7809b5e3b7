package seeder

import (
	"strings"
	"testing"
	"time"

	"github.com/Rana718/tableseed/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLocale(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "en-US", want: "en_US"},
		{in: "en_US", want: "en_US"},
		{in: "fr", want: "fr"},
		{in: "pt-br", want: "pt_BR"},
		{in: "??", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeLocale(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateForColumn_NameHints(t *testing.T) {
	g, err := NewDataGenerator("en-US", 7)
	require.NoError(t, err)

	email := g.GenerateForColumn(types.SchemaColumn{Name: "email", Type: "varchar"})
	require.IsType(t, "", email)
	assert.Contains(t, email, "@")
	assert.True(t, strings.HasPrefix(email.(string), "1."))

	second := g.GenerateForColumn(types.SchemaColumn{Name: "contact_email", Type: "varchar"})
	assert.True(t, strings.HasPrefix(second.(string), "2."))

	title := g.GenerateForColumn(types.SchemaColumn{Name: "title", Type: "varchar"})
	require.IsType(t, "", title)
	assert.False(t, strings.HasSuffix(title.(string), "."))

	url := g.GenerateForColumn(types.SchemaColumn{Name: "website_url", Type: "text"})
	assert.True(t, strings.HasPrefix(url.(string), "http"))
}

func TestGenerate_ByType(t *testing.T) {
	g, err := NewDataGenerator("en-US", 7)
	require.NoError(t, err)

	assert.IsType(t, 0, g.Generate("INTEGER"))
	assert.IsType(t, 0, g.Generate("bigserial"))
	assert.IsType(t, true, g.Generate("boolean"))
	assert.IsType(t, time.Time{}, g.Generate("timestamp with time zone"))
	assert.IsType(t, 0.0, g.Generate("numeric(10,2)"))
	assert.IsType(t, "", g.Generate("varchar(255)"))

	date := g.Generate("date")
	require.IsType(t, "", date)
	_, err = time.Parse("2006-01-02", date.(string))
	assert.NoError(t, err)

	n := g.Generate("int").(int)
	assert.GreaterOrEqual(t, n, 1)
	assert.LessOrEqual(t, n, 1000000)
}

func TestGenerateForColumn_SameSeedSameValues(t *testing.T) {
	a, err := NewDataGenerator("en-US", 99)
	require.NoError(t, err)
	b, err := NewDataGenerator("en-US", 99)
	require.NoError(t, err)

	col := types.SchemaColumn{Name: "name", Type: "text"}
	for i := 0; i < 5; i++ {
		assert.Equal(t, a.GenerateForColumn(col), b.GenerateForColumn(col))
	}
}
