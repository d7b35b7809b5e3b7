package seeder

import (
	"fmt"
	"strings"
	"time"

	"github.com/Rana718/tableseed/pkg/types"
	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/text/language"
)

type DataGenerator struct {
	faker   *gofakeit.Faker
	locale  string
	counter int
}

// NormalizeLocale turns an application language such as "en-US" into a faker
// locale such as "en_US".
func NormalizeLocale(lang string) (string, error) {
	tag, err := language.Parse(strings.ReplaceAll(lang, "_", "-"))
	if err != nil {
		return "", fmt.Errorf("invalid locale %q: %w", lang, err)
	}
	return strings.ReplaceAll(tag.String(), "-", "_"), nil
}

// NewDataGenerator returns a generator seeded with seed (zero means the clock). The locale
// is validated and reported by Locale; gofakeit itself only produces English data.
func NewDataGenerator(locale string, seed int64) (*DataGenerator, error) {
	normalized, err := NormalizeLocale(locale)
	if err != nil {
		return nil, err
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &DataGenerator{
		faker:  gofakeit.New(seed),
		locale: normalized,
	}, nil
}

func (g *DataGenerator) Locale() string {
	return g.locale
}

// Faker exposes the underlying gofakeit instance for seeders that need more than column hints.
func (g *DataGenerator) Faker() *gofakeit.Faker {
	return g.faker
}

func (g *DataGenerator) GenerateForColumn(col types.SchemaColumn) any {
	if col.Nullable && g.faker.Number(0, 9) < 2 {
		return nil
	}

	// Column name hints win over the declared type
	colLower := strings.ToLower(col.Name)
	switch {
	case strings.Contains(colLower, "email"):
		return g.email()
	case strings.Contains(colLower, "name") && !strings.Contains(colLower, "file") && !strings.Contains(colLower, "user"):
		return g.faker.Name()
	case strings.Contains(colLower, "title"):
		return strings.TrimSuffix(g.faker.Sentence(4), ".")
	case strings.Contains(colLower, "description") || strings.Contains(colLower, "content"):
		return g.faker.Sentence(10)
	case strings.Contains(colLower, "url") || strings.Contains(colLower, "link"):
		return g.faker.URL()
	case strings.Contains(colLower, "phone"):
		return g.faker.Phone()
	case strings.Contains(colLower, "address"):
		return g.faker.Address().Address
	}

	return g.Generate(col.Type)
}

func (g *DataGenerator) Generate(colType string) any {
	typeUpper := strings.ToUpper(colType)

	// VARCHAR(255) -> VARCHAR
	if idx := strings.Index(typeUpper, "("); idx > 0 {
		typeUpper = typeUpper[:idx]
	}

	switch {
	case strings.Contains(typeUpper, "INT") || strings.Contains(typeUpper, "SERIAL"):
		return g.faker.Number(1, 1000000)
	case strings.Contains(typeUpper, "BOOL"):
		return g.faker.Bool()
	case strings.Contains(typeUpper, "TIMESTAMP") || strings.Contains(typeUpper, "DATETIME"):
		return g.timestamp()
	case strings.Contains(typeUpper, "DATE"):
		return g.timestamp().Format("2006-01-02")
	case strings.Contains(typeUpper, "DECIMAL") || strings.Contains(typeUpper, "NUMERIC") ||
		strings.Contains(typeUpper, "FLOAT") || strings.Contains(typeUpper, "DOUBLE") ||
		strings.Contains(typeUpper, "REAL"):
		return g.faker.Float64Range(0, 10000)
	case strings.Contains(typeUpper, "UUID"):
		return g.faker.UUID()
	case strings.Contains(typeUpper, "JSON"):
		return `{"generated": true}`
	default:
		return g.faker.Word()
	}
}

// email stays unique across a run so UNIQUE constraints hold.
func (g *DataGenerator) email() string {
	g.counter++
	return fmt.Sprintf("%d.%s", g.counter, g.faker.Email())
}

func (g *DataGenerator) timestamp() time.Time {
	now := time.Now()
	return g.faker.DateRange(now.AddDate(-1, 0, 0), now).Truncate(time.Second)
}
