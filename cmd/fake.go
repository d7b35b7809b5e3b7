package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Rana718/tableseed/internal/utils"
	"github.com/Rana718/tableseed/pkg/seeder"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	fakeTables   []string
	fakeCount    int
	fakeTruncate bool
	fakeLocale   string
	fakeSeed     int64
	fakeForce    bool
)

var fakeCmd = &cobra.Command{
	Use:   "fake",
	Short: "Fill tables with generated rows",
	Long: `Generate rows for each --table from its schema. Parent tables are filled
before the tables referencing them.

Examples:
  tableseed fake --table users:50 --table posts:200
  tableseed fake --table users --count 10 --truncate`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		specs, err := parseFakeSpecs(fakeTables, fakeCount)
		if err != nil {
			return err
		}

		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		opts, err := cfg.SeederOptions()
		if err != nil {
			return err
		}
		opts.Truncate = fakeTruncate
		if fakeLocale != "" {
			opts.Locale = fakeLocale
		}
		if fakeSeed != 0 {
			opts.FakerSeed = fakeSeed
		}
		opts.Out = cmd.OutOrStdout()
		opts.Logger = &logger

		if opts.Truncate {
			tables := make([]string, len(specs))
			for i, spec := range specs {
				tables[i] = spec.Table
			}
			input := &utils.InputUtils{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
			if !input.AskConfirmation(utils.TruncateWarning(tables), fakeForce) {
				fmt.Fprintln(cmd.OutOrStdout(), "❌ Fake data generation cancelled")
				return nil
			}
		}

		ctx := cmd.Context()
		db, err := connect(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		err = seeder.Run(ctx, db, opts, func(ctx context.Context, s *seeder.TableSeeder) error {
			return seeder.FakeTables(ctx, s, specs)
		})
		if err != nil {
			return err
		}

		color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "✅ Fake data generated")
		return nil
	},
}

// parseFakeSpecs reads "table" or "table:count" values.
func parseFakeSpecs(values []string, defaultCount int) ([]seeder.FakeSpec, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("at least one --table is required")
	}

	specs := make([]seeder.FakeSpec, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, value := range values {
		table, countStr, hasCount := strings.Cut(value, ":")
		table = strings.TrimSpace(table)
		if table == "" {
			return nil, fmt.Errorf("invalid table spec %q", value)
		}
		if seen[table] {
			return nil, fmt.Errorf("table %s given more than once", table)
		}
		seen[table] = true

		count := defaultCount
		if hasCount {
			n, err := strconv.Atoi(strings.TrimSpace(countStr))
			if err != nil {
				return nil, fmt.Errorf("invalid row count in %q: %w", value, err)
			}
			count = n
		}
		if count <= 0 {
			return nil, fmt.Errorf("invalid row count %d for table %s", count, table)
		}

		specs = append(specs, seeder.FakeSpec{Table: table, Count: count})
	}
	return specs, nil
}

func init() {
	rootCmd.AddCommand(fakeCmd)
	fakeCmd.Flags().StringArrayVarP(&fakeTables, "table", "t", nil, "Table to fill, optionally with a row count (table:count)")
	fakeCmd.Flags().IntVarP(&fakeCount, "count", "n", 10, "Row count for tables given without one")
	fakeCmd.Flags().BoolVar(&fakeTruncate, "truncate", false, "Truncate the tables first")
	fakeCmd.Flags().BoolVarP(&fakeForce, "force", "f", false, "Truncate without asking for confirmation")
	fakeCmd.Flags().StringVar(&fakeLocale, "locale", "", localeUsage)
	fakeCmd.Flags().Int64Var(&fakeSeed, "seed", 0, "Faker seed for reproducible data")
}
