package cmd

import (
	"context"
	"fmt"

	"github.com/Rana718/tableseed/internal/utils"
	"github.com/Rana718/tableseed/pkg/seeder"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// gofakeit has no locale data, so the locale only reaches seeders.
const localeUsage = "Locale passed to seeders through Locale(), e.g. en_US; generated fake values are English regardless"

var (
	seedNoTruncate bool
	seedLocale     string
	seedForce      bool
)

var seedCmd = &cobra.Command{
	Use:   "seed [name...]",
	Short: "Run registered seeders",
	Long: `Run the named seeders, or every registered seeder when no name is given.
All seeders share one run: tables are truncated once and every recorded row is
written when the last seeder returns.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		names := args
		if len(names) == 0 {
			names = seeder.Registered()
		}
		if len(names) == 0 {
			return fmt.Errorf("no seeders registered; register them with seeder.Register and call cmd.Execute from your own main, or use 'tableseed fake'")
		}

		bodies := make([]seeder.RunFunc, len(names))
		for i, name := range names {
			fn, ok := seeder.Lookup(name)
			if !ok {
				return fmt.Errorf("seeder not found: %s", name)
			}
			bodies[i] = fn
		}

		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		opts, err := cfg.SeederOptions()
		if err != nil {
			return err
		}
		if seedNoTruncate {
			opts.Truncate = false
		}
		if seedLocale != "" {
			opts.Locale = seedLocale
		}
		opts.Out = cmd.OutOrStdout()
		opts.Logger = &logger

		input := &utils.InputUtils{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
		if opts.Truncate && !input.AskConfirmation(utils.TruncateWarning(nil), seedForce) {
			fmt.Fprintln(cmd.OutOrStdout(), "❌ Seeding cancelled")
			return nil
		}

		ctx := cmd.Context()
		db, err := connect(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		err = seeder.Run(ctx, db, opts, func(ctx context.Context, s *seeder.TableSeeder) error {
			for i, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "🌱 Running seeder: %s\n", name)
				if err := bodies[i](ctx, s); err != nil {
					return fmt.Errorf("seeder %s: %w", name, err)
				}
			}
			return nil
		})
		if err != nil {
			return err
		}

		color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "✅ Database seeded")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().BoolVar(&seedNoTruncate, "no-truncate", false, "Keep existing rows in the seeded tables")
	seedCmd.Flags().BoolVarP(&seedForce, "force", "f", false, "Truncate without asking for confirmation")
	seedCmd.Flags().StringVar(&seedLocale, "locale", "", localeUsage+" (defaults to the configured language)")
}
