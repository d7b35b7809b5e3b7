package cmd

import (
	"fmt"
	"strings"

	"github.com/Rana718/tableseed/pkg/types"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var columnsCmd = &cobra.Command{
	Use:   "columns [table]",
	Short: "Show the columns of a table, or list tables",
	Long: `Show the columns the seeder sees for a table: type, nullability, default,
key and foreign key target. Without a table name, list the tables.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		db, err := connect(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		out := cmd.OutOrStdout()
		if len(args) == 0 {
			names, err := db.GetAllTableNames(ctx)
			if err != nil {
				return fmt.Errorf("failed to list tables: %w", err)
			}
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		}

		schema, err := db.GetTableSchema(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to read table %s: %w", args[0], err)
		}

		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"Column", "Type", "Nullable", "Default", "Key", "References"})
		table.SetAutoWrapText(false)
		for _, row := range columnRows(schema) {
			table.Append(row)
		}
		table.Render()
		return nil
	},
}

func columnRows(schema *types.SchemaTable) [][]string {
	rows := make([][]string, 0, len(schema.Columns))
	for _, col := range schema.Columns {
		var keys []string
		if col.IsPrimary {
			keys = append(keys, "PK")
		}
		if col.IsAutoIncrement {
			keys = append(keys, "AUTO")
		}

		ref := ""
		if col.ForeignKeyTable != "" {
			ref = col.ForeignKeyTable + "." + col.ForeignKeyColumn
		}

		nullable := "NO"
		if col.Nullable {
			nullable = "YES"
		}

		rows = append(rows, []string{col.Name, col.Type, nullable, col.Default, strings.Join(keys, ","), ref})
	}
	return rows
}

func init() {
	rootCmd.AddCommand(columnsCmd)
}
