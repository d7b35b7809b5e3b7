package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Rana718/tableseed/internal/config"
	"github.com/Rana718/tableseed/template"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	sqliteFlag     bool
	postgresqlFlag bool
	mysqlFlag      bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new tableseed project",
	Long: `Create ` + config.ConfigFileName + `, a sample schema, a sample seeder package and
a DATABASE_URL entry in .env.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbType := template.PostgreSQL
		flagCount := 0

		if sqliteFlag {
			dbType = template.SQLite
			flagCount++
		}
		if postgresqlFlag {
			dbType = template.PostgreSQL
			flagCount++
		}
		if mysqlFlag {
			dbType = template.MySQL
			flagCount++
		}

		if flagCount > 1 {
			return fmt.Errorf("please specify only one database type (--sqlite, --postgresql, or --mysql)")
		}

		return initializeProject(cmd, dbType)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&sqliteFlag, "sqlite", false, "Initialize project for SQLite database")
	initCmd.Flags().BoolVar(&postgresqlFlag, "postgresql", false, "Initialize project for PostgreSQL database")
	initCmd.Flags().BoolVar(&mysqlFlag, "mysql", false, "Initialize project for MySQL database")
}

func initializeProject(cmd *cobra.Command, dbType template.DatabaseType) error {
	if err := config.InitializeProject(string(dbType)); err != nil {
		return err
	}

	tmpl := template.NewProjectTemplate(dbType)

	directories := tmpl.GetDirectoryStructure()
	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	files := map[string]string{
		filepath.Join("db", "schema", "schema.sql"): tmpl.GetSchema(),
		filepath.Join("seeders", "seeders.go"):      tmpl.GetSeeder("seeders"),
	}

	var skipped []string
	for filePath, content := range files {
		if _, err := os.Stat(filePath); err == nil {
			skipped = append(skipped, filePath)
			continue
		}
		if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to create file %s: %w", filePath, err)
		}
	}

	if err := handleEnvFile(tmpl.GetEnvTemplate()); err != nil {
		return fmt.Errorf("failed to handle .env file: %w", err)
	}

	out := cmd.OutOrStdout()
	color.New(color.FgGreen).Fprintf(out, "✅ Initialized tableseed project for %s\n", dbType)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "📝 Created:")
	fmt.Fprintf(out, "   %s\n", config.ConfigFileName)
	for _, dir := range directories {
		fmt.Fprintf(out, "   %s/\n", dir)
	}
	for _, path := range skipped {
		fmt.Fprintf(out, "ℹ️  Skipped %s (already exists)\n", path)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "🚀 Next steps:")
	fmt.Fprintln(out, "   apply db/schema/schema.sql to your database")
	fmt.Fprintln(out, "   import _ \"<module>/seeders\" in a main that calls cmd.Execute")
	fmt.Fprintln(out, "   tableseed fake --table users:10   # or generate rows right away")

	return nil
}

func handleEnvFile(defaultEnvContent string) error {
	envPath := ".env"

	existingContent, err := os.ReadFile(envPath)
	if err != nil {
		if os.IsNotExist(err) {
			return os.WriteFile(envPath, []byte(defaultEnvContent), 0644)
		}
		return err
	}

	existingStr := string(existingContent)
	if strings.Contains(existingStr, "DATABASE_URL") {
		return nil
	}

	if len(existingStr) > 0 && !strings.HasSuffix(existingStr, "\n") {
		existingStr += "\n"
	}
	existingStr += "\n# Added by tableseed\n" + defaultEnvContent

	return os.WriteFile(envPath, []byte(existingStr), 0644)
}
