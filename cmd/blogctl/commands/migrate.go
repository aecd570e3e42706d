package commands

import (
	"github.com/spf13/cobra"

	"yatube/cmd/blogctl/output"
	"yatube/internal/config"
	"yatube/internal/database"
)

var migrationsPath string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Применить схему БД",
	Long: `Выполняет SQL файл схемы. Все таблицы создаются через IF NOT EXISTS,
поэтому повторный запуск безопасен.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		if migrationsPath == "" {
			migrationsPath = cfg.MigrationsPath
		}

		db, err := database.Open(database.DSN(cfg))
		if err != nil {
			return err
		}
		defer db.CloseDB()

		if err := db.RunMigrations(migrationsPath); err != nil {
			return err
		}

		output.Success("Схема применена: %s", migrationsPath)
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrationsPath, "file", "", "SQL файл схемы (по умолчанию MIGRATIONS_PATH)")
	rootCmd.AddCommand(migrateCmd)
}
