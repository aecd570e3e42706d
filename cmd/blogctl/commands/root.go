package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"yatube/cmd/app"
	"yatube/cmd/blogctl/output"
	"yatube/internal/config"
	"yatube/internal/logger"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "blogctl",
	Short: "Администрирование блога Yatube",
	Long: `blogctl управляет блогом из командной строки.

Настройки берутся из .env и переменных окружения, как у сервера:
  blogctl migrate            - применить схему БД
  blogctl group create|list|delete
  blogctl user delete        - удалить пользователя вместе с постами
  blogctl post delete        - удалить пост
  blogctl cache clear        - сбросить кэш главной страницы
  blogctl seed               - заполнить БД тестовыми данными
  blogctl stats              - число строк в таблицах`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "warn"
		if verbose {
			level = "debug"
		}
		slog.SetDefault(logger.New("development", level))
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		output.Error("%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Подробный вывод")
}

// withApp connects everything the server would and runs fn.
func withApp(ctx context.Context, fn func(ctx context.Context, a *app.App, cfg *config.Config) error) error {
	cfg := config.LoadConfig()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a, cfg)
}
