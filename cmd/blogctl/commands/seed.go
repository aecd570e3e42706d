package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"yatube/cmd/app"
	"yatube/cmd/blogctl/output"
	"yatube/internal/config"
	"yatube/internal/seed"
)

var (
	seedOptions seed.Options
	seedValue   int64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Заполнить БД тестовыми данными",
	Long: `Создаёт пользователей, сообщества, посты, комментарии и подписки.
Только для разработки: у всех пользователей одинаковый пароль.

Пример:
  blogctl seed --users 5 --posts 15`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App, cfg *config.Config) error {
			if cfg.IsProduction() {
				output.Warning("APP_ENV=%s: тестовые данные в рабочей БД", cfg.Env)
			}
			if seedValue == 0 {
				seedValue = time.Now().UnixNano()
			}

			result, err := seed.New(a.Repo, seedValue).Run(ctx, seedOptions)
			if err != nil {
				return err
			}

			output.Success("Пользователей: %d, сообществ: %d, постов: %d, комментариев: %d, подписок: %d",
				result.Users, result.Groups, result.Posts, result.Comments, result.Follows)
			output.Muted("Пароль всех пользователей: %s", seedOptions.Password)
			return nil
		})
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedOptions.Users, "users", 5, "Число пользователей")
	seedCmd.Flags().IntVar(&seedOptions.Groups, "groups", 3, "Число сообществ")
	seedCmd.Flags().IntVar(&seedOptions.PostsPerUser, "posts", 15, "Постов на пользователя")
	seedCmd.Flags().IntVar(&seedOptions.Comments, "comments", 20, "Число комментариев")
	seedCmd.Flags().StringVar(&seedOptions.Password, "password", seed.DefaultPassword, "Пароль пользователей")
	seedCmd.Flags().Int64Var(&seedValue, "seed", 0, "Зерно генератора для повторяемых данных")
	rootCmd.AddCommand(seedCmd)
}
