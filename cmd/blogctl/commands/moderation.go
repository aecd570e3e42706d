package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"yatube/cmd/app"
	"yatube/cmd/blogctl/output"
	"yatube/internal/config"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Пользователи",
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <username>",
	Short: "Удалить пользователя с его постами, комментариями и подписками",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App, _ *config.Config) error {
			if err := a.Services.User.DeleteUser(ctx, args[0]); err != nil {
				return err
			}

			output.Success("Пользователь %s удалён", args[0])
			return nil
		})
	},
}

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Посты",
}

var postDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Удалить пост вместе с комментариями и картинкой",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("неверный номер поста: %s", args[0])
		}

		return withApp(cmd.Context(), func(ctx context.Context, a *app.App, _ *config.Config) error {
			if err := a.Services.Post.DeletePost(ctx, id); err != nil {
				return err
			}

			output.Success("Пост %d удалён", id)
			return nil
		})
	},
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Кэш страниц",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Сбросить кэш главной страницы",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App, cfg *config.Config) error {
			if cfg.RedisURL == "" {
				output.Warning("REDIS_URL не задан: кэш живёт в памяти сервера и сбрасывается перезапуском")
				return nil
			}

			if err := a.Services.Feed.InvalidateIndex(ctx); err != nil {
				return err
			}

			output.Success("Кэш страниц сброшен")
			return nil
		})
	},
}

func init() {
	userCmd.AddCommand(userDeleteCmd)
	postCmd.AddCommand(postDeleteCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(userCmd, postCmd, cacheCmd)
}
