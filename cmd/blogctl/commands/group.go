package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"yatube/cmd/app"
	"yatube/cmd/blogctl/output"
	"yatube/internal/config"
	"yatube/internal/validation"
)

var groupForm validation.GroupForm

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Сообщества",
}

var groupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Создать сообщество",
	Long: `Создаёт сообщество. Адрес (slug) должен быть уникальным.

Пример:
  blogctl group create --title "Котики" --slug cats --description "Всё о котиках"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App, _ *config.Config) error {
			group, err := a.Services.Group.CreateGroup(ctx, &groupForm)
			if verrs, ok := validation.AsErrors(err); ok {
				for field, messages := range verrs {
					for _, message := range messages {
						output.Error("%s: %s", field, message)
					}
				}
				return fmt.Errorf("сообщество не создано")
			}
			if err != nil {
				return err
			}

			output.Success("Сообщество «%s» создано: /group/%s/", group.Title, group.Slug)
			return nil
		})
	},
}

var groupListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список сообществ",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App, _ *config.Config) error {
			groups, err := a.Services.Group.ListGroups(ctx)
			if err != nil {
				return err
			}
			if len(groups) == 0 {
				output.Muted("Сообществ пока нет")
				return nil
			}

			output.Section("Сообщества")
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSLUG\tНАЗВАНИЕ")
			for _, group := range groups {
				fmt.Fprintf(w, "%d\t%s\t%s\n", group.GroupID, group.Slug, group.Title)
			}
			return w.Flush()
		})
	},
}

var groupDeleteCmd = &cobra.Command{
	Use:   "delete <slug>",
	Short: "Удалить сообщество, посты остаются без группы",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App, _ *config.Config) error {
			if err := a.Services.Group.DeleteGroup(ctx, args[0]); err != nil {
				return err
			}

			output.Success("Сообщество %s удалено", args[0])
			return nil
		})
	},
}

func init() {
	groupCreateCmd.Flags().StringVar(&groupForm.Title, "title", "", "Название")
	groupCreateCmd.Flags().StringVar(&groupForm.Slug, "slug", "", "Адрес сообщества")
	groupCreateCmd.Flags().StringVar(&groupForm.Description, "description", "", "Описание")

	groupCmd.AddCommand(groupCreateCmd, groupListCmd, groupDeleteCmd)
	rootCmd.AddCommand(groupCmd)
}
