package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"yatube/cmd/app"
	"yatube/cmd/blogctl/output"
	"yatube/internal/config"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Число строк в таблицах",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App, _ *config.Config) error {
			health, err := a.Services.Tables.GetHealth(ctx)
			if err != nil {
				return err
			}

			if statsJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(health)
			}

			output.Section(fmt.Sprintf("Таблиц в схеме: %d", health.Tables))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			rows := []struct {
				name  string
				count int
			}{
				{"users", health.Rows.Users},
				{"groups", health.Rows.Groups},
				{"posts", health.Rows.Posts},
				{"comments", health.Rows.Comments},
				{"follows", health.Rows.Follows},
			}
			for _, row := range rows {
				fmt.Fprintf(w, "%s\t%s\n", row.name, humanize.Comma(int64(row.count)))
			}
			return w.Flush()
		})
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Вывод в JSON")
	rootCmd.AddCommand(statsCmd)
}
