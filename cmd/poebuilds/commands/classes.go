package commands

import (
	"os"
	"poebuilds/lib/scrapers/poeforum"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(classesCmd)
}

var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "Prints the classes that can be crawled and their forum sections.",
	Run: func(cmd *cobra.Command, args []string) {
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Class", "Forum", "Ascendancies"})
		for _, class := range poeforum.Classes() {
			t.AppendRow(table.Row{
				class.Name,
				poeforum.DefaultBaseUrl + poeforum.ListingPath(class.ForumId, 1),
				strings.Join(class.Subclasses, ", "),
			})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
