package cmd

import (
	"log"
	"os"
	"strconv"

	"funpay-client/lib/funpay"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var lotsIncludeCurrency bool

func init() {
	lotsCmd.Flags().BoolVar(&lotsIncludeCurrency, "currency", false, "include in-game currency categories")
	rootCmd.AddCommand(lotsCmd)
}

var lotsCmd = &cobra.Command{
	Use:   "lots <userId>",
	Short: "Prints the public lots of the user given as a positional argument.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		userId, err := strconv.Atoi(args[0])
		if err != nil {
			log.Fatal(err)
		}

		lots, err := funpay.GetUserLots(cmd.Context(), userId, funpay.UserLotsOptions{
			IncludeCurrency: lotsIncludeCurrency,
		})
		if err != nil {
			log.Fatal(err)
		}

		titles := make(map[int]string, len(lots.Categories))
		for _, category := range lots.Categories {
			titles[category.Id] = category.Title
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Id", "Category", "Title", "Price", "Server"})
		for _, lot := range lots.Lots {
			t.AppendRow(table.Row{
				lot.Id,
				titles[lot.CategoryId],
				lot.Title,
				lot.Price,
				lot.Server,
			})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
