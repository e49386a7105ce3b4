package cmd

import (
	"log"
	"os"

	"funpay-client/lib/funpay"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var ordersFlags struct {
	outstanding bool
	completed   bool
	refunded    bool
	exclude     []string
}

func init() {
	ordersCmd.Flags().BoolVar(&ordersFlags.outstanding, "outstanding", true, "include outstanding orders")
	ordersCmd.Flags().BoolVar(&ordersFlags.completed, "completed", false, "include completed orders")
	ordersCmd.Flags().BoolVar(&ordersFlags.refunded, "refunded", false, "include refunded orders")
	ordersCmd.Flags().StringSliceVar(&ordersFlags.exclude, "exclude", nil, "order ids to skip")
	rootCmd.AddCommand(ordersCmd)
}

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Prints the account's orders from the trade page.",
	Run: func(cmd *cobra.Command, args []string) {
		account := getAccount(cmd.Context())
		orders, err := account.GetOrders(cmd.Context(), funpay.OrdersOptions{
			Exclude:            ordersFlags.exclude,
			IncludeOutstanding: ordersFlags.outstanding,
			IncludeCompleted:   ordersFlags.completed,
			IncludeRefunded:    ordersFlags.refunded,
		})
		if err != nil {
			log.Fatal(err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Id", "Title", "Price", "Customer", "Status"})
		for _, order := range orders {
			t.AppendRow(table.Row{
				order.Id,
				order.Title,
				order.Price,
				order.CustomerUsername,
				order.Status,
			})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
