package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(accountCmd)
}

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Derives a session from the golden_key and prints the account state.",
	Run: func(cmd *cobra.Command, args []string) {
		account := getAccount(cmd.Context())
		snap := account.Snapshot()

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Field", "Value"})
		t.AppendRows([]table.Row{
			{"Id", snap.Id},
			{"Username", snap.Username},
			{"Balance", fmt.Sprintf("%.2f %s", snap.Balance, snap.Currency)},
			{"Active orders", snap.ActiveOrders},
			{"Derived at", snap.DerivedAt.Format(time.ANSIC)},
		})
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
