package cmd

import (
	"fmt"
	"log"
	"strconv"

	"funpay-client/lib/funpay"

	"github.com/spf13/cobra"
)

var raiseCurrency bool

func init() {
	raiseCmd.Flags().BoolVar(&raiseCurrency, "currency", false, "the category is an in-game currency category")
	rootCmd.AddCommand(raiseCmd)
}

var raiseCmd = &cobra.Command{
	Use:   "raise <categoryId>",
	Short: "Requests a raise of the category's lots and prints the wait time.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		categoryId, err := strconv.Atoi(args[0])
		if err != nil {
			log.Fatal(err)
		}

		category := funpay.Category{Id: categoryId}
		if raiseCurrency {
			category.Type = funpay.CategoryCurrency
		}

		account := getAccount(cmd.Context())
		category.GameId, err = account.GetCategoryGameId(cmd.Context(), category)
		if err != nil {
			log.Fatal(err)
		}

		response, wait, err := account.RequestLotsRaise(cmd.Context(), category)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Println(response)
		fmt.Printf("next raise possible in %d seconds\n", wait)
	},
}
