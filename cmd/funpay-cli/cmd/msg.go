package cmd

import (
	"fmt"
	"log"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(msgCmd)
}

var msgCmd = &cobra.Command{
	Use:   "msg <chatId> <text>",
	Short: "Sends a chat message through the runner endpoint.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		chatId, err := strconv.Atoi(args[0])
		if err != nil {
			log.Fatal(err)
		}

		account := getAccount(cmd.Context())
		result, err := account.SendMessage(cmd.Context(), chatId, args[1])
		if err != nil {
			log.Fatal(err)
		}

		fmt.Println(string(result.Raw))
	},
}
