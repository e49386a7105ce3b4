package main

import (
	"fmt"
	"os"

	"funpay-client/cmd/funpay-cli/cmd"
)

func main() {
	goldenKey, ok := os.LookupEnv("FUNPAY_GOLDEN_KEY")
	if !ok {
		fmt.Println("You should specify your golden_key token in the environment variable FUNPAY_GOLDEN_KEY.")
		os.Exit(1)
	}
	cmd.GoldenKey = goldenKey

	cmd.Execute()
}
