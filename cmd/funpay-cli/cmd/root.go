package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"funpay-client/lib/funpay"
	"funpay-client/lib/telemetry"

	"github.com/spf13/cobra"
)

var GoldenKey string

var rootCmd = &cobra.Command{
	Use:   "funpay-cli",
	Short: "funpay-cli is a CLI interface for the funpay marketplace client.",
}

func Execute() {
	telemetry.InitSlog(os.Getenv("DEBUG") != "")

	// telemetry config is optional for one-shot CLI runs
	tel, err := telemetry.SetupFromEnv(context.Background(), "funpay-cli")
	if err == nil {
		defer tel.Shutdown(context.Background())
		telemetry.InstrumentPerfStats(context.Background())
	} else if !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func getAccount(ctx context.Context) *funpay.Account {
	account, err := funpay.GetAccount(ctx, funpay.AccountOptions{
		GoldenKey: GoldenKey,
	})
	if err != nil {
		log.Fatal(err)
	}
	return account
}
