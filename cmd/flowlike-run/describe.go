package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TM9657/flow-like-sdk-go/host"
)

var describeCmd = &cobra.Command{
	Use:   "describe <module.wasm>",
	Short: "Print the node definitions a module declares",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		wasmBytes, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read module: %w", err)
		}

		executor, err := host.NewExecutor(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = executor.Close(ctx) }()

		module, err := executor.LoadModule(ctx, wasmBytes)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(module.Definitions(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
