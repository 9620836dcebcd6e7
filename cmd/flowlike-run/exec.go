package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TM9657/flow-like-sdk-go/host"
	"github.com/TM9657/flow-like-sdk-go/hostfuncs"
)

var profilePath string

var execCmd = &cobra.Command{
	Use:   "exec <module.wasm>",
	Short: "Execute one node invocation from a run profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		profile, err := loadProfile(profilePath)
		if err != nil {
			return err
		}
		logLevel, err := profile.wireLogLevel()
		if err != nil {
			return err
		}
		inputs, err := profile.wireInputs()
		if err != nil {
			return err
		}

		envOpts := []hostfuncs.EnvironmentOption{
			hostfuncs.WithStreamSink(hostfuncs.StreamFunc(func(eventType, data string) {
				fmt.Fprintf(cmd.ErrOrStderr(), "[stream %s] %s\n", eventType, data)
			})),
		}
		if profile.StorageRoot != "" {
			storage, err := hostfuncs.NewDirStorage(profile.StorageRoot)
			if err != nil {
				return err
			}
			envOpts = append(envOpts, hostfuncs.WithStorage(storage))
		}
		for provider, token := range profile.OAuthTokens {
			envOpts = append(envOpts, hostfuncs.WithOAuthToken(provider, token))
		}

		env := hostfuncs.NewEnvironment(envOpts...)
		for name, value := range profile.Variables {
			env.Vars.Set(name, value)
		}

		executor, err := host.NewExecutor(ctx, host.WithEnvironment(env))
		if err != nil {
			return err
		}
		defer func() { _ = executor.Close(ctx) }()

		wasmBytes, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read module: %w", err)
		}
		module, err := executor.LoadModule(ctx, wasmBytes)
		if err != nil {
			return err
		}

		result, err := module.Run(ctx, host.RunRequest{
			NodeName: profile.Node,
			NodeID:   profile.IDs.Node,
			RunID:    profile.IDs.Run,
			AppID:    profile.IDs.App,
			BoardID:  profile.IDs.Board,
			UserID:   profile.IDs.User,
			Stream:   profile.Stream,
			LogLevel: logLevel,
			Inputs:   inputs,
		})
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))

		if result.Error != nil {
			return fmt.Errorf("node failed: %s", *result.Error)
		}
		return nil
	},
}

func init() {
	execCmd.Flags().StringVarP(&profilePath, "profile", "p", "run.yaml",
		"run profile to execute")
	rootCmd.AddCommand(execCmd)
}
