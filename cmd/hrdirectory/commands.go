// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/AleutianAI/AleutianHR/pkg/logging"
	"github.com/AleutianAI/AleutianHR/services/directory"
	"github.com/AleutianAI/AleutianHR/services/directory/config"
	"github.com/AleutianAI/AleutianHR/services/directory/fallback"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// defaultConfigFile is written by `config init` when --path is not given.
const defaultConfigFile = "hrdirectory.yaml"

// newRootCmd builds the command tree. A fresh tree per call keeps flag
// state out of package globals.
func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "hrdirectory",
		Short: "HR directory service backed by a mock data fixture",
		Long: `hrdirectory serves the HR directory API (companies, employees,
training requests, instructors and HR views). Until real backends are
connected every response is served from a JSON fixture.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to a YAML config file (defaults plus HRDIR_* environment when empty)")

	loadConfig := func() (config.Config, error) {
		return config.Load(configPath)
	}

	// --- Server ---
	var port int
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if port != 0 {
				cfg.Server.Port = port
			}
			return runServe(cmd.Context(), cfg)
		},
	}
	serveCmd.Flags().IntVar(&port, "port", 0, "override server.port")

	// --- Fixture ---
	fixtureCmd := &cobra.Command{
		Use:   "fixture",
		Short: "Inspect or create the mock data fixture",
	}

	var fixturePath string
	var force bool
	fixtureInitCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the built-in starter fixture",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := fixturePath
			if path == "" {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				path = cfg.Fixture.Path
			}
			if err := fallback.WriteDefaultFixture(path, force); err != nil {
				if errors.Is(err, fallback.ErrFixtureExists) {
					return fmt.Errorf("%w (use --force to overwrite)", err)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote starter fixture to %s\n", path)
			return nil
		},
	}
	fixtureInitCmd.Flags().StringVar(&fixturePath, "path", "", "fixture file to write (default fixture.path)")
	fixtureInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	fixtureCheckCmd := &cobra.Command{
		Use:   "check",
		Short: "Resolve the fixture path and report what it contains",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runFixtureCheck(cmd, cfg)
		},
	}

	fixtureShowCmd := &cobra.Command{
		Use:   "show <service>",
		Short: "Print what the fallback loader returns for a service key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			loader := fallback.NewLoader(cfg.FixturePaths(), fallback.Options{Logger: quietLogger()})
			return printJSON(cmd, loader.Load(cmd.Context(), args[0], "cli"))
		},
	}
	fixtureCmd.AddCommand(fixtureInitCmd, fixtureCheckCmd, fixtureShowCmd)

	// --- Config ---
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the service configuration",
	}
	var configOut string
	var configForce bool
	configInitCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Write(configOut, config.DefaultConfig(), configForce); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", configOut)
			return nil
		},
	}
	configInitCmd.Flags().StringVar(&configOut, "path", defaultConfigFile, "file to write")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing file")

	configShowCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			raw, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(raw)
			return err
		},
	}
	configCmd.AddCommand(configInitCmd, configShowCmd)

	// --- Version ---
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hrdirectory %s\n", directory.Version)
		},
	}

	rootCmd.AddCommand(serveCmd, fixtureCmd, configCmd, versionCmd)
	return rootCmd
}

// runServe starts the service and shuts it down on SIGINT or SIGTERM.
func runServe(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	logger := logging.New(logging.Config{
		Level:   level,
		LogDir:  cfg.Logging.Dir,
		Service: cfg.Telemetry.ServiceName,
		JSON:    cfg.Logging.JSON,
	})
	defer logger.Close()
	slog.SetDefault(logger.Slog())

	svc, err := directory.New(cfg, nil)
	if err != nil {
		return fmt.Errorf("failed to create HR directory: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- svc.Run() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := svc.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return <-errCh
}

func runFixtureCheck(cmd *cobra.Command, cfg config.Config) error {
	loader := fallback.NewLoader(cfg.FixturePaths(), fallback.Options{Logger: quietLogger()})
	path, doc, err := loader.Inspect(cmd.Context())
	out := cmd.OutOrStdout()
	if err != nil {
		fmt.Fprintf(out, "Fixture: %s\nStatus:  unavailable (%v)\n", path, err)
		return err
	}
	fmt.Fprintf(out, "Fixture: %s\nStatus:  ok\n", path)

	m, ok := doc.(map[string]any)
	if !ok {
		return fmt.Errorf("fixture %s is not a JSON object", path)
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if list, ok := m[k].([]any); ok {
			fmt.Fprintf(out, "  %-20s %d records\n", k, len(list))
		} else {
			fmt.Fprintf(out, "  %-20s %T\n", k, m[k])
		}
	}
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(raw))
	return err
}

// quietLogger keeps loader errors off the command output; the commands
// report them themselves.
func quietLogger() *slog.Logger {
	return logging.New(logging.Config{Quiet: true}).Slog()
}
