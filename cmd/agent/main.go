/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Command agent processes the user data of a newly provisioned instance.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/asgardeo/cloudinit/internal/system/config"
	"github.com/asgardeo/cloudinit/internal/system/log"
)

var (
	agentHome  string
	configPath string
	force      bool
)

var rootCmd = &cobra.Command{
	Use:   "agent",
	Short: "Instance initialization agent",
	Long: `agent fetches the user data of the instance from the provisioning metadata source
and runs the handlers registered for its parts.

The outcome of a run tells whether the machine must reboot and whether the user
data must be processed again on the next boot.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initAgentRuntime()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		log.Sync()
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process the user data of the instance",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUserData(cmd.Context(), cmd.OutOrStdout(), force)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the last recorded user data execution of the instance",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showStatus(cmd.Context(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&agentHome, "home", "", "Agent home directory (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Configuration file (default: <home>/"+config.DefaultConfigFile+")")
	runCmd.Flags().BoolVar(&force, "force", false, "Process the user data even if it has already been executed")

	rootCmd.AddCommand(runCmd, statusCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

// initAgentRuntime loads the configuration, initializes the logger and the agent runtime.
func initAgentRuntime() error {
	home, err := resolveAgentHome(agentHome)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(home, configPath)
	if err != nil {
		return err
	}

	logFile := cfg.Log.File
	if logFile != "" && !filepath.IsAbs(logFile) {
		logFile = filepath.Join(home, logFile)
	}
	if err := log.InitLogger(log.Options{
		Level:      cfg.Log.Level,
		File:       logFile,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return config.InitializeAgentRuntime(home, cfg)
}

// resolveAgentHome returns the agent home directory, defaulting to the working directory.
func resolveAgentHome(home string) (string, error) {
	if home != "" {
		return filepath.Abs(home)
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	return dir, nil
}

// loadConfig loads the configuration file. The default configuration is used when no file
// is given and the default file does not exist.
func loadConfig(home, path string) (*config.Config, error) {
	explicit := path != ""
	if !explicit {
		path = filepath.Join(home, config.DefaultConfigFile)
	}

	cfg, err := config.LoadConfig(path)
	if err == nil {
		return cfg, nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return config.DefaultConfig()
	}
	return nil, fmt.Errorf("failed to load configuration %s: %w", path, err)
}
