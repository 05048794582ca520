// SPDX-License-Identifier: Apache-2.0
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/tliron/glsp/server"

	"parsekit/internal/config"
	"parsekit/internal/lsp"
)

const lsName = "parsec-calc"

var (
	configPath string
	logFile    string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:          "parsec-lsp",
	Short:        "Language server publishing calc syntax diagnostics over stdio",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "TOML configuration file")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable glsp protocol debug logs")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// stdout carries the protocol, so logs go to stderr or a file
	var path *string
	if logFile != "" {
		path = &logFile
	}
	commonlog.Configure(max(1, cfg.LogVerbosity()), path)

	handler := lsp.NewHandler()
	s := server.NewServer(handler.Protocol(), lsName, debug)

	commonlog.GetLogger("parsec.lsp").Info("starting language server")
	return s.RunStdio()
}
