// Command jq255ctl is a small command-line front end over the jq255e and
// jq255s packages: key generation, signing, verification and
// Diffie-Hellman key exchange, selectable by curve and hash name either
// from flags or from an optional TOML config file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doubleodd/jq255/internal/config"
	"github.com/doubleodd/jq255/internal/log"
)

// appState holds the resources shared by every subcommand, built once in
// the root command's PersistentPreRunE from flags and the config file.
type appState struct {
	cfg     *config.Config
	logBack *log.Backend
}

var (
	state      appState
	configPath string
	curveFlag  string
	hashFlag   string
	encFlag    string
	logFile    string
	logLevel   string
	logDisable bool
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jq255ctl",
		Short: "inspect and exercise the jq255e/jq255s signature and key-exchange schemes",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFile(configPath)
			if err != nil {
				return fmt.Errorf("jq255ctl: %v", err)
			}
			if curveFlag != "" {
				cfg.Curve = curveFlag
			}
			if encFlag != "" {
				cfg.Encoding = encFlag
			}
			if hashFlag == "" {
				hashFlag = cfg.HashName
			}
			if logFile != "" {
				cfg.Logging.File = logFile
			}
			if logLevel != "" {
				cfg.Logging.Level = logLevel
			}
			if logDisable {
				cfg.Logging.Disable = true
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("jq255ctl: %v", err)
			}
			backend, err := log.New(cfg.Logging.File, cfg.Logging.Level, cfg.Logging.Disable)
			if err != nil {
				return fmt.Errorf("jq255ctl: %v", err)
			}
			state.cfg = cfg
			state.logBack = backend
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "f", "",
		"path to the jq255ctl configuration file (TOML format)")
	cmd.PersistentFlags().StringVarP(&curveFlag, "curve", "c", "",
		"group to operate over: jq255e or jq255s (overrides the config file)")
	cmd.PersistentFlags().StringVar(&hashFlag, "hash-name", "",
		"hash name to mix into the domain separation for a pre-hashed message")
	cmd.PersistentFlags().StringVarP(&encFlag, "encoding", "e", "",
		"encoding for binary arguments/output: hex or base64")
	cmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"path to the log file (default: stdout)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level: ERROR, WARNING, NOTICE, INFO or DEBUG")
	cmd.PersistentFlags().BoolVar(&logDisable, "log-disable", false,
		"disable logging entirely")

	cmd.AddCommand(newKeygenCommand())
	cmd.AddCommand(newSignCommand())
	cmd.AddCommand(newVerifyCommand())
	cmd.AddCommand(newECDHCommand())

	return cmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
