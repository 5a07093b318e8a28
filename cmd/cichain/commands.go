package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/askiada/go-cichain/pkg/chain/links"
)

func newRootCmd() *cobra.Command {
	var (
		logLevel  string
		logFormat string
	)

	rootCmd := &cobra.Command{
		Use:           "cichain",
		Short:         "Build CI pipelines from their configuration through a chain of links",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return configureLogger(cmd, logLevel, logFormat)
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	rootCmd.AddCommand(newRunCmd(), newLinksCmd())

	return rootCmd
}

func configureLogger(cmd *cobra.Command, level, format string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}

	logrus.SetLevel(lvl)
	logrus.SetOutput(cmd.ErrOrStderr())

	switch strings.ToLower(format) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	default:
		return errors.Errorf("unknown log format %q", format)
	}

	return nil
}

func newLinksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "links",
		Short: "List the registered links and the default chain",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "registered:", strings.Join(links.Names(), ", "))
			fmt.Fprintln(cmd.OutOrStdout(), "default:   ", strings.Join(links.DefaultNames, " -> "))
		},
	}
}
