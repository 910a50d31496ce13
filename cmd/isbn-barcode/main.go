// seehuhn.de/go/barcode - ISBN barcodes as Encapsulated PostScript
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Isbn-barcode generates ISBN barcodes as EPS files.
//
// Usage:
//
//	isbn-barcode generate [flags] ISBN [ADDON]
//	isbn-barcode serve [flags]
//	isbn-barcode config init|show
//
// Default values are read from a YAML configuration file, see
// "isbn-barcode config show".
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"seehuhn.de/go/barcode/ean"
	"seehuhn.de/go/barcode/internal/config"
	"seehuhn.de/go/barcode/internal/server"
	"seehuhn.de/go/barcode/internal/store"
	"seehuhn.de/go/barcode/isbn"
)

var log = logging.Logger("isbn-barcode")

type options struct {
	configPath string
	debug      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "isbn-barcode",
		Short: "Generate ISBN barcodes as EPS files",
		Long: `isbn-barcode converts a 13-digit ISBN, and an optional 5-digit add-on,
into an Encapsulated PostScript file with an EAN-13 barcode.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.debug {
				logging.SetAllLoggers(logging.LevelDebug)
			} else {
				logging.SetAllLoggers(logging.LevelWarn)
			}
		},
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file path")
	root.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging")

	root.AddCommand(newGenerateCmd(opts))
	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	return root
}

func newService(cfg *config.Config) *isbn.Service {
	defaults := isbn.Defaults{
		BarHeightMM:   cfg.Barcode.BarHeightMM,
		DPI:           cfg.Barcode.DPI,
		AddOnOffsetMM: cfg.Barcode.AddOnOffsetMM,
	}
	return isbn.NewService(store.New(cfg.Output.Dir), defaults, cfg.Tag())
}

func newGenerateCmd(opts *options) *cobra.Command {
	var (
		barHeight   float64
		addOnOffset float64
		dpi         int
		output      string
		complete    bool
	)

	cmd := &cobra.Command{
		Use:   "generate ISBN [ADDON]",
		Short: "Generate a barcode",
		Long: `Generate an EPS barcode for the given ISBN and optional add-on.

The file is written to the path given by --output, which is relative to
the configured output directory.  Use "-o -" to write to standard output.
Without --output, the document is written to standard output unless this
is a terminal, in which case a file named after the ISBN is created.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			flags := cmd.Flags()
			if !flags.Changed("bar-height") {
				barHeight = cfg.Barcode.BarHeightMM
			}
			if !flags.Changed("dpi") {
				dpi = cfg.Barcode.DPI
			}

			req := &isbn.Request{
				ISBN:        args[0],
				BarHeightMM: barHeight,
				DPI:         dpi,
			}
			if flags.Changed("addon-offset") {
				req.AddOnOffsetMM = &addOnOffset
			}
			if len(args) > 1 {
				req.AddOn = args[1]
			}
			if complete {
				prefix, _ := isbn.Normalize(req.ISBN)
				check, ok := ean.ISBN13CheckDigit(prefix)
				if !ok {
					return fmt.Errorf("--complete needs a 12-digit prefix, got %q", req.ISBN)
				}
				req.ISBN = prefix + strconv.Itoa(check)
			}

			svc := newService(cfg)
			res := svc.Generate(req)
			if !res.Success {
				return errors.New(res.Message)
			}

			out := cmd.OutOrStdout()
			if output == "" && isTerminal(out) {
				value, addOn, _ := isbn.Check(req)
				output = isbn.FileName(value, addOn)
			}
			if output == "" || output == "-" {
				_, err := io.WriteString(out, res.Document)
				return err
			}

			saved := svc.Save(cmd.Context(), res.Document, output)
			if !saved.Success {
				return errors.New(saved.Message)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), saved.Message)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&barHeight, "bar-height", 15, "height of the guard bars in mm")
	flags.Float64Var(&addOnOffset, "addon-offset", 0, "vertical offset of the add-on in mm")
	flags.IntVar(&dpi, "dpi", 300, "output resolution recorded in the file")
	flags.StringVarP(&output, "output", "o", "", "output file, or - for standard output")
	flags.BoolVar(&complete, "complete", false, "append the check digit to a 12-digit ISBN prefix")
	return cmd
}

func newServeCmd(opts *options) *cobra.Command {
	var listenAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if listenAddr != "" {
				cfg.Server.Listen = listenAddr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(newService(cfg), &cfg.Server)
			err = srv.ListenAndServe(ctx, cfg.Server.Listen)
			log.Info("server stopped")
			return err
		},
	}
	cmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "override listen address")
	return cmd
}

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			if path == "" {
				path = config.DefaultPath()
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}
			err := config.Save(path, config.Default())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "wrote", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			err = enc.Encode(cfg)
			if err != nil {
				return err
			}
			return enc.Close()
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
