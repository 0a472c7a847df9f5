package main

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"
	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/client"
	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/config"
	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/controller"
	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/models"
	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/render"
)

func newAnalyzeCommand() *cobra.Command {
	var (
		stream  bool
		plain   bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <image>",
		Short: "Analyze one outfit photo and print the critique",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadClientConfig()
			if err != nil {
				return err
			}
			if plain {
				cfg.Renderer = config.RendererPlain
			}

			logger := log.New(io.Discard, "", 0)
			if verbose {
				logger = log.New(cmd.ErrOrStderr(), "stylesense: ", log.LstdFlags)
			}

			c := client.New(cfg.Endpoint, newHTTPClient(cfg), logger)
			if stream {
				return streamAnalysis(cmd, c, args[0])
			}

			r, err := render.Resolve(cfg.Renderer, cfg.Style, cfg.WordWrap, logger)
			if err != nil {
				return err
			}
			return analyzeOnce(cmd, c, r, logger, args[0])
		},
	}

	cmd.Flags().BoolVar(&stream, "stream", false, "print the critique as it is generated (raw markdown)")
	cmd.Flags().BoolVar(&plain, "plain", false, "print raw markdown instead of rendering it")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log requests to stderr")

	return cmd
}

// analyzeOnce drives the same controller as the interactive UI and prints
// whatever the results area ends up showing.
func analyzeOnce(cmd *cobra.Command, analyzer controller.Analyzer, r render.Renderer, logger *log.Logger, path string) error {
	ctrl := controller.New(
		controller.NewView(),
		analyzer,
		r,
		controller.WithLogger(logger),
		controller.WithAlerter(controller.AlerterFunc(func(msg string) {
			fmt.Fprintln(cmd.ErrOrStderr(), msg)
		})),
	)

	if err := ctrl.AcquirePath(path); err != nil {
		return errSilent
	}

	err := ctrl.Analyze(cmd.Context())
	vm := ctrl.View().Snapshot()
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), vm.Content)
		return errSilent
	}

	fmt.Fprintln(cmd.OutOrStdout(), vm.Content)
	return nil
}

func streamAnalysis(cmd *cobra.Command, c *client.Client, path string) error {
	f, err := models.ReadFile(path)
	if err != nil {
		return err
	}
	if !f.IsImage() {
		return errors.New(controller.AlertNotImage)
	}

	out := cmd.OutOrStdout()
	_, err = c.Stream(cmd.Context(), f, func(delta string) error {
		_, werr := io.WriteString(out, delta)
		return werr
	})
	fmt.Fprintln(out)
	if err != nil {
		return errors.New(controller.ErrorMessage(err))
	}
	return nil
}

// errSilent marks failures whose message was already printed.
var errSilent = errors.New("")
