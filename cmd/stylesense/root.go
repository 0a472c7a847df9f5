package main

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/client"
	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/config"
	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/controller"
	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/render"
	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/tui"
)

var (
	endpoint string
	renderer string
)

func newRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stylesense",
		Short: "Outfit analysis in your terminal",
		Long: `StyleSense sends an outfit photo to the analysis service and shows the
stylist's critique rendered as Markdown.

Without a subcommand it opens the interactive UI: drag a photo onto the
terminal window or press ctrl+o to browse for one.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runInteractive,
	}

	rootCmd.PersistentFlags().StringVarP(&endpoint, "endpoint", "e", "", "analysis endpoint (overrides STYLESENSE_ENDPOINT)")
	rootCmd.PersistentFlags().StringVarP(&renderer, "renderer", "r", "", "result renderer: auto, markdown, plain (overrides STYLESENSE_RENDERER)")

	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "stylesense %s (%s) built on %s\n", version, commit, date)
			fmt.Fprintf(cmd.OutOrStdout(), "Go version: %s\n", runtime.Version())
			fmt.Fprintf(cmd.OutOrStdout(), "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// loadClientConfig applies flag overrides on top of the environment.
func loadClientConfig() (*config.ClientConfig, error) {
	cfg, err := config.LoadClient()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	if endpoint != "" {
		cfg.Endpoint = endpoint
	}
	if renderer != "" {
		cfg.Renderer = renderer
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	return cfg, nil
}

func newHTTPClient(cfg *config.ClientConfig) *http.Client {
	return &http.Client{Timeout: cfg.Timeout}
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadClientConfig()
	if err != nil {
		return err
	}

	logger := log.New(io.Discard, "", 0)
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "stylesense")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger = log.Default()
	}

	r, err := render.Resolve(cfg.Renderer, cfg.Style, cfg.WordWrap, logger)
	if err != nil {
		return err
	}
	logger.Printf("renderer: %s, endpoint: %s\n", r.Name(), cfg.Endpoint)

	view := controller.NewView()
	bridge := tui.NewBridge(view)
	ctrl := controller.New(
		view,
		client.New(cfg.Endpoint, newHTTPClient(cfg), logger),
		r,
		controller.WithAlerter(bridge),
		controller.WithLogger(logger),
	)

	return tui.Run(ctrl, bridge, cfg.Endpoint)
}
