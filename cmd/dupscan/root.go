package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/PratikDhanave/sponsorship-service/internal/config"
	"github.com/PratikDhanave/sponsorship-service/internal/content"
	"github.com/PratikDhanave/sponsorship-service/internal/dupscan"
	"github.com/PratikDhanave/sponsorship-service/internal/logging"
)

type scanOptions struct {
	configPath string
	baseURL    string
	collection string
	pageSize   int
	format     string
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "dupscan",
		Short: "Report person records in the content API that share a name",
		Long: `dupscan fetches one batch of person records from the content API and lists
every record whose trimmed, lowercased "first last" name matches an earlier one.
Each later match is paired with the first record seen under that name.

Only a single page of up to --page-size records is checked. A warning is
printed when the page is full or the API reports more records.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScan(cmd, opts, out)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML config file")
	f.StringVar(&opts.baseURL, "url", "", "Content API base URL (default http://localhost:1337)")
	f.StringVar(&opts.collection, "collection", "", "Collection to scan (default children)")
	f.IntVar(&opts.pageSize, "page-size", 0, "Maximum number of records to fetch (default 1000)")
	f.StringVarP(&opts.format, "format", "f", "text", "Output format: text or json")

	return cmd
}

func runScan(cmd *cobra.Command, opts *scanOptions, out io.Writer) error {
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unknown format %q (want text or json)", opts.format)
	}

	cfg, err := config.LoadScanner(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyFlags(cmd, opts, &cfg.Content)

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	client, err := content.NewClient(cfg.Content, nil)
	if err != nil {
		return fmt.Errorf("creating content client: %w", err)
	}

	runner, err := dupscan.NewRunner(client, cfg.Content.PageSize, logger)
	if err != nil {
		return err
	}

	logger.Debug("scanning", zap.String("url", client.CollectionURL(cfg.Content.PageSize)))

	report, err := runner.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("%w (is the content API running at %s?)", err, cfg.Content.BaseURL)
	}

	if opts.format == "json" {
		return report.WriteJSON(out)
	}
	return report.WriteText(out)
}

// applyFlags lets explicitly set flags win over file and environment.
func applyFlags(cmd *cobra.Command, opts *scanOptions, c *config.ContentConfig) {
	f := cmd.Flags()
	if f.Changed("url") {
		c.BaseURL = opts.baseURL
	}
	if f.Changed("collection") {
		c.Collection = opts.collection
	}
	if f.Changed("page-size") {
		c.PageSize = opts.pageSize
	}
}
