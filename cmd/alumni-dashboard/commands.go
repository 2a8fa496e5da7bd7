package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"

	"github.com/cncf/automation/alumni-dashboard/pkg/alumni"
	"github.com/cncf/automation/alumni-dashboard/pkg/browse"
	"github.com/cncf/automation/alumni-dashboard/pkg/dashboard"
	"github.com/cncf/automation/alumni-dashboard/pkg/distribution"
	"github.com/cncf/automation/alumni-dashboard/pkg/mcp"
	"github.com/cncf/automation/alumni-dashboard/pkg/render"
)

var outputFormats = []string{"text", "json", "yaml"}

func addFormatFlag(cmd *cobra.Command, format *string) {
	cmd.Flags().StringVar(format, "format", "text", "Output format: "+strings.Join(outputFormats, ", "))
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return outputFormats, cobra.ShellCompDirectiveDefault
	})
}

// writeStructured prints payload as JSON or YAML.
func writeStructured(w io.Writer, format string, payload interface{}) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON output: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML output: %w", err)
		}
		_, err = fmt.Fprint(w, string(data))
		return err
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func newRenderCommand(opts *options) *cobra.Command {
	var output string
	var text bool

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the dashboard as a static HTML page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.controller(cmd)
			if err != nil {
				return err
			}

			page := render.NewPage(c)
			if output == "" || output == "-" {
				return writePage(cmd.OutOrStdout(), page, text)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating output file: %w", err)
			}
			if err := writePage(f, page, text); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing output file: %w", err)
			}
			klog.FromContext(cmd.Context()).Info("wrote dashboard", "path", output, "alumni", len(page.View.Records))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "-", "File to write the page to (- for stdout)")
	cmd.Flags().BoolVar(&text, "text", false, "Render for the terminal instead of HTML")
	addCriteriaFlags(cmd.Flags(), opts)
	return cmd
}

func writePage(w io.Writer, page render.Page, text bool) error {
	if text {
		return render.Text(w, page)
	}
	return render.HTML(w, page)
}

func newStatsCommand(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the headline numbers and category breakdowns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.settings(cmd)
			if err != nil {
				return err
			}
			// Stats never look at the directory.
			cfg.Records = 0
			snap, err := loadSnapshot(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			ds := snap.Dataset

			if format == "text" {
				styles := render.DefaultStyles()
				var sb strings.Builder
				sb.WriteString(render.StatCards(styles, ds.Summary.Cards()))
				sb.WriteString("\n\n")
				for _, c := range distribution.Charts(ds) {
					sb.WriteString(render.BarChart(styles, c, render.BarWidth))
					sb.WriteString("\n")
				}
				_, err := io.WriteString(cmd.OutOrStdout(), sb.String())
				return err
			}

			return writeStructured(cmd.OutOrStdout(), format, map[string]interface{}{
				"cards":   ds.Summary.Cards(),
				"dataset": ds,
			})
		},
	}
	addFormatFlag(cmd, &format)
	return cmd
}

func newDirectoryCommand(opts *options) *cobra.Command {
	var format string
	var limit int

	cmd := &cobra.Command{
		Use:   "directory",
		Short: "List directory records matching the filter flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 0 {
				return fmt.Errorf("limit must not be negative, got %d", limit)
			}
			c, err := opts.controller(cmd)
			if err != nil {
				return err
			}
			v := c.View()
			shown := v.Records
			if limit > 0 && len(shown) > limit {
				shown = shown[:limit]
			}

			if format == "text" {
				styles := render.DefaultStyles()
				out := fmt.Sprintf("Showing %d of %d alumni\n\n", len(v.Records), v.Total) +
					render.DirectoryTable(styles, dashboard.TableRows(shown))
				_, err := io.WriteString(cmd.OutOrStdout(), out)
				return err
			}

			if shown == nil {
				shown = []alumni.Record{}
			}
			return writeStructured(cmd.OutOrStdout(), format, map[string]interface{}{
				"count":   len(shown),
				"matches": len(v.Records),
				"total":   v.Total,
				"alumni":  shown,
			})
		},
	}
	addFormatFlag(cmd, &format)
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of records to print (0 for all)")
	addCriteriaFlags(cmd.Flags(), opts)
	return cmd
}

func newBrowseCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the dashboard interactively in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.controller(cmd)
			if err != nil {
				return err
			}
			p := tea.NewProgram(browse.New(c), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running browser: %w", err)
			}
			return nil
		},
	}
}

func newServeCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve dashboard tools over stdio using JSON-RPC 2.0",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.settings(cmd)
			if err != nil {
				return err
			}
			srv := mcp.NewServer(func(ctx context.Context) (*mcp.Snapshot, error) {
				return loadSnapshot(ctx, cfg)
			})
			err = srv.Serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
