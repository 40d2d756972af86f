package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvandessel/trustgrid/internal/logging"
	"github.com/nvandessel/trustgrid/internal/mcp"
	"github.com/nvandessel/trustgrid/internal/pathutil"
)

func newMCPServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp-server",
		Short: "Serve trustgrid tools over MCP (stdio)",
		Long: `Start a Model Context Protocol server on stdin/stdout.

Tools:
  trustgrid_simulate   Run a fresh simulation and report the final generation
  trustgrid_grade      Grade an intensity with a credibility evaluator

Tool calls are appended to ~/.trustgrid/audit.jsonl unless --no-audit is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			noAudit, _ := cmd.Flags().GetBool("no-audit")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			auditDir := ""
			if !noAudit {
				base, err := pathutil.TrustgridDir()
				if err != nil {
					return err
				}
				auditDir = base
			}

			// stdout carries the protocol; logs go to stderr only.
			server, err := mcp.NewServer(&mcp.Config{
				Name:     "trustgrid",
				Version:  version,
				AuditDir: auditDir,
				Logger:   logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr()),
			})
			if err != nil {
				return fmt.Errorf("failed to create MCP server: %w", err)
			}
			defer server.Close()

			if err := server.Run(cmd.Context()); err != nil {
				return fmt.Errorf("MCP server error: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().Bool("no-audit", false, "Disable the tool call audit log")

	return cmd
}
