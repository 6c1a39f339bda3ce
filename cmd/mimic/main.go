package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mimicai/mimic/internal/archive"
	"github.com/mimicai/mimic/internal/config"
	"github.com/mimicai/mimic/internal/store"
	"github.com/mimicai/mimic/internal/whatsapp"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "mimic",
		Short: "Mimic - WhatsApp chat export parsing and analysis warehouse",
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := map[string]interface{}{
				"version": version,
				"go":      "1.23",
			}
			return printJSON(output)
		},
	}

	pathsCmd := &cobra.Command{
		Use:   "paths",
		Short: "Print Mimic application paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			output := map[string]interface{}{
				"app_dir":     cfg.AppDir,
				"db_path":     cfg.DBPath,
				"config_path": cfg.ConfigPath,
			}
			return printJSON(output)
		},
	}

	parseCmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a chat export (.txt or .zip) and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := parseExport(args[0])
			if err != nil {
				return err
			}
			output := map[string]interface{}{
				"display_name": archive.DisplayName(args[0]),
				"messages":     result.Messages,
				"senders":      result.Senders,
				"stats":        result.Stats,
				"statistics":   result.Statistics(),
			}
			return printJSON(output)
		},
	}

	ingestCmd := &cobra.Command{
		Use:   "ingest <file>",
		Short: "Parse a chat export and store it in the warehouse",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			result, err := parseExport(args[0])
			if err != nil {
				return err
			}
			if len(result.Messages) == 0 {
				return fmt.Errorf("no valid messages found in %s", args[0])
			}

			if err := os.MkdirAll(cfg.AppDir, 0o755); err != nil {
				return fmt.Errorf("failed to create app dir: %w", err)
			}

			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()

			importID, err := st.SaveImport(result, args[0], archive.DisplayName(args[0]))
			if err != nil {
				return err
			}

			output := map[string]interface{}{
				"import_id":        importID,
				"display_name":     archive.DisplayName(args[0]),
				"message_count":    len(result.Messages),
				"senders":          result.Senders,
				"notices_filtered": result.Stats.NoticesFiltered,
			}
			return printJSON(output)
		},
	}

	sendersCmd := &cobra.Command{
		Use:   "senders",
		Short: "List all senders in the warehouse (alphabetical)",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openWarehouse()
			if err != nil {
				return err
			}
			defer st.Close()

			senders, err := st.ListSenders()
			if err != nil {
				return err
			}
			return printJSON(map[string]interface{}{"senders": senders})
		},
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Print warehouse-wide statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openWarehouse()
			if err != nil {
				return err
			}
			defer st.Close()

			stats, err := st.Stats()
			if err != nil {
				return err
			}
			imports, err := st.ListImports()
			if err != nil {
				return err
			}
			return printJSON(map[string]interface{}{
				"totals":  stats,
				"imports": imports,
			})
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the warehouse database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := store.Reset(cfg.DBPath); err != nil {
				return err
			}
			return printJSON(map[string]interface{}{"reset": true, "db_path": cfg.DBPath})
		},
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(pathsCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(sendersCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// parseExport reads a .txt or .zip export and parses it with the
// configured parser.
func parseExport(path string) (*whatsapp.Result, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	transcript, err := archive.ReadTranscript(path)
	if err != nil {
		return nil, err
	}

	parser, err := whatsapp.NewParser(whatsapp.ParserConfig{
		ExtraNoticePatterns: cfg.ExtraNoticePatterns,
	})
	if err != nil {
		return nil, err
	}

	return parser.Parse(transcript), nil
}

func openWarehouse() (*store.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return store.Open(cfg.DBPath)
}

func printJSON(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
