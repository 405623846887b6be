// Package cli implements the toolbox command line: identifier checks and
// schema projections for the shared response shapes.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	j "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/plangrid/toolbox/internal/config"
)

// Version is injected at build time.
var Version = "dev"

// Output formats accepted by --format.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// NewRootCommand builds the command tree. cfg has already been loaded; its
// message settings are applied before any subcommand runs.
func NewRootCommand(cfg config.Config, logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "toolbox",
		Short:         "Validate identifiers and print the shared API schemas",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := cfg.ApplyMessages(); err != nil {
				return err
			}
			logger.Debug("configuration applied", "lang", cfg.Lang, "messages_file", cfg.MessagesFile)
			return nil
		},
	}
	root.AddCommand(newValidateCommand(logger), newSchemaCommand(), newOpenAPICommand())
	return root
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case FormatJSON:
		enc := j.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want %s or %s)", format, FormatJSON, FormatYAML)
	}
}
