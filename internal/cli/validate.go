package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	toolbox "github.com/plangrid/toolbox"
	"github.com/plangrid/toolbox/dsl"
)

// Identifier kinds accepted by validate --kind.
const (
	KindObjectID = "objectid"
	KindUUID     = "uuid"
)

type validateResult struct {
	Value  string   `json:"value" yaml:"value"`
	Valid  bool     `json:"valid" yaml:"valid"`
	Errors []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

func identifierField(kind string) (toolbox.Field, error) {
	switch strings.ToLower(kind) {
	case KindObjectID:
		return dsl.ObjectID()
	case KindUUID:
		return dsl.UUID()
	default:
		return nil, fmt.Errorf("unknown kind %q (want %s or %s)", kind, KindObjectID, KindUUID)
	}
}

func newValidateCommand(logger *slog.Logger) *cobra.Command {
	var kind, format string
	cmd := &cobra.Command{
		Use:   "validate VALUE...",
		Short: "Check values against the ObjectId or UUID format",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := identifierField(kind)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			results := make([]validateResult, 0, len(args))
			invalid := 0
			for _, a := range args {
				r := validateResult{Value: a, Valid: true}
				if _, err := f.Deserialize(ctx, a, kind, nil); err != nil {
					r.Valid = false
					invalid++
					for _, it := range toolbox.IssuesFromErr("/", err) {
						r.Errors = append(r.Errors, it.Message)
					}
					logger.Debug("invalid value", "kind", kind, "value", a, "error", err)
				}
				results = append(results, r)
			}
			if format == "" {
				for _, r := range results {
					if r.Valid {
						fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", r.Value)
					} else {
						fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", r.Value, strings.Join(r.Errors, "; "))
					}
				}
			} else if err := encode(cmd.OutOrStdout(), format, results); err != nil {
				return err
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d value(s) invalid", invalid, len(args))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", KindObjectID, "identifier kind: objectid or uuid")
	cmd.Flags().StringVar(&format, "format", "", "output format: json or yaml (default plain text)")
	return cmd
}
