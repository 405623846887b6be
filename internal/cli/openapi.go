package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/plangrid/toolbox/openapi"
	"github.com/plangrid/toolbox/schemas"
)

func newOpenAPICommand() *cobra.Command {
	var title, format string
	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print an OpenAPI 3 document with the shared schemas as components",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			doc, err := openapi.Document(ctx, title, Version,
				schemas.Error(), Resource, schemas.PaginatedListOf(Resource))
			if err != nil {
				return err
			}
			return encode(cmd.OutOrStdout(), format, doc)
		},
	}
	cmd.Flags().StringVar(&title, "title", "toolbox", "document title")
	cmd.Flags().StringVar(&format, "format", FormatYAML, "output format: json or yaml")
	return cmd
}
