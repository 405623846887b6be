package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	toolbox "github.com/plangrid/toolbox"
	"github.com/plangrid/toolbox/dsl"
	"github.com/plangrid/toolbox/schemas"
)

// Resource is the sample item used for the list projections.
var Resource = schemas.Response().
	Field("id", dsl.MustObjectID(dsl.Required())).
	Field("uid", dsl.MustUUID(dsl.AllowNone())).
	Field("name", dsl.String(dsl.Required())).
	Field("tags", dsl.CommaSeparatedList(dsl.String())).
	Title("Resource").
	MustBuild()

var namedSchemas = map[string]func() toolbox.Schema{
	"error":    schemas.Error,
	"resource": func() toolbox.Schema { return Resource },
	"list":     func() toolbox.Schema { return schemas.ListOf(Resource) },
	"page":     func() toolbox.Schema { return schemas.PaginatedListOf(Resource) },
}

// SchemaNames returns the names accepted by schema --name.
func SchemaNames() []string {
	names := make([]string, 0, len(namedSchemas))
	for n := range namedSchemas {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func newSchemaCommand() *cobra.Command {
	var name, format string
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of a shared schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mk, ok := namedSchemas[strings.ToLower(name)]
			if !ok {
				return fmt.Errorf("unknown schema %q (want one of %s)", name, strings.Join(SchemaNames(), ", "))
			}
			js, err := mk().JSONSchema()
			if err != nil {
				return err
			}
			return encode(cmd.OutOrStdout(), format, js)
		},
	}
	cmd.Flags().StringVar(&name, "name", "error", "schema name: "+strings.Join(SchemaNames(), ", "))
	cmd.Flags().StringVar(&format, "format", FormatJSON, "output format: json or yaml")
	return cmd
}
