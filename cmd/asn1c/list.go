package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/thebagchi/asn1enum-go/lib/constraint"
)

func formatItems(items []constraint.Enumerator) string {
	parts := make([]string, len(items))
	for i, e := range items {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

func init() {
	defineCommand(&cli.Command{
		Name:  "list",
		Usage: "List known types.",
		Action: func(c *cli.Context) error {
			names := make([]string, 0, len(registry))
			for name := range registry {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				spec := registry[name].Spec()
				def := formatItems(spec.Roots())
				if spec.Extensible() {
					def += ", ..."
					if additions := spec.Additions(); len(additions) > 0 {
						def += ", " + formatItems(additions)
					}
				}
				fmt.Fprintf(c.App.Writer, "%s ::= ENUMERATED { %s }\n", name, def)
			}
			return nil
		},
	})
}
