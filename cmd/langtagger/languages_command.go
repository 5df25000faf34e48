package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"langtagger/internal/language"
)

func newLanguagesCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "languages [code-or-name...]",
		Short:       "List known ISO 639 language codes, or resolve the given codes and names",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := language.All()
			if len(args) > 0 {
				entries = entries[:0:0]
				for _, arg := range languageArgs(args) {
					entry, ok := language.Lookup(arg)
					if !ok {
						return fmt.Errorf("unknown language %q", arg)
					}
					entries = append(entries, entry)
				}
			}
			if asJSON {
				return writeJSON(cmd, entries)
			}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{entry.ISO2, entry.ISO3, entry.ISO3B, entry.Name})
			}
			fmt.Fprint(cmd.OutOrStdout(), renderTable("",
				[]string{"ISO 639-1", "ISO 639-2/T", "ISO 639-2/B", "Name"},
				rows,
				nil,
			))
			return nil
		},
	}
	addJSONFlag(cmd, &asJSON)
	return cmd
}

func languageArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
