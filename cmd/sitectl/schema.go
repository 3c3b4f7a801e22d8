package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hutchinsdata/site/internal/schema"
)

func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", format)
	}
}

func newSchemaCmd(_ *globals) *cobra.Command {
	var format, typeName string
	var structure bool
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the content document types",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := schema.Default()
			out := cmd.OutOrStdout()
			switch {
			case structure:
				return encode(out, format, schema.Structure())
			case typeName != "":
				t, ok := reg.Get(typeName)
				if !ok {
					return fmt.Errorf("unknown document type %q", typeName)
				}
				return encode(out, format, t)
			default:
				return encode(out, format, reg.All())
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml or json")
	cmd.Flags().StringVarP(&typeName, "type", "t", "", "print a single document type")
	cmd.Flags().BoolVar(&structure, "structure", false, "print the editing tool content tree instead")
	return cmd
}

// readDocuments loads one document or a list of documents from a JSON or
// YAML file. Each document must carry _type.
func readDocuments(path string) ([]map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var v any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &v)
	default:
		err = json.Unmarshal(raw, &v)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	switch d := v.(type) {
	case map[string]any:
		return []map[string]any{d}, nil
	case []any:
		docs := make([]map[string]any, 0, len(d))
		for i, item := range d {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%s: item %d is not an object", path, i)
			}
			docs = append(docs, m)
		}
		return docs, nil
	default:
		return nil, fmt.Errorf("%s: expected an object or a list of objects", path)
	}
}

func docLabel(doc map[string]any, i int) string {
	if id, ok := doc["_id"].(string); ok && id != "" {
		return id
	}
	return fmt.Sprintf("#%d", i)
}

func newValidateCmd(_ *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Validate exported documents against the schema",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := schema.Default()
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				docs, err := readDocuments(path)
				if err != nil {
					return err
				}
				for i, doc := range docs {
					typeName, _ := doc["_type"].(string)
					if typeName == "" {
						return fmt.Errorf("%s %s: missing _type", path, docLabel(doc, i))
					}
					issues := reg.Validate(typeName, doc)
					for _, is := range issues {
						fmt.Fprintf(out, "%s %s (%s): %s\n", path, docLabel(doc, i), typeName, is)
					}
					if schema.HasErrors(issues) {
						failed++
					}
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d document(s) failed validation", failed)
			}
			fmt.Fprintln(out, "ok")
			return nil
		},
	}
}
