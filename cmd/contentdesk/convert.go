package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rgonek/contentdesk/document"
	"github.com/rgonek/contentdesk/editor"
	"github.com/spf13/cobra"
)

const (
	formatHTML     = "html"
	formatMarkdown = "markdown"
	formatDoc      = "doc"
)

func newConvertCommand(a *app) *cobra.Command {
	var from, to, preset string
	var showWarnings bool

	cmd := &cobra.Command{
		Use:   "convert <file|->",
		Short: "Convert between stored HTML, Markdown and the editor document",
		Long: "Convert reads HTML, Markdown or a JSON document and writes either the JSON document\n" +
			"or normalized HTML, the same way the editor loads and saves content.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			source := from
			if source == "" {
				source = inferFormat(args[0])
			}
			target := to
			if target == "" {
				target = formatDoc
				if source == formatDoc {
					target = formatHTML
				}
			}

			parser, renderer, err := newConverters(preset, a.cfg.Editor)
			if err != nil {
				return err
			}

			var doc document.Doc
			var warnings []document.Warning
			switch source {
			case formatHTML:
				// The session applies the load rules of the editor.
				session := editor.NewSession(parser, renderer, nil)
				doc = session.Load(string(data))
				warnings = session.Warnings()
			case formatMarkdown:
				result, err := parser.ConvertMarkdown(string(data))
				if err != nil {
					return err
				}
				doc, warnings = result.Doc, result.Warnings
			case formatDoc:
				if err := json.Unmarshal(data, &doc); err != nil {
					return fmt.Errorf("failed to parse document JSON: %w", err)
				}
			default:
				return fmt.Errorf("unknown input format %q (allowed: html, markdown, doc)", source)
			}

			out := cmd.OutOrStdout()
			switch target {
			case formatDoc:
				pretty, err := json.MarshalIndent(doc, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to format document JSON: %w", err)
				}
				fmt.Fprintln(out, string(pretty))
			case formatHTML:
				result, err := renderer.Convert(doc)
				if err != nil {
					return err
				}
				warnings = append(warnings, result.Warnings...)
				fmt.Fprintln(out, result.HTML)
			default:
				return fmt.Errorf("unknown output format %q (allowed: html, doc)", target)
			}

			if showWarnings {
				printWarnings(cmd.ErrOrStderr(), warnings)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Input format: html|markdown|doc (default from file extension)")
	cmd.Flags().StringVar(&to, "to", "", "Output format: html|doc")
	cmd.Flags().StringVar(&preset, "preset", presetBalanced, "Preset: balanced|strict|plain")
	cmd.Flags().BoolVar(&showWarnings, "warnings", false, "Print conversion warnings to stderr")
	return cmd
}

func inferFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return formatMarkdown
	case ".json":
		return formatDoc
	default:
		return formatHTML
	}
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

func printWarnings(w io.Writer, warnings []document.Warning) {
	for _, warning := range warnings {
		if warning.NodeType != "" {
			fmt.Fprintf(w, "warning: %s (%s): %s\n", warning.Type, warning.NodeType, warning.Message)
			continue
		}
		fmt.Fprintf(w, "warning: %s: %s\n", warning.Type, warning.Message)
	}
}
