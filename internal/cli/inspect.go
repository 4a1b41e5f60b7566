package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/stubworks/cmdstub/internal/model"
	"github.com/stubworks/cmdstub/internal/parser"
	"github.com/stubworks/cmdstub/internal/typemap"
	"github.com/stubworks/cmdstub/internal/ui"
)

var inspectVocab string

type inspectArgumentView struct {
	LongName    string            `json:"long_name"`
	ShortName   string            `json:"short_name,omitempty"`
	Modes       string            `json:"modes"`
	TypesByMode map[string]string `json:"types_by_mode"`
	Annotation  string            `json:"annotation"`
	Description string            `json:"description,omitempty"`
}

type inspectView struct {
	Command   *model.CommandRecord  `json:"command"`
	Arguments []inspectArgumentView `json:"arguments,omitempty"`
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Parse one documentation page and show what was extracted",
	Long: `Parse a single documentation page and show the extracted command
record together with the resolved per-mode types of every argument.

This is the debugging surface for vocabulary maintenance: when a stub
looks wrong, inspect the page it came from to see which raw type text
resolved to what.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		resolver := typemap.NewResolver()
		vocabFile := inspectVocab
		if vocabFile == "" && getConfig() != nil {
			vocabFile = getConfig().VocabFile
		}
		if vocabFile != "" {
			if err := resolver.LoadExtensions(vocabFile); err != nil {
				return handleError(ErrVocabInvalid, err, "Fix the vocabulary extension file and rerun")
			}
		}

		result, err := parser.ParseFile(path, filepath.Base(path))
		if err != nil {
			return handleError(ErrDocUnparsable, err, "")
		}

		view := buildInspectView(result.Command, resolver)

		if isJSONOutput() {
			outputSuccessWithWarnings(view, result.Warnings, nil)
			return nil
		}

		printInspectView(view, result.Warnings)
		return nil
	},
}

func buildInspectView(cmd *model.CommandRecord, resolver *typemap.Resolver) *inspectView {
	view := &inspectView{Command: cmd}
	for i := range cmd.Arguments {
		arg := &cmd.Arguments[i]
		types, _ := resolver.ArgumentTypes(cmd.Name, arg)

		byMode := make(map[string]string, len(types))
		for mode, expr := range types {
			byMode[mode.String()] = expr.Annotation()
		}
		view.Arguments = append(view.Arguments, inspectArgumentView{
			LongName:    arg.LongName,
			ShortName:   arg.ShortName,
			Modes:       arg.DocModes(),
			TypesByMode: byMode,
			Annotation:  typemap.ParameterType(types, arg.Modes).Annotation(),
			Description: arg.Description,
		})
	}
	return view
}

func printInspectView(view *inspectView, warnings []model.Warning) {
	cmd := view.Command
	fmt.Println(ui.Header(ui.CommandName(cmd.Name)))
	if cmd.Summary != "" {
		fmt.Println(ui.Hint(truncate(cmd.Summary, 200)))
	}

	caps := ui.NewTable(2)
	caps.AddRow("category:", cmd.Category())
	caps.AddRow("undoable:", fmt.Sprintf("%t", cmd.Undoable))
	caps.AddRow("queryable:", fmt.Sprintf("%t", cmd.SupportsQuery()))
	caps.AddRow("editable:", fmt.Sprintf("%t", cmd.SupportsEdit()))
	fmt.Print(caps.String())

	if len(view.Arguments) > 0 {
		fmt.Println()
		table := ui.NewTable(4)
		table.AddRow("ARGUMENT", "SHORT", "MODES", "TYPE")
		for _, arg := range view.Arguments {
			table.AddRow(arg.LongName, arg.ShortName, arg.Modes, arg.Annotation)
		}
		fmt.Print(table.String())
	}

	for _, w := range warnings {
		fmt.Println(ui.Warning(w.String()))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}

func init() {
	inspectCmd.Flags().StringVar(&inspectVocab, "vocab", "", "YAML vocabulary extension file")
	rootCmd.AddCommand(inspectCmd)
}
