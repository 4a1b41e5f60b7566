package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stubworks/cmdstub/internal/typemap"
	"github.com/stubworks/cmdstub/internal/ui"
)

var vocabFile string

type vocabTokenView struct {
	Token      string `json:"token"`
	Annotation string `json:"annotation"`
}

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "List the effective type vocabulary",
	Long: `List every type token the resolver knows, including tokens added by a
vocabulary extension file, with the annotation each resolves to.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver := typemap.NewResolver()
		file := vocabFile
		if file == "" && getConfig() != nil {
			file = getConfig().VocabFile
		}
		if file != "" {
			if err := resolver.LoadExtensions(file); err != nil {
				return handleError(ErrVocabInvalid, err, "Fix the vocabulary extension file and rerun")
			}
		}

		var views []vocabTokenView
		for _, token := range resolver.Tokens() {
			expr, _ := resolver.TokenExpr(token)
			views = append(views, vocabTokenView{Token: token, Annotation: expr.Annotation()})
		}

		if isJSONOutput() {
			outputSuccess(views, &Meta{Count: len(views)})
			return nil
		}

		table := ui.NewTable(2)
		table.AddRow("TOKEN", "RESOLVES TO")
		for _, v := range views {
			table.AddRow(v.Token, v.Annotation)
		}
		fmt.Print(table.String())
		fmt.Println(ui.Hint(fmt.Sprintf("%d tokens", len(views))))
		return nil
	},
}

func init() {
	vocabCmd.Flags().StringVar(&vocabFile, "vocab", "", "YAML vocabulary extension file")
	rootCmd.AddCommand(vocabCmd)
}
