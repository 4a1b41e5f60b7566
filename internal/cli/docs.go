package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	builtindocs "github.com/stubworks/cmdstub/docs"
	"github.com/stubworks/cmdstub/internal/ui"
)

const docsCommandHint = "For command usage, use: cmdstub help <command>"

var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: "Browse the bundled documentation",
	Long: `Browse long-form documentation bundled into the cmdstub binary.

Without arguments, lists the available topics. With a topic path
(e.g. "guide/getting-started"), renders it for the terminal.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return listDocsTopics()
		}
		return showDocsTopic(args[0])
	},
}

func listDocsTopics() error {
	topics, err := docsTopics()
	if err != nil {
		return handleError(ErrInternal, err, "")
	}

	if isJSONOutput() {
		outputSuccess(topics, &Meta{Count: len(topics)})
		return nil
	}

	fmt.Println(ui.Header("Topics"))
	list := ui.NewList()
	for _, topic := range topics {
		list.Add(topic)
	}
	fmt.Print(list.String())
	fmt.Println(ui.Hint(docsCommandHint))
	return nil
}

func showDocsTopic(topic string) error {
	topic = strings.TrimSuffix(path.Clean(topic), ".md")
	content, err := fs.ReadFile(builtindocs.FS, topic+".md")
	if err != nil {
		return handleError(ErrFileNotFound,
			fmt.Errorf("unknown topic %q", topic),
			"Run 'cmdstub docs' to list available topics")
	}

	if isJSONOutput() {
		outputSuccess(map[string]string{"topic": topic, "content": string(content)}, nil)
		return nil
	}

	// Plain passthrough when output is piped.
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Print(string(content))
		return nil
	}

	rendered, err := ui.RenderMarkdown(string(content), ui.TerminalWidth()-ui.MarkdownRenderMargin)
	if err != nil {
		fmt.Print(string(content))
		return nil
	}
	fmt.Print(rendered)
	return nil
}

func docsTopics() ([]string, error) {
	var topics []string
	err := fs.WalkDir(builtindocs.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(p, ".md") {
			topics = append(topics, strings.TrimSuffix(p, ".md"))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(topics)
	return topics, nil
}

func init() {
	rootCmd.AddCommand(docsCmd)
}
