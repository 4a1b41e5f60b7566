package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/stubworks/cmdstub/internal/config"
	"github.com/stubworks/cmdstub/internal/emit"
	"github.com/stubworks/cmdstub/internal/model"
	"github.com/stubworks/cmdstub/internal/parser"
	"github.com/stubworks/cmdstub/internal/source"
	"github.com/stubworks/cmdstub/internal/stub"
	"github.com/stubworks/cmdstub/internal/typemap"
	"github.com/stubworks/cmdstub/internal/ui"
)

var (
	generateSource  string
	generateTarget  string
	generateLong    bool
	generateNoLong  bool
	generateShort   bool
	generateNoShort bool
	generateForce   bool
	generateVocab   string
	generateJobs    int
)

type generateSummary struct {
	Commands    int `json:"commands"`
	Skipped     int `json:"skipped"`
	DroppedRows int `json:"dropped_rows"`
	Unknown     int `json:"unknown_tokens"`
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Compile documentation pages into a stub tree",
	Long: `Discover documentation pages under the source directory, extract each
documented command, resolve its argument types, and write one stub file
per command under the target directory.

Pages that are not command documentation are skipped. Unparsable pages
and argument rows produce warnings; the batch always continues.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := effectiveGenerateConfig(cmd.Flags())
		if err := cfg.Validate(); err != nil {
			return handleError(ErrConfigInvalid, err, "Enable at least one of --long and --short")
		}

		resolver := typemap.NewResolver()
		if cfg.VocabFile != "" {
			if err := resolver.LoadExtensions(cfg.VocabFile); err != nil {
				return handleError(ErrVocabInvalid, err, "Fix the vocabulary extension file and rerun")
			}
		}

		var spin *ui.Spinner
		if !isJSONOutput() {
			spin = ui.NewSpinner("Compiling documentation")
			spin.Start()
		}

		start := time.Now()
		summary, warnings, err := runGenerate(cfg, resolver)
		if spin != nil {
			spin.Stop()
		}
		if err != nil {
			code := ErrInternal
			switch {
			case errors.Is(err, emit.ErrOutputConflict):
				code = ErrOutputConflict
			case errors.Is(err, os.ErrNotExist):
				code = ErrSourceNotFound
			}
			return handleError(code, err, generateSuggestion(code))
		}

		if isJSONOutput() {
			outputSuccessWithWarnings(summary, warnings, &Meta{
				Count:      summary.Commands,
				Skipped:    summary.Skipped,
				DroppedRow: summary.DroppedRows,
				ElapsedMs:  time.Since(start).Milliseconds(),
			})
			return nil
		}

		for _, w := range warnings {
			fmt.Fprintln(os.Stderr, ui.Warning(w.String()))
		}
		fmt.Println(ui.Successf("wrote %d %s to %s %s",
			summary.Commands, ui.Pluralize("stub", summary.Commands),
			ui.FilePath(cfg.TargetDir),
			ui.Muted.Render(fmt.Sprintf("(%d skipped, %d rows dropped, %d unknown tokens, %s)",
				summary.Skipped, summary.DroppedRows, summary.Unknown, time.Since(start).Round(time.Millisecond)))))
		return nil
	},
}

// runGenerate executes the batch: discover, parse in parallel, assemble,
// render, write. Documents share only the immutable config and
// vocabulary, so the per-document work fans out freely.
func runGenerate(cfg *config.Config, resolver *typemap.Resolver) (*generateSummary, []model.Warning, error) {
	docs, err := source.List(cfg.SourceDir)
	if err != nil {
		return nil, nil, err
	}

	jobs := cfg.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	var (
		mu       sync.Mutex
		commands []*model.CommandRecord
		warnings []model.Warning
		skipped  int
	)

	p := pool.New().WithMaxGoroutines(jobs)
	for _, doc := range docs {
		doc := doc
		p.Go(func() {
			result, err := parser.ParseFile(doc.Path, doc.RelativePath)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if errors.Is(err, parser.ErrNotCommandPage) {
					skipped++
					return
				}
				warnings = append(warnings, model.Warningf(model.WarnDocUnparsable,
					doc.RelativePath, "document skipped: %v", err))
				skipped++
				return
			}
			commands = append(commands, result.Command)
			warnings = append(warnings, result.Warnings...)
		})
	}
	p.Wait()

	sort.Slice(commands, func(i, j int) bool { return commands[i].Name < commands[j].Name })

	opts := stub.Options{LongNames: cfg.LongNames, ShortNames: cfg.ShortNames}
	stubs := make([]*stub.Stub, 0, len(commands))
	for _, cmd := range commands {
		s, assembleWarnings := stub.Assemble(cmd, resolver, opts)
		stubs = append(stubs, s)
		warnings = append(warnings, assembleWarnings...)
	}

	if err := emit.Write(cfg.TargetDir, stubs, cfg.ForceOverwrite); err != nil {
		return nil, nil, err
	}

	summary := &generateSummary{
		Commands: len(stubs),
		Skipped:  skipped,
	}
	for _, w := range warnings {
		switch w.Code {
		case model.WarnRowUnparsable:
			summary.DroppedRows++
		case model.WarnUnknownType:
			summary.Unknown++
		}
	}
	return summary, warnings, nil
}

// effectiveGenerateConfig layers the generate flags over the loaded
// configuration. Only flags the user actually set override it.
func effectiveGenerateConfig(flags *pflag.FlagSet) *config.Config {
	cfg := getConfig()
	if cfg == nil {
		cfg = config.Default()
	}
	if flags.Changed("source") {
		cfg.SourceDir = generateSource
	}
	if flags.Changed("target") {
		cfg.TargetDir = generateTarget
	}
	if flags.Changed("long") {
		cfg.LongNames = generateLong
	}
	if generateNoLong {
		cfg.LongNames = false
	}
	if flags.Changed("short") {
		cfg.ShortNames = generateShort
	}
	if generateNoShort {
		cfg.ShortNames = false
	}
	if generateForce {
		cfg.ForceOverwrite = true
	}
	if flags.Changed("vocab") {
		cfg.VocabFile = generateVocab
	}
	if flags.Changed("jobs") {
		cfg.Jobs = generateJobs
	}
	return cfg
}

func generateSuggestion(code string) string {
	switch code {
	case ErrOutputConflict:
		return "Rerun with --force to clear the target directory"
	case ErrSourceNotFound:
		return "Check --source or the source_dir config key"
	}
	return ""
}

func init() {
	generateCmd.Flags().StringVar(&generateSource, "source", "", "Directory holding documentation pages")
	generateCmd.Flags().StringVar(&generateTarget, "target", "", "Directory to write the stub tree to")
	generateCmd.Flags().BoolVar(&generateLong, "long", true, "Emit long-name parameters")
	generateCmd.Flags().BoolVar(&generateNoLong, "no-long", false, "Do not emit long-name parameters")
	generateCmd.Flags().BoolVar(&generateShort, "short", true, "Emit short-name parameters")
	generateCmd.Flags().BoolVar(&generateNoShort, "no-short", false, "Do not emit short-name parameters")
	generateCmd.Flags().BoolVar(&generateForce, "force", false, "Clear a non-empty target directory before writing")
	generateCmd.Flags().StringVar(&generateVocab, "vocab", "", "YAML vocabulary extension file")
	generateCmd.Flags().IntVar(&generateJobs, "jobs", 0, "Worker pool size (0 = one per CPU)")
	rootCmd.AddCommand(generateCmd)
}
