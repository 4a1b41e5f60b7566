package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/stubworks/cmdstub/internal/model"
)

// mdFrontmatter is the YAML header of a hand-authored plugin command
// page.
type mdFrontmatter struct {
	Command   string `yaml:"command"`
	Category  string `yaml:"category"`
	Undoable  bool   `yaml:"undoable"`
	Queryable bool   `yaml:"queryable"`
	Editable  bool   `yaml:"editable"`
}

// parseMarkdown extracts a command from a Markdown page: YAML
// frontmatter for identity and capabilities, leading paragraphs for the
// summary, and the first GFM table whose header mentions "Long name" for
// the arguments.
func parseMarkdown(content, relativePath string) (*Result, error) {
	fm, body, err := splitFrontmatter(content)
	if err != nil {
		return nil, &UnparsableError{Path: relativePath, Err: err}
	}
	if fm.Command == "" {
		return nil, &UnparsableError{Path: relativePath, Err: errors.New("frontmatter missing command name")}
	}

	cmd := &model.CommandRecord{
		Name:       fm.Command,
		Undoable:   fm.Undoable,
		Queryable:  fm.Queryable,
		Editable:   fm.Editable,
		SourcePath: relativePath,
	}
	if fm.Category != "" {
		cmd.Categories = []string{fm.Category}
	}
	var warnings []model.Warning

	source := []byte(body)
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	doc := md.Parser().Parse(text.NewReader(source))

	var summaryParts []string
	var argTable *extast.Table
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		switch n := node.(type) {
		case *extast.Table:
			if argTable == nil && strings.Contains(strings.ToLower(tableHeaderText(n, source)), "long name") {
				argTable = n
			}
		case *ast.Paragraph:
			if argTable == nil {
				summaryParts = append(summaryParts, inlineText(n, source))
			}
		}
	}
	cmd.Summary = collapseWhitespace(strings.Join(summaryParts, " "))

	if argTable != nil {
		args, rowWarnings := extractMarkdownRows(argTable, source, relativePath)
		cmd.Arguments = args
		warnings = append(warnings, rowWarnings...)
	}

	warnings = append(warnings, checkNameMatchesFile(fm.Command, relativePath)...)
	if len(cmd.Categories) == 0 {
		if fb := fallbackCategory(relativePath); fb != "" {
			cmd.Categories = []string{fb}
		}
		warnings = append(warnings, model.Warningf(model.WarnNoCategory, relativePath,
			"command %q declares no category", fm.Command))
	}

	return &Result{Command: cmd, Warnings: warnings}, nil
}

// splitFrontmatter separates the YAML frontmatter block from the page
// body. Frontmatter is required on plugin command pages; an absent or
// unclosed block is a document-level failure.
func splitFrontmatter(content string) (mdFrontmatter, string, error) {
	var fm mdFrontmatter
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return fm, "", errors.New("page has no frontmatter block")
	}
	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end == -1 {
		return fm, "", errors.New("frontmatter block is not closed")
	}
	raw := strings.Join(lines[1:end], "\n")
	if err := yaml.Unmarshal([]byte(raw), &fm); err != nil {
		return fm, "", fmt.Errorf("parse frontmatter: %w", err)
	}
	return fm, strings.Join(lines[end+1:], "\n"), nil
}

// extractMarkdownRows reads the argument table. Expected columns, by
// header: the long (short) name, the raw type text, the mode markers and
// the description. Rows that do not decompose are dropped with a
// warning.
func extractMarkdownRows(table *extast.Table, source []byte, relativePath string) ([]model.ArgumentRecord, []model.Warning) {
	cols := headerColumns(table, source)
	if cols.name < 0 {
		return nil, []model.Warning{model.Warningf(model.WarnRowUnparsable, relativePath,
			"argument table header has no name column; table dropped")}
	}

	var args []model.ArgumentRecord
	var warnings []model.Warning
	rowIdx := 0
	for node := table.FirstChild(); node != nil; node = node.NextSibling() {
		row, ok := node.(*extast.TableRow)
		if !ok {
			continue
		}
		rowIdx++
		cells := rowCells(row, source)

		longName, shortName := splitNameCell(cellAt(cells, cols.name))
		markers := strings.FieldsFunc(cellAt(cells, cols.modes), func(r rune) bool {
			return r == ' ' || r == ','
		})

		arg, ok := buildArgument(longName, shortName, cellAt(cells, cols.typ), cellAt(cells, cols.desc), markers)
		if !ok {
			warnings = append(warnings, model.Warningf(model.WarnRowUnparsable, relativePath,
				"argument table row %d has no usable name or modes; row dropped", rowIdx))
			continue
		}
		args = append(args, arg)
	}
	return args, warnings
}

type columnIndexes struct {
	name, typ, modes, desc int
}

// headerColumns maps the table header cells to column roles by their
// text. Authors vary the exact wording; matching is by keyword.
func headerColumns(table *extast.Table, source []byte) columnIndexes {
	cols := columnIndexes{name: -1, typ: -1, modes: -1, desc: -1}
	header, ok := table.FirstChild().(*extast.TableHeader)
	if !ok {
		return cols
	}
	idx := 0
	for cell := header.FirstChild(); cell != nil; cell = cell.NextSibling() {
		label := strings.ToLower(inlineText(cell, source))
		switch {
		case strings.Contains(label, "long name"):
			cols.name = idx
		case strings.Contains(label, "type"):
			cols.typ = idx
		case strings.Contains(label, "mode") || strings.Contains(label, "propert"):
			cols.modes = idx
		case strings.Contains(label, "description"):
			cols.desc = idx
		}
		idx++
	}
	return cols
}

func rowCells(row *extast.TableRow, source []byte) []string {
	var cells []string
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		cells = append(cells, inlineText(cell, source))
	}
	return cells
}

func cellAt(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}

// splitNameCell reads "longName (shortName)" cells; a bare name yields
// an empty short name.
func splitNameCell(cell string) (longName, shortName string) {
	longName = cell
	if open := strings.Index(cell, "("); open >= 0 {
		longName = strings.TrimSpace(cell[:open])
		rest := cell[open+1:]
		if close := strings.Index(rest, ")"); close >= 0 {
			shortName = strings.TrimSpace(rest[:close])
		}
	}
	return longName, shortName
}

// tableHeaderText returns the concatenated header cell text of a table.
func tableHeaderText(table *extast.Table, source []byte) string {
	header, ok := table.FirstChild().(*extast.TableHeader)
	if !ok {
		return ""
	}
	return inlineText(header, source)
}

// inlineText concatenates the text content of a node's inline
// descendants.
func inlineText(node ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
		case *ast.AutoLink:
			b.Write(t.URL(source))
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
