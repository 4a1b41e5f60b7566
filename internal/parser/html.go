package parser

import (
	"errors"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/stubworks/cmdstub/internal/model"
)

// Layout anchors of the offline reference pages. The pages are generated
// from a template, so these hold across the whole documentation set.
const (
	bannerID          = "banner"
	synopsisID        = "synopsis"
	argTableMarker    = "Long name (short name)"
	argHeaderBgcolor  = "#EEEEEE"
	returnValueMarker = "Return value"
	obsoleteMarker    = "(Obsolete)"
)

// indexTitles are <title> values of pages that list commands instead of
// documenting one: the blank placeholder page and the top-level index.
var indexTitles = map[string]bool{
	"blank":         true,
	"Maya commands": true,
}

func parseHTML(content, relativePath string) (*Result, error) {
	root, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, &UnparsableError{Path: relativePath, Err: err}
	}

	title := strings.TrimSpace(nodeText(findElement(root, atom.Title)))
	if title == "" || indexTitles[title] {
		return nil, ErrNotCommandPage
	}
	// Alphabetical and per-category relisting pages carry a NOINDEX
	// robots meta; the documentation set marks exactly the non-command
	// pages this way.
	if hasNoindexMeta(root) {
		return nil, ErrNotCommandPage
	}

	banner := findByID(root, bannerID)
	if banner == nil {
		return nil, &UnparsableError{Path: relativePath, Err: errors.New("banner section not found")}
	}
	if strings.Contains(nodeText(findElement(banner, atom.H1)), obsoleteMarker) {
		return nil, ErrNotCommandPage
	}

	name := synopsisCommandName(root)
	if name == "" {
		return nil, &UnparsableError{Path: relativePath, Err: errors.New("synopsis command name not found")}
	}

	cmd := &model.CommandRecord{
		Name:       name,
		Categories: bannerCategories(banner),
		SourcePath: relativePath,
	}
	var warnings []model.Warning

	capNode := findCapabilityNode(root)
	if capNode == nil {
		return nil, &UnparsableError{Path: relativePath, Err: errors.New("capability sentence not found")}
	}
	caps, guessed := parseCapabilities(nodeText(capNode))
	if guessed {
		warnings = append(warnings, model.Warningf(model.WarnCapabilityGuess, relativePath,
			"capability sentence %q did not match a known form; flags inferred by word scan",
			collapseWhitespace(nodeText(capNode))))
	}
	cmd.Undoable = caps.Undoable
	cmd.Queryable = caps.Queryable
	cmd.Editable = caps.Editable

	cmd.Summary = summaryAfter(capNode)

	if table := findArgumentTable(root); table != nil {
		args, rowWarnings := extractArgumentRows(table, relativePath)
		cmd.Arguments = args
		warnings = append(warnings, rowWarnings...)
	}

	warnings = append(warnings, checkNameMatchesFile(name, relativePath)...)
	if len(cmd.Categories) == 0 {
		if fb := fallbackCategory(relativePath); fb != "" {
			cmd.Categories = []string{fb}
		}
		warnings = append(warnings, model.Warningf(model.WarnNoCategory, relativePath,
			"command %q declares no categories", name))
	}

	return &Result{Command: cmd, Warnings: warnings}, nil
}

// synopsisCommandName pulls the command identifier out of the synopsis
// code block: the text before the opening parenthesis of the call form.
func synopsisCommandName(root *html.Node) string {
	synopsis := findByID(root, synopsisID)
	if synopsis == nil {
		return ""
	}
	code := findElement(synopsis, atom.Code)
	if code == nil {
		return ""
	}
	name, _, _ := strings.Cut(nodeText(code), "(")
	return strings.TrimSpace(name)
}

// bannerCategories reads the category breadcrumb links out of the banner
// table.
func bannerCategories(banner *html.Node) []string {
	table := findElement(banner, atom.Table)
	if table == nil {
		return nil
	}
	var categories []string
	walk(table, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.A && attrValue(n, "href") != "" {
			if text := collapseWhitespace(nodeText(n)); text != "" {
				categories = append(categories, text)
			}
		}
		return true
	})
	return categories
}

// findCapabilityNode locates the paragraph-level block holding the
// capability sentence: the shallowest block mentioning all three
// capability words.
func findCapabilityNode(root *html.Node) *html.Node {
	body := findElement(root, atom.Body)
	if body == nil {
		return nil
	}
	for child := body.FirstChild; child != nil; child = child.NextSibling {
		if looksLikeCapabilitySentence(nodeText(child)) {
			return child
		}
	}
	// Some releases nest the sentence one level deeper.
	var found *html.Node
	walk(body, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.P && looksLikeCapabilitySentence(nodeText(n)) {
			found = n
			return false
		}
		return true
	})
	return found
}

// summaryAfter gathers the command description: the text of the blocks
// following the capability sentence, up to the return-value heading.
func summaryAfter(capNode *html.Node) string {
	var b strings.Builder
	for sib := capNode.NextSibling; sib != nil; sib = sib.NextSibling {
		text := nodeText(sib)
		if before, _, found := strings.Cut(text, returnValueMarker); found {
			b.WriteString(before)
			break
		}
		b.WriteString(text)
	}
	return collapseWhitespace(b.String())
}

// findArgumentTable locates the argument table by its distinctive
// header text.
func findArgumentTable(root *html.Node) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.Table &&
			strings.Contains(nodeText(n), argTableMarker) {
			found = n
			return false
		}
		return true
	})
	return found
}

// extractArgumentRows walks the argument table's row pairs: a shaded
// header row (names, type, mode icons) followed by a description row.
// Rows that do not decompose cleanly are dropped with a warning instead
// of failing the page.
func extractArgumentRows(table *html.Node, relativePath string) ([]model.ArgumentRecord, []model.Warning) {
	rows := tableRows(table)
	var args []model.ArgumentRecord
	var warnings []model.Warning

	for i, row := range rows {
		if !strings.EqualFold(attrValue(row, "bgcolor"), argHeaderBgcolor) {
			continue
		}
		description := ""
		if i+1 < len(rows) {
			description = nodeText(rows[i+1])
		}

		longName, shortName, typeCell, ok := headerRowCells(row)
		if !ok {
			warnings = append(warnings, model.Warningf(model.WarnRowUnparsable, relativePath,
				"argument row %d: header cells did not decompose; row dropped", i))
			continue
		}

		arg, ok := buildArgument(longName, shortName, typeCell, description, modeMarkers(row))
		if !ok {
			warnings = append(warnings, model.Warningf(model.WarnRowUnparsable, relativePath,
				"argument row for %q has no usable name or modes; row dropped",
				collapseWhitespace(longName)))
			continue
		}
		args = append(args, arg)
	}
	return args, warnings
}

// tableRows returns the table's own rows, skipping rows of nested
// tables.
func tableRows(table *html.Node) []*html.Node {
	var rows []*html.Node
	walk(table, func(n *html.Node) bool {
		if n != table && n.Type == html.ElementNode && n.DataAtom == atom.Table {
			return false
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.Tr {
			rows = append(rows, n)
			return false
		}
		return true
	})
	return rows
}

// headerRowCells decomposes a header row into the long name, short name
// and raw type text. The row carries two code blocks: the first holds
// the bolded long and short names, the second the type.
func headerRowCells(row *html.Node) (longName, shortName, typeCell string, ok bool) {
	codes := findElements(row, atom.Code)
	if len(codes) < 2 {
		return "", "", "", false
	}
	names := findElements(codes[0], atom.B)
	if len(names) == 0 {
		return "", "", "", false
	}
	longName = nodeText(names[0])
	if len(names) > 1 {
		shortName = nodeText(names[1])
	}
	typeCell = strings.TrimSpace(nodeText(codes[1]))
	return longName, shortName, typeCell, true
}

// modeMarkers collects a header row's mode icon titles.
func modeMarkers(row *html.Node) []string {
	var markers []string
	walk(row, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.Img {
			if title := attrValue(n, "title"); title != "" {
				markers = append(markers, title)
			}
		}
		return true
	})
	return markers
}

func hasNoindexMeta(root *html.Node) bool {
	noindex := false
	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.Meta &&
			strings.EqualFold(attrValue(n, "content"), "NOINDEX") {
			noindex = true
			return false
		}
		return true
	})
	return noindex
}

// walk visits n and its descendants depth-first. Returning false from fn
// skips the node's children.
func walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walk(child, fn)
	}
}

func findElement(root *html.Node, a atom.Atom) *html.Node {
	if root == nil {
		return nil
	}
	var found *html.Node
	walk(root, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if n.Type == html.ElementNode && n.DataAtom == a {
			found = n
			return false
		}
		return true
	})
	return found
}

func findElements(root *html.Node, a atom.Atom) []*html.Node {
	var out []*html.Node
	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == a {
			out = append(out, n)
			return false
		}
		return true
	})
	return out
}

func findByID(root *html.Node, id string) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if n.Type == html.ElementNode && attrValue(n, "id") == id {
			found = n
			return false
		}
		return true
	})
	return found
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// nodeText concatenates the text content of n and its descendants.
func nodeText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	walk(n, func(node *html.Node) bool {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		return true
	})
	return b.String()
}
