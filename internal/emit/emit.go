// Package emit writes the generated stub tree: one .pyi file per
// command, grouped into category packages, with deterministic
// __init__.pyi aggregators.
package emit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/stubworks/cmdstub/internal/atomicfile"
	"github.com/stubworks/cmdstub/internal/slugs"
	"github.com/stubworks/cmdstub/internal/stub"
)

// ErrOutputConflict marks a refusal to write into a non-empty target
// directory. The caller either reruns with force or clears the tree by
// hand.
var ErrOutputConflict = errors.New("target directory is not empty")

// banner heads every generated file. It carries no timestamp so reruns
// over identical input produce identical bytes.
const banner = "# Generated by cmdstub. Do not edit by hand.\n"

// typingImports precedes every command stub; annotations reference these
// names.
const typingImports = "from typing import Any, List, Tuple, Union\n"

// Write lays out the stub tree under targetDir:
//
//	targetDir/__init__.pyi             from . import <category> per category
//	targetDir/<category>/__init__.pyi  from .<cmd> import <cmd> per command
//	targetDir/<category>/<cmd>.pyi     the command stub
//
// A non-empty target fails with ErrOutputConflict unless force is set,
// in which case the existing contents are cleared first. All writes are
// atomic per file.
func Write(targetDir string, stubs []*stub.Stub, force bool) error {
	if err := prepareTarget(targetDir, force); err != nil {
		return err
	}

	byCategory := make(map[string][]*stub.Stub)
	for _, s := range stubs {
		slug := slugs.CategorySlug(s.Category)
		byCategory[slug] = append(byCategory[slug], s)
	}

	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	for _, category := range categories {
		dir := filepath.Join(targetDir, category)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create category directory: %w", err)
		}

		members := byCategory[category]
		sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })

		var index strings.Builder
		index.WriteString(banner)
		for _, s := range members {
			content := banner + "\n" + typingImports + "\n\n" + stub.Render(s)
			path := filepath.Join(dir, s.Name+".pyi")
			if err := atomicfile.WriteFile(path, []byte(content)); err != nil {
				return fmt.Errorf("write stub %s: %w", s.Name, err)
			}
			fmt.Fprintf(&index, "from .%s import %s\n", s.Name, s.Name)
		}
		if err := atomicfile.WriteFile(filepath.Join(dir, "__init__.pyi"), []byte(index.String())); err != nil {
			return fmt.Errorf("write category index %s: %w", category, err)
		}
	}

	var root strings.Builder
	root.WriteString(banner)
	for _, category := range categories {
		fmt.Fprintf(&root, "from . import %s\n", category)
	}
	if err := atomicfile.WriteFile(filepath.Join(targetDir, "__init__.pyi"), []byte(root.String())); err != nil {
		return fmt.Errorf("write root index: %w", err)
	}

	return nil
}

// prepareTarget ensures targetDir exists and is empty, clearing it when
// force is set.
func prepareTarget(targetDir string, force bool) error {
	entries, err := os.ReadDir(targetDir)
	if errors.Is(err, os.ErrNotExist) {
		return os.MkdirAll(targetDir, 0o755)
	}
	if err != nil {
		return fmt.Errorf("read target directory: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}
	if !force {
		return fmt.Errorf("%w: %s", ErrOutputConflict, targetDir)
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(targetDir, entry.Name())); err != nil {
			return fmt.Errorf("clear target directory: %w", err)
		}
	}
	return nil
}
