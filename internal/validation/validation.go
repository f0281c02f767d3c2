// Package validation runs cfn-lint over synthesized templates.
//
// cfn-lint-go is used as a library dependency for guaranteed version
// control; nothing shells out.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lex00/cfn-lint-go/pkg/lint"
)

// TemplateResult contains the cfn-lint result for one template file.
type TemplateResult struct {
	Template      string   `json:"template"`
	Passed        bool     `json:"passed"`
	Errors        []string `json:"errors"`
	Warnings      []string `json:"warnings"`
	Informational []string `json:"informational"`
}

// TotalIssues returns the total number of issues found.
func (r TemplateResult) TotalIssues() int {
	return len(r.Errors) + len(r.Warnings) + len(r.Informational)
}

// Result aggregates lint results across an artifact directory.
type Result struct {
	Passed    bool             `json:"passed"`
	Templates []TemplateResult `json:"templates"`
}

// LintTemplate runs cfn-lint-go on a single template file.
func LintTemplate(templatePath string) (*TemplateResult, error) {
	result := &TemplateResult{
		Template:      filepath.Base(templatePath),
		Errors:        []string{},
		Warnings:      []string{},
		Informational: []string{},
	}

	if _, err := os.Stat(templatePath); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("template not found: %s", templatePath))
		return result, nil
	}

	linter := lint.New(lint.Options{})
	matches, err := linter.LintFile(templatePath)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("linter error: %v", err))
		return result, nil
	}

	for _, match := range matches {
		formatted := formatMatch(match)
		switch match.Level {
		case "Error":
			result.Errors = append(result.Errors, formatted)
		case "Warning":
			result.Warnings = append(result.Warnings, formatted)
		default:
			result.Informational = append(result.Informational, formatted)
		}
	}

	// Warnings are acceptable.
	result.Passed = len(result.Errors) == 0
	return result, nil
}

// LintDir lints every *.template.json and *.template.yaml file in an
// artifact directory.
func LintDir(dir string) (*Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading artifact dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".template.json") || strings.HasSuffix(name, ".template.yaml") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	sort.Strings(paths)

	result := &Result{Passed: true}
	for _, p := range paths {
		tr, err := LintTemplate(p)
		if err != nil {
			return nil, err
		}
		result.Templates = append(result.Templates, *tr)
		if !tr.Passed {
			result.Passed = false
		}
	}
	return result, nil
}

// formatMatch formats a cfn-lint-go match for display.
func formatMatch(match lint.Match) string {
	pathStr := ""
	if len(match.Location.Path) > 0 {
		parts := make([]string, len(match.Location.Path))
		for i, p := range match.Location.Path {
			parts[i] = fmt.Sprintf("%v", p)
		}
		pathStr = strings.Join(parts, "/")
	}

	if pathStr != "" {
		return fmt.Sprintf("%s: %s (at %s)", match.Rule.ID, match.Message, pathStr)
	}
	return fmt.Sprintf("%s: %s", match.Rule.ID, match.Message)
}
