package lint

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Formatter formats check results for output.
type Formatter interface {
	Format(w io.Writer, result *Result, path string) error
}

// TextFormatter formats results as human-readable text.
type TextFormatter struct{}

// Format outputs results grouped by file in path order.
func (f *TextFormatter) Format(w io.Writer, result *Result, path string) error {
	if _, err := fmt.Fprintf(w, "Checking roles in: %s\n%s\n\n", path, strings.Repeat("━", 60)); err != nil {
		return err
	}

	issues := append([]Issue(nil), result.Issues...)
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].FilePath != issues[j].FilePath {
			return issues[i].FilePath < issues[j].FilePath
		}
		return issues[i].Line < issues[j].Line
	})
	for _, issue := range issues {
		if err := f.formatIssue(w, issue); err != nil {
			return err
		}
	}

	errorCount := result.ErrorCount()
	warningCount := result.WarningCount()
	lines := []string{
		strings.Repeat("━", 60),
		"Results:",
		fmt.Sprintf("  %d file%s scanned", result.FilesTotal, pluralize(result.FilesTotal)),
	}
	if errorCount > 0 {
		lines = append(lines, fmt.Sprintf("  %d error%s (rendered as problematic)", errorCount, pluralize(errorCount)))
	}
	if warningCount > 0 {
		lines = append(lines, fmt.Sprintf("  %d warning%s (rendered literally)", warningCount, pluralize(warningCount)))
	}
	lines = append(lines, "")

	switch {
	case result.HasErrors():
		lines = append(lines, "❌ Documentation has invalid role usages.")
	case result.HasWarnings():
		lines = append(lines, "⚠️  Documentation uses unknown roles.")
	default:
		lines = append(lines, "✨ All roles resolve!")
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func (f *TextFormatter) formatIssue(w io.Writer, issue Issue) error {
	icon := "⚠"
	if issue.Severity == SeverityError {
		icon = "✗"
	}
	location := issue.FilePath
	if issue.Line > 0 {
		location = fmt.Sprintf("%s:%d", issue.FilePath, issue.Line)
	}
	_, err := fmt.Fprintf(w, "%s %s\n  %s [%s]: %s\n\n", icon, location, issue.Severity, issue.Rule, issue.Message)
	return err
}

// JSONFormatter formats results as JSON.
type JSONFormatter struct{}

// JSONOutput represents the JSON output structure.
type JSONOutput struct {
	Path         string      `json:"path"`
	FilesTotal   int         `json:"files_total"`
	ErrorCount   int         `json:"error_count"`
	WarningCount int         `json:"warning_count"`
	Issues       []JSONIssue `json:"issues"`
}

// JSONIssue represents a single issue in JSON format.
type JSONIssue struct {
	FilePath string `json:"file_path"`
	Severity string `json:"severity"`
	Rule     string `json:"rule"`
	Message  string `json:"message"`
	Line     int    `json:"line,omitempty"`
}

// Format outputs results in JSON format.
func (f *JSONFormatter) Format(w io.Writer, result *Result, path string) error {
	output := JSONOutput{
		Path:         path,
		FilesTotal:   result.FilesTotal,
		ErrorCount:   result.ErrorCount(),
		WarningCount: result.WarningCount(),
		Issues:       make([]JSONIssue, 0, len(result.Issues)),
	}
	for _, issue := range result.Issues {
		output.Issues = append(output.Issues, JSONIssue{
			FilePath: issue.FilePath,
			Severity: issue.Severity.String(),
			Rule:     issue.Rule,
			Message:  issue.Message,
			Line:     issue.Line,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// NewFormatter creates the appropriate formatter based on format string.
func NewFormatter(format string) Formatter {
	if format == "json" {
		return &JSONFormatter{}
	}
	return &TextFormatter{}
}

func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
