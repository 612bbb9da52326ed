package lint

import (
	"path/filepath"

	"git.home.luguber.info/inful/docroles/internal/roles"
)

// Severity indicates the importance level of a linting issue.
type Severity int

const (
	// SeverityInfo indicates informational messages.
	SeverityInfo Severity = iota
	// SeverityWarning indicates issues that should be fixed but don't block builds.
	SeverityWarning
	// SeverityError indicates role usages that render as problematic output.
	SeverityError
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Rule identifiers reported on issues.
const (
	RuleRoleInvalid = "role-invalid"
	RuleRoleUnknown = "role-unknown"
)

// Issue represents a single problem found in a file.
type Issue struct {
	FilePath string   // Path relative to the checked root
	Severity Severity // Issue severity level
	Rule     string   // Rule identifier (e.g., "role-invalid")
	Message  string   // System message text
	Line     int      // Line number (0 if file-level issue)
}

// Result contains all issues found during a check.
type Result struct {
	Issues     []Issue
	FilesTotal int // Total files scanned
}

// HasErrors returns true if any error-level issues exist.
func (r *Result) HasErrors() bool {
	return r.ErrorCount() > 0
}

// HasWarnings returns true if any warning-level issues exist.
func (r *Result) HasWarnings() bool {
	return r.WarningCount() > 0
}

// ErrorCount returns the number of error-level issues.
func (r *Result) ErrorCount() int {
	return r.count(SeverityError)
}

// WarningCount returns the number of warning-level issues.
func (r *Result) WarningCount() int {
	return r.count(SeverityWarning)
}

func (r *Result) count(s Severity) int {
	count := 0
	for _, issue := range r.Issues {
		if issue.Severity == s {
			count++
		}
	}
	return count
}

// Config contains configuration for the checker.
type Config struct {
	// Quiet suppresses warnings, only showing errors.
	Quiet bool

	// Format specifies output format (text, json).
	Format string

	// Include and Exclude are doublestar globs relative to the checked root.
	Include []string
	Exclude []string
}

// IsDocFile returns true if the file is a documentation file.
func IsDocFile(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".md" || ext == ".markdown"
}

func issueFromMessage(path string, m roles.Message) Issue {
	issue := Issue{
		FilePath: path,
		Severity: SeverityError,
		Rule:     RuleRoleInvalid,
		Message:  m.Text,
		Line:     m.Line,
	}
	if m.Level == roles.LevelWarning {
		issue.Severity = SeverityWarning
		issue.Rule = RuleRoleUnknown
	}
	return issue
}
