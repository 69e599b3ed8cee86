// Lightweight linter for Run values. Static checks over a decoded Run return
// a list of issues (errors and warnings) that callers surface in the CLI or
// tests; errors block execution, warnings do not.
package config

import (
	"fmt"
	"os"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that blocks execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a finding surfaced to users without blocking.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding. Path is a dotted path into
// the config (e.g. "storage.db.host").
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can stand alone as one.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// Validate performs static validation of a Run without mutating it. Callers
// decide whether warnings are fatal.
func Validate(r Run) []Issue {
	var issues []Issue

	if strings.TrimSpace(r.Job) == "" {
		issues = append(issues, Issue{SeverityWarning, "job", "job is empty; metrics will be labeled with the default job name"})
	}
	issues = append(issues, validateSources(r.Sources)...)
	issues = append(issues, validateStorage(r.Storage)...)
	if r.Runtime.BatchSize <= 0 {
		issues = append(issues, Issue{SeverityError, "runtime.batch_size", "batch_size must be > 0"})
	}
	if strings.TrimSpace(r.Report.Path) == "" {
		issues = append(issues, Issue{SeverityWarning, "report.path", "report path is empty; data-quality report will be skipped"})
	}
	return issues
}

func validateSources(s Sources) []Issue {
	var issues []Issue
	for _, src := range []struct{ path, val string }{
		{"sources.customers", s.Customers},
		{"sources.products", s.Products},
		{"sources.sales", s.Sales},
	} {
		if strings.TrimSpace(src.val) == "" {
			issues = append(issues, Issue{SeverityError, src.path, "extract path must not be empty"})
		}
	}
	return issues
}

func validateStorage(s Storage) []Issue {
	var issues []Issue
	switch s.Kind {
	case "postgres":
		if strings.TrimSpace(s.DB.Host) == "" {
			issues = append(issues, Issue{SeverityError, "storage.db.host", "host is required for postgres"})
		}
		if s.DB.Port <= 0 {
			issues = append(issues, Issue{SeverityError, "storage.db.port", "port is required for postgres"})
		}
		if strings.TrimSpace(s.DB.User) == "" {
			issues = append(issues, Issue{SeverityError, "storage.db.user", "user is required for postgres"})
		}
		if strings.TrimSpace(s.DB.Database) == "" {
			issues = append(issues, Issue{SeverityError, "storage.db.database", "database is required for postgres"})
		}
		if os.Getenv(PasswordEnv) == "" {
			issues = append(issues, Issue{SeverityError, "storage.db", PasswordEnv + " is not set; the credential must come from the environment, never the config file"})
		}
	case "sqlite":
		if strings.TrimSpace(s.DB.Path) == "" {
			issues = append(issues, Issue{SeverityError, "storage.db.path", "path is required for sqlite"})
		}
	case "":
		issues = append(issues, Issue{SeverityError, "storage.kind", "storage kind must be set"})
	default:
		issues = append(issues, Issue{SeverityError, "storage.kind", fmt.Sprintf("unknown storage kind %q (expected postgres or sqlite)", s.Kind)})
	}
	return issues
}
