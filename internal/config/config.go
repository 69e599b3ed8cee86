// Package config defines the JSON-serializable run configuration for the
// pipeline and its validation. It is intentionally small and explicit: a run
// file enumerates the three source extracts, the sink, the report location,
// and runtime knobs, and is decoded by the standard library.
//
// The database password never appears in the file. It is read from the
// DB_PASSWORD environment variable, with a .env file loaded first when one
// exists, and its absence is fatal before any stage runs.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"

	"github.com/joho/godotenv"
)

// PasswordEnv is the environment variable holding the sink credential.
const PasswordEnv = "DB_PASSWORD"

// Run is the top-level object decoded from a run file.
type Run struct {
	// Job names the run for metrics and logs.
	Job string `json:"job"`

	// Sources holds the three extract paths.
	Sources Sources `json:"sources"`

	// Storage selects and configures the sink.
	Storage Storage `json:"storage"`

	// Report is the data-quality report destination.
	Report Report `json:"report"`

	// Runtime controls batching.
	Runtime Runtime `json:"runtime"`
}

// Sources enumerates the raw extract files, one per entity.
type Sources struct {
	Customers string `json:"customers"`
	Products  string `json:"products"`
	Sales     string `json:"sales"`
}

// Storage selects the sink backend and its connection parameters.
type Storage struct {
	// Kind selects the backend: "postgres" or "sqlite".
	Kind string `json:"kind"`

	// DB carries connection parameters for the selected kind.
	DB DBConfig `json:"db"`
}

// DBConfig configures the sink connection. For postgres the DSN is assembled
// from the parts plus the env credential; for sqlite, Path is the database
// file.
type DBConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Database string `json:"database"`

	// Path is the sqlite database file (sqlite kind only).
	Path string `json:"path"`
}

// Report configures the data-quality report sink.
type Report struct {
	// Path is appended to on every run, never truncated.
	Path string `json:"path"`
}

// Runtime controls batching for the loader.
type Runtime struct {
	BatchSize int `json:"batch_size"`
}

// Defaults applied by Load when fields are zero.
const (
	DefaultBatchSize  = 500
	DefaultReportPath = "data_quality_report.txt"
)

// Load reads and decodes a run file, loads a .env file when present, and
// applies defaults. Validation is separate; see Validate.
func Load(path string) (Run, error) {
	// Best effort: a missing .env is fine, the variable may be set directly.
	_ = godotenv.Load()

	f, err := os.Open(path)
	if err != nil {
		return Run{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	var r Run
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&r); err != nil {
		return Run{}, fmt.Errorf("decode config: %w", err)
	}
	if r.Job == "" {
		r.Job = "fleximart_etl"
	}
	if r.Runtime.BatchSize == 0 {
		r.Runtime.BatchSize = DefaultBatchSize
	}
	if r.Report.Path == "" {
		r.Report.Path = DefaultReportPath
	}
	return r, nil
}

// DSN assembles the backend connection string. For postgres the credential
// comes from the environment and its absence is an error; connectivity must
// fail before any stage runs, not mid-load.
func (r Run) DSN() (string, error) {
	switch r.Storage.Kind {
	case "sqlite":
		return r.Storage.DB.Path, nil
	case "postgres":
		pw := os.Getenv(PasswordEnv)
		if pw == "" {
			return "", fmt.Errorf("%s not set; refusing to start", PasswordEnv)
		}
		db := r.Storage.DB
		return fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
			url.QueryEscape(db.User), url.QueryEscape(pw), db.Host, db.Port, db.Database), nil
	default:
		return "", fmt.Errorf("unknown storage kind %q", r.Storage.Kind)
	}
}
