// Package envcheck validates the AWS credential environment before any
// external connection is attempted.
//
// Validation is a pure function of an injected Snapshot so it can be unit
// tested without touching the real process environment. The Variables table
// is the single source of truth for what the application reads; the startup
// validator and the health server both consult it.
package envcheck

import "strings"

// VariableSpec describes one environment variable the application consumes.
type VariableSpec struct {
	Name        string
	Description string
	Required    bool
}

// Variables lists every credential variable, in the order they are reported.
var Variables = []VariableSpec{
	{Name: "AWS_REGION", Description: "AWS region for Bedrock and other AWS services", Required: true},
	{Name: "AWS_ACCESS_KEY_ID", Description: "AWS access key ID for authentication", Required: true},
	{Name: "AWS_SECRET_ACCESS_KEY", Description: "AWS secret access key for authentication", Required: true},
	{Name: "AWS_SESSION_TOKEN", Description: "AWS session token (required for temporary credentials)", Required: false},
}

// RequiredNames returns the names of all required variables, in declaration order.
func RequiredNames() []string {
	var names []string
	for _, v := range Variables {
		if v.Required {
			names = append(names, v.Name)
		}
	}
	return names
}

// Snapshot is an immutable name→value view of the process environment.
type Snapshot map[string]string

// FromEnviron builds a Snapshot from os.Environ()-style "KEY=value" pairs.
func FromEnviron(environ []string) Snapshot {
	snap := make(Snapshot, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			snap[k] = v
		}
	}
	return snap
}

// Get returns the value for name, or "" if unset.
func (s Snapshot) Get(name string) string { return s[name] }

// IsSet reports whether name has a non-empty, non-whitespace value.
func (s Snapshot) IsSet(name string) bool {
	return strings.TrimSpace(s[name]) != ""
}

// Result is the outcome of validating a Snapshot against the Variables table.
type Result struct {
	MissingRequired []VariableSpec
	MissingOptional []VariableSpec
}

// OK reports whether every required variable was present.
// Optional variables never affect the outcome.
func (r Result) OK() bool { return len(r.MissingRequired) == 0 }

// Validate classifies every variable in the table against the snapshot.
// It never short-circuits: the caller always gets a complete report.
// Whitespace-only values count as missing.
func Validate(snap Snapshot) Result {
	var res Result
	for _, v := range Variables {
		if snap.IsSet(v.Name) {
			continue
		}
		if v.Required {
			res.MissingRequired = append(res.MissingRequired, v)
		} else {
			res.MissingOptional = append(res.MissingOptional, v)
		}
	}
	return res
}
