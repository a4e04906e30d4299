package policy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Entry is one row of the dependency-policy document: a package name, an
// optional semver constraint, and free-text notes carried over verbatim.
type Entry struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version,omitempty"`
	Notes   string `yaml:"notes,omitempty"`
}

// Document is the parsed allow/deny policy. A zero Document means "no
// policy": everything passes.
type Document struct {
	Allow []Entry `yaml:"allow"`
	Deny  []Entry `yaml:"deny"`
}

type Verdict string

const (
	VerdictAllowed  Verdict = "allowed"
	VerdictDenied   Verdict = "denied"
	VerdictUnlisted Verdict = "unlisted"
)

// Check resolves a package name against the policy. Deny wins: a package
// listed in both sections is denied.
func (d *Document) Check(name string) (Verdict, *Entry) {
	for i := range d.Deny {
		if d.Deny[i].Name == name {
			return VerdictDenied, &d.Deny[i]
		}
	}
	for i := range d.Allow {
		if d.Allow[i].Name == name {
			return VerdictAllowed, &d.Allow[i]
		}
	}
	return VerdictUnlisted, nil
}

// Empty reports whether the document constrains anything at all.
func (d *Document) Empty() bool {
	return len(d.Allow) == 0 && len(d.Deny) == 0
}

// Parse decodes a YAML policy document.
func Parse(content []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("malformed policy document: %w", err)
	}
	return &doc, nil
}

// LoadFile reads and parses a policy document from disk.
func LoadFile(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(content)
}
