package policy

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// MaxDocumentSize is the largest policy file LoadDocument will read, in
// bytes. Policy documents are small; anything bigger is a mistake.
const MaxDocumentSize = 1 << 20

// Load reads, parses and compiles the policy document at path. Invalid
// documents fail here with a ValidationError; no policy is produced.
func Load(path string) (*Static, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return New(doc)
}

// Parse parses and compiles a policy document held in memory.
func Parse(data []byte) (*Static, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, err
	}
	return New(doc)
}

// LoadDocument reads and parses the document at path without compiling it.
// The returned document has defaults applied but is not validated; New
// performs validation.
func LoadDocument(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			return nil, &LoadError{FilePath: path, Message: "file not found", Cause: err}
		case os.IsPermission(err):
			return nil, &LoadError{FilePath: path, Message: "permission denied", Cause: err}
		default:
			return nil, &LoadError{FilePath: path, Message: "failed to access file", Cause: err}
		}
	}
	if !info.Mode().IsRegular() {
		return nil, &LoadError{FilePath: path, Message: "not a regular file"}
	}
	if info.Size() > MaxDocumentSize {
		return nil, &LoadError{
			FilePath: path,
			Message:  fmt.Sprintf("file size %d bytes exceeds maximum %d bytes", info.Size(), MaxDocumentSize),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{FilePath: path, Message: "failed to read file", Cause: err}
	}

	doc, err := ParseDocument(data)
	if err != nil {
		if errors.Is(err, ErrInvalidEncoding) {
			return nil, &LoadError{FilePath: path, Message: "invalid encoding", Cause: err}
		}
		return nil, &ParseError{FilePath: path, Cause: err}
	}
	return doc, nil
}

// ParseDocument parses a document held in memory without compiling it.
func ParseDocument(data []byte) (*Document, error) {
	if !utf8.Valid(data) {
		return nil, ErrInvalidEncoding
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal policy document: %w", err)
	}
	doc.ApplyDefaults()
	return &doc, nil
}
