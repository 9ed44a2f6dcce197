package policy

import (
	"fmt"
	"sort"
	"strings"

	"arcstream/cmcd/pkg/cmcd"
)

// FieldError represents a validation error for a specific document field.
type FieldError struct {
	// Field is the dotted path to the field (e.g., "custom_data.session.org").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a policy
// document. All violations are collected and reported together.
type ValidationError struct {
	// Errors contains all validation errors found in the document.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "policy validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("policy validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("policy validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate checks the document against the schema rules and returns a
// ValidationError carrying every violation found, or nil when the document
// is well formed.
func (d *Document) Validate() error {
	var errs []FieldError

	if d.Version != CurrentVersion {
		errs = append(errs, FieldError{
			Field:   "version",
			Message: fmt.Sprintf("unsupported schema version %d (current version is %d)", d.Version, CurrentVersion),
		})
	}

	denied := make(map[string]bool, len(d.DeniedKeys))
	for i, key := range d.DeniedKeys {
		field := fmt.Sprintf("denied_keys[%d]", i)
		if !isValidKey(key) {
			errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf("invalid key %q", key)})
			continue
		}
		if denied[key] {
			errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf("key %q is listed twice", key)})
			continue
		}
		denied[key] = true
	}

	wellKnown := make(map[string]bool)
	for _, key := range cmcd.WellKnownKeys() {
		wellKnown[key] = true
	}

	// A key may be carried in one header only, and a custom key may shadow a
	// well-known key only once that key is denied; both would otherwise
	// produce a request with the same key twice.
	declaredIn := make(map[string]string)
	for _, group := range sortedGroups(d.CustomData) {
		fields := d.CustomData[group]
		if _, ok := headerForGroup[group]; !ok {
			errs = append(errs, FieldError{
				Field:   "custom_data." + group,
				Message: fmt.Sprintf("unknown header group %q (valid groups: object, request, session, status)", group),
			})
			continue
		}
		for _, key := range sortedKeys(fields) {
			field := "custom_data." + group + "." + key
			if !isValidKey(key) {
				errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf("invalid key %q", key)})
				continue
			}
			if prev, ok := declaredIn[key]; ok {
				errs = append(errs, FieldError{
					Field:   field,
					Message: fmt.Sprintf("key %q is already declared under %q", key, prev),
				})
				continue
			}
			declaredIn[key] = group
			if wellKnown[key] && !denied[key] {
				errs = append(errs, FieldError{
					Field:   field,
					Message: fmt.Sprintf("custom key %q shadows a well-known key that is still allowed; add it to denied_keys first", key),
				})
			}
			if msg := checkValue(fields[key]); msg != "" {
				errs = append(errs, FieldError{Field: field, Message: msg})
			}
		}
	}

	if d.MaxRequestedThroughputKbps < 0 {
		errs = append(errs, FieldError{
			Field:   "max_requested_throughput_kbps",
			Message: "must not be negative",
		})
	}
	if d.ThroughputFactor < 0 {
		errs = append(errs, FieldError{
			Field:   "throughput_factor",
			Message: "must not be negative",
		})
	}
	if d.MaxRequestedThroughputKbps > 0 && d.ThroughputFactor > 0 {
		errs = append(errs, FieldError{
			Field:   "throughput_factor",
			Message: "mutually exclusive with max_requested_throughput_kbps",
		})
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

// isValidKey reports whether s can serve as a CMCD token key: lowercase
// letters, digits, '.', '-' and '_', starting with a letter.
func isValidKey(s string) bool {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '.' || c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}

// checkValue vets a custom value for content that would corrupt the
// comma-joined header line. Returns "" when the value is fine.
func checkValue(v string) string {
	for i := 0; i < len(v); i++ {
		if v[i] < 0x20 || v[i] == 0x7f {
			return "value contains control characters"
		}
	}
	if strings.Contains(v, ",") && !isQuotedValue(v) {
		return "value contains a comma outside a quoted string"
	}
	return ""
}

func isQuotedValue(v string) bool {
	return len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"'
}

func sortedGroups(m map[string]map[string]string) []string {
	groups := make([]string, 0, len(m))
	for group := range m {
		groups = append(groups, group)
	}
	sort.Strings(groups)
	return groups
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
