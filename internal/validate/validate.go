// Package validate provides declarative field validation and normalization
// for request payloads. Checks accumulate per-field errors instead of
// stopping at the first failure, so a client sees every problem in one
// response.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Patterns carried over from the original data set. Phone accepts an
// optional country code, parentheses, hyphens and spaces; name and address
// are Unicode-aware.
var (
	EmailRegex   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	PhoneRegex   = regexp.MustCompile(`^(\+?\d{1,3}[- ]?)?\(?\d{3}\)?[- ]?\d{3}[- ]?\d{2}[- ]?\d{2}$`)
	NameRegex    = regexp.MustCompile(`^[\p{L}\s'’-]{2,100}$`)
	AddressRegex = regexp.MustCompile(`^[\p{L}0-9\s.,'’()-]{5,200}$`)

	whitespace = regexp.MustCompile(`\s+`)
)

// FieldError describes a single failed field.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Errors is the accumulated result of validating one schema. It implements
// error so it can travel through the usual return paths.
type Errors struct {
	Details []FieldError `json:"details"`
}

func (e *Errors) Error() string {
	if len(e.Details) == 0 {
		return "validation error"
	}
	parts := make([]string, len(e.Details))
	for i, d := range e.Details {
		parts[i] = fmt.Sprintf("%s: %s", d.Path, d.Message)
	}
	return "validation error: " + strings.Join(parts, "; ")
}

// Collector accumulates field errors while a request is checked.
type Collector struct {
	details []FieldError
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add records a failed field.
func (c *Collector) Add(path, message string) {
	c.details = append(c.details, FieldError{Path: path, Message: message})
}

// Require records an error when the trimmed value is empty. Returns true
// when the value is present so callers can chain format checks.
func (c *Collector) Require(path, value string) bool {
	if strings.TrimSpace(value) == "" {
		c.Add(path, fmt.Sprintf("%q is required", path))
		return false
	}
	return true
}

// Match records an error when the value does not match the pattern.
func (c *Collector) Match(path, value string, pattern *regexp.Regexp, message string) {
	if !pattern.MatchString(value) {
		c.Add(path, message)
	}
}

// ObjectID records an error when the value is not a 24-character hex id.
func (c *Collector) ObjectID(path, value string, message string) {
	if !IsObjectID(value) {
		c.Add(path, message)
	}
}

// Positive records an error when n is not a positive integer.
func (c *Collector) Positive(path string, n int, message string) {
	if n <= 0 {
		c.Add(path, message)
	}
}

// OneOf records an error when the value is not among the allowed set.
// Empty values pass so defaults can be applied by the caller.
func (c *Collector) OneOf(path, value string, allowed ...string) {
	if value == "" {
		return
	}
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	c.Add(path, fmt.Sprintf("%q must be one of %s", path, strings.Join(allowed, ", ")))
}

// Err returns the accumulated errors, or nil when every check passed.
func (c *Collector) Err() *Errors {
	if len(c.details) == 0 {
		return nil
	}
	return &Errors{Details: c.details}
}

// IsObjectID reports whether s is a well-formed 24-character hex object id.
func IsObjectID(s string) bool {
	return primitive.IsValidObjectID(s)
}

// NewObjectID returns a fresh 24-character hex object id.
func NewObjectID() string {
	return primitive.NewObjectID().Hex()
}

// NormalizeEmail trims and lowercases an email for use as a lookup key.
func NormalizeEmail(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// NormalizePhone strips whitespace and hyphens for use as a lookup key.
func NormalizePhone(v string) string {
	v = whitespace.ReplaceAllString(v, "")
	v = strings.ReplaceAll(v, "-", "")
	return strings.TrimSpace(v)
}

// NormalizeName trims surrounding whitespace.
func NormalizeName(v string) string {
	return strings.TrimSpace(v)
}
