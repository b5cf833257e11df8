package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds class and method identifiers.
const maxNameLength = 256

// arrowTokens are the pair notations of description files. Class names
// holding one could not be written back as "A -> B".
var arrowTokens = []string{"->", "<-", "--"}

// ContainsArrow reports whether s holds a pair arrow token.
func ContainsArrow(s string) bool {
	for _, t := range arrowTokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

// ValidateClassName validates a class identifier appearing in the named input.
//
// The rules are intentionally conservative:
//   - No empty names
//   - No control characters (newlines would break the PlantUML block structure)
//   - No braces, which delimit PlantUML class bodies
//   - No arrow tokens ("->", "<-", "--") used by the pair notation
//   - Maximum length of 256 characters
func ValidateClassName(field, name string) error {
	if name == "" {
		return Validation(field, "class name cannot be empty")
	}
	if err := validateIdentifier(field, "class", name); err != nil {
		return err
	}
	if strings.ContainsAny(name, "{}") {
		return Validation(field, "class name %q cannot contain braces", name)
	}
	if ContainsArrow(name) {
		return Validation(field, "class name %q cannot contain an arrow", name)
	}
	return nil
}

// ValidateMethodName validates a method name listed for class in the named input.
func ValidateMethodName(field, class, name string) error {
	if strings.TrimSpace(name) == "" {
		return Validation(field, "method name for class %q cannot be empty", class)
	}
	return validateIdentifier(field, "method", name)
}

func validateIdentifier(field, what, name string) error {
	if len(name) > maxNameLength {
		return Validation(field, "%s name too long (max %d characters)", what, maxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return Validation(field, "%s name %q contains invalid control characters", what, name)
		}
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidOption, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidOption, "URL must use http or https scheme")
	}

	return nil
}
