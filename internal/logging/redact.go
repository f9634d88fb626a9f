package logging

import "strings"

// secretKeyPatterns are substrings that mark an attribute key as sensitive.
// Matching is case-insensitive.
var secretKeyPatterns = []string{
	"TOKEN",
	"SECRET",
	"PASSWORD",
	"API_KEY",
	"CREDENTIAL",
	"PRIVATE",
}

// tokenPrefixes are value prefixes of well-known API tokens.
var tokenPrefixes = []string{
	"ghp_",
	"gho_",
	"ghs_",
	"sk-",
	"AKIA",
	"xoxb-",
	"xoxp-",
}

// ShouldMask reports whether key names a sensitive value.
func ShouldMask(key string) bool {
	upper := strings.ToUpper(key)
	for _, pattern := range secretKeyPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}

// ContainsTokenPrefix reports whether value starts with a known token prefix.
func ContainsTokenPrefix(value string) bool {
	for _, prefix := range tokenPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}

// MaskValue hides all but the last four characters of value.
func MaskValue(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}
