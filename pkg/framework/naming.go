package framework

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// splitWords breaks a raw component name into its constituent words.
// Spaces, hyphens, underscores, and any other punctuation act as separators,
// and camel-case boundaries ("userCard", "HTTPServer") split as well, so all
// of "user card", "user-card", "user_card", and "UserCard" yield the same
// word list.
func splitWords(name string) []string {
	var words []string
	var cur []rune

	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
		case unicode.IsUpper(r):
			prevLower := i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]))
			// An uppercase run followed by a lowercase letter starts a new
			// word at its last rune ("HTTPServer" -> "HTTP", "Server").
			endOfUpperRun := len(cur) > 0 && i > 0 && unicode.IsUpper(runes[i-1]) &&
				i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || endOfUpperRun {
				flush()
			}
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()

	return words
}

// PascalCase converts a component name to PascalCase ("user card" -> "UserCard").
func PascalCase(name string) string {
	caser := cases.Title(language.English)
	var b strings.Builder
	for _, w := range splitWords(name) {
		b.WriteString(caser.String(w))
	}
	return b.String()
}

// CamelCase converts a component name to camelCase ("user card" -> "userCard").
func CamelCase(name string) string {
	words := splitWords(name)
	if len(words) == 0 {
		return ""
	}
	caser := cases.Title(language.English)
	var b strings.Builder
	b.WriteString(strings.ToLower(words[0]))
	for _, w := range words[1:] {
		b.WriteString(caser.String(w))
	}
	return b.String()
}

// KebabCase converts a component name to kebab-case ("user card" -> "user-card").
func KebabCase(name string) string {
	return joinLower(name, "-")
}

// SnakeCase converts a component name to snake_case ("user card" -> "user_card").
func SnakeCase(name string) string {
	return joinLower(name, "_")
}

func joinLower(name, sep string) string {
	words := splitWords(name)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, sep)
}
