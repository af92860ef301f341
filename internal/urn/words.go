package urn

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Words splits s on separators and case boundaries: "AWSLambdaFunction"
// gives [AWS Lambda Function], "item_d" gives [item d].
func Words(s string) []string {
	var words []string
	runes := []rune(s)
	start := -1
	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, string(runes[start:end]))
		}
		start = -1
	}
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		prev := runes[i-1]
		switch {
		case unicode.IsUpper(r) && unicode.IsLower(prev):
			flush(i)
			start = i
		case unicode.IsUpper(r) && unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
			flush(i)
			start = i
		}
	}
	flush(len(runes))
	return words
}

// TitleCase renders s as space separated capitalized words ("ItemD" -> "Item D").
func TitleCase(s string) string {
	caser := cases.Title(language.Und)
	words := Words(s)
	for i, w := range words {
		words[i] = caser.String(w)
	}
	return strings.Join(words, " ")
}

// UpperCamelCase joins capitalized words ("person card" -> "PersonCard").
func UpperCamelCase(s string) string {
	caser := cases.Title(language.Und)
	words := Words(s)
	for i, w := range words {
		words[i] = caser.String(w)
	}
	return strings.Join(words, "")
}

// SnakeCase joins lower-case words with underscores ("Basic Example" -> "basic_example").
func SnakeCase(s string) string {
	caser := cases.Lower(language.Und)
	words := Words(s)
	for i, w := range words {
		words[i] = caser.String(w)
	}
	return strings.Join(words, "_")
}
