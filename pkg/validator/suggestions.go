package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

var patternHints = map[PatternKind]string{
	PatternPhone:        "Use o formato (00) 00000-0000",
	PatternCPF:          "Use o formato 000.000.000-00",
	PatternDigits:       "Remova letras e símbolos",
	PatternLetters:      "Remova números e símbolos",
	PatternAlphanumeric: "Remova espaços e símbolos",
}

// Suggestions returns constructive hints for a value that is still being typed.
// Unlike ValidateField it reports what to change rather than what is wrong,
// and it stays silent for empty values.
func Suggestions(field string, value Value, rules []Rule, data FormData) []string {
	text, ok := value.Text()
	if !ok || value.IsEmpty() || len(rules) == 0 {
		return nil
	}

	var out []string
	seen := make(map[string]bool)
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	length := utf8.RuneCountInString(text)
	for _, rule := range rules {
		if rule.MinLength > 0 && length < rule.MinLength {
			add(fmt.Sprintf("Adicione mais %d caractere(s)", rule.MinLength-length))
		}
		if rule.MaxLength > 0 && length > rule.MaxLength {
			add(fmt.Sprintf("Remova %d caractere(s)", length-rule.MaxLength))
		}
		if rule.Pattern != nil && !rule.Pattern.matches(text) {
			add(patternSuggestion(rule.Pattern.Kind, text))
		}
	}

	return out
}

func patternSuggestion(kind PatternKind, text string) string {
	if kind == PatternEmail {
		return emailSuggestion(text)
	}
	return patternHints[kind]
}

func emailSuggestion(text string) string {
	at := strings.Index(text, "@")
	if at < 0 {
		return "Adicione o símbolo @"
	}
	domain := text[at+1:]
	dot := strings.LastIndex(domain, ".")
	if domain == "" || dot <= 0 || dot == len(domain)-1 {
		return "Adicione um domínio válido (ex: gmail.com)"
	}
	if at == 0 {
		return "Adicione o nome antes do @"
	}
	return "Remova espaços e caracteres extras"
}
