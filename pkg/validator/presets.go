package validator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	minAge   = 0
	maxAge   = 120
	adultAge = 18
)

// RequiredRule only demands a non-empty value.
func RequiredRule() Rule {
	return Rule{Required: true}
}

func EmailRule() Rule {
	return Rule{Required: true, Pattern: PatternFor(PatternEmail)}
}

func PhoneRule() Rule {
	return Rule{Required: true, Pattern: PatternFor(PatternPhone)}
}

// CPFRule checks the 000.000.000-00 layout; combine with CPFDigits for check-digit verification.
func CPFRule() Rule {
	return Rule{Required: true, Pattern: PatternFor(PatternCPF)}
}

// AgeRule accepts whole numbers, or numeric strings, between 0 and 120.
func AgeRule() Rule {
	return Rule{Required: true, Custom: AgeRange}
}

// NameRule accepts 2 to 100 letters and spaces.
func NameRule() Rule {
	return Rule{Required: true, MinLength: 2, MaxLength: 100, Pattern: PatternFor(PatternLetters)}
}

func TextRule() Rule {
	return Rule{Required: true, MinLength: 10, MaxLength: 1000}
}

func ShortTextRule() Rule {
	return Rule{Required: true, MinLength: 2, MaxLength: 255}
}

// Presets returns the common rules keyed by preset name.
func Presets() map[string]Rule {
	return map[string]Rule{
		"required":  RequiredRule(),
		"email":     EmailRule(),
		"phone":     PhoneRule(),
		"cpf":       CPFRule(),
		"age":       AgeRule(),
		"name":      NameRule(),
		"text":      TextRule(),
		"shortText": ShortTextRule(),
	}
}

// AgeRange is the custom check behind AgeRule.
func AgeRange(value Value, _ FormData) error {
	age, ok := wholeNumber(value)
	if !ok {
		return errors.New("Idade deve ser um número inteiro")
	}
	if age < minAge || age > maxAge {
		return fmt.Errorf("Idade deve estar entre %d e %d anos", minAge, maxAge)
	}
	return nil
}

// Adult accepts ages of 18 or more.
func Adult(value Value, _ FormData) error {
	age, ok := wholeNumber(value)
	if !ok || age < adultAge {
		return fmt.Errorf("É necessário ter pelo menos %d anos", adultAge)
	}
	return nil
}

// CPFDigits verifies the two CPF check digits. Punctuation is ignored.
func CPFDigits(value Value, _ FormData) error {
	text, ok := value.Text()
	if !ok {
		return ErrInvalidValue
	}
	if !validCPF(text) {
		return errors.New("CPF inválido")
	}
	return nil
}

func validCPF(s string) bool {
	digits := make([]int, 0, 11)
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits = append(digits, int(r-'0'))
		case r == '.' || r == '-' || r == ' ':
		default:
			return false
		}
	}
	if len(digits) != 11 {
		return false
	}

	allSame := true
	for _, d := range digits[1:] {
		if d != digits[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return false
	}

	for _, n := range []int{9, 10} {
		sum := 0
		for i := 0; i < n; i++ {
			sum += digits[i] * (n + 1 - i)
		}
		check := (sum * 10) % 11
		if check == 10 {
			check = 0
		}
		if check != digits[n] {
			return false
		}
	}
	return true
}

// wholeNumber clamps integers outside the int range to math.MinInt or
// math.MaxInt so range checks still reject them as out of range.
func wholeNumber(value Value) (int, bool) {
	if f, ok := value.Float(); ok {
		switch {
		case math.IsNaN(f) || f != math.Trunc(f):
			return 0, false
		case f >= math.MaxInt:
			return math.MaxInt, true
		case f <= math.MinInt:
			return math.MinInt, true
		}
		return int(f), true
	}
	if text, ok := value.Text(); ok {
		n, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
