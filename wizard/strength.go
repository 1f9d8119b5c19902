package wizard

import (
	"regexp"
	"unicode/utf8"
)

var (
	lowerPattern   = regexp.MustCompile(`[a-z]`)
	upperPattern   = regexp.MustCompile(`[A-Z]`)
	numberPattern  = regexp.MustCompile(`\d`)
	specialPattern = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// StrengthChecks are the five independent predicates over a password.
type StrengthChecks struct {
	Length    bool `json:"length"`
	Lowercase bool `json:"lowercase"`
	Uppercase bool `json:"uppercase"`
	Number    bool `json:"number"`
	Special   bool `json:"special"`
}

// PasswordStrength is the score (0-5) of a password with its checks.
type PasswordStrength struct {
	Checks StrengthChecks `json:"checks"`
	Score  int            `json:"score"`
}

// CheckPasswordStrength evaluates pw. It is a pure function of the string.
func CheckPasswordStrength(pw string) PasswordStrength {
	c := StrengthChecks{
		Length:    utf8.RuneCountInString(pw) >= MinPasswordLength,
		Lowercase: lowerPattern.MatchString(pw),
		Uppercase: upperPattern.MatchString(pw),
		Number:    numberPattern.MatchString(pw),
		Special:   specialPattern.MatchString(pw),
	}
	score := 0
	for _, ok := range []bool{c.Length, c.Lowercase, c.Uppercase, c.Number, c.Special} {
		if ok {
			score++
		}
	}
	return PasswordStrength{Checks: c, Score: score}
}

// Label is the meter text shown next to the password input.
func (s PasswordStrength) Label() string {
	switch {
	case s.Score <= 2:
		return "弱"
	case s.Score == 3:
		return "中等"
	case s.Score == 4:
		return "強"
	default:
		return "非常強"
	}
}

// Acceptable reports whether the score meets the registration minimum.
func (s PasswordStrength) Acceptable() bool {
	return s.Score >= MinPasswordScore
}
