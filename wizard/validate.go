package wizard

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	// \s alone misses \v and the Unicode spaces a browser treats as
	// whitespace.
	emailPattern    = regexp.MustCompile(`^[^\s\v\p{Zs}\x{2028}\x{2029}\x{feff}@]+@[^\s\v\p{Zs}\x{2028}\x{2029}\x{feff}@]+\.[^\s\v\p{Zs}\x{2028}\x{2029}\x{feff}@]+$`)
	phonePattern    = regexp.MustCompile(`^09\d{8}$`)
	idNumberPattern = regexp.MustCompile(`^[A-Z]\d{9}$`)
	timePattern     = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// Minimums enforced by the field validators.
const (
	MinNameLength     = 2
	MinPasswordLength = 8
	MinPasswordScore  = 3
)

// Validators return an empty string when the value is acceptable and a
// user-facing message otherwise, so step validators can write
// errs.Add("email", ValidateEmail(f.Email)).

// ValidateName requires a trimmed name of at least two characters.
func ValidateName(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "請輸入姓名"
	}
	if utf8.RuneCountInString(v) < MinNameLength {
		return "姓名至少需要2個字元"
	}
	return ""
}

// ValidateEmail requires a non-empty address of the form a@b.c.
func ValidateEmail(v string) string {
	if v == "" {
		return "請輸入電子郵件"
	}
	if !emailPattern.MatchString(v) {
		return "請輸入有效的電子郵件格式"
	}
	return ""
}

// ValidatePhone requires a Taiwan mobile number, 09 followed by 8 digits.
func ValidatePhone(v string) string {
	if v == "" {
		return "請輸入手機號碼"
	}
	if !phonePattern.MatchString(v) {
		return "請輸入有效的手機號碼格式 (09xxxxxxxx)"
	}
	return ""
}

// ValidatePassword requires eight characters and a strength score of 3.
func ValidatePassword(v string) string {
	if v == "" {
		return "請輸入密碼"
	}
	if utf8.RuneCountInString(v) < MinPasswordLength {
		return "密碼至少需要8個字元"
	}
	if CheckPasswordStrength(v).Score < MinPasswordScore {
		return "密碼強度不足，請包含大小寫字母、數字或特殊符號"
	}
	return ""
}

// ValidateConfirmPassword requires an exact repeat of the password.
func ValidateConfirmPassword(password, confirm string) string {
	if confirm == "" {
		return "請確認密碼"
	}
	if confirm != password {
		return "密碼不一致"
	}
	return ""
}

// ValidateTerms requires the terms checkbox to be ticked.
func ValidateTerms(agreed bool) string {
	if !agreed {
		return "請同意服務條款與隱私政策"
	}
	return ""
}

// ValidateIDNumber checks a Taiwan national ID after uppercasing.
func ValidateIDNumber(v string) string {
	v = strings.ToUpper(strings.TrimSpace(v))
	if v == "" {
		return "請輸入身分證字號"
	}
	if !idNumberPattern.MatchString(v) {
		return "身分證字號格式不正確"
	}
	return ""
}

// ValidateDataURL requires an image data URL within the upload limits, as
// stored by the upload fields. label names the document in the message.
func ValidateDataURL(v, label string) string {
	if !strings.HasPrefix(v, "data:") {
		return "請上傳" + label
	}
	err := CheckDataURL(v)
	var um UserMessager
	switch {
	case err == nil:
		return ""
	case errors.As(err, &um):
		return um.UserMessage()
	default:
		return "請上傳" + label
	}
}

// ValidateRequired rejects blank values.
func ValidateRequired(v, msg string) string {
	if strings.TrimSpace(v) == "" {
		return msg
	}
	return ""
}

// ValidateDate requires a YYYY-MM-DD date that is not before today.
func ValidateDate(v string, now time.Time) string {
	if v == "" {
		return "請選擇日期"
	}
	d, err := time.ParseInLocation("2006-01-02", v, now.Location())
	if err != nil {
		return "日期格式不正確"
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if d.Before(today) {
		return "不能選擇過去的日期"
	}
	return ""
}

// ValidateTime requires an HH:MM start time.
func ValidateTime(v string) string {
	if v == "" {
		return "請選擇時間"
	}
	if !timePattern.MatchString(v) {
		return "時間格式不正確"
	}
	return ""
}

// ValidateParticipants requires lo <= n <= hi. A hi of zero means no
// upper bound.
func ValidateParticipants(n, lo, hi int) string {
	if lo < 1 {
		lo = 1
	}
	if n < lo {
		if lo == 1 {
			return "參與人數至少1人"
		}
		return "參與人數低於最低成團人數"
	}
	if hi > 0 && n > hi {
		return "參與人數超過上限"
	}
	return ""
}
