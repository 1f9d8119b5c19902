package wizard

import "testing"

func TestCheckPasswordStrength_AllChecks(t *testing.T) {
	s := CheckPasswordStrength("Abc12345!")
	want := StrengthChecks{Length: true, Lowercase: true, Uppercase: true, Number: true, Special: true}
	if s.Checks != want {
		t.Fatalf("checks = %+v, want all true", s.Checks)
	}
	if s.Score != 5 {
		t.Fatalf("score = %d, want 5", s.Score)
	}
	if s.Label() != "非常強" {
		t.Errorf("label = %q", s.Label())
	}
}

func TestCheckPasswordStrength_Table(t *testing.T) {
	tests := []struct {
		pw    string
		score int
	}{
		{"", 0},
		{"a", 1},
		{"aA", 2},
		{"aA1", 3},
		{"aA1?", 4},
		{"abcdefgh", 2},
		{"ABCDEFGH1", 3},
		{"pass word", 2},   // space is not special
		{"under_score", 2}, // underscore is not special
		{"{}|<>", 1},
		{"密碼ABcd1", 3},  // seven characters: no length point
		{"密碼ABcd12", 4}, // eight characters
	}
	for _, tt := range tests {
		got := CheckPasswordStrength(tt.pw)
		if got.Score != tt.score {
			t.Errorf("CheckPasswordStrength(%q).Score = %d, want %d (%+v)", tt.pw, got.Score, tt.score, got.Checks)
		}
	}
}

func TestPasswordStrength_Label(t *testing.T) {
	labels := map[int]string{0: "弱", 2: "弱", 3: "中等", 4: "強", 5: "非常強"}
	for score, want := range labels {
		if got := (PasswordStrength{Score: score}).Label(); got != want {
			t.Errorf("Label(score=%d) = %q, want %q", score, got, want)
		}
	}
	if (PasswordStrength{Score: 2}).Acceptable() {
		t.Error("score 2 should not be acceptable")
	}
	if !(PasswordStrength{Score: 3}).Acceptable() {
		t.Error("score 3 should be acceptable")
	}
}
