package textnorm

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"ascii lower", "iPhone 15 Pro", "iphone 15 pro"},
		{"collapse whitespace", "  samsung \t galaxy\n s24  ", "samsung galaxy s24"},
		{"strip punctuation", "c'est-la (vie)!", "cestla vie"},
		{"arabic diacritics", "السَّلام", "السلام"},
		{"tatweel removed", "مـــرحبا", "مرحبا"},
		{"alef madda folded", "آدم", "ادم"},
		{"alef hamza above folded", "أحمد", "احمد"},
		{"alef hamza below folded", "إسلام", "اسلام"},
		{"alef maqsura to yeh", "مستشفى", "مستشفي"},
		{"teh marbuta to heh", "مدرسة", "مدرسه"},
		{"compat decomposition", "① Ａ", "1 a"},
		// NFKD leaves the acute as a combining mark.
		{"mixed scripts", "Nescafé قهوة", "nescafé قهوه"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.in)
			if got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"iPhone 15 Pro Max!!",
		"السَّلام عليكم",
		"أبجد هوز",
		"café au lait",
		"  spaces   and\ttabs  ",
		"مدرسة المصطفى",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestNormalizeDiacriticInsensitive(t *testing.T) {
	marked := "السَّلام"
	bare := "السلام"
	if Normalize(marked) != Normalize(bare) {
		t.Errorf("diacritic-marked and bare forms normalize differently: %q vs %q",
			Normalize(marked), Normalize(bare))
	}
}
