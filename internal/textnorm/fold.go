package textnorm

// foldRules maps Arabic orthographic variants to a canonical letter. The
// rules are applied in table order after diacritic removal, so the hamza and
// madda carriers decomposed by NFKD have already lost their combining marks
// by the time folding runs. Additional script-folding rules belong here, not
// in Normalize.
var foldRules = []struct {
	from rune
	to   rune
}{
	{'آ', 'ا'}, // alef madda -> alef
	{'أ', 'ا'}, // alef hamza above -> alef
	{'إ', 'ا'}, // alef hamza below -> alef
	{'ٱ', 'ا'}, // alef wasla -> alef
	{'ى', 'ي'}, // alef maqsura -> yeh
	{'ة', 'ه'}, // teh marbuta -> heh
}

// foldArabic returns the canonical form of r, or r unchanged when no rule
// applies.
func foldArabic(r rune) rune {
	for _, rule := range foldRules {
		if rule.from == r {
			return rule.to
		}
	}
	return r
}
