package store

import "testing"

// TestFoldSharesStorageAcrossLongNames: SCORE, SC, and SCOREBOARD all
// fold to the same key.
func TestFoldSharesStorageAcrossLongNames(t *testing.T) {
	names := []string{"SCORE", "SC", "SCOREBOARD"}
	want := Fold(names[0])
	for _, n := range names[1:] {
		if got := Fold(n); got != want {
			t.Errorf("Fold(%q) = %q, want %q (same as Fold(%q))", n, got, want, names[0])
		}
	}
}

// TestFoldDistinguishesSuffixedFromBare: A$ and A are distinct keys.
func TestFoldDistinguishesSuffixedFromBare(t *testing.T) {
	if Fold("A") == Fold("A$") {
		t.Errorf("Fold(A) == Fold(A$) = %q, want distinct keys", Fold("A"))
	}
}

func TestFoldIsCaseInsensitive(t *testing.T) {
	if Fold("score") != Fold("SCORE") {
		t.Errorf("Fold(score) = %q, Fold(SCORE) = %q, want equal", Fold("score"), Fold("SCORE"))
	}
}

func TestFoldPreservesPercentSuffix(t *testing.T) {
	if got, want := Fold("COUNT%"), "CO%"; got != want {
		t.Errorf("Fold(COUNT%%) = %q, want %q", got, want)
	}
}

func TestIsStringSuffix(t *testing.T) {
	cases := map[string]bool{
		"A":      false,
		"A$":     true,
		"COUNT%": false,
		"":       false,
	}
	for ident, want := range cases {
		if got := IsStringSuffix(ident); got != want {
			t.Errorf("IsStringSuffix(%q) = %v, want %v", ident, got, want)
		}
	}
}
