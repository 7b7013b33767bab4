package slug

import "testing"

func TestNormalizeStripsAccentsAndApostrophes(t *testing.T) {
	cases := []struct {
		name string
		in   string
		sep  string
		want string
	}{
		{"accented username", "Jean-Marc Ünïversité", SeparatorUnderscore, "jean-marc_universite"},
		{"curly apostrophe", "L’Atelier d’Art", SeparatorHyphen, "latelier-dart"},
		{"straight apostrophe", "O'Brien's Page", SeparatorUnderscore, "obriens_page"},
		{"whitespace runs", "  My   New\tProject  ", SeparatorHyphen, "my-new-project"},
		{"symbols dropped", "Caffé & Co. (2024)", SeparatorHyphen, "caffe-co-2024"},
		{"already normalized", "jean-marc_universite", SeparatorUnderscore, "jean-marc_universite"},
		{"empty", "   ", SeparatorHyphen, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.in, tc.sep)
			if got != tc.want {
				t.Fatalf("Normalize(%q, %q) = %q, want %q", tc.in, tc.sep, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Jean-Marc Ünïversité",
		"Ma Première Page",
		"__weird -- input__",
		"çà et là",
		"plain",
	}
	for _, in := range inputs {
		for _, sep := range []string{SeparatorHyphen, SeparatorUnderscore} {
			once := Normalize(in, sep)
			twice := Normalize(once, sep)
			if once != twice {
				t.Fatalf("Normalize not idempotent for %q sep %q: %q != %q", in, sep, once, twice)
			}
		}
	}
}

func TestNormalizeCollapsesRepeatedSeparators(t *testing.T) {
	if got := Normalize("a  b   c", SeparatorHyphen); got != "a-b-c" {
		t.Fatalf("unexpected slug %q", got)
	}
	if got := Normalize("a__b", SeparatorUnderscore); got != "a_b" {
		t.Fatalf("unexpected username %q", got)
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid("my-page", SeparatorHyphen) {
		t.Fatal("expected my-page to be valid")
	}
	if IsValid("My Page", SeparatorHyphen) {
		t.Fatal("expected raw title to be invalid")
	}
	if IsValid("", SeparatorHyphen) {
		t.Fatal("expected empty value to be invalid")
	}
}
