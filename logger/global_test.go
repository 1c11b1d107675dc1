package logger

import "testing"

func TestStringToSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Amélie & Co", "amelie-and-co"},
		{"The Matrix", "the-matrix"},
		{"Über Show!", "ueber-show"},
		{"What's Up?", "whats-up"},
	}
	for _, test := range tests {
		if got := StringToSlug(test.in); got != test.want {
			t.Errorf("%s: got %q, want %q", test.in, got, test.want)
		}
	}
}

func TestStringReplaceDiacritics(t *testing.T) {
	if got := StringReplaceDiacritics("Amélie"); got != "Amelie" {
		t.Errorf("got %q, want Amelie", got)
	}
	if got := StringReplaceDiacritics("Größe"); got != "Groesse" {
		t.Errorf("got %q, want Groesse", got)
	}
}

func TestPath(t *testing.T) {
	if got := Path("Movie: The <Best>?", false); got != "Movie The Best" {
		t.Errorf("got %q, want Movie The Best", got)
	}
	if got := Path("TV/Show", true); got != "TV/Show" {
		t.Errorf("got %q, want TV/Show", got)
	}
	if got := Path("TV/Show", false); got != "TVShow" {
		t.Errorf("got %q, want TVShow", got)
	}
}

func TestTrimStringInclAfterString(t *testing.T) {
	if got := TrimStringInclAfterString("Title WEBRip extra", "webrip"); got != "Title " {
		t.Errorf("got %q", got)
	}
	if got := TrimStringInclAfterString("No Marker", "webrip"); got != "No Marker" {
		t.Errorf("got %q", got)
	}
}
