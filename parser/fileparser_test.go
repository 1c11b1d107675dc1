package parser

import (
	"testing"
)

func TestParseFileTV(t *testing.T) {
	tests := []struct {
		in      string
		title   string
		season  int
		episode int
	}{
		{"The.Expanse.S02E05.720p.BluRay.x264.mkv", "The Expanse", 2, 5},
		{"show.name.s1e9.mkv", "Show Name", 1, 9},
		{"Other Show 1x01 HDTV.mp4", "Other Show", 1, 1},
		{"Some Show Season 3 Episode 12.avi", "Some Show", 3, 12},
		{"Show_Name_S10E100_WEB-DL.mkv", "Show Name", 10, 100},
	}
	for _, test := range tests {
		m, err := NewFileParser(test.in)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", test.in, err)
		}
		if m.Kind != KindTV {
			t.Errorf("%s: kind = %s, want TV", test.in, m.Kind)
		}
		if m.Title != test.title {
			t.Errorf("%s: title = %q, want %q", test.in, m.Title, test.title)
		}
		if m.Season != test.season || m.Episode != test.episode {
			t.Errorf("%s: got S%dE%d, want S%dE%d", test.in, m.Season, m.Episode, test.season, test.episode)
		}
	}
}

func TestParseFileYearBeforeEpisodeMarker(t *testing.T) {
	m, _ := NewFileParser("Show.2019.S01E02.mkv")
	if m.Kind != KindTV {
		t.Fatalf("kind = %s, want TV", m.Kind)
	}
	if m.Season != 1 || m.Episode != 2 {
		t.Errorf("got S%dE%d, want S01E02", m.Season, m.Episode)
	}
}

func TestParseFileIdentifierPadding(t *testing.T) {
	m, _ := NewFileParser("show.s1e2.mkv")
	if m.Identifier != "S01E02" {
		t.Errorf("identifier = %q, want S01E02", m.Identifier)
	}
}

func TestParseFileMovie(t *testing.T) {
	tests := []struct {
		in         string
		title      string
		year       int
		resolution string
	}{
		{"Inception.2010.1080p.BluRay.x264.mkv", "Inception", 2010, "1080p"},
		{"The.Matrix.1999.mkv", "The Matrix", 1999, ""},
		{"Arrival (2016) [1080p].mp4", "Arrival", 2016, "1080p"},
		{"Some.Movie.2012.2160p.WEBRip.x265.mkv", "Some Movie", 2012, "2160p"},
		{"Old.Film.1948.DVDRip.XviD.avi", "Old Film", 1948, ""},
	}
	for _, test := range tests {
		m, err := NewFileParser(test.in)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", test.in, err)
		}
		if m.Kind != KindMovie {
			t.Errorf("%s: kind = %s, want MOVIE", test.in, m.Kind)
		}
		if m.Title != test.title {
			t.Errorf("%s: title = %q, want %q", test.in, m.Title, test.title)
		}
		if m.Year != test.year {
			t.Errorf("%s: year = %d, want %d", test.in, m.Year, test.year)
		}
		if m.Resolution != test.resolution {
			t.Errorf("%s: resolution = %q, want %q", test.in, m.Resolution, test.resolution)
		}
	}
}

func TestParseFileResolutionDeterministic(t *testing.T) {
	// two resolution tags in one name, the earliest must win every time
	for i := 0; i < 50; i++ {
		m, _ := NewFileParser("Movie.2010.720p.1080p.BluRay.mkv")
		if m.Resolution != "720p" {
			t.Fatalf("resolution = %q, want 720p", m.Resolution)
		}
	}
	for i := 0; i < 50; i++ {
		m, _ := NewFileParser("Movie.2010.1080p.720p.BluRay.mkv")
		if m.Resolution != "1080p" {
			t.Fatalf("resolution = %q, want 1080p", m.Resolution)
		}
	}
}

func TestParseFileUnknown(t *testing.T) {
	tests := []string{
		"randomfile.mkv",
		"Concert.1920x1080.mkv",
		"2012.mkv",
	}
	for _, test := range tests {
		m, _ := NewFileParser(test)
		if m.Kind != KindUnknown {
			t.Errorf("%s: kind = %s, want UNKNOWN", test, m.Kind)
		}
	}
}

func TestParseFileExtension(t *testing.T) {
	m, _ := NewFileParser("Inception.2010.mkv")
	if m.Extension != ".mkv" {
		t.Errorf("extension = %q, want .mkv", m.Extension)
	}
	m, _ = NewFileParser("Show.S01E01.english.srt")
	if m.Extension != ".srt" {
		t.Errorf("extension = %q, want .srt", m.Extension)
	}
}

func TestHasExtension(t *testing.T) {
	if !HasExtension("/tmp/movie.MKV", VideoExtensions) {
		t.Error("MKV not recognized")
	}
	if HasExtension("/tmp/movie.txt", VideoExtensions) {
		t.Error("txt recognized as video")
	}
	if !HasExtension("sub.srt", SubtitleExtensions) {
		t.Error("srt not recognized")
	}
}
