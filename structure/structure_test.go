package structure

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Kellerman81/go_media_sorter/config"
)

func testConfig(t *testing.T) config.MainConfig {
	t.Helper()
	cfg := config.MainConfig{}
	cfg.Paths.WatchPath = t.TempDir()
	cfg.Paths.TvPath = t.TempDir()
	cfg.Paths.MoviesPath = t.TempDir()
	cfg.Paths.AllowedVideoExtensions = []string{".mkv", ".mp4", ".avi"}
	cfg.Paths.AllowedSubtitleExtensions = []string{".srt", ".sub"}
	return cfg
}

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0777); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}
}

func mustExist(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file missing: %s", path)
	}
}

func mustNotExist(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file should not exist: %s", path)
	}
}

func TestOrganizeSingleFileMovie(t *testing.T) {
	cfg := testConfig(t)
	var buf bytes.Buffer
	movelog := NewMoveLogWriter(&buf)
	organizer := NewOrganizer(cfg, nil, movelog)

	source := filepath.Join(cfg.Paths.WatchPath, "Inception.2010.1080p.BluRay.x264.mkv")
	writeFile(t, source, "videodata")
	organizer.OrganizeSingleFile(source)

	target := filepath.Join(cfg.Paths.MoviesPath, "Inception (2010)", "Inception (2010).mkv")
	mustExist(t, target)
	mustNotExist(t, source)

	line := buf.String()
	if !strings.Contains(line, " - MOVIE | ") || !strings.Contains(line, " -> "+target) {
		t.Errorf("move log line wrong: %q", line)
	}
	if len(movelog.Recent()) != 1 {
		t.Errorf("recent records = %d, want 1", len(movelog.Recent()))
	}
}

func TestOrganizeFolderEpisodeWithSubtitle(t *testing.T) {
	cfg := testConfig(t)
	organizer := NewOrganizer(cfg, nil, nil)

	folder := filepath.Join(cfg.Paths.WatchPath, "Show.S01E02.720p.WEB-DL")
	writeFile(t, filepath.Join(folder, "Show.S01E02.720p.mkv"), "videodata")
	writeFile(t, filepath.Join(folder, "Subs", "Show.S01E02.english.forced.srt"), "subdata")
	organizer.OrganizeFolder(folder)

	season := filepath.Join(cfg.Paths.TvPath, "Show", "Season 01")
	mustExist(t, filepath.Join(season, "Show - S01E02.mkv"))
	mustExist(t, filepath.Join(season, "Show - S01E02.en.forced.srt"))
}

func TestOrganizeFolderNameFallback(t *testing.T) {
	cfg := testConfig(t)
	organizer := NewOrganizer(cfg, nil, nil)

	// the file name alone carries no classification, the folder name does
	folder := filepath.Join(cfg.Paths.WatchPath, "Some.Movie.2012.1080p.WEBRip")
	writeFile(t, filepath.Join(folder, "smovie.mkv"), "videodata")
	organizer.OrganizeFolder(folder)

	mustExist(t, filepath.Join(cfg.Paths.MoviesPath, "Some Movie (2012)", "Some Movie (2012).mkv"))
}

func TestOrganizeFolderCleanup(t *testing.T) {
	cfg := testConfig(t)
	cfg.Paths.CleanupsizeMB = 1
	organizer := NewOrganizer(cfg, nil, nil)

	folder := filepath.Join(cfg.Paths.WatchPath, "Another.Movie.2015")
	writeFile(t, filepath.Join(folder, "Another.Movie.2015.mkv"), "videodata")
	writeFile(t, filepath.Join(folder, "sample.nfo"), "junk")
	organizer.OrganizeFolder(folder)

	mustExist(t, filepath.Join(cfg.Paths.MoviesPath, "Another Movie (2015)", "Another Movie (2015).mkv"))
	mustNotExist(t, folder)
}

func TestOrganizeDuplicateRetagsAndVersions(t *testing.T) {
	cfg := testConfig(t)
	organizer := NewOrganizer(cfg, nil, nil)
	organizer.Prober = func(videofile string) string { return "1080p" }

	library := filepath.Join(cfg.Paths.MoviesPath, "Movie (2010)")
	writeFile(t, filepath.Join(library, "Movie (2010).mkv"), "placedmovie")

	source := filepath.Join(cfg.Paths.WatchPath, "Movie.2010.1080p.mkv")
	writeFile(t, source, "incoming movie data")
	organizer.OrganizeSingleFile(source)

	mustNotExist(t, filepath.Join(library, "Movie (2010).mkv"))
	mustExist(t, filepath.Join(library, "Movie (2010).1080p.mkv"))
	mustExist(t, filepath.Join(library, "Movie (2010).1080p.v2.mkv"))
}

func TestOrganizeDuplicateTwoResolutions(t *testing.T) {
	cfg := testConfig(t)
	organizer := NewOrganizer(cfg, nil, nil)
	organizer.Prober = func(videofile string) string { return "720p" }

	library := filepath.Join(cfg.Paths.MoviesPath, "Movie (2010)")
	writeFile(t, filepath.Join(library, "Movie (2010).mkv"), "placedmovie")

	source := filepath.Join(cfg.Paths.WatchPath, "Movie.2010.1080p.mkv")
	writeFile(t, source, "incoming movie data")
	organizer.OrganizeSingleFile(source)

	mustExist(t, filepath.Join(library, "Movie (2010).720p.mkv"))
	mustExist(t, filepath.Join(library, "Movie (2010).1080p.mkv"))
	mustNotExist(t, filepath.Join(library, "Movie (2010).mkv"))
}

func TestOrganizeProbesIncomingResolution(t *testing.T) {
	cfg := testConfig(t)
	organizer := NewOrganizer(cfg, nil, nil)
	organizer.Prober = func(videofile string) string {
		if strings.HasPrefix(videofile, cfg.Paths.WatchPath) {
			return "1080p"
		}
		return "720p"
	}

	library := filepath.Join(cfg.Paths.MoviesPath, "Movie (2010)")
	writeFile(t, filepath.Join(library, "Movie (2010).mkv"), "placedmovie")

	// neither name carries a resolution tag, both sides get probed
	source := filepath.Join(cfg.Paths.WatchPath, "Movie.2010.mkv")
	writeFile(t, source, "incoming movie data")
	organizer.OrganizeSingleFile(source)

	mustExist(t, filepath.Join(library, "Movie (2010).720p.mkv"))
	mustExist(t, filepath.Join(library, "Movie (2010).1080p.mkv"))
	mustNotExist(t, filepath.Join(library, "Movie (2010).mkv"))
}

func TestOrganizeFolderMoveFailureIsolated(t *testing.T) {
	cfg := testConfig(t)
	organizer := NewOrganizer(cfg, nil, nil)

	// a file squatting on the first movie's destination folder makes
	// that move fail, the rest of the batch must still land
	writeFile(t, filepath.Join(cfg.Paths.MoviesPath, "Alpha (2010)"), "squatter")

	folder := filepath.Join(cfg.Paths.WatchPath, "batch")
	writeFile(t, filepath.Join(folder, "Alpha.2010.mkv"), "first video")
	writeFile(t, filepath.Join(folder, "Beta.2011.mkv"), "second video")
	organizer.OrganizeFolder(folder)

	mustExist(t, filepath.Join(folder, "Alpha.2010.mkv"))
	mustExist(t, filepath.Join(cfg.Paths.MoviesPath, "Beta (2011)", "Beta (2011).mkv"))
}

func TestOrganizeRescanIsNoOp(t *testing.T) {
	cfg := testConfig(t)
	organizer := NewOrganizer(cfg, nil, nil)

	library := filepath.Join(cfg.Paths.MoviesPath, "Movie (2010)")
	writeFile(t, filepath.Join(library, "Movie (2010).mkv"), "samedata")

	source := filepath.Join(cfg.Paths.WatchPath, "Movie.2010.mkv")
	writeFile(t, source, "samedata")
	organizer.OrganizeSingleFile(source)

	// identical size means already sorted, nothing moves
	mustExist(t, source)
	entries, _ := os.ReadDir(library)
	if len(entries) != 1 {
		t.Errorf("library entries = %d, want 1", len(entries))
	}
}

func TestOrganizeUnknownSkipped(t *testing.T) {
	cfg := testConfig(t)
	var buf bytes.Buffer
	organizer := NewOrganizer(cfg, nil, NewMoveLogWriter(&buf))

	source := filepath.Join(cfg.Paths.WatchPath, "randomfile.mkv")
	writeFile(t, source, "videodata")
	organizer.OrganizeSingleFile(source)

	mustExist(t, source)
	if buf.Len() != 0 {
		t.Errorf("unexpected move log output: %q", buf.String())
	}
}

func TestOrganizeMinVideoSize(t *testing.T) {
	cfg := testConfig(t)
	cfg.Paths.MinVideoSize = 1
	organizer := NewOrganizer(cfg, nil, nil)

	source := filepath.Join(cfg.Paths.WatchPath, "Inception.2010.mkv")
	writeFile(t, source, "tiny")
	organizer.OrganizeSingleFile(source)

	mustExist(t, source)
}

type stubLookup struct {
	movies map[string]string
}

func (s stubLookup) LookupMovie(title string, year int) (string, error) {
	if canonical, ok := s.movies[title]; ok {
		return canonical, nil
	}
	return "", os.ErrNotExist
}

func (s stubLookup) LookupTV(title string) (string, error) {
	return "", os.ErrNotExist
}

func TestOrganizeUsesLookupTitle(t *testing.T) {
	cfg := testConfig(t)
	lookup := stubLookup{movies: map[string]string{"Incepcion": "Inception"}}
	organizer := NewOrganizer(cfg, lookup, nil)

	source := filepath.Join(cfg.Paths.WatchPath, "Incepcion.2010.mkv")
	writeFile(t, source, "videodata")
	organizer.OrganizeSingleFile(source)

	mustExist(t, filepath.Join(cfg.Paths.MoviesPath, "Inception (2010)", "Inception (2010).mkv"))
}

func TestOrganizeLookupFailureFallsBack(t *testing.T) {
	cfg := testConfig(t)
	organizer := NewOrganizer(cfg, stubLookup{}, nil)

	source := filepath.Join(cfg.Paths.WatchPath, "Obscure.Film.2003.mkv")
	writeFile(t, source, "videodata")
	organizer.OrganizeSingleFile(source)

	mustExist(t, filepath.Join(cfg.Paths.MoviesPath, "Obscure Film (2003)", "Obscure Film (2003).mkv"))
}
