package structure

import (
	"fmt"
	"path/filepath"

	"github.com/Kellerman81/go_media_sorter/logger"
	"github.com/Kellerman81/go_media_sorter/parser"
	"github.com/pkg/errors"
)

// PathBuilder derives the canonical destination folder and the pre
// suffix base filename for a classified item.
type PathBuilder struct {
	TvRoot     string
	MoviesRoot string
}

// Build returns the destination directory and the base name without
// extension. The base name is what the duplicate resolver works on.
func (p PathBuilder) Build(title string, m *parser.ParseInfo) (string, string, error) {
	title = logger.Path(logger.StringReplaceDiacritics(title), false)
	// path.Clean turns an empty string into "."
	if title == "" || title == "." {
		return "", "", errors.New("empty title")
	}
	switch m.Kind {
	case parser.KindTV:
		foldername := filepath.Join(p.TvRoot, title, fmt.Sprintf("Season %02d", m.Season))
		filename := fmt.Sprintf("%s - S%02dE%02d", title, m.Season, m.Episode)
		return foldername, filename, nil
	case parser.KindMovie:
		if m.Year == 0 {
			return "", "", errors.Errorf("no year for movie <%s>", m.File)
		}
		foldername := filepath.Join(p.MoviesRoot, fmt.Sprintf("%s (%d)", title, m.Year))
		filename := fmt.Sprintf("%s (%d)", title, m.Year)
		return foldername, filename, nil
	}
	return "", "", errors.Errorf("unclassified item <%s>", m.File)
}
