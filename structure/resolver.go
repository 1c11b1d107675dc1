package structure

import (
	"strconv"

	"github.com/Kellerman81/go_media_sorter/apiexternal"
	"github.com/Kellerman81/go_media_sorter/logger"
	"github.com/Kellerman81/go_media_sorter/parser"
	"github.com/pkg/errors"
)

// TitleLookup canonicalizes a parsed title via an external metadata
// service. Implementations must return an error instead of guessing.
type TitleLookup interface {
	LookupMovie(title string, year int) (string, error)
	LookupTV(title string) (string, error)
}

// TmdbLookup queries themoviedb through the shared rate limited client.
type TmdbLookup struct{}

func (TmdbLookup) LookupMovie(title string, year int) (string, error) {
	if apiexternal.TmdbApi.ApiKey == "" {
		return "", errors.New("themoviedb api key not set")
	}
	result, err := apiexternal.TmdbApi.SearchMovieYear(title, year)
	if err != nil {
		return "", err
	}
	if len(result.Results) == 0 {
		return "", errors.New("no match found")
	}
	return result.Results[0].Title, nil
}

func (TmdbLookup) LookupTV(title string) (string, error) {
	if apiexternal.TmdbApi.ApiKey == "" {
		return "", errors.New("themoviedb api key not set")
	}
	result, err := apiexternal.TmdbApi.SearchTV(title)
	if err != nil {
		return "", err
	}
	if len(result.Results) == 0 {
		return "", errors.New("no match found")
	}
	return result.Results[0].Name, nil
}

// TitleResolver wraps a TitleLookup with a per run cache so several
// episodes of one show trigger a single lookup. Lookup failures are not
// errors, the locally parsed title is kept.
type TitleResolver struct {
	lookup TitleLookup
	cache  map[string]string
}

func NewTitleResolver(lookup TitleLookup) *TitleResolver {
	return &TitleResolver{lookup: lookup, cache: make(map[string]string)}
}

func (r *TitleResolver) Resolve(m *parser.ParseInfo) string {
	if r.lookup == nil || m.Title == "" {
		return m.Title
	}
	key := logger.StringToSlug(m.Title) + "-" + strconv.Itoa(m.Year)
	if cached, ok := r.cache[key]; ok {
		return cached
	}
	title := m.Title
	var resolved string
	var err error
	switch m.Kind {
	case parser.KindTV:
		resolved, err = r.lookup.LookupTV(m.Title)
	case parser.KindMovie:
		resolved, err = r.lookup.LookupMovie(m.Title, m.Year)
	default:
		r.cache[key] = title
		return title
	}
	if err != nil || resolved == "" {
		logger.Log.Debug("Title lookup failed for: ", m.Title, " Error: ", err)
	} else {
		title = resolved
	}
	r.cache[key] = title
	return title
}
