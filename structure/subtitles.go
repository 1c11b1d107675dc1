package structure

import (
	"path/filepath"
	"strings"
)

// SubtitleItem is a loose subtitle track found next to (or below) a
// video, with the markers parsed out of its filename.
type SubtitleItem struct {
	SourcePath string
	Language   string
	Forced     bool
	SDH        bool
	Extension  string
}

var subtitleLanguages = map[string]string{
	"english": "en",
	"eng":     "en",
	"en":      "en",
	"spanish": "es",
	"espanol": "es",
	"spa":     "es",
	"es":      "es",
	"french":  "fr",
	"fre":     "fr",
	"fra":     "fr",
	"fr":      "fr",
	"german":  "de",
	"ger":     "de",
	"deu":     "de",
	"de":      "de",
}

func splitTokens(name string) []string {
	return strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return r == '.' || r == ' ' || r == '_' || r == '-'
	})
}

// ParseSubtitle extracts language and forced/sdh markers from the
// subtitle filename. Missing language means unspecified, no tag is
// emitted for it.
func ParseSubtitle(sourcepath string) SubtitleItem {
	s := SubtitleItem{SourcePath: sourcepath, Extension: strings.ToLower(filepath.Ext(sourcepath))}
	name := filepath.Base(sourcepath)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	for _, token := range splitTokens(name) {
		switch token {
		case "forced":
			s.Forced = true
		case "sdh", "cc":
			s.SDH = true
		default:
			if lang, ok := subtitleLanguages[token]; ok && s.Language == "" {
				s.Language = lang
			}
		}
	}
	return s
}

// DestName mirrors the video's final base name and encodes the parsed
// markers: base[.lang][.forced][.sdh] + original extension.
func (s SubtitleItem) DestName(videobase string) string {
	name := videobase
	if s.Language != "" {
		name += "." + s.Language
	}
	if s.Forced {
		name += ".forced"
	}
	if s.SDH {
		name += ".sdh"
	}
	return name + s.Extension
}

// MatchSubtitle picks the video the subtitle belongs to. A single video
// wins unconditionally. Otherwise the video sharing the most name
// tokens with the subtitle wins, ties broken by the longest common
// token prefix and finally by the lexicographically smallest path, so
// the choice is deterministic. Returns -1 when nothing matches at all.
func MatchSubtitle(videos []string, subtitlepath string) int {
	if len(videos) == 0 {
		return -1
	}
	if len(videos) == 1 {
		return 0
	}
	subname := filepath.Base(subtitlepath)
	subtokens := splitTokens(strings.TrimSuffix(subname, filepath.Ext(subname)))

	best := -1
	bestscore := 0
	bestprefix := 0
	for idx := range videos {
		vidname := filepath.Base(videos[idx])
		vidtokens := splitTokens(strings.TrimSuffix(vidname, filepath.Ext(vidname)))
		score := tokenOverlap(vidtokens, subtokens)
		if score == 0 {
			continue
		}
		prefix := commonPrefix(vidtokens, subtokens)
		if score > bestscore ||
			(score == bestscore && prefix > bestprefix) ||
			(score == bestscore && prefix == bestprefix && best != -1 && videos[idx] < videos[best]) {
			best = idx
			bestscore = score
			bestprefix = prefix
		}
	}
	return best
}

func tokenOverlap(a []string, b []string) int {
	seen := make(map[string]bool, len(a))
	for idx := range a {
		seen[a[idx]] = true
	}
	count := 0
	for idx := range b {
		if seen[b[idx]] {
			count++
			seen[b[idx]] = false
		}
	}
	return count
}

func commonPrefix(a []string, b []string) int {
	count := 0
	for count < len(a) && count < len(b) && a[count] == b[count] {
		count++
	}
	return count
}
