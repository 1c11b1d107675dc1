// parser
package parser

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type MediaKind int

const (
	KindUnknown MediaKind = iota
	KindTV
	KindMovie
)

func (k MediaKind) String() string {
	switch k {
	case KindTV:
		return "TV"
	case KindMovie:
		return "MOVIE"
	}
	return "UNKNOWN"
}

var VideoExtensions = []string{".mkv", ".mp4", ".avi", ".mov", ".wmv", ".flv", ".m4v", ".mpg", ".mpeg"}
var SubtitleExtensions = []string{".srt", ".sub", ".ass", ".ssa", ".vtt", ".idx", ".sup"}

func HasExtension(file string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(file))
	for idx := range extensions {
		if extensions[idx] == ext {
			return true
		}
	}
	return false
}

type regexpattern struct {
	name string
	// REs need to have 2 sub expressions (groups), the first one is the
	// season, the second one the episode.
	re *regexp.Regexp
}

// TV recognizers in priority order - first match wins. These are more
// specific than the year based movie pattern and must run before it.
var tvpatterns = []regexpattern{
	{"sxxeyy", regexp.MustCompile(`(?i)(?:\b|_)s(\d{1,2})[ ._-]?e(\d{1,3})(?:\b|_)`)},
	{"nxnn", regexp.MustCompile(`(?i)(?:\b|_)(\d{1,2})x(\d{2})(?:\b|_)`)},
	{"seasonepisode", regexp.MustCompile(`(?i)season[ ._-]*(\d{1,2})[ ._-]*episode[ ._-]*(\d{1,3})`)},
}

// Use the last matching year. E.g. '2012 (2009)'.
var yearpattern = regexp.MustCompile(`(?:\b|_)((?:19|20)\d{2})(?:\b|_)`)

// Fixed order, the earliest tag in the name decides. A map would make
// the pick depend on iteration order when a name carries two tags.
var resolutions = []struct {
	token      string
	resolution string
}{
	{"2160p", "2160p"},
	{"4k", "2160p"},
	{"uhd", "2160p"},
	{"1080p", "1080p"},
	{"720p", "720p"},
	{"480p", "480p"},
}

var junkgroups = map[string][]string{
	"quality": {"bluray", "blu-ray", "blu.ray", "blu ray", "brrip", "bdrip", "web-dl", "webdl", "web.dl", "webrip", "web-rip", "hdtv", "pdtv", "sdtv", "dvdrip", "dvdscr", "remux", "hddvd", "cam", "telesync", "telecine"},
	"codec":   {"x264", "x.264", "x265", "x.265", "h264", "h.264", "h265", "h.265", "hevc", "avc", "xvid", "divx", "vp9", "10bit", "hi10p"},
	"audio":   {"aac", "ac3", "eac3", "dd5.1", "ddp5.1", "dts-hd", "dts", "truehd", "atmos", "flac", "mp3", "5.1", "7.1"},
	"edition": {"proper", "repack", "limited", "unrated", "internal", "extended", "remastered", "hdr10", "hdr"},
	"group":   {"yify", "rarbg", "etrg", "sparks", "geckos", "fgt", "ntb"},
}

var titleCaser = cases.Title(language.English, cases.NoLower)

type ParseInfo struct {
	File       string
	Title      string    `json:"title,omitempty"`
	Kind       MediaKind `json:"kind,omitempty"`
	Season     int       `json:"season,omitempty"`
	Episode    int       `json:"episode,omitempty"`
	Year       int       `json:"year,omitempty"`
	Resolution string    `json:"resolution,omitempty"`
	Identifier string    `json:"identifier,omitempty"`
	Extension  string    `json:"extension,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
}

func NewFileParser(filename string) (ParseInfo, error) {
	m := ParseInfo{File: filename}
	err := m.ParseFile()
	return m, err
}

func before(value string, index int) string {
	if index <= 0 {
		return ""
	}
	return value[index-1 : index]
}

func after(value string, index int) string {
	if index >= len(value) {
		return ""
	}
	return value[index : index+1]
}

// parsegroup scans cleanName for every entry of group. Matches need a non
// alphanumeric boundary on both sides. It records the matched tags and
// returns the earliest match index, or -1 when nothing matched.
func (m *ParseInfo) parsegroup(cleanName string, group []string) int {
	earliest := -1
	tolower := strings.ToLower(cleanName)
	for idx := range group {
		index := strings.Index(tolower, group[idx])
		if index == -1 {
			continue
		}
		substrpre := before(cleanName, index)
		substrpost := after(cleanName, index+len(group[idx]))
		if len(substrpost) >= 1 {
			if unicode.IsDigit([]rune(substrpost)[0]) || unicode.IsLetter([]rune(substrpost)[0]) {
				continue
			}
		}
		if len(substrpre) >= 1 {
			if unicode.IsDigit([]rune(substrpre)[0]) || unicode.IsLetter([]rune(substrpre)[0]) {
				continue
			}
		}
		m.Tags = append(m.Tags, cleanName[index:index+len(group[idx])])
		if earliest == -1 || index < earliest {
			earliest = index
		}
	}
	return earliest
}

// ParseFile classifies the name as TV episode or movie and extracts
// title, season/episode or year and the resolution tag. Unrecognized
// names end up with KindUnknown and are not treated as an error here -
// the caller decides how to report them.
func (m *ParseInfo) ParseFile() error {
	name := m.File
	if HasExtension(name, VideoExtensions) || HasExtension(name, SubtitleExtensions) {
		m.Extension = strings.ToLower(filepath.Ext(name))
		name = name[:len(name)-len(m.Extension)]
	}
	cleanName := strings.Replace(name, "_", " ", -1)
	cleanName = strings.TrimLeft(cleanName, "[")
	cleanName = strings.TrimRight(cleanName, "]")

	endIndex := len(cleanName)

	for _, group := range junkgroups {
		idx := m.parsegroup(cleanName, group)
		// a leading tag is not a title boundary
		if idx > 0 && idx < endIndex {
			endIndex = idx
		}
	}
	resIdx := -1
	for idxres := range resolutions {
		idx := m.parsegroup(cleanName, []string{resolutions[idxres].token})
		if idx == -1 {
			continue
		}
		if resIdx == -1 || idx < resIdx {
			resIdx = idx
			m.Resolution = resolutions[idxres].resolution
		}
		if idx > 0 && idx < endIndex {
			endIndex = idx
		}
	}

	yearmatches := yearpattern.FindAllStringSubmatchIndex(cleanName, -1)
	yearIdx := -1
	for _, match := range yearmatches {
		year, _ := strconv.Atoi(cleanName[match[2]:match[3]])
		if year < 1900 || year > time.Now().Year()+1 {
			continue
		}
		// Take last occurence of element.
		m.Year = year
		yearIdx = match[2]
	}

	for idxpattern := range tvpatterns {
		matches := tvpatterns[idxpattern].re.FindStringSubmatchIndex(cleanName)
		if matches == nil {
			continue
		}
		m.Kind = KindTV
		m.Season, _ = strconv.Atoi(cleanName[matches[2]:matches[3]])
		m.Episode, _ = strconv.Atoi(cleanName[matches[4]:matches[5]])
		m.Identifier = fmt.Sprintf("S%02dE%02d", m.Season, m.Episode)
		if matches[0] < endIndex {
			endIndex = matches[0]
		}
		break
	}

	// A year before an episode marker is part of the show name, never a
	// movie marker.
	if m.Kind == KindUnknown && yearIdx != -1 {
		m.Kind = KindMovie
		if yearIdx < endIndex {
			endIndex = yearIdx
		}
	}

	m.Title = buildTitle(cleanName[:endIndex])
	if m.Title == "" {
		// a bare year or tag soup is not enough to place anything
		m.Kind = KindUnknown
	}
	return nil
}

var bracketpattern = regexp.MustCompile(`\[[^\]]*\]`)

func buildTitle(raw string) string {
	raw = bracketpattern.ReplaceAllString(raw, " ")
	if strings.ContainsRune(raw, '.') && !strings.ContainsRune(raw, ' ') {
		raw = strings.Replace(raw, ".", " ", -1)
	}
	raw = strings.TrimPrefix(raw, "- ")
	raw = strings.Trim(raw, " -([.")
	for strings.Contains(raw, "  ") {
		raw = strings.Replace(raw, "  ", " ", -1)
	}
	if raw == "" {
		return ""
	}
	return titleCaser.String(raw)
}
