package structure

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// ExistingFile is one entry of the destination directory snapshot.
// Resolution carries the probed resolution for files without a
// resolution suffix in their name and may be empty when unknown.
type ExistingFile struct {
	Name       string
	Resolution string
}

// Rename retags a file that is already in the library. From and To are
// plain filenames within the destination directory.
type Rename struct {
	From string
	To   string
}

// Resolved is the outcome of a duplicate decision. Filename is the
// final name for the incoming file, Renames must be applied to the
// library before the move.
type Resolved struct {
	Filename string
	Renames  []Rename
}

var versionSuffixPattern = regexp.MustCompile(`^v(\d+)$`)

var resolutionSuffixes = map[string]bool{
	"2160p": true,
	"1080p": true,
	"720p":  true,
	"480p":  true,
}

// SplitSuffix decomposes "base[.resolution][.vN].ext" into its parts.
// Version 0 means no version suffix, meaning the implicit v1.
func SplitSuffix(filename string) (string, string, int, string) {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)
	version := 0

	if idx := strings.LastIndex(base, "."); idx != -1 {
		if matches := versionSuffixPattern.FindStringSubmatch(base[idx+1:]); matches != nil {
			version, _ = strconv.Atoi(matches[1])
			base = base[:idx]
		}
	}
	resolution := ""
	if idx := strings.LastIndex(base, "."); idx != -1 {
		if resolutionSuffixes[strings.ToLower(base[idx+1:])] {
			resolution = strings.ToLower(base[idx+1:])
			base = base[:idx]
		}
	}
	return base, resolution, version, ext
}

type existingMatch struct {
	file       ExistingFile
	resolution string
	version    int
	ext        string
	suffixed   bool
}

// ResolveDuplicate decides the final filename for an incoming file with
// the given canonical base name. It is a pure decision over the
// directory snapshot and never touches the filesystem itself.
//
// A different resolution gets a resolution suffix, and an unsuffixed
// same base file already in the library is retagged with its own
// resolution at the same time. A repeat of an already present
// resolution gets the lowest unused version suffix, v1 staying
// implicit. When a resolution cannot be established on either side the
// version path is taken without retagging anything.
func ResolveDuplicate(existing []ExistingFile, base string, resolution string, ext string) Resolved {
	matches := make([]existingMatch, 0, 4)
	for idx := range existing {
		mbase, mres, mversion, mext := SplitSuffix(existing[idx].Name)
		if mbase != base {
			continue
		}
		match := existingMatch{file: existing[idx], resolution: mres, version: mversion, ext: mext, suffixed: mres != ""}
		if match.resolution == "" {
			match.resolution = strings.ToLower(existing[idx].Resolution)
		}
		matches = append(matches, match)
	}
	if len(matches) == 0 {
		return Resolved{Filename: base + ext}
	}

	allknown := resolution != ""
	sameres := false
	for idx := range matches {
		if matches[idx].resolution == "" {
			allknown = false
		} else if matches[idx].resolution == resolution {
			sameres = true
		}
	}

	if allknown {
		renames := make([]Rename, 0, len(matches))
		for idx := range matches {
			if matches[idx].suffixed || matches[idx].version != 0 {
				continue
			}
			renames = append(renames, Rename{
				From: matches[idx].file.Name,
				To:   base + "." + matches[idx].resolution + matches[idx].ext,
			})
		}
		if !sameres {
			return Resolved{Filename: base + "." + resolution + ext, Renames: renames}
		}
		version := nextVersion(matches, resolution)
		return Resolved{Filename: fmt.Sprintf("%s.%s.v%d%s", base, resolution, version, ext), Renames: renames}
	}

	// resolution could not be established on one side, fall back to a
	// plain version suffix and leave the library untouched
	version := nextVersion(matches, "")
	return Resolved{Filename: fmt.Sprintf("%s.v%d%s", base, version, ext)}
}

// nextVersion returns the lowest unused version number, at least 2,
// within the group of matches sharing the given resolution. A member
// without version suffix occupies the implicit v1 slot.
func nextVersion(matches []existingMatch, resolution string) int {
	taken := make(map[int]bool, len(matches))
	for idx := range matches {
		groupres := matches[idx].resolution
		if resolution != "" && groupres != resolution {
			continue
		}
		if resolution == "" && matches[idx].suffixed {
			continue
		}
		if matches[idx].version == 0 {
			taken[1] = true
		} else {
			taken[matches[idx].version] = true
		}
	}
	version := 2
	for taken[version] {
		version++
	}
	return version
}
