package logger

import (
	"html"
	"path"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var Transformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func stringReplaceArray(instr string, what []string, with string) string {
	for _, line := range what {
		instr = strings.Replace(instr, line, with, -1)
	}
	return instr
}

//no chinese or cyrilic supported
func StringToSlug(instr string) string {
	instr = strings.ToLower(instr)
	instr = strings.Replace(instr, "ä", "ae", -1)
	instr = strings.Replace(instr, "ö", "oe", -1)
	instr = strings.Replace(instr, "ü", "ue", -1)
	instr = strings.Replace(instr, "ß", "ss", -1)
	instr = strings.Replace(instr, "&", "and", -1)
	instr = strings.Replace(instr, "@", "at", -1)
	instr = strings.Replace(instr, "'", "", -1)
	instr = stringReplaceArray(instr, []string{" ", "§", "$", "%", "/", "(", ")", "=", "!", "?", "`", "\\", "}", "]", "[", "{", "|", ",", ".", ";", ":", "_", "+", "#", "<", ">", "*"}, "-")
	instr = strings.Replace(instr, "--", "-", -1)
	instr = strings.Replace(instr, "--", "-", -1)
	result, _, _ := transform.String(Transformer, instr)
	result = strings.Trim(result, "-")
	return result
}

func StringReplaceDiacritics(instr string) string {
	instr = strings.Replace(instr, "ß", "ss", -1)
	instr = strings.Replace(instr, "ä", "ae", -1)
	instr = strings.Replace(instr, "ö", "oe", -1)
	instr = strings.Replace(instr, "ü", "ue", -1)
	instr = strings.Replace(instr, "Ä", "Ae", -1)
	instr = strings.Replace(instr, "Ö", "Oe", -1)
	instr = strings.Replace(instr, "Ü", "Ue", -1)
	result, _, _ := transform.String(Transformer, instr)
	return result
}

var regexPathAllowSlash = regexp.MustCompile(`[:*?"<>|]`)
var regexPathDisallowSlash = regexp.MustCompile(`[\\/:*?"<>|]`)

// Path makes a string safe to use as a file system path component,
// removing reserved characters and cleaning dot segments.
func Path(s string, allowslash bool) string {
	filePath := html.UnescapeString(s)

	filePath = strings.Replace(filePath, "..", "", -1)
	filePath = path.Clean(filePath)
	if allowslash {
		filePath = regexPathAllowSlash.ReplaceAllString(filePath, "")
	} else {
		filePath = regexPathDisallowSlash.ReplaceAllString(filePath, "")
	}
	filePath = html.UnescapeString(filePath)
	filePath = strings.Trim(filePath, " ")

	// NB this may be of length 0, caller must check
	return filePath
}

func TrimStringInclAfterString(s string, search string) string {
	if idx := strings.Index(strings.ToLower(s), strings.ToLower(search)); idx != -1 {
		return s[:idx]
	}
	return s
}
