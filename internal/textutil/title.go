package textutil

import (
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var separatorPattern = regexp.MustCompile(`[._\-]+`)

var titleCaser = cases.Title(language.English)

// DisplayTitle converts a media file path into a presentable title: the
// extension is dropped, separator runs become spaces, and words are
// title-cased. An empty or separator-only name yields "Untitled".
func DisplayTitle(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = separatorPattern.ReplaceAllString(base, " ")
	base = strings.Join(strings.Fields(base), " ")
	if base == "" {
		return "Untitled"
	}
	return titleCaser.String(base)
}
