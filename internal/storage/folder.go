package storage

import (
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const UnassignedFolder = "Unassigned"

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// SanitizeFolder turns a site name into a safe folder name: accents are
// folded, anything but letters, digits, space, '-' and '_' is dropped and
// spaces become underscores.
func SanitizeFolder(name string) string {
	folded, _, err := transform.String(stripMarks, name)
	if err != nil {
		folded = name
	}
	var b strings.Builder
	for _, r := range folded {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_') {
			b.WriteRune(r)
		}
	}
	out := strings.ReplaceAll(strings.TrimSpace(b.String()), " ", "_")
	if out == "" {
		return UnassignedFolder
	}
	return out
}

// ReportFolder is where a report attachment for the given site lives.
func ReportFolder(siteName *string) string {
	if siteName == nil || strings.TrimSpace(*siteName) == "" {
		return path.Join("reports", UnassignedFolder)
	}
	return path.Join("reports", SanitizeFolder(*siteName))
}

func ActivityFolder(activityID string) string {
	return path.Join("activities", SanitizeFolder(activityID))
}
