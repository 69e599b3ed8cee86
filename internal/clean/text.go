package clean

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// titleCase capitalizes each word: "new delhi" -> "New Delhi",
// "ELECTRONICS" -> "Electronics".
func titleCase(s string) string {
	return titleCaser.String(s)
}
