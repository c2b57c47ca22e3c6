package filter

import (
	"regexp"
	"strings"

	"streamdash/models"
)

// latinTitlePattern accepts titles made of basic Latin letters, digits, and
// common punctuation.
var latinTitlePattern = regexp.MustCompile(`^[a-zA-Z0-9\s\-:.'"!?&,()]+$`)

// nonLatinScriptPattern matches characters from the Japanese, CJK, Cyrillic,
// Hebrew, Arabic, and Korean ranges.
var nonLatinScriptPattern = regexp.MustCompile(`[\x{3040}-\x{309f}\x{30a0}-\x{30ff}\x{4e00}-\x{9faf}\x{0400}-\x{04ff}\x{0590}-\x{05ff}\x{0600}-\x{06ff}\x{1100}-\x{11ff}\x{3130}-\x{318f}\x{ac00}-\x{d7af}]`)

// foreignKeywords derank titles that name a non-English market or format even
// when written in Latin script.
var foreignKeywords = []string{
	"anime", "manga", "k-pop", "bollywood", "telugu", "tamil", "hindi",
	"korean", "japanese", "chinese", "thai", "vietnamese", "spanish",
	"french", "german", "italian", "portuguese", "russian", "arabic",
	"vocaloid", "j-pop", "k-drama",
}

// IsEnglishContent reports whether a catalog item's title looks like
// English-language/American content. It is a display-layer heuristic only and
// plays no part in the aggregation contract.
func IsEnglishContent(item models.CatalogItem) bool {
	if item.Title == "" {
		return false
	}
	if !latinTitlePattern.MatchString(item.Title) {
		return false
	}
	if nonLatinScriptPattern.MatchString(item.Title) {
		return false
	}

	lower := strings.ToLower(item.Title)
	for _, keyword := range foreignKeywords {
		if strings.Contains(lower, keyword) {
			return false
		}
	}
	return true
}
