package podcast

import "maps"

// entities covers the named references found in real feeds beyond the five
// XML predefined ones. Anything else fails the parse.
var entities = map[string]string{
	"nbsp":   " ",
	"acirc":  "Â",
	"mdash":  "—",
	"ndash":  "–",
	"hyphen": "‐",
	"dash":   "‐",
	"hellip": "…",
	"ldquo":  "“",
	"rdquo":  "”",
	"lsaquo": "‹",
	"rsaquo": "›",
	"raquo":  "»",
	"laquo":  "«",
	"bull":   "•",
	"Atilde": "Ã",
	"agrave": "à",
	"aacute": "á",
	"trade":  "™",
	"larr":   "←",
	"cent":   "¢",
	"pound":  "£",
	"rsquo":  "’",
	"lsquo":  "‘",
	"zwnj":   "\u200c",
	"zwj":    "\u200d",
	"wj":     "\u2060",
	"rarr":   "→",
	"copy":   "©",
	"copysr": "℗",
	"eacute": "é",
	"Ccedil": "Ç",
	"ccedil": "ç",
	"Acirc":  "Â",
	"euro":   "€",
	"Oslash": "Ø",
	"oslash": "ø",
	"middot": "·",
	"Auml":   "Ä",
	"auml":   "ä",
}

// Entities returns a copy of the named entity table used by the parser.
func Entities() map[string]string {
	return maps.Clone(entities)
}
