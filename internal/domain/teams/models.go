package teams

import "strings"

// Identity is a resolved team: the canonical display name used by the
// portal and the two-letter code its listing URLs expect.
type Identity struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

const (
	// DefaultName is used when no team is supplied.
	DefaultName = "롯데"
	// FallbackCode is paired with names that match no canonical team.
	FallbackCode = "LT"
)

var codes = map[string]string{
	"SSG": "SK",
	"LG":  "LG",
	"KT":  "KT",
	"NC":  "NC",
	"KIA": "HT",
	"삼성":  "SS",
	"두산":  "OB",
	"롯데":  "LT",
	"한화":  "HH",
	"키움":  "WO",
}

// Keys are lower-cased with spaces removed.
var aliases = map[string]string{
	"kt": "KT", "wiz": "KT", "ktwiz": "KT", "케이티": "KT",
	"lg": "LG", "엘지": "LG", "twins": "LG", "lgtwins": "LG",
	"kia": "KIA", "기아": "KIA", "tigers": "KIA", "해태": "KIA", "해태타이거즈": "KIA",
	"doosan": "두산", "두산": "두산", "ob": "두산", "obbears": "두산", "bears": "두산",
	"hanwha": "한화", "한화": "한화", "eagles": "한화",
	"ssg": "SSG", "sk": "SSG", "wyverns": "SSG", "와이번스": "SSG", "랜더스": "SSG", "landers": "SSG",
	"kiwoom": "키움", "키움": "키움", "히어로즈": "키움", "heroes": "키움", "넥센": "키움", "nexen": "키움", "woori": "키움",
	"samsung": "삼성", "삼성": "삼성", "lions": "삼성",
	"nc": "NC", "엔씨": "NC", "dinos": "NC",
	"lotte": "롯데", "롯데": "롯데", "giants": "롯데",
}

// displayOrder mirrors the portal's standings page.
var displayOrder = []string{"한화", "LG", "롯데", "KIA", "SSG", "KT", "삼성", "NC", "두산", "키움"}

// Resolve maps free-form input onto a team identity.
//
// Unknown input is not an error: the trimmed input is kept as the display
// name and paired with FallbackCode, so callers get the default team's feed
// under the name they asked for.
func Resolve(raw string) Identity {
	name := Normalize(raw)
	if name == "" {
		name = DefaultName
	}
	return Identity{Name: name, Code: CodeFor(name)}
}

// Normalize returns the canonical name for raw, or the trimmed input when
// nothing matches.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if _, ok := codes[s]; ok {
		return s
	}
	key := strings.ToLower(strings.ReplaceAll(s, " ", ""))
	if canonical, ok := aliases[key]; ok {
		return canonical
	}
	return s
}

// CodeFor returns the site code for a canonical name.
func CodeFor(name string) string {
	if code, ok := codes[name]; ok {
		return code
	}
	return FallbackCode
}

// IsCanonical reports whether name is one of the league's ten teams.
func IsCanonical(name string) bool {
	_, ok := codes[name]
	return ok
}

// Canonical returns the ten canonical names in standings order.
func Canonical() []string {
	out := make([]string, len(displayOrder))
	copy(out, displayOrder)
	return out
}
