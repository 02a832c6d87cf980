// Package catalog holds the static program tables used to normalize, label
// and classify program identifiers stored on registrations.
//
// The tables only describe stored data. Which programs can be chosen for a
// new registration is decided by the live program catalog in the store.
package catalog

import "slices"

const (
	CategoryJunior = "junior"
	CategorySenior = "senior"

	TypeStage    = "stage"
	TypeNonStage = "non-stage"
)

// UnknownLabel is returned by Label for the empty token.
const UnknownLabel = "(unknown)"

// Programs lists the canonical ids of one category, in display order.
type Programs struct {
	Stage    []string
	NonStage []string
}

var (
	junior = Programs{
		Stage: []string{
			"junior-qiraat",
			"junior-bank",
			"junior-speech-arabic",
			"junior-speech-english",
			"junior-speech-malayalam",
			"junior-speech-urdu",
			"junior-song-arabic",
		},
		NonStage: []string{
			"junior-drawing",
			"junior-sudoku",
			"junior-memory-test",
			"junior-dictation",
		},
	}

	senior = Programs{
		Stage: []string{
			"senior-qiraat",
			"senior-bank",
			"senior-class-presentation",
			"senior-speech-arabic",
			"senior-speech-english",
			"senior-speech-malayalam",
		},
		NonStage: []string{
			"senior-arabic-calligraphy",
			"senior-poster-making",
			"senior-arabic-essay",
			"senior-malayalam-essay",
			"senior-english-essay",
		},
	}

	labels = map[string]string{
		"junior-qiraat":           "ഖിറാഅത്ത്",
		"junior-bank":             "ബാങ്ക്",
		"junior-speech-arabic":    "പ്രസംഗം അറബി",
		"junior-speech-english":   "പ്രസംഗം ഇംഗ്ലീഷ്",
		"junior-speech-malayalam": "പ്രസംഗം മലയാളം",
		"junior-speech-urdu":      "പ്രസംഗം ഉറുദു",
		"junior-song-arabic":      "ഗാനം അറബി",
		"junior-drawing":          "ചിത്രരചന",
		"junior-sudoku":           "സുഡോക്കും",
		"junior-memory-test":      "മെമ്മറി ടെസ്റ്റ്",
		"junior-dictation":        "കേട്ടെഴുത്ത്",

		"senior-qiraat":             "ഖിറാഅത്ത്",
		"senior-bank":               "ബാങ്ക്",
		"senior-class-presentation": "ക്ലാസ് അവതരണം",
		"senior-speech-arabic":      "പ്രസംഗം അറബി",
		"senior-speech-english":     "പ്രസംഗം ഇംഗ്ലീഷ്",
		"senior-speech-malayalam":   "പ്രസംഗം മലയാളം",
		"senior-arabic-calligraphy": "അറബിക് ആലിഗ്രാഫി",
		"senior-poster-making":      "പോസ്റ്റർ മേക്കിങ്",
		"senior-arabic-essay":       "അറബി പ്രബന്ധം",
		"senior-malayalam-essay":    "മലയാളം പ്രബന്ധം",
		"senior-english-essay":      "ഇംഗ്ലീഷ് പ്രബന്ധം",
	}

	// Identifiers written by earlier catalog versions, and common misspellings.
	legacyAliases = map[string]string{
		"qiraat":             "junior-qiraat",
		"bank":               "junior-bank",
		"speech-arabic":      "junior-speech-arabic",
		"speech-english":     "junior-speech-english",
		"speech-malayalam":   "junior-speech-malayalam",
		"speech-urdu":        "junior-speech-urdu",
		"song-arabic":        "junior-song-arabic",
		"drawing":            "junior-drawing",
		"sudoku":             "junior-sudoku",
		"memory-test":        "junior-memory-test",
		"dictation":          "junior-dictation",
		"class-presentation": "senior-class-presentation",
		"arabic-calligraphy": "senior-arabic-calligraphy",
		"poster-making":      "senior-poster-making",
		"arabic-essay":       "senior-arabic-essay",
		"malayalam-essay":    "senior-malayalam-essay",
		"english-essay":      "senior-english-essay",

		"qirat":           "junior-qiraat",
		"qira'at":         "junior-qiraat",
		"presentation":    "senior-class-presentation",
		"calligraphy":     "senior-arabic-calligraphy",
		"poster":          "senior-poster-making",
		"essay-arabic":    "senior-arabic-essay",
		"essay-malayalam": "senior-malayalam-essay",
		"essay-english":   "senior-english-essay",
	}

	stageSet    = toSet(junior.Stage, senior.Stage)
	nonStageSet = toSet(junior.NonStage, senior.NonStage)
)

func toSet(lists ...[]string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, l := range lists {
		for _, id := range l {
			set[id] = struct{}{}
		}
	}
	return set
}

// Normalize resolves a legacy alias to its canonical id. Other tokens pass through.
func Normalize(token string) string {
	if id, ok := legacyAliases[token]; ok {
		return id
	}
	return token
}

// NormalizeAll normalizes every token, preserving order and length.
func NormalizeAll(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = Normalize(t)
	}
	return out
}

// Label returns the display label of a token, or the token itself when it
// has none. The result is never empty.
func Label(token string) string {
	if token == "" {
		return UnknownLabel
	}
	if l, ok := labels[Normalize(token)]; ok {
		return l
	}
	return token
}

// Labels maps Label over tokens.
func Labels(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = Label(t)
	}
	return out
}

// IsStage reports whether the normalized token is a stage program.
func IsStage(token string) bool {
	_, ok := stageSet[Normalize(token)]
	return ok
}

// IsNonStage reports whether the normalized token is a non-stage program.
func IsNonStage(token string) bool {
	_, ok := nonStageSet[Normalize(token)]
	return ok
}

// TypeOf returns TypeStage, TypeNonStage or "" for unknown tokens.
func TypeOf(token string) string {
	switch {
	case IsStage(token):
		return TypeStage
	case IsNonStage(token):
		return TypeNonStage
	default:
		return ""
	}
}

// Classification is a stable partition of normalized tokens.
type Classification struct {
	Stage    []string `json:"stage"`
	NonStage []string `json:"nonStage"`
	Invalid  []string `json:"invalid"`
}

// Classify normalizes tokens and partitions them by type, keeping input order.
func Classify(tokens []string) Classification {
	c := Classification{Stage: []string{}, NonStage: []string{}, Invalid: []string{}}
	for _, id := range NormalizeAll(tokens) {
		switch {
		case IsStage(id):
			c.Stage = append(c.Stage, id)
		case IsNonStage(id):
			c.NonStage = append(c.NonStage, id)
		default:
			c.Invalid = append(c.Invalid, id)
		}
	}
	return c
}

// ForCategory returns the ordered program lists of a category.
func ForCategory(category string) (Programs, bool) {
	switch category {
	case CategoryJunior:
		return Programs{Stage: slices.Clone(junior.Stage), NonStage: slices.Clone(junior.NonStage)}, true
	case CategorySenior:
		return Programs{Stage: slices.Clone(senior.Stage), NonStage: slices.Clone(senior.NonStage)}, true
	default:
		return Programs{}, false
	}
}

// ValidIDsForCategory returns the canonical ids of a category. Unknown
// categories yield an empty set.
func ValidIDsForCategory(category string) map[string]struct{} {
	p, ok := ForCategory(category)
	if !ok {
		return map[string]struct{}{}
	}
	return toSet(p.Stage, p.NonStage)
}

// Categories lists the known categories in display order.
func Categories() []string {
	return []string{CategoryJunior, CategorySenior}
}

// Aliases returns a copy of the legacy alias table.
func Aliases() map[string]string {
	out := make(map[string]string, len(legacyAliases))
	for k, v := range legacyAliases {
		out[k] = v
	}
	return out
}

// LabelTable returns a copy of the label table.
func LabelTable() map[string]string {
	out := make(map[string]string, len(labels))
	for k, v := range labels {
		out[k] = v
	}
	return out
}

// Entry is one program of the default catalog.
type Entry struct {
	ProgramID    string
	Name         string
	Category     string
	Type         string
	DisplayOrder int
}

// Defaults returns the default catalog in table order. Display order restarts
// at 1 for each category and counts stage programs before non-stage ones.
func Defaults() []Entry {
	var out []Entry
	for _, category := range Categories() {
		p, _ := ForCategory(category)
		order := 0
		for _, group := range []struct {
			typ string
			ids []string
		}{{TypeStage, p.Stage}, {TypeNonStage, p.NonStage}} {
			for _, id := range group.ids {
				order++
				out = append(out, Entry{
					ProgramID:    id,
					Name:         labels[id],
					Category:     category,
					Type:         group.typ,
					DisplayOrder: order,
				})
			}
		}
	}
	return out
}
