package language

import "strings"

type entry struct {
	code2   string   // ISO 639-1 (2-letter)
	code3   string   // ISO 639-2 primary (3-letter)
	alt3    string   // ISO 639-2 alternate (e.g. "fre" vs "fra")
	display string   // Human-readable name
	words   []string // Full word forms (e.g. "english")
}

var languages = []entry{
	{"en", "eng", "", "English", []string{"english"}},
	{"es", "spa", "", "Spanish", []string{"spanish"}},
	{"fr", "fra", "fre", "French", []string{"french"}},
	{"de", "deu", "ger", "German", []string{"german"}},
	{"it", "ita", "", "Italian", []string{"italian"}},
	{"pt", "por", "", "Portuguese", []string{"portuguese"}},
	{"ja", "jpn", "", "Japanese", []string{"japanese", "jap"}},
	{"ko", "kor", "", "Korean", []string{"korean"}},
	{"zh", "zho", "chi", "Chinese", []string{"chinese", "mandarin"}},
	{"ru", "rus", "", "Russian", []string{"russian"}},
	{"ar", "ara", "", "Arabic", []string{"arabic"}},
	{"hi", "hin", "", "Hindi", []string{"hindi"}},
	{"nl", "nld", "dut", "Dutch", []string{"dutch"}},
	{"pl", "pol", "", "Polish", []string{"polish"}},
	{"sv", "swe", "", "Swedish", []string{"swedish"}},
	{"da", "dan", "", "Danish", []string{"danish"}},
	{"no", "nor", "", "Norwegian", []string{"norwegian"}},
	{"fi", "fin", "", "Finnish", []string{"finnish"}},
	{"th", "tha", "", "Thai", []string{"thai"}},
	{"vi", "vie", "", "Vietnamese", []string{"vietnamese"}},
}

// Index maps built at init time.
var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byWord = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		if e.alt3 != "" {
			byCode3[e.alt3] = e
		}
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	if e, ok := byWord[code]; ok {
		return e
	}
	return nil
}

// ToISO3 converts any recognized language code or word to ISO 639-2 (3-letter).
// Returns "und" for empty input. Unrecognized 3-letter codes pass through so
// unusual codes survive normalization and can be flagged downstream.
func ToISO3(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return "und"
	}
	if e := lookup(code); e != nil {
		return e.code3
	}
	if len(code) == 3 {
		return code
	}
	return "und"
}

// Known reports whether the code maps to a language in the table.
// "und" counts as known: it is the container marker for "undetermined",
// not a tagging mistake.
func Known(code string) bool {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" || code == "und" {
		return true
	}
	return lookup(code) != nil
}

// DisplayName returns a human-readable language name for any recognized code.
// Returns "Unknown" for empty or undetermined input, or the uppercased code
// for unrecognized input.
func DisplayName(code string) string {
	trimmed := strings.ToLower(strings.TrimSpace(code))
	if trimmed == "" || trimmed == "und" {
		return "Unknown"
	}
	if e := lookup(trimmed); e != nil {
		return e.display
	}
	return strings.ToUpper(trimmed)
}

// NameSuggests inspects a free-text track name and returns the ISO 639-2 code
// of the language it appears to describe, or empty string when the name holds
// no recognizable language marker. Only 3-letter codes and full word forms are
// matched; 2-letter codes produce too many false hits inside ordinary words.
func NameSuggests(name string) string {
	lowered := strings.ToLower(name)
	if strings.TrimSpace(lowered) == "" {
		return ""
	}
	for i := range languages {
		e := &languages[i]
		for _, w := range e.words {
			if strings.Contains(lowered, w) {
				return e.code3
			}
		}
		if strings.Contains(lowered, e.code3) {
			return e.code3
		}
		if e.alt3 != "" && strings.Contains(lowered, e.alt3) {
			return e.code3
		}
	}
	return ""
}

// NormalizeList deduplicates and normalizes a list of language codes to
// ISO 639-2, preserving order. Unknown entries are kept verbatim so a policy
// can still rank tracks carrying nonstandard codes.
func NormalizeList(codes []string) []string {
	if len(codes) == 0 {
		return nil
	}
	normalized := make([]string, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		trimmed := strings.ToLower(strings.TrimSpace(code))
		if trimmed == "" {
			continue
		}
		mapped := ToISO3(trimmed)
		if mapped == "und" && trimmed != "und" {
			mapped = trimmed
		}
		if _, ok := seen[mapped]; ok {
			continue
		}
		seen[mapped] = struct{}{}
		normalized = append(normalized, mapped)
	}
	return normalized
}
