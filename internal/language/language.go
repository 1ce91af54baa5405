// Package language translates OCR language codes between provider-specific
// vocabularies. Each vocabulary maps its native codes onto a bridging standard
// vocabulary (the tesseract-style codes), so any two vocabularies can be
// chained through the standard code without a canonical registry.
package language

import "sort"

// DefaultCode is returned whenever no translation chain resolves. Translation
// degrades to English instead of failing.
const DefaultCode = "eng"

// Vocabulary names a provider-specific language code vocabulary.
type Vocabulary string

const (
	VocabOCRSpace Vocabulary = "ocrspace"
	VocabOpenOCR  Vocabulary = "openocr"
)

// mappings associates each vocabulary's native codes with the bridging
// standard code. Invariant: within one vocabulary, every standard code appears
// at most once.
var mappings = map[Vocabulary]map[string]string{
	VocabOpenOCR: {
		"ara": "ara", "bul": "bul", "chi-sim": "chi-sim", "chi-tra": "chi-tra",
		"hrv": "hrv", "ces": "ces", "dan": "dan", "nld": "nld",
		"eng": "eng", "fin": "fin", "fra": "fra", "deu": "deu",
		"ell": "ell", "hun": "hun", "kor": "kor", "ita": "ita",
		"jpn": "jpn", "pol": "pol", "por": "por", "rus": "rus",
		"slv": "slv", "spa": "spa", "swe": "swe", "tur": "tur",
	},
	VocabOCRSpace: {
		"ara": "ara", "bul": "bul", "chs": "chi-sim", "cht": "chi-tra",
		"hrv": "hrv", "cze": "ces", "dan": "dan", "dut": "nld",
		"eng": "eng", "fin": "fin", "fre": "fra", "ger": "deu",
		"gre": "ell", "hun": "hun", "kor": "kor", "ita": "ita",
		"jpn": "jpn", "pol": "pol", "por": "por", "rus": "rus",
		"slv": "slv", "spa": "spa", "swe": "swe", "tur": "tur",
	},
}

// vocabOrder is the deterministic search order used when the source
// vocabulary is not specified: vocabulary names sorted ascending.
var vocabOrder = func() []Vocabulary {
	names := make([]Vocabulary, 0, len(mappings))
	for v := range mappings {
		names = append(names, v)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}()

// Known reports whether code is a native code of vocab.
func Known(code string, vocab Vocabulary) bool {
	_, ok := mappings[vocab][code]
	return ok
}

// Translate maps code into the target vocabulary. A code already native to
// the target is returned unchanged. Otherwise the code is resolved to the
// bridging standard code via the source vocabulary (or, when from is empty,
// the first vocabulary containing it in deterministic order) and then
// reverse-looked-up in the target. Translate never fails: any unresolvable
// chain yields DefaultCode.
func Translate(code string, from, to Vocabulary) string {
	if code == "" {
		return DefaultCode
	}
	target, ok := mappings[to]
	if !ok {
		return DefaultCode
	}
	if _, ok := target[code]; ok {
		return code
	}

	standard := ""
	if from != "" {
		standard = mappings[from][code]
	} else {
		for _, v := range vocabOrder {
			if v == to {
				continue
			}
			if std, ok := mappings[v][code]; ok {
				standard = std
				break
			}
		}
	}
	if standard == "" {
		return DefaultCode
	}

	for native, std := range target {
		if std == standard {
			return native
		}
	}
	return DefaultCode
}
