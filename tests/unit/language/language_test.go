package language_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docpipe/internal/language"
)

func TestTranslate_NativeCodeUnchanged(t *testing.T) {
	// "eng" exists in both vocabularies
	assert.Equal(t, "eng", language.Translate("eng", "", language.VocabOCRSpace))
	assert.Equal(t, "eng", language.Translate("eng", "", language.VocabOpenOCR))

	// "chs" is native to ocrspace only
	assert.Equal(t, "chs", language.Translate("chs", "", language.VocabOCRSpace))
}

func TestTranslate_AcrossVocabularies(t *testing.T) {
	tests := []struct {
		code string
		from language.Vocabulary
		to   language.Vocabulary
		want string
	}{
		{"chs", language.VocabOCRSpace, language.VocabOpenOCR, "chi-sim"},
		{"cht", language.VocabOCRSpace, language.VocabOpenOCR, "chi-tra"},
		{"fre", language.VocabOCRSpace, language.VocabOpenOCR, "fra"},
		{"ger", language.VocabOCRSpace, language.VocabOpenOCR, "deu"},
		{"dut", language.VocabOCRSpace, language.VocabOpenOCR, "nld"},
		{"chi-sim", language.VocabOpenOCR, language.VocabOCRSpace, "chs"},
		{"fra", language.VocabOpenOCR, language.VocabOCRSpace, "fre"},
		{"ell", language.VocabOpenOCR, language.VocabOCRSpace, "gre"},
	}
	for _, tt := range tests {
		got := language.Translate(tt.code, tt.from, tt.to)
		assert.Equal(t, tt.want, got, "Translate(%q, %q, %q)", tt.code, tt.from, tt.to)
	}
}

func TestTranslate_EmptySourceVocabularySearches(t *testing.T) {
	// Source vocabulary omitted: the code is found in whichever vocabulary
	// carries it.
	assert.Equal(t, "chi-sim", language.Translate("chs", "", language.VocabOpenOCR))
	assert.Equal(t, "chs", language.Translate("chi-sim", "", language.VocabOCRSpace))
}

func TestTranslate_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, language.DefaultCode, language.Translate("xx-unknown", "", language.VocabOCRSpace))
	assert.Equal(t, language.DefaultCode, language.Translate("", "", language.VocabOCRSpace))
	assert.Equal(t, language.DefaultCode, language.Translate("eng", "", language.Vocabulary("nope")))
}

func TestKnown(t *testing.T) {
	assert.True(t, language.Known("chs", language.VocabOCRSpace))
	assert.False(t, language.Known("chs", language.VocabOpenOCR))
	assert.True(t, language.Known("chi-sim", language.VocabOpenOCR))
	assert.False(t, language.Known("klingon", language.VocabOCRSpace))
}
