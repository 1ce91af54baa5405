// Package prompt holds the per-document-type extraction instruction
// templates. Domain packages register their templates at startup; the
// pipeline only calls through the registry.
package prompt

// defaultTemplate is the generic instruction used for document types without
// a registered template.
const defaultTemplate = `You MUST respond with ONLY a JSON object containing the key information from this document, no explanations or other text.`

// registry of templates by document type, populated explicitly via Register
// during wiring.
var templates = map[string]string{}

// Register registers the extraction template for a document type.
func Register(documentType, template string) {
	templates[documentType] = template
}

// Get returns the template for a document type, falling back to the generic
// template.
func Get(documentType string) string {
	if t, ok := templates[documentType]; ok {
		return t
	}
	return defaultTemplate
}

// BuildExtraction concatenates the document type's instruction template with
// the OCR text to form the full LLM prompt.
func BuildExtraction(documentType, ocrText string) string {
	return Get(documentType) + "\n\nInput text to convert:\n" + ocrText
}
