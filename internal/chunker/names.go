package chunker

import "strings"

// resourceNames maps Door43 resource tags to display names. Unknown tags
// fall back to the uppercased tag so the envelope is never empty.
var resourceNames = map[string]string{
	"ult":   "unfoldingWord Literal Text",
	"ust":   "unfoldingWord Simplified Text",
	"ulb":   "Unlocked Literal Bible",
	"udb":   "Unlocked Dynamic Bible",
	"glt":   "Gateway Literal Text",
	"gst":   "Gateway Simplified Text",
	"t4t":   "Translation for Translators",
	"f10":   "French Louis Segond 1910",
	"bible": "Bible",
	"tn":    "Translation Notes",
	"tw":    "Translation Words",
	"ta":    "Translation Academy",
	"tq":    "Translation Questions",
}

// languageNames covers the gateway languages this service commonly indexes.
// Unknown codes fall back to the code itself.
var languageNames = map[string]string{
	"en":     "English",
	"es":     "Spanish",
	"es-419": "Latin American Spanish",
	"fr":     "French",
	"pt-br":  "Brazilian Portuguese",
	"hi":     "Hindi",
	"id":     "Indonesian",
	"sw":     "Swahili",
	"ru":     "Russian",
	"ar":     "Arabic",
	"zh":     "Chinese",
}

func resourceName(tag string) string {
	if name, ok := resourceNames[strings.ToLower(tag)]; ok {
		return name
	}
	return strings.ToUpper(tag)
}

func languageName(code string) string {
	if name, ok := languageNames[strings.ToLower(code)]; ok {
		return name
	}
	return code
}
