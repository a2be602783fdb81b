package lookup

// languageNames maps supported target codes to the name shown in the translation panel
var languageNames = map[string]string{
	"hi": "Hindi", "mr": "Marathi", "bn": "Bengali", "te": "Telugu",
	"ta": "Tamil", "gu": "Gujarati", "ur": "Urdu", "kn": "Kannada",
	"ml": "Malayalam", "pa": "Punjabi",
	"en": "English", "es": "Spanish", "fr": "French", "de": "German",
	"it": "Italian", "pt": "Portuguese", "ru": "Russian",
	"ja": "Japanese", "zh-CN": "Chinese (Simplified)", "ar": "Arabic",
	"tr": "Turkish", "th": "Thai", "nl": "Dutch", "ko": "Korean",
	"id": "Indonesian",
}

// LanguageName returns display name of code, or code itself when unknown
func LanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}
