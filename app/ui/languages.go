package ui

// Language is a translation target option
type Language struct {
	Code string
	Name string
}

// Languages are the target options in display order
var Languages = []Language{
	{Code: "en", Name: "English"},
	{Code: "hi", Name: "Hindi"},
	{Code: "mr", Name: "Marathi"},
	{Code: "bn", Name: "Bengali"},
	{Code: "gu", Name: "Gujarati"},
	{Code: "ur", Name: "Urdu"},
	{Code: "te", Name: "Telugu"},
	{Code: "ta", Name: "Tamil"},
	{Code: "kn", Name: "Kannada"},
	{Code: "ml", Name: "Malayalam"},
	{Code: "pa", Name: "Punjabi"},
	{Code: "es", Name: "Spanish"},
	{Code: "fr", Name: "French"},
	{Code: "de", Name: "German"},
	{Code: "it", Name: "Italian"},
	{Code: "pt", Name: "Portuguese"},
	{Code: "ru", Name: "Russian"},
	{Code: "ja", Name: "Japanese"},
	{Code: "zh-CN", Name: "Chinese"},
	{Code: "ar", Name: "Arabic"},
	{Code: "tr", Name: "Turkish"},
	{Code: "th", Name: "Thai"},
	{Code: "ko", Name: "Korean"},
	{Code: "nl", Name: "Dutch"},
	{Code: "id", Name: "Indonesian"},
}

// LanguageByCode returns language option with code
func LanguageByCode(code string) (Language, bool) {
	for _, l := range Languages {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}
