package ui

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io"
	texttemplate "text/template"
)

const (
	NoDefinitionsText      = "No definitions found."
	NoImagesText           = "No images found."
	TranslationUnavailable = "Translation unavailable."
)

//go:embed templates
var templatesFS embed.FS

var (
	pageTemplate = htmltemplate.Must(
		htmltemplate.New("page.html").Funcs(htmltemplate.FuncMap{
			"pronounce": relativePronounceURL,
			"audioData": audioDataURL,
		}).
			ParseFS(templatesFS, "templates/page.html"),
	)
	textTemplate = texttemplate.Must(
		texttemplate.New("result.txt").Funcs(texttemplate.FuncMap{"inc": func(i int) int { return i + 1 }}).
			ParseFS(templatesFS, "templates/result.txt"),
	)
)

// View is everything a host displays for a session state
type View struct {
	Query      string
	TargetLang string
	Languages  []LanguageOption
	Loading    bool
	Listening  bool
	// VoiceAvailable shows the microphone control
	VoiceAvailable bool
	Error          string
	Result         *ResultView
}

// LanguageOption is an entry of the target language select
type LanguageOption struct {
	Language
	Selected bool
}

// ResultView is the rendered lookup result
type ResultView struct {
	Word string
	// Phonetic is empty when the result has no phonetics
	Phonetic     string
	PrimaryAudio string
	Definitions  []DefinitionView
	Images       []string
	// Translation is nil when the translation panel shows a placeholder
	Translation *TranslationView
}

// HasPrimaryAudio reports whether the playback control is shown
func (r ResultView) HasPrimaryAudio() bool {
	return r.PrimaryAudio != ""
}

// DefinitionView is a single definition card
type DefinitionView struct {
	PartOfSpeech string
	// TranslatedPartOfSpeech is empty when it is missing or equal to PartOfSpeech
	TranslatedPartOfSpeech string
	Definition             string
	Example                string
	// TranslatedExample is empty when Example is
	TranslatedExample string
	Synonyms          []Chip
	Antonyms          []Chip
}

// Chip shows translated text with the original as a hover title
type Chip struct {
	Text  string
	Title string
}

// TranslationView is the translation panel
type TranslationView struct {
	Lang  string
	Text  string
	Audio string
}

// ListenDisabled reports whether the listen control is disabled
func (t TranslationView) ListenDisabled() bool {
	return t.Audio == ""
}

// BuildView maps state to view. It has no side effects.
func BuildView(st State) View {
	view := View{
		Query:      st.Query,
		TargetLang: st.TargetLang,
		Loading:    st.Loading,
		Listening:  st.Listening,
		Error:      st.Error,
		Languages:  make([]LanguageOption, 0, len(Languages)),
	}
	for _, l := range Languages {
		view.Languages = append(view.Languages, LanguageOption{Language: l, Selected: l.Code == st.TargetLang})
	}
	if st.Result == nil {
		return view
	}
	res := st.Result
	rv := &ResultView{
		Word:        res.Word,
		Definitions: make([]DefinitionView, 0, len(res.Definitions)),
		Images:      make([]string, 0, len(res.Images)),
	}
	if len(res.Phonetics) > 0 {
		rv.Phonetic = res.Phonetics[0].Text
	}
	if audio, ok := res.PrimaryAudio(); ok {
		rv.PrimaryAudio = audio
	}
	for _, d := range res.Definitions {
		dv := DefinitionView{
			PartOfSpeech: d.PartOfSpeech,
			Definition:   d.Definition,
			Example:      d.Example,
			Synonyms:     chips(d.TranslatedSynonyms, d.Synonyms),
			Antonyms:     chips(d.TranslatedAntonyms, d.Antonyms),
		}
		if d.TranslatedPartOfSpeech != "" && d.TranslatedPartOfSpeech != d.PartOfSpeech {
			dv.TranslatedPartOfSpeech = d.TranslatedPartOfSpeech
		}
		if d.Example != "" {
			dv.TranslatedExample = d.TranslatedExample
		}
		rv.Definitions = append(rv.Definitions, dv)
	}
	for _, img := range res.Images {
		if img != "" {
			rv.Images = append(rv.Images, img)
		}
	}
	if t := res.Translation; t != nil && t.Text != "" {
		rv.Translation = &TranslationView{Lang: t.Lang, Text: t.Text}
		if t.Audio != nil {
			rv.Translation.Audio = *t.Audio
		}
	}
	view.Result = rv
	return view
}

// chips pairs translated[i] with original[i]
func chips(translated []string, original []string) []Chip {
	if len(translated) == 0 {
		return nil
	}
	result := make([]Chip, 0, len(translated))
	for i, text := range translated {
		chip := Chip{Text: text}
		if i < len(original) {
			chip.Title = original[i]
		}
		result = append(result, chip)
	}
	return result
}

// RenderHTML writes the full page
func RenderHTML(w io.Writer, v View) error {
	if err := pageTemplate.Execute(w, v); err != nil {
		return fmt.Errorf("execute page template: %w", err)
	}
	return nil
}

// RenderText writes a plain text rendering of the view
func RenderText(w io.Writer, v View) error {
	if err := textTemplate.Execute(w, v); err != nil {
		return fmt.Errorf("execute text template: %w", err)
	}
	return nil
}

// Text returns RenderText output as string
func Text(v View) (string, error) {
	buf := &bytes.Buffer{}
	if err := RenderText(buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func relativePronounceURL(text string, lang string) string {
	return PronounceURL("", text, lang)
}

// audioDataURL embeds base64 MP3 as a playable source
func audioDataURL(audio string) htmltemplate.URL {
	return htmltemplate.URL("data:audio/mp3;base64," + audio)
}
