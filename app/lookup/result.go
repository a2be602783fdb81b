// Package lookup defines the word lookup payload and the service that assembles it
// from dictionary, translation, image and speech providers.
package lookup

// ErrWordNotFound is the soft error: the dictionary has no entry, but the rest
// of the result (images, translation) may still be filled in.
const ErrWordNotFound = "Word not found in dictionary."

// Result is the payload of GET /api/search/{word}
type Result struct {
	Word        string       `json:"word"`
	Phonetics   []Phonetic   `json:"phonetics"`
	Definitions []Definition `json:"definitions"`
	Images      []string     `json:"images"`
	Translation *Translation `json:"translation,omitempty"`
	ConceptMap  *ConceptMap  `json:"concept_map,omitempty"`
	Error       string       `json:"error,omitempty"`
}

// Phonetic is a transcription with an optional recording URL
type Phonetic struct {
	Text  string `json:"text"`
	Audio string `json:"audio,omitempty"`
}

// Definition is a single gloss with its translated counterparts.
// TranslatedSynonyms and TranslatedAntonyms are positionally parallel to
// Synonyms and Antonyms.
type Definition struct {
	PartOfSpeech           string   `json:"partOfSpeech"`
	TranslatedPartOfSpeech string   `json:"translatedPartOfSpeech,omitempty"`
	Definition             string   `json:"definition"`
	Example                string   `json:"example,omitempty"`
	TranslatedExample      string   `json:"translatedExample,omitempty"`
	Synonyms               []string `json:"synonyms"`
	TranslatedSynonyms     []string `json:"translatedSynonyms"`
	Antonyms               []string `json:"antonyms"`
	TranslatedAntonyms     []string `json:"translatedAntonyms"`
}

// Translation is the translated headword. Audio is base64 encoded MP3.
type Translation struct {
	Lang  string  `json:"lang"`
	Code  string  `json:"code,omitempty"`
	Text  string  `json:"text"`
	Audio *string `json:"audio"`
}

// ConceptMap holds translated related words for the whole entry
type ConceptMap struct {
	Synonyms []string `json:"synonyms"`
	Antonyms []string `json:"antonyms"`
}

// PrimaryAudio returns the first non-empty phonetic recording
func (r Result) PrimaryAudio() (string, bool) {
	for _, p := range r.Phonetics {
		if p.Audio != "" {
			return p.Audio, true
		}
	}
	return "", false
}
