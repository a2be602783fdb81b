package yandexdictionary

// TranslationResponse is the lookup result, one definition per part of speech
type TranslationResponse struct {
	Definitions []Definition `json:"def"`
}

// Best returns the most frequent non-empty translation.
// Ties go to the API order, which is already by relevance.
func (r TranslationResponse) Best() (string, bool) {
	var best *Translation
	for i := range r.Definitions {
		for j := range r.Definitions[i].Translations {
			tr := &r.Definitions[i].Translations[j]
			if tr.Text == "" {
				continue
			}
			if best == nil || tr.Frequency > best.Frequency {
				best = tr
			}
		}
	}
	if best == nil {
		return "", false
	}
	return best.Text, true
}

type Definition struct {
	Text         string        `json:"text"`
	PartOfSpeech string        `json:"pos"`
	Translations []Translation `json:"tr"`
}

type Translation struct {
	Text         string `json:"text"`
	PartOfSpeech string `json:"pos"`
	// Frequency is the usage frequency bucket, 0 when not reported
	Frequency int        `json:"fr"`
	Examples  []Example  `json:"ex"`
	Synonyms  []textItem `json:"syn"`
	Meanings  []textItem `json:"mean"`
}

type Example struct {
	Text         string     `json:"text"`
	Translations []textItem `json:"tr"`
}

type textItem struct {
	Text string `json:"text"`
}
