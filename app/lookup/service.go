package lookup

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/rbhz/global-dictionary/app/clients/dictionaryapi"
	"github.com/rbhz/global-dictionary/app/clients/mymemory"
	"github.com/rbhz/global-dictionary/app/clients/pexels"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	// SourceLanguage is the dictionary base language
	SourceLanguage = "en"
	// DefaultTargetLanguage is used when no target_lang is given
	DefaultTargetLanguage = "hi"

	maxDefinitions     = 3
	maxRelatedWords    = 5
	maxConceptMapWords = 6
	imagesPerPage      = 4
)

// Dictionary fetches dictionary entries
type Dictionary interface {
	Get(ctx context.Context, word string) ([]dictionaryapi.WordResponse, error)
}

// Translator translates texts
type Translator interface {
	TranslateText(ctx context.Context, q string, from string, to string) (string, error)
	TranslateBatch(ctx context.Context, qs []string, from string, to string) ([]string, error)
}

// WordTranslator translates a single dictionary word
type WordTranslator interface {
	TranslateWord(ctx context.Context, word string, from string, to string) (string, error)
}

// Images searches photos
type Images interface {
	Search(ctx context.Context, query string, perPage int) (pexels.SearchResponse, error)
}

// Speech synthesizes MP3 audio
type Speech interface {
	Synthesize(ctx context.Context, text string, lang string) ([]byte, error)
}

// Service assembles lookup results
type Service struct {
	dictionary Dictionary
	translator Translator
	words      WordTranslator
	images     Images
	speech     Speech
}

// Search looks word up and translates it to targetLang.
// Provider failures are reported in Result.Error or degrade silently; Search never fails.
func (s *Service) Search(ctx context.Context, word string, targetLang string) Result {
	if targetLang == "" {
		targetLang = DefaultTargetLanguage
	}
	result := Result{
		Word:        word,
		Phonetics:   []Phonetic{},
		Definitions: []Definition{},
		Images:      []string{},
		ConceptMap:  &ConceptMap{Synonyms: []string{}, Antonyms: []string{}},
	}

	entries, err := s.dictionary.Get(ctx, word)
	switch {
	case err == nil && len(entries) == 0:
		result.Error = ErrWordNotFound
	case err == nil:
	case errors.Is(err, dictionaryapi.ErrNotFound), errors.Is(err, dictionaryapi.ErrUnsuccessful):
		result.Error = ErrWordNotFound
	default:
		log.Error().Err(err).Str("word", word).Msg("failed to fetch dictionary entry")
		result.Error = fmt.Sprintf("Dictionary API Error: %v", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	if len(entries) > 0 {
		entry := entries[0]
		result.Phonetics = phonetics(entry)
		g.Go(func() error {
			result.Definitions, *result.ConceptMap = s.definitions(gctx, entry, targetLang)
			return nil
		})
	}
	if result.Error == "" || result.Error == ErrWordNotFound {
		g.Go(func() error {
			result.Images = s.searchImages(gctx, word)
			return nil
		})
	}
	g.Go(func() error {
		translation := s.translate(gctx, word, targetLang)
		result.Translation = &translation
		return nil
	})
	_ = g.Wait()
	return result
}

// phonetics keeps only transcriptions that come with a recording
func phonetics(entry dictionaryapi.WordResponse) []Phonetic {
	result := []Phonetic{}
	for _, p := range entry.Phonetics {
		if p.Text != "" && p.Audio != nil && *p.Audio != "" {
			result = append(result, Phonetic{Text: p.Text, Audio: *p.Audio})
		}
	}
	return result
}

func (s *Service) definitions(ctx context.Context, entry dictionaryapi.WordResponse, lang string) ([]Definition, ConceptMap) {
	definitions := []Definition{}
	var allSynonyms, allAntonyms []string
	for _, m := range entry.Meanings {
		if len(definitions) >= maxDefinitions {
			break
		}
		translatedPOS, err := s.translator.TranslateText(ctx, m.PartOfSpeech, SourceLanguage, lang)
		if err != nil {
			translatedPOS = m.PartOfSpeech
		}
		for _, d := range m.Definitions {
			if len(definitions) >= maxDefinitions {
				break
			}
			def := Definition{
				PartOfSpeech:           m.PartOfSpeech,
				TranslatedPartOfSpeech: translatedPOS,
				Definition:             d.Definition,
				Example:                d.Example,
			}
			if d.Example != "" {
				if translated, err := s.translator.TranslateText(ctx, d.Example, SourceLanguage, lang); err == nil {
					def.TranslatedExample = translated
				}
			}
			synonyms := union(m.Synonyms, d.Synonyms)
			antonyms := union(m.Antonyms, d.Antonyms)
			allSynonyms = union(allSynonyms, synonyms)
			allAntonyms = union(allAntonyms, antonyms)

			def.Synonyms = head(synonyms, maxRelatedWords)
			def.TranslatedSynonyms = s.translateAll(ctx, def.Synonyms, lang)
			def.Antonyms = head(antonyms, maxRelatedWords)
			def.TranslatedAntonyms = s.translateAll(ctx, def.Antonyms, lang)
			definitions = append(definitions, def)
		}
	}
	conceptMap := ConceptMap{
		Synonyms: s.translateAll(ctx, head(allSynonyms, maxConceptMapWords), lang),
		Antonyms: s.translateAll(ctx, head(allAntonyms, maxConceptMapWords), lang),
	}
	return definitions, conceptMap
}

// translateAll returns a slice parallel to words
func (s *Service) translateAll(ctx context.Context, words []string, lang string) []string {
	if len(words) == 0 {
		return []string{}
	}
	translated, err := s.translator.TranslateBatch(ctx, words, SourceLanguage, lang)
	if err != nil {
		log.Warn().Err(err).Strs("words", words).Msg("failed to translate related words")
	}
	if len(translated) != len(words) {
		return append([]string{}, words...)
	}
	return translated
}

func (s *Service) searchImages(ctx context.Context, word string) []string {
	if s.images == nil {
		return []string{}
	}
	resp, err := s.images.Search(ctx, word, imagesPerPage)
	if err != nil {
		log.Error().Err(err).Str("word", word).Msg("failed to search images")
		return []string{}
	}
	return resp.MediumURLs()
}

func (s *Service) translate(ctx context.Context, word string, lang string) Translation {
	text, err := s.translateWord(ctx, word, lang)
	if errors.Is(err, mymemory.ErrUnknown) {
		// same spelling in both languages
		text, err = word, nil
	}
	if err != nil {
		log.Error().Err(err).Str("word", word).Str("lang", lang).Msg("failed to translate word")
		return Translation{Lang: "Error", Text: "Could not translate"}
	}
	translation := Translation{Lang: LanguageName(lang), Code: lang, Text: text}
	audio, err := s.speech.Synthesize(ctx, text, lang)
	if err != nil {
		log.Error().Err(err).Str("text", text).Str("lang", lang).Msg("failed to synthesize translation")
		return translation
	}
	encoded := base64.StdEncoding.EncodeToString(audio)
	translation.Audio = &encoded
	return translation
}

// translateWord prefers the dictionary translation of a headword over machine translation
func (s *Service) translateWord(ctx context.Context, word string, lang string) (string, error) {
	if s.words != nil && lang != SourceLanguage {
		text, err := s.words.TranslateWord(ctx, word, SourceLanguage, lang)
		if err == nil {
			return text, nil
		}
		log.Debug().Err(err).Str("word", word).Str("lang", lang).Msg("dictionary translation failed, falling back")
	}
	return s.translator.TranslateText(ctx, word, SourceLanguage, lang)
}

// union returns a and then items of b missing from a, keeping order
func union(a []string, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	result := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, w := range list {
			w = strings.TrimSpace(w)
			if w == "" {
				continue
			}
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			result = append(result, w)
		}
	}
	return result
}

func head(words []string, n int) []string {
	if len(words) > n {
		return words[:n]
	}
	return words
}

// WithWordTranslator sets dictionary translator used for the headword
func (s *Service) WithWordTranslator(words WordTranslator) *Service {
	s.words = words
	return s
}

// NewService creates lookup service. images may be nil when no image provider is configured.
func NewService(dictionary Dictionary, translator Translator, images Images, speech Speech) *Service {
	return &Service{dictionary: dictionary, translator: translator, images: images, speech: speech}
}
