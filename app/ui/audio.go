package ui

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrTranslationAudioUnavailable is shown when the translation comes without audio
const ErrTranslationAudioUnavailable = "Audio pronunciation unavailable for this translation."

// Source is audio to play: a URL or raw MP3 data
type Source struct {
	URL  string
	Data []byte
}

// Player plays a single audio source
type Player interface {
	Play(ctx context.Context, src Source) error
}

// Audio starts fire-and-forget playbacks. Playbacks may overlap.
type Audio struct {
	baseURL  string
	player   Player
	notifier Notifier
	wg       sync.WaitGroup
}

// PlayAudio plays a recording by URL
func (a *Audio) PlayAudio(ctx context.Context, audioURL string) {
	a.play(ctx, Source{URL: audioURL}, "failed to play audio")
}

// SpeakTranslation plays base64 encoded translation audio
func (a *Audio) SpeakTranslation(ctx context.Context, audio *string) {
	if audio == nil || *audio == "" {
		if a.notifier != nil {
			a.notifier.Notify(ctx, ErrTranslationAudioUnavailable)
		}
		return
	}
	data, err := base64.StdEncoding.DecodeString(*audio)
	if err != nil {
		log.Error().Err(err).Msg("error playing audio: invalid payload")
		return
	}
	a.play(ctx, Source{Data: data}, "error playing audio")
}

// PlayDynamicAudio plays text synthesized by the pronounce API
func (a *Audio) PlayDynamicAudio(ctx context.Context, text string, lang string) {
	if text == "" {
		return
	}
	a.play(ctx, Source{URL: PronounceURL(a.baseURL, text, lang)}, "error playing dynamic audio")
}

// Wait blocks until started playbacks finish
func (a *Audio) Wait() {
	a.wg.Wait()
}

func (a *Audio) play(ctx context.Context, src Source, failure string) {
	ctx = context.WithoutCancel(ctx)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.player.Play(ctx, src); err != nil {
			log.Error().Err(err).Str("url", src.URL).Msg(failure)
		}
	}()
}

// PronounceURL returns pronounce API URL for text
func PronounceURL(baseURL string, text string, lang string) string {
	return fmt.Sprintf("%s/api/pronounce?text=%s&lang=%s", strings.TrimRight(baseURL, "/"), url.QueryEscape(text), url.QueryEscape(lang))
}

// NewAudio creates audio playback adapter. baseURL points at the API serving /api/pronounce.
func NewAudio(baseURL string, player Player, notifier Notifier) *Audio {
	return &Audio{baseURL: baseURL, player: player, notifier: notifier}
}
