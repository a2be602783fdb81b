package ui

import (
	"context"

	"github.com/rs/zerolog/log"
)

// ErrSpeechUnsupported is shown when no speech recognizer is available
const ErrSpeechUnsupported = "Speech recognition is not supported in this browser."

// Recognizer bindings looked up in an Environment, in order
var recognizerBindings = []string{"SpeechRecognition", "webkitSpeechRecognition"}

// RecognitionConfig configures a single recognition session
type RecognitionConfig struct {
	Lang            string
	InterimResults  bool
	MaxAlternatives int
}

// DefaultRecognitionConfig is used for every voice search
var DefaultRecognitionConfig = RecognitionConfig{Lang: "en-US", InterimResults: false, MaxAlternatives: 1}

// RecognitionResult is one recognized segment with its alternatives, best first
type RecognitionResult struct {
	Alternatives []string
}

// RecognitionEvents are callbacks of a recognition session. Any of them may be nil.
type RecognitionEvents struct {
	OnStart  func()
	OnResult func([]RecognitionResult)
	OnError  func(error)
	OnEnd    func()
}

// Recognizer runs a speech recognition session.
// Start blocks until the session ends.
type Recognizer interface {
	Start(ctx context.Context, cfg RecognitionConfig, events RecognitionEvents) error
}

// Notifier shows a blocking message to the user
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(ctx context.Context, message string)

// Notify calls f
func (f NotifierFunc) Notify(ctx context.Context, message string) {
	f(ctx, message)
}

// SpeechCapability is either Available with a recognizer or Unavailable
type SpeechCapability struct {
	recognizer Recognizer
}

// Available returns capability backed by r
func Available(r Recognizer) SpeechCapability {
	return SpeechCapability{recognizer: r}
}

// Unavailable returns capability without recognizer
func Unavailable() SpeechCapability {
	return SpeechCapability{}
}

// Recognizer returns recognizer if available
func (c SpeechCapability) Recognizer() (Recognizer, bool) {
	return c.recognizer, c.recognizer != nil
}

// Environment exposes host capabilities by name
type Environment interface {
	Lookup(name string) (Recognizer, bool)
}

// Bindings is a static Environment
type Bindings map[string]Recognizer

// Lookup returns recognizer bound to name
func (b Bindings) Lookup(name string) (Recognizer, bool) {
	r, ok := b[name]
	return r, ok && r != nil
}

// DetectSpeech resolves speech capability from env
func DetectSpeech(env Environment) SpeechCapability {
	if env == nil {
		return Unavailable()
	}
	for _, name := range recognizerBindings {
		if r, ok := env.Lookup(name); ok {
			return Available(r)
		}
	}
	return Unavailable()
}

// Voice fills session query from speech
type Voice struct {
	session  *Session
	speech   SpeechCapability
	notifier Notifier
}

// StartListening runs one recognition session.
// The first alternative of the first result replaces the query; no search is started.
func (v *Voice) StartListening(ctx context.Context) {
	recognizer, ok := v.speech.Recognizer()
	if !ok {
		if v.notifier != nil {
			v.notifier.Notify(ctx, ErrSpeechUnsupported)
		}
		return
	}
	events := RecognitionEvents{
		OnStart: func() { v.session.setListening(true) },
		OnResult: func(results []RecognitionResult) {
			if len(results) == 0 || len(results[0].Alternatives) == 0 {
				v.session.setListening(false)
				return
			}
			transcript := results[0].Alternatives[0]
			v.session.update(func(st *State) {
				st.Query = transcript
				st.Listening = false
			})
		},
		OnError: func(err error) {
			log.Error().Err(err).Str("session", v.session.ID.String()).Msg("speech recognition error")
			v.session.setListening(false)
		},
		OnEnd: func() { v.session.setListening(false) },
	}
	if err := recognizer.Start(ctx, DefaultRecognitionConfig, events); err != nil {
		log.Error().Err(err).Str("session", v.session.ID.String()).Msg("failed to start speech recognition")
		v.session.setListening(false)
	}
}

// NewVoice creates voice input adapter for session
func NewVoice(session *Session, speech SpeechCapability, notifier Notifier) *Voice {
	return &Voice{session: session, speech: speech, notifier: notifier}
}
