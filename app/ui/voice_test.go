package ui

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRecognizer fires events from script in order
type scriptedRecognizer struct {
	script   func(events RecognitionEvents)
	startErr error
	cfg      RecognitionConfig
	started  int
}

func (r *scriptedRecognizer) Start(ctx context.Context, cfg RecognitionConfig, events RecognitionEvents) error {
	r.started++
	r.cfg = cfg
	if r.startErr != nil {
		return r.startErr
	}
	r.script(events)
	return nil
}

type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) Notify(ctx context.Context, message string) {
	n.messages = append(n.messages, message)
}

func TestDetectSpeech(t *testing.T) {
	standard, prefixed := &scriptedRecognizer{}, &scriptedRecognizer{}
	t.Run("standard binding first", func(t *testing.T) {
		r, ok := DetectSpeech(Bindings{"SpeechRecognition": standard, "webkitSpeechRecognition": prefixed}).Recognizer()
		require.True(t, ok)
		assert.Same(t, standard, r)
	})
	t.Run("prefixed binding", func(t *testing.T) {
		r, ok := DetectSpeech(Bindings{"webkitSpeechRecognition": prefixed}).Recognizer()
		require.True(t, ok)
		assert.Same(t, prefixed, r)
	})
	t.Run("nil binding", func(t *testing.T) {
		_, ok := DetectSpeech(Bindings{"SpeechRecognition": nil}).Recognizer()
		assert.False(t, ok)
	})
	t.Run("no environment", func(t *testing.T) {
		_, ok := DetectSpeech(nil).Recognizer()
		assert.False(t, ok)
	})
}

func TestStartListening(t *testing.T) {
	t.Run("unavailable", func(t *testing.T) {
		rec := &stateRecorder{}
		session := NewSession("http://localhost", nil, rec.render)
		notifier := &recordingNotifier{}
		NewVoice(session, Unavailable(), notifier).StartListening(context.Background())

		assert.Equal(t, []string{ErrSpeechUnsupported}, notifier.messages)
		assert.Empty(t, rec.all())
	})
	t.Run("result", func(t *testing.T) {
		rec := &stateRecorder{}
		session := NewSession("http://localhost", nil, rec.render)
		session.SetQuery("typed")
		rec.reset()
		var listeningOnStart bool
		recognizer := &scriptedRecognizer{script: func(e RecognitionEvents) {
			e.OnStart()
			listeningOnStart = session.State().Listening
			e.OnResult([]RecognitionResult{{Alternatives: []string{"spoken", "spoke"}}, {Alternatives: []string{"later"}}})
			e.OnEnd()
		}}
		NewVoice(session, Available(recognizer), nil).StartListening(context.Background())

		assert.Equal(t, DefaultRecognitionConfig, recognizer.cfg)
		assert.True(t, listeningOnStart)
		st := session.State()
		assert.Equal(t, "spoken", st.Query)
		assert.False(t, st.Listening)
		assert.Nil(t, st.Result)
		// start, result; end is a no-op once idle
		assert.Len(t, rec.all(), 2)
	})
	t.Run("error", func(t *testing.T) {
		session := NewSession("http://localhost", nil, nil)
		session.SetQuery("typed")
		recognizer := &scriptedRecognizer{script: func(e RecognitionEvents) {
			e.OnStart()
			e.OnError(errors.New("no-speech"))
			e.OnEnd()
		}}
		notifier := &recordingNotifier{}
		NewVoice(session, Available(recognizer), notifier).StartListening(context.Background())

		st := session.State()
		assert.Equal(t, "typed", st.Query)
		assert.False(t, st.Listening)
		assert.Equal(t, "", st.Error)
		assert.Empty(t, notifier.messages)
	})
	t.Run("end without result", func(t *testing.T) {
		session := NewSession("http://localhost", nil, nil)
		recognizer := &scriptedRecognizer{script: func(e RecognitionEvents) {
			e.OnStart()
			e.OnEnd()
		}}
		NewVoice(session, Available(recognizer), nil).StartListening(context.Background())
		assert.False(t, session.State().Listening)
		assert.Equal(t, "", session.State().Query)
	})
	t.Run("empty result", func(t *testing.T) {
		session := NewSession("http://localhost", nil, nil)
		session.SetQuery("typed")
		recognizer := &scriptedRecognizer{script: func(e RecognitionEvents) {
			e.OnStart()
			e.OnResult(nil)
		}}
		NewVoice(session, Available(recognizer), nil).StartListening(context.Background())
		assert.False(t, session.State().Listening)
		assert.Equal(t, "typed", session.State().Query)
	})
	t.Run("start failure", func(t *testing.T) {
		session := NewSession("http://localhost", nil, nil)
		recognizer := &scriptedRecognizer{startErr: errors.New("busy")}
		NewVoice(session, Available(recognizer), nil).StartListening(context.Background())
		assert.Equal(t, 1, recognizer.started)
		assert.False(t, session.State().Listening)
	})
}
