package ui

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireCommand(t *testing.T, name string) {
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s is not available", name)
	}
}

func TestCommandPlayer(t *testing.T) {
	requireCommand(t, "true")
	requireCommand(t, "false")
	t.Run("url", func(t *testing.T) {
		assert.NoError(t, CommandPlayer{Argv: []string{"true"}}.Play(context.Background(), Source{URL: "https://cdn/a.mp3"}))
	})
	t.Run("data", func(t *testing.T) {
		assert.NoError(t, CommandPlayer{Argv: []string{"true"}}.Play(context.Background(), Source{Data: []byte("mp3")}))
	})
	t.Run("empty source", func(t *testing.T) {
		assert.Error(t, CommandPlayer{Argv: []string{"true"}}.Play(context.Background(), Source{}))
	})
	t.Run("player failure", func(t *testing.T) {
		assert.Error(t, CommandPlayer{Argv: []string{"false"}}.Play(context.Background(), Source{URL: "x"}))
	})
}

func TestCommandRecognizer(t *testing.T) {
	requireCommand(t, "echo")
	collect := func(r CommandRecognizer, cfg RecognitionConfig) (started bool, results []RecognitionResult, errs []error, ended bool) {
		err := r.Start(context.Background(), cfg, RecognitionEvents{
			OnStart:  func() { started = true },
			OnResult: func(res []RecognitionResult) { results = res },
			OnError:  func(err error) { errs = append(errs, err) },
			OnEnd:    func() { ended = true },
		})
		require.NoError(t, err)
		return
	}
	t.Run("transcript", func(t *testing.T) {
		started, results, errs, ended := collect(CommandRecognizer{Argv: []string{"echo", "{lang}"}}, DefaultRecognitionConfig)
		assert.True(t, started)
		assert.True(t, ended)
		assert.Empty(t, errs)
		assert.Equal(t, []RecognitionResult{{Alternatives: []string{"en-US"}}}, results)
	})
	t.Run("silence", func(t *testing.T) {
		started, results, errs, ended := collect(CommandRecognizer{Argv: []string{"echo"}}, DefaultRecognitionConfig)
		assert.True(t, started)
		assert.True(t, ended)
		assert.Empty(t, errs)
		assert.Empty(t, results)
	})
	t.Run("failure", func(t *testing.T) {
		requireCommand(t, "false")
		_, results, errs, ended := collect(CommandRecognizer{Argv: []string{"false"}}, DefaultRecognitionConfig)
		assert.True(t, ended)
		assert.Len(t, errs, 1)
		assert.Empty(t, results)
	})
	t.Run("missing program", func(t *testing.T) {
		err := CommandRecognizer{Argv: []string{"definitely-not-a-recognizer"}}.Start(
			context.Background(), DefaultRecognitionConfig, RecognitionEvents{},
		)
		assert.Error(t, err)
	})
	t.Run("empty argv", func(t *testing.T) {
		assert.Error(t, CommandRecognizer{}.Start(context.Background(), DefaultRecognitionConfig, RecognitionEvents{}))
	})
}
