package ui

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// DefaultPlayerCommand plays a file or URL without a window
var DefaultPlayerCommand = []string{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"}

// CommandPlayer plays audio with an external program.
// The source URL, or a temp file holding source data, is appended to Argv.
type CommandPlayer struct {
	Argv []string
}

// Play runs the player and waits for it to exit
func (p CommandPlayer) Play(ctx context.Context, src Source) error {
	argv := p.Argv
	if len(argv) == 0 {
		argv = DefaultPlayerCommand
	}
	target := src.URL
	if len(src.Data) > 0 {
		path, err := writeTempAudio(src.Data)
		if err != nil {
			return err
		}
		defer os.Remove(path)
		target = path
	}
	if target == "" {
		return fmt.Errorf("empty audio source")
	}
	cmd := exec.CommandContext(ctx, argv[0], append(argv[1:len(argv):len(argv)], target)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("run %s: %w: %s", argv[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}

func writeTempAudio(data []byte) (string, error) {
	f, err := os.CreateTemp("", "dictionary-*.mp3")
	if err != nil {
		return "", fmt.Errorf("create temp audio: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write temp audio: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("close temp audio: %w", err)
	}
	return f.Name(), nil
}

// CommandRecognizer runs an external speech-to-text program.
// Every non-empty stdout line is an alternative transcript, best first.
// Arguments may reference the config as {lang}, {interim} and {alternatives}.
type CommandRecognizer struct {
	Argv []string
}

// Start runs the program until it exits
func (r CommandRecognizer) Start(ctx context.Context, cfg RecognitionConfig, events RecognitionEvents) error {
	if len(r.Argv) == 0 {
		return fmt.Errorf("recognizer argv cannot be empty")
	}
	replacer := strings.NewReplacer(
		"{lang}", cfg.Lang,
		"{interim}", strconv.FormatBool(cfg.InterimResults),
		"{alternatives}", strconv.Itoa(cfg.MaxAlternatives),
	)
	args := make([]string, 0, len(r.Argv)-1)
	for _, a := range r.Argv[1:] {
		args = append(args, replacer.Replace(a))
	}
	cmd := exec.CommandContext(ctx, r.Argv[0], args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("open stdout for %s: %w", r.Argv[0], err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command %s: %w", r.Argv[0], err)
	}
	if events.OnStart != nil {
		events.OnStart()
	}

	var alternatives []string
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if cfg.MaxAlternatives <= 0 || len(alternatives) < cfg.MaxAlternatives {
			alternatives = append(alternatives, line)
		}
	}
	scanErr := scanner.Err()
	waitErr := cmd.Wait()

	switch {
	case scanErr != nil:
		if events.OnError != nil {
			events.OnError(fmt.Errorf("read %s output: %w", r.Argv[0], scanErr))
		}
	case waitErr != nil:
		if events.OnError != nil {
			events.OnError(fmt.Errorf("wait for %s: %w", r.Argv[0], waitErr))
		}
	case len(alternatives) > 0:
		if events.OnResult != nil {
			events.OnResult([]RecognitionResult{{Alternatives: alternatives}})
		}
	}
	if events.OnEnd != nil {
		events.OnEnd()
	}
	return nil
}
