// Package words picks random english words for the daily word.
package words

import (
	_ "embed"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Fallback is returned when the word list is empty
const Fallback = "Serendipity"

// MinLength is the shortest word picked
const MinLength = 5

//go:embed words.txt
var wordList string

// Picker returns random words
type Picker struct {
	words []string
	mx    sync.Mutex
	rnd   *rand.Rand
}

// Random returns a random word, never the empty string
func (p *Picker) Random() string {
	if len(p.words) == 0 {
		return Fallback
	}
	p.mx.Lock()
	defer p.mx.Unlock()
	return p.words[p.rnd.Intn(len(p.words))]
}

// Parse returns words of list: one per line, blank lines and # comments skipped,
// words shorter than MinLength dropped.
func Parse(list string) []string {
	var result []string
	for _, line := range strings.Split(list, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || len([]rune(line)) < MinLength {
			continue
		}
		result = append(result, line)
	}
	return result
}

// NewPicker creates picker over words, seed 0 seeds from the clock
func NewPicker(words []string, seed int64) *Picker {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Picker{words: words, rnd: rand.New(rand.NewSource(seed))}
}

// NewDefaultPicker creates picker over the embedded word list
func NewDefaultPicker() *Picker {
	return NewPicker(Parse(wordList), 0)
}
