package transcript

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

// maxTokens is a conservative budget for the notes-generation prompt; the
// assembled transcript is truncated to roughly fit it (1 token ~ 3 chars).
const maxTokens = 2000

const truncationMarker = "...[CONTENT TRUNCATED FOR EFFICIENCY]..."

var ErrEmptyTranscript = errors.New("no transcript recorded for class")

// Chunk is one piece of transcribed speech.
type Chunk struct {
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// NotesGenerator produces structured notes from a transcript.
type NotesGenerator interface {
	GenerateNotes(ctx context.Context, transcript string) (string, error)
}

// Store accumulates per-class transcription chunks in memory and turns
// them into structured notes on demand.
type Store struct {
	mu          sync.Mutex
	transcripts map[string][]Chunk
	generator   NotesGenerator
}

func NewStore(generator NotesGenerator) *Store {
	return &Store{
		transcripts: make(map[string][]Chunk),
		generator:   generator,
	}
}

// AddChunk appends transcribed text to a class transcript. An empty
// timestamp is filled with the current time.
func (s *Store) AddChunk(classID, text, timestamp string) {
	if timestamp == "" {
		timestamp = time.Now().Format(time.RFC3339)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcripts[classID] = append(s.transcripts[classID], Chunk{Text: text, Timestamp: timestamp})
}

// Get returns the recorded chunks for a class.
func (s *Store) Get(classID string) []Chunk {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Chunk(nil), s.transcripts[classID]...)
}

// GenerateNotes assembles the transcript, trims it to the token budget and
// asks the generator for structured notes.
func (s *Store) GenerateNotes(ctx context.Context, classID string) (string, error) {
	chunks := s.Get(classID)
	if len(chunks) == 0 {
		return "", ErrEmptyTranscript
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	fullText := truncateForTokens(strings.Join(texts, " "))

	return s.generator.GenerateNotes(ctx, fullText)
}

// truncateForTokens keeps the beginning (introduction, key topics) and a
// larger slice of the end (late lecture often carries the summary) when
// the transcript exceeds the budget.
func truncateForTokens(fullText string) string {
	maxChars := maxTokens * 3
	if len(fullText) <= maxChars {
		return fullText
	}

	beginningChars := maxChars / 3
	endingChars := maxChars - beginningChars

	return fullText[:beginningChars] + truncationMarker + fullText[len(fullText)-endingChars:]
}
