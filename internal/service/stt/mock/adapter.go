// Package mock provides a mock STT adapter for testing without cloud
// credentials. It cycles through canned market-update transcripts so the
// extraction pipeline downstream always has something realistic to chew on.
package mock

import (
	"context"
	"sync"

	"github.com/hasipfaruk/Stock-Price-Extractor/internal/service/stt"
)

// SimulatedTranscript is a canned recognition result.
type SimulatedTranscript struct {
	Text       string
	Confidence float64
}

// DefaultTranscripts provides sample market updates for simulation,
// including the transcription errors a real ASR system produces.
var DefaultTranscripts = []SimulatedTranscript{
	{
		Text:       "the SNP 500 is trading at forty two twenty five up 23 points at the close",
		Confidence: 0.94,
	},
	{
		Text:       "Dow Jones closed at 34,020 down 58 points",
		Confidence: 0.97,
	},
	{
		Text:       "not stack at 14,210 up 120 points with tech driving gains",
		Confidence: 0.89,
	},
	{
		Text:       "the Ducks sharply lower at 15,850 down 1.8 percent",
		Confidence: 0.91,
	},
	{
		Text:       "Russell 2000 at 1,850 lagging the broader market",
		Confidence: 0.93,
	},
}

// Adapter implements stt.Transcriber with mock responses. Each call to
// Transcribe returns the next canned transcript, cycling through the list.
type Adapter struct {
	mu          sync.Mutex
	transcripts []SimulatedTranscript
	next        int
	closed      bool
}

// transcriptCounter staggers the starting transcript across adapters.
var (
	transcriptCounter int
	counterMu         sync.Mutex
)

// New creates a new mock STT adapter.
func New() *Adapter {
	counterMu.Lock()
	start := transcriptCounter % len(DefaultTranscripts)
	transcriptCounter++
	counterMu.Unlock()

	return &Adapter{
		transcripts: DefaultTranscripts,
		next:        start,
	}
}

// NewWithTranscripts creates a mock adapter with caller-supplied transcripts.
func NewWithTranscripts(ts []SimulatedTranscript) *Adapter {
	return &Adapter{transcripts: ts}
}

// Transcribe ignores the audio bytes and returns the next canned transcript.
// Empty audio simulates silence and yields stt.ErrEmptyTranscript.
func (a *Adapter) Transcribe(ctx context.Context, audio []byte) (stt.Result, error) {
	if err := ctx.Err(); err != nil {
		return stt.Result{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return stt.Result{}, stt.ErrEmptyTranscript
	}
	if len(audio) == 0 || len(a.transcripts) == 0 {
		return stt.Result{}, stt.ErrEmptyTranscript
	}

	t := a.transcripts[a.next%len(a.transcripts)]
	a.next++
	return stt.Result{Text: t.Text, Confidence: t.Confidence}, nil
}

// Close ends the mock session.
func (a *Adapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	return nil
}
