// Command extractcli runs the quote extraction pipeline from the command
// line. The transcript comes from the arguments, stdin, or an audio file
// transcribed through the configured STT provider.
//
// Usage:
//
//	extractcli "S&P 500 closing at 4,225 up 23 points"
//	echo "Dow at 34,020 down 58" | extractcli -json
//	extractcli -simple "NASDAQ at 14,210"
//	extractcli -audio clip.wav
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hasipfaruk/Stock-Price-Extractor/internal/config"
	"github.com/hasipfaruk/Stock-Price-Extractor/internal/extract"
	"github.com/hasipfaruk/Stock-Price-Extractor/internal/service/stt"
	"github.com/hasipfaruk/Stock-Price-Extractor/internal/service/stt/google"
	"github.com/hasipfaruk/Stock-Price-Extractor/internal/service/stt/mock"
)

func main() {
	jsonOut := flag.Bool("json", false, "print the full record as JSON")
	simple := flag.Bool("simple", false, "print only index and price")
	transcriptOnly := flag.Bool("transcript-only", false, "print the transcript and exit without extracting")
	audioPath := flag.String("audio", "", "transcribe this audio file instead of reading a transcript")
	flag.Parse()

	transcript, err := readTranscript(*audioPath, flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if *transcriptOnly {
		fmt.Println(transcript)
		return
	}

	if *simple {
		index, price, ok := extract.Simple(transcript)
		if !ok {
			fmt.Fprintln(os.Stderr, "no index and price found")
			os.Exit(2)
		}
		fmt.Printf("%s %s\n", index, price)
		return
	}

	rec := extract.Detailed(transcript)
	if rec == nil {
		fmt.Fprintln(os.Stderr, "no index found in transcript")
		os.Exit(2)
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rec); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println(rec.StandardizedQuote)
}

// readTranscript resolves the input text: an audio file when -audio is set,
// otherwise the joined arguments, otherwise stdin.
func readTranscript(audioPath string, args []string) (string, error) {
	if audioPath != "" {
		return transcribeFile(audioPath)
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("no transcript provided")
	}
	return text, nil
}

func transcribeFile(path string) (string, error) {
	audio, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read audio: %w", err)
	}

	cfg := config.Load()
	var transcriber stt.Transcriber
	switch cfg.STT.Provider {
	case "google":
		transcriber, err = google.New(context.Background(), google.Config{
			LanguageCode:  cfg.STT.LanguageCode,
			SampleRateHz:  cfg.STT.SampleRateHz,
			AudioEncoding: "LINEAR16",
		})
		if err != nil {
			return "", fmt.Errorf("google stt: %w", err)
		}
	default:
		transcriber = mock.New()
	}
	defer transcriber.Close()

	result, err := transcriber.Transcribe(context.Background(), audio)
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	return result.Text, nil
}
