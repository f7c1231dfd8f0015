package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hasipfaruk/Stock-Price-Extractor/internal/app"
	"github.com/hasipfaruk/Stock-Price-Extractor/internal/config"
	"github.com/hasipfaruk/Stock-Price-Extractor/internal/events"
	apihttp "github.com/hasipfaruk/Stock-Price-Extractor/internal/http"
	"github.com/hasipfaruk/Stock-Price-Extractor/internal/llm"
	"github.com/hasipfaruk/Stock-Price-Extractor/internal/observability"
	"github.com/hasipfaruk/Stock-Price-Extractor/internal/service/stt"
	"github.com/hasipfaruk/Stock-Price-Extractor/internal/service/stt/google"
	"github.com/hasipfaruk/Stock-Price-Extractor/internal/service/stt/mock"
)

func main() {
	cfg := config.Load()

	application := app.New(cfg)
	if err := application.Start(); err != nil {
		log.Fatal().Err(err).Msg("Application startup failed")
	}

	// Kafka publisher with separate topics for quotes and failures
	publisher := events.New(&events.Config{
		Enabled:       cfg.Kafka.Enabled,
		Brokers:       cfg.Kafka.Brokers,
		TopicQuotes:   cfg.Kafka.TopicQuotes,
		TopicFailures: cfg.Kafka.TopicFailures,
		Principal:     cfg.Kafka.Principal,
	})
	defer publisher.Close()

	transcriber := newTranscriber(cfg)
	if transcriber != nil {
		defer transcriber.Close()
	}

	var llmClient *llm.Client
	var llmPrompt string
	if cfg.LLM.Enabled {
		llmClient = llm.NewClient(llm.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: float32(cfg.LLM.Temperature),
			Timeout:     cfg.LLM.Timeout,
		})
		llmPrompt = loadPrompt(cfg.LLM.PromptPath)
	}

	// Metrics and health endpoints on their own listener
	obsServer := observability.NewServer(cfg.Observability.MetricsAddr)
	obsServer.Start()

	router := apihttp.NewRouter(apihttp.NewServer(transcriber, publisher, llmClient, llmPrompt))
	server := &http.Server{
		Addr:         ":" + cfg.Service.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Service.HTTPPort).Msg("Quote extraction API started")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP serve failed")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info().Msg("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP shutdown failed")
	}
	if err := obsServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Observability shutdown failed")
	}
	application.Shutdown()
}

// newTranscriber selects the STT provider. Unknown providers leave the audio
// endpoint unavailable rather than failing startup.
func newTranscriber(cfg *config.Configuration) stt.Transcriber {
	switch cfg.STT.Provider {
	case "google":
		adapter, err := google.New(context.Background(), google.Config{
			LanguageCode:  cfg.STT.LanguageCode,
			SampleRateHz:  cfg.STT.SampleRateHz,
			AudioEncoding: "LINEAR16",
		})
		if err != nil {
			log.Error().Err(err).Msg("Google STT unavailable, audio endpoint disabled")
			return nil
		}
		return adapter
	case "mock":
		return mock.New()
	}
	log.Warn().Str("provider", cfg.STT.Provider).Msg("Unknown STT provider, audio endpoint disabled")
	return nil
}

func loadPrompt(path string) string {
	if path == "" {
		return defaultPrompt
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to read prompt file, using default")
		return defaultPrompt
	}
	return string(data)
}

const defaultPrompt = `You are a financial data extraction system. Given a spoken market update
transcript, return a JSON object with these fields: index_name, price,
change, change_percent, session. Use null for fields not present in the
transcript. Return only the JSON object.`
