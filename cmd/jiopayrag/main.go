// Copyright 2025 The jiopay-rag-chatbot Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	jiopayrag "github.com/HarVkr/jiopay-rag-chatbot"
	"github.com/HarVkr/jiopay-rag-chatbot/ai"
	"github.com/HarVkr/jiopay-rag-chatbot/ingestion"
	"github.com/HarVkr/jiopay-rag-chatbot/reembed"
	"github.com/HarVkr/jiopay-rag-chatbot/server"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:   "jiopayrag",
		Usage:  "Retrieval-augmented support chatbot for JioPay Business",
		Before: setupLogger,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the chat API over HTTP",
				Action: serveCommand,
				Flags: append(aiFlags(),
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "listen",
						Usage: "Address to listen on",
						Value: ":8080",
					},
					&cli.IntFlag{
						Name:  "max-results",
						Usage: "Maximum chunks retrieved per question",
						Value: 8,
					},
				),
			},
			{
				Name:      "ingest",
				Usage:     "Ingest scraped corpus files into the knowledge base",
				ArgsUsage: "FILE [FILE...]",
				Action:    ingestCommand,
				Flags: append(aiFlags(),
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Concurrent embedding workers",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Chunks embedded per worker task",
						Value: 16,
					},
				),
			},
			{
				Name:      "ask",
				Usage:     "Ask a single question from the command line",
				ArgsUsage: "QUESTION",
				Action:    askCommand,
				Flags: append(aiFlags(),
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the full response as JSON",
					},
				),
			},
			{
				Name:   "reembed",
				Usage:  "Regenerate embeddings for all stored chunks",
				Action: reembedCommand,
				Flags: append(aiFlags(),
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Chunks embedded per batch",
						Value: 100,
					},
				),
			},
			{
				Name:   "stats",
				Usage:  "Print knowledge base statistics",
				Action: statsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func aiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "model-host",
			Usage: "OpenAI-compatible model server URL for embeddings and generation",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "all-minilm",
		},
		&cli.StringFlag{
			Name:  "generator-model",
			Usage: "Generation model name",
			Value: "qwen2.5:3b",
		},
		&cli.StringFlag{
			Name:    "inference-token",
			Usage:   "Token for the hosted embedding inference endpoint",
			EnvVars: []string{"HF_API_TOKEN"},
		},
	}
}

func aiConfigFromFlags(c *cli.Context) *ai.Config {
	opts := []ai.ConfigOption{
		ai.WithInferenceToken(c.String("inference-token")),
	}
	// Commands without AI flags fall back to the defaults.
	if host := c.String("model-host"); host != "" {
		opts = append(opts, ai.WithHost(host))
	}
	if model := c.String("embedding-model"); model != "" {
		opts = append(opts, ai.WithEmbeddingModel(model))
	}
	if model := c.String("generator-model"); model != "" {
		opts = append(opts, ai.WithGeneratorModel(model))
	}
	return ai.NewConfig(opts...)
}

func openChatbot(c *cli.Context, extra ...jiopayrag.ChatbotOption) (*jiopayrag.Chatbot, error) {
	opts := append([]jiopayrag.ChatbotOption{
		jiopayrag.WithAIConfig(aiConfigFromFlags(c)),
	}, extra...)

	bot, err := jiopayrag.NewChatbot(c.String("db"), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open knowledge base: %w", err)
	}
	return bot, nil
}

func serveCommand(c *cli.Context) error {
	bot, err := openChatbot(c, jiopayrag.WithMaxResults(c.Int("max-results")))
	if err != nil {
		return err
	}
	defer bot.Close()

	srv, err := server.NewServer(bot)
	if err != nil {
		return err
	}

	// Serve until interrupted
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(c.String("listen"))
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		slog.Info("shutting down")
		return srv.Shutdown(context.Background())
	}
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one corpus file is required")
	}

	bot, err := openChatbot(c)
	if err != nil {
		return err
	}
	defer bot.Close()

	pipelineOpts := []ingestion.Option{
		ingestion.WithBatchSize(c.Int("batch-size")),
	}
	if c.Int("pool-size") > 0 {
		pipelineOpts = append(pipelineOpts, ingestion.WithPoolSize(c.Int("pool-size")))
	}

	pipeline, err := bot.NewIngestionPipeline(pipelineOpts...)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	ctx := context.Background()
	total := 0
	for _, path := range c.Args().Slice() {
		stored, err := pipeline.IngestFile(ctx, path)
		if err != nil {
			return fmt.Errorf("ingesting %s: %w", path, err)
		}
		fmt.Fprintf(os.Stderr, "%s: %d chunks stored\n", path, stored)
		total += stored
	}

	fmt.Fprintf(os.Stderr, "Total: %d chunks\n", total)
	return nil
}

func askCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("a question is required")
	}

	bot, err := openChatbot(c)
	if err != nil {
		return err
	}
	defer bot.Close()

	response, err := bot.Ask(context.Background(), question)
	if err != nil {
		return err
	}

	if c.Bool("json") {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(response)
	}

	fmt.Println(response.Answer)
	if len(response.Sources) > 0 {
		fmt.Printf("\n(%s, %d sources)\n", response.SearchType, response.TotalSources)
	}
	return nil
}

func reembedCommand(c *cli.Context) error {
	bot, err := openChatbot(c)
	if err != nil {
		return err
	}
	defer bot.Close()

	config := reembed.DefaultConfig()
	if c.Int("batch-size") > 0 {
		config.BatchSize = c.Int("batch-size")
	}

	reembedder, err := bot.NewReembedder(config, os.Stderr)
	if err != nil {
		return err
	}
	return reembedder.Run(context.Background())
}

func statsCommand(c *cli.Context) error {
	bot, err := openChatbot(c)
	if err != nil {
		return err
	}
	defer bot.Close()

	count, err := bot.ChunkRepository().CountChunks(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("chunks: %d\n", count)
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
