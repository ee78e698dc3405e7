package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/JAS0NN/youtube-summary/config"
	"github.com/JAS0NN/youtube-summary/handlers"
	"github.com/JAS0NN/youtube-summary/logger"
	"github.com/JAS0NN/youtube-summary/providers"
	"github.com/JAS0NN/youtube-summary/services/summarize"
	"github.com/JAS0NN/youtube-summary/storage"
	"github.com/JAS0NN/youtube-summary/transcript"
	"github.com/JAS0NN/youtube-summary/youtube"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "youtube-summary",
		Short:         "Summarize YouTube videos from their caption tracks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(), newSummarizeCmd(), newTranscriptCmd())
	return root
}

// bootstrap loads config, configures logging and wires the service.
func bootstrap() (*config.Config, summarize.Service, *logrus.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.Init(cfg.LogDir, cfg.Debug)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	svc := summarize.NewService(
		transcript.NewFetcher(cfg.HTTPTimeout, log),
		youtube.NewTitleResolver(cfg.HTTPTimeout, log),
		providers.NewClient(cfg.HTTPTimeout, log),
		storage.NewFileStore(cfg.TranscriptDir, cfg.SummaryDir, cfg.PromptDir, log),
		cfg.Credentials,
		log,
	)

	return cfg, svc, log, nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web interface",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, svc, log, err := bootstrap()
			if err != nil {
				return err
			}

			server, err := handlers.NewServer(cfg, svc, log)
			if err != nil {
				return fmt.Errorf("failed to build server: %w", err)
			}

			errCh := make(chan error, 1)
			go func() {
				if err := server.Start(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case <-stop:
			}

			ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			return server.Shutdown(ctx)
		},
	}
}

func newSummarizeCmd() *cobra.Command {
	var (
		provider string
		model    string
		save     bool
	)

	cmd := &cobra.Command{
		Use:   "summarize <url>",
		Short: "Fetch a video's captions and generate a summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, svc, _, err := bootstrap()
			if err != nil {
				return err
			}

			if provider == "" {
				if def := providers.Default(cfg.Credentials); def != "" {
					provider = string(def)
				}
			}

			outcome := svc.Summarize(cmd.Context(), summarize.Request{
				URL:         args[0],
				Provider:    provider,
				CustomModel: model,
				SaveFiles:   save,
			})

			if !outcome.Success {
				return fmt.Errorf("%s: %s", outcome.FailureKind(), outcome.Err.Message)
			}

			fmt.Printf("# %s\n\n%s\n", outcome.Title, outcome.Summary)
			return nil
		},
	}

	cmd.Flags().StringVarP(&provider, "provider", "p", "", "AI provider: openai, grok or openrouter (default: first configured)")
	cmd.Flags().StringVarP(&model, "model", "m", "", "custom model identifier (openrouter only)")
	cmd.Flags().BoolVarP(&save, "save", "s", false, "save transcript and summary files")

	return cmd
}

func newTranscriptCmd() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "transcript <url>",
		Short: "Fetch and format a video's captions without summarizing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svc, _, err := bootstrap()
			if err != nil {
				return err
			}

			formatted, err := svc.Transcript(cmd.Context(), args[0], save)
			if err != nil {
				return err
			}

			fmt.Print(formatted.Body)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&save, "save", "s", false, "save the transcript file")

	return cmd
}
