// Package cli implements the personaapply command line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	ollamaembed "github.com/personaapply/personaapply/internal/adapters/driven/embedding/ollama"
	"github.com/personaapply/personaapply/internal/adapters/driven/embedding/openai"
	"github.com/personaapply/personaapply/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/personaapply/personaapply/internal/adapters/driven/llm/ollama"
	"github.com/personaapply/personaapply/internal/adapters/driven/snapshot"
	"github.com/personaapply/personaapply/internal/adapters/driven/storage/sqlite"
	"github.com/personaapply/personaapply/internal/config"
	"github.com/personaapply/personaapply/internal/core/ports/driven"
	"github.com/personaapply/personaapply/internal/core/ports/driving"
	"github.com/personaapply/personaapply/internal/core/services"
	"github.com/personaapply/personaapply/internal/logger"
	"github.com/personaapply/personaapply/internal/splitter"
)

// version is set by Execute from the main package.
var version = "dev"

// Persistent flags.
var (
	cfgFile     string
	userID      string
	verboseMode bool
)

// Services wired by initServices. Commands check for nil so that tests can
// substitute mocks.
var (
	indexService    driving.IndexService
	documentService driving.DocumentService
	contentService  driving.ContentService
	profileService  driving.ProfileService
)

// Backends kept for shutdown.
var (
	metaStore *sqlite.Store
	embedder  driven.EmbeddingService
	llm       driven.LLMService
)

var rootCmd = &cobra.Command{
	Use:   "personaapply",
	Short: "Personalized career content from your own documents",
	Long: `PersonaApply indexes your career documents (resume, GitHub profile,
portfolio, LinkedIn export) into a per-user similarity index and uses
them to generate personalized cover letters, cold emails, and LinkedIn
messages.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseMode)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.personaapply/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", "", "user ID to operate as")
	rootCmd.PersistentFlags().BoolVarP(&verboseMode, "verbose", "v", false, "enable verbose logging")
}

// Execute wires the services and runs the root command.
func Execute(v string) error {
	version = v

	// Cobra parses flags after wiring, so detect --verbose early to
	// cover wiring logs too.
	for _, arg := range os.Args[1:] {
		if arg == "--verbose" || arg == "-v" {
			logger.SetVerbose(true)
		}
	}

	if err := initServices(); err != nil {
		return err
	}
	defer closeServices()

	return rootCmd.Execute()
}

// initServices builds the full service graph from configuration.
func initServices() error {
	// Optional .env file for API keys during development.
	_ = godotenv.Load()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	dataDir, err := cfg.ResolveDataDir()
	if err != nil {
		return err
	}

	logger.Section("Initialization")
	logger.Debug("data directory: %s", dataDir)

	store, err := sqlite.NewStore(filepath.Join(dataDir, "data"))
	if err != nil {
		return fmt.Errorf("opening metadata store: %w", err)
	}
	metaStore = store

	snapshots, err := snapshot.NewFileStore(filepath.Join(dataDir, "data", "index.gob"))
	if err != nil {
		return fmt.Errorf("opening index snapshot store: %w", err)
	}

	embedder, err = buildEmbedder(cfg)
	if err != nil {
		return err
	}
	logger.Debug("embedding backend: %s (%s, %d dimensions)",
		cfg.Embedding.Provider, embedder.ModelName(), embedder.Dimensions())

	// Backend unreachability is a configuration problem, surfaced now
	// rather than on the first embed call.
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := embedder.Ping(pingCtx); err != nil {
		return fmt.Errorf("embedding backend unreachable: %w", err)
	}

	llm, err = buildLLM(cfg)
	if err != nil {
		return err
	}
	if llm != nil {
		logger.Debug("llm backend: %s (%s)", cfg.LLM.Provider, llm.ModelName())
	} else {
		logger.Debug("no llm configured, generation falls back to templates")
	}

	idxOpts := []services.IndexOption{
		services.WithSplitter(splitter.New(
			splitter.WithChunkSize(cfg.Index.ChunkSize),
			splitter.WithOverlap(cfg.Index.ChunkOverlap),
		)),
		services.WithMaxContextChunks(cfg.Index.MaxContextChunks),
	}
	idx, err := services.NewIndexService(embedder, snapshots, idxOpts...)
	if err != nil {
		return fmt.Errorf("initializing index: %w", err)
	}

	docs := services.NewDocumentService(store.DocumentStore(), idx,
		services.WithMaxUploadBytes(cfg.Upload.MaxBytes))

	indexService = idx
	documentService = docs
	contentService = services.NewContentService(idx, llm)
	profileService = services.NewProfileService(store.ProfileStore(), docs)

	searchK = cfg.Index.SearchK

	return nil
}

// buildEmbedder selects the embedding backend from configuration.
func buildEmbedder(cfg config.Config) (driven.EmbeddingService, error) {
	switch cfg.Embedding.Provider {
	case config.EmbeddingProviderOpenAI:
		return openai.NewEmbeddingService(openai.Config{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			Timeout:    cfg.EmbeddingTimeout(),
		})
	case config.EmbeddingProviderOllama, "":
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			Timeout:    cfg.EmbeddingTimeout(),
		}), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Embedding.Provider)
	}
}

// buildLLM selects the generation backend. Returns nil when generation is
// disabled; content falls back to static templates.
func buildLLM(cfg config.Config) (driven.LLMService, error) {
	switch cfg.LLM.Provider {
	case config.LLMProviderGemini:
		return gemini.NewLLMService(gemini.Config{
			APIKey:  cfg.LLM.APIKey,
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
			Timeout: cfg.LLMTimeout(),
		})
	case config.LLMProviderOllama:
		return ollamallm.NewLLMService(ollamallm.Config{
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
			Timeout: cfg.LLMTimeout(),
		}), nil
	case config.LLMProviderNone, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLM.Provider)
	}
}

// closeServices releases backend resources.
func closeServices() {
	if embedder != nil {
		_ = embedder.Close()
	}
	if llm != nil {
		_ = llm.Close()
	}
	if metaStore != nil {
		_ = metaStore.Close()
	}
}

// requireUser returns the user ID from the --user flag.
func requireUser() (string, error) {
	if userID == "" {
		return "", fmt.Errorf("missing required --user flag")
	}
	return userID, nil
}
