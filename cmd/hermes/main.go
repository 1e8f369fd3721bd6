package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/hermes"
	"github.com/fwojciec/hermes/fs"
	"github.com/fwojciec/hermes/gemini"
	hermeshttp "github.com/fwojciec/hermes/http"
	"github.com/fwojciec/hermes/index"
	"github.com/fwojciec/hermes/openai"
	"github.com/fwojciec/hermes/pdf"
	"github.com/fwojciec/hermes/search"
	hermesslog "github.com/fwojciec/hermes/slog"
	"github.com/fwojciec/hermes/sqlite"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing .env is fine; real environment variables take precedence.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// tokenizerModel is the model whose local tokenizer sizes chunks for the
// gemini embedder.
const tokenizerModel = "gemini-2.0-flash"

// Main represents the program.
type Main struct {
	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Embedder and TokenCounter override the configured providers.
	Embedder     hermes.Embedder
	TokenCounter hermes.TokenCounter
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("hermes"),
		kong.Description("Semantic search over a directory of PDF files."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		kong.Vars{"default_db": defaultDBPath()},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'hermes --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelInfo
	if cli.Debug {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Talk to a running server instead of the local database.
	if cli.Server != "" && cmd != "serve" && cmd != "index" {
		client := hermeshttp.NewClient(cli.Server)
		deps.Remote = client
		deps.Settings = client
		deps.Search = client
		deps.Asker = client
		return kongCtx.Run(deps)
	}

	if err := os.MkdirAll(filepath.Dir(cli.DB), 0o755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	m.DB = sqlite.NewDB(cli.DB)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set HERMES_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
	}
	defer m.Close()

	settings := sqlite.NewSettingsService(m.DB)
	deps.DB = m.DB
	deps.Settings = settings
	deps.Files = sqlite.NewFileService(m.DB)
	deps.Chunks = sqlite.NewChunkService(m.DB)

	switch cmd {
	case "serve", "index", "search", "ask":
	default:
		return kongCtx.Run(deps)
	}

	embedder, queryEmbedder := m.Embedder, m.Embedder
	if embedder == nil {
		embedder, queryEmbedder, err = newEmbedder(ctx, cli.Embedder, stderr)
		if err != nil {
			return err
		}
	}
	if cli.Debug {
		embedder = hermesslog.NewLoggingEmbedder(embedder, deps.Logger)
		queryEmbedder = hermesslog.NewLoggingEmbedder(queryEmbedder, deps.Logger)
	}

	var searcher hermes.SearchService = search.NewSearcher(queryEmbedder, deps.Chunks)
	if cli.Debug || cmd == "serve" {
		searcher = hermesslog.NewLoggingSearchService(searcher, deps.Logger)
	}
	deps.Search = searcher

	if cmd == "serve" || cmd == "index" {
		counter := m.TokenCounter
		if counter == nil {
			counter = newTokenCounter(cli.Embedder, deps.Logger)
		}
		var extractor hermes.Extractor = pdf.NewExtractor()
		if cli.Debug {
			extractor = hermesslog.NewLoggingExtractor(extractor, deps.Logger)
		}
		deps.Indexer = &index.Indexer{
			Settings:    settings,
			Models:      settings,
			Files:       deps.Files,
			Chunks:      deps.Chunks,
			Finder:      fs.NewFinder(),
			Hasher:      fs.NewHasher(),
			Extractor:   extractor,
			Chunker:     index.NewChunker(counter, embedder.MaxTokens()),
			Embedder:    embedder,
			Concurrency: cli.Index.Concurrency,
			Logger:      deps.Logger,
		}
	}

	if cmd == "serve" || cmd == "ask" {
		asker, err := newAsker(ctx, searcher)
		switch {
		case err == nil:
			deps.Asker = asker
		case cmd == "ask":
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return err
		default:
			deps.Logger.Info("question answering disabled", "reason", err)
		}
	}

	return kongCtx.Run(deps)
}

// newEmbedder creates the document and query embedders for the chosen
// provider.
func newEmbedder(ctx context.Context, provider string, stderr io.Writer) (document, query hermes.Embedder, err error) {
	switch provider {
	case "gemini":
		client, err := newGeminiClient(ctx)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Set GEMINI_API_KEY or use --embedder openai")
			return nil, nil, err
		}
		return gemini.NewEmbedder(client), gemini.NewQueryEmbedder(client), nil
	default:
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "OPENAI_API_KEY environment variable not set. Get an API key at https://platform.openai.com/api-keys")
			return nil, nil, fmt.Errorf("OPENAI_API_KEY not set")
		}
		e := openai.NewEmbedder(apiKey)
		return e, e, nil
	}
}

func newGeminiClient(ctx context.Context) (*genai.Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}
	return client, nil
}

func newAsker(ctx context.Context, searcher hermes.SearchService) (hermes.Asker, error) {
	client, err := newGeminiClient(ctx)
	if err != nil {
		return nil, err
	}
	return gemini.NewAsker(client, searcher), nil
}

// newTokenCounter loads the tokenizer of the chosen provider and falls back
// to an estimate when it cannot be loaded.
func newTokenCounter(provider string, logger *slog.Logger) hermes.TokenCounter {
	var (
		tc  hermes.TokenCounter
		err error
	)
	switch provider {
	case "gemini":
		tc, err = gemini.NewTokenCounter(tokenizerModel)
	default:
		tc, err = openai.NewTokenCounter()
	}
	if err != nil {
		logger.Warn("tokenizer unavailable, estimating token counts", "provider", provider, "err", err)
		return index.ApproxCounter{}
	}
	return tc
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "hermes.db"
	}
	return filepath.Join(home, ".hermes", "hermes.db")
}
