package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/hermes"
	hermeshttp "github.com/fwojciec/hermes/http"
	"github.com/fwojciec/hermes/index"
	"github.com/fwojciec/hermes/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	DB       *sqlite.DB
	Settings hermes.SettingsService
	Files    hermes.FileService
	Chunks   hermes.ChunkService
	Search   hermes.SearchService
	Asker    hermes.Asker
	Indexer  index.Runner

	// Remote is set when commands talk to a running server instead of the
	// local database.
	Remote *hermeshttp.Client
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB       string `name:"db" env:"HERMES_DB" default:"${default_db}" help:"SQLite database path"`
	Embedder string `env:"HERMES_EMBEDDER" enum:"openai,gemini" default:"openai" help:"Embedding provider (openai, gemini)"`
	Server   string `env:"HERMES_SERVER" help:"Address of a running hermes server for dir, search, status and ask"`
	Debug    bool   `short:"d" help:"Log service calls to stderr"`

	Serve  ServeCmd  `cmd:"" help:"Serve the web UI and API and keep the index up to date"`
	Index  IndexCmd  `cmd:"" help:"Index the PDF directory once"`
	Search SearchCmd `cmd:"" help:"Search indexed PDFs"`
	Dir    DirCmd    `cmd:"" help:"Show or set the PDF directory"`
	Status StatusCmd `cmd:"" help:"Show index status"`
	Ask    AskCmd    `cmd:"" help:"Ask a question about the indexed PDFs"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr        string        `default:"127.0.0.1:8000" env:"HERMES_ADDR" help:"Listen address"`
	Interval    time.Duration `default:"1m" help:"Time between directory scans"`
	AllowOrigin []string      `name:"allow-origin" env:"HERMES_ALLOW_ORIGINS" sep:"," help:"Extra origin allowed to call the API, e.g. http://localhost:3000"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	Concurrency int `short:"c" default:"4" help:"Files processed in parallel"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query []string `arg:"" help:"Search text"`
	Limit int      `short:"n" default:"5" help:"Maximum number of results"`
}

// DirCmd is the "dir" subcommand.
type DirCmd struct {
	Path string `arg:"" optional:"" help:"New PDF directory"`
}

// StatusCmd is the "status" subcommand.
type StatusCmd struct{}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question []string `arg:"" help:"Question about the PDFs"`
}
