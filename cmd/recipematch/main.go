package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"recipematch/internal/api"
	"recipematch/internal/config"
	"recipematch/internal/logging"
	"recipematch/internal/service"
	"recipematch/internal/source/jsonfile"
	"recipematch/internal/source/sqlite"
	"recipematch/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var (
		cfgPath string
		serve   bool
		topK    int
		dbPath  string
	)
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ./config.yaml or ~/.config/recipematch/config.yaml if not provided)")
	flag.BoolVar(&serve, "serve", false, "Serve the HTTP API instead of the interactive prompt")
	flag.IntVar(&topK, "k", 0, "Number of recipes to suggest (overrides ranker.top_k)")
	flag.StringVar(&dbPath, "import-sqlite", "", "Copy the JSON corpus files into this SQLite database and exit")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Usage: recipematch [--config=config.yaml] [--serve] [--k=N] [--import-sqlite=recipes.db] [recipes.json ...]")
		flag.PrintDefaults()
	}
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if files := flag.Args(); len(files) > 0 {
		cfg.Corpus.Files = files
	}
	if topK > 0 {
		cfg.Ranker.TopK = topK
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to configure logging: %v", err)
	}
	entry := logger.WithField("app", "recipematch")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if dbPath != "" {
		table := sqlite.DefaultTable
		if cfg.Corpus.SQLite != nil && cfg.Corpus.SQLite.Table != "" {
			table = cfg.Corpus.SQLite.Table
		}
		records, err := jsonfile.New(cfg.Corpus.Files...).Load(ctx)
		if err != nil {
			logger.Fatalf("import failed: %v", err)
		}
		if err := sqlite.Import(ctx, dbPath, table, records); err != nil {
			logger.Fatalf("import failed: %v", err)
		}
		entry.WithFields(logrus.Fields{"records": len(records), "dsn": dbPath, "table": table}).Info("Imported recipes")
		return
	}

	svc := service.NewFromConfig(cfg, entry)
	summary, err := svc.LoadCorpus(ctx, service.SourcesFromConfig(cfg.Corpus)...)
	if err != nil {
		logger.Fatalf("load failed: %v", err)
	}
	logger.WithField("summary", summary.String()).Info("Corpus ready")

	if serve {
		if err := api.NewServer(svc, entry).Start(ctx, cfg.Server.Addr); err != nil {
			logger.Fatalf("server failed: %v", err)
		}
		return
	}

	// Keep the prompt clean; only problems reach the terminal.
	if logger.GetLevel() > logrus.WarnLevel {
		logger.SetLevel(logrus.WarnLevel)
	}
	m := tui.New(svc, summary.String())
	if _, err := tea.NewProgram(m).Run(); err != nil {
		logger.Fatal(err)
	}
}
