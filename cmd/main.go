package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Project-Magma-Monorepo/sui-indexer-checkpointTx/config"
	"github.com/Project-Magma-Monorepo/sui-indexer-checkpointTx/connector/store"
	"github.com/Project-Magma-Monorepo/sui-indexer-checkpointTx/logger"
)

var (
	configFile     string
	databaseURL    string
	packageAddress string
	checkpoints    string
	metricsAddr    string
	resume         bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "path of the YAML config file")
	flag.StringVar(&databaseURL, "database-url", "", "database URL, overrides database.url")
	flag.StringVar(&packageAddress, "package-address", "", "package to index, overrides indexer.package_address")
	flag.StringVar(&checkpoints, "checkpoints", "", "newline delimited JSON checkpoint file, overrides source.file")
	flag.StringVar(&metricsAddr, "metrics-addr", "", "address of the metrics endpoint, e.g. :9184")
	flag.BoolVar(&resume, "resume", true, "skip checkpoints already present in the database")
}

func main() {
	flag.Parse()

	cfg, err := config.Load(configFile)
	if err != nil {
		log.Fatalf("load config failed, %s", err)
	}
	if databaseURL != "" {
		cfg.Database.URL = databaseURL
	}
	if packageAddress != "" {
		cfg.Indexer.PackageAddress = packageAddress
	}
	if checkpoints != "" {
		cfg.Source.File = checkpoints
	}
	if metricsAddr != "" {
		cfg.Metrics.Addr = metricsAddr
	}
	if cfg.Source.File == "" {
		log.Fatal("Please specify the checkpoint file with -checkpoints or source.file.")
	}

	if err := logger.Configure(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.File); err != nil {
		log.Fatalf("configure logging failed, %s", err)
	}
	var logger = logger.GetLogger()

	indexer, err := cfg.NewIndexer()
	if err != nil {
		logger.Fatalf("invalid configuration, %s", err)
	}
	p, err := indexer.Build()
	if err != nil {
		logger.Fatalf("build pipeline failed, %s", err)
	}

	db, err := store.Open(cfg.Database.URL, store.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetimeSeconds) * time.Second,
	})
	if err != nil {
		logger.Fatalf("open database failed, %s", err)
	}
	if *cfg.Database.Migrate {
		if err := store.Migrate(db); err != nil {
			logger.Fatalf("migrate failed, %s", err)
		}
	}

	var after *uint64
	if resume {
		after, err = store.GetMaxCheckpointFromDB(db)
		if err != nil {
			logger.Fatalf("read last checkpoint failed, %s", err)
		}
		if after != nil {
			logger.Infof("resuming after checkpoint %d", *after)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.Metrics.Addr != "" {
		srv := &http.Server{Addr: cfg.Metrics.Addr, Handler: metricsMux()}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Errorf("metrics server stopped, %s", err)
			}
		}()
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	logger.Info("start index")

	file, err := os.Open(cfg.Source.File)
	if err != nil {
		logger.Fatalf("open checkpoint file failed, %s", err)
	}
	defer file.Close()

	r := &runner{
		pipeline:  p,
		db:        db,
		batchSize: cfg.Indexer.BatchSize,
		workers:   cfg.Indexer.Workers,
	}
	stats, err := r.run(ctx, file, after)
	if err != nil {
		logger.Errorf("index failed, %s", err)
		os.Exit(1)
	}

	logger.Infof("successed, checkpoints %d, record sets %d, inserted %d",
		stats.checkpoints, stats.recordSets, stats.inserted)
}

func metricsMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}
