package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"scrollscene/internal/app"
	"scrollscene/internal/asset"
	"scrollscene/internal/config"
	"scrollscene/internal/download"
	"scrollscene/internal/env"
	"scrollscene/internal/fonts"
	"scrollscene/internal/graphics"
	"scrollscene/internal/logger"
)

// recentLines is how many log lines the status overlay shows.
const recentLines = 3

func main() {
	var (
		configPath string
		modelSrc   string
		envPath    string
		debugMode  bool
		prefetch   bool
	)
	flag.StringVar(&configPath, "config", "", "Scene config file (default config/scene.yaml).")
	flag.StringVar(&modelSrc, "model", "", "Model to load at startup: path, http(s) URL or .zip bundle.")
	flag.StringVar(&envPath, "env", env.DefaultPath, "Dotenv file read before the config.")
	flag.BoolVar(&debugMode, "debug", false, "Debug logging and all overlays.")
	flag.BoolVar(&prefetch, "prefetch", false, "Fetch the model and style font into the cache, then exit without opening a window.")
	flag.Parse()

	if err := run(configPath, modelSrc, envPath, debugMode, prefetch); err != nil {
		fmt.Fprintln(os.Stderr, "scrollscene:", err)
		os.Exit(1)
	}
}

func run(configPath, modelSrc, envPath string, debugMode, prefetch bool) error {
	if err := env.Load(envPath); err != nil {
		return err
	}
	if configPath == "" {
		configPath = config.DefaultPath
		if v, ok := os.LookupEnv(config.EnvConfig); ok && v != "" {
			configPath = v
		}
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := config.ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return err
	}
	if modelSrc != "" {
		cfg.Model.Source = modelSrc
	}
	if debugMode {
		cfg.Log.Level = "debug"
		cfg.Debug = config.Debug{ShowFPS: true, ShowMemAlloc: true, ShowState: true}
	}

	lg, err := logger.New(logger.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		return err
	}
	defer lg.Close()
	session := uuid.New().String()
	component := func(name string) *logrus.Entry {
		return lg.Component(name).WithField("session", session)
	}
	component("main").WithField("config", configPath).Info("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fetcher := &asset.FileFetcher{
		CacheDir: cfg.Model.CacheDir,
		Client:   &download.Client{HTTP: &http.Client{Timeout: 5 * time.Minute}},
	}
	if prefetch {
		plog := component("prefetch")
		if cfg.Style.Font != "" {
			remote := &fonts.Remote{HTTP: fetcher.Client.HTTP}
			path, err := remote.Fetch(ctx, cfg.Style.Font, graphics.FontCacheDir(cfg))
			if err != nil {
				plog.WithError(err).Warn("font not fetched")
			} else {
				plog.WithField("path", path).Info("font ready")
			}
		}
		return fetchOnly(ctx, fetcher, cfg.Model.Source, plog)
	}

	win := graphics.Open(cfg.Window)
	defer win.Close()
	backend := graphics.NewBackend(cfg, component("graphics"))
	defer backend.Unload()

	width, height := win.Size()
	loader := asset.NewLoader(fetcher, component("asset"))
	a, err := app.New(cfg, backend, loader, component("app"), time.Now(), width, height)
	if err != nil {
		return err
	}
	defer a.Close()
	a.ShowRecent(lg.Recent.Lines, recentLines)
	a.Start(ctx)

	win.Run(func(in graphics.Input) {
		a.Update(app.Frame{
			Now:        time.Now(),
			WheelDelta: in.DeltaY(cfg.Scroll.WheelScale),
			Width:      in.Width,
			Height:     in.Height,
		})
	}, func() {
		a.Draw(time.Now())
	})
	return nil
}

// fetchOnly resolves src to a local model file, logging progress in 10% steps.
func fetchOnly(ctx context.Context, f asset.Fetcher, src string, log logrus.FieldLogger) error {
	if src == "" {
		return fmt.Errorf("prefetch: no model configured")
	}
	last := -1
	path, err := f.Fetch(ctx, src, func(frac float64) {
		if pct := int(frac*10) * 10; pct != last {
			last = pct
			log.Infof("%d%% fetched", pct)
		}
	})
	if err != nil {
		return err
	}
	log.WithField("path", path).Info("model ready")
	return nil
}
