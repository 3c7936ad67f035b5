package main

import (
	"context"
	"encoding/json"
	"flag"
	"math/rand/v2"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/huynhanx03/go-bounded/pkg/logger"
	"github.com/huynhanx03/go-bounded/pkg/settings"
)

// SystemInfo holds host information for the report.
type SystemInfo struct {
	NumCPU      int     `json:"num_cpu"`
	CPUModel    string  `json:"cpu_model,omitempty"`
	CPUSpeedMHz float64 `json:"cpu_speed_mhz,omitempty"`
	GOARCH      string  `json:"go_arch"`
	TotalMemory uint64  `json:"total_memory_bytes,omitempty"`
}

// RoundResult aggregates one round across all workers.
type RoundResult struct {
	Round   int            `json:"round"`
	Elapsed string         `json:"elapsed"`
	Workers []WorkerResult `json:"workers"`
}

// Report is the full session written with -json.
type Report struct {
	SessionTime string         `json:"session_time"`
	SystemInfo  SystemInfo     `json:"system_info"`
	Config      settings.Bench `json:"config"`
	ArenaBytes  int            `json:"arena_bytes"`
	Rounds      []RoundResult  `json:"rounds"`
}

func main() {
	configPath := flag.String("config", "", "Path to YAML config (defaults are used when empty)")
	progressFlag := flag.Bool("progress", false, "Display a progress bar")
	jsonOut := flag.String("json", "", "Write the report as JSON to this file")
	flag.Parse()

	cfg, err := settings.Load(*configPath)
	if err != nil {
		logger.Must(settings.Default().Logger).Fatal("load config", zap.Error(err))
	}
	log := logger.Must(cfg.Logger)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := run(ctx, cfg.Bench, log, *progressFlag)
	if err != nil {
		log.Fatal("bench failed", zap.Error(err))
	}

	if *jsonOut != "" {
		raw, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			log.Fatal("encode report", zap.Error(err))
		}
		if err = os.WriteFile(*jsonOut, raw, 0o644); err != nil {
			log.Fatal("write report", zap.Error(err), zap.String("path", *jsonOut))
		}
		log.Info("report written", zap.String("path", *jsonOut))
	}
}

func run(ctx context.Context, cfg settings.Bench, log *zap.Logger, progress bool) (*Report, error) {
	qSize, hSize, err := layout(cfg)
	if err != nil {
		return nil, err
	}
	// One arena for every structure in the run; each worker owns a disjoint slice of it.
	arenaBytes := cfg.Workers * (qSize + hSize)
	backing := make([]byte, arenaBytes)

	report := &Report{
		SessionTime: time.Now().Format(time.RFC3339),
		SystemInfo:  systemInfo(),
		Config:      cfg,
		ArenaBytes:  arenaBytes,
	}
	log.Info("arena ready",
		zap.Int("workers", cfg.Workers),
		zap.Int("queue_bytes", qSize),
		zap.Int("heap_bytes", hSize),
		zap.Int("arena_bytes", arenaBytes))

	var bar *progressbar.ProgressBar
	if progress {
		bar = progressbar.Default(int64(cfg.Rounds*cfg.Workers), "workers")
	}

	for round := 0; round < cfg.Rounds; round++ {
		res, err := runRound(ctx, cfg, backing, round, bar)
		if err != nil {
			return nil, err
		}
		report.Rounds = append(report.Rounds, *res)
		log.Info("round done", zap.Int("round", round), zap.String("elapsed", res.Elapsed))
	}
	return report, nil
}

func runRound(ctx context.Context, cfg settings.Bench, backing []byte, round int, bar *progressbar.ProgressBar) (*RoundResult, error) {
	regions, err := carve(cfg, backing)
	if err != nil {
		return nil, err
	}

	results := make([]WorkerResult, cfg.Workers)
	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for w := range regions {
		g.Go(func() error {
			rng := rand.New(rand.NewPCG(uint64(cfg.Seed), uint64(round*cfg.Workers+w)))
			res := &results[w]
			res.Worker = w
			if err := runQueue(gctx, cfg, rng, regions[w][0], res); err != nil {
				return err
			}
			if err := runHeap(gctx, cfg, rng, regions[w][1], res); err != nil {
				return err
			}
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	return &RoundResult{
		Round:   round,
		Elapsed: time.Since(start).String(),
		Workers: results,
	}, nil
}

func systemInfo() SystemInfo {
	info := SystemInfo{
		NumCPU: runtime.NumCPU(),
		GOARCH: runtime.GOARCH,
	}
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		info.CPUModel = infos[0].ModelName
		info.CPUSpeedMHz = infos[0].Mhz
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info.TotalMemory = vm.Total
	}
	return info
}
