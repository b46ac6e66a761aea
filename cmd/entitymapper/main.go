package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-openapi/strfmt"

	"github.com/suparena/entitymapper"
	"github.com/suparena/entitymapper/config"
	"github.com/suparena/entitymapper/registry"
)

var (
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
	cleanupFlag = flag.Bool("cleanup", true, "Delete the smoke check entity afterwards")
)

// smokeCheck exercises every field strategy against the configured backend.
type smokeCheck struct {
	ID        *int64            `entity:"id"`
	Name      string            `entity:"name"`
	Attempt   int32             `entity:"attempt"`
	Ratio     float64           `entity:"ratio"`
	OK        bool              `entity:"ok"`
	CheckedAt strfmt.DateTime   `entity:"checkedAt"`
	Tags      []string          `entity:"tags"`
	Labels    map[string]string `entity:"labels,mapjson"`
	Host      *smokeHost        `entity:"host,objjson"`
}

type smokeHost struct {
	Name string `json:"name"`
	PID  int    `json:"pid"`
}

func (*smokeHost) JSONEligible() {}

func main() {
	// Parse flags early to catch version flag
	flag.Parse()

	// Handle version flag
	if *versionFlag || *vFlag {
		info := entitymapper.GetVersionInfo()
		fmt.Printf("entitymapper version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	ctx := logging.NewContextWithLogger(context.Background(), logger, "version", entitymapper.Version)

	if err := run(ctx, cfg); err != nil {
		logger.Error("smoke check failed", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logging.GetFromContext(ctx)
	registry.Register[smokeCheck]("EntityMapperSmokeCheck")

	storage, err := entitymapper.Open(ctx, cfg)
	if err != nil {
		return err
	}
	checks := entitymapper.GetDataStore[smokeCheck](storage)

	host, _ := os.Hostname()
	in := &smokeCheck{
		Name:      "smoke",
		Attempt:   1,
		Ratio:     0.5,
		OK:        true,
		CheckedAt: strfmt.DateTime(time.Now()),
		Tags:      []string{"smoke", cfg.Backend},
		Labels:    map[string]string{"version": entitymapper.Version},
		Host:      &smokeHost{Name: host, PID: os.Getpid()},
	}

	id, err := checks.Add(ctx, in)
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}

	out, err := checks.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find %d: %w", id, err)
	}
	if out.Name != in.Name || out.Attempt != in.Attempt || out.Host == nil || out.Host.PID != in.Host.PID ||
		out.Labels["version"] != entitymapper.Version || len(out.Tags) != len(in.Tags) {
		return fmt.Errorf("round trip mismatch: wrote %+v, read %+v", in, out)
	}
	log.Info("round trip succeeded", slog.Int64("id", id), slog.String("backend", cfg.Backend))

	if *cleanupFlag {
		if err := checks.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete %d: %w", id, err)
		}
	}
	return nil
}
