package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"

	"github.com/stefanautomateed/sportsdata/internal/app"
	"github.com/stefanautomateed/sportsdata/internal/config"
	"github.com/stefanautomateed/sportsdata/internal/domain/sport"
	"github.com/stefanautomateed/sportsdata/internal/observability"
	"github.com/stefanautomateed/sportsdata/internal/platform/logging"
	"github.com/stefanautomateed/sportsdata/internal/usecase"
)

func main() {
	var (
		sportName = flag.String("sport", "soccer", "sport to query (soccer, basketball, hockey, american-football)")
		homeTeam  = flag.String("home", "", "home team name or id")
		awayTeam  = flag.String("away", "", "away team name or id")
		verified  = flag.Bool("verified", false, "run the verification overlay instead of the raw enriched fetch")
		withOdds  = flag.Bool("odds", false, "include bookmaker odds")
		timeout   = flag.Duration("timeout", 60*time.Second, "overall request timeout")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer logger.Sync() //nolint:errcheck

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}
	stopProfiling, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("wire app", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	exitCode := run(ctx, a, *sportName, *homeTeam, *awayTeam, *verified, *withOdds)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("shutdown tracing", "error", err)
	}
	if err := stopProfiling(); err != nil {
		logger.Error("stop profiling", "error", err)
	}

	os.Exit(exitCode)
}

func run(ctx context.Context, a *app.App, sportName, homeTeam, awayTeam string, verified, withOdds bool) int {
	if homeTeam == "" || awayTeam == "" {
		fmt.Fprintln(os.Stderr, "both -home and -away are required")
		fmt.Fprintln(os.Stderr, "available sports:", a.DataLayer.AvailableSports())
		return 2
	}

	sp, err := sport.Parse(sportName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	opts := usecase.DefaultEnrichedOptions()
	opts.IncludeOdds = withOdds
	query := usecase.EnrichedQuery{
		Sport:    sp,
		HomeTeam: homeTeam,
		AwayTeam: awayTeam,
		Options:  &opts,
	}

	var payload any
	var ok bool
	if verified {
		env := a.Verification.GetVerifiedMatchData(ctx, query)
		payload, ok = env, env.Success
	} else {
		env := a.DataLayer.GetEnrichedMatchData(ctx, query)
		payload, ok = env, env.Success
	}

	out, err := sonic.ConfigDefault.MarshalIndent(payload, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "encode response:", err)
		return 1
	}
	fmt.Println(string(out))

	if !ok {
		return 1
	}
	return 0
}
