package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"mecanica_xpto_os/internal/bootstrap"
	"mecanica_xpto_os/internal/config"
	"mecanica_xpto_os/internal/infrastructure/logger"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	app := &cli.App{
		Name:  "os-jobs",
		Usage: "runs the periodic service order jobs once",
		Commands: []*cli.Command{
			jobCommand(bootstrap.JobExpireBudgets, "expires budgets awaiting approval past the 3 day window"),
			jobCommand(bootstrap.JobStockAlerts, "emails the daily low stock alerts"),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func jobCommand(name, usage string) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: usage,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "no-lock", Usage: "run without taking the job lock"},
		},
		Action: func(cCtx *cli.Context) error {
			return runJob(cCtx.Context, name, cCtx.Bool("no-lock"))
		},
	}
}

func runJob(parent context.Context, name string, noLock bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	zl, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := bootstrap.New(ctx, cfg, zl)
	if err != nil {
		return err
	}
	defer c.Close()

	// Status notifications queued by the job are delivered before exit.
	defer c.StartOutbox(ctx)()

	job := c.Jobs[name]
	if noLock {
		return job.Run(ctx)
	}
	var runErr error
	locked := job
	locked.Run = func(ctx context.Context) error {
		runErr = job.Run(ctx)
		return runErr
	}
	if !c.Scheduler.RunNow(ctx, locked) {
		return fmt.Errorf("job %s did not run: lock held or unavailable", name)
	}
	zl.Info("[jobs] done", zap.String("job", name), zap.Error(runErr))
	return runErr
}
