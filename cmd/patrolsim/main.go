// Command patrolsim runs a guard scene headless and prints one JSON line per
// tick with the guard's status.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/milk9111/patrolai/config"
	"github.com/milk9111/patrolai/guard"
	"github.com/milk9111/patrolai/logging"
	"github.com/milk9111/patrolai/scene"
)

type transitionLine struct {
	From   string       `json:"from"`
	To     string       `json:"to"`
	Reason guard.Reason `json:"reason"`
	At     float64      `json:"at"`
}

type line struct {
	scene.Snapshot
	Transitions []transitionLine `json:"transitions,omitempty"`
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "patrolsim:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := pflag.NewFlagSet("patrolsim", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, _ := fs.GetString("config")

	cfg, err := config.Load(path, fs)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	var pending []transitionLine
	hook := func(t guard.Transition) {
		pending = append(pending, transitionLine{
			From:   t.From.String(),
			To:     t.To.String(),
			Reason: t.Reason,
			At:     t.At.Seconds(),
		})
	}
	s, err := scene.Load(cfg.Sim.Scene, scene.WithLogger(logger), scene.WithTransitionHook(hook))
	if err != nil {
		return err
	}
	logger.Info("scene loaded",
		zap.String("scene", s.Name),
		zap.Int("tps", cfg.Sim.TPS),
		zap.Int("ticks", cfg.Sim.Ticks),
	)

	dt := time.Second / time.Duration(cfg.Sim.TPS)
	enc := json.NewEncoder(out)
	for i := 0; i < cfg.Sim.Ticks; i++ {
		pending = pending[:0]
		s.Update(dt)
		if cfg.Sim.TransitionsOnly && len(pending) == 0 {
			continue
		}
		if err := enc.Encode(line{Snapshot: s.Snapshot(), Transitions: pending}); err != nil {
			return fmt.Errorf("write tick %d: %w", i, err)
		}
	}
	logger.Info("simulation finished", zap.Int("transitions", s.Guard.Status().Transitions))
	return nil
}
