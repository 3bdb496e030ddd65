package experiment

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/san-kum/motion/internal/config"
	"github.com/san-kum/motion/internal/dynamo"
	"github.com/san-kum/motion/internal/scheduler"
)

// Run plays cfg headlessly at its frame interval until every segment has
// finished or cfg.Duration runs out.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dynamo.Result, error) {
	p, err := NewPlayer(cfg, nil, logger)
	if err != nil {
		return nil, err
	}

	frames := int(math.Ceil(cfg.Duration/cfg.Frame - 1e-9))
	for i := 0; i < frames && !p.Done(); i++ {
		select {
		case <-ctx.Done():
			return p.Result(), ctx.Err()
		default:
		}
		if err := p.Step(cfg.Frame); err != nil {
			return p.Result(), err
		}
	}
	return p.Result(), nil
}

// Play runs cfg against the wall clock, one frame every cfg.Frame seconds,
// until it comes to rest or ctx is done.
func Play(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dynamo.Result, error) {
	ticker := scheduler.NewTicker(time.Duration(cfg.Frame * float64(time.Second)))
	p, err := NewPlayer(cfg, ticker, logger)
	if err != nil {
		return nil, err
	}
	err = ticker.Run(ctx, p.Tick)
	return p.Result(), err
}

type Comparison struct {
	Integrator string
	Result     *dynamo.Result
}

// Compare runs cfg once per integrator.
func Compare(ctx context.Context, cfg *config.Config, names []string, logger *slog.Logger) ([]Comparison, error) {
	out := make([]Comparison, 0, len(names))
	for _, name := range names {
		c := cfg.Clone()
		c.Integrator = name
		res, err := Run(ctx, c, logger)
		if err != nil {
			return out, err
		}
		out = append(out, Comparison{Integrator: name, Result: res})
	}
	return out, nil
}
