package precedent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"godilemma/domain/dilemma"
	"godilemma/domain/verdict"
	"godilemma/internal/config"
	"godilemma/internal/errors"
	"godilemma/ports"
)

// Precedent sources recorded on casuistry resolutions.
const (
	SourceLookup = "lookup"
	SourceStatic = "static"
)

// Future is a precedent lookup in flight.
type Future struct {
	done   chan struct{}
	cases  []verdict.PrecedentCase
	source string
	err    error
}

// Done is closed once the result is available.
func (f *Future) Done() <-chan struct{} { return f.done }

// Wait blocks until the lookup has finished or fallen back. It never returns
// an empty source.
func (f *Future) Wait() ([]verdict.PrecedentCase, string) {
	<-f.done
	return f.cases, f.source
}

// Err reports why the lookup fell back to the static set, if it did.
func (f *Future) Err() error {
	<-f.done
	return f.err
}

// Guard bounds calls to a PrecedentFinder with a deadline and substitutes the
// static set when the finder fails, times out or finds nothing.
type Guard struct {
	finder        ports.PrecedentFinder
	fallback      []verdict.PrecedentCase
	timeout       time.Duration
	minSimilarity float64
	topK          int
	budget        int
	logger        *slog.Logger
}

// NewGuard wraps finder using the precedent configuration.
func NewGuard(finder ports.PrecedentFinder, cfg config.PrecedentConfig, logger *slog.Logger) *Guard {
	return &Guard{
		finder:        finder,
		fallback:      StaticCases(),
		timeout:       cfg.Timeout,
		minSimilarity: cfg.MinSimilarity,
		topK:          cfg.TopK,
		budget:        cfg.ScanBudget,
		logger:        logger,
	}
}

type lookupResult struct {
	cases []verdict.PrecedentCase
	err   error
}

// Lookup starts a bounded lookup for d and returns immediately.
func (g *Guard) Lookup(ctx context.Context, d *dilemma.Dilemma) *Future {
	f := &Future{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		lctx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()

		// Buffered so a finder that ignores cancellation does not leak a
		// blocked sender.
		results := make(chan lookupResult, 1)
		go func() {
			defer func() {
				if r := recover(); r != nil {
					results <- lookupResult{err: fmt.Errorf("precedent finder panicked: %v", r)}
				}
			}()
			cases, err := g.finder.FindSimilar(lctx, d, g.minSimilarity)
			results <- lookupResult{cases: cases, err: err}
		}()

		select {
		case r := <-results:
			switch {
			case r.err != nil:
				g.fallBack(f, d, errors.PrecedentUnavailable(r.err))
			case len(r.cases) == 0:
				g.fallBack(f, d, errors.PrecedentUnavailable(fmt.Errorf("no precedent above %.2f", g.minSimilarity)))
			default:
				cases := append([]verdict.PrecedentCase(nil), r.cases...)
				sortCases(cases)
				if g.topK > 0 && len(cases) > g.topK {
					cases = cases[:g.topK]
				}
				f.cases, f.source = cases, SourceLookup
			}
		case <-lctx.Done():
			g.fallBack(f, d, errors.PrecedentUnavailable(lctx.Err()))
		}
	}()

	return f
}

func (g *Guard) fallBack(f *Future, d *dilemma.Dilemma, cause error) {
	profile := NewProfile(d)
	cases := Rank(profile, g.fallback, g.minSimilarity, g.topK, g.budget)
	if len(cases) == 0 {
		// Keep the single closest static case so casuistry always has one.
		cases = Rank(profile, g.fallback, 0, 1, g.budget)
	}
	f.cases, f.source, f.err = cases, SourceStatic, cause
	g.logger.Warn("precedent lookup fell back to static set",
		"dilemma", d.ID,
		"cases", len(cases),
		"error", cause)
}
