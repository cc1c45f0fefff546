package simulator

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/draftsim/internal/archetype"
	"github.com/lox/draftsim/internal/bot"
	"github.com/lox/draftsim/internal/card"
	"github.com/lox/draftsim/internal/draft"
	"github.com/lox/draftsim/internal/randutil"
	"github.com/lox/draftsim/internal/statistics"
)

// MinPicks is the smallest pool a bot needs before its share is counted
const MinPicks = 10

// Config holds configuration for running simulations
type Config struct {
	Drafts  int
	Seed    int64
	Workers int
	Options []draft.Option
	Logger  *log.Logger

	// OnDraft, when set, is called after each draft with the number completed
	OnDraft func(done, total int)
}

// Simulator runs complete drafts with every seat piloted by a bot
type Simulator struct {
	config Config
	cards  []card.Card
}

// New creates a new simulator drafting from cards
func New(cards []card.Card, config Config) *Simulator {
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{config: config, cards: cards}
}

// Result is the outcome of a simulation run
type Result struct {
	Stats    *statistics.Statistics
	Baseline float64
	Drafts   int
}

// Run executes the simulation and returns results
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	logger := s.config.Logger.WithPrefix("simulator")
	logger.Info("Starting simulation", "drafts", s.config.Drafts, "workers", s.config.Workers, "seed", s.config.Seed)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	var (
		mu    sync.Mutex
		stats = &statistics.Statistics{}
		done  int
	)

	for i := 0; i < s.config.Drafts; i++ {
		seed := s.config.Seed + int64(i)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			draftStats := s.runDraft(seed)

			mu.Lock()
			defer mu.Unlock()
			stats.Merge(draftStats)
			done++
			if s.config.OnDraft != nil {
				s.config.OnDraft(done, s.config.Drafts)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("simulation aborted after %d drafts: %w", done, err)
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	result := &Result{
		Stats:    stats,
		Baseline: Baseline(s.cards),
		Drafts:   done,
	}
	logger.Info("Simulation complete", "drafts", done, "mean", result.Stats.Mean(), "baseline", result.Baseline)
	return result, nil
}

// runDraft plays one draft to completion, auto-picking for the human seat.
func (s *Simulator) runDraft(seed int64) *statistics.Statistics {
	rng := randutil.New(seed)
	// Per-draft session logs are too chatty at simulation scale.
	session := draft.New(s.cards, rng, log.New(io.Discard), s.config.Options...)
	session.Start()
	for session.Phase() == draft.Active {
		if !session.AutoPick() {
			break
		}
	}

	stats := &statistics.Statistics{}
	bots := append([]*bot.Bot{session.Autopilot()}, session.Bots()...)
	for _, b := range bots {
		if len(b.Pool()) < MinPicks {
			continue
		}
		stats.Add(statistics.BotResult{
			Share:     b.OnArchetypeShare(),
			Seed:      seed,
			Seat:      b.ID(),
			Picks:     len(b.Pool()),
			Archetype: pairID(b.Archetype()),
		})
	}
	return stats
}

// Baseline is the on-archetype share a bot would reach by chance: the mean,
// over every colour pair, of the fraction of front faces that fit the pair.
func Baseline(cards []card.Card) float64 {
	var fronts []card.Card
	for _, c := range cards {
		if !c.IsBackFace {
			fronts = append(fronts, c)
		}
	}
	if len(fronts) == 0 {
		return 0
	}
	total := 0.0
	for _, p := range archetype.Pairs {
		fit := 0
		for _, c := range fronts {
			if bot.FitsPair(c, p.Colors) {
				fit++
			}
		}
		total += float64(fit) / float64(len(fronts))
	}
	return total / float64(len(archetype.Pairs))
}

// pairID renders an archetype in WUBRG order, e.g. "WU".
func pairID(cols []card.Color) string {
	sorted := make([]card.Color, len(cols))
	copy(sorted, cols)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	id := ""
	for _, c := range sorted {
		id += c.String()
	}
	return id
}

// RunSimulation is a convenience function for running a simulation with basic parameters
func RunSimulation(ctx context.Context, cards []card.Card, drafts int, seed int64, workers int, logger *log.Logger) (*Result, error) {
	return New(cards, Config{
		Drafts:  drafts,
		Seed:    seed,
		Workers: workers,
		Logger:  logger,
	}).Run(ctx)
}

// PrintSummary writes a summary of simulation results
func PrintSummary(w io.Writer, result *Result) {
	stats := result.Stats
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== FINAL RESULTS ===\n")
	fmt.Fprintf(w, "Drafts simulated: %d\n", result.Drafts)
	fmt.Fprintf(w, "Bots measured: %d\n", stats.Samples)

	fmt.Fprintf(w, "\n=== ON-ARCHETYPE SHARE ===\n")
	fmt.Fprintf(w, "Mean: %.4f\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.4f\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.4f\n", stats.StdDev())
	fmt.Fprintf(w, "Std Error: %.4f\n", stats.StdError())
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f]\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.3f, P25=%.3f, P75=%.3f, P95=%.3f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))
	fmt.Fprintf(w, "Chance baseline: %.4f (lift %.2fx)\n", result.Baseline, lift(stats.Mean(), result.Baseline))

	fmt.Fprintf(w, "\n=== ARCHETYPES ===\n")
	ids := make([]string, 0, len(stats.Archetypes))
	for id := range stats.Archetypes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if stats.Archetypes[ids[i]] != stats.Archetypes[ids[j]] {
			return stats.Archetypes[ids[i]] > stats.Archetypes[ids[j]]
		}
		return ids[i] < ids[j]
	})
	for _, id := range ids {
		name := id
		if p, ok := archetype.PairByID(id); ok {
			name = fmt.Sprintf("%s (%s)", p.ID, p.Name)
		}
		fmt.Fprintf(w, "%s: %d bots\n", name, stats.Archetypes[id])
	}

	fmt.Fprintf(w, "\n=== SEAT ANALYSIS ===\n")
	for _, seat := range stats.SortedSeats() {
		fmt.Fprintf(w, "Seat %d: %d bots, %.3f share\n", seat, stats.Seats[seat].Samples, stats.SeatMean(seat))
	}
}

func lift(mean, baseline float64) float64 {
	if baseline == 0 {
		return 0
	}
	return mean / baseline
}
