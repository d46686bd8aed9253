package sim

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"
)

var lang = language.English

// histogramWidth is the longest bar drawn in the pass histogram.
const histogramWidth = 40

// Bucket counts moves whose cascade ran a given number of passes.
type Bucket struct {
	Passes int
	Count  int
}

// Report aggregates a simulation run.
type Report struct {
	Columns   int
	Rows      int
	Kinds     int
	Strategy  Strategy
	Boards    int
	Moves     int // Matching swaps played
	Workers   int
	Deadlocks int // Boards replaced because no valid move remained
	Capped    int // Moves stopped by the pass cap
	Elapsed   time.Duration

	MeanPasses float64
	StdPasses  float64
	P50Passes  float64
	P90Passes  float64
	P99Passes  float64
	MaxPasses  int

	MeanCleared float64
	StdCleared  float64
	MaxCleared  int

	Histogram []Bucket // Sorted by Passes
}

// DeadlockRate is the number of deadlocks per move played.
func (r *Report) DeadlockRate() float64 {
	if r.Moves == 0 {
		return 0
	}
	return float64(r.Deadlocks) / float64(r.Moves)
}

// ChainRate is the share of moves that cascaded beyond the first pass.
func (r *Report) ChainRate() float64 {
	if r.Moves == 0 {
		return 0
	}
	chained := 0
	for _, b := range r.Histogram {
		if b.Passes > 1 {
			chained += b.Count
		}
	}
	return float64(chained) / float64(r.Moves)
}

// newReport merges per-board results in board order.
func newReport(cfg Config, results []boardResult) *Report {
	r := &Report{
		Columns:  cfg.Engine.Columns,
		Rows:     cfg.Engine.Rows,
		Kinds:    cfg.Engine.KindCount,
		Strategy: cfg.Strategy,
		Boards:   len(results),
	}
	if r.Strategy == "" {
		r.Strategy = StrategyRandom
	}

	var passes, cleared []float64
	counts := make(map[int]int)
	for _, res := range results {
		r.Deadlocks += res.deadlocks
		r.Capped += res.capped
		for i, p := range res.passes {
			passes = append(passes, float64(p))
			cleared = append(cleared, float64(res.cleared[i]))
			counts[p]++
			r.MaxPasses = max(r.MaxPasses, p)
			r.MaxCleared = max(r.MaxCleared, res.cleared[i])
		}
	}
	r.Moves = len(passes)
	if r.Moves == 0 {
		return r
	}

	r.MeanPasses, r.StdPasses = stat.MeanStdDev(passes, nil)
	r.MeanCleared, r.StdCleared = stat.MeanStdDev(cleared, nil)

	slices.Sort(passes)
	r.P50Passes = stat.Quantile(0.50, stat.Empirical, passes, nil)
	r.P90Passes = stat.Quantile(0.90, stat.Empirical, passes, nil)
	r.P99Passes = stat.Quantile(0.99, stat.Empirical, passes, nil)

	for p, n := range counts {
		r.Histogram = append(r.Histogram, Bucket{Passes: p, Count: n})
	}
	slices.SortFunc(r.Histogram, func(a, b Bucket) int { return a.Passes - b.Passes })

	return r
}

// Format writes the summary table and the pass histogram to w.
func (r *Report) Format(w io.Writer) error {
	p := message.NewPrinter(lang)

	keys := []string{
		"Board", "Strategy", "Boards", "Moves", "Workers", "Elapsed", "Moves/sec",
		"Passes mean", "Passes std", "Passes p50/p90/p99", "Passes max", "Chain rate",
		"Cleared mean", "Cleared std", "Cleared max",
		"Deadlocks", "Deadlock rate", "Capped moves",
	}
	vals := map[string]string{
		"Board":              fmt.Sprintf("%dx%d, %d kinds", r.Columns, r.Rows, r.Kinds),
		"Strategy":           string(r.Strategy),
		"Boards":             p.Sprintf("%d", r.Boards),
		"Moves":              p.Sprintf("%d", r.Moves),
		"Workers":            p.Sprintf("%d", r.Workers),
		"Elapsed":            r.Elapsed.Round(time.Millisecond).String(),
		"Moves/sec":          p.Sprintf("%d", movesPerSecond(r.Moves, r.Elapsed)),
		"Passes mean":        p.Sprintf("%.3f", r.MeanPasses),
		"Passes std":         p.Sprintf("%.3f", r.StdPasses),
		"Passes p50/p90/p99": p.Sprintf("%.0f / %.0f / %.0f", r.P50Passes, r.P90Passes, r.P99Passes),
		"Passes max":         p.Sprintf("%d", r.MaxPasses),
		"Chain rate":         p.Sprintf("%.2f %%", 100*r.ChainRate()),
		"Cleared mean":       p.Sprintf("%.2f", r.MeanCleared),
		"Cleared std":        p.Sprintf("%.2f", r.StdCleared),
		"Cleared max":        p.Sprintf("%d", r.MaxCleared),
		"Deadlocks":          p.Sprintf("%d", r.Deadlocks),
		"Deadlock rate":      p.Sprintf("%.4f %%", 100*r.DeadlockRate()),
		"Capped moves":       p.Sprintf("%d", r.Capped),
	}

	out := fmtTable("match-3 cascade simulation", keys, vals)
	out += "\n" + r.histogram(p)
	_, err := io.WriteString(w, out)
	return err
}

// String returns the formatted report.
func (r *Report) String() string {
	var sb strings.Builder
	_ = r.Format(&sb)
	return sb.String()
}

// histogram draws one bar per pass count, scaled to the largest bucket.
func (r *Report) histogram(p *message.Printer) string {
	if len(r.Histogram) == 0 {
		return "no moves played\n"
	}

	most := 0
	for _, b := range r.Histogram {
		most = max(most, b.Count)
	}

	rows := make([][2]string, len(r.Histogram))
	labelW, countW := 0, 0
	for i, b := range r.Histogram {
		rows[i] = [2]string{p.Sprintf("%d passes", b.Passes), p.Sprintf("%d", b.Count)}
		labelW = max(labelW, runewidth.StringWidth(rows[i][0]))
		countW = max(countW, runewidth.StringWidth(rows[i][1]))
	}

	var sb strings.Builder
	for i, b := range r.Histogram {
		bar := max(b.Count*histogramWidth/most, 1)
		share := 100 * float64(b.Count) / float64(r.Moves)
		sb.WriteString(p.Sprintf("%s%s  %s%s  %6.2f%%  %s\n",
			rows[i][0], blank(labelW-runewidth.StringWidth(rows[i][0])),
			blank(countW-runewidth.StringWidth(rows[i][1])), rows[i][1],
			share, strings.Repeat("█", bar)))
	}
	return sb.String()
}

func movesPerSecond(moves int, d time.Duration) int {
	sec := d.Seconds()
	if sec <= 0 {
		sec = 1e-9
	}
	return int(float64(moves) / sec)
}

// fmtTable draws a two-column box table, padding by display width.
func fmtTable(title string, keys []string, msg map[string]string) string {
	maxKeyLen, maxValLen := 0, 0
	for _, k := range keys {
		maxKeyLen = max(maxKeyLen, runewidth.StringWidth(k))
		maxValLen = max(maxValLen, runewidth.StringWidth(msg[k]))
	}
	maxKeyLen += 2
	maxValLen += 2

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)
	if titleW > totalInner {
		maxValLen += titleW - totalInner
		totalInner = titleW
	}

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", totalInner) + "+\n"

	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	var sb strings.Builder
	sb.WriteString(top)
	sb.WriteString("|" + blank(left) + title + blank(right) + "|\n")
	sb.WriteString(divider)
	for _, k := range keys {
		v := msg[k]
		sb.WriteString("| " + k + blank(maxKeyLen-2-runewidth.StringWidth(k)) +
			" | " + v + blank(maxValLen-2-runewidth.StringWidth(v)) + " |\n")
	}
	sb.WriteString(divider)
	return sb.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
