package alumni

import (
	"math/rand"
	"slices"
	"strings"
	"time"

	"github.com/cncf/automation/alumni-dashboard/pkg/distribution"
)

// DefaultCount is the number of records the directory is seeded with.
const DefaultCount = 300

// DefaultFirstNames and DefaultLastNames are the name pools records draw from.
var (
	DefaultFirstNames = []string{
		"Aarav", "Vivaan", "Aditya", "Vihaan", "Arjun", "Sai", "Reyansh", "Ayaan", "Krishna", "Ishaan",
		"Shaurya", "Atharv", "Advik", "Pranav", "Anvit", "Aadhya", "Ananya", "Anika", "Diya", "Ira",
		"Jiya", "Kavya", "Kiara", "Myra", "Navya", "Pihu", "Saanvi", "Sara", "Shanvi", "Siya",
	}
	DefaultLastNames = []string{
		"Sharma", "Verma", "Gupta", "Kumar", "Singh", "Yadav", "Mishra", "Pandey", "Agarwal", "Jain",
		"Bansal", "Agrawal", "Goyal", "Arora", "Malhotra", "Khanna", "Chopra", "Kapoor", "Mehta", "Shah",
	}
)

// Threshold assigns Status to draws below Upper that no earlier threshold
// claimed.
type Threshold struct {
	Status string
	Upper  float64
}

// workStatusThresholds are hand-calibrated cumulative bounds. They are not
// derived from the work status distribution.
var workStatusThresholds = []Threshold{
	{Status: StatusIntrapreneur, Upper: 0.565},
	{Status: StatusNotWorking, Upper: 0.70},
	{Status: StatusEntrepreneur, Upper: 0.747},
	{Status: StatusHigherStudy, Upper: 0.773},
	{Status: StatusFreelancer, Upper: 1.0},
}

// WorkStatusThresholds returns a copy of the cumulative bounds work status
// draws are bucketed by.
func WorkStatusThresholds() []Threshold {
	return slices.Clone(workStatusThresholds)
}

// YesProbability is the chance that mentoring or placement support is Yes.
const YesProbability = 0.8

// RandomSource is the randomness a Generator consumes. *rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
	Float64() float64
}

// Generator produces synthetic records whose categories come from a dataset.
type Generator struct {
	rng        RandomSource
	firstNames []string
	lastNames  []string
	batches    []string
	tracks     []string
	geography  []string
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the randomness source.
func WithRand(rng RandomSource) Option {
	return func(g *Generator) {
		g.rng = rng
	}
}

// WithSeed uses a deterministic source seeded with seed.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed))) // nolint gosec
}

// WithNames replaces the name pools. Empty pools keep the defaults.
func WithNames(first, last []string) Option {
	return func(g *Generator) {
		if len(first) > 0 {
			g.firstNames = append([]string(nil), first...)
		}
		if len(last) > 0 {
			g.lastNames = append([]string(nil), last...)
		}
	}
}

// NewGenerator builds a generator over the label sets of ds. Without
// WithRand or WithSeed it seeds from the clock.
func NewGenerator(ds *distribution.Dataset, opts ...Option) *Generator {
	g := &Generator{
		firstNames: DefaultFirstNames,
		lastNames:  DefaultLastNames,
		batches:    ds.Batch.Labels(),
		tracks:     ds.ProgramTrack.Labels(),
		geography:  ds.Geography.TrimLabels().Labels(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano())) // nolint gosec
	}
	return g
}

// Generate returns count records. A non-positive count yields none.
//
// Batch, program track and geography are drawn uniformly from their label
// sets, ignoring counts. Work status uses WorkStatusThresholds.
func (g *Generator) Generate(count int) []Record {
	if count <= 0 {
		return []Record{}
	}

	records := make([]Record, 0, count)
	for i := 0; i < count; i++ {
		first := pick(g.rng, g.firstNames)
		last := pick(g.rng, g.lastNames)
		status := g.workStatus()

		records = append(records, Record{
			Name:             strings.TrimSpace(first + " " + last),
			WorkStatus:       status,
			Batch:            pick(g.rng, g.batches),
			ProgramTrack:     pick(g.rng, g.tracks),
			Geography:        pick(g.rng, g.geography),
			Mentoring:        g.answer(),
			PlacementSupport: g.answer(),
		})
	}
	return records
}

func (g *Generator) workStatus() string {
	r := g.rng.Float64()
	for _, t := range workStatusThresholds {
		if r < t.Upper {
			return t.Status
		}
	}
	return workStatusThresholds[len(workStatusThresholds)-1].Status
}

func (g *Generator) answer() Answer {
	if g.rng.Float64() < YesProbability {
		return Yes
	}
	return No
}

func pick(rng RandomSource, pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[rng.Intn(len(pool))]
}
