package model

import "fmt"

// Phase is the segment of an innings a delivery belongs to, derived from the
// over number (powerplay/middle/death). Boundaries are format-configurable;
// see aggregator.PhaseFor.
type Phase int

const (
	PhasePowerplay Phase = iota
	PhaseMiddle
	PhaseDeath
	NumPhases
)

func (p Phase) String() string {
	switch p {
	case PhasePowerplay:
		return "Powerplay"
	case PhaseMiddle:
		return "Middle"
	case PhaseDeath:
		return "Death"
	default:
		return "?"
	}
}

// Dismissal is the kind of wicket that fell on a delivery.
type Dismissal int

const (
	DismissalNone Dismissal = iota
	DismissalBowled
	DismissalCaught
	DismissalCaughtAndBowled
	DismissalLBW
	DismissalStumped
	DismissalHitWicket
	DismissalRunOut
	DismissalRetiredHurt
	DismissalRetiredOut
	DismissalObstructing
	DismissalTimedOut
	DismissalHitBallTwice
	DismissalOther
)

var dismissalNames = map[Dismissal]string{
	DismissalNone:            "",
	DismissalBowled:          "bowled",
	DismissalCaught:          "caught",
	DismissalCaughtAndBowled: "caught and bowled",
	DismissalLBW:             "lbw",
	DismissalStumped:         "stumped",
	DismissalHitWicket:       "hit wicket",
	DismissalRunOut:          "run out",
	DismissalRetiredHurt:     "retired hurt",
	DismissalRetiredOut:      "retired out",
	DismissalObstructing:     "obstructing the field",
	DismissalTimedOut:        "timed out",
	DismissalHitBallTwice:    "hit the ball twice",
	DismissalOther:           "out",
}

func (d Dismissal) String() string { return dismissalNames[d] }

// ParseDismissal maps a Cricsheet wicket kind string to a Dismissal.
// Unknown non-empty kinds map to DismissalOther.
func ParseDismissal(kind string) Dismissal {
	switch kind {
	case "":
		return DismissalNone
	case "bowled":
		return DismissalBowled
	case "caught":
		return DismissalCaught
	case "caught and bowled":
		return DismissalCaughtAndBowled
	case "lbw":
		return DismissalLBW
	case "stumped":
		return DismissalStumped
	case "hit wicket":
		return DismissalHitWicket
	case "run out":
		return DismissalRunOut
	case "retired hurt":
		return DismissalRetiredHurt
	case "retired out":
		return DismissalRetiredOut
	case "obstructing the field":
		return DismissalObstructing
	case "timed out":
		return DismissalTimedOut
	case "hit the ball twice":
		return DismissalHitBallTwice
	default:
		return DismissalOther
	}
}

// CreditsBowler reports whether the bowler is credited with the wicket.
// Run-outs, retirements, obstruction and timed-out dismissals are not
// bowler wickets.
func (d Dismissal) CreditsBowler() bool {
	switch d {
	case DismissalBowled, DismissalCaught, DismissalCaughtAndBowled,
		DismissalLBW, DismissalStumped, DismissalHitWicket:
		return true
	default:
		return false
	}
}

// OutForBatter reports whether the dismissal ends the batter's innings as an
// out (retired hurt does not count as a dismissal).
func (d Dismissal) OutForBatter() bool {
	return d != DismissalNone && d != DismissalRetiredHurt
}

// ExtraKind is the type of extra runs conceded on a delivery.
type ExtraKind int

const (
	ExtraNone ExtraKind = iota
	ExtraWide
	ExtraNoBall
	ExtraBye
	ExtraLegBye
	ExtraPenalty
)

func (e ExtraKind) String() string {
	switch e {
	case ExtraWide:
		return "wide"
	case ExtraNoBall:
		return "no-ball"
	case ExtraBye:
		return "bye"
	case ExtraLegBye:
		return "leg-bye"
	case ExtraPenalty:
		return "penalty"
	default:
		return ""
	}
}

// Wicket is one dismissal recorded against a delivery. A delivery can carry
// more than one (e.g. a run out alongside a retirement).
type Wicket struct {
	PlayerOut string
	Kind      Dismissal
}

// Delivery is one bowled ball and its outcome. Immutable once ingested;
// every derived aggregate must be reproducible from the delivery log alone.
type Delivery struct {
	MatchID     string
	Innings     int // 1-based
	Over        int // 1-based over number within the innings
	Ball        int // 1-based delivery number within the over, extras included
	BattingTeam string
	Batter      string
	NonStriker  string
	Bowler      string
	RunsBat     int // runs off the bat, excludes extras
	Extras      int
	ExtraKind   ExtraKind
	Wickets     []Wicket
}

// CountsAsBallFaced reports whether the delivery counts against the batter's
// balls faced. Wides do not; byes and leg-byes do not either (the batter
// made no scoring contact).
func (d Delivery) CountsAsBallFaced() bool {
	switch d.ExtraKind {
	case ExtraWide, ExtraBye, ExtraLegBye:
		return false
	default:
		return true
	}
}

// IsLegal reports whether the delivery counts toward the over (the economy
// denominator). Wides and no-balls must be re-bowled.
func (d Delivery) IsLegal() bool {
	return d.ExtraKind != ExtraWide && d.ExtraKind != ExtraNoBall
}

// BowlerRuns returns the runs charged against the bowler: runs off the bat
// plus wide/no-ball extras. Byes, leg-byes and penalty runs are not the
// bowler's fault.
func (d Delivery) BowlerRuns() int {
	switch d.ExtraKind {
	case ExtraWide, ExtraNoBall:
		return d.RunsBat + d.Extras
	default:
		return d.RunsBat
	}
}

// PhaseBatting is the batting sub-aggregate for one innings phase.
type PhaseBatting struct {
	Runs  int
	Balls int
	Fours int
	Sixes int
	Dots  int
}

// PhaseBowling is the bowling sub-aggregate for one innings phase.
type PhaseBowling struct {
	Balls   int // legal deliveries
	Runs    int // runs charged to the bowler
	Wickets int
	Dots    int
}

// BattingAggregate accumulates a player's batting over one or more matches.
type BattingAggregate struct {
	Innings    int
	Runs       int
	Balls      int
	Fours      int
	Sixes      int
	Dots       int
	Dismissals int
	Fifties    int
	Hundreds   int
	Phases     [NumPhases]PhaseBatting
}

// Add accumulates another batting aggregate pointwise.
func (b *BattingAggregate) Add(o BattingAggregate) {
	b.Innings += o.Innings
	b.Runs += o.Runs
	b.Balls += o.Balls
	b.Fours += o.Fours
	b.Sixes += o.Sixes
	b.Dots += o.Dots
	b.Dismissals += o.Dismissals
	b.Fifties += o.Fifties
	b.Hundreds += o.Hundreds
	for i := range b.Phases {
		b.Phases[i].Runs += o.Phases[i].Runs
		b.Phases[i].Balls += o.Phases[i].Balls
		b.Phases[i].Fours += o.Phases[i].Fours
		b.Phases[i].Sixes += o.Phases[i].Sixes
		b.Phases[i].Dots += o.Phases[i].Dots
	}
}

// BowlingAggregate accumulates a player's bowling over one or more matches.
type BowlingAggregate struct {
	Innings int
	Balls   int // legal deliveries bowled
	Runs    int // runs conceded (bowler-charged)
	Wickets int
	Dots    int
	Wides   int
	NoBalls int
	Phases  [NumPhases]PhaseBowling
}

// Add accumulates another bowling aggregate pointwise.
func (b *BowlingAggregate) Add(o BowlingAggregate) {
	b.Innings += o.Innings
	b.Balls += o.Balls
	b.Runs += o.Runs
	b.Wickets += o.Wickets
	b.Dots += o.Dots
	b.Wides += o.Wides
	b.NoBalls += o.NoBalls
	for i := range b.Phases {
		b.Phases[i].Balls += o.Phases[i].Balls
		b.Phases[i].Runs += o.Phases[i].Runs
		b.Phases[i].Wickets += o.Phases[i].Wickets
		b.Phases[i].Dots += o.Phases[i].Dots
	}
}

// PlayerMatchAggregate holds one player's contribution to one match.
// Derived from the delivery log by the aggregator; owned by it.
type PlayerMatchAggregate struct {
	MatchID   string
	MatchDate string
	Player    string
	Team      string
	Position  int // batting order, 1-based; 0 = did not bat
	NotOut    bool
	TeamWon   bool
	Batting   BattingAggregate
	Bowling   BowlingAggregate
}

// PlayerSeasonProfile accumulates a player's match aggregates across a
// window of matches. Invariant: each field equals the pointwise sum of the
// constituent match aggregates.
type PlayerSeasonProfile struct {
	Player  string
	Matches int
	Batting BattingAggregate
	Bowling BowlingAggregate
}

// Stat is a metric value that is undefined when its denominator is empty
// (zero balls faced, zero wickets, ...). Callers must check Valid; an
// undefined stat renders as "—", never as a silent zero.
type Stat struct {
	Value float64
	Valid bool
}

// StatOf returns a defined Stat.
func StatOf(v float64) Stat { return Stat{Value: v, Valid: true} }

// NoStat is the explicit insufficient-data sentinel.
func NoStat() Stat { return Stat{} }

// Ratio returns num/den scaled, or an undefined Stat when den is zero.
func Ratio(num, den, scale float64) Stat {
	if den == 0 {
		return Stat{}
	}
	return StatOf(num / den * scale)
}

func (s Stat) String() string {
	if !s.Valid {
		return "—"
	}
	return fmt.Sprintf("%.2f", s.Value)
}

// Metric is one named entry of a MetricVector.
type Metric struct {
	Name string
	Stat Stat
}

// MetricVector is the ordered set of derived metrics for one player over one
// window. Order is fixed at build time so repeated runs render identically.
type MetricVector struct {
	Player         string
	Window         string
	RulesetVersion string
	Metrics        []Metric
}

// Put appends a named metric, preserving insertion order.
func (v *MetricVector) Put(name string, s Stat) {
	v.Metrics = append(v.Metrics, Metric{Name: name, Stat: s})
}

// Get returns the named metric. The second result is false when the metric
// is absent from the vector.
func (v MetricVector) Get(name string) (Stat, bool) {
	for _, m := range v.Metrics {
		if m.Name == name {
			return m.Stat, true
		}
	}
	return Stat{}, false
}

// FormPoint is one match's snapshot of a single metric.
type FormPoint struct {
	MatchID   string
	MatchDate string
	Value     float64
}

// FormSeries is a player's chronological per-match series for one metric.
// Order is significant: Points[0] is the oldest match.
type FormSeries struct {
	Player string
	Metric string
	Points []FormPoint
}

// MatchInfo is the match-level record extracted at ingest time.
type MatchInfo struct {
	MatchID       string // content hash of the source file
	Season        int
	MatchDate     string
	Venue         string
	City          string
	Team1         string
	Team2         string
	TossWinner    string
	TossDecision  string
	Winner        string // empty when tied / no result
	ResultType    string
	ResultMargin  int
	PlayerOfMatch string
	Stage         string // League, Qualifier, Eliminator, Final
}

// RawMatch is one ingested match: its info plus the full delivery log.
type RawMatch struct {
	Info       MatchInfo
	Deliveries []Delivery
}
