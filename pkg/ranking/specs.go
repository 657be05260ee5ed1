package ranking

// StatSpec is one entry of a role's composite score: the stat to read, its
// direction, and the weight it contributes when observed.
type StatSpec struct {
	Stat      CanonStat
	Direction Direction
	Weight    float64
}

// Scoring-design constants. Fixed per the observed test assertions; named
// here rather than left as magic numbers scattered through the scorer.
const (
	CoverageFloor        = 0.45
	CoveragePenalty      = 0.8
	ParticipationPenalty = 1.0
	FullMinutes          = 900.0
	FullAppearances      = 10.0
	MaxFactors           = 5
)

// roleAttackSpecs and roleDefenseSpecs are the fixed weighted stat tables
// per role, transcribed directly from `role_attack_specs`/`role_defense_specs`
// in the original ranking module (analysis_rankings.rs) rather than
// reconstructed. Two specs (attack, defense) are maintained for every role,
// per §4.4: a goalkeeper's "attack" spec is intentionally thin (keepers
// rarely contribute to attack) and a striker's "defense" spec is similarly
// thin.
var roleAttackSpecs = map[Role][]StatSpec{
	RoleAttacker: {
		{Stat: XgNonPenalty, Direction: HigherBetter, Weight: 2.0},
		{Stat: Goals, Direction: HigherBetter, Weight: 1.2},
		{Stat: FinishingDelta, Direction: HigherBetter, Weight: 0.8},
		{Stat: Xa, Direction: HigherBetter, Weight: 1.2},
		{Stat: Assists, Direction: HigherBetter, Weight: 0.8},
		{Stat: ChancesCreated, Direction: HigherBetter, Weight: 1.0},
		{Stat: BigChancesCreated, Direction: HigherBetter, Weight: 1.0},
		{Stat: ShotsOnTarget, Direction: HigherBetter, Weight: 0.7},
		{Stat: TouchesInOppBox, Direction: HigherBetter, Weight: 0.9},
		{Stat: Dribbles, Direction: HigherBetter, Weight: 0.6},
		{Stat: Dispossessed, Direction: LowerBetter, Weight: 0.6},
		{Stat: Rating, Direction: HigherBetter, Weight: 0.6},
	},
	RoleMidfielder: {
		{Stat: Xa, Direction: HigherBetter, Weight: 1.2},
		{Stat: ChancesCreated, Direction: HigherBetter, Weight: 1.0},
		{Stat: AccuratePasses, Direction: HigherBetter, Weight: 0.9},
		{Stat: PassAccuracy, Direction: HigherBetter, Weight: 0.7},
		{Stat: AccurateLongBalls, Direction: HigherBetter, Weight: 0.6},
		{Stat: LongBallAccuracy, Direction: HigherBetter, Weight: 0.5},
		{Stat: Touches, Direction: HigherBetter, Weight: 0.5},
		{Stat: Dribbles, Direction: HigherBetter, Weight: 0.5},
		{Stat: Dispossessed, Direction: LowerBetter, Weight: 0.6},
		{Stat: Rating, Direction: HigherBetter, Weight: 0.6},
	},
	RoleDefender: {
		{Stat: AccuratePasses, Direction: HigherBetter, Weight: 0.8},
		{Stat: PassAccuracy, Direction: HigherBetter, Weight: 0.7},
		{Stat: AccurateLongBalls, Direction: HigherBetter, Weight: 0.7},
		{Stat: LongBallAccuracy, Direction: HigherBetter, Weight: 0.6},
		{Stat: ChancesCreated, Direction: HigherBetter, Weight: 0.4},
		{Stat: Xa, Direction: HigherBetter, Weight: 0.4},
		{Stat: Touches, Direction: HigherBetter, Weight: 0.4},
		{Stat: Rating, Direction: HigherBetter, Weight: 0.4},
	},
	RoleGoalkeeper: {
		{Stat: AccuratePasses, Direction: HigherBetter, Weight: 0.8},
		{Stat: PassAccuracy, Direction: HigherBetter, Weight: 0.7},
		{Stat: AccurateLongBalls, Direction: HigherBetter, Weight: 0.7},
		{Stat: LongBallAccuracy, Direction: HigherBetter, Weight: 0.6},
		{Stat: ActedAsSweeper, Direction: HigherBetter, Weight: 0.5},
	},
}

var roleDefenseSpecs = map[Role][]StatSpec{
	RoleAttacker: {
		{Stat: PossWonFinalThird, Direction: HigherBetter, Weight: 1.0},
		{Stat: Recoveries, Direction: HigherBetter, Weight: 0.6},
		{Stat: DuelsWonPct, Direction: HigherBetter, Weight: 0.4},
		{Stat: AerialsWonPct, Direction: HigherBetter, Weight: 0.3},
		{Stat: FoulsCommitted, Direction: LowerBetter, Weight: 0.3},
		{Stat: YellowCards, Direction: LowerBetter, Weight: 0.3},
		{Stat: RedCards, Direction: LowerBetter, Weight: 0.4},
		{Stat: Rating, Direction: HigherBetter, Weight: 0.3},
	},
	RoleMidfielder: {
		{Stat: Tackles, Direction: HigherBetter, Weight: 0.9},
		{Stat: Interceptions, Direction: HigherBetter, Weight: 0.9},
		{Stat: Recoveries, Direction: HigherBetter, Weight: 0.9},
		{Stat: DuelsWonPct, Direction: HigherBetter, Weight: 0.6},
		{Stat: AerialsWonPct, Direction: HigherBetter, Weight: 0.4},
		{Stat: PossWonFinalThird, Direction: HigherBetter, Weight: 0.6},
		{Stat: DribbledPast, Direction: LowerBetter, Weight: 0.6},
		{Stat: YellowCards, Direction: LowerBetter, Weight: 0.3},
		{Stat: RedCards, Direction: LowerBetter, Weight: 0.3},
		{Stat: Rating, Direction: HigherBetter, Weight: 0.4},
	},
	RoleDefender: {
		{Stat: Tackles, Direction: HigherBetter, Weight: 1.0},
		{Stat: Interceptions, Direction: HigherBetter, Weight: 1.0},
		{Stat: Clearances, Direction: HigherBetter, Weight: 0.9},
		{Stat: Blocks, Direction: HigherBetter, Weight: 0.8},
		{Stat: Recoveries, Direction: HigherBetter, Weight: 0.8},
		{Stat: DuelsWonPct, Direction: HigherBetter, Weight: 0.8},
		{Stat: AerialsWonPct, Direction: HigherBetter, Weight: 0.9},
		{Stat: DribbledPast, Direction: LowerBetter, Weight: 0.8},
		{Stat: GoalsConcededOnPitch, Direction: LowerBetter, Weight: 0.7},
		{Stat: XgAgainstOnPitch, Direction: LowerBetter, Weight: 0.7},
		{Stat: Rating, Direction: HigherBetter, Weight: 0.3},
	},
	RoleGoalkeeper: {
		{Stat: SavePct, Direction: HigherBetter, Weight: 1.3},
		{Stat: Saves, Direction: HigherBetter, Weight: 0.8},
		{Stat: GoalsConceded, Direction: LowerBetter, Weight: 1.1},
		{Stat: CleanSheets, Direction: HigherBetter, Weight: 0.7},
		{Stat: ErrorLedToGoal, Direction: LowerBetter, Weight: 0.9},
		{Stat: HighClaims, Direction: HigherBetter, Weight: 0.5},
		{Stat: Rating, Direction: HigherBetter, Weight: 0.4},
	},
}

// AttackSpec returns the attack composite stat table for a role.
func AttackSpec(role Role) []StatSpec { return roleAttackSpecs[role] }

// DefenseSpec returns the defense composite stat table for a role.
func DefenseSpec(role Role) []StatSpec { return roleDefenseSpecs[role] }
