package football

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeagueParamsJSONRoundTrip(t *testing.T) {
	in := LeagueParams{
		LeagueID:           LeaguePremier,
		SampleMatches:      321,
		GoalsTotalBase:     2.55,
		HomeAdvGoals:       0.21,
		DCRho:              -0.08,
		PrematchLogitScale: 1.12,
		PrematchDrawBias:   0.04,
	}
	raw, err := json.Marshal(in)
	require.NoError(t, err)

	var out LeagueParams
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, in, out)
}

func TestClassifyOutcome(t *testing.T) {
	assert.Equal(t, OutcomeHome, ClassifyOutcome(2, 1))
	assert.Equal(t, OutcomeDraw, ClassifyOutcome(1, 1))
	assert.Equal(t, OutcomeAway, ClassifyOutcome(0, 3))
}

func TestIsValidFixture(t *testing.T) {
	m := Match{Finished: true}
	assert.True(t, m.IsValidFixture())

	m.Cancelled = true
	assert.False(t, m.IsValidFixture())

	m = Match{Finished: true, ReasonLongKey: "Match awarded on penalties"}
	assert.False(t, m.IsValidFixture())
}

func TestLessByTimestampThenID(t *testing.T) {
	a := Match{TimestampUTC: "2024-01-01", MatchID: "1"}
	b := Match{TimestampUTC: "2024-01-01", MatchID: "2"}
	c := Match{TimestampUTC: "2024-01-02", MatchID: "0"}

	assert.True(t, LessByTimestampThenID(a, b))
	assert.True(t, LessByTimestampThenID(b, c))
	assert.False(t, LessByTimestampThenID(b, a))
}

func TestProb3ArgmaxAndOneHot(t *testing.T) {
	p := Prob3{Home: 0.5, Draw: 0.3, Away: 0.2}
	assert.Equal(t, OutcomeHome, p.Argmax())

	oh := OneHot(OutcomeAway)
	assert.Equal(t, Prob3{Away: 1}, oh)
}
