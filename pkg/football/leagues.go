package football

// League IDs preserved as the superset observed across the source material:
// one code path referenced only three, another referenced all seven. See
// DESIGN.md for the reasoning; these seven are carried everywhere a league
// set is needed.
const (
	LeaguePremier         uint32 = 47
	LeagueLaLiga          uint32 = 87
	LeagueBundesliga      uint32 = 54
	LeagueSerieA          uint32 = 55
	LeagueLigue1          uint32 = 53
	LeagueChampionsLeague uint32 = 42
	LeagueWorldCup        uint32 = 77
)

// DefaultLeagueIDs is the full seven-league superset used by the backtest CLI
// when --league-ids is not supplied.
func DefaultLeagueIDs() []uint32 {
	return []uint32{
		LeaguePremier,
		LeagueLaLiga,
		LeagueBundesliga,
		LeagueSerieA,
		LeagueLigue1,
		LeagueChampionsLeague,
		LeagueWorldCup,
	}
}

// LeagueName returns a display label for a known league ID, or "" if unknown.
func LeagueName(id uint32) string {
	switch id {
	case LeaguePremier:
		return "Premier League"
	case LeagueLaLiga:
		return "La Liga"
	case LeagueBundesliga:
		return "Bundesliga"
	case LeagueSerieA:
		return "Serie A"
	case LeagueLigue1:
		return "Ligue 1"
	case LeagueChampionsLeague:
		return "Champions League"
	case LeagueWorldCup:
		return "World Cup"
	default:
		return ""
	}
}
