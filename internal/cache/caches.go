package cache

import "github.com/rs/zerolog"

const mb = 1 << 20

// Default sizes in bytes.
const (
	DefaultSearchBytes = 4 * mb
	DefaultPawnBytes   = 1 * mb
	DefaultEvalBytes   = 1 * mb
)

// Caches bundles the three tables owned by one engine session.
type Caches struct {
	Search *Table
	Pawn   *ScoreTable
	Eval   *ScoreTable

	log zerolog.Logger
}

// New allocates the tables at their default sizes.
func New(log zerolog.Logger) *Caches {
	return &Caches{
		Search: NewTable(DefaultSearchBytes),
		Pawn:   NewScoreTable(DefaultPawnBytes),
		Eval:   NewScoreTable(DefaultEvalBytes),
		log:    log,
	}
}

// SetMemory applies an XBoard "memory" budget in megabytes. The search
// table takes the largest size that fits, the pawn table gets whatever is
// left, and the eval table whatever remains after that. Neither of the
// smaller tables drops below one megabyte.
func (c *Caches) SetMemory(megabytes int) {
	budget := max(megabytes, 1) * mb
	c.Search.Resize(budget)
	spare := max(budget-c.Search.Bytes(), mb)
	c.Pawn.Resize(spare)
	spare = max(spare-c.Pawn.Bytes(), mb)
	c.Eval.Resize(spare)
	c.logSizes("memory", megabytes)
}

// SetHash applies a UCI "Hash" option in megabytes. The search table gets
// the full amount and each score table a quarter, with a one megabyte
// floor.
func (c *Caches) SetHash(megabytes int) {
	megabytes = max(megabytes, 1)
	c.Search.Resize(megabytes * mb)
	c.Pawn.Resize(max(megabytes/4, 1) * mb)
	c.Eval.Resize(max(megabytes/4, 1) * mb)
	c.logSizes("hash", megabytes)
}

// Clear empties all three tables.
func (c *Caches) Clear() {
	c.Search.Clear()
	c.Pawn.Clear()
	c.Eval.Clear()
}

func (c *Caches) logSizes(source string, megabytes int) {
	c.log.Info().
		Str("source", source).
		Int("requested_mb", megabytes).
		Int("search_entries", c.Search.Len()).
		Int("pawn_entries", c.Pawn.Len()).
		Int("eval_entries", c.Eval.Len()).
		Msg("cache resized")
}
