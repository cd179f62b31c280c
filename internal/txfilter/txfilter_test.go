package txfilter

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yfndev/ybudget/internal/model"
)

func tx(amount string, day int) model.Transaction {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		panic(err)
	}
	return model.Transaction{
		ID:     uuid.New(),
		Date:   time.Date(2025, 5, day, 0, 0, 0, 0, time.UTC),
		Amount: d,
		Status: model.StatusProcessed,
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, DirectionIncome, Classify(tx("0.01", 1)))
	assert.Equal(t, DirectionExpense, Classify(tx("-0.01", 1)))
	assert.Equal(t, DirectionNeutral, Classify(tx("0", 1)))
}

func TestInRange_InclusiveBounds(t *testing.T) {
	atFrom := tx("1", 10)
	inside := tx("2", 15)
	atTo := tx("3", 20)
	before := tx("4", 9)
	after := tx("5", 21)

	from := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)

	got := InRange([]model.Transaction{atFrom, inside, atTo, before, after}, from, to)
	require.Len(t, got, 3)
	assert.Equal(t, atFrom.ID, got[0].ID)
	assert.Equal(t, atTo.ID, got[2].ID)
}

func TestBefore_StrictCutoff(t *testing.T) {
	cutoff := time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)
	atCutoff := tx("1", 15)
	earlier := tx("2", 14)

	got := Before([]model.Transaction{atCutoff, earlier}, cutoff, nil)
	require.Len(t, got, 1)
	assert.Equal(t, earlier.ID, got[0].ID)
}

func TestBefore_WithPredicate(t *testing.T) {
	cutoff := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	matched := tx("1", 10)
	matched.MatchedTransactionID = uuid.New()
	unmatched := tx("2", 11)

	got := Before([]model.Transaction{matched, unmatched}, cutoff, func(t model.Transaction) bool {
		return !t.IsMatched()
	})
	require.Len(t, got, 1)
	assert.Equal(t, unmatched.ID, got[0].ID)
}

// countingNamer records how many lookups are issued.
type countingNamer struct {
	names map[uuid.UUID]string
	calls int
}

func (n *countingNamer) Names(_ context.Context, _ uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	n.calls++
	out := make(map[uuid.UUID]string)
	for _, id := range ids {
		if name, ok := n.names[id]; ok {
			out[id] = name
		}
	}
	return out, nil
}

func TestEnrichNames_SingleBatchLookup(t *testing.T) {
	project := uuid.New()
	category := uuid.New()

	a := tx("10", 1)
	a.ProjectID = project
	a.CategoryID = category
	b := tx("20", 2)
	b.ProjectID = project // same project referenced twice
	c := tx("30", 3)      // no references

	projects := &countingNamer{names: map[uuid.UUID]string{project: "Youth Camp"}}
	categories := &countingNamer{names: map[uuid.UUID]string{category: "Donations"}}

	got, err := EnrichNames(context.Background(), uuid.Nil, []model.Transaction{a, b, c}, projects, categories)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "Youth Camp", got[0].ProjectName)
	assert.Equal(t, "Donations", got[0].CategoryName)
	assert.Equal(t, "Youth Camp", got[1].ProjectName)
	assert.Empty(t, got[2].ProjectName)

	// Original fields survive the join.
	assert.True(t, got[0].Amount.Equal(a.Amount))

	// One lookup per aggregate, not per transaction.
	assert.Equal(t, 1, projects.calls)
	assert.Equal(t, 1, categories.calls)
}

func TestEnrichNames_NoReferencesNoLookups(t *testing.T) {
	projects := &countingNamer{}
	categories := &countingNamer{}

	got, err := EnrichNames(context.Background(), uuid.Nil, []model.Transaction{tx("1", 1)}, projects, categories)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Zero(t, projects.calls)
	assert.Zero(t, categories.calls)
}

func TestLoaded_TriState(t *testing.T) {
	assert.Equal(t, StateLoading, Pending().State())
	assert.Equal(t, StateEmpty, Of(nil).State())
	assert.Equal(t, StateReady, Of([]model.Transaction{tx("1", 1)}).State())
}

func TestLoaded_FilterPropagatesLoading(t *testing.T) {
	from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, StateLoading, Pending().InRange(from, to).State())

	// A ready collection that filters down to nothing is Empty, not Loading.
	ready := Of([]model.Transaction{tx("1", 15)})
	narrowed := ready.InRange(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, StateEmpty, narrowed.State())
}
