package ranking

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/RuralPriority/internal/scoring"
	"github.com/MikeSquared-Agency/RuralPriority/internal/store"
)

func TestPriorities(t *testing.T) {
	got, err := Priorities(villageTable())
	require.NoError(t, err)
	require.Len(t, got, 5)

	first := got[0]
	assert.Equal(t, "Pune", first.District)
	require.NotNil(t, first.Taluka)
	assert.Equal(t, "Haveli", *first.Taluka)
	assert.Equal(t, 6.2, first.PriorityScore)
	assert.Equal(t, scoring.RiskMedium, first.RiskLevel)
	require.NotNil(t, first.SchemeGap)
	assert.Equal(t, 40.0, *first.SchemeGap)
	assert.Equal(t, scoring.Breakdown{Severity: 2, Population: 1, Economic: 1.4, HealthEnv: 0.9, Delay: 0.5, SchemeGap: 0.4}, first.WeightContribution)
	assert.Contains(t, first.Explanation, "The problem 'Water' ranks high due to:")

	assert.Equal(t, 8.5, got[3].PriorityScore)
	assert.Equal(t, scoring.RiskHigh, got[3].RiskLevel)
	assert.Nil(t, got[4].Taluka, "blank taluka should be null")
}

func TestPrioritiesKeepsTableOrder(t *testing.T) {
	got, err := Priorities(villageTable())
	require.NoError(t, err)
	problems := make([]string, 0, len(got))
	for _, p := range got {
		problems = append(problems, *p.Problem)
	}
	assert.Equal(t, []string{"Water", "Health", "Roads", "Water", "Education"}, problems)
}

func TestPrioritiesMissingFieldFails(t *testing.T) {
	table := villageTable()
	delete(table.Rows[1], store.ColPopulation)

	_, err := Priorities(table)
	require.Error(t, err)
	assert.True(t, errors.Is(err, scoring.ErrMissingField))
	assert.Contains(t, err.Error(), "row 2")
}

func TestPrioritiesEmpty(t *testing.T) {
	got, err := Priorities(&store.Table{})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
