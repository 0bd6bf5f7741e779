package domain_test

import (
	"math"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gradedomain "ascent/internal/modules/grade/domain"
	ledgerdomain "ascent/internal/modules/ledger/domain"
	"ascent/internal/modules/ring/domain"
)

func TestBuildSegmentsGroupsByGrade(t *testing.T) {
	t.Parallel()
	rows := []ledgerdomain.LogEntry{
		{Date: "2026-10-15", Discipline: ledgerdomain.Boulder, Grade: "V4", Count: 2},
		{Date: "2026-10-15", Discipline: ledgerdomain.Rope, Grade: "5.10a", Count: 1},
		{Date: "2026-10-15", Discipline: ledgerdomain.Rope, Grade: "V4", Count: 3},
		{Date: "2026-10-14", Discipline: ledgerdomain.Boulder, Grade: "V4", Count: 9},
	}
	boulder := ledgerdomain.Boulder

	assert.Equal(t, []domain.GradeCount{{Grade: "V4", Count: 2}}, domain.BuildSegments(rows, "2026-10-15", &boulder))
	assert.Equal(t, []domain.GradeCount{{Grade: "V4", Count: 5}, {Grade: "5.10a", Count: 1}}, domain.BuildSegments(rows, "2026-10-15", nil))

	empty := domain.BuildSegments(rows, "2030-01-01", nil)
	require.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestComputeRingArcsScenario(t *testing.T) {
	t.Parallel()
	arcs := domain.ComputeRingArcs([]domain.GradeCount{
		{Grade: "V7", Count: 5},
		{Grade: "V0", Count: 3},
		{Grade: "V4", Count: 2},
	})
	require.Len(t, arcs, 3)
	assert.Equal(t, []string{"V0", "V4", "V7"}, []string{arcs[0].Grade, arcs[1].Grade, arcs[2].Grade})
	assert.Equal(t, []float64{108, 72, 180}, []float64{arcs[0].SweepDegrees, arcs[1].SweepDegrees, arcs[2].SweepDegrees})
	assert.Equal(t, []float64{0, 108, 180}, []float64{arcs[0].StartDegrees, arcs[1].StartDegrees, arcs[2].StartDegrees})
	assert.Equal(t, 360.0, arcs[0].SweepDegrees+arcs[1].SweepDegrees+arcs[2].SweepDegrees)
	assert.Equal(t, gradedomain.ColorForLabel("V7"), arcs[2].Color)
}

func TestComputeRingArcsEmptyAndZeroCounts(t *testing.T) {
	t.Parallel()
	assert.Empty(t, domain.ComputeRingArcs(nil))
	assert.Empty(t, domain.ComputeRingArcs([]domain.GradeCount{{Grade: "V1", Count: 0}}))

	single := domain.ComputeRingArcs([]domain.GradeCount{{Grade: "V1", Count: 0}, {Grade: "5.9", Count: 7}})
	require.Len(t, single, 1)
	assert.Equal(t, 0.0, single[0].StartDegrees)
	assert.Equal(t, 360.0, single[0].SweepDegrees)
}

func TestComputeRingArcsClosesForRandomInputs(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 500; trial++ {
		n := 1 + rng.Intn(12)
		segments := make([]domain.GradeCount, 0, n)
		for i := 0; i < n; i++ {
			segments = append(segments, domain.GradeCount{Grade: "V" + strconv.Itoa(i), Count: 1 + rng.Intn(97)})
		}
		arcs := domain.ComputeRingArcs(segments)
		require.Len(t, arcs, n)

		sum := 0.0
		for i, arc := range arcs {
			require.Greater(t, arc.SweepDegrees, 0.0)
			require.LessOrEqual(t, arc.SweepDegrees, 360.0)
			require.GreaterOrEqual(t, arc.StartDegrees, 0.0)
			require.Less(t, arc.StartDegrees, 360.0)
			if i > 0 {
				require.Equal(t, arcs[i-1].StartDegrees+arcs[i-1].SweepDegrees, arc.StartDegrees)
			}
			sum += arc.SweepDegrees
		}
		require.Equal(t, 360.0, sum)
		last := arcs[len(arcs)-1]
		require.Equal(t, 360.0, last.StartDegrees+last.SweepDegrees)
	}
}

func TestComputeRingArcsClosesWhereRatiosDrift(t *testing.T) {
	t.Parallel()
	counts := []int{1, 45, 12, 13, 40, 29, 25, 12}
	segments := make([]domain.GradeCount, 0, len(counts))
	for i, c := range counts {
		segments = append(segments, domain.GradeCount{Grade: "V" + strconv.Itoa(i), Count: c})
	}
	arcs := domain.ComputeRingArcs(segments)
	require.Len(t, arcs, len(counts))
	last := arcs[len(arcs)-1]
	assert.Equal(t, 360.0, last.StartDegrees+last.SweepDegrees)
}

func TestComputeRingArcsIsDeterministic(t *testing.T) {
	t.Parallel()
	in := []domain.GradeCount{{Grade: "5.11b", Count: 2}, {Grade: "V2", Count: 1}, {Grade: "crimpy", Count: 4}, {Grade: "5.9", Count: 3}}
	first := domain.ComputeRingArcs(in)
	reversed := []domain.GradeCount{in[3], in[2], in[1], in[0]}
	assert.Equal(t, first, domain.ComputeRingArcs(reversed))
	assert.Equal(t, "crimpy", first[3].Grade)
}

func TestGoalRingExactMultiplesCloseTheLap(t *testing.T) {
	t.Parallel()
	for _, value := range []float64{10, 20} {
		g := domain.GoalRing(value, 10, domain.BoulderColor)
		assert.Equal(t, 1.0, g.ProgressFraction, "value %v", value)
		assert.Equal(t, 360.0, g.SweepDegrees)
		assert.True(t, g.Lapped())
	}
	g := domain.GoalRing(21, 10, domain.BoulderColor)
	assert.Equal(t, 2, g.FullLoops)
	assert.Equal(t, 0.1, g.ProgressFraction)
	assert.Equal(t, 1.0, g.Remainder)
}

func TestGoalRingOverflowTrack(t *testing.T) {
	t.Parallel()
	under := domain.GoalRing(7, 10, domain.RopeColor)
	assert.Equal(t, 0, under.FullLoops)
	assert.Equal(t, gradedomain.Neutral, under.Track.Color)
	assert.Equal(t, 1.0, under.Track.Opacity)
	assert.InDelta(t, 252.0, under.SweepDegrees, 1e-9)

	over := domain.GoalRing(14, 10, domain.RopeColor)
	assert.Equal(t, 1, over.FullLoops)
	assert.InDelta(t, 0.4, over.ProgressFraction, 1e-12)
	assert.Equal(t, domain.RopeColor, over.Track.Color)
	assert.Equal(t, domain.LappedTrackOpacity, over.Track.Opacity)

	// Two laps and five laps look the same at the track level.
	assert.Equal(t, domain.GoalRing(24, 10, domain.RopeColor).Track, domain.GoalRing(54, 10, domain.RopeColor).Track)
}

func TestGoalRingDegenerateInputs(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct{ value, goal float64 }{
		{0, 10}, {5, 0}, {5, -3}, {-4, 10}, {math.NaN(), 10}, {5, math.Inf(1)},
	} {
		g := domain.GoalRing(tc.value, tc.goal, domain.PlanColor)
		assert.Equal(t, 0, g.FullLoops)
		assert.Equal(t, 0.0, g.ProgressFraction)
		assert.Equal(t, 0.0, g.SweepDegrees)
		assert.False(t, math.IsNaN(g.Remainder))
		assert.Equal(t, gradedomain.Neutral, g.Track.Color)
	}
}

func TestPyramidAndStackOrdering(t *testing.T) {
	t.Parallel()
	in := []domain.GradeCount{{Grade: "V2", Count: 4}, {Grade: "V5", Count: 1}, {Grade: "V3", Count: 2}, {Grade: "V9", Count: 0}}
	pyramid := domain.Pyramid(in)
	require.Len(t, pyramid, 3)
	assert.Equal(t, "V5", pyramid[0].Grade)
	assert.Equal(t, "V2", pyramid[2].Grade)

	stack := domain.Stack(in)
	assert.Equal(t, "V2", stack[0].Grade)
	assert.Equal(t, gradedomain.ColorForLabel("V5"), stack[2].Color)
}
