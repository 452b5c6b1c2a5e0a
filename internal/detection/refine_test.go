package detection

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedup_Tolerance(t *testing.T) {
	tol := 8.0

	tests := []struct {
		name string
		in   []Candidate
		want int
	}{
		{"inside tolerance collapses", []Candidate{{X: 100, Y: 100, R: 10}, {X: 105, Y: 104, R: 12}}, 1},
		{"exactly at tolerance collapses", []Candidate{{X: 100, Y: 100, R: 10}, {X: 108, Y: 100, R: 10}}, 1},
		{"beyond tolerance survives", []Candidate{{X: 100, Y: 100, R: 10}, {X: 106, Y: 106, R: 10}}, 2},
		{"empty", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, Dedup(tt.in, tol), tt.want)
		})
	}
}

func TestDedup_FirstWins(t *testing.T) {
	primary := Candidate{X: 50, Y: 50, R: 19}
	fallback := Candidate{X: 52, Y: 51, R: 25}

	got := Dedup([]Candidate{primary, fallback}, 4)
	require.Len(t, got, 1)
	assert.Equal(t, primary, got[0])

	got = Dedup([]Candidate{fallback, primary}, 4)
	require.Len(t, got, 1)
	assert.Equal(t, fallback, got[0])
}

func TestDedup_ChainIsNotTransitive(t *testing.T) {
	// b is a duplicate of a, c is only close to b, which was dropped.
	in := []Candidate{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 8, Y: 0}}
	got := Dedup(in, 5)
	assert.Equal(t, []Candidate{{X: 0, Y: 0}, {X: 8, Y: 0}}, got)
}

func TestSelectTopNByRadius_PassThrough(t *testing.T) {
	in := referenceCandidates()
	got := SelectTopNByRadius(in, 22)
	assert.Equal(t, in, got)

	got[0].R = 99
	assert.NotEqual(t, 99.0, in[0].R, "input must not be modified")
}

func TestSelectTopNByRadius_DropsOutliers(t *testing.T) {
	in := make([]Candidate, 0, 30)
	for i, c := range referenceCandidates() {
		c.R = float64(18 + i%3) // 18, 19, 20
		in = append(in, c)
	}
	// Interleave outliers so position in the list does not help them.
	outliers := []Candidate{
		{X: 10, Y: 10, R: 3}, {X: 20, Y: 10, R: 45}, {X: 30, Y: 10, R: 3}, {X: 40, Y: 10, R: 45},
		{X: 50, Y: 10, R: 3}, {X: 60, Y: 10, R: 45}, {X: 70, Y: 10, R: 3}, {X: 80, Y: 10, R: 45},
	}
	mixed := make([]Candidate, 0, 30)
	for i, c := range in {
		mixed = append(mixed, c)
		if i < len(outliers) {
			mixed = append(mixed, outliers[i])
		}
	}
	require.Len(t, mixed, 30)

	got := SelectTopNByRadius(mixed, 22)
	require.Len(t, got, 22)
	for _, c := range got {
		assert.NotEqual(t, 3.0, c.R)
		assert.NotEqual(t, 45.0, c.R)
	}
	assert.ElementsMatch(t, in, got)
}

func TestSelectTopNByRadius_StableTies(t *testing.T) {
	in := []Candidate{
		{X: 1, R: 10}, {X: 2, R: 12}, {X: 3, R: 8}, {X: 4, R: 10}, {X: 5, R: 12},
	}
	// median 10: distances 0,2,2,0,2
	got := SelectTopNByRadius(in, 3)
	assert.Equal(t, []Candidate{{X: 1, R: 10}, {X: 4, R: 10}, {X: 2, R: 12}}, got)
}

func TestNormalizeRadius(t *testing.T) {
	in := []Candidate{{X: 1, R: 17}, {X: 2, R: 19}, {X: 3, R: 22}, {X: 4, R: 19}}
	got, common, ok := NormalizeRadius(in)
	require.True(t, ok)
	assert.Equal(t, 19.0, common)
	for _, c := range got {
		assert.Equal(t, 19.0, c.R)
	}
	assert.Equal(t, 17.0, in[0].R, "input must not be modified")
}

func TestNormalizeRadius_HalfRoundsToEven(t *testing.T) {
	_, common, ok := NormalizeRadius([]Candidate{{R: 18}, {R: 19}})
	require.True(t, ok)
	assert.Equal(t, 18.0, common)

	_, common, _ = NormalizeRadius([]Candidate{{R: 19}, {R: 20}})
	assert.Equal(t, 20.0, common)
}

func TestNormalizeRadius_Empty(t *testing.T) {
	got, common, ok := NormalizeRadius(nil)
	assert.False(t, ok)
	assert.Zero(t, common)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNormalizeRadius_Idempotent(t *testing.T) {
	in := []Candidate{{X: 5, R: 11}, {X: 6, R: 14}, {X: 7, R: 13}}
	once, c1, _ := NormalizeRadius(in)
	twice, c2, _ := NormalizeRadius(once)
	assert.Equal(t, once, twice)
	assert.Equal(t, c1, c2)
}

func TestToLowerLeft(t *testing.T) {
	got := ToLowerLeft([]Candidate{{X: 38, Y: 230, R: 19}}, 500)
	assert.Equal(t, []Candidate{{X: 38, Y: 270, R: 19}}, got)
}

func TestToLowerLeft_RoundTrip(t *testing.T) {
	in := referenceCandidates()
	back := ToLowerLeft(ToLowerLeft(in, referenceHeight), referenceHeight)
	assert.Equal(t, in, back)
}

func TestAssemble_OrderAndIDs(t *testing.T) {
	in := []Candidate{
		{X: 30, Y: 5, R: 9},
		{X: 10, Y: 50, R: 9},
		{X: 10, Y: 20, R: 9},
		{X: 20, Y: 1, R: 9},
	}
	want := []Player{
		{ID: 1, X: 10, Y: 20, Radius: 9},
		{ID: 2, X: 10, Y: 50, Radius: 9},
		{ID: 3, X: 20, Y: 1, Radius: 9},
		{ID: 4, X: 30, Y: 5, Radius: 9},
	}
	if diff := cmp.Diff(want, Assemble(in)); diff != "" {
		t.Errorf("Assemble mismatch (-want +got):\n%s", diff)
	}
}

func TestAssemble_Empty(t *testing.T) {
	got := Assemble(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// The full refinement chain on a noise-free layout reproduces the layout.
func TestRefinementChain_ReferenceLayout(t *testing.T) {
	in := referenceCandidates()

	selected := SelectTopNByRadius(in, 22)
	assert.Equal(t, in, selected)

	normalized, common, ok := NormalizeRadius(selected)
	require.True(t, ok)
	assert.Equal(t, 19.0, common)

	converted := ToLowerLeft(normalized, referenceHeight)
	// The player at x=38 sits at y=230 from the top, i.e. 270 from the bottom.
	var found bool
	for _, c := range converted {
		if c.X == 38 {
			found = true
			assert.Equal(t, 230.0, c.Y)
		}
	}
	require.True(t, found)
	assert.Equal(t, 270.0, ToLowerLeft([]Candidate{{X: 38, Y: 230}}, referenceHeight)[0].Y)

	if diff := cmp.Diff(referencePlayers, Assemble(converted)); diff != "" {
		t.Errorf("reference layout mismatch (-want +got):\n%s", diff)
	}
}

func TestMedianRadius(t *testing.T) {
	assert.Equal(t, 5.0, medianRadius([]Candidate{{R: 9}, {R: 1}, {R: 5}}))
	assert.Equal(t, 4.0, medianRadius([]Candidate{{R: 9}, {R: 1}, {R: 5}, {R: 3}}))
	assert.Equal(t, 7.0, medianRadius([]Candidate{{R: 7}}))
}
