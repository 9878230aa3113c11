package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewDescriptor_Build(t *testing.T) {
	d, err := NewDescriptor("momentum-core").
		Name("Momentum Core").
		Pillar(PillarLiquidity).
		Priority(80).
		RefreshInterval(5 * time.Second).
		Indicators("px.close", "px.volume").
		DependsOn("data-integrity").
		Build()

	require.NoError(t, err)
	require.Equal(t, "momentum-core", d.ID())
	require.Equal(t, "Momentum Core", d.Name())
	require.Equal(t, PillarLiquidity, d.Pillar())
	require.Equal(t, 80, d.Priority())
	require.Equal(t, 5*time.Second, d.RefreshInterval())
	require.Equal(t, []string{"px.close", "px.volume"}, d.Indicators())
	require.Equal(t, []string{"data-integrity"}, d.Dependencies())
	require.True(t, d.DependsOn("data-integrity"))
	require.False(t, d.DependsOn("px.close"))
}

func TestNewDescriptor_EmptyID(t *testing.T) {
	_, err := NewDescriptor("").Build()

	require.ErrorIs(t, err, ErrEmptyID)
}

func TestNewDescriptor_InvalidPillar(t *testing.T) {
	_, err := NewDescriptor("x").Pillar(Pillar(42)).Build()

	require.ErrorIs(t, err, ErrInvalidPillar)
}

func TestNewDescriptor_NegativeRefreshInterval(t *testing.T) {
	_, err := NewDescriptor("x").RefreshInterval(-time.Second).Build()

	require.ErrorIs(t, err, ErrNegativeInterval)
}

func TestNewDescriptor_NameDefaultsToID(t *testing.T) {
	d, err := NewDescriptor("vol-regime").Build()

	require.NoError(t, err)
	require.Equal(t, "vol-regime", d.Name())
}

func TestNewDescriptor_DedupesAndSortsSets(t *testing.T) {
	d, err := NewDescriptor("x").
		DependsOn("b", "a", "b", "").
		Indicators("z", "y", "z").
		Build()

	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, d.Dependencies())
	require.Equal(t, []string{"y", "z"}, d.Indicators())
}

func TestDescriptor_AccessorsReturnCopies(t *testing.T) {
	d, err := NewDescriptor("x").DependsOn("a", "b").Build()
	require.NoError(t, err)

	deps := d.Dependencies()
	deps[0] = "mutated"

	require.Equal(t, []string{"a", "b"}, d.Dependencies())
}

func TestPillar_Valid(t *testing.T) {
	require.True(t, PillarFoundation.Valid())
	require.True(t, PillarSynthesis.Valid())
	require.False(t, Pillar(-1).Valid())
	require.False(t, Pillar(5).Valid())
}

func TestPillar_RoundTrip(t *testing.T) {
	for p := PillarFoundation; p <= PillarSynthesis; p++ {
		parsed, ok := ParsePillar(p.String())
		require.True(t, ok)
		require.Equal(t, p, parsed)
	}

	_, ok := ParsePillar("volatility")
	require.False(t, ok)
}
