package registry

import (
	"github.com/gagarinchain/offences/offence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestEscalationEqualsBaseWithoutHistory(t *testing.T) {
	for _, e := range []Escalation{DefaultEscalation(), &LinearEscalation{Step: offence.PerbillFromPercent(25)}, &NoEscalation{}} {
		for _, base := range []offence.Perbill{offence.Zero, 1, offence.PerbillFromPercent(12), offence.One} {
			assert.Equal(t, base, e.Escalate(base, 0))
		}
	}
}

func TestEscalationIsMonotonic(t *testing.T) {
	policies := []Escalation{DefaultEscalation(), &LinearEscalation{Step: offence.PerbillFromPercent(10)}, &NoEscalation{}}
	bases := []offence.Perbill{offence.Zero, 7, offence.PerbillFromPercent(3), offence.PerbillFromPercent(60), offence.One}
	counts := []uint32{0, 1, 2, 3, 10, 1000, 1 << 20, ^uint32(0)}

	for _, e := range policies {
		for _, base := range bases {
			prev := offence.Zero
			for _, c := range counts {
				f := e.Escalate(base, c)
				assert.True(t, f >= prev, "%T base %v count %d", e, base, c)
				assert.True(t, f.IsValid())
				prev = f
			}
		}
	}
}

func TestLinearEscalation(t *testing.T) {
	base := offence.PerbillFromPercent(12)

	assert.Equal(t, offence.PerbillFromPercent(24), DefaultEscalation().Escalate(base, 1))
	assert.Equal(t, offence.PerbillFromPercent(36), DefaultEscalation().Escalate(base, 2))
	assert.Equal(t, offence.One, DefaultEscalation().Escalate(base, 9))

	half := &LinearEscalation{Step: offence.PerbillFromPercent(50)}
	assert.Equal(t, offence.PerbillFromPercent(18), half.Escalate(base, 1))
}

func TestEscalationByName(t *testing.T) {
	e, err := EscalationByName("", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultEscalation(), e)

	e, err = EscalationByName(LinearEscalationName, 50)
	require.NoError(t, err)
	assert.Equal(t, &LinearEscalation{Step: offence.PerbillFromPercent(50)}, e)

	e, err = EscalationByName(NoEscalationName, 0)
	require.NoError(t, err)
	assert.IsType(t, &NoEscalation{}, e)

	_, err = EscalationByName("exponential", 0)
	assert.Error(t, err)
}
