package registry

import (
	"github.com/gagarinchain/offences/offence"
	"github.com/gagarinchain/offences/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestIncidentSerialization(t *testing.T) {
	key := offence.ReportKey{Kind: K1, Session: 5, TimeSlot: offence.TimeSlotFromUint64(100)}
	inc := &Incident{
		Key: key,
		Offenders: []offence.Details{
			{Offender: V1, Reporters: []offence.Reporter{A, B}},
			{Offender: V2, Reporters: []offence.Reporter{A, B}},
		},
		Fractions: []offence.Perbill{120000000, offence.Zero},
	}

	data, err := inc.Serialize()
	require.NoError(t, err)

	decoded, err := DeserializeIncident(key, data)
	require.NoError(t, err)
	assert.Equal(t, inc, decoded)

	_, err = DeserializeIncident(key, []byte{0x01, 0x02})
	assert.Error(t, err)
}

func TestCountEncoding(t *testing.T) {
	for _, c := range []uint32{0, 1, 127, 128, 1 << 20, ^uint32(0)} {
		decoded, err := decodeCount(encodeCount(c))
		require.NoError(t, err)
		assert.Equal(t, c, decoded)
	}

	_, err := decodeCount(nil)
	assert.Error(t, err)
}

func TestPersisterCommit(t *testing.T) {
	s, err := storage.NewLevelStorage("", nil)
	require.NoError(t, err)
	p := &Persister{storage: s}

	key := offence.ReportKey{Kind: K1, Session: 1, TimeSlot: offence.TimeSlotFromUint64(1)}
	_, err = p.Incident(key)
	assert.Equal(t, ErrIncidentNotFound, err)

	inc := &Incident{Key: key, Offenders: []offence.Details{{Offender: V1}}, Fractions: []offence.Perbill{offence.One}}
	require.NoError(t, p.Commit(inc, map[offence.Offender]uint32{V1: 3}))

	assert.True(t, p.Contains(key))
	c, err := p.Count(K1, V1)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), c)

	loaded, err := p.Incident(key)
	require.NoError(t, err)
	assert.Equal(t, offence.One, loaded.Fractions[0])
	assert.Empty(t, loaded.Offenders[0].Reporters)
}
