package registry

import (
	"github.com/gagarinchain/offences/offence"
	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"testing"
)

func messages(backend *logging.MemoryBackend) (res []string) {
	for n := backend.Head(); n != nil; n = n.Next() {
		res = append(res, n.Record.Message())
	}
	return res
}

func TestLogHandlerLogsEveryEntry(t *testing.T) {
	backend := logging.InitForTesting(logging.INFO)
	h := &LogHandler{}
	r := newRegistry(t, h, nil)
	r.lateReport = h

	assert.NoError(t, r.Report([]offence.Reporter{A}, scenarioOffence(V1, V2)))
	assert.NoError(t, r.Report([]offence.Reporter{B}, scenarioOffence(V1, V2)))

	msgs := messages(backend)
	assert.Contains(t, msgs, "Slash "+V1.Hex()+" by 12.0000000%, reported by 1")
	assert.Contains(t, msgs, "Slash "+V2.Hex()+" by 12.0000000%, reported by 1")
	assert.Contains(t, msgs, "Late report of "+offence.KeyOf(scenarioOffence(V1)).String()+" for "+V2.Hex()+", reported by 2")
}
