package run

import (
	"bytes"
	"github.com/ethereum/go-ethereum/common"
	cmn "github.com/gagarinchain/offences/common"
	"github.com/gagarinchain/offences/hotstuff"
	"github.com/gagarinchain/offences/offence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io/ioutil"
	"os"
	"path"
	"strings"
	"testing"
)

const scenario = `
reports:
  - kind: hotstuff:dblvote
    session: 5
    slot: 100
    validators: 10
    offenders: ["0x0000000000000000000000000000000000000001", "0x0000000000000000000000000000000000000002"]
    reporters: ["0x00000000000000000000000000000000000000aa"]
  - kind: hotstuff:dblvote
    session: 5
    slot: 100
    validators: 10
    offenders: ["0x0000000000000000000000000000000000000001", "0x0000000000000000000000000000000000000002"]
    reporters: ["0x00000000000000000000000000000000000000bb"]
  - kind: hotstuff:dblvote
    session: 6
    slot: 7
    validators: 10
    offenders: ["0x0000000000000000000000000000000000000001"]
  - kind: hotstuff:offline
    session: 6
    slot: 6
    validators: 10
    offenders: []
`

func memorySettings(backend string) *cmn.Settings {
	return &cmn.Settings{
		Log:      cmn.LogSettings{Level: "DEBUG"},
		Storage:  cmn.StorageSettings{Backend: backend},
		Registry: cmn.RegistrySettings{Escalation: "linear"},
	}
}

func TestParseScenario(t *testing.T) {
	s, err := ParseScenario([]byte(scenario))
	require.NoError(t, err)
	require.Len(t, s.Reports, 4)

	reports, err := s.ToReports()
	require.NoError(t, err)
	require.Len(t, reports, 4)

	o := reports[0].Offence
	assert.Equal(t, hotstuff.DoubleVoteKind, o.Kind())
	assert.Equal(t, offence.SessionIndex(5), o.SessionIndex())
	assert.Equal(t, offence.TimeSlotFromUint64(100), o.TimeSlot())
	assert.Equal(t, []offence.Offender{common.HexToAddress("0x01"), common.HexToAddress("0x02")}, o.Offenders())
	assert.Equal(t, offence.Perbill(120000000), o.SlashFraction(2, 10))
	assert.Equal(t, []offence.Reporter{common.HexToAddress("0xaa")}, reports[0].Reporters)
	assert.Empty(t, reports[2].Reporters)
}

func TestScenarioValidation(t *testing.T) {
	for name, data := range map[string]string{
		"unknown kind": `reports: [{kind: "grandpa", session: 1, slot: 1, validators: 4, offenders: []}]`,
		"long kind":    `reports: [{kind: "this-kind-is-far-too-long", validators: 4}]`,
		"bad offender": `reports: [{kind: "hotstuff:offline", validators: 4, offenders: ["nope"]}]`,
		"bad reporter": `reports: [{kind: "hotstuff:offline", validators: 4, reporters: ["0x12"]}]`,
		"too many":     `reports: [{kind: "hotstuff:offline", validators: 1, offenders: ["0x0000000000000000000000000000000000000001", "0x0000000000000000000000000000000000000002"]}]`,
	} {
		t.Run(name, func(t *testing.T) {
			s, err := ParseScenario([]byte(data))
			require.NoError(t, err)
			_, err = s.ToReports()
			assert.Error(t, err)
		})
	}

	_, err := ParseScenario([]byte("reports: {"))
	assert.Error(t, err)
}

func TestReplay(t *testing.T) {
	for _, backend := range []string{"leveldb", "datastore"} {
		t.Run(backend, func(t *testing.T) {
			out := &bytes.Buffer{}
			printer := NewBatchPrinter(out, false)
			ctx, err := CreateContext(memorySettings(backend), &Handlers{OnOffence: printer, LateReport: printer})
			require.NoError(t, err)
			defer ctx.Close()

			s, err := ParseScenario([]byte(scenario))
			require.NoError(t, err)
			reports, err := s.ToReports()
			require.NoError(t, err)

			res, err := Replay(ctx, reports)
			require.NoError(t, err)
			assert.Equal(t, &ReplayResult{Reports: 4, Incidents: 2, Duplicates: 1}, res)

			c, err := ctx.Registry().Count(hotstuff.DoubleVoteKind, common.HexToAddress("0x01"))
			require.NoError(t, err)
			assert.Equal(t, uint32(2), c)

			lines := strings.Split(strings.TrimSpace(out.String()), "\n")
			require.Len(t, lines, 5)
			assert.Equal(t, "slash 0x0000000000000000000000000000000000000001 12.0000000% reporters=1", lines[0])
			assert.Equal(t, "slash 0x0000000000000000000000000000000000000002 12.0000000% reporters=1", lines[1])
			assert.True(t, strings.HasPrefix(lines[2], "late hotstuff:dblvote/5/100"))
			assert.True(t, strings.HasSuffix(lines[3], "reporters=2"))
			//second double vote of 0x01, base 3% doubled
			assert.Equal(t, "slash 0x0000000000000000000000000000000000000001 6.0000000% reporters=0", lines[4])
		})
	}
}

func TestBatchPrinterDump(t *testing.T) {
	out := &bytes.Buffer{}
	p := NewBatchPrinter(out, true)
	p.OnOffence([]offence.Details{{Offender: common.HexToAddress("0x01")}}, []offence.Perbill{offence.One})
	assert.Contains(t, out.String(), "1000000000")
}

func TestCreateContextRejectsBadSettings(t *testing.T) {
	s := memorySettings("leveldb")
	s.Registry.Escalation = "exponential"
	_, err := CreateContext(s, nil)
	assert.Error(t, err)

	s = memorySettings("bolt")
	_, err = CreateContext(s, nil)
	assert.Error(t, err)
}

func TestGetScenarioFromFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "offences-run")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	file := path.Join(dir, "scenario.yaml")
	require.NoError(t, ioutil.WriteFile(file, []byte(scenario), 0644))

	s, err := GetScenarioFromFile(file)
	require.NoError(t, err)
	assert.Len(t, s.Reports, 4)

	_, err = GetScenarioFromFile(path.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
