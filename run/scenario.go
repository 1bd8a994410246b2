package run

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/gagarinchain/offences/hotstuff"
	"github.com/gagarinchain/offences/offence"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
	"io/ioutil"
	"os"
)

type FractionRule func(offendersCount uint32, validatorSetCount uint32) offence.Perbill

//Rules are offence kinds a scenario may mention, the kind selects the fraction rule
var Rules = map[offence.Kind]FractionRule{
	hotstuff.DoubleVoteKind:       hotstuff.DoubleVoteFraction,
	hotstuff.UnresponsivenessKind: hotstuff.UnresponsivenessFraction,
}

type Scenario struct {
	Reports []ReportData `yaml:"reports"`
}

type ReportData struct {
	Kind       string   `yaml:"kind"`
	Session    uint32   `yaml:"session"`
	Slot       uint64   `yaml:"slot"`
	Validators uint32   `yaml:"validators"`
	Offenders  []string `yaml:"offenders"`
	Reporters  []string `yaml:"reporters"`
}

//ScenarioOffence is an offence read from a scenario file
type ScenarioOffence struct {
	kind              offence.Kind
	offenders         []offence.Offender
	session           offence.SessionIndex
	validatorSetCount uint32
	slot              offence.TimeSlot
	rule              FractionRule
}

func (o *ScenarioOffence) Kind() offence.Kind {
	return o.kind
}

func (o *ScenarioOffence) Offenders() []offence.Offender {
	return o.offenders
}

func (o *ScenarioOffence) SessionIndex() offence.SessionIndex {
	return o.session
}

func (o *ScenarioOffence) ValidatorSetCount() uint32 {
	return o.validatorSetCount
}

func (o *ScenarioOffence) TimeSlot() offence.TimeSlot {
	return o.slot
}

func (o *ScenarioOffence) SlashFraction(offendersCount uint32, validatorSetCount uint32) offence.Perbill {
	return o.rule(offendersCount, validatorSetCount)
}

type Report struct {
	Reporters []offence.Reporter
	Offence   offence.Offence
}

func GetScenarioFromFile(filePath string) (*Scenario, error) {
	file, e := os.Open(filePath)
	if e != nil {
		return nil, errors.Wrap(e, "can't open scenario")
	}
	defer file.Close()

	byteValue, e := ioutil.ReadAll(file)
	if e != nil {
		return nil, errors.Wrap(e, "can't read scenario")
	}

	return ParseScenario(byteValue)
}

func ParseScenario(data []byte) (*Scenario, error) {
	s := &Scenario{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, errors.Wrap(err, "can't unmarshal scenario")
	}
	return s, nil
}

//ToReports validates scenario entries, so that only well formed offences reach the registry
func (s *Scenario) ToReports() ([]*Report, error) {
	var res []*Report
	for i, r := range s.Reports {
		kind, err := offence.ParseKind(r.Kind)
		if err != nil {
			return nil, errors.Wrapf(err, "report %d", i)
		}
		rule, found := Rules[kind]
		if !found {
			return nil, errors.Errorf("report %d: unknown offence kind [%v]", i, r.Kind)
		}

		offenders, err := addresses(r.Offenders)
		if err != nil {
			return nil, errors.Wrapf(err, "report %d offenders", i)
		}
		reporters, err := addresses(r.Reporters)
		if err != nil {
			return nil, errors.Wrapf(err, "report %d reporters", i)
		}
		if len(offenders) > int(r.Validators) {
			return nil, errors.Errorf("report %d: %d offenders in validator set of %d", i, len(offenders), r.Validators)
		}

		res = append(res, &Report{
			Reporters: reporters,
			Offence: &ScenarioOffence{
				kind:              kind,
				offenders:         offenders,
				session:           offence.SessionIndex(r.Session),
				validatorSetCount: r.Validators,
				slot:              offence.TimeSlotFromUint64(r.Slot),
				rule:              rule,
			},
		})
	}
	return res, nil
}

func addresses(hexes []string) ([]common.Address, error) {
	var res []common.Address
	for _, h := range hexes {
		if !common.IsHexAddress(h) {
			return nil, errors.Errorf("[%v] is not an address", h)
		}
		res = append(res, common.HexToAddress(h))
	}
	return res, nil
}
