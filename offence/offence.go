package offence

import (
	"github.com/pkg/errors"
)

//Offence describes a single incident that was already validated by a detection module.
//Implementations are plain values, two offences with equal ReportKey are the same incident.
type Offence interface {
	Kind() Kind
	//Offenders may contain duplicates, the registry treats it as a set
	Offenders() []Offender
	SessionIndex() SessionIndex
	//ValidatorSetCount is the size of the validator set at SessionIndex
	ValidatorSetCount() uint32
	TimeSlot() TimeSlot
	//SlashFraction must depend on its arguments only
	SlashFraction(offendersCount uint32, validatorSetCount uint32) Perbill
}

type Details struct {
	Offender  Offender
	Reporters []Reporter
}

//CheckFraction panics when a fraction rule produced a value above One
func CheckFraction(kind Kind, p Perbill) Perbill {
	if !p.IsValid() {
		panic(errors.Errorf("slash fraction %d of kind [%v] exceeds one", uint32(p), kind))
	}
	return p
}
