package registry

import (
	"github.com/gagarinchain/offences/offence"
	"github.com/pkg/errors"
)

const (
	LinearEscalationName = "linear"
	NoEscalationName     = "none"
)

//Escalation combines the base fraction of an incident with the number of incidents
//of the same kind the offender was already punished for.
//Result must be non-decreasing in count and equal to base when count is zero.
type Escalation interface {
	Escalate(base offence.Perbill, count uint32) offence.Perbill
}

//LinearEscalation adds Step of the base fraction for every previous incident,
//with Step of 100% the second incident doubles the base, the third triples it
type LinearEscalation struct {
	Step offence.Perbill
}

func (e *LinearEscalation) Escalate(base offence.Perbill, count uint32) offence.Perbill {
	return base.Scale(offence.Billion + uint64(count)*uint64(e.Step))
}

type NoEscalation struct {
}

func (e *NoEscalation) Escalate(base offence.Perbill, count uint32) offence.Perbill {
	return base
}

func DefaultEscalation() Escalation {
	return &LinearEscalation{Step: offence.One}
}

func EscalationByName(name string, stepPercent uint32) (Escalation, error) {
	switch name {
	case "", LinearEscalationName:
		if stepPercent == 0 {
			return DefaultEscalation(), nil
		}
		return &LinearEscalation{Step: offence.PerbillFromPercent(stepPercent)}, nil
	case NoEscalationName:
		return &NoEscalation{}, nil
	}
	return nil, errors.Errorf("unknown escalation policy [%v]", name)
}
