package registry

import (
	"github.com/gagarinchain/offences/offence"
)

var _ offence.ReportOffence = (*Relay)(nil)

//Relay is the detection side entry point, it never fails towards the caller
type Relay struct {
	registry *Registry
}

func NewRelay(registry *Registry) *Relay {
	return &Relay{registry: registry}
}

func (r *Relay) ReportOffence(reporters []offence.Reporter, o offence.Offence) {
	if err := r.registry.Report(reporters, o); err != nil {
		log.Errorf("Can't process report of %v: %v", offence.KeyOf(o), err)
	}
}
