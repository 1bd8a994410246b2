package registry

import (
	"github.com/emirpasic/gods/sets/linkedhashset"
	"github.com/gagarinchain/offences/offence"
	"github.com/gagarinchain/offences/storage"
	"github.com/op/go-logging"
	"github.com/pkg/errors"
	"sync"
)

var log = logging.MustGetLogger("registry")

type Config struct {
	Storage    storage.Storage
	Handler    offence.OnOffenceHandler
	LateReport offence.LateReportHandler
	Escalation Escalation
}

//Registry deduplicates incidents, keeps per kind offence counters and computes slash fractions.
//Every Report is processed to completion under the lock, so nobody observes half updated counters.
//Batches are delivered to handlers outside the lock in commit order, one delivery at a time,
//so a handler may report follow-on offences or query the registry.
type Registry struct {
	mu          sync.Mutex
	persister   *Persister
	handler     offence.OnOffenceHandler
	lateReport  offence.LateReportHandler
	escalation  Escalation
	pending     []notification
	dispatching bool
}

//notification is a committed batch waiting for delivery
type notification struct {
	late      bool
	key       offence.ReportKey
	offenders []offence.Details
	fractions []offence.Perbill
}

func New(cfg *Config) *Registry {
	r := &Registry{
		persister:  &Persister{storage: cfg.Storage},
		handler:    cfg.Handler,
		lateReport: cfg.LateReport,
		escalation: cfg.Escalation,
	}
	if r.handler == nil {
		r.handler = &offence.NullHandler{}
	}
	if r.lateReport == nil {
		r.lateReport = &offence.NullLateReportHandler{}
	}
	if r.escalation == nil {
		r.escalation = DefaultEscalation()
	}
	return r
}

//Report processes a report and delivers what it committed. When called from a handler
//or while another goroutine delivers, the batch is queued and delivered by that caller.
func (r *Registry) Report(reporters []offence.Reporter, o offence.Offence) error {
	err := r.process(reporters, o)
	r.dispatch()
	return err
}

func (r *Registry) process(reporters []offence.Reporter, o offence.Offence) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := offence.KeyOf(o)
	known, err := r.persister.Incident(key)
	switch {
	case err == nil:
		return r.attachReporters(known, reporters)
	case err != ErrIncidentNotFound:
		return err
	}

	offenders := uniqueOffenders(o.Offenders())
	if len(offenders) == 0 {
		log.Debugf("Incident %v has no offenders, skipping", key)
		return nil
	}

	n := uint32(len(offenders))
	setCount := o.ValidatorSetCount()
	if setCount < n {
		panic(errors.Errorf("incident %v names %d offenders in validator set of %d", key, n, setCount))
	}

	base := offence.CheckFraction(key.Kind, o.SlashFraction(n, setCount))
	reporterList := mergeReporters(nil, reporters)

	inc := &Incident{Key: key}
	counts := make(map[offence.Offender]uint32, n)
	for _, offender := range offenders {
		c, err := r.persister.Count(key.Kind, offender)
		if err != nil {
			return err
		}
		fraction := offence.CheckFraction(key.Kind, r.escalation.Escalate(base, c))
		counts[offender] = c + 1

		inc.Offenders = append(inc.Offenders, offence.Details{
			Offender:  offender,
			Reporters: append([]offence.Reporter(nil), reporterList...),
		})
		inc.Fractions = append(inc.Fractions, fraction)
	}

	if err := r.persister.Commit(inc, counts); err != nil {
		return err
	}

	log.Infof("Incident %v with %d offenders out of %d, base fraction %v", key, n, setCount, base)
	r.pending = append(r.pending, notification{key: key, offenders: inc.Offenders, fractions: inc.Fractions})

	return nil
}

//attachReporters merges new reporters into an already processed incident, fractions and counters stay untouched
func (r *Registry) attachReporters(inc *Incident, reporters []offence.Reporter) error {
	added := false
	for i, d := range inc.Offenders {
		merged := mergeReporters(d.Reporters, reporters)
		if len(merged) != len(d.Reporters) {
			added = true
		}
		inc.Offenders[i].Reporters = merged
	}

	if !added {
		log.Debugf("Duplicate report of %v", inc.Key)
		return nil
	}

	if err := r.persister.PutIncident(inc); err != nil {
		return errors.Wrapf(err, "can't store reporters of %v", inc.Key)
	}

	log.Debugf("Duplicate report of %v brought new reporters", inc.Key)
	r.pending = append(r.pending, notification{late: true, key: inc.Key, offenders: inc.Offenders})

	return nil
}

//dispatch drains pending notifications, only one goroutine delivers at a time
func (r *Registry) dispatch() {
	r.mu.Lock()
	if r.dispatching {
		r.mu.Unlock()
		return
	}
	r.dispatching = true
	r.mu.Unlock()

	delivered := false
	defer func() {
		if !delivered {
			r.mu.Lock()
			r.dispatching = false
			r.mu.Unlock()
		}
	}()

	for {
		r.mu.Lock()
		if len(r.pending) == 0 {
			r.dispatching = false
			r.mu.Unlock()
			delivered = true
			return
		}
		n := r.pending[0]
		r.pending = r.pending[1:]
		r.mu.Unlock()

		if n.late {
			r.lateReport.OnLateReport(n.key, n.offenders)
		} else {
			r.handler.OnOffence(n.offenders, n.fractions)
		}
	}
}

func (r *Registry) Count(kind offence.Kind, offender offence.Offender) (uint32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.persister.Count(kind, offender)
}

func (r *Registry) IsKnown(key offence.ReportKey) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.persister.Contains(key)
}

func (r *Registry) Incident(key offence.ReportKey) (*Incident, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.persister.Incident(key)
}

func (r *Registry) Incidents(kind offence.Kind) ([]*Incident, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.persister.Incidents(kind)
}

func uniqueOffenders(offenders []offence.Offender) []offence.Offender {
	set := linkedhashset.New()
	for _, o := range offenders {
		set.Add(o)
	}

	res := make([]offence.Offender, 0, set.Size())
	for _, v := range set.Values() {
		res = append(res, v.(offence.Offender))
	}
	return res
}

//mergeReporters appends reporters not yet in existing, keeping arrival order
func mergeReporters(existing []offence.Reporter, reporters []offence.Reporter) []offence.Reporter {
	set := linkedhashset.New()
	for _, r := range existing {
		set.Add(r)
	}
	for _, r := range reporters {
		set.Add(r)
	}

	res := make([]offence.Reporter, 0, set.Size())
	for _, v := range set.Values() {
		res = append(res, v.(offence.Reporter))
	}
	return res
}
