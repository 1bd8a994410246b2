package run

import (
	"fmt"
	"github.com/davecgh/go-spew/spew"
	"github.com/gagarinchain/offences/offence"
	"io"
)

type ReplayResult struct {
	Reports    int
	Incidents  int
	Duplicates int
}

//Replay feeds reports in order, a report of an already known incident only adds reporters
func Replay(ctx *Context, reports []*Report) (*ReplayResult, error) {
	res := &ReplayResult{}
	for _, r := range reports {
		key := offence.KeyOf(r.Offence)
		known := ctx.registry.IsKnown(key)
		if err := ctx.registry.Report(r.Reporters, r.Offence); err != nil {
			return res, err
		}

		res.Reports++
		switch {
		case known:
			res.Duplicates++
		case ctx.registry.IsKnown(key):
			res.Incidents++
		}
	}

	log.Infof("Replayed %d reports, %d new incidents, %d duplicates", res.Reports, res.Incidents, res.Duplicates)
	return res, nil
}

//BatchPrinter writes every emitted batch to out
type BatchPrinter struct {
	out  io.Writer
	dump bool
}

func NewBatchPrinter(out io.Writer, dump bool) *BatchPrinter {
	return &BatchPrinter{out: out, dump: dump}
}

func (p *BatchPrinter) OnOffence(offenders []offence.Details, fractions []offence.Perbill) {
	if p.dump {
		spew.Fdump(p.out, offenders, fractions)
		return
	}
	for i, d := range offenders {
		fmt.Fprintf(p.out, "slash %v %v reporters=%d\n", d.Offender.Hex(), fractions[i], len(d.Reporters))
	}
}

func (p *BatchPrinter) OnLateReport(key offence.ReportKey, offenders []offence.Details) {
	if p.dump {
		spew.Fdump(p.out, key, offenders)
		return
	}
	for _, d := range offenders {
		fmt.Fprintf(p.out, "late %v %v reporters=%d\n", key, d.Offender.Hex(), len(d.Reporters))
	}
}
