package registry

import (
	"github.com/gagarinchain/offences/offence"
)

var (
	_ offence.OnOffenceHandler  = (*LogHandler)(nil)
	_ offence.LateReportHandler = (*LogHandler)(nil)
)

//LogHandler writes every emitted batch to the registry log
type LogHandler struct {
}

func (h *LogHandler) OnOffence(offenders []offence.Details, fractions []offence.Perbill) {
	for i, d := range offenders {
		log.Infof("Slash %v by %v, reported by %d", d.Offender.Hex(), fractions[i], len(d.Reporters))
	}
}

func (h *LogHandler) OnLateReport(key offence.ReportKey, offenders []offence.Details) {
	for _, d := range offenders {
		log.Infof("Late report of %v for %v, reported by %d", key, d.Offender.Hex(), len(d.Reporters))
	}
}
