package offence

var (
	_ ReportOffence     = (*NullReporter)(nil)
	_ OnOffenceHandler  = (*NullHandler)(nil)
	_ LateReportHandler = (*NullLateReportHandler)(nil)
)

//ReportOffence is what detection modules call, they never learn what sits behind it
type ReportOffence interface {
	ReportOffence(reporters []Reporter, o Offence)
}

//OnOffenceHandler receives finalized slashing batches, offenders[i] is slashed by fractions[i].
//Batches arrive one at a time in commit order, the handler may report new offences from OnOffence.
type OnOffenceHandler interface {
	OnOffence(offenders []Details, fractions []Perbill)
}

//LateReportHandler receives reporters that joined an incident after it was processed
type LateReportHandler interface {
	OnLateReport(key ReportKey, offenders []Details)
}

type NullReporter struct {
}

func (n *NullReporter) ReportOffence(reporters []Reporter, o Offence) {
}

type NullHandler struct {
}

func (n *NullHandler) OnOffence(offenders []Details, fractions []Perbill) {
}

type NullLateReportHandler struct {
}

func (n *NullLateReportHandler) OnLateReport(key ReportKey, offenders []Details) {
}
