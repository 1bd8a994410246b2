package registry

import (
	"encoding/binary"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/gagarinchain/offences/offence"
	"github.com/gagarinchain/offences/storage"
	"github.com/pkg/errors"
)

var ErrIncidentNotFound = errors.New("incident not found")

//Incident is a processed ledger entry together with what was emitted for it
type Incident struct {
	Key       offence.ReportKey
	Offenders []offence.Details
	Fractions []offence.Perbill
}

type incidentRecord struct {
	Offenders []offence.Details
	Fractions []uint32
}

func (i *Incident) Serialize() ([]byte, error) {
	rec := &incidentRecord{Offenders: i.Offenders}
	for _, f := range i.Fractions {
		rec.Fractions = append(rec.Fractions, uint32(f))
	}
	return rlp.EncodeToBytes(rec)
}

func DeserializeIncident(key offence.ReportKey, data []byte) (*Incident, error) {
	rec := &incidentRecord{}
	if err := rlp.DecodeBytes(data, rec); err != nil {
		return nil, errors.Wrapf(err, "can't decode incident %v", key)
	}
	if len(rec.Offenders) != len(rec.Fractions) {
		return nil, errors.Errorf("incident %v is corrupted, %d offenders and %d fractions",
			key, len(rec.Offenders), len(rec.Fractions))
	}

	inc := &Incident{Key: key, Offenders: rec.Offenders}
	for _, f := range rec.Fractions {
		inc.Fractions = append(inc.Fractions, offence.Perbill(f))
	}
	return inc, nil
}

func counterKey(kind offence.Kind, offender offence.Offender) []byte {
	k := make([]byte, 0, offence.KindLength+len(offender))
	k = append(k, kind[:]...)
	return append(k, offender.Bytes()...)
}

func encodeCount(c uint32) []byte {
	buf := make([]byte, binary.MaxVarintLen32)
	n := binary.PutUvarint(buf, uint64(c))
	return buf[:n]
}

func decodeCount(value []byte) (uint32, error) {
	c, n := binary.Uvarint(value)
	if n <= 0 || c > uint64(^uint32(0)) {
		return 0, errors.New("wrong offence count encoding")
	}
	return uint32(c), nil
}

type Persister struct {
	storage storage.Storage
}

func (p *Persister) Contains(key offence.ReportKey) bool {
	return p.storage.Contains(storage.Report, key.Bytes())
}

func (p *Persister) Incident(key offence.ReportKey) (*Incident, error) {
	value, err := p.storage.Get(storage.Report, key.Bytes())
	if err == storage.ErrNotFound {
		return nil, ErrIncidentNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "can't load incident %v", key)
	}
	return DeserializeIncident(key, value)
}

func (p *Persister) PutIncident(inc *Incident) error {
	value, err := inc.Serialize()
	if err != nil {
		return err
	}
	return p.storage.Put(storage.Report, inc.Key.Bytes(), value)
}

//Incidents returns every ledger entry of kind ordered by session and time slot
func (p *Persister) Incidents(kind offence.Kind) ([]*Incident, error) {
	var res []*Incident
	for _, k := range p.storage.Keys(storage.Report, kind[:]) {
		key, err := offence.ReportKeyFromBytes(k)
		if err != nil {
			return nil, err
		}
		inc, err := p.Incident(key)
		if err != nil {
			return nil, err
		}
		res = append(res, inc)
	}
	return res, nil
}

func (p *Persister) Count(kind offence.Kind, offender offence.Offender) (uint32, error) {
	value, err := p.storage.Get(storage.OffenceCount, counterKey(kind, offender))
	if err == storage.ErrNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrapf(err, "can't load offence count of %v", offender.Hex())
	}
	return decodeCount(value)
}

//Commit writes a new ledger entry with updated counters in a single batch
func (p *Persister) Commit(inc *Incident, counts map[offence.Offender]uint32) error {
	value, err := inc.Serialize()
	if err != nil {
		return err
	}

	batch := p.storage.NewBatch()
	batch.Put(storage.Report, inc.Key.Bytes(), value)
	for _, d := range inc.Offenders {
		batch.Put(storage.OffenceCount, counterKey(inc.Key.Kind, d.Offender), encodeCount(counts[d.Offender]))
	}

	return errors.Wrapf(batch.Write(), "can't commit incident %v", inc.Key)
}
