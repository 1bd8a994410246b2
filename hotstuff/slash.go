package hotstuff

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/gagarinchain/offences/offence"
	"github.com/op/go-logging"
	"github.com/pkg/errors"
	"sync"
)

var log = logging.MustGetLogger("hotstuff")

var (
	DoubleVoteKind       = offence.NewKind("hotstuff:dblvote")
	UnresponsivenessKind = offence.NewKind("hotstuff:offline")
)

var (
	ErrDifferentVoters  = errors.New("votes are signed by different voters")
	ErrDifferentHeights = errors.New("votes are for different epochs or heights")
	ErrSameBlock        = errors.New("votes for the same block are not equivocation")
	ErrNegativeHeight   = errors.New("epoch and height can't be negative")
)

var (
	_ offence.Offence = (*DoubleVoteOffence)(nil)
	_ offence.Offence = (*UnresponsivenessOffence)(nil)
)

//Vote carries only what equivocation checks need, signatures are verified before votes get here
type Vote struct {
	Voter     common.Address
	Epoch     int32
	Height    int32
	BlockHash common.Hash
}

//1. Vote only once at height -- DoubleVoteEquivocation
//2. Sign votes during the epoch -- UnresponsivenessOffence
type DoubleVoteEquivocation struct {
	firstVote  Vote
	secondVote Vote
}

func NewDoubleVoteEquivocation(first, second Vote) (*DoubleVoteEquivocation, error) {
	if first.Voter != second.Voter {
		return nil, ErrDifferentVoters
	}
	if first.Epoch != second.Epoch || first.Height != second.Height {
		return nil, ErrDifferentHeights
	}
	if first.BlockHash == second.BlockHash {
		return nil, ErrSameBlock
	}
	if first.Epoch < 0 || first.Height < 0 {
		return nil, ErrNegativeHeight
	}
	return &DoubleVoteEquivocation{firstVote: first, secondVote: second}, nil
}

func (e *DoubleVoteEquivocation) FirstVote() Vote {
	return e.firstVote
}

func (e *DoubleVoteEquivocation) SecondVote() Vote {
	return e.secondVote
}

func (e *DoubleVoteEquivocation) Offence(validatorSetCount uint32) *DoubleVoteOffence {
	return &DoubleVoteOffence{
		offender:          e.firstVote.Voter,
		epoch:             e.firstVote.Epoch,
		height:            e.firstVote.Height,
		validatorSetCount: validatorSetCount,
	}
}

//DoubleVoteOffence is reported once per voter, so the registry sees a single offender per height
type DoubleVoteOffence struct {
	offender          common.Address
	epoch             int32
	height            int32
	validatorSetCount uint32
}

func (o *DoubleVoteOffence) Kind() offence.Kind {
	return DoubleVoteKind
}

func (o *DoubleVoteOffence) Offenders() []offence.Offender {
	return []offence.Offender{o.offender}
}

func (o *DoubleVoteOffence) SessionIndex() offence.SessionIndex {
	return offence.SessionIndex(o.epoch)
}

func (o *DoubleVoteOffence) ValidatorSetCount() uint32 {
	return o.validatorSetCount
}

func (o *DoubleVoteOffence) TimeSlot() offence.TimeSlot {
	return offence.TimeSlotFromUint64(uint64(o.height))
}

//SlashFraction is min(1, 3*(n/total)^2), many colluders look like an attack and are punished harder
func (o *DoubleVoteOffence) SlashFraction(offendersCount uint32, validatorSetCount uint32) offence.Perbill {
	return DoubleVoteFraction(offendersCount, validatorSetCount)
}

func DoubleVoteFraction(offendersCount uint32, validatorSetCount uint32) offence.Perbill {
	n, total := uint64(offendersCount), uint64(validatorSetCount)
	return offence.PerbillFromRational(3*n*n, total*total)
}

//UnresponsivenessOffence names validators that did not sign anything during an epoch
type UnresponsivenessOffence struct {
	offenders         []common.Address
	epoch             int32
	validatorSetCount uint32
}

func NewUnresponsivenessOffence(epoch int32, validatorSetCount uint32, offenders []common.Address) (*UnresponsivenessOffence, error) {
	if epoch < 0 {
		return nil, ErrNegativeHeight
	}
	return &UnresponsivenessOffence{offenders: offenders, epoch: epoch, validatorSetCount: validatorSetCount}, nil
}

func (o *UnresponsivenessOffence) Kind() offence.Kind {
	return UnresponsivenessKind
}

func (o *UnresponsivenessOffence) Offenders() []offence.Offender {
	return o.offenders
}

func (o *UnresponsivenessOffence) SessionIndex() offence.SessionIndex {
	return offence.SessionIndex(o.epoch)
}

func (o *UnresponsivenessOffence) ValidatorSetCount() uint32 {
	return o.validatorSetCount
}

//TimeSlot is the epoch itself, there is a single unresponsiveness incident per epoch
func (o *UnresponsivenessOffence) TimeSlot() offence.TimeSlot {
	return offence.TimeSlotFromUint64(uint64(o.epoch))
}

func (o *UnresponsivenessOffence) SlashFraction(offendersCount uint32, validatorSetCount uint32) offence.Perbill {
	return UnresponsivenessFraction(offendersCount, validatorSetCount)
}

//UnresponsivenessFraction tolerates up to 10% + 1 silent validators, above that it grows
//as 7% of 3*(n - tolerated)/total
func UnresponsivenessFraction(offendersCount uint32, validatorSetCount uint32) offence.Perbill {
	tolerated := validatorSetCount/10 + 1
	if offendersCount <= tolerated {
		return offence.Zero
	}
	x := offence.PerbillFromRational(3*uint64(offendersCount-tolerated), uint64(validatorSetCount))
	return x.Mul(offence.PerbillFromPercent(7))
}

type voteKey struct {
	voter  common.Address
	epoch  int32
	height int32
}

//VoteWatcher remembers first vote of every voter at a height and reports a conflicting one
type VoteWatcher struct {
	mu                sync.Mutex
	me                common.Address
	reporter          offence.ReportOffence
	validatorSetCount func(epoch int32) uint32
	votes             map[voteKey]Vote
}

func NewVoteWatcher(me common.Address, reporter offence.ReportOffence, validatorSetCount func(epoch int32) uint32) *VoteWatcher {
	if validatorSetCount == nil {
		panic("vote watcher needs validator set count")
	}
	if reporter == nil {
		reporter = &offence.NullReporter{}
	}
	return &VoteWatcher{
		me:                me,
		reporter:          reporter,
		validatorSetCount: validatorSetCount,
		votes:             make(map[voteKey]Vote),
	}
}

//OnVote returns equivocation if vote conflicts with the one seen before
func (w *VoteWatcher) OnVote(vote Vote) *DoubleVoteEquivocation {
	w.mu.Lock()
	key := voteKey{voter: vote.Voter, epoch: vote.Epoch, height: vote.Height}
	first, found := w.votes[key]
	if !found {
		w.votes[key] = vote
	}
	w.mu.Unlock()

	if !found {
		return nil
	}

	eq, err := NewDoubleVoteEquivocation(first, vote)
	if err != nil {
		return nil
	}

	log.Warningf("Voter %v voted twice at epoch %d height %d", vote.Voter.Hex(), vote.Epoch, vote.Height)
	w.reporter.ReportOffence([]offence.Reporter{w.me}, eq.Offence(w.validatorSetCount(vote.Epoch)))

	return eq
}

//Prune forgets votes of epochs before epoch
func (w *VoteWatcher) Prune(epoch int32) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for k := range w.votes {
		if k.epoch < epoch {
			delete(w.votes, k)
		}
	}
}
