package offence

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

const KindLength = 16

//Kind names a class of misbehaviour, it is assigned statically by a detection module
type Kind [KindLength]byte

//NewKind panics on names that are empty or longer than KindLength, kinds are wired statically
func NewKind(name string) Kind {
	k, err := ParseKind(name)
	if err != nil {
		panic(err)
	}
	return k
}

func ParseKind(name string) (Kind, error) {
	if len(name) == 0 || len(name) > KindLength {
		return Kind{}, errors.Errorf("offence kind name [%v] must be 1..%d bytes", name, KindLength)
	}
	var k Kind
	copy(k[:], name)
	return k, nil
}

func (k Kind) String() string {
	return string(bytes.TrimRight(k[:], "\x00"))
}

type SessionIndex uint32

//TimeSlot is an unsigned 128 bit point on the timescale of a single offence kind
type TimeSlot struct {
	Hi uint64
	Lo uint64
}

func TimeSlotFromUint64(v uint64) TimeSlot {
	return TimeSlot{Lo: v}
}

func (t TimeSlot) Cmp(other TimeSlot) int {
	switch {
	case t.Hi < other.Hi:
		return -1
	case t.Hi > other.Hi:
		return 1
	case t.Lo < other.Lo:
		return -1
	case t.Lo > other.Lo:
		return 1
	}
	return 0
}

//Bytes is big endian, so byte order of encoded slots equals numeric order
func (t TimeSlot) Bytes() [16]byte {
	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], t.Hi)
	binary.BigEndian.PutUint64(b[8:], t.Lo)
	return b
}

func TimeSlotFromBytes(b []byte) (TimeSlot, error) {
	if len(b) != 16 {
		return TimeSlot{}, errors.Errorf("time slot must be 16 bytes, got %d", len(b))
	}
	return TimeSlot{Hi: binary.BigEndian.Uint64(b[:8]), Lo: binary.BigEndian.Uint64(b[8:])}, nil
}

func (t TimeSlot) String() string {
	if t.Hi == 0 {
		return fmt.Sprintf("%d", t.Lo)
	}
	return fmt.Sprintf("0x%x%016x", t.Hi, t.Lo)
}

type Offender = common.Address
type Reporter = common.Address

//ReportKey identifies a single incident, reports with equal keys describe the same occurrence
type ReportKey struct {
	Kind     Kind
	Session  SessionIndex
	TimeSlot TimeSlot
}

const ReportKeyLength = KindLength + 4 + 16

func KeyOf(o Offence) ReportKey {
	return ReportKey{Kind: o.Kind(), Session: o.SessionIndex(), TimeSlot: o.TimeSlot()}
}

//Bytes encodes key as kind || session || slot, ordered by kind, then session, then slot
func (k ReportKey) Bytes() []byte {
	b := make([]byte, ReportKeyLength)
	copy(b, k.Kind[:])
	binary.BigEndian.PutUint32(b[KindLength:], uint32(k.Session))
	slot := k.TimeSlot.Bytes()
	copy(b[KindLength+4:], slot[:])
	return b
}

func ReportKeyFromBytes(b []byte) (ReportKey, error) {
	if len(b) != ReportKeyLength {
		return ReportKey{}, errors.Errorf("report key must be %d bytes, got %d", ReportKeyLength, len(b))
	}
	var k ReportKey
	copy(k.Kind[:], b[:KindLength])
	k.Session = SessionIndex(binary.BigEndian.Uint32(b[KindLength:]))
	slot, err := TimeSlotFromBytes(b[KindLength+4:])
	if err != nil {
		return ReportKey{}, err
	}
	k.TimeSlot = slot
	return k, nil
}

func (k ReportKey) String() string {
	return fmt.Sprintf("%v/%d/%v", k.Kind, k.Session, k.TimeSlot)
}
