package storage

import "github.com/pkg/errors"

var ErrNotFound = errors.New("storage: not found")

type ResourceType byte

const Report = ResourceType(0x0)
const OffenceCount = ResourceType(0x1)

//Storage is a flat key value store where every key is namespaced by ResourceType.
//Implementations must return ErrNotFound from Get when the key is absent.
type Storage interface {
	Put(rtype ResourceType, key []byte, value []byte) error
	Get(rtype ResourceType, key []byte) (value []byte, err error)
	Contains(rtype ResourceType, key []byte) bool
	Delete(rtype ResourceType, key []byte) error
	//Keys returns keys with given prefix, resource type byte stripped, in ascending byte order
	Keys(rtype ResourceType, keyPrefix []byte) (keys [][]byte)
	NewBatch() Batch
	Close()
}

//Batch collects writes and applies them all or nothing on Write
type Batch interface {
	Put(rtype ResourceType, key []byte, value []byte)
	Len() int
	Write() error
}

func prefixed(rtype ResourceType, key []byte) []byte {
	k := make([]byte, 0, len(key)+1)
	k = append(k, byte(rtype))
	return append(k, key...)
}
