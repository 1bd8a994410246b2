package storage

import (
	"bytes"
	"encoding/hex"
	"github.com/emirpasic/gods/maps/treemap"
	ds "github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/query"
	dssync "github.com/ipfs/go-datastore/sync"
	dsleveldb "github.com/ipfs/go-ds-leveldb"
	"github.com/pkg/errors"
	"path"
)

//DatastoreStorage keeps state in any batching ipfs datastore.
//Keys are laid out as /<resource type hex>/<key hex>, hex keeps byte order intact.
type DatastoreStorage struct {
	ds ds.Batching
}

func NewDatastoreStorage(d ds.Batching) *DatastoreStorage {
	return &DatastoreStorage{ds: d}
}

//OpenDatastoreStorage opens go-ds-leveldb under p, an empty path gives a map datastore
func OpenDatastoreStorage(p string) (*DatastoreStorage, error) {
	if p == "" {
		return NewDatastoreStorage(dssync.MutexWrap(ds.NewMapDatastore())), nil
	}

	p = path.Join(p, StorageName+"-ds")
	d, err := dsleveldb.NewDatastore(p, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "can't open datastore at [%v]", p)
	}
	log.Debugf("Created datastore at %v", p)

	return NewDatastoreStorage(d), nil
}

func resourcePrefix(rtype ResourceType) string {
	return "/" + hex.EncodeToString([]byte{byte(rtype)})
}

func dsKey(rtype ResourceType, key []byte) ds.Key {
	return ds.NewKey(resourcePrefix(rtype) + "/" + hex.EncodeToString(key))
}

func (s *DatastoreStorage) Put(rtype ResourceType, key []byte, value []byte) error {
	return s.ds.Put(dsKey(rtype, key), value)
}

func (s *DatastoreStorage) Get(rtype ResourceType, key []byte) (value []byte, err error) {
	value, err = s.ds.Get(dsKey(rtype, key))
	if err == ds.ErrNotFound {
		return nil, ErrNotFound
	}
	return value, err
}

func (s *DatastoreStorage) Contains(rtype ResourceType, key []byte) bool {
	has, err := s.ds.Has(dsKey(rtype, key))
	if err != nil {
		log.Error(err)
	}
	return has
}

func (s *DatastoreStorage) Delete(rtype ResourceType, key []byte) error {
	return s.ds.Delete(dsKey(rtype, key))
}

func (s *DatastoreStorage) Keys(rtype ResourceType, keyPrefix []byte) (keys [][]byte) {
	results, err := s.ds.Query(query.Query{Prefix: resourcePrefix(rtype), KeysOnly: true})
	if err != nil {
		log.Error(err)
		return nil
	}

	entries, err := results.Rest()
	if err != nil {
		log.Error(err)
		return nil
	}

	//datastore queries give no order guarantee
	ordered := treemap.NewWith(byteComparator)
	for _, e := range entries {
		k, err := hex.DecodeString(ds.RawKey(e.Key).BaseNamespace())
		if err != nil {
			log.Warningf("Skipping foreign key %v", e.Key)
			continue
		}
		if bytes.HasPrefix(k, keyPrefix) {
			ordered.Put(k, struct{}{})
		}
	}

	for _, k := range ordered.Keys() {
		keys = append(keys, k.([]byte))
	}

	return keys
}

func byteComparator(a, b interface{}) int {
	return bytes.Compare(a.([]byte), b.([]byte))
}

func (s *DatastoreStorage) NewBatch() Batch {
	return &dsBatch{ds: s.ds}
}

func (s *DatastoreStorage) Close() {
	if err := s.ds.Close(); err != nil {
		log.Error(err)
	}
}

type dsPut struct {
	key   ds.Key
	value []byte
}

type dsBatch struct {
	ds   ds.Batching
	puts []dsPut
}

func (b *dsBatch) Put(rtype ResourceType, key []byte, value []byte) {
	b.puts = append(b.puts, dsPut{key: dsKey(rtype, key), value: value})
}

func (b *dsBatch) Len() int {
	return len(b.puts)
}

func (b *dsBatch) Write() error {
	batch, err := b.ds.Batch()
	if err != nil {
		return err
	}
	for _, p := range b.puts {
		if err := batch.Put(p.key, p.value); err != nil {
			return err
		}
	}
	return batch.Commit()
}
