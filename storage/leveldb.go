package storage

import (
	"github.com/op/go-logging"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	lerrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/opt"
	lstorage "github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
	"path"
)

var log = logging.MustGetLogger("storage")

const StorageName = "offences"

type LevelStorage struct {
	db   *leveldb.DB
	path string
}

//NewLevelStorage opens leveldb under p, an empty path gives in-memory storage
func NewLevelStorage(p string, opts *opt.Options) (*LevelStorage, error) {
	var nopts opt.Options
	if opts != nil {
		nopts = *opts
	}

	var err error
	var db *leveldb.DB

	if p == "" {
		db, err = leveldb.Open(lstorage.NewMemStorage(), &nopts)
	} else {
		p = path.Join(p, StorageName)
		db, err = leveldb.OpenFile(p, &nopts)
		log.Debugf("Created storage at %v", p)
		if lerrors.IsCorrupted(err) && !nopts.GetReadOnly() {
			log.Warningf("Storage at %v is corrupted, recovering", p)
			db, err = leveldb.RecoverFile(p, &nopts)
		}
	}

	if err != nil {
		return nil, errors.Wrapf(err, "can't open storage at [%v]", p)
	}

	return &LevelStorage{
		db:   db,
		path: p,
	}, nil
}

func (s *LevelStorage) Put(rtype ResourceType, key []byte, value []byte) error {
	return s.db.Put(prefixed(rtype, key), value, &opt.WriteOptions{})
}

func (s *LevelStorage) Get(rtype ResourceType, key []byte) (value []byte, err error) {
	value, err = s.db.Get(prefixed(rtype, key), &opt.ReadOptions{})
	if err == leveldb.ErrNotFound {
		return nil, ErrNotFound
	}
	return value, err
}

func (s *LevelStorage) Contains(rtype ResourceType, key []byte) bool {
	b, err := s.db.Has(prefixed(rtype, key), &opt.ReadOptions{})
	if err != nil {
		log.Error(err)
	}
	return b
}

func (s *LevelStorage) Delete(rtype ResourceType, key []byte) error {
	return s.db.Delete(prefixed(rtype, key), &opt.WriteOptions{})
}

func (s *LevelStorage) Keys(rtype ResourceType, keyPrefix []byte) (keys [][]byte) {
	iter := s.db.NewIterator(util.BytesPrefix(prefixed(rtype, keyPrefix)), nil)
	defer iter.Release()

	for iter.Next() {
		key := iter.Key()[1:]
		keyCopy := make([]byte, len(key))
		copy(keyCopy, key)
		keys = append(keys, keyCopy)
	}

	if err := iter.Error(); err != nil {
		log.Error(err)
	}

	return keys
}

func (s *LevelStorage) NewBatch() Batch {
	return &levelBatch{db: s.db, batch: new(leveldb.Batch)}
}

func (s *LevelStorage) Stats() *leveldb.DBStats {
	stats := &leveldb.DBStats{}
	if err := s.db.Stats(stats); err != nil {
		log.Error(err)
		return nil
	}
	return stats
}

func (s *LevelStorage) Close() {
	if err := s.db.Close(); err != nil {
		log.Error(err)
	}
}

type levelBatch struct {
	db    *leveldb.DB
	batch *leveldb.Batch
}

func (b *levelBatch) Put(rtype ResourceType, key []byte, value []byte) {
	b.batch.Put(prefixed(rtype, key), value)
}

func (b *levelBatch) Len() int {
	return b.batch.Len()
}

func (b *levelBatch) Write() error {
	return b.db.Write(b.batch, &opt.WriteOptions{Sync: true})
}
