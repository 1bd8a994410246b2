package storage

import "github.com/pkg/errors"

const (
	LevelDB   = "leveldb"
	Datastore = "datastore"
)

//Open creates storage of given backend, empty path keeps everything in memory
func Open(backend string, path string) (Storage, error) {
	switch backend {
	case "", LevelDB:
		return NewLevelStorage(path, nil)
	case Datastore:
		return OpenDatastoreStorage(path)
	}
	return nil, errors.Errorf("unknown storage backend [%v]", backend)
}
