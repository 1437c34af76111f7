package catalog

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/openciv1/civsave/internal/gamedata"
	"github.com/openciv1/civsave/internal/savefile"
)

// Indexer adds save files to the catalog. Checksums it has handled recently
// are remembered for a while so rescanning a directory doesn't query the
// database for every file again.
type Indexer struct {
	db   *gorm.DB
	log  logrus.FieldLogger
	seen *gocache.Cache
}

func NewIndexer(db *gorm.DB, ttl time.Duration, log logrus.FieldLogger) *Indexer {
	return &Indexer{
		db:   db,
		log:  log,
		seen: gocache.New(ttl, 10*time.Second),
	}
}

// Index summarises the save at path and stores it unless the same image is
// already catalogued. The returned bool reports whether a summary was added.
func (i *Indexer) Index(path string) (*Summary, bool, error) {
	save, err := savefile.Read(path, gamedata.WithLogger(i.log))
	if err != nil {
		return nil, false, err
	}
	checksum := savefile.Checksum(save.Bytes())
	key := fmt.Sprintf("%08x", checksum)
	log := i.log.WithFields(logrus.Fields{"path": path, "checksum": key})

	if cached, ok := i.seen.Get(key); ok {
		log.Debug("skipping recently indexed save")
		return cached.(*Summary), false, nil
	}

	existing, err := FindUnscopedByChecksum(i.db, checksum)
	if err != nil {
		return nil, false, fmt.Errorf("error finding summary: %w", err)
	}
	if existing != nil {
		if !existing.DeletedAt.Valid {
			log.WithField("id", existing.ID).Debug("save already catalogued")
			i.seen.Set(key, existing, gocache.DefaultExpiration)
			return existing, false, nil
		}
		if err := Restore(i.db, existing, path); err != nil {
			return nil, false, fmt.Errorf("error restoring summary: %w", err)
		}
		log.WithField("id", existing.ID).Info("restored deleted save")
		i.seen.Set(key, existing, gocache.DefaultExpiration)
		return existing, true, nil
	}

	summary := Summarize(path, checksum, save)
	if err := Create(i.db, summary); err != nil {
		return nil, false, fmt.Errorf("error creating summary: %w", err)
	}
	log.WithField("id", summary.ID).Info("catalogued save")
	i.seen.Set(key, summary, gocache.DefaultExpiration)
	return summary, true, nil
}

// Forget drops a checksum from the recently seen set, e.g. after its summary
// was deleted.
func (i *Indexer) Forget(checksum uint32) {
	i.seen.Delete(fmt.Sprintf("%08x", checksum))
}
