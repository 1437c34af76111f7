// Package catalog keeps an index of the save files a player has collected so
// duplicates can be spotted and games found again without opening every file.
package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/glebarez/sqlite"

	"github.com/openciv1/civsave/internal/core"
	"github.com/openciv1/civsave/internal/gamedata"
)

// Summary is the indexed description of one save image.
type Summary struct {
	ID uint64 `gorm:"primaryKey"`
	// Path is where the image was last seen.
	Path     string `gorm:"not null"`
	Checksum uint32 `gorm:"uniqueIndex; not null"`

	Turn          int
	Year          int
	Difficulty    int
	HumanCiv      string
	ActiveCivs    int
	Cities        int
	Units         int
	ReplayEntries int

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// Summarize describes save, found at path.
func Summarize(path string, checksum uint32, save *gamedata.Save) *Summary {
	s := &Summary{
		Path:          path,
		Checksum:      checksum,
		Turn:          int(save.Turn()),
		Year:          int(save.Year()),
		Difficulty:    int(save.Difficulty()),
		ActiveCivs:    save.ActiveCivs().Count(),
		ReplayEntries: len(save.Replay()),
	}
	if human := int(save.HumanPlayer()); human < gamedata.NumCivs {
		s.HumanCiv = save.CivNames()[human]
	}
	for _, city := range save.Cities() {
		if city != nil {
			s.Cities++
		}
	}
	for _, n := range save.UnitCounts() {
		s.Units += n
	}
	return s
}

// Open connects to the catalog database selected by cfg.
func Open(cfg *core.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(cfg.Catalog.Engine) {
	case "sqlite":
		dialector = sqlite.Open(cfg.QualifiedPath(cfg.Catalog.Filename))
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseURL())
	default:
		return nil, fmt.Errorf("unsupported database engine: %s", cfg.Catalog.Engine)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Discard})
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the catalog tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Summary{}); err != nil {
		return fmt.Errorf("error auto migrating db: %w", err)
	}
	return nil
}

// FindByID returns the Summary with the given id, or nil if there is none.
func FindByID(db *gorm.DB, id uint64) (*Summary, error) {
	var summary Summary
	err := db.First(&summary, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &summary, nil
}

// FindByChecksum searches for a Summary of the image with the given checksum,
// returning nil if there is no match.
func FindByChecksum(db *gorm.DB, checksum uint32) (*Summary, error) {
	return findByChecksum(db, checksum)
}

// FindUnscopedByChecksum is FindByChecksum including soft-deleted summaries.
func FindUnscopedByChecksum(db *gorm.DB, checksum uint32) (*Summary, error) {
	return findByChecksum(db.Unscoped(), checksum)
}

func findByChecksum(db *gorm.DB, checksum uint32) (*Summary, error) {
	var summary Summary
	err := db.Where("checksum = ?", checksum).First(&summary).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &summary, nil
}

// List returns every Summary in the order they were added.
func List(db *gorm.DB) ([]Summary, error) {
	var summaries []Summary
	if err := db.Order("id").Find(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

// Create persists the Summary to the database.
func Create(db *gorm.DB, summary *Summary) error {
	return db.Create(summary).Error
}

// Restore brings back a soft-deleted Summary, recording the path it was seen at.
func Restore(db *gorm.DB, summary *Summary, path string) error {
	err := db.Unscoped().Model(summary).Updates(map[string]interface{}{
		"deleted_at": nil,
		"path":       path,
	}).Error
	if err != nil {
		return err
	}
	summary.DeletedAt = gorm.DeletedAt{}
	summary.Path = path
	return nil
}

// Delete soft-deletes a Summary from the database.
func Delete(db *gorm.DB, summary *Summary) error {
	return db.Delete(summary).Error
}

// PermanentlyDelete permanently deletes a Summary from the database.
func PermanentlyDelete(db *gorm.DB, summary *Summary) error {
	return db.Unscoped().Delete(summary).Error
}
