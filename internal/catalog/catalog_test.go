package catalog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"gorm.io/gorm"

	"github.com/openciv1/civsave/internal/bitfield"
	"github.com/openciv1/civsave/internal/core"
	"github.com/openciv1/civsave/internal/gamedata"
	"github.com/openciv1/civsave/internal/replay"
	"github.com/openciv1/civsave/internal/savefile"
)

// Creates a database for testing. Every test gets its own SQLite file since
// they're cheap to make.
func setUpDatabase(t *testing.T) *gorm.DB {
	testDBFile := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(testDBFile))
	if err != nil {
		t.Fatalf("error initializing test database: %s", err)
	}
	if err = Migrate(db); err != nil {
		t.Fatalf("error migrating test database: %s", err)
	}
	return db
}

var ignoreTimestamps = cmpopts.IgnoreFields(Summary{}, "CreatedAt", "UpdatedAt", "DeletedAt")

// writeSave creates a small game at dir/name and returns its path.
func writeSave(t *testing.T, dir, name string, turn uint16) string {
	t.Helper()
	save := gamedata.New()
	steps := []func() error{
		func() error { return save.SetTurn(turn) },
		func() error { return save.SetYear(-4000 + 20*int16(turn)) },
		func() error { return save.SetDifficulty(2) },
		func() error { return save.SetHumanPlayer(1) },
		func() error { return save.SetActiveCivs(bitfield.FlagsOf(0, 1, 3)) },
		func() error { return save.SetCivNames([gamedata.NumCivs]string{"Barbarians", "Zulus", "", "Greeks"}) },
		func() error { return save.SetCity(0, &gamedata.City{X: 10, Y: 10, Owner: 1, Size: 1}) },
		func() error { return save.SetCity(4, &gamedata.City{X: 30, Y: 12, Owner: 3, Size: 2}) },
		func() error { return save.SetUnit(1, 0, &gamedata.Unit{Type: 0, GotoX: gamedata.None}) },
		func() error {
			return save.SetReplay([]replay.Entry{{Turn: 0, Event: replay.CityEvent{Owner: 1, X: 10, Y: 10}}})
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("error building save: %v", err)
		}
	}

	path := filepath.Join(dir, name)
	if err := savefile.Write(path, save); err != nil {
		t.Fatalf("error writing save: %v", err)
	}
	return path
}

func TestSummarize(t *testing.T) {
	path := writeSave(t, t.TempDir(), "CIVIL0.SVE", 50)
	save, err := savefile.Read(path)
	if err != nil {
		t.Fatalf("Read() returned an unexpected error: %v", err)
	}

	got := Summarize(path, 0x1234, save)
	want := &Summary{
		Path:          path,
		Checksum:      0x1234,
		Turn:          50,
		Year:          -3000,
		Difficulty:    2,
		HumanCiv:      "Zulus",
		ActiveCivs:    3,
		Cities:        2,
		Units:         1,
		ReplayEntries: 1,
	}
	if diff := cmp.Diff(want, got, ignoreTimestamps); diff != "" {
		t.Errorf("Summarize() mismatch, diff:\n%s", diff)
	}
}

func TestFindByChecksum(t *testing.T) {
	db := setUpDatabase(t)
	summary := &Summary{Path: "CIVIL1.SVE", Checksum: 0xCAFEBABE, Turn: 10}

	tests := []struct {
		name     string
		seedData func(db *gorm.DB)
		want     *Summary
	}{
		{
			name:     "summary does not exist",
			seedData: func(db *gorm.DB) {},
			want:     nil,
		},
		{
			name: "summary exists",
			seedData: func(db *gorm.DB) {
				if err := Create(db, summary); err != nil {
					t.Fatalf("error creating test summary: %s", err)
				}
			},
			want: summary,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.seedData(db)

			got, err := FindByChecksum(db, 0xCAFEBABE)
			if err != nil {
				t.Fatalf("FindByChecksum() returned an unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got, ignoreTimestamps); diff != "" {
				t.Errorf("FindByChecksum() mismatch, diff:\n%s", diff)
			}
		})
	}
}

func TestListAndDelete(t *testing.T) {
	db := setUpDatabase(t)
	for i, checksum := range []uint32{3, 1, 2} {
		if err := Create(db, &Summary{Path: "save", Checksum: checksum, Turn: i}); err != nil {
			t.Fatalf("error creating test summary: %s", err)
		}
	}

	summaries, err := List(db)
	if err != nil {
		t.Fatalf("List() returned an unexpected error: %v", err)
	}
	var checksums []uint32
	for _, s := range summaries {
		checksums = append(checksums, s.Checksum)
	}
	if diff := cmp.Diff([]uint32{3, 1, 2}, checksums); diff != "" {
		t.Errorf("List() order mismatch, diff:\n%s", diff)
	}

	if err := Delete(db, &summaries[1]); err != nil {
		t.Fatalf("Delete() returned an unexpected error: %v", err)
	}
	if s, _ := FindByChecksum(db, 1); s != nil {
		t.Errorf("FindByChecksum() found a deleted summary")
	}
	s, err := FindUnscopedByChecksum(db, 1)
	if err != nil || s == nil || !s.DeletedAt.Valid {
		t.Fatalf("FindUnscopedByChecksum() = %v, %v; want the soft-deleted summary", s, err)
	}

	if err := PermanentlyDelete(db, s); err != nil {
		t.Fatalf("PermanentlyDelete() returned an unexpected error: %v", err)
	}
	if s, _ := FindUnscopedByChecksum(db, 1); s != nil {
		t.Errorf("FindUnscopedByChecksum() found a permanently deleted summary")
	}

	remaining, err := List(db)
	if err != nil {
		t.Fatalf("List() returned an unexpected error: %v", err)
	}
	if len(remaining) != 2 {
		t.Errorf("List() returned %d summaries, want 2", len(remaining))
	}

	if got, err := FindByID(db, remaining[0].ID); err != nil || got == nil || got.Checksum != 3 {
		t.Errorf("FindByID() = %v, %v", got, err)
	}
	if got, err := FindByID(db, 9999); err != nil || got != nil {
		t.Errorf("FindByID() of a missing id = %v, %v; want nil, nil", got, err)
	}
}

func TestIndexer(t *testing.T) {
	db := setUpDatabase(t)
	logger, _ := logtest.NewNullLogger()
	indexer := NewIndexer(db, time.Minute, logger)

	dir := t.TempDir()
	first := writeSave(t, dir, "CIVIL0.SVE", 20)
	copyOfFirst := writeSave(t, dir, "CIVIL1.SVE", 20)
	second := writeSave(t, dir, "CIVIL2.SVE", 21)

	s1, added, err := indexer.Index(first)
	if err != nil || !added {
		t.Fatalf("Index() = %v, %v; want a new summary", added, err)
	}
	if s1.ID == 0 || s1.Turn != 20 {
		t.Errorf("Index() returned %+v", s1)
	}

	dup, added, err := indexer.Index(copyOfFirst)
	if err != nil || added {
		t.Fatalf("Index() of an identical image = %v, %v; want it skipped", added, err)
	}
	if dup.ID != s1.ID {
		t.Errorf("Index() of an identical image returned summary %d, want %d", dup.ID, s1.ID)
	}

	if _, added, err := indexer.Index(second); err != nil || !added {
		t.Fatalf("Index() = %v, %v; want a new summary", added, err)
	}

	// A second indexer has no cache and has to rely on the database.
	fresh := NewIndexer(db, time.Minute, logger)
	if _, added, err := fresh.Index(first); err != nil || added {
		t.Errorf("Index() with an empty cache = %v, %v; want it skipped", added, err)
	}

	if err := Delete(db, s1); err != nil {
		t.Fatalf("Delete() returned an unexpected error: %v", err)
	}
	indexer.Forget(s1.Checksum)
	restored, added, err := indexer.Index(copyOfFirst)
	if err != nil || !added {
		t.Fatalf("Index() of a deleted save = %v, %v; want it restored", added, err)
	}
	if restored.ID != s1.ID || restored.Path != copyOfFirst {
		t.Errorf("Index() restored %+v", restored)
	}
	if s, _ := FindByChecksum(db, s1.Checksum); s == nil || s.Path != copyOfFirst {
		t.Errorf("restored summary = %+v", s)
	}

	summaries, err := List(db)
	if err != nil {
		t.Fatalf("List() returned an unexpected error: %v", err)
	}
	if len(summaries) != 2 {
		t.Errorf("List() returned %d summaries, want 2", len(summaries))
	}

	if _, _, err := indexer.Index(filepath.Join(dir, "missing.sve")); err == nil {
		t.Errorf("Index() expected an error for a missing file")
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CIVSAVE_CATALOG_FILENAME", "catalog.db")
	cfg, err := core.LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() returned an unexpected error: %v", err)
	}

	db, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open() returned an unexpected error: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() returned an unexpected error: %v", err)
	}
	if err := Create(db, &Summary{Path: "CIVIL0.SVE", Checksum: 1}); err != nil {
		t.Fatalf("Create() returned an unexpected error: %v", err)
	}

	cfg.Catalog.Engine = "oracle"
	if _, err := Open(cfg); err == nil {
		t.Errorf("Open() expected an error for an unsupported engine")
	}
}
