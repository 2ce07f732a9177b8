package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/weeks/internal/apperr"
	"github.com/starford/weeks/internal/calendar"
	"github.com/starford/weeks/internal/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func mustCreate(t *testing.T, db *DB, n models.NewItem) *models.Item {
	t.Helper()
	it, err := db.CreateItem(context.Background(), n)
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	return it
}

func TestOpen_MigratesTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weeks.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	db.Close()
	db, err = Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	db.Close()
}

func TestCreateAndGet(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	created := mustCreate(t, db, models.NewItem{
		Calendar: calendar.Persian, Day: 19920, Kind: models.KindGoal, Text: "read", Key: "n",
	})
	if created.ID == 0 || created.UUID == "" {
		t.Fatalf("created = %+v", created)
	}

	got, err := db.GetItem(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got.Text() != "read" || got.Note != nil || got.WeekKey() != "n" || got.OrderInPeriod != nil {
		t.Errorf("got = %+v", got)
	}
	if got.Calendar != calendar.Persian || got.Day != 19920 || got.Done() {
		t.Errorf("got = %+v", got)
	}
}

func TestCreate_RejectsUnknownKind(t *testing.T) {
	db := openTestDB(t)
	_, err := db.CreateItem(context.Background(), models.NewItem{Kind: 9, Text: "x"})
	if !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestGetItem_NotFound(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.GetItem(context.Background(), 42); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestItemsBetweenDays_OrderAndFilter(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	c := mustCreate(t, db, models.NewItem{Day: 10, Kind: models.KindGoal, Text: "c", Key: "u"})
	a := mustCreate(t, db, models.NewItem{Day: 12, Kind: models.KindNote, Text: "a", Key: "g"})
	b := mustCreate(t, db, models.NewItem{Day: 11, Kind: models.KindGoal, Text: "b", Key: "n"})
	mustCreate(t, db, models.NewItem{Day: 20, Kind: models.KindGoal, Text: "outside", Key: "a"})
	mustCreate(t, db, models.NewItem{Day: 11, Year: models.Ptr(2024), Kind: models.KindGoal, Text: "objective", Key: "b"})

	missing := mustCreate(t, db, models.NewItem{Day: 10, Kind: models.KindGoal, Text: "no key", Key: "z"})
	missing.OrderInWeek = nil
	if err := db.UpdateItem(ctx, missing); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	items, err := db.ItemsBetweenDays(ctx, 10, 16)
	if err != nil {
		t.Fatalf("ItemsBetweenDays: %v", err)
	}
	want := []int64{a.ID, b.ID, c.ID, missing.ID}
	if len(items) != len(want) {
		t.Fatalf("got %d items, want %d", len(items), len(want))
	}
	for i, id := range want {
		if items[i].ID != id {
			t.Errorf("items[%d] = %d (%q), want %d", i, items[i].ID, items[i].Text(), id)
		}
	}
}

func TestItemsInYear(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	second := mustCreate(t, db, models.NewItem{Calendar: calendar.Persian, Year: models.Ptr(1403), Month: models.Ptr(4), Kind: models.KindGoal, Text: "m", Key: "u"})
	first := mustCreate(t, db, models.NewItem{Calendar: calendar.Persian, Year: models.Ptr(1403), Kind: models.KindGoal, Text: "y", Key: "n"})
	mustCreate(t, db, models.NewItem{Calendar: calendar.Gregorian, Year: models.Ptr(1403), Kind: models.KindGoal, Text: "other calendar", Key: "n"})
	mustCreate(t, db, models.NewItem{Calendar: calendar.Persian, Year: models.Ptr(1404), Kind: models.KindGoal, Text: "other year", Key: "n"})

	items, err := db.ItemsInYear(ctx, calendar.Persian, 1403)
	if err != nil {
		t.Fatalf("ItemsInYear: %v", err)
	}
	if len(items) != 2 || items[0].ID != first.ID || items[1].ID != second.ID {
		t.Fatalf("items = %+v", items)
	}
	if items[1].ObjectiveType() != models.ObjectiveMonthly || items[0].ObjectiveType() != models.ObjectiveYearly {
		t.Errorf("objective types = %d, %d", items[0].ObjectiveType(), items[1].ObjectiveType())
	}
	if items[0].PeriodKey() != "n" || items[0].OrderInWeek != nil {
		t.Errorf("keys = %+v", items[0])
	}
}

func TestUpdateItems_Transactional(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	a := mustCreate(t, db, models.NewItem{Day: 1, Kind: models.KindGoal, Text: "a", Key: "n"})
	b := mustCreate(t, db, models.NewItem{Day: 1, Kind: models.KindGoal, Text: "b", Key: "u"})

	a.SetText("a2")
	ghost := models.Item{ID: 999, Kind: models.KindGoal}
	err := db.UpdateItems(ctx, []models.Item{*a, ghost})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	got, _ := db.GetItem(ctx, a.ID)
	if got.Text() != "a" {
		t.Errorf("partial update committed: %q", got.Text())
	}

	b.Toggle()
	if err := db.UpdateItems(ctx, []models.Item{*a, *b}); err != nil {
		t.Fatalf("UpdateItems: %v", err)
	}
	got, _ = db.GetItem(ctx, a.ID)
	if got.Text() != "a2" {
		t.Errorf("text = %q", got.Text())
	}
	got, _ = db.GetItem(ctx, b.ID)
	if !got.Done() {
		t.Error("status not stored")
	}
}

func TestDeleteItem(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	it := mustCreate(t, db, models.NewItem{Day: 1, Kind: models.KindNote, Text: "bye", Key: "n"})

	if err := db.DeleteItem(ctx, it.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	if _, err := db.GetItem(ctx, it.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v", err)
	}
	if err := db.DeleteItem(ctx, it.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("second delete err = %v", err)
	}
}

func TestBackup(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	mustCreate(t, db, models.NewItem{Day: 1, Kind: models.KindGoal, Text: "keep", Key: "n"})

	dir := filepath.Join(t.TempDir(), "backups")
	path, err := db.Backup(ctx, dir)
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("backup file: %v", err)
	}

	copyDB, err := Open(path)
	if err != nil {
		t.Fatalf("open backup: %v", err)
	}
	defer copyDB.Close()
	items, err := copyDB.ItemsBetweenDays(ctx, 0, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Text() != "keep" {
		t.Errorf("backup items = %+v", items)
	}
}
