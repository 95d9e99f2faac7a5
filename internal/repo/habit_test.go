package repo

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/crucial707/daily-habits/internal/models"
)

func TestHabitRepo_Load_MissingFileCreatesEmptyArray(t *testing.T) {
	repo := NewHabitRepo(t.TempDir())

	habits, err := repo.Load("alice")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(habits) != 0 {
		t.Errorf("expected empty list, got %d habits", len(habits))
	}

	data, err := os.ReadFile(repo.Path("alice"))
	if err != nil {
		t.Fatalf("habit file was not created: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("file content: got %q, want []", string(data))
	}
}

func TestHabitRepo_SaveLoad(t *testing.T) {
	repo := NewHabitRepo(t.TempDir())

	h := models.NewHabit("read", time.Now())
	h.ToggleDate("2025-03-10")

	if err := repo.Save("bob", []*models.Habit{h}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := repo.Load("bob")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected 1 habit, got %d", len(loaded))
	}
	if loaded[0].ID != h.ID || loaded[0].Name != "read" || !loaded[0].IsCompletedOn("2025-03-10") {
		t.Errorf("unexpected habit: %+v", loaded[0])
	}
}

func TestHabitRepo_Load_DefaultsForOldRecords(t *testing.T) {
	dir := t.TempDir()
	repo := NewHabitRepo(dir)

	// Pre-created_at records: one with check-ins, one without.
	raw := `[
  {"id": "h1", "name": "old with dates", "completed_dates": ["2024-12-03", "2024-11-30"]},
  {"id": "h2", "name": "old bare"}
]`
	if err := os.WriteFile(repo.Path("carol"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	habits, err := repo.Load("carol")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(habits) != 2 {
		t.Fatalf("expected 2 habits, got %d", len(habits))
	}

	if habits[0].CreatedAt != "2024-11-30" {
		t.Errorf("created_at should fall back to earliest check-in: got %q", habits[0].CreatedAt)
	}
	today := time.Now().Format(models.DateLayout)
	if habits[1].CreatedAt != today {
		t.Errorf("created_at with no check-ins should be today: got %q", habits[1].CreatedAt)
	}
	if habits[1].CompletedDates == nil || len(habits[1].CompletedDates) != 0 {
		t.Errorf("missing completed_dates should decode as empty list: %v", habits[1].CompletedDates)
	}
}

func TestHabitRepo_Load_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	repo := NewHabitRepo(dir)

	if err := os.WriteFile(repo.Path("dave"), []byte("{not an array"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := repo.Load("dave")
	if err == nil {
		t.Fatal("expected error for corrupt file")
	}
	var serr *StorageError
	if !errors.As(err, &serr) {
		t.Errorf("expected StorageError, got %T: %v", err, err)
	}
}

func TestHabitRepo_Mutate(t *testing.T) {
	repo := NewHabitRepo(t.TempDir())

	created := models.NewHabit("stretch", time.Now())
	_, err := repo.Mutate("erin", func(habits []*models.Habit) ([]*models.Habit, error) {
		return append(habits, created), nil
	})
	if err != nil {
		t.Fatalf("Mutate: %v", err)
	}

	habits, err := repo.Load("erin")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(habits) != 1 || habits[0].Name != "stretch" {
		t.Errorf("unexpected habits after mutate: %+v", habits)
	}
}

func TestHabitRepo_Mutate_ErrorSkipsSave(t *testing.T) {
	repo := NewHabitRepo(t.TempDir())

	if err := repo.Save("frank", []*models.Habit{models.NewHabit("run", time.Now())}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	_, err := repo.Mutate("frank", func(habits []*models.Habit) ([]*models.Habit, error) {
		return nil, ErrNotFound
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	habits, err := repo.Load("frank")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(habits) != 1 {
		t.Errorf("failed mutate must not change the file: got %d habits", len(habits))
	}
}

func TestHabitRepo_Save_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	repo := NewHabitRepo(dir)

	if err := repo.Save("grace", []*models.Habit{models.NewHabit("write", time.Now())}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}
