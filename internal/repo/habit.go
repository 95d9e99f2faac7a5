package repo

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/crucial707/daily-habits/internal/models"
)

// habitRecord is the on-disk shape of one habit. Older files may lack
// completed_dates or created_at; Load fills those in.
type habitRecord struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	CompletedDates []string `json:"completed_dates"`
	CreatedAt      string   `json:"created_at,omitempty"`
}

// ==========================
// HabitRepo
// ==========================

// HabitRepo is the persistence gateway for habit lists. Each user owns one
// JSON file (data_<username>.json) under the data directory. A per-file lock
// is held for the whole read-modify-write cycle and saves go through a temp
// file plus rename, which the flat-file format otherwise does not guarantee.
type HabitRepo struct {
	dir   string
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewHabitRepo(dir string) *HabitRepo {
	return &HabitRepo{dir: dir, locks: make(map[string]*sync.Mutex)}
}

// Path returns the habit file for a user. Usernames are validated to be
// alphanumeric at registration, so they are safe as a filename component.
func (r *HabitRepo) Path(username string) string {
	return filepath.Join(r.dir, "data_"+username+".json")
}

func (r *HabitRepo) lockFor(username string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.locks[username]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[username] = lock
	}
	return lock
}

// ==========================
// Load
// ==========================

// Load reads a user's habits. A missing file yields an empty list and leaves
// an empty-array file behind; a corrupt file yields a StorageError.
func (r *HabitRepo) Load(username string) ([]*models.Habit, error) {
	lock := r.lockFor(username)
	lock.Lock()
	defer lock.Unlock()
	return r.load(username)
}

// ==========================
// Save
// ==========================

func (r *HabitRepo) Save(username string, habits []*models.Habit) error {
	lock := r.lockFor(username)
	lock.Lock()
	defer lock.Unlock()
	return r.save(username, habits)
}

// ==========================
// Mutate
// ==========================

// Mutate runs fn on the user's habit list and persists the result, holding
// the per-user lock across the whole cycle. When fn returns an error nothing
// is written. The saved list is returned.
func (r *HabitRepo) Mutate(username string, fn func([]*models.Habit) ([]*models.Habit, error)) ([]*models.Habit, error) {
	lock := r.lockFor(username)
	lock.Lock()
	defer lock.Unlock()

	habits, err := r.load(username)
	if err != nil {
		return nil, err
	}

	habits, err = fn(habits)
	if err != nil {
		return nil, err
	}

	if err := r.save(username, habits); err != nil {
		return nil, err
	}
	return habits, nil
}

func (r *HabitRepo) load(username string) ([]*models.Habit, error) {
	var records []habitRecord
	if err := readArrayFile(r.Path(username), &records); err != nil {
		return nil, err
	}

	habits := make([]*models.Habit, 0, len(records))
	for _, rec := range records {
		dates := rec.CompletedDates
		if dates == nil {
			dates = []string{}
		}
		createdAt := rec.CreatedAt
		if createdAt == "" {
			// Migration shim for files written before created_at existed:
			// fall back to the earliest check-in, else today.
			for _, d := range dates {
				if createdAt == "" || d < createdAt {
					createdAt = d
				}
			}
			if createdAt == "" {
				createdAt = time.Now().Format(models.DateLayout)
			}
		}
		habits = append(habits, &models.Habit{
			ID:             rec.ID,
			Name:           rec.Name,
			CompletedDates: dates,
			CreatedAt:      createdAt,
		})
	}
	return habits, nil
}

func (r *HabitRepo) save(username string, habits []*models.Habit) error {
	records := make([]habitRecord, 0, len(habits))
	for _, h := range habits {
		records = append(records, habitRecord{
			ID:             h.ID,
			Name:           h.Name,
			CompletedDates: h.CompletedDates,
			CreatedAt:      h.CreatedAt,
		})
	}
	return writeArrayFile(r.Path(username), records)
}
