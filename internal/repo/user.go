package repo

import (
	"regexp"
	"sync"
	"time"

	"github.com/crucial707/daily-habits/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// userRecord is the on-disk shape of one account in users.json.
// The password field holds the bcrypt hash, never the plaintext.
type userRecord struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	CreatedAt string `json:"created_at"`
	Theme     string `json:"theme,omitempty"`
}

// ==========================
// UserRepo
// ==========================

// UserRepo is the credential store: a single shared JSON file of accounts.
// All operations hold the repo lock across the read-modify-write cycle, so
// concurrent requests cannot lose updates.
type UserRepo struct {
	path string
	mu   sync.Mutex
}

func NewUserRepo(path string) *UserRepo {
	return &UserRepo{path: path}
}

// ==========================
// Register
// ==========================

// Register validates the credentials, stores a new account with a bcrypt
// password hash and returns it. Usernames are case-sensitively unique.
func (r *UserRepo) Register(username, password string) (*models.User, error) {
	if len(username) < 3 {
		return nil, &ValidationError{Msg: "username must be at least 3 characters"}
	}
	if !usernamePattern.MatchString(username) {
		return nil, &ValidationError{Msg: "username must contain only letters and digits"}
	}
	if len(password) < 8 {
		return nil, &ValidationError{Msg: "password must be at least 8 characters"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		if rec.Username == username {
			return nil, ErrDuplicateUser
		}
	}

	rec := userRecord{
		Username:  username,
		Password:  string(hash),
		CreatedAt: time.Now().Format(models.TimestampLayout),
		Theme:     models.ThemeLight,
	}
	records = append(records, rec)

	if err := writeArrayFile(r.path, records); err != nil {
		return nil, err
	}
	return recordToUser(rec), nil
}

// ==========================
// Authenticate
// ==========================

// Authenticate verifies a username/password pair. Unknown usernames return
// ErrNotFound and wrong passwords ErrInvalidPassword so callers can decide
// how much to reveal.
func (r *UserRepo) Authenticate(username, password string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		if rec.Username == username {
			if bcrypt.CompareHashAndPassword([]byte(rec.Password), []byte(password)) != nil {
				return nil, ErrInvalidPassword
			}
			return recordToUser(rec), nil
		}
	}
	return nil, ErrNotFound
}

// ==========================
// Get By Username
// ==========================

func (r *UserRepo) GetByUsername(username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		if rec.Username == username {
			return recordToUser(rec), nil
		}
	}
	return nil, ErrNotFound
}

// ==========================
// Toggle Theme
// ==========================

// ToggleTheme flips the stored theme between light and dark and returns the
// new value.
func (r *UserRepo) ToggleTheme(username string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return "", err
	}

	for i, rec := range records {
		if rec.Username != username {
			continue
		}
		theme := models.ThemeDark
		if rec.Theme == models.ThemeDark {
			theme = models.ThemeLight
		}
		records[i].Theme = theme
		if err := writeArrayFile(r.path, records); err != nil {
			return "", err
		}
		return theme, nil
	}
	return "", ErrNotFound
}

func (r *UserRepo) load() ([]userRecord, error) {
	var records []userRecord
	if err := readArrayFile(r.path, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func recordToUser(rec userRecord) *models.User {
	theme := rec.Theme
	if theme == "" {
		theme = models.ThemeLight
	}
	return &models.User{
		Username:     rec.Username,
		PasswordHash: rec.Password,
		CreatedAt:    rec.CreatedAt,
		Theme:        theme,
	}
}
