package habits

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/crucial707/daily-habits/cmd/cli/config"
)

// captureOutput helps capture stdout during command execution.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String()
}

// loginAs points the CLI at srv with a stored token, using a throwaway home dir.
func loginAs(t *testing.T, srv *httptest.Server) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("HABITS_API_URL", srv.URL)
	if err := config.SaveToken("test-token"); err != nil {
		t.Fatalf("save token: %v", err)
	}
}

func TestListHabits_TableOutput(t *testing.T) {
	view := weekView{}
	view.Week.Start = "2025-03-10"
	view.Week.End = "2025-03-16"
	view.Habits = []struct {
		ID             string `json:"id"`
		Name           string `json:"name"`
		CreatedAt      string `json:"created_at"`
		Streak         int    `json:"streak"`
		Total          int    `json:"total_completions"`
		WeeklyPercent  int    `json:"weekly_percent"`
		CompletedToday bool   `json:"completed_today"`
	}{
		{ID: "id-1", Name: "Meditate", Streak: 3, WeeklyPercent: 43, CompletedToday: true},
		{ID: "id-2", Name: "Run", Streak: 0, WeeklyPercent: 0},
	}
	view.Stats.TotalCheckins = 5
	view.Stats.ActiveHabits = 2
	view.Stats.BestStreak = 3

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/habits" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Fatalf("unexpected auth header: %q", got)
		}
		_ = json.NewEncoder(w).Encode(view)
	}))
	defer srv.Close()

	loginAs(t, srv)

	cmd := listHabitsCmd()

	out := captureOutput(t, func() {
		cmd.Run(cmd, []string{})
	})

	if !strings.Contains(out, "Meditate") || !strings.Contains(out, "Run") {
		t.Fatalf("expected habit names in output, got: %s", out)
	}
	if !strings.Contains(out, "43%") {
		t.Fatalf("expected weekly percent in output, got: %s", out)
	}
	if !strings.Contains(out, "Check-ins: 5") || !strings.Contains(out, "Best streak: 3") {
		t.Fatalf("expected stats line in output, got: %s", out)
	}
}

func TestListHabits_JSONOutput(t *testing.T) {
	view := weekView{}
	view.Habits = append(view.Habits, struct {
		ID             string `json:"id"`
		Name           string `json:"name"`
		CreatedAt      string `json:"created_at"`
		Streak         int    `json:"streak"`
		Total          int    `json:"total_completions"`
		WeeklyPercent  int    `json:"weekly_percent"`
		CompletedToday bool   `json:"completed_today"`
	}{ID: "id-1", Name: "Meditate"})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(view)
	}))
	defer srv.Close()

	loginAs(t, srv)

	cmd := listHabitsCmd()
	_ = cmd.Flags().Set("json", "true")

	out := captureOutput(t, func() {
		cmd.Run(cmd, []string{})
	})

	if !strings.Contains(out, `"name": "Meditate"`) {
		t.Fatalf("expected JSON output, got: %s", out)
	}
}

func TestListHabits_WeekFlag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("week"); got != "-1" {
			t.Fatalf("week query: got %q, want -1", got)
		}
		_ = json.NewEncoder(w).Encode(weekView{})
	}))
	defer srv.Close()

	loginAs(t, srv)

	cmd := listHabitsCmd()
	_ = cmd.Flags().Set("week", "-1")

	captureOutput(t, func() {
		cmd.Run(cmd, []string{})
	})
}

func TestToggleHabit_SendsDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/habits/id-1/toggle" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		var payload map[string]string
		_ = json.NewDecoder(r.Body).Decode(&payload)
		if payload["date"] != "2025-03-12" {
			t.Fatalf("date: got %q, want 2025-03-12", payload["date"])
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "id-1"})
	}))
	defer srv.Close()

	loginAs(t, srv)

	cmd := toggleHabitCmd()
	_ = cmd.Flags().Set("date", "2025-03-12")

	out := captureOutput(t, func() {
		cmd.Run(cmd, []string{"id-1"})
	})

	if !strings.Contains(out, `"id": "id-1"`) {
		t.Fatalf("expected toggled habit in output, got: %s", out)
	}
}

func TestAddHabit_RequiresLogin(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cmd := addHabitCmd()

	out := captureOutput(t, func() {
		cmd.Run(cmd, []string{"Stretch"})
	})

	if !strings.Contains(out, "please login first") {
		t.Fatalf("expected login prompt, got: %s", out)
	}
}
