package habits

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/crucial707/daily-habits/cmd/cli/config"
	"github.com/crucial707/daily-habits/cmd/cli/output"
	"github.com/spf13/cobra"
)

// weekView mirrors the GET /v1/habits response.
type weekView struct {
	Week struct {
		Offset    int      `json:"offset"`
		Start     string   `json:"start"`
		End       string   `json:"end"`
		Dates     []string `json:"dates"`
		CanGoBack bool     `json:"can_go_back"`
	} `json:"week"`
	Habits []struct {
		ID             string `json:"id"`
		Name           string `json:"name"`
		CreatedAt      string `json:"created_at"`
		Streak         int    `json:"streak"`
		Total          int    `json:"total_completions"`
		WeeklyPercent  int    `json:"weekly_percent"`
		CompletedToday bool   `json:"completed_today"`
	} `json:"habits"`
	Stats struct {
		TotalCheckins int `json:"total_checkins"`
		ActiveHabits  int `json:"active_habits"`
		BestStreak    int `json:"best_streak"`
	} `json:"stats"`
}

// ==========================
// Init Habits
// ==========================
func InitHabits(rootCmd *cobra.Command) {

	habitsCmd := &cobra.Command{
		Use:   "habits",
		Short: "Manage habits",
	}

	habitsCmd.AddCommand(
		listHabitsCmd(),
		addHabitCmd(),
		toggleHabitCmd(),
		renameHabitCmd(),
		deleteHabitCmd(),
	)

	rootCmd.AddCommand(habitsCmd)
}

// ==========================
// LIST
// ==========================
func listHabitsCmd() *cobra.Command {
	var week int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List habits for a week",
		Run: func(cmd *cobra.Command, args []string) {

			var view weekView
			path := "/v1/habits"
			if week != 0 {
				path += "?week=" + strconv.Itoa(week)
			}
			if err := doRequest("GET", path, nil, &view); err != nil {
				fmt.Println(err)
				return
			}

			if asJSON {
				b, _ := json.MarshalIndent(view, "", "  ")
				fmt.Println(string(b))
				return
			}

			fmt.Printf("Week %s to %s\n", view.Week.Start, view.Week.End)

			rows := make([][]interface{}, 0, len(view.Habits))
			for _, h := range view.Habits {
				today := ""
				if h.CompletedToday {
					today = "✓"
				}
				rows = append(rows, []interface{}{h.ID, h.Name, h.Streak, fmt.Sprintf("%d%%", h.WeeklyPercent), today})
			}
			output.RenderTable([]string{"ID", "NAME", "STREAK", "WEEK", "TODAY"}, rows)

			fmt.Printf("Check-ins: %d  Habits: %d  Best streak: %d\n",
				view.Stats.TotalCheckins, view.Stats.ActiveHabits, view.Stats.BestStreak)
		},
	}

	cmd.Flags().IntVar(&week, "week", 0, "week offset (0 = current, -1 = previous)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw JSON response")

	return cmd
}

// ==========================
// ADD
// ==========================
func addHabitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a habit",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {

			payload := map[string]string{"name": strings.Join(args, " ")}

			var out any
			if err := doRequest("POST", "/v1/habits", payload, &out); err != nil {
				fmt.Println(err)
				return
			}
			b, _ := json.MarshalIndent(out, "", "  ")
			fmt.Println(string(b))
		},
	}
}

// ==========================
// TOGGLE
// ==========================
func toggleHabitCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Check or uncheck a habit for a date (default today)",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {

			d := date
			if d == "" {
				d = time.Now().Format("2006-01-02")
			}
			payload := map[string]string{"date": d}

			var out any
			if err := doRequest("POST", "/v1/habits/"+args[0]+"/toggle", payload, &out); err != nil {
				fmt.Println(err)
				return
			}
			b, _ := json.MarshalIndent(out, "", "  ")
			fmt.Println(string(b))
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "date to toggle (YYYY-MM-DD)")

	return cmd
}

// ==========================
// RENAME
// ==========================
func renameHabitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a habit",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {

			payload := map[string]string{"name": strings.Join(args[1:], " ")}

			var out any
			if err := doRequest("PUT", "/v1/habits/"+args[0], payload, &out); err != nil {
				fmt.Println(err)
				return
			}
			b, _ := json.MarshalIndent(out, "", "  ")
			fmt.Println(string(b))
		},
	}
}

// ==========================
// DELETE
// ==========================
func deleteHabitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a habit",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {

			if err := doRequest("DELETE", "/v1/habits/"+args[0], nil, nil); err != nil {
				fmt.Println(err)
				return
			}
			fmt.Println("Deleted.")
		},
	}
}

// doRequest performs an authenticated JSON request against the API.
func doRequest(method, path string, payload interface{}, out interface{}) error {
	token, err := config.ReadToken()
	if err != nil {
		return fmt.Errorf("please login first")
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, config.APIURL()+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("API error: status %d: %s", resp.StatusCode, string(data))
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return err
		}
	}
	return nil
}
