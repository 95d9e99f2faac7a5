package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/crucial707/daily-habits/cmd/cli/config"
	"github.com/crucial707/daily-habits/cmd/cli/output"
	"github.com/spf13/cobra"
)

// InitProfile registers the badges, theme, and whoami commands.
func InitProfile(rootCmd *cobra.Command) {
	rootCmd.AddCommand(badgesCmd(), themeCmd(), whoamiCmd())
}

// ==========================
// BADGES
// ==========================
func badgesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "badges",
		Short: "Show earned achievement badges",
		Run: func(cmd *cobra.Command, args []string) {

			var out struct {
				MaxStreak int `json:"max_streak"`
				Total     int `json:"total_completions"`
				Badges    []struct {
					Icon        string `json:"icon"`
					Title       string `json:"title"`
					Description string `json:"description"`
				} `json:"badges"`
			}
			if err := doRequest("GET", "/v1/badges", nil, &out); err != nil {
				fmt.Println(err)
				return
			}

			if len(out.Badges) == 0 {
				fmt.Println("No badges yet. Complete some habits!")
				return
			}

			rows := make([][]interface{}, 0, len(out.Badges))
			for _, b := range out.Badges {
				rows = append(rows, []interface{}{b.Icon, b.Title, b.Description})
			}
			output.RenderTable([]string{"", "BADGE", "DESCRIPTION"}, rows)
			fmt.Printf("Best streak: %d  Total check-ins: %d\n", out.MaxStreak, out.Total)
		},
	}
}

// ==========================
// THEME
// ==========================
func themeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "theme",
		Short: "Toggle the stored theme between light and dark",
		Run: func(cmd *cobra.Command, args []string) {

			var out struct {
				Theme string `json:"theme"`
			}
			if err := doRequest("POST", "/v1/profile/theme", map[string]string{}, &out); err != nil {
				fmt.Println(err)
				return
			}
			fmt.Println("Theme is now", out.Theme)
		},
	}
}

// ==========================
// WHOAMI
// ==========================
func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in account",
		Run: func(cmd *cobra.Command, args []string) {

			var out any
			if err := doRequest("GET", "/v1/profile", nil, &out); err != nil {
				fmt.Println(err)
				return
			}
			b, _ := json.MarshalIndent(out, "", "  ")
			fmt.Println(string(b))
		},
	}
}

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
