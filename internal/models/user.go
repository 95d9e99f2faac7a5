package models

// ThemeLight is the default theme for new accounts.
const ThemeLight = "light"
const ThemeDark = "dark"

// TimestampLayout is the account created_at format ("YYYY-MM-DD HH:MM:SS").
const TimestampLayout = "2006-01-02 15:04:05"

type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	CreatedAt    string `json:"created_at"`
	Theme        string `json:"theme"`
}
