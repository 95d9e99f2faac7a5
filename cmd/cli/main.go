package main

import (
	"fmt"
	"os"

	"github.com/crucial707/daily-habits/cmd/cli/auth"
	"github.com/crucial707/daily-habits/cmd/cli/habits"
	"github.com/crucial707/daily-habits/cmd/cli/profile"
	"github.com/crucial707/daily-habits/cmd/cli/root"
)

func main() {
	rootCmd := root.GetRoot()

	auth.InitAuth(rootCmd)
	habits.InitHabits(rootCmd)
	profile.InitProfile(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
