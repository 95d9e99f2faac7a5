package scheduler

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/crucial707/daily-habits/internal/metrics"
	"github.com/robfig/cron/v3"
)

// Run starts a background cron job that snapshots every JSON file in dataDir
// into a timestamped folder under backupDir on each tick. Returns the started
// cron so callers can Stop it.
func Run(dataDir, backupDir, cronExpr string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(cronExpr, func() {
		if err := snapshot(dataDir, backupDir); err != nil {
			log.Printf("scheduler: backup failed: %v", err)
			metrics.IncBackup("error")
			return
		}
		metrics.IncBackup("ok")
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	log.Printf("scheduler: backups of %s scheduled with %q", dataDir, cronExpr)
	return c, nil
}

func snapshot(dataDir, backupDir string) error {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return err
	}

	dest := filepath.Join(backupDir, time.Now().Format("20060102-150405"))
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return err
	}

	copied := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		if err := copyFile(filepath.Join(dataDir, entry.Name()), filepath.Join(dest, entry.Name())); err != nil {
			return err
		}
		copied++
	}
	log.Printf("scheduler: backed up %d files to %s", copied, dest)
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
