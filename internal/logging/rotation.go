package logging

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// logFilePrefix namespaces our log files inside the log directory,
// which may be shared under os.TempDir.
const logFilePrefix = "radiotray_"

// pruneLogs keeps at most maxFiles "<prefix>*.log" files in dir,
// removing the oldest by modification time. Entries that cannot be
// stat'ed sort first, so a broken file never protects a newer one.
func pruneLogs(dir, prefix string, maxFiles int) error {
	if maxFiles <= 0 {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	type logFile struct {
		path    string
		modTime time.Time
	}
	var files []logFile
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".log") {
			continue
		}
		lf := logFile{path: filepath.Join(dir, name)}
		if info, err := entry.Info(); err == nil {
			lf.modTime = info.ModTime()
		}
		files = append(files, lf)
	}

	surplus := len(files) - maxFiles
	if surplus <= 0 {
		return nil
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].modTime.Equal(files[j].modTime) {
			return files[i].path < files[j].path
		}
		return files[i].modTime.Before(files[j].modTime)
	})
	for _, lf := range files[:surplus] {
		os.Remove(lf.path) // best effort
	}
	return nil
}
