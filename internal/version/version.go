// Package version provides build version information and runtime metadata.
package version

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Name is the program name reported by Info.
const Name = "bikeshare-dashboard-tui"

var (
	// These are set via ldflags at build time
	Version = ""
	Commit  = ""
	Date    = ""

	once sync.Once

	built struct {
		version, commit, date string
	}

	execCommand = exec.CommandContext
)

const gitTimeout = 2 * time.Second

func ensureInitialized() {
	once.Do(func() {
		built.version, built.commit, built.date = Version, Commit, Date
		if built.date == "" {
			built.date = time.Now().Format("2006-01-02")
		}
		if built.commit == "" {
			built.commit = getGitCommit()
		}
		if built.version == "" {
			built.version = getGitVersion()
		}
	})
}

// Reset clears resolved metadata so the next call resolves it again.
func Reset() {
	once = sync.Once{}
	built.version, built.commit, built.date = "", "", ""
}

func runGit(args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), gitTimeout)
	defer cancel()

	cmd := execCommand(ctx, "git", args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(out.String()), nil
}

func getGitCommit() string {
	out, err := runGit("describe", "--always", "--dirty")
	if err != nil || out == "" {
		return "unknown"
	}
	return out
}

func getGitVersion() string {
	out, err := runGit("describe", "--tags", "--abbrev=0")
	if err != nil || out == "" {
		return "dev"
	}
	return out
}

// GetVersion returns the release version, or "dev".
func GetVersion() string {
	ensureInitialized()
	return built.version
}

// GetCommit returns the commit the binary was built from.
func GetCommit() string {
	ensureInitialized()
	return built.commit
}

// GetDate returns the build date.
func GetDate() string {
	ensureInitialized()
	return built.date
}

// Info returns a one-line version string for --version.
func Info() string {
	ensureInitialized()
	return fmt.Sprintf("%s %s (commit: %s, built: %s, %s/%s)",
		Name, built.version, built.commit, built.date, runtime.GOOS, runtime.GOARCH)
}
