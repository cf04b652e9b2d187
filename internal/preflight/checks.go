package preflight

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"summerpool/internal/aliases"
	"summerpool/internal/entries"
	"summerpool/internal/reference"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckFile verifies that a regular file exists and is readable.
func CheckFile(name, path string) Result {
	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not readable: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (readable)", path)}
}

// CheckReferenceList loads the reference list and reports how many titles it holds.
func CheckReferenceList(path string) Result {
	const name = "Reference list"
	if check := CheckFile(name, path); !check.Passed {
		return check
	}
	titles, err := reference.Load(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if len(titles) == 0 {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: no titles)", path)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d titles)", path, len(titles))}
}

// CheckEntries loads the entries file and reports how many entries parse.
func CheckEntries(path string, months []string) Result {
	const name = "Pool entries"
	if check := CheckFile(name, path); !check.Passed {
		return check
	}
	loaded, stats, err := entries.Load(path, months)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	detail := fmt.Sprintf("%s (%d entries", path, len(loaded))
	if stats.Skipped > 0 {
		detail += fmt.Sprintf(", %d skipped", stats.Skipped)
	}
	return Result{Name: name, Passed: true, Detail: detail + ")"}
}

// CheckAliases parses the alias file. A missing file is fine; defaults apply.
func CheckAliases(path string) Result {
	const name = "Alias overrides"
	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Passed: true, Detail: "not configured (defaults)"}
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (absent, defaults)", path)}
	}
	table, err := aliases.Load(path, nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	dists, titles := table.Len()
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d distributor, %d title aliases)", path, dists, titles)}
}

// CheckSource verifies that a chart location can be read. Remote locations
// get a single GET with a short timeout; anything else is treated as a file.
func CheckSource(ctx context.Context, name, location, userAgent string) Result {
	location = strings.TrimSpace(location)
	if location == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	if !isRemote(location) {
		return CheckFile(name, strings.TrimPrefix(location, "file://"))
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, location, nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("request failed (%v)", err)}
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: summarizeRequestError(err)}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("Reachable (%d)", resp.StatusCode)}
	}
	return Result{Name: name, Detail: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
}

func summarizeRequestError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "request timed out (source unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "request timed out (source unreachable)"
	}
	return err.Error()
}

func isRemote(location string) bool {
	lower := strings.ToLower(strings.TrimSpace(location))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
