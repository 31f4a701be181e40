// Package git shells out to the git CLI to find files changed since a ref,
// so incremental updates can re-analyze only what moved.
package git

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// ChangedFile is one entry of a diff: the path and its one-letter status
// (A added, M modified, D deleted, R renamed).
type ChangedFile struct {
	Path   string
	Status string
}

// Deleted reports whether the file no longer exists at HEAD.
func (c ChangedFile) Deleted() bool {
	return c.Status == "D"
}

// GetChangedFiles lists files changed between baseRef and the working
// tree, including untracked files.
func GetChangedFiles(dir, baseRef string) ([]ChangedFile, error) {
	cmd := exec.Command("git", "diff", "--name-status", baseRef)
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git diff failed: %w", err)
	}
	changes := parseNameStatus(output)

	untracked, err := listUntracked(dir)
	if err != nil {
		return nil, err
	}
	changes = append(changes, untracked...)
	return changes, nil
}

func listUntracked(dir string) ([]ChangedFile, error) {
	cmd := exec.Command("git", "ls-files", "--others", "--exclude-standard")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git ls-files failed: %w", err)
	}

	var changes []ChangedFile
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		path := strings.TrimSpace(scanner.Text())
		if path != "" {
			changes = append(changes, ChangedFile{Path: path, Status: "A"})
		}
	}
	return changes, scanner.Err()
}

// parseNameStatus parses `git diff --name-status` output. Rename entries
// carry two paths; the new path is kept and the old one reported deleted.
func parseNameStatus(output []byte) []ChangedFile {
	var changes []ChangedFile
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			continue
		}
		status := strings.TrimSpace(fields[0])
		if status == "" {
			continue
		}
		code := status[:1]
		if code == "R" && len(fields) >= 3 {
			changes = append(changes,
				ChangedFile{Path: fields[1], Status: "D"},
				ChangedFile{Path: fields[2], Status: "A"})
			continue
		}
		changes = append(changes, ChangedFile{Path: fields[1], Status: code})
	}
	return changes
}
