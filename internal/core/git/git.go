package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds a single git invocation.
const DefaultTimeout = 30 * time.Second

// Init creates an empty repository in dir.
func Init(ctx context.Context, dir string) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	_, err := execGit(ctx, dir, "init")
	return err
}

// IsRepository reports whether dir is inside a work tree.
func IsRepository(ctx context.Context, dir string) bool {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	out, err := execGit(ctx, dir, "rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// execGit runs git with args in dir and returns trimmed stdout.
func execGit(ctx context.Context, dir string, args ...string) (string, error) {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		return "", fmt.Errorf("system git lookup: %w", ErrSystemGitNotFound)
	}

	cmd := exec.CommandContext(ctx, gitPath, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_TERMINAL_PROMPT=0",
		"LC_ALL=C",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrStr := strings.TrimSpace(stderr.String())
		if len(args) > 0 {
			return "", fmt.Errorf("git %s: %s: %w", args[0], stderrStr, err)
		}
		return "", fmt.Errorf("git: %s: %w", stderrStr, err)
	}

	return strings.TrimRight(stdout.String(), "\n\r"), nil
}
