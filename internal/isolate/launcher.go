package isolate

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Launcher wraps the external isolate-like sandbox binary. One Launcher is
// shared across all boxes; it carries no per-run state itself.
type Launcher struct {
	Path           string
	CgroupsEnabled bool
	QuotasEnabled  bool

	// QuotaBlocks/QuotaInodes bound the per-box disk quota applied at
	// init when QuotasEnabled. Conservative defaults matching the
	// isolate project's own examples.
	QuotaBlocks uint64
	QuotaInodes uint64

	logger *logrus.Entry
}

// NewLauncher constructs a Launcher with sane quota defaults.
func NewLauncher(path string, cgroupsEnabled, quotasEnabled bool) *Launcher {
	return &Launcher{
		Path:           path,
		CgroupsEnabled: cgroupsEnabled,
		QuotasEnabled:  quotasEnabled,
		QuotaBlocks:    8192,
		QuotaInodes:    1024,
		logger:         logrus.WithField("component", "isolate"),
	}
}

// baseArgs returns the flags common to every invocation against a given box
// id: --cg when cgroup accounting is enabled, then -bN.
func (l *Launcher) baseArgs(boxID uint8) []string {
	args := make([]string, 0, 4)
	if l.CgroupsEnabled {
		args = append(args, "--cg")
	}
	args = append(args, fmt.Sprintf("-b%d", boxID))
	return args
}

// Acquire creates a fresh box directory for boxID and returns a Box handle
// in state NotStarted. Callers must eventually call Box.Cleanup, typically
// via `defer`, regardless of how the run ends (I2/I3).
func (l *Launcher) Acquire(boxID uint8, metaPath string) (*Box, error) {
	args := l.baseArgs(boxID)
	args = append(args, "--init")

	if l.QuotasEnabled {
		args = append(args, fmt.Sprintf("--quota=%d,%d", l.QuotaBlocks, l.QuotaInodes))
	}

	out, err := exec.Command(l.Path, args...).Output()
	if err != nil {
		stderr := ""
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr = string(exitErr.Stderr)
		}
		return nil, newSandboxError("init", fmt.Errorf("%w (%s)", err, strings.TrimSpace(stderr)))
	}

	root := strings.TrimSpace(string(out))
	if root == "" {
		return nil, newSandboxError("init", fmt.Errorf("isolate --init returned an empty box path"))
	}

	return &Box{
		launcher: l,
		logger:   l.logger.WithField("box_id", boxID),
		BoxID:    boxID,
		root:     root,
		Dir:      filepath.Join(root, "box"),
		MetaPath: metaPath,
		state:    StateNotStarted,
	}, nil
}

// DefaultMetaPath returns the conventional meta-file path for a box id,
// per spec.md §4.1's `/tmp/.meta-<box_id>`.
func DefaultMetaPath(boxID uint8) string {
	return fmt.Sprintf("/tmp/.meta-%d", boxID)
}
