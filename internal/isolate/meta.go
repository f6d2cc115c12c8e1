package isolate

import (
	"os"
	"strconv"
	"strings"
)

// Status is the sandbox's own classification of how a run ended, parsed
// from the "status" key of its meta file.
type Status string

const (
	StatusNone         Status = ""
	StatusRuntimeError Status = "RE"
	StatusSignalExit   Status = "SG"
	StatusTimedOut     Status = "TO"
	StatusSandboxError Status = "XX"
)

// RunMeta is the parsed form of the key:value meta file the launcher
// produces for a completed run. Missing keys default to their zero value.
type RunMeta struct {
	MemoryKB  int64
	TimeMS    int64
	Status    Status
	OOMKilled bool
}

// parseMeta parses a meta file's contents. Unknown keys are ignored, per
// spec.md's meta-file format (§6).
func parseMeta(data []byte) *RunMeta {
	meta := &RunMeta{}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		switch key {
		case "cg-mem":
			if n, err := strconv.ParseInt(value, 10, 64); err == nil {
				meta.MemoryKB = n
			}
		case "time":
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				meta.TimeMS = int64(f * 1000)
			}
		case "status":
			meta.Status = Status(value)
		case "cg-oom-killed":
			meta.OOMKilled = value == "1"
		}
	}

	return meta
}

func readMeta(path string) (*RunMeta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseMeta(data), nil
}
