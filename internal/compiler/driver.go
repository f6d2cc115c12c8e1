// Package compiler is the Compiler Driver (spec.md §4.2): it turns
// (source, language) into a RunnableArtifact. Python needs no compile
// step; every other supported language is compiled inside a sandbox box
// in "system mode" to contain compiler bugs and keep build caches off the
// host.
package compiler

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kontestis/evaluator/internal/isolate"
	"github.com/kontestis/evaluator/internal/util"
)

// compileLimits are the dedicated limits for compilation, independent of
// the evaluation's own run limits (spec.md §4.2).
var compileLimits = isolate.Limits{TimeSeconds: 30, MemoryKB: 1 << 20}

// Driver compiles submissions using a shared sandbox launcher.
type Driver struct {
	Launcher *isolate.Launcher
}

func NewDriver(launcher *isolate.Launcher) *Driver {
	return &Driver{Launcher: launcher}
}

// Compile produces a RunnableArtifact for the given source and language,
// using boxID for the compile sandbox (the caller's own evaluation box —
// batch/output-only evaluations reuse this same box for the run stage).
//
// Java's pipeline assumes the submission's public class is named Main;
// any other public class name fails to compile. This is a documented
// constraint, not a bug (spec.md §9(c)).
func (d *Driver) Compile(boxID uint8, code string, language Language) (*Artifact, string, error) {
	if language == LanguagePython {
		return &Artifact{Kind: ArtifactInterpreted, Source: code}, "", nil
	}

	pl, ok := compilePipelines[language]
	if !ok {
		return nil, "", &UnsupportedLanguageError{Language: language}
	}

	box, err := d.Launcher.Acquire(boxID, isolate.DefaultMetaPath(boxID))
	if err != nil {
		return nil, "", err
	}
	defer box.Cleanup()

	stdin := isolate.StdinFromBytes([]byte(code))
	cmd := isolate.Command{Executable: pl.executable, Args: pl.args, InPath: true}

	if err := box.Spawn(cmd, compileLimits, stdin, nil, pl.mounts, true); err != nil {
		return nil, "", err
	}

	output, err := box.Wait()
	if err != nil {
		return nil, "", err
	}

	stderr := string(output.Stderr)

	if !output.Success {
		return nil, stderr, &CompilationProcessError{Stderr: stderr}
	}

	hostPath := filepath.Join(os.TempDir(), util.RandomHex(8))
	if err := box.CopyOut("out", hostPath); err != nil {
		return nil, stderr, err
	}
	if err := os.Chmod(hostPath, 0o755); err != nil {
		return nil, stderr, fmt.Errorf("compiler: chmod artifact: %w", err)
	}

	if language == LanguageJava {
		return &Artifact{Kind: ArtifactJava, Path: hostPath}, stderr, nil
	}
	return &Artifact{Kind: ArtifactCompiled, Path: hostPath}, stderr, nil
}
