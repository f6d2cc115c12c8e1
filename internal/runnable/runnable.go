// Package runnable is the Runnable Abstraction (spec.md §4.3): given a
// compiled/interpreted artifact and a set of limits, it builds a single
// sandbox invocation — selecting the interpreter/executor, copying the
// artifact into a freshly acquired box, and plumbing stdin/stdout.
package runnable

import (
	"fmt"
	"os"

	"github.com/kontestis/evaluator/internal/compiler"
	"github.com/kontestis/evaluator/internal/isolate"
)

// Runnable is bound to one compiled/interpreted artifact. Each call to Run
// or JustRun acquires its own fresh box (spec.md §4.1: acquire "creates a
// fresh box directory"), so a multi-testcase evaluation calls Run once per
// testcase.
type Runnable struct {
	Launcher *isolate.Launcher
	Artifact *compiler.Artifact
}

func New(launcher *isolate.Launcher, artifact *compiler.Artifact) *Runnable {
	return &Runnable{Launcher: launcher, Artifact: artifact}
}

func (r *Runnable) buildCommand(box *isolate.Box) (isolate.Command, error) {
	switch r.Artifact.Kind {
	case compiler.ArtifactCompiled:
		if err := box.CopyIn(r.Artifact.Path, "program"); err != nil {
			return isolate.Command{}, err
		}
		return isolate.Command{Executable: "program", InPath: false}, nil

	case compiler.ArtifactJava:
		if err := box.CopyIn(r.Artifact.Path, "Main.class"); err != nil {
			return isolate.Command{}, err
		}
		return isolate.Command{Executable: "java", Args: []string{"Main"}, InPath: true}, nil

	case compiler.ArtifactInterpreted:
		return isolate.Command{
			Executable: "/usr/bin/python3",
			Args:       []string{"-c", r.Artifact.Source},
			InPath:     true,
		}, nil

	default:
		return isolate.Command{}, fmt.Errorf("runnable: artifact has unknown kind %d", r.Artifact.Kind)
	}
}

// Run performs the full acquire/spawn/wait/load-meta/cleanup cycle for one
// invocation and returns the raw process output plus parsed meta.
func (r *Runnable) Run(boxID uint8, stdin isolate.Stdin, limits isolate.Limits, stdoutFile *os.File) (*isolate.Output, *isolate.RunMeta, error) {
	box, err := r.Launcher.Acquire(boxID, isolate.DefaultMetaPath(boxID))
	if err != nil {
		return nil, nil, err
	}
	defer box.Cleanup()

	cmd, err := r.buildCommand(box)
	if err != nil {
		return nil, nil, err
	}

	if err := box.Spawn(cmd, limits, stdin, stdoutFile, nil, false); err != nil {
		return nil, nil, err
	}

	output, err := box.Wait()
	if err != nil {
		return nil, nil, err
	}

	meta, err := box.LoadMeta()
	if err != nil {
		return nil, nil, err
	}

	return output, meta, nil
}

// JustRun acquires a box, copies the artifact in, and spawns the process,
// but leaves waiting/meta-parsing/cleanup to the caller. Used by the
// interactive evaluation, which runs two processes concurrently across
// crossed pipes and must control teardown order itself.
func (r *Runnable) JustRun(boxID uint8, stdin isolate.Stdin, limits isolate.Limits, stdoutFile *os.File) (*isolate.Box, error) {
	box, err := r.Launcher.Acquire(boxID, isolate.DefaultMetaPath(boxID))
	if err != nil {
		return nil, err
	}

	cmd, err := r.buildCommand(box)
	if err != nil {
		_ = box.Cleanup()
		return nil, err
	}

	if err := box.Spawn(cmd, limits, stdin, stdoutFile, nil, false); err != nil {
		_ = box.Cleanup()
		return nil, err
	}

	return box, nil
}
