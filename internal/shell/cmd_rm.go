package shell

import (
	"context"
	"fmt"
	"strings"
)

func cmdRm(ctx context.Context, s *Shell, arg string) (Result, error) {
	if arg == "" {
		return Result{}, missingArgument("rm", "Missing file or directory name.")
	}
	if arg == "-r" {
		return Result{}, missingArgument("rm", "Missing directory name.")
	}
	if name, ok := strings.CutPrefix(arg, "-r "); ok {
		return s.removeRecursive(strings.TrimSpace(name))
	}

	target := s.session.Resolve(arg)
	switch {
	case s.fs.IsDir(target):
		entries, err := s.fs.ReadDir(target)
		if err != nil {
			return Result{}, ioFailure("rm", target, err)
		}
		if len(entries) > 0 {
			return s.removeNonEmpty(ctx, arg, target)
		}
		if err := s.fs.Remove(target); err != nil {
			return Result{}, ioFailure("rm", target, err)
		}
		return s.afterDirectoryRemoval(fmt.Sprintf("Directory deleted: %s\n", arg)), nil
	case s.fs.Exists(target):
		if err := s.fs.Remove(target); err != nil {
			return Result{}, ioFailure("rm", target, err)
		}
		return text("File deleted: %s\n", arg)
	default:
		return Result{}, notFound("rm", target, "File or directory not found.")
	}
}

// removeNonEmpty deletes a populated directory only after the confirmer
// agrees. A failing confirmer counts as "no".
func (s *Shell) removeNonEmpty(ctx context.Context, arg, target string) (Result, error) {
	question := fmt.Sprintf("The directory %s is not empty. Delete contents?", arg)
	ok, err := s.confirmer.Confirm(ctx, question)
	if err != nil {
		s.logger.Warn("confirmation failed", "path", target, "error", err)
		ok = false
	}
	if !ok {
		return text("Deletion cancelled.\n")
	}

	report, err := RemoveTree(s.fs, target)
	if err != nil {
		return Result{}, ioFailure("rm", target, err)
	}
	return s.afterDirectoryRemoval(s.deleteSummary(arg, report, "Directory deleted: %s\n")), nil
}

func (s *Shell) removeRecursive(name string) (Result, error) {
	if name == "" {
		return Result{}, missingArgument("rm", "Missing directory name.")
	}
	target := s.session.Resolve(name)
	if !s.fs.IsDir(target) {
		return Result{}, notADirectory("rm", target, fmt.Sprintf("%s is not a directory.", name))
	}

	report, err := RemoveTree(s.fs, target)
	if err != nil {
		return Result{}, ioFailure("rm", target, err)
	}
	return s.afterDirectoryRemoval(s.deleteSummary(name, report, "Directory and contents deleted: %s\n")), nil
}

// deleteSummary logs every failed entry and lists them under the summary
// line. The command itself still succeeds.
func (s *Shell) deleteSummary(name string, report DeleteReport, success string) string {
	if report.OK() {
		return fmt.Sprintf(success, name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Directory partially deleted: %s (%d entries failed)\n", name, len(report.Failures))
	for _, f := range report.Failures {
		s.logger.Warn("failed to delete entry", "path", f.Path, "error", f.Err)
		fmt.Fprintf(&b, "Warning: could not delete %s: %v\n", f.Path, f.Err)
	}
	return b.String()
}

// afterDirectoryRemoval keeps the working directory valid when the
// removed tree contained it.
func (s *Shell) afterDirectoryRemoval(out string) Result {
	if cwd, changed := s.session.Recover(); changed {
		out += fmt.Sprintf("Current directory: %s\n", cwd)
	}
	return Result{Output: out}
}
