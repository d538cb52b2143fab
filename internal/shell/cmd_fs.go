package shell

import (
	"context"
	"strings"
)

func registerFSCommands(r *registry) error {
	for _, cmd := range []command{
		{Name: "touch", Help: []HelpLine{{"touch <filename>", "Create a new file"}}, Run: cmdTouch},
		{Name: "cat", Help: []HelpLine{{"cat <filename>", "Show the contents of a file"}}, Run: cmdCat},
		{Name: "nano", Help: []HelpLine{{"nano <filename>", "Open a new terminal to edit a file"}}, Run: cmdNano},
		{Name: "cd", Help: []HelpLine{{"cd <directory>", "Change directory"}}, Run: cmdCd},
		{Name: "ls", Help: []HelpLine{{"ls", "List contents of the current directory"}}, Run: cmdLs},
		{Name: "mkdir", Help: []HelpLine{{"mkdir <directory>", "Create a new directory"}}, Run: cmdMkdir},
		{Name: "rm", Help: []HelpLine{
			{"rm <filename>", "Remove a file"},
			{"rm -r <directory>", "Remove a directory and its contents without confirmation"},
		}, Run: cmdRm},
	} {
		if err := r.register(cmd); err != nil {
			return err
		}
	}
	return nil
}

const (
	filePerm = 0644
	dirPerm  = 0755
)

func cmdTouch(_ context.Context, s *Shell, arg string) (Result, error) {
	if arg == "" {
		return Result{}, missingArgument("touch", "Missing filename.")
	}
	path := s.session.Resolve(arg)
	if err := s.fs.CreateFile(path, filePerm); err != nil {
		return Result{}, ioFailure("touch", path, err)
	}
	return text("File created: %s\n", arg)
}

func cmdMkdir(_ context.Context, s *Shell, arg string) (Result, error) {
	if arg == "" {
		return Result{}, missingArgument("mkdir", "Missing directory name.")
	}
	path := s.session.Resolve(arg)
	if err := s.fs.Mkdir(path, dirPerm); err != nil {
		return Result{}, ioFailure("mkdir", path, err)
	}
	return text("Directory created: %s\n", arg)
}

func cmdCat(_ context.Context, s *Shell, arg string) (Result, error) {
	if arg == "" {
		return Result{}, missingArgument("cat", "Missing filename.")
	}
	path := s.session.Resolve(arg)
	if !s.fs.Exists(path) {
		return Result{}, notFound("cat", path, "File not found.")
	}
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return Result{}, ioFailure("cat", path, err)
	}
	return Result{Output: string(data) + "\n"}, nil
}

// cmdLs lists names in the order the filesystem returns them.
func cmdLs(_ context.Context, s *Shell, _ string) (Result, error) {
	cwd := s.session.Cwd()
	entries, err := s.fs.ReadDir(cwd)
	if err != nil {
		return Result{}, ioFailure("ls", cwd, err)
	}
	if len(entries) == 0 {
		return Result{}, nil
	}

	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e.Name())
		b.WriteString("\n")
	}
	return Result{Output: b.String()}, nil
}

func cmdCd(_ context.Context, s *Shell, arg string) (Result, error) {
	if arg == "" {
		return Result{}, missingArgument("cd", "Missing directory.")
	}
	cwd, err := s.session.Chdir(arg)
	if err != nil {
		return Result{}, notADirectory("cd", s.session.Resolve(arg), "Directory not found.")
	}
	return text("Current directory: %s\n", cwd)
}
