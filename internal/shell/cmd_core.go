package shell

import (
	"context"
	"strings"
)

func registerCoreCommands(r *registry) error {
	for _, cmd := range []command{
		{Name: "help", Help: []HelpLine{{"help", "Show this help message"}}, Run: cmdHelp},
		{Name: "clear", Help: []HelpLine{{"clear", "Clear the terminal"}}, Run: cmdClear},
		{Name: "exit", Help: []HelpLine{{"exit", "Close the terminal"}}, Run: cmdExit},
	} {
		if err := r.register(cmd); err != nil {
			return err
		}
	}
	return nil
}

func cmdHelp(_ context.Context, s *Shell, _ string) (Result, error) {
	return Result{Output: HelpText(s.Commands())}, nil
}

func cmdClear(context.Context, *Shell, string) (Result, error) {
	return Result{Output: Banner, Action: ActionClear}, nil
}

func cmdExit(context.Context, *Shell, string) (Result, error) {
	return Result{Output: "Goodbye!\n", Action: ActionExit}, nil
}

// HelpText renders the usage listing for cmds.
func HelpText(cmds []CommandInfo) string {
	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, c := range cmds {
		for _, h := range c.Help {
			b.WriteString(" - ")
			b.WriteString(h.Usage)
			b.WriteString(": ")
			b.WriteString(h.Desc)
			b.WriteString("\n")
		}
	}
	return b.String()
}
