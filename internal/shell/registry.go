package shell

import (
	"context"
	"fmt"
	"strings"
)

type cmdFunc func(ctx context.Context, s *Shell, arg string) (Result, error)

// HelpLine is one "usage: description" entry of the help text.
type HelpLine struct {
	Usage string
	Desc  string
}

type command struct {
	Name string
	Help []HelpLine
	Run  cmdFunc
}

type registry struct {
	primary map[string]command
	order   []string
}

func newRegistry() *registry {
	return &registry{
		primary: make(map[string]command),
	}
}

func (r *registry) register(cmd command) error {
	cmd.Name = strings.TrimSpace(cmd.Name)
	if cmd.Name == "" {
		return fmt.Errorf("shell registry: empty command name")
	}
	if strings.ContainsAny(cmd.Name, " \t") {
		return fmt.Errorf("shell registry: %q contains whitespace", cmd.Name)
	}
	if cmd.Run == nil {
		return fmt.Errorf("shell registry: %q has no handler", cmd.Name)
	}
	if _, ok := r.primary[cmd.Name]; ok {
		return fmt.Errorf("shell registry: duplicate command %q", cmd.Name)
	}

	r.primary[cmd.Name] = cmd
	r.order = append(r.order, cmd.Name)
	return nil
}

// resolve is an exact, case-sensitive lookup.
func (r *registry) resolve(name string) (command, bool) {
	cmd, ok := r.primary[name]
	return cmd, ok
}

// commands returns every command in registration order.
func (r *registry) commands() []command {
	out := make([]command, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.primary[name])
	}
	return out
}

func buildRegistry() (*registry, error) {
	r := newRegistry()

	for _, register := range []func(r *registry) error{
		registerCoreCommands,
		registerFSCommands,
	} {
		if err := register(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}
