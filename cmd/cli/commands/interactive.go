package commands

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// InteractiveCmd creates the interactive command
func InteractiveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Start an interactive session (load the configuration once, run multiple commands)",
		Long: `Start an interactive session where you can run multiple commands against the same
configuration and database. The session keeps running until you type 'exit' or 'quit'.

Type 'help' to see available commands.`,
		Args:        cobra.NoArgs,
		Annotations: needsDatabase(),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newSession(cmd.Parent(), cmd.OutOrStdout())
			fmt.Fprintln(s.out, "\nStarting interactive session...")
			fmt.Fprintln(s.out, "Type 'help' for available commands, 'exit' or 'quit' to leave")
			return s.run(cmd.InOrStdin())
		},
	}
}

type session struct {
	commands map[string]*cobra.Command
	out      io.Writer
}

func newSession(root *cobra.Command, out io.Writer) *session {
	commands := make(map[string]*cobra.Command)
	for _, sub := range root.Commands() {
		switch sub.Name() {
		case "interactive", "completion", "help":
		default:
			commands[sub.Name()] = sub
		}
	}
	return &session{commands: commands, out: out}
}

func (s *session) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			break
		}

		parts, err := parseCommandLine(strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Fprintf(s.out, "Error parsing command: %v\n\n", err)
			continue
		}
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "exit", "quit":
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		case "help":
			s.printHelp()
		default:
			if err := s.execute(parts[0], parts[1:]); err != nil {
				fmt.Fprintf(s.out, "Error: %v\n\n", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	return nil
}

// execute runs the command's RunE directly so the root PersistentPreRunE does
// not load the configuration and open the database a second time
func (s *session) execute(name string, args []string) error {
	target, ok := s.commands[name]
	if !ok {
		return fmt.Errorf("unknown command %s (type 'help' for available commands)", name)
	}

	target.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
		flag.Value.Set(flag.DefValue)
	})
	if err := target.ParseFlags(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	if err := target.ValidateRequiredFlags(); err != nil {
		return err
	}

	args = target.Flags().Args()
	if target.Args != nil {
		if err := target.Args(target, args); err != nil {
			return err
		}
	}

	target.SetOut(s.out)
	if target.RunE != nil {
		return target.RunE(target, args)
	}
	if target.Run != nil {
		target.Run(target, args)
	}
	return nil
}

func (s *session) printHelp() {
	fmt.Fprintln(s.out, "\nAvailable commands:")

	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		fmt.Fprintf(s.out, "  %-40s %s\n", s.commands[name].Use, s.commands[name].Short)
	}

	fmt.Fprintf(s.out, "\n  %-40s %s\n", "help", "Show this help message")
	fmt.Fprintf(s.out, "  %-40s %s\n", "exit, quit", "Exit the interactive session")
}

// parseCommandLine splits a line into arguments. Single and double quotes group words.
func parseCommandLine(line string) ([]string, error) {
	var args []string
	var current strings.Builder
	var quote rune
	inArg := false

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inArg = true
		case unicode.IsSpace(r):
			if inArg {
				args = append(args, current.String())
				current.Reset()
				inArg = false
			}
		default:
			current.WriteRune(r)
			inArg = true
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("unclosed quote: %c", quote)
	}
	if inArg {
		args = append(args, current.String())
	}
	return args, nil
}
