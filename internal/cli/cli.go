package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"quicknotes/internal/config"
	"quicknotes/internal/logs"
	"quicknotes/internal/notes"
	"quicknotes/internal/storage"
)

// Options wires the CLI to its surroundings.
type Options struct {
	Out io.Writer
	Err io.Writer

	// Confirm asks a yes/no question. Defaults to an interactive prompt.
	Confirm func(question string) (bool, error)

	// Interactive runs the TUI. Called when quicknotes runs without a
	// subcommand on a terminal.
	Interactive func(cfg *config.Config, store *notes.Store) error

	// IsTerminal reports whether stdin/stdout are a terminal.
	IsTerminal func() bool
}

type session struct {
	opts  Options
	flags config.CLIFlags
	cfg   *config.Config
	slot  storage.Slot
	store *notes.Store
}

// Run executes the CLI with the given arguments and returns the exit code.
func Run(args []string, opts Options) int {
	s := newSession(opts)
	defer s.close()

	root := s.rootCommand()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(s.opts.Err, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newSession(opts Options) *session {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.Confirm == nil {
		opts.Confirm = promptConfirm
	}
	if opts.IsTerminal == nil {
		opts.IsTerminal = stdioIsTerminal
	}
	return &session{opts: opts}
}

func (s *session) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "quicknotes",
		Short: "Quick Notes - your companion for note-taking",
		Long: `Quick Notes keeps a list of titled notes in local storage.

Running quicknotes without a subcommand opens the interactive UI on a
terminal, and prints the note list otherwise.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.open()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.opts.Interactive != nil && s.opts.IsTerminal() {
				logs.Logger.Println("Starting app in TUI mode")
				return s.opts.Interactive(s.cfg, s.store)
			}
			return s.runList(cmd, false)
		},
	}
	root.SetOut(s.opts.Out)
	root.SetErr(s.opts.Err)

	pf := root.PersistentFlags()
	pf.StringVarP(&s.flags.DataDir, "dir", "d", "", "Data directory")
	pf.StringVar(&s.flags.Backend, "backend", "", "Storage backend: file or badger")
	pf.BoolVar(&s.flags.Ephemeral, "ephemeral", false, "Keep notes in memory only")

	root.AddCommand(
		s.addCommand(),
		s.listCommand(),
		s.showCommand(),
		s.editCommand(),
		s.removeCommand(),
		s.exportCommand(),
		s.importCommand(),
	)
	return root
}

// open loads config, points the logger at the data dir and loads the store.
func (s *session) open() error {
	cfg, err := config.Load(s.flags)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.EnsureConfigFile(); err != nil {
		logs.Logger.Printf("Warning: could not create config file: %v", err)
	}
	if cfg.Backend != config.BackendMemory {
		if err := cfg.EnsureDataDir(); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
		if err := logs.Initialize(cfg.DataDir); err != nil {
			fmt.Fprintf(s.opts.Err, "Warning: could not initialize logger: %v\n", err)
		}
	}

	slot, err := storage.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}

	store := notes.NewStore(slot,
		notes.WithKey(cfg.StorageKey),
		notes.WithDateLayout(cfg.DateLayout),
	)
	if err := store.Load(); err != nil {
		slot.Close()
		return err
	}

	s.cfg = cfg
	s.slot = slot
	s.store = store
	return nil
}

func (s *session) close() {
	if s.slot != nil {
		if err := s.slot.Close(); err != nil {
			logs.Logger.Printf("Error closing storage: %v", err)
		}
		s.slot = nil
	}
	if err := logs.Close(); err != nil {
		fmt.Fprintf(s.opts.Err, "Warning: could not close log file: %v\n", err)
	}
}

// parseIndex converts a 1-based note number to a list index.
func parseIndex(arg string, count int) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > count {
		if count == 0 {
			return 0, fmt.Errorf("invalid note number %q: there are no notes", arg)
		}
		return 0, fmt.Errorf("invalid note number %q: expected 1-%d", arg, count)
	}
	return n - 1, nil
}

func promptConfirm(question string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(question).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

func stdioIsTerminal() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
