package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/notetrack/notetrack"
	"github.com/notetrack/notetrack/history"
	"github.com/notetrack/notetrack/metrics"
	"github.com/notetrack/notetrack/sequence"
	"github.com/notetrack/notetrack/tree"
)

// config holds the settings that can be given in the config file. Command
// line flags override them.
type config struct {
	Format       string `yaml:"format"`
	TicksPerBeat int    `yaml:"ticksPerBeat"`
	Track        string `yaml:"track"`
	Channel      int    `yaml:"channel"`
	MaxUndo      int    `yaml:"maxUndo"`
}

const defaultConfigFile = "notetrack.yml"

var (
	cfg = config{
		TicksPerBeat: sequence.DefaultTicksPerBeat,
		MaxUndo:      history.DefaultMaxTransactions,
	}
	configPath  string
	verbose     bool
	dumpMetrics bool

	logger   = log.New(io.Discard, "", log.LstdFlags)
	registry *prometheus.Registry
	stats    *metrics.Collector
)

var rootCmd = &cobra.Command{
	Use:           "notetrack",
	Short:         "Edit, convert and inspect note tracks",
	Long:          `notetrack converts note tracks between MIDI files and the XML/YAML track format, and edits and inspects them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetOutput(io.Discard)
		if verbose {
			logger.SetOutput(cmd.ErrOrStderr())
		}
		if err := loadConfig(cmd); err != nil {
			return err
		}
		registry = prometheus.NewRegistry()
		var err error
		if stats, err = metrics.New(registry); err != nil {
			return fmt.Errorf("could not register metrics: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if !dumpMetrics {
			return nil
		}
		families, err := registry.Gather()
		if err != nil {
			return fmt.Errorf("could not gather metrics: %w", err)
		}
		for _, f := range families {
			if _, err := expfmt.MetricFamilyToText(cmd.ErrOrStderr(), f); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "config file (default "+defaultConfigFile+" if it exists)")
	flags.StringVarP(&cfg.Format, "format", "f", "", "track file format: xml or yaml (default from the file extension)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log every change of the track to stderr")
	flags.BoolVar(&dumpMetrics, "metrics", false, "print the edit metrics to stderr when done")
}

// loadConfig reads the config file, keeping the values of the flags the user
// has set.
func loadConfig(cmd *cobra.Command) error {
	path, explicit := configPath, configPath != ""
	if !explicit {
		path = defaultConfigFile
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("could not read config: %w", err)
	}
	var file config
	if err := yaml.Unmarshal(b, &file); err != nil {
		return fmt.Errorf("could not parse config %v: %w", path, err)
	}
	logger.Printf("using config %v", path)
	flags := cmd.Flags()
	if file.Format != "" && !flags.Changed("format") {
		cfg.Format = file.Format
	}
	if file.TicksPerBeat > 0 && !flags.Changed("ticks") {
		cfg.TicksPerBeat = file.TicksPerBeat
	}
	if file.Track != "" && !flags.Changed("track") {
		cfg.Track = file.Track
	}
	if file.Channel != 0 && !flags.Changed("channel") {
		cfg.Channel = file.Channel
	}
	if file.MaxUndo > 0 {
		cfg.MaxUndo = file.MaxUndo
	}
	return nil
}

// outputFormat returns the format given by the user, or the one matching the
// extension of path.
func outputFormat(path string) (tree.Format, error) {
	if cfg.Format == "" {
		return tree.FormatOf(path), nil
	}
	return tree.ParseFormat(cfg.Format)
}

// newSequence returns an empty sequence wired to the undo history, the
// metrics and, with --verbose, the change log.
func newSequence(name string) (*sequence.Sequence, *history.Stack) {
	if cfg.Track != "" {
		name = cfg.Track
	}
	track := notetrack.NewTrack(name, cfg.Channel)
	stack := history.New(cfg.MaxUndo)
	listeners := sequence.Listeners{sequence.LogListener{Logger: logger, Prefix: track.Label() + ": "}}
	var m *metrics.Listener
	if stats != nil {
		m = stats.Listener(track.Label())
		listeners = append(listeners, m)
	}
	s := sequence.New(track, stack, listeners)
	if m != nil {
		m.Attach(s)
	}
	return s, stack
}

func loadSequence(path string) (*sequence.Sequence, *history.Stack, error) {
	s, stack := newSequence(trackName(path))
	if err := s.LoadFile(path); err != nil {
		return nil, nil, err
	}
	logger.Printf("loaded %d notes from %v", s.Len(), path)
	return s, stack, nil
}

func saveSequence(s *sequence.Sequence, path string) error {
	f, err := outputFormat(path)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create track file: %w", err)
	}
	if err := s.Save(out, f); err != nil {
		out.Close()
		return err
	}
	logger.Printf("saved %d notes to %v as %v", s.Len(), path, f)
	return out.Close()
}
