package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/notetrack/notetrack/midifile"
)

func init() {
	importCmd.Flags().StringVarP(&cfg.Track, "track", "t", "", "name of the track (default from the file name)")
	rootCmd.AddCommand(importCmd)
	exportCmd.Flags().IntVar(&cfg.TicksPerBeat, "ticks", cfg.TicksPerBeat, "ticks per beat of the written midi file")
	exportCmd.Flags().IntVar(&cfg.Channel, "channel", 0, "midi channel 0-15 of the written notes")
	rootCmd.AddCommand(exportCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <file.mid> <track.xml|track.yml>",
	Short: "Import the notes of a midi file as a track",
	Long: `Import reads the note on and note off events of all tracks of a midi file
and writes them as one track. A note lasts from its note on until the next
event with the same channel and key; unpaired note ons are dropped.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := midifile.ReadFile(args[0])
		if err != nil {
			return err
		}
		s, _ := newSequence(trackName(args[0]))
		n := s.Import(f.Merged(), float64(f.TicksPerBeat))
		logger.Printf("imported %d notes from %d tracks at %d ticks per beat", n, len(f.Tracks), f.TicksPerBeat)
		if err := saveSequence(s, args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%v: %d notes\n", args[1], n)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <track.xml|track.yml> <file.mid>",
	Short: "Write a track as a midi file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := loadSequence(args[0])
		if err != nil {
			return err
		}
		channel := uint8(s.Track().Channel)
		if err := midifile.WriteFile(args[1], s.Notes(), channel, cfg.TicksPerBeat); err != nil {
			return fmt.Errorf("could not export %v: %w", args[0], err)
		}
		logger.Printf("exported %d notes to %v on channel %d", s.Len(), args[1], channel)
		return nil
	},
}
