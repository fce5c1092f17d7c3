package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	outPath   string
	dryRun    bool
	semitones int
)

func init() {
	transposeCmd.Flags().StringVarP(&outPath, "output", "o", "", "write the result here instead of overwriting the input")
	transposeCmd.Flags().IntVarP(&semitones, "semitones", "s", 0, "number of semitones to shift, negative shifts down")
	transposeCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "transpose and undo, leaving the file as it is")
	rootCmd.AddCommand(transposeCmd)
}

var transposeCmd = &cobra.Command{
	Use:   "transpose <track.xml|track.yml> --semitones n",
	Short: "Shift every note of a track by a number of semitones",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, stack, err := loadSequence(args[0])
		if err != nil {
			return err
		}
		if err := s.TransposeAll(semitones, true); err != nil {
			return fmt.Errorf("could not transpose: %w", err)
		}
		if dryRun {
			if stack.Undo().Do() && stack.Err() != nil {
				return fmt.Errorf("could not undo the transpose: %w", stack.Err())
			}
			logger.Printf("dry run, reverted to %d notes", s.Len())
			return nil
		}
		out := outPath
		if out == "" {
			out = args[0]
		}
		return saveSequence(s, out)
	},
}
