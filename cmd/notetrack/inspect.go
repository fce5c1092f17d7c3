package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/notetrack/notetrack"
	"github.com/notetrack/notetrack/report"
	"github.com/notetrack/notetrack/version"
)

var (
	templatePath string
	listNotes    bool
	scaleRoot    int
)

func init() {
	infoCmd.Flags().StringVar(&templatePath, "template", "", "render the summary with this text/template file instead")
	infoCmd.Flags().BoolVarP(&listNotes, "notes", "l", false, "list every note")
	rootCmd.AddCommand(infoCmd)
	scalesCmd.Flags().IntVarP(&scaleRoot, "root", "r", 60, "key of the tonic when listing chords")
	rootCmd.AddCommand(scalesCmd)
	rootCmd.AddCommand(versionCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info <track.xml|track.yml>",
	Short: "Summarize a track",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := loadSequence(args[0])
		if err != nil {
			return err
		}
		var r *report.Reporter
		if templatePath != "" {
			r, err = report.NewFromFile(templatePath)
		} else {
			r, err = report.New()
		}
		if err != nil {
			return err
		}
		sum := report.Summarize(s)
		if err := r.Execute(cmd.OutOrStdout(), "", sum); err != nil {
			return err
		}
		if listNotes && templatePath == "" {
			return r.Execute(cmd.OutOrStdout(), "notes.tmpl", sum)
		}
		return nil
	},
}

var scalesCmd = &cobra.Command{
	Use:   "scales",
	Short: "List the built-in scales with their triads",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tINTERVALS\tMODE\tTONIC\tDOMINANT")
		for _, s := range notetrack.Scales() {
			mode := "major"
			if s.SeemsMinor() {
				mode = "minor"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.DisplayName(), s.Intervals(), mode,
				keys(s.Triad(notetrack.Tonic, false), scaleRoot), keys(s.Triad(notetrack.Dominant, false), scaleRoot))
		}
		return w.Flush()
	},
}

func keys(offsets []int, root int) string {
	ret := make([]string, len(offsets))
	for i, k := range offsets {
		ret[i] = fmt.Sprint(root + k)
	}
	return strings.Join(ret, " ")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Long())
		if v, err := version.Semver(); err == nil && v.Prerelease() != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "pre-release %v\n", v.Prerelease())
		}
	},
}
