package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/recallkit/recallkit/pkg/deck"
	"github.com/recallkit/recallkit/pkg/flashcard"
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert [flags] <file.md>...",
	Short: "Convert Markdown notes into a flashcard set",
	Long: `Convert Markdown notes into a flashcard set.

The cards are written to <output>/<topic>.json and <output>/<topic>.tsv and
the topic index is refreshed. With --stdout the JSON or TSV is printed
instead and nothing is written.

Example:
  recallkit convert -t python notes/python/*.md
  recallkit convert --stdout tsv notes.md > quizlet.tsv`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		topic, _ := cmd.Flags().GetString("topic")
		outDir, _ := cmd.Flags().GetString("output")
		stdout, _ := cmd.Flags().GetString("stdout")

		if outDir == "" {
			outDir = mustLoadConfig().BuildDir
		}

		if err := convert(os.Stdout, args, topic, outDir, stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Conversion failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringP("topic", "t", "default", "Topic name used for the output files")
	convertCmd.Flags().StringP("output", "o", "", "Output directory (default: configured build_dir)")
	convertCmd.Flags().String("stdout", "", "Print the result instead of saving it (json or tsv)")
}

func convert(w io.Writer, paths []string, topic, outDir, stdout string) error {
	sources, err := flashcard.ReadSources(paths)
	if err != nil {
		return err
	}
	out, err := flashcard.BuildOutputs(sources)
	if err != nil {
		return err
	}

	switch stdout {
	case "json":
		_, err = fmt.Fprintln(w, out.JSON)
		return err
	case "tsv":
		_, err = fmt.Fprint(w, out.TSV)
		return err
	case "":
	default:
		return fmt.Errorf("unknown --stdout format %q (want json or tsv)", stdout)
	}

	count, err := deck.NewLibrary(outDir).Save(topic, out)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "Saved %d flashcards to %s.json\n", count, topic)
	return err
}
