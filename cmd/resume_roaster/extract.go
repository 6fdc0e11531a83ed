package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-roaster/internal/extraction"
	"github.com/jonathan/resume-roaster/internal/upload"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract <resume.pdf>",
	Short: "Print the text extracted from a PDF",
	Long:  "Print the text the roaster would send to the model for a PDF, without calling the model.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

var extractPreview bool

func init() {
	extractCmd.Flags().BoolVar(&extractPreview, "preview", false, "Print only the preview shown by the upload page")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	if !extraction.IsPDF(data) {
		return fmt.Errorf("%s: %s", args[0], upload.MsgUnsupportedFile)
	}

	text, err := extraction.NewPDFExtractor().Extract(cmd.Context(), data)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	if extractPreview {
		text = upload.Preview(text, upload.PreviewLength)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
	return err
}
