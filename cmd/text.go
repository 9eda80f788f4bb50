package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// textSource is the --text/--file pair shared by commands that read a text.
type textSource struct {
	text string
	file string
}

func (s *textSource) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.text, "text", "t", "", "Text to read along with")
	cmd.Flags().StringVarP(&s.file, "file", "f", "", "Read the text from a file")
	cmd.MarkFlagsMutuallyExclusive("text", "file")
}

// read returns the text from the flags, prompting for it when neither is set.
func (s *textSource) read() (string, error) {
	switch {
	case s.text != "":
		return s.text, nil
	case s.file != "":
		data, err := os.ReadFile(s.file)
		if err != nil {
			return "", fmt.Errorf("read text file: %w", err)
		}
		return string(data), nil
	}

	var text string
	err := huh.NewText().
		Title("Text").
		Description("Paste the text that the audio reads out").
		Value(&text).
		Validate(func(v string) error {
			if strings.TrimSpace(v) == "" {
				return errors.New("text is required")
			}
			return nil
		}).
		Run()
	if err != nil {
		return "", err
	}
	return text, nil
}
