package main

import (
	"encoding/json"
	"errors"
	"os"

	"cv-builder/internal/domain"
	"cv-builder/internal/editor"
	"cv-builder/internal/model"
	"cv-builder/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit [file.json]",
	Short: "Edit a CV document in the terminal with a live preview",
	Long: `Open the terminal editor on file.json (default cv.json). A missing file
starts an empty CV. ctrl+s writes the document back to the file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "cv.json"
		if len(args) == 1 {
			path = args[0]
		}

		session := editor.NewSession(ownerID)
		if _, err := os.Stat(path); err == nil {
			d, err := readDocument(path)
			if err != nil {
				return err
			}
			session = editor.LoadSession(domain.CVRecord{OwnerID: ownerID, Name: path, Data: d})
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}

		save := func(d model.Document) error {
			b, err := json.MarshalIndent(d, "", "  ")
			if err != nil {
				return err
			}
			return os.WriteFile(path, append(b, '\n'), 0o644)
		}

		_, err := tea.NewProgram(tui.New(session, save), tea.WithAltScreen()).Run()
		return err
	},
}
