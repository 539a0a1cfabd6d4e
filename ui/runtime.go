package ui

import (
	"bvhkit/bvh"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
)

func Start(title string, f *bvh.File) error {
	viewer := CreateViewer(title, f)
	if err := tea.NewProgram(viewer).Start(); err != nil {
		return errors.Wrap(err, "ui.Start error")
	}
	return nil
}
