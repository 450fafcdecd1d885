package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"taskventure/internal/progress"
	"taskventure/internal/storage"
)

func RunBoard(ctx context.Context, svc *progress.Service, store *storage.Store, out io.Writer) error {
	m := newBoardModel(ctx, svc, store)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
