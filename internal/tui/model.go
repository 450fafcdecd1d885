package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskventure/internal/model"
	"taskventure/internal/progress"
	"taskventure/internal/storage"
	"taskventure/internal/ui"
)

type boardModel struct {
	ctx   context.Context
	svc   *progress.Service
	store *storage.Store

	width  int
	height int

	profile  *model.UserProfile
	tasks    []model.Task
	subtasks map[int64][]model.Subtask

	expanded map[int64]bool
	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	profile  *model.UserProfile
	tasks    []model.Task
	subtasks map[int64][]model.Subtask
	err      error
}

type completedMsg struct {
	id  int64
	res *progress.CompleteResult
	err error
}

func newBoardModel(ctx context.Context, svc *progress.Service, store *storage.Store) boardModel {
	return boardModel{
		ctx:      ctx,
		svc:      svc,
		store:    store,
		expanded: map[int64]bool{},
		subtasks: map[int64][]model.Subtask{},
		loading:  true,
		lastLog:  "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		p, err := m.svc.Profile(m.ctx, storage.DefaultUserID)
		if err != nil {
			return loadedMsg{err: err}
		}
		tasks, err := m.store.ListTasks(m.ctx, model.TaskPending)
		if err != nil {
			return loadedMsg{err: err}
		}
		subs := map[int64][]model.Subtask{}
		for _, t := range tasks {
			list, err := m.store.ListSubtasks(m.ctx, t.TaskID)
			if err != nil {
				return loadedMsg{err: err}
			}
			if len(list) > 0 {
				subs[t.TaskID] = list
			}
		}
		return loadedMsg{profile: p, tasks: tasks, subtasks: subs}
	}
}

func (m boardModel) completeCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteTask(m.ctx, storage.DefaultUserID, id)
		return completedMsg{id: id, res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.profile = msg.profile
		m.tasks = msg.tasks
		m.subtasks = msg.subtasks
		if m.selected >= len(m.tasks) {
			m.selected = len(m.tasks) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case completedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, progress.ErrAlreadyCompleted) {
				m.lastLog = fmt.Sprintf("Quest %d is already completed.", msg.id)
			} else {
				m.lastLog = "Complete failed: " + msg.err.Error()
			}
			return m, nil
		}
		log := fmt.Sprintf("Completed %d: +%d XP", msg.id, msg.res.XPAwarded)
		if msg.res.LeveledUp {
			log += fmt.Sprintf(" — %s %d", ui.BadgeLevelUp, msg.res.Level)
		}
		for _, u := range msg.res.Unlocked {
			log += fmt.Sprintf(" %s %s", ui.IconTrophy, u.Title)
		}
		m.lastLog = log
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.tasks)-1 {
				m.selected++
			}
			return m, nil
		case "tab", " ":
			if t, ok := m.selectedTask(); ok {
				m.expanded[t.TaskID] = !m.expanded[t.TaskID]
			}
			return m, nil
		case "enter":
			if t, ok := m.selectedTask(); ok {
				m.lastLog = fmt.Sprintf("Completing %d…", t.TaskID)
				return m, m.completeCmd(t.TaskID)
			}
			return m, nil
		}
	}
	return m, nil
}

func (m boardModel) selectedTask() (model.Task, bool) {
	if m.selected < 0 || m.selected >= len(m.tasks) {
		return model.Task{}, false
	}
	return m.tasks[m.selected], true
}

func (m boardModel) View() string {
	if m.loading {
		return ui.Muted.Render("Loading…")
	}
	if m.err != nil {
		return ui.Bad.Render(ui.IconError + " " + m.err.Error())
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n\n")
	b.WriteString(m.questsView())
	b.WriteString("\n")
	b.WriteString(ui.Muted.Render(m.lastLog))
	b.WriteString("\n")
	b.WriteString(ui.Muted.Render("enter complete · space expand · r refresh · q quit"))
	return b.String()
}

func (m boardModel) headerView() string {
	p := m.profile
	name := p.Username
	if p.Title != nil {
		name += " " + ui.Gold.Render("«"+*p.Title+"»")
	}
	header := fmt.Sprintf("%s  %s  %s",
		ui.Heading(ui.IconShield, name),
		ui.LabelValue("Level", p.Level),
		ui.XPBar(p.Experience, m.svc.LevelThreshold(), 16),
	)
	return ui.Panel.Render(header)
}

func (m boardModel) questsView() string {
	if len(m.tasks) == 0 {
		return ui.Muted.Render("No pending quests. Add one with `tv add`.")
	}

	var b strings.Builder
	for i, t := range m.tasks {
		marker := "  "
		if len(m.subtasks[t.TaskID]) > 0 {
			if m.expanded[t.TaskID] {
				marker = "▾ "
			} else {
				marker = "▸ "
			}
		}
		line := fmt.Sprintf("%s%3d. [%s] %s", marker, t.TaskID, ui.DifficultyText(t.Difficulty), t.Title)
		if t.DueDate != nil {
			line += ui.Muted.Render("  due " + t.DueDate.Local().Format("2006-01-02 15:04"))
		}
		if i == m.selected {
			line = ui.SelectedRow.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")

		if m.expanded[t.TaskID] {
			for _, st := range m.subtasks[t.TaskID] {
				check := "☐"
				title := st.Title
				if st.Status == model.SubtaskCompleted {
					check = "☑"
					title = ui.Muted.Render(title)
				}
				b.WriteString(fmt.Sprintf("       %s %s\n", check, title))
			}
		}
	}
	return b.String()
}
