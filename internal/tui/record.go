package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/tomato/internal/logging"
	"github.com/sadopc/tomato/internal/record"
)

// recordModel shows and edits the single stored record. The file is read
// when the view is entered and written only when the form is submitted.
type recordModel struct {
	records *record.Store
	width   int
	height  int

	rec    record.Record
	loaded bool
	err    error

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	formID   *string
	formNote *string
}

func newRecordModel(rs *record.Store) recordModel {
	id, note := "", ""
	return recordModel{
		records:  rs,
		formID:   &id,
		formNote: &note,
	}
}

func (r *recordModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

func (r recordModel) load() tea.Cmd {
	rs := r.records
	return func() tea.Msg {
		rec, err := rs.Get()
		return recordLoadedMsg{rec: rec, err: err}
	}
}

func (r recordModel) save(rec record.Record) tea.Cmd {
	rs := r.records
	return func() tea.Msg {
		return recordSavedMsg{rec: rec, err: rs.Put(rec)}
	}
}

func (r recordModel) update(msg tea.Msg) (recordModel, tea.Cmd) {
	if r.formActive && r.form != nil {
		return r.updateForm(msg)
	}

	switch msg := msg.(type) {
	case recordLoadedMsg:
		r.loaded = true
		r.rec = msg.rec
		r.err = msg.err
		if msg.err != nil && !errors.Is(msg.err, record.ErrEmpty) {
			logging.Warn("load record", logging.KeyError, msg.err)
		}
		return r, nil

	case recordSavedMsg:
		if msg.err != nil {
			r.err = msg.err
			return r, nil
		}
		r.loaded = true
		r.rec = msg.rec
		r.err = nil
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Edit), key.Matches(msg, keys.Enter):
			return r.showForm()
		case key.Matches(msg, keys.Reload):
			return r, r.load()
		}
	}
	return r, nil
}

func (r recordModel) showForm() (recordModel, tea.Cmd) {
	*r.formID = r.rec.ID
	*r.formNote = r.rec.Note

	r.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("ID").Value(r.formID),
			huh.NewText().Title("Note").Value(r.formNote),
		).Title("Record"),
	).WithShowHelp(true).WithShowErrors(true)

	r.formActive = true
	return r, r.form.Init()
}

func (r recordModel) updateForm(msg tea.Msg) (recordModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			r.formActive = false
			r.form = nil
			return r, nil
		}
	}

	form, cmd := r.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		r.form = f
	}

	if r.form.State == huh.StateCompleted {
		r.formActive = false
		r.form = nil
		return r, r.save(record.Record{ID: *r.formID, Note: *r.formNote})
	}

	return r, cmd
}

func (r recordModel) view() string {
	w := r.width - 4
	title := titleStyle.Render("Record")

	if r.formActive && r.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", r.form.View()),
		)
	}

	rows := []string{title, mutedStyle.Render(r.records.Path()), ""}

	switch {
	case !r.loaded:
		rows = append(rows, mutedStyle.Render("Loading..."))
	case r.err != nil:
		rows = append(rows, describeRecordError(r.err))
	default:
		label := lipgloss.NewStyle().Width(8)
		rows = append(rows,
			fmt.Sprintf("  %s %s", label.Render("ID"), highlightStyle.Render(r.rec.ID)),
			fmt.Sprintf("  %s %s", label.Render("Note"), r.rec.Note),
		)
	}

	rows = append(rows, "", mutedStyle.Render("e: edit  r: reload"))
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func describeRecordError(err error) string {
	switch {
	case errors.Is(err, record.ErrEmpty):
		return warningStyle.Render("No record saved yet. Press e to create one.")
	case record.IsDecodeError(err):
		return errorStyle.Render("Record file is not valid: " + err.Error())
	case record.IsIOError(err):
		return errorStyle.Render("Cannot access record file: " + err.Error())
	}
	return errorStyle.Render(err.Error())
}
