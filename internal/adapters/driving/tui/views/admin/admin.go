// Package admin provides the job-code management view for the TUI.
package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ncosearch-cli/internal/core/domain"
	"github.com/custodia-labs/ncosearch-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ncosearch-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ncosearch-cli/internal/core/services"
)

// Mode is the admin screen's current interaction.
type Mode int

const (
	// ModeList shows the record table.
	ModeList Mode = iota
	// ModeForm edits a new or existing record.
	ModeForm
	// ModeConfirm asks before deleting the selected record.
	ModeConfirm
)

// Form field order.
const (
	fieldCode = iota
	fieldTitle
	fieldDescription
	fieldCount
)

// confirmed approves the deletion the user already accepted on screen.
var confirmed = driven.ConfirmFunc(func(context.Context, string) (bool, error) {
	return true, nil
})

// View lists, adds, edits and deletes job-code records.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	admin  driving.AdminService
	ctx    context.Context
	ttl    time.Duration

	mode     Mode
	records  []domain.JobCodeRecord
	selected int
	loading  bool
	loadErr  bool
	busy     bool

	// form state
	inputs    []textinput.Model
	focus     int
	editingID int64
	formErr   string

	pending *domain.JobCodeRecord

	width  int
	height int
	ready  bool
}

// NewView creates a new admin view.
func NewView(s *styles.Styles, km *keymap.KeyMap, admin driving.AdminService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles: s,
		keymap: km,
		admin:  admin,
		ctx:    context.Background(),
		ttl:    services.NoticeTTL,
		inputs: newInputs(),
		width:  80,
		height: 24,
	}
}

func newInputs() []textinput.Model {
	inputs := make([]textinput.Model, fieldCount)

	code := textinput.New()
	code.Placeholder = "e.g. 2431.0201"
	code.CharLimit = 20
	inputs[fieldCode] = code

	title := textinput.New()
	title.Placeholder = "e.g. Data Analyst"
	title.CharLimit = 255
	inputs[fieldTitle] = title

	desc := textinput.New()
	desc.Placeholder = "optional"
	desc.CharLimit = 1000
	inputs[fieldDescription] = desc

	return inputs
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init fetches the record list.
func (v *View) Init() tea.Cmd {
	v.mode = ModeList
	return v.load()
}

func (v *View) load() tea.Cmd {
	if v.admin == nil {
		return nil
	}
	v.loading = true
	admin, ctx := v.admin, v.ctx
	return func() tea.Msg {
		records, err := admin.List(ctx)
		return messages.RecordsLoaded{Records: records, Err: err}
	}
}

// Update handles messages for the admin view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.RecordsLoaded:
		v.loading = false
		v.loadErr = msg.Err != nil
		if msg.Err == nil {
			v.setRecords(msg.Records)
		}
		return v, v.scheduleNotice()

	case messages.RecordSaved:
		v.busy = false
		if msg.Err != nil {
			if errors.Is(msg.Err, domain.ErrValidation) {
				v.formErr = domain.UserMessage(msg.Err)
			}
			return v, v.scheduleNotice()
		}
		v.mode = ModeList
		v.setRecords(v.admin.Records())
		v.selectID(msg.Record)
		return v, v.scheduleNotice()

	case messages.RecordDeleted:
		v.busy = false
		v.mode = ModeList
		v.pending = nil
		if msg.Err == nil {
			v.setRecords(v.admin.Records())
		}
		return v, v.scheduleNotice()

	case messages.NoticeExpired:
		if v.admin != nil {
			v.admin.ClearNotice(msg.Seq)
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	if v.mode == ModeForm {
		var cmd tea.Cmd
		v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
		return v, cmd
	}
	return v, nil
}

// scheduleNotice arms the expiry timer for the banner the last action posted.
// The timer carries the banner's sequence number, so an older timer firing
// after a newer banner leaves the newer one alone.
func (v *View) scheduleNotice() tea.Cmd {
	if v.admin == nil {
		return nil
	}
	n := v.admin.Notice()
	if n.IsZero() {
		return nil
	}
	seq := n.Seq
	return tea.Tick(v.ttl, func(time.Time) tea.Msg {
		return messages.NoticeExpired{Seq: seq}
	})
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch v.mode {
	case ModeForm:
		return v.handleFormKey(msg)
	case ModeConfirm:
		return v.handleConfirmKey(msg)
	case ModeList:
	}
	return v.handleListKey(msg)
}

func (v *View) handleListKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case keymap.Matches(keyStr, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(keyStr, v.keymap.Down):
		if v.selected < len(v.records)-1 {
			v.selected++
		}
	case keymap.Matches(keyStr, v.keymap.Add):
		return v, v.openForm(nil)
	case keymap.Matches(keyStr, v.keymap.Edit), keyStr == "enter":
		if rec := v.SelectedRecord(); rec != nil {
			return v, v.openForm(rec)
		}
	case keymap.Matches(keyStr, v.keymap.Delete):
		if rec := v.SelectedRecord(); rec != nil {
			v.pending = rec
			v.mode = ModeConfirm
		}
	case keymap.Matches(keyStr, v.keymap.Refresh):
		return v, v.load()
	}
	return v, nil
}

func (v *View) openForm(rec *domain.JobCodeRecord) tea.Cmd {
	v.mode = ModeForm
	v.formErr = ""
	v.editingID = 0
	v.inputs = newInputs()
	v.sizeInputs()
	if rec != nil {
		v.editingID = rec.ID
		v.inputs[fieldCode].SetValue(rec.NCOCode)
		v.inputs[fieldTitle].SetValue(rec.Title)
		v.inputs[fieldDescription].SetValue(rec.Description)
	}
	v.focus = fieldCode
	return v.inputs[v.focus].Focus()
}

func (v *View) handleFormKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.mode = ModeList
		v.formErr = ""
		return v, nil
	case "tab", "down":
		return v, v.moveFocus(1)
	case "shift+tab", "up":
		return v, v.moveFocus(-1)
	case "enter":
		return v, v.save()
	}

	var cmd tea.Cmd
	v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
	return v, cmd
}

func (v *View) moveFocus(delta int) tea.Cmd {
	v.inputs[v.focus].Blur()
	v.focus = (v.focus + delta + fieldCount) % fieldCount
	return v.inputs[v.focus].Focus()
}

// save submits the form. Required-field checks run in the service before
// any request is sent.
func (v *View) save() tea.Cmd {
	if v.busy || v.admin == nil {
		return nil
	}
	v.busy = true
	v.formErr = ""

	input := domain.JobCodeInput{
		NCOCode:     v.inputs[fieldCode].Value(),
		Title:       v.inputs[fieldTitle].Value(),
		Description: v.inputs[fieldDescription].Value(),
	}
	admin, ctx, id := v.admin, v.ctx, v.editingID

	return func() tea.Msg {
		var (
			rec *domain.JobCodeRecord
			err error
		)
		if id == 0 {
			rec, err = admin.Create(ctx, input)
		} else {
			rec, err = admin.Update(ctx, id, input)
		}
		return messages.RecordSaved{Record: rec, Err: err}
	}
}

func (v *View) handleConfirmKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Confirm):
		if v.busy || v.pending == nil || v.admin == nil {
			return v, nil
		}
		v.busy = true
		admin, ctx, id := v.admin, v.ctx, v.pending.ID
		return v, func() tea.Msg {
			return messages.RecordDeleted{ID: id, Err: admin.Delete(ctx, id, confirmed)}
		}
	case keymap.Matches(keyStr, v.keymap.Deny):
		if !v.busy {
			v.pending = nil
			v.mode = ModeList
		}
	}
	return v, nil
}

func (v *View) setRecords(records []domain.JobCodeRecord) {
	v.records = records
	if v.selected >= len(records) {
		v.selected = max(len(records)-1, 0)
	}
}

func (v *View) selectID(rec *domain.JobCodeRecord) {
	if rec == nil {
		return
	}
	for i := range v.records {
		if v.records[i].ID == rec.ID {
			v.selected = i
			return
		}
	}
}

// View renders the admin screen.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{v.styles.Title.Render("Manage Job Codes"), ""}

	if v.admin != nil {
		if n := v.admin.Notice(); !n.IsZero() {
			sections = append(sections, v.styles.Notice(n.Kind).Render(n.Text), "")
		}
	}

	switch v.mode {
	case ModeForm:
		sections = append(sections, v.renderForm())
	case ModeConfirm:
		sections = append(sections, v.renderTable(), "", v.renderConfirm())
	case ModeList:
		sections = append(sections, v.renderTable(), "", v.renderHelp())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderTable() string {
	switch {
	case v.admin == nil:
		return v.styles.Error.Render("Admin service not available")
	case v.loading && len(v.records) == 0:
		return v.styles.Muted.Render("Loading job codes...")
	case v.loadErr && len(v.records) == 0:
		return v.styles.Muted.Render("Could not load job codes. Press r to retry.")
	case len(v.records) == 0:
		return v.styles.Muted.Render("No job codes found. Press a to add one.")
	}

	visible := max(v.height-12, 3)
	start := 0
	if v.selected >= visible {
		start = v.selected - visible + 1
	}
	end := min(start+visible, len(v.records))

	rows := make([][]string, 0, end-start)
	for _, r := range v.records[start:end] {
		rows = append(rows, []string{fmt.Sprint(r.ID), r.NCOCode, r.Title, truncate(r.Description, 40)})
	}

	selectedRow := v.selected - start
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(v.styles.Muted).
		Headers("ID", "NCO CODE", "TITLE", "DESCRIPTION").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return v.styles.Subtitle.Padding(0, 1)
			case row == selectedRow:
				return v.styles.Selected.Padding(0, 1)
			}
			return v.styles.Normal.Padding(0, 1)
		})

	out := t.String()
	if end-start < len(v.records) {
		out += "\n" + v.styles.Muted.Render(fmt.Sprintf("%d-%d of %d", start+1, end, len(v.records)))
	}
	return out
}

func (v *View) renderForm() string {
	heading := "Add Job Code"
	if v.editingID != 0 {
		heading = fmt.Sprintf("Edit Job Code #%d", v.editingID)
	}

	labels := [fieldCount]string{"NCO Code", "Title", "Description"}
	lines := []string{v.styles.Subtitle.Render(heading), ""}
	for i := range v.inputs {
		label := v.styles.Normal.Render(fmt.Sprintf("%-12s", labels[i]))
		if i == v.focus {
			label = v.styles.Title.Render(fmt.Sprintf("%-12s", labels[i]))
		}
		lines = append(lines, label+" "+v.inputs[i].View())
	}

	lines = append(lines, "")
	if v.formErr != "" {
		lines = append(lines, v.styles.Error.Render(v.formErr), "")
	}
	if v.busy {
		lines = append(lines, v.styles.Muted.Render("Saving..."))
	} else {
		lines = append(lines, v.styles.Help.Render("[tab] Next field  [enter] Save  [esc] Cancel"))
	}
	return strings.Join(lines, "\n")
}

func (v *View) renderConfirm() string {
	if v.pending == nil {
		return ""
	}
	prompt := fmt.Sprintf("%s\n%s  %s", services.MsgConfirmDelete, v.pending.NCOCode, v.pending.Title)
	if v.busy {
		return v.styles.Border.Padding(0, 1).Render(prompt + "\n\n" + v.styles.Muted.Render("Deleting..."))
	}
	return v.styles.Border.Padding(0, 1).Render(prompt + "\n\n" + v.styles.Help.Render("[y] Yes  [n] No"))
}

func (v *View) renderHelp() string {
	hints := make([]string, 0, len(v.keymap.AdminHelp()))
	for _, b := range v.keymap.AdminHelp() {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("[%s] %s", h.Key, h.Desc))
	}
	return v.styles.Help.Render(strings.Join(hints, "  "))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.sizeInputs()
}

func (v *View) sizeInputs() {
	for i := range v.inputs {
		v.inputs[i].Width = max(v.width-20, 20)
	}
}

// Mode returns the current interaction mode.
func (v *View) Mode() Mode {
	return v.mode
}

// Records returns the displayed records.
func (v *View) Records() []domain.JobCodeRecord {
	return v.records
}

// SelectedRecord returns the highlighted record, or nil when the list is empty.
func (v *View) SelectedRecord() *domain.JobCodeRecord {
	if v.selected < 0 || v.selected >= len(v.records) {
		return nil
	}
	rec := v.records[v.selected]
	return &rec
}

// FormError returns the validation message shown in the form.
func (v *View) FormError() string {
	return v.formErr
}
