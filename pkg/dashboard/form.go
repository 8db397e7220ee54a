package dashboard

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/marcus/rcm/internal/forms"
	"github.com/marcus/rcm/internal/manager"
)

var errNameRequired = errors.New("name is required")

// formMode distinguishes create from edit.
type formMode int

const (
	formModeCreate formMode = iota
	formModeEdit
)

// formStage tracks the create flow: first pick a type and name, then
// fill the type's fields.
type formStage int

const (
	stageMeta formStage = iota
	stageFields
)

// formState holds the remote form modal.
type formState struct {
	mode  formMode
	stage formStage

	// stageMeta bindings (create only)
	metaForm *huh.Form
	typeName string
	name     string

	// stageFields bindings
	fieldsForm *huh.Form
	values     *forms.Values
}

// openCreateForm opens the two-stage create flow.
func (m Model) openCreateForm() (tea.Model, tea.Cmd) {
	fs := &formState{mode: formModeCreate, stage: stageMeta}

	available := m.Manager.Registry().Available()
	opts := make([]huh.Option[string], 0, len(available))
	for _, t := range available {
		opts = append(opts, huh.NewOption(t, t))
	}
	if len(opts) > 0 {
		fs.typeName = available[0]
	}

	fs.metaForm = huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Remote Type").
			Options(opts...).
			Value(&fs.typeName),
		huh.NewInput().
			Title("Remote Name").
			Placeholder("e.g. myhost").
			Value(&fs.name).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errNameRequired
				}
				return nil
			}),
	).Title("New Remote"))

	m.Form = fs
	m.Modal = modalForm
	return m, fs.metaForm.Init()
}

// openEditForm opens the field form pre-filled from the stored entry.
func (m Model) openEditForm(name string) (tea.Model, tea.Cmd) {
	entry, err := m.Manager.Store().ReadOne(name)
	if err != nil {
		m.setStatus("Cannot edit "+name+": "+err.Error(), statusError)
		return m, nil
	}
	p, ok := m.Manager.Registry().Lookup(entry.Type)
	if !ok {
		m.setStatus("Cannot edit "+name+": no handler for type "+entry.Type, statusError)
		return m, nil
	}

	fs := &formState{mode: formModeEdit, stage: stageFields, name: name, typeName: p.TypeName()}
	fs.fieldsForm, fs.values = forms.Build(p, "Edit Remote: "+name, entry.Fields)

	m.Form = fs
	m.Modal = modalForm
	return m, fs.fieldsForm.Init()
}

// updateForm forwards messages to the active huh form and advances the
// flow when a stage completes.
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	fs := m.Form

	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
		m.Modal = modalNone
		m.Form = nil
		m.setStatus("Cancelled", statusNormal)
		return m, nil
	}

	active := fs.metaForm
	if fs.stage == stageFields {
		active = fs.fieldsForm
	}

	updated, cmd := active.Update(msg)
	if f, ok := updated.(*huh.Form); ok {
		if fs.stage == stageMeta {
			fs.metaForm = f
		} else {
			fs.fieldsForm = f
		}
		active = f
	}

	if active.State != huh.StateCompleted {
		return m, cmd
	}

	if fs.stage == stageMeta {
		p, ok := m.Manager.Registry().Lookup(fs.typeName)
		if !ok {
			m.Modal = modalNone
			m.Form = nil
			m.setStatus("Unknown remote type "+fs.typeName, statusError)
			return m, nil
		}
		fs.stage = stageFields
		fs.fieldsForm, fs.values = forms.Build(p, "New Remote: "+fs.name, nil)
		return m, fs.fieldsForm.Init()
	}

	// Field form completed: submit through the lifecycle manager.
	pending := pendingSave{
		mode:     fs.mode,
		typeName: fs.typeName,
		name:     fs.name,
		values:   fs.values.Map(),
		opts:     manager.Options{},
	}
	m.Modal = modalNone
	m.Form = nil
	return m.startOp("Saving "+pending.name+"...", m.saveRemote(pending))
}
