package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rungrid/rungrid/internal/backend"
	"github.com/rungrid/rungrid/internal/keys"
	"github.com/rungrid/rungrid/internal/log"
	"github.com/rungrid/rungrid/internal/ui/modal"
	"github.com/rungrid/rungrid/internal/ui/toaster"
)

// defaultGroupColor is the accent given to groups created from the menu.
const defaultGroupColor = "#4f7dff"

const browseHint = "Press ctrl+t on a path to browse."

// pickFunc asks the backend for a path through a native dialog.
type pickFunc func(ctx context.Context) (string, error)

// pickerForm is a form whose path fields can be filled from a picker.
// Fields listed in appendTo collect picks as a semicolon list instead of
// being replaced.
type pickerForm struct {
	*modal.Form
	modalID  string
	pickers  map[string]pickFunc
	appendTo map[string]bool
	ctx      context.Context
}

func (m Model) newPickerForm(modalID string, fields ...modal.Field) *pickerForm {
	return &pickerForm{
		Form:     modal.NewForm(fields...),
		modalID:  modalID,
		pickers:  map[string]pickFunc{},
		appendTo: map[string]bool{},
		ctx:      m.ctx,
	}
}

// Update runs the focused field's picker on the browse key and leaves every
// other message to the form.
func (f *pickerForm) Update(msg tea.Msg) (bool, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, keys.Modal.Browse) {
		field := f.FocusedKey()
		pick, ok := f.pickers[field]
		if !ok {
			return false, nil
		}
		id, ctx := f.modalID, f.ctx
		return true, func() tea.Msg {
			path, err := pick(ctx)
			return pickedMsg{modal: id, field: field, path: path, err: err}
		}
	}
	return f.Form.Update(msg)
}

// fill writes a picked path into field.
func (f *pickerForm) fill(field, path string) {
	path = strings.TrimSpace(path)
	if path == "" {
		return
	}
	if f.appendTo[field] {
		if current := strings.TrimSpace(f.Value(field)); current != "" {
			path = current + "; " + path
		}
	}
	f.SetValue(field, path)
}

// applyPick routes a picker result back into the form that asked for it.
// A dismissed picker changes nothing.
func (m Model) applyPick(msg pickedMsg) tea.Cmd {
	if errors.Is(msg.err, backend.ErrCancelled) {
		log.Debug(log.CatUI, "Picker dismissed", "modal", msg.modal, "field", msg.field)
		return nil
	}
	if msg.err != nil {
		return m.showError("Could not open picker", msg.err, "The picker failed")
	}
	e, ok := m.modals.Stack().Get(msg.modal)
	if !ok {
		return nil
	}
	if form, ok := e.Content.(*pickerForm); ok {
		form.fill(msg.field, msg.path)
	}
	return nil
}

// openEditItem edits an item's name, target and icon. The modal stays open
// until the save succeeds.
func (m Model) openEditItem(it backend.Item) (Model, tea.Cmd) {
	form := m.newPickerForm(modalEditItem,
		modal.Field{Key: "name", Label: "Name", Value: it.Name},
		modal.Field{Key: "path", Label: "Target", Placeholder: "exe, lnk, url or folder", Value: it.Path},
		modal.Field{Key: "icon", Label: "Icon", Placeholder: "follow the target", Value: it.IconPath},
	)
	b := m.backend
	form.pickers["path"] = b.PickTargetPath
	form.pickers["icon"] = b.PickIconSource

	return m.open(modal.Payload{
		ID:             modalEditItem,
		Kind:           modal.KindForm,
		Title:          "Edit shortcut",
		Description:    "Update the name, target or icon. " + browseHint,
		Size:           modal.SizeLarge,
		AutoClose:      modal.Bool(false),
		PrimaryLabel:   "Save",
		SecondaryLabel: m.cancelLabel(),
		Content:        form,
		OnConfirm: func(ctx context.Context) (tea.Msg, error) {
			return saveItem(ctx, b, it, form.Values())
		},
		OnCancel: closeAction(modalEditItem),
	}), nil
}

// saveItem applies an edit. A new icon source is stored as is; otherwise a
// changed target gets its icon re-extracted, except for URLs.
func saveItem(ctx context.Context, b backend.Commands, it backend.Item, values map[string]string) (tea.Msg, error) {
	name := strings.TrimSpace(values["name"])
	path := strings.TrimSpace(values["path"])
	if name == "" || path == "" {
		return nil, errors.New("name and target are required")
	}
	icon := strings.TrimSpace(values["icon"])

	pathChanged := !strings.EqualFold(strings.TrimSpace(it.Path), path)
	typ := it.Type
	if pathChanged {
		typ = "" // let the backend classify the new target
	}
	updated, err := b.UpdateItem(ctx, backend.ItemUpdate{
		ID:       it.ID,
		Name:     name,
		Path:     path,
		Type:     typ,
		IconPath: icon,
		GroupID:  it.GroupID,
		Tags:     it.Tags,
		Favorite: it.Favorite,
		Hidden:   it.Hidden,
	})
	if err != nil {
		return nil, err
	}

	if icon == it.IconPath && pathChanged && updated.Type != backend.ItemTypeURL {
		refreshed, err := b.RefreshItemIcon(ctx, it.ID)
		if err != nil {
			log.Warn(log.CatUI, "Icon refresh after edit failed", "id", it.ID, "error", err)
		} else {
			updated = refreshed
		}
	}
	return itemSavedMsg{item: updated}, nil
}

// openAddItem creates an item, optionally inside a named group.
func (m Model) openAddItem() (Model, tea.Cmd) {
	form := m.newPickerForm(modalAddItem,
		modal.Field{Key: "name", Label: "Name"},
		modal.Field{Key: "path", Label: "Target", Placeholder: "exe, lnk, url or folder"},
		modal.Field{Key: "type", Label: "Type", Placeholder: "app, url, folder or doc", Value: string(backend.ItemTypeApp)},
		modal.Field{Key: "group", Label: "Group", Placeholder: "none"},
	)
	b := m.backend
	form.pickers["path"] = b.PickTargetPath

	return m.open(modal.Payload{
		ID:             modalAddItem,
		Kind:           modal.KindForm,
		Title:          "Add shortcut",
		Description:    browseHint,
		Size:           modal.SizeLarge,
		PrimaryLabel:   "Add",
		SecondaryLabel: m.cancelLabel(),
		Content:        form,
		OnConfirm: func(ctx context.Context) (tea.Msg, error) {
			return createItem(ctx, b, form.Values())
		},
	}), nil
}

func createItem(ctx context.Context, b backend.Commands, values map[string]string) (tea.Msg, error) {
	in := backend.ItemInput{
		Name: strings.TrimSpace(values["name"]),
		Path: strings.TrimSpace(values["path"]),
		Type: backend.ItemType(strings.ToLower(strings.TrimSpace(values["type"]))),
	}
	if group := strings.TrimSpace(values["group"]); group != "" {
		id, err := groupID(ctx, b, group)
		if err != nil {
			return nil, err
		}
		in.GroupID = id
	}
	it, err := b.CreateItem(ctx, in)
	if err != nil {
		return nil, err
	}
	return itemCreatedMsg{item: it}, nil
}

// groupID resolves a group by name, ignoring case.
func groupID(ctx context.Context, b backend.Commands, name string) (string, error) {
	groups, err := b.ListGroups(ctx)
	if err != nil {
		return "", err
	}
	for _, g := range groups {
		if strings.EqualFold(g.Name, name) {
			return g.ID, nil
		}
	}
	return "", fmt.Errorf("no group named %q", name)
}

// openAddGroup creates a group placed after the existing ones.
func (m Model) openAddGroup() (Model, tea.Cmd) {
	form := modal.NewForm(
		modal.Field{Key: "name", Label: "Group name"},
		modal.Field{Key: "color", Label: "Color", Value: defaultGroupColor},
	)
	b := m.backend
	return m.open(modal.Payload{
		ID:             modalAddGroup,
		Kind:           modal.KindForm,
		Title:          "Add group",
		Size:           modal.SizeSmall,
		PrimaryLabel:   "Create",
		SecondaryLabel: m.cancelLabel(),
		Content:        form,
		OnConfirm: func(ctx context.Context) (tea.Msg, error) {
			groups, err := b.ListGroups(ctx)
			if err != nil {
				return nil, err
			}
			color := strings.TrimSpace(form.Value("color"))
			if color == "" {
				color = defaultGroupColor
			}
			g, err := b.CreateGroup(ctx, backend.GroupInput{
				Name:  strings.TrimSpace(form.Value("name")),
				Order: len(groups),
				Color: color,
			})
			if err != nil {
				return nil, err
			}
			return groupCreatedMsg{group: g}, nil
		},
	}), nil
}

func (m Model) finishSave(msg itemSavedMsg) (Model, tea.Cmd) {
	m.modals.Stack().Close(modalEditItem)
	return m, tea.Batch(
		m.toasts.Notify(toaster.Payload{Tone: toaster.ToneSuccess, Title: "Item updated", Message: msg.item.Name}),
		m.loadItems(),
	)
}
