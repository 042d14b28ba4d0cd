// Package session drives the role menus as an explicit stack of screens.
// Rendering and input sit behind the Screen interface, so transitions can
// be exercised without a terminal.
package session

import (
	"context"

	"go.uber.org/zap"
)

// Outcome tells the menu loop what to do after an action returns.
type Outcome int

const (
	// Stay re-renders the current menu.
	Stay Outcome = iota
	// Back pops one menu off the stack.
	Back
	// Logout ends the session loop.
	Logout
)

// Action runs one menu operation.
type Action func(ctx context.Context) (Outcome, error)

// Item is one selectable menu line. Either Submenu or Action is set.
type Item struct {
	Label   string
	Submenu *Menu
	Action  Action
}

// Menu is a titled list of items.
type Menu struct {
	Title string
	Items []Item
}

// Screen is the terminal surface the manager drives.
type Screen interface {
	// Choose renders a titled option list and returns the selected index.
	Choose(title string, options []string) (int, error)
	// ShowError reports a failed action to the user.
	ShowError(err error)
}

// Manager walks a menu tree until an action logs out.
type Manager struct {
	screen Screen
	logger *zap.Logger
}

// NewManager constructs a session manager.
func NewManager(screen Screen, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{screen: screen, logger: logger}
}

// Run loops over the menu stack starting at root. A failed action is shown
// and the current menu re-rendered; only a Screen error (closed input) or a
// Logout outcome ends the loop.
func (m *Manager) Run(ctx context.Context, root *Menu) error {
	stack := []*Menu{root}
	for {
		menu := stack[len(stack)-1]
		options := make([]string, len(menu.Items))
		for i, item := range menu.Items {
			options[i] = item.Label
		}

		idx, err := m.screen.Choose(menu.Title, options)
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(menu.Items) {
			continue
		}

		item := menu.Items[idx]
		if item.Submenu != nil {
			stack = append(stack, item.Submenu)
			continue
		}
		if item.Action == nil {
			continue
		}

		outcome, err := item.Action(ctx)
		if err != nil {
			m.logger.Debug("menu action failed", zap.String("item", item.Label), zap.Error(err))
			m.screen.ShowError(err)
		}
		switch outcome {
		case Back:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		case Logout:
			return nil
		}
	}
}

// BackItem returns a menu line that pops to the previous menu.
func BackItem() Item {
	return Item{Label: "Back", Action: func(context.Context) (Outcome, error) {
		return Back, nil
	}}
}

// LogoutItem returns a menu line that ends the session.
func LogoutItem() Item {
	return Item{Label: "Logout", Action: func(context.Context) (Outcome, error) {
		return Logout, nil
	}}
}
