package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/shaphero/digest-cli/internal/core/domain"
)

// view identifies which screen is active.
type view int

const (
	viewList view = iota
	viewReader
)

// digestsLoadedMsg carries the library index into the list view.
type digestsLoadedMsg struct {
	docs []domain.DigestDocument
}

// digestRenderedMsg carries a styled digest into the reader view.
type digestRenderedMsg struct {
	title string
	body  string
}

// errMsg carries a failure into the status line.
type errMsg struct {
	err error
}

// item adapts a digest to the bubbles list.
type item struct {
	doc domain.DigestDocument
}

func (i item) Title() string { return i.doc.Title }

func (i item) Description() string {
	return fmt.Sprintf("%d min · %d sources · %d findings",
		i.doc.ReadingTimeMinutes, i.doc.SourceCount, len(i.doc.Findings))
}

func (i item) FilterValue() string { return i.doc.Title + " " + i.doc.Topic }

// App is the digest library browser following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *Styles

	list     list.Model
	viewport viewport.Model

	current view
	reading string
	err     error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Digest Library"
	l.SetShowStatusBar(false)

	return &App{
		ports:   ports,
		ctx:     context.Background(),
		styles:  DefaultStyles(),
		list:    l,
		current: viewList,
	}, nil
}

// WithContext sets the context used for service calls.
func (a *App) WithContext(ctx context.Context) *App {
	if ctx != nil {
		a.ctx = ctx
	}
	return a
}

// Init loads the digest index.
func (a *App) Init() tea.Cmd {
	return a.loadDigests
}

// loadDigests fetches the library index.
func (a *App) loadDigests() tea.Msg {
	docs, err := a.ports.Library.List(a.ctx)
	if err != nil {
		return errMsg{err}
	}
	return digestsLoadedMsg{docs}
}

// openDigest renders the selected digest for the reader view.
func (a *App) openDigest(doc domain.DigestDocument) tea.Cmd {
	return func() tea.Msg {
		md, err := a.ports.Library.Render(a.ctx, doc.ID)
		if err != nil {
			return errMsg{err}
		}

		width := a.width - 6
		if width < 20 {
			width = 80
		}
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return errMsg{err}
		}
		styled, err := renderer.Render(md)
		if err != nil {
			return errMsg{err}
		}
		return digestRenderedMsg{title: doc.Title, body: styled}
	}
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.list.SetSize(msg.Width, msg.Height-2)
		a.viewport = viewport.New(msg.Width-4, msg.Height-4)
		a.ready = true
		return a, nil

	case digestsLoadedMsg:
		items := make([]list.Item, len(msg.docs))
		for i := range msg.docs {
			items[i] = item{doc: msg.docs[i]}
		}
		a.err = nil
		return a, a.list.SetItems(items)

	case digestRenderedMsg:
		a.current = viewReader
		a.reading = msg.title
		a.viewport.SetContent(msg.body)
		a.viewport.GotoTop()
		return a, nil

	case errMsg:
		a.err = msg.err
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a.updateActive(msg)
}

// handleKey routes key presses by active view.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.current {
	case viewReader:
		switch msg.String() {
		case "q", "esc":
			a.current = viewList
			return a, nil
		}

	case viewList:
		// Quit only when the list filter is not capturing input.
		if a.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "q", "ctrl+c":
				return a, tea.Quit
			case "enter":
				if sel, ok := a.list.SelectedItem().(item); ok {
					return a, a.openDigest(sel.doc)
				}
				return a, nil
			case "r":
				return a, a.loadDigests
			}
		}
	}

	return a.updateActive(msg)
}

// updateActive forwards a message to the active component.
func (a *App) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.current {
	case viewReader:
		a.viewport, cmd = a.viewport.Update(msg)
	case viewList:
		a.list, cmd = a.list.Update(msg)
	}
	return a, cmd
}

// View renders the active screen.
func (a *App) View() string {
	if !a.ready {
		return "Loading digest library..."
	}

	if a.err != nil {
		return a.styles.Error.Render(fmt.Sprintf("Error: %v", a.err)) +
			a.styles.Muted.Render("\n\nPress q to quit.")
	}

	if a.current == viewReader {
		header := a.styles.Title.Render(a.reading) +
			a.styles.Muted.Render("  (esc/q to go back)")
		return header + "\n" + a.styles.Viewport.Render(a.viewport.View())
	}

	return a.list.View() + "\n" +
		a.styles.Muted.Render("  enter: read · r: refresh · q: quit")
}
