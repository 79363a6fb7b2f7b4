package ui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"pixview/internal/domain"
	"pixview/internal/eventbus"
	"pixview/internal/render"
	"pixview/internal/ui/input"
	inputtypes "pixview/internal/ui/input/types"
	"pixview/internal/ui/views"
	"pixview/internal/viewport"
)

const statusTimeout = 3 * time.Second

// Model represents the UI state. All viewer state lives in the viewport
// State; the model only translates terminal events into calls on it.
type Model struct {
	bus eventbus.EventBus
	log *zap.Logger

	viewer  *viewport.State
	surface *render.Surface

	width  int
	height int
	help   help.Model

	initialPath   string
	hasPrev       bool
	hasNext       bool
	statusMessage string
	statusIsError bool
	inPagerMode   bool   // tracks if we're currently in pager mode
	backgroundSeq uint64 // background toggles so far

	renderer     *views.Renderer
	inputHandler *input.Handler
	pager        *PagerOps

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model. initialPath, when set, is opened on start.
func NewModel(bus eventbus.EventBus, log *zap.Logger, viewer *viewport.State, surface *render.Surface, initialPath string) *Model {
	if log == nil {
		log = zap.NewNop()
	}
	return &Model{
		bus:          bus,
		log:          log,
		viewer:       viewer,
		surface:      surface,
		help:         help.New(),
		initialPath:  initialPath,
		renderer:     views.NewRenderer(),
		inputHandler: input.New(input.DefaultKeyMap()),
		pager:        NewPagerOps(nil),
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager = NewPagerOps(p)
}

// BackgroundSeq returns how many times the background was toggled. Only
// read it once the program has stopped.
func (m *Model) BackgroundSeq() uint64 {
	return m.backgroundSeq
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	if m.initialPath == "" {
		return tea.SetWindowTitle("pixview")
	}
	path := m.initialPath
	return func() tea.Msg { return openMsg{path: path} }
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.surface.SetSize(msg.Width, max(msg.Height-views.HeaderHeight-views.FooterHeight, 0))
		m.viewer.OnViewportResized(m.surface.ViewportSize())
		return m, nil

	case tea.KeyMsg:
		if m.inPagerMode {
			return m, nil
		}
		actions, cmd := m.inputHandler.HandleKey(msg)
		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		if m.inPagerMode {
			return m, nil
		}
		m.handleMouse(msg)
		return m, nil
	}

	return m.handleNonKeyboardMsg(msg)
}

// handleMouse maps wheel and left-button drags to the viewport. Each cell
// row is two surface pixels.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	pos := domain.Point{X: msg.X, Y: (msg.Y - views.HeaderHeight) * 2}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.viewer.OnWheel(1, 1)
	case msg.Button == tea.MouseButtonWheelDown:
		m.viewer.OnWheel(-1, 1)
	case msg.Action == tea.MouseActionPress:
		m.viewer.OnDragBegin(pos, msg.Button == tea.MouseButtonLeft)
	case msg.Action == tea.MouseActionMotion:
		m.viewer.OnDragMove(pos, msg.Button == tea.MouseButtonLeft)
	case msg.Action == tea.MouseActionRelease:
		m.viewer.OnDragEnd()
	}
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case openMsg:
		return m, m.open(msg.path)

	case EventMsg:
		if e, ok := msg.Event.(eventbus.ErrorEvent); ok {
			return m, m.setStatus(e.Message, true)
		}
		return m, nil

	case pagerMsg:
		if msg.err != nil {
			m.log.Warn("Pager failed", zap.String("kind", msg.kind), zap.Error(msg.err))
			return m, m.setStatus(fmt.Sprintf("Cannot show %s: %v", msg.kind, msg.err), true)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		m.statusMessage = ""
		m.statusIsError = false
		return m, nil
	}

	if cmd := m.inputHandler.Update(msg); cmd != nil {
		return m, cmd
	}
	return m, nil
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.QuitAction:
		return tea.Quit

	case inputtypes.NavigateAction:
		return m.navigate(a.Direction)

	case inputtypes.ZoomToFitAction:
		m.viewer.ZoomToFit()

	case inputtypes.ZoomToActualAction:
		if err := m.viewer.ZoomToActual(); err != nil {
			return m.setStatus(describe(err), true)
		}

	case inputtypes.ToggleBackgroundAction:
		bg := m.surface.ToggleBackground()
		m.viewer.Redraw()
		m.backgroundSeq++
		m.publish(eventbus.BackgroundToggledEvent{Background: bg, Seq: m.backgroundSeq})
		return m.setStatus("Background: "+bg.String(), false)

	case inputtypes.SubmitTextAction:
		if a.Mode == inputtypes.ModeOpen {
			if path := strings.TrimSpace(a.Text); path != "" {
				return m.open(path)
			}
		}

	case inputtypes.ShowInfoAction:
		if m.viewer.Image() == nil {
			return m.setStatus(describe(domain.ErrNoImage), true)
		}
		return m.showPager("image info", m.buildImageInfo())

	case inputtypes.ShowHelpAction:
		return m.showPager("help", RenderHelpContent(m.inputHandler.Keys()))
	}
	return nil
}

// open loads path; on failure the current image stays
func (m *Model) open(path string) tea.Cmd {
	if err := m.viewer.LoadImage(path); err != nil {
		m.log.Warn("Load failed", zap.String("path", path), zap.Error(err))
		m.publish(eventbus.ImageLoadFailedEvent{Path: path, Err: err})
		return m.setStatus(describe(err), true)
	}
	m.imageChanged()
	return tea.SetWindowTitle(filepath.Base(path))
}

func (m *Model) navigate(dir domain.Direction) tea.Cmd {
	from := m.viewer.Path()
	to, ok, err := m.viewer.Navigate(dir)
	if err != nil {
		m.log.Warn("Navigation failed", zap.String("from", from), zap.String("direction", string(dir)), zap.Error(err))
		if errors.Is(err, domain.ErrNotFound) {
			m.hasPrev, m.hasNext = false, false
		}
		return m.setStatus(describe(err), true)
	}
	if !ok {
		return m.setStatus(fmt.Sprintf("No %s image", dir), false)
	}

	m.publish(eventbus.NavigatedEvent{From: from, To: to, Direction: dir})
	m.imageChanged()
	return tea.SetWindowTitle(filepath.Base(to))
}

// imageChanged announces the new image and refreshes the prev/next state
func (m *Model) imageChanged() {
	img := m.viewer.Image()
	m.publish(eventbus.ImageLoadedEvent{Path: img.Path, Format: img.Format, Width: img.Width, Height: img.Height})
	m.statusMessage = ""
	m.statusIsError = false
	m.updateAdjacent()
}

func (m *Model) updateAdjacent() {
	prev, next, err := m.viewer.Adjacent()
	if err != nil {
		m.log.Debug("Adjacent lookup failed", zap.Error(err))
		prev, next = false, false
	}
	m.hasPrev, m.hasNext = prev, next
}

func (m *Model) setStatus(msg string, isError bool) tea.Cmd {
	m.statusMessage = msg
	m.statusIsError = isError
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m *Model) publish(e eventbus.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(e)
	}
}

// showPager returns a command that shows content in the ov pager
func (m *Model) showPager(kind, content string) tea.Cmd {
	return func() tea.Msg {
		if m.program == nil {
			return pagerMsg{kind: kind, err: errNoProgram}
		}

		m.program.Send(pauseRenderingMsg{})
		err := m.pager.Show(content)
		m.program.Send(resumeRenderingMsg{})

		return pagerMsg{kind: kind, err: err}
	}
}

func (m *Model) buildImageInfo() string {
	img := m.viewer.Image()
	display := m.viewer.DisplaySize()
	offset := m.viewer.ScrollOffset()
	limit := m.viewer.ScrollMax()
	vp := m.viewer.Viewport()

	var b strings.Builder
	fmt.Fprintf(&b, "Path:        %s\n", img.Path)
	fmt.Fprintf(&b, "Format:      %s\n", img.Format)
	fmt.Fprintf(&b, "Size:        %d x %d px\n", img.Width, img.Height)
	fmt.Fprintf(&b, "Viewport:    %d x %d px\n", vp.Width, vp.Height)
	fmt.Fprintf(&b, "Displayed:   %.1f x %.1f px\n", display.Width, display.Height)
	fmt.Fprintf(&b, "Zoom:        %.0f%% of fit\n", m.viewer.ZoomFactor()*100)
	fmt.Fprintf(&b, "Scroll:      %d,%d of %d,%d\n", offset.X, offset.Y, limit.X, limit.Y)
	fmt.Fprintf(&b, "Background:  %s (%s)\n", m.surface.Background(), m.surface.BackgroundColor())
	return b.String()
}

// describe turns core errors into status line text
func describe(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoImage):
		return "No image loaded"
	case errors.Is(err, domain.ErrNotFound):
		return "Not found: " + err.Error()
	case errors.Is(err, domain.ErrDecode):
		return "Cannot open: " + err.Error()
	default:
		return err.Error()
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	state := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Path:          m.viewer.Path(),
		Zoom:          m.viewer.ZoomFactor(),
		Background:    m.surface.Background().String(),
		Body:          m.surface.View(),
		StatusMessage: m.statusMessage,
		StatusIsError: m.statusIsError,
		HasPrev:       m.hasPrev,
		HasNext:       m.hasNext,
		HelpModel:     m.help,
		Keys:          m.inputHandler.Keys(),
	}
	if img := m.viewer.Image(); img != nil {
		state.ImageWidth, state.ImageHeight = img.Width, img.Height
	}
	if ti := m.inputHandler.TextInput(); ti != nil {
		state.Prompt = m.inputHandler.Prompt()
		state.TextInput = ti.View()
	}

	return m.renderer.Render(state)
}
