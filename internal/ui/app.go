// Package ui provides the interactive chat console for the todobot app.
// Commands are typed as chat lines and routed through the command core using
// the Bubble Tea architecture.
package ui

import (
	"fmt"
	"strings"
	"time"

	"todobot/internal/command"
	"todobot/internal/config"
	"todobot/internal/notify"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// entryRole distinguishes transcript lines for styling.
type entryRole int

const (
	roleUser entryRole = iota
	roleBot
	roleStatus
)

type entry struct {
	role entryRole
	text string
}

// tickMsg drives the rollover clock, one beat per minute.
type tickMsg time.Time

// rolloverDoneMsg is sent when a scheduled rollover completes.
type rolloverDoneMsg struct {
	reports []command.RolloverReport
	err     error
}

// App is the chat console model.
type App struct {
	core     *command.Core
	cfg      *config.Config
	styles   *Styles
	notifier notify.Notifier

	input    textinput.Model
	viewport viewport.Model

	transcript []entry
	width      int
	height     int
	ready      bool
	quitting   bool

	// lastRoll guards against re-running the rollover within the same day.
	lastRoll string
	now      func() time.Time
}

// NewApp creates the chat console. The transcript opens with the welcome
// reply so a first run explains itself.
func NewApp(core *command.Core, cfg *config.Config, styles *Styles, notifier notify.Notifier) *App {
	input := textinput.New()
	input.Placeholder = "add buy milk tomorrow"
	input.Prompt = "> "
	input.Focus()
	input.CharLimit = 512

	app := &App{
		core:     core,
		cfg:      cfg,
		styles:   styles,
		notifier: notifier,
		input:    input,
		now:      time.Now,
	}
	result := core.Handle("start", nil, cfg.User, app.now())
	app.pushBot(result)
	return app
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			a.quitting = true
			return a, tea.Quit
		case "enter":
			a.submit()
			return a, nil
		}

	case tickMsg:
		if cmd := a.maybeRollover(time.Time(msg)); cmd != nil {
			return a, tea.Batch(cmd, tickCmd())
		}
		return a, tickCmd()

	case rolloverDoneMsg:
		a.handleRolloverDone(msg)
		return a, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	cmds = append(cmds, cmd)
	a.viewport, cmd = a.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

// submit runs the typed line through the command core and appends both
// sides of the exchange to the transcript.
func (a *App) submit() {
	line := strings.TrimSpace(a.input.Value())
	a.input.SetValue("")
	if line == "" {
		return
	}

	a.transcript = append(a.transcript, entry{role: roleUser, text: line})

	fields := strings.Fields(strings.TrimPrefix(line, "/"))
	if len(fields) == 0 {
		// A bare "/" carries no command name.
		a.pushBot(command.Result{Text: "Type a command, e.g. /add buy milk. See /help."})
		a.refreshViewport()
		return
	}
	result := a.core.Handle(fields[0], fields[1:], a.cfg.User, a.now())
	a.pushBot(result)
	a.refreshViewport()
}

// maybeRollover returns a command running the daily rollover once the
// configured time has passed, at most once per day.
func (a *App) maybeRollover(now time.Time) tea.Cmd {
	at, err := time.Parse("15:04", a.cfg.Rollover.At)
	if err != nil {
		return nil
	}
	today := now.Format("2006-01-02")
	if a.lastRoll == today {
		return nil
	}
	due := time.Date(now.Year(), now.Month(), now.Day(), at.Hour(), at.Minute(), 0, 0, now.Location())
	if now.Before(due) {
		return nil
	}

	a.lastRoll = today
	core := a.core
	return func() tea.Msg {
		reports, err := core.RunDailyRollover(now)
		return rolloverDoneMsg{reports: reports, err: err}
	}
}

func (a *App) handleRolloverDone(msg rolloverDoneMsg) {
	if msg.err != nil {
		a.transcript = append(a.transcript, entry{
			role: roleStatus,
			text: a.styles.ErrorStyle.Render(fmt.Sprintf("Rollover failed: %v", msg.err)),
		})
		a.refreshViewport()
		return
	}

	moved := 0
	for _, report := range msg.reports {
		if report.Moved > 0 {
			moved += report.Moved
		}
	}
	if moved == 0 {
		return
	}

	note := fmt.Sprintf("Moved %d task(s) to tomorrow.", moved)
	a.transcript = append(a.transcript, entry{role: roleStatus, text: note})
	a.refreshViewport()

	if a.cfg.Rollover.Notify && a.notifier.IsSupported() {
		_ = a.notifier.Send("todobot", note)
	}
}

func (a *App) pushBot(result command.Result) {
	text := result.Text
	if result.Markup == command.MarkupMarkdown {
		text = renderMarkdown(text, a.styles)
	}
	a.transcript = append(a.transcript, entry{role: roleBot, text: text})
}

// renderMarkdown translates the chat-flavored *bold* markers into terminal
// bold runs. Anything else passes through verbatim.
func renderMarkdown(text string, styles *Styles) string {
	bold := lipgloss.NewStyle().Bold(true)
	var b strings.Builder
	for {
		start := strings.Index(text, "*")
		if start < 0 {
			break
		}
		end := strings.Index(text[start+1:], "*")
		if end < 0 {
			break
		}
		b.WriteString(text[:start])
		b.WriteString(bold.Render(text[start+1 : start+1+end]))
		text = text[start+end+2:]
	}
	b.WriteString(text)
	return b.String()
}

func (a *App) layout() {
	inputHeight := 3
	titleHeight := 2
	vpHeight := a.height - inputHeight - titleHeight
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !a.ready {
		a.viewport = viewport.New(a.width, vpHeight)
		a.ready = true
	} else {
		a.viewport.Width = a.width
		a.viewport.Height = vpHeight
	}
	a.input.Width = a.width - 6
	a.refreshViewport()
}

func (a *App) refreshViewport() {
	if !a.ready {
		return
	}

	var lines []string
	for _, e := range a.transcript {
		switch e.role {
		case roleUser:
			lines = append(lines, a.styles.UserStyle.Render("you: "+e.text))
		case roleBot:
			lines = append(lines, a.styles.BotStyle.Render(e.text))
		case roleStatus:
			lines = append(lines, a.styles.StatusStyle.Render(e.text))
		}
		lines = append(lines, "")
	}

	wrap := lipgloss.NewStyle().Width(a.viewport.Width)
	a.viewport.SetContent(wrap.Render(strings.Join(lines, "\n")))
	a.viewport.GotoBottom()
}

// View implements tea.Model.
func (a *App) View() string {
	if a.quitting {
		return ""
	}
	if !a.ready {
		return "Loading..."
	}

	title := a.styles.TitleStyle.Render("todobot") +
		a.styles.StatusStyle.Render("  "+a.now().Format("Mon Jan 2"))
	inputBox := a.styles.InputStyle.Width(a.width - 2).Render(a.input.View())

	return title + "\n\n" + a.viewport.View() + "\n" + inputBox
}
