package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dodey917/Iknowall1bot/internal/answer"
	"github.com/dodey917/Iknowall1bot/internal/browser"
	"github.com/dodey917/Iknowall1bot/internal/config"
	"github.com/dodey917/Iknowall1bot/internal/kb"
)

type mode int

const (
	modeHome mode = iota
	modeChat
	modeHelp
)

// exchange is one question/reply pair in the transcript.
type exchange struct {
	question string
	reply    string
	warn     error
}

type App struct {
	cfg       *config.Config
	responder *answer.Responder
	base      *kb.Base

	mode   mode
	width  int
	height int

	// Sub-components
	input   textinput.Model
	spinner spinner.Model

	// State
	exchanges     []exchange
	scroll        int
	thinking      bool
	refreshing    bool
	err           error
	currentDate   string
	updateVersion string
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Cfg           *config.Config
	Responder     *answer.Responder
	Base          *kb.Base
	UpdateVersion string
}

func NewApp(opts RunOpts) *App {
	ti := textinput.New()
	ti.Placeholder = "Ask a question..."
	ti.Prompt = inputPromptStyle.Render("? ")
	ti.CharLimit = 300

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	return &App{
		cfg:           opts.Cfg,
		responder:     opts.Responder,
		base:          opts.Base,
		input:         ti,
		spinner:       sp,
		currentDate:   time.Now().Format("Jan 2"),
		mode:          modeHome,
		updateVersion: opts.UpdateVersion,
	}
}

func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

func (a *App) askCmd(question string) tea.Cmd {
	r := a.responder
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		reply, warn := r.Answer(ctx, question)
		return answerMsg{question: question, reply: reply, warn: warn}
	}
}

func (a *App) refreshCmd() tea.Cmd {
	base := a.base
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		err := base.Refresh(ctx, true)
		return refreshDoneMsg{count: base.Len(), err: err}
	}
}

func (a *App) openSourceCmd() tea.Cmd {
	src := a.cfg.Source
	return func() tea.Msg {
		if src.Type == "file" {
			return nil
		}
		browser.Open(src.URL)
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Clear sticky error on any keypress
		a.err = nil
		return a.handleKey(msg)

	case answerMsg:
		a.thinking = false
		a.exchanges = append(a.exchanges, exchange(msg))
		a.scroll = 0 // snap to the latest exchange
		return a, nil

	case refreshDoneMsg:
		a.refreshing = false
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.thinking || a.refreshing {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.mode {
	case modeHome:
		return a.handleHomeKey(msg)
	case modeHelp:
		switch msg.String() {
		case "f1", "esc", "q":
			a.mode = modeChat
		}
		return a, nil
	}

	// Chat mode. Printable keys belong to the input, so commands live on
	// control chords and esc.
	switch msg.String() {
	case "esc":
		a.mode = modeHome
		return a, nil
	case "enter":
		question := strings.TrimSpace(a.input.Value())
		if question == "" || a.thinking {
			return a, nil
		}
		a.input.SetValue("")
		a.thinking = true
		return a, tea.Batch(a.askCmd(question), a.spinner.Tick)
	case "ctrl+r":
		if !a.refreshing {
			a.refreshing = true
			return a, tea.Batch(a.refreshCmd(), a.spinner.Tick)
		}
		return a, nil
	case "ctrl+o":
		return a, a.openSourceCmd()
	case "ctrl+l":
		a.exchanges = nil
		a.scroll = 0
		return a, nil
	case "f1":
		a.mode = modeHelp
		return a, nil
	case "pgup":
		a.scroll++
		return a, nil
	case "pgdown":
		if a.scroll > 0 {
			a.scroll--
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "c":
		a.mode = modeChat
		a.input.Focus()
		return a, textinput.Blink
	case "r":
		if !a.refreshing {
			a.refreshing = true
			return a, tea.Batch(a.refreshCmd(), a.spinner.Tick)
		}
		return a, nil
	case "q":
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  iknowall")
	}

	if a.mode == modeHome {
		return renderHomeScreen(a.width, a.height, a.base.Len(), a.updateVersion)
	}

	if a.mode == modeHelp {
		return a.renderHelp()
	}

	// Header
	headerLeft := headerStyle.Render("iknowall")
	headerRight := headerDateStyle.Render(a.currentDate)
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	// Transcript
	transcriptHeight := a.height - 4 // header, input, status, spacing
	if transcriptHeight < 3 {
		transcriptHeight = 3
	}
	transcript := renderTranscript(a.exchanges, a.cfg.GreetingText(), a.width, transcriptHeight, a.scroll)

	// Input line
	inputLine := a.input.View()
	if a.thinking {
		inputLine = a.spinner.View() + " thinking..."
	}

	// Status bar
	status := renderStatusBar(a.base.Len(), a.base.LastRefresh(), a.width, a.refreshing)
	if a.refreshing {
		status = a.spinner.View() + " " + status
	}
	if a.err != nil {
		status = lipgloss.NewStyle().Foreground(colorAccent).Render(a.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, transcript, inputLine, status)
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("iknowall")
	dim := helpDimStyle

	help := title + dim.Render(" — Keyboard Shortcuts") + "\n\n" +
		dim.Render("Chat") + "\n" +
		"  enter         Ask the typed question\n" +
		"  pgup/pgdown   Scroll the transcript\n" +
		"  ctrl+l        Clear the transcript\n\n" +
		dim.Render("Knowledge base") + "\n" +
		"  ctrl+r        Force refresh from the source document\n" +
		"  ctrl+o        Open the source document in a browser\n\n" +
		dim.Render("General") + "\n" +
		"  esc           Back to the home screen\n" +
		"  f1            Toggle this help\n" +
		"  ctrl+c        Quit"

	card := helpCardStyle.Render(help)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
