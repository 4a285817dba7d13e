package main

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/realm-engine/internal/handlers"
	"github.com/jwebster45206/realm-engine/internal/turn"
	"github.com/jwebster45206/realm-engine/pkg/state"
	"github.com/jwebster45206/realm-engine/pkg/world"
)

const PlaceHolderText = "Apa yang Anda lakukan?"

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config       *ConsoleConfig
	client       *http.Client
	gameState    *state.GameState
	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	err          error
	loading      bool

	// Character creation state
	showNameModal bool
	nameInput     textinput.Model

	// Quit confirmation state
	showQuitModal bool

	// Transient notifications from the last turn
	toasts []state.Notification

	// Progress bar state
	progressTick int
}

type turnResultMsg struct {
	result *turn.Result
	err    error
}

type gameStateCreatedMsg struct {
	gameState *state.GameState
	err       error
}

type progressTickMsg struct{}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")). // gold
			Bold(true)

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")) // light grey

	playerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")). // teal
			Bold(true)

	combatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")). // red
			Bold(true)

	systemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")). // grey
			Italic(true)

	highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // amber, for *emphasis*

	strongStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51")). // cyan, for **names**
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("111"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	suggestionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("108"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true).
			Align(lipgloss.Center)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 500
	ta.SetWidth(50)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	ni := textinput.New()
	ni.Placeholder = "Orion"
	ni.CharLimit = 30
	ni.Width = 30
	ni.Focus()

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		config:        cfg,
		client:        client,
		textarea:      ta,
		nameInput:     ni,
		chatViewport:  chatVp,
		metaViewport:  metaVp,
		showNameModal: true,
	}
}

// renderHighlights applies the narrator's inline markup: **text** is a
// proper noun or item, *text* is emphasis.
func renderHighlights(s string) string {
	var out strings.Builder
	for {
		start := strings.Index(s, "**")
		if start < 0 {
			break
		}
		end := strings.Index(s[start+2:], "**")
		if end < 0 {
			break
		}
		out.WriteString(s[:start])
		out.WriteString(strongStyle.Render(s[start+2 : start+2+end]))
		s = s[start+2+end+2:]
	}
	s = out.String() + s

	out.Reset()
	for {
		start := strings.Index(s, "*")
		if start < 0 {
			break
		}
		end := strings.Index(s[start+1:], "*")
		if end < 0 {
			break
		}
		out.WriteString(s[:start])
		out.WriteString(highlightStyle.Render(s[start+1 : start+1+end]))
		s = s[start+1+end+1:]
	}
	return out.String() + s
}

func formatLogEntry(entry state.LogEntry, width int) string {
	switch entry.Kind {
	case state.LogPlayer:
		return playerStyle.Render("Anda: ") + wordwrap.String(entry.Content, width-6)
	case state.LogCombat:
		return combatStyle.Render(wordwrap.String(entry.Content, width))
	case state.LogSystem:
		return systemStyle.Render(wordwrap.String(entry.Content, width))
	default:
		return narratorStyle.Render(renderHighlights(wordwrap.String(entry.Content, width)))
	}
}

// writeChatContent rebuilds the adventure log for the current viewport width.
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6
	if chatWidth < 20 {
		chatWidth = 20
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("REALM ENGINE") + "\n\n")
	content.WriteString("Petualangan teks berbahasa Indonesia. Ketik aksi Anda di bawah.\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", chatWidth)) + "\n\n")

	if m.gameState != nil {
		for _, entry := range m.gameState.Log {
			content.WriteString(formatLogEntry(entry, chatWidth) + "\n\n")
		}

		if !m.loading && len(m.gameState.SuggestedActions) > 0 {
			content.WriteString(suggestionStyle.Render("Saran aksi:") + "\n")
			for i, action := range m.gameState.SuggestedActions {
				content.WriteString(suggestionStyle.Render(fmt.Sprintf("  %d. %s", i+1, action)) + "\n")
			}
			content.WriteString("\n")
		}
	}

	if m.err != nil {
		content.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n\n")
	}

	if m.loading {
		content.WriteString(m.renderProgressBar())
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func writeMetadata(gs *state.GameState, toasts []state.Notification) string {
	var content strings.Builder
	p := gs.Player

	content.WriteString(titleStyle.Render(p.Name) + "\n")
	content.WriteString(fmt.Sprintf("Level %d  (%d/%d XP)\n\n", p.Lvl, p.Exp, p.MaxExp))

	content.WriteString(fmt.Sprintf("HP   %d/%d\n", p.HP, p.MaxHP))
	content.WriteString(fmt.Sprintf("MP   %d/%d\n", p.MP, p.MaxMP))
	content.WriteString(fmt.Sprintf("ATK  %d   DEF  %d\n", p.Atk, p.Def))
	content.WriteString(fmt.Sprintf("Emas %d\n\n", p.Gold))

	loc := gs.World.Location
	tile := world.Tiles[loc.Tile]
	content.WriteString(titleStyle.Render("LOKASI") + "\n")
	if loc.Name != "" {
		content.WriteString(loc.Name + "\n")
	}
	content.WriteString(fmt.Sprintf("%s %s (%d, %d)\n", tile.Icon, tile.Name, loc.Coords.X, loc.Coords.Y))
	content.WriteString("Waktu: " + gs.World.TimeOfDay + "\n\n")

	content.WriteString(renderLocalMap(loc.Coords) + "\n")

	if gs.InCombat() {
		content.WriteString(combatStyle.Render("MUSUH") + "\n")
		for _, e := range gs.World.ActiveEnemies {
			content.WriteString(fmt.Sprintf("%s  %d/%d HP\n", e.Name, e.HP, e.MaxHP))
		}
		content.WriteString("\n")
	}

	content.WriteString(titleStyle.Render("INVENTARIS") + "\n")
	if len(p.Inventory) == 0 {
		content.WriteString("Kosong\n")
	}
	for _, item := range p.Inventory {
		line := "• " + item.Name
		if item.CountOr(1) > 1 {
			line += fmt.Sprintf(" x%d", item.CountOr(1))
		}
		if item.Durability != nil && item.MaxDurability != nil {
			line += fmt.Sprintf(" [%d/%d]", *item.Durability, *item.MaxDurability)
		}
		content.WriteString(line + "\n")
	}
	content.WriteString("\n")

	if len(gs.Quests) > 0 {
		content.WriteString(titleStyle.Render("QUEST") + "\n")
		for _, q := range gs.Quests {
			marker := "◦"
			switch q.Status {
			case state.QuestCompleted:
				marker = "✓"
			case state.QuestFailed:
				marker = "✗"
			}
			content.WriteString(fmt.Sprintf("%s %s\n", marker, q.Title))
		}
		content.WriteString("\n")
	}

	for _, n := range toasts {
		switch n.Kind {
		case state.NotifySuccess:
			content.WriteString(successStyle.Render("» "+n.Message) + "\n")
		case state.NotifyError:
			content.WriteString(errorStyle.Render("» "+n.Message) + "\n")
		default:
			content.WriteString(infoStyle.Render("» "+n.Message) + "\n")
		}
	}

	content.WriteString("\n")
	content.WriteString(promptStyle.Render("Ctrl+C: keluar  Enter: kirim") + "\n")

	return content.String()
}

// renderLocalMap draws the 3x3 terrain neighborhood around the player.
func renderLocalMap(c state.Coords) string {
	var content strings.Builder
	nb := world.Neighborhood(c.X, c.Y)
	rows := [][]world.TileType{
		{nb.NorthWest, nb.North, nb.NorthEast},
		{nb.West, world.TileAt(c.X, c.Y), nb.East},
		{nb.SouthWest, nb.South, nb.SouthEast},
	}
	for _, row := range rows {
		for _, t := range row {
			content.WriteString(world.Tiles[t].Icon + " ")
		}
		content.WriteString("\n")
	}
	return content.String()
}

func (m ConsoleUI) Init() tea.Cmd {
	if m.showNameModal {
		return textinput.Blink
	}
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showNameModal {
		return m.updateNameModal(msg)
	}

	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	// The quest offer modal takes over input while an offer is pending.
	if m.gameState != nil && m.gameState.QuestOffer != nil && !m.loading {
		return m.updateOfferModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.writeChatContent()
		if m.gameState != nil {
			m.metaViewport.SetContent(writeMetadata(m.gameState, m.toasts))
		}
		m.ready = true

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}

			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}

			// A bare number picks the matching suggested action.
			if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(m.gameState.SuggestedActions) {
				input = m.gameState.SuggestedActions[n-1]
			}

			m.textarea.Reset()
			m.loading = true
			m.err = nil
			m.toasts = nil
			m.progressTick = 0

			m.gameState.Log = append(m.gameState.Log, state.PlayerEntry(input))
			m.writeChatContent()

			return m, tea.Batch(m.submitCommand(input, ""), progressTick())
		}

	case turnResultMsg:
		return m.applyTurnResult(msg)

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeChatContent()
			return m, progressTick()
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m *ConsoleUI) resize() {
	chatWidth := int(float64(m.width)*0.70) - 4
	metaWidth := m.width - chatWidth - 6

	m.chatViewport.Width = chatWidth - 2
	m.chatViewport.Height = m.height - 7
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(chatWidth - 4)
}

func (m ConsoleUI) applyTurnResult(msg turnResultMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		m.err = msg.err
	} else {
		m.gameState = msg.result.GameState
		m.toasts = msg.result.Notifications
	}
	m.writeChatContent()
	if m.gameState != nil {
		m.metaViewport.SetContent(writeMetadata(m.gameState, m.toasts))
	}
	m.chatViewport.GotoBottom()
	return m, nil
}

func (m ConsoleUI) submitCommand(command string, action string) tea.Cmd {
	return func() tea.Msg {
		result, err := submitTurn(m.client, m.config.APIBaseURL, m.gameState.ID, command, action)
		return turnResultMsg{result, err}
	}
}

func (m ConsoleUI) updateNameModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case gameStateCreatedMsg:
		if msg.err != nil {
			m.loading = false
			m.err = msg.err
			return m, nil
		}
		m.gameState = msg.gameState
		m.showNameModal = false
		m.resize()
		m.ready = true
		m.gameState.Log = append(m.gameState.Log, state.SystemEntry("Menghubungi Sang Narator..."))
		m.writeChatContent()
		m.metaViewport.SetContent(writeMetadata(m.gameState, nil))
		m.textarea.Focus()
		// Kick off the opening narration.
		return m, tea.Batch(
			m.submitCommand(turn.IntroCommand(m.gameState.Player.Name), ""),
			progressTick(),
			textarea.Blink,
		)

	case turnResultMsg:
		// The opening narration landed before the modal closed.
		return m.applyTurnResult(msg)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}
			name := strings.TrimSpace(m.nameInput.Value())
			if name == "" {
				name = "Orion"
			}
			m.loading = true
			m.err = nil
			return m, m.createSession(name)
		}
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m ConsoleUI) createSession(name string) tea.Cmd {
	return func() tea.Msg {
		gs, err := createGameState(m.client, m.config.APIBaseURL, name)
		return gameStateCreatedMsg{gs, err}
	}
}

func (m ConsoleUI) updateOfferModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case turnResultMsg:
		return m.applyTurnResult(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.showQuitModal = true
			return m, nil
		case "y", "Y", "t", "T":
			m.loading = true
			m.progressTick = 0
			return m, tea.Batch(m.submitCommand("", handlers.ActionAcceptOffer), progressTick())
		case "n", "N":
			m.loading = true
			m.progressTick = 0
			return m, tea.Batch(m.submitCommand("", handlers.ActionRejectOffer), progressTick())
		}
	}

	return m, nil
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderNameModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("REALM ENGINE"))
	content.WriteString("\n\n")
	if m.loading {
		content.WriteString("Menyiapkan petualangan Anda...")
	} else {
		content.WriteString("Siapa nama petualang Anda?")
		content.WriteString("\n\n")
		content.WriteString(m.nameInput.View())
		if m.err != nil {
			content.WriteString("\n\n")
			content.WriteString(errorStyle.Render(m.err.Error()))
		}
		content.WriteString("\n\n")
		content.WriteString(promptStyle.Render("Enter untuk mulai, Ctrl+C untuk keluar"))
	}

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderOfferModal() string {
	offer := m.gameState.QuestOffer

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("TAWARAN QUEST"))
	content.WriteString("\n\n")
	content.WriteString(strongStyle.Render(offer.Title))
	content.WriteString("\n\n")
	content.WriteString(wordwrap.String(offer.Description, 46))
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("T/Y: terima   N: tolak"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Keluar?"))
	content.WriteString("\n\n")
	content.WriteString("Yakin ingin mengakhiri petualangan?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Y: keluar   N: lanjutkan"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showNameModal {
		return m.renderNameModal()
	}

	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	if m.gameState != nil && m.gameState.QuestOffer != nil && !m.loading {
		return m.renderOfferModal()
	}

	chatWidth := int(float64(m.width)*0.70) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", chatWidth-4)),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}

// renderProgressBar creates an animated progress bar for loading states.
func (m ConsoleUI) renderProgressBar() string {
	usable := m.chatViewport.Width - 6
	if usable <= 0 {
		usable = 30
	}
	if usable > 80 {
		usable = 80
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		if i < filled {
			bar.WriteString("█")
		} else if i == filled && frame%4 < 2 {
			bar.WriteString("▓")
		} else {
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
