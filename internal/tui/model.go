package tui

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/karim3554/akram-library/internal/catalogue"
	"github.com/karim3554/akram-library/internal/legal"
	"github.com/karim3554/akram-library/internal/librarian"
	"github.com/karim3554/akram-library/internal/openlibrary"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Library   Gateway
	Librarian librarian.Client
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	searchInput := textinput.New()
	searchInput.Placeholder = searchPlaceholder
	searchInput.CharLimit = 120
	searchInput.Width = 60

	chatInput := textinput.New()
	chatInput.Placeholder = chatPlaceholder
	chatInput.CharLimit = 280
	chatInput.Width = 60

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true

	return &model{
		config:        config,
		stage:         stageBrowse,
		controller:    catalogue.New(),
		session:       librarian.NewSession(),
		searchInput:   searchInput,
		chatInput:     chatInput,
		spinner:       spin,
		viewport:      vp,
		viewportDirty: true,
		infoMessage:   "Press / to search, ? for keys.",
	}
}

// detailState is the record overlay. The list record paints immediately; the
// work fetch enriches it with description and subjects when it lands.
type detailState struct {
	key     string
	summary openlibrary.Book
	book    *openlibrary.Book
	loading bool

	insightsLoading bool
	aiSummary       string
	recommendations string
}

// record folds the enriched work fields into the list record.
func (d *detailState) record() openlibrary.Book {
	rec := d.summary
	if d.book == nil {
		return rec
	}
	if !d.book.Description.Empty() {
		rec.Description = d.book.Description
	}
	if len(d.book.Subjects) > 0 {
		rec.Subjects = d.book.Subjects
	}
	if rec.Title == "" {
		rec.Title = d.book.Title
	}
	return rec
}

type authorState struct {
	key     string
	author  *openlibrary.Author
	loading bool
}

type model struct {
	config Config
	stage  stage

	controller *catalogue.Controller
	session    *librarian.Session

	searchInput textinput.Model
	chatInput   textinput.Model
	spinner     spinner.Model
	viewport    viewport.Model

	cursor int

	detail *detailState
	author *authorState

	legalIndex int

	infoMessage   string
	helpVisible   bool
	viewportDirty bool
}

func (m *model) Init() tea.Cmd {
	req := m.controller.Submit("", catalogue.SortRelevance)
	return tea.Batch(textinput.Blink, m.spinner.Tick, searchCmd(m.config.Library, req))
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.anythingLoading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEsc:
			return m.handleEscape()
		}
		return m.handleKey(msg)
	case tea.MouseMsg:
		if m.stage != stageSearch {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.WindowSizeMsg:
		width := msg.Width - viewportHorizontalPadding
		if width < minViewportWidth {
			width = minViewportWidth
		}
		m.viewport.Width = width
		height := msg.Height - 8
		if height < 5 {
			height = 5
		}
		m.viewport.Height = height
		m.markViewportDirty()
		return m, nil
	case searchResultMsg:
		return m.applySearchResult(msg)
	case detailResultMsg:
		if m.detail == nil || m.detail.key != msg.key {
			return m, nil
		}
		m.detail.loading = false
		if msg.err != nil {
			log.Printf("[detail] work %s fetch failed: %v", msg.key, msg.err)
		} else {
			m.detail.book = msg.book
		}
		m.markViewportDirty()
		return m, nil
	case authorResultMsg:
		if m.author == nil || m.author.key != msg.key {
			return m, nil
		}
		m.author.loading = false
		if msg.err != nil {
			log.Printf("[author] %s fetch failed: %v", msg.key, msg.err)
		} else {
			m.author.author = msg.author
		}
		m.markViewportDirty()
		return m, nil
	case insightsResultMsg:
		if m.detail == nil || m.detail.key != msg.key || !m.detail.insightsLoading {
			return m, nil
		}
		m.detail.insightsLoading = false
		if msg.err != nil {
			log.Printf("[insights] work %s failed: %v", msg.key, msg.err)
			m.infoMessage = "Akram could not be reached. Press i to retry."
		} else {
			m.detail.aiSummary = msg.summary
			m.detail.recommendations = msg.recommendations
			m.infoMessage = "Akram's insights are ready."
		}
		m.markViewportDirty()
		return m, nil
	case chatReplyMsg:
		m.session.Resolve(msg.reply, msg.err)
		if msg.err != nil {
			log.Printf("[chat] reply failed: %v", msg.err)
		}
		m.markViewportDirty()
		return m, nil
	}
	return m, nil
}

func (m *model) handleEscape() (tea.Model, tea.Cmd) {
	switch m.stage {
	case stageSearch:
		m.stage = stageBrowse
		m.searchInput.Blur()
		m.markViewportDirty()
		return m, nil
	case stageDetail:
		m.detail = nil
		m.stage = stageBrowse
		m.markViewportDirty()
		return m, nil
	case stageAuthor:
		m.author = nil
		m.stage = stageDetail
		m.viewport.SetYOffset(0)
		m.markViewportDirty()
		return m, nil
	case stageChat:
		m.stage = stageBrowse
		m.chatInput.Blur()
		m.markViewportDirty()
		return m, nil
	case stageLegal:
		m.stage = stageBrowse
		m.markViewportDirty()
		return m, nil
	default:
		if m.helpVisible {
			m.helpVisible = false
			return m, nil
		}
		return m, tea.Quit
	}
}

func (m *model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.stage {
	case stageBrowse:
		return m.handleBrowseKey(key)
	case stageSearch:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(key)
		if key.Type == tea.KeyEnter {
			value := m.searchInput.Value()
			m.stage = stageBrowse
			m.searchInput.Blur()
			return m, tea.Batch(cmd, m.submitSearch(value, m.controller.Sort()))
		}
		return m, cmd
	case stageDetail:
		return m.handleDetailKey(key)
	case stageAuthor:
		return m.handleScrollKey(key)
	case stageChat:
		var cmd tea.Cmd
		m.chatInput, cmd = m.chatInput.Update(key)
		if key.Type == tea.KeyEnter {
			if m.config.Librarian == nil {
				m.infoMessage = "Set GEMINI_API_KEY to chat with Akram."
				return m, cmd
			}
			text, ok := m.session.Send(m.chatInput.Value())
			if !ok {
				return m, cmd
			}
			m.chatInput.SetValue("")
			m.markViewportDirty()
			return m, tea.Batch(cmd, m.spinner.Tick, chatCmd(m.config.Librarian, text))
		}
		return m, cmd
	case stageLegal:
		return m.handleLegalKey(key)
	default:
		return m, nil
	}
}

func (m *model) handleBrowseKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "g":
		m.moveCursorTo(0)
	case "G":
		m.moveCursorTo(len(m.controller.Books()) - 1)
	case "/":
		m.stage = stageSearch
		m.searchInput.SetValue(m.controller.DisplayedQuery())
		m.searchInput.CursorEnd()
		m.searchInput.Focus()
		return m, textinput.Blink
	case "enter":
		return m.openDetail()
	case "m":
		req, ok := m.controller.LoadMore()
		if !ok {
			if m.controller.Loading() {
				m.infoMessage = "A fetch is already running."
			} else {
				m.infoMessage = "End of the catalogue for this query."
			}
			return m, nil
		}
		m.infoMessage = fmt.Sprintf("Fetching page %d…", req.Page)
		m.markViewportDirty()
		return m, tea.Batch(m.spinner.Tick, searchCmd(m.config.Library, req))
	case "s":
		next := m.controller.Sort().Next()
		m.infoMessage = fmt.Sprintf("Sorted by %s.", next.Label())
		req := m.controller.ChangeSort(next)
		m.cursor = 0
		m.markViewportDirty()
		return m, tea.Batch(m.spinner.Tick, searchCmd(m.config.Library, req))
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx, _ := strconv.Atoi(key.String())
		if idx >= 1 && idx <= len(catalogue.Categories) {
			label := catalogue.Categories[idx-1]
			m.infoMessage = fmt.Sprintf("Browsing %s.", label)
			req := m.controller.SelectCategory(label)
			m.cursor = 0
			m.markViewportDirty()
			return m, tea.Batch(m.spinner.Tick, searchCmd(m.config.Library, req))
		}
	case "c":
		m.stage = stageChat
		m.chatInput.Focus()
		m.markViewportDirty()
		return m, textinput.Blink
	case "t":
		m.stage = stageLegal
		m.legalIndex = 0
		m.viewport.SetYOffset(0)
		m.markViewportDirty()
	case "?":
		m.helpVisible = !m.helpVisible
	case "q":
		return m, tea.Quit
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(key)
		return m, cmd
	}
	return m, nil
}

func (m *model) handleDetailKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "a":
		authorKey := m.detail.summary.PrimaryAuthorKey()
		if authorKey == "" {
			m.infoMessage = "No author record attached to this work."
			return m, nil
		}
		m.author = &authorState{key: authorKey, loading: true}
		m.stage = stageAuthor
		m.viewport.SetYOffset(0)
		m.markViewportDirty()
		return m, tea.Batch(m.spinner.Tick, authorCmd(m.config.Library, authorKey))
	case "i":
		if m.config.Librarian == nil {
			m.infoMessage = "Set GEMINI_API_KEY to enable the AI librarian."
			return m, nil
		}
		if m.detail.insightsLoading {
			m.infoMessage = "Insights already running."
			return m, nil
		}
		rec := m.detail.record()
		m.detail.insightsLoading = true
		m.detail.aiSummary = ""
		m.detail.recommendations = ""
		m.infoMessage = "Consulting Akram…"
		m.markViewportDirty()
		return m, tea.Batch(
			m.spinner.Tick,
			insightsCmd(m.config.Librarian, m.detail.key, rec.Title, rec.PrimaryAuthor(), rec.Description.String()),
		)
	case "?":
		m.helpVisible = !m.helpVisible
		return m, nil
	default:
		return m.handleScrollKey(key)
	}
}

func (m *model) handleScrollKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "g":
		m.viewport.GotoTop()
		return m, nil
	case "G":
		m.viewport.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(key)
	return m, cmd
}

func (m *model) handleLegalKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	panels := legal.Panels()
	switch key.String() {
	case "tab", "right", "l":
		m.legalIndex = (m.legalIndex + 1) % len(panels)
		m.viewport.SetYOffset(0)
		m.markViewportDirty()
		return m, nil
	case "shift+tab", "left", "h":
		m.legalIndex = (m.legalIndex + len(panels) - 1) % len(panels)
		m.viewport.SetYOffset(0)
		m.markViewportDirty()
		return m, nil
	}
	return m.handleScrollKey(key)
}

func (m *model) openDetail() (tea.Model, tea.Cmd) {
	books := m.controller.Books()
	if len(books) == 0 {
		m.infoMessage = "No records to open."
		return m, nil
	}
	if m.cursor >= len(books) {
		m.cursor = len(books) - 1
	}
	book := books[m.cursor]
	m.detail = &detailState{key: book.Key, summary: book, loading: true}
	m.stage = stageDetail
	m.viewport.SetYOffset(0)
	m.markViewportDirty()
	return m, tea.Batch(m.spinner.Tick, detailCmd(m.config.Library, book.Key))
}

func (m *model) submitSearch(text string, sort catalogue.SortMode) tea.Cmd {
	req := m.controller.Submit(text, sort)
	m.cursor = 0
	m.infoMessage = fmt.Sprintf("Searching for %q…", req.Query)
	m.markViewportDirty()
	return tea.Batch(m.spinner.Tick, searchCmd(m.config.Library, req))
}

func (m *model) applySearchResult(msg searchResultMsg) (tea.Model, tea.Cmd) {
	if !m.controller.Resolve(msg.req, msg.result, msg.err) {
		return m, nil
	}
	switch {
	case msg.err != nil:
		log.Printf("[search] page %d for %q failed: %v", msg.req.Page, msg.req.Query, msg.err)
		m.infoMessage = ""
	case msg.req.Append:
		m.infoMessage = fmt.Sprintf("Loaded page %d.", msg.req.Page)
	default:
		m.cursor = 0
		m.viewport.SetYOffset(0)
		m.infoMessage = fmt.Sprintf("%d matches for %q.", m.controller.Total(), m.controller.ActiveQuery())
	}
	m.markViewportDirty()
	return m, nil
}

func (m *model) moveCursor(delta int) {
	m.moveCursorTo(m.cursor + delta)
}

func (m *model) moveCursorTo(target int) {
	count := len(m.controller.Books())
	if count == 0 {
		m.cursor = 0
		return
	}
	if target < 0 {
		target = 0
	}
	if target >= count {
		target = count - 1
	}
	m.cursor = target
	m.markViewportDirty()
}

func (m *model) ensureCursorVisible() {
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

func (m *model) anythingLoading() bool {
	if m.controller.Loading() || m.session.InFlight() {
		return true
	}
	if m.detail != nil && (m.detail.loading || m.detail.insightsLoading) {
		return true
	}
	if m.author != nil && m.author.loading {
		return true
	}
	return false
}

func (m *model) markViewportDirty() {
	m.viewportDirty = true
}

func (m *model) refreshViewportIfDirty() {
	if m.viewportDirty {
		m.refreshViewport()
	}
}

func (m *model) refreshViewport() {
	m.viewportDirty = false
	switch m.stage {
	case stageDetail:
		m.viewport.SetContent(m.buildDetailContent())
	case stageAuthor:
		m.viewport.SetContent(m.buildAuthorContent())
	case stageChat:
		m.viewport.SetContent(m.buildChatContent())
		m.viewport.GotoBottom()
	case stageLegal:
		m.viewport.SetContent(m.buildLegalContent())
	default:
		m.viewport.SetContent(m.buildBrowseContent())
		m.ensureCursorVisible()
	}
}

func (m *model) wrapWidth(padding int) int {
	width := m.viewport.Width - padding
	if width < 20 {
		width = 20
	}
	return width
}

func shortenList(items []string, limit int) string {
	if len(items) <= limit {
		return strings.Join(items, ", ")
	}
	return strings.Join(items[:limit], ", ") + ", …"
}

var (
	titleStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Underline(true)
	taglineStyle       = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244"))
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	subjectStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helperStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	currentLineStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	statusBarStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	categoryStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("117"))
	userTurnStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	librarianTurnStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("120"))
	legendBoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1)
	placeholderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)
