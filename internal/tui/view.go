package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/karim3554/akram-library/internal/catalogue"
	"github.com/karim3554/akram-library/internal/legal"
	"github.com/karim3554/akram-library/internal/librarian"
	"github.com/karim3554/akram-library/internal/openlibrary"
)

func (m *model) View() string {
	m.refreshViewportIfDirty()
	parts := []string{m.heroView()}
	if m.stage == stageSearch {
		parts = append(parts, m.searchPanel())
	} else {
		parts = append(parts, m.statusBarView())
	}
	parts = append(parts, m.viewport.View())
	if m.stage == stageChat {
		parts = append(parts, m.chatComposer())
	}
	if err := m.controller.ErrMessage(); err != "" && (m.stage == stageBrowse || m.stage == stageSearch) {
		parts = append(parts, errorStyle.Render(err))
	}
	if m.infoMessage != "" {
		message := m.infoMessage
		if m.anythingLoading() {
			message = fmt.Sprintf("%s %s", m.spinner.View(), message)
		}
		parts = append(parts, helperStyle.Render(message))
	}
	if m.helpVisible {
		parts = append(parts, m.keyLegendView())
	}
	return joinNonEmpty(parts)
}

func (m *model) heroView() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(heroTitle),
		taglineStyle.Render(heroTagline),
	)
}

func (m *model) searchPanel() string {
	var b strings.Builder
	b.WriteString(sectionHeaderStyle.Render("Search the Catalogue"))
	b.WriteRune('\n')
	b.WriteString(m.searchInput.View())
	b.WriteRune('\n')
	b.WriteString(helperStyle.Render("Enter to search (blank browses Fiction), Esc to cancel."))
	return b.String()
}

func (m *model) chatComposer() string {
	var b strings.Builder
	b.WriteString(m.chatInput.View())
	b.WriteRune('\n')
	b.WriteString(helperStyle.Render("Enter to send, Esc to return to the shelves."))
	return b.String()
}

func (m *model) statusBarView() string {
	switch m.stage {
	case stageDetail:
		return statusBarStyle.Render("Record  •  a author  •  i insights  •  Esc close")
	case stageAuthor:
		return statusBarStyle.Render("Author  •  Esc back to the record")
	case stageChat:
		return statusBarStyle.Render("Akram, the AI librarian  •  Esc back to the shelves")
	case stageLegal:
		return m.legalTabsView()
	}
	query := m.controller.DisplayedQuery()
	if strings.TrimSpace(query) == "" {
		query = m.controller.ActiveQuery()
	}
	stats := []string{
		fmt.Sprintf("Query %q", query),
		fmt.Sprintf("Sort %s", m.controller.Sort().Label()),
	}
	if total := m.controller.Total(); total > 0 {
		stats = append(stats, fmt.Sprintf("Showing %d of %d", len(m.controller.Books()), total))
		stats = append(stats, fmt.Sprintf("Page %d", m.controller.Page()))
	}
	if m.controller.HasMore() {
		stats = append(stats, "m for more")
	}
	bar := statusBarStyle.Render(strings.Join(stats, "  •  "))
	return bar + "\n" + m.categoryBarView()
}

func (m *model) categoryBarView() string {
	labels := make([]string, 0, len(catalogue.Categories))
	for i, label := range catalogue.Categories {
		labels = append(labels, fmt.Sprintf("%d %s", i+1, label))
	}
	return categoryStyle.Render(strings.Join(labels, "  "))
}

func (m *model) legalTabsView() string {
	panels := legal.Panels()
	tabs := make([]string, 0, len(panels))
	for i, panel := range panels {
		if i == m.legalIndex {
			tabs = append(tabs, currentLineStyle.Render("["+panel.Title+"]"))
		} else {
			tabs = append(tabs, helperStyle.Render(" "+panel.Title+" "))
		}
	}
	return strings.Join(tabs, " ")
}

func (m *model) buildBrowseContent() string {
	books := m.controller.Books()
	if len(books) == 0 {
		if m.controller.Loading() {
			return m.loadingShelfView()
		}
		if m.controller.ErrMessage() != "" {
			return ""
		}
		return helperStyle.Render("The shelves are empty. Press / to search.")
	}
	width := m.wrapWidth(4)
	var b strings.Builder
	for i, book := range books {
		line := fmt.Sprintf("%s — %s", book.Title, book.PrimaryAuthor())
		if book.FirstPublishYear != 0 {
			line = fmt.Sprintf("%s (%d)", line, book.FirstPublishYear)
		}
		line = truncate(line, width)
		if i == m.cursor {
			b.WriteString(currentLineStyle.Render("▸ " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteRune('\n')
	}
	if m.controller.Loading() {
		b.WriteString(m.loadingShelfView())
	}
	return b.String()
}

func (m *model) loadingShelfView() string {
	row := placeholderStyle.Render("  " + strings.Repeat("░", 28))
	return strings.Join([]string{row, row, row}, "\n") + "\n"
}

func (m *model) buildDetailContent() string {
	rec := m.detail.record()
	width := m.wrapWidth(2)
	var b strings.Builder
	b.WriteString(titleStyle.Render(wordwrap.String(rec.Title, width)))
	b.WriteRune('\n')
	b.WriteString(fmt.Sprintf("by %s", rec.PrimaryAuthor()))
	b.WriteRune('\n')

	meta := []string{}
	if rec.FirstPublishYear != 0 {
		meta = append(meta, fmt.Sprintf("First published %d", rec.FirstPublishYear))
	}
	if rec.PageCountMedian != 0 {
		meta = append(meta, fmt.Sprintf("%d pages", rec.PageCountMedian))
	}
	meta = append(meta, "Language "+rec.LanguageCode())
	b.WriteString(helperStyle.Render(strings.Join(meta, "  •  ")))
	b.WriteRune('\n')
	b.WriteString(helperStyle.Render("Cover: " + rec.CoverURL(openlibrary.CoverLarge)))
	b.WriteRune('\n')

	if tags := rec.SubjectTags(); len(tags) > 0 {
		b.WriteRune('\n')
		b.WriteString(sectionHeaderStyle.Render("Subjects"))
		b.WriteRune('\n')
		b.WriteString(subjectStyle.Render(wordwrap.String(shortenList(tags, 8), width)))
		b.WriteRune('\n')
	}

	b.WriteRune('\n')
	b.WriteString(sectionHeaderStyle.Render("Description"))
	b.WriteRune('\n')
	switch {
	case !rec.Description.Empty():
		b.WriteString(wordwrap.String(rec.Description.String(), width))
	case m.detail.loading:
		b.WriteString(helperStyle.Render("Fetching the full record…"))
	default:
		b.WriteString(helperStyle.Render("No description available for this work."))
	}
	b.WriteRune('\n')

	b.WriteRune('\n')
	b.WriteString(sectionHeaderStyle.Render("Akram's Insights"))
	b.WriteRune('\n')
	switch {
	case m.detail.insightsLoading:
		b.WriteString(helperStyle.Render("Consulting Akram…"))
	case m.detail.aiSummary != "" || m.detail.recommendations != "":
		b.WriteString(sectionHeaderStyle.Render("Summary"))
		b.WriteRune('\n')
		b.WriteString(wordwrap.String(m.detail.aiSummary, width))
		b.WriteString("\n\n")
		b.WriteString(sectionHeaderStyle.Render("You Might Also Like"))
		b.WriteRune('\n')
		b.WriteString(wordwrap.String(m.detail.recommendations, width))
	default:
		b.WriteString(helperStyle.Render("Press i for an AI summary and recommendations."))
	}
	b.WriteRune('\n')
	return b.String()
}

func (m *model) buildAuthorContent() string {
	width := m.wrapWidth(2)
	if m.author.loading {
		return helperStyle.Render("Fetching the author record…")
	}
	author := m.author.author
	if author == nil {
		return helperStyle.Render("The author record could not be retrieved.")
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(author.Name))
	b.WriteRune('\n')
	if author.BirthDate != "" || author.DeathDate != "" {
		span := author.BirthDate
		if author.DeathDate != "" {
			span = span + " – " + author.DeathDate
		}
		b.WriteString(helperStyle.Render(span))
		b.WriteRune('\n')
	}
	b.WriteString(helperStyle.Render("Portrait: " + author.PhotoURL(openlibrary.CoverMedium)))
	b.WriteRune('\n')

	if !author.Bio.Empty() {
		b.WriteRune('\n')
		b.WriteString(sectionHeaderStyle.Render("Biography"))
		b.WriteRune('\n')
		b.WriteString(wordwrap.String(author.Bio.String(), width))
		b.WriteRune('\n')
	}
	if len(author.AlternateNames) > 0 {
		b.WriteRune('\n')
		b.WriteString(sectionHeaderStyle.Render("Also Known As"))
		b.WriteRune('\n')
		b.WriteString(wordwrap.String(shortenList(author.AlternateNames, 5), width))
		b.WriteRune('\n')
	}
	if len(author.Links) > 0 {
		b.WriteRune('\n')
		b.WriteString(sectionHeaderStyle.Render("Links"))
		b.WriteRune('\n')
		for _, link := range author.Links {
			b.WriteString(fmt.Sprintf("%s — %s\n", link.Title, link.URL))
		}
	}
	return b.String()
}

func (m *model) buildChatContent() string {
	width := m.wrapWidth(4)
	var b strings.Builder
	for i, turn := range m.session.Turns() {
		if i > 0 {
			b.WriteRune('\n')
		}
		if turn.Role == librarian.RoleUser {
			b.WriteString(userTurnStyle.Render("You"))
		} else {
			b.WriteString(librarianTurnStyle.Render("Akram"))
		}
		b.WriteRune('\n')
		b.WriteString(indentMultiline(wordwrap.String(turn.Text, width), "  "))
		b.WriteRune('\n')
	}
	if m.session.InFlight() {
		b.WriteRune('\n')
		b.WriteString(librarianTurnStyle.Render("Akram"))
		b.WriteRune('\n')
		b.WriteString(helperStyle.Render("  Akram is thinking…"))
		b.WriteRune('\n')
	}
	return b.String()
}

func (m *model) buildLegalContent() string {
	width := m.wrapWidth(2)
	panel := legal.Panels()[m.legalIndex]
	var b strings.Builder
	b.WriteString(titleStyle.Render(panel.Title))
	b.WriteRune('\n')
	for _, section := range panel.Sections {
		b.WriteRune('\n')
		b.WriteString(sectionHeaderStyle.Render(section.Heading))
		b.WriteRune('\n')
		b.WriteString(wordwrap.String(section.Body, width))
		b.WriteRune('\n')
	}
	b.WriteRune('\n')
	b.WriteString(helperStyle.Render("Tab to switch panels, Esc to return."))
	return b.String()
}

type keyHint struct {
	Key         string
	Description string
}

func (m *model) keyLegendView() string {
	hints := []keyHint{
		{"↑/↓", "Move cursor"},
		{"Enter", "Open record"},
		{"a", "Author overlay"},
		{"i", "AI insights"},
		{"/", "Search"},
		{"s", "Cycle sort"},
		{"m", "Load more"},
		{"1-9", "Categories"},
		{"c", "Chat with Akram"},
		{"t", "Legal panels"},
		{"g/G", "Top or bottom"},
		{"?", "Toggle this legend"},
	}
	rows := []string{sectionHeaderStyle.Render("Key Legend")}
	const columns = 3
	for i := 0; i < len(hints); i += columns {
		end := i + columns
		if end > len(hints) {
			end = len(hints)
		}
		var cells []string
		for _, hint := range hints[i:end] {
			key := currentLineStyle.Render(hint.Key)
			desc := helperStyle.Render(" " + hint.Description + "   ")
			cells = append(cells, lipgloss.JoinHorizontal(lipgloss.Top, key, desc))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return legendBoxStyle.Render(strings.Join(rows, "\n"))
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}

func indentMultiline(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	if max <= 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
