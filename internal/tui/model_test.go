package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/karim3554/akram-library/internal/catalogue"
	"github.com/karim3554/akram-library/internal/librarian"
	"github.com/karim3554/akram-library/internal/openlibrary"
)

type fakeGateway struct {
	searchResult openlibrary.SearchResult
	searchErr    error
	book         *openlibrary.Book
	bookErr      error
	author       *openlibrary.Author
	authorErr    error
}

func (f *fakeGateway) Search(ctx context.Context, query string, page, limit int, sort string) (openlibrary.SearchResult, error) {
	return f.searchResult, f.searchErr
}

func (f *fakeGateway) Work(ctx context.Context, key string) (*openlibrary.Book, error) {
	return f.book, f.bookErr
}

func (f *fakeGateway) Author(ctx context.Context, id string) (*openlibrary.Author, error) {
	return f.author, f.authorErr
}

type fakeLibrarian struct {
	recommendation string
	summary        string
	reply          librarian.Reply
	recommendErr   error
	summarizeErr   error
	chatErr        error
}

func (f *fakeLibrarian) Recommend(ctx context.Context, title, author string) (string, error) {
	return f.recommendation, f.recommendErr
}

func (f *fakeLibrarian) Summarize(ctx context.Context, title, description string) (string, error) {
	return f.summary, f.summarizeErr
}

func (f *fakeLibrarian) Chat(ctx context.Context, message string) (librarian.Reply, error) {
	return f.reply, f.chatErr
}

func (f *fakeLibrarian) Name() string { return "fake" }

func (f *fakeLibrarian) Close() error { return nil }

func newTestModel(t *testing.T, config Config) *model {
	t.Helper()
	if config.Library == nil {
		config.Library = &fakeGateway{}
	}
	m, ok := New(config).(*model)
	if !ok {
		t.Fatal("New did not return the internal model")
	}
	return m
}

func press(m *model, key string) tea.Cmd {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	_, cmd := m.Update(msg)
	return cmd
}

func loadShelves(t *testing.T, m *model, books []openlibrary.Book) {
	t.Helper()
	req := m.controller.Submit("dune", catalogue.SortRelevance)
	m.Update(searchResultMsg{req: req, result: openlibrary.SearchResult{Docs: books, NumFound: len(books)}})
}

func sampleBooks() []openlibrary.Book {
	return []openlibrary.Book{
		{Key: "/works/OL1W", Title: "Dune", AuthorNames: []string{"Frank Herbert"}, AuthorKeys: []string{"OL33421A"}},
		{Key: "/works/OL2W", Title: "Dune Messiah", AuthorNames: []string{"Frank Herbert"}},
	}
}

func TestInitDispatchesDefaultSearch(t *testing.T) {
	m := newTestModel(t, Config{})
	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init should dispatch the opening search")
	}
	if !m.controller.Loading() {
		t.Fatal("opening search should be in flight")
	}
	if got := m.controller.ActiveQuery(); got != catalogue.DefaultTopic {
		t.Fatalf("opening query = %q, want %q", got, catalogue.DefaultTopic)
	}
}

func TestSearchResultPopulatesShelves(t *testing.T) {
	m := newTestModel(t, Config{})
	loadShelves(t, m, sampleBooks())
	if m.cursor != 0 {
		t.Fatalf("fresh results should reset the cursor, got %d", m.cursor)
	}
	view := m.View()
	if !strings.Contains(view, "Dune Messiah") {
		t.Fatalf("view missing record title:\n%s", view)
	}
}

func TestStaleSearchResultLeavesModelUntouched(t *testing.T) {
	m := newTestModel(t, Config{})
	stale := m.controller.Submit("first", catalogue.SortRelevance)
	live := m.controller.Submit("second", catalogue.SortRelevance)

	m.Update(searchResultMsg{req: stale, result: openlibrary.SearchResult{Docs: sampleBooks(), NumFound: 2}})
	if len(m.controller.Books()) != 0 {
		t.Fatal("stale response must not populate the shelves")
	}

	m.Update(searchResultMsg{req: live, result: openlibrary.SearchResult{Docs: sampleBooks()[:1], NumFound: 1}})
	if got := len(m.controller.Books()); got != 1 {
		t.Fatalf("live response should populate the shelves, got %d records", got)
	}
}

func TestFailedFetchShowsMessageAndKeepsRecords(t *testing.T) {
	m := newTestModel(t, Config{})
	loadShelves(t, m, sampleBooks())

	fresh := m.controller.Submit("dune", catalogue.SortRelevance)
	m.Update(searchResultMsg{req: fresh, err: errors.New("down")})

	if len(m.controller.Books()) != 2 {
		t.Fatal("failure must keep the accumulated records")
	}
	view := m.View()
	if !strings.Contains(view, catalogue.FetchErrorMessage) {
		t.Fatalf("view missing the fetch error message:\n%s", view)
	}
	if !strings.Contains(view, "Dune") {
		t.Fatal("records must stay visible alongside the error")
	}
}

func TestOpenDetailAndAuthorOverlayStacking(t *testing.T) {
	gateway := &fakeGateway{
		book:   &openlibrary.Book{Key: "/works/OL1W", Title: "Dune", Description: openlibrary.PlainText("Spice.")},
		author: &openlibrary.Author{Key: "/authors/OL33421A", Name: "Frank Herbert"},
	}
	m := newTestModel(t, Config{Library: gateway})
	loadShelves(t, m, sampleBooks())

	if cmd := press(m, "enter"); cmd == nil {
		t.Fatal("opening a record should dispatch the work fetch")
	}
	if m.stage != stageDetail || m.detail == nil || m.detail.key != "/works/OL1W" {
		t.Fatalf("detail overlay not opened: stage=%v detail=%+v", m.stage, m.detail)
	}
	m.Update(detailResultMsg{key: "/works/OL1W", book: gateway.book})
	if m.detail.book == nil {
		t.Fatal("work record not folded into the overlay")
	}

	if cmd := press(m, "a"); cmd == nil {
		t.Fatal("opening the author should dispatch the author fetch")
	}
	if m.stage != stageAuthor || m.author == nil {
		t.Fatal("author overlay not opened")
	}
	m.Update(authorResultMsg{key: "OL33421A", author: gateway.author})

	press(m, "esc")
	if m.stage != stageDetail {
		t.Fatalf("closing the author must return to the record, got stage %v", m.stage)
	}
	if m.detail == nil {
		t.Fatal("record overlay must survive closing the author overlay")
	}

	press(m, "esc")
	if m.stage != stageBrowse || m.detail != nil {
		t.Fatal("closing the record must return to the shelves")
	}
}

func TestDetailFetchFailureKeepsListRecord(t *testing.T) {
	m := newTestModel(t, Config{})
	loadShelves(t, m, sampleBooks())
	press(m, "enter")
	m.Update(detailResultMsg{key: "/works/OL1W", err: errors.New("down")})
	if m.detail == nil || m.detail.loading {
		t.Fatal("failed work fetch should settle the overlay")
	}
	view := m.View()
	if !strings.Contains(view, "Dune") {
		t.Fatalf("list record fields must still render:\n%s", view)
	}
	if !strings.Contains(view, "No description available") {
		t.Fatalf("missing description placeholder:\n%s", view)
	}
}

func TestInsightsWithoutLibrarianShowsHint(t *testing.T) {
	m := newTestModel(t, Config{})
	loadShelves(t, m, sampleBooks())
	press(m, "enter")

	if cmd := press(m, "i"); cmd != nil {
		t.Fatal("insights must not dispatch without a configured librarian")
	}
	if !strings.Contains(m.infoMessage, "GEMINI_API_KEY") {
		t.Fatalf("hint should name the credential, got %q", m.infoMessage)
	}
}

func TestInsightsSuccessRendersBothSections(t *testing.T) {
	m := newTestModel(t, Config{Librarian: &fakeLibrarian{}})
	loadShelves(t, m, sampleBooks())
	press(m, "enter")

	if cmd := press(m, "i"); cmd == nil {
		t.Fatal("insights should dispatch")
	}
	if !m.detail.insightsLoading {
		t.Fatal("insights should be marked in flight")
	}
	m.Update(insightsResultMsg{key: "/works/OL1W", summary: "Bullet points.", recommendations: "Read Hyperion."})
	if m.detail.insightsLoading {
		t.Fatal("insights flag should clear")
	}
	view := m.View()
	if !strings.Contains(view, "Bullet points.") || !strings.Contains(view, "Read Hyperion.") {
		t.Fatalf("both insight sections must render:\n%s", view)
	}
}

func TestInsightsFailureLeavesPanelEmpty(t *testing.T) {
	m := newTestModel(t, Config{Librarian: &fakeLibrarian{}})
	loadShelves(t, m, sampleBooks())
	press(m, "enter")
	press(m, "i")

	m.Update(insightsResultMsg{key: "/works/OL1W", err: errors.New("quota")})
	if m.detail.aiSummary != "" || m.detail.recommendations != "" {
		t.Fatal("a failed insights run must not surface partial results")
	}
	view := m.View()
	if !strings.Contains(view, "Press i for an AI summary") {
		t.Fatalf("panel should fall back to the hint:\n%s", view)
	}
}

func TestChatSendAndReply(t *testing.T) {
	m := newTestModel(t, Config{Librarian: &fakeLibrarian{}})
	press(m, "c")
	if m.stage != stageChat {
		t.Fatalf("stage = %v, want chat", m.stage)
	}

	m.chatInput.SetValue("any sci-fi nearby?")
	if cmd := press(m, "enter"); cmd == nil {
		t.Fatal("sending should dispatch the chat request")
	}
	if !m.session.InFlight() {
		t.Fatal("session should be awaiting a reply")
	}

	m.Update(chatReplyMsg{reply: librarian.Reply{
		Text: "Certainly.",
		Refs: []librarian.GroundingRef{{Title: "Central Library", URI: "https://example.org/central"}},
	}})
	view := m.View()
	if !strings.Contains(view, "Certainly.") {
		t.Fatalf("reply missing from transcript:\n%s", view)
	}
	if !strings.Contains(view, "[Central Library](https://example.org/central)") {
		t.Fatalf("grounding link missing from transcript:\n%s", view)
	}
}

func TestChatWithoutLibrarianShowsHint(t *testing.T) {
	m := newTestModel(t, Config{})
	press(m, "c")
	m.chatInput.SetValue("hello")
	press(m, "enter")
	if m.session.InFlight() {
		t.Fatal("no request may be dispatched without a configured librarian")
	}
	if got := len(m.session.Turns()); got != 1 {
		t.Fatalf("conversation mutated without a librarian: %d turns", got)
	}
	if !strings.Contains(m.infoMessage, "GEMINI_API_KEY") {
		t.Fatalf("hint should name the credential, got %q", m.infoMessage)
	}
}

func TestChatBlankSendIsNoOp(t *testing.T) {
	m := newTestModel(t, Config{Librarian: &fakeLibrarian{}})
	press(m, "c")
	m.chatInput.SetValue("   ")
	press(m, "enter")
	if m.session.InFlight() {
		t.Fatal("blank input must not dispatch a request")
	}
	if got := len(m.session.Turns()); got != 1 {
		t.Fatalf("blank input appended a turn: %d", got)
	}
}

func TestLoadMoreKeyAtEndOfCatalogue(t *testing.T) {
	m := newTestModel(t, Config{})
	loadShelves(t, m, sampleBooks())
	if cmd := press(m, "m"); cmd != nil {
		t.Fatal("short page must not allow load more")
	}
	if !strings.Contains(m.infoMessage, "End of the catalogue") {
		t.Fatalf("info message = %q", m.infoMessage)
	}
}

func TestCategoryKeyDispatchesSearch(t *testing.T) {
	m := newTestModel(t, Config{})
	if cmd := press(m, "2"); cmd == nil {
		t.Fatal("category key should dispatch a search")
	}
	if got := m.controller.ActiveQuery(); got != catalogue.Categories[1] {
		t.Fatalf("active query = %q, want %q", got, catalogue.Categories[1])
	}
}

func TestLegalPanelsCycle(t *testing.T) {
	m := newTestModel(t, Config{})
	press(m, "t")
	if m.stage != stageLegal || m.legalIndex != 0 {
		t.Fatalf("legal overlay not opened: stage=%v index=%d", m.stage, m.legalIndex)
	}
	press(m, "l")
	if m.legalIndex != 1 {
		t.Fatalf("legal index = %d, want 1", m.legalIndex)
	}
	press(m, "h")
	press(m, "h")
	if m.legalIndex != 3 {
		t.Fatalf("legal index should wrap backwards, got %d", m.legalIndex)
	}
	press(m, "esc")
	if m.stage != stageBrowse {
		t.Fatal("esc should close the legal overlay")
	}
}

func TestSearchStageSubmitsDisplayedText(t *testing.T) {
	m := newTestModel(t, Config{})
	press(m, "/")
	if m.stage != stageSearch {
		t.Fatalf("stage = %v, want search", m.stage)
	}
	m.searchInput.SetValue("  ")
	if cmd := press(m, "enter"); cmd == nil {
		t.Fatal("blank search should still dispatch")
	}
	if got := m.controller.ActiveQuery(); got != catalogue.DefaultTopic {
		t.Fatalf("blank search dispatched %q, want %q", got, catalogue.DefaultTopic)
	}
	if got := m.controller.DisplayedQuery(); got != "  " {
		t.Fatalf("displayed query = %q, want the raw input", got)
	}
}
