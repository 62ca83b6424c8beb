package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/karim3554/akram-library/internal/catalogue"
	"github.com/karim3554/akram-library/internal/librarian"
	"github.com/karim3554/akram-library/internal/openlibrary"
)

// Gateway is the slice of the Open Library client the TUI depends on.
type Gateway interface {
	Search(ctx context.Context, query string, page, limit int, sort string) (openlibrary.SearchResult, error)
	Work(ctx context.Context, key string) (*openlibrary.Book, error)
	Author(ctx context.Context, id string) (*openlibrary.Author, error)
}

type searchResultMsg struct {
	req    catalogue.Request
	result openlibrary.SearchResult
	err    error
}

type detailResultMsg struct {
	key  string
	book *openlibrary.Book
	err  error
}

type authorResultMsg struct {
	key    string
	author *openlibrary.Author
	err    error
}

type insightsResultMsg struct {
	key             string
	summary         string
	recommendations string
	err             error
}

type chatReplyMsg struct {
	reply librarian.Reply
	err   error
}

func searchCmd(gateway Gateway, req catalogue.Request) tea.Cmd {
	return func() tea.Msg {
		result, err := gateway.Search(context.Background(), req.Query, req.Page, catalogue.PageSize, string(req.Sort))
		return searchResultMsg{req: req, result: result, err: err}
	}
}

func detailCmd(gateway Gateway, key string) tea.Cmd {
	return func() tea.Msg {
		book, err := gateway.Work(context.Background(), key)
		return detailResultMsg{key: key, book: book, err: err}
	}
}

func authorCmd(gateway Gateway, id string) tea.Cmd {
	return func() tea.Msg {
		author, err := gateway.Author(context.Background(), id)
		return authorResultMsg{key: id, author: author, err: err}
	}
}

// insightsCmd fans out the recommendation and summary requests concurrently
// and joins them: either both results arrive or a single combined error does.
func insightsCmd(assistant librarian.Client, key, title, author, description string) tea.Cmd {
	return func() tea.Msg {
		g, ctx := errgroup.WithContext(context.Background())
		var recommendations, summary string
		g.Go(func() error {
			text, err := assistant.Recommend(ctx, title, author)
			recommendations = text
			return err
		})
		g.Go(func() error {
			text, err := assistant.Summarize(ctx, title, description)
			summary = text
			return err
		})
		if err := g.Wait(); err != nil {
			return insightsResultMsg{key: key, err: err}
		}
		return insightsResultMsg{key: key, summary: summary, recommendations: recommendations}
	}
}

func chatCmd(assistant librarian.Client, message string) tea.Cmd {
	return func() tea.Msg {
		reply, err := assistant.Chat(context.Background(), message)
		return chatReplyMsg{reply: reply, err: err}
	}
}
