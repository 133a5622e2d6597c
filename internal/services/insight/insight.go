package insight

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/MyelinBots/journalbot-go/config"
	"github.com/MyelinBots/journalbot-go/internal/db/repositories/daily_stat"
	"github.com/MyelinBots/journalbot-go/internal/db/repositories/journal_entry"
)

// ErrNoEntries means nobody journaled on the requested date.
var ErrNoEntries = errors.New("no journal entries for date")

// Insight runs a free-text prompt over one day's anonymized journal
// entries. Read-only consumer of the entry store; fully decoupled from the
// access engine.
type Insight interface {
	Summarize(ctx context.Context, date string, prompt string) (string, error)
}

// completer is the seam to the model API.
type completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type InsightImpl struct {
	entries   journal_entry.JournalEntryRepository
	completer completer
	location  *time.Location
}

func NewInsight(entries journal_entry.JournalEntryRepository, cfg config.InsightConfig, location *time.Location) *InsightImpl {
	return &InsightImpl{
		entries:   entries,
		completer: newOpenAICompleter(cfg),
		location:  location,
	}
}

func (i *InsightImpl) Summarize(ctx context.Context, date string, prompt string) (string, error) {
	day, err := time.ParseInLocation(daily_stat.DateFormat, date, i.location)
	if err != nil {
		return "", fmt.Errorf("parse date %q: %w", date, err)
	}

	entries, err := i.entries.ListBetween(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		return "", fmt.Errorf("list entries for %s: %w", date, err)
	}
	if len(entries) == 0 {
		return "", ErrNoEntries
	}

	return i.completer.Complete(ctx, buildPrompt(date, anonymize(entries), prompt))
}

// anonymize concatenates each user's entries in authoring order under a
// stable per-user label, without leaking display names to the model.
func anonymize(entries []*journal_entry.JournalEntry) []string {
	order := make([]string, 0)
	byUser := make(map[string][]string)
	for _, e := range entries {
		if _, seen := byUser[e.PlatformUserID]; !seen {
			order = append(order, e.PlatformUserID)
		}
		byUser[e.PlatformUserID] = append(byUser[e.PlatformUserID], e.Content)
	}

	journals := make([]string, 0, len(order))
	for n, id := range order {
		journals = append(journals, fmt.Sprintf("Journal %d:\n%s", n+1, strings.Join(byUser[id], "\n\n")))
	}
	return journals
}

func buildPrompt(date string, journals []string, request string) string {
	return fmt.Sprintf(`You have access to anonymized journal entries from multiple users written on %s.
Here are the journals:

%s

User's request: %s

Please respond to the user's request based on these journal entries.`,
		date, strings.Join(journals, "\n\n---\n\n"), request)
}

type openaiCompleter struct {
	client *openai.Client
	model  string
}

func newOpenAICompleter(cfg config.InsightConfig) *openaiCompleter {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &openaiCompleter{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
	}
}

func (o *openaiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}
	return resp.Choices[0].Message.Content, nil
}
