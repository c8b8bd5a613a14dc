// Package chat wraps the OpenAI chat completions API around a persistent
// conversation transcript.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	configpkg "github.com/owenwolfe/ChatGPT-Terminal/pkg/config"
	"github.com/owenwolfe/ChatGPT-Terminal/pkg/history"
	loggerpkg "github.com/owenwolfe/ChatGPT-Terminal/pkg/logger"
)

// Session holds the client, the configured model, and the conversation
// transcript carried across turns and across runs.
type Session struct {
	config configpkg.Config
	client openai.Client
	store  *history.Store
	turns  []history.Turn

	ctx     context.Context
	logger  loggerpkg.Logger
	verbose bool
}

// New initializes a Session with the provided context and config. The
// persisted transcript is loaded immediately; a missing or corrupt history
// file starts the session with an empty transcript.
func New(ctx context.Context, cfg configpkg.Config, opts ...SessionOption) (*Session, error) {
	cfg = configpkg.Normalize(cfg)
	deps := sessionDeps{logger: loggerpkg.NopLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&deps)
		}
	}

	if cfg.APIKey == "" {
		return nil, errors.New("OPENAI_API_KEY is not set")
	}
	if cfg.Model == "" {
		return nil, errors.New("model is not set")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	loggerpkg.Debug(cfg.Verbose, deps.logger, "session init", map[string]any{
		"model":         cfg.Model,
		"base_url":      cfg.BaseURL,
		"history_path":  cfg.HistoryPath,
		"history_limit": cfg.HistoryLimit,
	})

	store := history.NewStore(cfg.HistoryPath, cfg.HistoryLimit)
	turns := store.Load()
	loggerpkg.Debug(cfg.Verbose, deps.logger, "history loaded", map[string]any{
		"turns": len(turns),
	})

	return &Session{
		config: cfg,
		client: newOpenAIClient(cfg),
		store:  store,
		turns:  turns,

		ctx:     ctx,
		logger:  deps.logger,
		verbose: cfg.Verbose,
	}, nil
}

func newOpenAIClient(cfg configpkg.Config) openai.Client {
	opts := []option.RequestOption{}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	return openai.NewClient(opts...)
}

// Send processes one user input: the transcript gains the user turn, one
// completion request is made with the full transcript as context, and the
// assistant answer is appended and persisted. On a remote failure the user
// turn is rolled back and the error returned; the transcript is unchanged.
func (s *Session) Send(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", errors.New("user input is required")
	}

	updated := history.Tail(
		append(s.turns, history.Turn{Role: history.RoleUser, Content: input}),
		s.store.Limit(),
	)

	loggerpkg.Debug(s.verbose, s.logger, "sending chat completion", map[string]any{
		"messages": len(updated),
	})
	message, err := s.runOnce(openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(s.config.Model),
		Messages: s.toMessages(updated),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	answer := strings.TrimSpace(message.Content)
	s.turns = append(updated, history.Turn{Role: history.RoleAssistant, Content: answer})
	if err := s.store.Save(s.turns); err != nil {
		// Best-effort persistence: the session continues in memory.
		loggerpkg.Debug(s.verbose, s.logger, "history save failed", map[string]any{
			"path":  s.store.Path(),
			"error": err.Error(),
		})
	}
	return answer, nil
}

// runOnce performs one model completion request.
func (s *Session) runOnce(params openai.ChatCompletionNewParams) (openai.ChatCompletionMessage, error) {
	completion, err := s.client.Chat.Completions.New(s.ctx, params)
	if err != nil {
		return openai.ChatCompletionMessage{}, err
	}
	if len(completion.Choices) == 0 {
		return openai.ChatCompletionMessage{}, errors.New("empty completion choices")
	}
	return completion.Choices[0].Message, nil
}

// toMessages converts the transcript into request params, prepending the
// configured system prompt. The system prompt is never persisted.
func (s *Session) toMessages(turns []history.Turn) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(turns)+1)
	if s.config.SystemPrompt != "" {
		out = append(out, openai.SystemMessage(s.config.SystemPrompt))
	}
	for _, turn := range turns {
		switch turn.Role {
		case history.RoleAssistant:
			out = append(out, openai.AssistantMessage(turn.Content))
		default:
			out = append(out, openai.UserMessage(turn.Content))
		}
	}
	return out
}

// Reset clears the in-memory transcript and deletes the history file.
func (s *Session) Reset() error {
	s.turns = []history.Turn{}
	return s.store.Reset()
}

// Turns returns a copy of the current transcript.
func (s *Session) Turns() []history.Turn {
	out := make([]history.Turn, len(s.turns))
	copy(out, s.turns)
	return out
}
