package chat

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	configpkg "github.com/owenwolfe/ChatGPT-Terminal/pkg/config"
	"github.com/owenwolfe/ChatGPT-Terminal/pkg/history"
)

func testConfig(t *testing.T) configpkg.Config {
	t.Helper()
	cfg := configpkg.DefaultConfig()
	cfg.APIKey = "sk-test"
	cfg.HistoryPath = filepath.Join(t.TempDir(), "history.json")
	return cfg
}

func TestNewRequiresAPIKey(t *testing.T) {
	cfg := testConfig(t)
	cfg.APIKey = ""
	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestNewLoadsPersistedTranscript(t *testing.T) {
	cfg := testConfig(t)
	store := history.NewStore(cfg.HistoryPath, cfg.HistoryLimit)
	if err := store.Save([]history.Turn{
		{Role: history.RoleUser, Content: "hi"},
		{Role: history.RoleAssistant, Content: "hello!"},
	}); err != nil {
		t.Fatalf("seed history: %v", err)
	}

	sess, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	turns := sess.Turns()
	if len(turns) != 2 {
		t.Fatalf("expected 2 loaded turns, got %d", len(turns))
	}
	if turns[1].Content != "hello!" {
		t.Fatalf("unexpected transcript: %#v", turns)
	}
}

func TestNewStartsEmptyOnCorruptHistory(t *testing.T) {
	cfg := testConfig(t)
	if err := os.WriteFile(cfg.HistoryPath, []byte("{broken"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	sess, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sess.Turns()) != 0 {
		t.Fatalf("expected empty transcript, got %#v", sess.Turns())
	}
}

func TestToMessagesWithoutSystemPrompt(t *testing.T) {
	sess := &Session{config: configpkg.Config{}}

	out := sess.toMessages([]history.Turn{
		{Role: history.RoleUser, Content: "hi"},
		{Role: history.RoleAssistant, Content: "hello!"},
	})
	if len(out) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(out))
	}
}

func TestToMessagesPrependsSystemPrompt(t *testing.T) {
	sess := &Session{config: configpkg.Config{SystemPrompt: "be terse"}}

	out := sess.toMessages([]history.Turn{
		{Role: history.RoleUser, Content: "hi"},
	})
	if len(out) != 2 {
		t.Fatalf("expected system + user, got %d messages", len(out))
	}
	if out[0].OfSystem == nil {
		t.Fatal("expected first message to be the system prompt")
	}
}

func TestSendRejectsEmptyInput(t *testing.T) {
	cfg := testConfig(t)
	sess, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := sess.Send("   "); err == nil {
		t.Fatal("expected error for empty input")
	}
	if len(sess.Turns()) != 0 {
		t.Fatalf("expected transcript unchanged, got %#v", sess.Turns())
	}
}

func TestResetClearsMemoryAndDisk(t *testing.T) {
	cfg := testConfig(t)
	store := history.NewStore(cfg.HistoryPath, cfg.HistoryLimit)
	if err := store.Save([]history.Turn{{Role: history.RoleUser, Content: "hi"}}); err != nil {
		t.Fatalf("seed history: %v", err)
	}

	sess, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sess.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if len(sess.Turns()) != 0 {
		t.Fatalf("expected empty transcript after reset, got %#v", sess.Turns())
	}
	if _, err := os.Stat(cfg.HistoryPath); !os.IsNotExist(err) {
		t.Fatalf("expected history file removed, stat err=%v", err)
	}
}
