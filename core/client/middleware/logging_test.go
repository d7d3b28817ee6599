package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/leofalp/campaignlens/providers/ai"
)

// ========== Test logger helpers ==========

// testLogger creates an slog.Logger that writes to a *bytes.Buffer so tests
// can inspect emitted log lines without capturing os.Stderr.
func testLogger(buf *bytes.Buffer) *slog.Logger {
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler)
}

func okSend(_ context.Context, _ ai.ChatRequest) (*ai.ChatResponse, error) {
	return &ai.ChatResponse{
		Model:        "test-model",
		Content:      `{"title":"스타벅스 체험단"}`,
		FinishReason: "stop",
		Usage:        &ai.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}, nil
}

var testRequest = ai.ChatRequest{
	Model:    "test-model",
	Messages: []ai.Message{{Role: ai.RoleUser, Content: "리워드 1만원, 문의 010-1234-5678"}},
}

func TestLoggingMiddleware_Levels(t *testing.T) {
	tests := []struct {
		name        string
		level       LogLevel
		wantPresent []string
		wantAbsent  []string
	}{
		{
			name:        "minimal",
			level:       LogLevelMinimal,
			wantPresent: []string{"llm send", "llm send completed", "test-model", "prompt_tokens=10"},
			wantAbsent:  []string{"prompt_chars", "finish_reason", "response_content", "010-1234-5678"},
		},
		{
			name:        "standard",
			level:       LogLevelStandard,
			wantPresent: []string{"prompt_chars=", "finish_reason=stop"},
			wantAbsent:  []string{"response_content", "010-1234-5678"},
		},
		{
			name:        "verbose",
			level:       LogLevelVerbose,
			wantPresent: []string{"prompt=", "010-1234-5678", "response_content="},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			chain := NewLoggingMiddleware(testLogger(buf), tt.level)(okSend)

			if _, err := chain(context.Background(), testRequest); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			output := buf.String()
			for _, s := range tt.wantPresent {
				if !strings.Contains(output, s) {
					t.Errorf("expected %q in log, got:\n%s", s, output)
				}
			}
			for _, s := range tt.wantAbsent {
				if strings.Contains(output, s) {
					t.Errorf("did not expect %q in log, got:\n%s", s, output)
				}
			}
		})
	}
}

// TestLoggingMiddleware_Error verifies that a provider error is logged at
// error level and returned unchanged.
func TestLoggingMiddleware_Error(t *testing.T) {
	buf := &bytes.Buffer{}
	wantErr := errors.New("upstream 503")

	failing := func(_ context.Context, _ ai.ChatRequest) (*ai.ChatResponse, error) {
		return nil, wantErr
	}

	chain := NewLoggingMiddleware(testLogger(buf), LogLevelStandard)(failing)
	_, err := chain(context.Background(), testRequest)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected original error, got %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "llm send failed") || !strings.Contains(output, "level=ERROR") {
		t.Errorf("expected error log entry, got:\n%s", output)
	}
	if strings.Contains(output, "llm send completed") {
		t.Errorf("did not expect completion entry, got:\n%s", output)
	}
}

// TestLoggingMiddleware_NilLogger verifies the slog.Default fallback.
func TestLoggingMiddleware_NilLogger(t *testing.T) {
	chain := NewLoggingMiddleware(nil, LogLevelMinimal)(okSend)
	if _, err := chain(context.Background(), testRequest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
