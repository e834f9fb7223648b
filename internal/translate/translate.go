// Package translate normalizes incoming questions to English ahead of SQL
// generation. Questions without Arabic text pass through untouched.
package translate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/askdb/askdb/internal/llm"
	"github.com/askdb/askdb/internal/observability"
)

const minTranslationLength = 5

type Normalizer struct {
	client llm.Client
	logger *slog.Logger
}

func NewNormalizer(client llm.Client, logger *slog.Logger) *Normalizer {
	return &Normalizer{client: client, logger: logger}
}

// Normalize returns the question unchanged unless it contains Arabic text,
// in which case it is translated to English. An unusable first translation
// gets exactly one retry with a terser prompt; the second result is used
// as-is even if still poor. Translation never aborts a request: if both
// attempts produce nothing, the original question is returned.
func (n *Normalizer) Normalize(ctx context.Context, question string) string {
	if !ContainsArabic(question) {
		return question
	}

	prompt := fmt.Sprintf(`Translate ONLY this Arabic question to clear English for SQL querying.


Arabic: %s


English:`, question)
	english := strings.TrimSpace(n.completeOrEmpty(ctx, prompt))

	if !isUsableTranslation(english) {
		observability.IncrementTranslationRetry()
		prompt = fmt.Sprintf(`Translate ONLY: %s


One English question:`, question)
		english = strings.TrimSpace(n.completeOrEmpty(ctx, prompt))
	}

	if english == "" {
		return question
	}
	if n.logger != nil {
		n.logger.DebugContext(ctx, "question_translated", slog.String("english", english))
	}
	return english
}

func (n *Normalizer) completeOrEmpty(ctx context.Context, prompt string) string {
	text, err := n.client.Complete(ctx, prompt)
	if err != nil {
		if n.logger != nil {
			n.logger.WarnContext(ctx, "translation call failed", slog.Any("error", err))
		}
		return ""
	}
	return text
}

// ContainsArabic reports whether any rune falls in the Arabic Unicode
// block (U+0600 to U+06FF).
func ContainsArabic(text string) bool {
	for _, r := range text {
		if r >= 0x0600 && r <= 0x06FF {
			return true
		}
	}
	return false
}

func isUsableTranslation(text string) bool {
	if text == "" {
		return false
	}
	if utf8.RuneCountInString(text) < minTranslationLength {
		return false
	}
	return strings.Contains(text, "?")
}
