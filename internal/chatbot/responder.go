// Package chatbot answers free-text customer questions with
// retrieval-augmented generation: nearest catalog/order documents are
// injected into a prompt template and handed to the language model.
package chatbot

import (
	"context"
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/shopmind/shopmind/internal/semantic"
)

// Retrieval parameters for grounding context.
const (
	contextTopK     = 5
	contextMinScore = 0.7
)

// DefaultPromptTemplate is used when no template file is configured.
const DefaultPromptTemplate = `You are a helpful e-commerce assistant. Answer the customer's question
using only the store information below. If the information is not
sufficient, say so instead of guessing.

Store information:
{context}

Customer question: {userQuery}
`

// TextGenerator produces free text from a prompt.
type TextGenerator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Searcher is the similarity-search slice of the semantic store.
type Searcher interface {
	Search(ctx context.Context, query string, topK int, minScore float64) ([]semantic.ScoredDocument, error)
}

// Responder assembles the RAG prompt and delegates generation. Template
// load failures surface as errors at construction time, not as
// answer-shaped text.
type Responder struct {
	template string
	store    Searcher
	chat     TextGenerator
}

// NewResponder loads the prompt template from templatePath once. An empty
// path selects the built-in default.
func NewResponder(templatePath string, store Searcher, chat TextGenerator) (*Responder, error) {
	template := DefaultPromptTemplate
	if templatePath != "" {
		data, err := os.ReadFile(templatePath)
		if err != nil {
			return nil, errors.Wrap(err, "load prompt template")
		}
		template = string(data)
	}
	if !strings.Contains(template, "{userQuery}") {
		return nil, errors.New("prompt template missing {userQuery} variable")
	}
	return &Responder{template: template, store: store, chat: chat}, nil
}

// Respond answers a user query. A query matching no documents above the
// similarity threshold still renders the template with empty context.
func (r *Responder) Respond(ctx context.Context, userQuery string) (string, error) {
	ragContext, err := r.fetchSemanticContext(ctx, userQuery)
	if err != nil {
		return "", errors.Wrap(err, "semantic search")
	}

	prompt := RenderTemplate(r.template, map[string]string{
		"userQuery": userQuery,
		"context":   ragContext,
	})

	answer, err := r.chat.Complete(ctx, prompt)
	if err != nil {
		return "", errors.Wrap(err, "chat completion")
	}

	zap.L().Debug("chat query answered",
		zap.Int("context_len", len(ragContext)),
		zap.Int("answer_len", len(answer)))
	return answer, nil
}

func (r *Responder) fetchSemanticContext(ctx context.Context, userQuery string) (string, error) {
	docs, err := r.store.Search(ctx, userQuery, contextTopK, contextMinScore)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, doc := range docs {
		b.WriteString(doc.Document.Content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// RenderTemplate substitutes {name} placeholders. Unknown placeholders are
// left untouched.
func RenderTemplate(template string, vars map[string]string) string {
	out := template
	for name, value := range vars {
		out = strings.ReplaceAll(out, "{"+name+"}", value)
	}
	return out
}
