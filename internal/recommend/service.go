package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	productdomain "user-dashboard/backend/internal/product/domain"
)

// Generator produces free text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service turns a product search result into short recommendation copy,
// falling back to a deterministic local sentence on any upstream failure so
// search responses always carry a message.
type Service struct {
	gen    Generator
	logger *slog.Logger
}

// NewService returns a Service. gen may be nil, in which case only the
// fallback copy is used.
func NewService(gen Generator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{gen: gen, logger: logger.With("component", "recommend")}
}

// SearchMessage returns recommendation copy for the search query and its
// matching products.
func (s *Service) SearchMessage(ctx context.Context, query string, products []*productdomain.Product) string {
	if s.gen != nil {
		text, err := s.gen.Generate(ctx, searchPrompt(query, products))
		if err == nil {
			return text
		}
		s.logger.Warn("recommendation generation failed, using fallback", "query", query, "error", err)
	}
	return Fallback(query)
}

// Fallback is the copy used when no generator is configured or it fails.
func Fallback(query string) string {
	return fmt.Sprintf("Here are some matching products for %q. Click any product below to view details.", query)
}

func searchPrompt(query string, products []*productdomain.Product) string {
	var b strings.Builder
	if len(products) == 0 {
		b.WriteString("No products found. Suggest alternatives.\n")
	} else {
		for i, p := range products {
			fmt.Fprintf(&b, "%d. %s - %.2f\n", i+1, p.Name, p.Price)
		}
	}
	return fmt.Sprintf(`User search: %q

Matching store products:
%s
Write a short friendly product recommendation message:
- Keep it casual
- 2-3 lines max
- Highlight best options, but DO NOT mention IDs
- Encourage clicking products below
`, query, b.String())
}
