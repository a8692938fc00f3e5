package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"user-dashboard/backend/internal/apperrors"
	identitydomain "user-dashboard/backend/internal/identity/domain"
)

// opHandler is one named operation. input is the raw "input" object from the
// request body; handlers decode what they need.
type opHandler func(ctx context.Context, rc identitydomain.RequestContext, input json.RawMessage) (any, error)

type opRequest struct {
	Operation string          `json:"operation"`
	Input     json.RawMessage `json:"input"`
}

func (s *Server) registerOps() {
	s.ops = map[string]opHandler{
		// queries
		"me":                     s.opMe,
		"users":                  s.opUsers,
		"todos":                  s.opTodos,
		"todo":                   s.opTodo,
		"todosByUser":            s.opTodosByUser,
		"commentFeed":            s.opCommentFeed,
		"myComments":             s.opMyComments,
		"allComments":            s.opAllComments,
		"products":               s.opProducts,
		"product":                s.opProduct,
		"searchProducts":         s.opSearchProducts,
		"reviewsByProduct":       s.opReviewsByProduct,
		"cart":                   s.opCart,
		"cartItemByProductId":    s.opCartItemByProductID,
		"bookmarks":              s.opBookmarks,
		"bookmarksGroupedByUser": s.opBookmarksGroupedByUser,

		// mutations
		"signup":         s.opSignup,
		"login":          s.opLogin,
		"deleteUser":     s.opDeleteUser,
		"addTodo":        s.opAddTodo,
		"updateTodo":     s.opUpdateTodo,
		"deleteTodo":     s.opDeleteTodo,
		"addComment":     s.opAddComment,
		"updateComment":  s.opUpdateComment,
		"deleteComment":  s.opDeleteComment,
		"addProduct":     s.opAddProduct,
		"addToCart":      s.opAddToCart,
		"removeFromCart": s.opRemoveFromCart,
		"addBookmark":    s.opAddBookmark,
		"removeBookmark": s.opRemoveBookmark,
		"addReview":      s.opAddReview,
		"updateReview":   s.opUpdateReview,
		"deleteReview":   s.opDeleteReview,
	}
}

// handleOps decodes {"operation","input"} and dispatches to the registered
// handler. Unknown operations are NotFound; handler errors map through the
// error taxonomy.
func (s *Server) handleOps(w http.ResponseWriter, r *http.Request) {
	var req opRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("malformed request body: %w", apperrors.ErrInvalidArgument))
		return
	}
	h, ok := s.ops[req.Operation]
	if !ok {
		writeError(w, fmt.Errorf("unknown operation %q: %w", req.Operation, apperrors.ErrNotFound))
		return
	}
	out, err := h(r.Context(), RequestContextFrom(r.Context()), req.Input)
	if err != nil {
		s.logger.Info("operation failed", "operation", req.Operation, "code", apperrors.Code(err))
		writeError(w, err)
		return
	}
	writeData(w, out)
}

// decodeInput unmarshals input into v, mapping absence and malformed JSON to
// the invalid-argument error.
func decodeInput(input json.RawMessage, v any) error {
	if len(input) == 0 {
		return fmt.Errorf("input is required: %w", apperrors.ErrInvalidArgument)
	}
	if err := json.Unmarshal(input, v); err != nil {
		return fmt.Errorf("malformed input: %w", apperrors.ErrInvalidArgument)
	}
	return nil
}
