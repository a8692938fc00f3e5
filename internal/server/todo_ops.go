package server

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"user-dashboard/backend/internal/apperrors"
	identitydomain "user-dashboard/backend/internal/identity/domain"
	"user-dashboard/backend/internal/platform/authz"
	tododomain "user-dashboard/backend/internal/todo/domain"
)

// opTodos is tiered rather than gated: admins see everything, users see their
// own records, anonymous callers get an empty list.
func (s *Server) opTodos(ctx context.Context, rc identitydomain.RequestContext, _ json.RawMessage) (any, error) {
	caller, ok := rc.Caller()
	if !ok {
		return []todoView{}, nil
	}
	if caller.IsAdmin {
		todos, err := s.deps.Todos.List(ctx)
		if err != nil {
			return nil, err
		}
		return toTodoViews(todos), nil
	}
	todos, err := s.deps.Todos.ListByCreator(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	return toTodoViews(todos), nil
}

func (s *Server) opTodo(ctx context.Context, rc identitydomain.RequestContext, input json.RawMessage) (any, error) {
	if _, err := authz.RequireAuthenticated(rc); err != nil {
		return nil, err
	}
	var in struct {
		ID string `json:"id"`
	}
	if err := decodeInput(input, &in); err != nil {
		return nil, err
	}
	todo, err := s.deps.Todos.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, nil
	}
	v := toTodoView(todo)
	return &v, nil
}

func (s *Server) opTodosByUser(ctx context.Context, rc identitydomain.RequestContext, input json.RawMessage) (any, error) {
	caller, err := authz.RequireAuthenticated(rc)
	if err != nil {
		return nil, err
	}
	var in struct {
		UserID string `json:"userId"`
	}
	if err := decodeInput(input, &in); err != nil {
		return nil, err
	}
	if !caller.IsAdmin && caller.ID != in.UserID {
		return nil, apperrors.ErrForbidden
	}
	todos, err := s.deps.Todos.ListByCreator(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	return toTodoViews(todos), nil
}

type todoInput struct {
	Name        *string `json:"name"`
	Title       *string `json:"title"`
	Age         *int    `json:"age"`
	Bio         *string `json:"bio"`
	Company     *string `json:"company"`
	Experience  *int    `json:"experience"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
}

func (s *Server) opAddTodo(ctx context.Context, rc identitydomain.RequestContext, input json.RawMessage) (any, error) {
	caller, err := authz.RequireAuthenticated(rc)
	if err != nil {
		return nil, err
	}
	var in todoInput
	if err := decodeInput(input, &in); err != nil {
		return nil, err
	}
	if in.Name == nil || *in.Name == "" {
		return nil, fmt.Errorf("name is required: %w", apperrors.ErrInvalidArgument)
	}
	now := time.Now().UTC()
	todo := &tododomain.Todo{
		ID:        uuid.New().String(),
		Name:      *in.Name,
		CreatedBy: caller.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	tododomain.Update(in).Apply(todo)
	if err := s.deps.Todos.Create(ctx, todo); err != nil {
		return nil, err
	}
	return toTodoView(todo), nil
}

func (s *Server) opUpdateTodo(ctx context.Context, rc identitydomain.RequestContext, input json.RawMessage) (any, error) {
	var in struct {
		ID string `json:"id"`
		todoInput
	}
	if err := decodeInput(input, &in); err != nil {
		return nil, err
	}
	todo, err := s.authorizeTodoWrite(ctx, rc, in.ID)
	if err != nil {
		return nil, err
	}
	tododomain.Update(in.todoInput).Apply(todo)
	todo.UpdatedAt = time.Now().UTC()
	if err := s.deps.Todos.Update(ctx, todo); err != nil {
		return nil, err
	}
	return toTodoView(todo), nil
}

func (s *Server) opDeleteTodo(ctx context.Context, rc identitydomain.RequestContext, input json.RawMessage) (any, error) {
	var in struct {
		ID string `json:"id"`
	}
	if err := decodeInput(input, &in); err != nil {
		return nil, err
	}
	if _, err := s.authorizeTodoWrite(ctx, rc, in.ID); err != nil {
		return nil, err
	}
	if err := s.deps.Todos.Delete(ctx, in.ID); err != nil {
		return nil, err
	}
	return true, nil
}

// authorizeTodoWrite loads the todo and enforces owner-or-admin.
func (s *Server) authorizeTodoWrite(ctx context.Context, rc identitydomain.RequestContext, id string) (*tododomain.Todo, error) {
	caller, err := authz.RequireAuthenticated(rc)
	if err != nil {
		return nil, err
	}
	todo, err := s.deps.Todos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, fmt.Errorf("todo %q: %w", id, apperrors.ErrNotFound)
	}
	if todo.CreatedBy != caller.ID && !caller.IsAdmin {
		return nil, apperrors.ErrForbidden
	}
	return todo, nil
}
