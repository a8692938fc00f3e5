package server

import (
	"context"
	"encoding/json"

	identitydomain "user-dashboard/backend/internal/identity/domain"
)

func (s *Server) opSignup(ctx context.Context, _ identitydomain.RequestContext, input json.RawMessage) (any, error) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Username string `json:"username"`
		IsAdmin  bool   `json:"isAdmin"`
	}
	if err := decodeInput(input, &in); err != nil {
		return nil, err
	}
	res, err := s.deps.Auth.Register(ctx, in.Email, in.Password, in.Username, in.IsAdmin)
	if err != nil {
		return nil, err
	}
	return authView{Token: res.Token, User: toUserView(res.User)}, nil
}

func (s *Server) opLogin(ctx context.Context, rc identitydomain.RequestContext, input json.RawMessage) (any, error) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeInput(input, &in); err != nil {
		return nil, err
	}
	res, err := s.deps.Auth.Login(ctx, in.Email, in.Password, rc.SourceAddress, rc.Device)
	if err != nil {
		return nil, err
	}
	return authView{Token: res.Token, User: toUserView(res.User)}, nil
}

func (s *Server) opMe(ctx context.Context, rc identitydomain.RequestContext, _ json.RawMessage) (any, error) {
	user, err := s.deps.Auth.Me(ctx, rc)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	v := toUserView(user)
	return &v, nil
}
