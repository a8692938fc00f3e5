package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	bookmarkdomain "user-dashboard/backend/internal/bookmark/domain"
	cartdomain "user-dashboard/backend/internal/cart/domain"
	commentdomain "user-dashboard/backend/internal/comment/domain"
	identityservice "user-dashboard/backend/internal/identity/service"
	"user-dashboard/backend/internal/presence"
	productdomain "user-dashboard/backend/internal/product/domain"
	"user-dashboard/backend/internal/recommend"
	reviewdomain "user-dashboard/backend/internal/review/domain"
	"user-dashboard/backend/internal/security"
	tododomain "user-dashboard/backend/internal/todo/domain"
	userdomain "user-dashboard/backend/internal/user/domain"

	"github.com/google/uuid"
)

// In-memory repository fakes. Slices keep insertion order; list methods
// return newest first to match the SQL implementations.

type memUsers struct {
	mu    sync.Mutex
	users []*userdomain.User
}

func (m *memUsers) GetByID(_ context.Context, id string) (*userdomain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*userdomain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Create(_ context.Context, u *userdomain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.users = append(m.users, &cp)
	return nil
}

func (m *memUsers) List(_ context.Context) ([]*userdomain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*userdomain.User, 0, len(m.users))
	for i := len(m.users) - 1; i >= 0; i-- {
		cp := *m.users[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memUsers) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, u := range m.users {
		if u.ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memUsers) UpdateLastLogin(_ context.Context, userID string, rec *userdomain.LoginRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == userID {
			cp := *rec
			u.LastLogin = &cp
		}
	}
	return nil
}

type memTodos struct {
	mu    sync.Mutex
	todos []*tododomain.Todo
}

func (m *memTodos) GetByID(_ context.Context, id string) (*tododomain.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.todos {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memTodos) List(_ context.Context) ([]*tododomain.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*tododomain.Todo, 0, len(m.todos))
	for i := len(m.todos) - 1; i >= 0; i-- {
		cp := *m.todos[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memTodos) ListByCreator(_ context.Context, userID string) ([]*tododomain.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*tododomain.Todo
	for i := len(m.todos) - 1; i >= 0; i-- {
		if m.todos[i].CreatedBy == userID {
			cp := *m.todos[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memTodos) Create(_ context.Context, t *tododomain.Todo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	m.todos = append(m.todos, &cp)
	return nil
}

func (m *memTodos) Update(_ context.Context, t *tododomain.Todo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.todos {
		if existing.ID == t.ID {
			cp := *t
			m.todos[i] = &cp
		}
	}
	return nil
}

func (m *memTodos) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.todos {
		if t.ID == id {
			m.todos = append(m.todos[:i], m.todos[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memTodos) DeleteByCreator(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.todos[:0]
	for _, t := range m.todos {
		if t.CreatedBy != userID {
			kept = append(kept, t)
		}
	}
	m.todos = kept
	return nil
}

type memComments struct {
	mu       sync.Mutex
	users    *memUsers
	comments []*commentdomain.Comment
}

func (m *memComments) withAuthor(c *commentdomain.Comment) *commentdomain.Comment {
	cp := *c
	if u, _ := m.users.GetByID(context.Background(), c.AuthorID); u != nil {
		cp.AuthorUsername = u.Username
		cp.AuthorEmail = u.Email
	}
	return &cp
}

func (m *memComments) GetByID(_ context.Context, id string) (*commentdomain.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.comments {
		if c.ID == id {
			return m.withAuthor(c), nil
		}
	}
	return nil, nil
}

func (m *memComments) List(_ context.Context) ([]*commentdomain.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*commentdomain.Comment, 0, len(m.comments))
	for i := len(m.comments) - 1; i >= 0; i-- {
		out = append(out, m.withAuthor(m.comments[i]))
	}
	return out, nil
}

func (m *memComments) ListByAuthor(_ context.Context, userID string) ([]*commentdomain.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*commentdomain.Comment
	for i := len(m.comments) - 1; i >= 0; i-- {
		if m.comments[i].AuthorID == userID {
			out = append(out, m.withAuthor(m.comments[i]))
		}
	}
	return out, nil
}

func (m *memComments) Create(_ context.Context, c *commentdomain.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.comments = append(m.comments, &cp)
	return nil
}

func (m *memComments) UpdateContent(_ context.Context, id, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.comments {
		if c.ID == id {
			c.Content = content
			c.UpdatedAt = time.Now().UTC()
		}
	}
	return nil
}

func (m *memComments) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.comments {
		if c.ID == id {
			m.comments = append(m.comments[:i], m.comments[i+1:]...)
			return nil
		}
	}
	return nil
}

type memProducts struct {
	mu       sync.Mutex
	products []*productdomain.Product
}

func (m *memProducts) GetByID(_ context.Context, id string) (*productdomain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memProducts) List(_ context.Context) ([]*productdomain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*productdomain.Product, 0, len(m.products))
	for i := len(m.products) - 1; i >= 0; i-- {
		cp := *m.products[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memProducts) SearchByName(_ context.Context, query string) ([]*productdomain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*productdomain.Product
	for i := len(m.products) - 1; i >= 0; i-- {
		if containsFold(m.products[i].Name, query) {
			cp := *m.products[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memProducts) Create(_ context.Context, p *productdomain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.products = append(m.products, &cp)
	return nil
}

type memReviews struct {
	mu      sync.Mutex
	reviews []*reviewdomain.Review
}

func (m *memReviews) GetByID(_ context.Context, id string) (*reviewdomain.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reviews {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memReviews) ListByProduct(_ context.Context, productID string) ([]*reviewdomain.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*reviewdomain.Review
	for i := len(m.reviews) - 1; i >= 0; i-- {
		if m.reviews[i].ProductID == productID {
			cp := *m.reviews[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memReviews) Create(_ context.Context, r *reviewdomain.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	m.reviews = append(m.reviews, &cp)
	return nil
}

func (m *memReviews) Update(_ context.Context, r *reviewdomain.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.reviews {
		if existing.ID == r.ID {
			cp := *r
			m.reviews[i] = &cp
		}
	}
	return nil
}

func (m *memReviews) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.reviews {
		if r.ID == id {
			m.reviews = append(m.reviews[:i], m.reviews[i+1:]...)
			return nil
		}
	}
	return nil
}

type memCarts struct {
	mu       sync.Mutex
	products *memProducts
	carts    map[string]*cartdomain.Cart // keyed by user ID
}

func (m *memCarts) GetOrCreateByUser(_ context.Context, userID string) (*cartdomain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.carts == nil {
		m.carts = make(map[string]*cartdomain.Cart)
	}
	cart, ok := m.carts[userID]
	if !ok {
		now := time.Now().UTC()
		cart = &cartdomain.Cart{ID: uuid.New().String(), UserID: userID, CreatedAt: now, UpdatedAt: now}
		m.carts[userID] = cart
	}
	cp := *cart
	cp.Items = make([]cartdomain.CartItem, len(cart.Items))
	copy(cp.Items, cart.Items)
	for i := range cp.Items {
		if p, _ := m.products.GetByID(context.Background(), cp.Items[i].ProductID); p != nil {
			cp.Items[i].Product = p
		}
	}
	return &cp, nil
}

func (m *memCarts) byID(cartID string) *cartdomain.Cart {
	for _, c := range m.carts {
		if c.ID == cartID {
			return c
		}
	}
	return nil
}

func (m *memCarts) AddItem(_ context.Context, cartID, productID string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if quantity <= 0 {
		quantity = 1
	}
	cart := m.byID(cartID)
	if cart == nil {
		return nil
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			return nil
		}
	}
	cart.Items = append(cart.Items, cartdomain.CartItem{ProductID: productID, Quantity: quantity})
	return nil
}

func (m *memCarts) RemoveItem(_ context.Context, cartID, productID string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if quantity <= 0 {
		quantity = 1
	}
	cart := m.byID(cartID)
	if cart == nil {
		return nil
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity -= quantity
			if cart.Items[i].Quantity <= 0 {
				cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			}
			return nil
		}
	}
	return nil
}

type memBookmarks struct {
	mu        sync.Mutex
	users     *memUsers
	products  *memProducts
	bookmarks []*bookmarkdomain.Bookmark
}

func (m *memBookmarks) withProduct(b *bookmarkdomain.Bookmark) *bookmarkdomain.Bookmark {
	cp := *b
	if p, _ := m.products.GetByID(context.Background(), b.ProductID); p != nil {
		cp.Product = p
	}
	return &cp
}

func (m *memBookmarks) Add(_ context.Context, b *bookmarkdomain.Bookmark) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.bookmarks {
		if existing.UserID == b.UserID && existing.ProductID == b.ProductID {
			return nil
		}
	}
	cp := *b
	m.bookmarks = append(m.bookmarks, &cp)
	return nil
}

func (m *memBookmarks) Get(_ context.Context, userID, productID string) (*bookmarkdomain.Bookmark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookmarks {
		if b.UserID == userID && b.ProductID == productID {
			return m.withProduct(b), nil
		}
	}
	return nil, nil
}

func (m *memBookmarks) Remove(_ context.Context, userID, productID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, b := range m.bookmarks {
		if b.UserID == userID && b.ProductID == productID {
			m.bookmarks = append(m.bookmarks[:i], m.bookmarks[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memBookmarks) ListByUser(_ context.Context, userID string) ([]*bookmarkdomain.Bookmark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*bookmarkdomain.Bookmark
	for i := len(m.bookmarks) - 1; i >= 0; i-- {
		if m.bookmarks[i].UserID == userID {
			out = append(out, m.withProduct(m.bookmarks[i]))
		}
	}
	return out, nil
}

func (m *memBookmarks) ListGroupedByUser(_ context.Context) ([]*bookmarkdomain.UserBookmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	byUser := map[string]*bookmarkdomain.UserBookmarks{}
	var out []*bookmarkdomain.UserBookmarks
	for _, b := range m.bookmarks {
		group, ok := byUser[b.UserID]
		if !ok {
			group = &bookmarkdomain.UserBookmarks{UserID: b.UserID}
			if u, _ := m.users.GetByID(context.Background(), b.UserID); u != nil {
				group.Username = u.Username
			}
			byUser[b.UserID] = group
			out = append(out, group)
		}
		group.Bookmarks = append(group.Bookmarks, m.withProduct(b))
	}
	return out, nil
}

func containsFold(haystack, needle string) bool {
	h := []byte(haystack)
	n := []byte(needle)
	lower := func(b byte) byte {
		if b >= 'A' && b <= 'Z' {
			return b + 'a' - 'A'
		}
		return b
	}
	if len(n) == 0 {
		return true
	}
outer:
	for i := 0; i+len(n) <= len(h); i++ {
		for j := range n {
			if lower(h[i+j]) != lower(n[j]) {
				continue outer
			}
		}
		return true
	}
	return false
}

// env bundles a running test server with seeded accounts.
type env struct {
	users     *memUsers
	todos     *memTodos
	comments  *memComments
	products  *memProducts
	reviews   *memReviews
	carts     *memCarts
	bookmarks *memBookmarks
	tracker   *presence.Tracker
	tokens    *security.TokenProvider
	srv       *httptest.Server

	adminID    string
	adminToken string
	userID     string
	userToken  string
	otherID    string
	otherToken string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := security.NewTokenProvider("test-secret", time.Hour)
	hasher := security.NewHasher(4)

	users := &memUsers{}
	todos := &memTodos{}
	comments := &memComments{users: users}
	products := &memProducts{}
	reviews := &memReviews{}
	carts := &memCarts{products: products}
	bookmarks := &memBookmarks{users: users, products: products}
	tracker := presence.NewTracker(logger)

	auth := identityservice.NewAuthService(users, nil, hasher, tokens, time.Second, logger)

	e := &env{
		users: users, todos: todos, comments: comments, products: products,
		reviews: reviews, carts: carts, bookmarks: bookmarks,
		tracker: tracker, tokens: tokens,
	}
	e.adminID, e.adminToken = e.seedUser(t, auth, "admin@example.com", "admin", true)
	e.userID, e.userToken = e.seedUser(t, auth, "user@example.com", "user", false)
	e.otherID, e.otherToken = e.seedUser(t, auth, "other@example.com", "other", false)

	s := New(Deps{
		Auth:      auth,
		Users:     users,
		Todos:     todos,
		Comments:  comments,
		Products:  products,
		Reviews:   reviews,
		Carts:     carts,
		Bookmarks: bookmarks,
		Recommend: recommend.NewService(nil, logger),
		Presence:  tracker,
		Tokens:    tokens,

		AllowedOrigins: []string{"*"},
		Logger:         logger,
	})
	e.srv = httptest.NewServer(s.Router())
	t.Cleanup(e.srv.Close)
	return e
}

func (e *env) seedUser(t *testing.T, auth *identityservice.AuthService, email, username string, isAdmin bool) (string, string) {
	t.Helper()
	res, err := auth.Register(context.Background(), email, "password", username, isAdmin)
	if err != nil {
		t.Fatalf("seed %s: %v", email, err)
	}
	return res.User.ID, res.Token
}

// do posts one operation and decodes the response envelope.
func (e *env) do(t *testing.T, token, operation string, input any) (int, json.RawMessage, *errorBody) {
	t.Helper()
	body := map[string]any{"operation": operation}
	if input != nil {
		body["input"] = input
	}
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, e.srv.URL+"/api", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s: %v", operation, err)
	}
	defer resp.Body.Close()
	var envelope struct {
		Data  json.RawMessage `json:"data"`
		Error *errorBody      `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("%s: decode response: %v", operation, err)
	}
	return resp.StatusCode, envelope.Data, envelope.Error
}

// doOK posts an operation that must succeed and unmarshals its data into out.
func (e *env) doOK(t *testing.T, token, operation string, input, out any) {
	t.Helper()
	status, data, errBody := e.do(t, token, operation, input)
	if status != http.StatusOK || errBody != nil {
		t.Fatalf("%s: status=%d error=%+v", operation, status, errBody)
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			t.Fatalf("%s: unmarshal data: %v", operation, err)
		}
	}
}
