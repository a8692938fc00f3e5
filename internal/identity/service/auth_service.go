// Package service implements account registration and the login risk
// evaluator: credential check, geolocation of the caller's address, and
// login-anomaly detection against the previously stored login record.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"user-dashboard/backend/internal/apperrors"
	"user-dashboard/backend/internal/geoip"
	identitydomain "user-dashboard/backend/internal/identity/domain"
	"user-dashboard/backend/internal/security"
	userdomain "user-dashboard/backend/internal/user/domain"
)

// localhostLabel is the sentinel location stored for loopback logins.
const localhostLabel = "Localhost"

// loginTimestampLayout renders the login time the way existing clients expect
// it: long month, 12-hour clock.
const loginTimestampLayout = "January 2, 2006 at 03:04:05 PM"

// UserRepo is the minimal user repository needed by the auth service.
type UserRepo interface {
	GetByID(ctx context.Context, id string) (*userdomain.User, error)
	GetByEmail(ctx context.Context, email string) (*userdomain.User, error)
	Create(ctx context.Context, u *userdomain.User) error
	UpdateLastLogin(ctx context.Context, userID string, rec *userdomain.LoginRecord) error
}

// GeoResolver resolves an approximate location for a network address.
type GeoResolver interface {
	Resolve(ctx context.Context, ip string) (*geoip.Location, error)
}

// AuthResult holds the outcome of Register or Login: a signed identity token
// and the account it was issued for.
type AuthResult struct {
	Token string
	User  *userdomain.User
}

// AuthService implements signup and the three-stage login evaluation.
type AuthService struct {
	users      UserRepo
	geo        GeoResolver
	hasher     *security.Hasher
	tokens     *security.TokenProvider
	geoTimeout time.Duration
	logger     *slog.Logger
	locks      accountLocks
	zone       *time.Location
	nowF       func() time.Time
}

// NewAuthService returns an AuthService with the given dependencies.
// geoTimeout bounds the geolocation lookup during login; on expiry the login
// proceeds without a location.
func NewAuthService(
	users UserRepo,
	geo GeoResolver,
	hasher *security.Hasher,
	tokens *security.TokenProvider,
	geoTimeout time.Duration,
	logger *slog.Logger,
) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	zone, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		zone = time.FixedZone("IST", 5*3600+1800)
	}
	if geoTimeout <= 0 {
		geoTimeout = 3 * time.Second
	}
	return &AuthService{
		users:      users,
		geo:        geo,
		hasher:     hasher,
		tokens:     tokens,
		geoTimeout: geoTimeout,
		logger:     logger.With("component", "auth"),
		zone:       zone,
		nowF:       time.Now,
	}
}

// Register creates an account with the given email, password, and username
// and issues an identity token for it. Returns apperrors.ErrConflict when the
// email is already registered.
func (s *AuthService) Register(ctx context.Context, email, password, username string, isAdmin bool) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters: %w", apperrors.ErrInvalidArgument)
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username is required: %w", apperrors.ErrInvalidArgument)
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered: %w", apperrors.ErrConflict)
	}

	hashed, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &userdomain.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		IsAdmin:      isAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	token, err := s.tokens.Issue(user.ID, user.IsAdmin)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// Login runs the three-stage evaluation: credential check, geo-resolution of
// sourceAddr, and anomaly computation against the stored previous login
// record. On success it overwrites the account's login record and issues a
// fresh identity token. "No such account" and "wrong password" both return
// apperrors.ErrInvalidCredentials.
//
// Logins for the same account are serialized so concurrent attempts cannot
// race the read-then-write of the login record.
func (s *AuthService) Login(ctx context.Context, email, password, sourceAddr, device string) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	unlock := s.locks.lock(email)
	defer unlock()

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.PasswordHash, []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	loc := s.resolveLocation(ctx, sourceAddr)

	// Suspicious only when a previous record exists, a location was resolved,
	// and BOTH location and device changed. Loopback never flags.
	suspicious := false
	if !isLoopback(sourceAddr) && user.LastLogin != nil && loc != nil && loc.Label != "" {
		suspicious = user.LastLogin.Location != loc.Label && user.LastLogin.Device != device
	}

	rec := &userdomain.LoginRecord{
		IP:         sourceAddr,
		Device:     device,
		Suspicious: suspicious,
		Timestamp:  s.nowF().In(s.zone).Format(loginTimestampLayout),
	}
	if loc != nil {
		rec.Location = loc.Label
		rec.Lat = loc.Lat
		rec.Long = loc.Long
	}
	if err := s.users.UpdateLastLogin(ctx, user.ID, rec); err != nil {
		return nil, err
	}
	user.LastLogin = rec

	if suspicious {
		s.logger.Warn("suspicious login",
			"user_id", user.ID, "location", rec.Location, "device", rec.Device)
	}

	token, err := s.tokens.Issue(user.ID, user.IsAdmin)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// Me returns the account behind the request identity, or nil for anonymous
// callers and deleted accounts. Never returns an auth error: "me" is a probe,
// not a guarded operation.
func (s *AuthService) Me(ctx context.Context, rc identitydomain.RequestContext) (*userdomain.User, error) {
	caller, ok := rc.Caller()
	if !ok {
		return nil, nil
	}
	return s.users.GetByID(ctx, caller.ID)
}

// resolveLocation maps a source address to a location. Loopback addresses
// short-circuit to the Localhost sentinel and never reach the resolver; any
// resolver failure degrades to nil.
func (s *AuthService) resolveLocation(ctx context.Context, sourceAddr string) *geoip.Location {
	if isLoopback(sourceAddr) {
		return &geoip.Location{Label: localhostLabel}
	}
	if s.geo == nil {
		return nil
	}
	lookupCtx, cancel := context.WithTimeout(ctx, s.geoTimeout)
	defer cancel()
	loc, err := s.geo.Resolve(lookupCtx, sourceAddr)
	if err != nil {
		s.logger.Warn("geolocation lookup failed; proceeding without location", "error", err)
		return nil
	}
	return loc
}

func isLoopback(addr string) bool {
	return addr == "127.0.0.1" || addr == "::1" || addr == "localhost"
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required: %w", apperrors.ErrInvalidArgument)
	}
	const simpleEmail = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	ok, _ := regexp.MatchString(simpleEmail, email)
	if !ok {
		return fmt.Errorf("invalid email format: %w", apperrors.ErrInvalidArgument)
	}
	return nil
}
