package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/idtoken"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/domain"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/metrics"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/repository/ports"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/util"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrSessionInactive    = errors.New("session is no longer active")
	ErrUserNotFound       = errors.New("user not found")
	ErrGoogleDisabled     = errors.New("google sign-in is not configured")
	ErrInvalidGoogleToken = errors.New("invalid google token")
)

const (
	constraintUsername = "user_account_username_key"
	constraintEmail    = "user_account_email_key"
)

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	Password2 string
	FirstName string
	LastName  string
}

// AuthResult is returned by every operation that opens or refreshes a session.
// Refresh is empty when only the access token was reissued.
type AuthResult struct {
	User            *domain.User
	Access          string
	AccessExpiresAt time.Time
	Refresh         string
}

type googleValidator func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

type AuthService struct {
	users    ports.UserRepository
	roles    ports.RoleRepository
	sessions ports.SessionRepository
	jwt      *util.JWTManager

	googleAudience string
	validateGoogle googleValidator
	now            func() time.Time
}

func NewAuthService(users ports.UserRepository, roles ports.RoleRepository, sessions ports.SessionRepository, jwt *util.JWTManager, googleAudience string) *AuthService {
	return &AuthService{
		users:          users,
		roles:          roles,
		sessions:       sessions,
		jwt:            jwt,
		googleAudience: strings.TrimSpace(googleAudience),
		validateGoogle: idtoken.Validate,
		now:            time.Now,
	}
}

func (s *AuthService) GoogleEnabled() bool {
	return s.googleAudience != ""
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	user, err := s.createLocalUser(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.assignRole(ctx, user, domain.RoleUser); err != nil {
		return nil, s.discardUser(ctx, user, err)
	}
	result, err := s.openSession(ctx, user)
	if err != nil {
		return nil, s.discardUser(ctx, user, err)
	}
	return result, nil
}

// discardUser removes an account whose setup failed after the row was
// inserted, so the username and email stay available. Roles and sessions
// go with it through the cascade.
func (s *AuthService) discardUser(ctx context.Context, user *domain.User, cause error) error {
	if err := s.users.Delete(context.WithoutCancel(ctx), user.ID); err != nil && !isNotFound(err) {
		return errors.Join(cause, fmt.Errorf("discard user %s: %w", user.ID, err))
	}
	return cause
}

// CreateAdmin creates an account holding both roles, or promotes the
// existing account with the same username.
func (s *AuthService) CreateAdmin(ctx context.Context, in RegisterInput) (*domain.User, error) {
	existing, err := s.users.FindByUsername(ctx, strings.TrimSpace(in.Username))
	switch {
	case err == nil:
		if err := s.assignRole(ctx, existing, domain.RoleAdmin); err != nil {
			return nil, err
		}
		return existing, nil
	case !isNotFound(err):
		return nil, err
	}

	user, err := s.createLocalUser(ctx, in)
	if err != nil {
		return nil, err
	}
	for _, role := range []string{domain.RoleUser, domain.RoleAdmin} {
		if err := s.assignRole(ctx, user, role); err != nil {
			return nil, s.discardUser(ctx, user, err)
		}
	}
	return user, nil
}

func (s *AuthService) createLocalUser(ctx context.Context, in RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if in.Password != in.Password2 {
		return nil, newValidationError("password", "password fields didn't match")
	}
	if username == "" {
		return nil, newValidationError("username", "username is required")
	}
	if email == "" {
		return nil, newValidationError("email", "email is required")
	}
	if err := util.ValidatePassword(in.Password, username); err != nil {
		return nil, newValidationError("password", err.Error())
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		metrics.ObserveConflict("user", "precheck")
		return nil, newValidationError("username", "a user with that username already exists")
	} else if !isNotFound(err) {
		return nil, err
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		metrics.ObserveConflict("user", "precheck")
		return nil, newValidationError("email", "a user with that email already exists")
	} else if !isNotFound(err) {
		return nil, err
	}

	hash, salt, err := util.DerivePassword(in.Password)
	if err != nil {
		return nil, err
	}
	user, err := s.users.Create(ctx, domain.NewUser{
		Username:     username,
		Email:        email,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		PasswordHash: hash,
		PasswordSalt: salt,
	})
	if err != nil {
		if isUniqueViolation(err) {
			metrics.ObserveConflict("user", "constraint")
			switch violatedConstraint(err) {
			case constraintEmail:
				return nil, newValidationError("email", "a user with that email already exists")
			default:
				return nil, newValidationError("username", "a user with that username already exists")
			}
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !util.VerifyPassword(password, user.PasswordSalt, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if err := s.loadRoles(ctx, user); err != nil {
		return nil, err
	}
	return s.openSession(ctx, user)
}

func (s *AuthService) LoginWithGoogle(ctx context.Context, idToken string) (*AuthResult, error) {
	if !s.GoogleEnabled() {
		return nil, ErrGoogleDisabled
	}
	payload, err := s.validateGoogle(ctx, strings.TrimSpace(idToken), s.googleAudience)
	if err != nil {
		return nil, ErrInvalidGoogleToken
	}
	email, _ := payload.Claims["email"].(string)
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrInvalidGoogleToken
	}
	given, _ := payload.Claims["given_name"].(string)
	family, _ := payload.Claims["family_name"].(string)

	user, err := s.users.UpsertGoogleUser(ctx, email, given, family)
	if err != nil {
		return nil, err
	}
	if err := s.assignRole(ctx, user, domain.RoleUser); err != nil {
		return nil, err
	}
	return s.openSession(ctx, user)
}

// Refresh issues a new access token for the session named by a refresh token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := s.jwt.Parse(strings.TrimSpace(refreshToken), util.TokenRefresh)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.activeSessionUser(ctx, claims)
	if err != nil {
		return nil, err
	}
	access, expiresAt, err := s.jwt.Generate(user.ID, user.Username, claims.SessionID, util.TokenAccess)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Access: access, AccessExpiresAt: expiresAt}, nil
}

// Authenticate resolves an access token to its user with roles loaded. The
// session the token is bound to must still be active.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*domain.User, string, error) {
	claims, err := s.jwt.Parse(accessToken, util.TokenAccess)
	if err != nil {
		return nil, "", ErrInvalidToken
	}
	user, err := s.activeSessionUser(ctx, claims)
	if err != nil {
		return nil, "", err
	}
	return user, claims.SessionID, nil
}

func (s *AuthService) activeSessionUser(ctx context.Context, claims *util.Claims) (*domain.User, error) {
	session, err := s.sessions.FindActiveSession(ctx, claims.SessionID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrSessionInactive
		}
		return nil, err
	}
	if !session.IsActive || session.UserID != claims.UserID || !session.ExpiresAt.After(s.now()) {
		return nil, ErrSessionInactive
	}
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrSessionInactive
		}
		return nil, err
	}
	if err := s.loadRoles(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrSessionInactive
	}
	return s.sessions.DeactivateSession(ctx, sessionID)
}

func (s *AuthService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		if isNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *AuthService) IsAdmin(ctx context.Context, user *domain.User) (bool, error) {
	if user == nil {
		return false, nil
	}
	if user.Roles == nil {
		if err := s.loadRoles(ctx, user); err != nil {
			return false, err
		}
	}
	return user.HasRole(domain.RoleAdmin), nil
}

func (s *AuthService) openSession(ctx context.Context, user *domain.User) (*AuthResult, error) {
	sessionID := uuid.NewString()
	if _, err := s.sessions.CreateSession(ctx, user.ID, sessionID, s.now().Add(s.jwt.RefreshTTL())); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	access, accessExp, err := s.jwt.Generate(user.ID, user.Username, sessionID, util.TokenAccess)
	if err != nil {
		return nil, err
	}
	refresh, _, err := s.jwt.Generate(user.ID, user.Username, sessionID, util.TokenRefresh)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Access: access, AccessExpiresAt: accessExp, Refresh: refresh}, nil
}

func (s *AuthService) assignRole(ctx context.Context, user *domain.User, name string) error {
	role, err := s.roles.GetOrCreateRole(ctx, name, roleDescriptions[name])
	if err != nil {
		return fmt.Errorf("ensure role %s: %w", name, err)
	}
	if err := s.roles.AssignUserRole(ctx, user.ID, role.ID); err != nil {
		return fmt.Errorf("assign role %s: %w", name, err)
	}
	return s.loadRoles(ctx, user)
}

func (s *AuthService) loadRoles(ctx context.Context, user *domain.User) error {
	roles, err := s.roles.ListByUser(ctx, user.ID)
	if err != nil {
		return err
	}
	if roles == nil {
		roles = []domain.Role{}
	}
	user.Roles = roles
	return nil
}

var roleDescriptions = map[string]string{
	domain.RoleUser:  "Registered guest",
	domain.RoleAdmin: "Hotel catalogue administrator",
}
