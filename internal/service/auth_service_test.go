package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"google.golang.org/api/idtoken"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/domain"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/util"
)

type fakeUserRepo struct {
	byUsername map[string]*domain.User
	byEmail    map[string]*domain.User
	byID       map[uuid.UUID]*domain.User

	created   []domain.NewUser
	createErr error

	upsertEmail string
	upsertFirst string
	upsertLast  string

	findErr   error
	deleted   []uuid.UUID
	deleteErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byUsername: map[string]*domain.User{},
		byEmail:    map[string]*domain.User{},
		byID:       map[uuid.UUID]*domain.User{},
	}
}

func (f *fakeUserRepo) put(u *domain.User) *domain.User {
	f.byUsername[u.Username] = u
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	return u
}

func (f *fakeUserRepo) Create(ctx context.Context, in domain.NewUser) (*domain.User, error) {
	f.created = append(f.created, in)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.put(&domain.User{
		ID:           uuid.New(),
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: in.PasswordHash,
		PasswordSalt: in.PasswordSalt,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}), nil
}

func (f *fakeUserRepo) UpsertGoogleUser(ctx context.Context, email, firstName, lastName string) (*domain.User, error) {
	f.upsertEmail, f.upsertFirst, f.upsertLast = email, firstName, lastName
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return f.put(&domain.User{ID: uuid.New(), Username: email, Email: email, FirstName: firstName, LastName: lastName}), nil
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if u, ok := f.byUsername[username]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if u, ok := f.byEmail[email]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if u, ok := f.byID[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	u, ok := f.byID[id]
	if !ok {
		return sql.ErrNoRows
	}
	delete(f.byID, id)
	delete(f.byUsername, u.Username)
	delete(f.byEmail, u.Email)
	return nil
}

type fakeRoleRepo struct {
	roles    map[string]domain.Role
	assigned map[uuid.UUID][]domain.Role
	roleErr  error
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: map[string]domain.Role{}, assigned: map[uuid.UUID][]domain.Role{}}
}

func (f *fakeRoleRepo) GetOrCreateRole(ctx context.Context, name, description string) (*domain.Role, error) {
	if f.roleErr != nil {
		return nil, f.roleErr
	}
	role, ok := f.roles[name]
	if !ok {
		role = domain.Role{ID: uuid.New(), Name: name}
		f.roles[name] = role
	}
	return &role, nil
}

func (f *fakeRoleRepo) AssignUserRole(ctx context.Context, userID, roleID uuid.UUID) error {
	for _, r := range f.assigned[userID] {
		if r.ID == roleID {
			return nil
		}
	}
	for _, r := range f.roles {
		if r.ID == roleID {
			f.assigned[userID] = append(f.assigned[userID], r)
		}
	}
	return nil
}

func (f *fakeRoleRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Role, error) {
	return append([]domain.Role(nil), f.assigned[userID]...), nil
}

type fakeSessionRepo struct {
	sessions    map[string]*domain.Session
	createErr   error
	deactivated []string
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*domain.Session{}}
}

func (f *fakeSessionRepo) CreateSession(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) (*domain.Session, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	s := &domain.Session{ID: int64(len(f.sessions) + 1), UserID: userID, Token: token, ExpiresAt: expiresAt, IsActive: true}
	f.sessions[token] = s
	return s, nil
}

func (f *fakeSessionRepo) DeactivateSession(ctx context.Context, token string) error {
	f.deactivated = append(f.deactivated, token)
	if s, ok := f.sessions[token]; ok {
		s.IsActive = false
	}
	return nil
}

func (f *fakeSessionRepo) FindActiveSession(ctx context.Context, token string) (*domain.Session, error) {
	s, ok := f.sessions[token]
	if !ok || !s.IsActive {
		return nil, sql.ErrNoRows
	}
	clone := *s
	return &clone, nil
}

type authFixture struct {
	svc      *AuthService
	users    *fakeUserRepo
	roles    *fakeRoleRepo
	sessions *fakeSessionRepo
}

func newAuthFixture(googleAudience string) *authFixture {
	f := &authFixture{users: newFakeUserRepo(), roles: newFakeRoleRepo(), sessions: newFakeSessionRepo()}
	jwtManager := util.NewJWTManager("test-secret", 15*time.Minute, 24*time.Hour)
	f.svc = NewAuthService(f.users, f.roles, f.sessions, jwtManager, googleAudience)
	return f
}

func validRegistration() RegisterInput {
	return RegisterInput{
		Username:  "alice",
		Email:     "Alice@Example.com ",
		Password:  "Sup3rSecretPass",
		Password2: "Sup3rSecretPass",
		FirstName: "Alice",
		LastName:  "Smith",
	}
}

func assertFieldError(t *testing.T, err error, field string) {
	t.Helper()
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError on %s, got %v", field, err)
	}
	if vErr.Field != field {
		t.Fatalf("expected field %s, got %s (%s)", field, vErr.Field, vErr.Message)
	}
}

func TestRegisterSuccess(t *testing.T) {
	f := newAuthFixture("")

	result, err := f.svc.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(f.users.created) != 1 {
		t.Fatalf("expected one user to be created, got %d", len(f.users.created))
	}
	created := f.users.created[0]
	if created.Email != "alice@example.com" {
		t.Fatalf("email should be normalized, got %q", created.Email)
	}
	if len(created.PasswordHash) == 0 || len(created.PasswordSalt) == 0 {
		t.Fatal("expected password hash and salt to be set")
	}
	if !result.User.HasRole(domain.RoleUser) {
		t.Fatal("expected registered user to hold the user role")
	}
	if result.User.HasRole(domain.RoleAdmin) {
		t.Fatal("registered user must not be an admin")
	}
	if result.Access == "" || result.Refresh == "" {
		t.Fatal("expected both tokens in result")
	}
	if len(f.sessions.sessions) != 1 {
		t.Fatalf("expected one session, got %d", len(f.sessions.sessions))
	}
}

func TestRegisterPasswordMismatchCheckedFirst(t *testing.T) {
	f := newAuthFixture("")
	f.users.findErr = errors.New("store must not be called")

	in := validRegistration()
	in.Password2 = "something-else"
	_, err := f.svc.Register(context.Background(), in)
	assertFieldError(t, err, "password")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(f.users.created) != 0 {
		t.Fatal("expected no user to be created")
	}
}

func TestRegisterWeakPassword(t *testing.T) {
	cases := map[string]string{
		"short":    "abc12",
		"numeric":  "1234567890",
		"common":   "password123",
		"username": "alice-rocks-99",
	}
	for name, password := range cases {
		t.Run(name, func(t *testing.T) {
			f := newAuthFixture("")
			in := validRegistration()
			in.Password, in.Password2 = password, password
			_, err := f.svc.Register(context.Background(), in)
			assertFieldError(t, err, "password")
			if len(f.users.created) != 0 {
				t.Fatal("expected no user to be created")
			}
		})
	}
}

func TestRegisterDuplicatePrecheck(t *testing.T) {
	t.Run("username", func(t *testing.T) {
		f := newAuthFixture("")
		f.users.put(&domain.User{ID: uuid.New(), Username: "alice", Email: "other@example.com"})
		_, err := f.svc.Register(context.Background(), validRegistration())
		assertFieldError(t, err, "username")
	})

	t.Run("email", func(t *testing.T) {
		f := newAuthFixture("")
		f.users.put(&domain.User{ID: uuid.New(), Username: "someone", Email: "alice@example.com"})
		_, err := f.svc.Register(context.Background(), validRegistration())
		assertFieldError(t, err, "email")
	})
}

func TestRegisterConstraintViolationMapsToField(t *testing.T) {
	cases := map[string]string{
		constraintUsername: "username",
		constraintEmail:    "email",
	}
	for constraint, field := range cases {
		t.Run(field, func(t *testing.T) {
			f := newAuthFixture("")
			f.users.createErr = &pgconn.PgError{Code: "23505", ConstraintName: constraint}
			_, err := f.svc.Register(context.Background(), validRegistration())
			assertFieldError(t, err, field)
			if len(f.sessions.sessions) != 0 {
				t.Fatal("expected no session to be created on error")
			}
		})
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	t.Run("user not found", func(t *testing.T) {
		f := newAuthFixture("")
		_, err := f.svc.Login(context.Background(), "nobody", "password")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("password mismatch", func(t *testing.T) {
		f := newAuthFixture("")
		hash, salt, _ := util.DerivePassword("different")
		f.users.put(&domain.User{ID: uuid.New(), Username: "bob", Email: "bob@example.com", PasswordHash: hash, PasswordSalt: salt})

		_, err := f.svc.Login(context.Background(), "bob", "password")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
		if err.Error() != "invalid username or password" {
			t.Fatalf("unexpected message %q", err.Error())
		}
	})
}

func TestLoginAuthenticateLogout(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture("")
	if _, err := f.svc.Register(ctx, validRegistration()); err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := f.svc.Login(ctx, "alice", "Sup3rSecretPass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	user, sessionID, err := f.svc.Authenticate(ctx, result.Access)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.Username != "alice" || !user.HasRole(domain.RoleUser) {
		t.Fatalf("unexpected user %+v", user)
	}

	if _, _, err := f.svc.Authenticate(ctx, result.Refresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("refresh token must not authenticate, got %v", err)
	}

	if err := f.svc.Logout(ctx, sessionID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, _, err := f.svc.Authenticate(ctx, result.Access); !errors.Is(err, ErrSessionInactive) {
		t.Fatalf("expected ErrSessionInactive after logout, got %v", err)
	}
	if _, err := f.svc.Refresh(ctx, result.Refresh); !errors.Is(err, ErrSessionInactive) {
		t.Fatalf("expected refresh to fail after logout, got %v", err)
	}
}

func TestRefreshIssuesAccessToken(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture("")
	registered, err := f.svc.Register(ctx, validRegistration())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	refreshed, err := f.svc.Refresh(ctx, registered.Refresh)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.Access == "" || refreshed.Refresh != "" {
		t.Fatalf("expected only an access token, got %+v", refreshed)
	}
	if _, _, err := f.svc.Authenticate(ctx, refreshed.Access); err != nil {
		t.Fatalf("refreshed access token rejected: %v", err)
	}

	if _, err := f.svc.Refresh(ctx, registered.Access); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("access token must not refresh, got %v", err)
	}
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture("")
	result, err := f.svc.Register(ctx, validRegistration())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := f.svc.DeleteAccount(ctx, result.User.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := f.svc.DeleteAccount(ctx, result.User.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, _, err := f.svc.Authenticate(ctx, result.Access); !errors.Is(err, ErrSessionInactive) {
		t.Fatalf("deleted user must not authenticate, got %v", err)
	}
}

func TestCreateAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("new account", func(t *testing.T) {
		f := newAuthFixture("")
		user, err := f.svc.CreateAdmin(ctx, validRegistration())
		if err != nil {
			t.Fatalf("create admin: %v", err)
		}
		isAdmin, err := f.svc.IsAdmin(ctx, user)
		if err != nil || !isAdmin {
			t.Fatalf("expected admin, got %v (%v)", isAdmin, err)
		}
	})

	t.Run("promotes existing account", func(t *testing.T) {
		f := newAuthFixture("")
		registered, err := f.svc.Register(ctx, validRegistration())
		if err != nil {
			t.Fatalf("register: %v", err)
		}
		if _, err := f.svc.CreateAdmin(ctx, RegisterInput{Username: "alice"}); err != nil {
			t.Fatalf("promote: %v", err)
		}
		if len(f.users.created) != 1 {
			t.Fatalf("expected no additional user, got %d", len(f.users.created))
		}
		user, _, err := f.svc.Authenticate(ctx, registered.Access)
		if err != nil {
			t.Fatalf("authenticate: %v", err)
		}
		if !user.HasRole(domain.RoleAdmin) || !user.HasRole(domain.RoleUser) {
			t.Fatalf("expected both roles, got %+v", user.Roles)
		}
	})
}

func TestLoginWithGoogle(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled without audience", func(t *testing.T) {
		f := newAuthFixture("")
		if _, err := f.svc.LoginWithGoogle(ctx, "token"); !errors.Is(err, ErrGoogleDisabled) {
			t.Fatalf("expected ErrGoogleDisabled, got %v", err)
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		f := newAuthFixture("client-id")
		f.svc.validateGoogle = func(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
			return nil, errors.New("bad signature")
		}
		if _, err := f.svc.LoginWithGoogle(ctx, "token"); !errors.Is(err, ErrInvalidGoogleToken) {
			t.Fatalf("expected ErrInvalidGoogleToken, got %v", err)
		}
	})

	t.Run("upserts by email", func(t *testing.T) {
		f := newAuthFixture("client-id")
		var gotAudience string
		f.svc.validateGoogle = func(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
			gotAudience = audience
			return &idtoken.Payload{Claims: map[string]interface{}{
				"email":       "Guest@Example.com",
				"given_name":  "Gina",
				"family_name": "Guest",
			}}, nil
		}
		result, err := f.svc.LoginWithGoogle(ctx, "token")
		if err != nil {
			t.Fatalf("google login: %v", err)
		}
		if gotAudience != "client-id" {
			t.Fatalf("expected audience client-id, got %q", gotAudience)
		}
		if f.users.upsertEmail != "guest@example.com" || f.users.upsertFirst != "Gina" || f.users.upsertLast != "Guest" {
			t.Fatalf("unexpected upsert input %q %q %q", f.users.upsertEmail, f.users.upsertFirst, f.users.upsertLast)
		}
		if !result.User.HasRole(domain.RoleUser) || result.Access == "" {
			t.Fatalf("unexpected result %+v", result)
		}
	})
}

func TestRegisterDiscardsUserWhenRoleAssignmentFails(t *testing.T) {
	f := newAuthFixture("")
	f.roles.roleErr = errors.New("role store down")

	if _, err := f.svc.Register(context.Background(), validRegistration()); err == nil {
		t.Fatal("expected role failure to surface")
	}
	if len(f.users.deleted) != 1 {
		t.Fatalf("expected the half-created user to be deleted, got %d deletes", len(f.users.deleted))
	}

	f.roles.roleErr = nil
	result, err := f.svc.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("expected retry with the same details to succeed, got %v", err)
	}
	if result.User.Username != "alice" {
		t.Fatalf("unexpected user %q", result.User.Username)
	}
}

func TestRegisterDiscardsUserWhenSessionFails(t *testing.T) {
	f := newAuthFixture("")
	f.sessions.createErr = errors.New("session store down")

	if _, err := f.svc.Register(context.Background(), validRegistration()); err == nil {
		t.Fatal("expected session failure to surface")
	}
	if _, err := f.users.FindByUsername(context.Background(), "alice"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected user to be gone, got %v", err)
	}

	f.sessions.createErr = nil
	if _, err := f.svc.Register(context.Background(), validRegistration()); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
}

func TestRegisterReportsFailedCleanup(t *testing.T) {
	f := newAuthFixture("")
	roleErr := errors.New("role store down")
	f.roles.roleErr = roleErr
	f.users.deleteErr = errors.New("delete failed")

	_, err := f.svc.Register(context.Background(), validRegistration())
	if !errors.Is(err, roleErr) {
		t.Fatalf("expected role error to be kept, got %v", err)
	}
	if !errors.Is(err, f.users.deleteErr) {
		t.Fatalf("expected cleanup error to be reported, got %v", err)
	}
}

func TestCreateAdminDiscardsUserWhenRoleAssignmentFails(t *testing.T) {
	f := newAuthFixture("")
	f.roles.roleErr = errors.New("role store down")

	if _, err := f.svc.CreateAdmin(context.Background(), validRegistration()); err == nil {
		t.Fatal("expected role failure to surface")
	}
	if len(f.users.byID) != 0 {
		t.Fatalf("expected no users left, got %d", len(f.users.byID))
	}
}
