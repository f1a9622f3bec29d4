package auth

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"

	"github.com/difurigo/avant-api/model"
)

// UserStore is the slice of the user directory the flow needs.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User, criteria ...repository.InsertCriteria) (*model.User, error)
}

// TeamStore resolves team references during employee registration.
type TeamStore interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// RegisterEmployeeInput carries everything an employee registration needs.
type RegisterEmployeeInput struct {
	Name       string
	Email      string
	Password   string
	TeamID     uuid.UUID
	CareerPlan string
}

// LoginResult is what a successful login yields: the bearer token plus the
// display attributes the response envelope echoes back.
type LoginResult struct {
	Token string
	Name  string
	Email string
	Role  Role
}

// Authenticator orchestrates the hasher and the token issuer against the user
// directory. It holds no per-request state.
type Authenticator struct {
	users  UserStore
	teams  TeamStore
	hasher Hasher
	tokens TokenIssuer
	logger Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(users UserStore, teams TeamStore, hasher Hasher, tokens TokenIssuer) *Authenticator {
	return &Authenticator{
		users:  users,
		teams:  teams,
		hasher: hasher,
		tokens: tokens,
		logger: defLogger{},
	}
}

func (a *Authenticator) WithLogger(logger Logger) *Authenticator {
	a.logger = logger
	return a
}

// RegisterManager creates a manager identity. The email duplicate pre-check
// is a fast path; the storage uniqueness constraint is the source of truth
// for racing registrations.
func (a *Authenticator) RegisterManager(ctx context.Context, name, email, password string) (uuid.UUID, error) {
	return a.register(ctx, &model.User{
		Name:  name,
		Email: email,
		Role:  RoleManager,
	}, password)
}

// RegisterEmployee creates an employee identity bound to an existing team.
func (a *Authenticator) RegisterEmployee(ctx context.Context, in RegisterEmployeeInput) (uuid.UUID, error) {
	ok, err := a.teams.Exists(ctx, in.TeamID)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, errors.CategoryInternal, "failed to resolve team reference")
	}
	if !ok {
		return uuid.Nil, ErrUnknownTeam
	}

	teamID := in.TeamID
	return a.register(ctx, &model.User{
		Name:       in.Name,
		Email:      in.Email,
		Role:       RoleEmployee,
		CareerPlan: in.CareerPlan,
		TeamID:     &teamID,
	}, in.Password)
}

func (a *Authenticator) register(ctx context.Context, user *model.User, password string) (uuid.UUID, error) {
	existing, err := a.users.GetByEmail(ctx, user.Email)
	if err != nil && !isMissingIdentity(err) {
		return uuid.Nil, errors.Wrap(err, errors.CategoryInternal, "failed to check for existing email")
	}
	if existing != nil {
		return uuid.Nil, ErrEmailTaken
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
	}
	user.PasswordHash = hash

	created, err := a.users.Create(ctx, user)
	if err != nil {
		if IsUniqueViolation(err) {
			// the pre-check raced a concurrent registration
			return uuid.Nil, ErrEmailTaken
		}
		return uuid.Nil, errors.Wrap(err, errors.CategoryInternal, "failed to create identity")
	}

	a.logger.Info("registered identity", "id", created.ID.String(), "role", created.Role)

	return created.ID, nil
}

// Login verifies the credentials and issues a token. An unknown email and a
// wrong password are indistinguishable to the caller.
func (a *Authenticator) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if isMissingIdentity(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve identity during login")
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := a.tokens.Issue(userIdentity{user})
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to issue token")
	}

	return &LoginResult{
		Token: token,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}, nil
}

// isMissingIdentity accepts both miss shapes a UserStore can produce: the
// repository sentinel and the rich not_found category.
func isMissingIdentity(err error) bool {
	return repository.IsRecordNotFound(err) || errors.IsNotFound(err)
}

type userIdentity struct {
	user *model.User
}

func (u userIdentity) ID() string    { return u.user.ID.String() }
func (u userIdentity) Name() string  { return u.user.Name }
func (u userIdentity) Email() string { return u.user.Email }
func (u userIdentity) Role() string  { return u.user.Role }

var _ Identity = userIdentity{}
