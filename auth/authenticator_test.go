package auth_test

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/difurigo/avant-api/auth"
	"github.com/difurigo/avant-api/model"
)

// MockUserStore implements auth.UserStore for testing
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*model.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserStore) Create(ctx context.Context, user *model.User, criteria ...repository.InsertCriteria) (*model.User, error) {
	args := m.Called(ctx, user)
	if created, ok := args.Get(0).(*model.User); ok {
		return created, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockTeamStore implements auth.TeamStore for testing
type MockTeamStore struct {
	mock.Mock
}

func (m *MockTeamStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockTokenIssuer implements auth.TokenIssuer for testing
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(identity auth.Identity) (string, error) {
	args := m.Called(identity)
	return args.String(0), args.Error(1)
}

func newAuthenticator(users *MockUserStore, teams *MockTeamStore, tokens *MockTokenIssuer) *auth.Authenticator {
	return auth.NewAuthenticator(users, teams, auth.SHA256Hasher{}, tokens)
}

func TestRegisterManager(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a manager with a hashed password", func(t *testing.T) {
		users := &MockUserStore{}
		teams := &MockTeamStore{}
		tokens := &MockTokenIssuer{}

		users.On("GetByEmail", ctx, "ana@example.com").
			Return(nil, auth.ErrIdentityNotFound).Once()

		created := &model.User{ID: uuid.New()}
		users.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
			return u.Email == "ana@example.com" &&
				u.Role == auth.RoleManager &&
				u.PasswordHash != "" &&
				u.PasswordHash != "s3cret!"
		})).Return(created, nil).Once()

		id, err := newAuthenticator(users, teams, tokens).
			RegisterManager(ctx, "Ana", "ana@example.com", "s3cret!")

		require.NoError(t, err)
		assert.Equal(t, created.ID, id)
		users.AssertExpectations(t)
	})

	t.Run("treats the repository miss sentinel as a fresh email", func(t *testing.T) {
		users := &MockUserStore{}

		users.On("GetByEmail", ctx, "ana@example.com").
			Return(nil, repository.ErrRecordNotFound).Once()

		created := &model.User{ID: uuid.New()}
		users.On("Create", ctx, mock.Anything).Return(created, nil).Once()

		id, err := newAuthenticator(users, &MockTeamStore{}, &MockTokenIssuer{}).
			RegisterManager(ctx, "Ana", "ana@example.com", "s3cret!")

		require.NoError(t, err)
		assert.Equal(t, created.ID, id)
		users.AssertExpectations(t)
	})

	t.Run("treats a rich not-found miss as a fresh email", func(t *testing.T) {
		users := &MockUserStore{}

		miss := goerrors.New("record not found", goerrors.CategoryNotFound).
			WithCode(goerrors.CodeNotFound)
		users.On("GetByEmail", ctx, "ana@example.com").
			Return(nil, miss).Once()

		created := &model.User{ID: uuid.New()}
		users.On("Create", ctx, mock.Anything).Return(created, nil).Once()

		_, err := newAuthenticator(users, &MockTeamStore{}, &MockTokenIssuer{}).
			RegisterManager(ctx, "Ana", "ana@example.com", "s3cret!")

		require.NoError(t, err)
		users.AssertExpectations(t)
	})

	t.Run("rejects a duplicate email at the pre-check", func(t *testing.T) {
		users := &MockUserStore{}

		users.On("GetByEmail", ctx, "ana@example.com").
			Return(&model.User{ID: uuid.New(), Email: "ana@example.com"}, nil).Once()

		_, err := newAuthenticator(users, &MockTeamStore{}, &MockTokenIssuer{}).
			RegisterManager(ctx, "Ana", "ana@example.com", "s3cret!")

		assert.ErrorIs(t, err, auth.ErrEmailTaken)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("maps a storage uniqueness violation to email taken", func(t *testing.T) {
		users := &MockUserStore{}

		users.On("GetByEmail", ctx, "ana@example.com").
			Return(nil, auth.ErrIdentityNotFound).Once()
		users.On("Create", ctx, mock.Anything).
			Return(nil, errors.New("UNIQUE constraint failed: users.email")).Once()

		_, err := newAuthenticator(users, &MockTeamStore{}, &MockTokenIssuer{}).
			RegisterManager(ctx, "Ana", "ana@example.com", "s3cret!")

		assert.ErrorIs(t, err, auth.ErrEmailTaken)
	})
}

func TestRegisterEmployee(t *testing.T) {
	ctx := context.Background()
	teamID := uuid.New()

	input := auth.RegisterEmployeeInput{
		Name:       "Bruno",
		Email:      "bruno@example.com",
		Password:   "s3cret!",
		TeamID:     teamID,
		CareerPlan: "Plano Inicial",
	}

	t.Run("creates an employee bound to an existing team", func(t *testing.T) {
		users := &MockUserStore{}
		teams := &MockTeamStore{}

		teams.On("Exists", ctx, teamID).Return(true, nil).Once()
		users.On("GetByEmail", ctx, "bruno@example.com").
			Return(nil, auth.ErrIdentityNotFound).Once()

		created := &model.User{ID: uuid.New()}
		users.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
			return u.Role == auth.RoleEmployee &&
				u.TeamID != nil && *u.TeamID == teamID &&
				u.CareerPlan == "Plano Inicial"
		})).Return(created, nil).Once()

		id, err := newAuthenticator(users, teams, &MockTokenIssuer{}).
			RegisterEmployee(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, created.ID, id)
		teams.AssertExpectations(t)
		users.AssertExpectations(t)
	})

	t.Run("rejects an unknown team before touching the user store", func(t *testing.T) {
		users := &MockUserStore{}
		teams := &MockTeamStore{}

		teams.On("Exists", ctx, teamID).Return(false, nil).Once()

		_, err := newAuthenticator(users, teams, &MockTokenIssuer{}).
			RegisterEmployee(ctx, input)

		assert.ErrorIs(t, err, auth.ErrUnknownTeam)
		users.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hasher := auth.SHA256Hasher{}

	digest, err := hasher.Hash("s3cret!")
	require.NoError(t, err)

	storedUser := &model.User{
		ID:           uuid.New(),
		Name:         "Ana",
		Email:        "ana@example.com",
		PasswordHash: digest,
		Role:         auth.RoleManager,
	}

	t.Run("issues a token for valid credentials", func(t *testing.T) {
		users := &MockUserStore{}
		tokens := &MockTokenIssuer{}

		users.On("GetByEmail", ctx, "ana@example.com").Return(storedUser, nil).Once()
		tokens.On("Issue", mock.MatchedBy(func(identity auth.Identity) bool {
			return identity.ID() == storedUser.ID.String() &&
				identity.Email() == storedUser.Email &&
				identity.Role() == auth.RoleManager
		})).Return("signed-token", nil).Once()

		result, err := newAuthenticator(users, &MockTeamStore{}, tokens).
			Login(ctx, "ana@example.com", "s3cret!")

		require.NoError(t, err)
		assert.Equal(t, "signed-token", result.Token)
		assert.Equal(t, "Ana", result.Name)
		assert.Equal(t, "ana@example.com", result.Email)
		assert.Equal(t, auth.RoleManager, result.Role)
		tokens.AssertExpectations(t)
	})

	t.Run("repository miss sentinel yields invalid credentials", func(t *testing.T) {
		users := &MockUserStore{}
		tokens := &MockTokenIssuer{}

		users.On("GetByEmail", ctx, "ghost@example.com").
			Return(nil, repository.ErrRecordNotFound).Once()

		_, err := newAuthenticator(users, &MockTeamStore{}, tokens).
			Login(ctx, "ghost@example.com", "s3cret!")

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		tokens.AssertNotCalled(t, "Issue", mock.Anything)
	})

	t.Run("unknown email and wrong password fail identically", func(t *testing.T) {
		users := &MockUserStore{}
		tokens := &MockTokenIssuer{}

		users.On("GetByEmail", ctx, "ghost@example.com").
			Return(nil, auth.ErrIdentityNotFound).Once()
		users.On("GetByEmail", ctx, "ana@example.com").
			Return(storedUser, nil).Once()

		auther := newAuthenticator(users, &MockTeamStore{}, tokens)

		_, unknownErr := auther.Login(ctx, "ghost@example.com", "s3cret!")
		_, wrongErr := auther.Login(ctx, "ana@example.com", "not-it")

		assert.ErrorIs(t, unknownErr, auth.ErrInvalidCredentials)
		assert.ErrorIs(t, wrongErr, auth.ErrInvalidCredentials)
		assert.Equal(t, unknownErr, wrongErr)
		tokens.AssertNotCalled(t, "Issue", mock.Anything)
	})
}
