package services

import (
	"context"
	"errors"
	"testing"

	"github.com/happythoughts/apiserver/internal/store"
	"github.com/happythoughts/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestUserService(repo *fakeUserRepo) *UserService {
	return NewUserService(repo, NewValidator(), nil)
}

func validRegistration() Registration {
	return Registration{Username: "sunny", Email: "Sunny@Example.com ", Password: "hunter22"}
}

func TestRegister(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := newTestUserService(repo)

	user, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	assert.False(t, user.ID.IsZero())
	assert.Equal(t, "sunny", user.Username)
	assert.Equal(t, "sunny@example.com", user.Email)
	assert.Len(t, user.AccessToken, 128)
	assert.NotEqual(t, "hunter22", user.PasswordHash)
	assert.True(t, VerifyPassword("hunter22", user.PasswordHash))
}

func TestRegisterDuplicates(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := newTestUserService(repo)
	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	sameEmail := Registration{Username: "other", Email: "sunny@example.com", Password: "pw"}
	_, err = svc.Register(context.Background(), sameEmail)
	assert.ErrorIs(t, err, store.ErrDuplicate)

	sameName := Registration{Username: "sunny", Email: "other@example.com", Password: "pw"}
	_, err = svc.Register(context.Background(), sameName)
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name  string
		reg   Registration
		field string
	}{
		{name: "bad email", reg: Registration{Username: "sunny", Email: "nope", Password: "pw"}, field: "email"},
		{name: "short username", reg: Registration{Username: "ab", Email: "a@b.co", Password: "pw"}, field: "username"},
		{name: "empty password", reg: Registration{Username: "sunny", Email: "a@b.co"}, field: "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeUserRepo{}
			_, err := newTestUserService(repo).Register(context.Background(), tt.reg)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.NotEmpty(t, verr.Fields)
			assert.Equal(t, tt.field, verr.Fields[0].Field)
			assert.Zero(t, repo.creates)
		})
	}
}

func TestRegisterRegeneratesTokenOnCollision(t *testing.T) {
	repo := &fakeUserRepo{createErrs: []error{store.ErrTokenCollision, nil}}

	user, err := newTestUserService(repo).Register(context.Background(), validRegistration())

	require.NoError(t, err)
	assert.Equal(t, 2, repo.creates)
	assert.NotEmpty(t, user.AccessToken)
}

func TestRegisterGivesUpAfterRepeatedCollisions(t *testing.T) {
	repo := &fakeUserRepo{createErrs: []error{store.ErrTokenCollision, store.ErrTokenCollision, store.ErrTokenCollision}}

	_, err := newTestUserService(repo).Register(context.Background(), validRegistration())

	assert.ErrorIs(t, err, store.ErrTokenCollision)
	assert.Equal(t, maxTokenAttempts, repo.creates)
}

func TestRegisterDoesNotRetryOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	repo := &fakeUserRepo{createErrs: []error{boom}}

	_, err := newTestUserService(repo).Register(context.Background(), validRegistration())

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, repo.creates)
}

func TestLogin(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := newTestUserService(repo)
	registered, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	user, err := svc.Login(context.Background(), " SUNNY@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, registered.AccessToken, user.AccessToken)

	_, err = svc.Login(context.Background(), "sunny@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate(t *testing.T) {
	repo := &fakeUserRepo{users: []types.User{{Username: "sunny", AccessToken: "abc123"}}}
	svc := newTestUserService(repo)

	user, err := svc.Authenticate(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "sunny", user.Username)

	_, err = svc.Authenticate(context.Background(), "ABC123")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestGetByID(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := newTestUserService(repo)
	registered, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	user, err := svc.GetByID(context.Background(), registered.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, registered.Username, user.Username)

	_, err = svc.GetByID(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, store.ErrNotFound)
}
