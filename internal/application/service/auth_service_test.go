package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kmutua/dukabook-api/internal/domain/entity"
	"github.com/kmutua/dukabook-api/internal/domain/enum"
	"github.com/kmutua/dukabook-api/pkg/apperror"
	"github.com/kmutua/dukabook-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

type fakeShopRepo struct {
	shops map[uuid.UUID]*entity.Shop
}

func newFakeShopRepo(shops ...*entity.Shop) *fakeShopRepo {
	r := &fakeShopRepo{shops: make(map[uuid.UUID]*entity.Shop)}
	for _, s := range shops {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		r.shops[s.ID] = s
	}
	return r
}

func (r *fakeShopRepo) Create(_ context.Context, shop *entity.Shop) error {
	if shop.ID == uuid.Nil {
		shop.ID = uuid.New()
	}
	r.shops[shop.ID] = shop
	return nil
}

func (r *fakeShopRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Shop, error) {
	s, ok := r.shops[id]
	if !ok {
		return nil, nil
	}
	return s, nil
}

func (r *fakeShopRepo) GetBySlug(_ context.Context, slug string) (*entity.Shop, error) {
	for _, s := range r.shops {
		if s.Slug == slug {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeShopRepo) List(_ context.Context) ([]*entity.Shop, error) {
	var out []*entity.Shop
	for _, s := range r.shops {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeShopRepo) Update(_ context.Context, shop *entity.Shop) error {
	r.shops[shop.ID] = shop
	return nil
}

func (r *fakeShopRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.shops, id)
	return nil
}

func authFixture(t *testing.T) (*AuthService, *entity.Shop) {
	t.Helper()

	shop := &entity.Shop{Name: "Main Street Duka", Slug: "main-street-duka"}
	shopRepo := newFakeShopRepo(shop)
	jwtManager := utils.NewJWTManager("test-secret", 15*time.Minute, 24*time.Hour)
	return NewAuthService(newFakeUserRepo(), shopRepo, jwtManager), shop
}

func registerInput(shopID *uuid.UUID, role enum.Role) *RegisterInput {
	return &RegisterInput{
		FirstName: "Jane",
		LastName:  "Mwangi",
		Email:     "jane@example.com",
		Password:  "hunter2hunter2",
		ShopID:    shopID,
		Role:      role,
	}
}

func TestAuthService_Register(t *testing.T) {
	t.Run("scoped user is bound to a shop", func(t *testing.T) {
		svc, shop := authFixture(t)

		result, err := svc.Register(context.Background(), registerInput(&shop.ID, enum.RoleScoped))
		require.NoError(t, err)
		require.NotNil(t, result.User.ShopID)
		assert.Equal(t, shop.ID, *result.User.ShopID)
		assert.NotEmpty(t, result.Tokens.AccessToken)
		assert.NotEmpty(t, result.Tokens.RefreshToken)
	})

	t.Run("scoped user without a shop is rejected", func(t *testing.T) {
		svc, _ := authFixture(t)

		_, err := svc.Register(context.Background(), registerInput(nil, enum.RoleScoped))
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	})

	t.Run("scoped user with an unknown shop is rejected", func(t *testing.T) {
		svc, _ := authFixture(t)

		unknown := uuid.New()
		_, err := svc.Register(context.Background(), registerInput(&unknown, enum.RoleScoped))
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	})

	t.Run("privileged user has no home shop", func(t *testing.T) {
		svc, shop := authFixture(t)

		_, err := svc.Register(context.Background(), registerInput(&shop.ID, enum.RolePrivileged))
		require.Error(t, err)

		result, err := svc.Register(context.Background(), registerInput(nil, enum.RolePrivileged))
		require.NoError(t, err)
		assert.Nil(t, result.User.ShopID)
		assert.True(t, result.User.IsPrivileged())
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		svc, shop := authFixture(t)

		_, err := svc.Register(context.Background(), registerInput(&shop.ID, enum.RoleScoped))
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), registerInput(&shop.ID, enum.RoleScoped))
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindConflict))
	})
}

func TestAuthService_Login(t *testing.T) {
	svc, shop := authFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput(&shop.ID, enum.RoleScoped))
	require.NoError(t, err)

	result, err := svc.Login(ctx, "jane@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Tokens.AccessToken)

	_, err = svc.Login(ctx, "jane@example.com", "wrong")
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestAuthService_Refresh(t *testing.T) {
	svc, shop := authFixture(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, registerInput(&shop.ID, enum.RoleScoped))
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, registered.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, refreshed.User.ID)

	_, err = svc.Refresh(ctx, "not-a-token")
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}
