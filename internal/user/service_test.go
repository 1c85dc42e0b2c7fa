package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	users  map[string]*User
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[string]*User{}}
}

func (f *fakeRepo) Create(_ context.Context, u *User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return ErrEmailAlreadyUsed
		}
	}
	f.nextID++
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	copied := *u
	f.users[u.ID] = &copied
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*User, error) {
	if u, ok := f.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, ErrNotFound
}

func (f *fakeRepo) List(_ context.Context, filter Filter) ([]*User, int, error) {
	var out []*User
	for _, u := range f.users {
		copied := *u
		out = append(out, &copied)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Update(_ context.Context, u *User) error {
	for id, existing := range f.users {
		if id != u.ID && existing.Email == u.Email {
			return ErrEmailAlreadyUsed
		}
	}
	copied := *u
	f.users[u.ID] = &copied
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	delete(f.users, id)
	return nil
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes email", func(t *testing.T) {
		s := NewService(newFakeRepo())

		u, err := s.Create(ctx, CreateRequest{Name: " Alice ", Email: " Alice@Example.COM "})
		require.NoError(t, err)
		assert.Equal(t, "Alice", u.Name)
		assert.Equal(t, "alice@example.com", u.Email)
		assert.NotEmpty(t, u.ID)
	})

	t.Run("validates fields", func(t *testing.T) {
		s := NewService(newFakeRepo())

		_, err := s.Create(ctx, CreateRequest{Email: "a@b.com"})
		assert.ErrorIs(t, err, ErrNameRequired)

		_, err = s.Create(ctx, CreateRequest{Name: "Alice"})
		assert.ErrorIs(t, err, ErrEmailRequired)

		_, err = s.Create(ctx, CreateRequest{Name: "Alice", Email: "not-an-email"})
		assert.ErrorIs(t, err, ErrEmailInvalid)
	})

	t.Run("duplicate email", func(t *testing.T) {
		s := NewService(newFakeRepo())

		_, err := s.Create(ctx, CreateRequest{Name: "Alice", Email: "a@b.com"})
		require.NoError(t, err)

		_, err = s.Create(ctx, CreateRequest{Name: "Bob", Email: "A@B.com"})
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	newUser := func(t *testing.T, s Service) *User {
		t.Helper()
		u, err := s.Create(ctx, CreateRequest{Name: "Alice", Email: "a@b.com"})
		require.NoError(t, err)
		return u
	}

	t.Run("updates provided fields only", func(t *testing.T) {
		s := NewService(newFakeRepo())
		u := newUser(t, s)

		name := "Alicia"
		got, err := s.Update(ctx, u.ID, UpdateRequest{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Alicia", got.Name)
		assert.Equal(t, "a@b.com", got.Email)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		s := NewService(newFakeRepo())
		u := newUser(t, s)

		name := " "
		_, err := s.Update(ctx, u.ID, UpdateRequest{Name: &name})
		assert.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("rejects taken email", func(t *testing.T) {
		repo := newFakeRepo()
		s := NewService(repo)
		u := newUser(t, s)
		_, err := s.Create(ctx, CreateRequest{Name: "Bob", Email: "b@b.com"})
		require.NoError(t, err)

		email := "b@b.com"
		_, err = s.Update(ctx, u.ID, UpdateRequest{Email: &email})
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})

	t.Run("unknown user", func(t *testing.T) {
		s := NewService(newFakeRepo())

		name := "x"
		_, err := s.Update(ctx, "nope", UpdateRequest{Name: &name})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := NewService(newFakeRepo())

	u, err := s.Create(ctx, CreateRequest{Name: "Alice", Email: "a@b.com"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, u.ID))
	assert.ErrorIs(t, s.Delete(ctx, u.ID), ErrNotFound)
}
