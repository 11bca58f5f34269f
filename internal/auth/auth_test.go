package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/splitledger/internal/models"
)

type memoryUsers struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
}

func (m *memoryUsers) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byEmail[u.Email] = u
	return nil
}

func (m *memoryUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byEmail[email], nil
}

func (m *memoryUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func newAuthenticator() *PasswordAuthenticator {
	a := NewPasswordAuthenticator(&memoryUsers{byEmail: make(map[string]*models.User)})
	a.cost = bcrypt.MinCost
	return a
}

func TestPasswordAuthenticator(t *testing.T) {
	var _ Authenticator = (*PasswordAuthenticator)(nil)

	a := newAuthenticator()
	ctx := context.Background()

	user, err := a.Register(ctx, "  Alice@Example.com ", " Alice ", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "Alice", user.Name)
	assert.NotEqual(t, "correct horse", user.PasswordHash)

	_, err = a.Register(ctx, "alice@example.com", "Again", "another password")
	assert.ErrorIs(t, err, ErrEmailExists)

	_, err = a.Register(ctx, "bob@example.com", "Bob", "short")
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = a.Register(ctx, "bob@example.com", " ", "long enough")
	assert.ErrorIs(t, err, ErrInvalidProfile)

	got, err := a.Authenticate(ctx, "ALICE@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = a.Authenticate(ctx, "alice@example.com", "wrong password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = a.Authenticate(ctx, "nobody@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("this-is-a-very-long-jwt-secret-for-testing-32+", time.Hour)
	user := models.NewUser("alice@example.com", "Alice", "hash")

	token, err := m.Issue(user.Profile())
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, Issuer, claims.Issuer)
	assert.Equal(t, models.Profile{ID: user.ID, Name: "Alice", Email: "alice@example.com"}, claims.Profile())

	t.Run("no user ID", func(t *testing.T) {
		_, err := m.Issue(models.Profile{Name: "Nobody"})
		assert.Error(t, err)
	})

	t.Run("foreign issuer", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "someone-else",
				Subject:   user.ID,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		s, err := token.SignedString([]byte("this-is-a-very-long-jwt-secret-for-testing-32+"))
		require.NoError(t, err)
		_, err = m.Validate(s)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTManager("another-very-long-jwt-secret-for-testing-32+", time.Hour)
		_, err := other.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		expired := NewJWTManager("this-is-a-very-long-jwt-secret-for-testing-32+", -time.Minute)
		token, err := expired.Issue(user.Profile())
		require.NoError(t, err)
		_, err = m.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unsigned", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{RegisteredClaims: jwt.RegisteredClaims{Issuer: Issuer, Subject: user.ID}})
		s, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = m.Validate(s)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Validate("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
