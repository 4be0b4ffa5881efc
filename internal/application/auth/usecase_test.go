package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/farmacia-pos/internal/application/auth"
	"github.com/jhoicas/farmacia-pos/internal/application/dto"
	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	pkgjwt "github.com/jhoicas/farmacia-pos/pkg/jwt"
)

type fakeUserRepo struct {
	users map[string]*entity.User // por username
}

func (f *fakeUserRepo) Create(*entity.User) error { return nil }

func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByUsername(username string) (*entity.User, error) {
	return f.users[username], nil
}

func (f *fakeUserRepo) GetByEmail(string) (*entity.User, error)     { return nil, nil }
func (f *fakeUserRepo) List(int, int) ([]*entity.User, error)       { return nil, nil }
func (f *fakeUserRepo) Update(*entity.User) error                   { return nil }
func (f *fakeUserRepo) Delete(string) error                         { return nil }

func newTestUser(t *testing.T, password string, active bool) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.User{
		ID:           "u1",
		Username:     "ana",
		Email:        "ana@farmacia.local",
		PasswordHash: string(hash),
		Role:         entity.RoleSeller,
		FullName:     "Ana Pérez",
		Active:       active,
		CreatedAt:    time.Now().UTC(),
	}
}

func newAuthUC(repo *fakeUserRepo) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 30,
		Issuer:     "farmacia-pos-test",
	})
}

func TestLogin_CredencialesValidas(t *testing.T) {
	user := newTestUser(t, "secreto123", true)
	uc := newAuthUC(&fakeUserRepo{users: map[string]*entity.User{"ana": user}})

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "ana", resp.User.Username)
	assert.NotEmpty(t, resp.User.ID)

	// El token debe llevar id, nombre completo y rol para el middleware.
	userID, name, role, err := pkgjwt.Parse("test-secret", resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, "Ana Pérez", name)
	assert.Equal(t, entity.RoleSeller, role)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	user := newTestUser(t, "secreto123", true)
	uc := newAuthUC(&fakeUserRepo{users: map[string]*entity.User{"ana": user}})

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := newAuthUC(&fakeUserRepo{users: map[string]*entity.User{}})

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "x"})
	// Mismo error que password incorrecta: no filtrar qué usuarios existen.
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	user := newTestUser(t, "secreto123", false)
	uc := newAuthUC(&fakeUserRepo{users: map[string]*entity.User{"ana": user}})

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_CamposVacios(t *testing.T) {
	uc := newAuthUC(&fakeUserRepo{users: map[string]*entity.User{}})

	_, err := uc.Login(context.Background(), dto.LoginRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMe_DevuelveUsuario(t *testing.T) {
	user := newTestUser(t, "secreto123", true)
	uc := newAuthUC(&fakeUserRepo{users: map[string]*entity.User{"ana": user}})

	resp, err := uc.Me(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "ana", resp.Username)
	assert.Equal(t, entity.RoleSeller, resp.Role)
}

func TestMe_NoExiste(t *testing.T) {
	uc := newAuthUC(&fakeUserRepo{users: map[string]*entity.User{}})

	_, err := uc.Me(context.Background(), "u-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
