package auth_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Distripos-api/internal/application/auth"
	"github.com/jhoicas/Distripos-api/internal/application/dto"
	"github.com/jhoicas/Distripos-api/internal/domain"
	"github.com/jhoicas/Distripos-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/Distripos-api/pkg/jwt"
)

const (
	testSecret = "secret-de-tests"
	testIssuer = "distripos-test"
)

type userRepoFake struct {
	users map[string]entity.User // por ID
}

func newUserRepoFake() *userRepoFake {
	return &userRepoFake{users: map[string]entity.User{}}
}

func (r *userRepoFake) Create(user *entity.User) error {
	r.users[user.ID] = *user
	return nil
}

func (r *userRepoFake) GetByID(id string) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *userRepoFake) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *userRepoFake) Update(user *entity.User) error {
	r.users[user.ID] = *user
	return nil
}

func (r *userRepoFake) List(limit, offset int) ([]*entity.User, error) {
	rows := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		u := u
		rows = append(rows, &u)
	}
	return rows, nil
}

func (r *userRepoFake) Delete(id string) error {
	delete(r.users, id)
	return nil
}

func newAuthFixture(t *testing.T) (*auth.UseCase, *userRepoFake) {
	t.Helper()
	repo := newUserRepoFake()
	return auth.NewUseCase(repo, testSecret, testIssuer, 60), repo
}

func register(t *testing.T, uc *auth.UseCase, email, role string) *dto.UserResponse {
	t.Helper()
	out, err := uc.Register(dto.RegisterRequest{
		Name:     "Ana Pérez",
		Email:    email,
		Password: "contraseña-segura",
		Role:     role,
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_NormalizaEmailYRolPorDefecto(t *testing.T) {
	uc, repo := newAuthFixture(t)

	out, err := uc.Register(dto.RegisterRequest{
		Name:     "Ana Pérez",
		Email:    "  Ana@Ejemplo.COM ",
		Password: "contraseña-segura",
	})
	require.NoError(t, err)

	assert.Equal(t, "ana@ejemplo.com", out.Email, "el email se normaliza a minúsculas")
	assert.Equal(t, entity.RoleVendedor, out.Role, "sin rol explícito queda vendedor")
	assert.Equal(t, "active", out.Status)

	stored, err := repo.GetByID(out.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "contraseña-segura", stored.PasswordHash, "la contraseña nunca se guarda en claro")
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _ := newAuthFixture(t)
	register(t, uc, "ana@ejemplo.com", "")

	_, err := uc.Register(dto.RegisterRequest{
		Name:     "Otra Ana",
		Email:    "ANA@ejemplo.com", // mismo email con otra capitalización
		Password: "otra-contraseña",
	})
	assert.True(t, errors.Is(err, domain.ErrEmailAlreadyExists))
}

func TestRegister_Validaciones(t *testing.T) {
	uc, _ := newAuthFixture(t)

	_, err := uc.Register(dto.RegisterRequest{Name: "Ana", Email: "a@b.com", Password: "corta"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "contraseña menor a 8 caracteres")

	_, err = uc.Register(dto.RegisterRequest{Name: "Ana", Email: "a@b.com", Password: "contraseña-segura", Role: "superusuario"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "rol fuera de la lista")
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_EmiteTokenConRol(t *testing.T) {
	uc, _ := newAuthFixture(t)
	registered := register(t, uc, "ana@ejemplo.com", entity.RoleAdmin)

	out, err := uc.Login(dto.LoginRequest{Email: "Ana@Ejemplo.com", Password: "contraseña-segura"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	userID, role, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)
	assert.Equal(t, entity.RoleAdmin, role, "el rol viaja como claim del token")
}

func TestLogin_CredencialesIncorrectas(t *testing.T) {
	uc, _ := newAuthFixture(t)
	register(t, uc, "ana@ejemplo.com", "")

	_, err := uc.Login(dto.LoginRequest{Email: "ana@ejemplo.com", Password: "incorrecta-123"})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	_, err = uc.Login(dto.LoginRequest{Email: "nadie@ejemplo.com", Password: "contraseña-segura"})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized), "usuario inexistente responde igual")
}

func TestLogin_UsuarioDeshabilitado(t *testing.T) {
	uc, _ := newAuthFixture(t)
	registered := register(t, uc, "ana@ejemplo.com", "")

	disabled := "disabled"
	_, err := uc.Update(registered.ID, dto.UpdateUserRequest{Status: &disabled})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@ejemplo.com", Password: "contraseña-segura"})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized),
		"deshabilitado responde igual que credenciales incorrectas")
}

// ──────────────────────────────────────────────────────────────────────────────
// Administración del personal
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateUser_RehashPassword(t *testing.T) {
	uc, _ := newAuthFixture(t)
	registered := register(t, uc, "ana@ejemplo.com", "")

	nueva := "otra-contraseña-larga"
	_, err := uc.Update(registered.ID, dto.UpdateUserRequest{Password: &nueva})
	require.NoError(t, err)

	// La contraseña anterior deja de servir; la nueva sí.
	_, err = uc.Login(dto.LoginRequest{Email: "ana@ejemplo.com", Password: "contraseña-segura"})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	out, err := uc.Login(dto.LoginRequest{Email: "ana@ejemplo.com", Password: nueva})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
}

func TestUpdateUser_ValoresInvalidos(t *testing.T) {
	uc, _ := newAuthFixture(t)
	registered := register(t, uc, "ana@ejemplo.com", "")

	rolMalo := "superusuario"
	_, err := uc.Update(registered.ID, dto.UpdateUserRequest{Role: &rolMalo})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	estadoMalo := "suspendido"
	_, err = uc.Update(registered.ID, dto.UpdateUserRequest{Status: &estadoMalo})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
