package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/taller-api/internal/application/auth"
	"github.com/tu-usuario/taller-api/internal/application/dto"
	"github.com/tu-usuario/taller-api/internal/domain"
	"github.com/tu-usuario/taller-api/internal/domain/entity"
	"github.com/tu-usuario/taller-api/pkg/logger"
)

// fakeEmployeeRepo repositorio en memoria para los tests de auth.
type fakeEmployeeRepo struct {
	byID              map[string]*entity.Employee
	credentialUpdates int
}

func newFakeEmployeeRepo(emps ...*entity.Employee) *fakeEmployeeRepo {
	r := &fakeEmployeeRepo{byID: map[string]*entity.Employee{}}
	for _, e := range emps {
		cp := *e
		r.byID[e.ID] = &cp
	}
	return r
}

func (r *fakeEmployeeRepo) Create(e *entity.Employee) error {
	cp := *e
	r.byID[e.ID] = &cp
	return nil
}

func (r *fakeEmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	if e, ok := r.byID[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeEmployeeRepo) GetByEmail(email string) (*entity.Employee, error) {
	for _, e := range r.byID {
		if strings.EqualFold(e.Email, email) {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeEmployeeRepo) List() ([]*entity.Employee, error) {
	out := make([]*entity.Employee, 0, len(r.byID))
	for _, e := range r.byID {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeEmployeeRepo) ListTechs() ([]*entity.Employee, error) {
	var out []*entity.Employee
	for _, e := range r.byID {
		if e.Role == entity.RoleTech && e.Active {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeEmployeeRepo) Update(e *entity.Employee) error {
	cp := *e
	r.byID[e.ID] = &cp
	return nil
}

func (r *fakeEmployeeRepo) UpdateCredential(id string, cred entity.Credential, mustChange bool) error {
	r.credentialUpdates++
	e := r.byID[id]
	e.Credential = cred
	e.MustChangePassword = mustChange
	return nil
}

func (r *fakeEmployeeRepo) Delete(id string) error {
	delete(r.byID, id)
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

func newAuthUC(repo *fakeEmployeeRepo, resetSecret string) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:  "test-secret",
		ExpDays: 7,
		Issuer:  "taller-api-test",
	}, resetSecret, testLogger())
}

func hashedEmployee(t *testing.T, id, email, password, role string) *entity.Employee {
	t.Helper()
	cred, err := entity.NewHashedCredential(password)
	require.NoError(t, err)
	now := time.Now()
	return &entity.Employee{
		ID:         id,
		FirstName:  "Ana",
		LastName:   "García",
		Email:      email,
		Credential: cred,
		Role:       role,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_HashOK_EmiteToken(t *testing.T) {
	repo := newFakeEmployeeRepo(hashedEmployee(t, "e1", "ana@taller.com", "Secreta123", entity.RoleStaff))
	uc := newAuthUC(repo, "")

	out, err := uc.Login(dto.LoginRequest{Email: "ana@taller.com", Password: "Secreta123"})
	require.NoError(t, err)

	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "e1", out.Employee.ID)
	assert.Zero(t, repo.credentialUpdates, "una credencial bcrypt no debe re-escribirse")
}

// La credencial legacy en texto plano se migra a bcrypt en el primer login
// exitoso, una sola vez, y marca must_change_password.
func TestLogin_LegacyPlaintext_MigraUnaSolaVez(t *testing.T) {
	legacy := hashedEmployee(t, "e1", "ana@taller.com", "ignorada", entity.RoleStaff)
	legacy.Credential = entity.ParseCredential("clave-vieja") // sin prefijo bcrypt
	repo := newFakeEmployeeRepo(legacy)
	uc := newAuthUC(repo, "")

	out, err := uc.Login(dto.LoginRequest{Email: "ana@taller.com", Password: "clave-vieja"})
	require.NoError(t, err)
	assert.True(t, out.Employee.MustChangePassword,
		"la migración debe forzar el cambio de contraseña")
	assert.Equal(t, 1, repo.credentialUpdates)

	stored := repo.byID["e1"].Credential
	assert.Equal(t, entity.CredentialHashed, stored.Kind, "la credencial guardada debe ser bcrypt")
	assert.True(t, stored.Matches("clave-vieja"))

	// Segundo login: la credencial ya es bcrypt, no hay nueva migración.
	_, err = uc.Login(dto.LoginRequest{Email: "ana@taller.com", Password: "clave-vieja"})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.credentialUpdates, "la migración ocurre una sola vez")
}

// Email desconocido, contraseña incorrecta y cuenta inactiva devuelven el
// mismo error, para no permitir enumerar cuentas.
func TestLogin_ErroresIndistinguibles(t *testing.T) {
	inactive := hashedEmployee(t, "e2", "baja@taller.com", "Secreta123", entity.RoleStaff)
	inactive.Active = false
	repo := newFakeEmployeeRepo(
		hashedEmployee(t, "e1", "ana@taller.com", "Secreta123", entity.RoleStaff),
		inactive,
	)
	uc := newAuthUC(repo, "")

	cases := []dto.LoginRequest{
		{Email: "nadie@taller.com", Password: "Secreta123"},  // email desconocido
		{Email: "ana@taller.com", Password: "equivocada"},    // contraseña incorrecta
		{Email: "baja@taller.com", Password: "Secreta123"},   // cuenta inactiva
	}
	for _, in := range cases {
		_, err := uc.Login(in)
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials, "login %s", in.Email)
	}
}

func TestLogin_EmailCaseInsensitive(t *testing.T) {
	repo := newFakeEmployeeRepo(hashedEmployee(t, "e1", "Ana@Taller.com", "Secreta123", entity.RoleStaff))
	uc := newAuthUC(repo, "")

	_, err := uc.Login(dto.LoginRequest{Email: "ana@taller.com", Password: "Secreta123"})
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// ChangePassword
// ──────────────────────────────────────────────────────────────────────────────

func TestChangePassword_OK(t *testing.T) {
	repo := newFakeEmployeeRepo(hashedEmployee(t, "e1", "ana@taller.com", "Secreta123", entity.RoleStaff))
	uc := newAuthUC(repo, "")

	err := uc.ChangePassword("e1", dto.ChangePasswordRequest{
		OldPassword: "Secreta123",
		NewPassword: "NuevaClave456",
	})
	require.NoError(t, err)

	e := repo.byID["e1"]
	assert.True(t, e.Credential.Matches("NuevaClave456"))
	assert.False(t, e.MustChangePassword, "el cambio de contraseña limpia el flag")
}

func TestChangePassword_ContrasenaVigenteIncorrecta(t *testing.T) {
	repo := newFakeEmployeeRepo(hashedEmployee(t, "e1", "ana@taller.com", "Secreta123", entity.RoleStaff))
	uc := newAuthUC(repo, "")

	err := uc.ChangePassword("e1", dto.ChangePasswordRequest{
		OldPassword: "equivocada",
		NewPassword: "NuevaClave456",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.True(t, repo.byID["e1"].Credential.Matches("Secreta123"), "la contraseña no debe cambiar")
}

// ──────────────────────────────────────────────────────────────────────────────
// ResetAdmin
// ──────────────────────────────────────────────────────────────────────────────

func TestResetAdmin_SecretoIncorrecto(t *testing.T) {
	repo := newFakeEmployeeRepo(hashedEmployee(t, "e1", "admin@taller.com", "Secreta123", entity.RoleAdmin))
	uc := newAuthUC(repo, "super-secreto")

	err := uc.ResetAdmin(dto.ResetAdminRequest{
		Email: "admin@taller.com", NewPassword: "NuevaClave456", Secret: "otro",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Sin ADMIN_RESET_SECRET configurado, el endpoint queda deshabilitado aunque
// el secreto enviado sea vacío.
func TestResetAdmin_SinSecretoConfigurado(t *testing.T) {
	repo := newFakeEmployeeRepo(hashedEmployee(t, "e1", "admin@taller.com", "Secreta123", entity.RoleAdmin))
	uc := newAuthUC(repo, "")

	err := uc.ResetAdmin(dto.ResetAdminRequest{
		Email: "admin@taller.com", NewPassword: "NuevaClave456", Secret: "",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestResetAdmin_SoloCuentasAdmin(t *testing.T) {
	repo := newFakeEmployeeRepo(hashedEmployee(t, "e1", "tech@taller.com", "Secreta123", entity.RoleTech))
	uc := newAuthUC(repo, "super-secreto")

	err := uc.ResetAdmin(dto.ResetAdminRequest{
		Email: "tech@taller.com", NewPassword: "NuevaClave456", Secret: "super-secreto",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResetAdmin_ReactivaYRestablece(t *testing.T) {
	admin := hashedEmployee(t, "e1", "admin@taller.com", "Secreta123", entity.RoleAdmin)
	admin.Active = false
	admin.MustChangePassword = true
	repo := newFakeEmployeeRepo(admin)
	uc := newAuthUC(repo, "super-secreto")

	err := uc.ResetAdmin(dto.ResetAdminRequest{
		Email: "admin@taller.com", NewPassword: "NuevaClave456", Secret: "super-secreto",
	})
	require.NoError(t, err)

	e := repo.byID["e1"]
	assert.True(t, e.Active, "el reset reactiva la cuenta")
	assert.False(t, e.MustChangePassword)
	assert.True(t, e.Credential.Matches("NuevaClave456"))
}
