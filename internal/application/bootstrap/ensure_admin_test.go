package bootstrap_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/taller-api/internal/application/bootstrap"
	"github.com/tu-usuario/taller-api/internal/domain/entity"
	"github.com/tu-usuario/taller-api/pkg/logger"
)

// fakeEmployeeRepo solo implementa lo que EnsureAdmin usa.
type fakeEmployeeRepo struct {
	byID    map[string]*entity.Employee
	creates int
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{byID: map[string]*entity.Employee{}}
}

func (r *fakeEmployeeRepo) Create(e *entity.Employee) error {
	r.creates++
	cp := *e
	r.byID[e.ID] = &cp
	return nil
}

func (r *fakeEmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	if e, ok := r.byID[id]; ok {
		return e, nil
	}
	return nil, nil
}

func (r *fakeEmployeeRepo) GetByEmail(email string) (*entity.Employee, error) {
	for _, e := range r.byID {
		if strings.EqualFold(e.Email, email) {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeEmployeeRepo) List() ([]*entity.Employee, error)      { return nil, nil }
func (r *fakeEmployeeRepo) ListTechs() ([]*entity.Employee, error) { return nil, nil }
func (r *fakeEmployeeRepo) Update(e *entity.Employee) error        { return nil }

func (r *fakeEmployeeRepo) UpdateCredential(id string, cred entity.Credential, mustChange bool) error {
	return nil
}

func (r *fakeEmployeeRepo) Delete(id string) error { return nil }

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

func TestEnsureAdmin_CreaAdminSiNoExiste(t *testing.T) {
	repo := newFakeEmployeeRepo()
	seed := bootstrap.AdminSeed{Email: "admin@taller.com", Password: "Admin@123"}

	require.NoError(t, bootstrap.EnsureAdmin(context.Background(), repo, seed, testLogger()))
	require.Equal(t, 1, repo.creates)

	admin, err := repo.GetByEmail("admin@taller.com")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, entity.RoleAdmin, admin.Role)
	assert.True(t, admin.Active)
	assert.Equal(t, entity.CredentialHashed, admin.Credential.Kind,
		"el seed nunca guarda la contraseña en texto plano")
	assert.True(t, admin.Credential.Matches("Admin@123"))
}

// Ejecuciones repetidas (reinicios del servicio) no duplican ni pisan al admin.
func TestEnsureAdmin_Idempotente(t *testing.T) {
	repo := newFakeEmployeeRepo()
	seed := bootstrap.AdminSeed{Email: "admin@taller.com", Password: "Admin@123"}

	require.NoError(t, bootstrap.EnsureAdmin(context.Background(), repo, seed, testLogger()))
	require.NoError(t, bootstrap.EnsureAdmin(context.Background(), repo, seed, testLogger()))
	require.NoError(t, bootstrap.EnsureAdmin(context.Background(), repo, seed, testLogger()))

	assert.Equal(t, 1, repo.creates)
}

// Si el registro existe con otra contraseña, el arranque no la restablece;
// para eso está el endpoint de reset con secreto.
func TestEnsureAdmin_NoModificaExistente(t *testing.T) {
	repo := newFakeEmployeeRepo()
	seed := bootstrap.AdminSeed{Email: "admin@taller.com", Password: "Admin@123"}
	require.NoError(t, bootstrap.EnsureAdmin(context.Background(), repo, seed, testLogger()))

	seed.Password = "OtraClave456"
	require.NoError(t, bootstrap.EnsureAdmin(context.Background(), repo, seed, testLogger()))

	admin, _ := repo.GetByEmail("admin@taller.com")
	assert.True(t, admin.Credential.Matches("Admin@123"))
	assert.False(t, admin.Credential.Matches("OtraClave456"))
}
