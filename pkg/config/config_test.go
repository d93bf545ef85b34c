package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/taller-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 7, cfg.JWT.ExpDays)
}

func TestLoad_EnvVarsTienenPrioridad(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_HOST", "db.interno")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "db.interno", cfg.DB.Host)
}

// Un valor numérico malformado debe fallar la carga, no degradarse a cero.
func TestLoad_EnteroMalformadoFalla(t *testing.T) {
	t.Setenv("HTTP_PORT", "abc")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP_PORT")
}
