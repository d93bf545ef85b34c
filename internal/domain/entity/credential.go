package entity

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// CredentialKind distingue las dos variantes de credencial almacenada.
type CredentialKind int

const (
	// CredentialHashed contraseña con hash bcrypt (estado normal).
	CredentialHashed CredentialKind = iota
	// CredentialLegacyPlaintext contraseña en texto plano heredada de la
	// versión anterior del sistema; solo se acepta para migrar en el primer
	// login exitoso.
	CredentialLegacyPlaintext
)

// Credential credencial de contraseña como variante etiquetada
// (Hashed | LegacyPlaintext) con una única capacidad de comparación.
type Credential struct {
	Kind  CredentialKind
	Value string
}

// ParseCredential clasifica el valor tal como está almacenado. El sniff del
// prefijo bcrypt ("$2a$", "$2b$", "$2y$") vive únicamente aquí, en la
// frontera de persistencia; el resto del dominio trabaja con la variante.
func ParseCredential(stored string) Credential {
	if strings.HasPrefix(stored, "$2") {
		return Credential{Kind: CredentialHashed, Value: stored}
	}
	return Credential{Kind: CredentialLegacyPlaintext, Value: stored}
}

// NewHashedCredential hashea la contraseña con bcrypt.
func NewHashedCredential(password string) (Credential, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Credential{}, err
	}
	return Credential{Kind: CredentialHashed, Value: string(hash)}, nil
}

// Matches compara la contraseña según la variante.
func (c Credential) Matches(password string) bool {
	switch c.Kind {
	case CredentialHashed:
		return bcrypt.CompareHashAndPassword([]byte(c.Value), []byte(password)) == nil
	case CredentialLegacyPlaintext:
		return subtleEquals(c.Value, password)
	}
	return false
}

// NeedsUpgrade indica si la credencial debe migrarse a bcrypt tras un login exitoso.
func (c Credential) NeedsUpgrade() bool {
	return c.Kind == CredentialLegacyPlaintext
}

// subtleEquals comparación en tiempo constante para la variante legacy.
func subtleEquals(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	var diff byte
	for i := 0; i < len(a); i++ {
		diff |= a[i] ^ b[i]
	}
	return diff == 0
}
