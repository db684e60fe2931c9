package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más el contexto resuelto del trabajador.
// El upstream de autenticación emite el token; esta API solo lo verifica y consume
// {worker_id, role, location_id} para el ledger de turnos.
type Claims struct {
	jwt.RegisteredClaims
	WorkerID   string `json:"worker_id"`
	Role       string `json:"role"`        // "CARE_WORKER" | "MANAGER" | "ADMIN"
	LocationID string `json:"location_id"` // ubicación asignada; vacío si no tiene
}

// Generate genera un token JWT firmado con el contexto del trabajador.
// Usado por cmd/mint-token y por los tests; en producción el emisor es externo.
func Generate(secret, workerID, role, locationID, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   workerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		WorkerID:   workerID,
		Role:       role,
		LocationID: locationID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve workerID, role y locationID.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (workerID, role, locationID string, err error) {
	if secret == "" {
		return "", "", "", fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", "", "", fmt.Errorf("claims inválidos")
	}
	return claims.WorkerID, claims.Role, claims.LocationID, nil
}
