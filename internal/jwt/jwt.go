package jwt

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"scanpoker-server/internal/config"
)

// Issuer issues the JWT
const Issuer = "scanpoker-server"

// Audience is the intended JWT audience
const Audience = "scanpoker"

// Role is a capability granted on a single room
type Role string

// roles handed out by the room lifecycle endpoints
const (
	RoleDealer  Role = "dealer"
	RoleScanner Role = "scanner"
)

var publicKey *rsa.PublicKey
var privateKey *rsa.PrivateKey

type roomClaims struct {
	jwtgo.RegisteredClaims
	Room string `json:"room"`
	Role Role   `json:"role"`
}

// LoadKeys will load the public and private keys
// this method should only be called once.
func LoadKeys() {
	cfg := config.Instance().JWT
	privateKey = loadPrivateKey(cfg.PrivateKey)
	publicKey = loadPublicKey(cfg.PublicKey)
}

// Sign issues a token granting the role on the room
func Sign(roomCode string, role Role) (string, error) {
	if privateKey == nil {
		panic("LoadKeys() not called")
	}

	token := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, roomClaims{
		RegisteredClaims: jwtgo.RegisteredClaims{
			Audience: jwtgo.ClaimStrings{Audience},
			ID:       uuid.New().String(),
			IssuedAt: jwtgo.NewNumericDate(time.Now()),
			Issuer:   Issuer,
			Subject:  roomCode,
		},
		Room: roomCode,
		Role: role,
	})

	return token.SignedString(privateKey)
}

// ValidRoomRole validates a signed token and returns the room code and
// role it grants
func ValidRoomRole(signedString string) (string, Role, error) {
	if publicKey == nil {
		panic("LoadKeys() not called")
	}

	token, err := jwtgo.ParseWithClaims(signedString, &roomClaims{}, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodRSA); !ok {
			return nil, errors.New("expected RS256 signing method")
		}

		return publicKey, nil
	})

	if err != nil {
		return "", "", err
	}

	if token.Valid {
		if claims, ok := token.Claims.(*roomClaims); ok {
			if !containsAudience(claims.Audience, Audience) {
				return "", "", errors.New("invalid audience")
			}

			if claims.Issuer != Issuer {
				return "", "", errors.New("invalid issuer")
			}

			switch claims.Role {
			case RoleDealer, RoleScanner:
			default:
				return "", "", fmt.Errorf("unknown role: %s", claims.Role)
			}

			if claims.Room == "" {
				return "", "", errors.New("missing room code")
			}

			return claims.Room, claims.Role, nil
		}

		return "", "", fmt.Errorf("expected roomClaims, got %T", token.Claims)
	}

	logrus.Warn("token claims were not valid. did not expect to reach this code")
	return "", "", errors.New("claims were not valid")
}

func loadPublicKey(path string) *rsa.PublicKey {
	b, err := os.ReadFile(path)
	if err != nil {
		logrus.WithError(err).Fatal("could not read file")
	}

	pem, err := jwtgo.ParseRSAPublicKeyFromPEM(b)
	if err != nil {
		logrus.WithError(err).Fatal("could not parse RSA public key")
	}

	return pem
}

func loadPrivateKey(path string) *rsa.PrivateKey {
	b, err := os.ReadFile(path)
	if err != nil {
		logrus.WithError(err).Fatal("could not read file")
	}

	pem, err := jwtgo.ParseRSAPrivateKeyFromPEM(b)
	if err != nil {
		logrus.WithError(err).Fatal("could not parse RSA private key")
	}

	return pem
}

func containsAudience(audiences jwtgo.ClaimStrings, target string) bool {
	for _, aud := range audiences {
		if aud == target {
			return true
		}
	}
	return false
}
