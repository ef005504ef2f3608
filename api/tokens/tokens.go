package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	AccessTokenExpiry  = 24 * time.Hour
	RefreshTokenExpiry = 7 * 24 * time.Hour
)

type TokenService interface {
	HashPassword(password string) (string, error)
	ComparePasswords(storedPassword, candidatePassword string) bool
	GenerateToken(userID, email string) (string, string, error)
	DecodeToken(tokenString string) (*Claims, error)
}

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.StandardClaims
}

type Tokens struct {
	secretKey []byte
	now       func() time.Time
}

func NewTokenService(secretKey string) *Tokens {
	return &Tokens{secretKey: []byte(secretKey), now: time.Now}
}

func (t *Tokens) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(hashed), nil
}

func (t *Tokens) ComparePasswords(storedPassword, candidatePassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(storedPassword), []byte(candidatePassword))
	return err == nil
}

// GenerateToken returns a signed access token and a signed refresh token.
// The refresh token carries a random id so two tokens issued in the same
// second still differ.
func (t *Tokens) GenerateToken(userID, email string) (string, string, error) {
	if len(t.secretKey) == 0 {
		return "", "", errors.New("no secret key found")
	}

	now := t.now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(AccessTokenExpiry).Unix(),
			IssuedAt:  now.Unix(),
			Subject:   userID,
		},
	}

	refreshClaims := &Claims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			ExpiresAt: now.Add(RefreshTokenExpiry).Unix(),
			IssuedAt:  now.Unix(),
			Subject:   userID,
		},
	}

	signedAccessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secretKey)
	if err != nil {
		return "", "", fmt.Errorf("error signing access token: %w", err)
	}

	signedRefreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(t.secretKey)
	if err != nil {
		return "", "", fmt.Errorf("error signing refresh token: %w", err)
	}

	return signedAccessToken, signedRefreshToken, nil
}

func (t *Tokens) DecodeToken(tokenString string) (*Claims, error) {
	if len(t.secretKey) == 0 {
		return nil, errors.New("no secret key found")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secretKey, nil
	})

	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) {
			if ve.Errors&jwt.ValidationErrorExpired != 0 {
				return nil, errors.New("token has expired")
			}
			if ve.Errors&jwt.ValidationErrorSignatureInvalid != 0 {
				return nil, errors.New("invalid token signature")
			}
			if ve.Errors&jwt.ValidationErrorMalformed != 0 {
				return nil, errors.New("malformed token")
			}
		}
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("invalid claims type")
	}

	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	return claims, nil
}
