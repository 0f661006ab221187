package auth

import (
	"errors"
	"time"

	"github.com/GoArmGo/CareerCraft/internal/domain"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims — содержимое токена сессии.
type Claims struct {
	UserID uuid.UUID   `json:"user_id"`
	Role   domain.Role `json:"role"`

	jwtlib.RegisteredClaims
}

// TokenService выпускает и проверяет токены сессии.
type TokenService interface {
	Issue(user *domain.User) (string, error)
	Verify(token string) (domain.Principal, error)
}

// HMACService подписывает токены HS256 общим секретом.
type HMACService struct {
	secret    []byte
	expiresIn time.Duration
	now       func() time.Time
}

func NewHMACService(secret string, expiresIn time.Duration) *HMACService {
	return &HMACService{
		secret:    []byte(secret),
		expiresIn: expiresIn,
		now:       time.Now,
	}
}

// Issue выпускает токен для пользователя.
func (s *HMACService) Issue(user *domain.User) (string, error) {
	if len(s.secret) == 0 || s.expiresIn <= 0 {
		return "", ErrTokenInvalid
	}
	now := s.now().UTC()

	c := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.expiresIn)),
			Subject:   user.ID.String(),
		},
	}

	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString(s.secret)
}

// Verify проверяет подпись и срок действия и возвращает пользователя из токена.
// Токен с неизвестной ролью считается недействительным.
func (s *HMACService) Verify(token string) (domain.Principal, error) {
	p := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(s.now),
	)

	var c Claims
	tok, err := p.ParseWithClaims(token, &c, func(*jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return domain.Principal{}, ErrTokenExpired
		}
		return domain.Principal{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid {
		return domain.Principal{}, ErrTokenInvalid
	}
	if c.UserID == uuid.Nil || !c.Role.Valid() {
		return domain.Principal{}, ErrTokenInvalid
	}

	return domain.Principal{ID: c.UserID, Role: c.Role}, nil
}
