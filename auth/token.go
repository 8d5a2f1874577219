package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenMalformed token 结构不合法（段数错误、无法解码等）
	ErrTokenMalformed = errors.New("token 格式错误")
	// ErrTokenSignatureInvalid 签名校验失败
	ErrTokenSignatureInvalid = errors.New("token 签名无效")
	// ErrTokenExpired token 已过期（签名校验通过后才会返回）
	ErrTokenExpired = errors.New("token 已过期")
)

// Claims JWT 载荷：用户身份 + 签发时刻的权限快照。
// Permissions 是签发时的授权集合快照，实时判定仍以权限存储为准。
type Claims struct {
	UserID      uint            `json:"userId"`
	Username    string          `json:"username"`
	IsAdmin     bool            `json:"isAdmin"`
	Permissions map[string]bool `json:"permissions"`
	jwt.RegisteredClaims
}

// TokenService 负责 token 的签发与校验。
// 密钥与有效期在进程启动时确定，之后只读，可安全并发调用。
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService 创建 TokenService，secret 来自配置，ttl 为 token 有效期
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// TTL 返回 token 有效期
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue 签发 token，HMAC-SHA256 签名，载荷携带权限快照
func (s *TokenService) Issue(userID uint, username string, isAdmin bool, grants map[string]bool) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:      userID,
		Username:    username,
		IsAdmin:     isAdmin,
		Permissions: grants,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Parse 校验 token 并返回载荷。失败时返回三类错误之一：
// ErrTokenMalformed / ErrTokenSignatureInvalid / ErrTokenExpired。
// 签名校验在有效期校验之前：签名不合法的过期 token 报签名错误。
// 调用方应把三类错误一律当作"不可信"处理，不得将其作为授权判定依据。
func (s *TokenService) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		// 固定 HS256，拒绝算法替换
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignatureInvalid
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, ErrTokenSignatureInvalid):
			return nil, ErrTokenSignatureInvalid
		default:
			return nil, ErrTokenMalformed
		}
	}
	return claims, nil
}

// Valid 校验 token 是否可信，把三类失败统一折叠为 false。
// 只适合做布尔判断；需要区分失败原因（如审计日志）时应使用 Parse。
func (s *TokenService) Valid(tokenString string) bool {
	_, err := s.Parse(tokenString)
	return err == nil
}
