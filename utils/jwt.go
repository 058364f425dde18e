// file: utils/jwt.go
package utils

import (
	"time"

	"YukthiCTF/models"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret []byte

// SetJWTSecret 由 main 在启动时注入，测试中也可直接调用
func SetJWTSecret(secret string) {
	jwtSecret = []byte(secret)
}

// Claims 身份信息由账号系统签发，这里只消费：
// TeamID 是提交与计分的主体，UserID 仅用于流水账审计
type Claims struct {
	UserID   uint32          `json:"user_id"`
	TeamID   uint32          `json:"team_id"`
	Username string          `json:"username"`
	Role     models.UserRole `json:"role"`
	Verified bool            `json:"verified"`
	jwt.RegisteredClaims
}

func GenerateToken(userID, teamID uint32, username string, role models.UserRole, verified bool) (string, error) {
	claims := Claims{
		UserID:   userID,
		TeamID:   teamID,
		Username: username,
		Role:     role,
		Verified: verified,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(7 * 24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, err
}
