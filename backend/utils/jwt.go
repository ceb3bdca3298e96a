package utils

import (
	"time"

	"edusync/backend/config"
	"edusync/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func GenerateJWTToken(user models.User, cfg *config.Config) (string, error) {
	claims := jwt.MapClaims{
		"user_id": int64(user.ID),
		"name":    user.Name,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(time.Hour * 72).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// TokenUser is the identity carried by a bearer token.
type TokenUser struct {
	ID    models.ID
	Name  string
	Email string
	Role  string
}

func ExtractUserFromToken(c *fiber.Ctx, cfg *config.Config) (TokenUser, error) {
	tokenString := c.Get("Authorization")
	if tokenString == "" {
		return TokenUser{}, fiber.NewError(fiber.StatusUnauthorized, "Missing authorization token")
	}
	// Клиент шлет токен как "Bearer <token>"
	if len(tokenString) > 7 && tokenString[:7] == "Bearer " {
		tokenString = tokenString[7:]
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})

	if err != nil {
		return TokenUser{}, fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return TokenUser{}, fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return TokenUser{}, fiber.NewError(fiber.StatusUnauthorized, "Invalid user ID in token")
	}

	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return TokenUser{ID: models.ID(userIDFloat), Name: name, Email: email, Role: role}, nil
}
