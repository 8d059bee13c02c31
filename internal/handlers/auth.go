package handlers

import (
	"time"

	"wasit/internal/services/auth"
	"wasit/internal/transferapi"
	"wasit/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService  auth.Service
	secureCookie bool
	accessTTL    time.Duration
	refreshTTL   time.Duration
}

func NewAuthHandler(authService auth.Service, secureCookie bool, accessTTL, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		secureCookie: secureCookie,
		accessTTL:    accessTTL,
		refreshTTL:   refreshTTL,
	}
}

// LoginUser handles back-office authentication and returns JWT tokens
func (h *AuthHandler) LoginUser(c *fiber.Ctx) error {
	var input transferapi.LoginRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if input.Email == "" || input.Password == "" {
		return utils.BadRequest(c, "email and password are required")
	}

	user, accessToken, refreshToken, err := h.authService.Login(c.UserContext(), input.Email, input.Password)
	if err != nil {
		return utils.Fail(c, err)
	}

	h.setAuthCookies(c, accessToken, refreshToken)

	return utils.Success(c, fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		},
	})
}

// RefreshToken reads the refresh token from the cookie, falling back to the body.
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")
	if refreshToken == "" {
		var input transferapi.RefreshRequest
		if err := c.BodyParser(&input); err == nil {
			refreshToken = input.RefreshToken
		}
	}
	if refreshToken == "" {
		return utils.Unauthorized(c, "refresh token not provided")
	}

	accessToken, newRefreshToken, err := h.authService.RefreshTokens(c.UserContext(), refreshToken)
	if err != nil {
		return utils.Fail(c, err)
	}

	h.setAuthCookies(c, accessToken, newRefreshToken)
	return utils.Success(c, transferapi.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	})
}

// LogoutUser revokes every token of the caller.
func (h *AuthHandler) LogoutUser(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	if err := h.authService.Logout(c.UserContext(), claims.UserID); err != nil {
		return utils.Fail(c, err)
	}

	c.ClearCookie("access_token", "refresh_token")
	return utils.Success(c, fiber.Map{"message": "logged out"})
}

func (h *AuthHandler) setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Expires:  time.Now().Add(h.accessTTL),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: "Strict",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Expires:  time.Now().Add(h.refreshTTL),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: "Strict",
		Path:     "/api/auth",
	})
}
