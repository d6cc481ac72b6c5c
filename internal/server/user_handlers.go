package server

import (
	"github.com/gofiber/fiber/v2"
)

// StoreUser handles POST /api/users/store
// @Summary Store the current user
// @Description Creates or refreshes the user record for the authenticated identity
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} models.ErrorResponse
// @Router /users/store [post]
func (s *Server) StoreUser(c *fiber.Ctx) error {
	user, err := s.userService.ResolveOrCreate(c.UserContext(), s.currentIdentity(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// GetCurrentUser handles GET /api/users/me
// @Summary Get the current user
// @Description Returns the stored record for the authenticated identity
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/me [get]
func (s *Server) GetCurrentUser(c *fiber.Ctx) error {
	user, err := s.userService.GetCurrent(c.UserContext(), s.currentIdentity(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// SetUsername handles PUT /api/users/me/username
// @Summary Set the current user's username
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{username=string} true "Username request"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /users/me/username [put]
func (s *Server) SetUsername(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, invalidBodyError())
	}

	user, err := s.userService.SetUsername(c.UserContext(), s.currentIdentity(c), req.Username)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// GetPublicProfile handles GET /api/users/:username
// @Summary Get a public profile by username
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} models.PublicUser
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{username} [get]
func (s *Server) GetPublicProfile(c *fiber.Ctx) error {
	profile, err := s.userService.GetPublicProfile(c.UserContext(), c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}
