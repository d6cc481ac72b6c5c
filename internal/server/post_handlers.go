package server

import (
	"inkwell/internal/observability"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"
)

// GetDraft handles GET /api/posts/draft
// @Summary Get the current user's working draft
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Post
// @Failure 401 {object} models.ErrorResponse
// @Router /posts/draft [get]
func (s *Server) GetDraft(c *fiber.Ctx) error {
	draft, err := s.postService.GetDraft(c.UserContext(), s.currentIdentity(c))
	if err != nil {
		return respondError(c, err)
	}
	if draft == nil {
		return c.JSON(nil)
	}
	return c.JSON(draft)
}

// SavePost handles POST /api/posts
// @Summary Save a draft or publish a post
// @Description Replaces the author's working draft, or publishes when publish=true
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.SavePostInput true "Post payload"
// @Success 201 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) SavePost(c *fiber.Ctx) error {
	var req service.SavePostInput
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, invalidBodyError())
	}

	post, err := s.postService.Save(c.UserContext(), s.currentIdentity(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/posts/:id
// @Summary Update a post
// @Description Applies a partial update; setting status=published publishes a draft
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body service.UpdatePostInput true "Fields to update"
// @Success 200 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [put]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.UpdatePostInput
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, invalidBodyError())
	}

	post, err := s.postService.Update(c.UserContext(), s.currentIdentity(c), postID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// GetMyPosts handles GET /api/posts?status=
// @Summary List the current user's posts
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (draft or published)"
// @Success 200 {array} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /posts [get]
func (s *Server) GetMyPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListForAuthor(c.UserContext(), s.currentIdentity(c), c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
// @Summary Get a post by ID
// @Description Any authenticated caller may fetch a published post; drafts are visible only to their author
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	observability.AddTraceAttributesToContext(c.UserContext(), attribute.Int("post.id", int(postID)))

	post, err := s.postService.GetByID(c.UserContext(), s.currentIdentity(c), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
// @Summary Delete a post
// @Description Removes the post together with its likes and comments
// @Tags posts
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.Delete(c.UserContext(), s.currentIdentity(c), postID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
