package server

import (
	"wenje/internal/middleware"
	"wenje/internal/models"
	"wenje/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePostRequest is the request body for post creation
type CreatePostRequest struct {
	Content       string `json:"content"`
	ImageURL      string `json:"imageUrl"`
	ImagePublicID string `json:"imagePublicId"`
}

// CreatePost creates a new post for the authenticated user.
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body CreatePostRequest true "Post data"
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body."))
	}

	post, err := s.postService.Create(c.UserContext(), service.CreatePostInput{
		AuthorID:      middleware.AuthUserID(c),
		Content:       req.Content,
		ImageURL:      req.ImageURL,
		ImagePublicID: req.ImagePublicID,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return respond(c, fiber.StatusCreated, "Your post has been created successfully.", post)
}

// GetPost returns a single post with counts and liker ids.
// @Summary Get a post
// @Tags posts
// @Router /posts/{postId} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := parseIDParam(c, "postId")
	if err != nil {
		return models.RespondWithError(c, err)
	}
	post, err := s.feedService.PostByID(c.UserContext(), postID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return respond(c, fiber.StatusOK, "", post)
}

// DeletePost deletes a post and everything attached to it.
// @Summary Delete a post
// @Tags posts
// @Router /posts/{postId} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := parseIDParam(c, "postId")
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if err := s.postService.Delete(c.UserContext(), middleware.AuthUserID(c), postID); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetNewsfeed returns posts by the authenticated user and everyone they follow.
// @Summary Get the newsfeed
// @Tags posts
// @Param before query string false "RFC 3339 pagination cursor"
// @Router /posts/newsfeed [get]
func (s *Server) GetNewsfeed(c *fiber.Ctx) error {
	before, err := parseBeforeQuery(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	posts, err := s.feedService.NewsFeed(c.UserContext(), middleware.AuthUserID(c), before)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return respondList(c, fiber.StatusOK, "", len(posts), posts)
}

// GetPostsByUser returns one page of a user's posts.
// @Summary Get posts by a user
// @Tags posts
// @Param before query string false "RFC 3339 pagination cursor"
// @Router /posts/byuser/{userId} [get]
func (s *Server) GetPostsByUser(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return models.RespondWithError(c, err)
	}
	before, err := parseBeforeQuery(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	posts, err := s.feedService.PostsByUser(c.UserContext(), userID, before)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return respondList(c, fiber.StatusOK, "", len(posts), posts)
}
