package server

import (
	"wenje/internal/middleware"
	"wenje/internal/models"
	"wenje/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateCommentRequest is the request body for comment creation
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// CommentsPage is the response data for a page of comments.
type CommentsPage struct {
	Comments   []*models.Comment `json:"comments"`
	TotalCount int64             `json:"totalCount"`
}

// CreateComment adds a comment to a post.
// @Summary Comment on a post
// @Tags comments
// @Accept json
// @Produce json
// @Param request body CreateCommentRequest true "Comment data"
// @Router /posts/{postId}/comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := parseIDParam(c, "postId")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	var req CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body."))
	}

	comment, err := s.commentService.Create(c.UserContext(), service.CreateCommentInput{
		AuthorID: middleware.AuthUserID(c),
		PostID:   postID,
		Content:  req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return respond(c, fiber.StatusCreated, "Your comment has been added successfully.", comment)
}

// GetComments returns comments on a post, newest first, with the total count.
// The :limit segment caps the page to a short preview when it is "true".
// @Summary Get comments on a post
// @Tags comments
// @Param before query string false "RFC 3339 pagination cursor"
// @Router /posts/{postId}/comments/{limit} [get]
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := parseIDParam(c, "postId")
	if err != nil {
		return models.RespondWithError(c, err)
	}
	before, err := parseBeforeQuery(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	limited := c.Params("limit") == "true"
	comments, total, err := s.feedService.CommentsOnPost(c.UserContext(), postID, before, limited)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return respondList(c, fiber.StatusOK, "", len(comments), CommentsPage{
		Comments:   comments,
		TotalCount: total,
	})
}

// DeleteComment deletes a comment and its likes.
// @Summary Delete a comment
// @Tags comments
// @Router /posts/{postId}/comments/{commentId} [delete]
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := parseIDParam(c, "commentId")
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if err := s.commentService.Delete(c.UserContext(), middleware.AuthUserID(c), commentID); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
