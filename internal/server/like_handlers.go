package server

import (
	"wenje/internal/middleware"
	"wenje/internal/models"

	"github.com/gofiber/fiber/v2"
)

// LikePost toggles the authenticated user's like on a post.
// The results field reports the outcome: 1 liked, 0 unliked.
// @Summary Toggle a like on a post
// @Tags likes
// @Router /posts/{postId}/likes [post]
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := parseIDParam(c, "postId")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	res, err := s.likeService.Toggle(c.UserContext(), middleware.AuthUserID(c),
		models.LikeTargetPost, postID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	message := "Post unliked."
	results := 0
	if res.Liked {
		message = "Post liked."
		results = 1
	}
	return respondList(c, fiber.StatusCreated, message, results, nil)
}

// LikeComment toggles the authenticated user's like on a comment.
// @Summary Toggle a like on a comment
// @Tags likes
// @Router /posts/{postId}/comments/{commentId}/likes [post]
func (s *Server) LikeComment(c *fiber.Ctx) error {
	commentID, err := parseIDParam(c, "commentId")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	res, err := s.likeService.Toggle(c.UserContext(), middleware.AuthUserID(c),
		models.LikeTargetComment, commentID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	message := "Comment unliked."
	results := 0
	if res.Liked {
		message = "Comment liked."
		results = 1
	}
	return respondList(c, fiber.StatusCreated, message, results, nil)
}
