package server

import (
	"triphive/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AddFriend handles POST /api/v1/friends
// @Summary Record a friendship
// @Description Records the directed edge userId -> friendId after verifying both users exist
// @Tags friends
// @Accept json
// @Produce json
// @Param request body object{userId=int,friendId=int} true "Friendship"
// @Success 201 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Router /friends [post]
func (s *Server) AddFriend(c *fiber.Ctx) error {
	var req struct {
		UserID   uint `json:"userId"`
		FriendID uint `json:"friendId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.UserID == 0 || req.FriendID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("User ID and Friend ID are required"))
	}

	if err := s.friendService.AddFriend(c.Context(), req.UserID, req.FriendID); err != nil {
		return respondAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Friend added"})
}

// DeleteFriend handles DELETE /api/v1/friends/:userId/:friendId
// @Summary Remove a friendship
// @Description Removes the directed edge userId -> friendId; 404 when no such edge exists
// @Tags friends
// @Produce json
// @Param userId path int true "User ID"
// @Param friendId path int true "Friend ID"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} models.ErrorResponse
// @Router /friends/{userId}/{friendId} [delete]
func (s *Server) DeleteFriend(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	friendID, err := s.parseID(c, "friendId")
	if err != nil {
		return nil
	}

	if err := s.friendService.DeleteFriend(c.Context(), userID, friendID); err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Friend removed"})
}
