package server

import (
	"encoding/json"

	"triphive/internal/models"
	"triphive/internal/security"
	"triphive/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// GetUsers handles GET /api/v1/users
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Router /users [get]
func (s *Server) GetUsers(c *fiber.Ctx) error {
	users, err := s.userRepo.GetAll(c.Context())
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(users)
}

// GetUser handles GET /api/v1/users/:id
// @Summary Get a user by id
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [get]
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(user)
}

// CreateUser handles POST /api/v1/users
// @Summary Create a user
// @Tags users
// @Accept json
// @Produce json
// @Success 201 {object} object{id=int}
// @Failure 400 {object} models.ErrorResponse
// @Router /users [post]
func (s *Server) CreateUser(c *fiber.Ctx) error {
	var req struct {
		Username       string `json:"username"`
		Email          string `json:"email"`
		Password       string `json:"password"`
		FirstName      string `json:"firstName"`
		LastName       string `json:"lastName"`
		PhoneNumber    string `json:"phoneNumber"`
		ProfilePicture string `json:"profilePicture"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username, email, and password are required"))
	}
	if err := validation.ValidateUsername(req.Username); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Username:       req.Username,
		Email:          req.Email,
		Password:       string(hashed),
		FirstName:      security.SanitizeText(req.FirstName),
		LastName:       security.SanitizeText(req.LastName),
		PhoneNumber:    req.PhoneNumber,
		ProfilePicture: req.ProfilePicture,
	}
	if err := s.userRepo.Create(c.Context(), user); err != nil {
		return respondAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": user.ID})
}

// userUpdateFields translates a partial-update body into column
// assignments, ignoring unknown keys. Password changes go through auth,
// not this endpoint.
func userUpdateFields(body []byte) (map[string]any, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, models.NewValidationError("Invalid request body")
	}

	fields := make(map[string]any, len(raw))
	for key, value := range raw {
		s, ok := value.(string)
		if !ok {
			continue
		}
		switch key {
		case "username":
			if err := validation.ValidateUsername(s); err != nil {
				return nil, models.NewValidationError(err.Error())
			}
			fields["username"] = s
		case "email":
			if err := validation.ValidateEmail(s); err != nil {
				return nil, models.NewValidationError(err.Error())
			}
			fields["email"] = s
		case "firstName":
			fields["first_name"] = security.SanitizeText(s)
		case "lastName":
			fields["last_name"] = security.SanitizeText(s)
		case "phoneNumber":
			fields["phone_number"] = s
		case "profilePicture":
			fields["profile_picture"] = s
		}
	}
	return fields, nil
}

// UpdateUser handles PATCH /api/v1/users/:id
// @Summary Partially update a user
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} object{affected=int}
// @Failure 400 {object} models.ErrorResponse
// @Router /users/{id} [patch]
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	fields, err := userUpdateFields(c.Body())
	if err != nil {
		return respondAppError(c, err)
	}

	affected, err := s.userRepo.UpdateByID(c.Context(), id, fields)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"affected": affected})
}

// DeleteUser handles DELETE /api/v1/users/:id
// @Summary Delete a user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} object{deleted=int}
// @Router /users/{id} [delete]
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	deleted, err := s.userRepo.Delete(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}

// GetUserTrips handles GET /api/v1/users/:id/trips
// @Summary List the trips a user belongs to
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} models.MemberTrip
// @Router /users/{id}/trips [get]
func (s *Server) GetUserTrips(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	trips, err := s.tripRepo.ByUserID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(trips)
}

// GetUserFriends handles GET /api/v1/users/:id/friends
// @Summary List a user's friends
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} models.FriendProfile
// @Router /users/{id}/friends [get]
func (s *Server) GetUserFriends(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	friends, err := s.friendService.GetFriends(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(friends)
}
