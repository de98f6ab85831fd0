package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"unicode"

	"triphive/internal/models"
	"triphive/internal/notifications"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "userId" -> "user ID", "friendId" -> "friend ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		prefix := param[:len(param)-2]
		words := splitCamel(prefix)
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// respondAppError maps the error taxonomy onto HTTP statuses:
// NOT_FOUND -> 404, VALIDATION_ERROR -> 400, UNAUTHORIZED -> 401,
// anything else -> 500.
func respondAppError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "NOT_FOUND":
			return models.RespondWithError(c, fiber.StatusNotFound, appErr)
		case "VALIDATION_ERROR":
			return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		case "UNAUTHORIZED":
			return models.RespondWithError(c, fiber.StatusUnauthorized, appErr)
		}
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}

// callerID returns the authenticated user id, zero when anonymous.
func callerID(c *fiber.Ctx) uint {
	if v, ok := c.Locals("userID").(uint); ok {
		return v
	}
	return 0
}

// publishTripEvent pushes a schedule change onto the trip's feed. Local
// watchers always hear it; the notifier fans it out across instances.
func (s *Server) publishTripEvent(ctx context.Context, eventType string, tripID, eventID, actorID uint) {
	ev := notifications.TripEvent{
		Type:    eventType,
		TripID:  tripID,
		EventID: eventID,
		ActorID: actorID,
	}

	if s.notifier != nil {
		if err := s.notifier.PublishTripEvent(ctx, ev); err != nil {
			log.Printf("failed to publish trip event: %v", err)
		}
		return
	}

	if s.hub != nil {
		if payload, err := json.Marshal(ev); err == nil {
			s.hub.Broadcast(tripID, string(payload))
		}
	}
}
