package server

import "github.com/gofiber/fiber/v2"

// GetFeatureFlags handles GET /api/v1/flags
// @Summary Get feature flags
// @Description Returns raw flag configuration and flags evaluated for the caller
// @Tags flags
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /flags [get]
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	userID := callerID(c)

	if s.featureFlags == nil {
		return c.JSON(fiber.Map{
			"raw":       map[string]string{},
			"evaluated": map[string]bool{},
		})
	}

	return c.JSON(fiber.Map{
		"raw":       s.featureFlags.Raw(),
		"evaluated": s.featureFlags.Snapshot(userID),
	})
}
