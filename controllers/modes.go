package controllers

import (
	quiz_models "CivicQuiz/models/quiz"
	"CivicQuiz/services/quiz/modes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Lists the game modes
// @Description Every mode with its question count, timing and rule flags
// @Tags modes
// @Produce json
// @Success 200 {array} modes.Description
// @Router /modes [get]
func ListModes(c *gin.Context) {
	all := modes.All()
	out := make([]modes.Description, 0, len(all))
	for _, cfg := range all {
		out = append(out, modes.Describe(cfg))
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Gets one game mode
// @Tags modes
// @Produce json
// @Param mode_id path string true "Mode id, e.g. classic"
// @Success 200 {object} modes.Description
// @Failure 404 {object} object{error=string}
// @Router /modes/{mode_id} [get]
func GetMode(c *gin.Context) {
	cfg, err := modes.ConfigFor(c.Param("mode_id"))
	var unknown *quiz_models.UnknownModeError
	if errors.As(err, &unknown) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, modes.Describe(cfg))
}
