package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// @Summary Health check
// @Description Answers pong with the server clock, clients use it to estimate skew on question timers
// @Tags network
// @Produce json
// @Success 200 {object} object{message=string,server_time=string}
// @Router /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":     "pong",
		"server_time": time.Now().UTC().Format(time.RFC3339Nano),
	})
}
