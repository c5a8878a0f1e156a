package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	contractx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/contract"
	"github.com/tanpawarit/Chative-Food-Delivery-Support/agent/metrics"
	nodex "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/nodes/orchestrator"
)

const internalErrorDetail = "Something went wrong while handling your request. Please try again later."

type ChatRequest struct {
	UserQuery string `json:"user_query"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) chatChatbot(c *gin.Context) {
	started := time.Now()
	status := http.StatusOK
	defer func() {
		metrics.ChatRequestsTotal.WithLabelValues(strconv.Itoa(status)).Inc()
		metrics.ChatRequestDuration.Observe(time.Since(started).Seconds())
	}()

	userID := c.Query("user_id")

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		status = http.StatusBadRequest
		c.JSON(status, errorResponse{Detail: "request body must be JSON with a user_query string"})
		return
	}

	resp, err := s.chat.HandleChat(c.Request.Context(), userID, req.UserQuery)
	if err != nil {
		if errors.Is(err, contractx.ErrValidation) {
			status = http.StatusBadRequest
			c.JSON(status, errorResponse{Detail: validationDetail(err)})
			return
		}
		s.log.Error().Err(err).Str("user_id", userID).Msg("chat request failed")
		status = http.StatusInternalServerError
		c.JSON(status, errorResponse{Detail: internalErrorDetail})
		return
	}

	c.JSON(status, resp)
}

func validationDetail(err error) string {
	switch {
	case errors.Is(err, nodex.ErrInvalidUser):
		return "user_id is required"
	case errors.Is(err, nodex.ErrInvalidMessage):
		return "user_query must not be empty"
	}
	return "invalid request"
}
