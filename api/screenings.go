package api

import (
	"net/http"

	"github.com/Domenick1991/cinemabooking/internal/service/screenings"
	"github.com/gin-gonic/gin"
)

type ScreeningHandler struct {
	service screenings.ScreeningUseCase
}

func NewScreeningHandler(service screenings.ScreeningUseCase) *ScreeningHandler {
	return &ScreeningHandler{service: service}
}

func (h *ScreeningHandler) Register(router gin.IRouter) {
	router.GET("/screenings", h.list)
}

func (h *ScreeningHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}
