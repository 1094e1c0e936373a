package settings

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.GET("/settings", h.GetAll)
	r.PUT("/settings/:key", h.Put)
}

func (h *Handler) GetAll(c *gin.Context) {
	values, err := h.svc.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, values)
}

type putRequest struct {
	Value string `json:"value" binding:"required"`
}

func (h *Handler) Put(c *gin.Context) {
	key := c.Param("key")

	var req putRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "value is required"})
		return
	}

	if err := h.svc.Put(c.Request.Context(), key, req.Value); err != nil {
		var inv *InvalidValueError
		if errors.As(err, &inv) {
			c.JSON(http.StatusBadRequest, gin.H{"error": inv.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save setting"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "saved"})
}
