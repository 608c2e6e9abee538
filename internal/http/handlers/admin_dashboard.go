package handlers

import (
	"github.com/gin-gonic/gin"
)

// AdminDashboard returns the aggregate stats behind the admin home screen.
func (h *Handler) AdminDashboard(c *gin.Context) {
	stats, err := h.AdminService.GetDashboardStats(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, gin.H{"stats": stats})
}
