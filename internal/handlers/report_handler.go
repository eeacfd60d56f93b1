package handlers

import (
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"societyportal/internal/services"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: service}
}

// @Summary      Member roster PDF
// @Tags         Reports
// @Security     BearerAuth
// @Produce      application/pdf
// @Success      200
// @Failure      403  {object}  map[string]string
// @Router       /reports/members.pdf [get]
func (h *ReportHandler) MembersPDF(c *gin.Context) {
	path, err := h.Service.MemberRosterPDF()
	if err != nil {
		log.Printf("[reports][members] generate failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate roster"})
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
