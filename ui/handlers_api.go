package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/corricelli/NGSS-Dynamic-Data-Gem/app"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/domain/submission"
	apperrors "github.com/corricelli/NGSS-Dynamic-Data-Gem/internal/errors"
)

type submissionResponse struct {
	ID      string            `json:"id"`
	URL     string            `json:"url"`
	Summary []submission.Pair `json:"summary"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleCatalog returns the phenomenon catalog the form is built from
func (s *Server) handleCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, s.forms.Catalog())
}

// handleCreateSubmission is the JSON twin of POST /submit
func (s *Server) handleCreateSubmission(c *gin.Context) {
	var req app.FormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, apperrors.InvalidInput("malformed request body: "+err.Error()))
		return
	}

	state, err := s.forms.Build(req)
	var sub *app.Submission
	if err == nil {
		sub, err = s.forms.Submit(state)
	}
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, submissionResponse{
		ID:      sub.Record.ID.String(),
		URL:     sub.URL,
		Summary: sub.Summary,
	})
}

func (s *Server) abortWithError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		c.AbortWithStatusJSON(status, gin.H{"error": apperrors.CodeInternalError})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{
		"error":    apperrors.GetCode(err),
		"messages": errorMessages(err),
	})
}
