package ui

import (
	"bytes"
	"html/template"
	"io/fs"
	"strings"

	"github.com/gin-gonic/gin"
)

func parseTemplates(files fs.FS) (*template.Template, error) {
	funcMap := template.FuncMap{
		"markdown":       renderMarkdown,
		"inlineMarkdown": renderInlineMarkdown,
	}
	return template.New("").Funcs(funcMap).ParseFS(files, "templates/*.html")
}

// renderTemplate executes a template with the given data
func (s *Server) renderTemplate(c *gin.Context, status int, templateName string, data interface{}) {
	// First render to a buffer to catch any errors before writing to response
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		s.logger.Error("template error for %s (%T): %v", templateName, data, err)
		c.AbortWithStatusJSON(500, gin.H{"error": "Template rendering failed"})
		return
	}

	if !strings.Contains(buf.String(), "</html>") {
		s.logger.Warn("rendered template %s appears truncated, missing </html> tag", templateName)
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Writer.WriteHeader(status)
	if _, err := buf.WriteTo(c.Writer); err != nil {
		s.logger.Error("error writing template response: %v", err)
	}
}
