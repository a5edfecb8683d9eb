package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Read-only JSON listings for a separate front-end.

func (e *Env) GetPosts(c *gin.Context) {
	posts, err := e.Store.ListPosts(c.Request.Context())
	if err != nil {
		e.Log.Error("Error fetching posts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (e *Env) GetProjects(c *gin.Context) {
	projects, err := e.Store.ListProjects(c.Request.Context())
	if err != nil {
		e.Log.Error("Error fetching projects", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects"})
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (e *Env) GetSkills(c *gin.Context) {
	skills, err := e.Store.ListSkills(c.Request.Context())
	if err != nil {
		e.Log.Error("Error fetching skills", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch skills"})
		return
	}
	c.JSON(http.StatusOK, skills)
}
