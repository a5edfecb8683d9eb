package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sujalbistaa/folio/internal/auth"
	"github.com/sujalbistaa/folio/internal/config"
	"github.com/sujalbistaa/folio/internal/metrics"
	"github.com/sujalbistaa/folio/internal/models"
	"github.com/sujalbistaa/folio/internal/repository"
	"github.com/sujalbistaa/folio/internal/upload"
	"github.com/sujalbistaa/folio/internal/ws"
)

const (
	homePostLimit      = 6
	moderationComments = 20
)

// --- Handlers ---
type Env struct {
	Config         *config.Config
	Store          *repository.Store
	Auth           *auth.Service
	Uploads        *upload.Handler
	Hub            *ws.Hub
	Metrics        *metrics.Metrics
	CommentLimiter *IPRateLimiter
	Log            *zap.Logger
}

// parseID reads the :id path parameter. Anything but a positive integer is a 404.
func (e *Env) parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		e.notFound(c)
		return 0, false
	}
	return uint(id), true
}

func (e *Env) Home(c *gin.Context) {
	ctx := c.Request.Context()
	posts, err := e.Store.LatestPosts(ctx, homePostLimit)
	if err != nil {
		e.serverError(c, err)
		return
	}
	skills, err := e.Store.ListSkills(ctx)
	if err != nil {
		e.serverError(c, err)
		return
	}
	projects, err := e.Store.ListProjects(ctx)
	if err != nil {
		e.serverError(c, err)
		return
	}

	e.render(c, http.StatusOK, "index.html", &page{
		Title:             "Home",
		Posts:             posts,
		Skills:            skills,
		SkillGroups:       groupSkills(skills),
		Projects:          projects,
		ProjectCategories: projectCategories(projects),
	})
}

func (e *Env) Blog(c *gin.Context) {
	posts, err := e.Store.ListPosts(c.Request.Context())
	if err != nil {
		e.serverError(c, err)
		return
	}
	e.render(c, http.StatusOK, "blog.html", &page{Title: "Blog", Posts: posts})
}

func (e *Env) ShowPost(c *gin.Context) {
	id, ok := e.parseID(c)
	if !ok {
		return
	}
	post, err := e.Store.GetPost(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		e.notFound(c)
		return
	}
	if err != nil {
		e.serverError(c, err)
		return
	}
	e.render(c, http.StatusOK, "post.html", &page{Title: post.Title, Post: post, Comments: post.Comments})
}

// AddComment stores a visitor comment and pushes it to readers of the post.
func (e *Env) AddComment(c *gin.Context) {
	id, ok := e.parseID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	post, err := e.Store.GetPost(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		e.notFound(c)
		return
	}
	if err != nil {
		e.serverError(c, err)
		return
	}

	comment := models.Comment{
		Username: c.PostForm("username"),
		Content:  c.PostForm("content"),
		PostID:   post.ID,
	}
	if err := e.Store.CreateComment(ctx, &comment); err != nil {
		e.serverError(c, err)
		return
	}
	e.Metrics.CommentsCreated.Inc()
	e.Hub.Publish(post.ID, "comment", comment)

	e.flash(c, "Your comment has been posted!")
	c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", post.ID))
}

// LiveComments upgrades to a websocket that receives new comments on the post.
func (e *Env) LiveComments(c *gin.Context) {
	id, ok := e.parseID(c)
	if !ok {
		return
	}
	if _, err := e.Store.GetPost(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			e.notFound(c)
			return
		}
		e.serverError(c, err)
		return
	}
	ws.ServeWs(e.Hub, c.Writer, c.Request, id)
}

func (e *Env) NotFound(c *gin.Context) {
	e.notFound(c)
}
