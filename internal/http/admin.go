package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sujalbistaa/folio/internal/models"
	"github.com/sujalbistaa/folio/internal/repository"
	"github.com/sujalbistaa/folio/internal/upload"
)

func (e *Env) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	posts, err := e.Store.ListPosts(ctx)
	if err != nil {
		e.serverError(c, err)
		return
	}
	projects, err := e.Store.ListProjects(ctx)
	if err != nil {
		e.serverError(c, err)
		return
	}
	skills, err := e.Store.ListSkills(ctx)
	if err != nil {
		e.serverError(c, err)
		return
	}
	comments, err := e.Store.RecentComments(ctx, moderationComments)
	if err != nil {
		e.serverError(c, err)
		return
	}

	e.render(c, http.StatusOK, "admin.html", &page{
		Title:    "Admin",
		Posts:    posts,
		Projects: projects,
		Skills:   skills,
		Comments: comments,
	})
}

// CreatePost publishes a post. The image is an uploaded file, else the image_file URL, else none.
func (e *Env) CreatePost(c *gin.Context) {
	imageURL := c.PostForm("image_file")
	file, err := c.FormFile("file")
	if err != nil {
		file = nil
	}

	image, source, err := e.Uploads.HandleImage(file, imageURL)
	if err != nil {
		e.serverError(c, err)
		return
	}

	post := models.Post{
		Title:     c.PostForm("title"),
		Content:   c.PostForm("content"),
		ImageFile: image,
	}
	if err := e.Store.CreatePost(c.Request.Context(), &post); err != nil {
		if source == upload.SourceFile {
			if rmErr := e.Uploads.Remove(*image); rmErr != nil {
				e.Log.Error("failed to remove orphaned upload", zap.String("file", *image), zap.Error(rmErr))
			}
		}
		e.serverError(c, err)
		return
	}
	e.Metrics.Uploads.WithLabelValues(string(source)).Inc()
	e.Log.Info("post created", zap.Uint("post_id", post.ID), zap.String("image_source", string(source)))

	e.flash(c, "Post published!")
	c.Redirect(http.StatusFound, "/admin")
}

func (e *Env) CreateProject(c *gin.Context) {
	project := models.Project{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Link:        optionalField(c, "link"),
		GithubLink:  optionalField(c, "github_link"),
		Category:    c.PostForm("category"),
		Tags:        c.PostForm("tags"),
	}
	if err := e.Store.CreateProject(c.Request.Context(), &project); err != nil {
		e.serverError(c, err)
		return
	}
	e.flash(c, "Project added!")
	c.Redirect(http.StatusFound, "/admin")
}

func (e *Env) CreateSkill(c *gin.Context) {
	skill := models.Skill{
		Name:     c.PostForm("name"),
		Icon:     c.PostForm("icon"),
		Category: c.PostForm("category"),
	}
	if err := e.Store.CreateSkill(c.Request.Context(), &skill); err != nil {
		e.serverError(c, err)
		return
	}
	e.flash(c, "Skill added!")
	c.Redirect(http.StatusFound, "/admin")
}

func (e *Env) DeletePost(c *gin.Context) {
	e.deleteByID(c, e.Store.DeletePost, "Post deleted.")
}

func (e *Env) DeleteProject(c *gin.Context) {
	e.deleteByID(c, e.Store.DeleteProject, "Project deleted.")
}

func (e *Env) DeleteSkill(c *gin.Context) {
	e.deleteByID(c, e.Store.DeleteSkill, "Skill deleted.")
}

func (e *Env) DeleteComment(c *gin.Context) {
	e.deleteByID(c, e.Store.DeleteComment, "Comment deleted.")
}

func (e *Env) deleteByID(c *gin.Context, del func(context.Context, uint) error, notice string) {
	id, ok := e.parseID(c)
	if !ok {
		return
	}
	err := del(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		e.notFound(c)
		return
	}
	if err != nil {
		e.serverError(c, err)
		return
	}
	e.flash(c, notice)
	c.Redirect(http.StatusFound, "/admin")
}

// optionalField is nil when the form has no such field, which stores NULL.
func optionalField(c *gin.Context, name string) *string {
	v, ok := c.GetPostForm(name)
	if !ok {
		return nil
	}
	return &v
}
