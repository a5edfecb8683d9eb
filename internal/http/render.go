package http

import (
	"embed"
	"encoding/base64"
	"encoding/json"
	"html/template"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sujalbistaa/folio/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

const flashCookie = "folio_flash"

// page is the data every template receives.
type page struct {
	Title       string
	Path        string
	Flashes     []string
	CurrentUser *models.User

	Post     *models.Post
	Posts    []models.Post
	Projects []models.Project
	Skills   []models.Skill
	Comments []models.Comment

	SkillGroups       []skillGroup
	ProjectCategories []string

	Status  int
	Message string
}

type skillGroup struct {
	Category string
	Skills   []models.Skill
}

var templateFuncs = template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02 Jan 2006, 15:04")
	},
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"excerpt": func(s string, n int) string {
		if utf8.RuneCountInString(s) <= n {
			return s
		}
		return strings.TrimSpace(string([]rune(s)[:n])) + "…"
	},
}

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html"))
}

func (e *Env) render(c *gin.Context, status int, name string, p *page) {
	if p == nil {
		p = &page{}
	}
	p.Path = c.Request.URL.Path
	if p.CurrentUser == nil {
		p.CurrentUser = currentUser(c)
	}
	p.Flashes = append(e.takeFlashes(c), p.Flashes...)
	c.HTML(status, name, p)
}

// renderStatus shows the shared error page.
func (e *Env) renderStatus(c *gin.Context, status int, message string) {
	e.render(c, status, "error.html", &page{
		Title:   http.StatusText(status),
		Status:  status,
		Message: message,
	})
}

func (e *Env) notFound(c *gin.Context) {
	e.renderStatus(c, http.StatusNotFound, "The page you are looking for does not exist.")
}

func (e *Env) serverError(c *gin.Context, err error) {
	e.Log.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	_ = c.Error(err)
	e.renderStatus(c, http.StatusInternalServerError, "Something went wrong on our side.")
}

// flash queues a one-time notice for the next rendered page.
func (e *Env) flash(c *gin.Context, message string) {
	pending := append(e.pendingFlashes(c), message)
	c.Set(flashCookie, pending)

	raw, err := json.Marshal(pending)
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, base64.RawURLEncoding.EncodeToString(raw), 0, "/", "", e.Config.IsProduction(), true)
}

// pendingFlashes returns notices queued during this request.
func (e *Env) pendingFlashes(c *gin.Context) []string {
	if v, ok := c.Get(flashCookie); ok {
		if msgs, ok := v.([]string); ok {
			return msgs
		}
	}
	return nil
}

// takeFlashes returns the notices carried over from the previous response and clears them.
func (e *Env) takeFlashes(c *gin.Context) []string {
	value, err := c.Cookie(flashCookie)
	if err != nil || value == "" {
		return nil
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, "", -1, "/", "", e.Config.IsProduction(), true)

	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil
	}
	var msgs []string
	if err := json.Unmarshal(raw, &msgs); err != nil {
		return nil
	}
	return msgs
}

// groupSkills keeps categories in first-seen order.
func groupSkills(skills []models.Skill) []skillGroup {
	var groups []skillGroup
	index := map[string]int{}
	for _, s := range skills {
		i, ok := index[s.Category]
		if !ok {
			i = len(groups)
			index[s.Category] = i
			groups = append(groups, skillGroup{Category: s.Category})
		}
		groups[i].Skills = append(groups[i].Skills, s)
	}
	return groups
}

func projectCategories(projects []models.Project) []string {
	var cats []string
	seen := map[string]bool{}
	for _, p := range projects {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			cats = append(cats, p.Category)
		}
	}
	return cats
}
