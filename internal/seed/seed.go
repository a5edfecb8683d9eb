// Package seed fills the skills and projects tables with the sample portfolio content.
package seed

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sujalbistaa/folio/internal/db"
	"github.com/sujalbistaa/folio/internal/models"
)

const githubProfile = "https://github.com/nazimisenc"

// Skills returns the fixed skill list, grouped by category.
func Skills() []models.Skill {
	return []models.Skill{
		// Frontend
		{Name: "HTML/CSS", Icon: "fab fa-html5", Category: "Frontend"},
		{Name: "Javascript", Icon: "fab fa-js", Category: "Frontend"},
		{Name: "React", Icon: "fab fa-react", Category: "Frontend"},
		{Name: "UI/UX Design", Icon: "fas fa-palette", Category: "Frontend"},

		// Backend
		{Name: "Python", Icon: "fab fa-python", Category: "Backend"},
		{Name: "MySQL", Icon: "fas fa-database", Category: "Backend"},
		{Name: "MongoDB", Icon: "fas fa-leaf", Category: "Backend"},

		// Languages
		{Name: "Java", Icon: "fab fa-java", Category: "Languages"},
		{Name: "C", Icon: "fas fa-microchip", Category: "Languages"},
		{Name: "C#", Icon: "fas fa-code", Category: "Languages"},
		{Name: "C++", Icon: "fas fa-terminal", Category: "Languages"},

		// Game
		{Name: "Unity", Icon: "fab fa-unity", Category: "Game"},
		{Name: "Game Design", Icon: "fas fa-gamepad", Category: "Game"},
	}
}

// Projects returns the fixed project list.
func Projects() []models.Project {
	github := func() *string { s := githubProfile; return &s }
	return []models.Project{
		{
			Title:       "To-Do App",
			Description: "Kullanıcıların günlük görevlerini ekleyip, tamamlayıp silebildiği pratik bir görev yönetim uygulaması.",
			Category:    "web",
			Tags:        "HTML, CSS, JS, LocalStorage",
			GithubLink:  github(),
		},
		{
			Title:       "Kim Milyoner Olmak İster",
			Description: "Televizyon yarışması formatında, süre ve joker özellikli bilgi yarışması oyunu.",
			Category:    "game",
			Tags:        "C#, Unity, Educational",
			GithubLink:  github(),
		},
		{
			Title:       "Alışveriş Sitesi",
			Description: "Ürün listeleme, sepet yönetimi ve ödeme simülasyonu içeren kapsamlı e-ticaret platformu.",
			Category:    "web",
			Tags:        "Python, Flask, SQLite, Bootstrap",
			GithubLink:  github(),
		},
		{
			Title:       "Profil Blog",
			Description: "Kişisel blog yazılarının paylaşıldığı, dinamik içerik yönetimine sahip portfolyo sitesi.",
			Category:    "web",
			Tags:        "Python, Flask, Admin Panel",
			GithubLink:  github(),
		},
	}
}

// Result reports what Run did.
type Result struct {
	Wiped    bool
	Skills   int
	Projects int
}

// Run migrates the schema, wipes existing skills and projects, and inserts the fixed lists.
// Running it any number of times leaves the same rows.
func Run(ctx context.Context, database *gorm.DB) (Result, error) {
	var res Result
	if err := db.Migrate(database.WithContext(ctx)); err != nil {
		return res, err
	}

	err := database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var projects, skills int64
		if err := tx.Model(&models.Project{}).Count(&projects).Error; err != nil {
			return fmt.Errorf("count projects: %w", err)
		}
		if err := tx.Model(&models.Skill{}).Count(&skills).Error; err != nil {
			return fmt.Errorf("count skills: %w", err)
		}

		if projects > 0 || skills > 0 {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Project{}).Error; err != nil {
				return fmt.Errorf("clear projects: %w", err)
			}
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Skill{}).Error; err != nil {
				return fmt.Errorf("clear skills: %w", err)
			}
			res.Wiped = true
		}

		skillRows := Skills()
		if err := tx.Create(&skillRows).Error; err != nil {
			return fmt.Errorf("insert skills: %w", err)
		}

		projectRows := Projects()
		now := time.Now().UTC()
		for i := range projectRows {
			projectRows[i].DateCreated = now
		}
		if err := tx.Create(&projectRows).Error; err != nil {
			return fmt.Errorf("insert projects: %w", err)
		}

		res.Skills = len(skillRows)
		res.Projects = len(projectRows)
		return nil
	})
	return res, err
}
