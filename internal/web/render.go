// Package web — тонкий слой рендеринга: один встроенный шаблон страницы.
package web

import (
	"embed"
	"html/template"
	"io"

	"github.com/GoArmGo/ContactBook/internal/domain"
)

//go:embed index.html
var templateFS embed.FS

// Page — модель данных шаблона индексной страницы.
// Одновременно показывается либо список результатов, либо feedback, не оба.
type Page struct {
	Results  []domain.Contact
	NotFound bool
	Feedback string
}

// Renderer рендерит индексную страницу.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer парсит встроенный шаблон. Ошибка здесь — дефект сборки,
// поэтому используется template.Must.
func NewRenderer() *Renderer {
	return &Renderer{
		tmpl: template.Must(template.ParseFS(templateFS, "index.html")),
	}
}

// RenderIndex пишет страницу в w.
func (r *Renderer) RenderIndex(w io.Writer, page Page) error {
	return r.tmpl.ExecuteTemplate(w, "index.html", page)
}
