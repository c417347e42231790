package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/GoArmGo/ContactBook/internal/core/ports"
	"github.com/GoArmGo/ContactBook/internal/usecase"
	"github.com/GoArmGo/ContactBook/internal/web"
)

// Имена полей формы на индексной странице.
const (
	fieldKeyword  = "user_keyword"
	fieldUsername = "username"
	fieldEmail    = "useremail"
)

// ContactHandler — обработчик HTTP-запросов справочника контактов.
type ContactHandler struct {
	contacts usecase.ContactUseCase
	storage  ports.ContactStorage
	renderer *web.Renderer
	logger   *slog.Logger
}

// NewContactHandler создаёт новый экземпляр ContactHandler.
func NewContactHandler(
	uc usecase.ContactUseCase,
	storage ports.ContactStorage,
	renderer *web.Renderer,
	logger *slog.Logger,
) *ContactHandler {
	return &ContactHandler{
		contacts: uc,
		storage:  storage,
		renderer: renderer,
		logger:   logger,
	}
}

// Health — проверка живости процесса, без обращения к хранилищу.
func (h *ContactHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		h.logger.Error("failed to write HTTP response", "error", err)
	}
}

// HealthDB — тривиальный round-trip к БД. Деталь ошибки остаётся в логах,
// клиенту уходит общий текст без данных драйвера.
func (h *ContactHandler) HealthDB(w http.ResponseWriter, r *http.Request) {
	if err := h.storage.Ping(r.Context()); err != nil {
		h.logger.Error("database health check failed", "error", err)
		http.Error(w, "db error: database unreachable", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		h.logger.Error("failed to write HTTP response", "error", err)
	}
}

// Index обслуживает GET и POST индексной страницы.
// POST различает две формы по набору полей: поиск (user_keyword)
// и добавление (username + useremail). Прочие POST — пустая страница.
func (h *ContactHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.render(w, web.Page{})
		return
	}

	if err := r.ParseForm(); err != nil {
		h.logger.Warn("failed to parse form", "error", err)
		h.render(w, web.Page{})
		return
	}

	switch {
	case r.PostForm.Has(fieldKeyword):
		h.handleSearch(w, r)
	case r.PostForm.Has(fieldUsername) && r.PostForm.Has(fieldEmail):
		h.handleAdd(w, r)
	default:
		h.render(w, web.Page{})
	}
}

func (h *ContactHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	keyword := strings.TrimSpace(r.PostForm.Get(fieldKeyword))

	results, err := h.contacts.Search(r.Context(), keyword)
	if err != nil {
		h.logger.Error("contact search failed", "keyword", keyword, "error", err)
		http.Error(w, "db error: database unreachable", http.StatusInternalServerError)
		return
	}

	h.logger.Info("search handled", "keyword", keyword, "matches", len(results))
	h.render(w, web.Page{Results: results, NotFound: len(results) == 0})
}

func (h *ContactHandler) handleAdd(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.PostForm.Get(fieldUsername))
	email := strings.TrimSpace(r.PostForm.Get(fieldEmail))

	feedback := h.contacts.Add(r.Context(), username, email)

	h.logger.Info("add handled", "username", username, "feedback", feedback)
	h.render(w, web.Page{Feedback: feedback})
}

func (h *ContactHandler) render(w http.ResponseWriter, page web.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.RenderIndex(w, page); err != nil {
		h.logger.Error("failed to render index page", "error", err)
	}
}
