package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sweetspot260/sweetlife/internal/domain"
	"github.com/sweetspot260/sweetlife/internal/middleware"
	"github.com/sweetspot260/sweetlife/internal/service"
	"github.com/sweetspot260/sweetlife/internal/web"
	apperrors "github.com/sweetspot260/sweetlife/pkg/errors"
	"github.com/sweetspot260/sweetlife/pkg/logger"
)

// AdminHandler serves the HTML admin surface: login, registration, dashboard
// and moderation actions
type AdminHandler struct {
	adminService   service.AdminService
	commentService service.CommentService
	statsService   service.StatsService
	renderer       *web.Renderer
	logger         *logger.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService service.AdminService, commentService service.CommentService, statsService service.StatsService, renderer *web.Renderer, logger *logger.Logger) *AdminHandler {
	return &AdminHandler{
		adminService:   adminService,
		commentService: commentService,
		statsService:   statsService,
		renderer:       renderer,
		logger:         logger,
	}
}

// LoginForm handles GET /admin/login
func (h *AdminHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, "login.html", web.LoginData{})
}

// Login handles POST /admin/login. Bad credentials re-render the form with a
// message rather than returning a structured error.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, "login.html", web.LoginData{Error: "Invalid form submission"})
		return
	}

	token, err := h.adminService.Login(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		h.render(w, "login.html", web.LoginData{Error: loginFailureMessage(err)})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// RegisterForm handles GET /admin/register
func (h *AdminHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, "register.html", web.RegisterData{})
}

// Register handles POST /admin/register
func (h *AdminHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, "register.html", web.RegisterData{Error: "Invalid form submission"})
		return
	}

	err := h.adminService.Register(r.Context(),
		r.PostFormValue("username"),
		r.PostFormValue("password"),
		r.PostFormValue("secret"),
	)
	if err != nil {
		h.render(w, "register.html", web.RegisterData{Error: registerFailureMessage(err)})
		return
	}

	h.render(w, "register.html", web.RegisterData{Success: "Admin created successfully!"})
}

// Dashboard handles GET /admin
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	admin, _ := middleware.AdminFromContext(r.Context())

	data := web.DashboardData{
		Admin: admin,
		Stats: &domain.Stats{},
	}

	comments, err := h.commentService.ListAll(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to load comments for dashboard")
	} else {
		data.Comments = comments
		for _, c := range comments {
			if c.Approved {
				data.Summary.Approved++
			}
		}
		data.Summary.Total = len(comments)
		data.Summary.Pending = data.Summary.Total - data.Summary.Approved
	}

	stats, err := h.statsService.Get(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to load stats for dashboard")
	} else {
		data.Stats = stats
	}

	h.render(w, "dashboard.html", data)
}

// ApproveComment handles POST /admin/comment/approve/{id}
func (h *AdminHandler) ApproveComment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err == nil {
		if err := h.commentService.Approve(r.Context(), id); err != nil {
			// Unknown id is a no-op for the redirect flow
			h.logger.WithError(err).WithField("comment_id", id).Warn("Comment approval failed")
		}
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// DeleteComment handles POST /admin/comment/delete/{id}
func (h *AdminHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err == nil {
		if err := h.commentService.Delete(r.Context(), id); err != nil {
			h.logger.WithError(err).WithField("comment_id", id).Warn("Comment deletion failed")
		}
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// ResetStats handles POST /admin/reset-stats
func (h *AdminHandler) ResetStats(w http.ResponseWriter, r *http.Request) {
	if err := h.statsService.ResetAll(r.Context()); err != nil {
		h.logger.WithError(err).Error("Manual stats reset failed")
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Logout handles GET /admin/logout
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

// RegisterRoutes registers the admin routes; sessionGate wraps everything
// that requires an authenticated admin
func (h *AdminHandler) RegisterRoutes(r chi.Router, sessionGate func(http.Handler) http.Handler) {
	r.Get("/login", h.LoginForm)
	r.Post("/login", h.Login)
	r.Get("/register", h.RegisterForm)
	r.Post("/register", h.Register)
	r.Get("/logout", h.Logout)

	r.Group(func(r chi.Router) {
		r.Use(sessionGate)
		r.Get("/", h.Dashboard)
		r.Post("/comment/approve/{id}", h.ApproveComment)
		r.Post("/comment/delete/{id}", h.DeleteComment)
		r.Post("/reset-stats", h.ResetStats)
	})
}

func (h *AdminHandler) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(w, name, data); err != nil {
		h.logger.WithError(err).WithField("template", name).Error("Failed to render view")
	}
}

// loginFailureMessage maps a login error to the form message
func loginFailureMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Type == apperrors.ErrorTypeUnauthorized {
		return "Invalid username or password"
	}
	return "Login failed, try again"
}

// registerFailureMessage maps a registration error to the form message
func registerFailureMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case apperrors.ErrorTypeUnauthorized:
			return "Invalid secret code!"
		case apperrors.ErrorTypeConflict:
			return "Username already exists!"
		case apperrors.ErrorTypeValidation:
			return appErr.Message
		}
	}
	return "Registration failed, try again"
}
