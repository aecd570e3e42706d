package handlers

import (
	"log/slog"
	"net/http"

	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/validation"
)

// startSession issues a token for user and stores it in the session cookie.
func (h *Handlers) startSession(w http.ResponseWriter, user *models.User) error {
	token, err := h.AuthService.IssueToken(user)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.Cfg.Session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.Cfg.Session.Duration.Seconds()),
		HttpOnly: true,
		Secure:   h.Cfg.Session.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	form := &validation.SignupForm{}

	if r.Method == http.MethodGet {
		h.render(w, r, http.StatusOK, "users/signup", viewData{"Form": form})
		return
	}

	if err := h.decodeForm(r, form); err != nil {
		http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	user, err := h.AuthService.Signup(r.Context(), form)
	if err != nil {
		if verrs, ok := validation.AsErrors(err); ok {
			h.render(w, r, http.StatusOK, "users/signup", viewData{"Form": form, "Errors": verrs})
			return
		}
		h.handleServiceError(w, r, err)
		return
	}

	if err := h.startSession(w, user); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "пользователь зарегистрирован", slog.String("username", user.Username))
	http.Redirect(w, r, "/", http.StatusFound)
}

// Login honours ?next= so protected pages send the visitor back after signing in.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	form := &validation.LoginForm{}

	if r.Method == http.MethodGet {
		h.render(w, r, http.StatusOK, "users/login", viewData{"Form": form, "Next": r.URL.Query().Get("next")})
		return
	}

	if err := h.decodeForm(r, form); err != nil {
		http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}
	next := r.PostForm.Get("next")

	user, err := h.AuthService.Login(r.Context(), form)
	if err != nil {
		if verrs, ok := validation.AsErrors(err); ok {
			h.render(w, r, http.StatusOK, "users/login", viewData{"Form": form, "Errors": verrs, "Next": next})
			return
		}
		h.handleServiceError(w, r, err)
		return
	}

	if err := h.startSession(w, user); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	http.Redirect(w, r, middleware.SafeNext(next), http.StatusFound)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.Cfg.Session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	// the page itself must not show the user as signed in
	ctx := middleware.WithActor(r.Context(), nil)
	h.render(w, r.WithContext(ctx), http.StatusOK, "users/logged_out", nil)
}
