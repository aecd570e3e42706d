package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"yatube/internal/logger"
	"yatube/internal/models"
)

type contextKey string

const actorKey contextKey = "actor"

// LoginURL is where anonymous visitors of protected pages are sent.
const LoginURL = "/auth/login/"

// Authenticator resolves a session token to the signed-in actor.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Actor, error)
}

func WithActor(ctx context.Context, actor *models.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFrom returns the signed-in actor or nil for an anonymous visitor.
func ActorFrom(ctx context.Context) *models.Actor {
	actor, _ := ctx.Value(actorKey).(*models.Actor)
	return actor
}

// Session reads the session cookie. A bad or stale cookie is dropped and the request continues anonymously.
func Session(auth Authenticator, cookieName string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			actor, err := auth.Authenticate(r.Context(), cookie.Value)
			if err != nil {
				slog.DebugContext(r.Context(), "сессия отклонена", slog.Any("error", err))
				http.SetCookie(w, &http.Cookie{Name: cookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
				next.ServeHTTP(w, r)
				return
			}

			ctx := logger.WithUserID(WithActor(r.Context(), actor), actor.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LoginRequired redirects anonymous visitors to the login page, remembering where they were going.
func LoginRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !ActorFrom(r.Context()).IsAuthenticated() {
			http.Redirect(w, r, LoginRedirectURL(r.URL.RequestURI()), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// LoginRedirectURL builds /auth/login/?next=<path>, keeping slashes readable.
func LoginRedirectURL(next string) string {
	return LoginURL + "?next=" + strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
}

// SafeNext accepts only local absolute paths as a post-login target.
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
