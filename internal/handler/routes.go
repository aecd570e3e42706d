package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"yatube/internal/cache"
	"yatube/internal/middleware"
)

// Routes builds the router and wraps it with the request middleware chain.
func (h *Handlers) Routes() http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(h.NotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(h.MethodNotAllowed)
	router.Use(middleware.Metrics)

	login := func(f http.HandlerFunc) http.Handler {
		return middleware.LoginRequired(f)
	}

	// feeds
	router.Handle("/", h.cachedIndex()).Methods(http.MethodGet)
	router.HandleFunc("/group/{slug}/", h.GroupPosts).Methods(http.MethodGet)
	router.HandleFunc("/profile/{username}/", h.Profile).Methods(http.MethodGet)
	router.Handle("/follow/", login(h.FollowIndex)).Methods(http.MethodGet)

	// posts
	router.HandleFunc("/posts/{id:[0-9]+}/", h.PostDetail).Methods(http.MethodGet)
	router.Handle("/create/", login(h.PostCreate)).Methods(http.MethodGet, http.MethodPost)
	router.Handle("/posts/{id:[0-9]+}/edit/", login(h.PostEdit)).Methods(http.MethodGet, http.MethodPost)
	router.Handle("/posts/{id:[0-9]+}/comment/", login(h.AddComment)).Methods(http.MethodGet, http.MethodPost)

	// follows
	router.Handle("/profile/{username}/follow/", login(h.ProfileFollow)).Methods(http.MethodGet)
	router.Handle("/profile/{username}/unfollow/", login(h.ProfileUnfollow)).Methods(http.MethodGet)

	// auth
	router.HandleFunc("/auth/signup/", h.Signup).Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc("/auth/login/", h.Login).Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc("/auth/logout/", h.Logout).Methods(http.MethodGet, http.MethodPost)

	// static pages
	router.HandleFunc("/about/author/", h.AboutAuthor).Methods(http.MethodGet)
	router.HandleFunc("/about/tech/", h.AboutTech).Methods(http.MethodGet)

	// service
	router.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/media/{object:.+}", h.Media).Methods(http.MethodGet)

	return middleware.Chain(
		router,
		middleware.RequestID,
		middleware.Logging,
		middleware.Recover(h.ServerError),
		middleware.Session(h.AuthService, h.Cfg.Session.CookieName),
	)
}

// cachedIndex serves the main feed through the page cache, keyed per viewer.
func (h *Handlers) cachedIndex() http.Handler {
	if h.PageCache == nil {
		return http.HandlerFunc(h.Index)
	}

	keyFunc := func(r *http.Request) string {
		username := ""
		if actor := middleware.ActorFrom(r.Context()); actor != nil {
			username = actor.Username
		}
		return cache.PageKey(r, username)
	}

	return cache.Page(h.PageCache, h.Cfg.Feed.IndexCacheTTL, keyFunc)(http.HandlerFunc(h.Index))
}
