package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"yatube/internal/middleware"
)

func profileURL(username string) string {
	return "/profile/" + username + "/"
}

func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFrom(r.Context())

	profile, err := h.FeedService.ListByAuthor(r.Context(), actor, mux.Vars(r)["username"], r.URL.Query().Get("page"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "posts/profile", viewData{"Profile": profile})
}

// FollowIndex is the feed of authors the actor follows.
func (h *Handlers) FollowIndex(w http.ResponseWriter, r *http.Request) {
	page, err := h.FeedService.ListFollowed(r.Context(), middleware.ActorFrom(r.Context()), r.URL.Query().Get("page"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "posts/follow", viewData{"Page": page})
}

func (h *Handlers) ProfileFollow(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	if err := h.FollowService.Follow(r.Context(), middleware.ActorFrom(r.Context()), username); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	http.Redirect(w, r, profileURL(username), http.StatusFound)
}

func (h *Handlers) ProfileUnfollow(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	if err := h.FollowService.Unfollow(r.Context(), middleware.ActorFrom(r.Context()), username); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	http.Redirect(w, r, profileURL(username), http.StatusFound)
}

func (h *Handlers) AboutAuthor(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "about/author", nil)
}

func (h *Handlers) AboutTech(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "about/tech", nil)
}
