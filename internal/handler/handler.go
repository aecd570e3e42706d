package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"

	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/middleware"
	"yatube/internal/render"
	"yatube/internal/service"
	"yatube/internal/storage"
	"yatube/internal/validation"
)

type Handlers struct {
	AuthService    service.AuthService
	UserService    service.UserService
	GroupService   service.GroupService
	FeedService    service.FeedService
	PostService    service.PostService
	CommentService service.CommentService
	FollowService  service.FollowService
	TablesService  service.TablesService
	Storage        storage.Storage
	PageCache      cache.Store
	Renderer       *render.Renderer
	Cfg            *config.Config
	decoder        *schema.Decoder
}

func NewHandlers(service *service.Service, storage storage.Storage, pageCache cache.Store, renderer *render.Renderer, config *config.Config) *Handlers {
	decoder := schema.NewDecoder()
	decoder.SetAliasTag("form")
	decoder.IgnoreUnknownKeys(true)

	return &Handlers{
		AuthService:    service.Auth,
		UserService:    service.User,
		GroupService:   service.Group,
		FeedService:    service.Feed,
		PostService:    service.Post,
		CommentService: service.Comment,
		FollowService:  service.Follow,
		TablesService:  service.Tables,
		Storage:        storage,
		PageCache:      pageCache,
		Renderer:       renderer,
		Cfg:            config,
		decoder:        decoder,
	}
}

// viewData is the template context. Path, Actor and Errors are always filled in by render.
type viewData map[string]any

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, name string, data viewData) {
	if data == nil {
		data = viewData{}
	}
	data["Path"] = r.URL.Path
	data["Actor"] = middleware.ActorFrom(r.Context())
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = validation.Errors{}
	}

	if err := h.Renderer.Render(w, status, name, data); err != nil {
		slog.ErrorContext(r.Context(), "ошибка рендеринга страницы", slog.String("template", name), slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// decodeForm parses a urlencoded or multipart body into dst.
func (h *Handlers) decodeForm(r *http.Request, dst any) error {
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return err
	}
	return h.decoder.Decode(dst, r.PostForm)
}
