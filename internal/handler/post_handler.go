package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/mux"

	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/policy"
	"yatube/internal/service"
	"yatube/internal/validation"
)

// multipart framing on top of the file itself
const uploadOverhead = 1 << 20

func postID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id, err == nil && id > 0
}

func postURL(id int64) string {
	return fmt.Sprintf("/posts/%d/", id)
}

func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	page, err := h.FeedService.ListAll(r.Context(), r.URL.Query().Get("page"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "posts/index", viewData{"Page": page})
}

func (h *Handlers) GroupPosts(w http.ResponseWriter, r *http.Request) {
	group, page, err := h.FeedService.ListByGroup(r.Context(), mux.Vars(r)["slug"], r.URL.Query().Get("page"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "posts/group_list", viewData{"Group": group, "Page": page})
}

func (h *Handlers) PostDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	detail, err := h.PostService.GetPostDetail(r.Context(), middleware.ActorFrom(r.Context()), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "posts/post_detail", viewData{
		"Detail": detail,
		"Form":   &validation.CommentForm{},
	})
}

// renderPostForm shows the create or edit page with the group choices.
func (h *Handlers) renderPostForm(w http.ResponseWriter, r *http.Request, form *validation.PostForm, errs validation.Errors, post *models.Post) {
	groups, err := h.GroupService.ListGroups(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	data := viewData{"Form": form, "Errors": errs, "Groups": groups}
	if post != nil {
		data["IsEdit"] = true
		data["PostID"] = post.PostID
		data["CurrentImage"] = post.Image.String
	}

	h.render(w, r, http.StatusOK, "posts/create_post", data)
}

// readPostForm decodes the post form and the optional image. A body over the
// upload limit is reported as an image error.
func (h *Handlers) readPostForm(w http.ResponseWriter, r *http.Request) (*validation.PostForm, *validation.ImageUpload, validation.Errors, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize+uploadOverhead)

	form := &validation.PostForm{}
	if err := h.decodeForm(r, form); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			msg := fmt.Sprintf("Файл слишком большой (макс. %s).", humanize.IBytes(uint64(h.Cfg.MaxUploadSize)))
			return form, nil, validation.Errors{"image": {msg}}, nil
		}
		return nil, nil, nil, err
	}

	if r.MultipartForm == nil {
		return form, nil, nil, nil
	}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return form, nil, nil, nil
	}
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("ошибка чтения файла: %w", err)
	}

	return form, &validation.ImageUpload{FileName: header.Filename, Data: data}, nil, nil
}

func (h *Handlers) PostCreate(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFrom(r.Context())

	if r.Method == http.MethodGet {
		h.renderPostForm(w, r, &validation.PostForm{}, nil, nil)
		return
	}

	form, image, errs, err := h.readPostForm(w, r)
	if err != nil {
		http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}
	if errs != nil {
		h.renderPostForm(w, r, form, errs, nil)
		return
	}

	if _, err := h.PostService.CreatePost(r.Context(), actor, form, image); err != nil {
		if verrs, ok := validation.AsErrors(err); ok {
			h.renderPostForm(w, r, form, verrs, nil)
			return
		}
		h.handleServiceError(w, r, err)
		return
	}

	http.Redirect(w, r, "/profile/"+actor.Username+"/", http.StatusFound)
}

// PostEdit lets only the author edit. Anyone else is sent back to the post without a message.
func (h *Handlers) PostEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}
	actor := middleware.ActorFrom(r.Context())

	if r.Method == http.MethodGet {
		post, err := h.PostService.GetPost(r.Context(), id)
		if err != nil {
			h.handleServiceError(w, r, err)
			return
		}
		if !policy.CanEdit(actor, post) {
			http.Redirect(w, r, postURL(id), http.StatusFound)
			return
		}

		form := &validation.PostForm{Text: post.Text}
		if post.GroupID.Valid {
			form.Group = strconv.FormatInt(post.GroupID.Int64, 10)
		}
		h.renderPostForm(w, r, form, nil, post)
		return
	}

	form, image, errs, err := h.readPostForm(w, r)
	if err != nil {
		http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}
	if errs != nil {
		post, err := h.PostService.GetPost(r.Context(), id)
		if err != nil {
			h.handleServiceError(w, r, err)
			return
		}
		if !policy.CanEdit(actor, post) {
			http.Redirect(w, r, postURL(id), http.StatusFound)
			return
		}
		h.renderPostForm(w, r, form, errs, post)
		return
	}

	post, err := h.PostService.EditPost(r.Context(), actor, id, form, image)
	if err != nil {
		if errors.Is(err, service.ErrAuthorizationDenied) {
			http.Redirect(w, r, postURL(id), http.StatusFound)
			return
		}
		if verrs, ok := validation.AsErrors(err); ok {
			h.renderPostForm(w, r, form, verrs, post)
			return
		}
		h.handleServiceError(w, r, err)
		return
	}

	http.Redirect(w, r, postURL(id), http.StatusFound)
}

// AddComment always returns to the post. An empty comment is dropped silently.
func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	if r.Method != http.MethodPost {
		http.Redirect(w, r, postURL(id), http.StatusFound)
		return
	}

	form := &validation.CommentForm{}
	if err := h.decodeForm(r, form); err != nil {
		http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	actor := middleware.ActorFrom(r.Context())
	_, err := h.CommentService.AddComment(r.Context(), actor, id, form)
	if verrs, ok := validation.AsErrors(err); ok {
		detail, err := h.PostService.GetPostDetail(r.Context(), actor, id)
		if err != nil {
			h.handleServiceError(w, r, err)
			return
		}

		h.render(w, r, http.StatusOK, "posts/post_detail", viewData{
			"Detail": detail,
			"Form":   form,
			"Errors": verrs,
		})
		return
	}
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	http.Redirect(w, r, postURL(id), http.StatusFound)
}

// Media redirects to a short-lived link to the stored image.
func (h *Handlers) Media(w http.ResponseWriter, r *http.Request) {
	if h.Storage == nil {
		h.NotFound(w, r)
		return
	}

	url, err := h.Storage.GetImageURL(r.Context(), mux.Vars(r)["object"])
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	http.Redirect(w, r, url, http.StatusFound)
}
