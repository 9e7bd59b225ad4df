package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"staybook/internal/app"
	"staybook/internal/domain"
	"staybook/pkg/api"
)

const msgCategoryNotFound = "This category does not exists."

func categoryInput(req api.CategoryRequest) app.CategoryInput {
	in := app.CategoryInput{Name: req.Name}
	if req.Image != nil {
		in.Image = &domain.Image{URL: req.Image.URL, PublicID: req.Image.PublicID}
	}
	return in
}

func (h *Handlers) listCategories(w http.ResponseWriter, r *http.Request) {
	cs, err := h.Categories.List(r.Context())
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	out := make([]api.Category, 0, len(cs))
	for _, c := range cs {
		out = append(out, toAPICategory(c))
	}
	h.ok(w, http.StatusOK, api.CategoriesResponse{Envelope: api.OK(""), Categories: out})
}

func (h *Handlers) createCategory(w http.ResponseWriter, r *http.Request) {
	var req api.CategoryRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err, "")
		return
	}
	c, err := h.Categories.Create(r.Context(), categoryInput(req))
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	ac := toAPICategory(c)
	h.ok(w, http.StatusCreated, api.CategoryResponse{Envelope: api.OK(api.MsgCategoryCreated), Category: &ac})
}

func (h *Handlers) updateCategory(w http.ResponseWriter, r *http.Request) {
	var req api.CategoryRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err, "")
		return
	}
	if err := h.Categories.Update(r.Context(), chi.URLParam(r, "id"), categoryInput(req)); err != nil {
		h.fail(w, r, err, msgCategoryNotFound)
		return
	}
	h.ok(w, http.StatusOK, api.OK(api.MsgCategoryUpdated))
}

func (h *Handlers) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.Categories.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err, msgCategoryNotFound)
		return
	}
	h.ok(w, http.StatusOK, api.OK(api.MsgCategoryDeleted))
}
