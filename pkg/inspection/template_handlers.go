package inspection

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func putTemplateHandler(store TemplateStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Content string `json:"content"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		id := chi.URLParam(r, "id")
		if err := store.Put(id, body.Content); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"templateId": id, "content": body.Content})
	}
}

func getTemplateHandler(store TemplateStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		content, err := store.Get(id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"templateId": id, "content": content})
	}
}

func listTemplatesHandler(store TemplateStore) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		ids, err := store.List()
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ids)
	}
}

func deleteTemplateHandler(store TemplateStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Delete(chi.URLParam(r, "id")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// renderTemplateHandler previews a template with the supplied parameters
// without creating a publication.
func renderTemplateHandler(store TemplateStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Params []TemplateParam `json:"params"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		content, err := store.Get(chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"content": RenderTemplate(content, body.Params)})
	}
}
