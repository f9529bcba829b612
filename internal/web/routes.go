package web

import (
	"encoding/json"
	"net/http"

	"github.com/bbernstein/chargemap/backend-go/internal/api"
	"github.com/bbernstein/chargemap/backend-go/internal/view"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
)

func (server *Server) handleMount(writer http.ResponseWriter, request *http.Request) {
	id, _ := server.registry.Mount()
	hlog.FromRequest(request).Debug().Str("view_id", id).Msg("View mounted")

	http.Redirect(writer, request, "/views/"+id, http.StatusFound)
}

func (server *Server) handleHealth(writer http.ResponseWriter, _ *http.Request) {
	writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = writer.Write([]byte("ok"))
}

// lookup renders the requested view, writing 404 when the id is unknown.
func (server *Server) lookup(writer http.ResponseWriter, request *http.Request) (string, view.Page, bool) {
	id := chi.URLParam(request, "id")
	v, ok := server.registry.Get(id)
	if !ok {
		http.NotFound(writer, request)
		return id, view.Page{}, false
	}
	return id, view.Render(v.State(), server.settings), true
}

func (server *Server) handleViewPage(writer http.ResponseWriter, request *http.Request) {
	id, page, ok := server.lookup(writer, request)
	if !ok {
		return
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := server.renderer.Render(writer, "layout.html", BuildPageVM(id, page)); err != nil {
		hlog.FromRequest(request).Error().Err(err).Msg("Error rendering page")
		http.Error(writer, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (server *Server) handleStationsJSON(writer http.ResponseWriter, request *http.Request) {
	_, page, ok := server.lookup(writer, request)
	if !ok {
		return
	}
	writeJSON(writer, request, api.NewMarkersResponse(page))
}

func (server *Server) handleStationsGeoJSON(writer http.ResponseWriter, request *http.Request) {
	_, page, ok := server.lookup(writer, request)
	if !ok {
		return
	}

	body, err := json.Marshal(view.FeatureCollection(page.Markers()))
	if err != nil {
		hlog.FromRequest(request).Error().Err(err).Msg("Error encoding GeoJSON")
		http.Error(writer, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writer.Header().Set("Content-Type", "application/geo+json")
	_, _ = writer.Write(body)
}

func (server *Server) handleRelease(writer http.ResponseWriter, request *http.Request) {
	if !server.registry.Remove(chi.URLParam(request, "id")) {
		http.NotFound(writer, request)
		return
	}
	writer.WriteHeader(http.StatusNoContent)
}

func writeJSON(writer http.ResponseWriter, request *http.Request, body any) {
	encoded, err := json.Marshal(body)
	if err != nil {
		hlog.FromRequest(request).Error().Err(err).Msg("Error encoding response")
		http.Error(writer, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writer.Header().Set("Content-Type", "application/json")
	_, _ = writer.Write(encoded)
}
