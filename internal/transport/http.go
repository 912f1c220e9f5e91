package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/openoverheid/ori/internal/domain/agendaitem"
	"github.com/openoverheid/ori/internal/domain/infoobject"
	"github.com/openoverheid/ori/internal/domain/meeting"
	"github.com/openoverheid/ori/internal/pagination"
)

// Services bundles the per-kind resource services.
type Services struct {
	Meetings           *meeting.Service
	AgendaItems        *agendaitem.Service
	InformationObjects *infoobject.Service
}

// Server wires HTTP handlers.
type Server struct {
	services Services
	logger   *slog.Logger
}

// NewServer creates the HTTP router.
func NewServer(services Services, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()
	srv := &Server{services: services, logger: logger}

	r.Get("/health", srv.handleHealth)

	r.Route("/meetings", func(r chi.Router) {
		r.Get("/", srv.listMeetings)
		r.Post("/", srv.createMeeting)
		r.Get("/{id}", srv.getMeeting)
		r.Put("/{id}", srv.replaceMeeting)
		r.Delete("/{id}", srv.deleteMeeting)
	})
	r.Route("/agendaitems", func(r chi.Router) {
		r.Get("/", srv.listAgendaItems)
		r.Post("/", srv.createAgendaItem)
		r.Get("/{id}", srv.getAgendaItem)
		r.Put("/{id}", srv.replaceAgendaItem)
		r.Delete("/{id}", srv.deleteAgendaItem)
	})
	r.Route("/informationobjects", func(r chi.Router) {
		r.Get("/", srv.listInfoObjects)
		r.Post("/", srv.createInfoObject)
		r.Get("/{id}", srv.getInfoObject)
		r.Put("/{id}", srv.replaceInfoObject)
		r.Delete("/{id}", srv.deleteInfoObject)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// pageRequest reads limit/offset query parameters; unparseable or missing
// values fall back to the defaults, oversized limits are clamped.
func pageRequest(r *http.Request) pagination.Request {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	return pagination.NewRequest(limit, offset)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{ validate() error }) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := v.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

const deleteAcknowledgment = "Deletion successful"

type deleteResponse struct {
	Message string `json:"message"`
}

// Meetings

func (s *Server) listMeetings(w http.ResponseWriter, r *http.Request) {
	filter := meeting.Filter{
		ParentMeeting:    publicIDFromRef(r.URL.Query().Get("parent")),
		OrganisationCode: r.URL.Query().Get("organisation"),
	}

	page, err := s.services.Meetings.List(r.Context(), filter, pageRequest(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	results := make([]meetingResponse, 0, len(page.Items))
	for i := range page.Items {
		results = append(results, renderMeeting(&page.Items[i]))
	}
	writeJSON(w, http.StatusOK, listEnvelope[meetingResponse]{
		Next:     page.Next,
		Previous: page.Previous,
		Results:  results,
	})
}

func (s *Server) createMeeting(w http.ResponseWriter, r *http.Request) {
	var req meetingRequest
	if !decodeBody(w, r, &req) {
		return
	}

	view, err := s.services.Meetings.Create(r.Context(), req.toInput())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, renderMeeting(view))
}

func (s *Server) getMeeting(w http.ResponseWriter, r *http.Request) {
	view, err := s.services.Meetings.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, renderMeeting(view))
}

func (s *Server) replaceMeeting(w http.ResponseWriter, r *http.Request) {
	var req meetingRequest
	if !decodeBody(w, r, &req) {
		return
	}

	view, err := s.services.Meetings.Replace(r.Context(), chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, renderMeeting(view))
}

func (s *Server) deleteMeeting(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Meetings.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{Message: deleteAcknowledgment})
}

// Agenda items

func (s *Server) listAgendaItems(w http.ResponseWriter, r *http.Request) {
	filter := agendaitem.Filter{
		Meeting:    publicIDFromRef(r.URL.Query().Get("meeting")),
		ParentItem: publicIDFromRef(r.URL.Query().Get("parent")),
	}

	page, err := s.services.AgendaItems.List(r.Context(), filter, pageRequest(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	results := make([]agendaItemResponse, 0, len(page.Items))
	for i := range page.Items {
		results = append(results, renderAgendaItem(&page.Items[i]))
	}
	writeJSON(w, http.StatusOK, listEnvelope[agendaItemResponse]{
		Next:     page.Next,
		Previous: page.Previous,
		Results:  results,
	})
}

func (s *Server) createAgendaItem(w http.ResponseWriter, r *http.Request) {
	var req agendaItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	view, err := s.services.AgendaItems.Create(r.Context(), req.toInput())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, renderAgendaItem(view))
}

func (s *Server) getAgendaItem(w http.ResponseWriter, r *http.Request) {
	view, err := s.services.AgendaItems.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, renderAgendaItem(view))
}

func (s *Server) replaceAgendaItem(w http.ResponseWriter, r *http.Request) {
	var req agendaItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	view, err := s.services.AgendaItems.Replace(r.Context(), chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, renderAgendaItem(view))
}

func (s *Server) deleteAgendaItem(w http.ResponseWriter, r *http.Request) {
	if err := s.services.AgendaItems.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{Message: deleteAcknowledgment})
}

// Information objects

func (s *Server) listInfoObjects(w http.ResponseWriter, r *http.Request) {
	filter := infoobject.Filter{
		AgendaItem:  publicIDFromRef(r.URL.Query().Get("agendaitem")),
		WooCategory: r.URL.Query().Get("category"),
	}

	page, err := s.services.InformationObjects.List(r.Context(), filter, pageRequest(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	results := make([]infoObjectResponse, 0, len(page.Items))
	for i := range page.Items {
		results = append(results, renderInfoObject(&page.Items[i]))
	}
	writeJSON(w, http.StatusOK, listEnvelope[infoObjectResponse]{
		Next:     page.Next,
		Previous: page.Previous,
		Results:  results,
	})
}

func (s *Server) createInfoObject(w http.ResponseWriter, r *http.Request) {
	var req infoObjectRequest
	if !decodeBody(w, r, &req) {
		return
	}

	view, err := s.services.InformationObjects.Create(r.Context(), req.toInput())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, renderInfoObject(view))
}

func (s *Server) getInfoObject(w http.ResponseWriter, r *http.Request) {
	view, err := s.services.InformationObjects.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, renderInfoObject(view))
}

func (s *Server) replaceInfoObject(w http.ResponseWriter, r *http.Request) {
	var req infoObjectRequest
	if !decodeBody(w, r, &req) {
		return
	}

	view, err := s.services.InformationObjects.Replace(r.Context(), chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, renderInfoObject(view))
}

func (s *Server) deleteInfoObject(w http.ResponseWriter, r *http.Request) {
	if err := s.services.InformationObjects.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{Message: deleteAcknowledgment})
}
