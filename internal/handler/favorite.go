package handler

import (
	"log/slog"
	"net/http"

	"devfolio/internal/domain/services"
	"devfolio/internal/httputil"
)

// FavoriteHandler handles favorite-edge HTTP requests. Every route is
// behind auth; the edge source is always the authenticated user.
type FavoriteHandler struct {
	favoriteService services.FavoriteService
	logger          *slog.Logger
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(favoriteService services.FavoriteService, logger *slog.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favoriteService,
		logger:          logger,
	}
}

// IsUserFavorite reports whether the target user is in the requester's favorites
// GET /api/favorites/users/{id}
func (h *FavoriteHandler) IsUserFavorite(w http.ResponseWriter, r *http.Request) {
	sourceID, targetID, ok := h.edgeIDs(w, r)
	if !ok {
		return
	}

	isFav, err := h.favoriteService.IsUserFavorite(r.Context(), sourceID, targetID)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"is_favorite": isFav})
}

// AddUserFavorite adds the target user to the requester's favorites
// POST /api/favorites/users/{id}
func (h *FavoriteHandler) AddUserFavorite(w http.ResponseWriter, r *http.Request) {
	sourceID, targetID, ok := h.edgeIDs(w, r)
	if !ok {
		return
	}

	if err := h.favoriteService.AddUserFavorite(r.Context(), sourceID, targetID); err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, map[string]bool{"user_added": true})
}

// RemoveUserFavorite removes the target user from the requester's favorites
// DELETE /api/favorites/users/{id}
func (h *FavoriteHandler) RemoveUserFavorite(w http.ResponseWriter, r *http.Request) {
	sourceID, targetID, ok := h.edgeIDs(w, r)
	if !ok {
		return
	}

	if err := h.favoriteService.RemoveUserFavorite(r.Context(), sourceID, targetID); err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"user_removed": true})
}

// IsProjectFavorite reports whether the project is in the requester's favorites
// GET /api/favorites/projects/{id}
func (h *FavoriteHandler) IsProjectFavorite(w http.ResponseWriter, r *http.Request) {
	userID, projectID, ok := h.edgeIDs(w, r)
	if !ok {
		return
	}

	isFav, err := h.favoriteService.IsProjectFavorite(r.Context(), userID, projectID)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"is_favorite": isFav})
}

// AddProjectFavorite adds the project to the requester's favorites
// POST /api/favorites/projects/{id}
func (h *FavoriteHandler) AddProjectFavorite(w http.ResponseWriter, r *http.Request) {
	userID, projectID, ok := h.edgeIDs(w, r)
	if !ok {
		return
	}

	if err := h.favoriteService.AddProjectFavorite(r.Context(), userID, projectID); err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, map[string]bool{"project_added": true})
}

// RemoveProjectFavorite removes the project from the requester's favorites
// DELETE /api/favorites/projects/{id}
func (h *FavoriteHandler) RemoveProjectFavorite(w http.ResponseWriter, r *http.Request) {
	userID, projectID, ok := h.edgeIDs(w, r)
	if !ok {
		return
	}

	if err := h.favoriteService.RemoveProjectFavorite(r.Context(), userID, projectID); err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"project_removed": true})
}

// ListFavoriteUsers retrieves the users favorited by the given user
// GET /api/users/{id}/favorites/users
func (h *FavoriteHandler) ListFavoriteUsers(w http.ResponseWriter, r *http.Request) {
	userID, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	users, err := h.favoriteService.ListFavoriteUsers(r.Context(), userID)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, users)
}

// ListFavoriteProjects retrieves the projects favorited by the given
// user, with their technology lists.
// GET /api/users/{id}/favorites/projects
func (h *FavoriteHandler) ListFavoriteProjects(w http.ResponseWriter, r *http.Request) {
	userID, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	projects, err := h.favoriteService.ListFavoriteProjects(r.Context(), userID)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, projects)
}

// ListFavoriteProjectIDs retrieves the requester's favorite project ids
// GET /api/favorites/projects
func (h *FavoriteHandler) ListFavoriteProjectIDs(w http.ResponseWriter, r *http.Request) {
	userID, ok := httputil.GetUserID(r)
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ids, err := h.favoriteService.ListFavoriteProjectIDs(r.Context(), userID)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string][]int64{"project_ids": ids})
}

// edgeIDs extracts the authenticated requester and the {id} path value
func (h *FavoriteHandler) edgeIDs(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	requesterID, ok := httputil.GetUserID(r)
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
		return 0, 0, false
	}

	targetID, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return 0, 0, false
	}

	return requesterID, targetID, true
}
