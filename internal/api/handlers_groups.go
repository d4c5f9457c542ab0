package api

import (
	"net/http"

	"github.com/splitledger/splitledger/internal/engine"
	"github.com/splitledger/splitledger/internal/middleware"
	"github.com/splitledger/splitledger/internal/models"
)

type createGroupRequest struct {
	Name string `json:"name"`
}

type addMemberRequest struct {
	UserID string `json:"user_id"`
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Name == "" {
		badRequest(w, "name is required")
		return
	}

	group := &models.Group{
		Name:      req.Name,
		CreatedBy: middleware.GetUserID(r.Context()),
	}
	if err := s.store.CreateGroup(r.Context(), group); err != nil {
		writeError(w, err)
		return
	}

	members, err := s.store.ListMembers(r.Context(), group.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toGroupView(group, members))
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("id")
	userID := middleware.GetUserID(r.Context())

	// Membership is checked before existence so non-members cannot probe
	// for group IDs.
	membership, err := s.store.GetMembership(r.Context(), groupID, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if membership == nil {
		writeError(w, engine.ErrAccessDenied)
		return
	}

	group, err := s.store.GetGroup(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}
	members, err := s.store.ListMembers(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toGroupView(group, members))
}

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("id")
	userID := middleware.GetUserID(r.Context())

	var req addMemberRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.UserID == "" {
		badRequest(w, "user_id is required")
		return
	}

	// Only existing members may invite.
	membership, err := s.store.GetMembership(r.Context(), groupID, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if membership == nil {
		writeError(w, engine.ErrAccessDenied)
		return
	}

	invitee, err := s.store.GetUserByID(r.Context(), req.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	if invitee == nil {
		badRequest(w, "no such user")
		return
	}

	if err := s.store.AddMember(r.Context(), groupID, req.UserID); err != nil {
		writeError(w, err)
		return
	}

	members, err := s.store.ListMembers(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Members []memberView `json:"members"`
	}{Members: toMemberViews(members)})
}
