package handler

import (
	"context"
	"net/http"

	"bimillog/internal/model"
	"bimillog/internal/service"
)

// FriendHandler handles friend endpoints
type FriendHandler struct {
	friendSvc *service.FriendService
}

// NewFriendHandler creates a new friend handler
func NewFriendHandler(friendSvc *service.FriendService) *FriendHandler {
	return &FriendHandler{friendSvc: friendSvc}
}

func listFriends[T any](list func(ctx context.Context, sessionID string, page model.PageRequest) (*model.Page[T], error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := pageParams(r)
		if err != nil {
			writeFail(w, r, err)
			return
		}
		res, err := list(r.Context(), sessionID(r), page)
		if err != nil {
			writeFail(w, r, err)
			return
		}
		writeOK(w, r, http.StatusOK, res)
	}
}

func actOnFriend(act func(ctx context.Context, sessionID string, id int64) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeFail(w, r, err)
			return
		}
		if err := act(r.Context(), sessionID(r), id); err != nil {
			writeFail(w, r, err)
			return
		}
		writeDone(w, r)
	}
}

// Friends handles GET /v1/friends
func (h *FriendHandler) Friends(w http.ResponseWriter, r *http.Request) {
	listFriends(h.friendSvc.Friends)(w, r)
}

// Received handles GET /v1/friends/requests/received
func (h *FriendHandler) Received(w http.ResponseWriter, r *http.Request) {
	listFriends(h.friendSvc.Received)(w, r)
}

// Sent handles GET /v1/friends/requests/sent
func (h *FriendHandler) Sent(w http.ResponseWriter, r *http.Request) {
	listFriends(h.friendSvc.Sent)(w, r)
}

// Recommended handles GET /v1/friends/recommended
func (h *FriendHandler) Recommended(w http.ResponseWriter, r *http.Request) {
	listFriends(h.friendSvc.Recommended)(w, r)
}

// Send handles POST /v1/friends/requests
func (h *FriendHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ReceiverMemberID int64 `json:"receiverMemberId"`
	}
	if err := decode(r, &req); err != nil {
		writeFail(w, r, err)
		return
	}
	if req.ReceiverMemberID <= 0 {
		writeFail(w, r, model.ValidationError{Field: "receiverMemberId", Reason: "required"})
		return
	}
	if err := h.friendSvc.Send(r.Context(), sessionID(r), req.ReceiverMemberID); err != nil {
		writeFail(w, r, err)
		return
	}
	writeDone(w, r)
}

// Accept handles POST /v1/friends/requests/{id}/accept
func (h *FriendHandler) Accept(w http.ResponseWriter, r *http.Request) {
	actOnFriend(h.friendSvc.Accept)(w, r)
}

// Reject handles POST /v1/friends/requests/{id}/reject
func (h *FriendHandler) Reject(w http.ResponseWriter, r *http.Request) {
	actOnFriend(h.friendSvc.Reject)(w, r)
}

// Cancel handles DELETE /v1/friends/requests/{id}
func (h *FriendHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	actOnFriend(h.friendSvc.Cancel)(w, r)
}

// Remove handles DELETE /v1/friends/{id}
func (h *FriendHandler) Remove(w http.ResponseWriter, r *http.Request) {
	actOnFriend(h.friendSvc.Remove)(w, r)
}
