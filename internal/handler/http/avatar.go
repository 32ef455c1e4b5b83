package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/MKhiriev/go-task-manager/internal/service"
)

const avatarFormField = "avatar"

// uploadAvatar reads the "avatar" multipart field and stores it as the
// caller's avatar.
func (h *Handler) uploadAvatar(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxAvatarBody)
	image, err := readAvatar(r, h.maxAvatarBody)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.UserService.SetAvatar(r.Context(), session.UserID, image); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func readAvatar(r *http.Request, maxMemory int64) ([]byte, error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, service.ErrInvalidAttachment
		}
		return nil, fmt.Errorf("%w: %w", ErrMissingAvatar, err)
	}
	defer r.MultipartForm.RemoveAll()

	file, _, err := r.FormFile(avatarFormField)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingAvatar, err)
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read avatar: %w", err)
	}

	return image, nil
}

func (h *Handler) deleteAvatar(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.UserService.ClearAvatar(r.Context(), session.UserID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// getAvatar serves any user's avatar without authentication.
func (h *Handler) getAvatar(w http.ResponseWriter, r *http.Request) {
	userID, err := idFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	image, err := h.services.UserService.GetAvatar(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(image)
}
