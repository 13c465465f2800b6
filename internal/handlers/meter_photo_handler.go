package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"livenzo-backend/internal/middleware"
	"livenzo-backend/internal/models"
	"livenzo-backend/internal/services"
	"livenzo-backend/pkg/utils"
)

type MeterPhotoHandler struct {
	Service *services.MeterPhotoService
}

func NewMeterPhotoHandler(s *services.MeterPhotoService) *MeterPhotoHandler {
	return &MeterPhotoHandler{Service: s}
}

// Upload stores a meter photo for the current billing month
// POST /api/meter-photos/relationship/{id}  (multipart, field "photo")
func (h *MeterPhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	renterID, _ := middleware.GetUserIDFromContext(r.Context())
	relationshipID := mux.Vars(r)["id"]

	if err := r.ParseMultipartForm(services.MaxPhotoBytes); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "photo file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	photo, err := h.Service.Upload(r.Context(), renterID, relationshipID, header.Filename, contentType, header.Size, file)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, photo)
}

// List returns a month's photos for either party
// GET /api/meter-photos/relationship/{id}?month=YYYY-MM
func (h *MeterPhotoHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	relationshipID := mux.Vars(r)["id"]
	billingMonth := r.URL.Query().Get("month")

	photos, err := h.Service.ListForMonth(r.Context(), userID, relationshipID, billingMonth)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if photos == nil {
		photos = []*models.MeterPhoto{}
	}

	utils.JSON(w, http.StatusOK, photos)
}
