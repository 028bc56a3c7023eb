package handler

import (
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/teguholica/auth-with-otp-and-pin-api/internal/http/response"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

type healthResponse struct {
	OK        bool      `json:"ok"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	body := healthResponse{OK: true, Timestamp: time.Now().UTC(), Database: "connected"}

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(r.Context())
	}
	if err != nil {
		body.OK = false
		body.Database = "disconnected"
		response.JSON(w, r, http.StatusServiceUnavailable, body)
		return
	}
	response.JSON(w, r, http.StatusOK, body)
}
