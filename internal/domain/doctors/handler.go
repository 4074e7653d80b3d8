package doctors

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"vet-clinic-appointments/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Solo un admin provisiona doctor ids.
	r.With(middleware.RequireRole("Admin")).
		Post("/doctors/registrations", registerDoctorHandler(svc))
}

type registerDoctorRequest struct {
	DoctorID string `json:"doctor_id"`
	Email    string `json:"email"`
}

type registrationResponse struct {
	ID        string    `json:"id"`
	DoctorID  string    `json:"doctor_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func registerDoctorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerDoctorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		reg, err := svc.Register(r.Context(), req.DoctorID, req.Email)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrDoctorIDTaken), errors.Is(err, ErrEmailTaken):
				http.Error(w, err.Error(), http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(registrationResponse{
			ID:        reg.ID,
			DoctorID:  reg.DoctorID,
			Email:     reg.Email,
			CreatedAt: reg.CreatedAt,
		})
	}
}
