package appointments

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"vet-clinic-appointments/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/appointments", func(ar chi.Router) {
		ar.Post("/", createHandler(svc))
		ar.Get("/", listHandler(svc))

		// Rutas estáticas antes que {appointmentID}
		ar.Get("/by-doctor/{doctorID}", listByDoctorHandler(svc))
		ar.Get("/by-parent", listByParentHandler(svc))
		ar.Get("/by-pet", searchByPetHandler(svc))

		ar.Get("/{appointmentID}", getHandler(svc))

		// Transiciones de estado y receta: operaciones del doctor
		ar.With(middleware.RequireRole("Doctor")).
			Post("/{appointmentID}/confirm", setStatusHandler(svc, StatusApproved))
		ar.With(middleware.RequireRole("Doctor")).
			Post("/{appointmentID}/deny", setStatusHandler(svc, StatusDenied))
		ar.With(middleware.RequireRole("Doctor")).
			Put("/{appointmentID}/prescription", prescriptionHandler(svc))
	})

	// Vista pet history del doctor (citas con receta)
	r.Get("/pet-history", petHistoryHandler(svc))

	// Vistas de pet por nombre (no único: operan sobre todas las coincidencias)
	r.Get("/pets/{petName}", petDetailsByNameHandler(svc))
	r.Put("/pets/{petName}", updatePetDetailsHandler(svc))
}

type createRequest struct {
	DoctorID    string  `json:"doctor_id"`
	ParentEmail string  `json:"parent_email"`
	PetType     string  `json:"pet_type"`
	PetName     string  `json:"pet_name"`
	Age         int     `json:"age"`
	Weight      float64 `json:"weight"`
	Gender      string  `json:"gender"`
	Friendly    bool    `json:"friendly"`
	HumanSafety bool    `json:"human_safety"`
	Allergies   string  `json:"allergies"`
	Date        string  `json:"appointment_date"` // YYYY-MM-DD
	Time        string  `json:"appointment_time"`
}

type parentDetailsResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	City     string `json:"city"`
}

type petDetailsResponse struct {
	PetType      string  `json:"pet_type"`
	PetName      string  `json:"pet_name"`
	Age          int     `json:"age"`
	Weight       float64 `json:"weight"`
	Gender       string  `json:"gender"`
	Friendly     bool    `json:"friendly"`
	HumanSafety  bool    `json:"human_safety"`
	Allergies    string  `json:"allergies,omitempty"`
	Prescription string  `json:"prescription,omitempty"`
}

type appointmentResponse struct {
	AppointmentID string                `json:"appointment_id"`
	DoctorID      string                `json:"doctor_id"`
	ParentDetails parentDetailsResponse `json:"pet_parent_details"`
	PetDetails    petDetailsResponse    `json:"pet_details"`
	Date          string                `json:"appointment_date"`
	Time          string                `json:"appointment_time"`
	Status        string                `json:"status"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

type prescriptionRequest struct {
	Prescription string `json:"prescription"`
}

type updatePetDetailsRequest struct {
	PetType     *string  `json:"pet_type"`
	Age         *int     `json:"age"`
	Weight      *float64 `json:"weight"`
	Gender      *string  `json:"gender"`
	Friendly    *bool    `json:"friendly"`
	HumanSafety *bool    `json:"human_safety"`
	Allergies   *string  `json:"allergies"`
}

func createHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var date time.Time
		if strings.TrimSpace(req.Date) != "" {
			t, err := time.Parse("2006-01-02", req.Date)
			if err != nil {
				http.Error(w, "appointment_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			date = t
		}

		a, err := svc.Create(r.Context(), CreateInput{
			DoctorID:    req.DoctorID,
			ParentEmail: req.ParentEmail,
			PetType:     req.PetType,
			PetName:     req.PetName,
			Age:         req.Age,
			Weight:      req.Weight,
			Gender:      req.Gender,
			Friendly:    req.Friendly,
			HumanSafety: req.HumanSafety,
			Allergies:   req.Allergies,
			Date:        date,
			Time:        req.Time,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrParentNotFound):
				http.Error(w, "user not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toResponse(a))
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByAppointmentID(r.Context(), chi.URLParam(r, "appointmentID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "appointment not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(a))
	}
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAll(r.Context())
		writeList(w, items, err, "no appointments found")
	}
}

func listByDoctorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByDoctor(r.Context(), chi.URLParam(r, "doctorID"))
		writeList(w, items, err, "no appointments found for this doctor")
	}
}

func listByParentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := strings.TrimSpace(r.URL.Query().Get("email"))
		if email == "" {
			http.Error(w, "email is required", http.StatusBadRequest)
			return
		}
		items, err := svc.ListByParentEmail(r.Context(), email)
		writeList(w, items, err, "no appointments found for the provided email")
	}
}

func searchByPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSpace(r.URL.Query().Get("name"))
		if name == "" {
			http.Error(w, "name is required", http.StatusBadRequest)
			return
		}
		items, err := svc.SearchByPetName(r.Context(), name)
		writeList(w, items, err, "no appointments found for the given pet name")
	}
}

func petHistoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctorID := strings.TrimSpace(r.URL.Query().Get("doctor_id"))
		items, err := svc.ListWithPrescription(r.Context(), doctorID)
		writeList(w, items, err, "no appointments found")
	}
}

func setStatusHandler(svc *Service, st Status) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "appointmentID")

		var (
			a   Appointment
			err error
		)
		if st == StatusApproved {
			a, err = svc.Confirm(r.Context(), id)
		} else {
			a, err = svc.Deny(r.Context(), id)
		}
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "appointment not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toResponse(a))
	}
}

func prescriptionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req prescriptionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.AttachPrescription(r.Context(), chi.URLParam(r, "appointmentID"), req.Prescription)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "appointment not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toResponse(a))
	}
}

func petDetailsByNameHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.PetDetailsByName(r.Context(), chi.URLParam(r, "petName"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if len(items) == 0 {
			http.Error(w, "no pets found with the given name", http.StatusNotFound)
			return
		}

		out := make([]petDetailsResponse, 0, len(items))
		for _, pd := range items {
			out = append(out, toPetDetailsResponse(pd))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func updatePetDetailsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updatePetDetailsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		count, err := svc.UpdatePetDetailsByName(r.Context(), chi.URLParam(r, "petName"), PetDetailsPatch{
			PetType:     req.PetType,
			Age:         req.Age,
			Weight:      req.Weight,
			Gender:      req.Gender,
			Friendly:    req.Friendly,
			HumanSafety: req.HumanSafety,
			Allergies:   req.Allergies,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if count == 0 {
			http.Error(w, "no pets found with the given name to update", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"message":       "pet details updated successfully",
			"updated_count": count,
		})
	}
}

func writeList(w http.ResponseWriter, items []Appointment, err error, emptyMsg string) {
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	// Resultado vacío => 404 (contrato que espera el frontend)
	if len(items) == 0 {
		http.Error(w, emptyMsg, http.StatusNotFound)
		return
	}

	out := make([]appointmentResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toResponse(a))
	}
	writeJSON(w, http.StatusOK, out)
}

func toResponse(a Appointment) appointmentResponse {
	return appointmentResponse{
		AppointmentID: a.AppointmentID,
		DoctorID:      a.DoctorID,
		ParentDetails: parentDetailsResponse{
			Username: a.ParentDetails.Username,
			Email:    a.ParentDetails.Email,
			Phone:    a.ParentDetails.Phone,
			City:     a.ParentDetails.City,
		},
		PetDetails: toPetDetailsResponse(a.PetDetails),
		Date:       a.Date.Format("2006-01-02"),
		Time:       a.Time,
		Status:     string(a.Status),
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func toPetDetailsResponse(pd PetDetails) petDetailsResponse {
	return petDetailsResponse{
		PetType:      pd.PetType,
		PetName:      pd.PetName,
		Age:          pd.Age,
		Weight:       pd.Weight,
		Gender:       pd.Gender,
		Friendly:     pd.Friendly,
		HumanSafety:  pd.HumanSafety,
		Allergies:    pd.Allergies,
		Prescription: pd.Prescription,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para no crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
