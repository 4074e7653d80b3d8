package router

import (
	"database/sql"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	mem "vet-clinic-appointments/internal/adapters/storage/memory"
	pg "vet-clinic-appointments/internal/adapters/storage/postgres"
	"vet-clinic-appointments/internal/domain/appointments"
	"vet-clinic-appointments/internal/domain/doctors"
	"vet-clinic-appointments/internal/domain/users"
	"vet-clinic-appointments/internal/middleware"
	"vet-clinic-appointments/internal/ports/auth"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev: X-Debug-* headers)
	TokenIssuer  users.TokenIssuer // puede ser nil (login sin token)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Código que exige el registro de admins. Vacío => default de dev.
	AdminSignupCode string

	Logger      zerolog.Logger
	CORSOrigins []string
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(chimw.Recoverer)

	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		usersRepo   users.Repository
		doctorsRepo doctors.Repository
		apptsRepo   appointments.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		usersRepo = pg.NewUsersRepo(db)
		doctorsRepo = pg.NewDoctorsRepo(db)
		apptsRepo = pg.NewAppointmentsRepo(db)
	} else {
		usersRepo = mem.NewUsersRepo()
		doctorsRepo = mem.NewDoctorsRepo()
		apptsRepo = mem.NewAppointmentsRepo()
	}

	adminCode := opts.AdminSignupCode
	if adminCode == "" {
		adminCode = "ADMIN123"
	}

	// Services por módulo
	doctorsSvc := doctors.NewService(doctorsRepo)
	usersSvc := users.NewService(usersRepo, doctorsSvc, opts.TokenIssuer, adminCode)
	// El booking no valida doctorId contra el registro; pasar
	// doctorsSvc.Validate al service si algún día se endurece.
	apptsSvc := appointments.NewService(apptsRepo, usersSvc)

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc)
	doctors.RegisterRoutes(r, doctorsSvc)
	appointments.RegisterRoutes(r, apptsSvc)

	return r
}
