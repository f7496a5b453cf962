package http

import (
	"net/http"

	"clinic-backend/internal/delivery/http/handler"
	"clinic-backend/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	doctorHandler       *handler.DoctorHandler
	patientHandler      *handler.PatientHandler
	scheduleRuleHandler *handler.ScheduleRuleHandler
	attentionHandler    *handler.AttentionHandler
	surgeryHandler      *handler.SurgeryHandler
	labExamHandler      *handler.LabExamHandler
	attachmentHandler   *handler.AttachmentHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	doctorHandler *handler.DoctorHandler,
	patientHandler *handler.PatientHandler,
	scheduleRuleHandler *handler.ScheduleRuleHandler,
	attentionHandler *handler.AttentionHandler,
	surgeryHandler *handler.SurgeryHandler,
	labExamHandler *handler.LabExamHandler,
	attachmentHandler *handler.AttachmentHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		doctorHandler:       doctorHandler,
		patientHandler:      patientHandler,
		scheduleRuleHandler: scheduleRuleHandler,
		attentionHandler:    attentionHandler,
		surgeryHandler:      surgeryHandler,
		labExamHandler:      labExamHandler,
		attachmentHandler:   attachmentHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/patient", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Admin-only routes
	admin := api.NewRoute().Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	// Doctor onboarding is an admin action
	admin.HandleFunc("/auth/register/doctor", r.authHandler.RegisterDoctor).Methods(http.MethodPost)

	// Doctor management (admin)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.UpdateDoctor).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.DeleteDoctor).Methods(http.MethodDelete)

	// Patient management (admin)
	admin.HandleFunc("/patients", r.patientHandler.GetAllPatients).Methods(http.MethodGet)
	admin.HandleFunc("/patients/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	admin.HandleFunc("/patients/{id}", r.patientHandler.UpdatePatient).Methods(http.MethodPut)
	admin.HandleFunc("/patients/{id}", r.patientHandler.DeletePatient).Methods(http.MethodDelete)
	admin.HandleFunc("/patients/{id}/restore", r.patientHandler.RestorePatient).Methods(http.MethodPost)

	// Audit trail (admin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAuditLogs).Methods(http.MethodGet)

	// Schedule rules (admin or doctor)
	schedules := api.NewRoute().Subrouter()
	schedules.Use(r.authMiddleware.Authenticate)
	schedules.Use(middleware.RequireAdminOrDoctor)
	schedules.HandleFunc("/schedule-rules/dated", r.scheduleRuleHandler.CreateDatedRule).Methods(http.MethodPost)
	schedules.HandleFunc("/schedule-rules/recurring", r.scheduleRuleHandler.CreateRecurringRule).Methods(http.MethodPost)
	schedules.HandleFunc("/schedule-rules/{id:[0-9]+}", r.scheduleRuleHandler.GetRule).Methods(http.MethodGet)
	schedules.HandleFunc("/schedule-rules/{id:[0-9]+}", r.scheduleRuleHandler.UpdateRule).Methods(http.MethodPatch)
	schedules.HandleFunc("/schedule-rules/{id:[0-9]+}/toggle-active", r.scheduleRuleHandler.ToggleActive).Methods(http.MethodPatch)
	schedules.HandleFunc("/schedule-rules/{id:[0-9]+}", r.scheduleRuleHandler.DeleteRule).Methods(http.MethodDelete)
	schedules.HandleFunc("/schedule-rules/{id:[0-9]+}/restore", r.scheduleRuleHandler.RestoreRule).Methods(http.MethodPost)
	schedules.HandleFunc("/doctors/{doctorId}/schedule-rules", r.scheduleRuleHandler.GetRulesByDoctor).Methods(http.MethodGet)

	// Authenticated routes (any role)
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	// Availability resolution: which slots a doctor offers on a date
	protected.HandleFunc("/schedule-rules", r.scheduleRuleHandler.ResolveAvailability).Methods(http.MethodGet)

	// Doctor directory
	protected.HandleFunc("/doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)

	// Attentions
	protected.HandleFunc("/attentions", r.attentionHandler.CreateAttention).Methods(http.MethodPost)
	protected.HandleFunc("/attentions", r.attentionHandler.GetAttentions).Methods(http.MethodGet)
	protected.HandleFunc("/attentions/{id}", r.attentionHandler.GetAttention).Methods(http.MethodGet)
	protected.HandleFunc("/attentions/{id}", r.attentionHandler.UpdateAttention).Methods(http.MethodPatch)
	protected.HandleFunc("/attentions/{id}", r.attentionHandler.DeleteAttention).Methods(http.MethodDelete)

	// Surgeries
	protected.HandleFunc("/surgeries", r.surgeryHandler.CreateSurgery).Methods(http.MethodPost)
	protected.HandleFunc("/surgeries", r.surgeryHandler.GetSurgeries).Methods(http.MethodGet)
	protected.HandleFunc("/surgeries/{id}", r.surgeryHandler.GetSurgery).Methods(http.MethodGet)
	protected.HandleFunc("/surgeries/{id}", r.surgeryHandler.UpdateSurgery).Methods(http.MethodPatch)
	protected.HandleFunc("/surgeries/{id}", r.surgeryHandler.DeleteSurgery).Methods(http.MethodDelete)

	// Lab exams
	protected.HandleFunc("/lab-exams", r.labExamHandler.CreateLabExam).Methods(http.MethodPost)
	protected.HandleFunc("/lab-exams", r.labExamHandler.GetLabExams).Methods(http.MethodGet)
	protected.HandleFunc("/lab-exams/{id}", r.labExamHandler.GetLabExam).Methods(http.MethodGet)
	protected.HandleFunc("/lab-exams/{id}", r.labExamHandler.UpdateLabExam).Methods(http.MethodPatch)
	protected.HandleFunc("/lab-exams/{id}", r.labExamHandler.DeleteLabExam).Methods(http.MethodDelete)

	// Attachments
	protected.HandleFunc("/attachments", r.attachmentHandler.Upload).Methods(http.MethodPost)
	protected.HandleFunc("/attachments", r.attachmentHandler.GetByOwner).Methods(http.MethodGet)
	protected.HandleFunc("/attachments/{id}/download", r.attachmentHandler.Download).Methods(http.MethodGet)
	protected.HandleFunc("/attachments/{id}", r.attachmentHandler.Delete).Methods(http.MethodDelete)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
