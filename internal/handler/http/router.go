package http

import (
	"log/slog"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ems-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups every HTTP handler mounted by NewRouter.
type Handlers struct {
	Auth         AuthHandler
	Employee     EmployeeHandler
	Leave        LeaveHandler
	Attendance   AttendanceHandler
	Payroll      PayrollHandler
	Performance  PerformanceHandler
	Notification NotificationHandler
	Search       SearchHandler
	Functions    FunctionsHandler
}

type RouterConfig struct {
	AllowedOrigins []string
	Logger         *slog.Logger
	LogLevel       slog.Level
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, sessions session.Registry, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	if cfg.Logger != nil {
		r.Use(httplog.RequestLogger(cfg.Logger, &httplog.Options{
			Level:  cfg.LogLevel,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	perm := middleware.RequirePermission

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Get("/login/oauth/google", h.Auth.LoginWithGoogle)
			r.Get("/oauth/callback/google", h.Auth.OAuthCallbackGoogle)
		})

		// SSE authenticates with a short-lived query token
		r.Get("/notifications/stream", h.Notification.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
			r.Use(middleware.RequireSession(sessions))

			r.Route("/session", func(r chi.Router) {
				r.Get("/", h.Auth.Me)
				r.Post("/logout", h.Auth.Logout)
				r.Post("/logout-all", h.Auth.LogoutAll)
			})

			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/", h.Auth.Register)
				r.Put("/{id}/role", h.Auth.ChangeRole)
			})

			r.Route("/employees", func(r chi.Router) {
				r.With(perm(user.PermissionViewOwnProfile)).Get("/me", h.Employee.Me)
				r.With(perm(user.PermissionViewOwnProfile)).Put("/me/emergency-contact", h.Employee.UpsertMyEmergencyContact)

				r.With(perm(user.PermissionEmployeeViewAll)).Get("/", h.Employee.List)
				r.With(perm(user.PermissionEmployeeViewAll)).Get("/{id}", h.Employee.Get)

				r.Group(func(r chi.Router) {
					r.Use(perm(user.PermissionEmployeeManage))
					r.Post("/", h.Employee.Create)
					r.Put("/bulk", h.Employee.BulkUpdate)
					r.Post("/bulk-delete", h.Employee.BulkDelete)
					r.Put("/{id}", h.Employee.Update)
					r.Delete("/{id}", h.Employee.Delete)
					r.Put("/{id}/emergency-contact", h.Employee.UpsertEmergencyContact)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Route("/types", func(r chi.Router) {
					r.With(perm(user.PermissionLeaveViewOwn)).Get("/", h.Leave.ListTypes)
					r.Group(func(r chi.Router) {
						r.Use(perm(user.PermissionLeaveManageTypes))
						r.Post("/", h.Leave.CreateType)
						r.Put("/{id}", h.Leave.UpdateType)
						r.Delete("/{id}", h.Leave.DeleteType)
					})
				})

				r.Route("/requests", func(r chi.Router) {
					r.With(perm(user.PermissionLeaveViewOwn)).Get("/me", h.Leave.GetMyRequests)
					r.With(perm(user.PermissionLeaveCreate)).Post("/", h.Leave.CreateRequest)
					r.With(perm(user.PermissionLeaveViewAll)).Get("/", h.Leave.ListRequests)
					r.Group(func(r chi.Router) {
						r.Use(perm(user.PermissionLeaveApprove))
						r.Put("/{id}/status", h.Leave.UpdateRequestStatus)
						r.Delete("/{id}", h.Leave.DeleteRequest)
						r.Post("/bulk-delete", h.Leave.BulkDeleteRequests)
					})
				})

				r.Route("/balances", func(r chi.Router) {
					r.With(perm(user.PermissionLeaveViewOwn)).Get("/me", h.Leave.GetMyBalances)
					r.With(perm(user.PermissionLeaveViewOwn)).Get("/me/map", h.Leave.GetMyBalanceMap)
					r.With(perm(user.PermissionLeaveViewAll)).Get("/", h.Leave.ListBalances)
					r.Group(func(r chi.Router) {
						r.Use(perm(user.PermissionLeaveManageTypes))
						r.Post("/", h.Leave.CreateBalance)
						r.Put("/{id}", h.Leave.UpdateBalance)
					})
				})

				r.Route("/holidays", func(r chi.Router) {
					r.With(perm(user.PermissionLeaveViewOwn)).Get("/", h.Leave.ListHolidays)
					r.Group(func(r chi.Router) {
						r.Use(perm(user.PermissionLeaveManageTypes))
						r.Post("/", h.Leave.CreateHoliday)
						r.Put("/{id}", h.Leave.UpdateHoliday)
						r.Delete("/{id}", h.Leave.DeleteHoliday)
					})
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.With(perm(user.PermissionAttendanceViewOwn)).Get("/me", h.Attendance.GetMy)
				r.With(perm(user.PermissionAttendanceViewOwn)).Get("/stats/me", h.Attendance.MyStats)
				r.With(perm(user.PermissionAttendanceCreate)).Post("/clock-in", h.Attendance.ClockIn)
				r.With(perm(user.PermissionAttendanceCreate)).Post("/clock-out", h.Attendance.ClockOut)
				r.With(perm(user.PermissionAttendanceViewAll)).Get("/", h.Attendance.List)
				r.With(perm(user.PermissionAttendanceViewAll)).Get("/stats", h.Attendance.AdminStats)
				r.Group(func(r chi.Router) {
					r.Use(perm(user.PermissionAttendanceManage))
					r.Put("/{id}", h.Attendance.Update)
					r.Delete("/{id}", h.Attendance.Delete)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Route("/payslips", func(r chi.Router) {
					r.Group(func(r chi.Router) {
						r.Use(perm(user.PermissionPayrollViewOwn))
						r.Get("/me", h.Payroll.GetMyPayslips)
						r.Get("/{id}", h.Payroll.GetPayslip)
						r.Get("/{id}/download", h.Payroll.DownloadPayslip)
					})
					r.Group(func(r chi.Router) {
						r.Use(perm(user.PermissionPayrollManage))
						r.Get("/", h.Payroll.ListPayslips)
						r.Post("/", h.Payroll.CreatePayslip)
						r.Put("/{id}/status", h.Payroll.UpdatePayslipStatus)
					})
				})

				r.Group(func(r chi.Router) {
					r.Use(perm(user.PermissionPayrollManage))
					r.Get("/runs", h.Payroll.ListRuns)
					r.Post("/runs", h.Payroll.CreateRun)
					r.Post("/runs/{id}/process", h.Payroll.ProcessRun)
					r.Get("/components", h.Payroll.ListComponents)
					r.Put("/components", h.Payroll.UpsertComponent)
				})
			})

			r.Route("/performance", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(perm(user.PermissionPerformanceViewOwn))
					r.Get("/reviews/me", h.Performance.GetMyReviews)
					r.Get("/goals/me", h.Performance.GetMyGoals)
					r.Post("/goals", h.Performance.CreateGoal)
					r.Get("/feedback/me", h.Performance.GetMyFeedback)
					r.Post("/feedback", h.Performance.CreateFeedback)
				})
				r.Group(func(r chi.Router) {
					r.Use(perm(user.PermissionPerformanceManage))
					r.Get("/reviews", h.Performance.ListReviews)
					r.Post("/reviews", h.Performance.CreateReview)
					r.Put("/reviews/{id}", h.Performance.UpdateReview)
					r.Delete("/reviews/{id}", h.Performance.DeleteReview)
					r.Get("/goals", h.Performance.ListGoals)
					r.Put("/goals/{id}", h.Performance.UpdateGoal)
					r.Delete("/goals/{id}", h.Performance.DeleteGoal)
					r.Get("/feedback", h.Performance.ListFeedback)
					r.Put("/feedback/{id}", h.Performance.UpdateFeedback)
					r.Delete("/feedback/{id}", h.Performance.DeleteFeedback)
					r.Get("/analytics", h.Performance.Analytics)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Get("/unread-count", h.Notification.UnreadCount)
				r.Post("/read", h.Notification.MarkAsRead)
				r.Post("/read-all", h.Notification.MarkAllAsRead)
				r.Get("/stream-token", h.Notification.GetSSEToken)
				r.Delete("/{id}", h.Notification.Delete)
				r.With(middleware.AdminOnly).Post("/", h.Notification.Create)
			})

			r.Route("/search", func(r chi.Router) {
				r.Get("/", h.Search.Search)
				r.Get("/recent", h.Search.RecentSearches)
				r.Post("/recent", h.Search.SaveSearch)
				r.Delete("/recent", h.Search.ClearRecentSearches)
			})

			r.Route("/functions", func(r chi.Router) {
				r.Post("/chat-with-ai", h.Functions.ChatWithAI)
				r.With(perm(user.PermissionNotificationGenerate)).Post("/attendance-notifications", h.Functions.AttendanceNotifications)
			})
		})
	})
	return r
}
