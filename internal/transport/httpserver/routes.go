package httpserver

import (
	"net/http"
	"time"

	"club-app-go/internal/config"
	"club-app-go/internal/transport/httpserver/handler"
	authmw "club-app-go/internal/transport/httpserver/middleware"
	"club-app-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, members authmw.MemberResolver, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS([]string{"http://localhost:5173"}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)
		r.Post("/members/register", handlers.RegisterMember)

		auth := authmw.NewTokenAuth(cfg.Auth, members, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/members", handlers.ListMembers)
			r.Get("/members/expiring", handlers.ExpiringCertifications)
			r.Get("/members/{id}", handlers.GetMember)
			r.Post("/members/{id}/approve", handlers.ApproveMember)
			r.Patch("/members/{id}", handlers.UpdateMember)

			r.Post("/checkout", handlers.CompleteCheckout)

			r.Get("/passes", handlers.ListPasses)
			r.Post("/passes", handlers.CreatePass)
			r.Get("/passes/{id}", handlers.GetPass)
			r.Post("/passes/{id}/consume", handlers.ConsumePassUse)
			r.Delete("/passes/{id}", handlers.RefundPass)

			r.Get("/invoices", handlers.ListInvoices)
			r.Get("/invoices/{id}", handlers.GetInvoice)
			r.Patch("/invoices/{id}/status", handlers.SetInvoiceStatus)
			r.Post("/invoices/{id}/flag", handlers.FlagInvoice)
			r.Delete("/invoices/{id}/flag", handlers.UnflagInvoice)
			r.Patch("/invoices/{id}/notes", handlers.UpdateInvoiceNotes)
			r.Post("/invoices/{id}/refund-request", handlers.RequestInvoiceRefund)
			r.Post("/invoices/{id}/refund-request/approve", handlers.ApproveInvoiceRefund)
			r.Post("/invoices/{id}/refund-request/deny", handlers.DenyInvoiceRefund)

			r.Get("/notifications", handlers.ListActiveNotifications)
			r.Get("/notifications/archived", handlers.ListArchivedNotifications)
			r.Get("/notifications/unread-count", handlers.UnreadNotificationCount)
			r.Post("/notifications", handlers.CreateNotification)
			r.Post("/notifications/read-all", handlers.MarkAllNotificationsRead)
			r.Post("/notifications/expiry-sweep", handlers.NotifyExpiringCertifications)
			r.Post("/notifications/{id}/read", handlers.MarkNotificationRead)
			r.Post("/notifications/{id}/archive", handlers.ArchiveNotification)
			r.Post("/notifications/{id}/unarchive", handlers.UnarchiveNotification)
			r.Get("/notifications/{id}/references", handlers.ResolveNotification)
			r.Delete("/notifications/{id}", handlers.DeleteNotification)

			r.Get("/documents", handlers.ListDocuments)
			r.Post("/documents", handlers.CreateDocument)
			r.Get("/documents/{id}", handlers.GetDocument)
			r.Delete("/documents/{id}", handlers.DeleteDocument)
		})
	})

	return r
}
