package rest

import (
	"log/slog"
	"net/http"
	"strings"

	"bimillog/internal/service"
	"bimillog/internal/toast"
	"bimillog/internal/transport/rest/handler"
	"bimillog/internal/transport/rest/middleware"
	"bimillog/internal/transport/ws"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"
)

// Container holds all dependencies for the router
type Container struct {
	Sessions            *service.SessionService
	AuthService         *service.AuthService
	PaperService        *service.PaperService
	BoardService        *service.BoardService
	FriendService       *service.FriendService
	MemberService       *service.MemberService
	NotificationService *service.NotificationService
	PreferenceService   *service.PreferenceService
	AdminService        *service.AdminService
	ErrorReporter       *service.ErrorReporter
	Toasts              *toast.Registry
	WSHub               *ws.Hub

	SessionCookie  string
	CookieSecure   bool
	AllowedOrigins string
	Logger         *slog.Logger
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	authHandler := handler.NewAuthHandler(c.AuthService)
	paperHandler := handler.NewPaperHandler(c.PaperService)
	boardHandler := handler.NewBoardHandler(c.BoardService)
	friendHandler := handler.NewFriendHandler(c.FriendService)
	memberHandler := handler.NewMemberHandler(c.MemberService)
	notificationHandler := handler.NewNotificationHandler(c.NotificationService)
	prefHandler := handler.NewPreferenceHandler(c.PreferenceService)
	adminHandler := handler.NewAdminHandler(c.AdminService)
	errorHandler := handler.NewErrorHandler(c.ErrorReporter)
	toastHandler := handler.NewToastHandler(c.Toasts)
	wsHandler := ws.NewHandler(c.WSHub, c.Toasts, c.AllowedOrigins, c.Logger)

	sessionMW := middleware.NewSessionMiddleware(c.Sessions, c.SessionCookie, c.CookieSecure)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.AllowedOrigins))
	r.Use(middleware.Logging(c.Logger))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	r.HandleFunc("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	}).Methods("GET")

	// API v1 routes, all tied to a browser session
	v1 := r.PathPrefix("/v1").Subrouter()
	v1.Use(sessionMW.Session)

	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/me", authHandler.Me).Methods("GET", "OPTIONS")
	v1.HandleFunc("/auth/status", authHandler.Status).Methods("GET", "OPTIONS")

	// Paper routes; fixed paths before {memberName}
	v1.HandleFunc("/paper", paperHandler.Mine).Methods("GET", "OPTIONS")
	v1.HandleFunc("/paper/grid", paperHandler.Grid).Methods("GET", "OPTIONS")
	v1.HandleFunc("/paper/grid/coords", paperHandler.Coords).Methods("GET", "OPTIONS")
	v1.HandleFunc("/paper/delete", paperHandler.Delete).Methods("POST", "OPTIONS")
	v1.HandleFunc("/paper/{memberName}", paperHandler.Visit).Methods("GET", "OPTIONS")
	v1.HandleFunc("/paper/{memberName}", paperHandler.Write).Methods("POST", "OPTIONS")

	// Board routes
	v1.HandleFunc("/posts", boardHandler.ListPosts).Methods("GET", "OPTIONS")
	v1.HandleFunc("/posts", boardHandler.CreatePost).Methods("POST", "OPTIONS")
	v1.HandleFunc("/posts/search", boardHandler.SearchPosts).Methods("GET", "OPTIONS")
	v1.HandleFunc("/posts/popular", boardHandler.PopularPosts).Methods("GET", "OPTIONS")
	v1.HandleFunc("/posts/{postId:[0-9]+}", boardHandler.GetPost).Methods("GET", "OPTIONS")
	v1.HandleFunc("/posts/{postId:[0-9]+}", boardHandler.UpdatePost).Methods("PUT", "OPTIONS")
	v1.HandleFunc("/posts/{postId:[0-9]+}", boardHandler.DeletePost).Methods("DELETE", "OPTIONS")
	v1.HandleFunc("/posts/{postId:[0-9]+}/like", boardHandler.LikePost).Methods("POST", "OPTIONS")
	v1.HandleFunc("/posts/{postId:[0-9]+}/comments", boardHandler.ListComments).Methods("GET", "OPTIONS")
	v1.HandleFunc("/posts/{postId:[0-9]+}/comments/popular", boardHandler.PopularComments).Methods("GET", "OPTIONS")
	v1.HandleFunc("/comments", boardHandler.WriteComment).Methods("POST", "OPTIONS")
	v1.HandleFunc("/comments/update", boardHandler.UpdateComment).Methods("POST", "OPTIONS")
	v1.HandleFunc("/comments/delete", boardHandler.DeleteComment).Methods("POST", "OPTIONS")
	v1.HandleFunc("/comments/like", boardHandler.LikeComment).Methods("POST", "OPTIONS")

	// Friend routes
	v1.HandleFunc("/friends", friendHandler.Friends).Methods("GET", "OPTIONS")
	v1.HandleFunc("/friends/recommended", friendHandler.Recommended).Methods("GET", "OPTIONS")
	v1.HandleFunc("/friends/requests", friendHandler.Send).Methods("POST", "OPTIONS")
	v1.HandleFunc("/friends/requests/received", friendHandler.Received).Methods("GET", "OPTIONS")
	v1.HandleFunc("/friends/requests/sent", friendHandler.Sent).Methods("GET", "OPTIONS")
	v1.HandleFunc("/friends/requests/{id:[0-9]+}/accept", friendHandler.Accept).Methods("POST", "OPTIONS")
	v1.HandleFunc("/friends/requests/{id:[0-9]+}/reject", friendHandler.Reject).Methods("POST", "OPTIONS")
	v1.HandleFunc("/friends/requests/{id:[0-9]+}", friendHandler.Cancel).Methods("DELETE", "OPTIONS")
	v1.HandleFunc("/friends/{id:[0-9]+}", friendHandler.Remove).Methods("DELETE", "OPTIONS")

	// Member routes
	v1.HandleFunc("/member", memberHandler.Withdraw).Methods("DELETE", "OPTIONS")
	v1.HandleFunc("/member/blacklist", memberHandler.Blacklist).Methods("GET", "OPTIONS")
	v1.HandleFunc("/member/blacklist", memberHandler.AddBlacklist).Methods("POST", "OPTIONS")
	v1.HandleFunc("/member/blacklist/{id:[0-9]+}", memberHandler.RemoveBlacklist).Methods("DELETE", "OPTIONS")
	v1.HandleFunc("/member/setting", memberHandler.Setting).Methods("GET", "OPTIONS")
	v1.HandleFunc("/member/setting", memberHandler.UpdateSetting).Methods("PUT", "OPTIONS")
	v1.HandleFunc("/member/username", memberHandler.UpdateMemberName).Methods("PATCH", "OPTIONS")
	v1.HandleFunc("/member/username/check", memberHandler.CheckMemberName).Methods("GET", "OPTIONS")
	v1.HandleFunc("/member/report", memberHandler.SubmitReport).Methods("POST", "OPTIONS")

	v1.HandleFunc("/notifications", notificationHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/notifications", notificationHandler.Update).Methods("POST", "OPTIONS")

	v1.HandleFunc("/toasts", toastHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/toasts/{id}", toastHandler.Dismiss).Methods("DELETE", "OPTIONS")

	v1.HandleFunc("/preferences/theme", prefHandler.Theme).Methods("GET", "OPTIONS")
	v1.HandleFunc("/preferences/theme", prefHandler.SetTheme).Methods("PUT", "OPTIONS")

	v1.HandleFunc("/errors", errorHandler.Report).Methods("POST", "OPTIONS")

	v1.HandleFunc("/ws", wsHandler.Serve).Methods("GET")

	// Admin routes (require the admin role)
	adminRoutes := v1.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(middleware.RequireAdmin(c.AdminService))

	adminRoutes.HandleFunc("/reports", adminHandler.Reports).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/reports/{id:[0-9]+}", adminHandler.Report).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/ban", adminHandler.Ban).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/withdraw", adminHandler.ForceWithdraw).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/errors", adminHandler.Errors).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/errors/{id}", adminHandler.ErrorReport).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/overview", adminHandler.Overview).Methods("GET", "OPTIONS")

	return r
}

// corsMiddleware answers preflight requests and echoes allowed origins.
// Credentials are allowed, so a wildcard list echoes the caller's origin
// instead of sending "*".
func corsMiddleware(allowedOrigins string) mux.MiddlewareFunc {
	origins := map[string]bool{}
	for _, o := range strings.Split(allowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins[o] = true
		}
	}
	anyOrigin := len(origins) == 0 || origins["*"]

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (anyOrigin || origins[origin]) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-XSRF-TOKEN")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
