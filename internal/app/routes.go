package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Status
	r.HandleFunc("/", deps.SchedulerHandler.Status).Methods("GET")

	// Google sign-in
	r.HandleFunc("/auth/signin", deps.AuthHandler.SignIn).Methods("GET")
	r.HandleFunc("/auth/callback", deps.AuthHandler.Callback).Methods("GET")
	r.HandleFunc("/logout", deps.AuthHandler.Logout).Methods("GET")

	// Calendar
	r.HandleFunc("/api/events/today", deps.EventsHandler.TodayEvents).Methods("GET")

	// Chat
	r.HandleFunc("/api/chat", deps.ChatHandler.ProcessMessage).Methods("POST")
}
