package handlers

import "github.com/gorilla/mux"

// RegisterRoutes mounts the board API under /api/boards/{tenant}.
func RegisterRoutes(r *mux.Router, h *BoardHandler) {
	api := r.PathPrefix("/api/boards/{tenant}").Subrouter()
	api.Use(TenantMiddleware)

	api.HandleFunc("/columns", h.ListColumns).Methods("GET")
	api.HandleFunc("/columns", h.CreateColumn).Methods("POST")
	api.HandleFunc("/columns/order", h.ReorderColumns).Methods("PUT")
	api.HandleFunc("/columns/{id}", h.UpdateColumn).Methods("PATCH")
	api.HandleFunc("/columns/{id}", h.DeleteColumn).Methods("DELETE")

	api.HandleFunc("/tasks", h.ListTasks).Methods("GET")
	api.HandleFunc("/tasks", h.CreateTask).Methods("POST")
	api.HandleFunc("/tasks/by-status", h.TasksByStatus).Methods("GET")
	api.HandleFunc("/tasks/{id}", h.GetTask).Methods("GET")
	api.HandleFunc("/tasks/{id}", h.UpdateTask).Methods("PATCH")
	api.HandleFunc("/tasks/{id}", h.DeleteTask).Methods("DELETE")
	api.HandleFunc("/tasks/{id}/move", h.MoveTask).Methods("POST")
	api.HandleFunc("/tasks/{id}/complete", h.CompleteTask).Methods("POST")

	api.HandleFunc("/filters", h.GetFilters).Methods("GET")
	api.HandleFunc("/filters", h.SetFilters).Methods("PUT")
	api.HandleFunc("/analytics", h.Analytics).Methods("GET")
	api.HandleFunc("/assignees", h.Assignees).Methods("GET")

	api.HandleFunc("/snapshot", h.GetSnapshot).Methods("GET")
	api.HandleFunc("/snapshot", h.PutSnapshot).Methods("PUT")

	api.HandleFunc("/ws", h.HandleWebSocket)
}
