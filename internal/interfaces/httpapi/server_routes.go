package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/users", handler.RegisterUser)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedClubRoutes(mux, handler, verifier)
	registerAuthorizedMatchRoutes(mux, handler, verifier)
}

func registerAuthorizedClubRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/dashboard", RequireAuth(verifier, http.HandlerFunc(handler.GetDashboard)))

	mux.Handle("POST /v1/teams", RequireAuth(verifier, http.HandlerFunc(handler.CreateTeam)))
	mux.Handle("GET /v1/teams/{teamID}", RequireAuth(verifier, http.HandlerFunc(handler.GetTeam)))
	mux.Handle("GET /v1/clubs/{clubID}/teams", RequireAuth(verifier, http.HandlerFunc(handler.ListClubTeams)))

	mux.Handle("GET /v1/teams/{teamID}/roster", RequireAuth(verifier, http.HandlerFunc(handler.ListRoster)))
	mux.Handle("POST /v1/teams/{teamID}/membership", RequireAuth(verifier, http.HandlerFunc(handler.RequestMembership)))
	mux.Handle("POST /v1/teams/{teamID}/membership/{userID}/approve", RequireAuth(verifier, http.HandlerFunc(handler.ApproveMembership)))
	mux.Handle("DELETE /v1/teams/{teamID}/membership/{userID}", RequireAuth(verifier, http.HandlerFunc(handler.DenyMembership)))
}

func registerAuthorizedMatchRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/matches", RequireAuth(verifier, http.HandlerFunc(handler.CreateMatch)))
	mux.Handle("GET /v1/matches/{matchID}", RequireAuth(verifier, http.HandlerFunc(handler.GetMatch)))
	mux.Handle("GET /v1/teams/{teamID}/matches", RequireAuth(verifier, http.HandlerFunc(handler.ListTeamMatches)))

	mux.Handle("POST /v1/matches/{matchID}/dates", RequireAuth(verifier, http.HandlerFunc(handler.ProposeDate)))
	mux.Handle("GET /v1/matches/{matchID}/dates", RequireAuth(verifier, http.HandlerFunc(handler.ListDates)))
	mux.Handle("PUT /v1/dates/{dateID}/availability", RequireAuth(verifier, http.HandlerFunc(handler.SetAvailability)))
	mux.Handle("GET /v1/matches/{matchID}/availability", RequireAuth(verifier, http.HandlerFunc(handler.TallyAvailability)))
	mux.Handle("POST /v1/matches/{matchID}/finalize", RequireAuth(verifier, http.HandlerFunc(handler.FinalizeDate)))

	mux.Handle("POST /v1/matches/{matchID}/lineup", RequireAuth(verifier, http.HandlerFunc(handler.ProposeLineup)))
	mux.Handle("GET /v1/matches/{matchID}/lineup", RequireAuth(verifier, http.HandlerFunc(handler.ListLineup)))
	mux.Handle("POST /v1/matches/{matchID}/lineup/{userID}/confirm", RequireAuth(verifier, http.HandlerFunc(handler.ConfirmLineupEntry)))
	mux.Handle("DELETE /v1/matches/{matchID}/lineup/{userID}", RequireAuth(verifier, http.HandlerFunc(handler.RemoveLineupEntry)))
	mux.Handle("POST /v1/matches/{matchID}/complete", RequireAuth(verifier, http.HandlerFunc(handler.CompleteMatch)))

	mux.Handle("PUT /v1/matches/{matchID}/tasks", RequireAuth(verifier, http.HandlerFunc(handler.AssignTask)))
	mux.Handle("GET /v1/matches/{matchID}/tasks", RequireAuth(verifier, http.HandlerFunc(handler.ListTasks)))

	mux.Handle("POST /v1/matches/{matchID}/messages", RequireAuth(verifier, http.HandlerFunc(handler.PostMessage)))
	mux.Handle("GET /v1/matches/{matchID}/messages", RequireAuth(verifier, http.HandlerFunc(handler.ListMessages)))
}
