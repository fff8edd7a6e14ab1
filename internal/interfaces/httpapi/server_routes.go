package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metricsHandler http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}
}

func registerCareerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/careers", handler.ListCareers)
	mux.HandleFunc("POST /v1/careers", handler.CreateCareer)
	mux.HandleFunc("GET /v1/careers/{slotID}", handler.GetCareer)
	mux.HandleFunc("DELETE /v1/careers/{slotID}", handler.DeleteCareer)
	mux.HandleFunc("GET /v1/careers/{slotID}/ladder", handler.GetLadder)

	mux.HandleFunc("POST /v1/careers/{slotID}/start", handler.StartNewCareer)
	mux.HandleFunc("POST /v1/careers/{slotID}/draft/pick", handler.SimulateDraftPick)
	mux.HandleFunc("POST /v1/careers/{slotID}/draft/complete", handler.CompleteDraft)
	mux.HandleFunc("POST /v1/careers/{slotID}/rounds", handler.SimulateRound)
	mux.HandleFunc("POST /v1/careers/{slotID}/training", handler.TrainAttribute)
	mux.HandleFunc("POST /v1/careers/{slotID}/milestones/acknowledge", handler.AcknowledgeMilestone)
	mux.HandleFunc("POST /v1/careers/{slotID}/rewards/claim", handler.ClaimReward)
	mux.HandleFunc("POST /v1/careers/{slotID}/purchases", handler.PurchaseItem)
	mux.HandleFunc("POST /v1/careers/{slotID}/offers/{offerID}/accept", handler.AcceptTransfer)
	mux.HandleFunc("POST /v1/careers/{slotID}/offers/{offerID}/reject", handler.RejectTransfer)
	mux.HandleFunc("POST /v1/careers/{slotID}/media/{eventID}/response", handler.RespondToMedia)
	mux.HandleFunc("POST /v1/careers/{slotID}/posts", handler.CreateSocialPost)
	mux.HandleFunc("POST /v1/careers/{slotID}/retire", handler.RetirePlayer)
	mux.HandleFunc("POST /v1/careers/{slotID}/reset", handler.ResetGame)
}

func registerLeaderboardRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/shop/items", handler.ListShopItems)
	mux.HandleFunc("GET /v1/hall-of-fame", handler.ListHallOfFame)
}
