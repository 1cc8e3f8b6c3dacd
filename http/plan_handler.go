package http

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"debt-payoff/domain"
	"debt-payoff/service"
	"debt-payoff/version"
)

type PlanHandler struct {
	service *service.PlanService
	logger  *log.Logger
}

func NewPlanHandler(service *service.PlanService, logger *log.Logger) *PlanHandler {
	return &PlanHandler{service: service, logger: logger}
}

type simulateRequest struct {
	Debts    []domain.Debt   `json:"debts"`
	Settings domain.Settings `json:"settings"`
}

// RegisterRoutes mounts the plan endpoints on r.
func (h *PlanHandler) RegisterRoutes(r chi.Router) {
	r.Post("/plans/simulate", h.Simulate)
	r.Post("/plans/compare", h.Compare)
	r.Post("/plans", h.Create)
	r.Get("/plans", h.List)
	r.Get("/plans/{id}", h.Get)
	r.Get("/plans/{id}/schedule", h.Schedule)
	r.Get("/plans/{id}/balances", h.Balances)
	r.Delete("/plans/{id}", h.Delete)
	r.Get("/version", h.Version)
}

func (h *PlanHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	var input simulateRequest
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.Simulate(r.Context(), input.Debts, input.Settings)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *PlanHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var input simulateRequest
	if !decodeJSON(w, r, &input) {
		return
	}

	comparison, err := h.service.Compare(r.Context(), input.Debts, input.Settings)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, comparison)
}

func (h *PlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var plan domain.Plan
	if !decodeJSON(w, r, &plan) {
		return
	}

	saved, err := h.service.SavePlan(r.Context(), plan)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.Header().Set("Location", "/plans/"+saved.ID)
	writeJSON(w, http.StatusCreated, saved)
}

func (h *PlanHandler) List(w http.ResponseWriter, r *http.Request) {
	plans, err := h.service.ListPlans(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if plans == nil {
		plans = []domain.Plan{}
	}
	writeJSON(w, http.StatusOK, plans)
}

func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	plan, err := h.service.GetPlan(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (h *PlanHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.SchedulePlan(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *PlanHandler) Balances(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.PlanBalances(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *PlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeletePlan(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PlanHandler) Version(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, version.Get())
}
