package handlers

import (
	"net/http"

	"github.com/andrewpaige1/studybuddy-api/apierr"
	"github.com/andrewpaige1/studybuddy-api/services"
)

func (h *Handler) GenerateStudyPlan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CourseName  string `json:"courseName"`
		Deadline    string `json:"deadline"`
		HoursPerDay int    `json:"hoursPerDay"`
	}
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err, "")
		return
	}

	plan, err := h.svc.StudyPlans.Generate(r.Context(), services.GeneratePlanInput{
		CourseName:  req.CourseName,
		Deadline:    req.Deadline,
		HoursPerDay: req.HoursPerDay,
	})
	if err != nil {
		h.writeError(w, r, err, "Failed to generate study plan")
		return
	}
	writeSuccess(w, map[string]interface{}{"studyPlan": plan})
}

func (h *Handler) GetStudyPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.svc.StudyPlans.List(r.Context())
	if err != nil {
		h.writeError(w, r, err, "Failed to fetch study plans")
		return
	}
	writeSuccess(w, map[string]interface{}{"studyPlans": plans})
}

func (h *Handler) UpdateStudyProgress(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID        *uint `json:"id"`
		Progress  int   `json:"progress"`
		Completed bool  `json:"completed"`
	}
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err, "")
		return
	}
	if req.ID == nil {
		h.writeError(w, r, apierr.Validation("id is required"), "")
		return
	}

	plan, err := h.svc.StudyPlans.UpdateProgress(r.Context(), *req.ID, req.Progress, req.Completed)
	if err != nil {
		h.writeError(w, r, err, "Failed to update progress")
		return
	}
	writeSuccess(w, map[string]interface{}{"plan": plan})
}

func (h *Handler) DeleteStudyPlan(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}
	if err := h.svc.StudyPlans.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err, "Failed to delete study plan")
		return
	}
	writeSuccess(w, nil)
}
