package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/web-mahadihasan/TasksZen-Server/logging"
	"github.com/web-mahadihasan/TasksZen-Server/models"
	"github.com/web-mahadihasan/TasksZen-Server/services"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskManager is the slice of the task service the handlers need.
type TaskManager interface {
	CreateTask(ctx context.Context, task *models.Task) (*models.Task, error)
	GetTasks(ctx context.Context, ownerEmail, search string) ([]models.Task, error)
	UpdateTask(ctx context.Context, taskID primitive.ObjectID, update services.TaskUpdate) (*models.Task, error)
	DeleteTask(ctx context.Context, taskID primitive.ObjectID) (*models.Task, error)
	MoveTask(ctx context.Context, taskID primitive.ObjectID, targetLane models.Lane, ownerEmail string) ([]models.Task, error)
	ReorderTasks(ctx context.Context, assignments []models.TaskAssignment, lane models.Lane, ownerEmail string) ([]models.Task, error)
}

type TaskHandler struct {
	service TaskManager
}

func NewTaskHandler(service TaskManager) *TaskHandler {
	return &TaskHandler{service: service}
}

type createTaskRequest struct {
	Title       string          `json:"title" validate:"required,max=100"`
	Description string          `json:"description" validate:"max=500"`
	Lane        models.Lane     `json:"lane" validate:"required,oneof='To-Do' 'In Progress' 'Done'"`
	Deadline    time.Time       `json:"deadline" validate:"required"`
	Priority    models.Priority `json:"priority" validate:"required,oneof=High Medium Low"`
	OwnerName   string          `json:"ownerName" validate:"required"`
	OwnerEmail  string          `json:"ownerEmail" validate:"required,email"`
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	task := &models.Task{
		Title:       req.Title,
		Description: req.Description,
		Lane:        req.Lane,
		Deadline:    req.Deadline,
		Priority:    req.Priority,
		OwnerName:   req.OwnerName,
		OwnerEmail:  req.OwnerEmail,
	}

	createdTask, err := h.service.CreateTask(r.Context(), task)
	if err != nil {
		logging.Logger.Errorf("Event ID: TASK_CREATE_FAILED, Description: Failed to create task: %v", err)
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, createdTask)
}

func (h *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ownerEmail := vars["ownerEmail"]
	if ownerEmail == "" {
		respondError(w, http.StatusBadRequest, "ownerEmail is required")
		return
	}
	search := r.URL.Query().Get("search")

	tasks, err := h.service.GetTasks(r.Context(), ownerEmail, search)
	if err != nil {
		logging.Logger.Errorf("Event ID: TASK_LIST_FAILED, Description: Failed to list tasks for %s: %v", ownerEmail, err)
		respondError(w, statusForError(err), err.Error())
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	respondJSON(w, http.StatusOK, tasks)
}

type updateTaskRequest struct {
	Title       string          `json:"title" validate:"required,max=100"`
	Description string          `json:"description" validate:"max=500"`
	Deadline    time.Time       `json:"deadline" validate:"required"`
	Priority    models.Priority `json:"priority" validate:"required,oneof=High Medium Low"`
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	update := services.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		Priority:    req.Priority,
	}

	updatedTask, err := h.service.UpdateTask(r.Context(), taskID, update)
	if err != nil {
		logging.Logger.Errorf("Event ID: TASK_UPDATE_FAILED, Description: Failed to update task %s: %v", taskID.Hex(), err)
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, updatedTask)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	if _, err := h.service.DeleteTask(r.Context(), taskID); err != nil {
		logging.Logger.Errorf("Event ID: TASK_DELETE_FAILED, Description: Failed to delete task %s: %v", taskID.Hex(), err)
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

type moveTaskRequest struct {
	TargetLane models.Lane `json:"targetLane" validate:"required,oneof='To-Do' 'In Progress' 'Done'"`
	OwnerEmail string      `json:"ownerEmail" validate:"required,email"`
}

func (h *TaskHandler) MoveTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	var req moveTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	tasks, err := h.service.MoveTask(r.Context(), taskID, req.TargetLane, req.OwnerEmail)
	if err != nil {
		logging.Logger.Errorf("Event ID: TASK_MOVE_FAILED, Description: Failed to move task %s to %s: %v", taskID.Hex(), req.TargetLane, err)
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, tasks)
}

type reorderTasksRequest struct {
	Tasks      []models.TaskAssignment `json:"tasks" validate:"required,min=1,dive"`
	Lane       models.Lane             `json:"lane" validate:"omitempty,oneof='To-Do' 'In Progress' 'Done'"`
	OwnerEmail string                  `json:"ownerEmail" validate:"required,email"`
}

func (h *TaskHandler) ReorderTasks(w http.ResponseWriter, r *http.Request) {
	var req reorderTasksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	tasks, err := h.service.ReorderTasks(r.Context(), req.Tasks, req.Lane, req.OwnerEmail)
	if err != nil {
		logging.Logger.Errorf("Event ID: TASK_REORDER_FAILED, Description: Failed to reorder tasks for %s: %v", req.OwnerEmail, err)
		respondError(w, statusForError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, tasks)
}
