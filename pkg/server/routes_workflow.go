package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/yesoreyeram/nodeflow/backend/pkg/storage"
)

// SaveWorkflowRequest represents the request to save a workflow
type SaveWorkflowRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Data        json.RawMessage `json:"data"`
}

// SaveWorkflowResponse represents the response from saving a workflow
type SaveWorkflowResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// LoadWorkflowResponse represents the response from loading a workflow
type LoadWorkflowResponse struct {
	Success  bool               `json:"success"`
	Workflow *storage.Workflow  `json:"workflow,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// ListWorkflowsResponse represents the response from listing workflows
type ListWorkflowsResponse struct {
	Success   bool                       `json:"success"`
	Workflows []storage.WorkflowSummary `json:"workflows"`
	Count     int                        `json:"count"`
}

// DeleteWorkflowResponse represents the response from deleting a workflow
type DeleteWorkflowResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// handleSaveWorkflow handles saving a workflow
func (s *Server) handleSaveWorkflow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxRequestBodySize)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeErrorResponse(w, "Failed to read request body", http.StatusBadRequest, err)
		return
	}

	var req SaveWorkflowRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeErrorResponse(w, "Failed to parse request", http.StatusBadRequest, err)
		return
	}

	id, err := s.store.Save(req.Name, req.Description, req.Data)
	if err != nil {
		s.writeJSONResponse(w, http.StatusBadRequest, SaveWorkflowResponse{
			Success: false,
			Error:   "Failed to save workflow: " + err.Error(),
		})
		return
	}

	s.logger.WithField("id", id).WithField("name", req.Name).Info("workflow saved")

	s.writeJSONResponse(w, http.StatusCreated, SaveWorkflowResponse{
		Success: true,
		ID:      id,
		Message: "Workflow saved successfully",
	})
}

// handleLoadWorkflow handles loading a workflow by ID
func (s *Server) handleLoadWorkflow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Path format: /api/v1/workflow/load/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/workflow/load/")
	id := strings.TrimSpace(path)

	if id == "" {
		s.writeJSONResponse(w, http.StatusBadRequest, LoadWorkflowResponse{
			Success: false,
			Error:   "Workflow ID is required",
		})
		return
	}

	wf, err := s.store.Load(id)
	if err != nil {
		s.writeJSONResponse(w, http.StatusNotFound, LoadWorkflowResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	s.writeJSONResponse(w, http.StatusOK, LoadWorkflowResponse{
		Success:  true,
		Workflow: wf,
	})
}

// handleListWorkflows handles listing all workflows
func (s *Server) handleListWorkflows(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	workflows := s.store.List()

	s.writeJSONResponse(w, http.StatusOK, ListWorkflowsResponse{
		Success:   true,
		Workflows: workflows,
		Count:     len(workflows),
	})
}

// handleDeleteWorkflow handles deleting a workflow by ID
func (s *Server) handleDeleteWorkflow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Path format: /api/v1/workflow/delete/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/workflow/delete/")
	id := strings.TrimSpace(path)

	if id == "" {
		s.writeJSONResponse(w, http.StatusBadRequest, DeleteWorkflowResponse{
			Success: false,
			Error:   "Workflow ID is required",
		})
		return
	}

	if err := s.store.Delete(id); err != nil {
		s.writeJSONResponse(w, http.StatusNotFound, DeleteWorkflowResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	s.logger.WithField("id", id).Info("workflow deleted")

	s.writeJSONResponse(w, http.StatusOK, DeleteWorkflowResponse{
		Success: true,
		Message: "Workflow deleted successfully",
	})
}

// handleExecuteWorkflowByID handles executing a stored workflow by ID
func (s *Server) handleExecuteWorkflowByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Path format: /api/v1/workflow/execute/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/workflow/execute/")
	id := strings.TrimSpace(path)

	if id == "" {
		s.writeErrorResponse(w, "Workflow ID is required", http.StatusBadRequest, nil)
		return
	}

	wf, err := s.store.Load(id)
	if err != nil {
		s.writeErrorResponse(w, "Failed to load workflow", http.StatusNotFound, err)
		return
	}

	g, err := s.decodeGraph(wf.Data)
	if err != nil {
		s.writeErrorResponse(w, "Stored workflow graph is invalid", http.StatusBadRequest, err)
		return
	}

	outputs, err := s.executeGraph(r.Context(), id, g)
	if err != nil {
		s.writeErrorResponse(w, "Workflow execution failed", http.StatusInternalServerError, err)
		return
	}

	s.logger.WithField("id", id).WithField("name", wf.Name).Info("workflow executed by id")

	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"workflow_id":   id,
		"workflow_name": wf.Name,
		"results":       outputs,
	})
}
