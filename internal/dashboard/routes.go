package dashboard

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/adrianrdguez/projects-buddy/internal/generate"
	"github.com/adrianrdguez/projects-buddy/internal/graph"
	"github.com/adrianrdguez/projects-buddy/internal/mindmap"
	"github.com/adrianrdguez/projects-buddy/internal/store"
	"github.com/gin-gonic/gin"
)

// registerRoutes sets up all API routes on the Gin router.
func registerRoutes(router *gin.Engine, s *Server) {
	api := router.Group("/api")

	api.GET("/projects", s.handleListProjects)
	api.POST("/projects", s.handleCreateProject)
	api.GET("/projects/:id", s.handleGetProject)
	api.PATCH("/projects/:id", s.handleUpdateProject)
	api.DELETE("/projects/:id", s.handleDeleteProject)
	api.GET("/projects/:id/tasks", s.handleListTasks)
	api.GET("/projects/:id/mindmap", s.handleMindMap)
	api.POST("/projects/:id/execution", s.handleStartExecution)
	api.DELETE("/projects/:id/execution", s.handleCancelExecution)

	api.POST("/generate-tasks", s.handleGenerateTasks)
	api.POST("/execute-task", s.handleExecuteTask)
	api.PATCH("/tasks/:id", s.handleUpdateTask)

	api.GET("/events", s.handleEvents)
}

// abortStoreErr maps store errors to HTTP statuses.
func abortStoreErr(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if strings.Contains(err.Error(), "not found") {
		status = http.StatusNotFound
	} else if strings.Contains(err.Error(), "invalid") ||
		strings.Contains(err.Error(), "cycle") ||
		strings.Contains(err.Error(), "derived") {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func (s *Server) handleListProjects(c *gin.Context) {
	rows, err := projectRows(s.db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": rows})
}

func (s *Server) handleCreateProject(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		TechStack   string `json:"techStack"`
		ProjectPath string `json:"projectPath"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := store.CreateProject(s.db, store.CreateProjectOpts{
		Name:        req.Name,
		Description: req.Description,
		TechStack:   req.TechStack,
		ProjectPath: req.ProjectPath,
	})
	if err != nil {
		abortStoreErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProjectRow(*project, 0))
}

func (s *Server) handleGetProject(c *gin.Context) {
	project, err := store.GetProject(s.db, c.Param("id"))
	if err != nil {
		abortStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"project": toProjectRow(*project, int64(len(project.Tasks))),
		"tasks":   taskViews(project.Tasks),
	})
}

func (s *Server) handleUpdateProject(c *gin.Context) {
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
		ProjectPath *string `json:"projectPath"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.ProjectPath != nil {
		updates["project_path"] = *req.ProjectPath
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}

	if err := store.UpdateProject(s.db, c.Param("id"), updates); err != nil {
		abortStoreErr(c, err)
		return
	}
	project, err := store.GetProject(s.db, c.Param("id"))
	if err != nil {
		abortStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toProjectRow(*project, int64(len(project.Tasks))))
}

func (s *Server) handleDeleteProject(c *gin.Context) {
	projectID := c.Param("id")

	// Stop and forget any running animation before the data goes away.
	s.mu.Lock()
	if exec, ok := s.executions[projectID]; ok {
		exec.seq.Cancel()
		delete(s.executions, projectID)
	}
	s.mu.Unlock()

	if err := store.DeleteProject(s.db, projectID); err != nil {
		abortStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": projectID})
}

func (s *Server) handleListTasks(c *gin.Context) {
	if _, err := store.GetProject(s.db, c.Param("id")); err != nil {
		abortStoreErr(c, err)
		return
	}
	tasks, err := store.LoadTasks(s.db, c.Param("id"))
	if err != nil {
		abortStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": taskViews(tasks)})
}

func (s *Server) handleGenerateTasks(c *gin.Context) {
	var req struct {
		Input     string `json:"input" binding:"required"`
		ProjectID string `json:"projectId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := store.GetProject(s.db, req.ProjectID)
	if err != nil {
		abortStoreErr(c, err)
		return
	}

	projectName, tasks := generate.FromInput(c.Request.Context(), s.gen, req.Input, generate.NormalizeOpts{
		ProjectID:    req.ProjectID,
		FallbackTime: s.fallbackTime,
	})

	persisted := true
	saved, err := store.SaveTasks(s.db, req.ProjectID, tasks)
	if err != nil {
		// The client still gets the in-memory batch to work with.
		persisted = false
		saved = tasks
	}

	s.notifier.TasksGenerated(project, len(saved))

	c.JSON(http.StatusOK, gin.H{
		"projectName": projectName,
		"persisted":   persisted,
		"tasks":       taskViews(saved),
	})
}

func (s *Server) handleMindMap(c *gin.Context) {
	project, err := store.GetProject(s.db, c.Param("id"))
	if err != nil {
		abortStoreErr(c, err)
		return
	}
	tasks, err := store.LoadTasks(s.db, project.ID)
	if err != nil {
		abortStoreErr(c, err)
		return
	}

	canvas := s.canvas
	if w, err := strconv.ParseFloat(c.Query("width"), 64); err == nil && w > canvas.Width {
		canvas.Width = w
	}
	if h, err := strconv.ParseFloat(c.Query("height"), 64); err == nil && h > canvas.Height {
		canvas.Height = h
	}

	data := mindmap.Build(graph.DeriveAll(tasks), project.Name)
	effective := mindmap.Layout(data, canvas)

	c.JSON(http.StatusOK, gin.H{
		"mindmap": data,
		"canvas":  effective,
	})
}

func (s *Server) handleExecuteTask(c *gin.Context) {
	var req struct {
		TaskID string `json:"taskId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.dispatcher.Dispatch(c.Request.Context(), s.db, req.TaskID)
	if err != nil {
		if result == nil {
			abortStoreErr(c, err)
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "result": result})
		return
	}

	if task, err := store.GetTask(s.db, req.TaskID); err == nil {
		if project, err := store.GetProject(s.db, task.ProjectID); err == nil {
			s.notifier.ExecutionStarted(project, task)
		}
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
		Priority    *string `json:"priority"`
		Progress    *int    `json:"progress"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Priority != nil {
		updates["priority"] = *req.Priority
	}
	if req.Progress != nil {
		updates["progress"] = *req.Progress
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}

	taskID := c.Param("id")
	if err := store.UpdateTask(s.db, taskID, updates); err != nil {
		abortStoreErr(c, err)
		return
	}

	task, err := store.GetTask(s.db, taskID)
	if err != nil {
		abortStoreErr(c, err)
		return
	}
	if req.Status != nil && *req.Status == graph.StatusCompleted {
		if project, err := store.GetProject(s.db, task.ProjectID); err == nil {
			s.notifier.TaskCompleted(project, task)
		}
	}

	// Derive against the whole project so dependency state is correct.
	tasks, err := store.LoadTasks(s.db, task.ProjectID)
	if err != nil {
		abortStoreErr(c, err)
		return
	}
	for _, view := range taskViews(tasks) {
		if view.ID == taskID {
			c.JSON(http.StatusOK, view)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "task not found after update"})
}

func (s *Server) handleStartExecution(c *gin.Context) {
	snap, started, err := s.startExecution(c.Param("id"))
	if err != nil {
		abortStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"started":  started,
		"sequence": snap,
	})
}

func (s *Server) handleCancelExecution(c *gin.Context) {
	cancelled := s.cancelExecution(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"cancelled": cancelled})
}
