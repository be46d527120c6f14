package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"chapminer/internal/store"
)

type Handler struct {
	Repo *store.Repo
}

func NewHandler(repo *store.Repo) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.listRuns)                          // GET /runs
	rg.GET("/:id", h.getRun)                        // GET /runs/:id (id may be "latest")
	rg.GET("/:id/interactions", h.listInteractions) // ?chaperone=
	rg.GET("/:id/domains", h.listDomains)           // ?target=
	rg.GET("/:id/master", h.listMaster)             // ?chaperone=&domain=&limit=&offset=
}

func (h *Handler) listRuns(c *gin.Context) {
	runs, err := h.Repo.ListRuns(c.Request.Context(), parseInt(c.Query("limit"), 20))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": runs})
}

func (h *Handler) getRun(c *gin.Context) {
	run, err := h.Repo.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	c.JSON(http.StatusOK, run)
}

func (h *Handler) listInteractions(c *gin.Context) {
	runID, ok := h.runID(c)
	if !ok {
		return
	}
	items, err := h.Repo.ListInteractions(c.Request.Context(), runID, c.Query("chaperone"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"run_id": runID, "total": len(items), "items": items})
}

func (h *Handler) listDomains(c *gin.Context) {
	runID, ok := h.runID(c)
	if !ok {
		return
	}
	items, err := h.Repo.ListDomains(c.Request.Context(), runID, c.Query("target"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"run_id": runID, "total": len(items), "items": items})
}

func (h *Handler) listMaster(c *gin.Context) {
	runID, ok := h.runID(c)
	if !ok {
		return
	}
	q := store.MasterQuery{
		Chaperone: c.Query("chaperone"),
		Domain:    c.Query("domain"),
		Limit:     parseInt(c.Query("limit"), 100),
		Offset:    parseInt(c.Query("offset"), 0),
	}

	total, err := h.Repo.CountMaster(c.Request.Context(), runID, q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "count failed"})
		return
	}
	items, err := h.Repo.ListMaster(c.Request.Context(), runID, q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id": runID,
		"total":  total,
		"limit":  q.Limit,
		"offset": q.Offset,
		"items":  items,
	})
}

// runID resolves the :id parameter and writes a 404 when it matches no run.
func (h *Handler) runID(c *gin.Context) (string, bool) {
	id, err := h.Repo.ResolveRunID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return "", false
	}
	if id == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return "", false
	}
	return id, true
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
