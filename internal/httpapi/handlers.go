package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/occlusion-dev/occlusion/internal/model"
	"github.com/occlusion-dev/occlusion/internal/query"
	"github.com/occlusion-dev/occlusion/internal/snapshot"
)

func handleHealth(holder *snapshot.Holder) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{"status": "ok"}
		if e, err := holder.Get(); err == nil {
			body["uuid_count"] = e.Stats().TotalEntries
		}
		c.JSON(http.StatusOK, body)
	}
}

type checkRequest struct {
	Object         string `json:"object" binding:"required"`
	VisibilityMask int    `json:"visibility_mask"`
}

func handleCheck(holder *snapshot.Holder) gin.HandlerFunc {
	return func(c *gin.Context) {
		e, ok := engineOrFail(c, holder)
		if !ok {
			return
		}

		var req checkRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		decision, err := e.Check(req.Object, req.VisibilityMask)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": queryErrMsg(err)})
			return
		}

		c.JSON(http.StatusOK, gin.H{"visible": decision == model.Visible})
	}
}

type checkBatchRequest struct {
	Objects        []string `json:"objects" binding:"required"`
	VisibilityMask int      `json:"visibility_mask"`
}

type checkBatchResultElem struct {
	Object  string `json:"object"`
	Visible bool   `json:"visible"`
}

func handleCheckBatch(holder *snapshot.Holder) gin.HandlerFunc {
	return func(c *gin.Context) {
		e, ok := engineOrFail(c, holder)
		if !ok {
			return
		}

		var req checkBatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		decisions, err := e.CheckBatch(req.Objects, req.VisibilityMask)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": queryErrMsg(err)})
			return
		}

		results := make([]checkBatchResultElem, len(decisions))
		for i, d := range decisions {
			results[i] = checkBatchResultElem{Object: req.Objects[i], Visible: d == model.Visible}
		}
		c.JSON(http.StatusOK, gin.H{"results": results})
	}
}

func handleStats(holder *snapshot.Holder) gin.HandlerFunc {
	return func(c *gin.Context) {
		e, ok := engineOrFail(c, holder)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, e.Stats())
	}
}

type opaInput struct {
	Object         string `json:"object" binding:"required"`
	VisibilityMask int    `json:"visibility_mask"`
}

type opaVisibleRequest struct {
	Input opaInput `json:"input" binding:"required"`
}

func handleOPAVisible(holder *snapshot.Holder) gin.HandlerFunc {
	return func(c *gin.Context) {
		e, ok := engineOrFail(c, holder)
		if !ok {
			return
		}

		var req opaVisibleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		decision, err := e.Check(req.Input.Object, req.Input.VisibilityMask)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": queryErrMsg(err)})
			return
		}

		c.JSON(http.StatusOK, gin.H{"result": decision == model.Visible})
	}
}

type opaBatchInput struct {
	Objects        []string `json:"objects" binding:"required"`
	VisibilityMask int      `json:"visibility_mask"`
}

type opaVisibleBatchRequest struct {
	Input opaBatchInput `json:"input" binding:"required"`
}

// handleOPAVisibleBatch returns a flat boolean list parallel to the
// input objects, per OPA data-document convention.
func handleOPAVisibleBatch(holder *snapshot.Holder) gin.HandlerFunc {
	return func(c *gin.Context) {
		e, ok := engineOrFail(c, holder)
		if !ok {
			return
		}

		var req opaVisibleBatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		decisions, err := e.CheckBatch(req.Input.Objects, req.Input.VisibilityMask)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": queryErrMsg(err)})
			return
		}

		result := make([]bool, len(decisions))
		for i, d := range decisions {
			result[i] = d == model.Visible
		}
		c.JSON(http.StatusOK, gin.H{"result": result})
	}
}

func queryErrMsg(err error) string {
	if qe, ok := err.(*query.QueryError); ok {
		return qe.Error()
	}
	return err.Error()
}
