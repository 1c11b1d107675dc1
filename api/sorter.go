package api

import (
	"net/http"

	"github.com/Kellerman81/go_media_sorter/parser"
	"github.com/Kellerman81/go_media_sorter/scheduler"
	"github.com/Kellerman81/go_media_sorter/structure"
	"github.com/Kellerman81/go_media_sorter/tasks"
	"github.com/gin-gonic/gin"
)

func AddSorterRoutes(routersorter *gin.RouterGroup, organizer *structure.Organizer, movelog *structure.MoveLog) {
	routersorter.GET("/trigger/scan", func(ctx *gin.Context) {
		apiTriggerScan(ctx, organizer)
	})
	routersorter.GET("/queue", apiQueueList)
	routersorter.GET("/history", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"data": movelog.Recent()})
	})
	routersorter.GET("/parse/:name", apiParseName)
}

// @Summary Trigger Scan
// @Description Queues a scan pass over the watch folder
// @Success 200
// @Router /api/trigger/scan [get]
func apiTriggerScan(ctx *gin.Context, organizer *structure.Organizer) {
	err := scheduler.QueueScan.Dispatch("scan_watch_folder_api", organizer.ScanWatchFolder)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"started": "scan_watch_folder"})
}

// @Summary Queue
// @Description Lists queued and running jobs
// @Success 200
// @Router /api/queue [get]
func apiQueueList(ctx *gin.Context) {
	var r []tasks.Job
	tasks.Mu.Lock()
	for _, value := range tasks.GlobalQueue.Queue {
		r = append(r, value)
	}
	tasks.Mu.Unlock()
	ctx.JSON(http.StatusOK, gin.H{"data": r})
}

// @Summary Parse Name
// @Description Parses a file name and returns the classification
// @Param name path string true "Name to parse"
// @Success 200 {object} parser.ParseInfo
// @Router /api/parse/{name} [get]
func apiParseName(ctx *gin.Context) {
	m, err := parser.NewFileParser(ctx.Param("name"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": m, "kind": m.Kind.String()})
}
