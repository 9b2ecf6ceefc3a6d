package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/dtan16/health-tracker/models"
	"github.com/dtan16/health-tracker/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// LogStore is what the controller needs from the service layer.
type LogStore interface {
	ListLogs() ([]models.DailyLog, error)
	UpsertLog(services.LogInput) (*models.DailyLog, error)
}

type LogController struct {
	Logs LogStore
	Hub  *services.StreamHub
}

func NewLogController(logs LogStore, hub *services.StreamHub) *LogController {
	return &LogController{Logs: logs, Hub: hub}
}

func (lc *LogController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Health tracker API is running"})
}

// ListLogs returns the 30 most recent entries, newest first.
func (lc *LogController) ListLogs(c *gin.Context) {
	logs, err := lc.Logs.ListLogs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch logs"})
		return
	}
	c.JSON(http.StatusOK, logs)
}

// CreateLog upserts the entry for the submitted calendar day.
func (lc *LogController) CreateLog(c *gin.Context) {
	var in services.LogInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := lc.Logs.UpsertLog(in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDateRequired), errors.Is(err, services.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrLogExists):
			c.JSON(http.StatusConflict, gin.H{"error": "A log for this date already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save log"})
		}
		return
	}

	lc.Hub.Broadcast(entry)
	c.JSON(http.StatusCreated, entry)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // same stance as the CORS config
}

// StreamLogs upgrades to a websocket and pushes every saved log until the
// client goes away.
func (lc *LogController) StreamLogs(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := services.NewStreamClient(conn)
	lc.Hub.Register(cl)

	// ping to keep connections alive through proxies
	go func() {
		t := time.NewTicker(25 * time.Second)
		defer t.Stop()
		for range t.C {
			if err := cl.Write(websocket.PingMessage, nil); err != nil {
				lc.Hub.Unregister(cl)
				return
			}
		}
	}()

	// read loop ends on client close/error → unregister
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			lc.Hub.Unregister(cl)
			return
		}
	}
}
