package realtime

import (
	"io"
	"net/http"
	"time"

	"github.com/DhavalSuthar-24/livescore/internal/common"
	"github.com/gin-gonic/gin"
)

// StreamHandler serves the caller's event channel as server-sent events.
// A heartbeat comment keeps idle proxies from closing the connection.
//
// @Summary      Subscribe to match updates
// @Description  Server-sent events carrying the full match aggregate after every committed transition, for every match the caller participates in.
// @Tags         stream
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200 {string} string "event stream"
// @Failure      401 {object} map[string]string
// @Router       /stream [get]
func StreamHandler(hub *Hub, heartbeat time.Duration) gin.HandlerFunc {
	if heartbeat <= 0 {
		heartbeat = 15 * time.Second
	}
	return func(c *gin.Context) {
		userID, err := common.GetUserIDFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		client, err := hub.Subscribe(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		defer hub.Unsubscribe(client)

		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		c.Header("X-Accel-Buffering", "no")
		c.SSEvent("ready", gin.H{"user_id": userID})
		c.Writer.Flush()

		ticker := time.NewTicker(heartbeat)
		defer ticker.Stop()

		c.Stream(func(w io.Writer) bool {
			select {
			case <-c.Request.Context().Done():
				return false
			case ev, ok := <-client.Send:
				if !ok {
					return false
				}
				c.SSEvent(ev.Name, string(ev.Data))
				return true
			case <-ticker.C:
				_, err := io.WriteString(w, ": ping\n\n")
				return err == nil
			}
		})
	}
}
