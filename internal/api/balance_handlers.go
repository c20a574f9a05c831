package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"splitledger/internal/ledger"
	"splitledger/internal/middleware"
	"splitledger/internal/session"
)

type balanceHandlers struct {
	sessions *session.Manager
}

// totals returns the caller's current cross-group totals from their live
// session, starting one if needed.
func (h *balanceHandlers) totals(c *gin.Context) {
	l, release, err := h.sessions.Acquire(c.Request.Context(), middleware.UserEmail(c))
	if err != nil {
		writeError(c, err)
		return
	}
	defer release()
	c.JSON(http.StatusOK, l.Aggregator().Current())
}

// stream pushes the caller's totals over server-sent events: the current
// value immediately, then every recompute until the client disconnects.
func (h *balanceHandlers) stream(c *gin.Context) {
	email := middleware.UserEmail(c)
	l, release, err := h.sessions.Acquire(c.Request.Context(), email)
	if err != nil {
		writeError(c, err)
		return
	}
	defer release()

	// A slow client drops intermediate updates; the latest totals always
	// arrive because each published value supersedes the last.
	updates := make(chan ledger.Totals, 16)
	unsub := l.Aggregator().Subscribe(func(t ledger.Totals) {
		select {
		case updates <- t:
		default:
		}
	})
	defer unsub()

	c.Header("Cache-Control", "no-cache")
	c.SSEvent("totals", l.Aggregator().Current())
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case t := <-updates:
			c.SSEvent("totals", t)
			return true
		}
	})
}
