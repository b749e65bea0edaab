/*
Package handler provides the HTTP handler for WebSocket live-feed subscriptions.
*/
package handler

import (
	"net"
	"net/http"

	"github.com/gorilla/websocket"

	"placerank/internal/app/live"
	"placerank/internal/pkg/errs"
	"placerank/internal/pkg/limiter"
	"placerank/internal/pkg/logx"
	"placerank/internal/pkg/resp"
)

// HandleLiveFeed upgrades the connection and attaches it to the live hub.
// The feed is public: it only carries data already visible on the Explore page.
func HandleLiveFeed(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if ip == "" {
			ip = "unknown_ip"
		}

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("Live feed connection rejected: rate limit exceeded.", "ip", ip)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade live feed connection")
			return
		}

		sub := live.NewSubscriber(deps.Hub, conn)

		go sub.WritePump()

		sub.Register()

		sub.ReadPump()
	}
}
