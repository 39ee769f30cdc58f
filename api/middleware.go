package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/RanjithKumar100/TimeWise-FireBase-CRM-sub001/worklog"
)

// Headers set by the upstream auth gateway.
const (
	HeaderActorID   = "X-Actor-ID"
	HeaderActorRole = "X-Actor-Role"
)

type ctxKey int

const actorKey ctxKey = iota

// RequireActor reads the caller's identity from the gateway headers. A
// missing id or an unknown role is rejected with 401.
func RequireActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(HeaderActorID))
		if id == "" {
			writeErrorCode(w, http.StatusUnauthorized, "Missing actor", "unauthenticated", nil)
			return
		}
		role, err := worklog.ParseRole(strings.TrimSpace(r.Header.Get(HeaderActorRole)))
		if err != nil {
			writeErrorCode(w, http.StatusUnauthorized, "Unknown actor role", "unauthenticated", err.Error())
			return
		}

		actor := worklog.Actor{ID: worklog.UserID(id), Role: role}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey, actor)))
	})
}

// ActorFrom returns the actor stored by RequireActor.
func ActorFrom(ctx context.Context) (worklog.Actor, bool) {
	a, ok := ctx.Value(actorKey).(worklog.Actor)
	return a, ok
}

// RequireRole lets only the listed roles through; others get 403.
func RequireRole(roles ...worklog.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, _ := ActorFrom(r.Context())
			for _, role := range roles {
				if actor.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeErrorCode(w, http.StatusForbidden, "Forbidden", worklog.CodeAccessDenied,
				"role "+string(actor.Role)+" may not use this endpoint")
		})
	}
}

// RequestLogger logs one structured line per request.
func RequestLogger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			fields := logrus.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"bytes":      ww.BytesWritten(),
				"durationMs": time.Since(start).Milliseconds(),
				"requestId":  middleware.GetReqID(r.Context()),
			}
			if id := r.Header.Get(HeaderActorID); id != "" {
				fields["actorId"] = id
				fields["actorRole"] = r.Header.Get(HeaderActorRole)
			}

			entry := log.WithFields(fields)
			switch status := ww.Status(); {
			case status >= 500:
				entry.Error("request failed")
			case status >= 400:
				entry.Info("request rejected")
			default:
				entry.Debug("request served")
			}
		})
	}
}
