package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hostelops/backend/internal/domain/shared"
)

const actorContextKey = "actor"

// Actor resolves the acting user from trusted gateway headers and stores it
// in the request context. Requests without a valid X-User-ID run as the
// system actor; authentication itself happens upstream.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := shared.SystemActor()

		if raw := c.GetHeader("X-User-ID"); raw != "" {
			if userID, err := uuid.Parse(raw); err == nil {
				actor = shared.UserActor(userID, c.GetHeader("X-User-Role"))
			}
		}

		c.Set(actorContextKey, actor)
		c.Next()
	}
}

// GetActor returns the actor resolved for the current request. It falls back
// to the system actor when the middleware did not run.
func GetActor(c *gin.Context) shared.Actor {
	if v, exists := c.Get(actorContextKey); exists {
		if actor, ok := v.(shared.Actor); ok {
			return actor
		}
	}
	return shared.SystemActor()
}
