package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/restaurant-floor/internal/httperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/usecase"
)

const ContextActor = "actor"

type Sessions interface {
	Actor() (usecase.Actor, error)
}

// RequireSession lets the request through only while the terminal holds
// an authenticated session, and stores the actor on the context.
func RequireSession(s Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := s.Actor()
		if err != nil {
			httperr.FromError(c, err)
			return
		}

		c.Set(ContextActor, actor)
		c.Next()
	}
}

// Actor reads what RequireSession stored. The zero Actor fails its own
// Validate, so use cases still reject an unguarded route.
func Actor(c *gin.Context) usecase.Actor {
	v, ok := c.Get(ContextActor)
	if !ok {
		return usecase.Actor{}
	}
	actor, _ := v.(usecase.Actor)
	return actor
}
