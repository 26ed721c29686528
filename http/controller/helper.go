package controller

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/memecataloger/catalog-api/utils"
)

// dispatch applies the shared validation order for single-resource views:
// method check, then identity, then ownership, then the method handler.
// Identity and ownership are placeholders until auth lands; they always
// pass. The allowed slice fixes the wording of the 405 body, so it must
// list methods in the order the message should read.
func (ctrl *Controller) dispatch(c *gin.Context, allowed []string, handlers map[string]gin.HandlerFunc) {
	method := c.Request.Method

	permitted := false
	for _, m := range allowed {
		if m == method {
			permitted = true
			break
		}
	}
	if !permitted {
		utils.Text405(c, utils.MethodsMessage(allowed))
		return
	}

	if !ctrl.checkIdentity(c) {
		return
	}
	if !ctrl.checkOwnership(c) {
		return
	}

	handlers[method](c)
}

// checkIdentity will reject unauthenticated requests once auth is
// enforced. The identity middleware already injects user_id when a
// valid token is present.
func (ctrl *Controller) checkIdentity(c *gin.Context) bool {
	return true
}

// checkOwnership will reject requests touching resources the requester
// does not own once auth is enforced.
func (ctrl *Controller) checkOwnership(c *gin.Context) bool {
	return true
}

// cachedList returns true when the list payload for key was served from
// Redis. A nil Redis client or any cache error falls through to the
// database path.
func (ctrl *Controller) cachedList(c *gin.Context, key string) bool {
	if ctrl.Infra.Redis == nil {
		return false
	}
	ctx := c.Request.Context()
	var payload []map[string]interface{}
	if err := ctrl.Infra.Redis.Get(ctx, key, &payload); err != nil {
		return false
	}
	utils.JSON200(c, payload)
	return true
}

func (ctrl *Controller) storeList(ctx context.Context, key string, payload interface{}) {
	if ctrl.Infra.Redis == nil {
		return
	}
	ttl := time.Duration(ctrl.Config.EnvConfig.Media.CacheTTL) * time.Second
	if err := ctrl.Infra.Redis.Set(ctx, key, payload, ttl); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Cache] Failed to store %s: %v", key, err)
	}
}

func (ctrl *Controller) invalidateList(ctx context.Context, keys ...string) {
	if ctrl.Infra.Redis == nil {
		return
	}
	if err := ctrl.Infra.Redis.Delete(ctx, keys...); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Cache] Failed to invalidate %v: %v", keys, err)
	}
}
