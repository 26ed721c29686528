package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/memecataloger/catalog-api/http/controller"
	middlewares "github.com/memecataloger/catalog-api/http/middleware"
	"github.com/memecataloger/catalog-api/infra"
)

func SetupRouter(ctrl *controller.Controller) *gin.Engine {
	r := gin.Default()
	middles, err := middlewares.NewMiddlewares(ctrl)
	if err != nil {
		panic(err)
	}
	r.Use(middles.CORSMiddleware)

	// With the local provider the blob directory is served directly; the
	// minio provider serves blobs from its own endpoint via the base URL.
	if local, ok := ctrl.Infra.Storage.(*infra.LocalStorage); ok {
		r.Static("/media", local.Root())
	}

	apiRoutes := r.Group("/api")
	{
		apiRoutes.Use(middles.IdentityMiddleware)

		userRoutes := apiRoutes.Group("/user")
		{
			userRoutes.GET("/", ctrl.ListUsers)
			userRoutes.POST("/", ctrl.CreateUser)
			userRoutes.GET("/:user_id", ctrl.UserView)
		}

		imageRoutes := apiRoutes.Group("/image")
		{
			imageRoutes.GET("/", ctrl.ListImages)
			imageRoutes.Any("/new", ctrl.NewImageView)
			imageRoutes.Any("/:image_id", ctrl.ExistingImageView)
		}

		tagRoutes := apiRoutes.Group("/tag")
		{
			tagRoutes.GET("/", ctrl.ListTags)
			tagRoutes.Any("/new", ctrl.NewTagView)
			tagRoutes.Any("/:tag_id", ctrl.ExistingTagView)
		}

		imageTagRoutes := apiRoutes.Group("/image-tag")
		{
			imageTagRoutes.GET("/", ctrl.ListImageTags)
			imageTagRoutes.Any("/new", ctrl.NewImageTagView)
			imageTagRoutes.Any("/:imagetag_id", ctrl.ExistingImageTagView)
		}
	}
	return r
}
