package server

import (
	"github.com/artofest/artofest/docs"
	"github.com/artofest/artofest/engine/infra/server/routes"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const swaggerModelsExpandDepthCollapsed = -1

// setupSwaggerDocs serves the Swagger UI under /docs/index.html and the
// document at /docs/doc.json.
func setupSwaggerDocs(router *gin.Engine) {
	docs.SwaggerInfo.BasePath = routes.Base()
	docs.SwaggerInfo.Host = ""
	docs.SwaggerInfo.Schemes = []string{"http", "https"}
	router.GET(routes.Docs()+"/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.InstanceName(docs.SwaggerInfo.InstanceName()),
		ginSwagger.DefaultModelsExpandDepth(swaggerModelsExpandDepthCollapsed),
	))
}
