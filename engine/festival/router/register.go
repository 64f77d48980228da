package fstrouter

import "github.com/gin-gonic/gin"

func Register(apiBase *gin.RouterGroup) {
	festivalsGroup := apiBase.Group("/festivals")
	{
		// GET /api/festivals?country=&genre=&art_form=&search=
		// List festivals matching every supplied parameter
		festivalsGroup.GET("", listFestivals)
	}
}
