package fstrouter

import (
	"net/http"

	"github.com/artofest/artofest/engine/festival"
	fstuc "github.com/artofest/artofest/engine/festival/uc"
	"github.com/artofest/artofest/engine/infra/server/appstate"
	"github.com/artofest/artofest/engine/infra/server/router"
	"github.com/gin-gonic/gin"
)

// listFestivals returns festivals filtered by query parameters.
//
//	@Summary		List festivals
//	@Description	Case-insensitive substring filters, ANDed. Blank parameters are ignored.
//	@Tags			festivals
//	@Produce		json
//	@Param			country		query	string	false	"Country contains"
//	@Param			genre		query	string	false	"Genre name contains"
//	@Param			art_form	query	string	false	"Art form name contains"
//	@Param			search		query	string	false	"Name or city contains"
//	@Success		200	{array}		festival.Row
//	@Failure		500	{object}	router.ErrorResponse	"Server Error"
//	@Router			/festivals [get]
func listFestivals(c *gin.Context) {
	state, err := appstate.GetState(c.Request.Context())
	if err != nil {
		router.RespondServerError(c, router.ErrAppStateNotInitialized)
		return
	}
	var filter festival.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		router.RespondServerError(c, err)
		return
	}
	rows, err := fstuc.NewListFestivals(state.Festivals, filter).Execute(c.Request.Context())
	if err != nil {
		router.RespondServerError(c, err)
		return
	}
	state.Listings.ObserveFestivalsReturned(len(rows))
	c.JSON(http.StatusOK, rows)
}
