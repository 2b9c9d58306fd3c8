package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/colin-rod/tripthreads-sub007/utils"
)

// ExportTripReport generates and downloads an Excel report for a trip
func ExportTripReport(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	file, filename, err := handlerServices.ReportService.ExportTripReport(code)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if err := file.Write(c.Writer); err != nil {
		utils.HandleError(c, utils.NewInternalError("Failed to write report"))
		return
	}

	c.Status(http.StatusOK)
}
