package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/colin-rod/tripthreads-sub007/models"
	"github.com/colin-rod/tripthreads-sub007/utils"
)

// AddExpense adds an expense with any split rule
func AddExpense(c *gin.Context) {
	var request models.AddExpenseRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	expense, err := handlerServices.ExpenseService.AddExpense(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, expense)
}

// EditExpense replaces an expense and its shares
func EditExpense(c *gin.Context) {
	var request models.EditExpenseRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	expense, err := handlerServices.ExpenseService.EditExpense(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, expense)
}

// RemoveExpense removes an expense
func RemoveExpense(c *gin.Context) {
	var request models.RemoveExpenseRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	if err := handlerServices.ExpenseService.RemoveExpense(request.Code, request.ExpenseID); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, true)
}

// ListExpenses lists all expenses for a trip with their shares
func ListExpenses(c *gin.Context) {
	var request models.GetTripByCodeRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	expenses, err := handlerServices.ExpenseService.ListExpenses(request.Code)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, expenses)
}
