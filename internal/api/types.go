package api

import "splitledger/internal/models"

type registerRequest struct {
	Email       string `json:"email" binding:"required"`
	DisplayName string `json:"display_name" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type createGroupRequest struct {
	Name    string   `json:"name" binding:"required"`
	Members []string `json:"members"`
}

type expenseRequest struct {
	Description string                  `json:"description" binding:"required"`
	Amount      models.Cents            `json:"amount"`
	SplitType   string                  `json:"split_type"`
	Splits      map[string]models.Cents `json:"splits"`
}

type personalExpenseRequest struct {
	Description string       `json:"description" binding:"required"`
	Amount      models.Cents `json:"amount"`
}

type userResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type groupResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Members   []string `json:"members"`
	CreatedBy string   `json:"created_by"`
	CreatedAt int64    `json:"created_at"`
}

type expenseResponse struct {
	ID          string                  `json:"id"`
	GroupID     string                  `json:"group_id"`
	Description string                  `json:"description"`
	Amount      models.Cents            `json:"amount"`
	PaidBy      string                  `json:"paid_by"`
	Splits      map[string]models.Cents `json:"splits"`
	CreatedAt   int64                   `json:"created_at"`
	UpdatedAt   int64                   `json:"updated_at"`
}

type personalExpenseResponse struct {
	ID          string       `json:"id"`
	Description string       `json:"description"`
	Amount      models.Cents `json:"amount"`
	CreatedAt   int64        `json:"created_at"`
}

type activityResponse struct {
	ID          string       `json:"id"`
	Actor       string       `json:"actor"`
	Action      string       `json:"action"`
	Description string       `json:"description"`
	Amount      models.Cents `json:"amount"`
	CreatedAt   int64        `json:"created_at"`
}

type balancesResponse struct {
	GroupID  string                  `json:"group_id"`
	Balances map[string]models.Cents `json:"balances"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName}
}

func toGroupResponse(g *models.Group) groupResponse {
	return groupResponse{
		ID: g.ID, Name: g.Name, Members: g.Members,
		CreatedBy: g.CreatedBy, CreatedAt: g.CreatedAt,
	}
}

func toExpenseResponse(e *models.Expense) expenseResponse {
	return expenseResponse{
		ID: e.ID, GroupID: e.GroupID, Description: e.Description,
		Amount: e.Amount, PaidBy: e.PaidBy, Splits: e.Splits,
		CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt,
	}
}

func toPersonalExpenseResponse(e *models.PersonalExpense) personalExpenseResponse {
	return personalExpenseResponse{
		ID: e.ID, Description: e.Description,
		Amount: e.Amount, CreatedAt: e.CreatedAt,
	}
}

func toActivityResponse(a *models.Activity) activityResponse {
	return activityResponse{
		ID: a.ID, Actor: a.Actor, Action: a.Action,
		Description: a.Description, Amount: a.Amount, CreatedAt: a.CreatedAt,
	}
}
