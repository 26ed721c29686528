package controller

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/memecataloger/catalog-api/entity"
	"github.com/memecataloger/catalog-api/repository"
	"github.com/memecataloger/catalog-api/utils"
)

func serializeUser(user *entity.User) gin.H {
	return gin.H{
		"id":       user.ID.String(),
		"username": user.Username,
	}
}

func (ctrl *Controller) ListUsers(c *gin.Context) {
	ctx := c.Request.Context()

	users, err := ctrl.Repository.UserRepo.FindAll()
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[User] Failed to list users")
		utils.JSON500(c, "Failed to list users")
		return
	}

	payload := make([]gin.H, 0, len(users))
	for i := range users {
		payload = append(payload, serializeUser(&users[i]))
	}
	utils.JSON200(c, payload)
}

func (ctrl *Controller) CreateUser(c *gin.Context) {
	ctx := c.Request.Context()

	username := c.PostForm("username")
	if username == "" {
		utils.Status400(c)
		return
	}

	user := &entity.User{
		ID:       uuid.New(),
		Username: username,
	}
	if err := ctrl.Repository.UserRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			ctrl.Infra.Logger.WarningWithContextf(ctx, "[User] Username already taken: %s", username)
			utils.JSON409(c, "Username already taken")
			return
		}
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[User] Failed to create user %s", username)
		utils.JSON500(c, "Failed to create user")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[User] Created user %s (%s)", username, user.ID)
	utils.JSON200(c, gin.H{"message": "User created successfully."})
}

// UserView is a placeholder page kept until a real profile view exists.
func (ctrl *Controller) UserView(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		utils.Status400(c)
		return
	}

	body := fmt.Sprintf(
		"<div>You landed on the user view!</div>"+
			"<div>The user id is: {'user_id': UUID('%s')}</div>"+
			"<div>This page hasn't really been implemented for anything yet.</div>",
		userID,
	)
	c.Data(200, "text/html; charset=utf-8", []byte(body))
}
