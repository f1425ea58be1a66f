package controllers

import (
	"Tankard/services/coordination"
	"Tankard/utils"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Get a list of the gamer's friends
// @Description Returns the public profiles of the authenticated gamer's friends
// @Tags friends
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {array} object{gamer_id=string,full_name=string,icon=integer}
// @Failure 401 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/friends [get]
// @Security ApiKeyAuth
func ListFriends(svc *coordination.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		gamerID, ok := utils.RequireGamer(c, svc)
		if !ok {
			return
		}

		friends, err := svc.ListFriends(context.Background(), gamerID)
		if err != nil {
			utils.AbortWithError(c, err)
			return
		}

		simplifiedFriends := make([]gin.H, len(friends))
		for i, friend := range friends {
			simplifiedFriends[i] = gin.H{
				"gamer_id":  friend.ID,
				"full_name": friend.FullName,
				"icon":      friend.Icon,
			}
		}
		c.JSON(http.StatusOK, gin.H{"friends": simplifiedFriends})
	}
}

// @Summary Add a friend
// @Description Records a mutual friendship between the authenticated gamer and another gamer
// @Tags friends
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param friend_id formData string true "Friend's gamer id"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/addFriend [post]
// @Security ApiKeyAuth
func AddFriend(svc *coordination.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		gamerID, ok := utils.RequireGamer(c, svc)
		if !ok {
			return
		}

		friendID := c.PostForm("friend_id")
		if friendID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "friend_id is required"})
			return
		}

		if err := svc.AddFriend(context.Background(), gamerID, friendID); err != nil {
			utils.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Friend added"})
	}
}

// @Summary Remove a friend
// @Description Deletes the friendship in both directions
// @Tags friends
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param friend_id path string true "Friend's gamer id"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/deleteFriend/{friend_id} [delete]
// @Security ApiKeyAuth
func RemoveFriend(svc *coordination.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		gamerID, ok := utils.RequireGamer(c, svc)
		if !ok {
			return
		}

		if err := svc.RemoveFriend(context.Background(), gamerID, c.Param("friend_id")); err != nil {
			utils.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Friend removed"})
	}
}
