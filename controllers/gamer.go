package controllers

import (
	"Tankard/middleware"
	"Tankard/services/coordination"
	"Tankard/utils"
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// @Summary Create a gamer account
// @Description Registers a new gamer and returns the generated gamer id
// @Tags gamers
// @Accept x-www-form-urlencoded
// @Produce json
// @Param full_name formData string true "Full name"
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 201 {object} object{gamer_id=string}
// @Failure 400 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /signup [post]
func SignUp(svc *coordination.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		fullName := c.PostForm("full_name")
		email := c.PostForm("email")
		password := c.PostForm("password")

		// Minimum input sanitizing
		if strings.Trim(fullName, " ") == "" || strings.Trim(email, " ") == "" || strings.Trim(password, " ") == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parameters can't be empty"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
			return
		}

		gamerID, err := svc.CreateGamer(context.Background(), fullName, email, string(hash))
		if err != nil {
			utils.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"gamer_id": gamerID})
	}
}

// @Summary Log a gamer in
// @Description Checks the credentials and returns a JWT token
// @Tags gamers
// @Accept x-www-form-urlencoded
// @Produce json
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 200 {object} object{token=string,gamer_id=string}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Router /login [post]
func Login(svc *coordination.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.PostForm("email")
		password := c.PostForm("password")

		if strings.Trim(email, " ") == "" || strings.Trim(password, " ") == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parameters can't be empty"})
			return
		}

		gamer, err := svc.GetGamerByEmail(context.Background(), email)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password!"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(gamer.PasswordHash), []byte(password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password!"})
			return
		}

		token, err := middleware.GenerateToken(gamer.ID, middleware.RoleGamer)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not issue token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "gamer_id": gamer.ID})
	}
}

// @Summary Get all gamers
// @Description Returns every gamer's public profile
// @Tags gamers
// @Produce json
// @Success 200 {array} object{gamer_id=string,full_name=string,icon=integer}
// @Failure 500 {object} object{error=string}
// @Router /allusers [get]
func GetAllGamers(svc *coordination.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		gamers, err := svc.ListGamers(context.Background())
		if err != nil {
			utils.AbortWithError(c, err)
			return
		}

		simplified := make([]gin.H, len(gamers))
		for i, gamer := range gamers {
			simplified[i] = gin.H{
				"gamer_id":  gamer.ID,
				"full_name": gamer.FullName,
				"icon":      gamer.Icon,
			}
		}
		c.JSON(http.StatusOK, simplified)
	}
}

// @Summary Get a gamer's public info
// @Description Returns the public profile of one gamer
// @Tags gamers
// @Produce json
// @Param gamer_id path string true "Gamer id"
// @Success 200 {object} object{gamer_id=string,full_name=string,icon=integer,member_since=string}
// @Failure 404 {object} object{error=string}
// @Router /users/{gamer_id} [get]
func GetGamerPublicInfo(svc *coordination.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		gamer, err := svc.GetGamer(context.Background(), c.Param("gamer_id"))
		if err != nil {
			utils.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"gamer_id":     gamer.ID,
			"full_name":    gamer.FullName,
			"icon":         gamer.Icon,
			"member_since": gamer.MemberSince,
		})
	}
}

// @Summary Get the authenticated gamer
// @Description Returns the full private profile of the token's gamer
// @Tags gamers
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {object} object{gamer_id=string,full_name=string,email=string,icon=integer,member_since=string,hosted_games=object,joined_games=object,friends_list=object}
// @Failure 401 {object} object{error=string}
// @Router /auth/me [get]
// @Security ApiKeyAuth
func GetMe(svc *coordination.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		gamerID, ok := utils.RequireGamer(c, svc)
		if !ok {
			return
		}

		gamer, err := svc.GetGamer(context.Background(), gamerID)
		if err != nil {
			utils.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"gamer_id":     gamer.ID,
			"full_name":    gamer.FullName,
			"email":        gamer.Email,
			"icon":         gamer.Icon,
			"member_since": gamer.MemberSince,
			"hosted_games": gamer.HostedGames,
			"joined_games": gamer.JoinedGames,
			"friends_list": gamer.FriendsList,
		})
	}
}

// @Summary Update the authenticated gamer
// @Description Patches the gamer's profile fields (full_name, icon)
// @Tags gamers
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param full_name formData string false "Full name"
// @Param icon formData integer false "Icon id"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Router /auth/me [patch]
// @Security ApiKeyAuth
func UpdateGamer(svc *coordination.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		gamerID, ok := utils.RequireGamer(c, svc)
		if !ok {
			return
		}

		fields := map[string]any{}
		if fullName := c.PostForm("full_name"); fullName != "" {
			fields["full_name"] = fullName
		}
		if icon := c.PostForm("icon"); icon != "" {
			iconID, err := strconv.Atoi(icon)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "icon must be an integer"})
				return
			}
			fields["icon"] = iconID
		}

		if err := svc.UpdateGamerProfile(context.Background(), gamerID, fields); err != nil {
			if errors.Is(err, coordination.ErrMissingFields) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
				return
			}
			utils.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
	}
}
