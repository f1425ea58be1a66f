package controllers

import (
	"Tankard/middleware"
	models "Tankard/models/postgres"
	"Tankard/services/coordination"
	"Tankard/utils"
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// @Summary Create a publican account
// @Description Registers a pub owner with the venue's location and walk-in table count
// @Tags publicans
// @Accept x-www-form-urlencoded
// @Produce json
// @Param pub_name formData string true "Pub name"
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Param location formData string false "Street address"
// @Param xcoord formData number false "Longitude"
// @Param ycoord formData number false "Latitude"
// @Param tables formData integer false "Walk-in tables available"
// @Success 201 {object} object{pub_id=string}
// @Failure 400 {object} object{error=string}
// @Router /publican/signup [post]
func SignUpPublican(svc *coordination.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		pubName := c.PostForm("pub_name")
		email := c.PostForm("email")
		password := c.PostForm("password")

		if strings.Trim(pubName, " ") == "" || strings.Trim(email, " ") == "" || strings.Trim(password, " ") == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parameters can't be empty"})
			return
		}

		xcoord, _ := strconv.ParseFloat(c.PostForm("xcoord"), 64)
		ycoord, _ := strconv.ParseFloat(c.PostForm("ycoord"), 64)
		tables, err := strconv.Atoi(c.DefaultPostForm("tables", "0"))
		if err != nil || tables < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "tables must be a non-negative integer"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
			return
		}

		pub := models.Publican{
			PubName:      pubName,
			Email:        email,
			PasswordHash: string(hash),
			Location:     c.PostForm("location"),
			Xcoord:       xcoord,
			Ycoord:       ycoord,
			Tables:       tables,
		}
		pubID, err := svc.CreatePublican(context.Background(), &pub)
		if err != nil {
			utils.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"pub_id": pubID})
	}
}

// @Summary Log a publican in
// @Description Checks the credentials and returns a JWT token
// @Tags publicans
// @Accept x-www-form-urlencoded
// @Produce json
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 200 {object} object{token=string,pub_id=string}
// @Failure 401 {object} object{error=string}
// @Router /publican/login [post]
func LoginPublican(svc *coordination.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.PostForm("email")
		password := c.PostForm("password")

		if strings.Trim(email, " ") == "" || strings.Trim(password, " ") == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parameters can't be empty"})
			return
		}

		pub, err := svc.GetPublicanByEmail(context.Background(), email)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password!"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(pub.PasswordHash), []byte(password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password!"})
			return
		}

		token, err := middleware.GenerateToken(pub.ID, middleware.RolePublican)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not issue token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "pub_id": pub.ID})
	}
}

// @Summary Get a pub's public info
// @Description Returns the pub's profile and remaining walk-in tables
// @Tags publicans
// @Produce json
// @Param pub_id path string true "Pub id"
// @Success 200 {object} object{pub_id=string,pub_name=string,location=string,xcoord=number,ycoord=number,tables=integer}
// @Failure 404 {object} object{error=string}
// @Router /pubs/{pub_id} [get]
func GetPublicanInfo(svc *coordination.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		pub, err := svc.GetPublican(context.Background(), c.Param("pub_id"))
		if err != nil {
			utils.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"pub_id":   pub.ID,
			"pub_name": pub.PubName,
			"location": pub.Location,
			"xcoord":   pub.Xcoord,
			"ycoord":   pub.Ycoord,
			"tables":   pub.Tables,
		})
	}
}

// @Summary Reserve a walk-in table
// @Description Takes one table off the pub's walk-in counter for the authenticated gamer
// @Tags publicans
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param pub_id path string true "Pub id"
// @Success 200 {object} object{message=string,tables_left=integer}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/pubs/{pub_id}/reserveTable [post]
// @Security ApiKeyAuth
func ReserveTable(svc *coordination.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := utils.RequireGamer(c, svc); !ok {
			return
		}

		remaining, err := svc.ReservePubTable(context.Background(), c.Param("pub_id"))
		if err != nil {
			utils.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Table reserved", "tables_left": remaining})
	}
}

// @Summary Cancel a walk-in table reservation
// @Description Gives one table back to the pub's walk-in counter
// @Tags publicans
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param pub_id path string true "Pub id"
// @Success 200 {object} object{message=string,tables_left=integer}
// @Failure 404 {object} object{error=string}
// @Router /auth/pubs/{pub_id}/cancelTable [post]
// @Security ApiKeyAuth
func CancelTable(svc *coordination.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := utils.RequireGamer(c, svc); !ok {
			return
		}

		remaining, err := svc.CancelPubTable(context.Background(), c.Param("pub_id"))
		if err != nil {
			utils.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Table reservation cancelled", "tables_left": remaining})
	}
}
