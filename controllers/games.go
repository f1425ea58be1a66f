package controllers

import (
	models "Tankard/models/postgres"
	"Tankard/services/coordination"
	"Tankard/utils"
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// @Summary Create a game
// @Description Books a game into the covering event at a pub, consuming slot capacity for the whole roster
// @Tags games
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param pub_id formData string true "Pub id"
// @Param name formData string true "Game name"
// @Param desc formData string false "Description"
// @Param game_type formData string false "Descriptive label (Poker, Darts, ...)"
// @Param start_time formData string true "RFC3339 start, on the hour"
// @Param end_time formData string true "RFC3339 end, on the hour"
// @Param expires formData string false "RFC3339 expiry"
// @Param max_players formData integer true "Roster size"
// @Param tables formData string false "Comma-separated table names (Table Based events)"
// @Param is_private formData boolean false "Private game"
// @Param access_code formData string false "Access code for private games"
// @Success 201 {object} object{game_id=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/createGame [post]
// @Security ApiKeyAuth
func CreateGame(svc *coordination.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		gamerID, ok := utils.RequireGamer(c, svc)
		if !ok {
			return
		}

		startTime, ok := parseEventTime(c.PostForm("start_time"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_time must be RFC3339"})
			return
		}
		endTime, ok := parseEventTime(c.PostForm("end_time"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_time must be RFC3339"})
			return
		}
		expires, ok := parseEventTime(c.PostForm("expires"))
		if !ok {
			expires = endTime
		}

		maxPlayers, _ := strconv.Atoi(c.PostForm("max_players"))
		isPrivate := c.PostForm("is_private") == "true"

		var tables []string
		if raw := c.PostForm("tables"); raw != "" {
			for _, name := range strings.Split(raw, ",") {
				if trimmed := strings.TrimSpace(name); trimmed != "" {
					tables = append(tables, trimmed)
				}
			}
		}

		gameID, err := svc.CreateGame(context.Background(), coordination.CreateGameParams{
			PubID:      c.PostForm("pub_id"),
			HostID:     gamerID,
			Name:       c.PostForm("name"),
			Desc:       c.PostForm("desc"),
			GameType:   c.PostForm("game_type"),
			StartTime:  startTime,
			EndTime:    endTime,
			Expires:    expires,
			MaxPlayers: maxPlayers,
			Tables:     tables,
			IsPrivate:  isPrivate,
			AccessCode: c.PostForm("access_code"),
		})
		if err != nil {
			utils.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"game_id": gameID})
	}
}

// gameView strips the credentials a game record carries before it leaves
// the server: the access code never travels, the password-gated fields do.
func gameView(game *models.Game) gin.H {
	view := gin.H{
		"game_id":      game.ID,
		"host_id":      game.HostID,
		"pub_id":       game.PubID,
		"event_id":     game.EventID,
		"name":         game.Name,
		"desc":         game.Desc,
		"game_type":    game.GameType,
		"start_time":   game.StartTime,
		"end_time":     game.EndTime,
		"location":     game.Location,
		"xcoord":       game.Xcoord,
		"ycoord":       game.Ycoord,
		"max_players":  game.MaxPlayers,
		"is_private":   game.IsPrivate,
		"shape":        game.Shape,
		"participants": game.Participants,
	}
	if game.Seats != nil {
		view["seats"] = game.Seats
	}
	if game.Tables != nil {
		view["tables"] = game.Tables
	}
	return view
}

// @Summary Get a game's details
// @Description Returns the game record with its roster, seats or tables
// @Tags games
// @Produce json
// @Param game_id path string true "Game id"
// @Success 200 {object} object{game_id=string,name=string,participants=object}
// @Failure 404 {object} object{error=string}
// @Router /games/{game_id} [get]
func GetGameDetails(svc *coordination.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		game, err := svc.GetGame(context.Background(), c.Param("game_id"))
		if err != nil {
			utils.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gameView(game))
	}
}

// @Summary List games
// @Description Returns every game, optionally restricted to one pub with ?pub_id=
// @Tags games
// @Produce json
// @Param pub_id query string false "Pub id"
// @Success 200 {array} object{game_id=string,name=string}
// @Failure 500 {object} object{error=string}
// @Router /games [get]
func ListGames(svc *coordination.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		games, err := svc.ListGames(context.Background(), c.Query("pub_id"))
		if err != nil {
			utils.AbortWithError(c, err)
			return
		}

		views := make([]gin.H, len(games))
		for i := range games {
			views[i] = gameView(&games[i])
		}
		c.JSON(http.StatusOK, views)
	}
}

// @Summary Join a game
// @Description Reserves a seat or a table spot for the authenticated gamer
// @Tags games
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param game_id path string true "Game id"
// @Param seat_number formData integer false "Seat to reserve (Seat Based games)"
// @Param table_name formData string false "Table to sit at (Table Based games)"
// @Param access_code formData string false "Access code for private games"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/joinGame/{game_id} [post]
// @Security ApiKeyAuth
func JoinGame(svc *coordination.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		gamerID, ok := utils.RequireGamer(c, svc)
		if !ok {
			return
		}

		seatNumber, _ := strconv.Atoi(c.PostForm("seat_number"))
		opts := coordination.JoinOptions{
			SeatNumber: seatNumber,
			TableName:  c.PostForm("table_name"),
			AccessCode: c.PostForm("access_code"),
		}

		if err := svc.JoinGame(context.Background(), c.Param("game_id"), gamerID, opts); err != nil {
			utils.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Joined game"})
	}
}

// @Summary Leave a game
// @Description Frees the gamer's seat or table spot; the game keeps its booked capacity
// @Tags games
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param game_id path string true "Game id"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/leaveGame/{game_id} [post]
// @Security ApiKeyAuth
func LeaveGame(svc *coordination.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		gamerID, ok := utils.RequireGamer(c, svc)
		if !ok {
			return
		}

		if err := svc.LeaveGame(context.Background(), c.Param("game_id"), gamerID); err != nil {
			utils.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Left game"})
	}
}

// @Summary Cancel a game
// @Description Host-only: removes the game and releases its slot capacity back to the event
// @Tags games
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param game_id path string true "Game id"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/cancelGame/{game_id} [delete]
// @Security ApiKeyAuth
func CancelGame(svc *coordination.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		gamerID, ok := utils.RequireGamer(c, svc)
		if !ok {
			return
		}

		if err := svc.CancelGame(context.Background(), c.Param("game_id"), gamerID); err != nil {
			utils.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Game cancelled"})
	}
}
