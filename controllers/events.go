package controllers

import (
	constants "Tankard/constants/events"
	"Tankard/services/coordination"
	"Tankard/utils"
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// parseEventTime accepts RFC3339 timestamps from form values.
func parseEventTime(value string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, value)
	return t, err == nil
}

// @Summary Create an event
// @Description Opens a capacity window at the authenticated publican's venue
// @Tags events
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param game_type formData string true "Seat Based or Table Based"
// @Param start_time formData string true "RFC3339 start, on the hour"
// @Param end_time formData string true "RFC3339 end, on the hour"
// @Param expires formData string false "RFC3339 expiry"
// @Param num_seats formData integer false "Seats (Seat Based)"
// @Param num_tables formData integer false "Tables (Table Based)"
// @Param table_capacity formData integer false "Players per table (Table Based)"
// @Success 201 {object} object{event_id=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/createEvent [post]
// @Security ApiKeyAuth
func CreateEvent(svc *coordination.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		pubID, ok := utils.RequirePublican(c, svc)
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

		numSeats, _ := strconv.Atoi(c.PostForm("num_seats"))
		numTables, _ := strconv.Atoi(c.PostForm("num_tables"))
		tableCapacity, _ := strconv.Atoi(c.PostForm("table_capacity"))

		eventID, err := svc.CreateEvent(context.Background(), coordination.CreateEventParams{
			PubID:         pubID,
			GameType:      c.PostForm("game_type"),
			StartTime:     startTime,
			EndTime:       endTime,
			Expires:       expires,
			NumSeats:      numSeats,
			NumTables:     numTables,
			TableCapacity: tableCapacity,
		})
		if err != nil {
			utils.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"event_id": eventID})
	}
}

// @Summary Get an event's availability
// @Description Returns the remaining capacity per hourly slot
// @Tags events
// @Produce json
// @Param event_id path string true "Event id"
// @Success 200 {object} object{event_id=string,available_slots=object}
// @Failure 404 {object} object{error=string}
// @Router /events/{event_id}/availability [get]
func GetEventAvailability(svc *coordination.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID := c.Param("event_id")
		slotMap, err := svc.EventAvailability(context.Background(), eventID)
		if err != nil {
			utils.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"event_id": eventID, "available_slots": slotMap})
	}
}

// @Summary List a pub's events
// @Description Returns every event opened at one pub
// @Tags events
// @Produce json
// @Param pub_id path string true "Pub id"
// @Success 200 {array} object{event_id=string,game_type=string,start_time=string,end_time=string}
// @Failure 500 {object} object{error=string}
// @Router /pubs/{pub_id}/events [get]
func ListPubEvents(svc *coordination.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := svc.ListPubEvents(context.Background(), c.Param("pub_id"))
		if err != nil {
			utils.AbortWithError(c, err)
			return
		}

		simplified := make([]gin.H, len(events))
		for i, event := range events {
			entry := gin.H{
				"event_id":   event.ID,
				"game_type":  event.GameType,
				"start_time": event.StartTime,
				"end_time":   event.EndTime,
			}
			switch event.GameType {
			case constants.GameTypeSeatBased:
				entry["num_seats"] = event.NumSeats
			case constants.GameTypeTableBased:
				entry["num_tables"] = event.NumTables
				entry["table_capacity"] = event.TableCapacity
			}
			simplified[i] = entry
		}
		c.JSON(http.StatusOK, simplified)
	}
}
