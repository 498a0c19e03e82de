package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fitlog/fitlog/internal/config"
	"github.com/fitlog/fitlog/internal/tracker"
	"github.com/fitlog/fitlog/internal/tracker/exercises"
	"github.com/fitlog/fitlog/internal/tracker/logbook"
	"github.com/fitlog/fitlog/internal/tracker/users"
)

// respondError collapses a service error to a status code and a JSON body.
// Validation maps to 400, missing records to 404, everything else to 500
// with a static message so backend details never leak to the client.
func respondError(c *gin.Context, logger *zap.Logger, err error, fallback string) {
	var validationErr *tracker.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"message": validationErr.Message})
		return
	}

	var notFoundErr *tracker.NotFoundError
	if errors.As(err, &notFoundErr) {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found!"})
		return
	}

	logger.Error(fallback, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"message": fallback})
}

// listUsers returns every user as a JSON array. An empty table yields [],
// not the message object the historic API produced.
func listUsers(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		userList, err := as.UserService.ListUsers(c.Request.Context())
		if err != nil {
			respondError(c, as.Logger, err, "Getting all users failed!")
			return
		}

		if userList == nil {
			userList = []users.User{}
		}
		c.JSON(http.StatusOK, userList)
	}
}

func createUser(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req users.CreateUserRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}

		user, err := as.UserService.CreateUser(c.Request.Context(), &req)
		if err != nil {
			respondError(c, as.Logger, err, "User creation failed!")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"username": user.Username,
			"_id":      user.ID,
		})
	}
}

// createExercise logs an exercise against a user. The response echoes the
// user's id as _id, not the exercise's, matching the published contract.
func createExercise(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userId")

		user, err := as.UserService.GetUser(c.Request.Context(), userID)
		if err != nil {
			respondError(c, as.Logger, err, "Exercise creation failed!")
			return
		}

		var req exercises.CreateExerciseRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}

		exercise, err := as.ExerciseService.CreateExercise(c.Request.Context(), user, &req)
		if err != nil {
			respondError(c, as.Logger, err, "Exercise creation failed!")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"username":    exercise.Username,
			"description": exercise.Description,
			"duration":    exercise.Duration,
			"date":        logbook.HumanDate(exercise.Date),
			"_id":         user.ID,
		})
	}
}

func getUserLog(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userId")

		user, err := as.UserService.GetUser(c.Request.Context(), userID)
		if err != nil {
			respondError(c, as.Logger, err, "Error retrieving user logs!")
			return
		}

		var req exercises.LogQueryRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid query parameters"})
			return
		}

		items, err := as.ExerciseService.QueryLog(c.Request.Context(), user.ID, &req)
		if err != nil {
			respondError(c, as.Logger, err, "Error retrieving user logs!")
			return
		}

		c.JSON(http.StatusOK, logbook.Assemble(user, items))
	}
}

func deleteAllUsers(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := as.UserService.DeleteAllUsers(c.Request.Context())
		if err != nil {
			respondError(c, as.Logger, err, "Deleting all users failed!")
			return
		}

		as.Logger.Info("All users deleted", zap.Int64("count", result.DeletedCount))
		c.JSON(http.StatusOK, gin.H{
			"message": "All users have been deleted!",
			"result":  result,
		})
	}
}

func deleteAllExercises(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := as.ExerciseService.DeleteAllExercises(c.Request.Context())
		if err != nil {
			respondError(c, as.Logger, err, "Deleting all exercises failed!")
			return
		}

		as.Logger.Info("All exercises deleted", zap.Int64("count", result.DeletedCount))
		c.JSON(http.StatusOK, gin.H{
			"message": "All exercises have been deleted!",
			"result":  result,
		})
	}
}

// AdminAuthMiddleware gates the destructive bulk-delete endpoints behind the
// configured admin key
func AdminAuthMiddleware(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isValidAdminAuth(c.GetHeader("Authorization")) {
			as.Logger.Warn("Unauthorized access to admin endpoint",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.String("remote_addr", c.Request.RemoteAddr))

			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Admin authentication required for bulk deletion",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// isValidAdminAuth validates the admin key using config
func isValidAdminAuth(authHeader string) bool {
	expectedKey := config.Auth().AdminAPIKey
	if expectedKey == "" || authHeader == "" {
		return false
	}

	// Accept either Bearer or Api-Key format
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ") == expectedKey
	}
	if strings.HasPrefix(authHeader, "Api-Key ") {
		return strings.TrimPrefix(authHeader, "Api-Key ") == expectedKey
	}

	return false
}
