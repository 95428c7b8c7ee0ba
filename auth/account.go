package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"fjwuems/db"
	"fjwuems/middleware"
	"fjwuems/models"
	"fjwuems/rdx"
	"fjwuems/utils"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

func changePasswordHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ValidateJWT(r.Header.Get("Authorization"))
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if input.NewPassword == "" {
		http.Error(w, "New password is required", http.StatusBadRequest)
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(context.TODO(), bson.M{"userid": claims.UserID}).Decode(&user); err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword)); err != nil {
		http.Error(w, "Current password is incorrect", http.StatusUnauthorized)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Failed to hash password", http.StatusInternalServerError)
		return
	}

	_, err = db.UserCollection.UpdateOne(
		context.TODO(),
		bson.M{"userid": claims.UserID},
		bson.M{"$set": bson.M{"password": string(hashed)}},
	)
	if err != nil {
		http.Error(w, "Failed to update password", http.StatusInternalServerError)
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Password changed", nil)
}

// deleteAccountHandler removes the user document and cached tokens.
// Likes, comments and RSVP markers written by the account stay behind;
// nothing cascades.
func deleteAccountHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ValidateJWT(r.Header.Get("Authorization"))
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	res, err := db.UserCollection.DeleteOne(context.TODO(), bson.M{"userid": claims.UserID})
	if err != nil || res.DeletedCount == 0 {
		http.Error(w, "Failed to delete account", http.StatusInternalServerError)
		return
	}

	if _, err := rdx.RdxHdel("tokki", claims.UserID); err != nil {
		log.Printf("Error removing token from Redis: %v", err)
	}

	utils.SendResponse(w, http.StatusOK, nil, "Account deleted", nil)
}
