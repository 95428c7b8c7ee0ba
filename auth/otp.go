package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/smtp"
	"os"
	"strings"

	"fjwuems/db"
	"fjwuems/rdx"
	"fjwuems/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

func GenerateOTP(length int) string {
	return utils.GenerateRandomDigitString(length)
}

func SendEmailOTP(toEmail, otp string) error {
	from := os.Getenv("SMTP_FROM")
	pass := os.Getenv("SMTP_PASSWORD")
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	if smtpHost == "" {
		smtpHost = "smtp.gmail.com"
	}
	if smtpPort == "" {
		smtpPort = "587"
	}

	msg := []byte("Subject: Email Verification\n\nYour OTP is: " + otp)

	auth := smtp.PlainAuth("", from, pass, smtpHost)
	return smtp.SendMail(smtpHost+":"+smtpPort, auth, from, []string{toEmail}, msg)
}

func VerifyOTPHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	json.NewDecoder(r.Body).Decode(&input)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	storedOTP, err := rdx.RdxGet("otp:" + input.Email)
	if err != nil || storedOTP != input.OTP {
		http.Error(w, "Invalid or expired OTP", http.StatusUnauthorized)
		return
	}

	// Mark user as verified
	_, err = db.UserCollection.UpdateOne(
		context.TODO(),
		bson.M{"email": input.Email},
		bson.M{"$set": bson.M{"email_verified": true}},
	)
	if err != nil {
		http.Error(w, "Failed to verify user", http.StatusInternalServerError)
		return
	}

	rdx.RdxDel("otp:" + input.Email) // Clean up OTP
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "User verified successfully"})
}

// RequestOTPHandler re-sends a verification code for an unverified account.
func RequestOTPHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email string `json:"email"`
	}
	json.NewDecoder(r.Body).Decode(&input)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Email == "" {
		http.Error(w, "Email is required", http.StatusBadRequest)
		return
	}

	count, err := db.UserCollection.CountDocuments(context.TODO(), bson.M{"email": input.Email, "email_verified": false})
	if err != nil || count == 0 {
		http.Error(w, "No unverified account for that email", http.StatusNotFound)
		return
	}

	otp := GenerateOTP(6)
	if err := SendEmailOTP(input.Email, otp); err != nil {
		log.Printf("Failed to send OTP email to %s: %v", input.Email, err)
		http.Error(w, "Failed to send OTP", http.StatusInternalServerError)
		return
	}
	if err := rdx.SetWithExpiry("otp:"+input.Email, otp, otpTTL); err != nil {
		log.Printf("Failed to cache OTP: %v", err)
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "OTP sent"})
}
