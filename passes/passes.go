package passes

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"

	"fjwuems/db"
	"fjwuems/globals"
	"fjwuems/models"
	"fjwuems/utils"
)

var hmacSecret = func() string {
	if s := os.Getenv("PASS_SECRET"); s != "" {
		return s
	}
	return "dev_pass_secret"
}()

// GenerateQRPayload returns eventID|userID|timestamp|signature. The
// signature lets gate staff verify a pass offline.
func GenerateQRPayload(eventID, userID string, issuedAt time.Time) string {
	data := fmt.Sprintf("%s|%s|%d", eventID, userID, issuedAt.Unix())

	h := hmac.New(sha256.New, []byte(hmacSecret))
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return fmt.Sprintf("%s|%s", data, sig)
}

// VerifyQRPayload checks the signature on a scanned payload.
func VerifyQRPayload(payload string) bool {
	idx := -1
	for i := len(payload) - 1; i >= 0; i-- {
		if payload[i] == '|' {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	data, sig := payload[:idx], payload[idx+1:]

	h := hmac.New(sha256.New, []byte(hmacSecret))
	h.Write([]byte(data))
	want := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return hmac.Equal([]byte(sig), []byte(want))
}

// PrintPass renders a registration pass PDF with a signed QR code.
// The caller must be registered for the event.
func PrintPass(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	eventID := ps.ByName("eventid")

	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var registration models.EventSnapshot
	err := db.RegistrationsCollection.FindOne(ctx, bson.M{
		"eventId": eventID,
		"userid":  userID,
	}).Decode(&registration)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "No registration found for this event")
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	qrPayload := GenerateQRPayload(eventID, userID, time.Now())

	qrPNG, err := qrcode.Encode(qrPayload, qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Event Registration Pass")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Event: %s", registration.EventTitle))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Name: %s", user.Name))
	pdf.Ln(8)
	if registration.Venue != "" {
		pdf.Cell(0, 10, fmt.Sprintf("Venue: %s", registration.Venue))
		pdf.Ln(8)
	}
	if registration.DateTime != "" {
		pdf.Cell(0, 10, fmt.Sprintf("Date: %s", registration.DateTime))
		pdf.Ln(8)
	}
	if registration.OrganizerName != "" {
		pdf.Cell(0, 10, fmt.Sprintf("Organized by: %s", registration.OrganizerName))
		pdf.Ln(8)
	}
	pdf.Ln(4)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=pass-"+eventID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
