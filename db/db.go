package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection          *mongo.Collection
	EventsCollection        *mongo.Collection
	LikesCollection         *mongo.Collection
	CommentsCollection      *mongo.Collection
	AttendeesCollection     *mongo.Collection
	SavedPostsCollection    *mongo.Collection
	RegistrationsCollection *mongo.Collection
	Client                  *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	UserCollection = Client.Database("emsdb").Collection("users")
	EventsCollection = Client.Database("emsdb").Collection("events")
	LikesCollection = Client.Database("emsdb").Collection("likes")
	CommentsCollection = Client.Database("emsdb").Collection("comments")
	AttendeesCollection = Client.Database("emsdb").Collection("attendees")
	SavedPostsCollection = Client.Database("emsdb").Collection("favourites")
	RegistrationsCollection = Client.Database("emsdb").Collection("registrations")
}
