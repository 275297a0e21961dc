package config

import (
	"context"
	"encoding/base64"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

var FirebaseApp *firebase.App

// GetFirebaseProjectID returns the identity provider project ID
func GetFirebaseProjectID() string {
	projectID := os.Getenv("FIREBASE_PROJECT_ID")
	if projectID == "" {
		projectID = "the-palace-c5503"
	}
	return projectID
}

// GetFirebaseWebAPIKey returns the Web API key used by the password sign-in
// endpoint. Empty is allowed in tests; the identity service refuses to call
// out without it.
func GetFirebaseWebAPIKey() string {
	return os.Getenv("FIREBASE_WEB_API_KEY")
}

// InitFirebase initializes the Firebase Admin SDK
func InitFirebase() {
	ctx := context.Background()

	config := &firebase.Config{
		ProjectID: GetFirebaseProjectID(),
	}

	// Check for base64 encoded credentials first
	if base64Creds := os.Getenv("FIREBASE_CREDENTIALS_BASE64"); base64Creds != "" {
		log.Printf("Using Firebase credentials from base64 environment variable")
		decoded, err := base64.StdEncoding.DecodeString(base64Creds)
		if err != nil {
			log.Fatalf("Error decoding base64 credentials: %v", err)
		}

		opt := option.WithCredentialsJSON(decoded)
		app, err := firebase.NewApp(ctx, config, opt)
		if err != nil {
			log.Fatalf("error initializing firebase app: %v\n", err)
		}
		FirebaseApp = app
		return
	}

	// Fallback to file-based credentials
	credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	if credFile == "" {
		possiblePaths := []string{
			"palace-firebase-adminsdk.json",
			"../palace-firebase-adminsdk.json",
			"./palace-firebase-adminsdk.json",
		}

		for _, path := range possiblePaths {
			if _, err := os.Stat(path); err == nil {
				credFile = path
				break
			}
		}

		if credFile == "" {
			log.Fatalf("Firebase service account file not found. Please set GOOGLE_APPLICATION_CREDENTIALS environment variable, FIREBASE_CREDENTIALS_BASE64, or place the file in one of these locations: %v", possiblePaths)
		}
	}

	log.Printf("Using Firebase credentials file: %s", credFile)
	opt := option.WithCredentialsFile(credFile)

	app, err := firebase.NewApp(ctx, config, opt)
	if err != nil {
		log.Fatalf("error initializing firebase app: %v\n", err)
	}
	FirebaseApp = app
}
