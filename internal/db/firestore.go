package db

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"casetrack-backend-go/internal/config"
)

var (
	// fsClient is the global Firestore client instance.
	fsClient *firestore.Client
	// fbAuthClient is the global Firebase Auth client instance.
	fbAuthClient *auth.Client
	// gcsClient is the global Cloud Storage client instance.
	gcsClient *storage.Client
)

// InitFirebase initializes the Firebase Admin SDK and sets up the Firestore,
// Auth and Cloud Storage clients. Credentials come from the app config: a
// service-account file path, a base64-encoded service-account JSON, or
// Application Default Credentials when neither is set.
func InitFirebase(ctx context.Context, appConfig *config.Config) error {
	if appConfig == nil {
		return fmt.Errorf("InitFirebase: appConfig cannot be nil")
	}

	var credsOption option.ClientOption
	switch {
	case appConfig.GoogleApplicationCredentials != "":
		if _, err := os.Stat(appConfig.GoogleApplicationCredentials); os.IsNotExist(err) {
			return fmt.Errorf("credentials file %q does not exist; set GOOGLE_APPLICATION_CREDENTIALS to a readable service-account file", appConfig.GoogleApplicationCredentials)
		}
		credsOption = option.WithCredentialsFile(appConfig.GoogleApplicationCredentials)
	case appConfig.FirebaseServiceAccountJSONBase64 != "":
		decodedJSON, err := base64.StdEncoding.DecodeString(appConfig.FirebaseServiceAccountJSONBase64)
		if err != nil {
			return fmt.Errorf("failed to decode FIREBASE_SERVICE_ACCOUNT_JSON_BASE64: %w", err)
		}
		credsOption = option.WithCredentialsJSON(decodedJSON)
	default:
		// Fall through to Application Default Credentials.
	}

	var firebaseAppConfig *firebase.Config
	if appConfig.FirebaseProjectID != "" {
		firebaseAppConfig = &firebase.Config{ProjectID: appConfig.FirebaseProjectID}
	}

	var app *firebase.App
	var err error
	if credsOption != nil {
		app, err = firebase.NewApp(ctx, firebaseAppConfig, credsOption)
	} else {
		app, err = firebase.NewApp(ctx, firebaseAppConfig)
	}
	if err != nil {
		return fmt.Errorf("firebase.NewApp: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return fmt.Errorf("app.Firestore: %w", err)
	}
	fsClient = client

	authCl, err := app.Auth(ctx)
	if err != nil {
		fsClient.Close()
		return fmt.Errorf("app.Auth: %w", err)
	}
	fbAuthClient = authCl

	var gcsOpts []option.ClientOption
	if credsOption != nil {
		gcsOpts = append(gcsOpts, credsOption)
	}
	gcs, err := storage.NewClient(ctx, gcsOpts...)
	if err != nil {
		fsClient.Close()
		return fmt.Errorf("storage.NewClient: %w", err)
	}
	gcsClient = gcs

	return nil
}

// GetFirestoreClient returns the global Firestore client. It is nil until
// InitFirebase has run successfully.
func GetFirestoreClient() *firestore.Client {
	return fsClient
}

// GetFirebaseAuthClient returns the global Firebase Auth client. It is nil
// until InitFirebase has run successfully.
func GetFirebaseAuthClient() *auth.Client {
	return fbAuthClient
}

// GetStorageClient returns the global Cloud Storage client. It is nil until
// InitFirebase has run successfully.
func GetStorageClient() *storage.Client {
	return gcsClient
}
