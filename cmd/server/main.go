package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"casetrack-backend-go/internal/api"
	"casetrack-backend-go/internal/config"
	"casetrack-backend-go/internal/core"
	"casetrack-backend-go/internal/db"
	"casetrack-backend-go/internal/middleware"
	"casetrack-backend-go/internal/storage"
)

func main() {
	// --- 1. Load Application Configuration ---
	appConfig, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load application configuration: %v", err)
	}

	// --- 2. Initialize Logger (Zap) ---
	var zapLogger *zap.Logger
	if strings.ToLower(appConfig.LogMode) == "production" {
		zapLogger, err = zap.NewProduction()
	} else {
		zapLogger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("Logger and configuration initialized.")

	// --- 3. Initialize Firebase Admin SDK (Firestore, Auth, Cloud Storage) ---
	initCtx, cancelInitCtx := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInitCtx()
	if err := db.InitFirebase(initCtx, appConfig); err != nil {
		zapLogger.Fatal("Failed to initialize Firebase Admin SDK", zap.Error(err))
	}

	firestoreClient := db.GetFirestoreClient()
	firebaseAuthClient := db.GetFirebaseAuthClient()
	if firestoreClient == nil || firebaseAuthClient == nil {
		zapLogger.Fatal("Firestore or Firebase Auth client is nil after initialization. Application cannot start.")
	}
	zapLogger.Info("Firebase Admin SDK (Firestore, Auth) initialized successfully.")

	// Object storage is optional; without a bucket, document uploads return a
	// configuration error at request time instead of failing startup.
	var objectStore storage.ObjectStore
	if appConfig.StorageBucket != "" {
		gcsClient := db.GetStorageClient()
		if gcsClient == nil {
			zapLogger.Fatal("STORAGE_BUCKET is set but the Cloud Storage client failed to initialize.")
		}
		objectStore = storage.NewGCSObjectStore(gcsClient, appConfig.StorageBucket)
		zapLogger.Info("Document storage enabled", zap.String("bucket", appConfig.StorageBucket))
	} else {
		zapLogger.Warn("STORAGE_BUCKET is not configured; document uploads are disabled.")
	}

	// --- 4. Initialize Repositories ---
	orgRepo := db.NewFirestoreOrganizationRepository(firestoreClient)
	userRepo := db.NewFirestoreUserRepository(firestoreClient)
	caseRepo := db.NewFirestoreCaseRepository(firestoreClient)
	clientRepo := db.NewFirestoreClientRepository(firestoreClient)
	hearingRepo := db.NewFirestoreHearingRepository(firestoreClient)
	taskRepo := db.NewFirestoreTaskRepository(firestoreClient)
	paymentRepo := db.NewFirestorePaymentRepository(firestoreClient)
	documentRepo := db.NewFirestoreDocumentRepository(firestoreClient)
	conversationRepo := db.NewFirestoreConversationRepository(firestoreClient)
	activityRepo := db.NewFirestoreActivityRepository(firestoreClient)
	identityProvider := db.NewFirebaseIdentityProvider(firebaseAuthClient)
	zapLogger.Info("Repositories initialized successfully.")

	// --- 5. Initialize Services ---
	activityService := core.NewActivityService(activityRepo)
	orgService := core.NewOrganizationService(orgRepo, userRepo, caseRepo, clientRepo, activityService, zapLogger)
	quotaService := core.NewQuotaService(orgRepo, zapLogger)
	userService := core.NewUserService(userRepo, orgRepo, identityProvider, orgService, zapLogger)
	caseService := core.NewCaseService(caseRepo, orgRepo, hearingRepo, taskRepo, documentRepo, conversationRepo, paymentRepo, orgService, quotaService, activityService, zapLogger)
	clientService := core.NewClientService(clientRepo, paymentRepo, orgService, activityService, zapLogger)
	documentService := core.NewDocumentService(documentRepo, caseRepo, orgService, objectStore, zapLogger)
	conversationService := core.NewConversationService(conversationRepo, caseRepo, orgService, zapLogger)
	zapLogger.Info("Core services initialized successfully.")

	// --- 6. Setup Gin HTTP Engine ---
	if strings.ToLower(appConfig.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()

	// Middleware order: log every request first, recover from panics next.
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	if appConfig.ClientURL != "" {
		router.Use(middleware.CORSMiddleware(appConfig))
		zapLogger.Info("CORS Middleware enabled", zap.String("clientURL", appConfig.ClientURL))
	} else {
		zapLogger.Warn("CORS Middleware SKIPPED: CLIENT_URL is not configured. API might not be accessible from a web frontend.")
	}

	// --- 7. Setup API Routes ---
	api.SetupRoutes(
		router,
		zapLogger,
		userService,
		orgService,
		caseService,
		clientService,
		documentService,
		conversationService,
	)

	// --- 8. Configure and Start HTTP Server ---
	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	zapLogger.Info("Starting HTTP server...", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// --- 9. Graceful Shutdown Handling ---
	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("Server forced to shutdown due to error during graceful shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting gracefully.")
}
