package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"casetrack-backend-go/internal/core"
	"casetrack-backend-go/internal/db"
	"casetrack-backend-go/internal/middleware"
)

// SetupRoutes configures all application routes. Global middleware (logging,
// recovery, CORS) is applied to the router before this is called, in main.go.
func SetupRoutes(
	router *gin.Engine,
	logger *zap.Logger,
	userService core.UserService,
	orgService core.OrganizationService,
	caseService core.CaseService,
	clientService core.ClientService,
	documentService core.DocumentService,
	conversationService core.ConversationService,
) {
	firebaseAuthClient := db.GetFirebaseAuthClient()
	if firebaseAuthClient == nil {
		logger.Fatal("Firebase Auth client is not initialized, routes cannot be secured")
	}
	authMW := middleware.NewAuthMiddleware(firebaseAuthClient, logger)

	userHandler := NewUserHandler(userService, logger)
	orgHandler := NewOrganizationHandler(orgService, logger)
	caseHandler := NewCaseHandler(caseService, logger)
	clientHandler := NewClientHandler(clientService, logger)
	documentHandler := NewDocumentHandler(documentService, logger)
	conversationHandler := NewConversationHandler(conversationService, logger)

	apiGroup := router.Group("/api", authMW.VerifyToken())
	{
		users := apiGroup.Group("/users")
		{
			users.GET("/:userId", userHandler.GetUser)
			users.PATCH("/:userId", userHandler.UpdateUser)
		}

		organizations := apiGroup.Group("/organizations")
		{
			organizations.POST("/create", orgHandler.CreateOrganization)
			organizations.GET("/list", orgHandler.ListOrganizations)
			organizations.GET("/:id", orgHandler.GetOrganization)
			organizations.PATCH("/:id/subscription", orgHandler.UpdateSubscription)
			organizations.GET("/:id/usage", orgHandler.GetUsageStats)
		}

		cases := apiGroup.Group("/cases")
		{
			cases.POST("", caseHandler.CreateCase)
			cases.GET("", caseHandler.ListCases)
			cases.GET("/:caseId", caseHandler.GetCase)
			cases.PATCH("/:caseId", caseHandler.UpdateCase)
			cases.DELETE("/:caseId", caseHandler.DeleteCase)
			cases.GET("/:caseId/payments", caseHandler.ListPayments)

			hearings := cases.Group("/:caseId/hearings")
			{
				hearings.POST("", caseHandler.CreateHearing)
				hearings.GET("", caseHandler.ListHearings)
				hearings.PATCH("/:hearingId", caseHandler.UpdateHearing)
				hearings.DELETE("/:hearingId", caseHandler.DeleteHearing)
			}

			tasks := cases.Group("/:caseId/tasks")
			{
				tasks.POST("", caseHandler.CreateTask)
				tasks.GET("", caseHandler.ListTasks)
				tasks.PATCH("/:taskId", caseHandler.UpdateTask)
				tasks.DELETE("/:taskId", caseHandler.DeleteTask)
			}

			documents := cases.Group("/:caseId/documents")
			{
				documents.POST("", documentHandler.UploadDocument)
				documents.GET("", documentHandler.ListDocuments)
				documents.DELETE("/:documentId", documentHandler.DeleteDocument)
			}

			messages := cases.Group("/:caseId/messages")
			{
				messages.POST("", conversationHandler.PostMessage)
				messages.GET("", conversationHandler.ListMessages)
				messages.GET("/stream", conversationHandler.StreamMessages)
			}
		}

		clients := apiGroup.Group("/clients")
		{
			clients.POST("", clientHandler.CreateClient)
			clients.GET("", clientHandler.ListClients)
			clients.GET("/:clientId", clientHandler.GetClient)
			clients.PATCH("/:clientId", clientHandler.UpdateClient)
			clients.DELETE("/:clientId", clientHandler.DeleteClient)
			clients.GET("/:clientId/payments", clientHandler.ListPayments)
		}

		apiGroup.POST("/payments", clientHandler.RecordPayment)
	}

	// Public health check, outside the authenticated group.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Casetrack backend is healthy."})
	})

	logger.Info("API routes configured successfully under /api and /health.")
}
