package main

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/bandq-jp/hirelog/cmd/hirelogd/handlers"
	"github.com/bandq-jp/hirelog/pkg/auth"
	"github.com/bandq-jp/hirelog/pkg/clerk"
	"github.com/bandq-jp/hirelog/pkg/configs/backend"
	kdb "github.com/bandq-jp/hirelog/pkg/domain/hirelog/db"
	"github.com/bandq-jp/hirelog/pkg/export"
	"github.com/bandq-jp/hirelog/pkg/report"
)

// newServer wires every route under /api/v1. All routes except /health
// sit behind token authentication; role gates are applied per route.
func newServer(
	database kdb.HirelogDatabase,
	authMiddleware *auth.Middleware,
	clerkClient *clerk.Client,
	conf backend.Config,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	reports := report.New(
		database.Interview(), database.Candidate(), database.Company(),
		database.JobPosition(), database.CriteriaGroup(), database.CriteriaItem(),
	)
	exporter := export.New(
		database.Candidate(), database.Company(), database.JobPosition(),
		database.Agent(), database.User(), database.Interview(),
	)

	// a nil *clerk.Client must stay a nil interface for the handler's
	// "not configured" check
	var inviter handlers.Inviter
	if clerkClient != nil {
		inviter = clerkClient
	}

	e.GET("/api/v1/health", handlers.HealthHandler())

	api := e.Group("/api/v1", authMiddleware.Authenticate)

	{
		users := api.Group("/users")
		users.GET("/me", handlers.GetMeHandler())
		users.GET("", handlers.ListUsersHandler(database.User(), database.Company()), auth.RequireAdmin)
		users.POST("", handlers.CreateUserHandler(database.User()), auth.RequireAdmin)
		users.PATCH("/:id", handlers.PatchUserHandler(
			database.User(), database.Company(), conf.AllowedEmailDomain, "id",
		), auth.RequireAdmin)
	}

	{
		companies := api.Group("/companies")
		companies.GET("", handlers.ListCompaniesHandler(database.Company()), auth.RequireInternal)
		companies.GET("/:id", handlers.GetCompanyHandler(database.Company(), "id"), auth.RequireInternal)
		companies.POST("", handlers.CreateCompanyHandler(database.Company()), auth.RequireAdmin)
		companies.PATCH("/:id", handlers.PatchCompanyHandler(database.Company(), "id"), auth.RequireAdmin)
		companies.DELETE("/:id", handlers.DeleteCompanyHandler(database.Company(), "id"), auth.RequireAdmin)
		companies.POST("/:id/invite", handlers.InviteCompanyUserHandler(
			database.Company(), database.User(), inviter, conf.FrontendBaseURL, "id",
		), auth.RequireAdmin)
	}

	{
		positions := api.Group("/job-positions", auth.RequireInternal)
		positions.GET("", handlers.ListJobPositionsHandler(database.JobPosition()))
		positions.GET("/:id", handlers.GetJobPositionHandler(database.JobPosition(), "id"))
		positions.POST("", handlers.CreateJobPositionHandler(database.JobPosition()), auth.RequireAdmin)
		positions.PATCH("/:id", handlers.PatchJobPositionHandler(database.JobPosition(), "id"), auth.RequireAdmin)
	}

	{
		agents := api.Group("/agents", auth.RequireInternal)
		agents.GET("", handlers.ListAgentsHandler(database.Agent()))
		agents.GET("/stats", handlers.AgentStatsHandler(database.Agent(), database.Candidate()))
		agents.GET("/:id", handlers.GetAgentHandler(database.Agent(), "id"))
		agents.POST("", handlers.CreateAgentHandler(database.Agent()), auth.RequireAdmin)
		agents.PATCH("/:id", handlers.PatchAgentHandler(database.Agent(), "id"), auth.RequireAdmin)
		agents.DELETE("/:id", handlers.DeleteAgentHandler(database.Agent(), "id"), auth.RequireAdmin)
	}

	{
		criteria := api.Group("/criteria", auth.RequireInternal)
		criteria.GET("/groups", handlers.ListCriteriaGroupsHandler(database.CriteriaGroup()))
		criteria.GET("/groups/with-items", handlers.ListCriteriaGroupsWithItemsHandler(
			database.CriteriaGroup(), database.CriteriaItem(),
		))
		criteria.POST("/groups", handlers.CreateCriteriaGroupHandler(database.CriteriaGroup()))
		criteria.PATCH("/groups/:id", handlers.PatchCriteriaGroupHandler(database.CriteriaGroup(), "id"))
		criteria.DELETE("/groups/:id", handlers.DeleteCriteriaGroupHandler(database.CriteriaGroup(), "id"))
		criteria.GET("/items", handlers.ListCriteriaItemsHandler(database.CriteriaItem()))
		criteria.POST("/items", handlers.CreateCriteriaItemHandler(database.CriteriaItem()))
		criteria.PATCH("/items/:id", handlers.PatchCriteriaItemHandler(database.CriteriaItem(), "id"))
	}

	{
		candidates := api.Group("/candidates", auth.RequireInternal)
		candidates.GET("", handlers.ListCandidatesHandler(
			database.Candidate(), database.Company(), database.JobPosition(),
			database.Agent(), database.User(),
		))
		candidates.GET("/funnel", handlers.GetCandidateFunnelHandler(database.Candidate()))
		candidates.GET("/:id", handlers.GetCandidateHandler(
			database.Candidate(), database.Company(), database.JobPosition(),
			database.Agent(), database.User(), "id",
		))
		candidates.POST("", handlers.CreateCandidateHandler(database.Candidate()))
		candidates.PATCH("/:id", handlers.PatchCandidateHandler(database.Candidate(), "id"))
		candidates.DELETE("/:id", handlers.DeleteCandidateHandler(database.Candidate(), "id"))
	}

	{
		interviews := api.Group("/interviews", auth.RequireInternal)
		interviews.GET("/by-candidate/:candidateId", handlers.GetInterviewByCandidateHandler(
			database.Interview(), "candidateId",
		))
		interviews.GET("/:id", handlers.GetInterviewHandler(database.Interview(), "id"))
		interviews.POST("", handlers.CreateInterviewHandler(database.Interview(), database.Candidate()))
		interviews.PATCH("/:id", handlers.PatchInterviewHandler(
			database.Interview(), database.Candidate(), "id",
		))
		interviews.POST("/:id/details", handlers.SaveInterviewDetailsHandler(
			database.Interview(), database.Candidate(), "id",
		))
		interviews.POST("/:id/questions", handlers.AddInterviewQuestionHandler(
			database.Interview(), database.Candidate(), "id",
		))
		interviews.PATCH("/questions/:id", handlers.PatchInterviewQuestionHandler(database.Interview(), "id"))
		interviews.DELETE("/questions/:id", handlers.DeleteInterviewQuestionHandler(database.Interview(), "id"))
	}

	{
		rep := api.Group("/reports", auth.RequireInternal)
		rep.GET("/client/:interviewId", handlers.GetClientReportHandler(reports, "interviewId"))
		rep.GET("/agent/:interviewId", handlers.GetAgentReportHandler(reports, "interviewId"))
	}

	{
		exp := api.Group("/export", auth.RequireInternal)
		exp.GET("/candidates", handlers.ExportCandidatesCSVHandler(exporter))
		exp.GET("/candidates.xlsx", handlers.ExportCandidatesXLSXHandler(exporter))
	}

	{
		client := api.Group("/client", auth.RequireClient)
		client.GET("/me", handlers.ClientMeHandler(database.Company()))
		client.GET("/candidates", handlers.ListClientCandidatesHandler(
			database.Candidate(), database.JobPosition(),
		))
		client.GET("/candidates/:id", handlers.GetClientCandidateHandler(
			database.Candidate(), database.JobPosition(), "id",
		))
		client.GET("/job-positions", handlers.ListClientJobPositionsHandler(database.JobPosition()))
		client.GET("/criteria/groups/with-items", handlers.ListClientCriteriaGroupsWithItemsHandler(
			database.JobPosition(), database.CriteriaGroup(), database.CriteriaItem(),
		))
		client.GET("/interviews/by-candidate/:candidateId", handlers.GetClientInterviewByCandidateHandler(
			database.Candidate(), database.Interview(), "candidateId",
		))
		client.GET("/reports/:interviewId", handlers.GetClientReportHandlerForClient(
			database.Candidate(), database.Interview(), reports, "interviewId",
		))
	}

	return e
}
