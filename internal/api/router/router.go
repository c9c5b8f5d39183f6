package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/PeterLoonenMetis/eduview-sub000/config"
	"github.com/PeterLoonenMetis/eduview-sub000/internal/api/handler"
	"github.com/PeterLoonenMetis/eduview-sub000/internal/api/middleware"
	"github.com/PeterLoonenMetis/eduview-sub000/pkg/jwt"
	"github.com/PeterLoonenMetis/eduview-sub000/pkg/redis"
)

// Setup builds the gin engine. db is only used by the health check and may be nil.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, db *gorm.DB, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	if cfg.Server.MaxBodyBytes > 0 {
		r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))
	}

	// ── health ──
	r.GET("/health", func(c *gin.Context) {
		if db != nil {
			sqlDB, err := db.DB()
			if err == nil {
				err = sqlDB.PingContext(c.Request.Context())
			}
			if err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	authorized := r.Group("/api/v1")
	authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
	if cfg.RateLimit.Enabled {
		authorized.Use(middleware.RateLimit(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	admin := middleware.RoleAuth(jwt.RoleAdmin)
	edit := middleware.RoleAuth(jwt.RoleAdmin, jwt.RoleEditor)

	// institutes / academies
	institutes := authorized.Group("/institutes")
	{
		institutes.GET("", h.Institute.ListInstitutes)
		institutes.POST("", admin, h.Institute.CreateInstitute)
		institutes.GET("/:id", h.Institute.GetInstitute)
		institutes.PUT("/:id", admin, h.Institute.UpdateInstitute)
		institutes.DELETE("/:id", admin, h.Institute.DeleteInstitute)
		institutes.GET("/:id/academies", h.Institute.ListAcademies)
		institutes.POST("/:id/academies", admin, h.Institute.CreateAcademy)
	}
	academies := authorized.Group("/academies")
	{
		academies.GET("/:id", h.Institute.GetAcademy)
		academies.PUT("/:id", admin, h.Institute.UpdateAcademy)
		academies.DELETE("/:id", admin, h.Institute.DeleteAcademy)
		academies.GET("/:id/programs", h.Program.ListPrograms)
		academies.POST("/:id/programs", edit, h.Program.CreateProgram)
	}

	// programs and their qualification structure
	programs := authorized.Group("/programs")
	{
		programs.GET("/:id", h.Program.GetProgram)
		programs.PUT("/:id", edit, h.Program.UpdateProgram)
		programs.DELETE("/:id", edit, h.Program.DeleteProgram)
		programs.GET("/:id/mbo-config", h.Program.GetMBOConfig)
		programs.PUT("/:id/mbo-config", edit, h.Program.UpsertMBOConfig)
		programs.GET("/:id/hbo-config", h.Program.GetHBOConfig)
		programs.PUT("/:id/hbo-config", edit, h.Program.UpsertHBOConfig)
		programs.POST("/:id/kerntaken", edit, h.Program.CreateKerntaak)
		programs.POST("/:id/keuzedelen", edit, h.Program.CreateKeuzedeel)
		programs.GET("/:id/cohorts", h.Cohort.ListCohorts)
		programs.POST("/:id/cohorts", edit, h.Cohort.CreateCohort)
	}
	authorized.PUT("/kerntaken/:id", edit, h.Program.UpdateKerntaak)
	authorized.DELETE("/kerntaken/:id", edit, h.Program.DeleteKerntaak)
	authorized.POST("/kerntaken/:id/werkprocessen", edit, h.Program.CreateWerkproces)
	authorized.PUT("/werkprocessen/:id", edit, h.Program.UpdateWerkproces)
	authorized.DELETE("/werkprocessen/:id", edit, h.Program.DeleteWerkproces)
	authorized.PUT("/keuzedelen/:id", edit, h.Program.UpdateKeuzedeel)
	authorized.DELETE("/keuzedelen/:id", edit, h.Program.DeleteKeuzedeel)

	// cohorts
	cohorts := authorized.Group("/cohorts")
	{
		cohorts.GET("/:id", h.Cohort.GetCohort)
		cohorts.PUT("/:id", edit, h.Cohort.UpdateCohort)
		cohorts.DELETE("/:id", edit, h.Cohort.DeleteCohort)
		cohorts.POST("/:id/activate", edit, h.Cohort.ActivateCohort)
		cohorts.POST("/:id/initialize", edit, h.Cohort.InitializeCohort)

		cohorts.GET("/:id/visions", h.Vision.ListVisions)
		cohorts.POST("/:id/visions", edit, h.Vision.CreateVision)
		cohorts.GET("/:id/outcomes", h.Outcome.ListOutcomes)
		cohorts.POST("/:id/outcomes", edit, h.Outcome.CreateOutcome)
		cohorts.PUT("/:id/outcomes/order", edit, h.Outcome.ReorderOutcomes)
		cohorts.GET("/:id/academic-years", h.Curriculum.ListYears)
		cohorts.POST("/:id/academic-years", edit, h.Curriculum.CreateYear)
		cohorts.GET("/:id/credits", h.Curriculum.CohortCredits)

		cohorts.GET("/:id/credit-overview", h.Dashboard.CreditOverview)
		cohorts.GET("/:id/coverage-matrix", h.Dashboard.CoverageMatrix)
		cohorts.GET("/:id/export", h.Export.ExportCohort)
	}

	// visions / principles
	visions := authorized.Group("/visions")
	{
		visions.GET("/:id", h.Vision.GetVision)
		visions.PUT("/:id", edit, h.Vision.UpdateVision)
		visions.DELETE("/:id", edit, h.Vision.DeleteVision)
		visions.GET("/:id/principles", h.Vision.ListPrinciples)
		visions.POST("/:id/principles", edit, h.Vision.CreatePrinciple)
		visions.PUT("/:id/principles/order", edit, h.Vision.ReorderPrinciples)
	}
	authorized.PUT("/principles/:id", edit, h.Vision.UpdatePrinciple)
	authorized.DELETE("/principles/:id", edit, h.Vision.DeletePrinciple)

	// learning outcomes
	outcomes := authorized.Group("/outcomes")
	{
		outcomes.GET("/:id", h.Outcome.GetOutcome)
		outcomes.PUT("/:id", edit, h.Outcome.UpdateOutcome)
		outcomes.DELETE("/:id", edit, h.Outcome.DeleteOutcome)
		outcomes.GET("/:id/vision-links", h.Outcome.ListVisionLinks)
		outcomes.PUT("/:id/vision-links", edit, h.Outcome.SetVisionLinks)
	}

	// academic years / blocks
	years := authorized.Group("/academic-years")
	{
		years.GET("/:id", h.Curriculum.GetYear)
		years.PUT("/:id", edit, h.Curriculum.UpdateYear)
		years.DELETE("/:id", edit, h.Curriculum.DeleteYear)
		years.GET("/:id/credits", h.Curriculum.YearCredits)
		years.GET("/:id/blocks", h.Curriculum.ListBlocks)
		years.POST("/:id/blocks", edit, h.Curriculum.CreateBlock)
		years.PUT("/:id/blocks/order", edit, h.Curriculum.ReorderBlocks)
	}
	blocks := authorized.Group("/blocks")
	{
		blocks.GET("/:id", h.Curriculum.GetBlock)
		blocks.PUT("/:id", edit, h.Curriculum.UpdateBlock)
		blocks.DELETE("/:id", edit, h.Curriculum.DeleteBlock)
		blocks.GET("/:id/vision-relations", h.Curriculum.ListVisionRelations)
		blocks.PUT("/:id/vision-relations", edit, h.Curriculum.SetVisionRelations)

		blocks.GET("/:id/teaching-units", h.TeachingUnit.ListUnits)
		blocks.POST("/:id/teaching-units", edit, h.TeachingUnit.CreateUnit)
		blocks.PUT("/:id/teaching-units/order", edit, h.TeachingUnit.ReorderUnits)

		blocks.GET("/:id/assessments", h.Assessment.ListAssessments)
		blocks.POST("/:id/assessments", edit, h.Assessment.CreateAssessment)
		blocks.PUT("/:id/assessments/order", edit, h.Assessment.ReorderAssessments)
	}

	// teaching units / weeks / activities / assignments
	units := authorized.Group("/teaching-units")
	{
		units.GET("/:id", h.TeachingUnit.GetUnit)
		units.PUT("/:id", edit, h.TeachingUnit.UpdateUnit)
		units.DELETE("/:id", edit, h.TeachingUnit.DeleteUnit)
		units.GET("/:id/weeks", h.TeachingUnit.ListWeeks)
		units.POST("/:id/weeks", edit, h.TeachingUnit.CreateWeek)
		units.GET("/:id/assignments", h.TeachingUnit.ListAssignments)
		units.POST("/:id/assignments", edit, h.TeachingUnit.CreateAssignment)
	}
	weeks := authorized.Group("/weeks")
	{
		weeks.PUT("/:id", edit, h.TeachingUnit.UpdateWeek)
		weeks.DELETE("/:id", edit, h.TeachingUnit.DeleteWeek)
		weeks.GET("/:id/activities", h.TeachingUnit.ListActivities)
		weeks.POST("/:id/activities", edit, h.TeachingUnit.CreateActivity)
	}
	authorized.PUT("/activities/:id", edit, h.TeachingUnit.UpdateActivity)
	authorized.DELETE("/activities/:id", edit, h.TeachingUnit.DeleteActivity)
	assignments := authorized.Group("/assignments")
	{
		assignments.GET("/:id", h.TeachingUnit.GetAssignment)
		assignments.PUT("/:id", edit, h.TeachingUnit.UpdateAssignment)
		assignments.DELETE("/:id", edit, h.TeachingUnit.DeleteAssignment)
		assignments.GET("/:id/outcomes", h.TeachingUnit.ListAssignmentOutcomes)
		assignments.PUT("/:id/outcomes", edit, h.TeachingUnit.SetAssignmentOutcomes)
	}

	// assessments / criteria / rubric levels
	assessments := authorized.Group("/assessments")
	{
		assessments.GET("/:id", h.Assessment.GetAssessment)
		assessments.PUT("/:id", edit, h.Assessment.UpdateAssessment)
		assessments.DELETE("/:id", edit, h.Assessment.DeleteAssessment)
		assessments.GET("/:id/outcomes", h.Assessment.ListOutcomes)
		assessments.PUT("/:id/outcomes", edit, h.Assessment.SetOutcomes)
		assessments.GET("/:id/criteria", h.Assessment.ListCriteria)
		assessments.POST("/:id/criteria", edit, h.Assessment.CreateCriterion)
		assessments.PUT("/:id/criteria/order", edit, h.Assessment.ReorderCriteria)
	}
	criteria := authorized.Group("/criteria")
	{
		criteria.PUT("/:id", edit, h.Assessment.UpdateCriterion)
		criteria.DELETE("/:id", edit, h.Assessment.DeleteCriterion)
		criteria.GET("/:id/rubric-levels", h.Assessment.ListRubricLevels)
		criteria.POST("/:id/rubric-levels", edit, h.Assessment.CreateRubricLevel)
	}
	authorized.PUT("/rubric-levels/:id", edit, h.Assessment.UpdateRubricLevel)
	authorized.DELETE("/rubric-levels/:id", edit, h.Assessment.DeleteRubricLevel)

	return r
}
