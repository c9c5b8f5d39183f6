package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PeterLoonenMetis/eduview-sub000/internal/service"
	pkgerrors "github.com/PeterLoonenMetis/eduview-sub000/pkg/errors"
	"github.com/PeterLoonenMetis/eduview-sub000/pkg/response"
)

// Handler aggregates every HTTP handler.
type Handler struct {
	Institute    *InstituteHandler
	Program      *ProgramHandler
	Cohort       *CohortHandler
	Vision       *VisionHandler
	Outcome      *OutcomeHandler
	Curriculum   *CurriculumHandler
	TeachingUnit *TeachingUnitHandler
	Assessment   *AssessmentHandler
	Dashboard    *DashboardHandler
	Export       *ExportHandler
}

// NewHandler wires the handlers to their services.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Institute:    NewInstituteHandler(svc.Institute),
		Program:      NewProgramHandler(svc.Program),
		Cohort:       NewCohortHandler(svc.Cohort),
		Vision:       NewVisionHandler(svc.Vision),
		Outcome:      NewOutcomeHandler(svc.Outcome),
		Curriculum:   NewCurriculumHandler(svc.Curriculum),
		TeachingUnit: NewTeachingUnitHandler(svc.TeachingUnit),
		Assessment:   NewAssessmentHandler(svc.Assessment),
		Dashboard:    NewDashboardHandler(svc.Dashboard),
		Export:       NewExportHandler(svc.Export),
	}
}

// Response codes. 0 is success; the auth middleware owns 10002-10004.
const (
	CodeBadRequest      = 10001
	CodeValidation      = 10022
	CodeNotFound        = 10404
	CodeConflict        = 10409
	CodeInvalidArgument = 10400
)

// handleError renders a service error by kind. Unknown errors are recorded
// on the gin context for the request logger and rendered as a bare 500.
func handleError(c *gin.Context, err error) {
	e, ok := pkgerrors.As(err)
	if !ok {
		_ = c.Error(err)
		response.InternalError(c)
		return
	}

	switch e.Kind {
	case pkgerrors.KindNotFound:
		response.NotFound(c, CodeNotFound, e.Message)
	case pkgerrors.KindValidation:
		response.ValidationFailed(c, CodeValidation, e.Message, e.Fields)
	case pkgerrors.KindConstraint, pkgerrors.KindConflict:
		response.ErrorWithFields(c, http.StatusConflict, CodeConflict, e.Message, e.Fields)
	case pkgerrors.KindInvalidArgument:
		response.BadRequest(c, CodeInvalidArgument, e.Message)
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
