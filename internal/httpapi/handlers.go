package httpapi

import (
	"errors"
	"strings"

	"github.com/abhisek/focoleve/internal/assistant"
	"github.com/abhisek/focoleve/internal/mentor"
	"github.com/abhisek/focoleve/internal/plan"
	"github.com/abhisek/focoleve/internal/wizard"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Health response constants.
const (
	ServiceName   = "focoleve"
	HealthVersion = "1.0.0"
)

type celebrationView struct {
	Shown   bool   `json:"shown"`
	Message string `json:"message,omitempty"`
}

type stateView struct {
	Profile       *plan.Profile   `json:"profile"`
	Tasks         []plan.Task     `json:"tasks"`
	Progress      int             `json:"progress"`
	AllDone       bool            `json:"allDone"`
	DaysUntilExam int             `json:"daysUntilExam"`
	Footer        string          `json:"footer"`
	Quote         string          `json:"quote"`
	Celebration   celebrationView `json:"celebration"`
}

type profileRequest struct {
	Subjects   []string `json:"subjects"`
	ExamDate   string   `json:"examDate"`
	StudyHours *int     `json:"studyHoursPerDay"`
}

type toggleView struct {
	Task          plan.Task       `json:"task"`
	Encouragement string          `json:"encouragement,omitempty"`
	AllDone       bool            `json:"allDone"`
	Progress      int             `json:"progress"`
	Celebration   celebrationView `json:"celebration"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatView struct {
	Messages []mentor.Message `json:"messages"`
}

func (srv *Server) healthCheck(c *gin.Context) {
	ok(c, gin.H{
		"status":  "healthy",
		"version": HealthVersion,
		"service": ServiceName,
	})
}

func (srv *Server) snapshot() stateView {
	profile := srv.board.Profile()
	tasks := srv.board.Tasks()
	if tasks == nil {
		tasks = []plan.Task{}
	}
	pct := plan.Progress(tasks)
	cel := srv.board.Celebration()
	return stateView{
		Profile:       profile,
		Tasks:         tasks,
		Progress:      pct,
		AllDone:       plan.AllDone(tasks),
		DaysUntilExam: profile.DaysUntilExam(srv.now()),
		Footer:        plan.Footer(pct),
		Quote:         plan.DailyQuote,
		Celebration:   celebrationView{Shown: cel.Shown(), Message: cel.Message()},
	}
}

func (srv *Server) getState(c *gin.Context) {
	ok(c, srv.snapshot())
}

func (srv *Server) resetState(c *gin.Context) {
	if err := srv.board.Reset(c.Request.Context()); err != nil {
		srv.logger.Error("reset failed", zap.Error(err))
		internalError(c)
		return
	}
	ok(c, srv.snapshot())
}

// createProfile runs onboarding. A failed schedule request still answers
// 200 with an empty task list.
func (srv *Server) createProfile(c *gin.Context) {
	if srv.board.HasProfile() {
		conflict(c, "profile already exists, reset first")
		return
	}

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, errors.New("invalid request body"))
		return
	}

	profile, err := wizard.Run(req.Subjects, strings.TrimSpace(req.ExamDate), req.StudyHours)
	if err != nil {
		badRequest(c, err)
		return
	}

	if err := assistant.Onboard(c.Request.Context(), srv.board, srv.assistant, *profile, srv.logger); err != nil {
		badRequest(c, err)
		return
	}
	ok(c, srv.snapshot())
}

func (srv *Server) toggleTask(c *gin.Context) {
	ctx := c.Request.Context()
	res, found := srv.board.Toggle(ctx, c.Param("id"))
	if !found {
		notFound(c, "task not found")
		return
	}

	if res.Celebrate {
		assistant.Celebrate(ctx, srv.board, srv.assistant, res.CelebrationSeq, srv.logger)
	}

	cel := srv.board.Celebration()
	ok(c, toggleView{
		Task:          res.Task,
		Encouragement: res.Encouragement,
		AllDone:       res.AllDone,
		Progress:      srv.board.Progress(),
		Celebration:   celebrationView{Shown: cel.Shown(), Message: cel.Message()},
	})
}

func (srv *Server) dismissCelebration(c *gin.Context) {
	srv.board.DismissCelebration()
	ok(c, srv.snapshot())
}

func (srv *Server) getChat(c *gin.Context) {
	ok(c, chatView{Messages: srv.chat.Messages()})
}

func (srv *Server) sendChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, errors.New("invalid request body"))
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		badRequest(c, errors.New("message is required"))
		return
	}

	if !srv.chat.Send(c.Request.Context(), srv.assistant, req.Message) {
		conflict(c, "a reply is already on its way")
		return
	}
	ok(c, chatView{Messages: srv.chat.Messages()})
}
