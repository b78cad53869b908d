package http

import (
	"context"
	"net/http"

	"github.com/fyrsmithlabs/socialintel/internal/content"
	"github.com/fyrsmithlabs/socialintel/internal/dashboard"
	"github.com/fyrsmithlabs/socialintel/internal/logging"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// handleHealth returns a simple health check response.
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// handleIndex shows the dashboard to an authenticated session and the
// login page to everyone else.
func (s *Server) handleIndex(c echo.Context) error {
	_, g, ok := s.currentSession(c)
	if !ok || !g.IsAuthenticated() {
		return c.Render(http.StatusOK, pageLogin, loginPage{})
	}

	page, err := s.buildDashboard(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, pageDashboard, page)
}

func (s *Server) buildDashboard(c echo.Context) (dashboardPage, error) {
	trends, err := s.trendsView(c)
	if err != nil {
		return dashboardPage{}, err
	}
	attraction, err := s.attractionView(c)
	if err != nil {
		return dashboardPage{}, err
	}
	skills, err := s.skillsView(c)
	if err != nil {
		return dashboardPage{}, err
	}
	return dashboardPage{Trends: trends, Attraction: attraction, Skills: skills}, nil
}

func (s *Server) trendsView(c echo.Context) (dashboard.TrendsView, error) {
	t, err := s.loader.Trends(withDataset(c, content.DatasetTrends))
	if err != nil {
		return dashboard.TrendsView{}, s.contentError(c, err)
	}
	return dashboard.BuildTrends(t), nil
}

func (s *Server) attractionView(c echo.Context) (dashboard.AttractionView, error) {
	a, err := s.loader.Attraction(withDataset(c, content.DatasetAttraction))
	if err != nil {
		return dashboard.AttractionView{}, s.contentError(c, err)
	}
	return dashboard.BuildAttraction(a), nil
}

func (s *Server) skillsView(c echo.Context) (dashboard.SkillsView, error) {
	sk, err := s.loader.Skills(withDataset(c, content.DatasetSkills))
	if err != nil {
		return dashboard.SkillsView{}, s.contentError(c, err)
	}
	return dashboard.BuildSkills(sk), nil
}

// withDataset tags the request context so every log line for this load
// carries the dataset name.
func withDataset(c echo.Context, d content.Dataset) context.Context {
	ctx := logging.WithDataset(c.Request().Context(), string(d))
	c.SetRequest(c.Request().WithContext(ctx))
	return ctx
}

// contentError logs a load failure and hides its detail from the client.
func (s *Server) contentError(c echo.Context, err error) error {
	s.logger.Error(c.Request().Context(), "content load failed", zap.Error(err))
	return echo.NewHTTPError(http.StatusInternalServerError, msgContent).SetInternal(err)
}

func (s *Server) handleTrends(c echo.Context) error {
	v, err := s.trendsView(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

func (s *Server) handleAttraction(c echo.Context) error {
	v, err := s.attractionView(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

func (s *Server) handleSkills(c echo.Context) error {
	v, err := s.skillsView(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}
