package server

import (
	"context"
	"errors"
	"net/http"

	"libreader/internal/model"
	"libreader/internal/scraper"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Fetcher reads a patron's lists from one library.
type Fetcher interface {
	Read(ctx context.Context, region string, creds model.Credentials, lists ...scraper.List) (*model.Result, error)
}

// libraryRequest uses the query parameter names existing clients already send.
type libraryRequest struct {
	Area     string `form:"area" json:"area"`
	UserID   string `form:"userid" json:"userid"`
	Password string `form:"password" json:"password"`
	List     string `form:"list" json:"list"`
}

type regionInfo struct {
	Region string `json:"region"`
	Name   string `json:"name"`
}

func regionInfos() []regionInfo {
	sites := scraper.Regions()
	out := make([]regionInfo, 0, len(sites))
	for _, s := range sites {
		out = append(out, regionInfo{Region: s.Region(), Name: s.Name()})
	}
	return out
}

// Health handles the liveness check.
func (s *Server) Health(c *gin.Context) {
	regions := []string{}
	for _, r := range regionInfos() {
		regions = append(regions, r.Region)
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": s.version,
		"regions": regions,
	})
}

// Regions lists the libraries this service can read.
func (s *Server) Regions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"regions": regionInfos()})
}

// Library logs into the selected library and returns loans and reservations.
func (s *Server) Library(c *gin.Context) {
	var req libraryRequest
	var err error
	if c.Request.Method == http.MethodPost {
		err = c.ShouldBindJSON(&req)
	} else {
		err = c.ShouldBindQuery(&req)
	}
	if err != nil {
		s.fail(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	if req.Area == "" || req.UserID == "" || req.Password == "" {
		s.fail(c, http.StatusBadRequest, "area, userid and password are required")
		return
	}
	if _, ok := scraper.Get(req.Area); !ok {
		s.fail(c, http.StatusBadRequest, "unknown area: "+req.Area)
		return
	}
	lists, err := scraper.ParseLists(req.List)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.scrapeTimeout)
	defer cancel()
	ctx = scraper.WithLogger(ctx, s.log.With(zap.String("request_id", c.GetString(requestIDKey))))

	result, err := s.fetcher.Read(ctx, req.Area, model.Credentials{UserID: req.UserID, Password: req.Password}, lists...)
	if err != nil {
		_ = c.Error(err)
		status := statusFor(err)
		if status == http.StatusGatewayTimeout && ctx.Err() == nil {
			// a single page step timed out; the portal did not render what we expected
			status = http.StatusBadGateway
		}
		s.fail(c, status, err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":      msg,
		"request_id": c.GetString(requestIDKey),
	})
}

// statusFor maps scrape errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, scraper.ErrUnknownRegion), errors.Is(err, scraper.ErrMissingCredentials):
		return http.StatusBadRequest
	case errors.Is(err, scraper.ErrLoginFailed):
		return http.StatusUnauthorized
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
