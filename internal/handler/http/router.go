package http

import (
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"policytrack/internal/handler/http/middleware"
	usecasecontract "policytrack/internal/usecase/contract"
)

type Router struct {
	voteHandler *VoteHandler
}

func NewRouter(voteUsecase usecasecontract.IVoteUseCase, logger usecasecontract.IAppLogger) *Router {
	return &Router{
		voteHandler: NewVoteHandler(voteUsecase, logger),
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	// rate limiter configuration
	lmt := tollbooth.NewLimiter(10, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
	lmt.SetIPLookups([]string{"RemoteAddr", "X-Forwarded-For", "X-Real-IP"})
	lmt.SetMessage("Too many requests, please try again later.")
	router.Use(middleware.RateLimiter(lmt))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/policylike", r.voteHandler.GetPolicyLike)
		api.POST("/policylike", r.voteHandler.TogglePolicyLike)
		api.GET("/campaignlike", r.voteHandler.GetCampaignLike)
		api.POST("/campaignlike", r.voteHandler.ToggleCampaignLike)
		api.GET("/abusereports", r.voteHandler.GetAbuseReports)
	}
}
