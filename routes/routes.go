package routes

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"fjwuems/auth"
	"fjwuems/comments"
	"fjwuems/events"
	"fjwuems/feed"
	"fjwuems/likes"
	"fjwuems/live"
	"fjwuems/middleware"
	"fjwuems/passes"
	"fjwuems/profile"
	"fjwuems/ratelim"
	"fjwuems/societies"
	"fjwuems/suggestions"
	"fjwuems/userdata"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir("static/uploads"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", ratelim.RateLimit(middleware.Authenticate(auth.RefreshToken)))

	router.POST("/api/auth/verify-otp", ratelim.RateLimit(auth.VerifyOTPHandler))
	router.POST("/api/auth/request-otp", ratelim.RateLimit(auth.RequestOTPHandler))

	router.POST("/api/auth/change-password", ratelim.RateLimit(middleware.Authenticate(auth.ChangePassword)))
	router.DELETE("/api/auth/account", middleware.Authenticate(auth.DeleteAccount))
}

func AddProfileRoutes(router *httprouter.Router) {
	router.GET("/api/profile", middleware.Authenticate(profile.GetProfile))
	router.PUT("/api/profile", ratelim.RateLimit(middleware.Authenticate(profile.UpdateProfile)))
	router.POST("/api/profile/logo", ratelim.RateLimit(middleware.Authenticate(profile.UploadLogo)))
}

func AddSocietyRoutes(router *httprouter.Router) {
	router.GET("/api/societies", societies.ListSocieties)
	router.GET("/api/societies/:societyid", societies.GetSociety)
}

func AddFeedRoutes(router *httprouter.Router) {
	router.GET("/api/feed", middleware.OptionalAuth(feed.GetFeed))
	router.GET("/api/suggestions/events", suggestions.SuggestEvents)
}

func AddEventsRoutes(router *httprouter.Router) {
	router.POST("/api/events/event", ratelim.RateLimit(middleware.Authenticate(events.CreateEvent)))
	router.GET("/api/events/count", events.GetEventsCount)
	router.GET("/api/events/event/:eventid", events.GetEvent)
	router.PUT("/api/events/event/:eventid", ratelim.RateLimit(middleware.Authenticate(events.EditEvent)))
	router.DELETE("/api/events/event/:eventid", middleware.Authenticate(events.DeleteEvent))

	router.GET("/api/events/event/:eventid/calendar", events.GetCalendar)
	router.GET("/api/events/event/:eventid/updates", live.EventUpdates)
}

func AddInteractionRoutes(router *httprouter.Router) {
	router.POST("/api/events/event/:eventid/like", ratelim.RateLimit(middleware.Authenticate(likes.ToggleLike)))
	router.GET("/api/events/event/:eventid/like", middleware.Authenticate(likes.GetLikeStatus))

	router.POST("/api/events/event/:eventid/save", ratelim.RateLimit(middleware.Authenticate(userdata.ToggleSave)))
	router.GET("/api/saved", middleware.Authenticate(userdata.ListSaved))

	router.POST("/api/events/event/:eventid/register", ratelim.RateLimit(middleware.Authenticate(userdata.Register)))
	router.GET("/api/registrations", middleware.Authenticate(userdata.ListRegistrations))
	router.GET("/api/registrations/:eventid/pass", middleware.Authenticate(passes.PrintPass))

	router.POST("/api/events/event/:eventid/share", ratelim.RateLimit(userdata.RecordShare))
}

func AddCommentsRoutes(router *httprouter.Router) {
	router.POST("/api/events/event/:eventid/comments", ratelim.RateLimit(middleware.Authenticate(comments.CreateComment)))
	router.GET("/api/events/event/:eventid/comments", comments.GetComments)
	router.PUT("/api/comments/:commentid", ratelim.RateLimit(middleware.Authenticate(comments.UpdateComment)))
	router.DELETE("/api/comments/:commentid", middleware.Authenticate(comments.DeleteComment))
}
