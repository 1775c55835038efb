package pkg

import (
	"context"
	"log"
	"os"

	"ExamTimetabler/internal/catalog"
	"ExamTimetabler/internal/config"
	"ExamTimetabler/internal/distribution"
	"ExamTimetabler/internal/notification"
	"ExamTimetabler/internal/seating"
	"ExamTimetabler/internal/timetable"
	"ExamTimetabler/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

var EchoModules = fx.Module("echo",
	fx.Provide(NewEchoServer),
	fx.Provide(config.NewMongoDBConfig),
	fx.Provide(config.NewMongoDBClient),
	fx.Provide(config.NewResendConfig),
	fx.Provide(config.NewEmailService),
	fx.Provide(catalog.NewCatalogRepository),
	fx.Provide(catalog.NewCatalogService),
	fx.Provide(catalog.NewCatalogHandler),
	fx.Provide(timetable.NewTimetableRepository),
	fx.Provide(timetable.NewTimetableService),
	fx.Provide(timetable.NewTimetableHandler),
	fx.Provide(distribution.NewDistributionRepository),
	fx.Provide(distribution.NewDistributionService),
	fx.Provide(distribution.NewDistributionHandler),
	fx.Provide(seating.NewSeatingRepository),
	fx.Provide(seating.NewSeatingService),
	fx.Provide(seating.NewSeatingHandler),
	fx.Provide(notification.NewNoticeRepository),
	fx.Provide(notification.NewNoticeService),
	fx.Provide(notification.NewNoticeScheduler),
	fx.Provide(notification.NewNoticeHandler),
	fx.Invoke(RegisterRoutes),
	fx.Invoke(StartNoticeScheduler))

func NewEchoServer(lc fx.Lifecycle) *echo.Echo {
	e := echo.New()
	middleware.SetupMiddleware(e)
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("Server running on http://localhost:" + port)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := e.Start(":" + port); err != nil {
					log.Fatal("Failed to start the server:", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("shutting down the server ...")
			return e.Shutdown(ctx)
		},
	})
	return e
}

func RegisterRoutes(e *echo.Echo,
	catalogHandler *catalog.CatalogHandler,
	timetableHandler *timetable.TimetableHandler,
	distributionHandler *distribution.DistributionHandler,
	seatingHandler *seating.SeatingHandler,
	noticeHandler *notification.NoticeHandler) {

	api := e.Group("/api")

	api.POST("/departments", catalogHandler.CreateDepartment)
	api.GET("/departments", catalogHandler.ListDepartments)
	api.POST("/classes", catalogHandler.CreateClass)
	api.GET("/classes", catalogHandler.ListClasses)
	api.GET("/classes/:id/roster", catalogHandler.GetClassRoster)
	api.POST("/courses", catalogHandler.CreateCourse)
	api.GET("/courses", catalogHandler.ListCourses)
	api.POST("/courses/:id/classes/:class_id", catalogHandler.AddClassToCourse)
	api.POST("/halls", catalogHandler.CreateHall)
	api.GET("/halls", catalogHandler.ListHalls)
	api.POST("/students", catalogHandler.EnrollStudent)

	api.POST("/timetable/generate", timetableHandler.GenerateTimetable)
	api.GET("/timetable", timetableHandler.GetTimetable)
	api.GET("/timetable/dates", timetableHandler.GetExamDates)
	api.DELETE("/timetable", timetableHandler.ClearTimetable)

	api.POST("/distribution/generate", distributionHandler.GenerateDistribution)
	api.GET("/distribution", distributionHandler.GetDistributions)
	api.GET("/distribution/stats", distributionHandler.GetStatistics)
	api.DELETE("/distribution", distributionHandler.ClearDistribution)

	api.POST("/seating/generate", seatingHandler.GenerateSeating)
	api.GET("/seating", seatingHandler.GetArrangement)
	api.POST("/seating/manual", seatingHandler.ManualAssign)

	api.POST("/notices", noticeHandler.ScheduleNotice)
	api.GET("/notices", noticeHandler.ListNotices)
	api.DELETE("/notices/:id", noticeHandler.DeleteNotice)
}

// StartNoticeScheduler wires the background notice sender into the app lifecycle.
func StartNoticeScheduler(lc fx.Lifecycle, scheduler *notification.NoticeScheduler) {
	scheduler.StartScheduler(lc)
}
