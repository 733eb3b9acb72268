package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolhub_backend/internals/constants"
	notifRoute "schoolhub_backend/internals/features/home/notifications/route"
	notifService "schoolhub_backend/internals/features/home/notifications/service"
	assignmentRoute "schoolhub_backend/internals/features/school/assignments/route"
	attendanceRoute "schoolhub_backend/internals/features/school/attendance/route"
	courseRoute "schoolhub_backend/internals/features/school/courses/route"
	resourceRoute "schoolhub_backend/internals/features/school/resources/route"
	scheduleRoute "schoolhub_backend/internals/features/school/schedules/route"
	scheduleService "schoolhub_backend/internals/features/school/schedules/service"
	userRoute "schoolhub_backend/internals/features/users/user/route"
	authMw "schoolhub_backend/internals/middlewares/auth"
	"schoolhub_backend/internals/realtime"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, hub *realtime.Hub) {
	startTime = time.Now()

	BaseRoutes(app)

	// ===================== SERVICES =====================
	store := scheduleService.NewScheduleStore(db)
	sync := scheduleService.NewSlotSynchronizer(store)
	fanout := notifService.NewFanoutService(db, hub)
	requests := scheduleService.NewChangeRequestService(db, store, sync, fanout, hub)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up public auth routes...")
	api := app.Group("/api")
	userRoute.AuthRoutes(api, db)

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up /api/u group...")
	user := app.Group("/api/u", authMw.AuthMiddleware(db))
	userRoute.UserRoutes(user, db)
	courseRoute.UserCourseRoutes(user, db)
	scheduleRoute.UserScheduleRoutes(user, db, requests)
	notifRoute.UserNotificationRoutes(user, db, fanout)
	assignmentRoute.UserAssignmentRoutes(user, db, fanout)
	attendanceRoute.UserAttendanceRoutes(user, db)
	resourceRoute.UserResourceRoutes(user, db)

	// ===================== TEACHER =====================
	log.Println("[INFO] Setting up /api/t group...")
	teacher := app.Group("/api/t",
		authMw.AuthMiddleware(db),
		authMw.RequireCapability(constants.CapTeachCourses),
	)
	scheduleRoute.TeacherScheduleRoutes(teacher, db, requests)
	assignmentRoute.TeacherAssignmentRoutes(teacher, db, fanout)
	attendanceRoute.TeacherAttendanceRoutes(teacher, db)
	resourceRoute.TeacherResourceRoutes(teacher, db)

	// ===================== ADMIN =====================
	// Capability gates per concern; all three admin roles carry the schedule
	// and review capabilities so the change-request endpoints live under the
	// schedule gate.
	log.Println("[INFO] Setting up /api/a group...")
	admin := app.Group("/api/a", authMw.AuthMiddleware(db))
	userRoute.AdminUserRoutes(admin.Group("", authMw.RequireCapability(constants.CapManageUsers)), db)
	courseRoute.AdminCourseRoutes(admin.Group("", authMw.RequireCapability(constants.CapManageCourses)), db)
	scheduleRoute.AdminScheduleRoutes(admin.Group("", authMw.RequireCapability(constants.CapManageSchedule)), db, store, sync, requests, hub)
	notifRoute.AdminNotificationRoutes(admin.Group("", authMw.RequireCapability(constants.CapSendBroadcast)), db, fanout)
}
