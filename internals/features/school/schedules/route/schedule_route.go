package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolhub_backend/internals/features/school/schedules/controller"
	"schoolhub_backend/internals/features/school/schedules/service"
	"schoolhub_backend/internals/realtime"
)

// AdminScheduleRoutes: slot CRUD and change-request review.
func AdminScheduleRoutes(admin fiber.Router, db *gorm.DB, store *service.ScheduleStore, sync *service.SlotSynchronizer, requests *service.ChangeRequestService, pub realtime.Publisher) {
	slotCtrl := controller.NewScheduleAdminController(db, store, sync, pub)
	reqCtrl := controller.NewChangeRequestAdminController(requests)

	admin.Post("/schedule-slots", slotCtrl.CreateSlot)
	admin.Get("/schedule-slots", slotCtrl.ListSlots)
	admin.Put("/schedule-slots/:id", slotCtrl.UpdateSlot)
	admin.Delete("/schedule-slots/:id", slotCtrl.DeleteSlot)

	admin.Get("/schedule-change-requests", reqCtrl.ListPending)
	admin.Post("/schedule-change/:requestId/approve", reqCtrl.Approve)
	admin.Post("/schedule-change/:requestId/decline", reqCtrl.Decline)
}

// TeacherScheduleRoutes: own timetable + change-request submission.
func TeacherScheduleRoutes(teacher fiber.Router, db *gorm.DB, requests *service.ChangeRequestService) {
	ctrl := controller.NewTimetableController(db, requests)

	teacher.Get("/timetable", ctrl.MyTimetable)
	teacher.Post("/timetable/request-change", ctrl.RequestChange)
}

// UserScheduleRoutes: student-facing course timetable.
func UserScheduleRoutes(user fiber.Router, db *gorm.DB, requests *service.ChangeRequestService) {
	ctrl := controller.NewTimetableController(db, requests)

	user.Get("/courses/:id/timetable", ctrl.CourseTimetable)
}
