package handler

import (
	"github.com/gin-gonic/gin"
)

// Handlers bundles every route-owning handler for registration.
type Handlers struct {
	Teachers    *TeacherHandler
	Students    *StudentHandler
	Subjects    *SubjectHandler
	Courses     *CourseHandler
	Assignments *AssignmentHandler
	Dashboard   *DashboardHandler
}

// RegisterRoutes mounts every resource under the API prefix.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers) {
	api := r.Group(prefix)

	teachers := api.Group("/teachers")
	teachers.GET("", h.Teachers.List)
	teachers.GET("/:id", h.Teachers.Get)
	teachers.POST("", h.Teachers.Create)
	teachers.PUT("/:id", h.Teachers.Update)
	teachers.DELETE("/:id", h.Teachers.Delete)

	students := api.Group("/students")
	students.GET("", h.Students.List)
	students.GET("/:id", h.Students.Get)
	students.POST("", h.Students.Create)
	students.PUT("/:id", h.Students.Update)
	students.DELETE("/:id", h.Students.Delete)

	subjects := api.Group("/subjects")
	subjects.GET("", h.Subjects.List)
	subjects.GET("/:id", h.Subjects.Get)
	subjects.POST("", h.Subjects.Create)
	subjects.PUT("/:id", h.Subjects.Update)
	subjects.DELETE("/:id", h.Subjects.Delete)

	courses := api.Group("/courses")
	courses.GET("", h.Courses.List)
	courses.GET("/:id", h.Courses.Get)
	courses.POST("", h.Courses.Create)
	courses.PUT("/:id", h.Courses.Update)
	courses.DELETE("/:id", h.Courses.Delete)

	assignments := api.Group("/assignments")
	assignments.GET("", h.Assignments.List)
	assignments.GET("/:id", h.Assignments.Get)
	assignments.POST("", h.Assignments.Create)
	assignments.PUT("/:id", h.Assignments.Update)
	assignments.DELETE("/:id", h.Assignments.Delete)

	dashboard := api.Group("/dashboard")
	dashboard.GET("/stats", h.Dashboard.Stats)
	dashboard.GET("/class-distribution", h.Dashboard.ClassDistribution)
	dashboard.GET("/subject-distribution", h.Dashboard.SubjectDistribution)
	dashboard.GET("/upcoming-assignments", h.Dashboard.UpcomingAssignments)
	dashboard.GET("/export", h.Dashboard.Export)
}
